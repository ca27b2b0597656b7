package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password hash never leaves the
// repository/service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the request-scoped result of a successful token verification.
// It carries no roles or permissions.
type Identity struct {
	UserID  uuid.UUID
	Subject string
}
