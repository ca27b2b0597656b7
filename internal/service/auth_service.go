package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"edu-platform/internal/auth"
	"edu-platform/internal/domain"
	"edu-platform/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyRegistered is returned when registering an email that
	// already has an account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

const minPasswordLength = 4

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService covers the two state-changing entry points of the
// authentication subsystem. All persisted state lives in the repository.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenManager) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account and returns a freshly issued token for it.
// The ExistsByEmail pre-check is a fast-path rejection only; the store's
// uniqueness constraint decides the race between concurrent registrations,
// and its conflict signal maps to the same ErrEmailAlreadyRegistered.
func (s *authService) Register(ctx context.Context, email, password, name string) (string, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validateRegistration(email, password, name); err != nil {
		return "", err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailAlreadyRegistered
		}
		return "", err
	}

	return s.tokens.Issue(user.ID, user.Email)
}

// Login verifies credentials and returns a freshly issued token. An unknown
// email and a wrong password produce the identical outcome.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Email)
}

func validateRegistration(email, password, name string) error {
	ve := domain.NewValidationError()

	switch {
	case email == "":
		ve.Add("email", "email is required")
	case !emailPattern.MatchString(email):
		ve.Add("email", "invalid email format")
	}
	switch {
	case password == "":
		ve.Add("password", "password is required")
	case len(password) < minPasswordLength:
		ve.Add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if name == "" {
		ve.Add("name", "name is required")
	}

	if ve.Empty() {
		return nil
	}
	return ve
}
