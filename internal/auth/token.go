package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"edu-platform/internal/domain"
)

// ErrInvalidToken is returned by Verify for every rejected token. Expired,
// forged and malformed tokens are indistinguishable through this sentinel;
// the underlying jwt error stays wrapped for server-side logging only.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload: the registered subject holds the account
// email, UserID the account id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager issues and verifies HMAC-SHA256 signed tokens with a single
// process-wide key. Safe for concurrent use; the key and TTL are immutable
// after construction.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token for the given account, valid from now until
// now plus the configured TTL.
func (m *TokenManager) Issue(userID uuid.UUID, subject string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID.String(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the identity carried by the
// token. A token is rejected from the instant its expiry is reached; no
// leeway is applied. Verify never touches any store.
func (m *TokenManager) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return domain.Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: bad userId claim: %w", ErrInvalidToken, err)
	}

	return domain.Identity{UserID: userID, Subject: claims.Subject}, nil
}
