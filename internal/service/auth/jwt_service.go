package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Token failures. The API answers all of them with 401.
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")
)

// JWTService issues and checks the bearer tokens returned by sign-up and
// sign-in.
type JWTService interface {
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken returns ErrExpiredToken, ErrTokenNotYetValid or
	// ErrInvalidToken when tokenString cannot be trusted.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is what a valid token says about its bearer. UserID is the root
// of every ownership check.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
