package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyUsername = NewValidationError("username", "is required", nil)
	ErrEmptyPassword = NewValidationError("password", "is required", nil)
	ErrInvalidEmail  = NewValidationError("email", "must be a valid email address", nil)
	// ErrPasswordTooLong reflects bcrypt's 72 byte input limit.
	ErrPasswordTooLong = NewValidationError("password", "must be at most 72 bytes", nil)
	errEmptyUserID     = errors.New("user ID cannot be empty")
)

// User is an account holder and the root of every ownership chain.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Password       string    `json:"-"` // Plaintext, only set during signup
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"updated"`
}

// NewUser creates a User with a fresh ID. The caller must hash Password
// before the user is stored.
func NewUser(username, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return errEmptyUserID
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Email != "" {
		if err := validate.Var(u.Email, "email"); err != nil {
			return ErrInvalidEmail
		}
	}
	if u.Password != "" {
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}
