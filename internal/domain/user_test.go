package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("u1", "u1@example.com", "p")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if user.Username != "u1" {
		t.Errorf("Expected username u1, got %s", user.Username)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	// Email is optional
	if _, err := NewUser("u2", "", "p"); err != nil {
		t.Errorf("Expected no error without email, got %v", err)
	}

	if _, err := NewUser("", "", "p"); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}
	if _, err := NewUser("u1", "not-an-email", "p"); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}
	if _, err := NewUser("u1", "", ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
	if _, err := NewUser("u1", "", strings.Repeat("x", 73)); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{
		ID:             uuid.New(),
		Username:       "u1",
		HashedPassword: "hashed",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := valid
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != errEmptyUserID {
		t.Errorf("Expected error %v, got %v", errEmptyUserID, err)
	}

	invalid = valid
	invalid.HashedPassword = ""
	if err := invalid.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}
