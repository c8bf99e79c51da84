package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to HTTP
// status codes. Ownership failures are reported with domain.ErrNotOwned and
// missing records with the store's not-found errors.
var (
	// ErrInvalidCredentials is returned by sign-in when the username is
	// unknown or the password does not match. The two cases are not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ServiceError wraps an unexpected failure with the service and operation
// it happened in. errors.Is and errors.As see through it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapErr returns nil for a nil err and a ServiceError otherwise.
func wrapErr(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Op: op, Err: err}
}
