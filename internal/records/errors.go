package records

import (
	"errors"
	"fmt"
)

// ErrBadCredentials covers both an unknown username and a wrong secret.
// The two cases are deliberately indistinguishable to the caller.
var ErrBadCredentials = errors.New("invalid username or password")

// ValidationError indicates invalid client input. Surfaced before any
// store access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError indicates an operation targeted a record that does not
// exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
