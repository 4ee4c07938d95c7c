package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthenticated is returned when a request carries no usable principal
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when a principal may not act on a row it does not own
	ErrForbidden = errors.New("insufficient permissions")

	// ErrConflict is returned when an update races a concurrent modification
	ErrConflict = errors.New("resource was modified concurrently")
)

// ValidationError reports a malformed resource payload. The message is safe
// to return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidAccountTypeError reports an account type outside the known enum.
type InvalidAccountTypeError struct {
	Value string
}

func (e *InvalidAccountTypeError) Error() string {
	return fmt.Sprintf("invalid account type %q", e.Value)
}
