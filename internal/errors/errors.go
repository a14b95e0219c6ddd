package errors

import (
	"errors"
	"fmt"
)

// Common error types for the product admin client
var (
	// Validation errors (local, raised before any network call)
	ErrValidation         = errors.New("validation failed")
	ErrMissingCredentials = errors.New("both username and password are required")

	// Authentication errors
	ErrFailedLogin  = errors.New("failed login attempt")
	ErrUnauthorized = errors.New("not authorized")
	ErrNoSession    = errors.New("no active session")

	// Remote API errors
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// General errors
	ErrInternal = errors.New("internal error")
)

// ConflictField identifies which registration field collided on the server
type ConflictField string

const (
	ConflictFieldNone     ConflictField = ""
	ConflictFieldUserName ConflictField = "userName"
	ConflictFieldEmail    ConflictField = "email"
	ConflictFieldBoth     ConflictField = "both"
)

// ConflictError wraps ErrConflict with the server-reported conflicting field.
// The registration endpoint reports which unique field collided; catalog
// endpoints leave Field empty.
type ConflictError struct {
	Field ConflictField
}

func (e *ConflictError) Error() string {
	if e.Field == ConflictFieldNone {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConflict.Error(), e.Field)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
