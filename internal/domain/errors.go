package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared across the application. Every error returned by the
// domain, store and service layers matches exactly one of these with
// errors.Is, or none for unexpected failures.
var (
	// ErrValidation is returned when input or an entity fails validation.
	// It is usually carried by a *ValidationError naming the field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an entity does not exist or is owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation contradicts current state.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable is returned when the persistence backend fails.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError. err may be nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes ErrValidation and the underlying cause, if any.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// Errors shared by several entities.
var (
	ErrIDEmpty     = NewValidationError("id", "cannot be empty", nil)
	ErrUserIDEmpty = NewValidationError("userId", "cannot be empty", nil)
	ErrBookIDEmpty = NewValidationError("bookId", "cannot be empty", nil)
	ErrTitleEmpty  = NewValidationError("title", "cannot be empty", nil)
	ErrPageEmpty   = NewValidationError("page", "cannot be empty", nil)
)
