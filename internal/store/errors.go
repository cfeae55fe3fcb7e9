package store

import (
	"fmt"

	"github.com/donmarco3/Book-Brain/internal/domain"
)

// Common store errors used across all store implementations. Each wraps one
// of the domain error kinds so callers can match either level.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store or belongs to another user.
	ErrNotFound = fmt.Errorf("entity %w", domain.ErrNotFound)

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = fmt.Errorf("entity already exists: %w", domain.ErrConflict)

	// ErrInvalidEntity is returned when an entity fails validation or
	// references a missing row. Check the wrapped error for details.
	ErrInvalidEntity = fmt.Errorf("invalid entity: %w", domain.ErrValidation)

	// ErrUnavailable is returned when the backend itself fails.
	ErrUnavailable = fmt.Errorf("backend failure: %w", domain.ErrStoreUnavailable)

	// ErrTransactionFailed is returned when a transaction cannot be started
	// or committed.
	ErrTransactionFailed = fmt.Errorf("transaction failed: %w", domain.ErrStoreUnavailable)

	// Entity-specific "not found" errors

	ErrBookNotFound     = fmt.Errorf("%w: book", ErrNotFound)
	ErrNoteNotFound     = fmt.Errorf("%w: note", ErrNotFound)
	ErrCardNotFound     = fmt.Errorf("%w: card", ErrNotFound)
	ErrBucketNotFound   = fmt.Errorf("%w: bucket", ErrNotFound)
	ErrSettingsNotFound = fmt.Errorf("%w: user settings", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrBucketNameExists indicates the user already has a bucket with the
	// same name, compared case-insensitively.
	ErrBucketNameExists = fmt.Errorf("%w: bucket name", ErrDuplicate)
)

// StoreError is a store-specific error with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "book", "card")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
