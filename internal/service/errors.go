package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/donmarco3/Book-Brain/internal/domain"
)

// ServiceError wraps an unexpected failure with the operation it happened in.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_card", "promote_note")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns err unchanged when it is an expected outcome
// (validation, not found, conflict, cancellation) and wraps it in a
// *ServiceError otherwise.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// errNilDependency is returned by constructors given a nil dependency.
func errNilDependency(name string) error {
	return &ServiceError{
		Operation: "create_service",
		Message:   name + " cannot be nil",
	}
}
