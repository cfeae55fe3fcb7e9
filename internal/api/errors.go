package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/auth"
	"github.com/donmarco3/Book-Brain/internal/store"
)

// ErrUnauthenticated is reported when a protected handler runs without an
// authenticated user in the request context.
var ErrUnauthenticated = errors.New("request is not authenticated")

// MapErrorToStatusCode maps an error kind to an HTTP status code without
// exposing the error itself.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Validation
// messages are built from field names and fixed text, so they are passed
// through; everything else maps to a fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.As(err, &verr):
		return verr.Error()

	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrBucketNotFound):
		return "Bucket not found"
	case errors.Is(err, domain.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrBucketNameExists):
		return "A bucket with this name already exists"
	case errors.Is(err, domain.ErrNoteNotInbox):
		return "Note is not in the inbox"
	case errors.Is(err, domain.ErrNoteStatusFinal):
		return "Note status can no longer change"
	case errors.Is(err, domain.ErrConflict):
		return "Resource already exists"

	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. defaultMsg
// replaces the generic message for 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		opts = append(opts, shared.WithField(verr.Field))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
