package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getPathUUID parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", nil)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(paramName, "must be a valid UUID", err)
	}

	return id, nil
}

// requireUserID returns the authenticated user. It writes a 401 and
// returns false when there is none.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, ErrUnauthenticated, "")
		return uuid.Nil, false
	}
	return userID, true
}

// handleUserIDAndPathUUID extracts the user ID from context and one UUID
// path parameter, writing an error response if either is missing.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, ok := pathUUID(w, r, paramName, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// pathUUID parses a path parameter, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}

// optionalQuery returns a query parameter, or nil when it is absent or blank.
func optionalQuery(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// searchQuery returns a search parameter untouched, or nil when it is
// absent or empty.
func searchQuery(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// optionalIntQuery parses an integer query parameter. Absent or blank
// values yield nil.
func optionalIntQuery(r *http.Request, name string) (*int, error) {
	raw := optionalQuery(r, name)
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer", err)
	}
	return &n, nil
}

// decodeOptionalJSON is DecodeJSON for endpoints whose body may be omitted.
// An empty body leaves v at its zero value.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := shared.DecodeJSON(w, r, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
