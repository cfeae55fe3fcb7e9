package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()
	buf, base := logger.NewTestLogger()

	var seenTrace string
	var seenLogger *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		seenLogger = logger.FromContext(r.Context())
		seenLogger.Info("inside handler")
		w.WriteHeader(http.StatusCreated)
	})

	handler := chimiddleware.RequestID(NewTraceMiddleware(base)(next))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/books", nil))

	require.Len(t, seenTrace, 32)
	assert.Equal(t, seenTrace, w.Header().Get(TraceIDHeader))
	assert.Equal(t, http.StatusCreated, w.Code)

	entries, err := buf.Entries()
	require.NoError(t, err)

	var inside, completed map[string]any
	for _, e := range entries {
		switch e["msg"] {
		case "inside handler":
			inside = e
		case "request completed":
			completed = e
		}
	}
	require.NotNil(t, inside)
	assert.Equal(t, seenTrace, inside["trace_id"])
	assert.NotEmpty(t, inside["request_id"])

	require.NotNil(t, completed)
	assert.Equal(t, float64(http.StatusCreated), completed["status"])
	assert.Equal(t, "/api/books", completed["path"])
}

func TestTraceMiddlewareDistinctIDs(t *testing.T) {
	t.Parallel()
	handler := NewTraceMiddleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEqual(t, first.Header().Get(TraceIDHeader), second.Header().Get(TraceIDHeader))
}
