package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// NewTraceMiddleware assigns each request a trace ID and a request-scoped
// logger carrying it, and logs the request's completion.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			attrs := []any{slog.String("trace_id", traceID)}
			if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}
			log := base.With(attrs...)
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(TraceIDHeader, traceID)
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
