package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/donmarco3/Book-Brain/internal/api/shared"
	"github.com/donmarco3/Book-Brain/internal/platform/auth"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/redact"
	"github.com/google/uuid"
)

// AuthMiddleware authenticates requests with bearer tokens.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware backed by tokens.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	if tokens == nil {
		panic("token service cannot be nil")
	}
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the Authorization header and stores the token's
// user ID in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		userID, err := m.tokens.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token",
					shared.WithElevatedLogLevel())
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to validate token", redact.Attr(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("user_id", userID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated user's ID from the request.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}
