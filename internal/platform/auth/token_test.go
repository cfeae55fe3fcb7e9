package auth

import (
	"context"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-long-development-secret-of-32+-chars"

func newTestService(t *testing.T, now func() time.Time) TokenService {
	t.Helper()
	svc, err := NewTokenService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}, WithTimeFunc(now))
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorContains(t, err, "at least 32 characters")

	_, err = NewTokenService(config.AuthConfig{JWTSecret: testSecret})
	assert.ErrorContains(t, err, "token lifetime must be positive")
}

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return now })
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	got, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_GenerateRejectsNilUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Now)
	_, err := svc.GenerateToken(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateErrors(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	issuer := newTestService(t, func() time.Time { return issued })
	token, err := issuer.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTestService(t, func() time.Time { return issued.Add(3 * time.Hour) })
		_, err := later.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		earlier := newTestService(t, func() time.Time { return issued.Add(-time.Hour) })
		_, err := earlier.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService(config.AuthConfig{
			JWTSecret:            "another-secret-that-is-long-enough-too",
			TokenLifetimeMinutes: 60,
		}, WithTimeFunc(func() time.Time { return issued }))
		require.NoError(t, err)
		_, err = other.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := issuer.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		})
		signed, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.ValidateToken(context.Background(), signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		})
		signed, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.ValidateToken(context.Background(), signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
