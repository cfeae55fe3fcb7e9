package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/donmarco3/Book-Brain/internal/config"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// minSecretLength matches the validation on config.AuthConfig.
const minSecretLength = 32

// TokenService mints and validates user tokens.
type TokenService interface {
	// GenerateToken creates a signed token whose subject is userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks signature and time claims and returns the user
	// ID carried in the subject.
	ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// hmacTokenService is an implementation of TokenService using HMAC-SHA signing.
type hmacTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference for validation to handle clock drift
}

var _ TokenService = (*hmacTokenService)(nil)

// Option configures a token service.
type Option func(*hmacTokenService)

// WithTimeFunc replaces the clock used for issuing and validating tokens.
func WithTimeFunc(now func() time.Time) Option {
	return func(s *hmacTokenService) { s.timeFunc = now }
}

// NewTokenService creates a token service using HMAC-SHA256 signing.
func NewTokenService(cfg config.AuthConfig, opts ...Option) (TokenService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}

	s := &hmacTokenService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateToken creates a signed JWT with the user as subject.
func (s *hmacTokenService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidToken)
	}

	now := s.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signed, nil
}

// ValidateToken validates a token and returns the user ID from its subject.
func (s *hmacTokenService) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired")
			return uuid.Nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid")
			return uuid.Nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return uuid.Nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		log.Debug("token validation failed: subject is not a user id")
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
