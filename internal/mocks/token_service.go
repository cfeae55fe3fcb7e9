package mocks

import (
	"context"

	"github.com/donmarco3/Book-Brain/internal/platform/auth"
	"github.com/google/uuid"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (uuid.UUID, error)

	// Defaults used when the functions above are nil.
	Token       string
	Err         error
	UserID      uuid.UUID
	ValidateErr error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// GenerateToken implements auth.TokenService.
func (m *MockTokenService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

// ValidateToken implements auth.TokenService.
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.UserID, m.ValidateErr
}
