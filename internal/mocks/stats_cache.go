package mocks

import (
	"context"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStatsCache is a testify mock of service.StatsCache.
type MockStatsCache struct {
	mock.Mock
}

// Get returns the configured stats, hit flag and error.
func (m *MockStatsCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Stats, bool, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*domain.Stats)
	return stats, args.Bool(1), args.Error(2)
}

// Set records the call and returns the configured error.
func (m *MockStatsCache) Set(ctx context.Context, userID uuid.UUID, stats *domain.Stats) error {
	args := m.Called(ctx, userID, stats)
	return args.Error(0)
}

// Invalidate records the call and returns the configured error.
func (m *MockStatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
