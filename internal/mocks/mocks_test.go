package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMockTokenServiceDefaults(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	m := &MockTokenService{Token: "tok", UserID: userID}

	token, err := m.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	got, err := m.ValidateToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestMockTokenServiceFuncs(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	m := &MockTokenService{
		Token: "ignored",
		ValidateTokenFn: func(context.Context, string) (uuid.UUID, error) {
			return uuid.Nil, boom
		},
	}

	_, err := m.ValidateToken(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestMockStatsCache(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	stats := &domain.Stats{TotalBooks: 2}

	m := new(MockStatsCache)
	m.On("Get", mock.Anything, userID).Return(stats, true, nil).Once()
	m.On("Get", mock.Anything, userID).Return(nil, false, nil).Once()

	got, hit, err := m.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, stats, got)

	got, hit, err = m.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
	m.AssertExpectations(t)
}
