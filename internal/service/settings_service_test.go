package service

import (
	"context"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)

	defaults, err := f.settings.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, defaults.UserID)
	assert.NotNil(t, defaults.RetentionQuestions)
	assert.Empty(t, defaults.RetentionQuestions)

	saved, err := f.settings.UpdateSettings(ctx, userID, schema.UpdateSettingsRequest{
		RetentionQuestions: []string{" What surprised me? ", "How would I explain it?"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"What surprised me?", "How would I explain it?"}, saved.RetentionQuestions)
	assert.Equal(t, testNow, saved.CreatedAt)

	f.clock.Advance(time.Hour)
	replaced, err := f.settings.UpdateSettings(ctx, userID, schema.UpdateSettingsRequest{
		RetentionQuestions: []string{},
	})
	require.NoError(t, err)
	assert.Empty(t, replaced.RetentionQuestions)
	assert.Equal(t, testNow, replaced.CreatedAt)
	assert.Equal(t, testNow.Add(time.Hour), replaced.UpdatedAt)

	got, err := f.settings.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got.RetentionQuestions)

	other, err := f.settings.GetSettings(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other.RetentionQuestions)
}

func TestUpdateSettingsValidation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)

	_, err := f.settings.UpdateSettings(ctx, userID, schema.UpdateSettingsRequest{
		RetentionQuestions: []string{"Fine", ""},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "retentionQuestions[1]", verr.Field)

	_, err = f.settings.UpdateSettings(ctx, userID, schema.UpdateSettingsRequest{
		RetentionQuestions: []string{"Fine", "   "},
	})
	assert.ErrorIs(t, err, domain.ErrRetentionQuestionEmpty)

	_, err = f.settings.UpdateSettings(ctx, userID, schema.UpdateSettingsRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "retentionQuestions", verr.Field)

	got, err := f.settings.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, got.RetentionQuestions)
}
