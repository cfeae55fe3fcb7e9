//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/postgres"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *postgres.Store {
	t.Helper()
	return testdb.OpenStore(t)
}

func TestPostgresStore_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	userID := uuid.New()

	book, err := domain.NewBook(userID, "The Left Hand of Darkness", nil, now)
	require.NoError(t, err)
	require.NoError(t, s.Books().Create(ctx, book))

	note, err := domain.NewNote(userID, book.ID, domain.NewExcerpt("Truth", "4", nil, nil, nil), nil, now)
	require.NoError(t, err)
	require.NoError(t, s.Notes().Create(ctx, note))

	card, err := domain.NewCard(userID, book.ID, note.Excerpt, &note.ID,
		map[string]string{"Why?": "Imagination"}, now)
	require.NoError(t, err)
	require.NoError(t, s.Cards().Create(ctx, card))

	bucket, err := domain.NewBucket(userID, "Ideas", now)
	require.NoError(t, err)
	require.NoError(t, s.Buckets().Create(ctx, bucket))

	clash, err := domain.NewBucket(userID, "IDEAS", now)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Buckets().Create(ctx, clash), store.ErrBucketNameExists)

	created, err := s.Buckets().Attach(ctx, userID, card.ID, bucket.ID, now)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = s.Buckets().Attach(ctx, userID, card.ID, bucket.ID, now)
	require.NoError(t, err)
	assert.False(t, created)

	found, err := s.Cards().List(ctx, userID, store.CardFilter{Search: "TRUTH", BucketID: &bucket.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Imagination", found[0].RetentionAnswers["Why?"])

	require.NoError(t, s.Books().Delete(ctx, userID, book.ID))
	_, err = s.Cards().Get(ctx, userID, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	_, err = s.Notes().Get(ctx, userID, note.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)

	byCard, err := s.Buckets().ListForCards(ctx, userID, []uuid.UUID{card.ID})
	require.NoError(t, err)
	assert.Empty(t, byCard)
}

func TestPostgresStore_RunInTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	book, err := domain.NewBook(userID, "Kindred", nil, time.Now())
	require.NoError(t, err)

	err = s.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		if err := tx.Books().Create(ctx, book); err != nil {
			return err
		}
		return domain.ErrTitleEmpty
	})
	require.ErrorIs(t, err, domain.ErrTitleEmpty)

	_, err = s.Books().Get(ctx, userID, book.ID)
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}
