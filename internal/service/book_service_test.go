package service

import (
	"context"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/domain/activity"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServicesRequireStore(t *testing.T) {
	_, err := NewBookService(nil, nil, nil)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_service", svcErr.Operation)

	_, err = NewNoteService(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewPromotionService(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewCardService(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewBucketService(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewSettingsService(nil, nil, nil)
	assert.Error(t, err)
	_, err = NewStatsService(nil, nil, activity.NewCalendar(nil), nil)
	assert.Error(t, err)
}

func TestBookLifecycle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)

	book, err := f.books.CreateBook(ctx, userID, schema.CreateBookRequest{
		Title:  "  Dune ",
		Author: strPtr("Frank Herbert"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Frank Herbert", *book.Author)
	assert.Equal(t, domain.BookStatusReading, book.Status)
	assert.Equal(t, testNow, book.CreatedAt)

	f.clock.Advance(time.Hour)
	updated, err := f.books.UpdateBook(ctx, userID, book.ID, schema.UpdateBookRequest{
		Author: strPtr(""),
		Status: strPtr("finished"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Nil(t, updated.Author)
	assert.Equal(t, domain.BookStatusFinished, updated.Status)
	assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)

	got, err := f.books.GetBook(ctx, userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	books, err := f.books.ListBooks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.ID, books[0].ID)

	assert.Equal(t, []string{events.BookCreated, events.BookUpdated}, f.recorder.Types())
}

func TestUpdateBookErrors(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)
	book := f.book(t, userID, "Dune")

	_, err := f.books.UpdateBook(ctx, userID, book.ID, schema.UpdateBookRequest{Status: strPtr("abandoned")})
	assert.ErrorIs(t, err, domain.ErrInvalidBookStatus)

	_, err = f.books.UpdateBook(ctx, userID, book.ID, schema.UpdateBookRequest{Title: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.books.UpdateBook(ctx, uuid.New(), book.ID, schema.UpdateBookRequest{Title: strPtr("Mine")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.books.GetBook(ctx, userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, domain.BookStatusReading, got.Status)

	_, err = f.books.CreateBook(ctx, userID, schema.CreateBookRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	assert.Equal(t, "title is required", verr.Error())
}

func TestDeleteBookCascades(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)

	dune := f.book(t, userID, "Dune")
	emma := f.book(t, userID, "Emma")
	themes := f.bucket(t, userID, "Themes")

	duneNote := f.note(t, userID, dune.ID, "Fear")
	emmaNote, err := f.notes.CreateNote(ctx, userID, schema.CreateNoteRequest{
		BookID:       emma.ID.String(),
		Title:        "Matchmaking",
		Page:         "1",
		LinkedNoteID: strPtr(duneNote.ID.String()),
	})
	require.NoError(t, err)
	duneCard := f.card(t, userID, dune.ID, "Spice", themes)
	emmaCard := f.card(t, userID, emma.ID, "Match", themes)

	assert.ErrorIs(t, f.books.DeleteBook(ctx, uuid.New(), dune.ID), domain.ErrNotFound)
	require.NoError(t, f.books.DeleteBook(ctx, userID, dune.ID))

	_, err = f.books.GetBook(ctx, userID, dune.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.notes.GetNote(ctx, userID, duneNote.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.cards.GetCard(ctx, userID, duneCard.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The bucket survives with only the other book's card.
	members, err := f.buckets.ListCardsInBucket(ctx, userID, themes.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, emmaCard.ID, members[0].ID)

	// Links into the deleted book are cleared.
	survivor, err := f.notes.GetNote(ctx, userID, emmaNote.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.LinkedNoteID)

	require.NoError(t, f.books.DeleteBook(ctx, userID, emma.ID))
	members, err = f.buckets.ListCardsInBucket(ctx, userID, themes.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	buckets, err := f.buckets.ListBuckets(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, buckets, 1)
}
