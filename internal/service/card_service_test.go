package service

import (
	"context"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("with buckets", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		themes := f.bucket(t, userID, "Themes")
		f.recorder.Reset()

		card, err := f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
			BookID:           book.ID.String(),
			Title:            "  Spice  ",
			Page:             "42",
			Context:          strPtr(""),
			RetentionAnswers: map[string]string{"Q": "A"},
			BucketIDs:        []string{themes.ID.String()},
		})
		require.NoError(t, err)

		assert.Equal(t, "Spice", card.Title)
		assert.Nil(t, card.Context)
		assert.Nil(t, card.LinkedNoteID)
		assert.Equal(t, []uuid.UUID{themes.ID}, bucketIDs(card.Buckets))
		assert.Equal(t, []string{events.CardCreated}, f.recorder.Types())

		got, err := f.cards.GetCard(ctx, userID, card.ID)
		require.NoError(t, err)
		assert.Equal(t, card.Title, got.Title)
		assert.Equal(t, []uuid.UUID{themes.ID}, bucketIDs(got.Buckets))
	})

	t.Run("linked note is promoted", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		note := f.note(t, userID, book.ID, "Fear")
		f.recorder.Reset()

		card, err := f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
			BookID:       book.ID.String(),
			Title:        "Fear",
			Page:         "12",
			LinkedNoteID: strPtr(note.ID.String()),
		})
		require.NoError(t, err)
		require.NotNil(t, card.LinkedNoteID)
		assert.Equal(t, note.ID, *card.LinkedNoteID)

		stored, err := f.notes.GetNote(ctx, userID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.NoteStatusProcessed, stored.Status)
		assert.Equal(t, []string{events.NotePromoted, events.CardCreated}, f.recorder.Types())

		_, err = f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
			BookID:       book.ID.String(),
			Title:        "Again",
			Page:         "12",
			LinkedNoteID: strPtr(note.ID.String()),
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("linked note from another book", func(t *testing.T) {
		f := newFixture(t)
		dune := f.book(t, userID, "Dune")
		emma := f.book(t, userID, "Emma")
		note := f.note(t, userID, emma.ID, "Matchmaking")

		_, err := f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
			BookID:       dune.ID.String(),
			Title:        "Fear",
			Page:         "12",
			LinkedNoteID: strPtr(note.ID.String()),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrCardBookMismatch)

		stored, err := f.notes.GetNote(ctx, userID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.NoteStatusInbox, stored.Status)
	})

	t.Run("missing book", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
			BookID: uuid.NewString(),
			Title:  "Orphan",
			Page:   "1",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("another user's book", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, uuid.New(), "Theirs")

		_, err := f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
			BookID: book.ID.String(),
			Title:  "Mine",
			Page:   "1",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")

		tests := []struct {
			name  string
			req   schema.CreateCardRequest
			field string
		}{
			{
				name:  "missing title",
				req:   schema.CreateCardRequest{BookID: book.ID.String(), Page: "1"},
				field: "title",
			},
			{
				name:  "blank title",
				req:   schema.CreateCardRequest{BookID: book.ID.String(), Title: "   ", Page: "1"},
				field: "title",
			},
			{
				name:  "bad book id",
				req:   schema.CreateCardRequest{BookID: "not-a-uuid", Title: "T", Page: "1"},
				field: "bookId",
			},
			{
				name: "bad bucket id",
				req: schema.CreateCardRequest{
					BookID:    book.ID.String(),
					Title:     "T",
					Page:      "1",
					BucketIDs: []string{uuid.NewString(), "x"},
				},
				field: "bucketIds[1]",
			},
			{
				name: "bad linked note id",
				req: schema.CreateCardRequest{
					BookID:       book.ID.String(),
					Title:        "T",
					Page:         "1",
					LinkedNoteID: strPtr("x"),
				},
				field: "linkedNoteId",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.cards.CreateCard(ctx, userID, tt.req)
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
			})
		}
	})
}

func TestUpdateCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("same bucket set writes nothing", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		a := f.bucket(t, userID, "A")
		b := f.bucket(t, userID, "B")
		card := f.card(t, userID, book.ID, "Spice", a, b)
		f.counts.reset()

		updated, err := f.cards.UpdateCard(ctx, userID, card.ID, schema.UpdateCardRequest{
			BucketIDs: []string{b.ID.String(), a.ID.String()},
		})
		require.NoError(t, err)

		attaches, detaches := f.counts.snapshot()
		assert.Zero(t, attaches)
		assert.Zero(t, detaches)
		assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, bucketIDs(updated.Buckets))
	})

	t.Run("replacement applies the minimal diff", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		a := f.bucket(t, userID, "A")
		b := f.bucket(t, userID, "B")
		c := f.bucket(t, userID, "C")
		card := f.card(t, userID, book.ID, "Spice", a, b)
		f.counts.reset()

		updated, err := f.cards.UpdateCard(ctx, userID, card.ID, schema.UpdateCardRequest{
			BucketIDs: []string{b.ID.String(), c.ID.String()},
		})
		require.NoError(t, err)

		attaches, detaches := f.counts.snapshot()
		assert.Equal(t, 1, attaches)
		assert.Equal(t, 1, detaches)
		assert.ElementsMatch(t, []uuid.UUID{b.ID, c.ID}, bucketIDs(updated.Buckets))

		inA, err := f.buckets.ListCardsInBucket(ctx, userID, a.ID)
		require.NoError(t, err)
		assert.Empty(t, inA)
	})

	t.Run("empty list clears buckets", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		a := f.bucket(t, userID, "A")
		card := f.card(t, userID, book.ID, "Spice", a)

		updated, err := f.cards.UpdateCard(ctx, userID, card.ID, schema.UpdateCardRequest{BucketIDs: []string{}})
		require.NoError(t, err)
		assert.Empty(t, updated.Buckets)
	})

	t.Run("omitted buckets are kept", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		a := f.bucket(t, userID, "A")
		card := f.card(t, userID, book.ID, "Spice", a)
		f.counts.reset()
		f.clock.Advance(time.Hour)

		updated, err := f.cards.UpdateCard(ctx, userID, card.ID, schema.UpdateCardRequest{
			Title:            strPtr("Melange"),
			Capture:          strPtr(""),
			RetentionAnswers: map[string]string{"Q": "A"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Melange", updated.Title)
		assert.Nil(t, updated.Capture)
		assert.Equal(t, map[string]string{"Q": "A"}, updated.RetentionAnswers)
		assert.Equal(t, []uuid.UUID{a.ID}, bucketIDs(updated.Buckets))
		assert.Equal(t, testNow, updated.CreatedAt)
		assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)

		attaches, detaches := f.counts.snapshot()
		assert.Zero(t, attaches)
		assert.Zero(t, detaches)
	})

	t.Run("foreign bucket leaves card untouched", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		a := f.bucket(t, userID, "A")
		foreign := f.bucket(t, uuid.New(), "Theirs")
		card := f.card(t, userID, book.ID, "Spice", a)

		_, err := f.cards.UpdateCard(ctx, userID, card.ID, schema.UpdateCardRequest{
			Title:     strPtr("Changed"),
			BucketIDs: []string{foreign.ID.String()},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		got, err := f.cards.GetCard(ctx, userID, card.ID)
		require.NoError(t, err)
		assert.Equal(t, "Spice", got.Title)
		assert.Equal(t, []uuid.UUID{a.ID}, bucketIDs(got.Buckets))
	})

	t.Run("other user's card", func(t *testing.T) {
		f := newFixture(t)
		book := f.book(t, userID, "Dune")
		card := f.card(t, userID, book.ID, "Spice")

		_, err := f.cards.UpdateCard(ctx, uuid.New(), card.ID, schema.UpdateCardRequest{Title: strPtr("Mine")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListCards(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)

	dune := f.book(t, userID, "Dune")
	emma := f.book(t, userID, "Emma")
	themes := f.bucket(t, userID, "Themes")

	spice := f.card(t, userID, dune.ID, "The Spice must flow", themes)
	f.clock.Advance(time.Minute)
	worms := f.card(t, userID, dune.ID, "Sandworms")
	f.clock.Advance(time.Minute)
	_, err := f.cards.CreateCard(ctx, userID, schema.CreateCardRequest{
		BookID:  emma.ID.String(),
		Title:   "Matchmaking",
		Page:    "3",
		Capture: strPtr("a SPICY remark"),
	})
	require.NoError(t, err)
	other := uuid.New()
	f.card(t, other, f.book(t, other, "Other").ID, "Spice of others")

	titles := func(cards []*domain.Card) []string {
		out := make([]string, len(cards))
		for i, c := range cards {
			out[i] = c.Title
		}
		return out
	}

	tests := []struct {
		name    string
		filters schema.CardFilters
		want    []string
	}{
		{
			name: "all in creation order",
			want: []string{"The Spice must flow", "Sandworms", "Matchmaking"},
		},
		{
			name:    "search is case-insensitive across fields",
			filters: schema.CardFilters{Search: strPtr("spic")},
			want:    []string{"The Spice must flow", "Matchmaking"},
		},
		{
			name:    "by book",
			filters: schema.CardFilters{BookID: strPtr(dune.ID.String())},
			want:    []string{"The Spice must flow", "Sandworms"},
		},
		{
			name:    "by bucket",
			filters: schema.CardFilters{BucketID: strPtr(themes.ID.String())},
			want:    []string{"The Spice must flow"},
		},
		{
			name:    "limit and offset",
			filters: schema.CardFilters{Limit: intPtr(1), Offset: intPtr(1)},
			want:    []string{"Sandworms"},
		},
		{
			name:    "offset past the end",
			filters: schema.CardFilters{Offset: intPtr(10)},
			want:    []string{},
		},
		{
			name:    "empty search matches all",
			filters: schema.CardFilters{Search: strPtr("")},
			want:    []string{"The Spice must flow", "Sandworms", "Matchmaking"},
		},
		{
			name:    "trailing space is part of the needle",
			filters: schema.CardFilters{Search: strPtr("spice ")},
			want:    []string{"The Spice must flow"},
		},
		{
			name:    "whitespace search matches literally",
			filters: schema.CardFilters{Search: strPtr("  ")},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := f.cards.ListCards(ctx, userID, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(cards))
		})
	}

	t.Run("buckets are hydrated", func(t *testing.T) {
		cards, err := f.cards.ListCards(ctx, userID, schema.CardFilters{BookID: strPtr(dune.ID.String())})
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, spice.ID, cards[0].ID)
		assert.Equal(t, []uuid.UUID{themes.ID}, bucketIDs(cards[0].Buckets))
		assert.Equal(t, worms.ID, cards[1].ID)
		assert.NotNil(t, cards[1].Buckets)
		assert.Empty(t, cards[1].Buckets)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		for _, filters := range []schema.CardFilters{
			{Limit: intPtr(-1)},
			{Limit: intPtr(MaxCardPageSize + 1)},
			{Offset: intPtr(-5)},
		} {
			_, err := f.cards.ListCards(ctx, userID, filters)
			assert.ErrorIs(t, err, ErrInvalidPagination)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("invalid bucket filter", func(t *testing.T) {
		_, err := f.cards.ListCards(ctx, userID, schema.CardFilters{BucketID: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newFixture(t)
	book := f.book(t, userID, "Dune")
	themes := f.bucket(t, userID, "Themes")
	card := f.card(t, userID, book.ID, "Spice", themes)

	err := f.cards.DeleteCard(ctx, uuid.New(), card.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.cards.DeleteCard(ctx, userID, card.ID))

	_, err = f.cards.GetCard(ctx, userID, card.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	members, err := f.buckets.ListCardsInBucket(ctx, userID, themes.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	err = f.cards.DeleteCard(ctx, userID, card.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
