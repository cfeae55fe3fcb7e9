package service

import (
	"context"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

// syncCardBuckets makes the card's memberships equal desired using the
// minimal set of attach and detach calls, and returns the resulting
// buckets. An unchanged set performs no writes. Attach rejects buckets the
// user does not own with store.ErrBucketNotFound.
func syncCardBuckets(
	ctx context.Context,
	tx store.Store,
	userID, cardID uuid.UUID,
	desired []uuid.UUID,
	at time.Time,
) ([]*domain.Bucket, error) {
	current, err := tx.Buckets().ListForCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	have := make(map[uuid.UUID]struct{}, len(current))
	for _, b := range current {
		have[b.ID] = struct{}{}
	}
	want := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	changed := false
	for _, id := range desired {
		if _, ok := have[id]; ok {
			continue
		}
		if _, err := tx.Buckets().Attach(ctx, userID, cardID, id, at); err != nil {
			return nil, err
		}
		changed = true
	}
	for _, b := range current {
		if _, ok := want[b.ID]; ok {
			continue
		}
		if _, err := tx.Buckets().Detach(ctx, userID, cardID, b.ID); err != nil {
			return nil, err
		}
		changed = true
	}

	if !changed {
		return current, nil
	}
	return tx.Buckets().ListForCard(ctx, userID, cardID)
}

// loadBuckets fills in the Buckets of each card.
func loadBuckets(ctx context.Context, st store.Store, userID uuid.UUID, cards ...*domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	byCard, err := st.Buckets().ListForCards(ctx, userID, ids)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if buckets, ok := byCard[c.ID]; ok {
			c.Buckets = buckets
		} else {
			c.Buckets = []*domain.Bucket{}
		}
	}
	return nil
}
