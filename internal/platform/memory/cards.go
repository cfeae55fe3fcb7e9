package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

type cardStore struct{ s *Store }

func (c cardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return c.s.write(ctx, func(d *dataset) error {
		if _, ok := d.cards[card.ID]; ok {
			return store.ErrDuplicate
		}
		if b, ok := d.books[card.BookID]; !ok || b.value.UserID != card.UserID {
			return fmt.Errorf("%w: book %s does not exist", store.ErrInvalidEntity, card.BookID)
		}
		d.cards[card.ID] = record[domain.Card]{value: *copyCard(*card), seq: d.next()}
		return nil
	})
}

func (c cardStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Card, error) {
	var out *domain.Card
	err := c.s.read(ctx, func(d *dataset) error {
		r, ok := d.cards[id]
		if !ok || r.value.UserID != userID {
			return store.ErrCardNotFound
		}
		out = copyCard(r.value)
		return nil
	})
	return out, err
}

func (c cardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return c.s.write(ctx, func(d *dataset) error {
		r, ok := d.cards[card.ID]
		if !ok || r.value.UserID != card.UserID {
			return store.ErrCardNotFound
		}
		r.value = *copyCard(*card)
		d.cards[card.ID] = r
		return nil
	})
}

func (c cardStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return c.s.write(ctx, func(d *dataset) error {
		r, ok := d.cards[id]
		if !ok || r.value.UserID != userID {
			return store.ErrCardNotFound
		}
		deleteCard(d, id)
		return nil
	})
}

func (c cardStore) List(ctx context.Context, userID uuid.UUID, filter store.CardFilter) ([]*domain.Card, error) {
	var out []*domain.Card
	err := c.s.read(ctx, func(d *dataset) error {
		search := strings.ToLower(filter.Search)
		cards := sortedValues(d.cards,
			func(v domain.Card) bool {
				if v.UserID != userID {
					return false
				}
				if filter.BookID != nil && v.BookID != *filter.BookID {
					return false
				}
				if filter.BucketID != nil {
					if _, ok := d.memberships[membershipKey{cardID: v.ID, bucketID: *filter.BucketID}]; !ok {
						return false
					}
				}
				return search == "" || matchesSearch(v, search)
			},
			func(a, b domain.Card) bool { return byTime(a.CreatedAt, b.CreatedAt) })

		cards = paginate(cards, filter.Offset, filter.Limit)
		out = make([]*domain.Card, len(cards))
		for i := range cards {
			out[i] = copyCard(cards[i])
		}
		return nil
	})
	return out, err
}

func (c cardStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	err := c.s.read(ctx, func(d *dataset) error {
		for _, r := range d.cards {
			if r.value.UserID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (c cardStore) CreatedTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var out []time.Time
	err := c.s.read(ctx, func(d *dataset) error {
		for _, r := range d.cards {
			if r.value.UserID == userID {
				out = append(out, r.value.CreatedAt)
			}
		}
		return nil
	})
	return out, err
}

// matchesSearch expects needle to be lower-cased already.
func matchesSearch(c domain.Card, needle string) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) {
		return true
	}
	for _, field := range []*string{c.Capture, c.Spark} {
		if field != nil && strings.Contains(strings.ToLower(*field), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func deleteCard(d *dataset, id uuid.UUID) {
	delete(d.cards, id)
	for key := range d.memberships {
		if key.cardID == id {
			delete(d.memberships, key)
		}
	}
}
