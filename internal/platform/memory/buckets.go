package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

type bucketStore struct{ s *Store }

func (b bucketStore) Create(ctx context.Context, bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return b.s.write(ctx, func(d *dataset) error {
		if _, ok := d.buckets[bucket.ID]; ok {
			return store.ErrDuplicate
		}
		if nameTaken(d, bucket) {
			return store.ErrBucketNameExists
		}
		d.buckets[bucket.ID] = record[domain.Bucket]{value: *bucket, seq: d.next()}
		return nil
	})
}

func (b bucketStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Bucket, error) {
	var out *domain.Bucket
	err := b.s.read(ctx, func(d *dataset) error {
		r, ok := d.buckets[id]
		if !ok || r.value.UserID != userID {
			return store.ErrBucketNotFound
		}
		v := r.value
		out = &v
		return nil
	})
	return out, err
}

func (b bucketStore) Update(ctx context.Context, bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return b.s.write(ctx, func(d *dataset) error {
		r, ok := d.buckets[bucket.ID]
		if !ok || r.value.UserID != bucket.UserID {
			return store.ErrBucketNotFound
		}
		if nameTaken(d, bucket) {
			return store.ErrBucketNameExists
		}
		r.value = *bucket
		d.buckets[bucket.ID] = r
		return nil
	})
}

func (b bucketStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return b.s.write(ctx, func(d *dataset) error {
		r, ok := d.buckets[id]
		if !ok || r.value.UserID != userID {
			return store.ErrBucketNotFound
		}
		delete(d.buckets, id)
		for key := range d.memberships {
			if key.bucketID == id {
				delete(d.memberships, key)
			}
		}
		return nil
	})
}

func (b bucketStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Bucket, error) {
	var out []*domain.Bucket
	err := b.s.read(ctx, func(d *dataset) error {
		buckets := sortedValues(d.buckets,
			func(v domain.Bucket) bool { return v.UserID == userID },
			func(a, b domain.Bucket) bool { return byTime(a.CreatedAt, b.CreatedAt) })
		out = make([]*domain.Bucket, len(buckets))
		for i := range buckets {
			out[i] = &buckets[i]
		}
		return nil
	})
	return out, err
}

func (b bucketStore) Attach(ctx context.Context, userID, cardID, bucketID uuid.UUID, at time.Time) (bool, error) {
	created := false
	err := b.s.write(ctx, func(d *dataset) error {
		if c, ok := d.cards[cardID]; !ok || c.value.UserID != userID {
			return store.ErrCardNotFound
		}
		if bk, ok := d.buckets[bucketID]; !ok || bk.value.UserID != userID {
			return store.ErrBucketNotFound
		}
		key := membershipKey{cardID: cardID, bucketID: bucketID}
		if _, ok := d.memberships[key]; ok {
			return nil
		}
		d.memberships[key] = membership{userID: userID, createdAt: at.UTC()}
		created = true
		return nil
	})
	return created, err
}

func (b bucketStore) Detach(ctx context.Context, userID, cardID, bucketID uuid.UUID) (bool, error) {
	removed := false
	err := b.s.write(ctx, func(d *dataset) error {
		key := membershipKey{cardID: cardID, bucketID: bucketID}
		m, ok := d.memberships[key]
		if !ok || m.userID != userID {
			return nil
		}
		delete(d.memberships, key)
		removed = true
		return nil
	})
	return removed, err
}

func (b bucketStore) ListForCard(ctx context.Context, userID, cardID uuid.UUID) ([]*domain.Bucket, error) {
	byCard, err := b.ListForCards(ctx, userID, []uuid.UUID{cardID})
	if err != nil {
		return nil, err
	}
	if buckets, ok := byCard[cardID]; ok {
		return buckets, nil
	}
	return []*domain.Bucket{}, nil
}

func (b bucketStore) ListForCards(
	ctx context.Context,
	userID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID][]*domain.Bucket, error) {
	out := make(map[uuid.UUID][]*domain.Bucket)
	err := b.s.read(ctx, func(d *dataset) error {
		wanted := make(map[uuid.UUID]struct{}, len(cardIDs))
		for _, id := range cardIDs {
			wanted[id] = struct{}{}
		}

		buckets := sortedValues(d.buckets,
			func(v domain.Bucket) bool { return v.UserID == userID },
			func(a, b domain.Bucket) bool { return byTime(a.CreatedAt, b.CreatedAt) })
		for i := range buckets {
			for cardID := range wanted {
				m, ok := d.memberships[membershipKey{cardID: cardID, bucketID: buckets[i].ID}]
				if !ok || m.userID != userID {
					continue
				}
				v := buckets[i]
				out[cardID] = append(out[cardID], &v)
			}
		}
		return nil
	})
	return out, err
}

func nameTaken(d *dataset, bucket *domain.Bucket) bool {
	key := bucket.NameKey()
	for id, r := range d.buckets {
		if id != bucket.ID && r.value.UserID == bucket.UserID && r.value.NameKey() == key {
			return true
		}
	}
	return false
}
