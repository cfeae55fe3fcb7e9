package memory

import (
	"context"
	"fmt"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

type bookStore struct{ s *Store }

func (b bookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return b.s.write(ctx, func(d *dataset) error {
		if _, ok := d.books[book.ID]; ok {
			return store.ErrDuplicate
		}
		d.books[book.ID] = record[domain.Book]{value: *book, seq: d.next()}
		return nil
	})
}

func (b bookStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Book, error) {
	var out *domain.Book
	err := b.s.read(ctx, func(d *dataset) error {
		r, ok := d.books[id]
		if !ok || r.value.UserID != userID {
			return store.ErrBookNotFound
		}
		v := r.value
		out = &v
		return nil
	})
	return out, err
}

func (b bookStore) Update(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return b.s.write(ctx, func(d *dataset) error {
		r, ok := d.books[book.ID]
		if !ok || r.value.UserID != book.UserID {
			return store.ErrBookNotFound
		}
		r.value = *book
		d.books[book.ID] = r
		return nil
	})
}

func (b bookStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return b.s.write(ctx, func(d *dataset) error {
		r, ok := d.books[id]
		if !ok || r.value.UserID != userID {
			return store.ErrBookNotFound
		}

		for cardID, c := range d.cards {
			if c.value.BookID == id {
				deleteCard(d, cardID)
			}
		}
		for noteID, n := range d.notes {
			if n.value.BookID == id {
				deleteNote(d, noteID)
			}
		}
		delete(d.books, id)
		return nil
	})
}

func (b bookStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	var out []*domain.Book
	err := b.s.read(ctx, func(d *dataset) error {
		books := sortedValues(d.books,
			func(v domain.Book) bool { return v.UserID == userID },
			func(a, b domain.Book) bool { return byTime(a.CreatedAt, b.CreatedAt) })
		out = make([]*domain.Book, len(books))
		for i := range books {
			out[i] = &books[i]
		}
		return nil
	})
	return out, err
}

func (b bookStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	err := b.s.read(ctx, func(d *dataset) error {
		for _, r := range d.books {
			if r.value.UserID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}
