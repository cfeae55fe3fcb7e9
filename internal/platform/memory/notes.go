package memory

import (
	"context"
	"fmt"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

type noteStore struct{ s *Store }

func (n noteStore) Create(ctx context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return n.s.write(ctx, func(d *dataset) error {
		if _, ok := d.notes[note.ID]; ok {
			return store.ErrDuplicate
		}
		if err := checkNoteRefs(d, note); err != nil {
			return err
		}
		d.notes[note.ID] = record[domain.Note]{value: *note, seq: d.next()}
		return nil
	})
}

func (n noteStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error) {
	var out *domain.Note
	err := n.s.read(ctx, func(d *dataset) error {
		r, ok := d.notes[id]
		if !ok || r.value.UserID != userID {
			return store.ErrNoteNotFound
		}
		v := r.value
		out = &v
		return nil
	})
	return out, err
}

// GetForUpdate is Get: the store mutex already serializes transactions.
func (n noteStore) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error) {
	return n.Get(ctx, userID, id)
}

func (n noteStore) Update(ctx context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return n.s.write(ctx, func(d *dataset) error {
		r, ok := d.notes[note.ID]
		if !ok || r.value.UserID != note.UserID {
			return store.ErrNoteNotFound
		}
		if err := checkNoteRefs(d, note); err != nil {
			return err
		}
		r.value = *note
		d.notes[note.ID] = r
		return nil
	})
}

func (n noteStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return n.s.write(ctx, func(d *dataset) error {
		r, ok := d.notes[id]
		if !ok || r.value.UserID != userID {
			return store.ErrNoteNotFound
		}
		deleteNote(d, id)
		return nil
	})
}

func (n noteStore) List(ctx context.Context, userID uuid.UUID, filter store.NoteFilter) ([]*domain.Note, error) {
	var out []*domain.Note
	err := n.s.read(ctx, func(d *dataset) error {
		notes := sortedValues(d.notes,
			func(v domain.Note) bool {
				if v.UserID != userID {
					return false
				}
				if filter.BookID != nil && v.BookID != *filter.BookID {
					return false
				}
				return filter.Status == nil || v.Status == *filter.Status
			},
			func(a, b domain.Note) bool { return byTime(a.CreatedAt, b.CreatedAt) })
		out = make([]*domain.Note, len(notes))
		for i := range notes {
			out[i] = &notes[i]
		}
		return nil
	})
	return out, err
}

func checkNoteRefs(d *dataset, note *domain.Note) error {
	if b, ok := d.books[note.BookID]; !ok || b.value.UserID != note.UserID {
		return fmt.Errorf("%w: book %s does not exist", store.ErrInvalidEntity, note.BookID)
	}
	if note.LinkedNoteID != nil {
		if l, ok := d.notes[*note.LinkedNoteID]; !ok || l.value.UserID != note.UserID {
			return fmt.Errorf("%w: linked note %s does not exist", store.ErrInvalidEntity, *note.LinkedNoteID)
		}
	}
	return nil
}

// deleteNote removes a note and clears links pointing at it.
func deleteNote(d *dataset, id uuid.UUID) {
	delete(d.notes, id)
	for otherID, r := range d.notes {
		if r.value.LinkedNoteID != nil && *r.value.LinkedNoteID == id {
			r.value.LinkedNoteID = nil
			d.notes[otherID] = r
		}
	}
}
