package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
)

// NoteService provides note-related operations. Promotion and discarding
// live in PromotionService.
type NoteService interface {
	CreateNote(ctx context.Context, userID uuid.UUID, req schema.CreateNoteRequest) (*domain.Note, error)
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)
	ListNotes(ctx context.Context, userID uuid.UUID, filters schema.NoteFilters) ([]*domain.Note, error)

	// UpdateNote patches the note's text and link and may change its status
	// to discarded. Status processed is only reachable through promotion.
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, req schema.UpdateNoteRequest) (*domain.Note, error)

	// DeleteNote removes the note. Notes linking to it lose the link; cards
	// promoted from it keep their provenance ID.
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

type noteServiceImpl struct {
	base
}

var _ NoteService = (*noteServiceImpl)(nil)

// NewNoteService creates a NoteService.
func NewNoteService(
	st store.Store,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (NoteService, error) {
	b, err := newBase("note_service", st, emitter, logger, opts)
	if err != nil {
		return nil, err
	}
	return &noteServiceImpl{base: b}, nil
}

func (s *noteServiceImpl) CreateNote(
	ctx context.Context,
	userID uuid.UUID,
	req schema.CreateNoteRequest,
) (*domain.Note, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	bookID, err := parseID("bookId", req.BookID)
	if err != nil {
		return nil, err
	}
	linked, err := parseOptionalID("linkedNoteId", req.LinkedNoteID)
	if err != nil {
		return nil, err
	}

	excerpt := domain.NewExcerpt(req.Title, req.Page, req.Context, req.Capture, req.Spark)
	note, err := domain.NewNote(userID, bookID, excerpt, linked, s.now())
	if err != nil {
		return nil, err
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Books().Get(ctx, userID, bookID); err != nil {
			return err
		}
		if linked != nil {
			if _, err := tx.Notes().Get(ctx, userID, *linked); err != nil {
				return err
			}
		}
		return tx.Notes().Create(ctx, note)
	})
	if err != nil {
		return nil, NewServiceError("create_note", "failed to save note", err)
	}

	s.emit(ctx, events.NoteCreated, userID, note.ID)
	return note, nil
}

func (s *noteServiceImpl) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	note, err := s.store.Notes().Get(ctx, userID, noteID)
	if err != nil {
		return nil, NewServiceError("get_note", "failed to load note", err)
	}
	return note, nil
}

func (s *noteServiceImpl) ListNotes(
	ctx context.Context,
	userID uuid.UUID,
	filters schema.NoteFilters,
) ([]*domain.Note, error) {
	var filter store.NoteFilter

	bookID, err := parseOptionalID("bookId", filters.BookID)
	if err != nil {
		return nil, err
	}
	filter.BookID = bookID

	if filters.Status != nil && strings.TrimSpace(*filters.Status) != "" {
		status := domain.NoteStatus(strings.TrimSpace(*filters.Status))
		if !status.Valid() {
			return nil, domain.ErrInvalidNoteStatus
		}
		filter.Status = &status
	}

	notes, err := s.store.Notes().List(ctx, userID, filter)
	if err != nil {
		return nil, NewServiceError("list_notes", "failed to list notes", err)
	}
	return notes, nil
}

func (s *noteServiceImpl) UpdateNote(
	ctx context.Context,
	userID, noteID uuid.UUID,
	req schema.UpdateNoteRequest,
) (*domain.Note, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := domain.NotePatch{
		ExcerptPatch: excerptPatch(req.Title, req.Page, req.Context, req.Capture, req.Spark),
	}
	if req.LinkedNoteID != nil {
		linked, err := parseOptionalID("linkedNoteId", req.LinkedNoteID)
		if err != nil {
			return nil, err
		}
		patch.LinkedNote = domain.IDPatch{Set: true, ID: linked}
	}

	var target *domain.NoteStatus
	if req.Status != nil {
		status := domain.NoteStatus(strings.TrimSpace(*req.Status))
		target = &status
	}

	var note *domain.Note
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		current, err := tx.Notes().GetForUpdate(ctx, userID, noteID)
		if err != nil {
			return err
		}

		if patch.LinkedNote.ID != nil && *patch.LinkedNote.ID != current.ID {
			if _, err := tx.Notes().Get(ctx, userID, *patch.LinkedNote.ID); err != nil {
				return err
			}
		}

		now := s.now()
		if err := current.ApplyPatch(patch, now); err != nil {
			return err
		}
		if target != nil {
			if err := current.ChangeStatus(*target, now); err != nil {
				return err
			}
		}

		if err := tx.Notes().Update(ctx, current); err != nil {
			return err
		}
		note = current
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_note", "failed to update note", err)
	}

	return note, nil
}

func (s *noteServiceImpl) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	if err := s.store.Notes().Delete(ctx, userID, noteID); err != nil {
		return NewServiceError("delete_note", "failed to delete note", err)
	}

	s.emit(ctx, events.NoteDeleted, userID, noteID)
	return nil
}
