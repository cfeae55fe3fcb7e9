package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
)

// PromotionService moves notes out of the inbox.
type PromotionService interface {
	// PromoteNote creates a card from an inbox note and marks the note
	// processed. Fields omitted from req take the note's values. Returns a
	// conflict error when the note is not in the inbox.
	PromoteNote(ctx context.Context, userID, noteID uuid.UUID, req schema.PromoteNoteRequest) (*domain.Card, error)

	// DiscardNote moves an inbox note to discarded.
	DiscardNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)
}

type promotionServiceImpl struct {
	base
}

var _ PromotionService = (*promotionServiceImpl)(nil)

// NewPromotionService creates a PromotionService.
func NewPromotionService(
	st store.Store,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (PromotionService, error) {
	b, err := newBase("promotion_service", st, emitter, logger, opts)
	if err != nil {
		return nil, err
	}
	return &promotionServiceImpl{base: b}, nil
}

func (s *promotionServiceImpl) PromoteNote(
	ctx context.Context,
	userID, noteID uuid.UUID,
	req schema.PromoteNoteRequest,
) (*domain.Card, error) {
	log := s.log(ctx).With(slog.String("note_id", noteID.String()))

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	bucketIDs, err := parseIDs("bucketIds", req.BucketIDs)
	if err != nil {
		return nil, err
	}

	var card *domain.Card
	err = s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		note, err := tx.Notes().GetForUpdate(ctx, userID, noteID)
		if err != nil {
			return err
		}
		if note.Status != domain.NoteStatusInbox {
			return domain.ErrNoteNotInbox
		}

		now := s.now()
		excerpt := note.Excerpt.Apply(excerptPatch(req.Title, req.Page, req.Context, req.Capture, req.Spark))
		card, err = domain.NewCard(userID, note.BookID, excerpt, &note.ID, req.RetentionAnswers, now)
		if err != nil {
			return err
		}

		return promote(ctx, tx, note, card, bucketIDs, now)
	})
	if err != nil {
		log.Debug("promotion failed", slog.String("error", err.Error()))
		return nil, NewServiceError("promote_note", "failed to promote note", err)
	}

	log.Info("note promoted", slog.String("card_id", card.ID.String()))
	s.emit(ctx, events.NotePromoted, userID, noteID)
	s.emit(ctx, events.CardCreated, userID, card.ID)
	return card, nil
}

func (s *promotionServiceImpl) DiscardNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	var note *domain.Note
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		current, err := tx.Notes().GetForUpdate(ctx, userID, noteID)
		if err != nil {
			return err
		}
		if err := current.Discard(s.now()); err != nil {
			return err
		}
		if err := tx.Notes().Update(ctx, current); err != nil {
			return err
		}
		note = current
		return nil
	})
	if err != nil {
		return nil, NewServiceError("discard_note", "failed to discard note", err)
	}
	return note, nil
}

// promote stores card for an inbox note, attaches its buckets and marks
// the note processed. It must run inside a transaction holding the note.
func promote(
	ctx context.Context,
	tx store.Store,
	note *domain.Note,
	card *domain.Card,
	bucketIDs []uuid.UUID,
	now time.Time,
) error {
	if card.BookID != note.BookID {
		return domain.ErrCardBookMismatch
	}
	if err := note.MarkProcessed(now); err != nil {
		return err
	}

	if err := tx.Cards().Create(ctx, card); err != nil {
		return err
	}
	buckets, err := syncCardBuckets(ctx, tx, card.UserID, card.ID, bucketIDs, now)
	if err != nil {
		return err
	}
	card.Buckets = buckets

	return tx.Notes().Update(ctx, note)
}
