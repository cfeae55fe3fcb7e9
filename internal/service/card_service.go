package service

import (
	"context"
	"log/slog"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
)

// CardService provides card-related operations. Returned cards carry
// their buckets.
type CardService interface {
	// CreateCard creates a card. When req names a linked note, that note
	// is promoted along with it and must be an inbox note of the same book.
	CreateCard(ctx context.Context, userID uuid.UUID, req schema.CreateCardRequest) (*domain.Card, error)

	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// ListCards returns the cards matching filters in creation order.
	ListCards(ctx context.Context, userID uuid.UUID, filters schema.CardFilters) ([]*domain.Card, error)

	// UpdateCard patches a card. A present bucketIds list replaces the
	// card's buckets using the minimal attach/detach diff.
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req schema.UpdateCardRequest) (*domain.Card, error)

	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

// Pagination bounds for ListCards.
const (
	MaxCardPageSize = 500
)

// ErrInvalidPagination is returned for negative or oversized paging values.
var ErrInvalidPagination = domain.NewValidationError("limit", "must be between 0 and 500; offset must not be negative", nil)

type cardServiceImpl struct {
	base
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a CardService.
func NewCardService(
	st store.Store,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (CardService, error) {
	b, err := newBase("card_service", st, emitter, logger, opts)
	if err != nil {
		return nil, err
	}
	return &cardServiceImpl{base: b}, nil
}

func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	req schema.CreateCardRequest,
) (*domain.Card, error) {
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
	bucketIDs, err := parseIDs("bucketIds", req.BucketIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	excerpt := domain.NewExcerpt(req.Title, req.Page, req.Context, req.Capture, req.Spark)
	card, err := domain.NewCard(userID, bookID, excerpt, linked, req.RetentionAnswers, now)
	if err != nil {
		return nil, err
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Books().Get(ctx, userID, bookID); err != nil {
			return err
		}

		if linked != nil {
			note, err := tx.Notes().GetForUpdate(ctx, userID, *linked)
			if err != nil {
				return err
			}
			return promote(ctx, tx, note, card, bucketIDs, now)
		}

		if err := tx.Cards().Create(ctx, card); err != nil {
			return err
		}
		buckets, err := syncCardBuckets(ctx, tx, userID, card.ID, bucketIDs, now)
		if err != nil {
			return err
		}
		card.Buckets = buckets
		return nil
	})
	if err != nil {
		return nil, NewServiceError("create_card", "failed to create card", err)
	}

	if linked != nil {
		s.emit(ctx, events.NotePromoted, userID, *linked)
	}
	s.emit(ctx, events.CardCreated, userID, card.ID)
	return card, nil
}

func (s *cardServiceImpl) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.store.Cards().Get(ctx, userID, cardID)
	if err != nil {
		return nil, NewServiceError("get_card", "failed to load card", err)
	}
	if err := loadBuckets(ctx, s.store, userID, card); err != nil {
		return nil, NewServiceError("get_card", "failed to load card buckets", err)
	}
	return card, nil
}

func (s *cardServiceImpl) ListCards(
	ctx context.Context,
	userID uuid.UUID,
	filters schema.CardFilters,
) ([]*domain.Card, error) {
	if err := validateRequest(filters); err != nil {
		return nil, err
	}
	filter, err := cardFilter(filters)
	if err != nil {
		return nil, err
	}

	cards, err := s.store.Cards().List(ctx, userID, filter)
	if err != nil {
		return nil, NewServiceError("list_cards", "failed to list cards", err)
	}
	if err := loadBuckets(ctx, s.store, userID, cards...); err != nil {
		return nil, NewServiceError("list_cards", "failed to load card buckets", err)
	}
	return cards, nil
}

func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	req schema.UpdateCardRequest,
) (*domain.Card, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var bucketIDs []uuid.UUID
	if req.BucketIDs != nil {
		ids, err := parseIDs("bucketIds", req.BucketIDs)
		if err != nil {
			return nil, err
		}
		bucketIDs = ids
	}

	patch := domain.CardPatch{
		ExcerptPatch:     excerptPatch(req.Title, req.Page, req.Context, req.Capture, req.Spark),
		RetentionAnswers: req.RetentionAnswers,
	}

	var card *domain.Card
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		current, err := tx.Cards().Get(ctx, userID, cardID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := current.ApplyPatch(patch, now); err != nil {
			return err
		}
		if err := tx.Cards().Update(ctx, current); err != nil {
			return err
		}

		if req.BucketIDs != nil {
			current.Buckets, err = syncCardBuckets(ctx, tx, userID, cardID, bucketIDs, now)
		} else {
			current.Buckets, err = tx.Buckets().ListForCard(ctx, userID, cardID)
		}
		if err != nil {
			return err
		}

		card = current
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_card", "failed to update card", err)
	}

	s.emit(ctx, events.CardUpdated, userID, card.ID)
	return card, nil
}

func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if err := s.store.Cards().Delete(ctx, userID, cardID); err != nil {
		return NewServiceError("delete_card", "failed to delete card", err)
	}

	s.emit(ctx, events.CardDeleted, userID, cardID)
	return nil
}

func cardFilter(filters schema.CardFilters) (store.CardFilter, error) {
	var filter store.CardFilter

	if filters.Search != nil {
		filter.Search = *filters.Search
	}

	bookID, err := parseOptionalID("bookId", filters.BookID)
	if err != nil {
		return filter, err
	}
	filter.BookID = bookID

	bucketID, err := parseOptionalID("bucketId", filters.BucketID)
	if err != nil {
		return filter, err
	}
	filter.BucketID = bucketID

	if filters.Limit != nil {
		if *filters.Limit < 0 || *filters.Limit > MaxCardPageSize {
			return filter, ErrInvalidPagination
		}
		filter.Limit = *filters.Limit
	}
	if filters.Offset != nil {
		if *filters.Offset < 0 {
			return filter, ErrInvalidPagination
		}
		filter.Offset = *filters.Offset
	}

	return filter, nil
}
