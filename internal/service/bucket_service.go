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

// BucketService manages buckets and card memberships.
type BucketService interface {
	// CreateBucket creates a bucket. Names are unique per user ignoring case.
	CreateBucket(ctx context.Context, userID uuid.UUID, req schema.CreateBucketRequest) (*domain.Bucket, error)
	GetBucket(ctx context.Context, userID, bucketID uuid.UUID) (*domain.Bucket, error)
	ListBuckets(ctx context.Context, userID uuid.UUID) ([]*domain.Bucket, error)
	RenameBucket(ctx context.Context, userID, bucketID uuid.UUID, req schema.UpdateBucketRequest) (*domain.Bucket, error)

	// DeleteBucket removes the bucket and its memberships. Cards are kept.
	DeleteBucket(ctx context.Context, userID, bucketID uuid.UUID) error

	// AttachCard adds a card to a bucket. Attaching twice is a no-op.
	AttachCard(ctx context.Context, userID, cardID, bucketID uuid.UUID) error

	// DetachCard removes a card from a bucket. Detaching a card that is
	// not a member is a no-op.
	DetachCard(ctx context.Context, userID, cardID, bucketID uuid.UUID) error

	ListCardsInBucket(ctx context.Context, userID, bucketID uuid.UUID) ([]*domain.Card, error)
	ListBucketsForCard(ctx context.Context, userID, cardID uuid.UUID) ([]*domain.Bucket, error)
}

type bucketServiceImpl struct {
	base
}

var _ BucketService = (*bucketServiceImpl)(nil)

// NewBucketService creates a BucketService.
func NewBucketService(
	st store.Store,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (BucketService, error) {
	b, err := newBase("bucket_service", st, emitter, logger, opts)
	if err != nil {
		return nil, err
	}
	return &bucketServiceImpl{base: b}, nil
}

func (s *bucketServiceImpl) CreateBucket(
	ctx context.Context,
	userID uuid.UUID,
	req schema.CreateBucketRequest,
) (*domain.Bucket, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	bucket, err := domain.NewBucket(userID, req.Name, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.store.Buckets().Create(ctx, bucket); err != nil {
		return nil, NewServiceError("create_bucket", "failed to save bucket", err)
	}
	return bucket, nil
}

func (s *bucketServiceImpl) GetBucket(ctx context.Context, userID, bucketID uuid.UUID) (*domain.Bucket, error) {
	bucket, err := s.store.Buckets().Get(ctx, userID, bucketID)
	if err != nil {
		return nil, NewServiceError("get_bucket", "failed to load bucket", err)
	}
	return bucket, nil
}

func (s *bucketServiceImpl) ListBuckets(ctx context.Context, userID uuid.UUID) ([]*domain.Bucket, error) {
	buckets, err := s.store.Buckets().List(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_buckets", "failed to list buckets", err)
	}
	return buckets, nil
}

func (s *bucketServiceImpl) RenameBucket(
	ctx context.Context,
	userID, bucketID uuid.UUID,
	req schema.UpdateBucketRequest,
) (*domain.Bucket, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var bucket *domain.Bucket
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		current, err := tx.Buckets().Get(ctx, userID, bucketID)
		if err != nil {
			return err
		}
		if err := current.Rename(req.Name, s.now()); err != nil {
			return err
		}
		if err := tx.Buckets().Update(ctx, current); err != nil {
			return err
		}
		bucket = current
		return nil
	})
	if err != nil {
		return nil, NewServiceError("rename_bucket", "failed to rename bucket", err)
	}
	return bucket, nil
}

func (s *bucketServiceImpl) DeleteBucket(ctx context.Context, userID, bucketID uuid.UUID) error {
	if err := s.store.Buckets().Delete(ctx, userID, bucketID); err != nil {
		return NewServiceError("delete_bucket", "failed to delete bucket", err)
	}
	return nil
}

func (s *bucketServiceImpl) AttachCard(ctx context.Context, userID, cardID, bucketID uuid.UUID) error {
	created, err := s.store.Buckets().Attach(ctx, userID, cardID, bucketID, s.now())
	if err != nil {
		return NewServiceError("attach_card", "failed to attach card", err)
	}

	s.log(ctx).Debug("card attached",
		slog.String("card_id", cardID.String()),
		slog.String("bucket_id", bucketID.String()),
		slog.Bool("created", created))
	return nil
}

func (s *bucketServiceImpl) DetachCard(ctx context.Context, userID, cardID, bucketID uuid.UUID) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.Cards().Get(ctx, userID, cardID); err != nil {
			return err
		}
		if _, err := tx.Buckets().Get(ctx, userID, bucketID); err != nil {
			return err
		}
		_, err := tx.Buckets().Detach(ctx, userID, cardID, bucketID)
		return err
	})
	if err != nil {
		return NewServiceError("detach_card", "failed to detach card", err)
	}
	return nil
}

func (s *bucketServiceImpl) ListCardsInBucket(
	ctx context.Context,
	userID, bucketID uuid.UUID,
) ([]*domain.Card, error) {
	if _, err := s.store.Buckets().Get(ctx, userID, bucketID); err != nil {
		return nil, NewServiceError("list_bucket_cards", "failed to load bucket", err)
	}

	cards, err := s.store.Cards().List(ctx, userID, store.CardFilter{BucketID: &bucketID})
	if err != nil {
		return nil, NewServiceError("list_bucket_cards", "failed to list cards", err)
	}
	if err := loadBuckets(ctx, s.store, userID, cards...); err != nil {
		return nil, NewServiceError("list_bucket_cards", "failed to load card buckets", err)
	}
	return cards, nil
}

func (s *bucketServiceImpl) ListBucketsForCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) ([]*domain.Bucket, error) {
	if _, err := s.store.Cards().Get(ctx, userID, cardID); err != nil {
		return nil, NewServiceError("list_card_buckets", "failed to load card", err)
	}

	buckets, err := s.store.Buckets().ListForCard(ctx, userID, cardID)
	if err != nil {
		return nil, NewServiceError("list_card_buckets", "failed to list buckets", err)
	}
	return buckets, nil
}
