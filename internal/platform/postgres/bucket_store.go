package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

const bucketColumns = `b.id, b.user_id, b.name, b.created_at, b.updated_at`

// PostgresBucketStore implements the store.BucketStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBucketStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBucketStore creates a new PostgreSQL implementation of the BucketStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresBucketStore(db store.DBTX, logger *slog.Logger) *PostgresBucketStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBucketStore{
		db:     db,
		logger: logger.With(slog.String("component", "bucket_store")),
	}
}

var _ store.BucketStore = (*PostgresBucketStore)(nil)

// Create implements store.BucketStore.Create
// Returns store.ErrBucketNameExists on a case-insensitive name clash.
func (s *PostgresBucketStore) Create(ctx context.Context, bucket *domain.Bucket) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := bucket.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO buckets (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		bucket.ID,
		bucket.UserID,
		bucket.Name,
		bucket.CreatedAt,
		bucket.UpdatedAt,
	)
	if err != nil {
		log.Warn("failed to create bucket",
			slog.String("error", err.Error()),
			slog.String("bucket_id", bucket.ID.String()))
		return MapError(err)
	}

	log.Debug("bucket created", slog.String("bucket_id", bucket.ID.String()))
	return nil
}

// Get implements store.BucketStore.Get
func (s *PostgresBucketStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Bucket, error) {
	bucket, err := scanBucket(s.db.QueryRowContext(ctx, `
		SELECT `+bucketColumns+`
		FROM buckets b
		WHERE b.id = $1 AND b.user_id = $2`,
		id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBucketNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get bucket",
			slog.String("error", err.Error()),
			slog.String("bucket_id", id.String()))
		return nil, MapError(err)
	}
	return bucket, nil
}

// Update implements store.BucketStore.Update
func (s *PostgresBucketStore) Update(ctx context.Context, bucket *domain.Bucket) error {
	if err := bucket.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE buckets
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4`,
		bucket.Name,
		bucket.UpdatedAt,
		bucket.ID,
		bucket.UserID,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to update bucket",
			slog.String("error", err.Error()),
			slog.String("bucket_id", bucket.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBucketNotFound)
}

// Delete implements store.BucketStore.Delete
// Memberships go with the bucket through the card_buckets foreign key.
func (s *PostgresBucketStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM buckets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete bucket",
			slog.String("error", err.Error()),
			slog.String("bucket_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBucketNotFound)
}

// List implements store.BucketStore.List
func (s *PostgresBucketStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Bucket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bucketColumns+`
		FROM buckets b
		WHERE b.user_id = $1
		ORDER BY b.created_at, b.id`,
		userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list buckets",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	buckets := []*domain.Bucket{}
	for rows.Next() {
		bucket, err := scanBucket(rows)
		if err != nil {
			return nil, MapError(err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return buckets, nil
}

// Attach implements store.BucketStore.Attach
// Ownership of the card and bucket is checked in the same statement.
func (s *PostgresBucketStore) Attach(ctx context.Context, userID, cardID, bucketID uuid.UUID, at time.Time) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var cardOK, bucketOK bool
	err := s.db.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM cards WHERE id = $1 AND user_id = $3),
			EXISTS (SELECT 1 FROM buckets WHERE id = $2 AND user_id = $3)`,
		cardID, bucketID, userID).Scan(&cardOK, &bucketOK)
	if err != nil {
		log.Error("failed to check membership ownership",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("bucket_id", bucketID.String()))
		return false, MapError(err)
	}
	if !cardOK {
		return false, store.ErrCardNotFound
	}
	if !bucketOK {
		return false, store.ErrBucketNotFound
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO card_buckets (card_id, bucket_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (card_id, bucket_id) DO NOTHING`,
		cardID, bucketID, userID, at.UTC())
	if err != nil {
		log.Error("failed to attach card to bucket",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("bucket_id", bucketID.String()))
		return false, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, MapError(err)
	}
	return n > 0, nil
}

// Detach implements store.BucketStore.Detach
func (s *PostgresBucketStore) Detach(ctx context.Context, userID, cardID, bucketID uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM card_buckets
		WHERE card_id = $1 AND bucket_id = $2 AND user_id = $3`,
		cardID, bucketID, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to detach card from bucket",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("bucket_id", bucketID.String()))
		return false, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, MapError(err)
	}
	return n > 0, nil
}

// ListForCard implements store.BucketStore.ListForCard
func (s *PostgresBucketStore) ListForCard(ctx context.Context, userID, cardID uuid.UUID) ([]*domain.Bucket, error) {
	byCard, err := s.ListForCards(ctx, userID, []uuid.UUID{cardID})
	if err != nil {
		return nil, err
	}
	if buckets, ok := byCard[cardID]; ok {
		return buckets, nil
	}
	return []*domain.Bucket{}, nil
}

// ListForCards implements store.BucketStore.ListForCards
func (s *PostgresBucketStore) ListForCards(
	ctx context.Context,
	userID uuid.UUID,
	cardIDs []uuid.UUID,
) (map[uuid.UUID][]*domain.Bucket, error) {
	out := make(map[uuid.UUID][]*domain.Bucket)
	if len(cardIDs) == 0 {
		return out, nil
	}

	ids := make([]string, len(cardIDs))
	for i, id := range cardIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cb.card_id, `+bucketColumns+`
		FROM card_buckets cb
		JOIN buckets b ON b.id = cb.bucket_id
		WHERE cb.user_id = $1 AND cb.card_id = ANY($2::uuid[])
		ORDER BY b.created_at, b.id`,
		userID, ids)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list card buckets",
			slog.String("error", err.Error()),
			slog.Int("card_count", len(cardIDs)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cardID uuid.UUID
		var bucket domain.Bucket
		if err := rows.Scan(
			&cardID,
			&bucket.ID,
			&bucket.UserID,
			&bucket.Name,
			&bucket.CreatedAt,
			&bucket.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		bucket.CreatedAt = bucket.CreatedAt.UTC()
		bucket.UpdatedAt = bucket.UpdatedAt.UTC()
		out[cardID] = append(out[cardID], &bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return out, nil
}

func scanBucket(row rowScanner) (*domain.Bucket, error) {
	var bucket domain.Bucket
	if err := row.Scan(
		&bucket.ID,
		&bucket.UserID,
		&bucket.Name,
		&bucket.CreatedAt,
		&bucket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	bucket.CreatedAt = bucket.CreatedAt.UTC()
	bucket.UpdatedAt = bucket.UpdatedAt.UTC()
	return &bucket, nil
}
