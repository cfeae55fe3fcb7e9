package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

const cardColumns = `c.id, c.user_id, c.book_id, c.title, c.page, c.context, c.capture, c.spark,
	c.linked_note_id, c.retention_answers, c.created_at, c.updated_at`

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
// Returns store.ErrInvalidEntity if the book does not exist for the user.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	answers, err := encodeAnswers(card.RetentionAnswers)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (id, user_id, book_id, title, page, context, capture, spark,
			linked_note_id, retention_answers, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::text, $7::text, $8::text,
			$9::uuid, $10::jsonb, $11::timestamptz, $12::timestamptz
		WHERE EXISTS (SELECT 1 FROM books WHERE id = $3::uuid AND user_id = $2::uuid)`,
		card.ID,
		card.UserID,
		card.BookID,
		card.Title,
		card.Page,
		card.Context,
		card.Capture,
		card.Spark,
		card.LinkedNoteID,
		answers,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("book_id", card.BookID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, fmt.Errorf("%w: book %s does not exist", store.ErrInvalidEntity, card.BookID)); err != nil {
		return err
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("book_id", card.BookID.String()))
	return nil
}

// Get implements store.CardStore.Get
func (s *PostgresCardStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards c
		WHERE c.id = $1 AND c.user_id = $2`,
		id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// Update implements store.CardStore.Update
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return err
	}

	answers, err := encodeAnswers(card.RetentionAnswers)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cards
		SET title = $1, page = $2, context = $3, capture = $4, spark = $5,
			retention_answers = $6::jsonb, updated_at = $7
		WHERE id = $8 AND user_id = $9`,
		card.Title,
		card.Page,
		card.Context,
		card.Capture,
		card.Spark,
		answers,
		card.UpdatedAt,
		card.ID,
		card.UserID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete
// Memberships go with the card through the card_buckets foreign key.
func (s *PostgresCardStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// List implements store.CardStore.List
func (s *PostgresCardStore) List(ctx context.Context, userID uuid.UUID, filter store.CardFilter) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildCardListQuery(userID, filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// Count implements store.CardStore.Count
func (s *PostgresCardStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM cards WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	return n, nil
}

// CreatedTimes implements store.CardStore.CreatedTimes
func (s *PostgresCardStore) CreatedTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at FROM cards WHERE user_id = $1`, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list card creation times",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, MapError(err)
		}
		times = append(times, t.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return times, nil
}

// buildCardListQuery assembles the filtered card query. Search uses strpos
// so that LIKE wildcards in user input match literally.
func buildCardListQuery(userID uuid.UUID, filter store.CardFilter) (string, []any) {
	var b strings.Builder
	args := []any{userID}

	b.WriteString(`SELECT ` + cardColumns + ` FROM cards c WHERE c.user_id = $1`)
	if filter.BookID != nil {
		args = append(args, *filter.BookID)
		fmt.Fprintf(&b, ` AND c.book_id = $%d`, len(args))
	}
	if filter.BucketID != nil {
		args = append(args, *filter.BucketID)
		fmt.Fprintf(&b,
			` AND EXISTS (SELECT 1 FROM card_buckets cb WHERE cb.card_id = c.id AND cb.bucket_id = $%d)`,
			len(args))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		fmt.Fprintf(&b, ` AND (strpos(lower(c.title), lower($%[1]d::text)) > 0`+
			` OR strpos(lower(coalesce(c.capture, '')), lower($%[1]d::text)) > 0`+
			` OR strpos(lower(coalesce(c.spark, '')), lower($%[1]d::text)) > 0)`,
			len(args))
	}
	b.WriteString(` ORDER BY c.created_at, c.id`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, ` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&b, ` OFFSET $%d`, len(args))
	}

	return b.String(), args
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var answers []byte
	if err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.BookID,
		&card.Title,
		&card.Page,
		&card.Context,
		&card.Capture,
		&card.Spark,
		&card.LinkedNoteID,
		&answers,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}

	card.RetentionAnswers = map[string]string{}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &card.RetentionAnswers); err != nil {
			return nil, store.NewStoreError("card", "scan", "invalid retention answers", err)
		}
	}
	card.Buckets = []*domain.Bucket{}
	card.CreatedAt = card.CreatedAt.UTC()
	card.UpdatedAt = card.UpdatedAt.UTC()
	return &card, nil
}

func encodeAnswers(answers map[string]string) (string, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return "", store.NewStoreError("card", "encode", "invalid retention answers", err)
	}
	return string(data), nil
}
