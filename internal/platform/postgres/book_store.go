package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

const bookColumns = `id, user_id, title, author, status, created_at, updated_at`

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the BookStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Create implements store.BookStore.Create
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		book.ID,
		book.UserID,
		book.Title,
		book.Author,
		string(book.Status),
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()),
			slog.String("user_id", book.UserID.String()))
		return MapError(err)
	}

	log.Debug("book created",
		slog.String("book_id", book.ID.String()),
		slog.String("user_id", book.UserID.String()))
	return nil
}

// Get implements store.BookStore.Get
func (s *PostgresBookStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1 AND user_id = $2`,
		id, userID)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.String("book_id", id.String()))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return nil, MapError(err)
	}

	return book, nil
}

// Update implements store.BookStore.Update
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = $1, author = $2, status = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`,
		book.Title,
		book.Author,
		string(book.Status),
		book.UpdatedAt,
		book.ID,
		book.UserID,
	)
	if err != nil {
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// Delete implements store.BookStore.Delete
// Notes, cards and memberships are removed by ON DELETE CASCADE.
func (s *PostgresBookStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBookNotFound); err != nil {
		return err
	}

	log.Debug("book deleted", slog.String("book_id", id.String()))
	return nil
}

// List implements store.BookStore.List
func (s *PostgresBookStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE user_id = $1
		ORDER BY created_at, id`,
		userID)
	if err != nil {
		log.Error("failed to list books",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	books := []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, MapError(err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return books, nil
}

// Count implements store.BookStore.Count
func (s *PostgresBookStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM books WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count books",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var book domain.Book
	var status string
	if err := row.Scan(
		&book.ID,
		&book.UserID,
		&book.Title,
		&book.Author,
		&status,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		return nil, err
	}
	book.Status = domain.BookStatus(status)
	book.CreatedAt = book.CreatedAt.UTC()
	book.UpdatedAt = book.UpdatedAt.UTC()
	return &book, nil
}
