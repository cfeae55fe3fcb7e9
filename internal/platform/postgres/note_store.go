package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

const noteColumns = `id, user_id, book_id, title, page, context, capture, spark,
	linked_note_id, status, created_at, updated_at`

// PostgresNoteStore implements the store.NoteStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNoteStore creates a new PostgreSQL implementation of the NoteStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

var _ store.NoteStore = (*PostgresNoteStore)(nil)

// Create implements store.NoteStore.Create
// Returns store.ErrInvalidEntity if the book or linked note does not exist.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during create",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	// The INSERT ... SELECT only inserts when the book belongs to the user.
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::text, $7::text, $8::text,
			$9::uuid, $10::text, $11::timestamptz, $12::timestamptz
		WHERE EXISTS (SELECT 1 FROM books WHERE id = $3::uuid AND user_id = $2::uuid)`,
		note.ID,
		note.UserID,
		note.BookID,
		note.Title,
		note.Page,
		note.Context,
		note.Capture,
		note.Spark,
		note.LinkedNoteID,
		string(note.Status),
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()),
			slog.String("book_id", note.BookID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, fmt.Errorf("%w: book %s does not exist", store.ErrInvalidEntity, note.BookID)); err != nil {
		return err
	}

	log.Debug("note created",
		slog.String("note_id", note.ID.String()),
		slog.String("book_id", note.BookID.String()))
	return nil
}

// Get implements store.NoteStore.Get
func (s *PostgresNoteStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error) {
	return s.get(ctx, userID, id, false)
}

// GetForUpdate implements store.NoteStore.GetForUpdate using SELECT ... FOR UPDATE.
func (s *PostgresNoteStore) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error) {
	return s.get(ctx, userID, id, true)
}

func (s *PostgresNoteStore) get(ctx context.Context, userID, id uuid.UUID, forUpdate bool) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	note, err := scanNote(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to get note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()),
			slog.Bool("for_update", forUpdate))
		return nil, MapError(err)
	}

	return note, nil
}

// Update implements store.NoteStore.Update
func (s *PostgresNoteStore) Update(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE notes
		SET title = $1, page = $2, context = $3, capture = $4, spark = $5,
			linked_note_id = $6, status = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10`,
		note.Title,
		note.Page,
		note.Context,
		note.Capture,
		note.Spark,
		note.LinkedNoteID,
		string(note.Status),
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)
	if err != nil {
		log.Error("failed to update note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrNoteNotFound)
}

// Delete implements store.NoteStore.Delete
// Links from other notes are cleared by ON DELETE SET NULL.
func (s *PostgresNoteStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrNoteNotFound)
}

// List implements store.NoteStore.List
func (s *PostgresNoteStore) List(ctx context.Context, userID uuid.UUID, filter store.NoteFilter) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildNoteListQuery(userID, filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list notes",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	notes := []*domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, MapError(err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return notes, nil
}

func buildNoteListQuery(userID uuid.UUID, filter store.NoteFilter) (string, []any) {
	var b strings.Builder
	args := []any{userID}

	b.WriteString(`SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1`)
	if filter.BookID != nil {
		args = append(args, *filter.BookID)
		fmt.Fprintf(&b, ` AND book_id = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		fmt.Fprintf(&b, ` AND status = $%d`, len(args))
	}
	b.WriteString(` ORDER BY created_at, id`)

	return b.String(), args
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	var status string
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.BookID,
		&note.Title,
		&note.Page,
		&note.Context,
		&note.Capture,
		&note.Spark,
		&note.LinkedNoteID,
		&status,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}
	note.Status = domain.NoteStatus(status)
	note.CreatedAt = note.CreatedAt.UTC()
	note.UpdatedAt = note.UpdatedAt.UTC()
	return &note, nil
}
