package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/donmarco3/Book-Brain/internal/store"
)

// Store implements store.Store on PostgreSQL.
type Store struct {
	db     *sql.DB
	conn   store.DBTX
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// NewStore creates a Store backed by db.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, conn: db, logger: logger}
}

// Books implements store.Store.
func (s *Store) Books() store.BookStore { return NewPostgresBookStore(s.conn, s.logger) }

// Notes implements store.Store.
func (s *Store) Notes() store.NoteStore { return NewPostgresNoteStore(s.conn, s.logger) }

// Cards implements store.Store.
func (s *Store) Cards() store.CardStore { return NewPostgresCardStore(s.conn, s.logger) }

// Buckets implements store.Store.
func (s *Store) Buckets() store.BucketStore { return NewPostgresBucketStore(s.conn, s.logger) }

// Settings implements store.Store.
func (s *Store) Settings() store.SettingsStore { return NewPostgresSettingsStore(s.conn, s.logger) }

// RunInTx implements store.Store using store.RunInTransaction. A Store
// already bound to a transaction runs fn directly.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if _, inTx := s.conn.(*sql.Tx); inTx {
		return fn(ctx, s)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &Store{db: s.db, conn: tx, logger: s.logger})
	})
}
