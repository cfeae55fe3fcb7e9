package memory

import (
	"context"
	"sync"

	"github.com/donmarco3/Book-Brain/internal/store"
)

type database struct {
	mu   sync.Mutex
	data *dataset
}

// Store implements store.Store in memory.
type Store struct {
	db *database
	tx *dataset // non-nil inside RunInTx
}

var _ store.Store = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{db: &database{data: newDataset()}}
}

// Books implements store.Store.
func (s *Store) Books() store.BookStore { return bookStore{s} }

// Notes implements store.Store.
func (s *Store) Notes() store.NoteStore { return noteStore{s} }

// Cards implements store.Store.
func (s *Store) Cards() store.CardStore { return cardStore{s} }

// Buckets implements store.Store.
func (s *Store) Buckets() store.BucketStore { return bucketStore{s} }

// Settings implements store.Store.
func (s *Store) Settings() store.SettingsStore { return settingsStore{s} }

// RunInTx implements store.Store. Transactions are serialized with every
// other operation.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	next := s.db.data.clone()
	if err := fn(ctx, &Store{db: s.db, tx: next}); err != nil {
		return err
	}
	s.db.data = next
	return nil
}

func (s *Store) read(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.data)
}

func (s *Store) write(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	next := s.db.data.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.db.data = next
	return nil
}
