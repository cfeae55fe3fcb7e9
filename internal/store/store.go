package store

import (
	"context"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/google/uuid"
)

// BookStore defines the interface for book persistence.
type BookStore interface {
	// Create saves a new book. Returns ErrDuplicate if the ID is taken.
	Create(ctx context.Context, book *domain.Book) error

	// Get retrieves a book. Returns ErrBookNotFound if it does not exist or
	// belongs to another user.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Book, error)

	// Update replaces the mutable fields of an existing book.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book together with its notes, its cards and their
	// bucket memberships. Returns ErrBookNotFound if the book does not exist.
	//
	// The PostgreSQL implementation relies on ON DELETE CASCADE foreign keys;
	// other backends must remove the dependents explicitly.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns the user's books ordered by creation.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error)

	// Count returns the number of books the user owns.
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}

// NoteFilter narrows a note listing. Nil fields do not filter.
type NoteFilter struct {
	BookID *uuid.UUID
	Status *domain.NoteStatus
}

// NoteStore defines the interface for note persistence.
type NoteStore interface {
	// Create saves a new note. Returns ErrInvalidEntity if the book does not
	// exist for the user.
	Create(ctx context.Context, note *domain.Note) error

	// Get retrieves a note. Returns ErrNoteNotFound if it does not exist.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error)

	// GetForUpdate retrieves a note and locks it until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error)

	// Update replaces the mutable fields of an existing note.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note and clears the link of every note referencing
	// it. Cards keep their provenance reference.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns the user's notes matching filter, ordered by creation.
	List(ctx context.Context, userID uuid.UUID, filter NoteFilter) ([]*domain.Note, error)
}

// CardFilter narrows a card listing. Search matches title, capture and
// spark case-insensitively. A zero Limit means no limit.
type CardFilter struct {
	Search   string
	BookID   *uuid.UUID
	BucketID *uuid.UUID
	Limit    int
	Offset   int
}

// CardStore defines the interface for card persistence. Returned cards do
// not carry their buckets; use BucketStore.ListForCards.
type CardStore interface {
	// Create saves a new card. Returns ErrInvalidEntity if the book does not
	// exist for the user.
	Create(ctx context.Context, card *domain.Card) error

	// Get retrieves a card. Returns ErrCardNotFound if it does not exist.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Card, error)

	// Update replaces the mutable fields of an existing card.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card and its bucket memberships.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns the user's cards matching filter, ordered by creation
	// time and then ID.
	List(ctx context.Context, userID uuid.UUID, filter CardFilter) ([]*domain.Card, error)

	// Count returns the number of cards the user owns.
	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// CreatedTimes returns the creation time of every card the user owns.
	CreatedTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

// BucketStore defines the interface for buckets and card memberships.
type BucketStore interface {
	// Create saves a new bucket. Returns ErrBucketNameExists when the user
	// already has a bucket with the same name.
	Create(ctx context.Context, bucket *domain.Bucket) error

	// Get retrieves a bucket. Returns ErrBucketNotFound if it does not exist.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Bucket, error)

	// Update renames a bucket. Returns ErrBucketNameExists on a clash.
	Update(ctx context.Context, bucket *domain.Bucket) error

	// Delete removes a bucket and its memberships. Cards are kept.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// List returns the user's buckets ordered by creation.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Bucket, error)

	// Attach adds a card to a bucket and reports whether a membership was
	// created. Attaching twice is not an error.
	Attach(ctx context.Context, userID, cardID, bucketID uuid.UUID, at time.Time) (bool, error)

	// Detach removes a card from a bucket and reports whether a membership
	// existed.
	Detach(ctx context.Context, userID, cardID, bucketID uuid.UUID) (bool, error)

	// ListForCard returns the buckets a card belongs to, ordered by
	// bucket creation.
	ListForCard(ctx context.Context, userID, cardID uuid.UUID) ([]*domain.Bucket, error)

	// ListForCards returns the buckets of several cards, keyed by card ID.
	// Cards without buckets are absent from the map.
	ListForCards(ctx context.Context, userID uuid.UUID, cardIDs []uuid.UUID) (map[uuid.UUID][]*domain.Bucket, error)
}

// SettingsStore defines the interface for per-user settings.
type SettingsStore interface {
	// Get returns the user's settings or ErrSettingsNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// Upsert creates or replaces the user's settings.
	Upsert(ctx context.Context, settings *domain.UserSettings) error
}

// Store aggregates the entity stores of one backend.
type Store interface {
	Books() BookStore
	Notes() NoteStore
	Cards() CardStore
	Buckets() BucketStore
	Settings() SettingsStore

	// RunInTx runs fn with a Store whose operations commit atomically when
	// fn returns nil and are discarded otherwise. Nested calls join the
	// enclosing transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
