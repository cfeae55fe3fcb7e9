package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/domain/activity"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/platform/memory"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/donmarco3/Book-Brain/pkg/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testNow is a Wednesday.
var testNow = time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// eventRecorder keeps every emitted event type in order.
type eventRecorder struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *eventRecorder) HandleEvent(_ context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *eventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// opCounts tallies membership writes made through a countingStore.
type opCounts struct {
	mu       sync.Mutex
	attaches int
	detaches int
}

func (c *opCounts) snapshot() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attaches, c.detaches
}

func (c *opCounts) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attaches, c.detaches = 0, 0
}

type countingStore struct {
	store.Store
	counts *opCounts
}

func (s countingStore) Buckets() store.BucketStore {
	return countingBuckets{BucketStore: s.Store.Buckets(), counts: s.counts}
}

func (s countingStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return s.Store.RunInTx(ctx, func(ctx context.Context, tx store.Store) error {
		return fn(ctx, countingStore{Store: tx, counts: s.counts})
	})
}

type countingBuckets struct {
	store.BucketStore
	counts *opCounts
}

func (b countingBuckets) Attach(ctx context.Context, userID, cardID, bucketID uuid.UUID, at time.Time) (bool, error) {
	b.counts.mu.Lock()
	b.counts.attaches++
	b.counts.mu.Unlock()
	return b.BucketStore.Attach(ctx, userID, cardID, bucketID, at)
}

func (b countingBuckets) Detach(ctx context.Context, userID, cardID, bucketID uuid.UUID) (bool, error) {
	b.counts.mu.Lock()
	b.counts.detaches++
	b.counts.mu.Unlock()
	return b.BucketStore.Detach(ctx, userID, cardID, bucketID)
}

// fixture wires every service against one memory store.
type fixture struct {
	store    store.Store
	clock    *testClock
	counts   *opCounts
	recorder *eventRecorder

	books      BookService
	notes      NoteService
	promotions PromotionService
	cards      CardService
	buckets    BucketService
	settings   SettingsService
	stats      StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	counts := &opCounts{}
	st := countingStore{Store: memory.NewStore(), counts: counts}
	clock := newTestClock()
	recorder := &eventRecorder{}
	emitter := events.NewInMemoryEventEmitter(slog.Default())
	emitter.RegisterHandler(recorder)
	opt := WithClock(clock.Now)

	f := &fixture{store: st, clock: clock, counts: counts, recorder: recorder}
	var err error

	f.books, err = NewBookService(st, emitter, nil, opt)
	require.NoError(t, err)
	f.notes, err = NewNoteService(st, emitter, nil, opt)
	require.NoError(t, err)
	f.promotions, err = NewPromotionService(st, emitter, nil, opt)
	require.NoError(t, err)
	f.cards, err = NewCardService(st, emitter, nil, opt)
	require.NoError(t, err)
	f.buckets, err = NewBucketService(st, emitter, nil, opt)
	require.NoError(t, err)
	f.settings, err = NewSettingsService(st, emitter, nil, opt)
	require.NoError(t, err)
	f.stats, err = NewStatsService(st, nil, activity.NewCalendar(time.UTC), nil, opt)
	require.NoError(t, err)

	return f
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func (f *fixture) book(t *testing.T, userID uuid.UUID, title string) *domain.Book {
	t.Helper()
	book, err := f.books.CreateBook(context.Background(), userID, schema.CreateBookRequest{Title: title})
	require.NoError(t, err)
	return book
}

func (f *fixture) note(t *testing.T, userID, bookID uuid.UUID, title string) *domain.Note {
	t.Helper()
	note, err := f.notes.CreateNote(context.Background(), userID, schema.CreateNoteRequest{
		BookID:  bookID.String(),
		Title:   title,
		Page:    "12",
		Capture: strPtr("captured " + title),
	})
	require.NoError(t, err)
	return note
}

func (f *fixture) bucket(t *testing.T, userID uuid.UUID, name string) *domain.Bucket {
	t.Helper()
	bucket, err := f.buckets.CreateBucket(context.Background(), userID, schema.CreateBucketRequest{Name: name})
	require.NoError(t, err)
	return bucket
}

func (f *fixture) card(t *testing.T, userID, bookID uuid.UUID, title string, buckets ...*domain.Bucket) *domain.Card {
	t.Helper()
	ids := make([]string, len(buckets))
	for i, b := range buckets {
		ids[i] = b.ID.String()
	}
	card, err := f.cards.CreateCard(context.Background(), userID, schema.CreateCardRequest{
		BookID:    bookID.String(),
		Title:     title,
		Page:      "7",
		BucketIDs: ids,
	})
	require.NoError(t, err)
	return card
}

func bucketIDs(buckets []*domain.Bucket) []uuid.UUID {
	out := make([]uuid.UUID, len(buckets))
	for i, b := range buckets {
		out[i] = b.ID
	}
	return out
}
