package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestStatsKey(t *testing.T) {
	t.Parallel()

	userID := uuid.MustParse("7d0c4f8e-2b1a-4c3d-9e8f-1a2b3c4d5e6f")
	assert.Equal(t, "bookbrain:stats:7d0c4f8e-2b1a-4c3d-9e8f-1a2b3c4d5e6f", StatsKey(userID))
}

func TestNewStatsCache(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewStatsCache(nil, time.Second, nil) })

	cache := NewStatsCache(unreachableClient(t), -time.Second, nil)
	assert.Equal(t, time.Duration(0), cache.ttl)
}

func TestStatsCache_ErrorsWhenUnreachable(t *testing.T) {
	t.Parallel()

	cache := NewStatsCache(unreachableClient(t), time.Minute, nil)
	ctx := context.Background()
	userID := uuid.New()

	_, hit, err := cache.Get(ctx, userID)
	require.Error(t, err)
	assert.False(t, hit)
	assert.Contains(t, err.Error(), "failed to get cached stats")

	err = cache.Set(ctx, userID, &domain.Stats{TotalCards: 3})
	assert.ErrorContains(t, err, "failed to cache stats")

	err = cache.Invalidate(ctx, userID)
	assert.ErrorContains(t, err, "failed to invalidate stats")
}

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := Connect(ctx, "redis://localhost:6379/0", ConnectOptions{}, nil)
	assert.ErrorContains(t, err, "ConnectTimeout must be > 0")

	_, err = Connect(ctx, "not a url", DefaultConnectOptions(), nil)
	assert.ErrorContains(t, err, "invalid redis url")
}

func TestConnect_GivesUpAfterTimeout(t *testing.T) {
	t.Parallel()

	opts := ConnectOptions{
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  50 * time.Millisecond,
		MaxWait:        100 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
	}

	_, err := Connect(context.Background(), "redis://127.0.0.1:1/0", opts, nil)
	assert.ErrorContains(t, err, "redis unavailable after")
}

// fakeClient keeps string values in a map. Only the commands the cache
// uses are implemented; anything else panics on the nil embedded interface.
type fakeClient struct {
	redis.Cmdable

	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	dels   []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	default:
		return redis.NewStatusResult("", fmt.Errorf("unsupported value %T", value))
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		f.dels = append(f.dels, key)
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			delete(f.ttls, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestStatsCache_RoundTrip(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	cache := NewStatsCache(client, 30*time.Second, nil)
	ctx := context.Background()
	userID := uuid.New()

	_, hit, err := cache.Get(ctx, userID)
	require.NoError(t, err, "a missing key is a miss, not an error")
	assert.False(t, hit)

	want := &domain.Stats{
		TotalBooks: 2, TotalCards: 7, Streak: 3,
		CardsThisWeek: 4, CardsThisMonth: 5, CardsThisYear: 7,
	}
	require.NoError(t, cache.Set(ctx, userID, want))
	assert.Equal(t, 30*time.Second, client.ttls[StatsKey(userID)])

	got, hit, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)

	_, hit, err = cache.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, hit, "entries are per user")

	require.NoError(t, cache.Invalidate(ctx, userID))
	_, hit, err = cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, cache.Invalidate(ctx, userID), "invalidating a missing entry is fine")
}

func TestStatsCache_DropsUndecodableEntry(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	buf, log := logger.NewTestLogger()
	cache := NewStatsCache(client, time.Minute, log)
	ctx := context.Background()
	userID := uuid.New()
	key := StatsKey(userID)
	client.values[key] = "{not json"

	got, hit, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)

	assert.NotContains(t, client.values, key)
	assert.Equal(t, []string{key}, client.dels)
	assert.Contains(t, buf.String(), "dropping undecodable stats entry")
}

func TestStatsCache_ZeroTTLKeepsEntries(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	cache := NewStatsCache(client, 0, nil)
	userID := uuid.New()

	require.NoError(t, cache.Set(context.Background(), userID, &domain.Stats{TotalCards: 1}))
	ttl, ok := client.ttls[StatsKey(userID)]
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), ttl)
}
