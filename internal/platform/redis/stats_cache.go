package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KeyPrefixStats prefixes every cached stats entry.
const KeyPrefixStats = "bookbrain:stats:"

// StatsKey returns the cache key of a user's stats.
func StatsKey(userID uuid.UUID) string {
	return KeyPrefixStats + userID.String()
}

// StatsCache stores computed stats as JSON with a TTL.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewStatsCache creates a cache on client. A non-positive ttl keeps
// entries until they are invalidated.
func NewStatsCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *StatsCache {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if ttl < 0 {
		ttl = 0
	}
	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "stats_cache")),
	}
}

// Get returns the cached stats and whether there was a hit.
func (c *StatsCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Stats, bool, error) {
	data, err := c.client.Get(ctx, StatsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached stats: %w", err)
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Warn("dropping undecodable stats entry",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		_ = c.client.Del(ctx, StatsKey(userID)).Err()
		return nil, false, nil
	}
	return &stats, true, nil
}

// Set stores stats for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, userID uuid.UUID, stats *domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, StatsKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

// Invalidate removes a user's cached stats.
func (c *StatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, StatsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats: %w", err)
	}
	return nil
}
