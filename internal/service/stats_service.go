package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/donmarco3/Book-Brain/internal/domain"
	"github.com/donmarco3/Book-Brain/internal/domain/activity"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

// StatsCache stores computed stats per user.
type StatsCache interface {
	// Get returns the cached stats and whether there was a hit.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Stats, bool, error)
	Set(ctx context.Context, userID uuid.UUID, stats *domain.Stats) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// NopStatsCache never hits.
type NopStatsCache struct{}

// Get implements StatsCache.
func (NopStatsCache) Get(context.Context, uuid.UUID) (*domain.Stats, bool, error) { return nil, false, nil }

// Set implements StatsCache.
func (NopStatsCache) Set(context.Context, uuid.UUID, *domain.Stats) error { return nil }

// Invalidate implements StatsCache.
func (NopStatsCache) Invalidate(context.Context, uuid.UUID) error { return nil }

// StatsService computes reading activity.
type StatsService interface {
	// GetStats returns the user's stats as of now. Results may be served
	// from the cache.
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error)

	// GetStatsAt computes the user's stats as of ref, bypassing the cache.
	GetStatsAt(ctx context.Context, userID uuid.UUID, ref time.Time) (*domain.Stats, error)
}

type statsServiceImpl struct {
	base
	cache    StatsCache
	calendar activity.Calendar
}

var _ StatsService = (*statsServiceImpl)(nil)

// NewStatsService creates a StatsService. A nil cache disables caching.
func NewStatsService(
	st store.Store,
	cache StatsCache,
	calendar activity.Calendar,
	logger *slog.Logger,
	opts ...Option,
) (StatsService, error) {
	b, err := newBase("stats_service", st, nil, logger, opts)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NopStatsCache{}
	}
	return &statsServiceImpl{base: b, cache: cache, calendar: calendar}, nil
}

func (s *statsServiceImpl) GetStats(ctx context.Context, userID uuid.UUID) (*domain.Stats, error) {
	log := s.log(ctx)

	cached, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		log.Warn("stats cache read failed", slog.String("error", err.Error()))
	} else if hit {
		return cached, nil
	}

	stats, err := s.GetStatsAt(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, stats); err != nil {
		log.Warn("stats cache write failed", slog.String("error", err.Error()))
	}
	return stats, nil
}

func (s *statsServiceImpl) GetStatsAt(ctx context.Context, userID uuid.UUID, ref time.Time) (*domain.Stats, error) {
	totalBooks, err := s.store.Books().Count(ctx, userID)
	if err != nil {
		return nil, NewServiceError("get_stats", "failed to count books", err)
	}
	totalCards, err := s.store.Cards().Count(ctx, userID)
	if err != nil {
		return nil, NewServiceError("get_stats", "failed to count cards", err)
	}
	created, err := s.store.Cards().CreatedTimes(ctx, userID)
	if err != nil {
		return nil, NewServiceError("get_stats", "failed to load card timeline", err)
	}

	summary := s.calendar.Summarize(created, ref)
	return &domain.Stats{
		TotalBooks:     totalBooks,
		TotalCards:     totalCards,
		Streak:         summary.Streak,
		CardsThisWeek:  summary.CardsThisWeek,
		CardsThisMonth: summary.CardsThisMonth,
		CardsThisYear:  summary.CardsThisYear,
	}, nil
}

// StatsCacheInvalidator drops a user's cached stats when books or cards
// change.
type StatsCacheInvalidator struct {
	cache  StatsCache
	logger *slog.Logger
}

var _ events.EventHandler = (*StatsCacheInvalidator)(nil)

// NewStatsCacheInvalidator creates an invalidator for cache.
func NewStatsCacheInvalidator(cache StatsCache, logger *slog.Logger) *StatsCacheInvalidator {
	if cache == nil {
		cache = NopStatsCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsCacheInvalidator{
		cache:  cache,
		logger: logger.With(slog.String("component", "stats_cache_invalidator")),
	}
}

// HandleEvent implements events.EventHandler.
func (h *StatsCacheInvalidator) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.BookCreated, events.BookDeleted,
		events.CardCreated, events.CardDeleted, events.NotePromoted:
	default:
		return nil
	}

	if err := h.cache.Invalidate(ctx, event.UserID); err != nil {
		h.logger.Warn("failed to invalidate stats",
			slog.String("user_id", event.UserID.String()),
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
