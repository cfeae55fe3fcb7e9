package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/google/uuid"
)

// Option configures a service.
type Option func(*base)

// WithClock replaces the clock used for timestamps and stats.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

// base holds the dependencies shared by every service.
type base struct {
	store   store.Store
	emitter events.EventEmitter
	logger  *slog.Logger
	now     func() time.Time
}

func newBase(
	component string,
	st store.Store,
	emitter events.EventEmitter,
	log *slog.Logger,
	opts []Option,
) (base, error) {
	if st == nil {
		return base{}, errNilDependency("store")
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if log == nil {
		log = slog.Default()
	}

	b := base{
		store:   st,
		emitter: emitter,
		logger:  log.With(slog.String("component", component)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b, nil
}

func (b *base) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, b.logger)
}

// emit publishes an event after a commit. Handler failures are logged and
// do not fail the operation that already committed.
func (b *base) emit(ctx context.Context, eventType string, userID, entityID uuid.UUID) {
	event := events.NewEvent(eventType, userID, entityID, b.now())
	if err := b.emitter.EmitEvent(ctx, event); err != nil {
		b.log(ctx).Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("entity_id", entityID.String()),
			slog.String("error", err.Error()))
	}
}
