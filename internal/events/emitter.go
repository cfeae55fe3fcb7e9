package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter dispatches events synchronously to its registered
// handlers, in registration order.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With(slog.String("component", "event_emitter")),
	}
}

// RegisterHandler subscribes handler to every event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	n := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered event handler", slog.Int("handler_count", n))
}

// EmitEvent delivers event to every handler. A failing handler does not
// stop delivery; all failures are joined into the returned error. Delivery
// stops early if ctx is done.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	log := e.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("user_id", event.UserID.String()),
		slog.String("entity_id", event.EntityID.String()))
	log.Debug("emitting event", slog.Int("handler_count", len(handlers)))

	var errs []error
	for i, handler := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed",
				slog.Int("handler_index", i),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("handler %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
