package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the services.
const (
	BookCreated  = "book.created"
	BookUpdated  = "book.updated"
	BookDeleted  = "book.deleted"
	NoteCreated  = "note.created"
	NoteDeleted  = "note.deleted"
	NotePromoted = "note.promoted"
	CardCreated  = "card.created"
	CardUpdated  = "card.updated"
	CardDeleted  = "card.deleted"
)

// Event records a committed change to one of a user's entities.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the event type constants
	Type string `json:"type"`

	// UserID owns the changed entity
	UserID uuid.UUID `json:"userId"`

	// EntityID identifies the changed entity
	EntityID uuid.UUID `json:"entityId"`

	// OccurredAt is when the change committed
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent creates an Event with a fresh ID.
func NewEvent(eventType string, userID, entityID uuid.UUID, at time.Time) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: at.UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent implements EventHandler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
