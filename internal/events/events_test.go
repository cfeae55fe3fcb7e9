package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 2, 1, 8, 0, 0, 0, time.FixedZone("CET", 3600))

func TestNewEvent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardID := uuid.New()

	event := NewEvent(CardUpdated, userID, cardID, testNow)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, CardUpdated, event.Type)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, cardID, event.EntityID)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, event.OccurredAt.Equal(testNow))

	assert.NotEqual(t, event.ID, NewEvent(CardUpdated, userID, cardID, testNow).ID)
}

func TestNopEmitter(t *testing.T) {
	t.Parallel()

	var emitter EventEmitter = NopEmitter{}
	assert.NoError(t, emitter.EmitEvent(context.Background(), NewEvent(BookCreated, uuid.New(), uuid.New(), testNow)))
}
