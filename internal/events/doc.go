// Package events provides domain events and an in-memory emitter.
//
// Services emit an Event after a mutation commits. Handlers registered on
// the emitter react to it without the services knowing about them; the
// stats cache invalidator is the main consumer.
package events
