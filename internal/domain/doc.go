// Package domain contains the core entities of the reading-notes model:
// books, the notes captured while reading them, the cards promoted from
// those notes, the buckets cards are filed into, and per-user settings.
//
// Entities validate themselves and own their state transitions. Everything
// here is independent of storage and transport; the error kinds declared in
// errors.go are the vocabulary the outer layers map to responses.
package domain
