// Package store declares the persistence interfaces the services use and
// the error values every backend reports.
//
// Every operation is scoped by user: an entity owned by another user is
// reported exactly as a missing one.
package store
