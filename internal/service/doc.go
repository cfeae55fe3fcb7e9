// Package service contains the application use cases: the entity
// operations, the note promotion workflow, bucket association and the
// stats engine.
//
// Every operation takes the current user's ID explicitly and scopes all
// reads and writes to it. Services depend on store.Store and never on a
// concrete backend; multi-step mutations run inside store.Store.RunInTx so
// they either commit completely or not at all. Domain events are emitted
// after a successful commit.
//
// Errors matching domain.ErrValidation, domain.ErrNotFound or
// domain.ErrConflict are returned as they are; any other failure is wrapped
// in a *ServiceError that names the operation.
package service
