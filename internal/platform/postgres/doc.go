// Package postgres provides the PostgreSQL implementation of the store
// interfaces defined in internal/store, together with the embedded goose
// migrations that create its schema.
//
// Stores accept a store.DBTX so the same code runs on a *sql.DB or inside
// a *sql.Tx. Store.RunInTx wires the two together.
package postgres
