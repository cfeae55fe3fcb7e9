// Package testdb connects integration tests to a migrated PostgreSQL
// database. Tests skip when no database URL is configured.
package testdb
