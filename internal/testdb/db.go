package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/donmarco3/Book-Brain/internal/config"
	"github.com/donmarco3/Book-Brain/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection and migration during setup.
const TestTimeout = 30 * time.Second

// Environment variables consulted by DatabaseURL, in order.
const (
	EnvDatabaseURL    = "DATABASE_URL"
	EnvBookBrainDBURL = "BOOKBRAIN_DATABASE_URL"
)

// DatabaseURL returns the first non-empty test database URL.
func DatabaseURL() string {
	for _, key := range []string{EnvDatabaseURL, EnvBookBrainDBURL} {
		if url := os.Getenv(key); url != "" {
			return url
		}
	}
	return ""
}

// Open connects to the test database and applies all migrations. The test
// is skipped when no URL is set; the pool is closed on cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skipf("%s not set", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		URL:          url,
		MaxOpenConns: 5,
		MaxIdleConns: 5,
	}, nil)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, nil), "failed to migrate test database")
	return db
}

// OpenStore is Open wrapped in a postgres.Store.
func OpenStore(t *testing.T) *postgres.Store {
	t.Helper()
	return postgres.NewStore(Open(t), nil)
}
