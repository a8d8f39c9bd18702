package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/engine"
)

// TestDSNEnvVar names the environment variable holding the PostgreSQL test DSN.
const TestDSNEnvVar = "PLANSNAPSHOT_TEST_DSN"

// SQLiteMemoryDSN returns the DSN for a private in-memory SQLite database.
func SQLiteMemoryDSN() string {
	return ":memory:"
}

// PostgresTestDSN returns the DSN for the PostgreSQL test database, if configured.
func PostgresTestDSN() (string, bool) {
	dsn := os.Getenv(TestDSNEnvVar)
	return dsn, dsn != ""
}

// SQLiteSession opens an in-memory SQLite session which is closed when the test ends.
func SQLiteSession(t testing.TB, options ...engine.Option) *engine.Session {
	t.Helper()

	session, err := engine.Connect(
		context.Background(),
		engine.Config{AdapterType: engine.AdapterSQLite, DSN: SQLiteMemoryDSN()},
		options...,
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
	})

	return session
}

// PostgresSessionOrSkip opens a PostgreSQL session with the given adapter type,
// or skips the test if no test DSN is configured.
func PostgresSessionOrSkip(t testing.TB, adapterType engine.AdapterType, options ...engine.Option) *engine.Session {
	t.Helper()

	dsn, ok := PostgresTestDSN()
	if !ok {
		t.Skipf("%s not set, skipping PostgreSQL test", TestDSNEnvVar)
	}

	session, err := engine.Connect(
		context.Background(),
		engine.Config{AdapterType: adapterType, DSN: dsn},
		options...,
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
	})

	return session
}
