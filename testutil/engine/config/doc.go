// Package config provides engine connection configuration for plan snapshot testing.
//
// It contains factory functions for creating engine sessions using the supported adapters
// (pgx.Pool, sql.DB, sqlx.DB, sqlite) with pre-configured test DSNs.
//
// SQLite sessions run fully in memory and are always available. PostgreSQL sessions need a
// reachable server whose DSN is supplied in PLANSNAPSHOT_TEST_DSN; tests using them are
// skipped otherwise.
package config
