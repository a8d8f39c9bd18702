// Package adapters provide database adapter implementations for the engine session.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the session to work with any supported connection type.
//
// Rows are always handed out as text: every column value is converted to its textual form
// by the adapter, so callers never depend on driver specific scan behavior.
package adapters
