// Package engine provides the session used to run statements against the database engine
// whose explain plans are captured.
//
// A Session wraps one of the supported connection types (pgx, sql.DB, sqlx) and exposes
// two operations: Execute for commands that only signal completion, and Query for
// statements that return rows. Rows are handed out as text, see Row.
//
// Usage examples:
//
//	// Session owning its connection, released by Close
//	session, err := engine.Connect(ctx, engine.Config{
//		AdapterType: engine.AdapterPGXPool,
//		DSN:         dsn,
//	}, engine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//	defer session.Close()
//
//	// Session over a caller-owned pool
//	pool, _ := pgxpool.New(ctx, dsn)
//	session, _ := engine.NewSessionFromPGXPool(pool, engine.WithStatementTimeout(30*time.Second))
//
//	err = session.Execute(ctx, "CREATE TABLE t (a INT)")
//	rows, err := session.Query(ctx, "EXPLAIN (FORMAT JSON) SELECT a FROM t")
package engine
