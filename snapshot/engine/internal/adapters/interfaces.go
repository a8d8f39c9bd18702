package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the engine session.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	// TextValues returns the current row's columns in textual form, NULL as an empty string.
	TextValues() ([]string, error)
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
