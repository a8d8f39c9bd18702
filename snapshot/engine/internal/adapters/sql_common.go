package adapters

import (
	"database/sql"
)

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows    *sql.Rows
	columns int
}

func newStdRows(rows *sql.Rows) (*stdRows, error) {
	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}

	return &stdRows{rows: rows, columns: len(columns)}, nil
}

// Next advances to the next row.
func (s *stdRows) Next() bool {
	return s.rows.Next()
}

// TextValues scans every column of the current row into a sql.NullString.
func (s *stdRows) TextValues() ([]string, error) {
	values := make([]sql.NullString, s.columns)
	dest := make([]any, s.columns)
	for i := range values {
		dest[i] = &values[i]
	}

	if err := s.rows.Scan(dest...); err != nil {
		return nil, err
	}

	texts := make([]string, s.columns)
	for i, v := range values {
		texts[i] = v.String // empty for NULL
	}

	return texts, nil
}

// Err returns the error, if any, that was encountered during iteration.
func (s *stdRows) Err() error {
	return s.rows.Err()
}

// Close closes the rows iterator.
func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
