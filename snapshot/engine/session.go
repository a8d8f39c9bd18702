package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/engine/internal/adapters"
)

const (
	logMsgDBQueryFailed      = "engine query execution failed"
	logMsgDBExecFailed       = "engine statement execution failed"
	logMsgCloseRowsFailed    = "failed to close engine rows"
	logMsgScanRowFailed      = "failed to scan engine row"
	logMsgIterateRowsFailed  = "failed to iterate engine rows"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgCloseSessionFailed = "failed to close engine session"
	logMsgStatementExecuted  = "executed statement"
	logMsgQueryExecuted      = "executed query"
	logMsgServerVersion      = "engine server version"
	logAttrError             = "error"
	logAttrStatement         = "statement"
	logAttrDurationMS        = "duration_ms"
	logAttrRowCount          = "row_count"
	logAttrRowsAffected      = "rows_affected"
	logAttrVersion           = "version"
	logAttrDialect           = "dialect"
)

// Session is an open connection to the query engine. It runs one statement at a time.
//
// A Session created by Connect owns its connection and releases it in Close.
// Sessions created by the NewSessionFrom* factories leave the connection to the caller; their Close is a no-op.
type Session struct {
	db               adapters.DBAdapter
	dialect          Dialect
	statementTimeout time.Duration
	logger           snapshot.Logger
	closer           func() error
}

// NewSessionFromPGXPool creates a new Session using a pgx Pool with optional configuration.
func NewSessionFromPGXPool(db *pgxpool.Pool, options ...Option) (*Session, error) {
	if db == nil {
		return nil, snapshot.ErrNilDatabaseConnection
	}

	return newSession(adapters.NewPGXAdapter(db), DialectPostgres, options...)
}

// NewSessionFromSQLDB creates a new Session using a sql.DB with optional configuration.
// The dialect defaults to PostgreSQL, use WithDialect for other engines.
func NewSessionFromSQLDB(db *sql.DB, options ...Option) (*Session, error) {
	if db == nil {
		return nil, snapshot.ErrNilDatabaseConnection
	}

	return newSession(adapters.NewSQLAdapter(db), DialectPostgres, options...)
}

// NewSessionFromSQLX creates a new Session using a sqlx.DB with optional configuration.
// The dialect defaults to PostgreSQL, use WithDialect for other engines.
func NewSessionFromSQLX(db *sqlx.DB, options ...Option) (*Session, error) {
	if db == nil {
		return nil, snapshot.ErrNilDatabaseConnection
	}

	return newSession(adapters.NewSQLXAdapter(db), DialectPostgres, options...)
}

func newSession(db adapters.DBAdapter, dialect Dialect, options ...Option) (*Session, error) {
	s := &Session{
		db:      db,
		dialect: dialect,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Dialect returns the SQL dialect of the engine behind the session.
func (s *Session) Dialect() Dialect {
	return s.dialect
}

// Execute runs a statement that only signals completion, e.g. DDL or a data load.
func (s *Session) Execute(ctx context.Context, statement string) error {
	ctx, cancel := s.statementContext(ctx)
	defer cancel()

	start := time.Now()
	result, execErr := s.db.Exec(ctx, statement)
	duration := time.Since(start)

	if execErr != nil {
		s.logStatementWithDuration(logMsgStatementExecuted, statement, duration)
		s.logError(logMsgDBExecFailed, execErr, logAttrStatement, statement)

		return errors.Join(snapshot.ErrExecutingFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		// not every driver reports affected rows for DDL, this is not a failure
		s.logDebug(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		rowsAffected = 0
	}

	s.logStatementWithDuration(logMsgStatementExecuted, statement, duration, logAttrRowsAffected, rowsAffected)

	return nil
}

// Query runs a statement that returns rows and reads all of them.
func (s *Session) Query(ctx context.Context, statement string) (Rows, error) {
	ctx, cancel := s.statementContext(ctx)
	defer cancel()

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, statement)
	if queryErr != nil {
		s.logStatementWithDuration(logMsgQueryExecuted, statement, time.Since(start))
		s.logError(logMsgDBQueryFailed, queryErr, logAttrStatement, statement)

		return nil, errors.Join(snapshot.ErrQueryingFailed, queryErr)
	}
	defer s.closeRows(rows)

	result, readErr := s.readRows(rows)
	if readErr != nil {
		return nil, readErr
	}

	s.logStatementWithDuration(logMsgQueryExecuted, statement, time.Since(start), logAttrRowCount, len(result))

	return result, nil
}

// readRows converts all remaining database rows to text rows.
func (s *Session) readRows(rows adapters.DBRows) (Rows, error) {
	result := make(Rows, 0)

	for rows.Next() {
		values, scanErr := rows.TextValues()
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)

			return nil, errors.Join(snapshot.ErrScanningRowFailed, scanErr)
		}

		result = append(result, NewRow(values...))
	}

	if iterErr := rows.Err(); iterErr != nil {
		s.logError(logMsgIterateRowsFailed, iterErr)

		return nil, errors.Join(snapshot.ErrQueryingFailed, iterErr)
	}

	return result, nil
}

// ServerVersion asks the engine for its version string.
func (s *Session) ServerVersion(ctx context.Context) (string, error) {
	sqlQuery, buildErr := s.dialect.versionQuery()
	if buildErr != nil {
		return "", errors.Join(snapshot.ErrQueryingFailed, buildErr)
	}

	rows, queryErr := s.Query(ctx, sqlQuery)
	if queryErr != nil {
		return "", queryErr
	}

	if len(rows) == 0 {
		return "", nil
	}

	version := rows[0].Text()
	s.logInfo(logMsgServerVersion, logAttrVersion, version, logAttrDialect, string(s.dialect))

	return version, nil
}

// Close releases the connection if the session owns it. It is safe to call Close more than once.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}

	closer := s.closer
	s.closer = nil

	if err := closer(); err != nil {
		s.logWarn(logMsgCloseSessionFailed, logAttrError, err.Error())
		return err
	}

	return nil
}

// statementContext derives the context for one statement, bounded by the statement timeout if configured.
func (s *Session) statementContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.statementTimeout > 0 {
		return context.WithTimeout(ctx, s.statementTimeout)
	}

	return ctx, func() {}
}

// closeRows safely closes database rows and logs any errors.
func (s *Session) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}
