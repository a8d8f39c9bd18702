package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // driver name "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // driver name "postgres"
	_ "modernc.org/sqlite" // driver name "sqlite"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

// AdapterType selects the database library a Session is built on.
type AdapterType string

// Adapter type constants
const (
	AdapterPGXPool AdapterType = "pgx.pool"
	AdapterSQLDB   AdapterType = "sql.db"
	AdapterSQLXDB  AdapterType = "sqlx.db"
	AdapterSQLite  AdapterType = "sqlite"
)

const (
	driverNamePostgres = "postgres"
	driverNamePGX      = "pgx"
	driverNameSQLite   = "sqlite"
	defaultConnTimeout = time.Second * 5

	// pgxpool has no setting for an unlimited lifetime
	unlimitedConnDuration = 100 * 365 * 24 * time.Hour
)

// Config describes how Connect reaches the engine.
type Config struct {
	AdapterType AdapterType
	DSN         string
}

// SupportedAdapterTypes lists all adapter types Connect accepts.
func SupportedAdapterTypes() []AdapterType {
	return []AdapterType{AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB, AdapterSQLite}
}

// Connect opens a Session that owns its connection; Close releases it.
//
// Every adapter is limited to a single open connection, so session scoped state created by setup
// statements (temporary tables, SET commands) is visible to all later statements.
func Connect(ctx context.Context, cfg Config, options ...Option) (*Session, error) {
	switch cfg.AdapterType {
	case AdapterPGXPool:
		return connectPGXPool(ctx, cfg.DSN, options...)

	case AdapterSQLDB:
		db, err := openSQLDB(ctx, driverNamePostgres, cfg.DSN)
		if err != nil {
			return nil, err
		}

		return withCloser(NewSessionFromSQLDB(db, options...))(db.Close)

	case AdapterSQLXDB:
		db, err := openSQLDB(ctx, driverNamePGX, cfg.DSN)
		if err != nil {
			return nil, err
		}
		dbx := sqlx.NewDb(db, driverNamePGX)

		return withCloser(NewSessionFromSQLX(dbx, options...))(dbx.Close)

	case AdapterSQLite:
		db, err := openSQLDB(ctx, driverNameSQLite, cfg.DSN)
		if err != nil {
			return nil, err
		}
		options = append([]Option{WithDialect(DialectSQLite)}, options...)

		return withCloser(NewSessionFromSQLDB(db, options...))(db.Close)

	default:
		return nil, fmt.Errorf("%w: %q", snapshot.ErrUnsupportedAdapterType, cfg.AdapterType)
	}
}

func connectPGXPool(ctx context.Context, dsn string, options ...Option) (*Session, error) {
	poolConfig, err := newPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return withCloser(NewSessionFromPGXPool(pool, options...))(func() error {
		pool.Close()
		return nil
	})
}

// newPGXPoolConfig builds a pool holding exactly one connection that is never recycled,
// so session scoped setup state survives runs of any length.
func newPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	poolConfig.MaxConns = 1
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = unlimitedConnDuration
	poolConfig.MaxConnLifetimeJitter = 0
	poolConfig.MaxConnIdleTime = unlimitedConnDuration
	poolConfig.ConnConfig.ConnectTimeout = defaultConnTimeout

	return poolConfig, nil
}

func openSQLDB(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// one connection: setup state must be visible to every later statement
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}

// withCloser attaches the connection closer to a freshly built session, or closes the connection
// right away if building the session failed.
func withCloser(session *Session, buildErr error) func(closer func() error) (*Session, error) {
	return func(closer func() error) (*Session, error) {
		if buildErr != nil {
			return nil, errors.Join(buildErr, closer())
		}

		session.closer = closer

		return session, nil
	}
}
