package engine

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

// ErrNegativeStatementTimeout is returned by WithStatementTimeout for negative durations.
var ErrNegativeStatementTimeout = errors.New("statement timeout must not be negative")

// Option defines a functional option for configuring a Session.
type Option func(*Session) error

// WithLogger sets the logger for the Session.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: statements with execution timing (development use)
// Info level: engine version, rows affected
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger snapshot.Logger) Option {
	return func(s *Session) error {
		s.logger = logger
		return nil
	}
}

// WithStatementTimeout bounds the execution time of every single statement.
// Zero, the default, means no timeout: a hanging engine hangs the caller.
func WithStatementTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout < 0 {
			return ErrNegativeStatementTimeout
		}

		s.statementTimeout = timeout

		return nil
	}
}

// WithDialect overrides the dialect derived from the connection type.
func WithDialect(dialect Dialect) Option {
	return func(s *Session) error {
		s.dialect = dialect
		return nil
	}
}
