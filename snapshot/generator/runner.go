package generator

import (
	"context"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/engine"
)

// StatementRunner executes statements against the query engine. It is satisfied by *engine.Session.
type StatementRunner interface {
	Execute(ctx context.Context, statement string) error
	Query(ctx context.Context, statement string) (engine.Rows, error)
}

// dialectReporter is implemented by runners that know their SQL dialect, e.g. *engine.Session.
type dialectReporter interface {
	Dialect() engine.Dialect
}

// defaultExplainPrefix derives the explain prefix from the runner's dialect, PostgreSQL if unknown.
func defaultExplainPrefix(runner StatementRunner) string {
	if reporter, ok := runner.(dialectReporter); ok {
		return reporter.Dialect().ExplainPrefix()
	}

	return engine.DialectPostgres.ExplainPrefix()
}
