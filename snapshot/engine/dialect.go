package engine

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
)

// Dialect identifies the SQL flavor spoken by the engine behind a session.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

const (
	explainPrefixPostgres = "EXPLAIN (FORMAT JSON) "
	explainPrefixSQLite   = "EXPLAIN QUERY PLAN "
)

// ExplainPrefix returns the directive that turns a query into an explain plan request.
// PostgreSQL-family engines are asked for structured JSON output; SQLite only offers text.
func (d Dialect) ExplainPrefix() string {
	if d == DialectSQLite {
		return explainPrefixSQLite
	}

	return explainPrefixPostgres
}

// versionQuery builds the statement returning the engine's server version.
func (d Dialect) versionQuery() (string, error) {
	function := "version"
	if d == DialectSQLite {
		function = "sqlite_version"
	}

	sqlQuery, _, err := goqu.Dialect(string(d)).Select(goqu.Func(function)).ToSQL()
	if err != nil {
		return "", err
	}

	return sqlQuery, nil
}
