// Package dialect centralises every per-database syntactic difference the
// query engine needs: placeholder syntax, JSON extraction, integer casting,
// date truncation, and the current-time expression. Every function here is
// pure — no connection state, no I/O.
package dialect

import "fmt"

// Interval names accepted by DateTrunc.
type Interval string

const (
	Hour  Interval = "hour"
	Day   Interval = "day"
	Week  Interval = "week"
	Month Interval = "month"
)

// Dialect abstracts the SQL surface that differs between SQLite and
// PostgreSQL. Implementations are stateless and safe for concurrent use.
type Dialect interface {
	// Name identifies the dialect for logging/diagnostics.
	Name() string

	// Placeholder renders the i'th (1-based) bind parameter placeholder.
	Placeholder(i int) string

	// Placeholders renders n consecutive placeholders starting at start
	// (1-based), comma separated.
	Placeholders(n, start int) string

	// JSONExtract renders an expression that extracts a single JSON path
	// (dot-separated) out of a JSON/JSONB column.
	JSONExtract(col string, path []string) string

	// IntegerCast wraps expr so it is compared/sorted as an integer.
	// Only ever applied to JSON field expressions; table columns are
	// never cast.
	IntegerCast(expr string) string

	// Now renders the current-time SQL expression.
	Now() string

	// LikeOperator renders the case-insensitive substring match operator.
	LikeOperator() string

	// LikeCollation renders the trailing collation clause required to make
	// LikeOperator case-insensitive (empty string if the operator is
	// already case-insensitive, as with Postgres ILIKE).
	LikeCollation() string

	// DateTrunc renders expr truncated to the given interval, formatted as
	// a sortable/groupable string.
	DateTrunc(expr string, interval Interval) string

	// DatetimeSortExpr wraps expr (a JSON field expression) so that values
	// which do not parse as a timestamp are coerced to SQL NULL, letting
	// NULLS LAST push them after valid rows.
	DatetimeSortExpr(expr string) string
}

// ByName returns the Dialect registered under name ("sqlite" or
// "postgres"). It is the single switch point a caller uses to turn a
// configured database type string into a Dialect value.
func ByName(name string) (Dialect, error) {
	switch name {
	case "sqlite", "sqlite3":
		return Sqlite{}, nil
	case "postgres", "postgresql", "pgx":
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("dialect: unknown dialect %q", name)
	}
}
