package dialect

import "strings"

// Sqlite implements Dialect for SQLite, as served by modernc.org/sqlite.
type Sqlite struct{}

func (Sqlite) Name() string { return "sqlite" }

func (Sqlite) Placeholder(int) string { return "?" }

func (Sqlite) Placeholders(n, start int) string {
	if n <= 0 {
		return ""
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}

func (Sqlite) JSONExtract(col string, path []string) string {
	return "json_extract(" + col + ", '$." + strings.Join(path, ".") + "')"
}

func (Sqlite) IntegerCast(expr string) string {
	return "CAST(" + expr + " AS INTEGER)"
}

func (Sqlite) Now() string { return "datetime('now')" }

func (Sqlite) LikeOperator() string { return "LIKE" }

func (Sqlite) LikeCollation() string { return "COLLATE NOCASE" }

func (s Sqlite) DateTrunc(expr string, interval Interval) string {
	format, ok := sqliteStrftimeFormats[interval]
	if !ok {
		format = sqliteStrftimeFormats[Day]
	}
	return "strftime('" + format + "', " + expr + ")"
}

var sqliteStrftimeFormats = map[Interval]string{
	Hour:  "%Y-%m-%d %H:00:00",
	Day:   "%Y-%m-%d",
	Week:  "%Y-W%W",
	Month: "%Y-%m",
}

// DatetimeSortExpr coerces unparseable timestamps to NULL. strftime itself
// returns NULL when it cannot parse its input, so no CASE is required.
func (Sqlite) DatetimeSortExpr(expr string) string {
	return "strftime('%Y-%m-%d %H:%M:%f', " + expr + ")"
}
