package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

// Postgres implements Dialect for PostgreSQL, as served by jackc/pgx.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(i int) string { return "$" + strconv.Itoa(i) }

func (Postgres) Placeholders(n, start int) string {
	if n <= 0 {
		return ""
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

// JSONExtract renders col->'a'->'b'->>'c' for a multi-segment path and
// col->>'a' for a single-segment path.
func (Postgres) JSONExtract(col string, path []string) string {
	if len(path) == 0 {
		return col
	}
	var sb strings.Builder
	sb.WriteString(col)
	for i, seg := range path {
		if i == len(path)-1 {
			sb.WriteString("->>'")
		} else {
			sb.WriteString("->'")
		}
		sb.WriteString(seg)
		sb.WriteString("'")
	}
	return sb.String()
}

func (Postgres) IntegerCast(expr string) string {
	return fmt.Sprintf("(%s)::INTEGER", expr)
}

func (Postgres) Now() string { return "NOW()" }

func (Postgres) LikeOperator() string { return "ILIKE" }

func (Postgres) LikeCollation() string { return "" }

func (p Postgres) DateTrunc(expr string, interval Interval) string {
	format, ok := postgresToCharFormats[interval]
	if !ok {
		format = postgresToCharFormats[Day]
	}
	return fmt.Sprintf("TO_CHAR((%s)::timestamp, '%s')", expr, format)
}

var postgresToCharFormats = map[Interval]string{
	Hour:  "YYYY-MM-DD HH24:00:00",
	Day:   "YYYY-MM-DD",
	Week:  "IYYY-IW",
	Month: "YYYY-MM",
}

// DatetimeSortExpr wraps expr in a CASE that only attempts the timestamp
// cast when expr looks like an ISO-8601 prefix, so non-parseable values
// sort as NULL instead of raising a cast error.
func (Postgres) DatetimeSortExpr(expr string) string {
	return fmt.Sprintf(
		"CASE WHEN %s ~ '^[0-9]{4}-[0-9]{2}-[0-9]{2}' THEN (%s)::timestamp ELSE NULL END",
		expr, expr,
	)
}
