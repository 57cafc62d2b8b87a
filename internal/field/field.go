// Package field maps a logical GraphQL field name to the SQL expression
// that addresses it: a table column, the cross-table actorHandle, or a
// dotted JSON path against the record's json column.
package field

import (
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
)

// tableColumns is the whitelist of names that resolve directly to a
// record table column rather than a JSON path.
var tableColumns = map[string]bool{
	"uri":        true,
	"cid":        true,
	"did":        true,
	"collection": true,
	"indexed_at": true,
	"rkey":       true,
}

// datetimeFields are JSON fields whose sort ordering must tolerate
// unparseable timestamp values.
var datetimeFields = map[string]bool{
	"createdAt": true,
	"indexedAt": true,
}

// Resolver resolves logical field names to SQL expressions for one query.
// UseTablePrefix governs whether table columns are emitted as
// "record.col" or bare "col"; the page and aggregate orchestrators always
// set it, since their FROM clause always names the record table.
type Resolver struct {
	Dialect        dialect.Dialect
	UseTablePrefix bool
}

// IsTableColumn reports whether name is one of the five recognised table
// columns (or rkey).
func IsTableColumn(name string) bool { return tableColumns[name] }

// IsActorHandle reports whether name is the cross-table actorHandle field.
func IsActorHandle(name string) bool { return name == "actorHandle" }

// IsDatetimeField reports whether name is a JSON sort field requiring
// datetime validation.
func IsDatetimeField(name string) bool { return datetimeFields[name] }

// jsonPath splits a dotted field name into JSON path segments.
func jsonPath(name string) []string { return strings.Split(name, ".") }

// Resolve returns the uncast SQL expression for name and whether it is a
// JSON field (as opposed to a table column or actorHandle).
func (r Resolver) Resolve(name string) (expr string, isJSON bool) {
	switch {
	case IsActorHandle(name):
		return "actor.handle", false
	case IsTableColumn(name):
		if r.UseTablePrefix {
			return "record." + name, false
		}
		return name, false
	default:
		col := "json"
		if r.UseTablePrefix {
			col = "record.json"
		}
		return r.Dialect.JSONExtract(col, jsonPath(name)), true
	}
}

// ResolveNumeric returns expr for name wrapped in Dialect.IntegerCast when
// numeric is true and the field is a JSON field. Table columns and
// actorHandle are never cast.
func (r Resolver) ResolveNumeric(name string, numeric bool) string {
	expr, isJSON := r.Resolve(name)
	if numeric && isJSON {
		return r.Dialect.IntegerCast(expr)
	}
	return expr
}

// ResolveSortExpr returns the expression to use in an ORDER BY for name,
// wrapping datetime-typed JSON sort keys in Dialect.DatetimeSortExpr so
// unparseable values sort as NULL.
func (r Resolver) ResolveSortExpr(name string) string {
	expr, isJSON := r.Resolve(name)
	if isJSON && IsDatetimeField(name) {
		return r.Dialect.DatetimeSortExpr(expr)
	}
	return expr
}

// RequiresActorJoin reports whether name is the field that triggers the
// record LEFT JOIN actor relationship.
func RequiresActorJoin(name string) bool { return IsActorHandle(name) }
