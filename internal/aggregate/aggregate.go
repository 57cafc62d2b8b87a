// Package aggregate implements the bucketed-count GROUP BY builder.
package aggregate

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/where"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// GroupByKind tags whether a GroupByField groups on the raw field or a
// date-truncated version of it.
type GroupByKind int

const (
	Simple GroupByKind = iota
	DateTrunc
)

// GroupByField is one grouping dimension.
type GroupByField struct {
	Kind     GroupByKind
	Field    string
	Interval dialect.Interval // only meaningful when Kind == DateTrunc
}

// Order is the direction count is sorted in.
type Order int

const (
	CountAsc Order = iota
	CountDesc
)

func (o Order) String() string {
	if o == CountDesc {
		return "DESC"
	}
	return "ASC"
}

// Request is the input to Run.
type Request struct {
	Collection string
	GroupBy    []GroupByField
	Where      *where.Clause
	Order      Order
	Limit      int
}

// Result is one grouped row: the stringified value of each GroupByField,
// plus its count.
type Result struct {
	Values []string
	Count  int64
}

// Run executes req and returns one Result per distinct group.
func Run(ctx context.Context, db record.DB, d dialect.Dialect, req Request) ([]Result, error) {
	resolver := field.Resolver{Dialect: d, UseTablePrefix: true}

	b := where.NewBinder(1)
	collIdx := b.Bind(value.Text(req.Collection))
	collExpr, _ := resolver.Resolve("collection")
	whereSQL := collExpr + " = " + d.Placeholder(collIdx)

	if req.Where != nil {
		wb := where.New(d, true)
		if frag := wb.Build(*req.Where, b); frag != "" {
			whereSQL += " AND " + frag
		}
	}

	selectExprs := make([]string, len(req.GroupBy))
	groupExprs := make([]string, len(req.GroupBy))
	for i, g := range req.GroupBy {
		expr := fieldExpr(g, resolver, d)
		selectExprs[i] = fmt.Sprintf("%s AS field_%d", expr, i)
		groupExprs[i] = fmt.Sprintf("field_%d", i)
	}

	selectList := strings.Join(selectExprs, ", ")
	if selectList != "" {
		selectList += ", "
	}
	groupBy := ""
	if len(groupExprs) > 0 {
		groupBy = " GROUP BY " + strings.Join(groupExprs, ", ")
	}

	sql := fmt.Sprintf(
		"SELECT %sCOUNT(*) AS count FROM record WHERE %s%s ORDER BY count %s LIMIT %s",
		selectList, whereSQL, groupBy, req.Order, d.Placeholder(b.Next()),
	)
	binds := append(b.Values(), value.Integer(int64(req.Limit)))

	rows, err := db.Query(ctx, sql, bindsToAny(binds))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	n := len(req.GroupBy)
	for rows.Next() {
		vals := make([]any, n)
		dest := make([]any, 0, n+1)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		var count int64
		dest = append(dest, &count)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		strs := make([]string, n)
		for i, v := range vals {
			strs[i] = stringifyGroupValue(v)
		}
		results = append(results, Result{Values: strs, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// fieldExpr resolves a GroupByField to its SELECT-list SQL expression,
// applying Dialect.DateTrunc when Kind == DateTrunc.
func fieldExpr(g GroupByField, resolver field.Resolver, d dialect.Dialect) string {
	expr, _ := resolver.Resolve(g.Field)
	if g.Kind == DateTrunc {
		return d.DateTrunc(expr, g.Interval)
	}
	return expr
}

func stringifyGroupValue(v any) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func bindsToAny(vs []value.Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v.Bind()
	}
	return out
}
