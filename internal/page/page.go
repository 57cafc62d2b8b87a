// Package page orchestrates paginated reads over the record table,
// composing the where, cursor, order, and predicate packages.
package page

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/cursor"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/order"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/predicate"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/where"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// columns is the fixed record-table projection the engine selects.
// When the query joins the actor table, selectColumns additionally selects
// actor.handle.
var columns = []string{"uri", "cid", "did", "collection", "json", "indexed_at", "rkey"}

// Request is the input to Run: the collection constraint plus the
// optional filter, sort, and pagination arguments a GraphQL resolver
// supplies.
type Request struct {
	Collection     string
	Where          *where.Clause // nil is the same as an empty clause
	Sort           order.Spec    // nil/empty defaults to order.DefaultSpec()
	Page           Args
	WithTotalCount bool
	MaxLimit       int // 0 means "no cap beyond the caller's own limit"
}

// Result is PageQuery's output.
type Result struct {
	Rows            []record.Record
	NextCursor      *string
	HasNextPage     bool
	HasPreviousPage bool
	TotalCount      *int64
}

// Run executes req against db using d as the SQL dialect. A malformed
// cursor degrades to "ignore the cursor" rather than erroring; any other
// database error is returned unchanged.
func Run(ctx context.Context, db record.DB, d dialect.Dialect, req Request) (Result, error) {
	resolved := req.Page.Resolve(req.MaxLimit)

	declaredSort := req.Sort
	if len(declaredSort) == 0 {
		declaredSort = order.DefaultSpec()
	}
	querySort := declaredSort
	if !resolved.IsForward {
		querySort = declaredSort.Inverted()
	}

	whereClause := where.Clause{}
	if req.Where != nil {
		whereClause = *req.Where
	}
	hasJoin := where.ReferencesActorHandle(whereClause)

	resolver := field.Resolver{Dialect: d, UseTablePrefix: true}
	from := "record"
	if hasJoin {
		from = "record LEFT JOIN actor ON record.did = actor.did"
	}

	decodedCursor, cursorOK := decodeCursor(resolved.Cursor, declaredSort)

	baseSQL, baseBinds := buildBaseWhere(d, resolver, req.Collection, whereClause)
	fullSQL := baseSQL
	fullBinds := append([]value.Value(nil), baseBinds...)
	if cursorOK {
		b := where.NewBinder(len(fullBinds) + 1)
		predFrag := predicate.Build(declaredSort, decodedCursor, !resolved.IsForward, resolver, d, b)
		if predFrag != "" {
			fullSQL += " AND (" + predFrag + ")"
			fullBinds = append(fullBinds, b.Values()...)
		}
	}

	orderSQL := order.Build(querySort, resolver)
	selectCols := selectColumns(hasJoin)
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT %s",
		selectCols, from, fullSQL, orderSQL, d.Placeholder(len(fullBinds)+1))
	limitBinds := append(fullBinds, value.Integer(int64(resolved.Limit+1)))

	var rows []record.Record
	var totalCount *int64

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		cursorRows, err := db.Query(gctx, sql, bindsToAny(limitBinds))
		if err != nil {
			return err
		}
		defer cursorRows.Close()
		rows, err = scanRecords(cursorRows, hasJoin)
		return err
	})
	if req.WithTotalCount {
		group.Go(func() error {
			countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", from, baseSQL)
			n, err := db.QueryCount(gctx, countSQL, bindsToAny(baseBinds))
			if err != nil {
				return err
			}
			totalCount = &n
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	hasMore := len(rows) > resolved.Limit
	if hasMore {
		rows = rows[:resolved.Limit]
	}
	if !resolved.IsForward {
		reverse(rows)
	}

	res := Result{Rows: rows, TotalCount: totalCount}
	if resolved.IsForward {
		res.HasNextPage = hasMore
		res.HasPreviousPage = cursorOK
	} else {
		res.HasNextPage = cursorOK
		res.HasPreviousPage = hasMore
	}
	if hasMore && len(rows) > 0 {
		c := cursor.Encode(rows[len(rows)-1], declaredSort.FieldNames())
		res.NextCursor = &c
	}
	return res, nil
}

// decodeCursor decodes raw using declaredSort's length, downgrading any
// decode error to "no cursor" rather than failing the query.
func decodeCursor(raw string, declaredSort order.Spec) (cursor.Decoded, bool) {
	if raw == "" {
		return cursor.Decoded{}, false
	}
	decoded, err := cursor.Decode(raw, len(declaredSort))
	if err != nil {
		return cursor.Decoded{}, false
	}
	return decoded, true
}

// buildBaseWhere renders "record.collection = ? [AND <where clause>]"
// with a fresh Binder starting at 1, returning the fragment and its
// binds. This is reused verbatim for both the row query (before the
// cursor predicate is appended) and the total-count query, which omits
// the cursor predicate entirely.
func buildBaseWhere(d dialect.Dialect, resolver field.Resolver, collection string, whereClause where.Clause) (string, []value.Value) {
	b := where.NewBinder(1)
	idx := b.Bind(value.Text(collection))
	collExpr, _ := resolver.Resolve("collection")
	sql := collExpr + " = " + d.Placeholder(idx)

	wb := where.New(d, resolver.UseTablePrefix)
	if frag := wb.Build(whereClause, b); frag != "" {
		sql += " AND " + frag
	}
	return sql, b.Values()
}

func selectColumns(hasJoin bool) string {
	cols := ""
	for i, c := range columns {
		if i > 0 {
			cols += ", "
		}
		cols += "record." + c
	}
	if hasJoin {
		cols += ", actor.handle"
	}
	return cols
}

// scanRecords drains rows into Records, scanning the fixed record-table
// projection (plus actor.handle when hasJoin) in column order.
func scanRecords(rows record.Rows, hasJoin bool) ([]record.Record, error) {
	var out []record.Record
	for rows.Next() {
		var r record.Record
		var handle *string
		dest := []any{&r.URI, &r.CID, &r.DID, &r.Collection, &r.JSON, &r.IndexedAt, &r.Rkey}
		if hasJoin {
			dest = append(dest, &handle)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if handle != nil {
			r.ActorHandle = *handle
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func bindsToAny(vs []value.Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v.Bind()
	}
	return out
}

func reverse(rows []record.Record) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
