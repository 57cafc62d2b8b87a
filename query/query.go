// Package query is the single entry point resolvers call into, the way
// core.GraphJin is graphjin's single entry point for its compiler and
// executor. Engine wires a dialect to the page/aggregate orchestrators
// without exposing internal/* directly to callers.
package query

import (
	"context"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/aggregate"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/order"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/page"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/where"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// Engine is the query engine a resolver layer holds one instance of per
// database handle. It is stateless beyond the Dialect it was built with:
// no caches, no background goroutines.
type Engine struct {
	db record.DB
	d  dialect.Dialect
}

// New builds an Engine for db, resolving the SQL dialect from
// db.DialectName().
func New(db record.DB) (*Engine, error) {
	d, err := dialect.ByName(db.DialectName())
	if err != nil {
		return nil, err
	}
	return &Engine{db: db, d: d}, nil
}

// PageArgs is the resolver-facing pagination argument pair.
type PageArgs = page.Args

// SortSpec is the resolver-facing sort specification.
type SortSpec = order.Spec

// SortField names one field plus direction in a SortSpec.
type SortField = order.SortField

// Clause is the resolver-facing WHERE-clause tree.
type Clause = where.Clause

// Condition is a single WHERE condition within a Clause.
type Condition = where.Condition

// Page is the result of a paginated collection query.
type Page struct {
	Rows            []record.Record
	NextCursor      *string
	HasNextPage     bool
	HasPreviousPage bool
	TotalCount      *int64
}

// ListRequest is the input to List.
type ListRequest struct {
	Collection     string
	Where          *Clause
	Sort           SortSpec
	Page           PageArgs
	WithTotalCount bool
	MaxLimit       int
}

// List resolves a paginated collection read.
func (e *Engine) List(ctx context.Context, req ListRequest) (Page, error) {
	res, err := page.Run(ctx, e.db, e.d, page.Request{
		Collection:     req.Collection,
		Where:          req.Where,
		Sort:           req.Sort,
		Page:           req.Page,
		WithTotalCount: req.WithTotalCount,
		MaxLimit:       req.MaxLimit,
	})
	if err != nil {
		return Page{}, err
	}
	return Page{
		Rows:            res.Rows,
		NextCursor:      res.NextCursor,
		HasNextPage:     res.HasNextPage,
		HasPreviousPage: res.HasPreviousPage,
		TotalCount:      res.TotalCount,
	}, nil
}

// NotificationsRequest is the input to Notifications.
type NotificationsRequest struct {
	DID         string
	Collections []string
	Page        PageArgs
	MaxLimit    int
}

// Notifications resolves the notifications feed variant.
func (e *Engine) Notifications(ctx context.Context, req NotificationsRequest) (Page, error) {
	res, err := page.RunNotifications(ctx, e.db, e.d, page.NotificationsRequest{
		DID:         req.DID,
		Collections: req.Collections,
		Page:        req.Page,
		MaxLimit:    req.MaxLimit,
	})
	if err != nil {
		return Page{}, err
	}
	return Page{
		Rows:            res.Rows,
		NextCursor:      res.NextCursor,
		HasNextPage:     res.HasNextPage,
		HasPreviousPage: res.HasPreviousPage,
		TotalCount:      res.TotalCount,
	}, nil
}

// GroupByKind tags whether an AggregateRequest groups on a raw field or a
// date-truncated one.
type GroupByKind = aggregate.GroupByKind

const (
	GroupBySimple    = aggregate.Simple
	GroupByDateTrunc = aggregate.DateTrunc
)

// GroupByField is one grouping dimension.
type GroupByField = aggregate.GroupByField

// AggregateOrder is the direction count is sorted in.
type AggregateOrder = aggregate.Order

const (
	CountAsc  = aggregate.CountAsc
	CountDesc = aggregate.CountDesc
)

// AggregateRequest is the input to Aggregate.
type AggregateRequest struct {
	Collection string
	GroupBy    []GroupByField
	Where      *Clause
	Order      AggregateOrder
	Limit      int
}

// AggregateResult is one grouped row: the stringified value of each
// GroupByField, plus its count.
type AggregateResult = aggregate.Result

// Aggregate resolves a bucketed-count GROUP BY query.
func (e *Engine) Aggregate(ctx context.Context, req AggregateRequest) ([]AggregateResult, error) {
	return aggregate.Run(ctx, e.db, e.d, aggregate.Request{
		Collection: req.Collection,
		GroupBy:    req.GroupBy,
		Where:      req.Where,
		Order:      req.Order,
		Limit:      req.Limit,
	})
}
