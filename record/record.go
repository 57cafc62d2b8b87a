// Package record defines the row the query engine reads and writes
// nothing else to: the Record shape and the opaque database handle
// interface the engine is handed per call. Nothing in this package opens,
// pools, or closes a connection — that is the caller's job (see
// package db for concrete drivers).
package record

import (
	"context"
	"encoding/json"
)

// Record is the row produced by the engine. uri, cid, did, collection,
// and rkey are invariantly non-empty text; uri is the primary key; cid is
// unique system-wide (content addressing).
type Record struct {
	URI        string          `json:"uri"`
	CID        string          `json:"cid"`
	DID        string          `json:"did"`
	Collection string          `json:"collection"`
	JSON       json.RawMessage `json:"json"`
	IndexedAt  string          `json:"indexedAt"`
	Rkey       string          `json:"rkey"`

	// ActorHandle is populated only when the query joined the actor
	// table; empty otherwise.
	ActorHandle string `json:"actorHandle,omitempty"`
}

// Rows is a forward-only cursor over a result set, modelled on
// database/sql.Rows so concrete drivers can wrap the stdlib type
// directly. Callers must call Close once done, typically via defer.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// DB is the opaque handle the engine is given per call. It never
// inspects connection state beyond DialectName.
type DB interface {
	// DialectName reports "sqlite" or "postgres", letting the caller of
	// the engine pick the matching dialect.Dialect.
	DialectName() string

	// Query executes sql with binds and returns a row cursor. Row order
	// as returned by the database is preserved.
	Query(ctx context.Context, sql string, binds []any) (Rows, error)

	// QueryCount executes a SELECT COUNT(*)-shaped query and returns the
	// single integer result.
	QueryCount(ctx context.Context, sql string, binds []any) (int64, error)

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string, binds []any) error
}
