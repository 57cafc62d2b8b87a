// Package db provides the concrete record.DB implementations the server
// and CLI wire the query engine against: a modernc.org/sqlite handle and
// a jackc/pgx/v5 handle, both going through database/sql so record.Rows
// wraps *sql.Rows directly.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// SQLite wraps a *sql.DB opened against the modernc.org/sqlite pure-Go
// driver (no cgo), the way the teacher's serv.initSqlite picks the
// "sqlite" driver name for database/sql.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens path (a file path or ":memory:") with sane pool
// defaults for a single-process indexer.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	conn.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers; avoid pool contention
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return &SQLite{db: conn}, nil
}

func (s *SQLite) DialectName() string { return "sqlite" }

func (s *SQLite) Query(ctx context.Context, query string, binds []any) (record.Rows, error) {
	return s.db.QueryContext(ctx, query, binds...)
}

func (s *SQLite) QueryCount(ctx context.Context, query string, binds []any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, binds...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLite) Exec(ctx context.Context, query string, binds []any) error {
	_, err := s.db.ExecContext(ctx, query, binds...)
	return err
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error { return s.db.Close() }
