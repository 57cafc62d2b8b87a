package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
)

// Postgres wraps a *sql.DB registered through pgx/v5's stdlib adapter, the
// way the teacher's serv.initPostgres registers a pgx.ParseConfig-derived
// connector and opens it with driver name "pgx".
type Postgres struct {
	db *sql.DB
}

// PostgresOptions configures pool limits; zero values fall back to
// database/sql defaults.
type PostgresOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenPostgres opens connString (a postgres:// URL or keyword/value DSN)
// through pgx, applies the non-zero pool limits in opts, and pings the
// server. It has no TLS or search_path handling of its own beyond what
// connString itself specifies.
func OpenPostgres(connString string, opts PostgresOptions) (*Postgres, error) {
	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	conn := stdlib.OpenDB(*cfg)
	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := conn.Ping(); err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Postgres{db: conn}, nil
}

func (p *Postgres) DialectName() string { return "postgres" }

func (p *Postgres) Query(ctx context.Context, query string, binds []any) (record.Rows, error) {
	return p.db.QueryContext(ctx, query, binds...)
}

func (p *Postgres) QueryCount(ctx context.Context, query string, binds []any) (int64, error) {
	var n int64
	if err := p.db.QueryRowContext(ctx, query, binds...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *Postgres) Exec(ctx context.Context, query string, binds []any) error {
	_, err := p.db.ExecContext(ctx, query, binds...)
	return err
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error { return p.db.Close() }
