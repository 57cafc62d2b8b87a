package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, "sqlite", s.DialectName())

	ctx := context.Background()
	require.NoError(t, s.Exec(ctx, `CREATE TABLE record (
		uri TEXT PRIMARY KEY, cid TEXT, did TEXT, collection TEXT,
		json TEXT, indexed_at TEXT, rkey TEXT
	)`, nil))

	require.NoError(t, s.Exec(ctx,
		`INSERT INTO record (uri, cid, did, collection, json, indexed_at, rkey)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		[]any{"at://did:plc:abc/app.bsky.feed.post/1", "bafy1", "did:plc:abc", "app.bsky.feed.post", `{"text":"hi"}`, "2024-01-01T00:00:00Z", "1"},
	))

	n, err := s.QueryCount(ctx, "SELECT COUNT(*) FROM record", nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	rows, err := s.Query(ctx, "SELECT uri, collection FROM record", nil)
	require.NoError(t, err)
	defer rows.Close()

	var got int
	for rows.Next() {
		var uri, collection string
		require.NoError(t, rows.Scan(&uri, &collection))
		require.Equal(t, "at://did:plc:abc/app.bsky.feed.post/1", uri)
		require.Equal(t, "app.bsky.feed.post", collection)
		got++
	}
	require.NoError(t, rows.Err())
	require.Equal(t, 1, got)
}
