package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
)

func TestRunSimpleGroupBy(t *testing.T) {
	db := &fakeDB{
		rows: [][]any{
			{"app.bsky.feed.post", int64(120)},
			{"app.bsky.feed.like", int64(45)},
		},
	}
	results, err := Run(context.Background(), db, dialect.Sqlite{}, Request{
		Collection: "app.bsky.feed.post",
		GroupBy:    []GroupByField{{Kind: Simple, Field: "collection"}},
		Order:      CountDesc,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"app.bsky.feed.post"}, results[0].Values)
	assert.Equal(t, int64(120), results[0].Count)
	assert.Equal(t, []string{"app.bsky.feed.like"}, results[1].Values)
	assert.Equal(t, int64(45), results[1].Count)
}

func TestRunNoGroupByIsOverallCount(t *testing.T) {
	db := &fakeDB{rows: [][]any{{int64(7)}}}
	results, err := Run(context.Background(), db, dialect.Sqlite{}, Request{
		Collection: "app.bsky.feed.post",
		Order:      CountDesc,
		Limit:      1,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Values)
	assert.Equal(t, int64(7), results[0].Count)
}

func TestRunDateTruncGroupBy(t *testing.T) {
	db := &fakeDB{rows: [][]any{{"2024-01-01", int64(3)}}}
	results, err := Run(context.Background(), db, dialect.Postgres{}, Request{
		Collection: "app.bsky.feed.post",
		GroupBy: []GroupByField{
			{Kind: DateTrunc, Field: "createdAt", Interval: dialect.Day},
		},
		Order: CountAsc,
		Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"2024-01-01"}, results[0].Values)
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "DESC", CountDesc.String())
	assert.Equal(t, "ASC", CountAsc.String())
}
