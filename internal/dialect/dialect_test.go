package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"sqlite", "sqlite", false},
		{"sqlite3", "sqlite", false},
		{"postgres", "postgres", false},
		{"postgresql", "postgres", false},
		{"pgx", "postgres", false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ByName(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestSqlitePlaceholders(t *testing.T) {
	d := Sqlite{}
	assert.Equal(t, "?", d.Placeholder(1))
	assert.Equal(t, "?", d.Placeholder(7))
	assert.Equal(t, "?, ?, ?", d.Placeholders(3, 1))
}

func TestPostgresPlaceholders(t *testing.T) {
	d := Postgres{}
	assert.Equal(t, "$1", d.Placeholder(1))
	assert.Equal(t, "$7", d.Placeholder(7))
	assert.Equal(t, "$1, $2, $3", d.Placeholders(3, 1))
	assert.Equal(t, "$4, $5", d.Placeholders(2, 4))
}

func TestSqliteJSONExtract(t *testing.T) {
	d := Sqlite{}
	got := d.JSONExtract("record.json", []string{"a", "b"})
	assert.Contains(t, got, "json_extract")
	assert.Contains(t, got, "record.json")
	assert.Contains(t, got, "$.a.b")
}

func TestPostgresJSONExtract(t *testing.T) {
	d := Postgres{}
	got := d.JSONExtract("record.json", []string{"a", "b"})
	assert.Equal(t, "record.json->'a'->>'b'", got)
}

func TestPostgresJSONExtractSingleSegment(t *testing.T) {
	d := Postgres{}
	got := d.JSONExtract("record.json", []string{"a"})
	assert.Equal(t, "record.json->>'a'", got)
}

func TestLikeOperators(t *testing.T) {
	s := Sqlite{}
	assert.Equal(t, "LIKE", s.LikeOperator())
	assert.NotEmpty(t, s.LikeCollation())

	p := Postgres{}
	assert.Equal(t, "ILIKE", p.LikeOperator())
	assert.Empty(t, p.LikeCollation())
}

func TestDateTruncIntervals(t *testing.T) {
	for _, d := range []Dialect{Sqlite{}, Postgres{}} {
		for _, iv := range []Interval{Hour, Day, Week, Month} {
			got := d.DateTrunc("record.indexed_at", iv)
			assert.NotEmpty(t, got)
		}
	}
}
