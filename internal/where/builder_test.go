package where

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
)

func ptrBool(b bool) *bool { return &b }
func ptrVal(v value.Value) *value.Value { return &v }
func ptrStr(s string) *string { return &s }

func TestBuildEmptyClause(t *testing.T) {
	b := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	frag := b.Build(Clause{}, binder)
	assert.Equal(t, "", frag)
	assert.Empty(t, binder.Values())
}

func TestBuildSingleEqTableColumn(t *testing.T) {
	clause := Clause{Fields: map[string]Condition{
		"collection": {Eq: ptrVal(value.Text("app.bsky.feed.post"))},
	}}

	sb := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	require.Equal(t, "collection = ?", sb.Build(clause, binder))
	require.Equal(t, []value.Value{value.Text("app.bsky.feed.post")}, binder.Values())

	pb := New(dialect.Postgres{}, false)
	binder2 := NewBinder(1)
	require.Equal(t, "collection = $1", pb.Build(clause, binder2))
}

func TestBuildNumericRangeOnJSONField(t *testing.T) {
	clause := Clause{Fields: map[string]Condition{
		"age": {Gt: ptrVal(value.Integer(10)), Lt: ptrVal(value.Integer(100)), IsNumeric: true},
	}}
	b := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	got := b.Build(clause, binder)
	want := "CAST(json_extract(json, '$.age') AS INTEGER) > ? AND " +
		"CAST(json_extract(json, '$.age') AS INTEGER) < ?"
	assert.Equal(t, want, got)
	assert.Equal(t, []value.Value{value.Integer(10), value.Integer(100)}, binder.Values())
}

func TestBuildContainsOnNestedJSON(t *testing.T) {
	clause := Clause{Fields: map[string]Condition{
		"user.name": {Contains: ptrStr("hello")},
	}}
	b := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	got := b.Build(clause, binder)
	want := "json_extract(json, '$.user.name') LIKE '%' || ? || '%' COLLATE NOCASE"
	assert.Equal(t, want, got)
	assert.Equal(t, []value.Value{value.Text("hello")}, binder.Values())
}

func TestBuildNestedAndOr(t *testing.T) {
	clause := Clause{
		Or: []Clause{{Fields: map[string]Condition{
			"artist": {Contains: ptrStr("pearl jam")},
		}}, {Fields: map[string]Condition{
			"genre": {Eq: ptrVal(value.Text("rock"))},
		}}},
		Fields: map[string]Condition{
			"year": {Gte: ptrVal(value.Integer(2000))},
		},
	}
	b := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	got := b.Build(clause, binder)
	assert.Contains(t, got, "OR")
	assert.Contains(t, got, "AND")
	assert.Equal(t, 3, len(binder.Values()))
	assert.Equal(t, []value.Value{value.Integer(2000), value.Text("pearl jam"), value.Text("rock")}, binder.Values())
}

func TestEmptyInElision(t *testing.T) {
	clause := Clause{Fields: map[string]Condition{
		"collection": {In: []value.Value{}},
	}}
	b := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	got := b.Build(clause, binder)
	assert.Equal(t, "", got)
	assert.Empty(t, binder.Values())
}

func TestIsNullPredicateUsesUncastExpr(t *testing.T) {
	clause := Clause{Fields: map[string]Condition{
		"age": {IsNull: ptrBool(true), IsNumeric: true},
	}}
	b := New(dialect.Sqlite{}, false)
	binder := NewBinder(1)
	got := b.Build(clause, binder)
	assert.Equal(t, "json_extract(json, '$.age') IS NULL", got)
}

func TestPlaceholderConsecutiveness(t *testing.T) {
	clause := Clause{Fields: map[string]Condition{
		"a": {Eq: ptrVal(value.Integer(1))},
		"b": {In: []value.Value{value.Integer(2), value.Integer(3), value.Integer(4)}},
		"c": {Gt: ptrVal(value.Integer(5))},
	}}
	pb := New(dialect.Postgres{}, false)
	binder := NewBinder(5)
	got := pb.Build(clause, binder)
	for i := 5; i < 10; i++ {
		assert.Contains(t, got, "$"+strconv.Itoa(i))
	}
	assert.Equal(t, 10, binder.Next())
}
