package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/cursor"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/order"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/where"
)

func TestForwardDescUsesLessThan(t *testing.T) {
	spec := order.Spec{{Name: "indexed_at", Direction: order.Desc}}
	decoded := cursor.Decoded{FieldValues: []string{"2024-01-01"}, CID: "cid1"}
	resolver := field.Resolver{Dialect: dialect.Sqlite{}}
	binder := where.NewBinder(1)

	got := Build(spec, decoded, false, resolver, dialect.Sqlite{}, binder)
	assert.Contains(t, got, "indexed_at < ?")
	assert.Contains(t, got, "cid < ?")
	assert.Equal(t, 3, binder.Next()-1)
}

func TestBackwardInvertsComparison(t *testing.T) {
	spec := order.Spec{{Name: "indexed_at", Direction: order.Desc}}
	decoded := cursor.Decoded{FieldValues: []string{"2024-01-01"}, CID: "cid1"}
	resolver := field.Resolver{Dialect: dialect.Sqlite{}}
	binder := where.NewBinder(1)

	got := Build(spec, decoded, true, resolver, dialect.Sqlite{}, binder)
	assert.Contains(t, got, "indexed_at > ?")
	assert.Contains(t, got, "cid > ?")
}

func TestMultiFieldProgressiveTuple(t *testing.T) {
	spec := order.Spec{
		{Name: "indexed_at", Direction: order.Desc},
		{Name: "rkey", Direction: order.Asc},
	}
	decoded := cursor.Decoded{FieldValues: []string{"2024-01-01", "r1"}, CID: "cid1"}
	resolver := field.Resolver{Dialect: dialect.Sqlite{}}
	binder := where.NewBinder(1)

	got := Build(spec, decoded, false, resolver, dialect.Sqlite{}, binder)
	// 3 OR-branches for a 2-field spec: cmp(f1), f1=v1 AND cmp(f2), f1=v1 AND f2=v2 AND cmp(cid)
	assert.Equal(t, 2, countSubstr(got, " OR "))
	assert.Contains(t, got, "indexed_at < ?")
	assert.Contains(t, got, "rkey > ?")
	assert.Contains(t, got, "cid > ?")
}

func countSubstr(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
