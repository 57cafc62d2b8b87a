package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
)

func resolver(d dialect.Dialect) field.Resolver {
	return field.Resolver{Dialect: d, UseTablePrefix: true}
}

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()
	require.Len(t, spec, 1)
	assert.Equal(t, "indexed_at", spec[0].Name)
	assert.Equal(t, Desc, spec[0].Direction)
}

func TestInverted(t *testing.T) {
	spec := Spec{{Name: "indexed_at", Direction: Desc}, {Name: "rkey", Direction: Asc}}
	inv := spec.Inverted()
	require.Len(t, inv, 2)
	assert.Equal(t, Asc, inv[0].Direction)
	assert.Equal(t, Desc, inv[1].Direction)
	// Original is untouched.
	assert.Equal(t, Desc, spec[0].Direction)
}

func TestFieldNames(t *testing.T) {
	spec := Spec{{Name: "indexed_at"}, {Name: "rkey"}}
	assert.Equal(t, []string{"indexed_at", "rkey"}, spec.FieldNames())
}

func TestBuildDefaultsWhenEmpty(t *testing.T) {
	got := Build(nil, resolver(dialect.Sqlite{}))
	assert.Contains(t, got, "DESC")
	assert.Contains(t, got, "NULLS LAST")
}

func TestBuildMultiField(t *testing.T) {
	spec := Spec{{Name: "indexed_at", Direction: Desc}, {Name: "rkey", Direction: Asc}}
	got := Build(spec, resolver(dialect.Sqlite{}))
	assert.Equal(t, 2, countSubstr(got, "NULLS LAST"))
	assert.Contains(t, got, "DESC NULLS LAST, ")
}

func countSubstr(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
