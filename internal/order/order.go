// Package order emits ORDER BY clauses from a sort spec.
package order

import (
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
)

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Invert flips Asc<->Desc, used when the caller reverses every direction
// for backward pagination.
func (d Direction) Invert() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortField pairs a logical field name with a direction.
type SortField struct {
	Name      string
	Direction Direction
}

// Spec is an ordered list of SortFields. A nil/empty Spec defaults to
// [(indexed_at, desc)] wherever the caller applies DefaultSpec.
type Spec []SortField

// DefaultSpec is the engine-wide default sort order.
func DefaultSpec() Spec {
	return Spec{{Name: "indexed_at", Direction: Desc}}
}

// FieldNames returns the sort field names in order, used by the cursor
// codec to know which fields to extract.
func (s Spec) FieldNames() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Inverted returns a copy of s with every direction flipped, for the
// backward-pagination query sort.
func (s Spec) Inverted() Spec {
	out := make(Spec, len(s))
	for i, f := range s {
		out[i] = SortField{Name: f.Name, Direction: f.Direction.Invert()}
	}
	return out
}

// Build emits the ORDER BY clause body (without the "ORDER BY " prefix)
// for spec, using resolver to translate field names into SQL expressions.
// Every fragment ends with "NULLS LAST"; an empty spec defaults to
// "indexed_at DESC NULLS LAST".
func Build(spec Spec, resolver field.Resolver) string {
	if len(spec) == 0 {
		spec = DefaultSpec()
	}
	parts := make([]string, len(spec))
	for i, f := range spec {
		expr := resolver.ResolveSortExpr(f.Name)
		parts[i] = expr + " " + f.Direction.String() + " NULLS LAST"
	}
	return strings.Join(parts, ", ")
}
