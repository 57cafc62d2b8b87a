// Package where implements a WHERE-clause algebra: a tree of per-field
// conditions combined with nested AND/OR composition, folded into
// parameterized SQL with deterministic placeholder numbering.
package where

import "github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"

// Condition is the set of operators applied to a single logical field.
// Every operator is independently present or absent; multiple present
// operators compose with AND.
type Condition struct {
	Eq        *value.Value
	In        []value.Value
	Contains  *string
	Gt        *value.Value
	Gte       *value.Value
	Lt        *value.Value
	Lte       *value.Value
	IsNull    *bool
	IsNumeric bool
}

// IsEmpty reports whether every operator is absent, in which case the
// condition contributes nothing to the emitted SQL.
func (c Condition) IsEmpty() bool {
	return c.Eq == nil && c.In == nil && c.Contains == nil &&
		c.Gt == nil && c.Gte == nil && c.Lt == nil && c.Lte == nil && c.IsNull == nil
}

// hasRange reports whether any ordered-comparison operator is present;
// used to decide whether IsNumeric triggers an integer cast.
func (c Condition) hasRange() bool {
	return c.Gt != nil || c.Gte != nil || c.Lt != nil || c.Lte != nil
}

// Clause is a WhereClause tree node: a mapping of field name to Condition,
// combined with AND, plus nested AND/OR children.
type Clause struct {
	Fields map[string]Condition
	And    []Clause
	Or     []Clause
}

// IsEmpty reports whether the clause has no field conditions and no
// children.
func (c Clause) IsEmpty() bool {
	if len(c.Fields) != 0 || len(c.And) != 0 || len(c.Or) != 0 {
		return false
	}
	return true
}

// EmptyClause returns an empty clause. Equivalent to the zero value;
// provided for readability at call sites (Clause{} works identically).
func EmptyClause() Clause { return Clause{} }
