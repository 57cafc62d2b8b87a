package where

import (
	"sort"
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
)

func valueText(s string) value.Value { return value.Text(s) }

// Builder folds a Clause tree into a SQL fragment and bind values. It holds
// no state of its own beyond the dialect/resolver configuration; a Binder
// carries the mutable placeholder counter across calls.
type Builder struct {
	resolver field.Resolver
	dialect  dialect.Dialect
}

// New returns a Builder for the given dialect and table-prefix mode.
func New(d dialect.Dialect, useTablePrefix bool) Builder {
	return Builder{
		resolver: field.Resolver{Dialect: d, UseTablePrefix: useTablePrefix},
		dialect:  d,
	}
}

// Build folds clause into "(sql, binds)" using b to allocate placeholder
// indices, returning "" when the clause is semantically empty.
func (bd Builder) Build(clause Clause, b *Binder) string {
	frag, _ := bd.buildClause(clause, b)
	return frag
}

// buildClause returns the clause's SQL fragment and the number of
// top-level parts it was joined from: a nested child with >1 fragment is
// wrapped in parentheses, a single-fragment child is emitted bare. The
// arity lets a parent decide whether to parenthesize this fragment when
// nesting it.
func (bd Builder) buildClause(c Clause, b *Binder) (string, int) {
	var parts []string

	for _, name := range sortedKeys(c.Fields) {
		if frag := bd.buildCondition(name, c.Fields[name], b); frag != "" {
			parts = append(parts, frag)
		}
	}

	for _, child := range c.And {
		if frag, n := bd.buildClause(child, b); frag != "" {
			parts = append(parts, parenthesizeIfMulti(frag, n))
		}
	}

	if len(c.Or) > 0 {
		var orParts []string
		for _, child := range c.Or {
			if frag, n := bd.buildClause(child, b); frag != "" {
				orParts = append(orParts, parenthesizeIfMulti(frag, n))
			}
		}
		if len(orParts) > 0 {
			parts = append(parts, "("+strings.Join(orParts, " OR ")+")")
		}
	}

	if len(parts) == 0 {
		return "", 0
	}
	return strings.Join(parts, " AND "), len(parts)
}

func parenthesizeIfMulti(frag string, n int) string {
	if n > 1 {
		return "(" + frag + ")"
	}
	return frag
}

func sortedKeys(m map[string]Condition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildCondition emits the AND-joined SQL for every present operator on a
// single field's Condition.
func (bd Builder) buildCondition(name string, c Condition, b *Binder) string {
	if c.IsEmpty() {
		return ""
	}

	castNumeric := c.IsNumeric && c.hasRange()
	expr := bd.resolver.ResolveNumeric(name, castNumeric)
	exprNoCast, _ := bd.resolver.Resolve(name)

	var parts []string

	if c.Eq != nil {
		idx := b.Bind(*c.Eq)
		parts = append(parts, expr+" = "+bd.dialect.Placeholder(idx))
	}

	if len(c.In) > 0 {
		start := b.Next()
		for _, v := range c.In {
			b.Bind(v)
		}
		parts = append(parts, expr+" IN ("+bd.dialect.Placeholders(len(c.In), start)+")")
	}

	if c.Gt != nil {
		idx := b.Bind(*c.Gt)
		parts = append(parts, expr+" > "+bd.dialect.Placeholder(idx))
	}
	if c.Gte != nil {
		idx := b.Bind(*c.Gte)
		parts = append(parts, expr+" >= "+bd.dialect.Placeholder(idx))
	}
	if c.Lt != nil {
		idx := b.Bind(*c.Lt)
		parts = append(parts, expr+" < "+bd.dialect.Placeholder(idx))
	}
	if c.Lte != nil {
		idx := b.Bind(*c.Lte)
		parts = append(parts, expr+" <= "+bd.dialect.Placeholder(idx))
	}

	if c.Contains != nil {
		idx := b.Bind(valueText(*c.Contains))
		frag := expr + " " + bd.dialect.LikeOperator() + " '%' || " + bd.dialect.Placeholder(idx) + " || '%'"
		if coll := bd.dialect.LikeCollation(); coll != "" {
			frag += " " + coll
		}
		parts = append(parts, frag)
	}

	if c.IsNull != nil {
		if *c.IsNull {
			parts = append(parts, exprNoCast+" IS NULL")
		} else {
			parts = append(parts, exprNoCast+" IS NOT NULL")
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " AND ")
}
