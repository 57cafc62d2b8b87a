// Package predicate builds the progressive-tuple WHERE predicate that
// resumes a cursor-paginated scan.
package predicate

import (
	"strings"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/cursor"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/dialect"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/order"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/where"
)

// Build emits the progressive-tuple predicate:
//
//	( cmp(f1,v1,d1,isBefore) )
//	 OR ( f1=v1 AND cmp(f2,v2,d2,isBefore) )
//	 OR ( f1=v1 AND ... AND fn=vn AND cmp(cid,c,dn,isBefore) )
//
// All decoded cursor values (including cid) are bound as text regardless
// of underlying type; correctness only requires that equal rendered
// strings represent the same sort-key value. b allocates the placeholder
// indices consumed here, continuing from wherever WhereBuilder left off —
// placeholder indices flow through the three builders in that order.
func Build(spec order.Spec, decoded cursor.Decoded, isBefore bool, resolver field.Resolver, d dialect.Dialect, b *where.Binder) string {
	n := len(spec)
	if n == 0 || len(decoded.FieldValues) != n {
		return ""
	}

	var orParts []string
	for i := 0; i < n; i++ {
		var eqParts []string
		for j := 0; j < i; j++ {
			expr, _ := resolver.Resolve(spec[j].Name)
			idx := b.Bind(value.Text(decoded.FieldValues[j]))
			eqParts = append(eqParts, expr+" = "+d.Placeholder(idx))
		}

		cmpExpr, _ := resolver.Resolve(spec[i].Name)
		cmpVal := decoded.FieldValues[i]
		dir := spec[i].Direction
		op := compareOp(dir, isBefore)
		idx := b.Bind(value.Text(cmpVal))
		cmpFrag := cmpExpr + " " + op + " " + d.Placeholder(idx)

		var branch string
		if len(eqParts) == 0 {
			branch = cmpFrag
		} else {
			branch = strings.Join(eqParts, " AND ") + " AND " + cmpFrag
		}
		orParts = append(orParts, "("+branch+")")
	}

	// Final branch: all n fields equal, compare cid.
	var eqParts []string
	for j := 0; j < n; j++ {
		expr, _ := resolver.Resolve(spec[j].Name)
		idx := b.Bind(value.Text(decoded.FieldValues[j]))
		eqParts = append(eqParts, expr+" = "+d.Placeholder(idx))
	}
	cidExpr, _ := resolver.Resolve("cid")
	lastDir := spec[n-1].Direction
	op := compareOp(lastDir, isBefore)
	idx := b.Bind(value.Text(decoded.CID))
	cidFrag := cidExpr + " " + op + " " + d.Placeholder(idx)
	orParts = append(orParts, "("+strings.Join(eqParts, " AND ")+" AND "+cidFrag+")")

	return strings.Join(orParts, " OR ")
}

// compareOp chooses "<" or ">" by (direction XOR isBefore): forward
// paging + desc sort -> "<"; forward + asc -> ">"; backward paging
// inverts both.
func compareOp(dir order.Direction, isBefore bool) string {
	lt := dir == order.Desc
	if isBefore {
		lt = !lt
	}
	if lt {
		return "<"
	}
	return ">"
}
