// Package value implements the tagged scalar used as the engine's only bind
// parameter type. Values are produced by the filter parser (out of scope for
// this package) and consumed by the where and predicate builders.
package value

import "fmt"

// Kind tags which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindBool
)

// Value is a tagged union over {Text, Integer, Boolean, Null}. A Value has no
// lifetime beyond a single query: it is constructed, bound once, and dropped.
type Value struct {
	kind Kind
	text string
	i    int64
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Text wraps a string value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer wraps an int64 value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bind returns the value in the shape a database/sql driver expects for a
// bind parameter: a Go string, int64, bool, or nil.
func (v Value) Bind() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.i
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// String renders v using the cursor stringification rules: string as-is,
// integer as decimal digits, boolean as "true"/"false", null as the
// literal "NULL".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "NULL"
	}
}
