package where

import "github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/value"

// Binder owns the next placeholder index and the bind values accumulated
// so far. It is threaded by pointer through WhereBuilder, CursorPredicate,
// and PageQuery so that placeholder numbering never skips or repeats an
// index across the three builders.
type Binder struct {
	next  int
	binds []value.Value
}

// NewBinder returns a Binder whose first allocation will be startIndex.
func NewBinder(startIndex int) *Binder {
	return &Binder{next: startIndex}
}

// Bind appends v and returns the placeholder index it was assigned.
func (b *Binder) Bind(v value.Value) int {
	idx := b.next
	b.binds = append(b.binds, v)
	b.next++
	return idx
}

// Next reports the index the next Bind call will assign.
func (b *Binder) Next() int { return b.next }

// Values returns the bind values accumulated so far, in allocation order.
func (b *Binder) Values() []value.Value { return b.binds }
