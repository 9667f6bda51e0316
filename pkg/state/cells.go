package state

import (
	"strconv"
)

// Int is a reversible integer.
type Int struct {
	a   *arena
	idx int
}

func (i *Int) Value() int {
	return i.a.ints[i.idx]
}

// SetValue updates the value and returns it. Setting the current value is
// a no-op and records nothing.
func (i *Int) SetValue(v int) int {
	i.a.setInt(i.idx, v)
	return v
}

func (i *Int) Increment() int {
	return i.SetValue(i.Value() + 1)
}

func (i *Int) Decrement() int {
	return i.SetValue(i.Value() - 1)
}

func (i *Int) String() string {
	return strconv.Itoa(i.Value())
}

// Bool is a reversible boolean.
type Bool struct {
	i *Int
}

func (b *Bool) Value() bool {
	return b.i.Value() == 1
}

func (b *Bool) SetValue(v bool) bool {
	b.i.SetValue(boolToInt(v))
	return v
}

func (b *Bool) String() string {
	return strconv.FormatBool(b.Value())
}

// Ref is a reversible reference to a comparable value.
type Ref[T comparable] struct {
	a   *arena
	idx int
}

// NewRef allocates a reversible reference owned by m.
func NewRef[T comparable](m Manager, v T) *Ref[T] {
	a := m.store()
	return &Ref[T]{a: a, idx: a.makeRef(v)}
}

func (r *Ref[T]) Value() T {
	v, _ := r.a.refs[r.idx].(T)
	return v
}

func (r *Ref[T]) SetValue(v T) T {
	if r.Value() == v {
		return v
	}
	r.a.setRef(r.idx, v)
	return v
}
