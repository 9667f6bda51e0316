package cp

import (
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// BoolVar is an IntVar with domain included in {0, 1}, 1 meaning true.
type BoolVar interface {
	IntVar
	IsTrue() bool
	IsFalse() bool
	FixBool(b bool) error
}

type boolVar struct {
	IntVar
}

var _ BoolVar = &boolVar{}

func NewBoolVar(s *Solver) BoolVar {
	return &boolVar{IntVar: newIntVar(s, NewSparseSetDomain(s.sm, 0, 1))}
}

// NewBoolVarArray returns n unfixed boolean variables.
func NewBoolVarArray(s *Solver, n int) []BoolVar {
	bs := make([]BoolVar, n)
	for i := range bs {
		bs[i] = NewBoolVar(s)
	}
	return bs
}

func (b *boolVar) IsTrue() bool  { return b.Min() == 1 }
func (b *boolVar) IsFalse() bool { return b.Max() == 0 }

func (b *boolVar) FixBool(v bool) error {
	return b.Fix(boolToInt(v))
}

func (b *boolVar) String() string {
	return formatBool(b)
}

// Not returns the negation of b as a view.
func Not(b BoolVar) BoolVar {
	if n, ok := b.(*notView); ok {
		return n.b
	}
	return &notView{IntVar: Offset(Minus(b), 1), b: b}
}

type notView struct {
	IntVar
	b BoolVar
}

func (n *notView) IsTrue() bool  { return n.b.IsFalse() }
func (n *notView) IsFalse() bool { return n.b.IsTrue() }

func (n *notView) FixBool(v bool) error {
	return n.b.FixBool(!v)
}

func (n *notView) String() string {
	return formatBool(n)
}

// RelayBoolVar is a boolean variable stored as two reversible flags
// instead of a domain. Fixing it calls a relay function, which lets
// another variable own the truth value (for instance the requiredness of
// a node in a SeqVar).
type RelayBoolVar struct {
	s        *Solver
	canTrue  *state.Bool
	canFalse *state.Bool
	relay    func(b bool) error
	onDomain *state.Stack[Constraint]
	onBound  *state.Stack[Constraint]
	onFix    *state.Stack[Constraint]
}

var _ BoolVar = &RelayBoolVar{}

// NewRelayBoolVar returns an unfixed variable calling relay each time it
// gets fixed through its own interface. relay may be nil.
func NewRelayBoolVar(s *Solver, relay func(b bool) error) *RelayBoolVar {
	return &RelayBoolVar{
		s:        s,
		canTrue:  s.sm.MakeBool(true),
		canFalse: s.sm.MakeBool(true),
		relay:    relay,
		onDomain: state.NewStack[Constraint](s.sm),
		onBound:  state.NewStack[Constraint](s.sm),
		onFix:    state.NewStack[Constraint](s.sm),
	}
}

func (b *RelayBoolVar) Solver() *Solver { return b.s }
func (b *RelayBoolVar) IsTrue() bool    { return !b.canFalse.Value() }
func (b *RelayBoolVar) IsFalse() bool   { return !b.canTrue.Value() }
func (b *RelayBoolVar) IsFixed() bool   { return b.IsTrue() || b.IsFalse() }

func (b *RelayBoolVar) Min() int {
	if b.canFalse.Value() {
		return 0
	}
	return 1
}

func (b *RelayBoolVar) Max() int {
	if b.canTrue.Value() {
		return 1
	}
	return 0
}

func (b *RelayBoolVar) Size() int {
	return boolToInt(b.canTrue.Value()) + boolToInt(b.canFalse.Value())
}

func (b *RelayBoolVar) Contains(v int) bool {
	return (v == 0 && b.canFalse.Value()) || (v == 1 && b.canTrue.Value())
}

func (b *RelayBoolVar) FillArray(dest []int) int {
	n := 0
	for v := 0; v <= 1; v++ {
		if b.Contains(v) {
			dest[n] = v
			n++
		}
	}
	return n
}

func (b *RelayBoolVar) FillDeltaArray(oldMin, oldMax, _ int, dest []int) int {
	n := 0
	for v := oldMin; v <= oldMax; v++ {
		if !b.Contains(v) {
			dest[n] = v
			n++
		}
	}
	return n
}

func (b *RelayBoolVar) FixBool(v bool) error {
	changed, err := b.assign(v)
	if err != nil || !changed || b.relay == nil {
		return err
	}
	return b.relay(v)
}

// assign fixes the flags without calling the relay.
func (b *RelayBoolVar) assign(v bool) (bool, error) {
	if !b.Contains(boolToInt(v)) {
		return false, ErrInconsistency
	}
	if b.IsFixed() {
		return false, nil
	}
	if v {
		b.canFalse.SetValue(false)
	} else {
		b.canTrue.SetValue(false)
	}
	scheduleAll(b.s, b.onFix)
	scheduleAll(b.s, b.onDomain)
	scheduleAll(b.s, b.onBound)
	return true, nil
}

func (b *RelayBoolVar) Fix(v int) error {
	if v != 0 && v != 1 {
		return ErrInconsistency
	}
	return b.FixBool(v == 1)
}

func (b *RelayBoolVar) Remove(v int) error {
	if !b.Contains(v) {
		return nil
	}
	return b.FixBool(v == 0)
}

func (b *RelayBoolVar) RemoveBelow(v int) error {
	switch {
	case v <= 0:
		return nil
	case v == 1:
		return b.FixBool(true)
	}
	return ErrInconsistency
}

func (b *RelayBoolVar) RemoveAbove(v int) error {
	switch {
	case v >= 1:
		return nil
	case v == 0:
		return b.FixBool(false)
	}
	return ErrInconsistency
}

func (b *RelayBoolVar) PropagateOnDomainChange(c Constraint) { b.onDomain.Push(c) }
func (b *RelayBoolVar) PropagateOnBoundChange(c Constraint)  { b.onBound.Push(c) }
func (b *RelayBoolVar) PropagateOnFix(c Constraint)          { b.onFix.Push(c) }

func (b *RelayBoolVar) WhenDomainChange(f func() error) {
	b.PropagateOnDomainChange(newCallback(b.s, f))
}

func (b *RelayBoolVar) WhenBoundChange(f func() error) {
	b.PropagateOnBoundChange(newCallback(b.s, f))
}

func (b *RelayBoolVar) WhenFixed(f func() error) {
	b.PropagateOnFix(newCallback(b.s, f))
}

func (b *RelayBoolVar) String() string {
	return formatBool(b)
}

func formatBool(b BoolVar) string {
	switch {
	case b.IsTrue():
		return "true"
	case b.IsFalse():
		return "false"
	}
	return "{false,true}"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
