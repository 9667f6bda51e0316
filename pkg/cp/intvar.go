package cp

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// IntVar is an integer decision variable. Mutators only ever shrink the
// domain and return ErrInconsistency when it becomes empty.
type IntVar interface {
	fmt.Stringer

	Solver() *Solver
	Min() int
	Max() int
	Size() int
	Contains(v int) bool
	IsFixed() bool
	FillArray(dest []int) int
	FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int

	Remove(v int) error
	Fix(v int) error
	RemoveBelow(v int) error
	RemoveAbove(v int) error

	// PropagateOnDomainChange schedules c whenever a value is removed.
	PropagateOnDomainChange(c Constraint)
	// PropagateOnBoundChange schedules c whenever the min or max changes.
	PropagateOnBoundChange(c Constraint)
	// PropagateOnFix schedules c when the variable becomes fixed.
	PropagateOnFix(c Constraint)

	WhenDomainChange(f func() error)
	WhenBoundChange(f func() error)
	WhenFixed(f func() error)
}

type intVar struct {
	s        *Solver
	dom      IntDomain
	onDomain *state.Stack[Constraint]
	onBound  *state.Stack[Constraint]
	onFix    *state.Stack[Constraint]
}

var _ IntVar = &intVar{}

// NewIntVar returns a variable with domain [min..max].
func NewIntVar(s *Solver, min, max int) (IntVar, error) {
	if err := s.checkBounds(min, max); err != nil {
		return nil, err
	}
	var dom IntDomain
	if max-min+1 >= s.lazyThreshold {
		dom = NewLazySparseSetDomain(s.sm, min, max)
	} else {
		dom = NewSparseSetDomain(s.sm, min, max)
	}
	return newIntVar(s, dom), nil
}

// maxSparseSpan bounds the range of a domain built from values when the
// values are spread thinly over it.
const maxSparseSpan = 1 << 20

// NewIntVarFromValues returns a variable whose domain is the given set of
// values. The domain allocates one slot per integer between the smallest
// and the largest value, so value sets spanning more than 2^20 integers
// with fewer than one value per 64 of them are rejected.
func NewIntVarFromValues(s *Solver, values ...int) (IntVar, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(ErrInvalidModel, "empty set of values")
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	min, max := sorted[0], sorted[len(sorted)-1]
	if err := s.checkBounds(min, max); err != nil {
		return nil, err
	}
	if span := max - min + 1; span > maxSparseSpan && span/64 > len(values) {
		return nil, errors.Wrapf(ErrInvalidModel, "%d values spread over [%d..%d]", len(values), min, max)
	}
	dom := NewSparseSetDomain(s.sm, min, max)
	x := newIntVar(s, dom)
	next := 0
	for v := min; v <= max; v++ {
		if v == sorted[next] {
			for next < len(sorted) && sorted[next] == v {
				next++
			}
			continue
		}
		dom.set.Remove(v)
	}
	return x, nil
}

// NewIntVarArray returns n variables with domain [min..max].
func NewIntVarArray(s *Solver, n, min, max int) ([]IntVar, error) {
	xs := make([]IntVar, n)
	for i := range xs {
		x, err := NewIntVar(s, min, max)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

// NewConstant returns a variable fixed to v.
func NewConstant(s *Solver, v int) IntVar {
	return newIntVar(s, NewSparseSetDomain(s.sm, v, v))
}

// NewIntVarWithDomain wraps a custom domain.
func NewIntVarWithDomain(s *Solver, dom IntDomain) IntVar {
	return newIntVar(s, dom)
}

func newIntVar(s *Solver, dom IntDomain) *intVar {
	return &intVar{
		s:        s,
		dom:      dom,
		onDomain: state.NewStack[Constraint](s.sm),
		onBound:  state.NewStack[Constraint](s.sm),
		onFix:    state.NewStack[Constraint](s.sm),
	}
}

func (x *intVar) Solver() *Solver       { return x.s }
func (x *intVar) Min() int              { return x.dom.Min() }
func (x *intVar) Max() int              { return x.dom.Max() }
func (x *intVar) Size() int             { return x.dom.Size() }
func (x *intVar) Contains(v int) bool   { return x.dom.Contains(v) }
func (x *intVar) IsFixed() bool         { return x.dom.IsSingleton() }
func (x *intVar) FillArray(d []int) int { return x.dom.FillArray(d) }

func (x *intVar) FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int {
	return x.dom.FillDeltaArray(oldMin, oldMax, oldSize, dest)
}

func (x *intVar) Remove(v int) error      { return x.dom.Remove(v, x) }
func (x *intVar) Fix(v int) error         { return x.dom.RemoveAllBut(v, x) }
func (x *intVar) RemoveBelow(v int) error { return x.dom.RemoveBelow(v, x) }
func (x *intVar) RemoveAbove(v int) error { return x.dom.RemoveAbove(v, x) }

func (x *intVar) PropagateOnDomainChange(c Constraint) { x.onDomain.Push(c) }
func (x *intVar) PropagateOnBoundChange(c Constraint)  { x.onBound.Push(c) }
func (x *intVar) PropagateOnFix(c Constraint)          { x.onFix.Push(c) }

func (x *intVar) WhenDomainChange(f func() error) {
	x.PropagateOnDomainChange(newCallback(x.s, f))
}

func (x *intVar) WhenBoundChange(f func() error) {
	x.PropagateOnBoundChange(newCallback(x.s, f))
}

func (x *intVar) WhenFixed(f func() error) {
	x.PropagateOnFix(newCallback(x.s, f))
}

// DomainListener

func (x *intVar) Empty()     {}
func (x *intVar) Bind()      { x.scheduleAll(x.onFix) }
func (x *intVar) Change()    { x.scheduleAll(x.onDomain) }
func (x *intVar) ChangeMin() { x.scheduleAll(x.onBound) }
func (x *intVar) ChangeMax() { x.scheduleAll(x.onBound) }

func (x *intVar) scheduleAll(cs *state.Stack[Constraint]) {
	scheduleAll(x.s, cs)
}

func scheduleAll(s *Solver, cs *state.Stack[Constraint]) {
	for i := 0; i < cs.Size(); i++ {
		s.Schedule(cs.Get(i))
	}
}

func (x *intVar) String() string {
	return formatDomain(x)
}

func formatDomain(x IntVar) string {
	if x.IsFixed() {
		return fmt.Sprint(x.Min())
	}
	values := make([]int, x.Size())
	x.FillArray(values)
	sort.Ints(values)
	return fmt.Sprint(values)
}

// Values returns the sorted values of x's domain.
func Values(x IntVar) []int {
	values := make([]int, x.Size())
	x.FillArray(values)
	sort.Ints(values)
	return values
}
