package cp

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// SetVar is a set variable over the universe [0, n). Each value is
// included, possible or excluded; the variable is fixed when no value is
// possible. Its cardinality is an IntVar kept consistent with the domain.
type SetVar struct {
	s        *Solver
	dom      *state.TriPartition
	card     IntVar
	onDomain *state.Stack[Constraint]
}

// NewSetVar returns a set variable whose values are all possible.
func NewSetVar(s *Solver, n int) (*SetVar, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidModel, "negative universe size %d", n)
	}
	card, err := NewIntVar(s, 0, n)
	if err != nil {
		return nil, err
	}
	x := &SetVar{
		s:        s,
		dom:      state.NewTriPartition(s.sm, n),
		card:     card,
		onDomain: state.NewStack[Constraint](s.sm),
	}
	if err := s.Post(newSetCard(x)); err != nil {
		return nil, err
	}
	return x, nil
}

func (x *SetVar) Solver() *Solver { return x.s }

// Card returns the cardinality variable.
func (x *SetVar) Card() IntVar { return x.card }

// Size returns the size of the universe.
func (x *SetVar) Size() int { return x.dom.Size() }

func (x *SetVar) IsFixed() bool         { return x.dom.NPossible() == 0 }
func (x *SetVar) NIncluded() int        { return x.dom.NIncluded() }
func (x *SetVar) NPossible() int        { return x.dom.NPossible() }
func (x *SetVar) NExcluded() int        { return x.dom.NExcluded() }
func (x *SetVar) IsIncluded(v int) bool { return x.dom.IsIncluded(v) }
func (x *SetVar) IsPossible(v int) bool { return x.dom.IsPossible(v) }
func (x *SetVar) IsExcluded(v int) bool { return x.dom.IsExcluded(v) }

func (x *SetVar) FillIncluded(dest []int) int { return x.dom.FillIncluded(dest) }
func (x *SetVar) FillPossible(dest []int) int { return x.dom.FillPossible(dest) }
func (x *SetVar) FillExcluded(dest []int) int { return x.dom.FillExcluded(dest) }

func (x *SetVar) checkValue(v int) error {
	if v < 0 || v >= x.dom.Size() {
		return errors.Wrapf(ErrInvalidModel, "value %d outside universe [0..%d)", v, x.dom.Size())
	}
	return nil
}

// Include adds v to the set. Including an excluded value fails.
func (x *SetVar) Include(v int) error {
	if err := x.checkValue(v); err != nil {
		return err
	}
	if x.dom.IsExcluded(v) {
		return ErrInconsistency
	}
	if x.dom.Include(v) {
		scheduleAll(x.s, x.onDomain)
	}
	return nil
}

// Exclude removes v from the set. Excluding an included value fails.
func (x *SetVar) Exclude(v int) error {
	if err := x.checkValue(v); err != nil {
		return err
	}
	if x.dom.IsIncluded(v) {
		return ErrInconsistency
	}
	if x.dom.Exclude(v) {
		scheduleAll(x.s, x.onDomain)
	}
	return nil
}

// IncludeAll includes every possible value and fixes the cardinality.
func (x *SetVar) IncludeAll() error {
	if x.dom.NPossible() > 0 {
		x.dom.IncludeAllPossible()
		scheduleAll(x.s, x.onDomain)
	}
	return x.card.Fix(x.dom.NIncluded())
}

// ExcludeAll excludes every possible value and fixes the cardinality.
func (x *SetVar) ExcludeAll() error {
	if x.dom.NPossible() > 0 {
		x.dom.ExcludeAllPossible()
		scheduleAll(x.s, x.onDomain)
	}
	return x.card.Fix(x.dom.NIncluded())
}

func (x *SetVar) PropagateOnDomainChange(c Constraint) { x.onDomain.Push(c) }

func (x *SetVar) WhenDomainChange(f func() error) {
	x.PropagateOnDomainChange(newCallback(x.s, f))
}

// Included returns the included values.
func (x *SetVar) Included() []int {
	values := make([]int, x.dom.NIncluded())
	x.dom.FillIncluded(values)
	return values
}

func (x *SetVar) String() string {
	return fmt.Sprintf("{%v card:%v}", x.dom, x.card)
}

// setCard keeps the cardinality of a set variable between its number of
// included values and its number of not-excluded values.
type setCard struct {
	*BaseConstraint
	x *SetVar
}

func newSetCard(x *SetVar) *setCard {
	c := &setCard{BaseConstraint: NewBaseConstraint(x.s), x: x}
	c.SetPriority(PriorityFast)
	return c
}

func (c *setCard) Post() error {
	c.x.PropagateOnDomainChange(c)
	c.x.card.PropagateOnBoundChange(c)
	return c.Propagate()
}

func (c *setCard) Propagate() error {
	x := c.x
	nIn := x.dom.NIncluded()
	nNotEx := nIn + x.dom.NPossible()
	if err := x.card.RemoveBelow(nIn); err != nil {
		return err
	}
	if err := x.card.RemoveAbove(nNotEx); err != nil {
		return err
	}
	if x.dom.NPossible() > 0 {
		switch {
		case x.card.Min() == nNotEx:
			if err := x.IncludeAll(); err != nil {
				return err
			}
		case x.card.Max() == nIn:
			if err := x.ExcludeAll(); err != nil {
				return err
			}
		}
	}
	if x.IsFixed() {
		c.SetActive(false)
	}
	return nil
}
