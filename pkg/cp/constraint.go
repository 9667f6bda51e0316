package cp

import (
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// Priority ranks scheduled constraints: lower values run first.
type Priority int

const (
	PriorityFast Priority = iota
	PriorityMedium
	PrioritySlow

	nPriorities = 3
)

// Constraint is a filtering algorithm over a fixed set of variables.
//
// Post is called exactly once when the constraint is posted on the solver:
// it performs the initial filtering and subscribes to variable events.
// Propagate is called by the fixpoint each time the constraint was
// scheduled. Both only ever remove values and return ErrInconsistency when
// they detect that the current node has no solution.
//
// Implementations embed *BaseConstraint.
type Constraint interface {
	Post() error
	Propagate() error
	Priority() Priority
	IsActive() bool
	SetActive(active bool)

	isScheduled() bool
	setScheduled(scheduled bool)
	updateDeltas()
}

// BaseConstraint holds the bookkeeping common to all constraints: the
// reversible activity flag, the scheduling flag, the priority and the
// registered deltas.
type BaseConstraint struct {
	solver    *Solver
	active    *state.Bool
	scheduled bool
	priority  Priority
	deltas    []*DeltaInt
}

// NewBaseConstraint returns an active constraint with medium priority.
func NewBaseConstraint(s *Solver) *BaseConstraint {
	return &BaseConstraint{
		solver:   s,
		active:   s.StateManager().MakeBool(true),
		priority: PriorityMedium,
	}
}

func (c *BaseConstraint) Solver() *Solver {
	return c.solver
}

func (c *BaseConstraint) Post() error {
	return nil
}

func (c *BaseConstraint) Propagate() error {
	return nil
}

func (c *BaseConstraint) Priority() Priority {
	return c.priority
}

func (c *BaseConstraint) SetPriority(p Priority) {
	c.priority = p
}

func (c *BaseConstraint) IsActive() bool {
	return c.active.Value()
}

// SetActive(false) deactivates the constraint until the search backtracks
// above the current node.
func (c *BaseConstraint) SetActive(active bool) {
	c.active.SetValue(active)
}

func (c *BaseConstraint) isScheduled() bool {
	return c.scheduled
}

func (c *BaseConstraint) setScheduled(scheduled bool) {
	c.scheduled = scheduled
}

// RegisterDelta starts tracking the values removed from x. The delta is
// brought up to date after each successful Propagate.
func (c *BaseConstraint) RegisterDelta(x IntVar) *DeltaInt {
	d := newDeltaInt(c.solver.StateManager(), x)
	c.deltas = append(c.deltas, d)
	return d
}

func (c *BaseConstraint) updateDeltas() {
	for _, d := range c.deltas {
		d.update()
	}
}

// callback is an anonymous constraint wrapping a closure, used by the
// When* subscriptions of variables.
type callback struct {
	*BaseConstraint
	f func() error
}

func newCallback(s *Solver, f func() error) *callback {
	return &callback{BaseConstraint: NewBaseConstraint(s), f: f}
}

func (c *callback) Propagate() error {
	return c.f()
}
