package cp

import (
	"math"

	"github.com/pkg/errors"
)

// Objective bounds a variable at every fixpoint. After each solution,
// Tighten moves the bound past the value of that solution so that the
// search only finds improving solutions.
type Objective struct {
	x        IntVar
	minimize bool
	strict   bool
	bound    int
	best     int
	found    bool
}

// Minimize registers an objective minimizing x.
func (s *Solver) Minimize(x IntVar) *Objective {
	o := &Objective{x: x, minimize: true, strict: true, bound: math.MaxInt}
	s.OnFixpoint(o.filter)
	return o
}

// Maximize registers an objective maximizing x.
func (s *Solver) Maximize(x IntVar) *Objective {
	o := &Objective{x: x, strict: true, bound: math.MinInt}
	s.OnFixpoint(o.filter)
	return o
}

func (o *Objective) filter() error {
	if o.minimize {
		return o.x.RemoveAbove(o.bound)
	}
	return o.x.RemoveBelow(o.bound)
}

// SetStrict(false) lets subsequent solutions equal the best one instead of
// strictly improving it.
func (o *Objective) SetStrict(strict bool) {
	o.strict = strict
}

// Tighten records the value of the current solution and updates the
// bound. The objective variable must be fixed.
func (o *Objective) Tighten() error {
	if !o.x.IsFixed() {
		return errors.Wrapf(ErrInvalidModel, "objective %v is not fixed", o.x)
	}
	v := o.x.Min()
	o.best, o.found = v, true
	switch {
	case o.minimize && o.strict:
		o.bound = v - 1
	case o.minimize:
		o.bound = v
	case o.strict:
		o.bound = v + 1
	default:
		o.bound = v
	}
	return nil
}

// Bound returns the current bound enforced on the variable.
func (o *Objective) Bound() int {
	return o.bound
}

// Best returns the value of the last solution passed to Tighten.
func (o *Objective) Best() (int, bool) {
	return o.best, o.found
}

// Evaluate returns the value of the objective variable, which must be
// fixed.
func (o *Objective) Evaluate() int {
	return o.x.Min()
}

func (o *Objective) Var() IntVar {
	return o.x
}

func (o *Objective) IsMinimization() bool {
	return o.minimize
}
