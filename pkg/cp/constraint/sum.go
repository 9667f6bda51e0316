package constraint

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
)

type SumConstraint struct {
	*cp.BaseConstraint
	// terms sum to zero
	terms []cp.IntVar
}

// Sum returns a Constraint enforcing sum(x) == y with bound consistency.
func Sum(x []cp.IntVar, y cp.IntVar) cp.Constraint {
	terms := make([]cp.IntVar, 0, len(x)+1)
	terms = append(terms, x...)
	terms = append(terms, cp.Minus(y))
	return &SumConstraint{BaseConstraint: cp.NewBaseConstraint(y.Solver()), terms: terms}
}

// SumConstant returns a Constraint enforcing sum(x) == v.
func SumConstant(x []cp.IntVar, v int) (cp.Constraint, error) {
	if len(x) == 0 {
		return nil, errors.Wrap(cp.ErrInvalidModel, "sum over no variable")
	}
	return Sum(x, cp.NewConstant(x[0].Solver(), v)), nil
}

func (c *SumConstraint) Post() error {
	for _, x := range c.terms {
		x.PropagateOnBoundChange(c)
	}
	return c.Propagate()
}

func (c *SumConstraint) Propagate() error {
	sumMin, sumMax := 0, 0
	for _, x := range c.terms {
		sumMin += x.Min()
		sumMax += x.Max()
	}
	if sumMin > 0 || sumMax < 0 {
		return cp.ErrInconsistency
	}
	for _, x := range c.terms {
		// the other terms sum to at least sumMin - x.Min()
		lo, hi := x.Min(), x.Max()
		if err := x.RemoveAbove(-(sumMin - lo)); err != nil {
			return err
		}
		if err := x.RemoveBelow(-(sumMax - hi)); err != nil {
			return err
		}
	}
	if sumMin == sumMax {
		c.SetActive(false)
	}
	return nil
}

func (c *SumConstraint) String() string {
	return fmt.Sprintf("sum%v == 0", c.terms)
}
