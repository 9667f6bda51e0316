package constraint

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

type OrConstraint struct {
	*cp.BaseConstraint
	x []cp.BoolVar
	// watched literals, scanning from the left and from the right
	wL *state.Int
	wR *state.Int
}

// Or returns a Constraint enforcing that at least one of x is true. Only
// two unfixed literals are watched at any time.
func Or(x ...cp.BoolVar) cp.Constraint {
	c := &OrConstraint{x: x}
	if len(x) > 0 {
		s := x[0].Solver()
		c.BaseConstraint = cp.NewBaseConstraint(s)
		c.wL = s.StateManager().MakeInt(0)
		c.wR = s.StateManager().MakeInt(len(x) - 1)
	}
	return c
}

func (c *OrConstraint) Post() error {
	if len(c.x) == 0 {
		return errors.Wrap(cp.ErrInvalidModel, "or over no literal")
	}
	return c.Propagate()
}

func (c *OrConstraint) Propagate() error {
	n := len(c.x)
	i := c.wL.Value()
	for i < n && c.x[i].IsFixed() {
		if c.x[i].IsTrue() {
			c.SetActive(false)
			return nil
		}
		i++
	}
	c.wL.SetValue(i)
	j := c.wR.Value()
	for j >= i && c.x[j].IsFixed() {
		if c.x[j].IsTrue() {
			c.SetActive(false)
			return nil
		}
		j--
	}
	c.wR.SetValue(j)

	switch {
	case i > j:
		return cp.ErrInconsistency
	case i == j:
		c.SetActive(false)
		return c.x[i].FixBool(true)
	}
	// subscriptions are reversible, so they vanish when the watch moves
	// back on backtrack
	c.x[i].PropagateOnFix(c)
	c.x[j].PropagateOnFix(c)
	return nil
}

func (c *OrConstraint) String() string {
	return fmt.Sprintf("or%v", c.x)
}
