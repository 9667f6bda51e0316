package constraint

import (
	"fmt"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

type AllDifferentConstraint struct {
	*cp.BaseConstraint
	x []cp.IntVar
	// x[fixed[:nFixed]] are fixed and their values were removed from the
	// other variables
	fixed  []int
	nFixed *state.Int
}

// AllDifferent returns a Constraint enforcing pairwise distinct values by
// forward checking: the value of each fixed variable is removed from all
// the others.
func AllDifferent(x ...cp.IntVar) cp.Constraint {
	c := &AllDifferentConstraint{x: x, fixed: make([]int, len(x))}
	for i := range c.fixed {
		c.fixed[i] = i
	}
	if len(x) > 0 {
		s := x[0].Solver()
		c.BaseConstraint = cp.NewBaseConstraint(s)
		c.nFixed = s.StateManager().MakeInt(0)
	}
	return c
}

func (c *AllDifferentConstraint) Post() error {
	if len(c.x) == 0 {
		return nil
	}
	for _, x := range c.x {
		x.PropagateOnFix(c)
	}
	return c.Propagate()
}

func (c *AllDifferentConstraint) Propagate() error {
	if len(c.x) == 0 {
		return nil
	}
	done := c.nFixed.Value()
	nF := done
	for i := nF; i < len(c.x); i++ {
		if c.x[c.fixed[i]].IsFixed() {
			c.fixed[i], c.fixed[nF] = c.fixed[nF], c.fixed[i]
			nF++
		}
	}
	c.nFixed.SetValue(nF)
	for i := done; i < nF; i++ {
		k := c.fixed[i]
		v := c.x[k].Min()
		for j, y := range c.x {
			if j == k {
				continue
			}
			if err := y.Remove(v); err != nil {
				return err
			}
		}
	}
	if nF == len(c.x) {
		c.SetActive(false)
	}
	return nil
}

func (c *AllDifferentConstraint) String() string {
	return fmt.Sprintf("allDifferent%v", c.x)
}
