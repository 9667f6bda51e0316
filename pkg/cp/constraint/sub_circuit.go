package constraint

import (
	"fmt"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

type SubCircuitConstraint struct {
	*cp.BaseConstraint
	succ []cp.IntVar
	// orig[d] is the first node of the chain of fixed successors ending at
	// d; dest[o] is the last node of the chain starting at o.
	orig []*state.Int
	dest []*state.Int
	// number of chains with at least one edge
	nChains *state.Int
}

// SubCircuit returns a Constraint enforcing that succ describes a single
// circuit over a subset of the nodes. succ[i] == i means that node i is
// not visited. The empty circuit is allowed.
func SubCircuit(succ ...cp.IntVar) cp.Constraint {
	c := &SubCircuitConstraint{
		succ: succ,
		orig: make([]*state.Int, len(succ)),
		dest: make([]*state.Int, len(succ)),
	}
	if len(succ) > 0 {
		s := succ[0].Solver()
		sm := s.StateManager()
		c.BaseConstraint = cp.NewBaseConstraint(s)
		for i := range succ {
			c.orig[i] = sm.MakeInt(i)
			c.dest[i] = sm.MakeInt(i)
		}
		c.nChains = sm.MakeInt(0)
	}
	return c
}

func (c *SubCircuitConstraint) Post() error {
	n := len(c.succ)
	if n == 0 {
		return nil
	}
	for _, x := range c.succ {
		if err := x.RemoveBelow(0); err != nil {
			return err
		}
		if err := x.RemoveAbove(n - 1); err != nil {
			return err
		}
	}
	if err := c.Solver().PostWithoutFixpoint(AllDifferent(c.succ...)); err != nil {
		return err
	}
	for i, x := range c.succ {
		i := i
		if x.IsFixed() {
			if err := c.fixed(i); err != nil {
				return err
			}
			continue
		}
		x.WhenFixed(func() error { return c.fixed(i) })
	}
	return nil
}

func (c *SubCircuitConstraint) fixed(u int) error {
	v := c.succ[u].Min()
	if u == v {
		return nil
	}
	// s ->* u -> v ->* d
	s := c.orig[u].Value()
	d := c.dest[v].Value()
	if s == v {
		// the chain through u and v closes: every other node stays out
		return c.close()
	}
	c.orig[d].SetValue(s)
	c.dest[s].SetValue(d)
	switch {
	case s == u && d == v:
		c.nChains.Increment()
	case s != u && d != v:
		c.nChains.Decrement()
	}
	if c.nChains.Value() > 1 {
		// closing this chain would leave another one open
		return c.succ[d].Remove(s)
	}
	return nil
}

func (c *SubCircuitConstraint) close() error {
	for i, x := range c.succ {
		if !x.IsFixed() {
			if err := x.Fix(i); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *SubCircuitConstraint) String() string {
	return fmt.Sprintf("subCircuit%v", c.succ)
}
