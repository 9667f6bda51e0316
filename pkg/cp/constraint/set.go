package constraint

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
)

type IsIncludedConstraint struct {
	*cp.BaseConstraint
	b cp.BoolVar
	x *cp.SetVar
	v int
}

// IsIncluded returns a Constraint enforcing b <=> v in x.
func IsIncluded(b cp.BoolVar, x *cp.SetVar, v int) cp.Constraint {
	return &IsIncludedConstraint{BaseConstraint: cp.NewBaseConstraint(x.Solver()), b: b, x: x, v: v}
}

func (c *IsIncludedConstraint) Post() error {
	if c.v < 0 || c.v >= c.x.Size() {
		return errors.Wrapf(cp.ErrInvalidModel, "value %d outside universe [0..%d)", c.v, c.x.Size())
	}
	if err := c.Propagate(); err != nil || !c.IsActive() {
		return err
	}
	c.b.PropagateOnFix(c)
	c.x.PropagateOnDomainChange(c)
	return nil
}

func (c *IsIncludedConstraint) Propagate() error {
	switch {
	case c.b.IsTrue():
		c.SetActive(false)
		return c.x.Include(c.v)
	case c.b.IsFalse():
		c.SetActive(false)
		return c.x.Exclude(c.v)
	case c.x.IsIncluded(c.v):
		c.SetActive(false)
		return c.b.FixBool(true)
	case c.x.IsExcluded(c.v):
		c.SetActive(false)
		return c.b.FixBool(false)
	}
	return nil
}

func (c *IsIncludedConstraint) String() string {
	return fmt.Sprintf("%v <=> %d in %v", c.b, c.v, c.x)
}

type SubsetConstraint struct {
	*cp.BaseConstraint
	a, b *cp.SetVar
	buf  []int
}

// Subset returns a Constraint enforcing a ⊆ b. Both sets must range over
// the same universe.
func Subset(a, b *cp.SetVar) cp.Constraint {
	return &SubsetConstraint{BaseConstraint: cp.NewBaseConstraint(a.Solver()), a: a, b: b}
}

func (c *SubsetConstraint) Post() error {
	if c.a.Size() != c.b.Size() {
		return errors.Wrapf(cp.ErrInvalidModel, "subset over universes of size %d and %d", c.a.Size(), c.b.Size())
	}
	c.buf = make([]int, c.a.Size())
	c.a.PropagateOnDomainChange(c)
	c.b.PropagateOnDomainChange(c)
	return c.Propagate()
}

func (c *SubsetConstraint) Propagate() error {
	n := c.a.FillIncluded(c.buf)
	for _, v := range c.buf[:n] {
		if err := c.b.Include(v); err != nil {
			return err
		}
	}
	n = c.b.FillExcluded(c.buf)
	for _, v := range c.buf[:n] {
		if err := c.a.Exclude(v); err != nil {
			return err
		}
	}
	if c.a.IsFixed() || c.b.IsFixed() {
		// the remaining possible values of the other set are free
		c.SetActive(false)
	}
	return nil
}

func (c *SubsetConstraint) String() string {
	return fmt.Sprintf("%v ⊆ %v", c.a, c.b)
}
