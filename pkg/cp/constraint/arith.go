// Package constraint provides filtering algorithms plugged into the cp
// solver through the generic Constraint contract.
package constraint

import (
	"fmt"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
)

type EqualConstraint struct {
	*cp.BaseConstraint
	x, y   cp.IntVar
	deltaX *cp.DeltaInt
	deltaY *cp.DeltaInt
	buf    []int
}

// Equal returns a Constraint enforcing x == y with domain consistency.
// Values removed from one variable are removed from the other using the
// deltas, without scanning the domains again.
func Equal(x, y cp.IntVar) cp.Constraint {
	return &EqualConstraint{BaseConstraint: cp.NewBaseConstraint(x.Solver()), x: x, y: y}
}

func (c *EqualConstraint) Post() error {
	if c.y.IsFixed() {
		c.SetActive(false)
		return c.x.Fix(c.y.Min())
	}
	if c.x.IsFixed() {
		c.SetActive(false)
		return c.y.Fix(c.x.Min())
	}
	if err := c.boundsIntersect(); err != nil {
		return err
	}
	c.buf = make([]int, max(c.x.Size(), c.y.Size()))
	if err := pruneEquals(c.y, c.x, c.buf); err != nil {
		return err
	}
	if err := pruneEquals(c.x, c.y, c.buf); err != nil {
		return err
	}
	c.deltaX = c.RegisterDelta(c.x)
	c.deltaY = c.RegisterDelta(c.y)
	c.x.PropagateOnDomainChange(c)
	c.y.PropagateOnDomainChange(c)
	return nil
}

func (c *EqualConstraint) Propagate() error {
	if err := c.boundsIntersect(); err != nil {
		return err
	}
	if err := mirror(c.deltaX, c.y, c.buf); err != nil {
		return err
	}
	if err := mirror(c.deltaY, c.x, c.buf); err != nil {
		return err
	}
	if c.x.IsFixed() {
		c.SetActive(false)
	}
	return nil
}

// mirror removes from to the values removed from the variable tracked by d.
func mirror(d *cp.DeltaInt, to cp.IntVar, buf []int) error {
	if !d.Changed() {
		return nil
	}
	n := d.FillArray(buf)
	for _, v := range buf[:n] {
		if err := to.Remove(v); err != nil {
			return err
		}
	}
	return nil
}

// pruneEquals removes from to every value without support in from.
func pruneEquals(from, to cp.IntVar, buf []int) error {
	n := to.FillArray(buf)
	for _, v := range buf[:n] {
		if !from.Contains(v) {
			if err := to.Remove(v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *EqualConstraint) boundsIntersect() error {
	lo := max(c.x.Min(), c.y.Min())
	hi := min(c.x.Max(), c.y.Max())
	for _, v := range []cp.IntVar{c.x, c.y} {
		if err := v.RemoveBelow(lo); err != nil {
			return err
		}
		if err := v.RemoveAbove(hi); err != nil {
			return err
		}
	}
	return nil
}

func (c *EqualConstraint) String() string {
	return fmt.Sprintf("%v == %v", c.x, c.y)
}

type NotEqualConstraint struct {
	*cp.BaseConstraint
	x, y cp.IntVar
	c    int
}

// NotEqual returns a Constraint enforcing x != y + c.
func NotEqual(x, y cp.IntVar, c int) cp.Constraint {
	return &NotEqualConstraint{BaseConstraint: cp.NewBaseConstraint(x.Solver()), x: x, y: y, c: c}
}

func (c *NotEqualConstraint) Post() error {
	if c.x.IsFixed() || c.y.IsFixed() {
		return c.Propagate()
	}
	c.x.PropagateOnFix(c)
	c.y.PropagateOnFix(c)
	return nil
}

func (c *NotEqualConstraint) Propagate() error {
	switch {
	case c.y.IsFixed():
		c.SetActive(false)
		return c.x.Remove(c.y.Min() + c.c)
	case c.x.IsFixed():
		c.SetActive(false)
		return c.y.Remove(c.x.Min() - c.c)
	}
	return nil
}

func (c *NotEqualConstraint) String() string {
	return fmt.Sprintf("%v != %v + %d", c.x, c.y, c.c)
}

type LessOrEqualConstraint struct {
	*cp.BaseConstraint
	x, y cp.IntVar
}

// LessOrEqual returns a Constraint enforcing x <= y on bounds.
func LessOrEqual(x, y cp.IntVar) cp.Constraint {
	c := &LessOrEqualConstraint{BaseConstraint: cp.NewBaseConstraint(x.Solver()), x: x, y: y}
	c.SetPriority(cp.PriorityFast)
	return c
}

func (c *LessOrEqualConstraint) Post() error {
	c.x.PropagateOnBoundChange(c)
	c.y.PropagateOnBoundChange(c)
	return c.Propagate()
}

func (c *LessOrEqualConstraint) Propagate() error {
	if err := c.x.RemoveAbove(c.y.Max()); err != nil {
		return err
	}
	if err := c.y.RemoveBelow(c.x.Min()); err != nil {
		return err
	}
	if c.x.Max() <= c.y.Min() {
		c.SetActive(false)
	}
	return nil
}

func (c *LessOrEqualConstraint) String() string {
	return fmt.Sprintf("%v <= %v", c.x, c.y)
}

type IsEqualConstraint struct {
	*cp.BaseConstraint
	b cp.BoolVar
	x cp.IntVar
	v int
}

// IsEqual returns a Constraint enforcing b <=> (x == v).
func IsEqual(b cp.BoolVar, x cp.IntVar, v int) cp.Constraint {
	return &IsEqualConstraint{BaseConstraint: cp.NewBaseConstraint(x.Solver()), b: b, x: x, v: v}
}

func (c *IsEqualConstraint) Post() error {
	if err := c.Propagate(); err != nil || !c.IsActive() {
		return err
	}
	c.b.PropagateOnFix(c)
	c.x.PropagateOnDomainChange(c)
	return nil
}

func (c *IsEqualConstraint) Propagate() error {
	switch {
	case c.b.IsTrue():
		c.SetActive(false)
		return c.x.Fix(c.v)
	case c.b.IsFalse():
		c.SetActive(false)
		return c.x.Remove(c.v)
	case !c.x.Contains(c.v):
		c.SetActive(false)
		return c.b.FixBool(false)
	case c.x.IsFixed():
		c.SetActive(false)
		return c.b.FixBool(true)
	}
	return nil
}

func (c *IsEqualConstraint) String() string {
	return fmt.Sprintf("%v <=> %v == %d", c.b, c.x, c.v)
}
