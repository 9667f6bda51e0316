package constraint

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
)

type ClausesConstraint struct {
	*cp.BaseConstraint
	x       []cp.BoolVar
	clauses [][]int
	g       *gini.Gini
	assumed []z.Lit
	buffer  []z.Lit
}

// Clauses returns a Constraint enforcing a CNF formula over x. Literals use
// the DIMACS convention: i > 0 stands for x[i-1] and -i for its negation.
//
// Propagation is delegated to a gini SAT solver: the fixed variables are
// assumed inside a test scope and every literal implied by unit
// propagation is fixed in turn.
func Clauses(x []cp.BoolVar, clauses [][]int) cp.Constraint {
	c := &ClausesConstraint{x: x, clauses: clauses}
	if len(x) > 0 {
		c.BaseConstraint = cp.NewBaseConstraint(x[0].Solver())
	}
	return c
}

func (c *ClausesConstraint) Post() error {
	if len(c.x) == 0 {
		return errors.Wrap(cp.ErrInvalidModel, "clauses over no variable")
	}
	c.g = gini.New()
	for i, clause := range c.clauses {
		if len(clause) == 0 {
			return cp.ErrInconsistency
		}
		for _, l := range clause {
			if l == 0 || l > len(c.x) || -l > len(c.x) {
				return errors.Wrapf(cp.ErrInvalidModel, "clause %d: literal %d out of range", i, l)
			}
			c.g.Add(z.Dimacs2Lit(l))
		}
		c.g.Add(z.LitNull)
	}
	for _, x := range c.x {
		x.PropagateOnFix(c)
	}
	return c.Propagate()
}

func (c *ClausesConstraint) Propagate() error {
	c.assumed = c.assumed[:0]
	nFixed := 0
	for i, x := range c.x {
		if !x.IsFixed() {
			continue
		}
		nFixed++
		m := z.Var(i + 1).Pos()
		if x.IsFalse() {
			m = m.Not()
		}
		c.assumed = append(c.assumed, m)
	}
	c.g.Assume(c.assumed...)
	var result int
	result, c.buffer = c.g.Test(c.buffer[:0])
	defer c.g.Untest()
	if result == -1 {
		return cp.ErrInconsistency
	}
	for _, m := range c.buffer {
		i := int(m.Var()) - 1
		if i < 0 || i >= len(c.x) {
			continue
		}
		if err := c.x[i].FixBool(m.IsPos()); err != nil {
			return err
		}
	}
	if nFixed == len(c.x) {
		c.SetActive(false)
	}
	return nil
}

func (c *ClausesConstraint) String() string {
	return fmt.Sprintf("clauses(%d vars, %d clauses)", len(c.x), len(c.clauses))
}
