package constraint_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp/constraint"
)

var _ = Describe("Equal", func() {
	var (
		s    *cp.Solver
		x, y cp.IntVar
	)

	BeforeEach(func() {
		s = newSolver()
		x = newIntVar(s, 1, 5)
		y = newIntVar(s, 3, 8)
		Expect(s.Post(constraint.Equal(x, y))).To(Succeed())
	})

	It("should intersect the domains when posted", func() {
		Expect(cp.Values(x)).To(Equal([]int{3, 4, 5}))
		Expect(cp.Values(y)).To(Equal([]int{3, 4, 5}))
	})

	It("should propagate a fixed value", func() {
		Expect(x.Fix(4)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(y.IsFixed()).To(BeTrue())
		Expect(y.Min()).To(Equal(4))
	})

	It("should mirror interior removals", func() {
		Expect(y.Remove(4)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(cp.Values(x)).To(Equal([]int{3, 5}))

		s.StateManager().SaveState()
		Expect(x.Remove(5)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(cp.Values(y)).To(Equal([]int{3}))
		s.StateManager().RestoreState()

		Expect(x.Remove(3)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(cp.Values(y)).To(Equal([]int{5}))
	})

	It("should be idempotent at the fixpoint", func() {
		z := newIntVar(s, 0, 10)
		Expect(s.Post(constraint.LessOrEqual(y, z))).To(Succeed())
		Expect(x.Remove(4)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		before := [][]int{cp.Values(x), cp.Values(y), cp.Values(z)}
		Expect(s.Fixpoint()).To(Succeed())
		Expect([][]int{cp.Values(x), cp.Values(y), cp.Values(z)}).To(Equal(before))
	})
})

var _ = Describe("NotEqual", func() {
	It("should remove the shifted value once a side is fixed", func() {
		s := newSolver()
		x := newIntVar(s, 0, 5)
		y := newIntVar(s, 0, 5)
		Expect(s.Post(constraint.NotEqual(x, y, 2))).To(Succeed())
		Expect(y.Fix(1)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(x.Contains(3)).To(BeFalse())
		Expect(x.Size()).To(Equal(5))
	})

	It("should fail when both sides are fixed to forbidden values", func() {
		s := newSolver()
		x := cp.NewConstant(s, 3)
		y := cp.NewConstant(s, 3)
		Expect(s.Post(constraint.NotEqual(x, y, 0))).To(MatchError(cp.ErrInconsistency))
	})
})

var _ = Describe("LessOrEqual", func() {
	It("should filter bounds in both directions", func() {
		s := newSolver()
		x := newIntVar(s, 3, 9)
		y := newIntVar(s, 0, 6)
		Expect(s.Post(constraint.LessOrEqual(x, y))).To(Succeed())
		Expect(x.Max()).To(Equal(6))
		Expect(y.Min()).To(Equal(3))
	})
})

var _ = Describe("IsEqual", func() {
	var (
		s *cp.Solver
		b cp.BoolVar
		x cp.IntVar
	)

	BeforeEach(func() {
		s = newSolver()
		b = cp.NewBoolVar(s)
		x = newIntVar(s, 0, 4)
		Expect(s.Post(constraint.IsEqual(b, x, 2))).To(Succeed())
	})

	DescribeTable("should link the boolean and the value",
		func(act func() error, check func()) {
			Expect(act()).To(Succeed())
			Expect(s.Fixpoint()).To(Succeed())
			check()
		},
		Entry("b true fixes x", func() error { return b.FixBool(true) }, func() {
			Expect(x.IsFixed()).To(BeTrue())
			Expect(x.Min()).To(Equal(2))
		}),
		Entry("b false removes the value", func() error { return b.FixBool(false) }, func() {
			Expect(x.Contains(2)).To(BeFalse())
			Expect(x.Size()).To(Equal(4))
		}),
		Entry("removing the value sets b false", func() error { return x.Remove(2) }, func() {
			Expect(b.IsFalse()).To(BeTrue())
		}),
		Entry("fixing x to the value sets b true", func() error { return x.Fix(2) }, func() {
			Expect(b.IsTrue()).To(BeTrue())
		}),
	)
})

var _ = Describe("Sum", func() {
	It("should filter bounds of the terms and the total", func() {
		s := newSolver()
		xs := newIntVars(s, 3, 0, 5)
		y := newIntVar(s, 12, 20)
		Expect(s.Post(constraint.Sum(xs, y))).To(Succeed())
		Expect(y.Max()).To(Equal(15))
		for _, x := range xs {
			Expect(x.Min()).To(Equal(2))
		}
		Expect(xs[0].Fix(2)).To(Succeed())
		Expect(xs[1].Fix(5)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(xs[2].Min()).To(Equal(5))
		Expect(y.Min()).To(Equal(12))
	})

	It("should reject an empty constant sum", func() {
		_, err := constraint.SumConstant(nil, 3)
		Expect(err).To(MatchError(cp.ErrInvalidModel))
	})

	It("should fail when the total is out of reach", func() {
		s := newSolver()
		xs := newIntVars(s, 2, 0, 1)
		c, err := constraint.SumConstant(xs, 3)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Post(c)).To(MatchError(cp.ErrInconsistency))
	})
})

var _ = Describe("AllDifferent", func() {
	It("should remove the values of fixed variables from the others", func() {
		s := newSolver()
		xs := newIntVars(s, 3, 0, 2)
		Expect(s.Post(constraint.AllDifferent(xs...))).To(Succeed())
		Expect(xs[0].Fix(1)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(cp.Values(xs[1])).To(Equal([]int{0, 2}))
		Expect(xs[1].Fix(2)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(xs[2].IsFixed()).To(BeTrue())
		Expect(xs[2].Min()).To(Equal(0))
	})

	It("should detect two variables fixed to the same value", func() {
		s := newSolver()
		xs := newIntVars(s, 3, 0, 5)
		Expect(s.Post(constraint.AllDifferent(xs...))).To(Succeed())
		Expect(xs[0].Fix(4)).To(Succeed())
		Expect(xs[2].Fix(4)).To(Succeed())
		Expect(s.Fixpoint()).To(MatchError(cp.ErrInconsistency))
	})
})
