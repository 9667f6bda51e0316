package constraint_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp/constraint"
)

var _ = Describe("Or", func() {
	var (
		s  *cp.Solver
		bs []cp.BoolVar
	)

	BeforeEach(func() {
		s = newSolver()
		bs = cp.NewBoolVarArray(s, 3)
		Expect(s.Post(constraint.Or(bs...))).To(Succeed())
	})

	It("should force the last unfixed literal", func() {
		Expect(bs[0].FixBool(false)).To(Succeed())
		Expect(bs[1].FixBool(false)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(bs[2].IsTrue()).To(BeTrue())
	})

	It("should be satisfied by any true literal", func() {
		Expect(bs[1].FixBool(true)).To(Succeed())
		Expect(bs[0].FixBool(false)).To(Succeed())
		Expect(bs[2].FixBool(false)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
	})

	It("should fail when every literal is false", func() {
		sm := s.StateManager()
		sm.SaveState()
		for _, b := range bs {
			Expect(b.FixBool(false)).To(Succeed())
		}
		Expect(s.Fixpoint()).To(MatchError(cp.ErrInconsistency))
		sm.RestoreState()

		// watches were restored with the state
		Expect(bs[2].FixBool(false)).To(Succeed())
		Expect(bs[0].FixBool(false)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(bs[1].IsTrue()).To(BeTrue())
	})

	It("should reject an empty disjunction", func() {
		Expect(s.Post(constraint.Or())).To(MatchError(cp.ErrInvalidModel))
	})
})

var _ = Describe("SubCircuit", func() {
	var (
		s    *cp.Solver
		succ []cp.IntVar
	)

	BeforeEach(func() {
		s = newSolver()
		succ = newIntVars(s, 4, 0, 3)
		Expect(s.Post(constraint.SubCircuit(succ...))).To(Succeed())
	})

	It("should close a 2-cycle when the other nodes are self-loops", func() {
		Expect(succ[2].Fix(2)).To(Succeed())
		Expect(succ[3].Fix(3)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(cp.Values(succ[0])).To(Equal([]int{0, 1}))

		Expect(succ[0].Remove(0)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(succ[0].Min()).To(Equal(1))
		Expect(succ[1].IsFixed()).To(BeTrue())
		Expect(succ[1].Min()).To(Equal(0))
	})

	It("should forbid closing a chain while another one is open", func() {
		Expect(succ[0].Fix(1)).To(Succeed())
		Expect(succ[2].Fix(3)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(succ[3].Contains(2)).To(BeFalse())
		Expect(succ[3].Contains(0)).To(BeTrue())
	})

	It("should leave the remaining nodes out once the circuit closes", func() {
		Expect(succ[0].Fix(2)).To(Succeed())
		Expect(succ[2].Fix(0)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(succ[1].Min()).To(Equal(1))
		Expect(succ[3].Min()).To(Equal(3))
	})

	It("should reject a second circuit", func() {
		Expect(succ[0].Fix(1)).To(Succeed())
		Expect(succ[1].Fix(0)).To(Succeed())
		Expect(succ[2].Fix(3)).To(Succeed())
		Expect(s.Fixpoint()).To(MatchError(cp.ErrInconsistency))
	})
})

var _ = Describe("Clauses", func() {
	var (
		s  *cp.Solver
		bs []cp.BoolVar
	)

	BeforeEach(func() {
		s = newSolver()
		bs = cp.NewBoolVarArray(s, 3)
		// (x1 or x2) and (not x1 or x3)
		Expect(s.Post(constraint.Clauses(bs, [][]int{{1, 2}, {-1, 3}}))).To(Succeed())
	})

	It("should fix the literals implied by unit propagation", func() {
		Expect(bs[0].FixBool(true)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(bs[2].IsTrue()).To(BeTrue())
		Expect(bs[1].IsFixed()).To(BeFalse())
	})

	It("should chain implications", func() {
		Expect(bs[1].FixBool(false)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(bs[0].IsTrue()).To(BeTrue())
		Expect(bs[2].IsTrue()).To(BeTrue())
	})

	It("should fail on a falsified clause", func() {
		Expect(bs[0].FixBool(true)).To(Succeed())
		Expect(bs[2].FixBool(false)).To(Succeed())
		Expect(s.Fixpoint()).To(MatchError(cp.ErrInconsistency))
	})

	It("should reject literals out of range", func() {
		Expect(s.Post(constraint.Clauses(bs, [][]int{{4}}))).To(MatchError(cp.ErrInvalidModel))
	})
})

var _ = Describe("Set constraints", func() {
	var (
		s    *cp.Solver
		a, b *cp.SetVar
	)

	BeforeEach(func() {
		s = newSolver()
		var err error
		a, err = cp.NewSetVar(s, 4)
		Expect(err).ToNot(HaveOccurred())
		b, err = cp.NewSetVar(s, 4)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reify membership", func() {
		in := cp.NewBoolVar(s)
		Expect(s.Post(constraint.IsIncluded(in, a, 2))).To(Succeed())
		Expect(a.Exclude(2)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(in.IsFalse()).To(BeTrue())

		other := cp.NewBoolVar(s)
		Expect(s.Post(constraint.IsIncluded(other, a, 1))).To(Succeed())
		Expect(other.FixBool(true)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(a.IsIncluded(1)).To(BeTrue())
	})

	It("should propagate inclusion", func() {
		Expect(s.Post(constraint.Subset(a, b))).To(Succeed())
		Expect(a.Include(0)).To(Succeed())
		Expect(b.Exclude(3)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(b.IsIncluded(0)).To(BeTrue())
		Expect(a.IsExcluded(3)).To(BeTrue())
		Expect(a.Card().Max()).To(Equal(3))
	})

	It("should fail when an included value is excluded from the superset", func() {
		Expect(s.Post(constraint.Subset(a, b))).To(Succeed())
		Expect(a.Include(1)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(b.Exclude(1)).To(MatchError(cp.ErrInconsistency))
	})
})
