package cp_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
)

var _ = Describe("Objective", func() {
	var (
		s *cp.Solver
		x cp.IntVar
	)

	BeforeEach(func() {
		s = newSolver()
		x = newIntVar(s, 0, 10)
	})

	It("should enforce a strictly better bound after each solution", func() {
		o := s.Minimize(x)
		sm := s.StateManager()

		sm.SaveState()
		Expect(x.Fix(6)).To(Succeed())
		Expect(o.Tighten()).To(Succeed())
		Expect(o.Evaluate()).To(Equal(6))
		sm.RestoreState()

		Expect(o.Bound()).To(Equal(5))
		Expect(s.Fixpoint()).To(Succeed())
		Expect(x.Max()).To(Equal(5))
		best, ok := o.Best()
		Expect(ok).To(BeTrue())
		Expect(best).To(Equal(6))
	})

	It("should allow equal solutions when not strict", func() {
		o := s.Maximize(x)
		o.SetStrict(false)
		Expect(x.Fix(4)).To(Succeed())
		Expect(o.Tighten()).To(Succeed())
		Expect(o.Bound()).To(Equal(4))
		Expect(s.Fixpoint()).To(Succeed())
	})

	It("should refuse to tighten on an unfixed variable", func() {
		o := s.Minimize(x)
		Expect(o.Tighten()).To(MatchError(cp.ErrInvalidModel))
		_, ok := o.Best()
		Expect(ok).To(BeFalse())
	})
})
