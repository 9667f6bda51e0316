package cp_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

var _ = Describe("Solver", func() {
	var (
		s   *cp.Solver
		log []string
	)

	BeforeEach(func() {
		s = newSolver()
		log = nil
	})

	It("should propagate by priority then in FIFO order", func() {
		a := newRecorder(s, "a", cp.PrioritySlow, &log)
		b := newRecorder(s, "b", cp.PriorityFast, &log)
		c := newRecorder(s, "c", cp.PriorityMedium, &log)
		d := newRecorder(s, "d", cp.PriorityFast, &log)
		for _, r := range []*recorder{a, b, c, d} {
			s.Schedule(r)
		}
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(Equal([]string{"b", "d", "c", "a"}))
	})

	It("should queue a constraint at most once", func() {
		a := newRecorder(s, "a", cp.PriorityMedium, &log)
		s.Schedule(a)
		s.Schedule(a)
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(Equal([]string{"a"}))
	})

	It("should skip inactive constraints", func() {
		a := newRecorder(s, "a", cp.PriorityMedium, &log)
		a.SetActive(false)
		s.Schedule(a)
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(BeEmpty())
	})

	It("should restore the active flag on backtrack", func() {
		a := newRecorder(s, "a", cp.PriorityMedium, &log)
		s.StateManager().SaveState()
		a.SetActive(false)
		s.StateManager().RestoreState()
		Expect(a.IsActive()).To(BeTrue())
	})

	It("should clear the queue on failure", func() {
		a := newRecorder(s, "a", cp.PriorityFast, &log)
		a.err = cp.ErrInconsistency
		b := newRecorder(s, "b", cp.PriorityMedium, &log)
		s.Schedule(a)
		s.Schedule(b)
		Expect(s.Fixpoint()).To(MatchError(cp.ErrInconsistency))
		Expect(log).To(Equal([]string{"a"}))

		// b was unscheduled and can be queued again
		log = nil
		s.Schedule(b)
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(Equal([]string{"b"}))
	})

	It("should run fixpoint listeners before the queue", func() {
		a := newRecorder(s, "a", cp.PriorityFast, &log)
		s.OnFixpoint(func() error {
			log = append(log, "listener")
			return nil
		})
		s.Schedule(a)
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(Equal([]string{"listener", "a"}))
	})

	It("should reschedule constraints reacting to domain events", func() {
		x := newIntVar(s, 0, 9)
		a := newRecorder(s, "a", cp.PriorityMedium, &log)
		x.PropagateOnBoundChange(a)
		Expect(x.Remove(5)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(BeEmpty())
		Expect(x.RemoveBelow(3)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(log).To(Equal([]string{"a"}))
	})

	It("should post and propagate to a fixpoint", func() {
		x := newIntVar(s, 0, 9)
		y := newIntVar(s, 0, 9)
		Expect(s.Post(&lessThan{BaseConstraint: cp.NewBaseConstraint(s), x: x, y: y})).To(Succeed())
		Expect(x.Max()).To(Equal(8))
		Expect(y.Min()).To(Equal(1))
		Expect(y.RemoveAbove(4)).To(Succeed())
		Expect(s.Fixpoint()).To(Succeed())
		Expect(x.Max()).To(Equal(3))
	})

	It("should drop constraints scheduled by a failed action", func() {
		x := newIntVar(s, 0, 9)
		a := newRecorder(s, "a", cp.PriorityMedium, &log)
		x.PropagateOnBoundChange(a)
		err := s.Apply(func() error {
			if err := x.RemoveBelow(2); err != nil {
				return err
			}
			return x.RemoveAbove(1)
		})
		Expect(err).To(MatchError(cp.ErrInconsistency))
		Expect(log).To(BeEmpty())

		s.Schedule(a)
		Expect(s.Apply(func() error { return nil })).To(Succeed())
		Expect(log).To(Equal([]string{"a"}))
	})

	It("should only log posts when debug is enabled", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.InfoLevel)
		quiet := newSolver(cp.WithLogger(logger))
		Expect(quiet.Post(newRecorder(quiet, "a", cp.PriorityFast, &log))).To(Succeed())
		Expect(hook.AllEntries()).To(BeEmpty())

		logger.SetLevel(logrus.DebugLevel)
		x, y := newIntVar(quiet, 1, 1), newIntVar(quiet, 0, 1)
		Expect(quiet.Post(&lessThan{BaseConstraint: cp.NewBaseConstraint(quiet), x: x, y: y})).To(MatchError(cp.ErrInconsistency))
		Expect(hook.AllEntries()).To(HaveLen(2))
		Expect(hook.Entries[0].Message).To(Equal("posting constraint"))
		Expect(hook.Entries[0].Data).To(HaveKeyWithValue("level", 0))
		Expect(hook.LastEntry().Message).To(Equal("constraint failed at the root"))
	})

	It("should reject invalid options and domains", func() {
		_, err := cp.NewSolver(cp.WithHorizon(-1))
		Expect(errors.Is(err, cp.ErrInvalidModel)).To(BeTrue())

		sm := state.NewTrailer()
		sm.SaveState()
		_, err = cp.NewSolver(cp.WithStateManager(sm))
		Expect(errors.Is(err, cp.ErrInvalidModel)).To(BeTrue())

		s := newSolver(cp.WithHorizon(100))
		_, err = cp.NewIntVar(s, 0, 101)
		Expect(errors.Is(err, cp.ErrInvalidModel)).To(BeTrue())
		_, err = cp.NewIntVar(s, 3, 2)
		Expect(errors.Is(err, cp.ErrInvalidModel)).To(BeTrue())
		Expect(s.Horizon()).To(Equal(100))
	})
})

// lessThan is x < y on bounds.
type lessThan struct {
	*cp.BaseConstraint
	x, y cp.IntVar
}

func (c *lessThan) Post() error {
	c.x.PropagateOnBoundChange(c)
	c.y.PropagateOnBoundChange(c)
	return c.Propagate()
}

func (c *lessThan) Propagate() error {
	if err := c.x.RemoveAbove(c.y.Max() - 1); err != nil {
		return err
	}
	return c.y.RemoveBelow(c.x.Min() + 1)
}
