package state_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

var managers = map[string]func() state.Manager{
	"trailing": func() state.Manager { return state.NewTrailer() },
	"copying":  func() state.Manager { return state.NewCopier() },
}

var _ = Describe("Manager", func() {
	for name, newManager := range managers {
		newManager := newManager
		Context("with "+name, func() {
			var sm state.Manager

			BeforeEach(func() {
				sm = newManager()
			})

			It("should restore an int to its value at save time", func() {
				a := sm.MakeInt(5)
				b := sm.MakeInt(9)

				sm.SaveState()
				a.SetValue(7)
				a.SetValue(8)
				sm.SaveState()
				a.SetValue(1)
				b.SetValue(0)
				Expect(sm.Level()).To(Equal(2))

				sm.RestoreState()
				Expect(a.Value()).To(Equal(8))
				Expect(b.Value()).To(Equal(9))

				sm.RestoreState()
				Expect(a.Value()).To(Equal(5))
				Expect(sm.Level()).To(Equal(0))
			})

			It("should restore values written again after a nested restore", func() {
				a := sm.MakeInt(0)
				sm.SaveState()
				a.SetValue(1)
				sm.SaveState()
				a.SetValue(2)
				sm.RestoreState()
				Expect(a.Value()).To(Equal(1))
				a.SetValue(3)
				sm.RestoreState()
				Expect(a.Value()).To(Equal(0))
			})

			It("should restore cells created below the current level", func() {
				sm.SaveState()
				a := sm.MakeInt(4)
				a.SetValue(6)
				sm.SaveState()
				a.SetValue(10)
				sm.RestoreState()
				Expect(a.Value()).To(Equal(6))
			})

			It("should restore booleans and references", func() {
				b := sm.MakeBool(true)
				r := state.NewRef(sm, "root")
				sm.SaveState()
				b.SetValue(false)
				r.SetValue("child")
				Expect(b.Value()).To(BeFalse())
				Expect(r.Value()).To(Equal("child"))
				sm.RestoreState()
				Expect(b.Value()).To(BeTrue())
				Expect(r.Value()).To(Equal("root"))
			})

			It("should restore until a given level", func() {
				a := sm.MakeInt(0)
				for i := 1; i <= 5; i++ {
					sm.SaveState()
					a.SetValue(i)
				}
				sm.RestoreStateUntil(2)
				Expect(sm.Level()).To(Equal(2))
				Expect(a.Value()).To(Equal(2))
			})

			It("should run a body within a new state", func() {
				a := sm.MakeInt(3)
				err := sm.WithNewState(func() error {
					a.SetValue(42)
					Expect(sm.Level()).To(Equal(1))
					return errors.New("boom")
				})
				Expect(err).To(MatchError("boom"))
				Expect(a.Value()).To(Equal(3))
				Expect(sm.Level()).To(Equal(0))
			})

			It("should call restore hooks", func() {
				calls := 0
				sm.OnRestore(func() { calls++ })
				sm.SaveState()
				sm.SaveState()
				sm.RestoreStateUntil(0)
				Expect(calls).To(Equal(2))
			})

			It("should panic when restoring past the root", func() {
				Expect(func() { sm.RestoreState() }).To(PanicWith(state.ErrEmptyStateStack))
			})

			It("should undo pushes on a reversible stack", func() {
				s := state.NewStack[string](sm)
				s.Push("a")
				sm.SaveState()
				s.Push("b")
				s.Push("c")
				Expect(s.Size()).To(Equal(3))
				sm.RestoreState()
				Expect(s.Size()).To(Equal(1))
				s.Push("d")
				Expect(s.Get(1)).To(Equal("d"))
			})
		})
	}
})
