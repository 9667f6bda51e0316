// Package cp implements the constraint programming core: integer, boolean,
// set and sequence variables over reversible domains, and a solver that
// runs scheduled constraints to a fixpoint.
package cp

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// DefaultHorizon bounds the values of every variable created on a solver
// configured without WithHorizon.
const DefaultHorizon = math.MaxInt32

// DefaultLazyDomainThreshold is the domain size from which integer
// variables start as intervals.
const DefaultLazyDomainThreshold = 1 << 16

// Solver owns the state manager, the propagation queue and the fixpoint
// listeners of a model. It is not safe for concurrent use.
type Solver struct {
	sm     state.Manager
	queue  [nPriorities][]Constraint
	heads  [nPriorities]int
	logger logrus.FieldLogger

	fixpointListeners []func() error

	horizon       int
	lazyThreshold int
}

type Option func(s *Solver) error

// WithStateManager sets the reversible state implementation. It must be
// at level 0.
func WithStateManager(sm state.Manager) Option {
	return func(s *Solver) error {
		if sm.Level() != 0 {
			return errors.Wrapf(ErrInvalidModel, "state manager at level %d", sm.Level())
		}
		s.sm = sm
		return nil
	}
}

// WithTrailing uses a trail-based state manager. This is the default.
func WithTrailing() Option {
	return func(s *Solver) error {
		s.sm = state.NewTrailer()
		return nil
	}
}

// WithCopying uses a state manager that copies every cell at each
// checkpoint.
func WithCopying() Option {
	return func(s *Solver) error {
		s.sm = state.NewCopier()
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Solver) error {
		s.logger = logger
		return nil
	}
}

// WithHorizon limits the absolute value of every variable bound.
func WithHorizon(horizon int) Option {
	return func(s *Solver) error {
		if horizon <= 0 {
			return errors.Wrapf(ErrInvalidModel, "horizon must be positive, got %d", horizon)
		}
		s.horizon = horizon
		return nil
	}
}

// WithLazyDomainThreshold sets the domain size from which integer
// variables use a LazySparseSetDomain.
func WithLazyDomainThreshold(size int) Option {
	return func(s *Solver) error {
		s.lazyThreshold = size
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.sm == nil {
			s.sm = state.NewTrailer()
		}
		return nil
	},
	func(s *Solver) error {
		if s.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			s.logger = l
		}
		return nil
	},
	func(s *Solver) error {
		if s.horizon == 0 {
			s.horizon = DefaultHorizon
		}
		if s.lazyThreshold == 0 {
			s.lazyThreshold = DefaultLazyDomainThreshold
		}
		return nil
	},
}

func NewSolver(options ...Option) (*Solver, error) {
	s := &Solver{}
	for _, option := range append(options, defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Solver) StateManager() state.Manager {
	return s.sm
}

func (s *Solver) Logger() logrus.FieldLogger {
	return s.logger
}

func (s *Solver) Horizon() int {
	return s.horizon
}

// Schedule enqueues c in the bucket of its priority, unless c is inactive
// or already waiting.
func (s *Solver) Schedule(c Constraint) {
	if !c.IsActive() || c.isScheduled() {
		return
	}
	c.setScheduled(true)
	p := c.Priority()
	s.queue[p] = append(s.queue[p], c)
}

func (s *Solver) dequeue() Constraint {
	for p := range s.queue {
		q := s.queue[p]
		h := s.heads[p]
		if h == len(q) {
			continue
		}
		c := q[h]
		q[h] = nil
		if h+1 == len(q) {
			s.queue[p] = q[:0]
			s.heads[p] = 0
		} else {
			s.heads[p] = h + 1
		}
		c.setScheduled(false)
		return c
	}
	return nil
}

func (s *Solver) clearQueue() {
	for c := s.dequeue(); c != nil; c = s.dequeue() {
	}
}

// OnFixpoint registers a listener run at the start of every fixpoint,
// before the queue is drained. Listeners stay registered for the lifetime
// of the solver.
func (s *Solver) OnFixpoint(listener func() error) {
	s.fixpointListeners = append(s.fixpointListeners, listener)
}

// Fixpoint propagates scheduled constraints, lowest priority value first
// and FIFO within a priority, until the queue is empty. On error the queue
// is cleared so the solver is ready for the next node.
func (s *Solver) Fixpoint() error {
	for _, l := range s.fixpointListeners {
		if err := l(); err != nil {
			s.clearQueue()
			return err
		}
	}
	for c := s.dequeue(); c != nil; c = s.dequeue() {
		if !c.IsActive() {
			continue
		}
		if err := c.Propagate(); err != nil {
			s.clearQueue()
			return err
		}
		c.updateDeltas()
	}
	return nil
}

// Apply runs action then the fixpoint. Constraints scheduled by a failed
// action are dropped from the queue.
func (s *Solver) Apply(action func() error) error {
	if err := action(); err != nil {
		s.clearQueue()
		return err
	}
	return s.Fixpoint()
}

// Post runs c's initial filtering then the fixpoint.
func (s *Solver) Post(c Constraint) error {
	return s.post(c, true)
}

// PostWithoutFixpoint runs c's initial filtering only. The scheduled
// constraints propagate at the next fixpoint.
func (s *Solver) PostWithoutFixpoint(c Constraint) error {
	return s.post(c, false)
}

func (s *Solver) post(c Constraint, fixpoint bool) error {
	debug := s.debugEnabled()
	if debug {
		s.logger.WithFields(logrus.Fields{
			"constraint": fmt.Sprintf("%T", c),
			"level":      s.sm.Level(),
		}).Debug("posting constraint")
	}
	err := c.Post()
	if err != nil {
		s.clearQueue()
	} else if fixpoint {
		err = s.Fixpoint()
	}
	if debug && err != nil && s.sm.Level() == 0 {
		s.logger.WithField("constraint", fmt.Sprintf("%T", c)).WithError(err).Debug("constraint failed at the root")
	}
	return err
}

// debugEnabled reports whether the logger emits debug entries. Loggers
// that do not expose their level are assumed to.
func (s *Solver) debugEnabled() bool {
	switch l := s.logger.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}

// PostAll posts every constraint then runs a single fixpoint.
func (s *Solver) PostAll(cs ...Constraint) error {
	for _, c := range cs {
		if err := s.post(c, false); err != nil {
			return err
		}
	}
	return s.Fixpoint()
}

func (s *Solver) checkBounds(min, max int) error {
	if min > max {
		return errors.Wrapf(ErrInvalidModel, "empty domain [%d..%d]", min, max)
	}
	if min < -s.horizon || max > s.horizon {
		return errors.Wrapf(ErrInvalidModel, "domain [%d..%d] exceeds horizon %d", min, max, s.horizon)
	}
	return nil
}
