// Package search explores the search tree of a constraint model depth
// first. Pending work is kept on an explicit stack of actions so that the
// depth of the tree is not bounded by the goroutine stack.
package search

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// Engine applies the decisions of the search. *cp.Solver implements it.
type Engine interface {
	StateManager() state.Manager
	// Apply runs action followed by a propagation fixpoint.
	Apply(action func() error) error
}

var _ Engine = &cp.Solver{}

// Alternative is one branch of a node. It typically restricts a domain;
// propagation is run by the search once it returns.
type Alternative func() error

// Branching returns the alternatives of the current node. No alternative
// means every variable of interest is fixed: the node is a solution.
type Branching func() []Alternative

// Objective is tightened after each solution found by Optimize.
// *cp.Objective implements it.
type Objective interface {
	Tighten() error
}

var _ Objective = &cp.Objective{}

type action func() error

// DFS is a depth-first search with backtracking. A DFS may be run several
// times but not concurrently.
type DFS struct {
	engine    Engine
	sm        state.Manager
	branching Branching
	listeners []Listener
	listener  Listener
	logger    logrus.FieldLogger

	onSolution []func()
	onFailure  []func()

	objective Objective
	actions   []action
	stats     Statistics
	root      int
}

type Option func(d *DFS) error

// WithListener adds l to the listeners notified of the search events.
func WithListener(l Listener) Option {
	return func(d *DFS) error {
		if l == nil {
			return errors.New("nil listener")
		}
		d.listeners = append(d.listeners, l)
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *DFS) error {
		d.logger = logger
		return nil
	}
}

var defaults = []Option{
	func(d *DFS) error {
		switch len(d.listeners) {
		case 0:
			d.listener = DefaultListener{}
		case 1:
			d.listener = d.listeners[0]
		default:
			d.listener = multiListener(d.listeners)
		}
		return nil
	},
	func(d *DFS) error {
		if d.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			d.logger = l
		}
		return nil
	},
}

// New returns a depth-first search over engine driven by branching.
func New(engine Engine, branching Branching, options ...Option) (*DFS, error) {
	if engine == nil {
		return nil, errors.New("search needs an engine")
	}
	if branching == nil {
		return nil, errors.New("search needs a branching")
	}
	d := &DFS{engine: engine, sm: engine.StateManager(), branching: branching}
	for _, option := range append(options, defaults...) {
		if err := option(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// OnSolution registers f, called at each solution while the variables are
// still fixed to their values.
func (d *DFS) OnSolution(f func()) {
	d.onSolution = append(d.onSolution, f)
}

// OnFailure registers f, called after each failed node.
func (d *DFS) OnFailure(f func()) {
	d.onFailure = append(d.onFailure, f)
}

// Solve explores the whole tree unless a limit is reached or ctx is done.
// Statistics.Completed tells which one happened. The error is only set
// for errors other than inconsistencies, and then aborts the search.
func (d *DFS) Solve(ctx context.Context, limits ...Limit) (Statistics, error) {
	return d.run(ctx, nil, nil, limits)
}

// SolveSubjectTo is Solve with subject applied at the root. Everything
// subject does is undone when the search returns.
func (d *DFS) SolveSubjectTo(ctx context.Context, subject Alternative, limits ...Limit) (Statistics, error) {
	return d.run(ctx, subject, nil, limits)
}

// Optimize is Solve where the objective is tightened after every
// solution, so that each solution improves on the previous one. The last
// solution found is optimal when the search is completed.
func (d *DFS) Optimize(ctx context.Context, obj Objective, limits ...Limit) (Statistics, error) {
	if obj == nil {
		return Statistics{}, errors.New("nil objective")
	}
	return d.run(ctx, nil, obj, limits)
}

func (d *DFS) run(ctx context.Context, subject Alternative, obj Objective, limits []Limit) (Statistics, error) {
	d.stats = Statistics{}
	d.actions = d.actions[:0]
	d.objective = obj
	defer func() { d.objective = nil }()
	limit := AnyOf(limits...)

	d.root = d.sm.Level()
	d.sm.SaveState()
	defer d.sm.RestoreStateUntil(d.root)

	if subject == nil {
		subject = func() error { return nil }
	}
	err := d.engine.Apply(subject)
	if err == nil {
		err = d.expand()
	}
	if err != nil && !cp.IsInconsistency(err) {
		return d.stats, err
	}
	if err != nil {
		d.fail()
	}

	for len(d.actions) > 0 {
		if ctx.Err() != nil || limit(d.stats) {
			d.logger.WithFields(d.stats.fields()).Debug("search stopped before completion")
			d.listener.Done(d.stats)
			return d.stats, nil
		}
		a := d.actions[len(d.actions)-1]
		d.actions[len(d.actions)-1] = nil
		d.actions = d.actions[:len(d.actions)-1]
		if err := a(); err != nil {
			if !cp.IsInconsistency(err) {
				d.logger.WithError(err).Debug("search aborted")
				return d.stats, err
			}
			d.fail()
		}
	}
	d.stats.Completed = true
	d.listener.Done(d.stats)
	return d.stats, nil
}

// depth is the number of decisions applied since the root.
func (d *DFS) depth() int {
	return d.sm.Level() - d.root - 1
}

func (d *DFS) expand() error {
	alternatives := d.branching()
	depth := d.depth()
	if len(alternatives) == 0 {
		d.stats.Solutions++
		if d.objective != nil {
			if err := d.objective.Tighten(); err != nil {
				return err
			}
		}
		d.listener.Solution(depth)
		for _, f := range d.onSolution {
			f()
		}
		return nil
	}
	d.listener.Branch(depth, len(alternatives))
	for i := len(alternatives) - 1; i >= 0; i-- {
		alternative := alternatives[i]
		d.actions = append(d.actions, d.restore, func() error {
			d.stats.Nodes++
			if err := d.engine.Apply(alternative); err != nil {
				return err
			}
			return d.expand()
		}, d.save)
	}
	return nil
}

func (d *DFS) save() error {
	d.sm.SaveState()
	d.listener.SaveState(d.sm.Level())
	return nil
}

func (d *DFS) restore() error {
	d.sm.RestoreState()
	d.listener.RestoreState(d.sm.Level())
	return nil
}

func (d *DFS) fail() {
	d.stats.Failures++
	d.listener.Fail(d.depth())
	for _, f := range d.onFailure {
		f()
	}
}
