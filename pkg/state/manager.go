// Package state provides reversible primitives whose values are restored
// when the search backtracks. A Manager owns every reversible cell it
// creates and keeps a LIFO stack of checkpoints.
package state

import (
	"errors"
)

// ErrEmptyStateStack is the panic value raised when restoring a Manager
// that has no saved checkpoint left.
var ErrEmptyStateStack = errors.New("cannot restore state: no checkpoint saved")

// Manager saves and restores a consistent snapshot of all reversible cells
// it created. Checkpoints nest strictly: the Level is the number of
// checkpoints currently saved and is equal to the search depth.
//
// A Manager is not safe for concurrent use.
type Manager interface {
	// SaveState pushes a new checkpoint and increments the level.
	SaveState()
	// RestoreState pops the last checkpoint, undoing every mutation made
	// since it was saved. It panics with ErrEmptyStateStack at level 0.
	RestoreState()
	// RestoreStateUntil restores checkpoints until Level() == level.
	RestoreStateUntil(level int)
	// Level returns the number of checkpoints currently saved.
	Level() int
	// WithNewState runs body between a SaveState and the matching
	// restore, whatever body returns.
	WithNewState(body func() error) error
	// OnRestore registers a hook called after each RestoreState.
	OnRestore(listener func())

	MakeInt(v int) *Int
	MakeBool(v bool) *Bool

	store() *arena
}

type intEntry struct {
	idx int
	old int
}

type refEntry struct {
	idx int
	old any
}

// arena stores every reversible cell of a Manager in flat index-addressed
// arrays so that cells hold no pointers to each other.
type arena struct {
	ints     []int
	refs     []any
	intStamp []int64
	refStamp []int64

	// trail is false for the copying strategy, which does not record
	// individual writes.
	trail    bool
	magic    int64
	level    int
	intTrail []intEntry
	refTrail []refEntry

	onRestore []func()
}

func (a *arena) store() *arena {
	return a
}

func (a *arena) Level() int {
	return a.level
}

func (a *arena) OnRestore(listener func()) {
	a.onRestore = append(a.onRestore, listener)
}

func (a *arena) notifyRestore() {
	for _, l := range a.onRestore {
		l()
	}
}

func (a *arena) MakeInt(v int) *Int {
	a.ints = append(a.ints, v)
	// stamped one step in the past so the first write is always recorded
	a.intStamp = append(a.intStamp, a.magic-1)
	return &Int{a: a, idx: len(a.ints) - 1}
}

func (a *arena) MakeBool(v bool) *Bool {
	return &Bool{i: a.MakeInt(boolToInt(v))}
}

func (a *arena) makeRef(v any) int {
	a.refs = append(a.refs, v)
	a.refStamp = append(a.refStamp, a.magic-1)
	return len(a.refs) - 1
}

func (a *arena) setInt(idx, v int) {
	if a.ints[idx] == v {
		return
	}
	if a.trail && a.level > 0 && a.intStamp[idx] != a.magic {
		a.intTrail = append(a.intTrail, intEntry{idx: idx, old: a.ints[idx]})
		a.intStamp[idx] = a.magic
	}
	a.ints[idx] = v
}

func (a *arena) setRef(idx int, v any) {
	if a.trail && a.level > 0 && a.refStamp[idx] != a.magic {
		a.refTrail = append(a.refTrail, refEntry{idx: idx, old: a.refs[idx]})
		a.refStamp[idx] = a.magic
	}
	a.refs[idx] = v
}

func withNewState(m Manager, body func() error) error {
	level := m.Level()
	m.SaveState()
	defer m.RestoreStateUntil(level)
	return body()
}

func restoreUntil(m Manager, level int) {
	for m.Level() > level {
		m.RestoreState()
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
