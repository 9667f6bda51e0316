package state

type trailCheckpoint struct {
	ints int
	refs int
}

// Trailer is a Manager recording the previous value of a cell on its first
// write after each checkpoint and replaying these records backwards on
// restore.
type Trailer struct {
	*arena
	prior []trailCheckpoint
}

var _ Manager = &Trailer{}

// NewTrailer returns a Manager using the trailing strategy.
func NewTrailer() *Trailer {
	return &Trailer{arena: &arena{trail: true}}
}

func (t *Trailer) SaveState() {
	t.prior = append(t.prior, trailCheckpoint{ints: len(t.intTrail), refs: len(t.refTrail)})
	t.level++
	t.magic++
}

func (t *Trailer) RestoreState() {
	if len(t.prior) == 0 {
		panic(ErrEmptyStateStack)
	}
	cp := t.prior[len(t.prior)-1]
	t.prior = t.prior[:len(t.prior)-1]
	for i := len(t.intTrail) - 1; i >= cp.ints; i-- {
		e := t.intTrail[i]
		t.ints[e.idx] = e.old
	}
	t.intTrail = t.intTrail[:cp.ints]
	for i := len(t.refTrail) - 1; i >= cp.refs; i-- {
		e := t.refTrail[i]
		t.refs[e.idx] = e.old
		t.refTrail[i].old = nil
	}
	t.refTrail = t.refTrail[:cp.refs]
	t.level--
	t.magic++
	t.notifyRestore()
}

func (t *Trailer) RestoreStateUntil(level int) {
	restoreUntil(t, level)
}

func (t *Trailer) WithNewState(body func() error) error {
	return withNewState(t, body)
}
