package state

type snapshot struct {
	ints []int
	refs []any
}

// Copier is a Manager taking a full copy of the cell arrays on each
// SaveState. Writes are never recorded, restores copy the snapshot back.
type Copier struct {
	*arena
	prior []snapshot
}

var _ Manager = &Copier{}

// NewCopier returns a Manager using the copy-on-save strategy.
func NewCopier() *Copier {
	return &Copier{arena: &arena{trail: false}}
}

func (c *Copier) SaveState() {
	s := snapshot{
		ints: make([]int, len(c.ints)),
		refs: make([]any, len(c.refs)),
	}
	copy(s.ints, c.ints)
	copy(s.refs, c.refs)
	c.prior = append(c.prior, s)
	c.level++
}

func (c *Copier) RestoreState() {
	if len(c.prior) == 0 {
		panic(ErrEmptyStateStack)
	}
	s := c.prior[len(c.prior)-1]
	c.prior[len(c.prior)-1] = snapshot{}
	c.prior = c.prior[:len(c.prior)-1]
	// cells created after the snapshot keep their current value
	copy(c.ints, s.ints)
	copy(c.refs, s.refs)
	c.level--
	c.notifyRestore()
}

func (c *Copier) RestoreStateUntil(level int) {
	restoreUntil(c, level)
}

func (c *Copier) WithNewState(body func() error) error {
	return withNewState(c, body)
}
