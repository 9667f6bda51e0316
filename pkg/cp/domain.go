package cp

import (
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// DomainListener is notified by an IntDomain of the events caused by a
// mutation. Events are raised after the domain was updated.
type DomainListener interface {
	Empty()
	Bind()
	Change()
	ChangeMin()
	ChangeMax()
}

// IntDomain is the reversible set of values of an integer variable.
// Mutators return ErrInconsistency when they empty the domain.
type IntDomain interface {
	Min() int
	Max() int
	Size() int
	Contains(v int) bool
	IsSingleton() bool

	Remove(v int, l DomainListener) error
	RemoveAllBut(v int, l DomainListener) error
	RemoveBelow(v int, l DomainListener) error
	RemoveAbove(v int, l DomainListener) error

	FillArray(dest []int) int
	// FillDeltaArray copies into dest the values removed since the domain
	// had the given bounds and size.
	FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int

	String() string
}

// notify raises the events corresponding to the difference between the
// old bounds and size and the current ones.
func notify(d IntDomain, l DomainListener, oldMin, oldMax, oldSize int) error {
	size := d.Size()
	if size == oldSize {
		return nil
	}
	if size == 0 {
		l.Empty()
		return ErrInconsistency
	}
	l.Change()
	if d.Min() != oldMin {
		l.ChangeMin()
	}
	if d.Max() != oldMax {
		l.ChangeMax()
	}
	if size == 1 {
		l.Bind()
	}
	return nil
}

// SparseSetDomain is an IntDomain backed by a reversible sparse set.
type SparseSetDomain struct {
	set *state.SparseSet
}

var _ IntDomain = &SparseSetDomain{}

func NewSparseSetDomain(sm state.Manager, min, max int) *SparseSetDomain {
	return &SparseSetDomain{set: state.NewSparseSet(sm, max-min+1, min)}
}

func (d *SparseSetDomain) Min() int                 { return d.set.Min() }
func (d *SparseSetDomain) Max() int                 { return d.set.Max() }
func (d *SparseSetDomain) Size() int                { return d.set.Size() }
func (d *SparseSetDomain) Contains(v int) bool      { return d.set.Contains(v) }
func (d *SparseSetDomain) IsSingleton() bool        { return d.set.Size() == 1 }
func (d *SparseSetDomain) FillArray(dest []int) int { return d.set.FillArray(dest) }

func (d *SparseSetDomain) Remove(v int, l DomainListener) error {
	if !d.set.Contains(v) {
		return nil
	}
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	d.set.Remove(v)
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *SparseSetDomain) RemoveAllBut(v int, l DomainListener) error {
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	if d.set.Contains(v) {
		d.set.RemoveAllBut(v)
	} else {
		d.set.RemoveAll()
	}
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *SparseSetDomain) RemoveBelow(v int, l DomainListener) error {
	if d.set.Min() >= v {
		return nil
	}
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	d.set.RemoveBelow(v)
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *SparseSetDomain) RemoveAbove(v int, l DomainListener) error {
	if d.set.Max() <= v {
		return nil
	}
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	d.set.RemoveAbove(v)
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *SparseSetDomain) FillDeltaArray(_, _, oldSize int, dest []int) int {
	return d.set.FillRemoved(oldSize, dest)
}

func (d *SparseSetDomain) String() string {
	return d.set.String()
}

// LazySparseSetDomain behaves as an interval until a value is removed
// from its interior, and switches to a sparse set from then on. Large
// domains that are only ever bound-filtered never pay for the sparse
// representation.
type LazySparseSetDomain struct {
	sm         state.Manager
	initMin    int
	initMax    int
	interval   *state.Interval
	sparse     *state.SparseSet
	isInterval *state.Bool

	// bounds and size at the last switch, used to compute deltas spanning
	// the switch
	swMin  *state.Int
	swMax  *state.Int
	swSize *state.Int
}

var _ IntDomain = &LazySparseSetDomain{}

func NewLazySparseSetDomain(sm state.Manager, min, max int) *LazySparseSetDomain {
	return &LazySparseSetDomain{
		sm:         sm,
		initMin:    min,
		initMax:    max,
		interval:   state.NewInterval(sm, min, max),
		isInterval: sm.MakeBool(true),
		swMin:      sm.MakeInt(min),
		swMax:      sm.MakeInt(max),
		swSize:     sm.MakeInt(max - min + 1),
	}
}

// IsInterval reports whether the domain still uses the interval
// representation.
func (d *LazySparseSetDomain) IsInterval() bool {
	return d.isInterval.Value()
}

func (d *LazySparseSetDomain) switchToSparse() {
	if d.sparse == nil {
		d.sparse = state.NewSparseSet(d.sm, d.initMax-d.initMin+1, d.initMin)
	}
	min, max := d.interval.Min(), d.interval.Max()
	d.sparse.Reset()
	d.sparse.RemoveBelow(min)
	d.sparse.RemoveAbove(max)
	d.swMin.SetValue(min)
	d.swMax.SetValue(max)
	d.swSize.SetValue(max - min + 1)
	d.isInterval.SetValue(false)
}

func (d *LazySparseSetDomain) Min() int {
	if d.isInterval.Value() {
		return d.interval.Min()
	}
	return d.sparse.Min()
}

func (d *LazySparseSetDomain) Max() int {
	if d.isInterval.Value() {
		return d.interval.Max()
	}
	return d.sparse.Max()
}

func (d *LazySparseSetDomain) Size() int {
	if d.isInterval.Value() {
		return d.interval.Size()
	}
	return d.sparse.Size()
}

func (d *LazySparseSetDomain) Contains(v int) bool {
	if d.isInterval.Value() {
		return d.interval.Contains(v)
	}
	return d.sparse.Contains(v)
}

func (d *LazySparseSetDomain) IsSingleton() bool {
	return d.Size() == 1
}

func (d *LazySparseSetDomain) FillArray(dest []int) int {
	if !d.isInterval.Value() {
		return d.sparse.FillArray(dest)
	}
	n := 0
	for v := d.interval.Min(); v <= d.interval.Max(); v++ {
		dest[n] = v
		n++
	}
	return n
}

func (d *LazySparseSetDomain) Remove(v int, l DomainListener) error {
	if !d.Contains(v) {
		return nil
	}
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	if d.isInterval.Value() {
		switch v {
		case oldMin:
			d.interval.RemoveBelow(v + 1)
		case oldMax:
			d.interval.RemoveAbove(v - 1)
		default:
			d.switchToSparse()
			d.sparse.Remove(v)
		}
	} else {
		d.sparse.Remove(v)
	}
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *LazySparseSetDomain) RemoveAllBut(v int, l DomainListener) error {
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	contained := d.Contains(v)
	switch {
	case d.isInterval.Value() && contained:
		d.interval.RemoveAllBut(v)
	case d.isInterval.Value():
		d.interval.RemoveAll()
	case contained:
		d.sparse.RemoveAllBut(v)
	default:
		d.sparse.RemoveAll()
	}
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *LazySparseSetDomain) RemoveBelow(v int, l DomainListener) error {
	if d.Min() >= v {
		return nil
	}
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	if d.isInterval.Value() {
		d.interval.RemoveBelow(v)
	} else {
		d.sparse.RemoveBelow(v)
	}
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *LazySparseSetDomain) RemoveAbove(v int, l DomainListener) error {
	if d.Max() <= v {
		return nil
	}
	oldMin, oldMax, oldSize := d.Min(), d.Max(), d.Size()
	if d.isInterval.Value() {
		d.interval.RemoveAbove(v)
	} else {
		d.sparse.RemoveAbove(v)
	}
	return notify(d, l, oldMin, oldMax, oldSize)
}

func (d *LazySparseSetDomain) FillDeltaArray(oldMin, oldMax, oldSize int, dest []int) int {
	n := 0
	if d.isInterval.Value() {
		lo, hi := d.interval.Min(), d.interval.Max()
		if d.interval.IsEmpty() {
			lo, hi = oldMax+1, oldMax
		}
		for v := oldMin; v < lo; v++ {
			dest[n] = v
			n++
		}
		for v := hi + 1; v <= oldMax; v++ {
			dest[n] = v
			n++
		}
		return n
	}
	// values removed by bound changes before the switch, if the old state
	// predates it
	for v := oldMin; v < d.swMin.Value(); v++ {
		dest[n] = v
		n++
	}
	for v := d.swMax.Value() + 1; v <= oldMax; v++ {
		dest[n] = v
		n++
	}
	n += d.sparse.FillRemoved(min(oldSize, d.swSize.Value()), dest[n:])
	return n
}

func (d *LazySparseSetDomain) String() string {
	if d.isInterval.Value() {
		return d.interval.String()
	}
	return d.sparse.String()
}
