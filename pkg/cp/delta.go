package cp

import (
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// DeltaInt records the bounds and size of an IntVar at the last time its
// owning constraint looked at it, so the constraint can enumerate the
// values removed since then.
type DeltaInt struct {
	x       IntVar
	oldMin  *state.Int
	oldMax  *state.Int
	oldSize *state.Int
}

func newDeltaInt(sm state.Manager, x IntVar) *DeltaInt {
	return &DeltaInt{
		x:       x,
		oldMin:  sm.MakeInt(x.Min()),
		oldMax:  sm.MakeInt(x.Max()),
		oldSize: sm.MakeInt(x.Size()),
	}
}

func (d *DeltaInt) update() {
	d.oldMin.SetValue(d.x.Min())
	d.oldMax.SetValue(d.x.Max())
	d.oldSize.SetValue(d.x.Size())
}

func (d *DeltaInt) OldMin() int  { return d.oldMin.Value() }
func (d *DeltaInt) OldMax() int  { return d.oldMax.Value() }
func (d *DeltaInt) OldSize() int { return d.oldSize.Value() }

// Size returns the number of values removed.
func (d *DeltaInt) Size() int {
	return d.oldSize.Value() - d.x.Size()
}

func (d *DeltaInt) Changed() bool {
	return d.Size() > 0
}

func (d *DeltaInt) MinChanged() bool {
	return d.x.Min() != d.oldMin.Value()
}

func (d *DeltaInt) MaxChanged() bool {
	return d.x.Max() != d.oldMax.Value()
}

// FillArray copies the removed values into dest and returns their count.
// dest must hold at least Size() values.
func (d *DeltaInt) FillArray(dest []int) int {
	return d.x.FillDeltaArray(d.oldMin.Value(), d.oldMax.Value(), d.oldSize.Value(), dest)
}
