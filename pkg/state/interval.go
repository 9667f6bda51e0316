package state

import "fmt"

// Interval is a reversible range [min, max] of integers. It is empty when
// min > max.
type Interval struct {
	min *Int
	max *Int
}

func NewInterval(m Manager, min, max int) *Interval {
	return &Interval{min: m.MakeInt(min), max: m.MakeInt(max)}
}

func (i *Interval) Min() int { return i.min.Value() }
func (i *Interval) Max() int { return i.max.Value() }

func (i *Interval) Size() int {
	if i.IsEmpty() {
		return 0
	}
	return i.max.Value() - i.min.Value() + 1
}

func (i *Interval) IsEmpty() bool {
	return i.min.Value() > i.max.Value()
}

func (i *Interval) Contains(v int) bool {
	return v >= i.min.Value() && v <= i.max.Value()
}

func (i *Interval) RemoveBelow(v int) {
	if v > i.min.Value() {
		i.min.SetValue(v)
	}
}

func (i *Interval) RemoveAbove(v int) {
	if v < i.max.Value() {
		i.max.SetValue(v)
	}
}

func (i *Interval) RemoveAllBut(v int) {
	i.min.SetValue(v)
	i.max.SetValue(v)
}

func (i *Interval) RemoveAll() {
	i.max.SetValue(i.min.Value() - 1)
}

func (i *Interval) String() string {
	return fmt.Sprintf("[%d..%d]", i.min.Value(), i.max.Value())
}
