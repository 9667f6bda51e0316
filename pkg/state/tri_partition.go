package state

import (
	"fmt"
)

// TriPartition splits the universe [0, n) into three disjoint parts:
// included, possible and excluded. Values only move out of the possible
// part.
//
// values[:nIncluded] are included, values[nIncluded:nNotExcluded] are
// possible and values[nNotExcluded:] are excluded.
type TriPartition struct {
	values       []int
	indexes      []int
	nIncluded    *Int
	nNotExcluded *Int
	n            int
}

func NewTriPartition(m Manager, n int) *TriPartition {
	t := &TriPartition{
		values:       make([]int, n),
		indexes:      make([]int, n),
		nIncluded:    m.MakeInt(0),
		nNotExcluded: m.MakeInt(n),
		n:            n,
	}
	for i := 0; i < n; i++ {
		t.values[i] = i
		t.indexes[i] = i
	}
	return t
}

func (t *TriPartition) exchange(v1, v2 int) {
	i1, i2 := t.indexes[v1], t.indexes[v2]
	t.values[i1] = v2
	t.values[i2] = v1
	t.indexes[v1] = i2
	t.indexes[v2] = i1
}

// Size returns the size of the universe.
func (t *TriPartition) Size() int { return t.n }

func (t *TriPartition) NIncluded() int { return t.nIncluded.Value() }

func (t *TriPartition) NPossible() int {
	return t.nNotExcluded.Value() - t.nIncluded.Value()
}

func (t *TriPartition) NExcluded() int { return t.n - t.nNotExcluded.Value() }

func (t *TriPartition) inRange(v int) bool {
	return v >= 0 && v < t.n
}

func (t *TriPartition) IsIncluded(v int) bool {
	return t.inRange(v) && t.indexes[v] < t.nIncluded.Value()
}

func (t *TriPartition) IsPossible(v int) bool {
	if !t.inRange(v) {
		return false
	}
	i := t.indexes[v]
	return i >= t.nIncluded.Value() && i < t.nNotExcluded.Value()
}

func (t *TriPartition) IsExcluded(v int) bool {
	return t.inRange(v) && t.indexes[v] >= t.nNotExcluded.Value()
}

// Include moves a possible value to the included part and reports whether
// it did anything.
func (t *TriPartition) Include(v int) bool {
	if !t.IsPossible(v) {
		return false
	}
	a := t.nIncluded.Value()
	t.exchange(v, t.values[a])
	t.nIncluded.SetValue(a + 1)
	return true
}

// Exclude moves a possible value to the excluded part and reports whether
// it did anything.
func (t *TriPartition) Exclude(v int) bool {
	if !t.IsPossible(v) {
		return false
	}
	b := t.nNotExcluded.Value()
	t.exchange(v, t.values[b-1])
	t.nNotExcluded.SetValue(b - 1)
	return true
}

func (t *TriPartition) IncludeAllPossible() {
	t.nIncluded.SetValue(t.nNotExcluded.Value())
}

func (t *TriPartition) ExcludeAllPossible() {
	t.nNotExcluded.SetValue(t.nIncluded.Value())
}

func (t *TriPartition) FillIncluded(dest []int) int {
	return copy(dest, t.values[:t.nIncluded.Value()])
}

func (t *TriPartition) FillPossible(dest []int) int {
	return copy(dest, t.values[t.nIncluded.Value():t.nNotExcluded.Value()])
}

func (t *TriPartition) FillExcluded(dest []int) int {
	return copy(dest, t.values[t.nNotExcluded.Value():])
}

func (t *TriPartition) String() string {
	return fmt.Sprintf("I%v P%v E%v",
		t.values[:t.nIncluded.Value()],
		t.values[t.nIncluded.Value():t.nNotExcluded.Value()],
		t.values[t.nNotExcluded.Value():])
}
