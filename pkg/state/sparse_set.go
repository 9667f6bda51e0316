package state

import (
	"strconv"
	"strings"
)

// SparseSet is a reversible set of integers in [ofs, ofs+n) supporting
// removals only. Present values are kept in the prefix values[:size], so
// restoring size restores every value removed since a checkpoint.
type SparseSet struct {
	values  []int
	indexes []int
	size    *Int
	min     *Int
	max     *Int
	ofs     int
	n       int
}

// NewSparseSet returns a set initially containing every value of
// [ofs, ofs+n).
func NewSparseSet(m Manager, n, ofs int) *SparseSet {
	s := &SparseSet{
		values:  make([]int, n),
		indexes: make([]int, n),
		size:    m.MakeInt(n),
		min:     m.MakeInt(0),
		max:     m.MakeInt(n - 1),
		ofs:     ofs,
		n:       n,
	}
	for i := 0; i < n; i++ {
		s.values[i] = i
		s.indexes[i] = i
	}
	return s
}

func (s *SparseSet) InitMin() int  { return s.ofs }
func (s *SparseSet) InitMax() int  { return s.ofs + s.n - 1 }
func (s *SparseSet) InitSize() int { return s.n }

func (s *SparseSet) Size() int {
	return s.size.Value()
}

func (s *SparseSet) IsEmpty() bool {
	return s.size.Value() == 0
}

// Min returns the smallest value. The result is undefined on an empty set.
func (s *SparseSet) Min() int {
	return s.min.Value() + s.ofs
}

// Max returns the largest value. The result is undefined on an empty set.
func (s *SparseSet) Max() int {
	return s.max.Value() + s.ofs
}

func (s *SparseSet) Contains(v int) bool {
	return s.internalContains(v - s.ofs)
}

func (s *SparseSet) internalContains(v int) bool {
	if v < 0 || v >= s.n {
		return false
	}
	return s.indexes[v] < s.size.Value()
}

func (s *SparseSet) exchange(v1, v2 int) {
	i1, i2 := s.indexes[v1], s.indexes[v2]
	s.values[i1] = v2
	s.values[i2] = v1
	s.indexes[v1] = i2
	s.indexes[v2] = i1
}

// Remove removes v and reports whether it was present.
func (s *SparseSet) Remove(v int) bool {
	if !s.Contains(v) {
		return false
	}
	v -= s.ofs
	size := s.size.Value()
	s.exchange(v, s.values[size-1])
	s.size.SetValue(size - 1)
	s.updateBoundsValRemoved(v)
	return true
}

func (s *SparseSet) updateBoundsValRemoved(v int) {
	if s.IsEmpty() {
		return
	}
	if s.max.Value() == v {
		for w := v - 1; w >= s.min.Value(); w-- {
			if s.internalContains(w) {
				s.max.SetValue(w)
				break
			}
		}
	}
	if s.min.Value() == v {
		for w := v + 1; w <= s.max.Value(); w++ {
			if s.internalContains(w) {
				s.min.SetValue(w)
				break
			}
		}
	}
}

// RemoveAllBut keeps v only. v must be present.
func (s *SparseSet) RemoveAllBut(v int) {
	v -= s.ofs
	first := s.values[0]
	idx := s.indexes[v]
	s.indexes[v] = 0
	s.values[0] = v
	s.indexes[first] = idx
	s.values[idx] = first
	s.min.SetValue(v)
	s.max.SetValue(v)
	s.size.SetValue(1)
}

// Reset puts every value of the initial range back in the set.
func (s *SparseSet) Reset() {
	s.size.SetValue(s.n)
	s.min.SetValue(0)
	s.max.SetValue(s.n - 1)
}

func (s *SparseSet) RemoveAll() {
	s.size.SetValue(0)
}

// RemoveBelow removes every value < v.
func (s *SparseSet) RemoveBelow(v int) {
	if s.IsEmpty() {
		return
	}
	if s.Max() < v {
		s.RemoveAll()
		return
	}
	for w := s.Min(); w < v; w++ {
		s.Remove(w)
	}
}

// RemoveAbove removes every value > v.
func (s *SparseSet) RemoveAbove(v int) {
	if s.IsEmpty() {
		return
	}
	if s.Min() > v {
		s.RemoveAll()
		return
	}
	for w := s.Max(); w > v; w-- {
		s.Remove(w)
	}
}

// FillArray copies the present values into dest and returns their count.
func (s *SparseSet) FillArray(dest []int) int {
	size := s.size.Value()
	for i := 0; i < size; i++ {
		dest[i] = s.values[i] + s.ofs
	}
	return size
}

// FillRemoved copies the values removed since the set had oldSize
// elements into dest and returns their count. Removed values sit right
// after the present prefix, most recent first.
func (s *SparseSet) FillRemoved(oldSize int, dest []int) int {
	size := s.size.Value()
	for i := 0; i < oldSize-size; i++ {
		dest[i] = s.values[size+i] + s.ofs
	}
	return oldSize - size
}

func (s *SparseSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	size := s.size.Value()
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s.values[i] + s.ofs))
	}
	b.WriteByte('}')
	return b.String()
}
