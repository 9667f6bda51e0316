package search

import (
	"github.com/aia-uclouvain/maxicp-sub001/pkg/cp"
	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// SelectMin returns the element of x satisfying filter with the smallest
// key, the first one on ties. ok is false if no element satisfies filter.
func SelectMin[T any](x []T, filter func(T) bool, key func(T) int) (best T, ok bool) {
	bestKey := 0
	for _, e := range x {
		if !filter(e) {
			continue
		}
		if k := key(e); !ok || k < bestKey {
			best, bestKey, ok = e, k, true
		}
	}
	return best, ok
}

func isUnfixed(x cp.IntVar) bool { return !x.IsFixed() }

func domainSize(x cp.IntVar) int { return x.Size() }

// Binary returns the two alternatives x = v and x != v.
func Binary(x cp.IntVar, v int) []Alternative {
	return []Alternative{
		func() error { return x.Fix(v) },
		func() error { return x.Remove(v) },
	}
}

// FirstFail branches on the unfixed variable with the smallest domain,
// first on its minimum then on the rest of its domain.
func FirstFail(x ...cp.IntVar) Branching {
	return func() []Alternative {
		y, ok := SelectMin(x, isUnfixed, domainSize)
		if !ok {
			return nil
		}
		return Binary(y, y.Min())
	}
}

// FirstFailNary selects the variable as FirstFail does and opens one
// alternative per value of its domain, in increasing order.
func FirstFailNary(x ...cp.IntVar) Branching {
	return func() []Alternative {
		y, ok := SelectMin(x, isUnfixed, domainSize)
		if !ok {
			return nil
		}
		values := cp.Values(y)
		alternatives := make([]Alternative, len(values))
		for i, v := range values {
			alternatives[i] = func() error { return y.Fix(v) }
		}
		return alternatives
	}
}

// StaticOrder branches on the first unfixed variable of x.
func StaticOrder(x ...cp.IntVar) Branching {
	return func() []Alternative {
		for _, y := range x {
			if !y.IsFixed() {
				return Binary(y, y.Min())
			}
		}
		return nil
	}
}

// And uses the first of branchings that still has alternatives.
func And(branchings ...Branching) Branching {
	return func() []Alternative {
		for _, b := range branchings {
			if alternatives := b(); len(alternatives) > 0 {
				return alternatives
			}
		}
		return nil
	}
}

// LimitedDiscrepancy restricts b to the paths taking at most
// maxDiscrepancy times an alternative other than the first. Taking the
// i-th alternative of a node costs i discrepancies.
func LimitedDiscrepancy(sm state.Manager, b Branching, maxDiscrepancy int) Branching {
	discrepancy := sm.MakeInt(0)
	return func() []Alternative {
		alternatives := b()
		k := min(maxDiscrepancy-discrepancy.Value()+1, len(alternatives))
		limited := make([]Alternative, k)
		for i := range limited {
			d := discrepancy.Value() + i
			alternative := alternatives[i]
			limited[i] = func() error {
				discrepancy.SetValue(d)
				return alternative()
			}
		}
		return limited
	}
}

// IncludeFirst branches on the smallest possible value of the first
// unfixed set, including it then excluding it.
func IncludeFirst(x ...*cp.SetVar) Branching {
	var buf []int
	return func() []Alternative {
		for _, y := range x {
			if y.IsFixed() {
				continue
			}
			if cap(buf) < y.Size() {
				buf = make([]int, y.Size())
			}
			n := y.FillPossible(buf[:y.Size()])
			v := buf[0]
			for _, w := range buf[1:n] {
				v = min(v, w)
			}
			return []Alternative{
				func() error { return y.Include(v) },
				func() error { return y.Exclude(v) },
			}
		}
		return nil
	}
}

// FirstFailSeq selects, on the unfixed sequence with the fewest members,
// the insertable node with the fewest insertion points. It opens one
// alternative per insertion point, and one excluding the node unless it
// is required.
func FirstFailSeq(x ...*cp.SeqVar) Branching {
	n := 0
	for _, y := range x {
		n = max(n, y.NNodes())
	}
	nodes := make([]int, n)
	return func() []Alternative {
		y, ok := SelectMin(x,
			func(y *cp.SeqVar) bool { return !y.IsFixed() },
			func(y *cp.SeqVar) int { return y.NNode(cp.Member) })
		if !ok {
			return nil
		}
		nInsertable := y.FillNode(nodes, cp.Insertable)
		node := nodes[0]
		best := y.NInsert(node)
		for _, v := range nodes[1:nInsertable] {
			if k := y.NInsert(v); k < best && (k > 0 || !y.IsNode(v, cp.Required)) {
				node, best = v, k
			}
		}
		required := y.IsNode(node, cp.Required)
		nPred := y.FillInsert(node, nodes)
		alternatives := make([]Alternative, 0, nPred+1)
		for _, pred := range nodes[:nPred] {
			alternatives = append(alternatives, func() error { return y.Insert(pred, node) })
		}
		if !required {
			alternatives = append(alternatives, func() error { return y.Exclude(node) })
		}
		return alternatives
	}
}
