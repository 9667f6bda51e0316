package cp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/state"
)

// NodeStatus selects a subset of the nodes of a SeqVar.
type NodeStatus int

const (
	// Member nodes are on the sequence, in no particular order.
	Member NodeStatus = iota
	// MemberOrdered nodes are the members from start to end.
	MemberOrdered
	// Insertable nodes are neither members nor excluded.
	Insertable
	// InsertableRequired nodes are insertable nodes that must be inserted.
	InsertableRequired
	Excluded
	// Required nodes are the members and the required insertable nodes.
	Required
)

// SeqVar is a sequence variable: a simple path of member nodes from start
// to end over the node universe [0, n). Every other node is either
// insertable or excluded; the variable is fixed once no node is
// insertable.
//
// Besides the path, a SeqVar maintains an insertion graph. Inserting node
// v between the consecutive members p and succ(p) is allowed iff the
// edges p->v and v->succ(p) are both present. For each insertable node the
// number of allowed insertions is maintained; an insertable node left
// without insertion is excluded, or makes the variable fail if it is
// required.
type SeqVar struct {
	s     *Solver
	n     int
	start int
	end   int

	succ []*state.Int
	pred []*state.Int

	// included: members, possible: insertable, excluded: excluded
	members *state.TriPartition
	// included: required, possible: optional, excluded: excluded
	required *state.TriPartition

	preds   []*state.SparseSet
	succs   []*state.SparseSet
	nInsert []*state.Int

	requiredVars []*RelayBoolVar

	onInsert        *state.Stack[Constraint]
	onExclude       *state.Stack[Constraint]
	onRequire       *state.Stack[Constraint]
	onFix           *state.Stack[Constraint]
	onInsertRemoved *state.Stack[Constraint]

	bufPred []int
	bufNode []int
	bufFill []int
	zeros   []int
	visited []bool
}

// NewSeqVar returns a sequence over n nodes containing only start and end.
func NewSeqVar(s *Solver, n, start, end int) (*SeqVar, error) {
	switch {
	case n < 2:
		return nil, errors.Wrapf(ErrInvalidModel, "sequence needs at least 2 nodes, got %d", n)
	case start < 0 || start >= n || end < 0 || end >= n:
		return nil, errors.Wrapf(ErrInvalidModel, "start %d or end %d outside [0..%d)", start, end, n)
	case start == end:
		return nil, errors.Wrapf(ErrInvalidModel, "start and end are the same node %d", start)
	}
	sm := s.sm
	x := &SeqVar{
		s:               s,
		n:               n,
		start:           start,
		end:             end,
		succ:            make([]*state.Int, n),
		pred:            make([]*state.Int, n),
		members:         state.NewTriPartition(sm, n),
		required:        state.NewTriPartition(sm, n),
		preds:           make([]*state.SparseSet, n),
		succs:           make([]*state.SparseSet, n),
		nInsert:         make([]*state.Int, n),
		requiredVars:    make([]*RelayBoolVar, n),
		onInsert:        state.NewStack[Constraint](sm),
		onExclude:       state.NewStack[Constraint](sm),
		onRequire:       state.NewStack[Constraint](sm),
		onFix:           state.NewStack[Constraint](sm),
		onInsertRemoved: state.NewStack[Constraint](sm),
		bufPred:         make([]int, n),
		bufNode:         make([]int, n),
		bufFill:         make([]int, n),
		zeros:           make([]int, 0, n),
		visited:         make([]bool, n),
	}
	for v := 0; v < n; v++ {
		x.succ[v] = sm.MakeInt(v)
		x.pred[v] = sm.MakeInt(v)
		x.preds[v] = state.NewSparseSet(sm, n, 0)
		x.succs[v] = state.NewSparseSet(sm, n, 0)
		x.nInsert[v] = sm.MakeInt(1)
	}
	x.succ[start].SetValue(end)
	x.pred[end].SetValue(start)
	x.succ[end].SetValue(start)
	x.pred[start].SetValue(end)
	x.members.Include(start)
	x.members.Include(end)
	x.required.Include(start)
	x.required.Include(end)
	x.nInsert[start].SetValue(0)
	x.nInsert[end].SetValue(0)
	for v := 0; v < n; v++ {
		x.deleteEdge(v, v)
		x.deleteEdge(v, start)
		x.deleteEdge(end, v)
	}
	return x, nil
}

func (x *SeqVar) Solver() *Solver { return x.s }
func (x *SeqVar) Start() int      { return x.start }
func (x *SeqVar) End() int        { return x.end }

// NNodes returns the size of the node universe.
func (x *SeqVar) NNodes() int { return x.n }

func (x *SeqVar) IsFixed() bool { return x.members.NPossible() == 0 }

func (x *SeqVar) checkNode(v int) error {
	if v < 0 || v >= x.n {
		return errors.Wrapf(ErrInvalidModel, "node %d outside [0..%d)", v, x.n)
	}
	return nil
}

// IsNode reports whether node has the given status.
func (x *SeqVar) IsNode(node int, status NodeStatus) bool {
	switch status {
	case Member, MemberOrdered:
		return x.members.IsIncluded(node)
	case Insertable:
		return x.members.IsPossible(node)
	case InsertableRequired:
		return x.members.IsPossible(node) && x.required.IsIncluded(node)
	case Excluded:
		return x.members.IsExcluded(node)
	case Required:
		return x.required.IsIncluded(node)
	}
	return false
}

// NNode returns the number of nodes with the given status.
func (x *SeqVar) NNode(status NodeStatus) int {
	switch status {
	case Member, MemberOrdered:
		return x.members.NIncluded()
	case Insertable:
		return x.members.NPossible()
	case InsertableRequired:
		// every member is required
		return x.required.NIncluded() - x.members.NIncluded()
	case Excluded:
		return x.members.NExcluded()
	case Required:
		return x.required.NIncluded()
	}
	return 0
}

// FillNode copies the nodes with the given status into dest and returns
// their count.
func (x *SeqVar) FillNode(dest []int, status NodeStatus) int {
	switch status {
	case Member:
		return x.members.FillIncluded(dest)
	case MemberOrdered:
		n := 0
		for v := x.start; ; v = x.succ[v].Value() {
			dest[n] = v
			n++
			if v == x.end {
				return n
			}
		}
	case Insertable:
		return x.members.FillPossible(dest)
	case InsertableRequired:
		k := x.members.FillPossible(dest)
		n := 0
		for i := 0; i < k; i++ {
			if x.required.IsIncluded(dest[i]) {
				dest[n] = dest[i]
				n++
			}
		}
		return n
	case Excluded:
		return x.members.FillExcluded(dest)
	case Required:
		return x.required.FillIncluded(dest)
	}
	return 0
}

// MemberAfter returns the successor of a member node. The successor of
// end is start. It returns -1 for a node outside the universe.
func (x *SeqVar) MemberAfter(node int) int {
	if x.checkNode(node) != nil {
		return -1
	}
	return x.succ[node].Value()
}

// MemberBefore returns the predecessor of a member node. The predecessor
// of start is end. It returns -1 for a node outside the universe.
func (x *SeqVar) MemberBefore(node int) int {
	if x.checkNode(node) != nil {
		return -1
	}
	return x.pred[node].Value()
}

// HasEdge reports whether from->to is still in the insertion graph.
func (x *SeqVar) HasEdge(from, to int) bool {
	if x.checkNode(from) != nil || x.checkNode(to) != nil {
		return false
	}
	return x.succs[from].Contains(to)
}

// NInsert returns the number of members after which node can be inserted.
func (x *SeqVar) NInsert(node int) int {
	if !x.members.IsPossible(node) {
		return 0
	}
	return x.nInsert[node].Value()
}

// CanInsert reports whether node can be inserted right after pred.
func (x *SeqVar) CanInsert(pred, node int) bool {
	if !x.members.IsIncluded(pred) || pred == x.end || !x.members.IsPossible(node) {
		return false
	}
	return x.HasEdge(pred, node) && x.HasEdge(node, x.succ[pred].Value())
}

// FillInsert copies the members after which node can be inserted into
// dest and returns their count.
func (x *SeqVar) FillInsert(node int, dest []int) int {
	if !x.members.IsPossible(node) {
		return 0
	}
	k := x.preds[node].FillArray(x.bufFill)
	n := 0
	for i := 0; i < k; i++ {
		if p := x.bufFill[i]; x.CanInsert(p, node) {
			dest[n] = p
			n++
		}
	}
	return n
}

// Insert places node right after the member pred. Inserting a member is a
// no-op if it already follows pred and fails otherwise.
func (x *SeqVar) Insert(pred, node int) error {
	if err := x.checkNode(pred); err != nil {
		return err
	}
	if err := x.checkNode(node); err != nil {
		return err
	}
	if x.members.IsIncluded(node) {
		if x.pred[node].Value() == pred {
			return nil
		}
		return ErrInconsistency
	}
	if !x.CanInsert(pred, node) {
		return ErrInconsistency
	}
	succ := x.succ[pred].Value()
	x.zeros = x.zeros[:0]
	x.updateInsertCounts(pred, node, succ)

	x.succ[pred].SetValue(node)
	x.pred[node].SetValue(pred)
	x.succ[node].SetValue(succ)
	x.pred[succ].SetValue(node)
	x.members.Include(node)
	newlyRequired := x.required.Include(node)
	// pred and succ are no longer consecutive
	x.deleteEdge(pred, succ)

	scheduleAll(x.s, x.onInsert)
	if newlyRequired {
		scheduleAll(x.s, x.onRequire)
		if err := x.relayRequired(node, true); err != nil {
			return err
		}
	}
	for _, w := range x.zeros {
		if err := x.noInsertionLeft(w); err != nil {
			return err
		}
	}
	x.checkFixed()
	return nil
}

// updateInsertCounts adjusts the insertion counts of the insertable nodes
// affected by the insertion of u between p and s: only the nodes having
// p or u as a predecessor in the insertion graph.
func (x *SeqVar) updateInsertCounts(p, u, s int) {
	n1 := x.succs[p].FillArray(x.bufPred)
	for i := 0; i < n1; i++ {
		w := x.bufPred[i]
		x.visited[w] = true
		x.adjustInsertCount(w, p, u, s)
	}
	n2 := x.succs[u].FillArray(x.bufNode)
	for i := 0; i < n2; i++ {
		if w := x.bufNode[i]; !x.visited[w] {
			x.adjustInsertCount(w, p, u, s)
		}
	}
	for i := 0; i < n1; i++ {
		x.visited[x.bufPred[i]] = false
	}
}

func (x *SeqVar) adjustInsertCount(w, p, u, s int) {
	if w == u || !x.members.IsPossible(w) {
		return
	}
	delta := 0
	if x.HasEdge(p, w) && x.HasEdge(w, s) {
		delta--
	}
	if x.HasEdge(p, w) && x.HasEdge(w, u) {
		delta++
	}
	if x.HasEdge(u, w) && x.HasEdge(w, s) {
		delta++
	}
	if delta == 0 {
		return
	}
	if x.nInsert[w].SetValue(x.nInsert[w].Value()+delta) == 0 {
		x.zeros = append(x.zeros, w)
	}
}

// deleteEdge removes from->to from the insertion graph and reports which
// insertable nodes lost an insertion.
func (x *SeqVar) deleteEdge(from, to int) (lostFrom, lostTo bool) {
	if !x.succs[from].Contains(to) {
		return false, false
	}
	if x.members.IsPossible(to) && x.members.IsIncluded(from) && from != x.end {
		if x.succs[to].Contains(x.succ[from].Value()) {
			x.nInsert[to].Decrement()
			lostTo = true
		}
	}
	if x.members.IsPossible(from) && x.members.IsIncluded(to) && to != x.start {
		if x.preds[from].Contains(x.pred[to].Value()) {
			x.nInsert[from].Decrement()
			lostFrom = true
		}
	}
	x.succs[from].Remove(to)
	x.preds[to].Remove(from)
	return lostFrom, lostTo
}

// RemoveEdge removes from->to from the insertion graph. Insertable nodes
// left without insertion are excluded.
func (x *SeqVar) RemoveEdge(from, to int) error {
	if err := x.checkNode(from); err != nil {
		return err
	}
	if err := x.checkNode(to); err != nil {
		return err
	}
	lostFrom, lostTo := x.deleteEdge(from, to)
	if !lostFrom && !lostTo {
		return nil
	}
	scheduleAll(x.s, x.onInsertRemoved)
	if lostFrom && x.nInsert[from].Value() == 0 {
		if err := x.noInsertionLeft(from); err != nil {
			return err
		}
	}
	if lostTo && x.nInsert[to].Value() == 0 {
		if err := x.noInsertionLeft(to); err != nil {
			return err
		}
	}
	return nil
}

func (x *SeqVar) noInsertionLeft(node int) error {
	if !x.members.IsPossible(node) {
		return nil
	}
	if x.required.IsIncluded(node) {
		return ErrInconsistency
	}
	return x.Exclude(node)
}

// Exclude removes node from the possible members. Excluding a required
// node fails.
func (x *SeqVar) Exclude(node int) error {
	if err := x.checkNode(node); err != nil {
		return err
	}
	if x.members.IsExcluded(node) {
		return nil
	}
	if x.required.IsIncluded(node) {
		return ErrInconsistency
	}
	x.members.Exclude(node)
	x.required.Exclude(node)
	scheduleAll(x.s, x.onExclude)
	if err := x.relayRequired(node, false); err != nil {
		return err
	}
	x.checkFixed()
	return nil
}

// Require forces node to be a member of every solution.
func (x *SeqVar) Require(node int) error {
	if err := x.checkNode(node); err != nil {
		return err
	}
	if x.required.IsIncluded(node) {
		return nil
	}
	if x.members.IsExcluded(node) || x.nInsert[node].Value() == 0 {
		return ErrInconsistency
	}
	x.required.Include(node)
	scheduleAll(x.s, x.onRequire)
	return x.relayRequired(node, true)
}

// NotBetween forbids node from being inserted anywhere between the
// members pred and succ, pred coming before succ. If node is already a
// member strictly between them, it fails. With pred == succ the segment
// is empty and nothing changes.
func (x *SeqVar) NotBetween(pred, node, succ int) error {
	for _, v := range []int{pred, node, succ} {
		if err := x.checkNode(v); err != nil {
			return err
		}
	}
	if !x.members.IsIncluded(pred) || !x.members.IsIncluded(succ) {
		return errors.Wrapf(ErrInvalidModel, "nodes %d and %d must be members", pred, succ)
	}
	if pred == succ {
		return nil
	}
	for v := pred; v != succ; v = x.succ[v].Value() {
		if v == x.end {
			return errors.Wrapf(ErrInvalidModel, "member %d does not come after %d", succ, pred)
		}
	}
	if x.members.IsIncluded(node) {
		for v := x.succ[pred].Value(); v != succ; v = x.succ[v].Value() {
			if v == node {
				return ErrInconsistency
			}
		}
		return nil
	}
	if x.members.IsExcluded(node) {
		return nil
	}
	for v := pred; v != succ; {
		next := x.succ[v].Value()
		if err := x.RemoveEdge(v, node); err != nil {
			return err
		}
		if err := x.RemoveEdge(node, next); err != nil {
			return err
		}
		v = next
	}
	return nil
}

func (x *SeqVar) checkFixed() {
	if x.members.NPossible() == 0 {
		scheduleAll(x.s, x.onFix)
	}
}

// RequiredVar returns a boolean variable that is true iff node is in the
// sequence. Fixing it requires or excludes the node. It must be called
// before the search starts.
func (x *SeqVar) RequiredVar(node int) (BoolVar, error) {
	if err := x.checkNode(node); err != nil {
		return nil, err
	}
	if rv := x.requiredVars[node]; rv != nil {
		return rv, nil
	}
	rv := NewRelayBoolVar(x.s, func(b bool) error {
		if b {
			return x.Require(node)
		}
		return x.Exclude(node)
	})
	switch {
	case x.required.IsIncluded(node):
		_, _ = rv.assign(true)
	case x.members.IsExcluded(node):
		_, _ = rv.assign(false)
	}
	x.requiredVars[node] = rv
	return rv, nil
}

func (x *SeqVar) relayRequired(node int, b bool) error {
	rv := x.requiredVars[node]
	if rv == nil {
		return nil
	}
	_, err := rv.assign(b)
	return err
}

func (x *SeqVar) PropagateOnInsert(c Constraint)        { x.onInsert.Push(c) }
func (x *SeqVar) PropagateOnExclude(c Constraint)       { x.onExclude.Push(c) }
func (x *SeqVar) PropagateOnRequire(c Constraint)       { x.onRequire.Push(c) }
func (x *SeqVar) PropagateOnFix(c Constraint)           { x.onFix.Push(c) }
func (x *SeqVar) PropagateOnInsertRemoved(c Constraint) { x.onInsertRemoved.Push(c) }

func (x *SeqVar) WhenInsert(f func() error)  { x.PropagateOnInsert(newCallback(x.s, f)) }
func (x *SeqVar) WhenExclude(f func() error) { x.PropagateOnExclude(newCallback(x.s, f)) }
func (x *SeqVar) WhenRequire(f func() error) { x.PropagateOnRequire(newCallback(x.s, f)) }
func (x *SeqVar) WhenFixed(f func() error)   { x.PropagateOnFix(newCallback(x.s, f)) }

// WhenInsertRemoved runs f when an insertable node loses an insertion
// point.
func (x *SeqVar) WhenInsertRemoved(f func() error) {
	x.PropagateOnInsertRemoved(newCallback(x.s, f))
}

// Ordered returns the members from start to end.
func (x *SeqVar) Ordered() []int {
	dest := make([]int, x.members.NIncluded())
	x.FillNode(dest, MemberOrdered)
	return dest
}

func (x *SeqVar) String() string {
	var b strings.Builder
	for v := x.start; ; v = x.succ[v].Value() {
		b.WriteString(strconv.Itoa(v))
		if v == x.end {
			break
		}
		b.WriteString(" -> ")
	}
	return b.String()
}
