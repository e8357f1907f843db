// Package nfa compiles patterns into a graph of matcher nodes and runs them
// with a recursive backtracking interpreter.
//
// Every node tests the input at a position and, on success, hands the new
// position to its successor. Alternatives are explored depth first, so the
// leftmost alternative that leads to an overall match wins. Unlike a Thompson
// NFA this supports backreferences, lookaround, atomic groups and possessive
// quantifiers, at the price of exponential worst cases. Unbounded loops at
// the top level of a pattern are memoized to tame the common ones.
package nfa

import "math"

// MaxRepetition is the upper bound used for unbounded quantifiers.
const MaxRepetition = math.MaxInt32

// node is one step of a compiled pattern.
type node interface {
	// match reports whether the remainder of the pattern matches the input
	// at byte offset i.
	match(m *Machine, i int) bool

	// study accumulates length and determinism information for the chain
	// starting at this node. It reports whether the chain is deterministic.
	study(info *treeInfo) bool

	getNext() node
	setNext(n node)
}

// base holds the successor link shared by all nodes.
type base struct {
	next node
}

func (b *base) getNext() node  { return b.next }
func (b *base) setNext(n node) { b.next = n }

func (b *base) study(info *treeInfo) bool {
	if b.next != nil {
		return b.next.study(info)
	}
	return info.deterministic
}

// treeInfo is the result of studying a chain. Lengths count code points.
type treeInfo struct {
	minLength     int
	maxLength     int
	maxValid      bool
	deterministic bool
}

func newTreeInfo() *treeInfo {
	return &treeInfo{maxValid: true, deterministic: true}
}

func (t *treeInfo) reset() {
	*t = treeInfo{maxValid: true, deterministic: true}
}

func satAdd(a, b int) int {
	if a > math.MaxInt32-b {
		return math.MaxInt32
	}
	return a + b
}

func satMul(a, b int) int {
	if a != 0 && b > math.MaxInt32/a {
		return math.MaxInt32
	}
	return a * b
}

// acceptNode ends a sub-graph that is matched on its own, such as the body
// of a quantifier or a lookaround condition.
type acceptNode struct {
	base
}

func (*acceptNode) match(m *Machine, i int) bool {
	m.last = i
	m.groups[0] = m.first
	m.groups[1] = i
	return true
}

// lastNode terminates the whole pattern. In EndAnchor mode it only accepts
// at the end of the region.
type lastNode struct {
	base
}

func (*lastNode) match(m *Machine, i int) bool {
	if m.acceptMode == EndAnchor && i != m.to {
		return false
	}
	m.last = i
	m.groups[0] = m.first
	m.groups[1] = i
	return true
}

var (
	accept     node = &acceptNode{}
	lastAccept node = &lastNode{}
)
