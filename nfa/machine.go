package nfa

import (
	"unicode/utf8"

	"github.com/coregx/btregex/internal/sparse"
)

// AcceptMode selects how the end of a match is accepted.
type AcceptMode int

const (
	// NoAnchor accepts a match ending anywhere.
	NoAnchor AcceptMode = iota

	// EndAnchor accepts only matches that end at the end of the region.
	EndAnchor
)

// Machine holds the mutable state of a match against one input text.
//
// A Machine is not safe for concurrent use. Create one per goroutine; the
// Program it runs is immutable and can be shared.
type Machine struct {
	prog *Program
	text string

	// bytes is a lazily made copy of text for the prefilters, which work
	// on []byte.
	bytes []byte

	// groups holds start/end byte offsets for every group, -1 when unset.
	groups []int

	// locals holds per-construct scratch state: group entry positions and
	// loop iteration counts.
	locals []int

	// memo holds, per memoized loop, the positions at which the loop body
	// is known to fail.
	memo []*sparse.SparseSet

	from, to     int
	lookbehindTo int

	first, last, oldLast int

	acceptMode AcceptMode

	transparentBounds bool
	anchoringBounds   bool

	hitEnd     bool
	requireEnd bool
}

// NewMachine creates a machine for prog over text. The region covers the
// whole text, bounds are opaque and anchoring.
func NewMachine(prog *Program, text string) *Machine {
	m := &Machine{
		prog:            prog,
		text:            text,
		anchoringBounds: true,
	}
	m.alloc()
	m.Reset()
	return m
}

func (m *Machine) alloc() {
	m.groups = make([]int, 2*m.prog.groupCount)
	m.locals = make([]int, m.prog.localCount)
	m.memo = make([]*sparse.SparseSet, m.prog.memoCount)
}

// Reset discards match state and restores the region to the whole text.
// Bound modes are kept.
func (m *Machine) Reset() {
	m.first = -1
	m.last = 0
	m.oldLast = -1
	for i := range m.groups {
		m.groups[i] = -1
	}
	for i := range m.locals {
		m.locals[i] = -1
	}
	m.from = 0
	m.to = len(m.text)
}

// ResetText replaces the input text and resets.
func (m *Machine) ResetText(text string) {
	m.text = text
	m.bytes = nil
	m.Reset()
}

// UseProgram switches to another program, keeping the text, the region and
// the current position. Group state is lost.
func (m *Machine) UseProgram(prog *Program) {
	m.prog = prog
	m.alloc()
	for i := range m.groups {
		m.groups[i] = -1
	}
	for i := range m.locals {
		m.locals[i] = -1
	}
}

// Program returns the program the machine runs.
func (m *Machine) Program() *Program { return m.prog }

// Text returns the input text.
func (m *Machine) Text() string { return m.text }

// SetRegion resets the machine and limits matching to text[from:to]. The
// caller validates the bounds.
func (m *Machine) SetRegion(from, to int) {
	m.Reset()
	m.from = from
	m.to = to
}

// Region returns the current region bounds.
func (m *Machine) Region() (from, to int) { return m.from, m.to }

// SetTransparentBounds makes lookaround and boundary constructs see past
// the region when b is true.
func (m *Machine) SetTransparentBounds(b bool) { m.transparentBounds = b }

// TransparentBounds reports whether bounds are transparent.
func (m *Machine) TransparentBounds() bool { return m.transparentBounds }

// SetAnchoringBounds makes ^ and $ match at the region bounds when b is
// true.
func (m *Machine) SetAnchoringBounds(b bool) { m.anchoringBounds = b }

// AnchoringBounds reports whether bounds are anchoring.
func (m *Machine) AnchoringBounds() bool { return m.anchoringBounds }

// First returns the start of the last match, or -1.
func (m *Machine) First() int { return m.first }

// Last returns the end of the last match. Before any match it is the
// position the next Next call searches from.
func (m *Machine) Last() int { return m.last }

// Group returns the bounds of group g of the last match, -1 when the group
// did not participate. g must be in [0, NumCaptures()].
func (m *Machine) Group(g int) (start, end int) {
	return m.groups[2*g], m.groups[2*g+1]
}

// HitEnd reports whether the last match attempt read the end of the input.
func (m *Machine) HitEnd() bool { return m.hitEnd }

// RequireEnd reports whether more input could turn the last match into a
// non-match.
func (m *Machine) RequireEnd() bool { return m.requireEnd }

// Next searches for the next match after the previous one. An empty
// previous match advances the start by one character.
func (m *Machine) Next() bool {
	next := m.last
	if next == m.first {
		next = m.advance(next)
	}
	if next < m.from {
		next = m.from
	}
	if next > m.to {
		for i := range m.groups {
			m.groups[i] = -1
		}
		return false
	}
	return m.Search(next)
}

// advance returns the offset of the character after i.
func (m *Machine) advance(i int) int {
	if i >= len(m.text) {
		return i + 1
	}
	_, w := utf8.DecodeRuneInString(m.text[i:])
	return i + w
}

// Search looks for a match starting at from or later inside the region.
func (m *Machine) Search(from int) bool {
	m.prepare(from, NoAnchor)
	ok := m.prog.root.match(m, from)
	if !ok {
		m.first = -1
	}
	m.oldLast = m.last
	return ok
}

// Match tries a match starting exactly at from. In EndAnchor mode the match
// must also end at the region end.
func (m *Machine) Match(from int, mode AcceptMode) bool {
	m.prepare(from, mode)
	ok := m.prog.matchRoot.match(m, from)
	if !ok {
		m.first = -1
	}
	m.oldLast = m.last
	return ok
}

func (m *Machine) prepare(from int, mode AcceptMode) {
	m.hitEnd = false
	m.requireEnd = false
	if from < 0 {
		from = 0
	}
	m.first = from
	if m.oldLast < 0 {
		m.oldLast = from
	}
	for i := range m.groups {
		m.groups[i] = -1
	}
	for i := range m.locals {
		m.locals[i] = -1
	}
	for _, s := range m.memo {
		if s != nil {
			s.Clear()
		}
	}
	m.acceptMode = mode
}

// memoSet returns the failure set of memoized loop idx, sized for the
// current text.
func (m *Machine) memoSet(idx int) *sparse.SparseSet {
	need := len(m.text) + 1
	s := m.memo[idx]
	switch {
	case s == nil:
		s = sparse.NewSparseSet(need)
		m.memo[idx] = s
	case s.Capacity() < need:
		s.Resize(need)
	}
	return s
}

// input returns the text as bytes for the prefilters.
func (m *Machine) input() []byte {
	if m.bytes == nil {
		m.bytes = []byte(m.text)
	}
	return m.bytes
}

func (m *Machine) decode(i int) (rune, int) {
	c := m.text[i]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(m.text[i:])
}

func (m *Machine) decodeLast(i int) (rune, int) {
	c := m.text[i-1]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeLastRuneInString(m.text[:i])
}
