package nfa

import (
	"unicode/utf8"

	"github.com/coregx/btregex/literal"
	"github.com/coregx/btregex/prefilter"
)

// start is the default search root: it tries the pattern at every
// character position from i until the remaining input is shorter than the
// pattern's minimum length.
type start struct {
	base
	minLength int
}

func newStart(n node) *start {
	info := newTreeInfo()
	n.study(info)
	return &start{base: base{next: n}, minLength: info.minLength}
}

func (n *start) match(m *Machine, i int) bool {
	guard := m.to - n.minLength
	if i > guard {
		m.hitEnd = true
		return false
	}
	for i <= guard {
		if n.next.match(m, i) {
			m.first = i
			m.groups[0] = m.first
			m.groups[1] = m.last
			return true
		}
		i = m.advance(i)
	}
	m.hitEnd = true
	return false
}

func (n *start) study(info *treeInfo) bool {
	n.next.study(info)
	info.maxValid = false
	info.deterministic = false
	return false
}

// prefilterStart is a search root that only tries the pattern where the
// prefilter reports a candidate. When the pattern is nothing but the
// prefilter's literals and they share one length, litLen is that length and
// a candidate is accepted without running the graph.
type prefilterStart struct {
	start
	pf     prefilter.Prefilter
	litLen int
}

func newPrefilterStart(st *start, pf prefilter.Prefilter) *prefilterStart {
	n := &prefilterStart{start: *st, pf: pf}
	if pf.IsComplete() {
		n.litLen = pf.LiteralLen()
	}
	return n
}

func (n *prefilterStart) match(m *Machine, i int) bool {
	guard := m.to - n.minLength
	if i > guard {
		m.hitEnd = true
		return false
	}
	haystack := m.input()[:m.to]
	for i <= guard {
		c := n.pf.Find(haystack, i)
		if c < 0 || c > guard {
			break
		}
		if n.litLen > 0 {
			m.first = c
			m.last = c + n.litLen
			m.groups[0] = m.first
			m.groups[1] = m.last
			return true
		}
		if n.next.match(m, c) {
			m.first = c
			m.groups[0] = m.first
			m.groups[1] = m.last
			return true
		}
		i = c + 1
	}
	m.hitEnd = true
	return false
}

// selectRoot picks the search root for matchRoot and names the strategy.
func selectRoot(matchRoot node, opts Options) (node, string) {
	switch r := matchRoot.(type) {
	case *slice:
		if utf8.RuneCountInString(r.buf) >= opts.BoyerMooreMinLen {
			return newBnM(r), "boyer-moore"
		}
	case *begin:
		return matchRoot, "anchored"
	}
	st := newStart(matchRoot)
	if opts.EnablePrefilter {
		if pf := prefixPrefilter(matchRoot, opts.MaxLiterals); pf != nil {
			return newPrefilterStart(st, pf), "prefilter/" + pf.String()
		}
	}
	return st, "start"
}

func prefixPrefilter(n node, maxLiterals int) prefilter.Prefilter {
	if digitPrefix(n) {
		return prefilter.NewDigit()
	}
	seq, ok := prefixLiterals(n, lastAccept)
	if !ok {
		return nil
	}
	return prefilter.New(seq, maxLiterals)
}

// prefixLiterals returns the literals one of which every match of n must
// begin with. A literal is complete when the node after it is tail, the
// node that ends the whole match; a nil tail marks nothing complete.
func prefixLiterals(n node, tail node) (*literal.Seq, bool) {
	switch t := n.(type) {
	case *groupHead:
		return prefixLiterals(t.next, tail)
	case *slice:
		if t.buf == "" {
			return nil, false
		}
		return literal.NewSeq(literal.NewLiteral([]byte(t.buf), tail != nil && t.next == tail)), true
	case *charProperty:
		if t.lit >= 0 {
			return runeSeq(t.lit, tail != nil && t.next == tail), true
		}
	case *charPropertyGreedy:
		if t.cmin > 0 && t.lit >= 0 {
			return runeSeq(t.lit, false), true
		}
	case *curly:
		if t.cmin > 0 {
			return prefixLiterals(t.atom, nil)
		}
	case *groupCurly:
		if t.cmin > 0 {
			return prefixLiterals(t.atom, nil)
		}
	case *prolog:
		if l, ok := t.loop.(*loop); ok && l.cmin > 0 {
			return prefixLiterals(l.body, nil)
		}
		if l, ok := t.loop.(*lazyLoop); ok && l.cmin > 0 {
			return prefixLiterals(l.body, nil)
		}
	case *branch:
		// Arms end at the connector, so they are complete only when the
		// connector itself ends the match.
		var armTail node
		if tail != nil && t.conn.next == tail {
			armTail = t.conn
		}
		out := literal.NewSeq()
		for _, atom := range t.atoms {
			if atom == nil {
				return nil, false
			}
			seq, ok := prefixLiterals(atom, armTail)
			if !ok {
				return nil, false
			}
			for i := 0; i < seq.Len(); i++ {
				out.Add(seq.Get(i))
			}
		}
		return out, true
	}
	return nil, false
}

func runeSeq(r rune, complete bool) *literal.Seq {
	return literal.NewSeq(literal.NewLiteral(utf8.AppendRune(nil, r), complete))
}

// digitPrefix reports whether every match of n begins with an ASCII digit.
func digitPrefix(n node) bool {
	switch t := n.(type) {
	case *groupHead:
		return digitPrefix(t.next)
	case *charProperty:
		return t.digit
	case *charPropertyGreedy:
		return t.cmin > 0 && t.digit
	case *curly:
		return t.cmin > 0 && digitPrefix(t.atom)
	}
	return false
}
