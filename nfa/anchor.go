package nfa

import (
	"unicode"

	"github.com/coregx/btregex/syntax"
)

// begin is \A, and ^ outside multiline mode. As a search root it only tries
// the start of the input.
type begin struct {
	base
}

func (n *begin) match(m *Machine, i int) bool {
	from := 0
	if m.anchoringBounds {
		from = m.from
	}
	if i == from && n.next.match(m, i) {
		m.first = i
		m.groups[0] = i
		m.groups[1] = m.last
		return true
	}
	return false
}

// end is \z.
type end struct {
	base
}

func (n *end) match(m *Machine, i int) bool {
	to := len(m.text)
	if m.anchoringBounds {
		to = m.to
	}
	if i == to {
		m.hitEnd = true
		return n.next.match(m, i)
	}
	return false
}

// caret is ^ in multiline mode. It matches at the start of input and after
// any line terminator except one that ends the input.
type caret struct {
	base
	unix bool
}

func (n *caret) match(m *Machine, i int) bool {
	from, to := m.from, m.to
	if !m.anchoringBounds {
		from, to = 0, len(m.text)
	}
	if i == to {
		m.hitEnd = true
		return false
	}
	if i > from {
		c, _ := m.decodeLast(i)
		if n.unix {
			if c != '\n' {
				return false
			}
		} else {
			if !isLineTerminator(c) {
				return false
			}
			// \r\n is a single terminator.
			if c == '\r' && m.text[i] == '\n' {
				return false
			}
		}
	}
	return n.next.match(m, i)
}

// lastMatch is \G, the end of the previous match.
type lastMatch struct {
	base
}

func (n *lastMatch) match(m *Machine, i int) bool {
	return i == m.oldLast && n.next.match(m, i)
}

// dollar is $ and \Z. Outside multiline mode it matches at the end of input
// and before a final line terminator.
type dollar struct {
	base
	multiline bool
}

func (n *dollar) match(m *Machine, i int) bool {
	to := len(m.text)
	if m.anchoringBounds {
		to = m.to
	}
	if i < to {
		c, w := m.decode(i)
		if !n.multiline {
			rest := to - i
			if rest != w && !(c == '\r' && rest == 2 && m.text[i+1] == '\n') {
				return false
			}
		}
		switch {
		case c == '\n':
			if i > 0 && m.text[i-1] == '\r' {
				return false
			}
			if n.multiline {
				return n.next.match(m, i)
			}
		case c == '\r' || c == 0x85 || c|1 == 0x2029:
			if n.multiline {
				return n.next.match(m, i)
			}
		default:
			return false
		}
	}
	// At or next to the end; more input could change the outcome.
	m.hitEnd = true
	m.requireEnd = true
	return n.next.match(m, i)
}

func (n *dollar) study(info *treeInfo) bool {
	n.next.study(info)
	return info.deterministic
}

// unixDollar is $ and \Z in UnixLines mode, where only \n ends a line.
type unixDollar struct {
	base
	multiline bool
}

func (n *unixDollar) match(m *Machine, i int) bool {
	to := len(m.text)
	if m.anchoringBounds {
		to = m.to
	}
	if i < to {
		if m.text[i] != '\n' {
			return false
		}
		if n.multiline {
			return n.next.match(m, i)
		}
		if i != to-1 {
			return false
		}
	}
	m.hitEnd = true
	m.requireEnd = true
	return n.next.match(m, i)
}

func (n *unixDollar) study(info *treeInfo) bool {
	n.next.study(info)
	return info.deterministic
}

// Word boundary kinds. A check yields boundLeft or boundRight at a
// boundary and boundNone elsewhere; \b accepts boundBoth, \B boundNone.
const (
	boundLeft  = 0x1
	boundRight = 0x2
	boundBoth  = 0x3
	boundNone  = 0x4
)

// bound is \b and \B.
type bound struct {
	base
	kind  int
	uword bool
}

func (n *bound) isWord(c rune) bool {
	if n.uword {
		return syntax.Word(c)
	}
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (n *bound) check(m *Machine, i int) int {
	from, to := m.from, m.to
	if m.transparentBounds {
		from, to = 0, len(m.text)
	}
	left := false
	if i > from {
		c, w := m.decodeLast(i)
		left = n.isWord(c) || (unicode.Is(unicode.Mn, c) && hasBaseCharacter(m, i-w))
	}
	right := false
	if i < to {
		c, _ := m.decode(i)
		right = n.isWord(c) || (unicode.Is(unicode.Mn, c) && hasBaseCharacter(m, i))
	} else {
		m.hitEnd = true
		m.requireEnd = true
	}
	switch {
	case left == right:
		return boundNone
	case right:
		return boundLeft
	default:
		return boundRight
	}
}

func (n *bound) match(m *Machine, i int) bool {
	return n.check(m, i)&n.kind > 0 && n.next.match(m, i)
}

// hasBaseCharacter reports whether the non-spacing mark at i follows a
// letter or digit, possibly through further marks.
func hasBaseCharacter(m *Machine, i int) bool {
	from := m.from
	if m.transparentBounds {
		from = 0
	}
	for x := i; x >= from; {
		c, _ := m.decode(x)
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return true
		}
		if !unicode.Is(unicode.Mn, c) || x == 0 {
			return false
		}
		_, w := m.decodeLast(x)
		x -= w
	}
	return false
}

// lineEnding is \R: \r\n or any single vertical line terminator.
type lineEnding struct {
	base
}

func (n *lineEnding) match(m *Machine, i int) bool {
	if i >= m.to {
		m.hitEnd = true
		return false
	}
	c, w := m.decode(i)
	switch c {
	case '\n', 0x0B, '\f', 0x85, 0x2028, 0x2029:
		return i+w <= m.to && n.next.match(m, i+w)
	case '\r':
		i++
		if i < m.to {
			if m.text[i] == '\n' && n.next.match(m, i+1) {
				return true
			}
		} else {
			m.hitEnd = true
		}
		return n.next.match(m, i)
	}
	return false
}

func (n *lineEnding) study(info *treeInfo) bool {
	info.minLength++
	info.maxLength = satAdd(info.maxLength, 2)
	return n.next.study(info)
}

func isLineTerminator(c rune) bool {
	return c == '\n' || c == '\r' || c|1 == 0x2029 || c == 0x85
}
