package nfa

import (
	"unicode"
	"unicode/utf8"
)

// slice matches a literal string exactly.
type slice struct {
	base
	buf   string
	runes int
}

func newSliceNode(buf []rune) *slice {
	return &slice{base: base{next: accept}, buf: string(buf), runes: len(buf)}
}

func (n *slice) match(m *Machine, i int) bool {
	buf := n.buf
	for j := 0; j < len(buf); j++ {
		if i+j >= m.to {
			m.hitEnd = true
			return false
		}
		if buf[j] != m.text[i+j] {
			return false
		}
	}
	return n.next.match(m, i+len(buf))
}

func (n *slice) study(info *treeInfo) bool {
	info.minLength = satAdd(info.minLength, n.runes)
	info.maxLength = satAdd(info.maxLength, n.runes)
	return n.next.study(info)
}

// sliceI matches a literal ignoring ASCII case. buf holds the lower case
// form.
type sliceI struct {
	base
	buf []rune
}

func (n *sliceI) match(m *Machine, i int) bool {
	for _, want := range n.buf {
		if i >= m.to {
			m.hitEnd = true
			return false
		}
		c, w := m.decode(i)
		if i+w > m.to {
			m.hitEnd = true
			return false
		}
		if want != c && want != asciiLower(c) {
			return false
		}
		i += w
	}
	return n.next.match(m, i)
}

func (n *sliceI) study(info *treeInfo) bool {
	info.minLength = satAdd(info.minLength, len(n.buf))
	info.maxLength = satAdd(info.maxLength, len(n.buf))
	return n.next.study(info)
}

// sliceU matches a literal ignoring Unicode case. buf holds the folded form
// of every character.
type sliceU struct {
	base
	buf []rune
}

func (n *sliceU) match(m *Machine, i int) bool {
	for _, want := range n.buf {
		if i >= m.to {
			m.hitEnd = true
			return false
		}
		c, w := m.decode(i)
		if i+w > m.to {
			m.hitEnd = true
			return false
		}
		if want != c && want != unicode.ToLower(unicode.ToUpper(c)) {
			return false
		}
		i += w
	}
	return n.next.match(m, i)
}

func (n *sliceU) study(info *treeInfo) bool {
	info.minLength = satAdd(info.minLength, len(n.buf))
	info.maxLength = satAdd(info.maxLength, len(n.buf))
	return n.next.study(info)
}

// bnm is the search root for patterns that begin with a long exact literal.
// It scans with the Boyer-Moore bad character and good suffix rules and
// then runs the rest of the pattern at each occurrence.
type bnm struct {
	base
	buf     string
	lastOcc [256]int
	optoSft []int
}

func newBnM(s *slice) *bnm {
	pat := s.buf
	n := &bnm{base: base{next: s.next}, buf: pat}
	m := len(pat)

	for j := 0; j < m; j++ {
		n.lastOcc[pat[j]] = j + 1
	}

	// optoSft[j] is the good suffix shift after a mismatch at j. Shifts are
	// tried from largest to smallest so the smallest safe one sticks.
	n.optoSft = make([]int, m)
shifts:
	for i := m; i > 0; i-- {
		j := m - 1
		for ; j >= i; j-- {
			if pat[j] != pat[j-i] {
				continue shifts
			}
			n.optoSft[j-1] = i
		}
		for j > 0 {
			j--
			n.optoSft[j] = i
		}
	}
	n.optoSft[m-1] = 1
	return n
}

func (n *bnm) match(m *Machine, i int) bool {
	pat := n.buf
	plen := len(pat)
	last := m.to - plen

search:
	for i <= last {
		for j := plen - 1; j >= 0; j-- {
			c := m.text[i+j]
			if c != pat[j] {
				shift := j + 1 - n.lastOcc[c]
				i += max(shift, n.optoSft[j])
				continue search
			}
		}
		m.first = i
		if n.next.match(m, i+plen) {
			m.first = i
			m.groups[0] = m.first
			m.groups[1] = m.last
			return true
		}
		i++
	}
	m.hitEnd = true
	return false
}

func (n *bnm) study(info *treeInfo) bool {
	runes := utf8.RuneCountInString(n.buf)
	info.minLength = satAdd(info.minLength, runes)
	info.maxLength = satAdd(info.maxLength, runes)
	return n.next.study(info)
}
