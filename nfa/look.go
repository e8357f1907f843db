package nfa

import "unicode"

// pos is a positive lookahead (?=x).
type pos struct {
	base
	cond node
}

func (n *pos) match(m *Machine, i int) bool {
	savedTo := m.to
	if m.transparentBounds {
		m.to = len(m.text)
	}
	ok := n.cond.match(m, i)
	m.to = savedTo
	return ok && n.next.match(m, i)
}

// neg is a negative lookahead (?!x).
type neg struct {
	base
	cond node
}

func (n *neg) match(m *Machine, i int) bool {
	savedTo := m.to
	if m.transparentBounds {
		m.to = len(m.text)
	}
	if i >= m.to {
		// More input could make the condition match.
		m.requireEnd = true
	}
	ok := !n.cond.match(m, i)
	m.to = savedTo
	return ok && n.next.match(m, i)
}

// behind is a positive lookbehind (?<=x). The condition has a bounded
// length between rmin and rmax characters, so it is tried at each start
// within that distance, nearest first, and must end exactly at i.
type behind struct {
	base
	cond       node
	rmin, rmax int
}

func (n *behind) match(m *Machine, i int) bool {
	return lookBehind(m, n.cond, i, n.rmin, n.rmax) && n.next.match(m, i)
}

// notBehind is a negative lookbehind (?<!x).
type notBehind struct {
	base
	cond       node
	rmin, rmax int
}

func (n *notBehind) match(m *Machine, i int) bool {
	return !lookBehind(m, n.cond, i, n.rmin, n.rmax) && n.next.match(m, i)
}

func lookBehind(m *Machine, cond node, i, rmin, rmax int) bool {
	start := m.from
	if m.transparentBounds {
		start = 0
	}
	savedFrom, savedLBT := m.from, m.lookbehindTo
	m.lookbehindTo = i
	if m.transparentBounds {
		m.from = 0
	}

	ok := false
	j, steps := i, 0
	for steps < rmin && j > start {
		_, w := m.decodeLast(j)
		j -= w
		steps++
	}
	if steps == rmin && j >= start {
		for {
			if cond.match(m, j) {
				ok = true
				break
			}
			if steps >= rmax || j <= start {
				break
			}
			_, w := m.decodeLast(j)
			j -= w
			steps++
		}
	}

	m.from, m.lookbehindTo = savedFrom, savedLBT
	return ok
}

// lookBehindEnd ends a lookbehind condition. It only accepts at the
// position the lookbehind was tried from.
type lookBehindEnd struct {
	base
}

func (*lookBehindEnd) match(m *Machine, i int) bool {
	return i == m.lookbehindTo
}

// backRef is \n and \k<name>.
type backRef struct {
	base
	group int
}

func (n *backRef) match(m *Machine, i int) bool {
	g := 2 * n.group
	if g+1 >= len(m.groups) {
		return false
	}
	j, k := m.groups[g], m.groups[g+1]
	if j < 0 {
		return false
	}
	size := k - j
	if i+size > m.to {
		m.hitEnd = true
		return false
	}
	if m.text[i:i+size] != m.text[j:k] {
		return false
	}
	return n.next.match(m, i+size)
}

func (n *backRef) study(info *treeInfo) bool {
	info.maxValid = false
	return n.next.study(info)
}

// ciBackRef is a backreference under CaseInsensitive.
type ciBackRef struct {
	base
	group       int
	unicodeCase bool
}

func (n *ciBackRef) match(m *Machine, i int) bool {
	g := 2 * n.group
	if g+1 >= len(m.groups) {
		return false
	}
	j, k := m.groups[g], m.groups[g+1]
	if j < 0 {
		return false
	}
	if i+(k-j) > m.to && !n.unicodeCase {
		m.hitEnd = true
		return false
	}
	x := i
	for j < k {
		if x >= m.to {
			m.hitEnd = true
			return false
		}
		c1, w1 := m.decode(x)
		c2, w2 := m.decode(j)
		if c1 != c2 {
			if n.unicodeCase {
				u1, u2 := unicode.ToUpper(c1), unicode.ToUpper(c2)
				if u1 != u2 && unicode.ToLower(u1) != unicode.ToLower(u2) {
					return false
				}
			} else if asciiLower(c1) != asciiLower(c2) {
				return false
			}
		}
		x += w1
		j += w2
	}
	if x > m.to {
		m.hitEnd = true
		return false
	}
	return n.next.match(m, x)
}

func (n *ciBackRef) study(info *treeInfo) bool {
	info.maxValid = false
	return n.next.study(info)
}
