package nfa

// Quantifier kinds.
type quantKind int

const (
	greedy quantKind = iota
	lazy
	possessive
	// independent is an atomic group: the atom matches once, never
	// backtracking into it.
	independent
)

// groupHead records the position a group was entered at. The position lives
// in a local slot so recursion through loops restores it on the way out.
type groupHead struct {
	base
	local int
}

func (n *groupHead) match(m *Machine, i int) bool {
	save := m.locals[n.local]
	m.locals[n.local] = i
	ok := n.next.match(m, i)
	m.locals[n.local] = save
	return ok
}

// groupTail closes a group. It commits the capture if the group captures,
// undoing the commit when the rest of the pattern fails. When the group
// is the atom of a groupCurly the local is -1 and the tail only reports the
// position reached.
type groupTail struct {
	base
	local int
	group int // capture number, -1 for non-capturing groups
}

func (n *groupTail) match(m *Machine, i int) bool {
	start := m.locals[n.local]
	if start < 0 {
		m.last = i
		return true
	}
	if n.group < 0 {
		return n.next.match(m, i)
	}
	g := 2 * n.group
	saveStart, saveEnd := m.groups[g], m.groups[g+1]
	m.groups[g] = start
	m.groups[g+1] = i
	if n.next.match(m, i) {
		return true
	}
	m.groups[g] = saveStart
	m.groups[g+1] = saveEnd
	return false
}

// branch tries its alternatives in order. A nil alternative is empty and
// continues directly after the branch.
type branch struct {
	base
	atoms []node
	conn  *branchConn
}

func newBranch(first, second node, conn *branchConn) *branch {
	return &branch{base: base{next: accept}, atoms: []node{first, second}, conn: conn}
}

func (n *branch) add(atom node) {
	n.atoms = append(n.atoms, atom)
}

func (n *branch) match(m *Machine, i int) bool {
	for _, atom := range n.atoms {
		if atom == nil {
			if n.conn.next.match(m, i) {
				return true
			}
		} else if atom.match(m, i) {
			return true
		}
	}
	return false
}

func (n *branch) study(info *treeInfo) bool {
	minL, maxL, maxV := info.minLength, info.maxLength, info.maxValid
	minL2, maxL2 := MaxRepetition, -1
	for _, atom := range n.atoms {
		info.reset()
		if atom != nil {
			atom.study(info)
		}
		minL2 = min(minL2, info.minLength)
		maxL2 = max(maxL2, info.maxLength)
		maxV = maxV && info.maxValid
	}
	minL = satAdd(minL, minL2)
	maxL = satAdd(maxL, maxL2)

	info.reset()
	n.conn.next.study(info)
	info.minLength = satAdd(info.minLength, minL)
	info.maxLength = satAdd(info.maxLength, maxL)
	info.maxValid = info.maxValid && maxV
	info.deterministic = false
	return false
}

// branchConn joins the alternatives of a branch back into one path.
type branchConn struct {
	base
}

func (n *branchConn) match(m *Machine, i int) bool {
	return n.next.match(m, i)
}

func (n *branchConn) study(info *treeInfo) bool {
	return info.deterministic
}

// ques is x?, x??, x?+ and the atomic group (?>x).
type ques struct {
	base
	atom node
	kind quantKind
}

func (n *ques) match(m *Machine, i int) bool {
	switch n.kind {
	case greedy:
		return (n.atom.match(m, i) && n.next.match(m, m.last)) || n.next.match(m, i)
	case lazy:
		return n.next.match(m, i) || (n.atom.match(m, i) && n.next.match(m, m.last))
	case possessive:
		if n.atom.match(m, i) {
			i = m.last
		}
		return n.next.match(m, i)
	default:
		return n.atom.match(m, i) && n.next.match(m, m.last)
	}
}

func (n *ques) study(info *treeInfo) bool {
	if n.kind == independent {
		n.atom.study(info)
		return n.next.study(info)
	}
	minL := info.minLength
	n.atom.study(info)
	info.minLength = minL
	info.deterministic = false
	return n.next.study(info)
}

// curly is a counted repetition x{n,m} of an atom that does not capture.
type curly struct {
	base
	atom       node
	kind       quantKind
	cmin, cmax int
}

func (n *curly) match(m *Machine, i int) bool {
	j := 0
	for ; j < n.cmin; j++ {
		if !n.atom.match(m, i) {
			return false
		}
		i = m.last
	}
	switch n.kind {
	case greedy:
		return n.matchGreedy(m, i, j)
	case lazy:
		return n.matchLazy(m, i, j)
	default:
		return n.matchPossessive(m, i, j)
	}
}

// matchGreedy matches as many atoms as possible after j have matched at i,
// then backs off. While every atom has the same length k the positions are
// regular and backing off is a subtraction; a length change recurses.
func (n *curly) matchGreedy(m *Machine, i, j int) bool {
	if j >= n.cmax {
		return n.next.match(m, i)
	}
	backLimit := j
	for n.atom.match(m, i) {
		k := m.last - i
		if k == 0 {
			break
		}
		i = m.last
		j++
		for j < n.cmax {
			if !n.atom.match(m, i) {
				break
			}
			if i+k != m.last {
				if n.matchGreedy(m, m.last, j+1) {
					return true
				}
				break
			}
			i += k
			j++
		}
		for j >= backLimit {
			if n.next.match(m, i) {
				return true
			}
			i -= k
			j--
		}
		return false
	}
	return n.next.match(m, i)
}

func (n *curly) matchLazy(m *Machine, i, j int) bool {
	for {
		if n.next.match(m, i) {
			return true
		}
		if j >= n.cmax {
			return false
		}
		if !n.atom.match(m, i) {
			return false
		}
		if i == m.last {
			return false
		}
		i = m.last
		j++
	}
}

func (n *curly) matchPossessive(m *Machine, i, j int) bool {
	for ; j < n.cmax; j++ {
		if !n.atom.match(m, i) {
			break
		}
		if i == m.last {
			break
		}
		i = m.last
	}
	return n.next.match(m, i)
}

func (n *curly) study(info *treeInfo) bool {
	studyRepeat(info, n.atom, n.cmin, n.cmax)
	return n.next.study(info)
}

// studyRepeat folds the study of atom repeated cmin to cmax times into
// info.
func studyRepeat(info *treeInfo, atom node, cmin, cmax int) {
	minL, maxL, maxV, detm := info.minLength, info.maxLength, info.maxValid, info.deterministic
	info.reset()
	atom.study(info)

	info.minLength = satAdd(satMul(info.minLength, cmin), minL)
	if maxV && info.maxValid {
		info.maxLength = satAdd(satMul(info.maxLength, cmax), maxL)
		if info.maxLength >= MaxRepetition {
			info.maxValid = false
		}
	} else {
		info.maxValid = false
	}
	if info.deterministic && cmin == cmax {
		info.deterministic = detm
	} else {
		info.deterministic = false
	}
}

// groupCurly is a counted repetition of a deterministic group. It updates
// the capture itself after each iteration, which lets the group tail skip
// its own bookkeeping.
type groupCurly struct {
	base
	atom       node
	kind       quantKind
	cmin, cmax int
	local      int
	group      int
	capture    bool
}

func (n *groupCurly) match(m *Machine, i int) bool {
	g := 2 * n.group
	save0 := m.locals[n.local]
	var save1, save2 int
	if n.capture {
		save1, save2 = m.groups[g], m.groups[g+1]
	}
	m.locals[n.local] = -1

	ok := true
	for j := 0; j < n.cmin; j++ {
		if !n.atom.match(m, i) {
			ok = false
			break
		}
		if n.capture {
			m.groups[g] = i
			m.groups[g+1] = m.last
		}
		i = m.last
	}
	if ok {
		switch n.kind {
		case greedy:
			ok = n.matchGreedy(m, i, n.cmin)
		case lazy:
			ok = n.matchLazy(m, i, n.cmin)
		default:
			ok = n.matchPossessive(m, i, n.cmin)
		}
	}
	if !ok {
		m.locals[n.local] = save0
		if n.capture {
			m.groups[g] = save1
			m.groups[g+1] = save2
		}
	}
	return ok
}

func (n *groupCurly) matchGreedy(m *Machine, i, j int) bool {
	g := 2 * n.group
	floor := j
	var save0, save1 int
	if n.capture {
		save0, save1 = m.groups[g], m.groups[g+1]
	}
	for j < n.cmax {
		if !n.atom.match(m, i) {
			break
		}
		k := m.last - i
		if k <= 0 {
			if n.capture {
				m.groups[g] = i
				m.groups[g+1] = i + k
			}
			i += k
			break
		}
		for {
			if n.capture {
				m.groups[g] = i
				m.groups[g+1] = i + k
			}
			i += k
			j++
			if j >= n.cmax {
				break
			}
			if !n.atom.match(m, i) {
				break
			}
			if i+k != m.last {
				if n.matchGreedy(m, i, j) {
					return true
				}
				break
			}
		}
		for j > floor {
			if n.next.match(m, i) {
				if n.capture {
					m.groups[g+1] = i
					m.groups[g] = i - k
				}
				return true
			}
			i -= k
			if n.capture {
				m.groups[g+1] = i
				m.groups[g] = i - k
			}
			j--
		}
		break
	}
	if n.capture {
		m.groups[g] = save0
		m.groups[g+1] = save1
	}
	return n.next.match(m, i)
}

func (n *groupCurly) matchLazy(m *Machine, i, j int) bool {
	g := 2 * n.group
	for {
		if n.next.match(m, i) {
			return true
		}
		if j >= n.cmax {
			return false
		}
		if !n.atom.match(m, i) {
			return false
		}
		if i == m.last {
			return false
		}
		if n.capture {
			m.groups[g] = i
			m.groups[g+1] = m.last
		}
		i = m.last
		j++
	}
}

func (n *groupCurly) matchPossessive(m *Machine, i, j int) bool {
	g := 2 * n.group
	for ; j < n.cmax; j++ {
		if !n.atom.match(m, i) {
			break
		}
		if n.capture {
			m.groups[g] = i
			m.groups[g+1] = m.last
		}
		if i == m.last {
			break
		}
		i = m.last
	}
	return n.next.match(m, i)
}

func (n *groupCurly) study(info *treeInfo) bool {
	studyRepeat(info, n.atom, n.cmin, n.cmax)
	return n.next.study(info)
}

// looper is a loop that is entered through a prolog.
type looper interface {
	node
	matchInit(m *Machine, i int) bool
}

// prolog enters a loop over a non-deterministic group.
type prolog struct {
	base
	loop looper
}

func (n *prolog) match(m *Machine, i int) bool {
	return n.loop.matchInit(m, i)
}

func (n *prolog) study(info *treeInfo) bool {
	return n.loop.study(info)
}

// loop is a greedy repetition of a non-deterministic group. The group tail
// links back here, so each iteration recurses through the body. The
// iteration count lives in a local slot. memoIndex is the loop's failure
// memo, or -1.
type loop struct {
	base
	body       node
	countIndex int
	beginIndex int
	cmin, cmax int
	memoIndex  int
}

func (n *loop) match(m *Machine, i int) bool {
	// An iteration that consumed nothing ends the loop.
	if i > m.locals[n.beginIndex] {
		count := m.locals[n.countIndex]
		if count < n.cmin {
			m.locals[n.countIndex] = count + 1
			if n.body.match(m, i) {
				return true
			}
			m.locals[n.countIndex] = count
			return false
		}
		if count < n.cmax {
			if n.memoIndex >= 0 && m.memo[n.memoIndex].Contains(i) {
				return n.next.match(m, i)
			}
			m.locals[n.countIndex] = count + 1
			if n.body.match(m, i) {
				return true
			}
			m.locals[n.countIndex] = count
			if n.memoIndex >= 0 {
				m.memo[n.memoIndex].Insert(i)
			}
		}
	}
	return n.next.match(m, i)
}

func (n *loop) matchInit(m *Machine, i int) bool {
	save := m.locals[n.countIndex]
	if n.memoIndex >= 0 {
		m.memoSet(n.memoIndex)
	}
	ok := false
	switch {
	case n.cmin > 0:
		m.locals[n.countIndex] = 1
		ok = n.body.match(m, i)
	case n.cmax > 0:
		m.locals[n.countIndex] = 1
		ok = n.body.match(m, i) || n.next.match(m, i)
	default:
		ok = n.next.match(m, i)
	}
	m.locals[n.countIndex] = save
	return ok
}

func (n *loop) study(info *treeInfo) bool {
	info.maxValid = false
	info.deterministic = false
	return false
}

// lazyLoop is the reluctant counterpart of loop.
type lazyLoop struct {
	loop
}

func (n *lazyLoop) match(m *Machine, i int) bool {
	if i > m.locals[n.beginIndex] {
		count := m.locals[n.countIndex]
		if count < n.cmin {
			m.locals[n.countIndex] = count + 1
			ok := n.body.match(m, i)
			if !ok {
				m.locals[n.countIndex] = count
			}
			return ok
		}
		if n.next.match(m, i) {
			return true
		}
		if count < n.cmax {
			m.locals[n.countIndex] = count + 1
			ok := n.body.match(m, i)
			if !ok {
				m.locals[n.countIndex] = count
			}
			return ok
		}
		return false
	}
	return n.next.match(m, i)
}

func (n *lazyLoop) matchInit(m *Machine, i int) bool {
	save := m.locals[n.countIndex]
	ok := false
	switch {
	case n.cmin > 0:
		m.locals[n.countIndex] = 1
		ok = n.body.match(m, i)
	case n.next.match(m, i):
		ok = true
	case n.cmax > 0:
		m.locals[n.countIndex] = 1
		ok = n.body.match(m, i)
	}
	m.locals[n.countIndex] = save
	return ok
}
