package nfa

import "github.com/rivo/uniseg"

// xGrapheme is \X, one extended grapheme cluster.
type xGrapheme struct {
	base
}

func (n *xGrapheme) match(m *Machine, i int) bool {
	if i < m.to {
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(m.text[i:m.to], -1)
		return n.next.match(m, i+len(cluster))
	}
	m.hitEnd = true
	return false
}

func (n *xGrapheme) study(info *treeInfo) bool {
	info.minLength++
	info.maxValid = false
	return n.next.study(info)
}

// graphemeBound is \b{g}, a boundary between grapheme clusters. Only the
// two characters around the position are considered.
type graphemeBound struct {
	base
}

func (n *graphemeBound) match(m *Machine, i int) bool {
	from, to := m.from, m.to
	if m.transparentBounds {
		from, to = 0, len(m.text)
	}
	if i == from {
		return n.next.match(m, i)
	}
	if i < to {
		_, pw := m.decodeLast(i)
		_, nw := m.decode(i)
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(m.text[i-pw:i+nw], -1)
		if len(cluster) != pw {
			return false
		}
	} else {
		m.hitEnd = true
		m.requireEnd = true
	}
	return n.next.match(m, i)
}
