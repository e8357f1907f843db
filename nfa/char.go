package nfa

import (
	"unicode"

	"github.com/coregx/btregex/syntax"
)

// charProperty matches one character accepted by a predicate.
type charProperty struct {
	base
	pred syntax.Predicate

	// lit is the only character pred accepts, or -1. digit marks the ASCII
	// digit class. Both feed prefilter selection.
	lit   rune
	digit bool
}

func newCharProperty(pred syntax.Predicate) *charProperty {
	return &charProperty{base: base{next: accept}, pred: pred, lit: -1}
}

func (n *charProperty) match(m *Machine, i int) bool {
	if i < m.to {
		c, w := m.decode(i)
		return i+w <= m.to && n.pred(c) && n.next.match(m, i+w)
	}
	m.hitEnd = true
	return false
}

func (n *charProperty) study(info *treeInfo) bool {
	info.minLength++
	info.maxLength++
	return n.next.study(info)
}

// charPropertyGreedy is x* or x+ over a single character predicate. It
// consumes as much as possible, then gives characters back one at a time.
type charPropertyGreedy struct {
	base
	pred  syntax.Predicate
	cmin  int
	lit   rune
	digit bool
}

func newCharPropertyGreedy(cp *charProperty, cmin int) *charPropertyGreedy {
	return &charPropertyGreedy{
		base:  base{next: accept},
		pred:  cp.pred,
		cmin:  cmin,
		lit:   cp.lit,
		digit: cp.digit,
	}
}

func (n *charPropertyGreedy) match(m *Machine, i int) bool {
	start := i
	count := 0
	for i < m.to {
		c, w := m.decode(i)
		if i+w > m.to || !n.pred(c) {
			break
		}
		i += w
		count++
	}
	if i >= m.to {
		m.hitEnd = true
	}
	for count >= n.cmin {
		if n.next.match(m, i) {
			return true
		}
		if count == n.cmin || i <= start {
			return false
		}
		_, w := m.decodeLast(i)
		i -= w
		count--
	}
	return false
}

func (n *charPropertyGreedy) study(info *treeInfo) bool {
	info.minLength = satAdd(info.minLength, n.cmin)
	info.maxValid = false
	info.deterministic = false
	return n.next.study(info)
}

// predicates for the dot under the various flag combinations.

func dotAll(rune) bool { return true }

func unixDot(r rune) bool { return r != '\n' }

func dot(r rune) bool {
	return r != '\n' && r != '\r' && r|1 != 0x2029 && r != 0x85
}

// single returns the predicate for literal character c under the current
// case-folding flags.
func single(c rune, flags syntax.Flags) syntax.Predicate {
	if flags.Has(syntax.CaseInsensitive) {
		if flags.Has(syntax.UnicodeCase) {
			upper := unicode.ToUpper(c)
			lower := unicode.ToLower(upper)
			if upper != lower {
				return func(r rune) bool {
					return r == lower || unicode.ToLower(unicode.ToUpper(r)) == lower
				}
			}
		} else if isASCII(c) && isASCIICased(c) {
			lower, upper := asciiLower(c), asciiUpper(c)
			return func(r rune) bool { return r == lower || r == upper }
		}
	}
	return func(r rune) bool { return r == c }
}

// ciRange matches [lo-hi] ignoring ASCII case.
func ciRange(lo, hi rune) syntax.Predicate {
	return func(r rune) bool {
		if lo <= r && r <= hi {
			return true
		}
		if !isASCII(r) {
			return false
		}
		if u := asciiUpper(r); lo <= u && u <= hi {
			return true
		}
		l := asciiLower(r)
		return lo <= l && l <= hi
	}
}

// ciRangeU matches [lo-hi] ignoring Unicode case.
func ciRangeU(lo, hi rune) syntax.Predicate {
	return func(r rune) bool {
		if lo <= r && r <= hi {
			return true
		}
		u := unicode.ToUpper(r)
		if lo <= u && u <= hi {
			return true
		}
		l := unicode.ToLower(u)
		return lo <= l && l <= hi
	}
}

func inRange(lo, hi rune) syntax.Predicate {
	return func(r rune) bool { return lo <= r && r <= hi }
}

// bitClass is a set over the Latin-1 range, built up while parsing a
// character class.
type bitClass struct {
	bits [256]bool
}

func (b *bitClass) add(c rune, flags syntax.Flags) {
	if flags.Has(syntax.CaseInsensitive) {
		if isASCII(c) {
			b.bits[asciiUpper(c)] = true
			b.bits[asciiLower(c)] = true
		} else if flags.Has(syntax.UnicodeCase) {
			if l := unicode.ToLower(c); l < 256 {
				b.bits[l] = true
			}
			if u := unicode.ToUpper(c); u < 256 {
				b.bits[u] = true
			}
		}
	}
	b.bits[c] = true
}

func (b *bitClass) predicate() syntax.Predicate {
	bits := b.bits
	return func(r rune) bool { return r < 256 && r >= 0 && bits[r] }
}

func isASCII(r rune) bool { return r >= 0 && r < 0x80 }

func isASCIICased(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func asciiLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

func asciiUpper(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
