// Package prefilter finds candidate match starts before the backtracker runs.
//
// A prefilter scans for the literals every match must begin with. Positions
// between candidates cannot start a match, so the matcher jumps from one
// candidate to the next instead of attempting a match at every offset.
//
// The strategy depends on the literal set:
//   - one single-byte literal → memchr
//   - one longer literal → memmem
//   - two or three single-byte literals → memchr2 / memchr3
//   - anything else up to the configured limit → Aho-Corasick
//   - ASCII digit classes → a SWAR digit scan (see NewDigit)
package prefilter

import (
	"github.com/coregx/btregex/literal"
	"github.com/coregx/btregex/simd"
)

// Prefilter reports candidate match starts.
type Prefilter interface {
	// Find returns the first candidate position at or after start, or -1.
	// A candidate is not a match; the caller must verify it.
	Find(haystack []byte, start int) int

	// IsComplete reports whether every candidate is the start of a match of
	// the literal alternatives themselves.
	IsComplete() bool

	// LiteralLen returns the length of the match found at every candidate
	// when the prefilter is complete and its literals share one length, or 0
	// when the candidate must be verified.
	LiteralLen() int

	// String names the strategy, for diagnostics.
	String() string
}

// New selects a prefilter for seq. It returns nil when seq gives nothing to
// search for: an empty set, a set containing the empty literal, or more
// than maxLiterals literals after minimization.
func New(seq *literal.Seq, maxLiterals int) Prefilter {
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}
	seq = seq.Clone()
	seq.Minimize()
	if seq.Len() > maxLiterals {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return &memchrPrefilter{needle: lit.Bytes[0], complete: lit.Complete}
		}
		return &memmemPrefilter{needle: lit.Bytes, complete: lit.Complete}
	}

	if allLen1(seq) {
		if pf := newFirstBytes(seq); pf != nil {
			return pf
		}
	}

	if pf, err := newAhoCorasick(seq); err == nil {
		return pf
	}
	return newFirstBytes(seq)
}

// newFirstBytes returns a memchr2/memchr3 prefilter over the distinct first
// bytes of seq, or nil if there are more than three.
func newFirstBytes(seq *literal.Seq) Prefilter {
	first := seq.FirstBytes()
	complete := seq.AllComplete() && allLen1(seq)
	switch len(first) {
	case 1:
		return &memchrPrefilter{needle: first[0], complete: complete}
	case 2:
		return &memchr2Prefilter{b1: first[0], b2: first[1], complete: complete}
	case 3:
		return &memchr3Prefilter{b1: first[0], b2: first[1], b3: first[2], complete: complete}
	}
	return nil
}

func allLen1(seq *literal.Seq) bool {
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Len() != 1 {
			return false
		}
	}
	return true
}

// clampStart reports whether a search from start can find anything.
func clampStart(haystack []byte, start int) bool {
	return start >= 0 && start < len(haystack)
}

type memchrPrefilter struct {
	needle   byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if !clampStart(haystack, start) {
		return -1
	}
	if i := simd.Memchr(haystack[start:], p.needle); i >= 0 {
		return start + i
	}
	return -1
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) String() string { return "memchr" }

type memchr2Prefilter struct {
	b1, b2   byte
	complete bool
}

func (p *memchr2Prefilter) Find(haystack []byte, start int) int {
	if !clampStart(haystack, start) {
		return -1
	}
	if i := simd.Memchr2(haystack[start:], p.b1, p.b2); i >= 0 {
		return start + i
	}
	return -1
}

func (p *memchr2Prefilter) IsComplete() bool { return p.complete }

func (p *memchr2Prefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchr2Prefilter) String() string { return "memchr2" }

type memchr3Prefilter struct {
	b1, b2, b3 byte
	complete   bool
}

func (p *memchr3Prefilter) Find(haystack []byte, start int) int {
	if !clampStart(haystack, start) {
		return -1
	}
	if i := simd.Memchr3(haystack[start:], p.b1, p.b2, p.b3); i >= 0 {
		return start + i
	}
	return -1
}

func (p *memchr3Prefilter) IsComplete() bool { return p.complete }

func (p *memchr3Prefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchr3Prefilter) String() string { return "memchr3" }

type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if !clampStart(haystack, start) {
		return -1
	}
	if i := simd.Memmem(haystack[start:], p.needle); i >= 0 {
		return start + i
	}
	return -1
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) String() string { return "memmem" }
