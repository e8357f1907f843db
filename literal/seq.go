// Package literal represents the literal byte strings that every match of a
// pattern must begin with.
//
// The compiler walks the head of a compiled pattern and collects one Literal
// per alternative (for example "cat" and "dog" from /cat|dog/). The resulting
// Seq drives prefilter selection: the matcher skips straight to positions
// where one of the literals occurs instead of trying every offset.
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte string that a match must start with.
//
// Complete is true when the literal is the entire alternative it came from,
// so that finding it is the same as finding a match of that alternative
// (ignoring lookarounds and anchors, which the compiler never reports as
// complete).
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debug representation.
//
// Example:
//
//	literal.NewLiteral([]byte("test"), true).String() // literal{test, complete=true}
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals. A position can begin a match only
// if one of the literals occurs there.
//
// An empty Seq carries no information: any position may begin a match.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	s := &Seq{literals: make([]Literal, 0, len(lits))}
	for _, l := range lits {
		s.Add(l)
	}
	return s
}

// Add appends a literal. Empty literals are accepted and make the sequence
// useless as a filter; see HasEmpty.
func (s *Seq) Add(l Literal) {
	s.literals = append(s.literals, l)
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the i-th literal. It panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// HasEmpty reports whether any literal is zero length.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.literals {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// AllComplete reports whether every literal is complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, or 0 if empty.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := len(s.literals[0].Bytes)
	for _, l := range s.literals[1:] {
		n = min(n, len(l.Bytes))
	}
	return n
}

// Clone returns a deep copy.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	out := &Seq{literals: make([]Literal, len(s.literals))}
	for i, l := range s.literals {
		out.literals[i] = Literal{Bytes: bytes.Clone(l.Bytes), Complete: l.Complete}
	}
	return out
}

// Minimize removes duplicates and every literal that has another literal of
// the set as a prefix. For a start-position search "foo" already finds every
// place "foobar" starts. A kept literal stays complete only if every literal
// it absorbed was an equal, complete duplicate: once "foobar" is folded into
// "foo", finding "foo" no longer tells which alternative matched.
//
// The result is sorted by bytes.
func (s *Seq) Minimize() {
	if s.Len() <= 1 {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	// After sorting, every literal prefixed by some kept literal follows it
	// directly or after other literals with the same prefix.
	kept := s.literals[:0]
	for _, l := range s.literals {
		if n := len(kept); n > 0 && bytes.HasPrefix(l.Bytes, kept[n-1].Bytes) {
			kept[n-1].Complete = kept[n-1].Complete && l.Complete &&
				len(l.Bytes) == len(kept[n-1].Bytes)
			continue
		}
		kept = append(kept, l)
	}
	s.literals = kept
}

// FirstBytes returns the distinct first bytes of the literals in order of
// appearance. Empty literals contribute nothing.
func (s *Seq) FirstBytes() []byte {
	var seen [256]bool
	var out []byte
	for _, l := range s.literals {
		if len(l.Bytes) == 0 {
			continue
		}
		if b := l.Bytes[0]; !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
