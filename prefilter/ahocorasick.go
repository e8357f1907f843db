package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/btregex/literal"
)

// ahoCorasickPrefilter searches for many literals at once. The automaton
// reports the leftmost occurrence, which is exactly the earliest candidate.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
	litLen   int
}

func newAhoCorasick(seq *literal.Seq) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p := &ahoCorasickPrefilter{auto: auto, complete: seq.AllComplete()}
	if p.complete && sameLength(seq) {
		p.litLen = seq.MinLen()
	}
	return p, nil
}

func sameLength(seq *literal.Seq) bool {
	n := seq.MinLen()
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Len() != n {
			return false
		}
	}
	return true
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if !clampStart(haystack, start) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool { return p.complete }

// LiteralLen is known only when every literal has the same length; a
// candidate is then exactly one of them.
func (p *ahoCorasickPrefilter) LiteralLen() int { return p.litLen }

func (p *ahoCorasickPrefilter) String() string { return "aho-corasick" }
