package btregex

import (
	"fmt"
	"iter"

	"github.com/coregx/btregex/nfa"
)

// Matcher performs match operations on one input with one Pattern.
//
// A Matcher is not safe for concurrent use. Create one per goroutine from
// the shared Pattern.
//
// Example:
//
//	m := btregex.MustCompile(`(\d+)`).Matcher("a1 b22")
//	for m.Find() {
//	    g, _, _ := m.GroupN(1)
//	    fmt.Println(g)
//	}
type Matcher struct {
	pattern *Pattern
	m       *nfa.Machine

	// appendPos is where the next AppendReplacement copies from.
	appendPos int
}

func newMatcher(p *Pattern, input string) *Matcher {
	return &Matcher{
		pattern: p,
		m:       nfa.NewMachine(p.prog, input),
	}
}

// Pattern returns the pattern the matcher uses.
func (m *Matcher) Pattern() *Pattern {
	return m.pattern
}

// Find looks for the next match. It continues after the previous match,
// or at the region start after a reset; an empty previous match moves the
// start one character further.
func (m *Matcher) Find() bool {
	return m.m.Next()
}

// FindFrom resets the matcher and looks for a match starting at or after
// start, ignoring the region.
func (m *Matcher) FindFrom(start int) (bool, error) {
	if start < 0 || start > len(m.m.Text()) {
		return false, fmt.Errorf("%w: illegal start index %d", ErrIndexOutOfBounds, start)
	}
	m.Reset()
	return m.m.Search(start), nil
}

// Matches reports whether the entire region matches the pattern.
func (m *Matcher) Matches() bool {
	from, _ := m.m.Region()
	return m.m.Match(from, nfa.EndAnchor)
}

// LookingAt reports whether a prefix of the region matches the pattern.
func (m *Matcher) LookingAt() bool {
	from, _ := m.m.Region()
	return m.m.Match(from, nfa.NoAnchor)
}

func (m *Matcher) matched() bool {
	if m.m.First() < 0 {
		return false
	}
	s, _ := m.m.Group(0)
	return s >= 0
}

func (m *Matcher) checkGroup(g int) error {
	if !m.matched() {
		return ErrNoMatch
	}
	if g < 0 || g > m.GroupCount() {
		return fmt.Errorf("%w: no group %d", ErrNoSuchGroup, g)
	}
	return nil
}

func (m *Matcher) groupIndex(name string) (int, error) {
	if !m.matched() {
		return 0, ErrNoMatch
	}
	g, ok := m.pattern.prog.GroupIndex(name)
	if !ok {
		return 0, fmt.Errorf("%w: no group with name <%s>", ErrNoSuchGroup, name)
	}
	return g, nil
}

// Start returns the start offset of the current match.
func (m *Matcher) Start() (int, error) {
	return m.StartGroup(0)
}

// End returns the offset after the current match.
func (m *Matcher) End() (int, error) {
	return m.EndGroup(0)
}

// Group returns the text of the current match.
func (m *Matcher) Group() (string, error) {
	s, _, err := m.GroupN(0)
	return s, err
}

// StartGroup returns the start offset of group g in the current match,
// or -1 if the group did not participate.
func (m *Matcher) StartGroup(g int) (int, error) {
	if err := m.checkGroup(g); err != nil {
		return -1, err
	}
	s, _ := m.m.Group(g)
	return s, nil
}

// EndGroup returns the end offset of group g in the current match, or -1
// if the group did not participate.
func (m *Matcher) EndGroup(g int) (int, error) {
	if err := m.checkGroup(g); err != nil {
		return -1, err
	}
	_, e := m.m.Group(g)
	return e, nil
}

// GroupN returns the text captured by group g. The boolean is false when
// the group exists but did not participate in the match.
func (m *Matcher) GroupN(g int) (string, bool, error) {
	if err := m.checkGroup(g); err != nil {
		return "", false, err
	}
	s, e := m.m.Group(g)
	if s < 0 || e < 0 {
		return "", false, nil
	}
	return m.m.Text()[s:e], true, nil
}

// GroupName returns the text captured by the named group.
func (m *Matcher) GroupName(name string) (string, bool, error) {
	g, err := m.groupIndex(name)
	if err != nil {
		return "", false, err
	}
	return m.GroupN(g)
}

// StartName returns the start offset of the named group.
func (m *Matcher) StartName(name string) (int, error) {
	g, err := m.groupIndex(name)
	if err != nil {
		return -1, err
	}
	return m.StartGroup(g)
}

// EndName returns the end offset of the named group.
func (m *Matcher) EndName(name string) (int, error) {
	g, err := m.groupIndex(name)
	if err != nil {
		return -1, err
	}
	return m.EndGroup(g)
}

// GroupCount returns the number of capturing groups in the pattern.
func (m *Matcher) GroupCount() int {
	return m.pattern.NumSubexp()
}

// Region resets the matcher and limits matching to input[start:end].
func (m *Matcher) Region(start, end int) (*Matcher, error) {
	n := len(m.m.Text())
	if start < 0 || start > n {
		return m, fmt.Errorf("%w: start %d", ErrIndexOutOfBounds, start)
	}
	if end < start || end > n {
		return m, fmt.Errorf("%w: end %d", ErrIndexOutOfBounds, end)
	}
	m.appendPos = 0
	m.m.SetRegion(start, end)
	return m, nil
}

// RegionStart returns the start of the region.
func (m *Matcher) RegionStart() int {
	from, _ := m.m.Region()
	return from
}

// RegionEnd returns the end of the region.
func (m *Matcher) RegionEnd() int {
	_, to := m.m.Region()
	return to
}

// UseTransparentBounds sets whether lookaround and boundary constructs may
// look past the region bounds. The default is opaque bounds.
func (m *Matcher) UseTransparentBounds(b bool) *Matcher {
	m.m.SetTransparentBounds(b)
	return m
}

// HasTransparentBounds reports whether the region bounds are transparent.
func (m *Matcher) HasTransparentBounds() bool {
	return m.m.TransparentBounds()
}

// UseAnchoringBounds sets whether ^ and $ match at the region bounds. The
// default is anchoring bounds.
func (m *Matcher) UseAnchoringBounds(b bool) *Matcher {
	m.m.SetAnchoringBounds(b)
	return m
}

// HasAnchoringBounds reports whether the region bounds are anchoring.
func (m *Matcher) HasAnchoringBounds() bool {
	return m.m.AnchoringBounds()
}

// Reset discards match state, the append position and the region.
func (m *Matcher) Reset() *Matcher {
	m.appendPos = 0
	m.m.Reset()
	return m
}

// ResetInput resets the matcher to search input.
func (m *Matcher) ResetInput(input string) *Matcher {
	m.appendPos = 0
	m.m.ResetText(input)
	return m
}

// UsePattern switches to p, keeping the input, the region and the
// position. Group information is lost.
func (m *Matcher) UsePattern(p *Pattern) *Matcher {
	m.pattern = p
	m.m.UseProgram(p.prog)
	return m
}

// HitEnd reports whether the last match operation read the end of the
// input.
func (m *Matcher) HitEnd() bool {
	return m.m.HitEnd()
}

// RequireEnd reports whether more input could have turned the last match
// into a non-match.
func (m *Matcher) RequireEnd() bool {
	return m.m.RequireEnd()
}

// ToMatchResult returns a snapshot of the current match.
func (m *Matcher) ToMatchResult() (MatchResult, error) {
	if !m.matched() {
		return MatchResult{}, ErrNoMatch
	}
	return m.snapshot(), nil
}

func (m *Matcher) snapshot() MatchResult {
	n := m.GroupCount() + 1
	idx := make([]int, 0, 2*n)
	for g := range n {
		s, e := m.m.Group(g)
		idx = append(idx, s, e)
	}
	return MatchResult{text: m.m.Text(), index: idx, prog: m.pattern.prog}
}

// Results resets the matcher and yields a snapshot of every match.
//
// Example:
//
//	for r := range p.Matcher(s).Results() {
//	    fmt.Println(r.Start(), r.Group())
//	}
func (m *Matcher) Results() iter.Seq[MatchResult] {
	return func(yield func(MatchResult) bool) {
		m.Reset()
		for m.Find() {
			if !yield(m.snapshot()) {
				return
			}
		}
	}
}

// MatchResult is an immutable snapshot of one match.
type MatchResult struct {
	text  string
	index []int
	prog  *nfa.Program
}

// Start returns the start offset of the match.
func (r MatchResult) Start() int { return r.index[0] }

// End returns the offset after the match.
func (r MatchResult) End() int { return r.index[1] }

// Group returns the text of the match.
func (r MatchResult) Group() string { return r.text[r.index[0]:r.index[1]] }

// GroupCount returns the number of capturing groups.
func (r MatchResult) GroupCount() int { return len(r.index)/2 - 1 }

// Index returns the start and end offsets of every group, two per group,
// with -1 for groups that did not participate.
func (r MatchResult) Index() []int {
	out := make([]int, len(r.index))
	copy(out, r.index)
	return out
}

// StartGroup returns the start offset of group g, or -1.
func (r MatchResult) StartGroup(g int) (int, error) {
	if g < 0 || g > r.GroupCount() {
		return -1, fmt.Errorf("%w: no group %d", ErrNoSuchGroup, g)
	}
	return r.index[2*g], nil
}

// EndGroup returns the end offset of group g, or -1.
func (r MatchResult) EndGroup(g int) (int, error) {
	if g < 0 || g > r.GroupCount() {
		return -1, fmt.Errorf("%w: no group %d", ErrNoSuchGroup, g)
	}
	return r.index[2*g+1], nil
}

// GroupN returns the text of group g. The boolean is false when the group
// did not participate.
func (r MatchResult) GroupN(g int) (string, bool, error) {
	if g < 0 || g > r.GroupCount() {
		return "", false, fmt.Errorf("%w: no group %d", ErrNoSuchGroup, g)
	}
	s, e := r.index[2*g], r.index[2*g+1]
	if s < 0 || e < 0 {
		return "", false, nil
	}
	return r.text[s:e], true, nil
}

// GroupName returns the text of the named group.
func (r MatchResult) GroupName(name string) (string, bool, error) {
	g, ok := r.prog.GroupIndex(name)
	if !ok {
		return "", false, fmt.Errorf("%w: no group with name <%s>", ErrNoSuchGroup, name)
	}
	return r.GroupN(g)
}
