package btregex

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatcherFind(t *testing.T) {
	m := MustCompile(`(\w)(\d)?`).Matcher("a1 b c2")
	type result struct {
		Start, End int
		G1, G2     string
		G2OK       bool
	}
	var got []result
	for m.Find() {
		s, _ := m.Start()
		e, _ := m.End()
		g1, _, _ := m.GroupN(1)
		g2, ok, _ := m.GroupN(2)
		got = append(got, result{s, e, g1, g2, ok})
	}
	want := []result{
		{0, 2, "a", "1", true},
		{3, 4, "b", "", false},
		{5, 7, "c", "2", true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherAccessorsWithoutMatch(t *testing.T) {
	m := MustCompile(`(a)`).Matcher("b")
	if _, err := m.Start(); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Start() before Find: error = %v, want ErrNoMatch", err)
	}
	if m.Find() {
		t.Fatal("unexpected match")
	}
	if _, err := m.Group(); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Group() after failed Find: error = %v, want ErrNoMatch", err)
	}
	if m.Find() {
		t.Error("a second Find after exhaustion matched")
	}
	if _, err := m.ToMatchResult(); !errors.Is(err, ErrNoMatch) {
		t.Errorf("ToMatchResult() error = %v, want ErrNoMatch", err)
	}
	var sb strings.Builder
	if err := m.AppendReplacement(&sb, "x"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("AppendReplacement() error = %v, want ErrNoMatch", err)
	}
}

func TestMatcherGroupErrors(t *testing.T) {
	m := MustCompile(`(?<word>a)(b)?`).Matcher("a")
	if !m.Find() {
		t.Fatal("no match")
	}
	if _, err := m.StartGroup(3); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("StartGroup(3) error = %v, want ErrNoSuchGroup", err)
	}
	if _, err := m.EndGroup(-1); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("EndGroup(-1) error = %v, want ErrNoSuchGroup", err)
	}
	if _, _, err := m.GroupName("nope"); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("GroupName(nope) error = %v, want ErrNoSuchGroup", err)
	}
	if s, err := m.StartGroup(2); err != nil || s != -1 {
		t.Errorf("StartGroup(2) = %d, %v, want -1, nil", s, err)
	}
	if g, ok, err := m.GroupName("word"); err != nil || !ok || g != "a" {
		t.Errorf("GroupName(word) = %q, %v, %v", g, ok, err)
	}
	if s, err := m.StartName("word"); err != nil || s != 0 {
		t.Errorf("StartName(word) = %d, %v", s, err)
	}
	if e, err := m.EndName("word"); err != nil || e != 1 {
		t.Errorf("EndName(word) = %d, %v", e, err)
	}
	if m.GroupCount() != 2 {
		t.Errorf("GroupCount() = %d, want 2", m.GroupCount())
	}
}

func TestMatcherMatchesLookingAt(t *testing.T) {
	p := MustCompile(`\d+`)
	tests := []struct {
		input     string
		matches   bool
		lookingAt bool
	}{
		{"123", true, true},
		{"123a", false, true},
		{"a123", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		m := p.Matcher(tt.input)
		if got := m.Matches(); got != tt.matches {
			t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.matches)
		}
		if got := m.LookingAt(); got != tt.lookingAt {
			t.Errorf("LookingAt(%q) = %v, want %v", tt.input, got, tt.lookingAt)
		}
	}

	m := p.Matcher("123a")
	if !m.LookingAt() {
		t.Fatal("LookingAt() = false")
	}
	if g, _ := m.Group(); g != "123" {
		t.Errorf("Group() after LookingAt = %q, want 123", g)
	}
}

func TestMatcherFindFrom(t *testing.T) {
	m := MustCompile(`o`).Matcher("foo boo")
	ok, err := m.FindFrom(3)
	if err != nil || !ok {
		t.Fatalf("FindFrom(3) = %v, %v", ok, err)
	}
	if s, _ := m.Start(); s != 5 {
		t.Errorf("Start() = %d, want 5", s)
	}
	if !m.Find() {
		t.Fatal("Find after FindFrom failed")
	}
	if s, _ := m.Start(); s != 6 {
		t.Errorf("Start() = %d, want 6", s)
	}
	if _, err := m.FindFrom(8); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("FindFrom(8) error = %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := m.FindFrom(-1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("FindFrom(-1) error = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestMatcherRegion(t *testing.T) {
	m := MustCompile(`^\d+$`).Matcher("ab123cd")
	if _, err := m.Region(2, 5); err != nil {
		t.Fatal(err)
	}
	if m.RegionStart() != 2 || m.RegionEnd() != 5 {
		t.Errorf("region = [%d,%d], want [2,5]", m.RegionStart(), m.RegionEnd())
	}
	if !m.Matches() {
		t.Error("Matches() in region = false")
	}
	if !m.HasAnchoringBounds() || m.HasTransparentBounds() {
		t.Error("unexpected default bounds")
	}

	m.UseAnchoringBounds(false)
	if m.Find() {
		t.Error("non-anchoring bounds: ^ matched at the region start")
	}

	if _, err := m.Region(5, 2); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Region(5, 2) error = %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := m.Region(0, 100); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Region(0, 100) error = %v, want ErrIndexOutOfBounds", err)
	}

	m.Reset()
	if m.RegionStart() != 0 || m.RegionEnd() != 7 {
		t.Errorf("Reset did not restore the region: [%d,%d]", m.RegionStart(), m.RegionEnd())
	}
}

func TestMatcherTransparentBounds(t *testing.T) {
	m := MustCompile(`\bcat`).Matcher("concat")
	if _, err := m.Region(3, 6); err != nil {
		t.Fatal(err)
	}
	if !m.Find() {
		t.Error("opaque bounds: expected a match at the region start")
	}
	m.UseTransparentBounds(true)
	if _, err := m.Region(3, 6); err != nil {
		t.Fatal(err)
	}
	if m.Find() {
		t.Error("transparent bounds: \\b saw the preceding letter")
	}
	if !m.HasTransparentBounds() {
		t.Error("HasTransparentBounds() = false")
	}
}

func TestMatcherHitEnd(t *testing.T) {
	tests := []struct {
		pattern    string
		input      string
		found      bool
		hitEnd     bool
		requireEnd bool
	}{
		{`abc`, "ab", false, true, false},
		{`a$`, "a", true, true, true},
		{`foo(?!bar)`, "foo", true, true, true},
		{`foo`, "foox", true, false, false},
	}
	for _, tt := range tests {
		m := MustCompile(tt.pattern).Matcher(tt.input)
		if got := m.Find(); got != tt.found {
			t.Fatalf("%q Find() = %v, want %v", tt.pattern, got, tt.found)
		}
		if m.HitEnd() != tt.hitEnd || m.RequireEnd() != tt.requireEnd {
			t.Errorf("%q on %q: hitEnd=%v requireEnd=%v, want %v %v",
				tt.pattern, tt.input, m.HitEnd(), m.RequireEnd(), tt.hitEnd, tt.requireEnd)
		}
	}
}

func TestMatcherResetInputUsePattern(t *testing.T) {
	m := MustCompile(`a+`).Matcher("xaa")
	if !m.Find() {
		t.Fatal("no match")
	}
	m.ResetInput("aaa b")
	if !m.Find() {
		t.Fatal("no match after ResetInput")
	}
	if g, _ := m.Group(); g != "aaa" {
		t.Errorf("Group() = %q, want aaa", g)
	}
	m.UsePattern(MustCompile(`(b)`))
	if m.GroupCount() != 1 {
		t.Errorf("GroupCount() = %d after UsePattern", m.GroupCount())
	}
	if !m.Find() {
		t.Fatal("no match after UsePattern")
	}
	if s, _ := m.Start(); s != 4 {
		t.Errorf("Start() = %d, want 4", s)
	}
	if m.Pattern().String() != `(b)` {
		t.Errorf("Pattern() = %q", m.Pattern().String())
	}
}

func TestMatcherResults(t *testing.T) {
	m := MustCompile(`(?<k>\w+)=(?<v>\w*)`).Matcher("a=1 b= c=3")
	var got []string
	for r := range m.Results() {
		k, _, _ := r.GroupName("k")
		v, _, _ := r.GroupName("v")
		got = append(got, k+":"+v)
	}
	if diff := cmp.Diff([]string{"a:1", "b:", "c:3"}, got); diff != "" {
		t.Errorf("Results() mismatch (-want +got):\n%s", diff)
	}

	// Stopping early leaves the matcher after the last yielded match.
	for range m.Results() {
		break
	}
	if !m.Find() {
		t.Fatal("Find after an interrupted Results failed")
	}
	if g, _ := m.Group(); g != "b=" {
		t.Errorf("Group() = %q, want b=", g)
	}
}

func TestMatchResultSnapshot(t *testing.T) {
	m := MustCompile(`(x)(y)?`).Matcher("x xy")
	if !m.Find() {
		t.Fatal("no match")
	}
	r, err := m.ToMatchResult()
	if err != nil {
		t.Fatal(err)
	}
	m.Find()
	if r.Start() != 0 || r.End() != 1 || r.Group() != "x" {
		t.Errorf("snapshot changed: [%d,%d] %q", r.Start(), r.End(), r.Group())
	}
	if diff := cmp.Diff([]int{0, 1, 0, 1, -1, -1}, r.Index()); diff != "" {
		t.Errorf("Index() mismatch (-want +got):\n%s", diff)
	}
	if _, ok, _ := r.GroupN(2); ok {
		t.Error("GroupN(2) reported a participating group")
	}
	if _, err := r.StartGroup(3); !errors.Is(err, ErrNoSuchGroup) {
		t.Errorf("StartGroup(3) error = %v", err)
	}
	if r.GroupCount() != 2 {
		t.Errorf("GroupCount() = %d", r.GroupCount())
	}
}

func TestMemoizationBoundsWork(t *testing.T) {
	input := strings.Repeat("a", 30)
	p := MustCompile(`(a|aa)*b`)
	if p.MatchString(input) {
		t.Fatal("unexpected match")
	}
	c := DefaultConfig()
	c.EnableMemoization = false
	q, err := CompileWithConfig(`(a|aa)*b`, 0, c)
	if err != nil {
		t.Fatal(err)
	}
	if q.MatchString(input[:18]) {
		t.Fatal("unexpected match without memoization")
	}
}

func BenchmarkMemoizedLoop(b *testing.B) {
	input := strings.Repeat("a", 25)
	for _, memo := range []bool{true, false} {
		name := "memo"
		if !memo {
			name = "plain"
		}
		b.Run(name, func(b *testing.B) {
			c := DefaultConfig()
			c.EnableMemoization = memo
			p, err := CompileWithConfig(`(a|aa)*b`, 0, c)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				p.MatchString(input)
			}
		})
	}
}
