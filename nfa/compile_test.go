package nfa

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/btregex/syntax"
)

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		code    syntax.ErrorCode
	}{
		{`(`, 0, syntax.ErrUnclosedGroup},
		{`(?:a`, 0, syntax.ErrUnclosedGroup},
		{`a)`, 0, syntax.ErrUnmatchedParen},
		{`*a`, 0, syntax.ErrDanglingMeta},
		{`a|+`, 0, syntax.ErrDanglingMeta},
		{`a{`, 0, syntax.ErrIllegalRepetition},
		{`a{x}`, 0, syntax.ErrIllegalRepetition},
		{`a{2`, 0, syntax.ErrUnclosedCountedClosure},
		{`a{3,2}`, 0, syntax.ErrIllegalRepetitionRange},
		{`[a`, 0, syntax.ErrUnclosedCharClass},
		{`[z-a]`, 0, syntax.ErrIllegalCharRange},
		{`\y`, 0, syntax.ErrIllegalEscape},
		{`\x{110000}`, 0, syntax.ErrIllegalEscape},
		{`(?<=a+)b`, 0, syntax.ErrUnboundedLookbehind},
		{`(?<!a*)b`, 0, syntax.ErrUnboundedLookbehind},
		{`\p{Foo}`, 0, syntax.ErrUnknownProperty},
		{`\p{}`, 0, syntax.ErrCharFamily},
		{`(?<a>x)(?<a>y)`, 0, syntax.ErrDuplicateGroupName},
		{`\k<b>`, 0, syntax.ErrUnknownGroupName},
		{`(?<1a>x)`, 0, syntax.ErrBadGroupName},
		{`(?@x)`, 0, syntax.ErrUnknownGroupType},
		{`(?i-q)`, 0, syntax.ErrUnknownInlineModifier},
		{`a`, syntax.Flags(1 << 20), syntax.ErrInvalidFlags},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern, tt.flags, DefaultOptions())
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want %v", tt.pattern, tt.code)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Compile(%q) = %v, want code %v", tt.pattern, err, tt.code)
			}
			var se *syntax.Error
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *syntax.Error", err)
			}
		})
	}
}

func TestCompileErrorMessage(t *testing.T) {
	_, err := Compile(`(`, 0, DefaultOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	const want = "Unclosed group near index 1\n("
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}

	_, err = Compile(`ab*+*`, 0, DefaultOptions())
	var se *syntax.Error
	if !errors.As(err, &se) {
		t.Fatalf("Compile(ab*+*) = %v, want *syntax.Error", err)
	}
	if se.Index != 4 {
		t.Errorf("Index = %d, want 4", se.Index)
	}

	_, err = Compile("\u00e9(", syntax.CanonEq, DefaultOptions())
	if !errors.As(err, &se) {
		t.Fatalf("Compile(CanonEq) = %v, want *syntax.Error", err)
	}
	if se.Code != syntax.ErrUnclosedGroup || se.Pattern != "\u00e9(" {
		t.Errorf("CanonEq error = %v %q, want the pattern as written", se.Code, se.Pattern)
	}
}

func TestCompileLiteralNeverFails(t *testing.T) {
	for _, p := range []string{`(`, `[`, `\`, `*`, `a{`} {
		if _, err := Compile(p, syntax.Literal, DefaultOptions()); err != nil {
			t.Errorf("Compile(%q, Literal) = %v", p, err)
		}
	}
}

func TestStrategy(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		want    string
	}{
		{`hello`, 0, "boyer-moore"},
		{`hello world`, 0, "boyer-moore"},
		{`^abc`, 0, "anchored"},
		{`\Aabc`, 0, "anchored"},
		{`abc`, 0, "prefilter/memmem"},
		{`x\d`, 0, "prefilter/memchr"},
		{`a|b`, 0, "prefilter/memchr2"},
		{`a|b|c`, 0, "prefilter/memchr3"},
		{`foo|bar`, 0, "prefilter/aho-corasick"},
		{`\d+`, 0, "prefilter/digit"},
		{`(ab)+c`, 0, "prefilter/memmem"},
		{`(a|b)*c`, 0, "start"},
		{`.*`, 0, "start"},
		{`(?i)hello`, 0, "start"},
		{`hello`, syntax.Literal, "boyer-moore"},
		{"\u00e9\u00e9\u00e9", 0, "prefilter/memmem"},
		{"\u00e9\u00e9\u00e9\u00e9", 0, "boyer-moore"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog, err := Compile(tt.pattern, tt.flags, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			if got := prog.Strategy(); got != tt.want {
				t.Errorf("Strategy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefilterLiteralLen(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`abc`, 3},
		{`x`, 1},
		{`a|b`, 1},
		{`cat|dog`, 3},
		{`cat|horse`, 0},
		{`foobar|foo`, 0},
		{`abc\d|abc`, 0},
		{`(abc)`, 0},
		{`x\d`, 0},
		{`(a)(b)|c`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog, err := Compile(tt.pattern, 0, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			root, ok := prog.root.(*prefilterStart)
			if !ok {
				t.Fatalf("root is %T, want *prefilterStart (strategy %s)", prog.root, prog.Strategy())
			}
			if root.litLen != tt.want {
				t.Errorf("litLen = %d, want %d", root.litLen, tt.want)
			}
		})
	}
}

func TestStrategyOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.EnablePrefilter = false
	prog, err := Compile(`foo|bar`, 0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Strategy() != "start" {
		t.Errorf("Strategy() = %q without prefilter, want start", prog.Strategy())
	}

	opts = DefaultOptions()
	opts.BoyerMooreMinLen = 10
	prog, err = Compile(`hello`, 0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Strategy() != "prefilter/memmem" {
		t.Errorf("Strategy() = %q for a short literal, want prefilter/memmem", prog.Strategy())
	}
}

func TestMemoizedLoops(t *testing.T) {
	tests := []struct {
		pattern string
		memo    bool
		want    int
	}{
		{`(a|b)*c`, true, 1},
		{`(a|b)*c`, false, 0},
		{`(a|b)*\1`, true, 0},
		{`(ab)*c`, true, 0},
		{`(a|b){2,5}c`, true, 0},
		{`(a|b)*c(d|e)+`, true, 2},
		{`((a|b)*c)*`, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			opts := DefaultOptions()
			opts.EnableMemoization = tt.memo
			prog, err := Compile(tt.pattern, 0, opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := prog.MemoizedLoops(); got != tt.want {
				t.Errorf("MemoizedLoops() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgramGroups(t *testing.T) {
	prog, err := Compile(`(?<year>\d{4})-(?<month>\d{2})(x)?`, 0, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if prog.NumCaptures() != 3 {
		t.Errorf("NumCaptures() = %d, want 3", prog.NumCaptures())
	}
	if g, ok := prog.GroupIndex("month"); !ok || g != 2 {
		t.Errorf("GroupIndex(month) = %d, %v, want 2, true", g, ok)
	}
	if _, ok := prog.GroupIndex("day"); ok {
		t.Error("GroupIndex(day) found a group")
	}
	if diff := cmp.Diff([]string{"", "year", "month", ""}, prog.SubexpNames()); diff != "" {
		t.Errorf("SubexpNames() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"year": 1, "month": 2}, prog.GroupNames()); diff != "" {
		t.Errorf("GroupNames() mismatch (-want +got):\n%s", diff)
	}
	if prog.HasBackRef() {
		t.Error("HasBackRef() = true")
	}
}

func TestMinLength(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`abc`, 3},
		{`a{3}b?`, 3},
		{`a|bcd`, 1},
		{`(ab)+`, 2},
		{`x*`, 0},
		{`(?=abc)`, 0},
	}
	for _, tt := range tests {
		prog, err := Compile(tt.pattern, 0, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if got := prog.MinLength(); got != tt.want {
			t.Errorf("MinLength(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}
