package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlagsString(t *testing.T) {
	tests := []struct {
		flags Flags
		want  string
	}{
		{0, "0"},
		{CaseInsensitive, "CASE_INSENSITIVE"},
		{CaseInsensitive | Multiline, "CASE_INSENSITIVE|MULTILINE"},
		{UnicodeCharacterClass | 0x1000, "UNICODE_CHARACTER_CLASS|0x1000"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("Flags(%#x).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	f, ok := ParseFlags("case_insensitive|MULTILINE, dotall")
	if !ok || f != CaseInsensitive|Multiline|DotAll {
		t.Errorf("ParseFlags() = %v, %v", f, ok)
	}
	if _, ok := ParseFlags("BOGUS"); ok {
		t.Error("ParseFlags(BOGUS) succeeded")
	}
}

func TestFlagsValues(t *testing.T) {
	want := map[Flags]uint32{
		UnixLines: 0x01, CaseInsensitive: 0x02, Comments: 0x04, Multiline: 0x08,
		Literal: 0x10, DotAll: 0x20, UnicodeCase: 0x40, CanonEq: 0x80,
		UnicodeCharacterClass: 0x100,
	}
	for f, v := range want {
		if uint32(f) != v {
			t.Errorf("%v = %#x, want %#x", f, uint32(f), v)
		}
	}
}

func TestFlagsValidate(t *testing.T) {
	if err := AllFlags.Validate(); err != nil {
		t.Errorf("AllFlags.Validate() = %v", err)
	}
	err := Flags(0x200).Validate()
	if !errors.Is(err, ErrInvalidFlags) {
		t.Errorf("Validate() = %v, want ErrInvalidFlags", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Code: ErrDanglingMeta, Desc: "Dangling meta character '*'", Pattern: "a\t*", Index: 2}
	want := "Dangling meta character '*' near index 2\na\t*\n \t^"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrDanglingMeta) {
		t.Error("errors.Is(err, ErrDanglingMeta) = false")
	}
	if errors.Is(err, ErrUnclosedGroup) {
		t.Error("errors.Is(err, ErrUnclosedGroup) = true")
	}

	noCaret := &Error{Code: ErrUnclosedGroup, Desc: "Unclosed group", Pattern: "(a", Index: 2}
	if got := noCaret.Error(); strings.Contains(got, "^") {
		t.Errorf("index at end of pattern should not draw a caret: %q", got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", `\Q\E`},
		{"a.b", `\Qa.b\E`},
		{`a\Eb`, `\Qa\E\\E\Qb\E`},
		{`\E`, `\Q\E\\E\Q\E`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteMeta(t *testing.T) {
	if got, want := QuoteMeta("a.b*c d"), `a\.b\*c\ d`; got != want {
		t.Errorf("QuoteMeta() = %q, want %q", got, want)
	}
	if got := QuoteMeta("héllo"); got != "héllo" {
		t.Errorf("QuoteMeta() = %q", got)
	}
}

func TestRemoveQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`abc`, `abc`},
		{`\Qa.b\E`, `a\.b`},
		{`x\Q*+\Ey`, `x\*\+y`},
		{`\Q1\E`, `\x31`},
		{`\Q12\E`, `\x312`},
		{`\Qab`, `ab`},
		{`\Qa\b\E`, `a\\b`},
		{`\d\Q.\E\w`, `\d\.\w`},
		{`\Qé\E`, `é`},
	}
	for _, tt := range tests {
		got := string(RemoveQuotes([]rune(tt.in)))
		if got != tt.want {
			t.Errorf("RemoveQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"\u00e9", "(?:\u00e9|e\u0301)"},
		{"e\u0301", "(?:e\u0301|\u00e9)"},
		{"x\u00e9+", "x(?:\u00e9|e\u0301)+"},
		{"[e\u0301]", "[\u00e9]"},
		{"\u4e2d", "\u4e2d"},
	}
	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPropertyLookup(t *testing.T) {
	tests := []struct {
		name   string
		lookup func() Predicate
		yes    []rune
		no     []rune
	}{
		{"Lu", func() Predicate { return ForProperty("Lu", false) }, []rune{'A', 'Ä'}, []rune{'a', '1'}},
		{"Lu_ci", func() Predicate { return ForProperty("Lu", true) }, []rune{'A', 'a'}, []rune{'1'}},
		{"L", func() Predicate { return ForProperty("L", false) }, []rune{'a', 'ж'}, []rune{'1'}},
		{"Cn", func() Predicate { return ForProperty("Cn", false) }, []rune{0x0378}, []rune{'a'}},
		{"Punct", func() Predicate { return ForProperty("Punct", false) }, []rune{'!', '~'}, []rune{'a', '¡'}},
		{"javaLowerCase", func() Predicate { return ForProperty("javaLowerCase", false) }, []rune{'a', 'ß'}, []rune{'A'}},
		{"javaMirrored", func() Predicate { return ForProperty("javaMirrored", false) }, []rune{'(', ']', '\u2264', '\U0001D6DB'}, []rune{'a', '-', '|'}},
		{"Alphabetic", func() Predicate { return ForUnicodeProperty("alphabetic", false) }, []rune{'a', 'Ⅻ'}, []rune{'1'}},
		{"White_Space", func() Predicate { return ForUnicodeProperty("WHITE_SPACE", false) }, []rune{' ', 0x2028}, []rune{'x'}},
		{"posix_upper", func() Predicate { return ForPOSIXName("Upper", false) }, []rune{'Ä'}, []rune{'ä'}},
		{"Latin", func() Predicate { return ForScript("latin") }, []rune{'a', 'é'}, []rune{'ж'}},
		{"Latn", func() Predicate { return ForScript("Latn") }, []rune{'a'}, []rune{'ж'}},
		{"Greek_block", func() Predicate { return ForBlock("Greek") }, []rune{'α'}, []rune{'a'}},
		{"basic_latin", func() Predicate { return ForBlock("Basic Latin") }, []rune{'a'}, []rune{'é'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.lookup()
			if p == nil {
				t.Fatal("lookup returned nil")
			}
			for _, r := range tt.yes {
				if !p(r) {
					t.Errorf("%q not accepted", r)
				}
			}
			for _, r := range tt.no {
				if p(r) {
					t.Errorf("%q accepted", r)
				}
			}
		})
	}
}

func TestUnknownProperties(t *testing.T) {
	if ForProperty("NoSuch", false) != nil {
		t.Error("ForProperty(NoSuch) != nil")
	}
	if ForScript("Klingon") != nil {
		t.Error("ForScript(Klingon) != nil")
	}
	if ForBlock("NoSuchBlock") != nil {
		t.Error("ForBlock(NoSuchBlock) != nil")
	}
}

func TestPredefinedClasses(t *testing.T) {
	var got []string
	for _, r := range "a_1 \u00a0\u0663" {
		var classes []string
		if ASCIIWord(r) {
			classes = append(classes, "w")
		}
		if Word(r) {
			classes = append(classes, "W")
		}
		if ASCIIDigit(r) {
			classes = append(classes, "d")
		}
		if Digit(r) {
			classes = append(classes, "D")
		}
		if ASCIISpace(r) {
			classes = append(classes, "s")
		}
		if HorizWS(r) {
			classes = append(classes, "h")
		}
		got = append(got, strings.Join(classes, ""))
	}
	want := []string{"wW", "wW", "wWdD", "sh", "h", "WD"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("class membership mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupRune(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		{"LATIN SMALL LETTER A", 'a', true},
		{"latin small letter a", 'a', true},
		{"GREEK SMALL LETTER ALPHA", 'α', true},
		{"SPACE", ' ', true},
		{"NO SUCH CHARACTER", 0, false},
	}
	for _, tt := range tests {
		got, ok := LookupRune(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LookupRune(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
