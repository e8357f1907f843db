package btregex

import (
	"errors"
	"strings"
	"testing"
)

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		input    string
		template string
		want     string
	}{
		{"groups", `(\w+)@(\w+)`, "joe@home, ann@work", "$2 at $1", "home at joe, work at ann"},
		{"named groups", `(?<first>\w+) (?<last>\w+)`, "John Smith", "${last}, ${first}", "Smith, John"},
		{"whole match", `\d+`, "a1b22", "<$0>", "a<1>b<22>"},
		{"escaped dollar", `\d+`, "cost 5", `\$$0`, "cost $5"},
		{"escaped backslash", `x`, "axb", `\\`, `a\b`},
		{"greedy group number", `(a)`, "a", "$10", "a0"},
		{"unmatched group", `(a)|(b)`, "ab", "[$1$2]", "[a][b]"},
		{"empty matches", `x*`, "abc", "-", "-a-b-c-"},
		{"no match", `z`, "abc", "-", "abc"},
		{"unicode", `é`, "café é", "e", "cafe e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustCompile(tt.pattern).ReplaceAllString(tt.input, tt.template)
			if err != nil {
				t.Fatalf("ReplaceAllString() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReplaceAllString(%q, %q) = %q, want %q", tt.input, tt.template, got, tt.want)
			}
		})
	}
}

func TestReplaceFirst(t *testing.T) {
	p := MustCompile(`o`)
	got, err := p.ReplaceFirstString("foo", "0")
	if err != nil {
		t.Fatal(err)
	}
	if got != "f0o" {
		t.Errorf("ReplaceFirstString() = %q, want f0o", got)
	}
	got, err = p.ReplaceFirstString("bar", "0")
	if err != nil || got != "bar" {
		t.Errorf("ReplaceFirstString() without match = %q, %v", got, err)
	}
}

func TestReplaceTemplateErrors(t *testing.T) {
	tests := []struct {
		template string
		want     error
	}{
		{"$", ErrIllegalTemplate},
		{`\`, ErrIllegalTemplate},
		{"$x", ErrIllegalTemplate},
		{"${}", ErrIllegalTemplate},
		{"${name", ErrIllegalTemplate},
		{"${1a}", ErrIllegalTemplate},
		{"$2", ErrNoSuchGroup},
		{"${nope}", ErrNoSuchGroup},
	}
	p := MustCompile(`(?<name>a)`)
	for _, tt := range tests {
		_, err := p.ReplaceAllString("xa", tt.template)
		if !errors.Is(err, tt.want) {
			t.Errorf("template %q: error = %v, want %v", tt.template, err, tt.want)
		}
	}
}

func TestAppendReplacement(t *testing.T) {
	m := MustCompile(`cat`).Matcher("one cat two cats in the yard")
	var sb strings.Builder
	for m.Find() {
		if err := m.AppendReplacement(&sb, "dog"); err != nil {
			t.Fatal(err)
		}
	}
	m.AppendTail(&sb)
	if got := sb.String(); got != "one dog two dogs in the yard" {
		t.Errorf("result = %q", got)
	}

	// A malformed template writes nothing.
	m.Reset()
	m.Find()
	sb.Reset()
	if err := m.AppendReplacement(&sb, "$9"); err == nil {
		t.Fatal("expected an error")
	}
	if sb.Len() != 0 {
		t.Errorf("builder holds %q after a failed append", sb.String())
	}
}

func TestReplaceAllFunc(t *testing.T) {
	p := MustCompile(`(\d)(\d)?`)
	got := p.ReplaceAllStringFunc("a12b3", func(r MatchResult) string {
		second, ok, _ := r.GroupN(2)
		if !ok {
			return "$1"
		}
		return second
	})
	if got != "a2b$1" {
		t.Errorf("ReplaceAllStringFunc() = %q, want a2b$1", got)
	}
}

func TestQuoteReplacement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"$1", `\$1`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		if got := QuoteReplacement(tt.in); got != tt.want {
			t.Errorf("QuoteReplacement(%q) = %q, want %q", tt.in, got, tt.want)
		}
		got, err := MustCompile(`x`).ReplaceAllString("x", QuoteReplacement(tt.in))
		if err != nil || got != tt.in {
			t.Errorf("replacing with QuoteReplacement(%q) = %q, %v", tt.in, got, err)
		}
	}
}
