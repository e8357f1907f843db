package prefilter

import (
	"testing"

	"github.com/coregx/btregex/literal"
)

func seqOf(complete bool, lits ...string) *literal.Seq {
	s := literal.NewSeq()
	for _, l := range lits {
		s.Add(literal.NewLiteral([]byte(l), complete))
	}
	return s
}

func TestNewSelectsStrategy(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
		want string
	}{
		{"nil", nil, ""},
		{"empty", literal.NewSeq(), ""},
		{"has_empty_literal", seqOf(true, "abc", ""), ""},
		{"single_byte", seqOf(true, "a"), "memchr"},
		{"single_literal", seqOf(true, "hello"), "memmem"},
		{"minimizes_to_one", seqOf(true, "foo", "foobar"), "memmem"},
		{"two_bytes", seqOf(true, "a", "b"), "memchr2"},
		{"three_bytes", seqOf(true, "a", "b", "c"), "memchr3"},
		{"four_bytes", seqOf(true, "a", "b", "c", "d"), "aho-corasick"},
		{"words", seqOf(true, "cat", "dog"), "aho-corasick"},
		{"too_many", seqOf(true, "a1", "b2", "c3", "d4", "e5"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := New(tt.seq, 4)
			got := ""
			if pf != nil {
				got = pf.String()
			}
			if got != tt.want {
				t.Errorf("New() strategy = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefilterFind(t *testing.T) {
	tests := []struct {
		name     string
		seq      *literal.Seq
		haystack string
		start    int
		want     int
	}{
		{"memchr", seqOf(true, "x"), "abcxdefx", 0, 3},
		{"memchr_from", seqOf(true, "x"), "abcxdefx", 4, 7},
		{"memchr_none", seqOf(true, "x"), "abcdef", 0, -1},
		{"memmem", seqOf(true, "def"), "abcdefdef", 0, 3},
		{"memmem_from", seqOf(true, "def"), "abcdefdef", 4, 6},
		{"memchr2", seqOf(true, "q", "z"), "abzq", 0, 2},
		{"memchr3", seqOf(true, "q", "z", "y"), "abcyq", 0, 3},
		{"aho", seqOf(true, "cat", "dog"), "hotdog cat", 0, 3},
		{"aho_from", seqOf(true, "cat", "dog"), "hotdog cat", 4, 7},
		{"aho_none", seqOf(true, "cat", "dog"), "hot cow", 0, -1},
		{"start_past_end", seqOf(true, "a"), "aaa", 3, -1},
		{"negative_start", seqOf(true, "a"), "aaa", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := New(tt.seq, 64)
			if pf == nil {
				t.Fatal("New() = nil")
			}
			if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
				t.Errorf("Find(%q, %d) = %d, want %d", tt.haystack, tt.start, got, tt.want)
			}
		})
	}
}

func TestPrefilterComplete(t *testing.T) {
	if pf := New(seqOf(true, "abc"), 64); !pf.IsComplete() {
		t.Error("complete literal reported incomplete")
	}
	if pf := New(seqOf(false, "abc"), 64); pf.IsComplete() {
		t.Error("prefix literal reported complete")
	}
	if pf := New(seqOf(true, "cat", "dog"), 64); !pf.IsComplete() {
		t.Error("complete alternation reported incomplete")
	}
}

func TestPrefilterLiteralLen(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
		want int
	}{
		{"memchr", seqOf(true, "x"), 1},
		{"memchr_prefix", seqOf(false, "x"), 0},
		{"memmem", seqOf(true, "hello"), 5},
		{"memmem_prefix", seqOf(false, "hello"), 0},
		{"absorbed", seqOf(true, "foo", "foobar"), 0},
		{"memchr3", seqOf(true, "a", "b", "c"), 1},
		{"aho_same_length", seqOf(true, "cat", "dog"), 3},
		{"aho_mixed_length", seqOf(true, "cat", "horse"), 0},
		{"aho_prefix", seqOf(false, "cat", "dog"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := New(tt.seq, 64)
			if pf == nil {
				t.Fatal("New() = nil")
			}
			if got := pf.LiteralLen(); got != tt.want {
				t.Errorf("%s LiteralLen() = %d, want %d", pf, got, tt.want)
			}
		})
	}
	if got := NewDigit().LiteralLen(); got != 0 {
		t.Errorf("digit LiteralLen() = %d, want 0", got)
	}
}

func TestDigitPrefilter(t *testing.T) {
	pf := NewDigit()
	tests := []struct {
		haystack string
		start    int
		want     int
	}{
		{"abc", 0, -1},
		{"a1b2", 0, 1},
		{"a1b2", 2, 3},
		{"a1b2", 4, -1},
	}
	for _, tt := range tests {
		if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
			t.Errorf("Find(%q, %d) = %d, want %d", tt.haystack, tt.start, got, tt.want)
		}
	}
	if pf.IsComplete() {
		t.Error("digit prefilter reported complete")
	}
}
