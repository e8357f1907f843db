package simd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   byte
		want     int
	}{
		{"empty", "", 'a', -1},
		{"single_match", "a", 'a', 0},
		{"single_no_match", "a", 'b', -1},
		{"first", "hello", 'h', 0},
		{"middle", "hello", 'l', 2},
		{"last", "hello", 'o', 4},
		{"absent", "hello", 'x', -1},
		{"nul", "ab\x00cd", 0, 2},
		{"high_byte", "abc\xffdef", 0xff, 3},
		{"past_first_word", "the quick brown fox jumps over the lazy dog", 'z', 37},
		{"long_tail", strings.Repeat("a", 100) + "b", 'b', 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Memchr([]byte(tt.haystack), tt.needle)
			if got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
			if swar := memchrSWAR([]byte(tt.haystack), tt.needle); swar != tt.want {
				t.Errorf("memchrSWAR(%q, %q) = %d, want %d", tt.haystack, tt.needle, swar, tt.want)
			}
		})
	}
}

// TestMemchrSWARAgainstStdlib checks every needle position across word
// boundaries, including the bytes where the zero-byte trick can misfire.
func TestMemchrSWARAgainstStdlib(t *testing.T) {
	for size := 0; size < 40; size++ {
		for pos := 0; pos < size; pos++ {
			hay := bytes.Repeat([]byte{0x01}, size)
			hay[pos] = 0x00
			if got, want := memchrSWAR(hay, 0x00), bytes.IndexByte(hay, 0x00); got != want {
				t.Fatalf("size=%d pos=%d: got %d, want %d", size, pos, got, want)
			}
			if got, want := memchrSWAR(hay, 0x01), bytes.IndexByte(hay, 0x01); got != want {
				t.Fatalf("size=%d pos=%d needle=1: got %d, want %d", size, pos, got, want)
			}
		}
	}
}

func TestMemchr2(t *testing.T) {
	tests := []struct {
		haystack string
		n1, n2   byte
		want     int
	}{
		{"", 'a', 'b', -1},
		{"xyz", 'a', 'b', -1},
		{"xyzb", 'a', 'b', 3},
		{"xaybz", 'b', 'a', 1},
		{strings.Repeat("-", 17) + "b" + "a", 'a', 'b', 17},
	}
	for _, tt := range tests {
		if got := Memchr2([]byte(tt.haystack), tt.n1, tt.n2); got != tt.want {
			t.Errorf("Memchr2(%q, %q, %q) = %d, want %d", tt.haystack, tt.n1, tt.n2, got, tt.want)
		}
	}
}

func TestMemchr3(t *testing.T) {
	tests := []struct {
		haystack   string
		n1, n2, n3 byte
		want       int
	}{
		{"", 'a', 'b', 'c', -1},
		{"xyz", 'a', 'b', 'c', -1},
		{"xyzc", 'a', 'b', 'c', 3},
		{strings.Repeat(".", 9) + "cba", 'a', 'b', 'c', 9},
		{strings.Repeat(".", 30) + "a", 'a', 'b', 'c', 30},
	}
	for _, tt := range tests {
		if got := Memchr3([]byte(tt.haystack), tt.n1, tt.n2, tt.n3); got != tt.want {
			t.Errorf("Memchr3(%q) = %d, want %d", tt.haystack, got, tt.want)
		}
	}
}

func TestMemchrDigit(t *testing.T) {
	tests := []struct {
		haystack string
		want     int
	}{
		{"", -1},
		{"no digits here", -1},
		{"Server at 192.168.1.1", 10},
		{"9", 0},
		{"abcdefgh0", 8},
		{"/:/:/:/:/:/:/:/:5", 16},
		{"\xb0\xb9\xc0\xff\x80\x8f\x90\xaa7", 8},
	}
	for _, tt := range tests {
		if got := MemchrDigit([]byte(tt.haystack)); got != tt.want {
			t.Errorf("MemchrDigit(%q) = %d, want %d", tt.haystack, got, tt.want)
		}
	}
}

func TestMemchrRangeExhaustive(t *testing.T) {
	for b := 0; b < 256; b++ {
		hay := []byte("........" + string([]byte{byte(b)}) + "........")
		want := -1
		if b >= '0' && b <= '9' {
			want = 8
		}
		if got := MemchrDigit(hay); got != want {
			t.Errorf("byte 0x%02x: got %d, want %d", b, got, want)
		}
	}
}
