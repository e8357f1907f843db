package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
//
// The scan jumps between occurrences of the needle's rarest byte with
// Memchr and verifies the full needle around each one.
//
// Example:
//
//	pos := simd.Memmem([]byte("hello world"), []byte("world"))
//	// pos == 6
func Memmem(haystack, needle []byte) int {
	n, m := len(haystack), len(needle)
	switch {
	case m == 0:
		return 0
	case m > n:
		return -1
	case m == 1:
		return Memchr(haystack, needle[0])
	}

	rare, off := RarestByte(needle)
	last := n - m
	for pos := off; pos <= last+off; {
		j := Memchr(haystack[pos:last+off+1], rare)
		if j < 0 {
			return -1
		}
		start := pos + j - off
		if bytes.Equal(haystack[start:start+m], needle) {
			return start
		}
		pos += j + 1
	}
	return -1
}
