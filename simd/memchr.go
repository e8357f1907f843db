package simd

import "bytes"

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if vectorized && len(haystack) >= minVectorLen {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// Memchr2 returns the index of the first byte in haystack equal to either
// needle1 or needle2, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2SWAR(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first byte in haystack equal to any of
// the three needles, or -1 if none is present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3SWAR(haystack, needle1, needle2, needle3)
}

// MemchrDigit returns the index of the first ASCII digit [0-9] in haystack,
// or -1 if there is none.
//
// Example:
//
//	pos := simd.MemchrDigit([]byte("Server at 192.168.1.1"))
//	// pos == 10
func MemchrDigit(haystack []byte) int {
	return memchrRangeSWAR(haystack, '0', '9')
}
