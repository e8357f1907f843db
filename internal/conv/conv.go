// Package conv provides checked integer conversions for the match engine.
//
// Positions in the input are plain ints, while the memo sets store them as
// uint32. A position that does not fit is a programming error (inputs larger
// than 4 GiB are not supported by the memo sets), so the helpers panic.
package conv

import "math"

// IntToUint32 converts a non-negative int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms do not overflow the constant.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
