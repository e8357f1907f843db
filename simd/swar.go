package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes returns a word with the high bit set in every byte of v that is
// zero (Hacker's Delight). Only the lowest flagged byte is exact; bytes above
// a true zero may be flagged spuriously, which is harmless because callers
// only ever take the trailing one.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	mask := uint64(needle) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ mask); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func memchr2SWAR(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}

func memchr3SWAR(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	mask1 := uint64(needle1) * lo8
	mask2 := uint64(needle2) * lo8
	mask3 := uint64(needle3) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		z := zeroBytes(chunk^mask1) | zeroBytes(chunk^mask2) | zeroBytes(chunk^mask3)
		if z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 || b == needle3 {
			return i
		}
	}
	return -1
}

// memchrRangeSWAR finds the first byte in [lo, hi], with hi < 0x80.
//
// Adding 0x80-hi-1 to each 7-bit lane sets its high bit exactly when the
// lane is above hi; adding 0x80-lo sets it when the lane is at least lo.
// Bytes with the high bit already set are excluded by the final mask.
func memchrRangeSWAR(haystack []byte, lo, hi byte) int {
	n := len(haystack)
	const low7 = 0x7f7f7f7f7f7f7f7f
	aboveHi := uint64(0x7f-hi) * lo8
	atLeastLo := uint64(0x80-lo) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		lanes := chunk & low7
		in := ((lanes + atLeastLo) &^ (lanes + aboveHi)) &^ chunk & hi8
		if in != 0 {
			return i + bits.TrailingZeros64(in)/8
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b >= lo && b <= hi {
			return i
		}
	}
	return -1
}
