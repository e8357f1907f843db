package prefilter

import "github.com/coregx/btregex/simd"

// DigitPrefilter finds the next ASCII digit. It serves patterns that start
// with \d (without UNICODE_CHARACTER_CLASS) or [0-9], where literal
// extraction would produce ten single-byte alternatives.
type DigitPrefilter struct{}

// NewDigit returns a DigitPrefilter.
func NewDigit() *DigitPrefilter {
	return &DigitPrefilter{}
}

// Find returns the position of the first ASCII digit at or after start.
func (p *DigitPrefilter) Find(haystack []byte, start int) int {
	if !clampStart(haystack, start) {
		return -1
	}
	if i := simd.MemchrDigit(haystack[start:]); i >= 0 {
		return start + i
	}
	return -1
}

// IsComplete is false: a digit is only the first character of a match.
func (p *DigitPrefilter) IsComplete() bool { return false }

// LiteralLen is 0: the match length is not known from the digit alone.
func (p *DigitPrefilter) LiteralLen() int { return 0 }

func (p *DigitPrefilter) String() string { return "digit" }
