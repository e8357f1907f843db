// Package syntax holds the pieces of pattern syntax that do not depend on
// the node graph: match flags, the PatternSyntaxError type, \Q...\E quoting,
// canonical-equivalence rewriting and the Unicode property tables behind
// \p{...} and the predefined classes.
package syntax

import (
	"strconv"
	"strings"
)

// Flags is a set of match flags. The bit values are part of the wire
// contract: serialized patterns store them as integers.
type Flags uint32

const (
	// UnixLines makes '\n' the only line terminator recognized by ., ^ and $.
	UnixLines Flags = 0x01

	// CaseInsensitive enables ASCII case-insensitive matching. Combine with
	// UnicodeCase for Unicode-aware folding.
	CaseInsensitive Flags = 0x02

	// Comments permits whitespace and #-comments in the pattern.
	Comments Flags = 0x04

	// Multiline makes ^ and $ match at line terminators as well as at the
	// ends of the input.
	Multiline Flags = 0x08

	// Literal treats the whole pattern as a literal string.
	Literal Flags = 0x10

	// DotAll makes . match any character, including line terminators.
	DotAll Flags = 0x20

	// UnicodeCase makes CaseInsensitive fold per the Unicode standard.
	UnicodeCase Flags = 0x40

	// CanonEq matches characters by canonical equivalence.
	CanonEq Flags = 0x80

	// UnicodeCharacterClass selects the Unicode versions of the predefined
	// and POSIX character classes. It implies UnicodeCase.
	UnicodeCharacterClass Flags = 0x100

	// AllFlags is the union of every defined flag.
	AllFlags = UnixLines | CaseInsensitive | Comments | Multiline | Literal |
		DotAll | UnicodeCase | CanonEq | UnicodeCharacterClass
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{UnixLines, "UNIX_LINES"},
	{CaseInsensitive, "CASE_INSENSITIVE"},
	{Comments, "COMMENTS"},
	{Multiline, "MULTILINE"},
	{Literal, "LITERAL"},
	{DotAll, "DOTALL"},
	{UnicodeCase, "UNICODE_CASE"},
	{CanonEq, "CANON_EQ"},
	{UnicodeCharacterClass, "UNICODE_CHARACTER_CLASS"},
}

// Has reports whether every bit of g is set in f.
func (f Flags) Has(g Flags) bool {
	return f&g == g
}

// Validate returns an error if f carries bits outside AllFlags.
func (f Flags) Validate() error {
	if f&^AllFlags != 0 {
		return &Error{Code: ErrInvalidFlags, Desc: string(ErrInvalidFlags), Index: -1}
	}
	return nil
}

// String renders the set as NAME|NAME, or "0" when empty.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if rest := f &^ AllFlags; rest != 0 {
		names = append(names, "0x"+strings.ToUpper(strconv.FormatUint(uint64(rest), 16)))
	}
	return strings.Join(names, "|")
}

// ParseFlags parses the output of Flags.String. Names are case-insensitive
// and may be separated by '|' or ','.
func ParseFlags(s string) (Flags, bool) {
	var f Flags
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, true
	}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToUpper(strings.TrimSpace(part))
		found := false
		for _, fn := range flagNames {
			if fn.name == part {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return f, true
}
