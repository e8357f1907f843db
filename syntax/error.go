package syntax

import (
	"strconv"
	"strings"
)

// ErrorCode classifies a syntax error. Every *Error unwraps to its code, so
// callers can test for a class of failure with errors.Is:
//
//	if errors.Is(err, syntax.ErrUnclosedGroup) { ... }
type ErrorCode string

// Error implements the error interface.
func (c ErrorCode) Error() string {
	return string(c)
}

// Error codes.
const (
	ErrUnclosedGroup          ErrorCode = "Unclosed group"
	ErrUnmatchedParen         ErrorCode = "Unmatched closing ')'"
	ErrDanglingMeta           ErrorCode = "Dangling meta character"
	ErrIllegalRepetition      ErrorCode = "Illegal repetition"
	ErrIllegalRepetitionRange ErrorCode = "Illegal repetition range"
	ErrUnclosedCountedClosure ErrorCode = "Unclosed counted closure"
	ErrUnclosedCharClass      ErrorCode = "Unclosed character class"
	ErrBadClassSyntax         ErrorCode = "Bad class syntax"
	ErrIllegalCharRange       ErrorCode = "Illegal character range"
	ErrIllegalEscape          ErrorCode = "Illegal/unsupported escape sequence"
	ErrUnboundedLookbehind    ErrorCode = "Look-behind group does not have an obvious maximum length"
	ErrUnknownProperty        ErrorCode = "Unknown character property"
	ErrCharFamily             ErrorCode = "Malformed character family"
	ErrDuplicateGroupName     ErrorCode = "Duplicate named capturing group"
	ErrUnknownGroupName       ErrorCode = "Unknown named capturing group"
	ErrBadGroupName           ErrorCode = "Bad named capturing group"
	ErrUnknownGroupType       ErrorCode = "Unknown group type"
	ErrUnknownInlineModifier  ErrorCode = "Unknown inline modifier"
	ErrUnexpectedChar         ErrorCode = "Unexpected character"
	ErrInternal               ErrorCode = "Unexpected internal error"
	ErrInvalidFlags           ErrorCode = "Unknown flag bits"
)

// Error is a pattern syntax error. Desc is the detailed description, Pattern
// the pattern text as parsed and Index the code point offset of the
// offending construct, or -1 when no single position is to blame.
type Error struct {
	Code    ErrorCode
	Desc    string
	Pattern string
	Index   int
}

// Error renders the description, the index, the pattern and, when the
// index points inside the pattern, a caret line under it.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Desc)
	if e.Index >= 0 {
		sb.WriteString(" near index ")
		sb.WriteString(strconv.Itoa(e.Index))
	}
	if e.Pattern == "" && e.Index < 0 {
		return sb.String()
	}
	sb.WriteByte('\n')
	sb.WriteString(e.Pattern)
	runes := []rune(e.Pattern)
	if e.Index >= 0 && e.Index < len(runes) {
		sb.WriteByte('\n')
		for _, r := range runes[:e.Index] {
			if r == '\t' {
				sb.WriteByte('\t')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('^')
	}
	return sb.String()
}

// Unwrap returns the error code.
func (e *Error) Unwrap() error {
	return e.Code
}
