package syntax

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// canonMeta are the characters that pass through canonicalization as
// structure rather than being grouped with a following combining mark.
const canonMeta = `.$|()[]{}^?*+\`

// Canonicalize rewrites pattern for CanonEq matching. Outside character
// classes, ASCII runs are copied verbatim and every non-ASCII character
// together with its combining marks becomes an alternation of its original,
// NFD and NFC spellings. Character classes are normalized to NFC. Matching
// the result with the ordinary engine then accepts any canonically
// equivalent spelling of the pattern's characters.
func Canonicalize(pattern string) string {
	var sb strings.Builder
	sb.Grow(len(pattern) * 2)

	depth := 0
	start := 0
	var last byte
	for i := 0; i < len(pattern); {
		c := pattern[i]
		if depth == 0 && c == '\\' && i+1 < len(pattern) && pattern[i+1] == '\\' {
			i += 2
			last = 0
			continue
		}
		switch {
		case c == '[' && last != '\\':
			if depth == 0 {
				if start < i {
					canonSlice(&sb, pattern[start:i])
				}
				start = i
			}
			depth++
		case c == ']' && last != '\\' && depth > 0:
			depth--
			if depth == 0 {
				sb.WriteString(norm.NFC.String(pattern[start : i+1]))
				start = i + 1
			}
		}
		last = c
		i++
	}
	if start < len(pattern) {
		if depth > 0 {
			// Unclosed class: leave it to the parser to report.
			sb.WriteString(pattern[start:])
		} else {
			canonSlice(&sb, pattern[start:])
		}
	}
	return sb.String()
}

func canonSlice(sb *strings.Builder, s string) {
	i := 0
	for i < len(s) && s[i] < utf8.RuneSelf {
		i++
	}
	if i == len(s) {
		sb.WriteString(s)
		return
	}
	// The last ASCII character may be the base of a following combining mark.
	if i > 0 {
		i--
		sb.WriteString(s[:i])
	}
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == '\\' && i+w < len(s) {
			// An escaped character keeps its escape.
			_, ew := utf8.DecodeRuneInString(s[i+w:])
			sb.WriteString(s[i : i+w+ew])
			i += w + ew
			continue
		}
		if r < utf8.RuneSelf && strings.ContainsRune(canonMeta, r) {
			sb.WriteRune(r)
			i += w
			continue
		}
		j := i + w
		for j < len(s) {
			m, mw := utf8.DecodeRuneInString(s[j:])
			if !unicode.Is(unicode.M, m) {
				break
			}
			j += mw
		}
		chunk := s[i:j]
		i = j
		if len(chunk) == 1 {
			sb.WriteString(chunk)
			continue
		}
		alts := []string{chunk}
		for _, form := range []norm.Form{norm.NFD, norm.NFC} {
			alt := form.String(chunk)
			if !slices.Contains(alts, alt) {
				alts = append(alts, alt)
			}
		}
		if len(alts) == 1 {
			sb.WriteString(chunk)
			continue
		}
		sb.WriteString("(?:")
		sb.WriteString(strings.Join(alts, "|"))
		sb.WriteByte(')')
	}
}
