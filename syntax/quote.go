package syntax

import "strings"

// Quote returns a pattern that matches s literally, wrapping it in \Q...\E.
// An embedded \E is emitted as \E\\E\Q so the quote stays open.
func Quote(s string) string {
	if !strings.Contains(s, `\E`) {
		return `\Q` + s + `\E`
	}
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	sb.WriteString(`\Q`)
	for {
		i := strings.Index(s, `\E`)
		if i < 0 {
			break
		}
		sb.WriteString(s[:i])
		sb.WriteString(`\E\\E\Q`)
		s = s[i+2:]
	}
	sb.WriteString(s)
	sb.WriteString(`\E`)
	return sb.String()
}

const metaChars = `\.+*?()|[]{}^$#&-`

// QuoteMeta escapes every metacharacter in s with a backslash. Unlike Quote
// the result stays readable and composes with Comments mode, where
// whitespace is escaped as well.
func QuoteMeta(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	for _, r := range s {
		if r < 0x80 && (strings.ContainsRune(metaChars, r) || isSpace(r)) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// RemoveQuotes rewrites every \Q...\E region of p into escaped form: ASCII
// punctuation gains a backslash, letters and non-ASCII pass through and
// a digit directly after \Q becomes \x3N so it cannot extend a preceding
// escape. An unterminated \Q quotes the rest of the pattern. The input
// slice is returned unchanged if it has no \Q.
func RemoveQuotes(p []rune) []rune {
	n := len(p)
	i := 0
	for i < n-1 {
		if p[i] != '\\' {
			i++
		} else if p[i+1] != 'Q' {
			i += 2
		} else {
			break
		}
	}
	if i >= n-1 {
		return p
	}

	out := make([]rune, i, i+3*(n-i)+2)
	copy(out, p[:i])
	i += 2
	inQuote, beginQuote := true, true
	for i < n {
		c := p[i]
		i++
		switch {
		case c >= 0x80 || isAlpha(c):
			out = append(out, c)
		case isDigit(c):
			if beginQuote {
				out = append(out, '\\', 'x', '3')
			}
			out = append(out, c)
		case c != '\\':
			if inQuote {
				out = append(out, '\\')
			}
			out = append(out, c)
		case inQuote:
			if i < n && p[i] == 'E' {
				i++
				inQuote = false
			} else {
				out = append(out, '\\', '\\')
			}
		default:
			if i < n && p[i] == 'Q' {
				i++
				inQuote, beginQuote = true, true
				continue
			}
			out = append(out, c)
			if i < n {
				out = append(out, p[i])
				i++
			}
		}
		beginQuote = false
	}
	return out
}

func isAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isSpace matches the ASCII whitespace that Comments mode skips.
func isSpace(r rune) bool {
	return r == ' ' || ('\t' <= r && r <= '\r')
}
