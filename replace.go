package btregex

import (
	"fmt"
	"strings"
)

// AppendReplacement writes the input between the previous append position
// and the current match to sb, followed by the expanded template, and moves
// the append position past the match.
//
// In template, $n refers to group n. Digits after the first are consumed
// only while the number stays a valid group. ${name} refers to a named
// group. A backslash makes the next character literal. Groups that did not
// participate expand to nothing.
//
// Nothing is written when the template is malformed.
func (m *Matcher) AppendReplacement(sb *strings.Builder, template string) error {
	if !m.matched() {
		return ErrNoMatch
	}
	var expanded strings.Builder
	if err := m.expand(&expanded, template); err != nil {
		return err
	}
	start, _ := m.m.Group(0)
	end := m.m.Last()
	sb.WriteString(m.m.Text()[m.appendPos:start])
	sb.WriteString(expanded.String())
	m.appendPos = end
	return nil
}

// AppendTail writes the input after the append position to sb.
func (m *Matcher) AppendTail(sb *strings.Builder) *strings.Builder {
	sb.WriteString(m.m.Text()[m.appendPos:])
	return sb
}

// ReplaceAll resets the matcher and replaces every match with the expanded
// template.
func (m *Matcher) ReplaceAll(template string) (string, error) {
	m.Reset()
	if !m.Find() {
		return m.m.Text(), nil
	}
	var sb strings.Builder
	for {
		if err := m.AppendReplacement(&sb, template); err != nil {
			return "", err
		}
		if !m.Find() {
			break
		}
	}
	m.AppendTail(&sb)
	return sb.String(), nil
}

// ReplaceFirst resets the matcher and replaces the first match with the
// expanded template.
func (m *Matcher) ReplaceFirst(template string) (string, error) {
	m.Reset()
	if !m.Find() {
		return m.m.Text(), nil
	}
	var sb strings.Builder
	if err := m.AppendReplacement(&sb, template); err != nil {
		return "", err
	}
	m.AppendTail(&sb)
	return sb.String(), nil
}

// ReplaceAllFunc resets the matcher and replaces every match with fn's
// result for it. The result is inserted literally.
func (m *Matcher) ReplaceAllFunc(fn func(MatchResult) string) string {
	m.Reset()
	text := m.m.Text()
	var sb strings.Builder
	for m.Find() {
		start, _ := m.m.Group(0)
		sb.WriteString(text[m.appendPos:start])
		sb.WriteString(fn(m.snapshot()))
		m.appendPos = m.m.Last()
	}
	m.AppendTail(&sb)
	return sb.String()
}

// QuoteReplacement returns a template that expands to s literally.
func QuoteReplacement(s string) string {
	if !strings.ContainsAny(s, `\$`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '$' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func (m *Matcher) expand(sb *strings.Builder, template string) error {
	text := m.m.Text()
	groupCount := m.GroupCount()
	for i := 0; i < len(template); {
		c := template[i]
		switch c {
		case '\\':
			i++
			if i == len(template) {
				return fmt.Errorf("%w: character to be escaped is missing", ErrIllegalTemplate)
			}
			sb.WriteByte(template[i])
			i++
		case '$':
			i++
			if i == len(template) {
				return fmt.Errorf("%w: group index is missing", ErrIllegalTemplate)
			}
			var g int
			if template[i] == '{' {
				i++
				j := i
				for j < len(template) && isASCIIAlnum(template[j]) {
					j++
				}
				if j == i {
					return fmt.Errorf("%w: named capturing group has 0 length name", ErrIllegalTemplate)
				}
				if j == len(template) || template[j] != '}' {
					return fmt.Errorf("%w: named capturing group is missing trailing '}'", ErrIllegalTemplate)
				}
				name := template[i:j]
				if name[0] >= '0' && name[0] <= '9' {
					return fmt.Errorf("%w: capturing group name {%s} starts with digit character", ErrIllegalTemplate, name)
				}
				idx, ok := m.pattern.prog.GroupIndex(name)
				if !ok {
					return fmt.Errorf("%w: no group with name {%s}", ErrNoSuchGroup, name)
				}
				g = idx
				i = j + 1
			} else {
				d := template[i]
				if d < '0' || d > '9' {
					return fmt.Errorf("%w: illegal group reference", ErrIllegalTemplate)
				}
				g = int(d - '0')
				if g > groupCount {
					return fmt.Errorf("%w: no group %d", ErrNoSuchGroup, g)
				}
				i++
				for i < len(template) {
					d := template[i]
					if d < '0' || d > '9' {
						break
					}
					next := g*10 + int(d-'0')
					if next > groupCount {
						break
					}
					g = next
					i++
				}
			}
			if s, e := m.m.Group(g); s >= 0 && e >= 0 {
				sb.WriteString(text[s:e])
			}
		default:
			j := i + 1
			for j < len(template) && template[j] != '\\' && template[j] != '$' {
				j++
			}
			sb.WriteString(template[i:j])
			i = j
		}
	}
	return nil
}

func isASCIIAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
