// Package btregex provides a backtracking regular expression engine with
// Java-style pattern syntax for Go.
//
// Unlike the standard library regexp package, btregex supports
// backreferences, lookahead and lookbehind, possessive quantifiers, atomic
// groups, named groups, inline flags, \Q...\E quoting and Unicode
// properties. The price is backtracking: some patterns take exponential
// time on some inputs. Unbounded top-level loops remember failed positions,
// which removes the blowup for the common (a|aa)*b shape.
//
// Basic usage:
//
//	p, err := btregex.Compile(`(?<year>\d{4})-(?<month>\d{2})`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := p.Matcher("released 2024-05")
//	if m.Find() {
//	    year, _, _ := m.GroupName("year")
//	    fmt.Println(year) // "2024"
//	}
//
// A Pattern is immutable and safe for concurrent use. A Matcher holds the
// state of one search and must not be shared between goroutines.
//
// All offsets are byte offsets into the input string. Matching itself
// works on code points, so supplementary characters are never split.
package btregex

import (
	"github.com/coregx/btregex/nfa"
	"github.com/coregx/btregex/syntax"
)

// Flags is a set of match flags.
type Flags = syntax.Flags

// Match flags. The values are stable and appear in serialized patterns.
const (
	UnixLines             = syntax.UnixLines
	CaseInsensitive       = syntax.CaseInsensitive
	Comments              = syntax.Comments
	Multiline             = syntax.Multiline
	Literal               = syntax.Literal
	DotAll                = syntax.DotAll
	UnicodeCase           = syntax.UnicodeCase
	CanonEq               = syntax.CanonEq
	UnicodeCharacterClass = syntax.UnicodeCharacterClass
)

// Pattern is a compiled regular expression.
//
// A Pattern is safe to use concurrently from multiple goroutines. Each
// Matcher created from it carries its own state.
//
// Example:
//
//	p := btregex.MustCompile(`a+b`)
//	fmt.Println(p.Matcher("xaab").Find()) // true
type Pattern struct {
	prog *nfa.Program
}

// Compile compiles a pattern with no flags.
//
// Example:
//
//	p, err := btregex.Compile(`(\w+)@(\w+)\.com`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, 0, DefaultConfig())
}

// CompileFlags compiles a pattern with the given flags.
//
// Example:
//
//	p, err := btregex.CompileFlags(`^hello$`, btregex.CaseInsensitive|btregex.Multiline)
func CompileFlags(pattern string, flags Flags) (*Pattern, error) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := btregex.DefaultConfig()
//	config.EnableMemoization = false
//	p, err := btregex.CompileWithConfig(`(a|b)*c`, 0, config)
func CompileWithConfig(pattern string, flags Flags, config Config) (*Pattern, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	prog, err := nfa.Compile(pattern, flags, config.options())
	if err != nil {
		return nil, err
	}
	return &Pattern{prog: prog}, nil
}

// MustCompile compiles a pattern and panics if it fails.
//
// Example:
//
//	var dateRegex = btregex.MustCompile(`\d{4}-\d{2}-\d{2}`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// Matches compiles regex and reports whether it matches the whole input.
//
// Example:
//
//	ok, err := btregex.Matches(`a*b`, "aaab") // true, nil
func Matches(regex, input string) (bool, error) {
	p, err := Compile(regex)
	if err != nil {
		return false, err
	}
	return p.Matcher(input).Matches(), nil
}

// Quote returns a pattern that matches s literally, wrapping it in \Q...\E.
//
// Example:
//
//	btregex.Quote("1.5") // `\Q1.5\E`
func Quote(s string) string {
	return syntax.Quote(s)
}

// QuoteMeta returns s with every metacharacter escaped by a backslash.
//
// Example:
//
//	btregex.QuoteMeta("[a]") // `\[a\]`
func QuoteMeta(s string) string {
	return syntax.QuoteMeta(s)
}

// Matcher creates a matcher that searches input.
func (p *Pattern) Matcher(input string) *Matcher {
	return newMatcher(p, input)
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.prog.Pattern()
}

// Flags returns the flags the pattern was compiled with.
// UnicodeCharacterClass implies UnicodeCase.
func (p *Pattern) Flags() Flags {
	return p.prog.Flags()
}

// NumSubexp returns the number of capturing groups.
func (p *Pattern) NumSubexp() int {
	return p.prog.NumCaptures()
}

// SubexpNames returns the names of the capturing groups. Index 0 is the
// whole match and unnamed groups have the empty name.
func (p *Pattern) SubexpNames() []string {
	return p.prog.SubexpNames()
}

// SubexpIndex returns the number of the group called name, or -1.
func (p *Pattern) SubexpIndex(name string) int {
	if g, ok := p.prog.GroupIndex(name); ok {
		return g
	}
	return -1
}

// Strategy names the search strategy chosen at compile time, for
// diagnostics: "start", "anchored", "boyer-moore" or "prefilter/<kind>".
func (p *Pattern) Strategy() string {
	return p.prog.Strategy()
}

// MatchString reports whether s contains a match of the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.Matcher(s).Find()
}

// FindAllString returns up to n successive matches in s. If n < 0, it
// returns all of them. It returns nil when there is no match.
//
// Example:
//
//	p := btregex.MustCompile(`\d+`)
//	p.FindAllString("a1 b22 c333", -1) // ["1" "22" "333"]
func (p *Pattern) FindAllString(s string, n int) []string {
	if n == 0 {
		return nil
	}
	var out []string
	m := p.Matcher(s)
	for m.Find() {
		g, _ := m.Group()
		out = append(out, g)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// Split splits input around matches of the pattern.
//
// If limit > 0 there are at most limit pieces and the last one holds the
// rest of the input. If limit == 0 trailing empty strings are dropped. If
// limit < 0 every piece is kept. A zero-width match at the start of input
// never yields a leading empty piece, and input without a match comes back
// as the only element.
//
// Example:
//
//	btregex.MustCompile(`,`).Split("a,b,,", 0) // ["a" "b"]
func (p *Pattern) Split(input string, limit int) []string {
	index := 0
	limited := limit > 0
	var pieces []string
	m := p.Matcher(input)
	for m.Find() {
		start, _ := m.Start()
		end, _ := m.End()
		if !limited || len(pieces) < limit-1 {
			if index == 0 && start == 0 && start == end {
				continue
			}
			pieces = append(pieces, input[index:start])
			index = end
		} else {
			pieces = append(pieces, input[index:])
			index = end
			break
		}
	}
	if index == 0 {
		return []string{input}
	}
	if !limited || len(pieces) < limit {
		pieces = append(pieces, input[index:])
	}
	n := len(pieces)
	if limit == 0 {
		for n > 0 && pieces[n-1] == "" {
			n--
		}
	}
	return pieces[:n]
}

// ReplaceAllString replaces every match in src with the expanded template.
// See Matcher.AppendReplacement for the template syntax.
func (p *Pattern) ReplaceAllString(src, template string) (string, error) {
	return p.Matcher(src).ReplaceAll(template)
}

// ReplaceFirstString replaces the first match in src with the expanded
// template.
func (p *Pattern) ReplaceFirstString(src, template string) (string, error) {
	return p.Matcher(src).ReplaceFirst(template)
}

// ReplaceAllStringFunc replaces every match in src with the return value of
// fn applied to the match. The result is inserted literally.
func (p *Pattern) ReplaceAllStringFunc(src string, fn func(MatchResult) string) string {
	return p.Matcher(src).ReplaceAllFunc(fn)
}
