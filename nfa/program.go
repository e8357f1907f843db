package nfa

import (
	"maps"

	"github.com/coregx/btregex/syntax"
)

// Options tunes compilation.
type Options struct {
	// EnablePrefilter allows a literal prefilter as the search root when
	// every match starts with one of a small set of literals.
	EnablePrefilter bool

	// BoyerMooreMinLen is the minimum byte length of a leading exact
	// literal for the Boyer-Moore search root.
	BoyerMooreMinLen int

	// EnableMemoization lets unbounded top-level loops remember positions
	// where their body failed. It is ignored for patterns with
	// backreferences.
	EnableMemoization bool

	// MaxLiterals caps the literal set handed to the prefilter.
	MaxLiterals int
}

// DefaultOptions returns the default compile options.
func DefaultOptions() Options {
	return Options{
		EnablePrefilter:   true,
		BoyerMooreMinLen:  4,
		EnableMemoization: true,
		MaxLiterals:       64,
	}
}

// Program is a compiled pattern. It is immutable and safe to share between
// goroutines; all match state lives in a Machine.
type Program struct {
	pattern string
	flags   syntax.Flags

	root      node
	matchRoot node

	// groupCount counts capture groups including group 0.
	groupCount int
	localCount int
	memoCount  int

	names     map[string]int
	groupName []string

	hasBackRef bool
	minLength  int
	strategy   string
}

// Pattern returns the source pattern.
func (p *Program) Pattern() string { return p.pattern }

// Flags returns the compile flags.
func (p *Program) Flags() syntax.Flags { return p.flags }

// NumCaptures returns the number of capturing groups, not counting group 0.
func (p *Program) NumCaptures() int { return p.groupCount - 1 }

// GroupIndex returns the number of the group called name.
func (p *Program) GroupIndex(name string) (int, bool) {
	g, ok := p.names[name]
	return g, ok
}

// GroupNames returns a copy of the name to group number mapping.
func (p *Program) GroupNames() map[string]int {
	return maps.Clone(p.names)
}

// SubexpNames returns the name of every group indexed by group number;
// unnamed groups and group 0 have the empty name.
func (p *Program) SubexpNames() []string {
	out := make([]string, len(p.groupName))
	copy(out, p.groupName)
	return out
}

// HasBackRef reports whether the pattern contains backreferences.
func (p *Program) HasBackRef() bool { return p.hasBackRef }

// MinLength returns the minimum number of characters in a match.
func (p *Program) MinLength() int { return p.minLength }

// MemoizedLoops returns the number of loops that memoize failures.
func (p *Program) MemoizedLoops() int { return p.memoCount }

// Strategy names the search root chosen for the pattern: "start",
// "anchored", "boyer-moore" or "prefilter/<kind>".
func (p *Program) Strategy() string { return p.strategy }
