package btregex

import "github.com/coregx/btregex/nfa"

// Config controls compilation.
//
// Example:
//
//	config := btregex.DefaultConfig()
//	config.EnablePrefilter = false // always try every position
//	p, err := btregex.CompileWithConfig(`foo|bar`, 0, config)
type Config struct {
	// EnablePrefilter lets the search skip to positions where one of the
	// pattern's required leading literals occurs.
	// Default: true
	EnablePrefilter bool

	// BoyerMooreMinLen is the minimum byte length of a pattern that starts
	// with an exact literal for the Boyer-Moore search to be used.
	// Default: 4
	BoyerMooreMinLen int

	// EnableMemoization lets unbounded top-level loops remember positions
	// where they already failed. Patterns with backreferences never
	// memoize.
	// Default: true
	EnableMemoization bool

	// MaxLiterals caps the number of leading literals that still build a
	// prefilter.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	opts := nfa.DefaultOptions()
	return Config{
		EnablePrefilter:   opts.EnablePrefilter,
		BoyerMooreMinLen:  opts.BoyerMooreMinLen,
		EnableMemoization: opts.EnableMemoization,
		MaxLiterals:       opts.MaxLiterals,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - BoyerMooreMinLen: 2 to 256
//   - MaxLiterals: 1 to 1,000 (only checked with EnablePrefilter)
func (c Config) Validate() error {
	if c.BoyerMooreMinLen < 2 || c.BoyerMooreMinLen > 256 {
		return &ConfigError{
			Field:   "BoyerMooreMinLen",
			Message: "must be between 2 and 256",
		}
	}
	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}
	return nil
}

func (c Config) options() nfa.Options {
	return nfa.Options{
		EnablePrefilter:   c.EnablePrefilter,
		BoyerMooreMinLen:  c.BoyerMooreMinLen,
		EnableMemoization: c.EnableMemoization,
		MaxLiterals:       c.MaxLiterals,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}
