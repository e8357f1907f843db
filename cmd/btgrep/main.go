// Command btgrep recursively searches files for lines matching a
// Java-style regular expression.
package main

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/coregx/btregex"
)

var cli struct {
	Pattern string   `arg:"" optional:"" name:"pattern" help:"Regex pattern to use in search. With --rules it is read as the first path." type:"string"`
	Paths   []string `arg:"" optional:"" name:"path" help:"Paths to search" type:"path"`

	IgnoreCase   bool   `short:"i" help:"Case-insensitive matching, Unicode aware."`
	Multiline    bool   `short:"m" help:"^ and $ match at line terminators."`
	DotAll       bool   `short:"s" name:"dotall" help:". matches line terminators."`
	Comments     bool   `short:"x" help:"Permit whitespace and # comments in the pattern."`
	Literal      bool   `short:"F" help:"Treat the pattern as a literal string."`
	UnicodeClass bool   `short:"U" name:"unicode-class" help:"Unicode versions of \\w, \\d, \\s and POSIX classes."`
	CanonEq      bool   `name:"canon-eq" help:"Match canonically equivalent characters."`
	Count        bool   `short:"c" help:"Print only the number of matching lines per file."`
	OnlyMatching bool   `short:"o" name:"only-matching" help:"Print only the matched parts of lines."`
	Rules        string `name:"rules" help:"YAML file of named patterns to apply instead of PATTERN." type:"existingfile"`
	NoColor      bool   `name:"no-color" help:"Disable colored output."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("btgrep"),
		kong.Description("Recursively searches paths for lines matching a regex pattern."),
		kong.UsageOnError(),
	)
	log.SetFlags(0)

	if cli.NoColor {
		color.NoColor = true
	}

	var rules []rule
	paths := cli.Paths
	if cli.Rules != "" {
		var err error
		rules, err = loadRules(cli.Rules)
		if err != nil {
			log.Fatalf("%s: %v", cli.Rules, err)
		}
		if cli.Pattern != "" {
			paths = append([]string{cli.Pattern}, paths...)
		}
	} else {
		if cli.Pattern == "" {
			log.Fatalf("missing pattern")
		}
		p, err := btregex.CompileFlags(cli.Pattern, cliFlags())
		if err != nil {
			log.Fatalf("failed to build regex: %v", err)
		}
		rules = []rule{{Match: p}}
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	s := newSearcher(os.Stdout, rules, options{count: cli.Count, onlyMatching: cli.OnlyMatching})
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}

		if info.IsDir() {
			err = recursivelySearchDir(path, s)
		} else {
			err = s.searchFile(path)
		}

		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	if s.matchedLines == 0 {
		os.Exit(1)
	}
}

func cliFlags() btregex.Flags {
	var f btregex.Flags
	if cli.IgnoreCase {
		f |= btregex.CaseInsensitive | btregex.UnicodeCase
	}
	if cli.Multiline {
		f |= btregex.Multiline
	}
	if cli.DotAll {
		f |= btregex.DotAll
	}
	if cli.Comments {
		f |= btregex.Comments
	}
	if cli.Literal {
		f |= btregex.Literal
	}
	if cli.UnicodeClass {
		f |= btregex.UnicodeCharacterClass
	}
	if cli.CanonEq {
		f |= btregex.CanonEq
	}
	return f
}

func recursivelySearchDir(root string, s *searcher) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// symlinks may be broken or point to a directory, in which
			// case we just ignore them
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				return nil
			}
		}

		return s.searchFile(path)
	})
}
