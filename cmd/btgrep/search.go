package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/klauspost/compress/zstd"

	"github.com/coregx/btregex"
)

var submatchColors = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

var ruleColor = color.New(color.FgHiBlack)

type options struct {
	count        bool
	onlyMatching bool
}

// searcher prints the lines of its inputs that match any rule.
type searcher struct {
	out      io.Writer
	rules    []rule
	matchers []*btregex.Matcher
	opts     options

	matchedLines int
}

func newSearcher(out io.Writer, rules []rule, opts options) *searcher {
	s := &searcher{out: out, rules: rules, opts: opts}
	for _, r := range rules {
		s.matchers = append(s.matchers, r.Match.Matcher(""))
	}
	return s
}

// searchFile searches the file at path. Files ending in .zst are
// decompressed on the fly.
func (s *searcher) searchFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := io.Reader(f)
	if strings.HasSuffix(path, ".zst") {
		d, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defer d.Close()
		r = d
	}
	if err := s.search(path, r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// search scans r line by line and prints matches under a name header.
func (s *searcher) search(name string, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	printFileHeader := false
	count := 0
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		for i, m := range s.matchers {
			m.ResetInput(line)
			var results []btregex.MatchResult
			for r := range m.Results() {
				results = append(results, r)
			}
			if len(results) == 0 {
				continue
			}
			count++
			s.matchedLines++
			if s.opts.count {
				continue
			}

			if !printFileHeader {
				printFileHeader = true
				fmt.Fprintln(s.out, name+":")
			}
			prefix := ""
			if s.rules[i].Name != "" {
				prefix = ruleColor.Sprint("["+s.rules[i].Name+"]") + " "
			}
			if s.opts.onlyMatching {
				for _, res := range results {
					if res.Start() == res.End() {
						continue
					}
					fmt.Fprintf(s.out, "%s%d:%s\n", prefix, lineNo, formatMatch(line, res))
				}
				continue
			}
			fmt.Fprintf(s.out, "%s%d:%s\n", prefix, lineNo, highlight(line, results))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if s.opts.count {
		if count > 0 {
			fmt.Fprintf(s.out, "%s:%d\n", name, count)
		}
		return nil
	}
	if printFileHeader {
		fmt.Fprintln(s.out)
	}
	return nil
}

func highlight(line string, results []btregex.MatchResult) string {
	out := strings.Builder{}
	lastMatchEnd := 0
	for _, res := range results {
		out.WriteString(line[lastMatchEnd:res.Start()])
		out.WriteString(formatMatch(line, res))
		lastMatchEnd = res.End()
	}
	out.WriteString(line[lastMatchEnd:])
	return out.String()
}

// formatMatch colors the match red and each top-level group that lies
// inside it in its own color.
func formatMatch(line string, res btregex.MatchResult) string {
	start, end := res.Start(), res.End()
	n := res.GroupCount()
	if n == 0 || n >= len(submatchColors) {
		return submatchColors[0].Sprint(line[start:end])
	}

	out := strings.Builder{}
	pos := start
	for g := 1; g <= n; g++ {
		gs, _ := res.StartGroup(g)
		ge, _ := res.EndGroup(g)
		if gs < pos || ge > end {
			continue
		}
		submatchColors[0].Fprint(&out, line[pos:gs])
		submatchColors[g].Fprint(&out, line[gs:ge])
		pos = ge
	}
	submatchColors[0].Fprint(&out, line[pos:end])
	return out.String()
}
