package syntax

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// LookupRune resolves a Unicode character name, as written in \N{name}, to
// its code point. Names are matched ignoring case. The reverse table is built
// on first use.
func LookupRune(name string) (rune, bool) {
	runeNamesOnce.Do(buildRuneNames)
	r, ok := runeNames[strings.ToUpper(strings.TrimSpace(name))]
	return r, ok
}

func buildRuneNames() {
	runeNames = make(map[string]rune, 1<<15)
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if 0xD800 <= r && r <= 0xDFFF {
			continue
		}
		n := runenames.Name(r)
		if n == "" || n[0] == '<' {
			continue
		}
		if _, dup := runeNames[n]; !dup {
			runeNames[n] = r
		}
	}
}
