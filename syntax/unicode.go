package syntax

import (
	"strings"
	"unicode"
)

// Predicate reports whether a code point belongs to a character class.
type Predicate func(r rune) bool

// Negate returns the complement of p.
func (p Predicate) Negate() Predicate {
	return func(r rune) bool { return !p(r) }
}

// Union returns a predicate accepting what p or q accepts.
func (p Predicate) Union(q Predicate) Predicate {
	return func(r rune) bool { return p(r) || q(r) }
}

// Intersect returns a predicate accepting what both p and q accept.
func (p Predicate) Intersect(q Predicate) Predicate {
	return func(r rune) bool { return p(r) && q(r) }
}

func inRange(lo, hi rune) Predicate {
	return func(r rune) bool { return lo <= r && r <= hi }
}

func inTable(t *unicode.RangeTable) Predicate {
	return func(r rune) bool { return unicode.Is(t, r) }
}

// Predefined classes. The ASCII forms back \d \s \w by default; the Unicode
// forms are selected by UnicodeCharacterClass.
var (
	ASCIIDigit Predicate = func(r rune) bool { return '0' <= r && r <= '9' }
	ASCIISpace Predicate = func(r rune) bool { return r == ' ' || ('\t' <= r && r <= '\r') }
	ASCIIWord  Predicate = func(r rune) bool {
		return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
	}

	Digit      Predicate = func(r rune) bool { return unicode.Is(unicode.Nd, r) }
	WhiteSpace Predicate = func(r rune) bool { return unicode.Is(unicode.White_Space, r) }
	Alphabetic Predicate = func(r rune) bool {
		return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_Alphabetic, r)
	}
	Word Predicate = func(r rune) bool {
		return Alphabetic(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc, unicode.Nd, unicode.Pc) ||
			unicode.Is(unicode.Join_Control, r)
	}

	// HorizWS is \h.
	HorizWS Predicate = func(r rune) bool {
		switch r {
		case ' ', '\t', 0xA0, 0x1680, 0x180e, 0x202f, 0x205f, 0x3000:
			return true
		}
		return 0x2000 <= r && r <= 0x200a
	}

	// VertWS is \v.
	VertWS Predicate = func(r rune) bool {
		switch r {
		case '\n', 0x0B, '\f', '\r', 0x85, 0x2028, 0x2029:
			return true
		}
		return false
	}
)

func isLowerCase(r rune) bool {
	return unicode.IsLower(r) || unicode.Is(unicode.Other_Lowercase, r)
}

func isUpperCase(r rune) bool {
	return unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r)
}

func isCased(r rune) bool {
	return isLowerCase(r) || isUpperCase(r) || unicode.IsTitle(r)
}

func isAssigned(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z,
		unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs)
}

var (
	asciiAlpha Predicate = func(r rune) bool { return isAlpha(r) }
	asciiAlnum Predicate = func(r rune) bool { return isAlpha(r) || isDigit(r) }
	asciiPunct Predicate = func(r rune) bool {
		return ('!' <= r && r <= '/') || (':' <= r && r <= '@') || ('[' <= r && r <= '`') || ('{' <= r && r <= '~')
	}
	asciiGraph = asciiAlnum.Union(asciiPunct)
)

// posixASCII are the POSIX classes in their default US-ASCII form.
var posixASCII = map[string]Predicate{
	"ASCII":  inRange(0, 0x7F),
	"Alnum":  asciiAlnum,
	"Alpha":  asciiAlpha,
	"Blank":  func(r rune) bool { return r == ' ' || r == '\t' },
	"Cntrl":  func(r rune) bool { return r < 0x20 || r == 0x7F },
	"Digit":  ASCIIDigit,
	"Graph":  asciiGraph,
	"Lower":  inRange('a', 'z'),
	"Print":  asciiGraph.Union(func(r rune) bool { return r == ' ' }),
	"Punct":  asciiPunct,
	"Space":  ASCIISpace,
	"Upper":  inRange('A', 'Z'),
	"XDigit": func(r rune) bool { return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F') },
}

// javaProps are the java.lang.Character method classes (\p{javaLowerCase}).
var javaProps = map[string]Predicate{
	"javaLowerCase":   isLowerCase,
	"javaUpperCase":   isUpperCase,
	"javaTitleCase":   unicode.IsTitle,
	"javaAlphabetic":  Alphabetic,
	"javaIdeographic": inTable(unicode.Ideographic),
	"javaDigit":       Digit,
	"javaDefined":     isAssigned,
	"javaLetter":      unicode.IsLetter,
	"javaLetterOrDigit": func(r rune) bool {
		return unicode.IsLetter(r) || unicode.Is(unicode.Nd, r)
	},
	"javaJavaIdentifierStart": func(r rune) bool {
		return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Sc, unicode.Pc)
	},
	"javaJavaIdentifierPart": func(r rune) bool {
		return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Sc, unicode.Pc, unicode.Nd, unicode.Mn, unicode.Mc) ||
			isIdentifierIgnorable(r)
	},
	"javaUnicodeIdentifierStart": func(r rune) bool {
		return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
	},
	"javaUnicodeIdentifierPart": func(r rune) bool {
		return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Pc, unicode.Nd, unicode.Mn, unicode.Mc) ||
			isIdentifierIgnorable(r)
	},
	"javaIdentifierIgnorable": isIdentifierIgnorable,
	"javaSpaceChar":           inTable(unicode.Z),
	"javaWhitespace": func(r rune) bool {
		if r == 0xA0 || r == 0x2007 || r == 0x202F {
			return false
		}
		return unicode.Is(unicode.Z, r) || ('\t' <= r && r <= '\r') || (0x1C <= r && r <= 0x1F)
	},
	"javaISOControl": func(r rune) bool { return r <= 0x1F || (0x7F <= r && r <= 0x9F) },
	"javaMirrored":   inTable(bidiMirrored),
}

func isIdentifierIgnorable(r rune) bool {
	return r <= 0x08 || (0x0E <= r && r <= 0x1B) || (0x7F <= r && r <= 0x9F) || unicode.Is(unicode.Cf, r)
}

// ForProperty resolves a general category (L, Lu, ...), one of the extra
// categories LC, LD, L1, all and Cn, a POSIX class name in its ASCII form or
// a javaXxx name. Under caseIns the case-distinguishing classes accept every
// cased letter. It returns nil for unknown names.
func ForProperty(name string, caseIns bool) Predicate {
	if caseIns {
		switch name {
		case "Lu", "Ll", "Lt":
			return func(r rune) bool { return unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt) }
		case "Lower", "Upper":
			return asciiAlpha
		case "javaLowerCase", "javaUpperCase", "javaTitleCase":
			return isCased
		}
	}
	switch name {
	case "Cn":
		return func(r rune) bool { return !isAssigned(r) }
	case "LC":
		return func(r rune) bool { return unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt) }
	case "LD":
		return func(r rune) bool { return unicode.IsLetter(r) || unicode.Is(unicode.Nd, r) }
	case "L1":
		return inRange(0, 0xFF)
	case "all":
		return func(rune) bool { return true }
	}
	if t, ok := unicode.Categories[name]; ok {
		return inTable(t)
	}
	if p, ok := posixASCII[name]; ok {
		return p
	}
	if p, ok := javaProps[name]; ok {
		return p
	}
	return nil
}

// ForUnicodeProperty resolves a binary Unicode property such as Alphabetic,
// White_Space or Hex_Digit. Matching is case-insensitive on the name.
func ForUnicodeProperty(name string, caseIns bool) Predicate {
	name = strings.ToUpper(name)
	if caseIns {
		switch name {
		case "LOWERCASE", "UPPERCASE", "TITLECASE":
			return isCased
		}
	}
	switch name {
	case "ALPHABETIC":
		return Alphabetic
	case "ASSIGNED":
		return isAssigned
	case "CONTROL":
		return inTable(unicode.Cc)
	case "HEXDIGIT", "HEX_DIGIT":
		return func(r rune) bool { return Digit(r) || unicode.Is(unicode.Hex_Digit, r) }
	case "IDEOGRAPHIC":
		return inTable(unicode.Ideographic)
	case "JOINCONTROL", "JOIN_CONTROL":
		return inTable(unicode.Join_Control)
	case "LETTER":
		return unicode.IsLetter
	case "LOWERCASE":
		return isLowerCase
	case "UPPERCASE":
		return isUpperCase
	case "TITLECASE":
		return unicode.IsTitle
	case "NONCHARACTERCODEPOINT", "NONCHARACTER_CODE_POINT":
		return inTable(unicode.Noncharacter_Code_Point)
	case "PUNCTUATION":
		return inTable(unicode.P)
	case "WHITESPACE", "WHITE_SPACE":
		return WhiteSpace
	case "WORD":
		return Word
	}
	return ForPOSIXName(name, caseIns)
}

// ForPOSIXName resolves a POSIX class name in its Unicode form, as selected
// by UnicodeCharacterClass. The name is case-insensitive.
func ForPOSIXName(name string, caseIns bool) Predicate {
	switch strings.ToUpper(name) {
	case "ALPHA":
		return Alphabetic
	case "LOWER":
		if caseIns {
			return isCased
		}
		return isLowerCase
	case "UPPER":
		if caseIns {
			return isCased
		}
		return isUpperCase
	case "SPACE":
		return WhiteSpace
	case "PUNCT":
		return inTable(unicode.P)
	case "XDIGIT":
		return func(r rune) bool { return Digit(r) || unicode.Is(unicode.Hex_Digit, r) }
	case "ALNUM":
		return Alphabetic.Union(Digit)
	case "CNTRL":
		return inTable(unicode.Cc)
	case "DIGIT":
		return Digit
	case "BLANK":
		return func(r rune) bool { return r == '\t' || unicode.Is(unicode.Zs, r) }
	case "GRAPH":
		return unicodeGraph
	case "PRINT":
		return func(r rune) bool {
			return (unicodeGraph(r) || r == '\t' || unicode.Is(unicode.Zs, r)) && !unicode.Is(unicode.Cc, r)
		}
	}
	return nil
}

func unicodeGraph(r rune) bool {
	return isAssigned(r) && !WhiteSpace(r) && !unicode.In(r, unicode.Cc, unicode.Cs)
}

// scriptAliases maps ISO 15924 codes to Go script table names.
var scriptAliases = map[string]string{
	"LATN": "Latin", "GREK": "Greek", "CYRL": "Cyrillic", "ARMN": "Armenian",
	"HEBR": "Hebrew", "ARAB": "Arabic", "DEVA": "Devanagari", "BENG": "Bengali",
	"THAI": "Thai", "GEOR": "Georgian", "HANG": "Hangul", "ETHI": "Ethiopic",
	"HIRA": "Hiragana", "KANA": "Katakana", "HANI": "Han", "ZYYY": "Common",
	"ZINH": "Inherited", "TAML": "Tamil", "KHMR": "Khmer", "MONG": "Mongolian",
}

// ForScript resolves a Unicode script by name (Latin, OLD_ITALIC) or ISO
// 15924 code (Latn), ignoring case.
func ForScript(name string) Predicate {
	upper := strings.ToUpper(name)
	if alias, ok := scriptAliases[upper]; ok {
		return inTable(unicode.Scripts[alias])
	}
	for n, t := range unicode.Scripts {
		if strings.ToUpper(n) == upper {
			return inTable(t)
		}
	}
	return nil
}

type block struct {
	lo, hi rune
}

// blocks covers the commonly used Unicode blocks. Keys are normalized with
// blockKey.
var blocks = map[string]block{
	"BASICLATIN":                         {0x0000, 0x007F},
	"LATIN1SUPPLEMENT":                   {0x0080, 0x00FF},
	"LATINEXTENDEDA":                     {0x0100, 0x017F},
	"LATINEXTENDEDB":                     {0x0180, 0x024F},
	"IPAEXTENSIONS":                      {0x0250, 0x02AF},
	"SPACINGMODIFIERLETTERS":             {0x02B0, 0x02FF},
	"COMBININGDIACRITICALMARKS":          {0x0300, 0x036F},
	"GREEK":                              {0x0370, 0x03FF},
	"GREEKANDCOPTIC":                     {0x0370, 0x03FF},
	"CYRILLIC":                           {0x0400, 0x04FF},
	"CYRILLICSUPPLEMENTARY":              {0x0500, 0x052F},
	"ARMENIAN":                           {0x0530, 0x058F},
	"HEBREW":                             {0x0590, 0x05FF},
	"ARABIC":                             {0x0600, 0x06FF},
	"SYRIAC":                             {0x0700, 0x074F},
	"THAANA":                             {0x0780, 0x07BF},
	"DEVANAGARI":                         {0x0900, 0x097F},
	"BENGALI":                            {0x0980, 0x09FF},
	"GURMUKHI":                           {0x0A00, 0x0A7F},
	"GUJARATI":                           {0x0A80, 0x0AFF},
	"TAMIL":                              {0x0B80, 0x0BFF},
	"TELUGU":                             {0x0C00, 0x0C7F},
	"KANNADA":                            {0x0C80, 0x0CFF},
	"MALAYALAM":                          {0x0D00, 0x0D7F},
	"THAI":                               {0x0E00, 0x0E7F},
	"LAO":                                {0x0E80, 0x0EFF},
	"TIBETAN":                            {0x0F00, 0x0FFF},
	"GEORGIAN":                           {0x10A0, 0x10FF},
	"HANGULJAMO":                         {0x1100, 0x11FF},
	"ETHIOPIC":                           {0x1200, 0x137F},
	"CHEROKEE":                           {0x13A0, 0x13FF},
	"LATINEXTENDEDADDITIONAL":            {0x1E00, 0x1EFF},
	"GREEKEXTENDED":                      {0x1F00, 0x1FFF},
	"GENERALPUNCTUATION":                 {0x2000, 0x206F},
	"SUPERSCRIPTSANDSUBSCRIPTS":          {0x2070, 0x209F},
	"CURRENCYSYMBOLS":                    {0x20A0, 0x20CF},
	"LETTERLIKESYMBOLS":                  {0x2100, 0x214F},
	"NUMBERFORMS":                        {0x2150, 0x218F},
	"ARROWS":                             {0x2190, 0x21FF},
	"MATHEMATICALOPERATORS":              {0x2200, 0x22FF},
	"MISCELLANEOUSTECHNICAL":             {0x2300, 0x23FF},
	"BOXDRAWING":                         {0x2500, 0x257F},
	"BLOCKELEMENTS":                      {0x2580, 0x259F},
	"GEOMETRICSHAPES":                    {0x25A0, 0x25FF},
	"MISCELLANEOUSSYMBOLS":               {0x2600, 0x26FF},
	"DINGBATS":                           {0x2700, 0x27BF},
	"CJKSYMBOLSANDPUNCTUATION":           {0x3000, 0x303F},
	"HIRAGANA":                           {0x3040, 0x309F},
	"KATAKANA":                           {0x30A0, 0x30FF},
	"HANGULCOMPATIBILITYJAMO":            {0x3130, 0x318F},
	"CJKUNIFIEDIDEOGRAPHS":               {0x4E00, 0x9FFF},
	"HANGULSYLLABLES":                    {0xAC00, 0xD7AF},
	"PRIVATEUSEAREA":                     {0xE000, 0xF8FF},
	"ALPHABETICPRESENTATIONFORMS":        {0xFB00, 0xFB4F},
	"HALFWIDTHANDFULLWIDTHFORMS":         {0xFF00, 0xFFEF},
	"SPECIALS":                           {0xFFF0, 0xFFFF},
	"MISCELLANEOUSSYMBOLSANDPICTOGRAPHS": {0x1F300, 0x1F5FF},
	"EMOTICONS":                          {0x1F600, 0x1F64F},
}

func blockKey(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return unicode.ToUpper(r)
	}, name)
}

// ForBlock resolves a Unicode block name. Spaces, underscores, hyphens and
// case are ignored, so BasicLatin, BASIC_LATIN and "Basic Latin" agree.
func ForBlock(name string) Predicate {
	b, ok := blocks[blockKey(name)]
	if !ok {
		return nil
	}
	return inRange(b.lo, b.hi)
}
