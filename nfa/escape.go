package nfa

import (
	"strings"
	"unicode"

	"github.com/coregx/btregex/syntax"
)

// escaped is the result of parsing a backslash escape: a literal character
// (ch >= 0), a node outside a class, or a predicate inside one.
type escaped struct {
	ch   rune
	node node
	pred syntax.Predicate
}

var noChar = escaped{ch: -1}

// escape parses the escape at the cursor. With create false, constructs
// are recognized and skipped but not built. isRange marks the start of a
// class range, where \v means the vertical tab.
func (p *parser) escape(inClass, create, isRange bool) (escaped, error) {
	ch := p.skip()
	switch ch {
	case '0':
		return p.octal()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if inClass {
			break
		}
		if create {
			return escaped{ch: -1, node: p.ref(int(ch - '0'))}, nil
		}
		return noChar, nil
	case 'A':
		if inClass {
			break
		}
		return p.construct(create, func() node { return &begin{base: base{next: accept}} }), nil
	case 'B':
		if inClass {
			break
		}
		return p.construct(create, func() node {
			return &bound{base: base{next: accept}, kind: boundNone, uword: p.has(syntax.UnicodeCharacterClass)}
		}), nil
	case 'D':
		return p.classEscape(inClass, create, p.digitClass().Negate(), false), nil
	case 'G':
		if inClass {
			break
		}
		return p.construct(create, func() node { return &lastMatch{base: base{next: accept}} }), nil
	case 'H':
		return p.classEscape(inClass, create, syntax.HorizWS.Negate(), false), nil
	case 'N':
		return p.namedChar()
	case 'R':
		if inClass {
			break
		}
		return p.construct(create, func() node { return &lineEnding{base: base{next: accept}} }), nil
	case 'S':
		return p.classEscape(inClass, create, p.spaceClass().Negate(), false), nil
	case 'V':
		return p.classEscape(inClass, create, syntax.VertWS.Negate(), false), nil
	case 'W':
		return p.classEscape(inClass, create, p.wordClass().Negate(), false), nil
	case 'X':
		if inClass {
			break
		}
		return p.construct(create, func() node { return &xGrapheme{base: base{next: accept}} }), nil
	case 'Z':
		if inClass {
			break
		}
		return p.construct(create, func() node {
			if p.has(syntax.UnixLines) {
				return &unixDollar{base: base{next: accept}}
			}
			return &dollar{base: base{next: accept}}
		}), nil
	case 'a':
		return escaped{ch: 0x07}, nil
	case 'b':
		if inClass {
			break
		}
		if create {
			if p.peek() == '{' {
				if p.skip() == 'g' {
					if p.read() == '}' {
						return escaped{ch: -1, node: &graphemeBound{base: base{next: accept}}}, nil
					}
					break
				}
				p.unread()
				p.unread()
			}
			return escaped{ch: -1, node: &bound{
				base:  base{next: accept},
				kind:  boundBoth,
				uword: p.has(syntax.UnicodeCharacterClass),
			}}, nil
		}
		return noChar, nil
	case 'c':
		if p.cursor < p.patternLength {
			return escaped{ch: p.read() ^ 64}, nil
		}
		return noChar, p.error(syntax.ErrIllegalEscape, "Illegal control escape sequence")
	case 'd':
		return p.classEscape(inClass, create, p.digitClass(), !p.has(syntax.UnicodeCharacterClass)), nil
	case 'e':
		return escaped{ch: 0x1B}, nil
	case 'f':
		return escaped{ch: '\f'}, nil
	case 'h':
		return p.classEscape(inClass, create, syntax.HorizWS, false), nil
	case 'k':
		if inClass {
			break
		}
		if p.read() != '<' {
			return noChar, p.error(syntax.ErrBadGroupName,
				"\\k is not followed by '<' for named capturing group")
		}
		name, err := p.groupName(p.read())
		if err != nil {
			return noChar, err
		}
		g, ok := p.names[name]
		if !ok {
			return noChar, p.error(syntax.ErrUnknownGroupName,
				"named capturing group <"+name+"> does not exist")
		}
		if create {
			return escaped{ch: -1, node: p.backRefNode(g)}, nil
		}
		return noChar, nil
	case 'n':
		return escaped{ch: '\n'}, nil
	case 'r':
		return escaped{ch: '\r'}, nil
	case 's':
		return p.classEscape(inClass, create, p.spaceClass(), false), nil
	case 't':
		return escaped{ch: '\t'}, nil
	case 'u':
		return p.unicodeEscape()
	case 'v':
		if isRange {
			return escaped{ch: 0x0B}, nil
		}
		return p.classEscape(inClass, create, syntax.VertWS, false), nil
	case 'w':
		return p.classEscape(inClass, create, p.wordClass(), false), nil
	case 'x':
		return p.hexEscape()
	case 'z':
		if inClass {
			break
		}
		return p.construct(create, func() node { return &end{base: base{next: accept}} }), nil
	default:
		if !isASCIIAlpha(ch) {
			return escaped{ch: ch}, nil
		}
	}
	return noChar, p.error(syntax.ErrIllegalEscape, "Illegal/unsupported escape sequence")
}

func (p *parser) construct(create bool, build func() node) escaped {
	if !create {
		return noChar
	}
	return escaped{ch: -1, node: build()}
}

// classEscape returns a predefined class as a predicate inside a class or
// as a node outside one.
func (p *parser) classEscape(inClass, create bool, pred syntax.Predicate, asciiDigit bool) escaped {
	if !create {
		return noChar
	}
	if inClass {
		return escaped{ch: -1, pred: pred}
	}
	n := newCharProperty(pred)
	n.digit = asciiDigit
	return escaped{ch: -1, node: n}
}

func (p *parser) digitClass() syntax.Predicate {
	if p.has(syntax.UnicodeCharacterClass) {
		return syntax.Digit
	}
	return syntax.ASCIIDigit
}

func (p *parser) spaceClass() syntax.Predicate {
	if p.has(syntax.UnicodeCharacterClass) {
		return syntax.WhiteSpace
	}
	return syntax.ASCIISpace
}

func (p *parser) wordClass() syntax.Predicate {
	if p.has(syntax.UnicodeCharacterClass) {
		return syntax.Word
	}
	return syntax.ASCIIWord
}

// ref parses a numeric backreference. Digits are taken while the number
// still names an existing group.
func (p *parser) ref(g int) node {
	for {
		ch := p.peek()
		if !isASCIIDigit(ch) {
			break
		}
		ng := g*10 + int(ch-'0')
		if p.groupCount-1 < ng {
			break
		}
		g = ng
		p.read()
	}
	return p.backRefNode(g)
}

func (p *parser) backRefNode(g int) node {
	p.hasBackRef = true
	if p.has(syntax.CaseInsensitive) {
		return &ciBackRef{base: base{next: accept}, group: g, unicodeCase: p.has(syntax.UnicodeCase)}
	}
	return &backRef{base: base{next: accept}, group: g}
}

func isOctal(r rune) bool { return '0' <= r && r <= '7' }

// octal parses \0n, \0nn or \0mnn with m <= 3.
func (p *parser) octal() (escaped, error) {
	n := p.read()
	if !isOctal(n) {
		return noChar, p.error(syntax.ErrIllegalEscape, "Illegal octal escape sequence")
	}
	m := p.read()
	if !isOctal(m) {
		p.unread()
		return escaped{ch: n - '0'}, nil
	}
	o := p.read()
	if isOctal(o) && n <= '3' {
		return escaped{ch: (n-'0')*64 + (m-'0')*8 + (o - '0')}, nil
	}
	p.unread()
	return escaped{ch: (n-'0')*8 + (m - '0')}, nil
}

func hexValue(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// hexEscape parses \xhh and \x{h...h}.
func (p *parser) hexEscape() (escaped, error) {
	n := p.read()
	if hexValue(n) >= 0 {
		m := p.read()
		if hexValue(m) >= 0 {
			return escaped{ch: rune(hexValue(n)*16 + hexValue(m))}, nil
		}
	} else if n == '{' && hexValue(p.peek()) >= 0 {
		ch := 0
		for {
			n = p.read()
			v := hexValue(n)
			if v < 0 {
				break
			}
			ch = ch<<4 + v
			if ch > unicode.MaxRune {
				return noChar, p.error(syntax.ErrIllegalEscape, "Hexadecimal codepoint is too big")
			}
		}
		if n != '}' {
			return noChar, p.error(syntax.ErrIllegalEscape, "Unclosed hexadecimal escape sequence")
		}
		return escaped{ch: rune(ch)}, nil
	}
	return noChar, p.error(syntax.ErrIllegalEscape, "Illegal hexadecimal escape sequence")
}

// unicodeEscape parses \uhhhh, joining an escaped surrogate pair into one
// code point.
func (p *parser) unicodeEscape() (escaped, error) {
	n, err := p.hex4()
	if err != nil {
		return noChar, err
	}
	if 0xD800 <= n && n < 0xDC00 {
		cur := p.cursor
		if p.read() == '\\' && p.read() == 'u' {
			n2, err := p.hex4()
			if err == nil && 0xDC00 <= n2 && n2 < 0xE000 {
				return escaped{ch: 0x10000 + (n-0xD800)<<10 + (n2 - 0xDC00)}, nil
			}
		}
		p.cursor = cur
	}
	return escaped{ch: n}, nil
}

func (p *parser) hex4() (rune, error) {
	n := 0
	for range 4 {
		v := hexValue(p.read())
		if v < 0 {
			return 0, p.error(syntax.ErrIllegalEscape, "Illegal Unicode escape sequence")
		}
		n = n*16 + v
	}
	return rune(n), nil
}

// namedChar parses \N{name}.
func (p *parser) namedChar() (escaped, error) {
	if p.read() != '{' {
		return noChar, p.error(syntax.ErrIllegalEscape, "Illegal character name escape sequence")
	}
	i := p.cursor
	for p.read() != '}' {
		if p.cursor >= p.patternLength {
			return noChar, p.error(syntax.ErrIllegalEscape, "Unclosed character name escape sequence")
		}
	}
	name := string(p.temp[i : p.cursor-1])
	r, ok := syntax.LookupRune(name)
	if !ok {
		return noChar, p.error(syntax.ErrIllegalEscape, "Unknown character name ["+name+"]")
	}
	return escaped{ch: r}, nil
}

// clazz parses a character class. The cursor is on the opening '['; with
// consume set the closing ']' is consumed too.
func (p *parser) clazz(consume bool) (syntax.Predicate, error) {
	var prev, curr syntax.Predicate
	bits := &bitClass{}
	hasBits := false
	isNeg := false

	ch := p.next()
	if ch == '^' && p.at(p.cursor-1) == '[' {
		ch = p.next()
		isNeg = true
	}
	for {
		switch ch {
		case '[':
			c, err := p.clazz(true)
			if err != nil {
				return nil, err
			}
			curr = c
			if prev == nil {
				prev = curr
			} else {
				prev = prev.Union(curr)
			}
			ch = p.peek()
			continue
		case '&':
			ch = p.next()
			if ch != '&' {
				// A single & is literal.
				p.unread()
				break
			}
			ch = p.next()
			var right syntax.Predicate
			for ch != ']' && ch != '&' {
				if ch == '[' {
					c, err := p.clazz(true)
					if err != nil {
						return nil, err
					}
					if right == nil {
						right = c
					} else {
						right = right.Union(c)
					}
				} else {
					p.unread()
					c, err := p.clazz(false)
					if err != nil {
						return nil, err
					}
					right = c
				}
				ch = p.peek()
			}
			if hasBits {
				// Bits bind tighter than &&.
				if prev == nil {
					prev = bits.predicate()
					curr = prev
				} else {
					prev = prev.Union(bits.predicate())
				}
				bits = &bitClass{}
				hasBits = false
			}
			if right != nil {
				curr = right
			}
			if prev == nil {
				if right == nil {
					return nil, p.error(syntax.ErrBadClassSyntax, "Bad class syntax")
				}
				prev = right
			} else {
				prev = prev.Intersect(curr)
			}
			continue
		case 0:
			if p.cursor >= p.patternLength {
				return nil, p.error(syntax.ErrUnclosedCharClass, "Unclosed character class")
			}
		case ']':
			if prev != nil || hasBits {
				if consume {
					p.next()
				}
				if prev == nil {
					prev = bits.predicate()
				} else if hasBits {
					prev = prev.Union(bits.predicate())
				}
				if isNeg {
					return prev.Negate(), nil
				}
				return prev, nil
			}
		}
		c, err := p.classRange(bits)
		if err != nil {
			return nil, err
		}
		if c == nil {
			hasBits = true
		} else {
			curr = c
			if prev == nil {
				prev = curr
			} else {
				prev = prev.Union(curr)
			}
		}
		ch = p.peek()
	}
}

// classRange parses one class member: a property, an escape, a single
// character or a range. Latin-1 characters go into bits and yield nil.
func (p *parser) classRange(bits *bitClass) (syntax.Predicate, error) {
	ch := p.peek()
	if ch == '\\' {
		ch = p.nextEscaped()
		if ch == 'p' || ch == 'P' {
			comp := ch == 'P'
			oneLetter := true
			ch = p.next()
			if ch != '{' {
				p.unread()
			} else {
				oneLetter = false
			}
			return p.family(oneLetter, comp)
		}
		isRange := p.at(p.cursor+1) == '-'
		p.unread()
		e, err := p.escape(true, true, isRange)
		if err != nil {
			return nil, err
		}
		if e.ch < 0 {
			return e.pred, nil
		}
		ch = e.ch
	} else {
		p.next()
	}

	if p.peek() == '-' {
		endRange := p.at(p.cursor + 1)
		if endRange == '[' {
			return p.bitsOrSingle(bits, ch), nil
		}
		if endRange != ']' {
			p.next()
			m := p.peek()
			if m == '\\' {
				e, err := p.escape(true, false, true)
				if err != nil {
					return nil, err
				}
				m = e.ch
			} else {
				p.next()
			}
			if m < ch {
				return nil, p.error(syntax.ErrIllegalCharRange, "Illegal character range")
			}
			if p.has(syntax.CaseInsensitive) {
				if p.has(syntax.UnicodeCase) {
					return ciRangeU(ch, m), nil
				}
				return ciRange(ch, m), nil
			}
			return inRange(ch, m), nil
		}
	}
	return p.bitsOrSingle(bits, ch), nil
}

// bitsOrSingle adds ch to bits when it is Latin-1 and folds within Latin-1,
// returning nil; otherwise it returns a single character predicate.
func (p *parser) bitsOrSingle(bits *bitClass, ch rune) syntax.Predicate {
	if ch < 256 && !(p.has(syntax.CaseInsensitive) && p.has(syntax.UnicodeCase) && foldsOutOfLatin1(ch)) {
		bits.add(ch, p.flags0)
		return nil
	}
	return single(ch, p.flags0)
}

func foldsOutOfLatin1(ch rune) bool {
	switch ch {
	case 0xff, 0xb5, 'I', 'i', 'S', 's', 'K', 'k', 0xc5, 0xe5:
		return true
	}
	return false
}

// family parses the name of \p or \P and resolves it.
func (p *parser) family(singleLetter, complement bool) (syntax.Predicate, error) {
	p.next()
	var name string
	if singleLetter {
		name = string(p.at(p.cursor))
		p.read()
	} else {
		i := p.cursor
		p.mark('}')
		for p.read() != '}' {
		}
		p.mark(0)
		j := p.cursor
		if j > p.patternLength {
			return nil, p.error(syntax.ErrCharFamily, "Unclosed character family")
		}
		if i+1 >= j {
			return nil, p.error(syntax.ErrCharFamily, "Empty character family")
		}
		name = string(p.temp[i : j-1])
	}

	caseIns := p.has(syntax.CaseInsensitive)
	var pred syntax.Predicate
	if eq := strings.IndexByte(name, '='); eq >= 0 {
		key, value := strings.ToLower(name[:eq]), name[eq+1:]
		switch key {
		case "sc", "script":
			pred = syntax.ForScript(value)
		case "blk", "block":
			pred = syntax.ForBlock(value)
		case "gc", "general_category":
			pred = syntax.ForProperty(value, caseIns)
		}
		if pred == nil {
			return nil, p.error(syntax.ErrUnknownProperty,
				"Unknown Unicode property {name=<"+key+">, value=<"+value+">}")
		}
	} else {
		switch {
		case strings.HasPrefix(name, "In"):
			pred = syntax.ForBlock(name[2:])
		case strings.HasPrefix(name, "Is"):
			short := name[2:]
			pred = syntax.ForUnicodeProperty(short, caseIns)
			if pred == nil {
				pred = syntax.ForProperty(short, caseIns)
			}
			if pred == nil {
				pred = syntax.ForScript(short)
			}
		default:
			if p.has(syntax.UnicodeCharacterClass) {
				pred = syntax.ForPOSIXName(name, caseIns)
			}
			if pred == nil {
				pred = syntax.ForProperty(name, caseIns)
			}
		}
		if pred == nil {
			return nil, p.error(syntax.ErrUnknownProperty, "Unknown character property name {"+name+"}")
		}
	}
	if complement {
		pred = pred.Negate()
	}
	return pred, nil
}
