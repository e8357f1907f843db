package nfa

import (
	"unicode"

	"github.com/coregx/btregex/syntax"
)

// parser is a recursive descent parser that builds the node graph directly.
// The pattern is held as code points followed by two zero sentinels, so
// lookahead never runs off the end.
type parser struct {
	pattern string

	temp          []rune
	patternLength int
	cursor        int

	flags0 syntax.Flags

	// groupCount is the next capture number; group 0 is the whole match.
	groupCount int
	localCount int
	names      map[string]int

	// topClosure collects greedy unbounded loops outside any repeated or
	// lookbehind group. They are memoized when the pattern has no
	// backreferences.
	topClosure []*loop
	hasBackRef bool

	buf []rune
}

// Compile parses pattern under flags and builds a program.
func Compile(pattern string, flags syntax.Flags, opts Options) (*Program, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	if flags.Has(syntax.UnicodeCharacterClass) {
		flags |= syntax.UnicodeCase
	}
	src := pattern
	if flags.Has(syntax.CanonEq) && !flags.Has(syntax.Literal) {
		src = syntax.Canonicalize(pattern)
	}
	p := &parser{
		pattern:    pattern,
		flags0:     flags,
		groupCount: 1,
		names:      make(map[string]int),
	}
	runes := []rune(src)
	if !flags.Has(syntax.Literal) {
		runes = syntax.RemoveQuotes(runes)
	}
	p.patternLength = len(runes)
	p.temp = make([]rune, len(runes)+2)
	copy(p.temp, runes)

	var matchRoot node
	if flags.Has(syntax.Literal) {
		matchRoot = p.newSlice(runes)
		matchRoot.setNext(lastAccept)
	} else {
		n, err := p.expr(lastAccept)
		if err != nil {
			return nil, err
		}
		if p.cursor != p.patternLength {
			if p.peek() == ')' {
				return nil, p.error(syntax.ErrUnmatchedParen, "Unmatched closing ')'")
			}
			return nil, p.error(syntax.ErrInternal, "Unexpected internal error")
		}
		matchRoot = n
	}

	memo := 0
	if !p.hasBackRef && opts.EnableMemoization {
		for _, l := range p.topClosure {
			l.memoIndex = memo
			memo++
		}
	}

	prog := &Program{
		pattern:    pattern,
		flags:      flags,
		matchRoot:  matchRoot,
		groupCount: p.groupCount,
		localCount: p.localCount,
		memoCount:  memo,
		names:      p.names,
		groupName:  make([]string, p.groupCount),
		hasBackRef: p.hasBackRef,
	}
	for name, g := range p.names {
		prog.groupName[g] = name
	}
	info := newTreeInfo()
	matchRoot.study(info)
	prog.minLength = info.minLength
	prog.root, prog.strategy = selectRoot(matchRoot, opts)
	return prog, nil
}

func (p *parser) has(f syntax.Flags) bool {
	return p.flags0&f != 0
}

func (p *parser) error(code syntax.ErrorCode, desc string) error {
	return &syntax.Error{Code: code, Desc: desc, Pattern: p.pattern, Index: p.cursor - 1}
}

// Cursor primitives. In Comments mode peek, read, next and accept skip
// whitespace and #-comments; the Escaped variants never do.

func (p *parser) at(i int) rune {
	if i >= 0 && i < len(p.temp) {
		return p.temp[i]
	}
	return 0
}

func (p *parser) peek() rune {
	ch := p.at(p.cursor)
	if p.has(syntax.Comments) {
		ch = p.peekPastWhitespace(ch)
	}
	return ch
}

func (p *parser) read() rune {
	ch := p.at(p.cursor)
	p.cursor++
	if p.has(syntax.Comments) {
		ch = p.parsePastWhitespace(ch)
	}
	return ch
}

func (p *parser) next() rune {
	p.cursor++
	ch := p.at(p.cursor)
	if p.has(syntax.Comments) {
		ch = p.peekPastWhitespace(ch)
	}
	return ch
}

func (p *parser) nextEscaped() rune {
	p.cursor++
	return p.at(p.cursor)
}

func (p *parser) skip() rune {
	ch := p.at(p.cursor + 1)
	p.cursor += 2
	return ch
}

func (p *parser) unread() {
	p.cursor--
}

func (p *parser) accept(ch rune, code syntax.ErrorCode, desc string) error {
	test := p.at(p.cursor)
	p.cursor++
	if p.has(syntax.Comments) {
		test = p.parsePastWhitespace(test)
	}
	if ch != test {
		return p.error(code, desc)
	}
	return nil
}

// mark overwrites the first sentinel, so a scan for c is sure to stop.
func (p *parser) mark(c rune) {
	p.temp[p.patternLength] = c
}

func (p *parser) peekPastWhitespace(ch rune) rune {
	for isSpace(ch) || ch == '#' {
		for isSpace(ch) {
			p.cursor++
			ch = p.at(p.cursor)
		}
		if ch == '#' {
			ch = p.peekPastLine()
		}
	}
	return ch
}

func (p *parser) parsePastWhitespace(ch rune) rune {
	for isSpace(ch) || ch == '#' {
		for isSpace(ch) {
			ch = p.at(p.cursor)
			p.cursor++
		}
		if ch == '#' {
			ch = p.parsePastLine()
		}
	}
	return ch
}

func (p *parser) parsePastLine() rune {
	ch := p.at(p.cursor)
	p.cursor++
	for ch != 0 && !p.isLineSeparator(ch) {
		ch = p.at(p.cursor)
		p.cursor++
	}
	if ch == 0 && p.cursor > p.patternLength {
		p.cursor = p.patternLength
		ch = p.at(p.cursor)
		p.cursor++
	}
	return ch
}

func (p *parser) peekPastLine() rune {
	p.cursor++
	ch := p.at(p.cursor)
	for ch != 0 && !p.isLineSeparator(ch) {
		p.cursor++
		ch = p.at(p.cursor)
	}
	if ch == 0 && p.cursor > p.patternLength {
		p.cursor = p.patternLength
		ch = p.at(p.cursor)
	}
	return ch
}

func (p *parser) isLineSeparator(ch rune) bool {
	if p.has(syntax.UnixLines) {
		return ch == '\n'
	}
	return isLineTerminator(ch)
}

// expr parses alternatives up to the next unmatched ')' or the end. Every
// alternative continues at end.
func (p *parser) expr(end node) (node, error) {
	var prev, firstTail node
	var br *branch
	var conn *branchConn
	for {
		n, tail, err := p.sequence(end)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			prev, firstTail = n, tail
		} else {
			if conn == nil {
				conn = &branchConn{base: base{next: end}}
			}
			if n == end {
				// An empty alternative goes straight to the connector.
				n = nil
			} else {
				tail.setNext(conn)
			}
			if br != nil && prev == node(br) {
				br.add(n)
			} else {
				if prev == end {
					prev = nil
				} else {
					firstTail.setNext(conn)
				}
				br = newBranch(prev, n, conn)
				prev = br
			}
		}
		if p.peek() != '|' {
			return prev, nil
		}
		p.next()
	}
}

// sequence parses one alternative. It returns its first and last nodes,
// with the last linked to end, or end twice for an empty alternative.
func (p *parser) sequence(end node) (node, node, error) {
	var head, tail node
scan:
	for {
		var n node
		var err error
		ch := p.peek()
		switch ch {
		case '(':
			gh, gt, err := p.group0()
			if err != nil {
				return nil, nil, err
			}
			if gh == nil {
				continue
			}
			if head == nil {
				head = gh
			} else {
				tail.setNext(gh)
			}
			tail = gt
			continue
		case '[':
			var pred syntax.Predicate
			pred, err = p.clazz(true)
			if err == nil {
				n = newCharProperty(pred)
			}
		case '\\':
			ch = p.nextEscaped()
			if ch == 'p' || ch == 'P' {
				oneLetter := true
				comp := ch == 'P'
				ch = p.next()
				if ch != '{' {
					p.unread()
				} else {
					oneLetter = false
				}
				var pred syntax.Predicate
				pred, err = p.family(oneLetter, comp)
				if err == nil {
					n = newCharProperty(pred)
				}
			} else {
				p.unread()
				n, err = p.atom()
			}
		case '^':
			p.next()
			if p.has(syntax.Multiline) {
				n = &caret{base: base{next: accept}, unix: p.has(syntax.UnixLines)}
			} else {
				n = &begin{base: base{next: accept}}
			}
		case '$':
			p.next()
			ml := p.has(syntax.Multiline)
			if p.has(syntax.UnixLines) {
				n = &unixDollar{base: base{next: accept}, multiline: ml}
			} else {
				n = &dollar{base: base{next: accept}, multiline: ml}
			}
		case '.':
			p.next()
			switch {
			case p.has(syntax.DotAll):
				n = newCharProperty(dotAll)
			case p.has(syntax.UnixLines):
				n = newCharProperty(unixDot)
			default:
				n = newCharProperty(dot)
			}
		case '|', ')':
			break scan
		case '?', '*', '+':
			p.next()
			return nil, nil, p.error(syntax.ErrDanglingMeta, "Dangling meta character '"+string(ch)+"'")
		case 0:
			if p.cursor >= p.patternLength {
				break scan
			}
			n, err = p.atom()
		default:
			n, err = p.atom()
		}
		if err != nil {
			return nil, nil, err
		}

		n, err = p.closure(n)
		if err != nil {
			return nil, nil, err
		}
		if head == nil {
			head = n
		} else {
			tail.setNext(n)
		}
		tail = n
	}
	if head == nil {
		return end, end, nil
	}
	tail.setNext(end)
	return head, tail, nil
}

// atom parses a run of literal characters, or a single escape construct.
func (p *parser) atom() (node, error) {
	p.buf = p.buf[:0]
	prev := -1
	ch := p.peek()
scan:
	for {
		switch ch {
		case '*', '+', '?', '{':
			// The quantifier binds to the last character only.
			if len(p.buf) > 1 {
				p.cursor = prev
				p.buf = p.buf[:len(p.buf)-1]
			}
			break scan
		case '$', '.', '^', '(', '[', '|', ')':
			break scan
		case '\\':
			ch = p.nextEscaped()
			if ch == 'p' || ch == 'P' {
				if len(p.buf) > 0 {
					p.unread()
					break scan
				}
				comp := ch == 'P'
				oneLetter := true
				ch = p.next()
				if ch != '{' {
					p.unread()
				} else {
					oneLetter = false
				}
				pred, err := p.family(oneLetter, comp)
				if err != nil {
					return nil, err
				}
				return newCharProperty(pred), nil
			}
			p.unread()
			prev = p.cursor
			e, err := p.escape(false, len(p.buf) == 0, false)
			if err != nil {
				return nil, err
			}
			if e.ch >= 0 {
				p.buf = append(p.buf, e.ch)
				ch = p.peek()
				continue
			}
			if len(p.buf) == 0 {
				return e.node, nil
			}
			// Leave the construct for the next atom.
			p.cursor = prev
			break scan
		case 0:
			if p.cursor >= p.patternLength {
				break scan
			}
			prev = p.cursor
			p.buf = append(p.buf, ch)
			ch = p.next()
		default:
			prev = p.cursor
			p.buf = append(p.buf, ch)
			ch = p.next()
		}
	}
	if len(p.buf) == 1 {
		return p.singleNode(p.buf[0]), nil
	}
	return p.newSlice(p.buf), nil
}

func (p *parser) singleNode(c rune) *charProperty {
	n := newCharProperty(single(c, p.flags0))
	if !p.has(syntax.CaseInsensitive) {
		n.lit = c
	} else if p.has(syntax.UnicodeCase) {
		if u := unicode.ToUpper(c); u == unicode.ToLower(u) {
			n.lit = c
		}
	} else if !isASCIICased(c) {
		n.lit = c
	}
	return n
}

func (p *parser) newSlice(buf []rune) node {
	if !p.has(syntax.CaseInsensitive) {
		return newSliceNode(buf)
	}
	folded := make([]rune, len(buf))
	if p.has(syntax.UnicodeCase) {
		for i, c := range buf {
			folded[i] = unicode.ToLower(unicode.ToUpper(c))
		}
		return &sliceU{base: base{next: accept}, buf: folded}
	}
	for i, c := range buf {
		folded[i] = asciiLower(c)
	}
	return &sliceI{base: base{next: accept}, buf: folded}
}

func (p *parser) createGroup(anonymous bool) (*groupHead, *groupTail) {
	local := p.localCount
	p.localCount++
	group := -1
	if !anonymous {
		group = p.groupCount
		p.groupCount++
	}
	return &groupHead{base: base{next: accept}, local: local},
		&groupTail{base: base{next: accept}, local: local, group: group}
}

// group0 parses a parenthesized construct. It returns nil nodes for a bare
// flag group such as (?i), whose flags stay in effect.
func (p *parser) group0() (node, node, error) {
	capturing := false
	save := p.flags0
	saveTCN := len(p.topClosure)
	var head, tail node

	ch := p.next()
	if ch == '?' {
		ch = p.skip()
		switch ch {
		case ':':
			gh, gt, err := p.groupBody(true)
			if err != nil {
				return nil, nil, err
			}
			head, tail = gh, gt
		case '=', '!':
			gh, _, err := p.groupBody(true)
			if err != nil {
				return nil, nil, err
			}
			if ch == '=' {
				head = &pos{base: base{next: accept}, cond: gh}
			} else {
				head = &neg{base: base{next: accept}, cond: gh}
			}
			tail = head
		case '>':
			gh, _, err := p.groupBody(true)
			if err != nil {
				return nil, nil, err
			}
			head = &ques{base: base{next: accept}, atom: gh, kind: independent}
			tail = head
		case '<':
			ch = p.read()
			if ch != '=' && ch != '!' {
				name, err := p.groupName(ch)
				if err != nil {
					return nil, nil, err
				}
				if _, dup := p.names[name]; dup {
					return nil, nil, p.error(syntax.ErrDuplicateGroupName,
						"Named capturing group <"+name+"> is already defined")
				}
				capturing = true
				p.names[name] = p.groupCount
				gh, gt, err := p.groupBody(false)
				if err != nil {
					return nil, nil, err
				}
				head, tail = gh, gt
				break
			}
			gh, gt, err := p.groupBody(true)
			if err != nil {
				return nil, nil, err
			}
			gt.setNext(&lookBehindEnd{})
			info := newTreeInfo()
			gh.study(info)
			if !info.maxValid {
				return nil, nil, p.error(syntax.ErrUnboundedLookbehind,
					"Look-behind group does not have an obvious maximum length")
			}
			if ch == '=' {
				head = &behind{base: base{next: accept}, cond: gh, rmin: info.minLength, rmax: info.maxLength}
			} else {
				head = &notBehind{base: base{next: accept}, cond: gh, rmin: info.minLength, rmax: info.maxLength}
			}
			tail = head
			p.topClosure = p.topClosure[:saveTCN]
		case '$', '@':
			return nil, nil, p.error(syntax.ErrUnknownGroupType, "Unknown group type")
		default:
			p.unread()
			p.addFlag()
			ch = p.read()
			if ch == ')' {
				return nil, nil, nil
			}
			if ch != ':' {
				return nil, nil, p.error(syntax.ErrUnknownInlineModifier, "Unknown inline modifier")
			}
			gh, gt, err := p.groupBody(true)
			if err != nil {
				return nil, nil, err
			}
			head, tail = gh, gt
		}
	} else {
		capturing = true
		gh, gt, err := p.groupBody(false)
		if err != nil {
			return nil, nil, err
		}
		head, tail = gh, gt
	}

	if err := p.accept(')', syntax.ErrUnclosedGroup, "Unclosed group"); err != nil {
		return nil, nil, err
	}
	p.flags0 = save

	n, err := p.closure(head)
	if err != nil {
		return nil, nil, err
	}
	if n == head {
		return head, tail, nil
	}
	if head == tail {
		// Zero-width assertion.
		return n, n, nil
	}

	// Loops inside a repeated group are not memoized.
	p.topClosure = p.topClosure[:saveTCN]

	switch q := n.(type) {
	case *ques:
		if q.kind == possessive {
			return n, n, nil
		}
		conn := &branchConn{base: base{next: accept}}
		tail.setNext(conn)
		if q.kind == greedy {
			return newBranch(head, nil, conn), conn, nil
		}
		return newBranch(nil, head, conn), conn, nil
	case *curly:
		if q.kind == possessive {
			return n, n, nil
		}
		gh := head.(*groupHead)
		gt := tail.(*groupTail)
		if gh.study(newTreeInfo()) {
			gc := &groupCurly{
				base:    base{next: accept},
				atom:    gh.next,
				kind:    q.kind,
				cmin:    q.cmin,
				cmax:    q.cmax,
				local:   gt.local,
				group:   gt.group,
				capture: capturing,
			}
			return gc, gc, nil
		}
		l := loop{
			base:       base{next: accept},
			body:       gh,
			countIndex: p.localCount,
			beginIndex: gh.local,
			cmin:       q.cmin,
			cmax:       q.cmax,
			memoIndex:  -1,
		}
		p.localCount++
		var lp looper
		if q.kind == greedy {
			greedyLoop := &l
			if q.cmax == MaxRepetition {
				p.topClosure = append(p.topClosure, greedyLoop)
			}
			lp = greedyLoop
		} else {
			lp = &lazyLoop{loop: l}
		}
		gt.setNext(lp)
		return &prolog{base: base{next: accept}, loop: lp}, lp, nil
	}
	return nil, nil, p.error(syntax.ErrInternal, "Internal logic error")
}

// groupBody creates a group and parses its alternatives.
func (p *parser) groupBody(anonymous bool) (*groupHead, *groupTail, error) {
	gh, gt := p.createGroup(anonymous)
	body, err := p.expr(gt)
	if err != nil {
		return nil, nil, err
	}
	gh.setNext(body)
	return gh, gt, nil
}

// groupName parses a group name starting with ch up to the closing '>'.
func (p *parser) groupName(ch rune) (string, error) {
	if !isASCIIAlpha(ch) {
		return "", p.error(syntax.ErrBadGroupName, "capturing group name does not start with a Latin letter")
	}
	var name []rune
	for {
		name = append(name, ch)
		ch = p.read()
		if !isASCIIAlpha(ch) && !isASCIIDigit(ch) {
			break
		}
	}
	if ch != '>' {
		return "", p.error(syntax.ErrBadGroupName, "named capturing group is missing trailing '>'")
	}
	return string(name), nil
}

// addFlag parses inline flags such as i, m or -s.
func (p *parser) addFlag() {
	ch := p.peek()
	for {
		switch ch {
		case 'i':
			p.flags0 |= syntax.CaseInsensitive
		case 'm':
			p.flags0 |= syntax.Multiline
		case 's':
			p.flags0 |= syntax.DotAll
		case 'd':
			p.flags0 |= syntax.UnixLines
		case 'u':
			p.flags0 |= syntax.UnicodeCase
		case 'c':
			p.flags0 |= syntax.CanonEq
		case 'x':
			p.flags0 |= syntax.Comments
		case 'U':
			p.flags0 |= syntax.UnicodeCharacterClass | syntax.UnicodeCase
		case '-':
			p.next()
			p.subFlag()
			return
		default:
			return
		}
		ch = p.next()
	}
}

func (p *parser) subFlag() {
	ch := p.peek()
	for {
		switch ch {
		case 'i':
			p.flags0 &^= syntax.CaseInsensitive
		case 'm':
			p.flags0 &^= syntax.Multiline
		case 's':
			p.flags0 &^= syntax.DotAll
		case 'd':
			p.flags0 &^= syntax.UnixLines
		case 'u':
			p.flags0 &^= syntax.UnicodeCase
		case 'c':
			p.flags0 &^= syntax.CanonEq
		case 'x':
			p.flags0 &^= syntax.Comments
		case 'U':
			p.flags0 &^= syntax.UnicodeCharacterClass | syntax.UnicodeCase
		default:
			return
		}
		ch = p.next()
	}
}

// closure applies a quantifier following prev, if any.
func (p *parser) closure(prev node) (node, error) {
	switch p.peek() {
	case '?':
		kind := greedy
		switch p.next() {
		case '?':
			p.next()
			kind = lazy
		case '+':
			p.next()
			kind = possessive
		}
		return &ques{base: base{next: accept}, atom: prev, kind: kind}, nil
	case '*':
		return p.curly(prev, 0), nil
	case '+':
		return p.curly(prev, 1), nil
	case '{':
		ch := p.at(p.cursor + 1)
		if !isASCIIDigit(ch) {
			return nil, p.error(syntax.ErrIllegalRepetition, "Illegal repetition")
		}
		p.skip()
		overflow := false
		cmin := 0
		for {
			cmin, overflow = accumulate(cmin, ch, overflow)
			ch = p.read()
			if !isASCIIDigit(ch) {
				break
			}
		}
		cmax := cmin
		if ch == ',' {
			ch = p.read()
			cmax = MaxRepetition
			if ch != '}' {
				cmax = 0
				for isASCIIDigit(ch) {
					cmax, overflow = accumulate(cmax, ch, overflow)
					ch = p.read()
				}
			}
		}
		if ch != '}' {
			return nil, p.error(syntax.ErrUnclosedCountedClosure, "Unclosed counted closure")
		}
		if overflow || cmax < cmin {
			return nil, p.error(syntax.ErrIllegalRepetitionRange, "Illegal repetition range")
		}
		kind := greedy
		switch p.peek() {
		case '?':
			p.next()
			kind = lazy
		case '+':
			p.next()
			kind = possessive
		}
		if cp, ok := prev.(*charProperty); ok && kind == greedy && cmax == MaxRepetition {
			return newCharPropertyGreedy(cp, cmin), nil
		}
		return &curly{base: base{next: accept}, atom: prev, kind: kind, cmin: cmin, cmax: cmax}, nil
	}
	return prev, nil
}

func accumulate(v int, digit rune, overflow bool) (int, bool) {
	if overflow {
		return v, true
	}
	v = v*10 + int(digit-'0')
	return v, v > MaxRepetition
}

// curly handles * and +.
func (p *parser) curly(prev node, cmin int) node {
	switch p.next() {
	case '?':
		p.next()
		return &curly{base: base{next: accept}, atom: prev, kind: lazy, cmin: cmin, cmax: MaxRepetition}
	case '+':
		p.next()
		return &curly{base: base{next: accept}, atom: prev, kind: possessive, cmin: cmin, cmax: MaxRepetition}
	}
	if cp, ok := prev.(*charProperty); ok {
		return newCharPropertyGreedy(cp, cmin)
	}
	return &curly{base: base{next: accept}, atom: prev, kind: greedy, cmin: cmin, cmax: MaxRepetition}
}

func isASCIIAlpha(r rune) bool { return isASCIICased(r) }

func isASCIIDigit(r rune) bool { return '0' <= r && r <= '9' }

func isSpace(r rune) bool { return r == ' ' || ('\t' <= r && r <= '\r') }
