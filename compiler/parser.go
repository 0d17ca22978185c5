package compiler

import "github.com/coregx/tinyregex/program"

// atomFlags summarizes what a parsed construct is known to do, threaded
// back up through piece/branch/alt so a repetition operator can refuse an
// operand that could match the empty string and so the top-level compiler
// can extract optimisation hints.
type atomFlags uint8

const (
	// hasWidth means the construct is guaranteed to consume at least one
	// byte whenever it matches at all.
	hasWidth atomFlags = 1 << iota
	// simple means the construct is a single byte-consuming node (ANY,
	// ANYOF, ANYBUT, or a one-byte EXACTLY) and so is eligible for the
	// inline STAR/PLUS fast path instead of the generic BRANCH/BACK loop.
	simple
	// spStart means the construct may start with a repeated sub-pattern,
	// the signal the compiler uses to decide whether a must-literal scan
	// is worth running.
	spStart
)

// parser runs the grammar once against an Options.Excompat-tokenized
// pattern, emitting nodes through an Emitter. Running it twice (once with a
// sizing Emitter, once with a buffer Emitter of the measured size)
// implements the two-pass compilation strategy; the parser itself holds no
// state beyond this one compilation, so nothing here is shared across
// calls to Compile.
type parser struct {
	toks     []uint16
	pos      int
	groupNum int // next capture group number to allocate, 1-based
	emit     *program.Emitter
}

func (p *parser) more() bool { return p.pos < len(p.toks) }

func (p *parser) cur() uint16 { return p.toks[p.pos] }

func (p *parser) advance() { p.pos++ }

func (p *parser) atSpecial(ch byte) bool {
	return p.more() && isSpecialTok(p.cur()) && tokByte(p.cur()) == ch
}

// alt parses "branch ('|' branch)*" and, when paren is true, the
// surrounding OPEN/CLOSE pair consumed by a "(" atom. It returns the
// position of the first BRANCH node (or the OPEN node when paren).
func (p *parser) alt(paren bool) (ret int, flags atomFlags, err error) {
	var parno int
	if paren {
		if p.groupNum > 9 {
			return 0, 0, ErrTooManyGroups
		}
		parno = p.groupNum
		p.groupNum++
		ret = p.emit.EmitNode(program.Open(parno))
	}

	br, bflags, err := p.branch()
	if err != nil {
		return 0, 0, err
	}
	if paren {
		p.emit.SetTail(ret, br)
	} else {
		ret = br
	}

	flags = hasWidth
	if bflags&hasWidth == 0 {
		flags &^= hasWidth
	}
	flags |= bflags & spStart

	for p.atSpecial('|') {
		p.advance()
		br2, bflags2, err := p.branch()
		if err != nil {
			return 0, 0, err
		}
		p.emit.SetTail(ret, br2)
		if bflags2&hasWidth == 0 {
			flags &^= hasWidth
		}
		flags |= bflags2 & spStart
	}

	var ender int
	if paren {
		ender = p.emit.EmitNode(program.Close(parno))
	} else {
		ender = p.emit.EmitNode(program.End)
	}
	p.emit.SetTail(ret, ender)
	for br3 := ret; br3 != 0; {
		p.emit.SetTailOperand(br3, ender)
		next := p.emit.NextOf(br3)
		if next < 0 {
			break
		}
		br3 = next
	}

	if paren {
		if !p.atSpecial(')') {
			return 0, 0, ErrUnmatchedParen
		}
		p.advance()
	} else if p.more() {
		if p.atSpecial(')') {
			return 0, 0, ErrUnmatchedParen
		}
		return 0, 0, ErrJunkAtEnd
	}

	return ret, flags, nil
}

// branch parses a concatenation of pieces, stopping at "|", ")", or the end
// of the pattern.
func (p *parser) branch() (ret int, flags atomFlags, err error) {
	ret = p.emit.EmitNode(program.Branch)
	chain := 0

	for p.more() && !p.atSpecial('|') && !p.atSpecial(')') {
		latest, pflags, err := p.piece()
		if err != nil {
			return 0, 0, err
		}
		flags |= pflags & hasWidth
		if chain == 0 {
			flags |= pflags & spStart
			chain = latest
		} else {
			p.emit.SetTail(chain, latest)
			chain = latest
		}
	}
	if chain == 0 {
		p.emit.EmitNode(program.Nothing)
	}
	return ret, flags, nil
}

// piece parses a single atom followed by an optional "*", "+", or "?".
func (p *parser) piece() (pos int, flags atomFlags, err error) {
	start, aflags, err := p.atom()
	if err != nil {
		return 0, 0, err
	}
	if !p.more() || !isSpecialTok(p.cur()) {
		return start, aflags, nil
	}
	op := tokByte(p.cur())
	if op != '*' && op != '+' && op != '?' {
		return start, aflags, nil
	}

	if aflags&hasWidth == 0 && op != '?' {
		return 0, 0, ErrEmptyOperand
	}

	if op != '+' {
		flags = spStart
	} else {
		flags = hasWidth | spStart
	}

	switch {
	case op == '*' && aflags&simple != 0:
		p.emit.InsertOp(program.Star, start)
	case op == '*':
		p.emit.InsertOp(program.Branch, start)
		back := p.emit.EmitNode(program.Back)
		p.emit.SetTailOperand(start, back)
		p.emit.SetTailOperand(start, start)
		br2 := p.emit.EmitNode(program.Branch)
		p.emit.SetTail(start, br2)
		nothing := p.emit.EmitNode(program.Nothing)
		p.emit.SetTail(start, nothing)
	case op == '+' && aflags&simple != 0:
		p.emit.InsertOp(program.Plus, start)
	case op == '+':
		next := p.emit.EmitNode(program.Branch)
		p.emit.SetTail(start, next)
		back := p.emit.EmitNode(program.Back)
		p.emit.SetTail(back, start)
		br2 := p.emit.EmitNode(program.Branch)
		p.emit.SetTail(next, br2)
		nothing := p.emit.EmitNode(program.Nothing)
		p.emit.SetTail(next, nothing)
	case op == '?':
		p.emit.InsertOp(program.Branch, start)
		br2 := p.emit.EmitNode(program.Branch)
		p.emit.SetTail(start, br2)
		nothing := p.emit.EmitNode(program.Nothing)
		p.emit.SetTail(start, nothing)
		p.emit.SetTailOperand(start, nothing)
	}

	p.advance()
	if p.more() && isSpecialTok(p.cur()) {
		switch tokByte(p.cur()) {
		case '*', '+', '?':
			return 0, 0, ErrNestedRepeat
		}
	}

	return start, flags, nil
}

// atom parses the smallest unit of the grammar: a single metacharacter
// construct, a character class, a group, or a run of literal bytes.
func (p *parser) atom() (pos int, flags atomFlags, err error) {
	if !p.more() {
		return 0, 0, ErrMissingOperand
	}
	t := p.cur()
	if isSpecialTok(t) {
		switch tokByte(t) {
		case '.':
			p.advance()
			return p.emit.EmitNode(program.Any), hasWidth | simple, nil
		case '^':
			p.advance()
			return p.emit.EmitNode(program.Bol), 0, nil
		case '$':
			p.advance()
			return p.emit.EmitNode(program.Eol), 0, nil
		case '<':
			p.advance()
			return p.emit.EmitNode(program.WordStart), 0, nil
		case '>':
			p.advance()
			return p.emit.EmitNode(program.WordEnd), 0, nil
		case '[':
			return p.class()
		case '(':
			p.advance()
			return p.alt(true)
		case '*', '+', '?':
			return 0, 0, ErrEmptyOperand
		case '|', ')':
			return 0, 0, ErrMissingOperand
		}
	}
	return p.literalRun()
}

// literalRun consumes the longest prefix of non-special, non-"]" bytes
// (always at least one, even if that first byte is itself an unescaped
// "]" with no open class to close). If the run is longer than one byte and
// a repetition operator immediately follows, the last byte is peeled back
// off so the operator applies to it alone.
func (p *parser) literalRun() (pos int, flags atomFlags, err error) {
	start := p.pos
	p.advance()
	for p.more() {
		t := p.cur()
		if isSpecialTok(t) || tokByte(t) == ']' {
			break
		}
		p.advance()
	}
	run := p.toks[start:p.pos]

	if len(run) > 1 && p.more() && isSpecialTok(p.cur()) {
		switch tokByte(p.cur()) {
		case '*', '+', '?':
			run = run[:len(run)-1]
			p.pos--
		}
	}

	pos = p.emit.EmitNode(program.Exactly)
	buf := make([]byte, len(run))
	for i, t := range run {
		buf[i] = tokByte(t)
	}
	p.emit.EmitString(buf)

	flags = hasWidth
	if len(run) == 1 {
		flags |= simple
	}
	return pos, flags, nil
}

// class parses a "[...]" character class body: p.pos is positioned at the
// "[" token on entry. A leading "^" negates the set; a leading "]" or "-"
// (the very first body byte) is taken literally rather than as the closer
// or a range operator; "a-z" expands to every byte in [a,z].
func (p *parser) class() (pos int, flags atomFlags, err error) {
	p.advance() // consume '['
	negate := false
	if p.atSpecial('^') {
		negate = true
		p.advance()
	}

	var seen [256]bool
	var set []byte
	first := true
	closed := false

	for p.more() {
		t := p.cur()
		if !first && !isSpecialTok(t) && tokByte(t) == ']' {
			p.advance()
			closed = true
			break
		}

		if p.pos+2 < len(p.toks) {
			next := p.toks[p.pos+1]
			after := p.toks[p.pos+2]
			isDash := !isSpecialTok(next) && tokByte(next) == '-'
			closesAfter := !isSpecialTok(after) && tokByte(after) == ']'
			if isDash && !closesAfter {
				lo, hi := tokByte(t), tokByte(after)
				if int(lo) > int(hi)+1 {
					return 0, 0, ErrInvalidRange
				}
				for c := int(lo); c <= int(hi); c++ {
					if !seen[c] {
						seen[c] = true
						set = append(set, byte(c))
					}
				}
				p.pos += 3
				first = false
				continue
			}
		}

		b := tokByte(t)
		if !seen[b] {
			seen[b] = true
			set = append(set, b)
		}
		p.advance()
		first = false
	}

	if !closed {
		return 0, 0, ErrUnmatchedBracket
	}

	op := program.AnyOf
	if negate {
		op = program.AnyBut
	}
	pos = p.emit.EmitNode(op)
	p.emit.EmitString(set)
	return pos, hasWidth | simple, nil
}
