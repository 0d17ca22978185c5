package compiler

import "github.com/coregx/tinyregex/program"

// maxProgramSize is the hard ceiling on a compiled program's byte length,
// which keeps every node-to-node distance within the two-byte next field
// (an unsigned magnitude, subtracted for BACK and added otherwise).
const maxProgramSize = 32766

// Options controls pattern-dialect details the tokenizer needs to know
// about before parsing begins.
type Options struct {
	// Excompat swaps the roles of "(" ")" and "\(" "\)": when true, bare
	// parentheses open and close groups and a backslash before one makes
	// it literal. When false (the default), groups are written "\(...\)"
	// and a bare "(" or ")" is an ordinary literal byte.
	Excompat bool
}

// DefaultOptions returns the zero-value Options (Excompat disabled).
func DefaultOptions() Options {
	return Options{}
}

// Compile parses pattern into a program.Program. It runs the grammar twice:
// once against a sizing Emitter to measure the bytecode, then again against
// a buffer Emitter of exactly that size to produce the final program. Both
// passes walk the same token stream and take the same branches, so they
// always agree on the byte count.
func Compile(pattern string, opts Options) (*program.Program, error) {
	toks, err := tokenize(pattern, opts.Excompat)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	sizer := program.NewSizer()
	sizePass := &parser{toks: toks, groupNum: 1, emit: sizer}
	if _, _, err := sizePass.alt(false); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	size := sizer.Size()
	if size > maxProgramSize {
		return nil, &CompileError{Pattern: pattern, Err: ErrTooBig}
	}

	buf := program.NewBuffer(size)
	emitPass := &parser{toks: toks, groupNum: 1, emit: buf}
	ret, flags, err := emitPass.alt(false)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	code := buf.Code()
	prog := &program.Program{
		Code:        code,
		NumCaptures: emitPass.groupNum - 1,
	}
	computeHints(prog, code, ret, flags)
	return prog, nil
}

// computeHints extracts the optimisation hints a matcher can use to reject
// candidate start positions cheaply: a required start byte, an anchored
// flag, and a "must contain this literal somewhere" guarantee.
func computeHints(prog *program.Program, code []byte, ret int, flags atomFlags) {
	if program.ReadOp(code, ret) != program.Branch {
		return
	}
	enderPos := program.Next(code, ret)
	singleAlt := enderPos >= 0 && program.ReadOp(code, enderPos) == program.End
	firstOp := program.Operand(ret)

	if !singleAlt {
		return
	}

	switch program.ReadOp(code, firstOp) {
	case program.Exactly:
		operand, _ := program.ReadCString(code, program.Operand(firstOp))
		if len(operand) > 0 {
			prog.HasStartByte = true
			prog.StartByte = operand[0]
		}
	case program.Bol:
		prog.Anchored = true
	}

	if flags&spStart == 0 {
		return
	}

	var best []byte
	pos := firstOp
	for pos >= 0 {
		if program.ReadOp(code, pos) == program.Exactly {
			operand, _ := program.ReadCString(code, program.Operand(pos))
			if len(operand) >= len(best) {
				best = operand
			}
		}
		pos = program.Next(code, pos)
	}
	if len(best) > 0 {
		prog.Must = append([]byte(nil), best...)
	}
}
