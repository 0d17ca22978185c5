// Package matcher implements the recursive-backtracking executor that runs
// a compiled program.Program against an input byte slice. Every Search
// call allocates its own matcher state; there is no shared or global state, so
// the same *program.Program can be searched concurrently from any number
// of goroutines.
package matcher

import (
	"bytes"
	"errors"

	"github.com/coregx/tinyregex/program"
)

// ErrCorruptProgram is returned when a program fails its magic-byte check
// or a match encounters an opcode byte that does not correspond to any
// known node type.
var ErrCorruptProgram = errors.New("corrupted program")

// Result holds the span of the overall match (group 0) and of each of the
// nine capture groups. A group that did not participate in the match has
// Valid[n] == false and its Start/End left at -1.
type Result struct {
	Start, End int
	GroupStart [program.NumGroups]int
	GroupEnd   [program.NumGroups]int
	Valid      [program.NumGroups]bool
}

// Group returns the captured span for group n (0 is the whole match), or
// (0, 0, false) if the group did not participate.
func (r *Result) Group(n int) (start, end int, ok bool) {
	if n < 0 || n >= program.NumGroups || !r.Valid[n] {
		return 0, 0, false
	}
	return r.GroupStart[n], r.GroupEnd[n], true
}

// matcher holds the mutable state of a single search attempt: the current
// input cursor and the capture slots being filled in as OPEN/CLOSE nodes
// are reached. A fresh matcher is built for every candidate start
// position Search tries.
type matcher struct {
	code    []byte
	input   []byte
	pos     int
	start   [program.NumGroups]int
	end     [program.NumGroups]int
	corrupt bool
}

func newMatcher(code, input []byte) *matcher {
	m := &matcher{code: code, input: input}
	for i := range m.start {
		m.start[i] = -1
		m.end[i] = -1
	}
	return m
}

// Search scans input starting at or after from for the leftmost position
// at which prog matches, trying progressively later start positions until
// one succeeds or the input is exhausted. It reports (Result, true, nil)
// on a match, (Result{}, false, nil) when no match exists, and a non-nil
// error only when prog itself is corrupt.
func Search(prog *program.Program, input []byte, from int) (Result, bool, error) {
	if !prog.Valid() {
		return Result{}, false, ErrCorruptProgram
	}
	if from < 0 {
		from = 0
	}

	if len(prog.Must) > 0 && from <= len(input) {
		if !bytes.Contains(input[from:], prog.Must) {
			return Result{}, false, nil
		}
	}

	if prog.Anchored {
		if from > 0 {
			return Result{}, false, nil
		}
		return attempt(prog, input, 0)
	}

	for pos := from; pos <= len(input); pos++ {
		if prog.HasStartByte {
			if pos >= len(input) || input[pos] != prog.StartByte {
				continue
			}
		}
		res, ok, err := attempt(prog, input, pos)
		if err != nil || ok {
			return res, ok, err
		}
	}
	return Result{}, false, nil
}

func attempt(prog *program.Program, input []byte, pos int) (Result, bool, error) {
	m := newMatcher(prog.Code, input)
	m.pos = pos
	m.start[0] = pos
	if !m.match(prog.Start()) {
		if m.corrupt {
			return Result{}, false, ErrCorruptProgram
		}
		return Result{}, false, nil
	}

	var res Result
	res.Start, res.End = m.start[0], m.end[0]
	res.Valid[0] = true
	res.GroupStart[0], res.GroupEnd[0] = res.Start, res.End
	for i := 1; i < program.NumGroups; i++ {
		if m.start[i] >= 0 && m.end[i] >= 0 {
			res.Valid[i] = true
			res.GroupStart[i] = m.start[i]
			res.GroupEnd[i] = m.end[i]
		} else {
			res.GroupStart[i], res.GroupEnd[i] = -1, -1
		}
	}
	return res, true, nil
}

// match runs the backtracking executor starting at the node scan,
// consuming input from m.pos onward. It returns true exactly when the
// rest of the program (from scan through END) can match the remaining
// input, leaving m.pos at the end of the consumed span and any OPEN/CLOSE
// nodes along the successful path recorded into m.start/m.end.
func (m *matcher) match(scan int) bool {
	for scan >= 0 {
		op := program.ReadOp(m.code, scan)
		next := program.Next(m.code, scan)

		switch {
		case op == program.Bol:
			if m.pos != 0 {
				return false
			}
		case op == program.Eol:
			if m.pos != len(m.input) {
				return false
			}
		case op == program.WordStart:
			if !atWordStart(m.input, m.pos) {
				return false
			}
		case op == program.WordEnd:
			if !atWordEnd(m.input, m.pos) {
				return false
			}
		case op == program.Any:
			if m.pos >= len(m.input) {
				return false
			}
			m.pos++
		case op == program.Exactly:
			lit, _ := program.ReadCString(m.code, program.Operand(scan))
			if m.pos+len(lit) > len(m.input) || !bytes.Equal(m.input[m.pos:m.pos+len(lit)], lit) {
				return false
			}
			m.pos += len(lit)
		case op == program.AnyOf:
			set, _ := program.ReadCString(m.code, program.Operand(scan))
			if m.pos >= len(m.input) || !containsByte(set, m.input[m.pos]) {
				return false
			}
			m.pos++
		case op == program.AnyBut:
			set, _ := program.ReadCString(m.code, program.Operand(scan))
			if m.pos >= len(m.input) || containsByte(set, m.input[m.pos]) {
				return false
			}
			m.pos++
		case op == program.Nothing || op == program.Back:
			// zero-width: fall through to next.
		case program.OpenGroup(op) != 0:
			no := program.OpenGroup(op)
			save := m.pos
			if m.match(next) {
				if m.start[no] < 0 {
					m.start[no] = save
				}
				return true
			}
			return false
		case program.CloseGroup(op) != 0:
			no := program.CloseGroup(op)
			save := m.pos
			if m.match(next) {
				if m.end[no] < 0 {
					m.end[no] = save
				}
				return true
			}
			return false
		case op == program.Branch:
			if next < 0 || program.ReadOp(m.code, next) != program.Branch {
				scan = program.Operand(scan)
				continue
			}
			save := m.pos
			for {
				if m.match(program.Operand(scan)) {
					return true
				}
				m.pos = save
				scan = program.Next(m.code, scan)
				if scan < 0 || program.ReadOp(m.code, scan) != program.Branch {
					return false
				}
			}
		case op == program.Star || op == program.Plus:
			return m.repeat(scan, next, op)
		case op == program.End:
			m.end[0] = m.pos
			return true
		default:
			m.corrupt = true
			return false
		}
		scan = next
	}
	return false
}

// repeat implements the inline fast path for STAR/PLUS wrapping a simple
// (single byte-consuming) operand: it counts the longest greedy run the
// operand can consume with a tight loop (no recursion), then backtracks
// that count down to the operator's minimum, trying the continuation at
// each length.
func (m *matcher) repeat(scan, next int, op program.Opcode) bool {
	operand := program.Operand(scan)
	save := m.pos
	min := 0
	if op == program.Plus {
		min = 1
	}

	count := m.repeatCount(operand)

	var nextByte byte
	hasNextByte := false
	if next >= 0 && program.ReadOp(m.code, next) == program.Exactly {
		lit, _ := program.ReadCString(m.code, program.Operand(next))
		if len(lit) > 0 {
			nextByte, hasNextByte = lit[0], true
		}
	}

	for n := count; n >= min; n-- {
		m.pos = save + n
		if hasNextByte && (m.pos >= len(m.input) || m.input[m.pos] != nextByte) {
			continue
		}
		if m.match(next) {
			return true
		}
	}
	m.pos = save
	return false
}

// repeatCount reports how many consecutive bytes starting at m.pos the
// simple node at operand can consume.
func (m *matcher) repeatCount(operand int) int {
	pos := m.pos
	switch program.ReadOp(m.code, operand) {
	case program.Any:
		return len(m.input) - pos
	case program.Exactly:
		lit, _ := program.ReadCString(m.code, program.Operand(operand))
		if len(lit) == 0 {
			return 0
		}
		c := lit[0]
		n := 0
		for pos < len(m.input) && m.input[pos] == c {
			pos++
			n++
		}
		return n
	case program.AnyOf:
		set, _ := program.ReadCString(m.code, program.Operand(operand))
		n := 0
		for pos < len(m.input) && containsByte(set, m.input[pos]) {
			pos++
			n++
		}
		return n
	case program.AnyBut:
		set, _ := program.ReadCString(m.code, program.Operand(operand))
		n := 0
		for pos < len(m.input) && !containsByte(set, m.input[pos]) {
			pos++
			n++
		}
		return n
	default:
		return 0
	}
}

func containsByte(set []byte, b byte) bool {
	for _, c := range set {
		if c == b {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func atWordStart(input []byte, pos int) bool {
	if pos >= len(input) || !isWordByte(input[pos]) {
		return false
	}
	return pos == 0 || !isWordByte(input[pos-1])
}

func atWordEnd(input []byte, pos int) bool {
	if pos == 0 || !isWordByte(input[pos-1]) {
		return false
	}
	return pos >= len(input) || !isWordByte(input[pos])
}
