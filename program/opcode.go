// Package program defines the compiled regex bytecode layout and the
// primitive navigation operations over it.
//
// A Program is a flat byte slice: a one-byte magic number followed by a
// chain of three-byte nodes (opcode + big-endian uint16 "next" offset),
// some of which carry a NUL-terminated operand immediately after their
// header. The "graph" of the compiled NFA exists only as offsets between
// nodes in this byte slice; there are no pointers.
package program

import "fmt"

// Magic is the first byte of every compiled Program. An engine must refuse
// any byte slice that does not begin with this value.
const Magic byte = 0234

// Opcode identifies the behavior of a single program node.
type Opcode byte

// Node opcodes. OpenBase and CloseBase are base values for the per-group
// capture opcodes: group k (1 <= k <= 9) is encoded as OpenBase+k-1 and
// CloseBase+k-1 respectively, giving each of the nine usable groups its own
// opcode value exactly as the original design's OPEN+k/CLOSE+k scheme does.
const (
	End Opcode = iota
	Bol
	Eol
	Any
	AnyOf
	AnyBut
	Exactly
	Nothing
	Branch
	Back
	Star
	Plus
	WordStart
	WordEnd
	OpenBase
	_
	_
	_
	_
	_
	_
	_
	_
	_
	CloseBase
)

// NumGroups is the maximum number of usable capture groups (group 0, the
// whole match, plus groups 1..9).
const NumGroups = 10

// Open returns the OPEN opcode for group k (1 <= k <= 9).
func Open(k int) Opcode { return OpenBase + Opcode(k-1) }

// Close returns the CLOSE opcode for group k (1 <= k <= 9).
func Close(k int) Opcode { return CloseBase + Opcode(k-1) }

// OpenGroup returns the group number for an OPEN opcode, or 0 if op is not
// an OPEN opcode.
func OpenGroup(op Opcode) int {
	if op >= OpenBase && op < OpenBase+9 {
		return int(op-OpenBase) + 1
	}
	return 0
}

// CloseGroup returns the group number for a CLOSE opcode, or 0 if op is not
// a CLOSE opcode.
func CloseGroup(op Opcode) int {
	if op >= CloseBase && op < CloseBase+9 {
		return int(op-CloseBase) + 1
	}
	return 0
}

// String renders the opcode for debug output and test failure messages.
func (op Opcode) String() string {
	switch {
	case op >= OpenBase && op < OpenBase+9:
		return fmt.Sprintf("OPEN%d", OpenGroup(op))
	case op >= CloseBase && op < CloseBase+9:
		return fmt.Sprintf("CLOSE%d", CloseGroup(op))
	}
	switch op {
	case End:
		return "END"
	case Bol:
		return "BOL"
	case Eol:
		return "EOL"
	case Any:
		return "ANY"
	case AnyOf:
		return "ANYOF"
	case AnyBut:
		return "ANYBUT"
	case Exactly:
		return "EXACTLY"
	case Nothing:
		return "NOTHING"
	case Branch:
		return "BRANCH"
	case Back:
		return "BACK"
	case Star:
		return "STAR"
	case Plus:
		return "PLUS"
	case WordStart:
		return "WORDSTART"
	case WordEnd:
		return "WORDEND"
	default:
		return fmt.Sprintf("Opcode(%d)", byte(op))
	}
}

// HasOperand reports whether op carries an inline NUL-terminated operand
// immediately following its three-byte header (EXACTLY, ANYOF, ANYBUT).
func HasOperand(op Opcode) bool {
	return op == Exactly || op == AnyOf || op == AnyBut
}
