package program

// Emitter accumulates a Program's bytecode. It runs in one of two modes,
// selected by NewSizer/NewBuffer:
//
//   - sizing mode: nothing is actually written; EmitNode/EmitByte only
//     advance a running byte count. EmitNode always returns the position
//     of a shared scratch node, so code that chases next-pointers through
//     positions returned during sizing harmlessly walks the same
//     zero-offset scratch node and stops immediately.
//   - buffer mode: bytes are actually appended to Code, and EmitNode
//     returns the real position just written.
//
// This mirrors the two-pass size-then-emit strategy from the node layout
// spec: run the parser once against a sizing Emitter to learn the byte
// count, allocate a buffer of exactly that size, then run the parser again
// against a buffer Emitter to produce the final Program.
type Emitter struct {
	sizing bool
	size   int
	code   []byte
	scratch [NodeSize]byte
}

// NewSizer returns an Emitter that only counts bytes.
func NewSizer() *Emitter {
	return &Emitter{sizing: true}
}

// NewBuffer returns an Emitter that writes into a buffer preallocated to
// cap bytes (typically the Size() measured by a prior sizing pass).
func NewBuffer(cap int) *Emitter {
	code := make([]byte, 0, cap)
	code = append(code, Magic)
	return &Emitter{code: code}
}

// Size returns the number of bytes emitted so far (meaningful in either
// mode, including the leading magic byte once a buffer has been started).
func (e *Emitter) Size() int {
	if e.sizing {
		return e.size + 1 // +1 for the magic byte charged by NewBuffer
	}
	return len(e.code)
}

// Code returns the accumulated bytecode (buffer mode only).
func (e *Emitter) Code() []byte {
	return e.code
}

// EmitNode appends a node header (opcode, next=0) and returns its position.
// In sizing mode it returns 0, the position of the shared scratch node.
func (e *Emitter) EmitNode(op Opcode) int {
	if e.sizing {
		e.size += NodeSize
		return 0
	}
	pos := len(e.code)
	e.code = append(e.code, byte(op), 0, 0)
	return pos
}

// EmitByte appends a single raw byte (used for operand bytes).
func (e *Emitter) EmitByte(b byte) {
	if e.sizing {
		e.size++
		return
	}
	e.code = append(e.code, b)
}

// EmitString appends s followed by a terminating NUL.
func (e *Emitter) EmitString(s []byte) {
	for _, b := range s {
		e.EmitByte(b)
	}
	e.EmitByte(0)
}

// InsertOp shifts every byte from at onward three bytes to the right and
// writes a new node header (op, next=0) at at. Used by the repetition
// operators to wrap an already-emitted operand in STAR/PLUS/BRANCH.
func (e *Emitter) InsertOp(op Opcode, at int) {
	if e.sizing {
		e.size += NodeSize
		return
	}
	e.code = append(e.code, 0, 0, 0)
	copy(e.code[at+NodeSize:], e.code[at:len(e.code)-NodeSize])
	e.code[at] = byte(op)
	e.code[at+1] = 0
	e.code[at+2] = 0
}

// opAt returns the opcode at pos in buffer mode, or Nothing while sizing
// (where pos is always the shared scratch node, whose content is
// irrelevant to the chains being walked).
func (e *Emitter) opAt(pos int) Opcode {
	if e.sizing {
		return Nothing
	}
	return Opcode(e.code[pos])
}

// nextOf mirrors Next but operates against the Emitter's own buffer while
// it is still being built (Next itself requires a finished []byte).
func (e *Emitter) nextOf(pos int) int {
	if e.sizing {
		return -1
	}
	return Next(e.code, pos)
}

// setOffset writes the two-byte offset between a node at pos and its
// target val into the node's header.
func (e *Emitter) setOffset(pos int, val int) {
	if e.sizing {
		return
	}
	var off int
	if Opcode(e.code[pos]) == Back {
		off = pos - val
	} else {
		off = val - pos
	}
	e.code[pos+1] = byte(off >> 8)
	e.code[pos+2] = byte(off)
}

// NextOf exposes nextOf to callers outside the package (the compiler walks
// sibling chains while a program is still mid-emission, before a finished
// []byte exists for the package-level Next to operate on).
func (e *Emitter) NextOf(pos int) int {
	return e.nextOf(pos)
}

// SetTail walks the next-pointer chain starting at p until it finds the
// last node (next-offset == 0), then links that node to val.
func (e *Emitter) SetTail(p int, val int) {
	if e.sizing || p == 0 {
		return
	}
	scan := p
	for {
		next := e.nextOf(scan)
		if next < 0 {
			break
		}
		scan = next
	}
	e.setOffset(scan, val)
}

// SetTailOperand is identical to SetTail but walks the chain starting at
// the operand position of p; it is a no-op unless opcode(p) is BRANCH.
func (e *Emitter) SetTailOperand(p int, val int) {
	if e.sizing || p == 0 {
		return
	}
	if e.opAt(p) != Branch {
		return
	}
	e.SetTail(Operand(p), val)
}
