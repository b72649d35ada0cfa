package mos6502

// 6502 Addressing Modes
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect
	INDIRECT_Y // Indirect Indexed
)

var modenames map[uint8]string = map[uint8]string{IMPLICIT: "IMPLICIT", ACCUMULATOR: "ACCUMULATOR", IMMEDIATE: "IMMEDIATE", ZERO_PAGE: "ZERO_PAGE", ZERO_PAGE_X: "ZERO_PAGE_X", ZERO_PAGE_Y: "ZERO_PAGE_Y", RELATIVE: "RELATIVE", ABSOLUTE: "ABSOLUTE", ABSOLUTE_X: "ABSOLUTE_X", ABSOLUTE_Y: "ABSOLUTE_Y", INDIRECT: "INDIRECT", INDIRECT_X: "INDIRECT_X", INDIRECT_Y: "INDIRECT_Y"}

// operandBytes is the number of bytes following the opcode for each
// addressing mode.
var operandBytes = [...]uint16{
	IMPLICIT:    0,
	ACCUMULATOR: 0,
	IMMEDIATE:   1,
	ZERO_PAGE:   1,
	ZERO_PAGE_X: 1,
	ZERO_PAGE_Y: 1,
	RELATIVE:    1,
	ABSOLUTE:    2,
	ABSOLUTE_X:  2,
	ABSOLUTE_Y:  2,
	INDIRECT:    2,
	INDIRECT_X:  1,
	INDIRECT_Y:  1,
}

// operand is a resolved instruction operand.
type operand struct {
	mode uint8
	// addr is the effective address. For IMMEDIATE it is the
	// address of the immediate byte, for RELATIVE the branch target.
	addr uint16
	// base is the address before indexing for ABSOLUTE_X, ABSOLUTE_Y
	// and INDIRECT_Y, and the pointer for INDIRECT and INDIRECT_X.
	base uint16
	// crossed is set when indexing moved addr to a different page
	// than base. Only ABSOLUTE_X, ABSOLUTE_Y and INDIRECT_Y set it.
	crossed bool
}

// resolve decodes the operand for mode at the program counter and
// moves the program counter past it.
func (c *CPU) resolve(mode uint8) operand {
	o := c.locate(mode, c.pc, c.read)
	c.pc += operandBytes[mode]
	return o
}

// locate decodes the operand for mode whose first byte is at. It
// doesn't touch cpu state, so the tracer can use it with peek.
func (c *CPU) locate(mode uint8, at uint16, rd func(uint16) uint8) operand {
	o := operand{mode: mode}

	switch mode {
	case IMPLICIT, ACCUMULATOR:
	case IMMEDIATE:
		o.addr = at
	case ZERO_PAGE:
		o.addr = uint16(rd(at))
	case ZERO_PAGE_X:
		// Zero page indexing wraps within page zero
		o.addr = uint16(rd(at) + c.x)
	case ZERO_PAGE_Y:
		o.addr = uint16(rd(at) + c.y)
	case RELATIVE:
		// The offset is signed and relative to the next instruction
		o.addr = at + 1 + uint16(int8(rd(at)))
	case ABSOLUTE:
		o.addr = readWord(rd, at)
	case ABSOLUTE_X:
		o.base = readWord(rd, at)
		o.addr = o.base + uint16(c.x)
		o.crossed = pageCrossed(o.base, o.addr)
	case ABSOLUTE_Y:
		o.base = readWord(rd, at)
		o.addr = o.base + uint16(c.y)
		o.crossed = pageCrossed(o.base, o.addr)
	case INDIRECT:
		o.base = readWord(rd, at)
		o.addr = readWordSamePage(rd, o.base)
	case INDIRECT_X:
		o.base = uint16(rd(at) + c.x)
		o.addr = readZeroPageWord(rd, uint8(o.base))
	case INDIRECT_Y:
		o.base = readZeroPageWord(rd, rd(at))
		o.addr = o.base + uint16(c.y)
		o.crossed = pageCrossed(o.base, o.addr)
	}

	return o
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

func readWord(rd func(uint16) uint8, addr uint16) uint16 {
	return uint16(rd(addr+1))<<8 | uint16(rd(addr))
}

// readZeroPageWord reads a pointer stored in page zero. A pointer at
// 0xFF takes its high byte from 0x00.
func readZeroPageWord(rd func(uint16) uint8, zp uint8) uint16 {
	return uint16(rd(uint16(zp+1)))<<8 | uint16(rd(uint16(zp)))
}

// readWordSamePage reproduces the indirect JMP bug: the high byte is
// fetched without carrying into the page, so a pointer at 0x30FF
// reads 0x30FF and 0x3000.
func readWordSamePage(rd func(uint16) uint8, addr uint16) uint16 {
	hi := (addr & 0xFF00) | uint16(uint8(addr)+1)
	return uint16(rd(hi))<<8 | uint16(rd(addr))
}
