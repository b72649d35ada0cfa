package mos6502

import (
	"fmt"
	"io"
	"strings"
)

// Snapshot is the cpu state immediately before an instruction
// executes, along with the decoded instruction.
type Snapshot struct {
	PC         uint16
	Bytes      []uint8 // opcode followed by any operand bytes
	Mnemonic   string
	Unofficial bool
	Operand    string // assembler syntax, with the memory it touches
	A, X, Y    uint8
	P, SP      uint8
	Cycles     uint64 // cycles elapsed before this instruction
}

// Tracer receives a Snapshot before each instruction executes.
type Tracer interface {
	Trace(Snapshot)
}

// TraceFunc adapts a plain function to a Tracer.
type TraceFunc func(Snapshot)

func (f TraceFunc) Trace(s Snapshot) {
	f(s)
}

// TraceWriter writes one nestest formatted line per instruction. It
// stops writing after the first error, which Err reports.
type TraceWriter struct {
	w   io.Writer
	err error
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

func (tw *TraceWriter) Trace(s Snapshot) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, s)
}

func (tw *TraceWriter) Err() error {
	return tw.err
}

// String renders s in the nestest.log layout, eg:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD CYC:7
func (s Snapshot) String() string {
	return fmt.Sprintf("%-47s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d", s.asm(), s.A, s.X, s.Y, s.P, s.SP, s.Cycles)
}

// asm is the address, raw bytes and disassembly columns.
func (s Snapshot) asm() string {
	hex := make([]string, len(s.Bytes))
	for i, b := range s.Bytes {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	mark := " "
	if s.Unofficial {
		mark = "*"
	}

	line := fmt.Sprintf("%04X  %-8s %s%s %s", s.PC, strings.Join(hex, " "), mark, s.Mnemonic, s.Operand)
	return strings.TrimRight(line, " ")
}

// Capture returns the snapshot the tracer would see if the
// instruction at the program counter executed next.
func (c *CPU) Capture() Snapshot {
	b := c.peek(c.pc)
	s := c.snapshot(decode(b))
	if s.Mnemonic == "" {
		s.Bytes = []uint8{b}
		s.Mnemonic = "???"
		s.Unofficial = true
	}
	return s
}

// Disassemble returns the instruction at addr as it would appear in a
// trace line, without the register columns. Register dependent
// operands use the current register values.
func (c *CPU) Disassemble(addr uint16) string {
	s := Snapshot{PC: addr}
	op := decode(c.peek(addr))
	if op.exec == nil {
		s.Bytes = []uint8{c.peek(addr)}
		s.Mnemonic = "???"
		s.Unofficial = true
		return s.asm()
	}

	s.Mnemonic = op.name
	s.Bytes, s.Operand = c.disassemble(addr, op)
	return s.asm()
}

func (c *CPU) snapshot(op opcode) Snapshot {
	s := Snapshot{
		PC:       c.pc,
		Mnemonic: op.name,
		A:        c.acc,
		X:        c.x,
		Y:        c.y,
		P:        c.Status(),
		SP:       c.sp,
		Cycles:   c.cycles,
	}
	s.Bytes, s.Operand = c.disassemble(c.pc, op)

	return s
}

// disassemble returns the raw bytes of the instruction op at pc and its
// operand text. All memory access goes through peek.
func (c *CPU) disassemble(pc uint16, op opcode) ([]uint8, string) {
	b := make([]uint8, op.bytes)
	for i := range b {
		b[i] = c.peek(pc + uint16(i))
	}

	o := c.locate(op.mode, pc+1, c.peek)

	switch op.mode {
	case ACCUMULATOR:
		return b, "A"
	case IMMEDIATE:
		return b, fmt.Sprintf("#$%02X", b[1])
	case ZERO_PAGE:
		return b, fmt.Sprintf("$%02X = %02X", o.addr, c.peek(o.addr))
	case ZERO_PAGE_X:
		return b, fmt.Sprintf("$%02X,X @ %02X = %02X", b[1], o.addr, c.peek(o.addr))
	case ZERO_PAGE_Y:
		return b, fmt.Sprintf("$%02X,Y @ %02X = %02X", b[1], o.addr, c.peek(o.addr))
	case RELATIVE:
		return b, fmt.Sprintf("$%04X", o.addr)
	case ABSOLUTE:
		// Control flow targets aren't data, so there's no value shown
		if op.inst == JMP || op.inst == JSR {
			return b, fmt.Sprintf("$%04X", o.addr)
		}
		return b, fmt.Sprintf("$%04X = %02X", o.addr, c.peek(o.addr))
	case ABSOLUTE_X:
		return b, fmt.Sprintf("$%04X,X @ %04X = %02X", o.base, o.addr, c.peek(o.addr))
	case ABSOLUTE_Y:
		return b, fmt.Sprintf("$%04X,Y @ %04X = %02X", o.base, o.addr, c.peek(o.addr))
	case INDIRECT:
		return b, fmt.Sprintf("($%04X) = %04X", o.base, o.addr)
	case INDIRECT_X:
		return b, fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", b[1], o.base, o.addr, c.peek(o.addr))
	case INDIRECT_Y:
		return b, fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", b[1], o.base, o.addr, c.peek(o.addr))
	}

	return b, ""
}
