// package mos6502 implements the MOS Technologies 6502 processor as
// found in the NES. The NES variant has decimal mode disabled, so all
// arithmetic here is binary regardless of the D flag.
package mos6502

import (
	"context"
	"fmt"
)

// Interrupt vectors
const (
	NMI_VECTOR   = 0xFFFA
	RESET_VECTOR = 0xFFFC
	IRQ_VECTOR   = 0xFFFE
)

const (
	STACK_PAGE       = 0x0100
	STACK_RESET      = 0xFD // where the stack pointer lands after the reset sequence
	RESET_CYCLES     = 7
	INTERRUPT_CYCLES = 7
)

// Bus is the 16 bit address space the cpu runs against. Whatever
// lives behind an address (ram, cartridge, device registers) is
// opaque to the cpu.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Peeker is implemented by buses that can return the value at an
// address without triggering any device side effects. The tracer and
// the disassembler use it when available.
type Peeker interface {
	Peek(addr uint16) uint8
}

// type CPU implements all of the machine state for the 6502
type CPU struct {
	acc    uint8  // main register
	x, y   uint8  // index registers
	status uint8  // a register for storing various status bits
	sp     uint8  // stack pointer - stack is 0x0100-0x01FF so only 8 bits needed
	pc     uint16 // the program counter

	bus    Bus
	cycles uint64 // total cycles elapsed since reset
	nmi    bool   // nmi requested, serviced before the next fetch
	irq    bool   // irq requested, held while interrupts are disabled

	tracer Tracer
}

// New returns a cpu wired to b that has been through the reset
// sequence, so the reset vector must already be readable from b.
func New(b Bus) *CPU {
	c := &CPU{bus: b}
	c.Reset()
	return c
}

// Reset puts the cpu into its power up state and loads the program
// counter from the reset vector.
func (c *CPU) Reset() {
	c.acc, c.x, c.y = 0, 0, 0
	c.sp = STACK_RESET
	c.status = STATUS_FLAG_INTERRUPT_DISABLE | STATUS_FLAG_UNUSED
	c.pc = c.read16(RESET_VECTOR)
	c.cycles = RESET_CYCLES
	c.nmi, c.irq = false, false
}

// SetPC moves the program counter, eg: to nestest's automation
// entry point at 0xC000.
func (c *CPU) SetPC(addr uint16) {
	c.pc = addr
}

func (c *CPU) PC() uint16 {
	return c.pc
}

// Cycles returns the number of cycles elapsed since reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// SetTracer arranges for t to see the cpu state before every
// instruction. A nil t disables tracing.
func (c *CPU) SetTracer(t Tracer) {
	c.tracer = t
}

// TriggerNMI requests a non-maskable interrupt. It is serviced
// before the next instruction is fetched.
func (c *CPU) TriggerNMI() {
	c.nmi = true
}

// TriggerIRQ requests a maskable interrupt. The request stays pending
// until the interrupt disable flag is clear.
func (c *CPU) TriggerIRQ() {
	c.irq = true
}

// Registers is a copy of the programmer visible cpu state.
type Registers struct {
	A, X, Y, P, SP uint8
	PC             uint16
}

func (c *CPU) Registers() Registers {
	return Registers{A: c.acc, X: c.x, Y: c.y, P: c.Status(), SP: c.sp, PC: c.pc}
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC: 0x%04x, SP: 0x%02x, ACC: 0x%02x, X: 0x%02x, Y: 0x%02x, Status: %08b, CYC: %d", c.pc, c.sp, c.acc, c.x, c.y, c.Status(), c.cycles)
}

// Step services any pending interrupt and then executes exactly one
// instruction. It returns the number of cycles consumed.
func (c *CPU) Step() (uint8, error) {
	cycles := c.pollInterrupts()

	b := c.read(c.pc)
	op := decode(b)
	if op.exec == nil {
		return cycles, unimplemented(b, c.pc)
	}

	if c.tracer != nil {
		c.tracer.Trace(c.snapshot(op))
	}

	c.pc++
	o := c.resolve(op.mode)

	n := op.cycles
	if o.crossed && op.pageSensitive {
		n++
	}
	n += op.exec(c, o)

	c.cycles += uint64(n)
	return cycles + n, nil
}

// Run steps the cpu until ctx is done, an error occurs or the program
// counter lands on one of breaks. The instruction at the starting
// program counter always executes, so Run can resume from a
// breakpoint.
func (c *CPU) Run(ctx context.Context, breaks map[uint16]struct{}) error {
	for first := true; ; first = false {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, ok := breaks[c.pc]; ok && !first {
			return nil
		}

		if _, err := c.Step(); err != nil {
			return err
		}
	}
}

// pollInterrupts services a pending interrupt, nmi first, and returns
// the cycles spent doing so.
func (c *CPU) pollInterrupts() uint8 {
	switch {
	case c.nmi:
		c.nmi = false
		c.interrupt(NMI_VECTOR)
	case c.irq && !c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE):
		c.irq = false
		c.interrupt(IRQ_VECTOR)
	default:
		return 0
	}

	c.cycles += INTERRUPT_CYCLES
	return INTERRUPT_CYCLES
}

// interrupt pushes the return state for a hardware interrupt and
// jumps through vector. The pushed status has B clear.
func (c *CPU) interrupt(vector uint16) {
	c.push16(c.pc)
	c.push((c.status &^ STATUS_FLAG_BREAK) | STATUS_FLAG_UNUSED)
	c.flagOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.read16(vector)
}

func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// read16 returns the two bytes from memory at addr (lower byte is
// first).
func (c *CPU) read16(addr uint16) uint16 {
	lsb := uint16(c.read(addr))
	msb := uint16(c.read(addr + 1))

	return (msb << 8) | lsb
}

func (c *CPU) write(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

// peek reads without side effects when the bus supports it.
func (c *CPU) peek(addr uint16) uint8 {
	if p, ok := c.bus.(Peeker); ok {
		return p.Peek(addr)
	}
	return c.bus.Read(addr)
}

func (c *CPU) getStackAddr() uint16 {
	return STACK_PAGE + uint16(c.sp)
}

func (c *CPU) push(val uint8) {
	c.write(c.getStackAddr(), val)
	c.sp--
}

func (c *CPU) push16(val uint16) {
	c.push(uint8(val >> 8))
	c.push(uint8(val & 0x00FF))
}

func (c *CPU) pull() uint8 {
	c.sp++
	return c.read(c.getStackAddr())
}

func (c *CPU) pull16() uint16 {
	lsb := uint16(c.pull())
	msb := uint16(c.pull())

	return (msb << 8) | lsb
}
