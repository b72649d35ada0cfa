// Package console wires a 6502 to the NES cpu memory map: internal
// RAM, the PPU and APU/IO register windows and the cartridge mapper.
package console

import (
	"context"
	"log"

	"github.com/bdwalton/nes6502/mappers"
	"github.com/bdwalton/nes6502/mos6502"
)

type Machine struct {
	mem *cpuMemory
	cpu *mos6502.CPU
}

// New builds a machine around m and runs the cpu reset sequence, so
// the reset vector comes from the cartridge.
func New(m mappers.Mapper) *Machine {
	mach := &Machine{mem: newCPUMemory(m)}
	mach.cpu = mos6502.New(mach.mem)

	return mach
}

func (mach *Machine) CPU() *mos6502.CPU {
	return mach.cpu
}

// AttachPPU puts d behind $2000-$3FFF. A nil d leaves the window
// reading as open bus.
func (mach *Machine) AttachPPU(d Device) {
	mach.mem.ppu = d
}

// AttachIO puts d behind $4000-$401F.
func (mach *Machine) AttachIO(d Device) {
	mach.mem.io = d
}

// TriggerNMI is the hook for devices driving the cpu's NMI line.
func (mach *Machine) TriggerNMI() {
	mach.cpu.TriggerNMI()
}

// TriggerIRQ is the hook for devices driving the cpu's IRQ line.
func (mach *Machine) TriggerIRQ() {
	mach.cpu.TriggerIRQ()
}

func (mach *Machine) SetTracer(t mos6502.Tracer) {
	mach.cpu.SetTracer(t)
}

// Reset is the console's reset button. RAM survives it.
func (mach *Machine) Reset() {
	mach.cpu.Reset()
	log.Printf("reset: PC=0x%04x", mach.cpu.PC())
}

func (mach *Machine) Step() (uint8, error) {
	return mach.cpu.Step()
}

// Run executes up to steps instructions, or until ctx is done when
// steps <= 0.
func (mach *Machine) Run(ctx context.Context, steps int) error {
	for i := 0; steps <= 0 || i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := mach.cpu.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Read and Peek expose the cpu's view of memory to tools.
func (mach *Machine) Read(addr uint16) uint8 {
	return mach.mem.Read(addr)
}

func (mach *Machine) Peek(addr uint16) uint8 {
	return mach.mem.Peek(addr)
}

func (mach *Machine) Write(addr uint16, val uint8) {
	mach.mem.Write(addr, val)
}
