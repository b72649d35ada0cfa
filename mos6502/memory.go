package mos6502

import (
	"math"
)

const (
	MAX_ADDRESS = math.MaxUint16
)

// Memory is a flat 64KB bus with no mirroring and no devices. It's
// enough to run bare 6502 programs and to test the cpu in isolation.
type Memory struct {
	ram [MAX_ADDRESS + 1]uint8
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read(addr uint16) uint8 {
	return m.ram[addr]
}

func (m *Memory) Write(addr uint16, val uint8) {
	m.ram[addr] = val
}

func (m *Memory) Peek(addr uint16) uint8 {
	return m.ram[addr]
}

// Load copies data into memory starting at addr, wrapping at the top
// of the address space.
func (m *Memory) Load(addr uint16, data []uint8) {
	for i, d := range data {
		m.ram[addr+uint16(i)] = d
	}
}

// LoadProgram copies prog to start and points the reset vector at it.
func (m *Memory) LoadProgram(start uint16, prog []uint8) {
	m.Load(start, prog)
	m.ram[RESET_VECTOR] = uint8(start & 0x00FF)
	m.ram[RESET_VECTOR+1] = uint8(start >> 8)
}
