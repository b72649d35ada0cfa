package console

import (
	"github.com/bdwalton/nes6502/mappers"
)

const (
	RAM_SIZE            = 0x0800 // 2KB built in RAM
	MAX_RAM_MIRRORED    = 0x2000
	PPU_REG_BASE        = 0x2000
	PPU_REG_COUNT       = 8
	MAX_IO_REG_MIRRORED = 0x4000
	MAX_IO_REG          = 0x4020
)

// cpuMemory is the NES cpu address space.
// https://www.nesdev.org/wiki/CPU_memory_map
type cpuMemory struct {
	ram    [RAM_SIZE]uint8
	ppu    Device         // $2000-$2007, mirrored to $3FFF
	io     Device         // $4000-$401F
	mapper mappers.Mapper // $4020-$FFFF
}

func newCPUMemory(m mappers.Mapper) *cpuMemory {
	return &cpuMemory{mapper: m}
}

// ppuReg folds an address in $2000-$3FFF onto the 8 PPU registers.
func ppuReg(addr uint16) uint16 {
	return PPU_REG_BASE + (addr-PPU_REG_BASE)%PPU_REG_COUNT
}

func (m *cpuMemory) Read(addr uint16) uint8 {
	switch {
	case addr < MAX_RAM_MIRRORED:
		// 0x800-0x1FFF mirrors 0x0000-0x07FF
		return m.ram[addr%RAM_SIZE]
	case addr < MAX_IO_REG_MIRRORED:
		return readReg(m.ppu, ppuReg(addr))
	case addr < MAX_IO_REG:
		return readReg(m.io, addr)
	}

	return m.mapper.PrgRead(addr)
}

func (m *cpuMemory) Write(addr uint16, val uint8) {
	switch {
	case addr < MAX_RAM_MIRRORED:
		m.ram[addr%RAM_SIZE] = val
	case addr < MAX_IO_REG_MIRRORED:
		writeReg(m.ppu, ppuReg(addr), val)
	case addr < MAX_IO_REG:
		writeReg(m.io, addr, val)
	default:
		m.mapper.PrgWrite(addr, val)
	}
}

// Peek is Read without device side effects.
func (m *cpuMemory) Peek(addr uint16) uint8 {
	switch {
	case addr < MAX_RAM_MIRRORED:
		return m.ram[addr%RAM_SIZE]
	case addr < MAX_IO_REG_MIRRORED:
		return peekReg(m.ppu, ppuReg(addr))
	case addr < MAX_IO_REG:
		return peekReg(m.io, addr)
	}

	return m.mapper.PrgRead(addr)
}
