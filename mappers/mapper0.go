package mappers

import (
	"github.com/bdwalton/nes6502/nesrom"
	"github.com/pkg/errors"
)

func init() {
	RegisterMapper(0, func() Mapper { return newMapper0() })
}

const (
	PRG_RAM_START = 0x6000
	PRG_RAM_SIZE  = 0x2000
	PRG_ROM_START = 0x8000
	CHR_RAM_SIZE  = 0x2000
)

// mapper0 is NROM: no bank switching. NROM-128 has 16KB of PRG that
// appears at both $8000 and $C000; NROM-256 has 32KB.
// https://www.nesdev.org/wiki/NROM
type mapper0 struct {
	*baseMapper
	prgRAM [PRG_RAM_SIZE]uint8
	chrRAM []uint8 // only when the ROM has no CHR
}

func newMapper0() *mapper0 {
	return &mapper0{baseMapper: newBaseMapper(0, "NROM")}
}

func (m *mapper0) Init(r *nesrom.ROM) error {
	if n := r.NumPrgBlocks(); n != 1 && n != 2 {
		return errors.Errorf("NROM needs 1 or 2 PRG blocks, got %d", n)
	}

	m.rom = r
	if r.ChrSize() == 0 {
		m.chrRAM = make([]uint8, CHR_RAM_SIZE)
	}

	return nil
}

func (m *mapper0) PrgRead(addr uint16) uint8 {
	switch {
	case addr >= PRG_ROM_START:
		// 16KB images mirror into the upper bank
		return m.rom.PrgRead((addr - PRG_ROM_START) % uint16(m.rom.PrgSize()))
	case addr >= PRG_RAM_START:
		return m.prgRAM[addr-PRG_RAM_START]
	}

	// $4020-$5FFF is unmapped on NROM
	return 0
}

func (m *mapper0) PrgWrite(addr uint16, val uint8) {
	if addr >= PRG_RAM_START && addr < PRG_ROM_START {
		m.prgRAM[addr-PRG_RAM_START] = val
	}
}

func (m *mapper0) ChrRead(addr uint16) uint8 {
	addr %= CHR_RAM_SIZE
	if m.chrRAM != nil {
		return m.chrRAM[addr]
	}
	return m.rom.ChrRead(addr)
}

func (m *mapper0) ChrWrite(addr uint16, val uint8) {
	if m.chrRAM != nil {
		m.chrRAM[addr%CHR_RAM_SIZE] = val
	}
}
