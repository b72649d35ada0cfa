package mappers

import (
	"math"

	"github.com/bdwalton/nes6502/nesrom"
)

// dummyMapper is a flat 64KB address space with no ROM behind it.
// Every address is writable, so tests can plant vectors and code
// anywhere in cartridge space.
type dummyMapper struct {
	memory []uint8
	MM     uint8 // mirroring mode - tests can set as needed
}

func NewDummy() *dummyMapper {
	return &dummyMapper{memory: make([]uint8, math.MaxUint16+1)}
}

func (dm *dummyMapper) ID() uint16 {
	return math.MaxUint16
}

func (dm *dummyMapper) Init(r *nesrom.ROM) error {
	return nil
}

func (dm *dummyMapper) Name() string {
	return "dummy mapper"
}

func (dm *dummyMapper) PrgRead(addr uint16) uint8 {
	return dm.memory[addr]
}

func (dm *dummyMapper) PrgWrite(addr uint16, val uint8) {
	dm.memory[addr] = val
}

func (dm *dummyMapper) ChrRead(addr uint16) uint8 {
	return dm.memory[addr]
}

func (dm *dummyMapper) ChrWrite(addr uint16, val uint8) {
	dm.memory[addr] = val
}

func (dm *dummyMapper) MirroringMode() uint8 {
	return dm.MM
}

func (dm *dummyMapper) HasSaveRAM() bool {
	return true
}

// LoadMem copies mem into place at start, wrapping at the top of the
// address space.
func (dm *dummyMapper) LoadMem(start uint16, mem []uint8) {
	for i, m := range mem {
		dm.memory[start+uint16(i)] = m
	}
}

// ClearMem zeroes the whole address space.
func (dm *dummyMapper) ClearMem() {
	dm.memory = make([]uint8, math.MaxUint16+1)
}
