// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"fmt"
	"sort"

	"github.com/bdwalton/nes6502/nesrom"
	"github.com/pkg/errors"
)

// ErrUnsupportedMapper is returned by Get for a mapper id with no
// registered implementation.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Mapper is the cartridge as seen from the buses. PRG addresses are
// full cpu addresses ($4020-$FFFF); CHR addresses are ppu addresses
// ($0000-$1FFF).
type Mapper interface {
	ID() uint16
	Name() string
	Init(*nesrom.ROM) error
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	MirroringMode() uint8
	HasSaveRAM() bool
}

// A global registry of mapper constructors, keyed by mapper id
var allMappers = map[uint16]func() Mapper{}

// RegisterMapper makes a mapper available to Get. It panics on a
// duplicate id, as that's a programming error.
func RegisterMapper(id uint16, newMapper func() Mapper) {
	if _, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mapper %d registered twice", id))
	}
	allMappers[id] = newMapper
}

// Get returns a fresh mapper for rom, initialised with its contents.
func Get(rom *nesrom.ROM) (Mapper, error) {
	newMapper, ok := allMappers[rom.MapperNum()]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedMapper, "mapper %d", rom.MapperNum())
	}

	m := newMapper()
	if err := m.Init(rom); err != nil {
		return nil, errors.Wrapf(err, "couldn't initialise %s", m.Name())
	}

	return m, nil
}

// Supported lists the registered mapper ids in order.
func Supported() []uint16 {
	ids := make([]uint16, 0, len(allMappers))
	for id := range allMappers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// baseMapper holds what every mapper needs from the ROM.
type baseMapper struct {
	id   uint16
	name string
	rom  *nesrom.ROM
}

func newBaseMapper(id uint16, name string) *baseMapper {
	return &baseMapper{id: id, name: name}
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) String() string {
	return fmt.Sprintf("%s (mapper %d)", bm.name, bm.id)
}

func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}
