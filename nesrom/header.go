package nesrom

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	HEADER_SIZE = 16
	MAGIC       = "NES\x1A"
)

// ErrBadMagic is returned when the file doesn't start with "NES\x1A".
var ErrBadMagic = errors.New("not an iNES file")

// header is the 16 byte iNES / NES 2.0 header.
// https://www.nesdev.org/wiki/INES, https://www.nesdev.org/wiki/NES_2.0
type header struct {
	constant string // bytes 0-3
	prgSize  uint8  // byte 4, in 16KB units
	chrSize  uint8  // byte 5, in 8KB units; 0 means the board has CHR RAM
	flags6   uint8  // mapper low nibble, mirroring, battery, trainer
	flags7   uint8  // mapper high nibble, VS/PlayChoice, NES 2.0
	flags8   uint8  // PRG RAM size
	flags9   uint8  // TV system
	flags10  uint8  // TV system, PRG RAM presence (unofficial)
	// bytes 11-15; should be zero, but rippers sometimes sign their
	// work here
	padding [5]uint8
}

// flags6 bits. The top 4 bits are the low nibble of the mapper number.
const (
	MIRRORING           = 1 << 0 // 0: horizontal, 1: vertical
	BATTERY_BACKED_SRAM = 1 << 1 // PRG RAM at $6000-$7FFF
	TRAINER             = 1 << 2 // 512 byte trainer before the PRG data
	IGNORE_MIRRORING    = 1 << 3 // four screen VRAM
)

// flags7 bits. The top 4 bits are the high nibble of the mapper number.
const (
	VS_UNISYSTEM  = 1 << 0
	PLAYCHOICE_10 = 1 << 1 // 8KB of hint screen data after CHR
)

const (
	TV_SYSTEM = 1 << 0 // flags9
)

// Mirroring modes
const (
	MIRROR_HORIZONTAL = iota
	MIRROR_VERTICAL
	MIRROR_FOUR_SCREEN
)

// TV systems
const (
	NTSC = iota
	PAL
)

func parseHeader(b []byte) (*header, error) {
	if len(b) < HEADER_SIZE {
		return nil, errors.Errorf("short header: %d bytes", len(b))
	}

	h := &header{
		constant: string(b[0:4]),
		prgSize:  b[4],
		chrSize:  b[5],
		flags6:   b[6],
		flags7:   b[7],
		flags8:   b[8],
		flags9:   b[9],
		flags10:  b[10],
	}
	copy(h.padding[:], b[11:HEADER_SIZE])

	if !h.isINesFormat() {
		return nil, errors.Wrapf(ErrBadMagic, "magic %q", h.constant)
	}

	return h, nil
}

func (h *header) String() string {
	return fmt.Sprintf("%q, mapper(%d), prg(%d), chr(%d), flags(%02x, %02x, %02x, %02x, %02x)", h.constant, h.mapperNum(), h.prgSize, h.chrSize, h.flags6, h.flags7, h.flags8, h.flags9, h.flags10)
}

func (h *header) isINesFormat() bool {
	return h.constant == MAGIC
}

func (h *header) isNES2Format() bool {
	return h.isINesFormat() && h.flags7&0x0C == 0x08
}

// mirroringMode reports how the PPU should mirror nametables.
// https://www.nesdev.org/wiki/INES#Nametable_Mirroring
func (h *header) mirroringMode() uint8 {
	if h.flags6&IGNORE_MIRRORING != 0 {
		return MIRROR_FOUR_SCREEN
	}

	return h.flags6 & MIRRORING
}

func (h *header) hasTrainer() bool {
	return h.flags6&TRAINER != 0
}

func (h *header) hasPlayChoice() bool {
	return h.flags7&PLAYCHOICE_10 != 0
}

func (h *header) hasPrgRAM() bool {
	return h.flags6&BATTERY_BACKED_SRAM != 0
}

// prgRAMSize is in 8KB units. A zero flags8 still means one unit.
func (h *header) prgRAMSize() uint8 {
	switch {
	case !h.hasPrgRAM():
		return 0
	case h.flags8 == 0:
		return 1
	}
	return h.flags8
}

func (h *header) tvSystem() uint8 {
	return h.flags9 & TV_SYSTEM
}

// ignoreHighNibble handles old dumps that wrote junk (commonly
// "DiskDude!") over bytes 7-15. If the last 4 bytes aren't zero and the
// file isn't NES 2.0, flags7 can't be trusted for the mapper number.
func (h *header) ignoreHighNibble() bool {
	for _, b := range h.padding[1:] {
		if b != 0 {
			return !h.isNES2Format()
		}
	}
	return false
}

func (h *header) mapperNum() uint8 {
	lo := h.flags6 >> 4
	if h.ignoreHighNibble() {
		return lo
	}
	return h.flags7&0xF0 | lo
}
