// package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32
)

// ROM is a parsed cartridge image.
type ROM struct {
	path      string
	h         *header
	trainer   []byte // if present
	prg       []byte // 16384 * x bytes; x from header
	chr       []byte // 8192 * y bytes; y from header
	pcInstRom []byte // if present
	pcPROM    []byte // if present; often missing from PlayChoice dumps
}

// New reads the ROM at path.
func New(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open ROM file %q", path)
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't load %q", path)
	}
	r.path = path

	return r, nil
}

// Parse reads an iNES image from r.
func Parse(r io.Reader) (*ROM, error) {
	hbytes := make([]byte, HEADER_SIZE)
	if _, err := io.ReadFull(r, hbytes); err != nil {
		return nil, errors.Wrap(err, "couldn't read header")
	}

	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing header")
	}

	rom := &ROM{h: h}

	if h.hasTrainer() {
		if rom.trainer, err = readBlock(r, TRAINER_SIZE, "trainer"); err != nil {
			return nil, err
		}
	}

	if rom.prg, err = readBlock(r, PRG_BLOCK_SIZE*int(h.prgSize), "PRG ROM"); err != nil {
		return nil, err
	}

	if rom.chr, err = readBlock(r, CHR_BLOCK_SIZE*int(h.chrSize), "CHR ROM"); err != nil {
		return nil, err
	}

	if h.hasPlayChoice() {
		if rom.pcInstRom, err = readBlock(r, PC_INST_SIZE, "PlayChoice INST-ROM"); err != nil {
			return nil, err
		}

		// Plenty of dumps leave the PROM off, so a short read here
		// isn't fatal.
		prom := make([]byte, PC_PROM_SIZE)
		if _, err := io.ReadFull(r, prom); err == nil {
			rom.pcPROM = prom
		}
	}

	return rom, nil
}

func readBlock(r io.Reader, n int, what string) ([]byte, error) {
	b := make([]byte, n)
	if got, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrapf(err, "error reading %s (read %d, wanted %d)", what, got, n)
	}
	return b, nil
}

func (r *ROM) String() string {
	s := fmt.Sprintf("%s: %s", r.path, r.h)
	if r.h.hasTrainer() {
		s += ", trainer"
	}
	if r.h.hasPrgRAM() {
		s += fmt.Sprintf(", prg ram(%d)", r.h.prgRAMSize())
	}
	return s
}

func (r *ROM) NumPrgBlocks() uint8 {
	return r.h.prgSize
}

func (r *ROM) NumChrBlocks() uint8 {
	return r.h.chrSize
}

// PrgSize is the size of PRG ROM in bytes.
func (r *ROM) PrgSize() int {
	return len(r.prg)
}

func (r *ROM) PrgRead(addr uint16) uint8 {
	return r.prg[addr]
}

// ChrSize is the size of CHR ROM in bytes. Zero means the board uses
// CHR RAM instead.
func (r *ROM) ChrSize() int {
	return len(r.chr)
}

func (r *ROM) ChrRead(addr uint16) uint8 {
	return r.chr[addr]
}

func (r *ROM) Trainer() []byte {
	return r.trainer
}

func (r *ROM) MapperNum() uint16 {
	return uint16(r.h.mapperNum())
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}

// PrgRAMSize is the PRG RAM size in 8KB units.
func (r *ROM) PrgRAMSize() uint8 {
	return r.h.prgRAMSize()
}

func (r *ROM) TVSystem() uint8 {
	return r.h.tvSystem()
}

func (r *ROM) IsNES2() bool {
	return r.h.isNES2Format()
}
