package mappers

import (
	"bytes"
	"testing"

	"github.com/bdwalton/nes6502/nesrom"
	"github.com/pkg/errors"
)

// testROM builds a ROM with prg 16KB PRG blocks, each byte holding
// its block number in the high nibble and the low bits of its offset
// below that, and chr 8KB CHR blocks.
func testROM(t *testing.T, mapper, prg, chr uint8) *nesrom.ROM {
	t.Helper()

	b := []byte{'N', 'E', 'S', 0x1A, prg, chr, mapper << 4, mapper & 0xF0, 0, 0, 0, 0, 0, 0, 0, 0}
	for blk := 0; blk < int(prg); blk++ {
		for i := 0; i < nesrom.PRG_BLOCK_SIZE; i++ {
			b = append(b, uint8(blk<<4|i&0x0F))
		}
	}
	b = append(b, bytes.Repeat([]byte{0xC4}, nesrom.CHR_BLOCK_SIZE*int(chr))...)

	r, err := nesrom.Parse(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("couldn't build test ROM: %v", err)
	}
	return r
}

func TestGet(t *testing.T) {
	m, err := Get(testROM(t, 0, 1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID() != 0 || m.Name() != "NROM" {
		t.Errorf("Got %d (%s), want 0 (NROM)", m.ID(), m.Name())
	}

	// Each Get hands back an independent mapper
	m2, _ := Get(testROM(t, 0, 1, 1))
	m.PrgWrite(0x6000, 0x42)
	if m2.PrgRead(0x6000) != 0 {
		t.Errorf("mappers share PRG RAM")
	}
}

func TestGetUnsupported(t *testing.T) {
	if _, err := Get(testROM(t, 4, 1, 1)); !errors.Is(err, ErrUnsupportedMapper) {
		t.Errorf("Got %v, want %v", err, ErrUnsupportedMapper)
	}
}

func TestGetBadNROM(t *testing.T) {
	if _, err := Get(testROM(t, 0, 3, 1)); err == nil {
		t.Errorf("NROM accepted 3 PRG blocks")
	}
}

func TestSupported(t *testing.T) {
	if got := Supported(); len(got) == 0 || got[0] != 0 {
		t.Errorf("Got %v, want NROM listed", got)
	}
}

func TestNROMPrgRead(t *testing.T) {
	cases := []struct {
		prg  uint8
		addr uint16
		want uint8
	}{
		{1, 0x8000, 0x00},
		{1, 0x8001, 0x01},
		{1, 0xC000, 0x00}, // mirror of 0x8000
		{1, 0xFFFF, 0x0F},
		{2, 0x8000, 0x00},
		{2, 0xBFFF, 0x0F},
		{2, 0xC000, 0x10},
		{2, 0xFFFE, 0x1E},
		{1, 0x5000, 0x00}, // unmapped
	}

	for i, tc := range cases {
		m, err := Get(testROM(t, 0, tc.prg, 1))
		if err != nil {
			t.Fatalf("%d: unexpected error: %v", i, err)
		}
		if got := m.PrgRead(tc.addr); got != tc.want {
			t.Errorf("%d: prg[%04x] = %02x, want %02x", i, tc.addr, got, tc.want)
		}
	}
}

func TestNROMPrgRAM(t *testing.T) {
	m, _ := Get(testROM(t, 0, 1, 1))

	m.PrgWrite(0x6000, 0x11)
	m.PrgWrite(0x7FFF, 0x22)
	m.PrgWrite(0x8000, 0x33) // ROM, ignored

	cases := []struct {
		addr uint16
		want uint8
	}{
		{0x6000, 0x11},
		{0x7FFF, 0x22},
		{0x8000, 0x00},
	}
	for i, tc := range cases {
		if got := m.PrgRead(tc.addr); got != tc.want {
			t.Errorf("%d: prg[%04x] = %02x, want %02x", i, tc.addr, got, tc.want)
		}
	}
}

func TestNROMChr(t *testing.T) {
	rom, _ := Get(testROM(t, 0, 1, 1))
	rom.ChrWrite(0x0010, 0x99) // CHR ROM, ignored
	if got := rom.ChrRead(0x0010); got != 0xC4 {
		t.Errorf("CHR ROM: Got %02x, want c4", got)
	}

	ram, _ := Get(testROM(t, 0, 1, 0))
	ram.ChrWrite(0x0010, 0x99)
	if got := ram.ChrRead(0x0010); got != 0x99 {
		t.Errorf("CHR RAM: Got %02x, want 99", got)
	}
}

func TestDummy(t *testing.T) {
	d := NewDummy()
	d.LoadMem(0xFFFC, []uint8{0x00, 0x80})
	d.PrgWrite(0x4020, 0x01)

	if d.PrgRead(0xFFFC) != 0x00 || d.PrgRead(0xFFFD) != 0x80 || d.PrgRead(0x4020) != 0x01 {
		t.Errorf("Got %02x %02x %02x", d.PrgRead(0xFFFC), d.PrgRead(0xFFFD), d.PrgRead(0x4020))
	}

	d.ClearMem()
	if d.PrgRead(0xFFFD) != 0 {
		t.Errorf("ClearMem left %02x", d.PrgRead(0xFFFD))
	}
}
