package nesrom

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestParseHeader(t *testing.T) {
	cases := []struct {
		bytes      []byte
		wantHeader *header
	}{
		{
			[]byte{0x4e, 0x45, 0x53, 0x1a, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			&header{constant: "NES\x1a", prgSize: 2, chrSize: 1, flags6: 1},
		},
		{
			[]byte{0x4e, 0x45, 0x53, 0x1a, 0x01, 0x00, 0x12, 0x38, 0x01, 0x01, 0x00, 0x44, 0x69, 0x73, 0x6b, 0x44},
			&header{constant: "NES\x1a", prgSize: 1, chrSize: 0, flags6: 0x12, flags7: 0x38, flags8: 1, flags9: 1, padding: [5]uint8{0x44, 0x69, 0x73, 0x6b, 0x44}},
		},
	}
	for i, tc := range cases {
		if h, err := parseHeader(tc.bytes); err != nil || !reflect.DeepEqual(h, tc.wantHeader) {
			t.Errorf("%d: Got %s (err %v), wanted %s", i, h, err, tc.wantHeader)
		}
	}
}

func TestParseHeaderErrors(t *testing.T) {
	if _, err := parseHeader([]byte{0x4e, 0x45, 0x53}); err == nil {
		t.Errorf("short header parsed")
	}

	bad := []byte("BOB\x1a000000000000")
	if _, err := parseHeader(bad); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Got %v, want %v", err, ErrBadMagic)
	}
}

func TestNES2Format(t *testing.T) {
	h := &header{}
	cases := []struct {
		constant           string
		flags7             uint8
		wantINES, wantNES2 bool
	}{
		{"NES\x1A", 0x08, true, true},
		{"NES\x1A", 0x0C, true, false},
		{"BOB\x1A", 0x10, false, false},
		{"BOB\x1A", 0x04, false, false},
		{"BOB\x1A", 0x08, false, false},
	}

	for i, tc := range cases {
		h.constant = tc.constant
		h.flags7 = tc.flags7
		if h.isINesFormat() != tc.wantINES || h.isNES2Format() != tc.wantNES2 {
			t.Errorf("%d: ines = %t want %t; nes2 = %t, want %t", i, h.isINesFormat(), tc.wantINES, h.isNES2Format(), tc.wantNES2)
		}
	}
}

func TestMapperNum(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6, flags7 uint8 // where the mapper num is assembled from
		padding        [5]uint8
		want           uint8
	}{
		{0xEF, 0xF0, [5]uint8{}, 0xFE},              // Not NES2, last 4 bytes 0
		{0xFF, 0xE0, [5]uint8{0x20}, 0xEF},          // Not NES2, only byte 11 set
		{0xC0, 0xB0, [5]uint8{0, 0, 1, 1, 1}, 0x0C}, // Not NES2, last 4 bytes not 0
		{0x1F, 0x20, [5]uint8{0, 0, 1, 1, 1}, 0x01}, // Not NES2, last 4 bytes not 0
		{0xFF, 0xF8, [5]uint8{0, 0, 0, 1, 1}, 0xFF}, // NES2, last 4 bytes not 0
		{0xAF, 0xD8, [5]uint8{}, 0xDA},              // NES2, last 4 bytes 0
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		h.flags7 = tc.flags7
		h.padding = tc.padding
		if got := h.mapperNum(); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
	}
}

func TestHasTrainer(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8 // where the trainer bit is stored
		want   bool
	}{
		{0xFF, true},
		{0x04, true},
		{0x0C, true},
		{0x0A, false},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.hasTrainer(); got != tc.want {
			t.Errorf("%d: Got %t, want %t", i, got, tc.want)
		}
	}
}

func TestHasPlayChoice10(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags7 uint8 // where the playchoice10 bit is stored
		want   bool
	}{
		{0xFF, true},
		{0x02, true},
		{0x0D, false},
		{0x01, false},
	}

	for i, tc := range cases {
		h.flags7 = tc.flags7
		if got := h.hasPlayChoice(); got != tc.want {
			t.Errorf("%d: Got %t, want %t", i, got, tc.want)
		}
	}
}

func TestMirroringMode(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6 uint8
		want   uint8
	}{
		{0xFF, MIRROR_FOUR_SCREEN},
		{0x00, MIRROR_HORIZONTAL},
		{0x01, MIRROR_VERTICAL},
		{0x08, MIRROR_FOUR_SCREEN},
		{0x09, MIRROR_FOUR_SCREEN},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		if got := h.mirroringMode(); got != tc.want {
			t.Errorf("%d: Got %d, want %d.", i, got, tc.want)
		}
	}
}

func TestBatteryBackedSRAM(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	cases := []struct {
		flags6, flags8 uint8
		want           bool
		wantSize       uint8
	}{
		{0, 0, false, 0},
		{0, 16, false, 0},
		{BATTERY_BACKED_SRAM, 0, true, 1},
		{BATTERY_BACKED_SRAM, 1, true, 1},
		{BATTERY_BACKED_SRAM, 16, true, 16},
	}

	for i, tc := range cases {
		h.flags6 = tc.flags6
		h.flags8 = tc.flags8
		if got, size := h.hasPrgRAM(), h.prgRAMSize(); got != tc.want || size != tc.wantSize {
			t.Errorf("%d: Got %t, wanted %t, size = %d, wanted %d", i, got, tc.want, size, tc.wantSize)
		}
	}
}

func TestTVSystem(t *testing.T) {
	h := &header{constant: "NES\x1A"}
	for i, tc := range []struct{ flags9, want uint8 }{{0x00, NTSC}, {0x01, PAL}, {0xFE, NTSC}} {
		h.flags9 = tc.flags9
		if got := h.tvSystem(); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
	}
}
