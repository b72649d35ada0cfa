package console

import (
	"testing"
)

func TestControllerShiftsButtons(t *testing.T) {
	held := uint8(BUTTON_A | BUTTON_START | BUTTON_RIGHT)
	j := NewJoypads(func() uint8 { return held }, nil)

	j.WriteReg(JOYPAD1, 1)
	j.WriteReg(JOYPAD1, 0)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1, 1, 1}
	for i, w := range want {
		if got := j.ReadReg(JOYPAD1); got != joypadOpenBus|w {
			t.Errorf("%d: Got 0x%02x, want 0x%02x", i, got, joypadOpenBus|w)
		}
	}

	// Unplugged pad reads no buttons
	for i := 0; i < 8; i++ {
		if got := j.ReadReg(JOYPAD2); got != joypadOpenBus {
			t.Errorf("pad 2, %d: Got 0x%02x, want 0x%02x", i, got, joypadOpenBus)
		}
	}
}

func TestControllerStrobeHeld(t *testing.T) {
	held := uint8(BUTTON_A | BUTTON_B)
	j := NewJoypads(func() uint8 { return held }, nil)
	j.WriteReg(JOYPAD1, 1)

	for i := 0; i < 3; i++ {
		if got := j.ReadReg(JOYPAD1) & 0x01; got != 1 {
			t.Errorf("%d: Got %d, want 1", i, got)
		}
	}

	held = BUTTON_B
	if got := j.ReadReg(JOYPAD1) & 0x01; got != 0 {
		t.Errorf("strobe didn't reload: Got %d, want 0", got)
	}
}

func TestControllerPeek(t *testing.T) {
	j := NewJoypads(func() uint8 { return BUTTON_SELECT }, nil)
	j.WriteReg(JOYPAD1, 1)
	j.WriteReg(JOYPAD1, 0)

	for i := 0; i < 3; i++ {
		if got := j.PeekReg(JOYPAD1); got != joypadOpenBus {
			t.Errorf("%d: Got 0x%02x, want 0x%02x", i, got, joypadOpenBus)
		}
	}

	j.ReadReg(JOYPAD1) // A
	j.ReadReg(JOYPAD1) // B
	if got := j.PeekReg(JOYPAD1); got != joypadOpenBus|1 {
		t.Errorf("Got 0x%02x, want 0x%02x", got, joypadOpenBus|1)
	}
}

func TestJoypadsWindow(t *testing.T) {
	j := NewJoypads(nil, nil)
	for _, a := range []uint16{0x4000, 0x4015, 0x401F} {
		if got, peek := j.ReadReg(a), j.PeekReg(a); got != OPEN_BUS || peek != OPEN_BUS {
			t.Errorf("0x%04x: Got 0x%02x (peek 0x%02x), want 0x%02x", a, got, peek, OPEN_BUS)
		}
	}
}
