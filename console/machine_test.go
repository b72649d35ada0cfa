package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bdwalton/nes6502/mappers"
	"github.com/bdwalton/nes6502/mos6502"
	"github.com/pkg/errors"
)

// testMachine boots a machine whose cartridge holds prog at 0x8000,
// with the reset vector pointing at it. NMI and IRQ share a handler at
// 0x9000.
func testMachine(prog ...uint8) *Machine {
	d := mappers.NewDummy()
	d.LoadMem(0x8000, prog)
	d.LoadMem(mos6502.NMI_VECTOR, []uint8{0x00, 0x90, 0x00, 0x80, 0x00, 0x90})
	d.LoadMem(0x9000, []uint8{0xE8, 0x40}) // INX; RTI

	return New(d)
}

func TestNewResets(t *testing.T) {
	mach := testMachine(0xEA)

	want := mos6502.Registers{P: 0x24, SP: 0xFD, PC: 0x8000}
	if got := mach.CPU().Registers(); got != want || mach.CPU().Cycles() != mos6502.RESET_CYCLES {
		t.Errorf("Got %+v, want %+v", got, want)
	}
}

func TestRunSteps(t *testing.T) {
	mach := testMachine(0xA9, 0x05, 0x8D, 0x00, 0x03, 0xEA) // LDA #$05; STA $0300; NOP

	if err := mach.Run(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc := mach.CPU().PC(); pc != 0x8005 || mach.Read(0x0300) != 0x05 || mach.Read(0x0B00) != 0x05 {
		t.Errorf("Got pc 0x%04x, mem[0300] = %02x", pc, mach.Read(0x0300))
	}
}

func TestRunStopsOnError(t *testing.T) {
	mach := testMachine(0xEA, 0x02)

	if err := mach.Run(context.Background(), 0); !errors.Is(err, mos6502.ErrUnimplementedOpcode) {
		t.Errorf("Got %v, want %v", err, mos6502.ErrUnimplementedOpcode)
	}
}

func TestRunCancelled(t *testing.T) {
	mach := testMachine(0x4C, 0x00, 0x80) // JMP $8000

	ctx, cancel := context.WithCancel(context.Background())
	mach.SetTracer(mos6502.TraceFunc(func(s mos6502.Snapshot) {
		if s.Cycles > 1000 {
			cancel()
		}
	}))

	if err := mach.Run(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Got %v, want %v", err, context.Canceled)
	}
}

func TestMachineNMI(t *testing.T) {
	mach := testMachine(0xEA, 0xEA, 0xEA)

	mach.TriggerNMI()
	if err := mach.Run(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The handler ran INX and returned to where we were interrupted
	if r := mach.CPU().Registers(); r.X != 1 || r.PC != 0x8000 {
		t.Errorf("Got %+v, want X=1, PC=0x8000", r)
	}
}

func TestMachineIRQ(t *testing.T) {
	mach := testMachine(0x58, 0xEA, 0xEA) // CLI; NOP; NOP

	mach.TriggerIRQ()
	if err := mach.Run(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc := mach.CPU().PC(); pc != 0x8001 {
		t.Fatalf("irq taken with interrupts disabled, pc 0x%04x", pc)
	}

	if _, err := mach.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := mach.CPU().Registers(); r.PC != 0x9001 || r.X != 1 || r.P&mos6502.STATUS_FLAG_INTERRUPT_DISABLE == 0 {
		t.Errorf("Got %+v, want PC=0x9001, X=1 with interrupts disabled", r)
	}
}

func TestReset(t *testing.T) {
	mach := testMachine(0xA2, 0x33, 0xEA) // LDX #$33; NOP
	mach.Write(0x0010, 0x77)
	mach.Run(context.Background(), 2)

	mach.Reset()
	if r := mach.CPU().Registers(); r.PC != 0x8000 || r.X != 0 {
		t.Errorf("Got %+v", r)
	}
	if got := mach.Read(0x0010); got != 0x77 {
		t.Errorf("reset cleared RAM: mem[0010] = %02x", got)
	}
}

func runBIOS(t *testing.T, mach *Machine, script ...string) string {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	if err := mach.BIOS(context.Background(), in, &out); err != nil {
		t.Fatalf("BIOS: %v", err)
	}
	return out.String()
}

func TestBIOSStep(t *testing.T) {
	mach := testMachine(0xEA, 0xEA, 0xEA)
	runBIOS(t, mach, "s", "S", "q")

	if pc := mach.CPU().PC(); pc != 0x8002 {
		t.Errorf("Got pc 0x%04x, want 0x8002", pc)
	}
}

func TestBIOSBreakAndRun(t *testing.T) {
	mach := testMachine(0xE8, 0xE8, 0xE8, 0x4C, 0x00, 0x80) // INX x3; JMP $8000
	runBIOS(t, mach, "b", "8003", "r", "r")

	// Second run goes round the loop once more
	if r := mach.CPU().Registers(); r.PC != 0x8003 || r.X != 6 {
		t.Errorf("Got %+v, want PC=0x8003, X=6", r)
	}
}

func TestBIOSClearBreaks(t *testing.T) {
	mach := testMachine(0xE8, 0xE8, 0x02) // INX; INX; unofficial
	out := runBIOS(t, mach, "b", "8001", "c", "r", "q")

	if !strings.Contains(out, "stopped: ") || mach.CPU().PC() != 0x8002 {
		t.Errorf("Got pc 0x%04x, output:\n%s", mach.CPU().PC(), out)
	}
}

func TestBIOSSetPC(t *testing.T) {
	mach := testMachine(0xEA)
	out := runBIOS(t, mach, "p", "0x9000", "p", "zzzz")

	if pc := mach.CPU().PC(); pc != 0x9000 {
		t.Errorf("Got pc 0x%04x, want 0x9000", pc)
	}
	if !strings.Contains(out, `invalid address "zzzz"`) {
		t.Errorf("bad address not reported:\n%s", out)
	}
}

func TestBIOSMemoryDump(t *testing.T) {
	mach := testMachine(0xEA)
	for i := uint16(0); i < 6; i++ {
		mach.Write(0x0200+i, uint8(0xA0+i))
	}
	out := runBIOS(t, mach, "m", "0200", "0205", "q")

	want := "0x0200: 0xa0 0x0201: 0xa1 0x0202: 0xa2 0x0203: 0xa3 0x0204: 0xa4 \n0x0205: 0xa5 "
	if !strings.Contains(out, want) {
		t.Errorf("dump missing %q:\n%s", want, out)
	}
}

func TestBIOSStackAndInstruction(t *testing.T) {
	mach := testMachine(0x20, 0x10, 0x80) // JSR $8010
	out := runBIOS(t, mach, "i", "s", "t", "q")

	for _, want := range []string{
		"0x8000: 0x20 0x8001: 0x10 0x8002: 0x80 ",
		"0x01fc: 0x02 0x01fd: 0x80 ",
		"JSR $8010",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBIOSEndOfInput(t *testing.T) {
	mach := testMachine(0xEA)
	var out bytes.Buffer
	if err := mach.BIOS(context.Background(), strings.NewReader(""), &out); err != nil {
		t.Errorf("Got %v, want nil", err)
	}
}
