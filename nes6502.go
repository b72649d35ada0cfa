package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bdwalton/nes6502/console"
	"github.com/bdwalton/nes6502/golden"
	"github.com/bdwalton/nes6502/mappers"
	"github.com/bdwalton/nes6502/mos6502"
	"github.com/bdwalton/nes6502/nesrom"
	"github.com/pkg/errors"
)

// addrFlag is a 16 bit address given in hex, with or without 0x.
type addrFlag struct {
	addr uint16
	set  bool
}

func (a *addrFlag) String() string {
	return fmt.Sprintf("0x%04X", a.addr)
}

func (a *addrFlag) Set(s string) error {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return errors.Errorf("invalid address %q", s)
	}
	a.addr, a.set = uint16(v), true
	return nil
}

var (
	romFile   = flag.String("nes_rom", "", "Path to NES ROM to run.")
	binFile   = flag.String("bin", "", "Path to a raw 6502 program to run in flat memory.")
	steps     = flag.Int("steps", 0, "Instructions to run. 0 runs until an error or interrupt.")
	traceFile = flag.String("trace", "", "Write a nestest style trace here. - is stdout.")
	logFile   = flag.String("golden", "", "Compare the trace against this nestest style log.")
	bios      = flag.Bool("bios", false, "Start the interactive monitor instead of running.")
	loadAddr  = addrFlag{addr: 0x0600}
	startPC   addrFlag
)

func init() {
	flag.Var(&loadAddr, "load_addr", "Address to load -bin at, in hex.")
	flag.Var(&startPC, "start_pc", "Override the reset vector, in hex. Use C000 for nestest.")
}

func main() {
	flag.Parse()

	if (*romFile == "") == (*binFile == "") {
		log.Fatalf("Exactly one of -nes_rom and -bin is required.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tracers multiTracer
	if *traceFile != "" {
		w, closer, err := traceOutput(*traceFile)
		if err != nil {
			log.Fatalf("Couldn't open trace: %v", err)
		}
		defer closer()
		tw := mos6502.NewTraceWriter(w)
		defer func() {
			if err := tw.Err(); err != nil {
				log.Printf("trace: %v", err)
			}
		}()
		tracers = append(tracers, tw)
	}

	var chk *golden.Checker
	if *logFile != "" {
		want, err := golden.LoadFile(*logFile)
		if err != nil {
			log.Fatalf("Couldn't load log: %v", err)
		}
		chk = golden.NewChecker(want)
		tracers = append(tracers, chk)
	}

	if *binFile != "" {
		runBin(ctx, tracers, chk)
		return
	}
	runROM(ctx, tracers, chk)
}

func runBin(ctx context.Context, tracers multiTracer, chk *golden.Checker) {
	prog, err := os.ReadFile(*binFile)
	if err != nil {
		log.Fatalf("Couldn't read %q: %v", *binFile, err)
	}

	mem := mos6502.NewMemory()
	mem.LoadProgram(loadAddr.addr, prog)
	cpu := mos6502.New(mem)
	if startPC.set {
		cpu.SetPC(startPC.addr)
	}
	if len(tracers) > 0 {
		cpu.SetTracer(tracers)
	}

	err = run(ctx, cpu.Step, chk)
	fmt.Println(cpu)
	report(err, chk)
}

func runROM(ctx context.Context, tracers multiTracer, chk *golden.Checker) {
	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}
	log.Println(rom)

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("Couldn't load ROM: %v", err)
	}

	mach := console.New(m)
	if chk == nil {
		// Reference logs were recorded with nothing answering at
		// $4000-$401F, so pads only go in for free runs.
		mach.AttachIO(console.NewJoypads(nil, nil))
	}
	if startPC.set {
		mach.CPU().SetPC(startPC.addr)
	}
	if len(tracers) > 0 {
		mach.SetTracer(tracers)
	}

	if *bios {
		// The monitor handles ^C itself, stopping a run rather than exiting.
		if err := mach.BIOS(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Fatalf("BIOS: %v", err)
		}
		return
	}

	err = run(ctx, mach.Step, chk)
	fmt.Println(mach.CPU())
	report(err, chk)
}

// run steps the cpu until -steps is reached, ctx is cancelled, the cpu
// fails or a golden log runs out of documented opcodes.
func run(ctx context.Context, step func() (uint8, error), chk *golden.Checker) error {
	for i := 0; *steps <= 0 || i < *steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if chk != nil && (chk.Done() || chk.Err() != nil) {
			return nil
		}
		if _, err := step(); err != nil {
			return err
		}
	}
	return nil
}

func report(err error, chk *golden.Checker) {
	if chk != nil {
		if cerr := chk.Err(); cerr != nil {
			log.Fatalf("golden log mismatch after %d lines: %v", chk.Checked(), cerr)
		}
		log.Printf("golden log: %d lines matched", chk.Checked())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("stopped: %v", err)
	}
}

func traceOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%q", path)
	}
	return f, func() { f.Close() }, nil
}

// multiTracer fans one snapshot out to several tracers.
type multiTracer []mos6502.Tracer

func (mt multiTracer) Trace(s mos6502.Snapshot) {
	for _, t := range mt {
		t.Trace(s)
	}
}
