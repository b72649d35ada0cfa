package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"unicode"

	"github.com/bdwalton/nes6502/mos6502"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const menu = `(B)reak - add breakpoint
(C)lear - clear breakpoints
(R)un - run to the next breakpoint
(S)tep - step the cpu one instruction
R(e)set - hit the reset button
(M)emory - select a memory range to display
S(t)ack - show the top 3 items on the stack
(I)nstruction - show instruction memory locations
(P)C - set program counter
(Q)uit - shutdown the monitor
`

// lineReader prompts for and returns one line of input, without the
// line ending.
type lineReader interface {
	readLine(prompt string) (string, error)
}

type scanReader struct {
	s *bufio.Scanner
	w io.Writer
}

func (sr *scanReader) readLine(prompt string) (string, error) {
	fmt.Fprint(sr.w, prompt)
	if !sr.s.Scan() {
		if err := sr.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return sr.s.Text(), nil
}

// termReader gives line editing on a real terminal. The terminal is
// only raw while a line is being read, so ^C still interrupts a
// running program.
type termReader struct {
	fd int
	t  *term.Terminal
}

func (tr *termReader) readLine(prompt string) (string, error) {
	st, err := term.MakeRaw(tr.fd)
	if err != nil {
		return "", errors.Wrap(err, "couldn't put terminal in raw mode")
	}
	defer term.Restore(tr.fd, st)

	tr.t.SetPrompt(prompt)
	return tr.t.ReadLine()
}

func newLineReader(in io.Reader, out io.Writer) lineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rw := struct {
			io.Reader
			io.Writer
		}{f, out}
		return &termReader{fd: int(f.Fd()), t: term.NewTerminal(rw, "")}
	}

	return &scanReader{s: bufio.NewScanner(in), w: out}
}

func readAddress(lr lineReader, out io.Writer, prompt string) (uint16, bool) {
	line, err := lr.readLine(prompt)
	if err != nil {
		return 0, false
	}

	s := strings.TrimPrefix(strings.TrimSpace(line), "0x")
	addr, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		fmt.Fprintf(out, "invalid address %q\n", line)
		return 0, false
	}

	return uint16(addr), true
}

// BIOS is an interactive monitor for poking at the machine. It reads
// commands from in until quit, end of input or ctx is done.
func (mach *Machine) BIOS(ctx context.Context, in io.Reader, out io.Writer) error {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigQuit)

	lr := newLineReader(in, out)
	breaks := make(map[uint16]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(out, "%s\n%s\n\n%s", mach.cpu, mach.cpu.Disassemble(mach.cpu.PC()), menu)
		line, err := lr.readLine("Choice: ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch unicode.ToLower(rune(line[0])) {
		case 'b':
			if addr, ok := readAddress(lr, out, "Breakpoint (eg: ff15): "); ok {
				breaks[addr] = struct{}{}
			}
		case 'c':
			breaks = make(map[uint16]struct{})
		case 'p':
			if addr, ok := readAddress(lr, out, "Set PC to what address (eg: 0400)?: "); ok {
				mach.cpu.SetPC(addr)
			}
		case 'q':
			return nil
		case 'r':
			cctx, cancel := context.WithCancel(ctx)
			go func() {
				select {
				case <-sigQuit:
					cancel()
				case <-cctx.Done():
				}
			}()
			err := mach.cpu.Run(cctx, breaks)
			cancel()

			switch {
			case err == nil:
				log.Printf("breakpoint at 0x%04x", mach.cpu.PC())
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.Is(err, context.Canceled):
				log.Printf("interrupted at 0x%04x", mach.cpu.PC())
			default:
				fmt.Fprintf(out, "stopped: %v\n", err)
			}
		case 's':
			if _, err := mach.cpu.Step(); err != nil {
				fmt.Fprintf(out, "stopped: %v\n", err)
			}
		case 't':
			fmt.Fprintln(out)
			sp := mos6502.STACK_PAGE + uint16(mach.cpu.Registers().SP)
			for m := sp + 1; m <= sp+3 && m <= 0x01FF; m++ {
				fmt.Fprintf(out, "0x%04x: 0x%02x ", m, mach.mem.Peek(m))
			}
			fmt.Fprintf(out, "\n\n")
		case 'i':
			fmt.Fprintln(out)
			pc := mach.cpu.PC()
			for i := range mach.cpu.Capture().Bytes {
				m := pc + uint16(i)
				fmt.Fprintf(out, "0x%04x: 0x%02x ", m, mach.mem.Peek(m))
			}
			fmt.Fprintf(out, "\n\n")
		case 'e':
			mach.Reset()
		case 'm':
			fmt.Fprintln(out)
			low, ok := readAddress(lr, out, "Low address (eg f00d): ")
			if !ok {
				continue
			}
			high, ok := readAddress(lr, out, "High address (eg beef): ")
			if !ok {
				continue
			}
			fmt.Fprintln(out)
			mach.dump(out, low, high)
			fmt.Fprintf(out, "\n\n")
		default:
			fmt.Fprintf(out, "unknown command %q\n", line)
		}
	}
}

// dump prints memory from low to high inclusive, 5 bytes per line.
func (mach *Machine) dump(out io.Writer, low, high uint16) {
	x := 1
	for i := low; ; i++ {
		fmt.Fprintf(out, "0x%04x: 0x%02x ", i, mach.mem.Peek(i))
		if x%5 == 0 {
			fmt.Fprintln(out)
		}
		if i >= high || i == math.MaxUint16 {
			break
		}
		x++
	}
}
