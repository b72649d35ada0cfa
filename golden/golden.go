// Package golden compares a cpu trace against a reference log in the
// nestest.log format.
package golden

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bdwalton/nes6502/mos6502"
	"github.com/pkg/errors"
)

// MARKER_COLUMN is where a '*' flags an unofficial opcode.
const MARKER_COLUMN = 15

// MismatchError describes the first line where the trace and the log
// disagree. Line is 1-based.
type MismatchError struct {
	Line      int
	Got, Want string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("line %d differs:\n got: %s\nwant: %s", e.Line, e.Got, e.Want)
}

// Normalize strips what the cpu trace doesn't produce from a log line:
// the PPU column and trailing whitespace. Logs from before CPU cycle
// counts were added use CYC for the PPU dot with a scanline after it;
// those lose the CYC column entirely.
func Normalize(line string) string {
	line = strings.TrimRight(line, " \t\r\n")

	if i := strings.Index(line, " PPU:"); i >= 0 {
		if j := strings.Index(line[i:], " CYC:"); j >= 0 {
			line = line[:i] + line[i+j:]
		} else {
			line = line[:i]
		}
	}

	if strings.Contains(line, " SL:") {
		if i := strings.Index(line, " CYC:"); i >= 0 {
			line = line[:i]
		}
	}

	return line
}

// Official reports whether line is for a documented opcode.
func Official(line string) bool {
	return len(line) > MARKER_COLUMN && line[MARKER_COLUMN] != '*'
}

// Load reads and normalizes every non blank line of a log.
func Load(r io.Reader) ([]string, error) {
	var lines []string

	s := bufio.NewScanner(r)
	for s.Scan() {
		if l := Normalize(s.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read log")
	}

	return lines, nil
}

// LoadFile is Load for the log at path.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open log %q", path)
	}
	defer f.Close()

	lines, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", path)
	}
	return lines, nil
}

// Checker is a mos6502.Tracer that compares each traced instruction
// with the next log line. It stops checking at the first mismatch, at
// the first unofficial opcode in the log or at the end of the log.
type Checker struct {
	want []string
	n    int
	err  error
}

func NewChecker(want []string) *Checker {
	return &Checker{want: want}
}

func (c *Checker) Trace(s mos6502.Snapshot) {
	if c.err != nil || c.Done() {
		return
	}

	want := c.want[c.n]
	got := s.String()
	if !strings.Contains(want, " CYC:") {
		if i := strings.Index(got, " CYC:"); i >= 0 {
			got = got[:i]
		}
	}

	if got != want {
		c.err = &MismatchError{Line: c.n + 1, Got: got, Want: want}
		return
	}
	c.n++
}

// Done reports whether there is nothing left to check: the log is
// exhausted or its next line is an unofficial opcode.
func (c *Checker) Done() bool {
	return c.n >= len(c.want) || !Official(c.want[c.n])
}

// Err returns the first mismatch, if any.
func (c *Checker) Err() error {
	return c.err
}

// Checked is the number of lines that matched.
func (c *Checker) Checked() int {
	return c.n
}
