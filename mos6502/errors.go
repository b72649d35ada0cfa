package mos6502

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnimplementedOpcode matches any error returned for an opcode slot
// that has no routine, ie: the unofficial instructions.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

type UnimplementedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02x at 0x%04x", e.Opcode, e.PC)
}

func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplementedOpcode
}

func unimplemented(op uint8, pc uint16) error {
	return errors.WithStack(&UnimplementedOpcodeError{Opcode: op, PC: pc})
}
