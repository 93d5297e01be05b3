package chip8

import (
	"errors"
	"fmt"
)

// ErrStackOverflow is returned by Step when a call is executed with the
// stack already full.
var ErrStackOverflow = errors.New("call stack overflow")

// ErrStackUnderflow is returned by Step when a return is executed with the
// stack empty.
var ErrStackUnderflow = errors.New("call stack underflow")

// An UnknownInstructionError is returned by Step when the fetched word
// matches no defined opcode pattern. It carries the raw word and the
// address it was fetched from for diagnostics.
type UnknownInstructionError struct {
	Instr uint16
	PC    uint16
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %04X at %03X", e.Instr, e.PC)
}
