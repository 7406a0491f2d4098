package nes

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMapper is returned when the cartridge header names a mapper
// chip this console cannot emulate.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// FormatError reports a malformed iNES image. Loading stops at the first one.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "ines: " + e.Reason
}

// BusError is raised when an address falls outside every decode range. It is
// a wiring defect, so the decoders panic with it and the scheduler turns it
// back into an error.
type BusError struct {
	Address uint16
	Write   bool
	Side    string // "cpu" or "mapper"
}

func (e *BusError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("%s bus: unmapped %s at $%04X", e.Side, op, e.Address)
}

// UnimplementedOpcodeError describes an opcode whose side effect is not
// emulated. It is only ever logged.
type UnimplementedOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode $%02X (%s) at $%04X",
		e.Opcode, instructions[e.Opcode].name, e.PC)
}

// recoverBusError turns a BusError panic into *err. Anything else keeps
// unwinding.
func recoverBusError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if be, ok := r.(*BusError); ok {
		*err = be
		return
	}
	panic(r)
}
