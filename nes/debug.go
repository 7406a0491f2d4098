package nes

import (
	"fmt"
	"io"
	"strings"
)

// Inspection helpers for debuggers and trace logs. None of them change
// machine state: reads go through peekMemory, which skips the registers
// that have read side effects.

type peekMemory struct {
	console *Console
}

func (mem *peekMemory) Read(addr uint16) byte {
	c := mem.console
	switch {
	case addr < 0x2000:
		return c.RAM[addr%0x0800]
	case addr < 0x6000:
		// PPU, APU and controller registers, and the unmapped hole
		return 0
	default:
		return c.Mapper.Read(addr)
	}
}

func (mem *peekMemory) Write(addr uint16, value byte) {}

func (cpu *CPU) peeker() Memory {
	if cpu.console == nil {
		return cpu.Memory
	}
	return &peekMemory{console: cpu.console}
}

// CPUState is a snapshot of the CPU registers.
type CPUState struct {
	PC     uint16
	A      byte
	X      byte
	Y      byte
	SP     byte
	P      byte
	Cycles uint64
}

func (s CPUState) String() string {
	const names = "NVUBDIZC"
	var flags [8]byte
	for i := 0; i < 8; i++ {
		if s.P&(0x80>>i) != 0 {
			flags[i] = names[i]
		} else {
			flags[i] = '-'
		}
	}
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%02X [%s] CYC:%d",
		s.PC, s.A, s.X, s.Y, s.SP, s.P, flags[:], s.Cycles)
}

func (cpu *CPU) State() CPUState {
	return CPUState{
		PC:     cpu.PC,
		A:      cpu.A,
		X:      cpu.X,
		Y:      cpu.Y,
		SP:     cpu.SP,
		P:      cpu.Flags(),
		Cycles: cpu.Cycles,
	}
}

// Mnemonic is the name of the instruction at PC.
func (cpu *CPU) Mnemonic() string {
	return instructions[cpu.peeker().Read(cpu.PC)].name
}

// EffectiveAddress resolves the operand address of the instruction at PC
// without executing it. Implied and accumulator modes report ok == false.
func (cpu *CPU) EffectiveAddress() (address uint16, ok bool) {
	ins := instructions[cpu.peeker().Read(cpu.PC)]
	if ins.mode == modeImplied || ins.mode == modeAccumulator {
		return 0, false
	}
	address, _ = effectiveAddress(cpu.peeker(), cpu, ins.mode)
	return address, true
}

// Disassemble decodes the instruction at address. It returns the text and
// the number of bytes the instruction occupies, at least 1.
func (cpu *CPU) Disassemble(address uint16) (string, int) {
	mem := cpu.peeker()
	ins := instructions[mem.Read(address)]
	lo := mem.Read(address + 1)
	word := uint16(mem.Read(address+2))<<8 | uint16(lo)
	size := int(ins.size)
	if size == 0 {
		size = 1
	}
	var operand string
	switch ins.mode {
	case modeAbsolute:
		operand = fmt.Sprintf("$%04X", word)
	case modeAbsoluteX:
		operand = fmt.Sprintf("$%04X,X", word)
	case modeAbsoluteY:
		operand = fmt.Sprintf("$%04X,Y", word)
	case modeAccumulator:
		operand = "A"
	case modeImmediate:
		operand = fmt.Sprintf("#$%02X", lo)
	case modeIndexedIndirect:
		operand = fmt.Sprintf("($%02X,X)", lo)
	case modeIndirect:
		operand = fmt.Sprintf("($%04X)", word)
	case modeIndirectIndexed:
		operand = fmt.Sprintf("($%02X),Y", lo)
	case modeRelative:
		operand = fmt.Sprintf("$%04X", address+2+uint16(int8(lo)))
	case modeZeroPage:
		operand = fmt.Sprintf("$%02X", lo)
	case modeZeroPageX:
		operand = fmt.Sprintf("$%02X,X", lo)
	case modeZeroPageY:
		operand = fmt.Sprintf("$%02X,Y", lo)
	}
	if operand == "" {
		return ins.name, size
	}
	return ins.name + " " + operand, size
}

// traceLine formats the instruction at PC like a nestest.log line.
func (cpu *CPU) traceLine() string {
	mem := cpu.peeker()
	text, size := cpu.Disassemble(cpu.PC)
	var raw [3]string
	for i := range raw {
		raw[i] = "  "
		if i < size {
			raw[i] = fmt.Sprintf("%02X", mem.Read(cpu.PC+uint16(i)))
		}
	}
	var line strings.Builder
	fmt.Fprintf(&line, "%04X  %s %s %s  %-32s", cpu.PC, raw[0], raw[1], raw[2], text)
	fmt.Fprintf(&line, "A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		cpu.A, cpu.X, cpu.Y, cpu.Flags(), cpu.SP)
	if cpu.console != nil && cpu.console.PPU != nil {
		ppu := cpu.console.PPU
		fmt.Fprintf(&line, " PPU:%3d,%3d", ppu.ScanLine, ppu.Cycle)
	}
	fmt.Fprintf(&line, " CYC:%d\n", cpu.Cycles)
	return line.String()
}

// MemoryDump writes CPU memory [start, start+length) as hex, 16 bytes to
// a line, each line prefixed with its address.
func (console *Console) MemoryDump(w io.Writer, start uint16, length int) error {
	mem := &peekMemory{console: console}
	for row := 0; row < length; row += 16 {
		address := start + uint16(row)
		n := length - row
		if n > 16 {
			n = 16
		}
		data := make([]byte, n)
		for i := range data {
			data[i] = mem.Read(address + uint16(i))
		}
		if _, err := fmt.Fprintf(w, "%04X: % X\n", address, data); err != nil {
			return err
		}
	}
	return nil
}

// SetTrace starts or, with a nil writer, stops the instruction trace.
func (console *Console) SetTrace(w io.Writer) {
	console.trace = w
	console.CPU.trace = w
}
