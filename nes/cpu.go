package nes

import (
	"io"
	"log"
)

// interrupt vectors, each a little endian 16 bit address
const (
	NMIVector   = 0xFFFA
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE // shared with BRK
)

const CPUFrequency = 1789773

const (
	_ = iota
	interruptNone
	interruptNMI
	interruptIRQ
)

// cycles taken to enter an interrupt handler
const interruptCycles = 7

/*
P register

	7 6 5 4 3 2 1 0
	N V U B D I Z C

U always reads as 1. B only exists on the stack: PHP and BRK push it set,
IRQ and NMI push it clear.
*/

type CPU struct {
	Memory
	Cycles    uint64
	PC        uint16
	SP        byte
	A         byte
	X         byte
	Y         byte
	C         byte // carry
	Z         byte // zero
	I         byte // interrupt disable
	D         byte // decimal, stored but ignored by the 2A03
	B         byte // break
	U         byte // unused
	V         byte // overflow
	N         byte // negative
	interrupt byte
	stall     int // cycles left before the next fetch

	console  *Console
	trace    io.Writer
	logger   *log.Logger
	reported [256]bool
}

// stepInfo is what an instruction handler gets after addressing is done.
type stepInfo struct {
	address uint16
	pc      uint16
	mode    addressingMode
}

func NewCPU(console *Console) *CPU {
	cpu := CPU{
		Memory:  NewCPUMemory(console),
		console: console,
		logger:  console.logger,
		trace:   console.trace,
	}
	cpu.Reset()
	return &cpu
}

func (cpu *CPU) Reset() {
	cpu.PC = cpu.Read16(ResetVector)
	cpu.Cycles = 0
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = 0xFD
	cpu.setFlags(0x24)
	cpu.interrupt = interruptNone
	cpu.stall = 0
}

func (cpu *CPU) Read16(addr uint16) uint16 {
	lo := cpu.Read(addr)
	hi := cpu.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// read16bug reads a pointer without carrying into the high byte, so
// JMP ($10FF) reads $10FF and $1000 and zero page pointers wrap at $FF.
func read16bug(mem Memory, address uint16) uint16 {
	b := (address & 0xFF00) | uint16(byte(address)+1)
	lo := mem.Read(address)
	hi := mem.Read(b)
	return uint16(hi)<<8 | uint16(lo)
}

// the stack lives in page $01, SP counts down
func (cpu *CPU) push(value byte) {
	cpu.Write(0x100|uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) push16(value uint16) {
	cpu.push(byte(value >> 8))
	cpu.push(byte(value))
}

func (cpu *CPU) pull() byte {
	cpu.SP++
	return cpu.Read(0x100 | uint16(cpu.SP))
}

func (cpu *CPU) pull16() uint16 {
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	return hi<<8 | lo
}

func (cpu *CPU) setZ(value byte) {
	if value == 0 {
		cpu.Z = 1
	} else {
		cpu.Z = 0
	}
}

func (cpu *CPU) setN(value byte) {
	cpu.N = (value >> 7) & 1
}

func (cpu *CPU) setZN(value byte) {
	cpu.setZ(value)
	cpu.setN(value)
}

// Flags packs the status register.
func (cpu *CPU) Flags() byte {
	var flags byte
	flags |= cpu.C << 0
	flags |= cpu.Z << 1
	flags |= cpu.I << 2
	flags |= cpu.D << 3
	flags |= cpu.B << 4
	flags |= cpu.U << 5
	flags |= cpu.V << 6
	flags |= cpu.N << 7
	return flags
}

func (cpu *CPU) setFlags(p byte) {
	cpu.C = (p >> 0) & 1
	cpu.Z = (p >> 1) & 1
	cpu.I = (p >> 2) & 1
	cpu.D = (p >> 3) & 1
	cpu.B = (p >> 4) & 1
	cpu.U = (p >> 5) & 1
	cpu.V = (p >> 6) & 1
	cpu.N = (p >> 7) & 1
}

// TriggerIRQ requests a maskable interrupt. It is dropped while I is set and
// never replaces a pending NMI.
func (cpu *CPU) TriggerIRQ() {
	if cpu.I == 0 && cpu.interrupt != interruptNMI {
		cpu.interrupt = interruptIRQ
	}
}

func (cpu *CPU) TriggerNMI() {
	cpu.interrupt = interruptNMI
}

// Stall keeps the CPU from fetching for the given number of cycles.
func (cpu *CPU) Stall(cycles int) {
	cpu.stall += cycles
}

func (cpu *CPU) enterInterrupt(vector uint16) {
	cpu.push16(cpu.PC)
	cpu.push(cpu.Flags()&^0x10 | 0x20)
	cpu.I = 1
	cpu.PC = cpu.Read16(vector)
	cpu.Cycles += interruptCycles
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// Step runs one unit of CPU work: a stalled cycle, an interrupt entry or one
// instruction. It returns the cycles consumed.
func (cpu *CPU) Step() int64 {
	if cpu.stall > 0 {
		cpu.stall--
		cpu.Cycles++
		return 1
	}

	switch cpu.interrupt {
	case interruptNMI:
		cpu.interrupt = interruptNone
		cpu.enterInterrupt(NMIVector)
		return interruptCycles
	case interruptIRQ:
		cpu.interrupt = interruptNone
		if cpu.I == 0 {
			cpu.enterInterrupt(IRQVector)
			return interruptCycles
		}
	}

	if cpu.trace != nil {
		io.WriteString(cpu.trace, cpu.traceLine())
	}

	opcode := cpu.Read(cpu.PC)
	ins := &instructions[opcode]
	start := cpu.Cycles

	address, pageCrossed := effectiveAddress(cpu.Memory, cpu, ins.mode)

	cpu.PC += uint16(ins.size)
	cpu.Cycles += uint64(ins.cycles)
	if pageCrossed {
		cpu.Cycles += uint64(ins.pageCycles)
	}

	cpu.execute(opcode, &stepInfo{address, cpu.PC, ins.mode})

	return int64(cpu.Cycles - start)
}

// effectiveAddress resolves the operand address of the instruction at
// cpu.PC, reading operands through mem. The second result reports an indexed
// access that crossed into another page.
func effectiveAddress(mem Memory, cpu *CPU, mode addressingMode) (uint16, bool) {
	pc := cpu.PC
	switch mode {
	case modeAbsolute:
		return read16(mem, pc+1), false
	case modeAbsoluteX:
		base := read16(mem, pc+1)
		address := base + uint16(cpu.X)
		return address, pagesDiffer(base, address)
	case modeAbsoluteY:
		base := read16(mem, pc+1)
		address := base + uint16(cpu.Y)
		return address, pagesDiffer(base, address)
	case modeAccumulator, modeImplied:
		return 0, false
	case modeImmediate:
		return pc + 1, false
	case modeIndexedIndirect:
		return read16bug(mem, uint16(mem.Read(pc+1)+cpu.X)), false
	case modeIndirect:
		return read16bug(mem, read16(mem, pc+1)), false
	case modeIndirectIndexed:
		base := read16bug(mem, uint16(mem.Read(pc+1)))
		address := base + uint16(cpu.Y)
		return address, pagesDiffer(base, address)
	case modeRelative:
		offset := uint16(mem.Read(pc + 1))
		if offset < 0x80 {
			return pc + 2 + offset, false
		}
		return pc + 2 + offset - 0x100, false
	case modeZeroPage:
		return uint16(mem.Read(pc + 1)), false
	case modeZeroPageX:
		return uint16(mem.Read(pc+1) + cpu.X), false
	case modeZeroPageY:
		return uint16(mem.Read(pc+1) + cpu.Y), false
	}
	panic("unknown addressing mode")
}

func read16(mem Memory, addr uint16) uint16 {
	lo := mem.Read(addr)
	hi := mem.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (cpu *CPU) execute(opcode byte, info *stepInfo) {
	switch instructions[opcode].op {
	case opADC:
		cpu.adc(info)
	case opAND:
		cpu.and(info)
	case opASL:
		cpu.asl(info)
	case opBCC:
		cpu.branch(cpu.C == 0, info)
	case opBCS:
		cpu.branch(cpu.C != 0, info)
	case opBEQ:
		cpu.branch(cpu.Z != 0, info)
	case opBIT:
		cpu.bit(info)
	case opBMI:
		cpu.branch(cpu.N != 0, info)
	case opBNE:
		cpu.branch(cpu.Z == 0, info)
	case opBPL:
		cpu.branch(cpu.N == 0, info)
	case opBRK:
		cpu.brk(info)
	case opBVC:
		cpu.branch(cpu.V == 0, info)
	case opBVS:
		cpu.branch(cpu.V != 0, info)
	case opCLC:
		cpu.C = 0
	case opCLD:
		cpu.D = 0
	case opCLI:
		cpu.I = 0
	case opCLV:
		cpu.V = 0
	case opCMP:
		cpu.compare(cpu.A, cpu.Read(info.address))
	case opCPX:
		cpu.compare(cpu.X, cpu.Read(info.address))
	case opCPY:
		cpu.compare(cpu.Y, cpu.Read(info.address))
	case opDEC:
		cpu.dec(info)
	case opDEX:
		cpu.X--
		cpu.setZN(cpu.X)
	case opDEY:
		cpu.Y--
		cpu.setZN(cpu.Y)
	case opEOR:
		cpu.A ^= cpu.Read(info.address)
		cpu.setZN(cpu.A)
	case opINC:
		cpu.inc(info)
	case opINX:
		cpu.X++
		cpu.setZN(cpu.X)
	case opINY:
		cpu.Y++
		cpu.setZN(cpu.Y)
	case opJMP:
		cpu.PC = info.address
	case opJSR:
		cpu.push16(cpu.PC - 1)
		cpu.PC = info.address
	case opLDA:
		cpu.A = cpu.Read(info.address)
		cpu.setZN(cpu.A)
	case opLDX:
		cpu.X = cpu.Read(info.address)
		cpu.setZN(cpu.X)
	case opLDY:
		cpu.Y = cpu.Read(info.address)
		cpu.setZN(cpu.Y)
	case opLSR:
		cpu.lsr(info)
	case opNOP:
	case opORA:
		cpu.A |= cpu.Read(info.address)
		cpu.setZN(cpu.A)
	case opPHA:
		cpu.push(cpu.A)
	case opPHP:
		cpu.push(cpu.Flags() | 0x10)
	case opPLA:
		cpu.A = cpu.pull()
		cpu.setZN(cpu.A)
	case opPLP:
		cpu.setFlags(cpu.pull()&0xEF | 0x20)
	case opROL:
		cpu.rol(info)
	case opROR:
		cpu.ror(info)
	case opRTI:
		cpu.setFlags(cpu.pull()&0xEF | 0x20)
		cpu.PC = cpu.pull16()
	case opRTS:
		cpu.PC = cpu.pull16() + 1
	case opSBC:
		cpu.sbc(cpu.Read(info.address))
	case opSEC:
		cpu.C = 1
	case opSED:
		cpu.D = 1
	case opSEI:
		cpu.I = 1
	case opSTA:
		cpu.Write(info.address, cpu.A)
	case opSTX:
		cpu.Write(info.address, cpu.X)
	case opSTY:
		cpu.Write(info.address, cpu.Y)
	case opTAX:
		cpu.X = cpu.A
		cpu.setZN(cpu.X)
	case opTAY:
		cpu.Y = cpu.A
		cpu.setZN(cpu.Y)
	case opTSX:
		cpu.X = cpu.SP
		cpu.setZN(cpu.X)
	case opTXA:
		cpu.A = cpu.X
		cpu.setZN(cpu.A)
	case opTXS:
		cpu.SP = cpu.X
	case opTYA:
		cpu.A = cpu.Y
		cpu.setZN(cpu.A)

	// undocumented, stable
	case opALR:
		cpu.A &= cpu.Read(info.address)
		cpu.C = cpu.A & 1
		cpu.A >>= 1
		cpu.setZN(cpu.A)
	case opANC:
		cpu.A &= cpu.Read(info.address)
		cpu.setZN(cpu.A)
		cpu.C = cpu.N
	case opARR:
		cpu.arr(info)
	case opAXS:
		value := cpu.Read(info.address)
		ax := cpu.A & cpu.X
		cpu.X = ax - value
		cpu.setZN(cpu.X)
		if ax >= value {
			cpu.C = 1
		} else {
			cpu.C = 0
		}
	case opDCP:
		value := cpu.Read(info.address) - 1
		cpu.Write(info.address, value)
		cpu.compare(cpu.A, value)
	case opISC:
		value := cpu.Read(info.address) + 1
		cpu.Write(info.address, value)
		cpu.sbc(value)
	case opLAX:
		cpu.A = cpu.Read(info.address)
		cpu.X = cpu.A
		cpu.setZN(cpu.A)
	case opRLA:
		cpu.A &= cpu.rotateLeft(info)
		cpu.setZN(cpu.A)
	case opRRA:
		cpu.addWithCarry(cpu.rotateRight(info))
	case opSAX:
		cpu.Write(info.address, cpu.A&cpu.X)
	case opSLO:
		cpu.A |= cpu.shiftLeft(info)
		cpu.setZN(cpu.A)
	case opSRE:
		cpu.A ^= cpu.shiftRight(info)
		cpu.setZN(cpu.A)

	// KIL jams: its length is 0 so the CPU keeps fetching it
	case opKIL:

	// undocumented, unstable on real hardware
	case opAHX, opLAS, opSHX, opSHY, opTAS, opXAA:
		cpu.reportUnimplemented(opcode, info.pc-uint16(instructions[opcode].size))
	}
}

func (cpu *CPU) reportUnimplemented(opcode byte, pc uint16) {
	if cpu.reported[opcode] {
		return
	}
	cpu.reported[opcode] = true
	logf(cpu.logger, "%v", &UnimplementedOpcodeError{Opcode: opcode, PC: pc})
}

// a taken branch costs one cycle, two if it lands in another page
func (cpu *CPU) branch(taken bool, info *stepInfo) {
	if !taken {
		return
	}
	cpu.PC = info.address
	cpu.Cycles++
	if pagesDiffer(info.pc, info.address) {
		cpu.Cycles++
	}
}

// ADC - A = A + M + C
func (cpu *CPU) adc(info *stepInfo) {
	cpu.addWithCarry(cpu.Read(info.address))
}

func (cpu *CPU) addWithCarry(b byte) {
	a := cpu.A
	c := cpu.C
	cpu.A = a + b + c
	cpu.setZN(cpu.A)
	if int(a)+int(b)+int(c) > 0xFF {
		cpu.C = 1
	} else {
		cpu.C = 0
	}
	if (a^b)&0x80 == 0 && (a^cpu.A)&0x80 != 0 {
		cpu.V = 1
	} else {
		cpu.V = 0
	}
}

// SBC - A = A - M - (1 - C)
func (cpu *CPU) sbc(b byte) {
	a := cpu.A
	c := cpu.C
	cpu.A = a - b - (1 - c)
	cpu.setZN(cpu.A)
	if int(a)-int(b)-int(1-c) >= 0 {
		cpu.C = 1
	} else {
		cpu.C = 0
	}
	if (a^b)&0x80 != 0 && (a^cpu.A)&0x80 != 0 {
		cpu.V = 1
	} else {
		cpu.V = 0
	}
}

func (cpu *CPU) and(info *stepInfo) {
	cpu.A &= cpu.Read(info.address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) inc(info *stepInfo) {
	value := cpu.Read(info.address) + 1
	cpu.Write(info.address, value)
	cpu.setZN(value)
}

func (cpu *CPU) dec(info *stepInfo) {
	value := cpu.Read(info.address) - 1
	cpu.Write(info.address, value)
	cpu.setZN(value)
}

// compare sets flags from a - b and discards the difference
func (cpu *CPU) compare(a, b byte) {
	cpu.setZN(a - b)
	if a >= b {
		cpu.C = 1
	} else {
		cpu.C = 0
	}
}

func (cpu *CPU) bit(info *stepInfo) {
	value := cpu.Read(info.address)
	cpu.setZ(cpu.A & value)
	cpu.V = (value >> 6) & 1
	cpu.N = (value >> 7) & 1
}

// The shift and rotate helpers work on A in accumulator mode and on memory
// otherwise. They return the shifted value.

// ASL  C <- |7|6|5|4|3|2|1|0| <- 0
func (cpu *CPU) shiftLeft(info *stepInfo) byte {
	return cpu.modify(info, func(v byte) byte {
		cpu.C = (v >> 7) & 1
		return v << 1
	})
}

// LSR  0 -> |7|6|5|4|3|2|1|0| -> C
func (cpu *CPU) shiftRight(info *stepInfo) byte {
	return cpu.modify(info, func(v byte) byte {
		cpu.C = v & 1
		return v >> 1
	})
}

// ROL  C <- |7|6|5|4|3|2|1|0| <- C
func (cpu *CPU) rotateLeft(info *stepInfo) byte {
	return cpu.modify(info, func(v byte) byte {
		c := cpu.C
		cpu.C = (v >> 7) & 1
		return v<<1 | c
	})
}

// ROR  C -> |7|6|5|4|3|2|1|0| -> C
func (cpu *CPU) rotateRight(info *stepInfo) byte {
	return cpu.modify(info, func(v byte) byte {
		c := cpu.C
		cpu.C = v & 1
		return v>>1 | c<<7
	})
}

func (cpu *CPU) modify(info *stepInfo, f func(byte) byte) byte {
	if info.mode == modeAccumulator {
		cpu.A = f(cpu.A)
		return cpu.A
	}
	value := f(cpu.Read(info.address))
	cpu.Write(info.address, value)
	return value
}

func (cpu *CPU) asl(info *stepInfo) {
	cpu.setZN(cpu.shiftLeft(info))
}

func (cpu *CPU) lsr(info *stepInfo) {
	cpu.setZN(cpu.shiftRight(info))
}

func (cpu *CPU) rol(info *stepInfo) {
	cpu.setZN(cpu.rotateLeft(info))
}

func (cpu *CPU) ror(info *stepInfo) {
	cpu.setZN(cpu.rotateRight(info))
}

func (cpu *CPU) arr(info *stepInfo) {
	cpu.A &= cpu.Read(info.address)
	cpu.A = cpu.A>>1 | cpu.C<<7
	cpu.setZN(cpu.A)
	cpu.C = (cpu.A >> 6) & 1
	cpu.V = cpu.C ^ ((cpu.A >> 5) & 1)
}

// BRK pushes the address of the byte after its padding byte
func (cpu *CPU) brk(info *stepInfo) {
	cpu.push16(cpu.PC)
	cpu.push(cpu.Flags() | 0x10)
	cpu.I = 1
	cpu.PC = cpu.Read16(IRQVector)
}
