package nes

// addressing modes
type addressingMode byte

const (
	_ addressingMode = iota
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeAccumulator
	modeImmediate
	modeImplied
	modeIndexedIndirect
	modeIndirect
	modeIndirectIndexed
	modeRelative
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
)

var modeNames = [...]string{
	modeAbsolute:        "Absolute",
	modeAbsoluteX:       "AbsoluteX",
	modeAbsoluteY:       "AbsoluteY",
	modeAccumulator:     "Accumulator",
	modeImmediate:       "Immediate",
	modeImplied:         "Implied",
	modeIndexedIndirect: "IndirectX",
	modeIndirect:        "Indirect",
	modeIndirectIndexed: "IndirectY",
	modeRelative:        "Relative",
	modeZeroPage:        "ZeroPage",
	modeZeroPageX:       "ZeroPageX",
	modeZeroPageY:       "ZeroPageY",
}

func (m addressingMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "Unknown"
}

// mnemonic identifies the handler an opcode dispatches to. The unofficial
// ones are kept so that every opcode has a table entry.
type mnemonic byte

const (
	opADC mnemonic = iota
	opAHX
	opALR
	opANC
	opAND
	opARR
	opASL
	opAXS
	opBCC
	opBCS
	opBEQ
	opBIT
	opBMI
	opBNE
	opBPL
	opBRK
	opBVC
	opBVS
	opCLC
	opCLD
	opCLI
	opCLV
	opCMP
	opCPX
	opCPY
	opDCP
	opDEC
	opDEX
	opDEY
	opEOR
	opINC
	opINX
	opINY
	opISC
	opJMP
	opJSR
	opKIL
	opLAS
	opLAX
	opLDA
	opLDX
	opLDY
	opLSR
	opNOP
	opORA
	opPHA
	opPHP
	opPLA
	opPLP
	opRLA
	opROL
	opROR
	opRRA
	opRTI
	opRTS
	opSAX
	opSBC
	opSEC
	opSED
	opSEI
	opSHX
	opSHY
	opSLO
	opSRE
	opSTA
	opSTX
	opSTY
	opTAS
	opTAX
	opTAY
	opTSX
	opTXA
	opTXS
	opTYA
	opXAA
)

// instruction is one row of the opcode table.
//
// size is the number of bytes the instruction occupies, 0 for the opcodes
// that jam the processor. pageCycles is the extra cycle charged when an
// indexed read crosses a page; branches account for their own penalties.
type instruction struct {
	name       string
	op         mnemonic
	mode       addressingMode
	size       byte
	cycles     byte
	pageCycles byte
}

var instructions = [256]instruction{
	0x00: {"BRK", opBRK, modeImplied, 2, 7, 0},
	0x01: {"ORA", opORA, modeIndexedIndirect, 2, 6, 0},
	0x02: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x03: {"SLO", opSLO, modeIndexedIndirect, 2, 8, 0},
	0x04: {"NOP", opNOP, modeZeroPage, 2, 3, 0},
	0x05: {"ORA", opORA, modeZeroPage, 2, 3, 0},
	0x06: {"ASL", opASL, modeZeroPage, 2, 5, 0},
	0x07: {"SLO", opSLO, modeZeroPage, 2, 5, 0},
	0x08: {"PHP", opPHP, modeImplied, 1, 3, 0},
	0x09: {"ORA", opORA, modeImmediate, 2, 2, 0},
	0x0A: {"ASL", opASL, modeAccumulator, 1, 2, 0},
	0x0B: {"ANC", opANC, modeImmediate, 2, 2, 0},
	0x0C: {"NOP", opNOP, modeAbsolute, 3, 4, 0},
	0x0D: {"ORA", opORA, modeAbsolute, 3, 4, 0},
	0x0E: {"ASL", opASL, modeAbsolute, 3, 6, 0},
	0x0F: {"SLO", opSLO, modeAbsolute, 3, 6, 0},
	0x10: {"BPL", opBPL, modeRelative, 2, 2, 0},
	0x11: {"ORA", opORA, modeIndirectIndexed, 2, 5, 1},
	0x12: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x13: {"SLO", opSLO, modeIndirectIndexed, 2, 8, 0},
	0x14: {"NOP", opNOP, modeZeroPageX, 2, 4, 0},
	0x15: {"ORA", opORA, modeZeroPageX, 2, 4, 0},
	0x16: {"ASL", opASL, modeZeroPageX, 2, 6, 0},
	0x17: {"SLO", opSLO, modeZeroPageX, 2, 6, 0},
	0x18: {"CLC", opCLC, modeImplied, 1, 2, 0},
	0x19: {"ORA", opORA, modeAbsoluteY, 3, 4, 1},
	0x1A: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0x1B: {"SLO", opSLO, modeAbsoluteY, 3, 7, 0},
	0x1C: {"NOP", opNOP, modeAbsoluteX, 3, 4, 1},
	0x1D: {"ORA", opORA, modeAbsoluteX, 3, 4, 1},
	0x1E: {"ASL", opASL, modeAbsoluteX, 3, 7, 0},
	0x1F: {"SLO", opSLO, modeAbsoluteX, 3, 7, 0},
	0x20: {"JSR", opJSR, modeAbsolute, 3, 6, 0},
	0x21: {"AND", opAND, modeIndexedIndirect, 2, 6, 0},
	0x22: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x23: {"RLA", opRLA, modeIndexedIndirect, 2, 8, 0},
	0x24: {"BIT", opBIT, modeZeroPage, 2, 3, 0},
	0x25: {"AND", opAND, modeZeroPage, 2, 3, 0},
	0x26: {"ROL", opROL, modeZeroPage, 2, 5, 0},
	0x27: {"RLA", opRLA, modeZeroPage, 2, 5, 0},
	0x28: {"PLP", opPLP, modeImplied, 1, 4, 0},
	0x29: {"AND", opAND, modeImmediate, 2, 2, 0},
	0x2A: {"ROL", opROL, modeAccumulator, 1, 2, 0},
	0x2B: {"ANC", opANC, modeImmediate, 2, 2, 0},
	0x2C: {"BIT", opBIT, modeAbsolute, 3, 4, 0},
	0x2D: {"AND", opAND, modeAbsolute, 3, 4, 0},
	0x2E: {"ROL", opROL, modeAbsolute, 3, 6, 0},
	0x2F: {"RLA", opRLA, modeAbsolute, 3, 6, 0},
	0x30: {"BMI", opBMI, modeRelative, 2, 2, 0},
	0x31: {"AND", opAND, modeIndirectIndexed, 2, 5, 1},
	0x32: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x33: {"RLA", opRLA, modeIndirectIndexed, 2, 8, 0},
	0x34: {"NOP", opNOP, modeZeroPageX, 2, 4, 0},
	0x35: {"AND", opAND, modeZeroPageX, 2, 4, 0},
	0x36: {"ROL", opROL, modeZeroPageX, 2, 6, 0},
	0x37: {"RLA", opRLA, modeZeroPageX, 2, 6, 0},
	0x38: {"SEC", opSEC, modeImplied, 1, 2, 0},
	0x39: {"AND", opAND, modeAbsoluteY, 3, 4, 1},
	0x3A: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0x3B: {"RLA", opRLA, modeAbsoluteY, 3, 7, 0},
	0x3C: {"NOP", opNOP, modeAbsoluteX, 3, 4, 1},
	0x3D: {"AND", opAND, modeAbsoluteX, 3, 4, 1},
	0x3E: {"ROL", opROL, modeAbsoluteX, 3, 7, 0},
	0x3F: {"RLA", opRLA, modeAbsoluteX, 3, 7, 0},
	0x40: {"RTI", opRTI, modeImplied, 1, 6, 0},
	0x41: {"EOR", opEOR, modeIndexedIndirect, 2, 6, 0},
	0x42: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x43: {"SRE", opSRE, modeIndexedIndirect, 2, 8, 0},
	0x44: {"NOP", opNOP, modeZeroPage, 2, 3, 0},
	0x45: {"EOR", opEOR, modeZeroPage, 2, 3, 0},
	0x46: {"LSR", opLSR, modeZeroPage, 2, 5, 0},
	0x47: {"SRE", opSRE, modeZeroPage, 2, 5, 0},
	0x48: {"PHA", opPHA, modeImplied, 1, 3, 0},
	0x49: {"EOR", opEOR, modeImmediate, 2, 2, 0},
	0x4A: {"LSR", opLSR, modeAccumulator, 1, 2, 0},
	0x4B: {"ALR", opALR, modeImmediate, 2, 2, 0},
	0x4C: {"JMP", opJMP, modeAbsolute, 3, 3, 0},
	0x4D: {"EOR", opEOR, modeAbsolute, 3, 4, 0},
	0x4E: {"LSR", opLSR, modeAbsolute, 3, 6, 0},
	0x4F: {"SRE", opSRE, modeAbsolute, 3, 6, 0},
	0x50: {"BVC", opBVC, modeRelative, 2, 2, 0},
	0x51: {"EOR", opEOR, modeIndirectIndexed, 2, 5, 1},
	0x52: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x53: {"SRE", opSRE, modeIndirectIndexed, 2, 8, 0},
	0x54: {"NOP", opNOP, modeZeroPageX, 2, 4, 0},
	0x55: {"EOR", opEOR, modeZeroPageX, 2, 4, 0},
	0x56: {"LSR", opLSR, modeZeroPageX, 2, 6, 0},
	0x57: {"SRE", opSRE, modeZeroPageX, 2, 6, 0},
	0x58: {"CLI", opCLI, modeImplied, 1, 2, 0},
	0x59: {"EOR", opEOR, modeAbsoluteY, 3, 4, 1},
	0x5A: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0x5B: {"SRE", opSRE, modeAbsoluteY, 3, 7, 0},
	0x5C: {"NOP", opNOP, modeAbsoluteX, 3, 4, 1},
	0x5D: {"EOR", opEOR, modeAbsoluteX, 3, 4, 1},
	0x5E: {"LSR", opLSR, modeAbsoluteX, 3, 7, 0},
	0x5F: {"SRE", opSRE, modeAbsoluteX, 3, 7, 0},
	0x60: {"RTS", opRTS, modeImplied, 1, 6, 0},
	0x61: {"ADC", opADC, modeIndexedIndirect, 2, 6, 0},
	0x62: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x63: {"RRA", opRRA, modeIndexedIndirect, 2, 8, 0},
	0x64: {"NOP", opNOP, modeZeroPage, 2, 3, 0},
	0x65: {"ADC", opADC, modeZeroPage, 2, 3, 0},
	0x66: {"ROR", opROR, modeZeroPage, 2, 5, 0},
	0x67: {"RRA", opRRA, modeZeroPage, 2, 5, 0},
	0x68: {"PLA", opPLA, modeImplied, 1, 4, 0},
	0x69: {"ADC", opADC, modeImmediate, 2, 2, 0},
	0x6A: {"ROR", opROR, modeAccumulator, 1, 2, 0},
	0x6B: {"ARR", opARR, modeImmediate, 2, 2, 0},
	0x6C: {"JMP", opJMP, modeIndirect, 3, 5, 0},
	0x6D: {"ADC", opADC, modeAbsolute, 3, 4, 0},
	0x6E: {"ROR", opROR, modeAbsolute, 3, 6, 0},
	0x6F: {"RRA", opRRA, modeAbsolute, 3, 6, 0},
	0x70: {"BVS", opBVS, modeRelative, 2, 2, 0},
	0x71: {"ADC", opADC, modeIndirectIndexed, 2, 5, 1},
	0x72: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x73: {"RRA", opRRA, modeIndirectIndexed, 2, 8, 0},
	0x74: {"NOP", opNOP, modeZeroPageX, 2, 4, 0},
	0x75: {"ADC", opADC, modeZeroPageX, 2, 4, 0},
	0x76: {"ROR", opROR, modeZeroPageX, 2, 6, 0},
	0x77: {"RRA", opRRA, modeZeroPageX, 2, 6, 0},
	0x78: {"SEI", opSEI, modeImplied, 1, 2, 0},
	0x79: {"ADC", opADC, modeAbsoluteY, 3, 4, 1},
	0x7A: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0x7B: {"RRA", opRRA, modeAbsoluteY, 3, 7, 0},
	0x7C: {"NOP", opNOP, modeAbsoluteX, 3, 4, 1},
	0x7D: {"ADC", opADC, modeAbsoluteX, 3, 4, 1},
	0x7E: {"ROR", opROR, modeAbsoluteX, 3, 7, 0},
	0x7F: {"RRA", opRRA, modeAbsoluteX, 3, 7, 0},
	0x80: {"NOP", opNOP, modeImmediate, 2, 2, 0},
	0x81: {"STA", opSTA, modeIndexedIndirect, 2, 6, 0},
	0x82: {"NOP", opNOP, modeImmediate, 2, 2, 0},
	0x83: {"SAX", opSAX, modeIndexedIndirect, 2, 6, 0},
	0x84: {"STY", opSTY, modeZeroPage, 2, 3, 0},
	0x85: {"STA", opSTA, modeZeroPage, 2, 3, 0},
	0x86: {"STX", opSTX, modeZeroPage, 2, 3, 0},
	0x87: {"SAX", opSAX, modeZeroPage, 2, 3, 0},
	0x88: {"DEY", opDEY, modeImplied, 1, 2, 0},
	0x89: {"NOP", opNOP, modeImmediate, 2, 2, 0},
	0x8A: {"TXA", opTXA, modeImplied, 1, 2, 0},
	0x8B: {"XAA", opXAA, modeImmediate, 2, 2, 0},
	0x8C: {"STY", opSTY, modeAbsolute, 3, 4, 0},
	0x8D: {"STA", opSTA, modeAbsolute, 3, 4, 0},
	0x8E: {"STX", opSTX, modeAbsolute, 3, 4, 0},
	0x8F: {"SAX", opSAX, modeAbsolute, 3, 4, 0},
	0x90: {"BCC", opBCC, modeRelative, 2, 2, 0},
	0x91: {"STA", opSTA, modeIndirectIndexed, 2, 6, 0},
	0x92: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0x93: {"AHX", opAHX, modeIndirectIndexed, 2, 6, 0},
	0x94: {"STY", opSTY, modeZeroPageX, 2, 4, 0},
	0x95: {"STA", opSTA, modeZeroPageX, 2, 4, 0},
	0x96: {"STX", opSTX, modeZeroPageY, 2, 4, 0},
	0x97: {"SAX", opSAX, modeZeroPageY, 2, 4, 0},
	0x98: {"TYA", opTYA, modeImplied, 1, 2, 0},
	0x99: {"STA", opSTA, modeAbsoluteY, 3, 5, 0},
	0x9A: {"TXS", opTXS, modeImplied, 1, 2, 0},
	0x9B: {"TAS", opTAS, modeAbsoluteY, 3, 5, 0},
	0x9C: {"SHY", opSHY, modeAbsoluteX, 3, 5, 0},
	0x9D: {"STA", opSTA, modeAbsoluteX, 3, 5, 0},
	0x9E: {"SHX", opSHX, modeAbsoluteY, 3, 5, 0},
	0x9F: {"AHX", opAHX, modeAbsoluteY, 3, 5, 0},
	0xA0: {"LDY", opLDY, modeImmediate, 2, 2, 0},
	0xA1: {"LDA", opLDA, modeIndexedIndirect, 2, 6, 0},
	0xA2: {"LDX", opLDX, modeImmediate, 2, 2, 0},
	0xA3: {"LAX", opLAX, modeIndexedIndirect, 2, 6, 0},
	0xA4: {"LDY", opLDY, modeZeroPage, 2, 3, 0},
	0xA5: {"LDA", opLDA, modeZeroPage, 2, 3, 0},
	0xA6: {"LDX", opLDX, modeZeroPage, 2, 3, 0},
	0xA7: {"LAX", opLAX, modeZeroPage, 2, 3, 0},
	0xA8: {"TAY", opTAY, modeImplied, 1, 2, 0},
	0xA9: {"LDA", opLDA, modeImmediate, 2, 2, 0},
	0xAA: {"TAX", opTAX, modeImplied, 1, 2, 0},
	0xAB: {"LAX", opLAX, modeImmediate, 2, 2, 0},
	0xAC: {"LDY", opLDY, modeAbsolute, 3, 4, 0},
	0xAD: {"LDA", opLDA, modeAbsolute, 3, 4, 0},
	0xAE: {"LDX", opLDX, modeAbsolute, 3, 4, 0},
	0xAF: {"LAX", opLAX, modeAbsolute, 3, 4, 0},
	0xB0: {"BCS", opBCS, modeRelative, 2, 2, 0},
	0xB1: {"LDA", opLDA, modeIndirectIndexed, 2, 5, 1},
	0xB2: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0xB3: {"LAX", opLAX, modeIndirectIndexed, 2, 5, 1},
	0xB4: {"LDY", opLDY, modeZeroPageX, 2, 4, 0},
	0xB5: {"LDA", opLDA, modeZeroPageX, 2, 4, 0},
	0xB6: {"LDX", opLDX, modeZeroPageY, 2, 4, 0},
	0xB7: {"LAX", opLAX, modeZeroPageY, 2, 4, 0},
	0xB8: {"CLV", opCLV, modeImplied, 1, 2, 0},
	0xB9: {"LDA", opLDA, modeAbsoluteY, 3, 4, 1},
	0xBA: {"TSX", opTSX, modeImplied, 1, 2, 0},
	0xBB: {"LAS", opLAS, modeAbsoluteY, 3, 4, 1},
	0xBC: {"LDY", opLDY, modeAbsoluteX, 3, 4, 1},
	0xBD: {"LDA", opLDA, modeAbsoluteX, 3, 4, 1},
	0xBE: {"LDX", opLDX, modeAbsoluteY, 3, 4, 1},
	0xBF: {"LAX", opLAX, modeAbsoluteY, 3, 4, 1},
	0xC0: {"CPY", opCPY, modeImmediate, 2, 2, 0},
	0xC1: {"CMP", opCMP, modeIndexedIndirect, 2, 6, 0},
	0xC2: {"NOP", opNOP, modeImmediate, 2, 2, 0},
	0xC3: {"DCP", opDCP, modeIndexedIndirect, 2, 8, 0},
	0xC4: {"CPY", opCPY, modeZeroPage, 2, 3, 0},
	0xC5: {"CMP", opCMP, modeZeroPage, 2, 3, 0},
	0xC6: {"DEC", opDEC, modeZeroPage, 2, 5, 0},
	0xC7: {"DCP", opDCP, modeZeroPage, 2, 5, 0},
	0xC8: {"INY", opINY, modeImplied, 1, 2, 0},
	0xC9: {"CMP", opCMP, modeImmediate, 2, 2, 0},
	0xCA: {"DEX", opDEX, modeImplied, 1, 2, 0},
	0xCB: {"AXS", opAXS, modeImmediate, 2, 2, 0},
	0xCC: {"CPY", opCPY, modeAbsolute, 3, 4, 0},
	0xCD: {"CMP", opCMP, modeAbsolute, 3, 4, 0},
	0xCE: {"DEC", opDEC, modeAbsolute, 3, 6, 0},
	0xCF: {"DCP", opDCP, modeAbsolute, 3, 6, 0},
	0xD0: {"BNE", opBNE, modeRelative, 2, 2, 0},
	0xD1: {"CMP", opCMP, modeIndirectIndexed, 2, 5, 1},
	0xD2: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0xD3: {"DCP", opDCP, modeIndirectIndexed, 2, 8, 0},
	0xD4: {"NOP", opNOP, modeZeroPageX, 2, 4, 0},
	0xD5: {"CMP", opCMP, modeZeroPageX, 2, 4, 0},
	0xD6: {"DEC", opDEC, modeZeroPageX, 2, 6, 0},
	0xD7: {"DCP", opDCP, modeZeroPageX, 2, 6, 0},
	0xD8: {"CLD", opCLD, modeImplied, 1, 2, 0},
	0xD9: {"CMP", opCMP, modeAbsoluteY, 3, 4, 1},
	0xDA: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0xDB: {"DCP", opDCP, modeAbsoluteY, 3, 7, 0},
	0xDC: {"NOP", opNOP, modeAbsoluteX, 3, 4, 1},
	0xDD: {"CMP", opCMP, modeAbsoluteX, 3, 4, 1},
	0xDE: {"DEC", opDEC, modeAbsoluteX, 3, 7, 0},
	0xDF: {"DCP", opDCP, modeAbsoluteX, 3, 7, 0},
	0xE0: {"CPX", opCPX, modeImmediate, 2, 2, 0},
	0xE1: {"SBC", opSBC, modeIndexedIndirect, 2, 6, 0},
	0xE2: {"NOP", opNOP, modeImmediate, 2, 2, 0},
	0xE3: {"ISC", opISC, modeIndexedIndirect, 2, 8, 0},
	0xE4: {"CPX", opCPX, modeZeroPage, 2, 3, 0},
	0xE5: {"SBC", opSBC, modeZeroPage, 2, 3, 0},
	0xE6: {"INC", opINC, modeZeroPage, 2, 5, 0},
	0xE7: {"ISC", opISC, modeZeroPage, 2, 5, 0},
	0xE8: {"INX", opINX, modeImplied, 1, 2, 0},
	0xE9: {"SBC", opSBC, modeImmediate, 2, 2, 0},
	0xEA: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0xEB: {"SBC", opSBC, modeImmediate, 2, 2, 0},
	0xEC: {"CPX", opCPX, modeAbsolute, 3, 4, 0},
	0xED: {"SBC", opSBC, modeAbsolute, 3, 4, 0},
	0xEE: {"INC", opINC, modeAbsolute, 3, 6, 0},
	0xEF: {"ISC", opISC, modeAbsolute, 3, 6, 0},
	0xF0: {"BEQ", opBEQ, modeRelative, 2, 2, 0},
	0xF1: {"SBC", opSBC, modeIndirectIndexed, 2, 5, 1},
	0xF2: {"KIL", opKIL, modeImplied, 0, 2, 0},
	0xF3: {"ISC", opISC, modeIndirectIndexed, 2, 8, 0},
	0xF4: {"NOP", opNOP, modeZeroPageX, 2, 4, 0},
	0xF5: {"SBC", opSBC, modeZeroPageX, 2, 4, 0},
	0xF6: {"INC", opINC, modeZeroPageX, 2, 6, 0},
	0xF7: {"ISC", opISC, modeZeroPageX, 2, 6, 0},
	0xF8: {"SED", opSED, modeImplied, 1, 2, 0},
	0xF9: {"SBC", opSBC, modeAbsoluteY, 3, 4, 1},
	0xFA: {"NOP", opNOP, modeImplied, 1, 2, 0},
	0xFB: {"ISC", opISC, modeAbsoluteY, 3, 7, 0},
	0xFC: {"NOP", opNOP, modeAbsoluteX, 3, 4, 1},
	0xFD: {"SBC", opSBC, modeAbsoluteX, 3, 4, 1},
	0xFE: {"INC", opINC, modeAbsoluteX, 3, 7, 0},
	0xFF: {"ISC", opISC, modeAbsoluteX, 3, 7, 0},
}
