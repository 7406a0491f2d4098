package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testResetVector = 0x8000
	testNMIHandler  = 0x9000
	testIRQHandler  = 0x9100
)

// buildROM returns an iNES image with the given header fields and zeroed
// PRG and CHR data.
func buildROM(prgBanks, chrBanks int, flags6, flags7 byte) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, byte(prgBanks), byte(chrBanks), flags6, flags7,
		0, 0, 0, 0, 0, 0, 0, 0}
	data := make([]byte, len(header)+prgBanks*prgBankSize+chrBanks*chrBankSize)
	copy(data, header)
	return data
}

// programROM is an MMC3 image with 32kb of PRG, so $8000-$FFFF maps
// straight onto the file. program starts at $8000; NMI and IRQ handlers
// are a bare RTI.
func programROM(program []byte) []byte {
	data := buildROM(2, 1, 0x41, 0x00) // mapper 4, vertical mirroring
	prg := data[16 : 16+2*prgBankSize]
	copy(prg, program)
	prg[testNMIHandler-0x8000] = 0x40
	prg[testIRQHandler-0x8000] = 0x40
	putVector(prg, NMIVector, testNMIHandler)
	putVector(prg, ResetVector, testResetVector)
	putVector(prg, IRQVector, testIRQHandler)
	return data
}

func putVector(prg []byte, vector, address uint16) {
	prg[vector-0x8000] = byte(address)
	prg[vector-0x8000+1] = byte(address >> 8)
}

func newTestConsole(t *testing.T, program []byte, options ...Option) *Console {
	t.Helper()
	console, err := NewConsole(programROM(program), options...)
	require.NoError(t, err)
	return console
}

// flatMemory is 64kb of plain RAM, for CPU tests that don't care about
// address decoding.
type flatMemory [0x10000]byte

func (m *flatMemory) Read(addr uint16) byte         { return m[addr] }
func (m *flatMemory) Write(addr uint16, value byte) { m[addr] = value }

func newFlatCPU(program []byte) (*CPU, *flatMemory) {
	mem := &flatMemory{}
	copy(mem[0x8000:], program)
	mem[ResetVector] = 0x00
	mem[ResetVector+1] = 0x80
	mem[NMIVector] = byte(testNMIHandler & 0xFF)
	mem[NMIVector+1] = byte(testNMIHandler >> 8)
	mem[IRQVector] = byte(testIRQHandler & 0xFF)
	mem[IRQVector+1] = byte(testIRQHandler >> 8)
	cpu := &CPU{Memory: mem}
	cpu.Reset()
	return cpu, mem
}
