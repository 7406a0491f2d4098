package nes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassemble(t *testing.T) {
	console := newTestConsole(t, []byte{
		0xA9, 0x42,       // LDA #$42
		0x9D, 0x00, 0x03, // STA $0300,X
		0xB1, 0x10,       // LDA ($10),Y
		0x0A,             // ASL A
		0xD0, 0xFE,       // BNE $8008
		0x6C, 0xFC, 0xFF, // JMP ($FFFC)
		0x02,             // KIL
	})
	cpu := console.CPU
	want := []struct {
		text string
		size int
	}{
		{"LDA #$42", 2},
		{"STA $0300,X", 3},
		{"LDA ($10),Y", 2},
		{"ASL A", 1},
		{"BNE $8008", 2},
		{"JMP ($FFFC)", 3},
		{"KIL", 1},
	}
	addr := uint16(0x8000)
	for _, w := range want {
		text, size := cpu.Disassemble(addr)
		assert.Equal(t, w.text, text)
		assert.Equal(t, w.size, size)
		addr += uint16(size)
	}
}

func TestInspectionHasNoSideEffects(t *testing.T) {
	console := newTestConsole(t, []byte{0xAD, 0x02, 0x20}) // LDA $2002
	ppu := console.PPU
	stepUntil(t, ppu, 241, 1)
	require.True(t, ppu.nmiOccurred)

	cpu := console.CPU
	assert.Equal(t, "LDA", cpu.Mnemonic())
	addr, ok := cpu.EffectiveAddress()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x2002), addr)

	var buf bytes.Buffer
	require.NoError(t, console.MemoryDump(&buf, 0x2000, 16))
	assert.True(t, ppu.nmiOccurred, "peeking must not clear vblank")
	assert.Equal(t, uint16(0x8000), cpu.PC)
	assert.Equal(t, uint64(0), cpu.Cycles)
}

func TestEffectiveAddressIndexed(t *testing.T) {
	console := newTestConsole(t, []byte{0xB1, 0x10}) // LDA ($10),Y
	console.RAM[0x10] = 0xF0
	console.RAM[0x11] = 0x02
	console.CPU.Y = 0x20
	addr, ok := console.CPU.EffectiveAddress()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x0310), addr)

	console = newTestConsole(t, []byte{0xE8}) // INX
	_, ok = console.CPU.EffectiveAddress()
	assert.False(t, ok)
}

func TestMemoryDump(t *testing.T) {
	console := newTestConsole(t, nil)
	for i := 0; i < 20; i++ {
		console.RAM[0x100+i] = byte(i)
	}
	var buf bytes.Buffer
	require.NoError(t, console.MemoryDump(&buf, 0x0100, 20))
	assert.Equal(t,
		"0100: 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F\n"+
			"0110: 10 11 12 13\n",
		buf.String())
}

func TestCPUStateString(t *testing.T) {
	state := CPUState{PC: 0xC000, A: 1, X: 2, Y: 3, SP: 0xFD, P: 0xA5, Cycles: 7}
	assert.Equal(t, "PC:C000 A:01 X:02 Y:03 SP:FD P:A5 [N-U--I-C] CYC:7", state.String())
}
