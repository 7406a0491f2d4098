package nes

import (
	"os"
	"path/filepath"
	"testing"

	ref "github.com/fogleman/nes/nes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceProgram loops over documented instructions in most addressing
// modes, including indexed reads that cross pages.
var referenceProgram = map[uint16][]byte{
	0x8000: {
		0xA2, 0x00,       // LDX #$00
		0xA0, 0x10,       // LDY #$10
		0x8A,             // loop: TXA
		0x18,             // CLC
		0x69, 0x37,       // ADC #$37
		0x9D, 0x00, 0x03, // STA $0300,X
		0x38,             // SEC
		0xE9, 0x11,       // SBC #$11
		0x95, 0x20,       // STA $20,X
		0x5D, 0xFF, 0x02, // EOR $02FF,X
		0x2A,             // ROL A
		0x48,             // PHA
		0x08,             // PHP
		0x28,             // PLP
		0x68,             // PLA
		0xC5, 0x20,       // CMP $20
		0x85, 0x10,       // STA $10
		0xA9, 0x03,       // LDA #$03
		0x85, 0x11,       // STA $11
		0xB1, 0x10,       // LDA ($10),Y
		0x20, 0x40, 0x80, // JSR $8040
		0xE8,             // INX
		0x88,             // DEY
		0xD0, 0xDB,       // BNE loop
		0x4C, 0x00, 0x80, // JMP $8000
	},
	0x8040: {
		0x46, 0x20, // LSR $20
		0x66, 0x21, // ROR $21
		0x24, 0x20, // BIT $20
		0x60,       // RTS
	},
}

func TestMatchesReferenceCPU(t *testing.T) {
	image := programROM(nil)
	prg := image[16:]
	for address, code := range referenceProgram {
		copy(prg[address-0x8000:], code)
	}

	path := filepath.Join(t.TempDir(), "reference.nes")
	require.NoError(t, os.WriteFile(path, image, 0o644))

	want, err := ref.NewConsole(path)
	require.NoError(t, err)
	got, err := NewConsole(image)
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		wantCycles := want.Step()
		gotCycles := got.Step()
		w, g := want.CPU, got.CPU
		require.Equal(t, wantCycles, int(gotCycles), "step %d cycles", i)
		require.Equal(t, w.PC, g.PC, "step %d PC", i)
		require.Equal(t, w.A, g.A, "step %d A", i)
		require.Equal(t, w.X, g.X, "step %d X", i)
		require.Equal(t, w.Y, g.Y, "step %d Y", i)
		require.Equal(t, w.SP, g.SP, "step %d SP", i)
		require.Equal(t, w.Flags(), g.Flags(), "step %d P", i)
	}
	assert.Equal(t, want.CPU.Cycles, got.CPU.Cycles)
}
