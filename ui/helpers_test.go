package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/55utah/fc-core/nes"
)

const (
	prgSize = 16384
	chrSize = 8192
)

// testConsole builds an MMC3 console with 32kb of PRG holding program at
// $8000 and every vector pointing at it.
func testConsole(t *testing.T, program []byte) *nes.Console {
	t.Helper()
	header := []byte{'N', 'E', 'S', 0x1A, 2, 1, 0x41, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	data := make([]byte, len(header)+2*prgSize+chrSize)
	copy(data, header)
	prg := data[len(header) : len(header)+2*prgSize]
	copy(prg, program)
	for _, vector := range []int{nes.NMIVector, nes.ResetVector, nes.IRQVector} {
		prg[vector-0x8000] = 0x00
		prg[vector-0x8000+1] = 0x80
	}
	console, err := nes.NewConsole(data)
	require.NoError(t, err)
	return console
}
