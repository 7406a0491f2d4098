package ui

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/55utah/fc-core/nes"
)

func TestViewAdvance(t *testing.T) {
	console := testConsole(t, []byte{0x4C, 0x00, 0x80}) // JMP $8000
	view := NewView(console)
	view.SetButton(nes.ButtonStart, true)
	view.SetButton(-1, true)
	view.SetButton(8, true)

	require.NoError(t, view.advance(20*time.Millisecond))
	assert.InDelta(t, float64(nes.CPUFrequency)/50, float64(console.CPU.Cycles), 8)

	dst := image.NewRGBA(console.Buffer().Bounds())
	view.Frame(dst)
	assert.Equal(t, console.Buffer().Pix, dst.Pix)
}

func TestViewRunStops(t *testing.T) {
	console := testConsole(t, []byte{0x4C, 0x00, 0x80})
	view := NewView(console)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, view.Run(ctx), context.DeadlineExceeded)
	assert.NotZero(t, console.CPU.Cycles)
}
