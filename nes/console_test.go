package nes

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spin: JMP spin
var spinProgram = []byte{0x4C, 0x00, 0x80}

func TestNewConsoleUnsupportedMapper(t *testing.T) {
	_, err := NewConsole(buildROM(1, 1, 0x00, 0x00))
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestNewConsoleFormatError(t *testing.T) {
	_, err := NewConsole([]byte("not a rom"))
	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestConsoleReset(t *testing.T) {
	console := newTestConsole(t, spinProgram)
	assert.Equal(t, uint16(testResetVector), console.CPU.PC)
	assert.Equal(t, byte(0xFD), console.CPU.SP)
	assert.Equal(t, byte(0x24), console.CPU.Flags())
	assert.Equal(t, 240, console.PPU.ScanLine)
	assert.Equal(t, 340, console.PPU.Cycle)

	console.CPU.A = 9
	console.RAM[0] = 1
	console.Reset()
	assert.Equal(t, byte(0), console.CPU.A)
	assert.Equal(t, byte(1), console.RAM[0], "RAM survives reset")
}

func TestConsoleClockRatio(t *testing.T) {
	console := newTestConsole(t, spinProgram)
	cycles := console.Step()
	assert.Equal(t, int64(3), cycles)
	// nine PPU cycles on from the end of scanline 240
	assert.Equal(t, 241, console.PPU.ScanLine)
	assert.Equal(t, 8, console.PPU.Cycle)
}

func TestStepFrame(t *testing.T) {
	console := newTestConsole(t, spinProgram)
	_, err := console.StepFrame()
	require.NoError(t, err)
	frame := console.PPU.Frame

	cycles, err := console.StepFrame()
	require.NoError(t, err)
	assert.Equal(t, frame+1, console.PPU.Frame)
	// 341*262/3 CPU cycles, give or take the instruction straddling the edge
	assert.InDelta(t, 29781, cycles, 3)
}

func TestStepSeconds(t *testing.T) {
	console := newTestConsole(t, spinProgram)
	require.NoError(t, console.StepSeconds(0.1))
	assert.InDelta(t, CPUFrequency/10, float64(console.CPU.Cycles), 3)
}

func TestRunStopsOnCancel(t *testing.T) {
	console := newTestConsole(t, spinProgram)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := console.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, console.CPU.Cycles, uint64(0))
}

func TestRunReturnsBusError(t *testing.T) {
	console := newTestConsole(t, []byte{0x8D, 0x00, 0x50}) // STA $5000
	err := console.Run(context.Background())
	var busErr *BusError
	require.ErrorAs(t, err, &busErr)
	assert.True(t, busErr.Write)
	assert.Equal(t, "cpu", busErr.Side)
}

func TestNMIReachesHandler(t *testing.T) {
	console := newTestConsole(t, []byte{
		0xA9, 0x80,       // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0x4C, 0x05, 0x80, // JMP $8005
	})
	for i := 0; i < 100000; i++ {
		console.Step()
		if console.CPU.PC == testNMIHandler {
			return
		}
	}
	t.Fatal("NMI handler never ran")
}

func TestUnimplementedOpcodeLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	console := newTestConsole(t, []byte{
		0x8B, 0x00,       // XAA #$00
		0x4C, 0x00, 0x80, // JMP $8000
	}, WithLogger(logger))
	buf.Reset()

	for i := 0; i < 10; i++ {
		console.Step()
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "unimplemented opcode $8B (XAA) at $8000"))
}

func TestWithLoggerRejectsNil(t *testing.T) {
	_, err := NewConsole(programROM(nil), WithLogger(nil))
	assert.Error(t, err)
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	console := newTestConsole(t, []byte{
		0xA9, 0x42,       // LDA #$42
		0x4C, 0x00, 0x80, // JMP $8000
	}, WithTrace(&buf))
	console.Step()
	console.Step()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "8000  A9 42     LDA #$42"), lines[0])
	assert.Contains(t, lines[0], "A:00 X:00 Y:00 P:24 SP:FD")
	assert.Contains(t, lines[0], "CYC:0")
	assert.True(t, strings.HasPrefix(lines[1], "8002  4C 00 80  JMP $8000"), lines[1])
	assert.Contains(t, lines[1], "A:42")
	assert.Contains(t, lines[1], "CYC:2")

	console.SetTrace(nil)
	console.Step()
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2)
}

func TestSRAMRoundTrip(t *testing.T) {
	console := newTestConsole(t, nil)
	console.CPU.Write(0x6000, 0x5A)
	console.CPU.Write(0x7FFF, 0xA5)

	var saved bytes.Buffer
	require.NoError(t, console.Card.SaveSRAM(&saved))
	assert.Equal(t, sramSize, saved.Len())

	other := newTestConsole(t, nil)
	require.NoError(t, other.Card.LoadSRAM(bytes.NewReader(saved.Bytes())))
	assert.Equal(t, byte(0x5A), other.CPU.Read(0x6000))
	assert.Equal(t, byte(0xA5), other.CPU.Read(0x7FFF))

	// a short save file leaves the rest zeroed
	require.NoError(t, other.Card.LoadSRAM(bytes.NewReader([]byte{1, 2})))
	assert.Equal(t, byte(2), other.Card.SRAM[1])
	assert.Equal(t, byte(0), other.Card.SRAM[0x1FFF])
}
