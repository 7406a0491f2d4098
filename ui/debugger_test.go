package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loop = []byte{
	0xA9, 0x42,       // LDA #$42
	0x85, 0x10,       // STA $10
	0xE8,             // INX
	0x4C, 0x04, 0x80, // JMP $8004
}

func TestDebuggerStep(t *testing.T) {
	console := testConsole(t, loop)
	var out bytes.Buffer
	d := NewDebugger(console, &out)

	require.NoError(t, d.Exec("step 2"))
	assert.Equal(t, uint16(0x8004), console.CPU.PC)
	assert.Equal(t, byte(0x42), console.CPU.A)
	assert.Contains(t, out.String(), "PC:8004 A:42")
	assert.Contains(t, out.String(), "8004  INX")

	out.Reset()
	require.NoError(t, d.Exec("s"))
	assert.Equal(t, byte(1), console.CPU.X)
}

func TestDebuggerRegisters(t *testing.T) {
	console := testConsole(t, loop)
	var out bytes.Buffer
	d := NewDebugger(console, &out)
	require.NoError(t, d.Exec("regs"))
	assert.Contains(t, out.String(), "PC:8000")
	assert.Contains(t, out.String(), "PPU: scanline")
	assert.Contains(t, out.String(), "8000  LDA #$42")
}

func TestDebuggerDisassemble(t *testing.T) {
	console := testConsole(t, loop)
	var out bytes.Buffer
	d := NewDebugger(console, &out)
	require.NoError(t, d.Exec("dis $8000 4"))
	assert.Equal(t,
		"8000  LDA #$42\n"+
			"8002  STA $10\n"+
			"8004  INX\n"+
			"8005  JMP $8004\n",
		out.String())
}

func TestDebuggerMemory(t *testing.T) {
	console := testConsole(t, loop)
	var out bytes.Buffer
	d := NewDebugger(console, &out)
	require.NoError(t, d.Exec("s 2"))

	out.Reset()
	require.NoError(t, d.Exec("mem 0x10 4"))
	assert.Equal(t, "0010: 42 00 00 00\n", out.String())

	assert.Error(t, d.Exec("mem"))
	assert.Error(t, d.Exec("mem zz"))
}

func TestDebuggerFrameAndReset(t *testing.T) {
	console := testConsole(t, loop)
	var out bytes.Buffer
	d := NewDebugger(console, &out)
	require.NoError(t, d.Exec("frame"))
	assert.NotZero(t, console.CPU.Cycles)

	require.NoError(t, d.Exec("reset"))
	assert.Equal(t, uint16(0x8000), console.CPU.PC)
}

func TestDebuggerTrace(t *testing.T) {
	console := testConsole(t, loop)
	var out bytes.Buffer
	d := NewDebugger(console, &out)
	require.NoError(t, d.Exec("trace on"))
	out.Reset()
	require.NoError(t, d.Exec("s"))
	assert.True(t, strings.HasPrefix(out.String(), "8000  A9 42"), out.String())

	require.NoError(t, d.Exec("trace off"))
	out.Reset()
	require.NoError(t, d.Exec("s"))
	assert.True(t, strings.HasPrefix(out.String(), "PC:8004"), out.String())
}

func TestDebuggerErrors(t *testing.T) {
	console := testConsole(t, loop)
	d := NewDebugger(console, &bytes.Buffer{})
	assert.NoError(t, d.Exec("   "))
	assert.EqualError(t, d.Exec("jump"), `unknown command "jump"`)
	assert.Error(t, d.Exec("step x"))
	assert.Error(t, d.Exec("run"))
	assert.ErrorIs(t, d.Exec("quit"), errQuit)
}
