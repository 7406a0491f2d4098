package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControllerShift(t *testing.T) {
	c := NewController()
	c.SetButtons([8]bool{ButtonA: true, ButtonStart: true, ButtonRight: true})
	c.Write(1)
	c.Write(0)

	var got []byte
	for i := 0; i < 10; i++ {
		got = append(got, c.Read())
	}
	assert.Equal(t, []byte{1, 0, 0, 1, 0, 0, 0, 1, 1, 1}, got)
}

func TestControllerStrobeHeld(t *testing.T) {
	c := NewController()
	c.Press(ButtonA, true)
	c.Press(ButtonB, true)
	c.Write(1)
	for i := 0; i < 4; i++ {
		assert.Equal(t, byte(1), c.Read(), "strobe keeps returning A")
	}
	c.Press(ButtonA, false)
	assert.Equal(t, byte(0), c.Read())
}

func TestControllersOnBus(t *testing.T) {
	console := newTestConsole(t, nil)
	console.SetButtons1([8]bool{ButtonB: true})
	console.SetButtons2([8]bool{ButtonA: true})
	mem := console.CPU.Memory
	mem.Write(0x4016, 1)
	mem.Write(0x4016, 0)

	assert.Equal(t, byte(0), mem.Read(0x4016))
	assert.Equal(t, byte(1), mem.Read(0x4016))
	assert.Equal(t, byte(1), mem.Read(0x4017))
	assert.Equal(t, byte(0), mem.Read(0x4017))
}
