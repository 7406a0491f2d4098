package nes

/*
bit:	7	6	5	4	3	2	1	0
button:	Right	Left	Down	Up	Start	Select	B	A

Writes to $4016 strobe both pads; $4016 reads pad 1 and $4017 pad 2.
While the strobe bit is held the shift index stays at A.
*/

const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type Controller struct {
	buttons byte
	index   byte
	strobe  bool
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) SetButtons(buttons [8]bool) {
	var b byte
	for i, pressed := range buttons {
		if pressed {
			b |= 1 << i
		}
	}
	c.buttons = b
}

// Press sets or clears a single button.
func (c *Controller) Press(button int, pressed bool) {
	if pressed {
		c.buttons |= 1 << button
	} else {
		c.buttons &^= 1 << button
	}
}

// Read shifts out the next button bit. After eight reads it returns 1s,
// as an official pad does.
func (c *Controller) Read() byte {
	value := byte(1)
	if c.index < 8 {
		value = (c.buttons >> c.index) & 1
	}
	if c.strobe {
		c.index = 0
	} else if c.index < 8 {
		c.index++
	}
	return value
}

func (c *Controller) Write(value byte) {
	c.strobe = value&1 == 1
	if c.strobe {
		c.index = 0
	}
}
