package nes

import (
	"context"
	"image"
	"io"
	"log"
)

// Console owns one machine: CPU, PPU, mapper, cartridge and the bus state
// between them. Nothing in it is safe for concurrent use; one goroutine
// drives it and may hand out copies of the front buffer.
type Console struct {
	CPU         *CPU
	PPU         *PPU
	Card        *Cartridge
	Controller1 *Controller
	Controller2 *Controller
	Mapper      Mapper
	RAM         []byte

	logger *log.Logger
	trace  io.Writer
}

// NewConsole parses an iNES image and powers the machine on.
func NewConsole(data []byte, options ...Option) (*Console, error) {
	card, err := ParseINES(data)
	if err != nil {
		return nil, err
	}
	return NewConsoleWithCartridge(card, options...)
}

func NewConsoleWithCartridge(card *Cartridge, options ...Option) (*Console, error) {
	console := &Console{
		Card:        card,
		Controller1: NewController(),
		Controller2: NewController(),
		RAM:         make([]byte, 2048),
		logger:      log.New(io.Discard, "", 0),
	}
	for _, option := range options {
		if err := option(console); err != nil {
			return nil, err
		}
	}
	mapper, err := NewMapper(console)
	if err != nil {
		return nil, err
	}
	console.Mapper = mapper
	console.CPU = NewCPU(console)
	console.PPU = NewPPU(console)
	logf(console.logger, "cartridge: %v", card)
	return console, nil
}

func (console *Console) Reset() {
	console.CPU.Reset()
	console.PPU.Reset()
}

// Step runs one CPU step and clocks the PPU and mapper three times per CPU
// cycle. It returns the CPU cycles consumed. Unmapped accesses panic with a
// *BusError; the StepFrame, StepSeconds and Run entry points recover it.
func (console *Console) Step() int64 {
	cpuCycles := console.CPU.Step()
	ppuCycles := cpuCycles * 3
	for i := int64(0); i < ppuCycles; i++ {
		console.PPU.Step()
		console.Mapper.Step()
	}
	return cpuCycles
}

// StepInstruction is Step with unmapped accesses reported as an error.
func (console *Console) StepInstruction() (cycles int64, err error) {
	defer recoverBusError(&err)
	return console.Step(), nil
}

// StepFrame runs until the PPU starts a new frame.
func (console *Console) StepFrame() (cycles int64, err error) {
	defer recoverBusError(&err)
	frame := console.PPU.Frame
	for frame == console.PPU.Frame {
		cycles += console.Step()
	}
	return cycles, nil
}

// StepSeconds runs for the given span of emulated time.
func (console *Console) StepSeconds(seconds float64) (err error) {
	defer recoverBusError(&err)
	cycles := int64(CPUFrequency * seconds)
	for cycles > 0 {
		cycles -= console.Step()
	}
	return nil
}

// Run steps the machine as fast as it goes until ctx is done. Cancellation
// is checked between steps, so state is always consistent on return.
func (console *Console) Run(ctx context.Context) (err error) {
	defer recoverBusError(&err)
	done := ctx.Done()
	for {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		console.Step()
	}
}

func (console *Console) SetButtons1(buttons [8]bool) {
	console.Controller1.SetButtons(buttons)
}

func (console *Console) SetButtons2(buttons [8]bool) {
	console.Controller2.SetButtons(buttons)
}

// Buffer is the last completed frame. It is replaced, not modified, at the
// next vblank.
func (console *Console) Buffer() *image.RGBA {
	return console.PPU.Buffer()
}
