package ui

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/55utah/fc-core/nes"
)

// longest span emulated in one go, so a stalled host doesn't try to catch up
const maxStep = 50 * time.Millisecond

// View drives a console in real time on its own goroutine. The window reads
// frames and pushes button state through it; the console itself is only
// touched by Run.
type View struct {
	console *nes.Console
	period  time.Duration

	mu      sync.Mutex
	frame   *image.RGBA
	buttons [8]bool
}

func NewView(console *nes.Console) *View {
	return &View{
		console: console,
		period:  time.Second / 60,
		frame:   image.NewRGBA(console.Buffer().Bounds()),
	}
}

// SetButton records a key change. It is applied before the next slice of
// emulated time.
func (v *View) SetButton(button int, pressed bool) {
	if button < 0 || button >= len(v.buttons) {
		return
	}
	v.mu.Lock()
	v.buttons[button] = pressed
	v.mu.Unlock()
}

// Frame copies the most recent completed frame into dst.
func (v *View) Frame(dst *image.RGBA) {
	v.mu.Lock()
	copy(dst.Pix, v.frame.Pix)
	v.mu.Unlock()
}

// Run paces the console against the wall clock until ctx is done or the
// console fails.
func (v *View) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.period)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if elapsed > maxStep {
				elapsed = maxStep
			}
			if err := v.advance(elapsed); err != nil {
				return err
			}
		}
	}
}

func (v *View) advance(elapsed time.Duration) error {
	v.mu.Lock()
	buttons := v.buttons
	v.mu.Unlock()

	v.console.SetButtons1(buttons)
	if err := v.console.StepSeconds(elapsed.Seconds()); err != nil {
		return err
	}

	v.mu.Lock()
	copy(v.frame.Pix, v.console.Buffer().Pix)
	v.mu.Unlock()
	return nil
}
