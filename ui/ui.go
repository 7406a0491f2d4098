package ui

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/driver/desktop"

	"github.com/55utah/fc-core/nes"
)

/*
Keyboard layout, pad 1 only:

	W A S D  up left down right
	J K      A B
	U I      select start
*/
var keyMap = map[fyne.KeyName]int{
	fyne.KeyJ: nes.ButtonA,
	fyne.KeyK: nes.ButtonB,
	fyne.KeyU: nes.ButtonSelect,
	fyne.KeyI: nes.ButtonStart,
	fyne.KeyW: nes.ButtonUp,
	fyne.KeyS: nes.ButtonDown,
	fyne.KeyA: nes.ButtonLeft,
	fyne.KeyD: nes.ButtonRight,
}

func keyParse(ev *fyne.KeyEvent) int {
	if button, ok := keyMap[ev.Name]; ok {
		return button
	}
	return -1
}

// OpenWindow shows the console in a window and blocks until it is closed.
// The emulation runs on its own goroutine; a bus error stops it and closes
// the window.
func OpenWindow(console *nes.Console, scale int, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	myApp := app.New()
	w := myApp.NewWindow("fc")
	w.Resize(fyne.NewSize(nes.ScreenWidth*scale, nes.ScreenHeight*scale))
	w.SetOnClosed(cancel)

	view := NewView(console)

	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			view.SetButton(keyParse(ev), true)
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			view.SetButton(keyParse(ev), false)
		})
	}

	runErr := make(chan error, 1)
	go func() {
		err := view.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("emulation stopped: %v", err)
			runErr <- err
			w.Close()
			return
		}
		runErr <- nil
	}()

	go refresh(ctx, w.Canvas(), view, scale)

	w.ShowAndRun()
	cancel()
	return <-runErr
}

// refresh redraws the canvas from the view's latest frame at about 50Hz.
func refresh(ctx context.Context, can fyne.Canvas, view *View, scale int) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	frame := image.NewRGBA(image.Rect(0, 0, nes.ScreenWidth, nes.ScreenHeight))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			view.Frame(frame)
			img := canvas.NewImageFromImage(Resize(frame, scale))
			img.FillMode = canvas.ImageFillContain
			can.SetContent(img)
		}
	}
}
