package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/55utah/fc-core/nes"
	"github.com/55utah/fc-core/ui"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] rom.nes\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	scale := flag.Int("scale", 2, "window scale factor")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 60, "frames to run in headless mode")
	pngPath := flag.String("png", "", "write the last headless frame to this file")
	debug := flag.Bool("debug", false, "start the terminal monitor instead of a window")
	tracePath := flag.String("trace", "", "write an instruction trace to this file")
	stats := flag.Bool("statsview", false, "serve runtime charts while running")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	logger := nes.NewLogger(*verbose)
	if err := run(flag.Arg(0), logger, config{
		scale:     *scale,
		headless:  *headless,
		frames:    *frames,
		pngPath:   *pngPath,
		debug:     *debug,
		tracePath: *tracePath,
		stats:     *stats,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	scale     int
	headless  bool
	frames    int
	pngPath   string
	debug     bool
	tracePath string
	stats     bool
}

func run(romPath string, logger *log.Logger, cfg config) error {
	info, err := os.Stat(romPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", romPath)
	}

	card, err := nes.LoadNESFile(romPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", romPath, err)
	}

	savePath := strings.TrimSuffix(romPath, ".nes") + ".sav"
	if card.Battery {
		if err := loadSRAM(card, savePath); err != nil {
			return err
		}
		defer func() {
			if err := saveSRAM(card, savePath); err != nil {
				logger.Printf("save %s: %v", savePath, err)
			}
		}()
	}

	options := []nes.Option{nes.WithLogger(logger)}
	if cfg.tracePath != "" {
		f, err := os.Create(cfg.tracePath)
		if err != nil {
			return err
		}
		defer f.Close()
		options = append(options, nes.WithTrace(f))
	}

	console, err := nes.NewConsoleWithCartridge(card, options...)
	if err != nil {
		return err
	}

	if cfg.stats {
		ui.LaunchStats(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case cfg.debug:
		return ui.NewDebugger(console, os.Stdout).Run(ctx, os.Stdin)
	case cfg.headless:
		return runHeadless(ctx, console, cfg.frames, cfg.pngPath)
	default:
		return ui.OpenWindow(console, cfg.scale, logger)
	}
}

func runHeadless(ctx context.Context, console *nes.Console, frames int, pngPath string) error {
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := console.StepFrame(); err != nil {
			return err
		}
	}
	if pngPath == "" {
		return nil
	}
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, console.Buffer()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadSRAM(card *nes.Cartridge, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return card.LoadSRAM(f)
}

func saveSRAM(card *nes.Cartridge, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := card.SaveSRAM(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
