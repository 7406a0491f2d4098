package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/55utah/fc-core/nes"
)

const debuggerHelp = `commands:
  s, step [n]          execute n instructions (default 1)
  f, frame [n]         run n frames (default 1)
  r, regs              show CPU registers and PPU position
  m, mem <addr> [len]  dump memory, addresses in hex
  d, dis [addr] [n]    disassemble n instructions (default 10 at PC)
  run <seconds>        run for a span of emulated time
  trace on|off         print every executed instruction
  reset                reset CPU and PPU
  q, quit              leave the monitor
`

var errQuit = errors.New("quit")

// Debugger is a line based monitor over a console.
type Debugger struct {
	console *nes.Console
	out     io.Writer
}

func NewDebugger(console *nes.Console, out io.Writer) *Debugger {
	return &Debugger{console: console, out: out}
}

// Run reads commands until quit, EOF or ctx is done. When in and out are
// the process terminal, line editing and history come from x/term.
func (d *Debugger) Run(ctx context.Context, in *os.File) error {
	next, restore, err := d.lineReader(in)
	if err != nil {
		return err
	}
	defer restore()

	fmt.Fprint(d.out, debuggerHelp)
	d.printState()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		err = d.Exec(line)
		if err == errQuit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
	}
}

func (d *Debugger) lineReader(in *os.File) (func() (string, error), func(), error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		scanner := bufio.NewScanner(in)
		next := func() (string, error) {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			}
			return scanner.Text(), nil
		}
		return next, func() {}, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, err
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, d.out}, "nes> ")
	// raw mode needs \r\n, so output goes through the terminal too
	d.out = t
	restore := func() {
		_ = term.Restore(fd, oldState)
	}
	return t.ReadLine, restore, nil
}

// Exec runs one monitor command.
func (d *Debugger) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "s", "step":
		n, err := intArg(args, 0, 1)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if _, err := d.console.StepInstruction(); err != nil {
				return err
			}
		}
		d.printState()
	case "f", "frame":
		n, err := intArg(args, 0, 1)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if _, err := d.console.StepFrame(); err != nil {
				return err
			}
		}
		d.printState()
	case "r", "regs":
		d.printState()
	case "m", "mem":
		if len(args) == 0 {
			return errors.New("mem needs an address")
		}
		addr, err := hexArg(args[0])
		if err != nil {
			return err
		}
		length, err := intArg(args, 1, 64)
		if err != nil {
			return err
		}
		return d.console.MemoryDump(d.out, addr, length)
	case "d", "dis":
		addr := d.console.CPU.PC
		if len(args) > 0 {
			a, err := hexArg(args[0])
			if err != nil {
				return err
			}
			addr = a
		}
		n, err := intArg(args, 1, 10)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			text, size := d.console.CPU.Disassemble(addr)
			fmt.Fprintf(d.out, "%04X  %s\n", addr, text)
			addr += uint16(size)
		}
	case "run":
		if len(args) == 0 {
			return errors.New("run needs a number of seconds")
		}
		seconds, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		if err := d.console.StepSeconds(seconds); err != nil {
			return err
		}
		d.printState()
	case "trace":
		on := len(args) == 0 || args[0] == "on"
		if on {
			d.console.SetTrace(d.out)
		} else {
			d.console.SetTrace(nil)
		}
	case "reset":
		d.console.Reset()
		d.printState()
	case "h", "help", "?":
		fmt.Fprint(d.out, debuggerHelp)
	case "q", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

func (d *Debugger) printState() {
	cpu := d.console.CPU
	ppu := d.console.PPU
	text, _ := cpu.Disassemble(cpu.PC)
	fmt.Fprintf(d.out, "%v\nPPU: scanline %d, cycle %d, frame %d\n", cpu.State(), ppu.ScanLine, ppu.Cycle, ppu.Frame)
	if addr, ok := cpu.EffectiveAddress(); ok {
		fmt.Fprintf(d.out, "%04X  %-16s ; $%04X\n", cpu.PC, text, addr)
	} else {
		fmt.Fprintf(d.out, "%04X  %s\n", cpu.PC, text)
	}
}

func intArg(args []string, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("bad count %q", args[i])
	}
	return n, nil
}

func hexArg(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), "0x")
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return uint16(n), nil
}
