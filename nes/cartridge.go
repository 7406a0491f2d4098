package nes

import (
	"fmt"
	"io"
)

// Nametable mirroring modes, indexes into MirrorLookup.
const (
	MirrorHorizontal = 0
	MirrorVertical   = 1
	MirrorSingle0    = 2
	MirrorSingle1    = 3
	MirrorFour       = 4
)

const (
	prgBankSize = 0x4000
	chrBankSize = 0x2000
	sramSize    = 0x2000
)

// Cartridge is the loaded game. PRG and CHR never change size after load.
// The mapper may rewrite Mirror, CHR when it is RAM, and SRAM.
type Cartridge struct {
	PRG     []byte
	CHR     []byte
	SRAM    []byte // $6000-$7FFF
	Mirror  byte
	Mapper  byte
	Battery bool
	CHRRAM  bool // CHR is writable pattern RAM, the header had no CHR banks
}

func NewCartridge(prg []byte, chr []byte, mapper byte, mirror byte, battery bool) *Cartridge {
	return &Cartridge{
		PRG:     prg,
		CHR:     chr,
		SRAM:    make([]byte, sramSize),
		Mirror:  mirror,
		Mapper:  mapper,
		Battery: battery,
	}
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("PRG-ROM: %d x 16kb, CHR: %d x 8kb, mapper: %d, mirror: %d, battery: %t",
		len(c.PRG)/prgBankSize, len(c.CHR)/chrBankSize, c.Mapper, c.Mirror, c.Battery)
}

// LoadSRAM restores battery-backed RAM. Short input leaves the tail zeroed.
func (c *Cartridge) LoadSRAM(r io.Reader) error {
	n, err := io.ReadFull(r, c.SRAM)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		for i := n; i < len(c.SRAM); i++ {
			c.SRAM[i] = 0
		}
		return nil
	}
	return err
}

func (c *Cartridge) SaveSRAM(w io.Writer) error {
	_, err := w.Write(c.SRAM)
	return err
}
