package nes

import "fmt"

// Mapper is the cartridge-side bank switching logic. Read and Write cover
// CHR space ($0000-$1FFF, PPU side) and $6000-$FFFF (CPU side).
type Mapper interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	// Step is called once per PPU cycle so the mapper can follow the raster.
	Step()
}

// NewMapper picks the mapper named by the cartridge header. Only the MMC3
// family (iNES mapper 4) is emulated.
func NewMapper(console *Console) (Mapper, error) {
	card := console.Card
	switch card.Mapper {
	case 4:
		return NewMapper4(card, console), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, card.Mapper)
	}
}
