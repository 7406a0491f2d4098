package nes

/*
MMC3 register windows, all in $8000-$FFFF. Each 8kb window holds two
registers told apart by the lowest address bit:

	$8000-$9FFF  even: bank select   odd: bank data
	$A000-$BFFF  even: mirroring     odd: PRG RAM protect (ignored)
	$C000-$DFFF  even: IRQ latch     odd: IRQ reload
	$E000-$FFFF  even: IRQ disable   odd: IRQ enable

Bank select:

	7  bit  0
	CPMx xRRR
	|||   +++- register the next bank data write goes to (R0-R7)
	||+------- unused on MMC3
	|+-------- PRG mode (0: $8000 swappable, $C000 fixed to -2;
	|                    1: $C000 swappable, $8000 fixed to -2)
	+--------- CHR mode (0: 2kb banks at $0000, 1kb banks at $1000;
	                     1: the two halves swapped)
*/

const (
	prgWindowSize = 0x2000
	chrWindowSize = 0x0400

	// PPU cycle on which the scanline counter is clocked.
	mmc3IRQCycle = 280
)

type Mapper4 struct {
	card      *Cartridge
	console   *Console
	regIndex  byte    // bank data target, R0-R7
	registers [8]byte // R0-R7
	prgMode   byte
	chrMode   byte
	reload    byte // IRQ latch
	counter   byte
	irqEnable bool

	prgOffsets [4]int
	chrOffsets [8]int
}

func NewMapper4(card *Cartridge, console *Console) *Mapper4 {
	m := &Mapper4{card: card, console: console}
	// power-on register contents are unspecified; start from banks 0, 1, -2, -1
	m.prgOffsets[0] = m.prgBankOffset(0)
	m.prgOffsets[1] = m.prgBankOffset(1)
	m.prgOffsets[2] = m.prgBankOffset(-2)
	m.prgOffsets[3] = m.prgBankOffset(-1)
	return m
}

// Step clocks the IRQ counter once per rendered scanline. Real boards
// watch PPU A12; a fixed cycle is close enough for games using the
// standard background/sprite pattern table split.
func (m *Mapper4) Step() {
	ppu := m.console.PPU
	if ppu.Cycle != mmc3IRQCycle {
		return
	}
	if ppu.ScanLine > 239 && ppu.ScanLine < 261 {
		return
	}
	if !ppu.renderingEnabled() {
		return
	}
	m.clockScanline()
}

func (m *Mapper4) clockScanline() {
	if m.counter == 0 {
		m.counter = m.reload
		return
	}
	m.counter--
	if m.counter == 0 && m.irqEnable {
		m.console.CPU.TriggerIRQ()
	}
}

func (m *Mapper4) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		if len(m.card.CHR) == 0 {
			return 0
		}
		bank := addr / chrWindowSize
		offset := addr % chrWindowSize
		return m.card.CHR[m.chrOffsets[bank]+int(offset)]
	case addr >= 0x8000:
		a := addr - 0x8000
		bank := a / prgWindowSize
		offset := a % prgWindowSize
		return m.card.PRG[m.prgOffsets[bank]+int(offset)]
	case addr >= 0x6000:
		return m.card.SRAM[addr-0x6000]
	}
	panic(&BusError{Address: addr, Side: "mapper"})
}

func (m *Mapper4) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		// CHR ROM ignores writes
		if !m.card.CHRRAM || len(m.card.CHR) == 0 {
			return
		}
		bank := addr / chrWindowSize
		offset := addr % chrWindowSize
		m.card.CHR[m.chrOffsets[bank]+int(offset)] = value
	case addr >= 0x8000:
		m.writeRegister(addr, value)
	case addr >= 0x6000:
		m.card.SRAM[addr-0x6000] = value
	default:
		panic(&BusError{Address: addr, Write: true, Side: "mapper"})
	}
}

func (m *Mapper4) writeRegister(addr uint16, value byte) {
	even := addr&1 == 0
	switch {
	case addr <= 0x9FFF && even:
		m.writeBankSelect(value)
	case addr <= 0x9FFF:
		m.writeBankData(value)
	case addr <= 0xBFFF && even:
		m.writeMirror(value)
	case addr <= 0xBFFF:
		// PRG RAM protect
	case addr <= 0xDFFF && even:
		m.reload = value
	case addr <= 0xDFFF:
		m.counter = 0
	case even:
		m.irqEnable = false
	default:
		m.irqEnable = true
	}
}

func (m *Mapper4) writeBankSelect(value byte) {
	m.regIndex = value & 7
	m.prgMode = (value >> 6) & 1
	m.chrMode = (value >> 7) & 1
	m.updateOffsets()
}

func (m *Mapper4) writeBankData(value byte) {
	m.registers[m.regIndex] = value
	m.updateOffsets()
}

func (m *Mapper4) writeMirror(value byte) {
	if m.card.Mirror == MirrorFour {
		return
	}
	if value&1 == 0 {
		m.card.Mirror = MirrorVertical
	} else {
		m.card.Mirror = MirrorHorizontal
	}
}

// prgBankOffset maps an 8kb bank number to a byte offset in PRG. Register
// values of $80 and up, and negative numbers, count back from the last bank.
func (m *Mapper4) prgBankOffset(index int) int {
	return bankOffset(index, len(m.card.PRG), prgWindowSize)
}

func (m *Mapper4) chrBankOffset(index int) int {
	return bankOffset(index, len(m.card.CHR), chrWindowSize)
}

func bankOffset(index, size, window int) int {
	count := size / window
	if count == 0 {
		// CHR RAM carts built without pattern memory
		return 0
	}
	if index >= 0x80 {
		index -= 0x100
	}
	offset := (index % count) * window
	if offset < 0 {
		offset += count * window
	}
	return offset
}

func (m *Mapper4) updateOffsets() {
	r := m.registers
	if m.prgMode == 0 {
		m.prgOffsets[0] = m.prgBankOffset(int(r[6]))
		m.prgOffsets[1] = m.prgBankOffset(int(r[7]))
		m.prgOffsets[2] = m.prgBankOffset(-2)
		m.prgOffsets[3] = m.prgBankOffset(-1)
	} else {
		m.prgOffsets[0] = m.prgBankOffset(-2)
		m.prgOffsets[1] = m.prgBankOffset(int(r[7]))
		m.prgOffsets[2] = m.prgBankOffset(int(r[6]))
		m.prgOffsets[3] = m.prgBankOffset(-1)
	}

	// 2kb banks from R0/R1 as even/odd 1kb pairs, then R2-R5
	layout := [8]int{
		int(r[0]) & 0xFE, int(r[0]) | 0x01,
		int(r[1]) & 0xFE, int(r[1]) | 0x01,
		int(r[2]), int(r[3]), int(r[4]), int(r[5]),
	}
	for i := range m.chrOffsets {
		j := i
		if m.chrMode == 1 {
			j = (i + 4) % 8
		}
		m.chrOffsets[i] = m.chrBankOffset(layout[j])
	}
}
