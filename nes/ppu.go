package nes

import (
	"image"
)

/*
Frame timing: 262 scanlines of 341 cycles each.

	0-239    visible, one pixel per cycle on cycles 1-256
	240      post-render, idle
	241-260  vblank, the status flag is raised at (241, 1)
	261      pre-render, flags cleared at (261, 1), vertical scroll reloaded

Internal scroll registers, loopy's names:

	v  current VRAM address, 15 bits: yyy NN YYYYY XXXXX
	t  temporary VRAM address, the top left tile of the screen
	x  fine X scroll, 3 bits
	w  write toggle shared by $2005 and $2006
*/

const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

// delay, in PPU cycles, between the vblank NMI edge and the CPU seeing it
const nmiLatency = 15

type PPU struct {
	Memory
	console *Console

	Cycle    int // 0-340
	ScanLine int // 0-261
	Frame    uint64

	paletteData [32]byte
	NameTable   [2048]byte
	oamData     [256]byte
	front       *image.RGBA // last completed frame
	back        *image.RGBA // frame being drawn

	v uint16
	t uint16
	x byte
	w byte
	f byte // odd frame

	register byte // last value written to any register, leaks into $2002

	nmiOccurred bool
	nmiOutput   bool
	nmiPrevious bool
	nmiDelay    byte

	// background latches and the shift register feeding renderPixel. Each
	// pixel takes 4 bits, the high 32 bits are the tile being drawn.
	bg       tileLatch
	tileData uint64

	spriteCount      int
	spritePatterns   [8]uint32
	spritePositions  [8]byte
	spritePriorities [8]byte
	spriteIndexes    [8]byte

	// $2000 PPUCTRL
	flagNameTable       byte // 0: $2000; 1: $2400; 2: $2800; 3: $2C00
	flagIncrement       byte // 0: add 1; 1: add 32
	flagSpriteTable     byte // 0: $0000; 1: $1000; ignored in 8x16 mode
	flagBackgroundTable byte // 0: $0000; 1: $1000
	flagSpriteSize      byte // 0: 8x8; 1: 8x16
	flagMasterSlave     byte

	// $2001 PPUMASK
	flagGrayscale          byte
	flagShowLeftBackground byte
	flagShowLeftSprites    byte
	flagShowBackground     byte
	flagShowSprites        byte

	// $2002 PPUSTATUS
	flagSpriteZeroHit  byte
	flagSpriteOverflow byte

	oamAddress   byte
	bufferedData byte // $2007 read buffer
}

// tileLatch holds the bytes read during one background tile fetch.
type tileLatch struct {
	name    byte // pattern index from the nametable
	palette byte // 2 bit attribute for this tile's quadrant
	low     byte
	high    byte
}

func NewPPU(console *Console) *PPU {
	ppu := PPU{Memory: NewPPUMemory(console), console: console}
	ppu.front = image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	ppu.back = image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	ppu.Reset()
	return &ppu
}

// Reset leaves the PPU at the end of the post-render line so the first
// Step starts a new scanline.
func (ppu *PPU) Reset() {
	ppu.Cycle = 340
	ppu.ScanLine = 240
	ppu.Frame = 0
	ppu.writeControl(0)
	ppu.writeMask(0)
	ppu.writeOAMAddress(0)
	ppu.nmiOccurred = false
	ppu.nmiPrevious = false
	ppu.nmiDelay = 0
	ppu.w = 0
	ppu.f = 0
}

// Buffer returns the last completed frame. It stays untouched until the next
// vblank swap.
func (ppu *PPU) Buffer() *image.RGBA {
	return ppu.front
}

func (ppu *PPU) renderingEnabled() bool {
	return ppu.flagShowBackground != 0 || ppu.flagShowSprites != 0
}

// ReadPalette reads palette RAM. The sprite backdrop entries $10, $14, $18
// and $1C alias the background ones.
func (ppu *PPU) ReadPalette(address uint16) byte {
	if address >= 16 && address%4 == 0 {
		address -= 16
	}
	return ppu.paletteData[address]
}

func (ppu *PPU) WritePalette(address uint16, value byte) {
	if address >= 16 && address%4 == 0 {
		address -= 16
	}
	ppu.paletteData[address] = value
}

func (ppu *PPU) readRegister(address uint16) byte {
	switch address {
	case 0x2002:
		return ppu.readStatus()
	case 0x2004:
		return ppu.readOAMData()
	case 0x2007:
		return ppu.readData()
	}
	return 0
}

func (ppu *PPU) writeRegister(address uint16, value byte) {
	ppu.register = value
	switch address {
	case 0x2000:
		ppu.writeControl(value)
	case 0x2001:
		ppu.writeMask(value)
	case 0x2003:
		ppu.writeOAMAddress(value)
	case 0x2004:
		ppu.writeOAMData(value)
	case 0x2005:
		ppu.writeScroll(value)
	case 0x2006:
		ppu.writeAddress(value)
	case 0x2007:
		ppu.writeData(value)
	}
}

// $2000: PPUCTRL
func (ppu *PPU) writeControl(value byte) {
	ppu.flagNameTable = value & 3
	ppu.flagIncrement = (value >> 2) & 1
	ppu.flagSpriteTable = (value >> 3) & 1
	ppu.flagBackgroundTable = (value >> 4) & 1
	ppu.flagSpriteSize = (value >> 5) & 1
	ppu.flagMasterSlave = (value >> 6) & 1
	ppu.nmiOutput = (value>>7)&1 == 1
	ppu.nmiChange()
	// t: ....BA.. ........ = d: ......BA
	ppu.t = (ppu.t & 0xF3FF) | (uint16(value)&0x03)<<10
}

// $2001: PPUMASK
func (ppu *PPU) writeMask(value byte) {
	ppu.flagGrayscale = value & 1
	ppu.flagShowLeftBackground = (value >> 1) & 1
	ppu.flagShowLeftSprites = (value >> 2) & 1
	ppu.flagShowBackground = (value >> 3) & 1
	ppu.flagShowSprites = (value >> 4) & 1
}

// $2002: PPUSTATUS. Reading clears vblank and the write toggle.
func (ppu *PPU) readStatus() byte {
	result := ppu.register & 0x1F
	result |= ppu.flagSpriteOverflow << 5
	result |= ppu.flagSpriteZeroHit << 6
	if ppu.nmiOccurred {
		result |= 1 << 7
	}
	ppu.nmiOccurred = false
	ppu.nmiChange()
	ppu.w = 0
	return result
}

// $2003: OAMADDR
func (ppu *PPU) writeOAMAddress(value byte) {
	ppu.oamAddress = value
}

// $2004: OAMDATA (read). Unused attribute bits read back as 0.
func (ppu *PPU) readOAMData() byte {
	data := ppu.oamData[ppu.oamAddress]
	if ppu.oamAddress&0x03 == 0x02 {
		data &= 0xE3
	}
	return data
}

// $2004: OAMDATA (write)
func (ppu *PPU) writeOAMData(value byte) {
	ppu.oamData[ppu.oamAddress] = value
	ppu.oamAddress++
}

// $2005: PPUSCROLL
func (ppu *PPU) writeScroll(value byte) {
	if ppu.w == 0 {
		// t: ........ ...HGFED = d: HGFED...
		// x:               CBA = d: .....CBA
		ppu.t = (ppu.t & 0xFFE0) | uint16(value)>>3
		ppu.x = value & 0x07
		ppu.w = 1
	} else {
		// t: .CBA..HG FED..... = d: HGFEDCBA
		ppu.t = (ppu.t & 0x8FFF) | (uint16(value)&0x07)<<12
		ppu.t = (ppu.t & 0xFC1F) | (uint16(value)&0xF8)<<2
		ppu.w = 0
	}
}

// $2006: PPUADDR
func (ppu *PPU) writeAddress(value byte) {
	if ppu.w == 0 {
		// t: ..FEDCBA ........ = d: ..FEDCBA, bit 14 cleared
		ppu.t = (ppu.t & 0x80FF) | (uint16(value)&0x3F)<<8
		ppu.w = 1
	} else {
		// t: ........ HGFEDCBA = d: HGFEDCBA, then v = t
		ppu.t = (ppu.t & 0xFF00) | uint16(value)
		ppu.v = ppu.t
		ppu.w = 0
	}
}

func (ppu *PPU) incrementAddress() {
	if ppu.flagIncrement == 0 {
		ppu.v++
	} else {
		ppu.v += 32
	}
	ppu.v &= 0x7FFF
}

// $2007: PPUDATA (read). Reads below the palette return the buffered value;
// palette reads are immediate and refill the buffer from the nametable
// underneath.
func (ppu *PPU) readData() byte {
	value := ppu.Read(ppu.v)
	if ppu.v%0x4000 < 0x3F00 {
		buffered := ppu.bufferedData
		ppu.bufferedData = value
		value = buffered
	} else {
		ppu.bufferedData = ppu.Read(ppu.v - 0x1000)
	}
	ppu.incrementAddress()
	return value
}

// $2007: PPUDATA (write)
func (ppu *PPU) writeData(value byte) {
	ppu.Write(ppu.v, value)
	ppu.incrementAddress()
}

// NMI is raised on the rising edge of (vblank && NMI enabled).
func (ppu *PPU) nmiChange() {
	nmi := ppu.nmiOutput && ppu.nmiOccurred
	if nmi && !ppu.nmiPrevious {
		ppu.nmiDelay = nmiLatency
	}
	ppu.nmiPrevious = nmi
}

func (ppu *PPU) setVerticalBlank() {
	ppu.front, ppu.back = ppu.back, ppu.front
	ppu.nmiOccurred = true
	ppu.nmiChange()
}

func (ppu *PPU) clearVerticalBlank() {
	ppu.nmiOccurred = false
	ppu.nmiChange()
}

// scroll register updates

func (ppu *PPU) incrementX() {
	if ppu.v&0x001F == 31 {
		ppu.v &= 0xFFE0
		ppu.v ^= 0x0400
	} else {
		ppu.v++
	}
}

func (ppu *PPU) incrementY() {
	if ppu.v&0x7000 != 0x7000 {
		ppu.v += 0x1000
		return
	}
	ppu.v &= 0x8FFF
	y := (ppu.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		ppu.v ^= 0x0800
	case 31:
		// coarse Y past the attribute rows wraps without switching tables
		y = 0
	default:
		y++
	}
	ppu.v = (ppu.v & 0xFC1F) | y<<5
}

// v: ....F.. ...EDCBA = t: ....F.. ...EDCBA
func (ppu *PPU) copyX() {
	ppu.v = (ppu.v & 0xFBE0) | (ppu.t & 0x041F)
}

// v: IHGF.ED CBA..... = t: IHGF.ED CBA.....
func (ppu *PPU) copyY() {
	ppu.v = (ppu.v & 0x841F) | (ppu.t & 0x7BE0)
}

// background fetches

// fetchBackground performs the memory access for one step of the eight cycle
// tile fetch. Odd steps read, step 0 commits the row to the shift register.
func (ppu *PPU) fetchBackground(step int) {
	v := ppu.v
	switch step {
	case 1:
		ppu.bg.name = ppu.Read(0x2000 | v&0x0FFF)
	case 3:
		// one attribute byte covers a 4x4 tile area, two bits per 2x2 quadrant
		address := 0x23C0 | v&0x0C00 | (v>>4)&0x38 | (v>>2)&0x07
		shift := (v>>4)&4 | v&2
		ppu.bg.palette = (ppu.Read(address) >> shift) & 3
	case 5:
		ppu.bg.low = ppu.Read(ppu.backgroundTileAddress())
	case 7:
		ppu.bg.high = ppu.Read(ppu.backgroundTileAddress() + 8)
	case 0:
		ppu.tileData |= uint64(packRow(ppu.bg.low, ppu.bg.high, ppu.bg.palette, false))
	}
}

func (ppu *PPU) backgroundTileAddress() uint16 {
	return patternAddress(ppu.flagBackgroundTable, ppu.bg.name, int(ppu.v>>12)&7)
}

func patternAddress(table, tile byte, row int) uint16 {
	return uint16(table)<<12 | uint16(tile)<<4 | uint16(row)
}

// packRow interleaves the two bit planes of a pattern row into eight 4 bit
// pixels, leftmost in the high nibble. Each pixel carries the palette number
// in bits 2-3.
func packRow(low, high, palette byte, mirrored bool) uint32 {
	var row uint32
	for i := 0; i < 8; i++ {
		bit := uint(7 - i)
		if mirrored {
			bit = uint(i)
		}
		pixel := palette<<2 | (high>>bit&1)<<1 | low>>bit&1
		row = row<<4 | uint32(pixel)
	}
	return row
}

func (ppu *PPU) backgroundPixel() byte {
	if ppu.flagShowBackground == 0 {
		return 0
	}
	return byte(ppu.tileData>>(32+(7-uint(ppu.x))*4)) & 0x0F
}

// sprites

// spritePixel returns the slot and 4 bit colour of the first opaque sprite
// pixel at the current cycle.
func (ppu *PPU) spritePixel() (byte, byte) {
	if ppu.flagShowSprites == 0 {
		return 0, 0
	}
	x := ppu.Cycle - 1
	for slot := 0; slot < ppu.spriteCount; slot++ {
		column := x - int(ppu.spritePositions[slot])
		if column < 0 || column > 7 {
			continue
		}
		color := byte(ppu.spritePatterns[slot]>>uint((7-column)*4)) & 0x0F
		if color&3 != 0 {
			return byte(slot), color
		}
	}
	return 0, 0
}

func (ppu *PPU) spriteHeight() int {
	if ppu.flagSpriteSize == 1 {
		return 16
	}
	return 8
}

// evaluateSprites fills the eight slots for the current scanline in OAM
// order. A ninth hit sets the overflow flag.
func (ppu *PPU) evaluateSprites() {
	height := ppu.spriteHeight()
	count := 0
	for i := 0; i < 64; i++ {
		entry := ppu.oamData[i*4 : i*4+4]
		row := ppu.ScanLine - int(entry[0])
		if row < 0 || row >= height {
			continue
		}
		if count == 8 {
			ppu.flagSpriteOverflow = 1
			break
		}
		ppu.spritePatterns[count] = ppu.fetchSpritePattern(i, row)
		ppu.spritePositions[count] = entry[3]
		ppu.spritePriorities[count] = (entry[2] >> 5) & 1
		ppu.spriteIndexes[count] = byte(i)
		count++
	}
	ppu.spriteCount = count
}

/*
OAM entry:

	byte 0  Y
	byte 1  tile; in 8x16 mode bit 0 picks the pattern table
	byte 2  VHP...PP  vertical flip, horizontal flip, behind background, palette
	byte 3  X
*/
func (ppu *PPU) fetchSpritePattern(i, row int) uint32 {
	tile := ppu.oamData[i*4+1]
	attributes := ppu.oamData[i*4+2]
	if attributes&0x80 != 0 {
		row = ppu.spriteHeight() - 1 - row
	}
	table := ppu.flagSpriteTable
	if ppu.flagSpriteSize == 1 {
		table = tile & 1
		tile &^= 1
		if row > 7 {
			tile++
			row -= 8
		}
	}
	address := patternAddress(table, tile, row)
	return packRow(ppu.Read(address), ppu.Read(address+8), attributes&3, attributes&0x40 != 0)
}

// composite picks the palette entry for one dot from the background and
// sprite pixels and records sprite zero hits.
func (ppu *PPU) composite(x int, background, slot, sprite byte) byte {
	bgOpaque := background&3 != 0
	spriteOpaque := sprite&3 != 0
	switch {
	case !spriteOpaque && !bgOpaque:
		return 0
	case !spriteOpaque:
		return background
	case !bgOpaque:
		return sprite | 0x10
	}
	if ppu.spriteIndexes[slot] == 0 && x < 255 {
		ppu.flagSpriteZeroHit = 1
	}
	if ppu.spritePriorities[slot] == 1 {
		return background
	}
	return sprite | 0x10
}

// renderBackdrop fills the dot with palette entry 0 while rendering is off.
func (ppu *PPU) renderBackdrop() {
	index := ppu.ReadPalette(0) & 0x3F
	if ppu.flagGrayscale != 0 {
		index &= 0x30
	}
	ppu.back.SetRGBA(ppu.Cycle-1, ppu.ScanLine, Palette[index])
}

func (ppu *PPU) renderPixel() {
	x, y := ppu.Cycle-1, ppu.ScanLine
	background := ppu.backgroundPixel()
	slot, sprite := ppu.spritePixel()
	if x < 8 {
		if ppu.flagShowLeftBackground == 0 {
			background = 0
		}
		if ppu.flagShowLeftSprites == 0 {
			sprite = 0
		}
	}
	index := ppu.ReadPalette(uint16(ppu.composite(x, background, slot, sprite))) & 0x3F
	if ppu.flagGrayscale != 0 {
		index &= 0x30
	}
	ppu.back.SetRGBA(x, y, Palette[index])
}

// tick advances the cycle and scanline counters and delivers a pending NMI.
func (ppu *PPU) tick() {
	if ppu.nmiDelay > 0 {
		ppu.nmiDelay--
		if ppu.nmiDelay == 0 && ppu.nmiOutput && ppu.nmiOccurred {
			ppu.console.CPU.TriggerNMI()
		}
	}

	// odd frames skip the last cycle of the pre-render line
	if ppu.renderingEnabled() && ppu.f == 1 && ppu.ScanLine == 261 && ppu.Cycle == 339 {
		ppu.Cycle = 0
		ppu.ScanLine = 0
		ppu.Frame++
		ppu.f ^= 1
		return
	}
	ppu.Cycle++
	if ppu.Cycle > 340 {
		ppu.Cycle = 0
		ppu.ScanLine++
		if ppu.ScanLine > 261 {
			ppu.ScanLine = 0
			ppu.Frame++
			ppu.f ^= 1
		}
	}
}

// Step advances the PPU by one cycle.
func (ppu *PPU) Step() {
	ppu.tick()

	rendering := ppu.renderingEnabled()
	preLine := ppu.ScanLine == 261
	visibleLine := ppu.ScanLine < 240
	renderLine := preLine || visibleLine
	preFetchCycle := ppu.Cycle >= 321 && ppu.Cycle <= 336
	visibleCycle := ppu.Cycle >= 1 && ppu.Cycle <= 256
	fetchCycle := preFetchCycle || visibleCycle

	if !rendering && visibleLine && visibleCycle {
		ppu.renderBackdrop()
	}
	if rendering {
		if visibleLine && visibleCycle {
			ppu.renderPixel()
		}
		if renderLine && fetchCycle {
			ppu.tileData <<= 4
			ppu.fetchBackground(ppu.Cycle % 8)
		}
		if preLine && ppu.Cycle >= 280 && ppu.Cycle <= 304 {
			ppu.copyY()
		}
		if renderLine {
			if fetchCycle && ppu.Cycle%8 == 0 {
				ppu.incrementX()
			}
			if ppu.Cycle == 256 {
				ppu.incrementY()
			}
			if ppu.Cycle == 257 {
				ppu.copyX()
			}
		}

		if ppu.Cycle == 257 {
			if visibleLine {
				ppu.evaluateSprites()
			} else {
				ppu.spriteCount = 0
			}
		}
	}

	if ppu.ScanLine == 241 && ppu.Cycle == 1 {
		ppu.setVerticalBlank()
	}
	if preLine && ppu.Cycle == 1 {
		ppu.clearVerticalBlank()
		ppu.flagSpriteZeroHit = 0
		ppu.flagSpriteOverflow = 0
	}
}
