package nes

/*
CPU address space:

	[$0000, $2000) 2kb internal RAM, mirrored every $0800
	[$2000, $4000) PPU registers, mirrored every 8 bytes
	[$4000, $4018) APU and I/O: $4014 OAM DMA, $4016/$4017 controllers
	[$4018, $6000) unmapped
	[$6000, $8000) cartridge SRAM
	[$8000, $10000) PRG ROM through the mapper

PPU address space (14 bit, higher addresses wrap):

	[$0000, $2000) pattern tables, cartridge CHR through the mapper
	[$2000, $3F00) nametables, 2kb of VRAM behind the mirroring table
	[$3F00, $4000) 32 bytes of palette RAM, mirrored
*/

type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// CPUMemory is the CPU side of the bus.
type CPUMemory struct {
	console *Console
}

func NewCPUMemory(console *Console) Memory {
	return &CPUMemory{console: console}
}

func (mem *CPUMemory) Read(addr uint16) byte {
	c := mem.console
	switch {
	case addr < 0x2000:
		return c.RAM[addr%0x0800]
	case addr < 0x4000:
		return c.PPU.readRegister(0x2000 + addr%8)
	case addr == 0x4016:
		return c.Controller1.Read()
	case addr == 0x4017:
		return c.Controller2.Read()
	case addr < 0x4018:
		// APU registers and the write-only DMA port read back as zero
		return 0
	case addr < 0x6000:
		panic(&BusError{Address: addr, Side: "cpu"})
	default:
		return c.Mapper.Read(addr)
	}
}

func (mem *CPUMemory) Write(addr uint16, value byte) {
	c := mem.console
	switch {
	case addr < 0x2000:
		c.RAM[addr%0x0800] = value
	case addr < 0x4000:
		c.PPU.writeRegister(0x2000+addr%8, value)
	case addr == 0x4014:
		mem.writeDMA(value)
	case addr == 0x4016:
		c.Controller1.Write(value)
		c.Controller2.Write(value)
	case addr < 0x4018:
		// APU registers, no audio output
	case addr < 0x6000:
		panic(&BusError{Address: addr, Write: true, Side: "cpu"})
	default:
		c.Mapper.Write(addr, value)
	}
}

// writeDMA copies page $XX00-$XXFF into OAM starting at the current OAM
// address. The CPU is stalled for 513 cycles, 514 when the transfer starts
// on an odd cycle.
func (mem *CPUMemory) writeDMA(page byte) {
	cpu := mem.console.CPU
	ppu := mem.console.PPU
	address := uint16(page) << 8
	for i := 0; i < 256; i++ {
		ppu.oamData[ppu.oamAddress] = mem.Read(address)
		ppu.oamAddress++
		address++
	}
	cpu.stall += 513
	if cpu.Cycles%2 == 1 {
		cpu.stall++
	}
}

// PPUMemory is the PPU side of the bus. Only the PPU goes through it.
type PPUMemory struct {
	console *Console
}

func NewPPUMemory(console *Console) Memory {
	return &PPUMemory{console: console}
}

func (mem *PPUMemory) Read(addr uint16) byte {
	c := mem.console
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		return c.Mapper.Read(addr)
	case addr < 0x3F00:
		return c.PPU.NameTable[MirrorAddress(c.Card.Mirror, addr)]
	default:
		return c.PPU.ReadPalette(addr % 32)
	}
}

func (mem *PPUMemory) Write(addr uint16, value byte) {
	c := mem.console
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		c.Mapper.Write(addr, value)
	case addr < 0x3F00:
		c.PPU.NameTable[MirrorAddress(c.Card.Mirror, addr)] = value
	default:
		c.PPU.WritePalette(addr%32, value)
	}
}

// MirrorLookup maps each of the four logical nametables to one of the
// 1kb pages of VRAM, per mirroring mode.
var MirrorLookup = [...][4]uint16{
	MirrorHorizontal: {0, 0, 1, 1},
	MirrorVertical:   {0, 1, 0, 1},
	MirrorSingle0:    {0, 0, 0, 0},
	MirrorSingle1:    {1, 1, 1, 1},
	MirrorFour:       {0, 1, 2, 3},
}

// MirrorAddress returns the VRAM index for a nametable address in
// $2000-$3EFF. Four-screen carts would need extra cartridge VRAM; without
// it pages 2 and 3 fold back onto the 2kb array.
func MirrorAddress(mode byte, address uint16) uint16 {
	table := (address >> 10) & 3
	offset := address & 0x03FF
	return (MirrorLookup[mode][table]*0x0400 + offset) % 2048
}
