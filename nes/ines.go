package nes

import (
	"bytes"
	"fmt"
	"os"
)

const (
	inesHeaderSize  = 16
	inesTrainerSize = 512
)

var inesMagic = []byte{'N', 'E', 'S', 0x1A}

/*
FLAG6

76543210
||||||||
|||||||+- Mirroring: 0 horizontal, 1 vertical
||||||+-- 1: battery backed SRAM at $6000-$7FFF
|||||+--- 1: 512-byte trainer before PRG data
||||+---- 1: four-screen VRAM, overrides bit 0
++++----- mapper number, low nibble

FLAG7

++++----- mapper number, high nibble
*/

// LoadNESFile reads and parses an iNES image from disk.
func LoadNESFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseINES(data)
}

// ParseINES builds a Cartridge from the bytes of an iNES image. A header
// without CHR banks gets 8kb of CHR RAM.
func ParseINES(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSize {
		return nil, &FormatError{Reason: fmt.Sprintf("file too short for header: %d bytes", len(data))}
	}
	if !bytes.Equal(data[0:4], inesMagic) {
		return nil, &FormatError{Reason: fmt.Sprintf("bad magic % X", data[0:4])}
	}

	prgNum := int(data[4])
	chrNum := int(data[5])
	flag := data[6]
	flag2 := data[7]

	if prgNum == 0 {
		return nil, &FormatError{Reason: "no PRG banks"}
	}

	mapper := (flag >> 4) | (flag2 & 0xF0)
	mirror := byte(MirrorHorizontal)
	if flag&0x01 != 0 {
		mirror = MirrorVertical
	}
	if flag&0x08 != 0 {
		mirror = MirrorFour
	}
	battery := flag&0x02 != 0

	offset := inesHeaderSize
	if flag&0x04 != 0 {
		offset += inesTrainerSize
	}

	prgLen := prgNum * prgBankSize
	chrLen := chrNum * chrBankSize
	if len(data) < offset+prgLen+chrLen {
		return nil, &FormatError{Reason: fmt.Sprintf("truncated image: want %d bytes, have %d",
			offset+prgLen+chrLen, len(data))}
	}

	prg := make([]byte, prgLen)
	copy(prg, data[offset:offset+prgLen])
	offset += prgLen

	var chr []byte
	if chrNum == 0 {
		chr = make([]byte, chrBankSize)
	} else {
		chr = make([]byte, chrLen)
		copy(chr, data[offset:offset+chrLen])
	}

	card := NewCartridge(prg, chr, mapper, mirror, battery)
	card.CHRRAM = chrNum == 0
	return card, nil
}
