package nes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseINESSizes(t *testing.T) {
	card, err := ParseINES(buildROM(2, 1, 0x40, 0x00))
	require.NoError(t, err)
	assert.Len(t, card.PRG, 32768)
	assert.Len(t, card.CHR, 8192)
	assert.Len(t, card.SRAM, 8192)
	assert.Equal(t, byte(4), card.Mapper)
	assert.Equal(t, byte(MirrorHorizontal), card.Mirror)
	assert.False(t, card.Battery)
	assert.False(t, card.CHRRAM)
}

func TestParseINESFlags(t *testing.T) {
	card, err := ParseINES(buildROM(1, 1, 0x43, 0x10))
	require.NoError(t, err)
	assert.Equal(t, byte(0x14), card.Mapper)
	assert.Equal(t, byte(MirrorVertical), card.Mirror)
	assert.True(t, card.Battery)

	card, err = ParseINES(buildROM(1, 1, 0x49, 0x00))
	require.NoError(t, err)
	assert.Equal(t, byte(MirrorFour), card.Mirror, "four-screen overrides bit 0")
}

func TestParseINESCHRRAM(t *testing.T) {
	card, err := ParseINES(buildROM(1, 0, 0x40, 0x00))
	require.NoError(t, err)
	assert.True(t, card.CHRRAM)
	assert.Len(t, card.CHR, chrBankSize)
}

func TestParseINESTrainer(t *testing.T) {
	rom := buildROM(1, 1, 0x44, 0x00)
	trainer := make([]byte, inesTrainerSize)
	data := append(append(append([]byte{}, rom[:16]...), trainer...), rom[16:]...)
	data[16+inesTrainerSize] = 0xAB
	data[16+inesTrainerSize+prgBankSize] = 0xCD

	card, err := ParseINES(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), card.PRG[0])
	assert.Equal(t, byte(0xCD), card.CHR[0])
}

func TestParseINESErrors(t *testing.T) {
	good := buildROM(1, 1, 0x40, 0x00)

	badMagic := append([]byte{}, good...)
	badMagic[3] = 0x1B

	noPRG := append([]byte{}, good...)
	noPRG[4] = 0

	cases := map[string][]byte{
		"short":     good[:10],
		"bad magic": badMagic,
		"no PRG":    noPRG,
		"truncated": good[:len(good)-1],
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			card, err := ParseINES(data)
			assert.Nil(t, card)
			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr), "got %v", err)
		})
	}
}

func TestLoadNESFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.nes")
	require.NoError(t, os.WriteFile(path, buildROM(2, 1, 0x40, 0x00), 0o644))
	card, err := LoadNESFile(path)
	require.NoError(t, err)
	assert.Len(t, card.PRG, 32768)

	_, err = LoadNESFile(filepath.Join(t.TempDir(), "missing.nes"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
