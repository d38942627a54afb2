package machmem

import (
	"errors"
	"testing"

	"github.com/ps2core/emu/internal/ps2err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBIOSWrongSize(t *testing.T) {
	var a Arrays
	err := a.LoadBIOS(make([]byte, 100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ps2err.ErrBios))
}

func TestLoadBIOSExact(t *testing.T) {
	var a Arrays
	image := make([]byte, BIOSSize)
	image[0] = 0xAB
	image[BIOSSize-1] = 0xCD
	require.NoError(t, a.LoadBIOS(image))
	assert.Equal(t, byte(0xAB), a.BIOS[0])
	assert.Equal(t, byte(0xCD), a.BIOS[BIOSSize-1])
}

func TestReadWriteRoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8, 16} {
		buf := make([]byte, 32)
		lo, hi := uint64(0x1122334455667788), uint64(0x99aabbccddeeff00)
		require.NoError(t, Write(buf, 4, width, lo, hi))
		rlo, rhi, err := Read(buf, 4, width)
		require.NoError(t, err)
		mask := uint64(0)
		if width >= 8 {
			mask = ^uint64(0)
		} else {
			mask = (uint64(1) << (8 * width)) - 1
		}
		assert.Equal(t, lo&mask, rlo)
		if width > 8 {
			hiMask := (uint64(1) << (8 * (width - 8))) - 1
			assert.Equal(t, hi&hiMask, rhi)
		}
	}
}

func TestReadWriteOutOfBounds(t *testing.T) {
	buf := make([]byte, 16)
	_, _, err := Read(buf, 10, 16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ps2err.ErrAddress))

	err = Write(buf, 10, 16, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ps2err.ErrAddress))
}

func TestBoundaryAccessSucceeds(t *testing.T) {
	var a Arrays
	_, _, err := Read(a.RAM[:], RAMSize-16, 16)
	require.NoError(t, err)
	_, _, err = Read(a.RAM[:], RAMSize-15, 16)
	require.Error(t, err)
}
