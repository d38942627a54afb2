package addrmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMLowAndHighBoundary(t *testing.T) {
	r, off := Lookup(0)
	assert.Equal(t, RegionRAM, r)
	assert.Equal(t, uint32(0), off)

	r, off = Lookup(32*1024*1024 - 1)
	assert.Equal(t, RegionRAM, r)
	assert.Equal(t, uint32(32*1024*1024-1), off)
}

func TestHighEndExclusive(t *testing.T) {
	r, _ := Lookup(32 * 1024 * 1024)
	assert.NotEqual(t, RegionRAM, r)
}

func TestBIOSRegion(t *testing.T) {
	r, off := Lookup(0x1fc0_0000)
	assert.Equal(t, RegionBIOS, r)
	assert.Equal(t, uint32(0), off)
}

func TestIOPWindowDoesNotShadowBIOS(t *testing.T) {
	r, _ := Lookup(0x1fc0_0000)
	assert.Equal(t, RegionBIOS, r)
	r, _ = Lookup(0x1a00_0000)
	assert.Equal(t, RegionIOPWindow, r)
}

func TestUnmappedGapIsScattered(t *testing.T) {
	r, off := Lookup(0x1500_0000)
	assert.Equal(t, RegionScattered, r)
	assert.Equal(t, uint32(0x1500_0000), off)
}

func TestRegionStringNames(t *testing.T) {
	assert.Equal(t, "RAM", RegionRAM.String())
	assert.Equal(t, "Scattered", RegionScattered.String())
}
