package intc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetStatWriteToClear(t *testing.T) {
	var e EE
	e.SetStat(0x7fff) // can't set via SetStat directly; use Raise then clear.
	assert.Equal(t, uint32(0), e.GetStat())

	e.Raise(VBlankStart)
	e.Raise(GS)
	initial := e.GetStat()
	e.SetStat(1 << VBlankStart)
	assert.Equal(t, initial&^(uint32(1)<<VBlankStart), e.GetStat())
}

func TestPendingRequiresMaskAndStat(t *testing.T) {
	var e EE
	e.Raise(VBlankStart)
	assert.False(t, e.Pending())
	e.SetMask(1 << VBlankStart)
	assert.True(t, e.Pending())
}

func TestMaskTruncatedTo15Bits(t *testing.T) {
	var e EE
	e.SetMask(0xffffffff)
	assert.Equal(t, uint32(0x7fff), e.GetMask())
}

func TestIOP25BitWidth(t *testing.T) {
	var i IOP
	i.SetMask(0xffffffff)
	assert.Equal(t, uint32(0x1ffffff), i.GetMask())
	i.Raise(3)
	assert.True(t, i.Pending())
	i.SetStat(1 << 3)
	assert.False(t, i.Pending())
}
