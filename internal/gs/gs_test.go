package gs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleDispatchClearsQueue(t *testing.T) {
	g := New()
	var got []Vertex
	g.Rasterizer = func(p Prim, v []Vertex) { got = append([]Vertex(nil), v...) }

	require.NoError(t, g.Write(RegPRIM, uint64(PrimTriangle)))
	require.NoError(t, g.Write(RegXYZ2, 1))
	require.NoError(t, g.Write(RegXYZ2, 2))
	assert.Nil(t, got)
	require.NoError(t, g.Write(RegXYZ2, 3))
	require.Len(t, got, 3)
	assert.Empty(t, g.vq)
}

func TestTriangleStripRetainsRollingPair(t *testing.T) {
	g := New()
	var calls int
	g.Rasterizer = func(p Prim, v []Vertex) { calls++ }

	require.NoError(t, g.Write(RegPRIM, uint64(PrimTriangleStrip)))
	for i := 0; i < 5; i++ {
		require.NoError(t, g.Write(RegXYZ2, uint64(i)))
	}
	assert.Equal(t, 3, calls) // verts 0-2, 1-3, 2-4
	assert.Len(t, g.vq, 2)
}

func TestPointDispatchesImmediately(t *testing.T) {
	g := New()
	var calls int
	g.Rasterizer = func(p Prim, v []Vertex) { calls++; assert.Len(t, v, 1) }
	require.NoError(t, g.Write(RegPRIM, uint64(PrimPoint)))
	require.NoError(t, g.Write(RegXYZ2, 7))
	assert.Equal(t, 1, calls)
}

func TestPackedADDemux(t *testing.T) {
	g := New()
	// AD targets RGBAQ (reg 0x01) with payload 0x1234.
	err := g.WritePacked(PackedAD, 0x1234, RegRGBAQ)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1234), g.rgbaq)
}

func TestPackedNOPIsIgnored(t *testing.T) {
	g := New()
	require.NoError(t, g.WritePacked(PackedNOP, 0xdead, 0xbeef))
}

func TestCSRWriteOneToClear(t *testing.T) {
	g := New()
	g.finish()
	assert.NotZero(t, g.csr&csrBitFinish)
	g.writeCSR(csrBitFinish)
	assert.Zero(t, g.csr&csrBitFinish)
}

func TestCSRResetRestoresIMR(t *testing.T) {
	g := New()
	g.imr = 0
	g.writeCSR(csrBitReset)
	assert.Equal(t, uint64(0x1f00), g.imr)
	assert.Zero(t, g.csr)
}

func TestCSRReadComposesFixedRevID(t *testing.T) {
	g := New()
	v, err := g.PrivilegedRead(PrivCSR)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1b)<<16|uint64(0x55)<<24, v)
}

func TestFinishRaisesOnlyWhenUnmasked(t *testing.T) {
	g := New()
	var raised int
	g.RaiseGSInterrupt = func() { raised++ }

	g.imr = imrFinishMask // masked
	require.NoError(t, g.Write(RegFINISH, 0))
	assert.Equal(t, 0, raised)

	g.imr = 0 // unmasked
	require.NoError(t, g.Write(RegFINISH, 0))
	assert.Equal(t, 1, raised)
}

func TestDISPFB1CachesFrameBasePointer(t *testing.T) {
	g := New()
	require.NoError(t, g.PrivilegedWrite(PrivDISPFB1, 5))
	p1, _ := g.FrameBasePointers()
	assert.Equal(t, uint32(2048*5), p1)
}

func TestPrivilegedWriteRejectsMisaligned(t *testing.T) {
	g := New()
	err := g.PrivilegedWrite(PrivCSR+1, 0)
	assert.Error(t, err)
}

func TestHostToVRAMTransfer(t *testing.T) {
	g := New()
	require.NoError(t, g.Write(RegBITBLTBUF, 0)) // base 0, both contexts.
	require.NoError(t, g.Write(RegTRXPOS, 0))
	require.NoError(t, g.Write(RegTRXREG, uint64(2)|uint64(1)<<32)) // 2x1
	require.NoError(t, g.Write(RegTRXDIR, uint64(TransferHostToVRAM)))
	require.NoError(t, g.Write(RegHWREG, 0x00000002_00000001))

	vram := g.VRAM()
	assert.Equal(t, byte(1), vram[0])
	assert.Equal(t, byte(2), vram[4])
}

func TestWriteRejectsOutOfRangeRegister(t *testing.T) {
	g := New()
	err := g.Write(0x70, 0)
	assert.Error(t, err)
}
