package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps2core/emu/internal/addrmap"
	"github.com/ps2core/emu/internal/dmac"
	"github.com/ps2core/emu/internal/gs"
	"github.com/ps2core/emu/internal/intc"
	"github.com/ps2core/emu/internal/machmem"
)

type fakeDmacMem struct{ arr *machmem.Arrays }

func (f fakeDmacMem) ReadQWord(addr uint32) (uint64, uint64, error) {
	return machmem.Read(f.arr.RAM[:], addr, 16)
}

func newTestBus() *Bus {
	mem := &machmem.Arrays{}
	d := dmac.New(fakeDmacMem{arr: mem})
	var i intc.EE
	g := gs.New()
	return New(mem, d, &i, g)
}

func TestRAMRoundTrip(t *testing.T) {
	b := newTestBus()
	require.NoError(t, b.Write(4, 0x1000, 0xdeadbeef, 0))
	lo, _, err := b.Read(4, 0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeef), lo)
}

func TestKPUTCHARRequiresByteWidth(t *testing.T) {
	b := newTestBus()
	var got byte
	b.ConsoleWrite = func(c byte) { got = c }
	require.NoError(t, b.Write(1, addrmap.KPutChar, 'A', 0))
	assert.Equal(t, byte('A'), got)

	err := b.Write(4, addrmap.KPutChar, 'B', 0)
	assert.Error(t, err)
}

func TestKPUTCHARZeroByteIsDropped(t *testing.T) {
	b := newTestBus()
	called := false
	b.ConsoleWrite = func(c byte) { called = true }
	require.NoError(t, b.Write(1, addrmap.KPutChar, 0, 0))
	assert.False(t, called)
}

func TestINTCStatWriteToClearThroughBus(t *testing.T) {
	b := newTestBus()
	b.Intc.Raise(intc.VBlankStart)
	require.NoError(t, b.Write(4, addrmap.IntcStat, 1<<intc.VBlankStart, 0))
	lo, _, err := b.Read(4, addrmap.IntcStat)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), lo)
}

func TestScatteredBlockAcknowledgedWithoutError(t *testing.T) {
	b := newTestBus()
	require.NoError(t, b.Write(4, 0x1000_f150, 0x1234, 0))
	lo, _, err := b.Read(4, 0x1000_f150)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), lo)
}

func TestMCHRICMAndDRDProtocol(t *testing.T) {
	b := newTestBus()
	require.NoError(t, b.Write(4, addrmap.MchRicm, 0x21<<16|1<<6, 0))
	require.NoError(t, b.Write(4, addrmap.MchDrd, 0, 0))
	v, _, err := b.Read(4, addrmap.MchDrd)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1f), v)
}

func TestGSPrivilegedRequiresEightByteWidth(t *testing.T) {
	b := newTestBus()
	err := b.Write(4, 0x1200_0000, 1, 0)
	assert.Error(t, err)
	require.NoError(t, b.Write(8, 0x1200_0000, 1, 0))
}

func TestUnmappedAddressErrors(t *testing.T) {
	b := newTestBus()
	_, _, err := b.Read(4, 0x1500_0000) // gap between GS privileged and the IOP window.
	assert.Error(t, err)
}

func TestFIFOWriteRequiresSixteenBytes(t *testing.T) {
	b := newTestBus()
	err := b.Write(4, addrmap.GifFifo, 0, 0)
	assert.Error(t, err)
	require.NoError(t, b.Write(16, addrmap.GifFifo, 0x1234, uint64(gs.RegRGBAQ)))
}
