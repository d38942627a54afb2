package dmac

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMem struct {
	buf [4096]byte
}

func (m *fakeMem) ReadQWord(addr uint32) (lo, hi uint64, err error) {
	return binary.LittleEndian.Uint64(m.buf[addr:]), binary.LittleEndian.Uint64(m.buf[addr+8:]), nil
}

func (m *fakeMem) putQWord(addr uint32, lo, hi uint64) {
	binary.LittleEndian.PutUint64(m.buf[addr:], lo)
	binary.LittleEndian.PutUint64(m.buf[addr+8:], hi)
}

func TestChannelFromByteKnownAndUnknown(t *testing.T) {
	c, err := ChannelFromByte(0x80)
	require.NoError(t, err)
	assert.Equal(t, ChanVif0, c)

	_, err = ChannelFromByte(0xff)
	assert.Error(t, err)
}

func TestEndTagStopsChainAndClearsStr(t *testing.T) {
	mem := &fakeMem{}
	// Tag at TADR=0: id=End(7), qwc=0 payload (no linear transfer first).
	tagLo := uint64(TagEnd) << 28
	mem.putQWord(0, tagLo, 0)

	d := New(mem)
	var received [][2]uint64
	d.SetSink(ChanVif0, func(lo, hi uint64) { received = append(received, [2]uint64{lo, hi}) })

	d.chans[ChanVif0].Req = true
	d.Enabled = true
	require.NoError(t, d.WriteChcr(ChanVif0, uint32(ModeChain)<<2|1<<8|uint32(DirTo)))

	assert.False(t, d.Chan(ChanVif0).Chcr.Str)
	assert.False(t, d.Chan(ChanVif0).Req)
}

func TestCntTagChainsToNextTag(t *testing.T) {
	mem := &fakeMem{}
	// First tag at 0: Cnt, qwc=1, payload quadword follows at 16.
	mem.putQWord(0, uint64(TagCnt)<<28|1, 0)
	mem.putQWord(16, 0xdeadbeef, 0xcafef00d)
	// Second tag at 32 (= Madr(16)+16*qwc(1) = 32): End.
	mem.putQWord(32, uint64(TagEnd)<<28, 0)

	d := New(mem)
	var got []uint64
	d.SetSink(ChanVif1, func(lo, hi uint64) { got = append(got, lo) })
	d.chans[ChanVif1].Req = true
	d.chans[ChanVif1].Tadr = 0
	d.Enabled = true

	require.NoError(t, d.WriteChcr(ChanVif1, uint32(ModeChain)<<2|1<<8|uint32(DirTo)))
	assert.Contains(t, got, uint64(0xdeadbeef))
	assert.False(t, d.Chan(ChanVif1).Chcr.Str)
}

func TestCallRetRoundTrip(t *testing.T) {
	mem := &fakeMem{}
	// Tag at 0: Call to subroutine at 64, qwc=0.
	mem.putQWord(0, uint64(TagCall)<<28|uint64(64)<<32, 0)
	// Subroutine tag at 64: Ret, qwc=0.
	mem.putQWord(64, uint64(TagRet)<<28, 0)
	// After Ret, Tadr restored to 16 (pushed return addr), tag at 16: End.
	mem.putQWord(16, uint64(TagEnd)<<28, 0)

	d := New(mem)
	d.SetSink(ChanSif0, func(lo, hi uint64) {})
	d.chans[ChanSif0].Req = true
	d.Enabled = true

	require.NoError(t, d.WriteChcr(ChanSif0, uint32(ModeChain)<<2|1<<8|uint32(DirTo)))
	assert.False(t, d.Chan(ChanSif0).Chcr.Str)
}

func TestTteTagPushesTagQuadwordBeforePayload(t *testing.T) {
	mem := &fakeMem{}
	// Tag at 0: Next, qwc=1, payload at 16, next tag at 48.
	mem.putQWord(0, uint64(TagNext)<<28|1|uint64(48)<<32, 0)
	mem.putQWord(16, 0x11112222, 0x33334444)
	mem.putQWord(48, uint64(TagEnd)<<28, 0)

	d := New(mem)
	var got [][2]uint64
	d.SetSink(ChanVif1, func(lo, hi uint64) { got = append(got, [2]uint64{lo, hi}) })
	d.chans[ChanVif1].Req = true
	d.chans[ChanVif1].Tadr = 0
	d.Enabled = true

	// TTE (bit 6) alongside chain mode and DIR=To.
	require.NoError(t, d.WriteChcr(ChanVif1, uint32(ModeChain)<<2|1<<6|1<<8|uint32(DirTo)))

	require.NotEmpty(t, got)
	assert.Equal(t, uint64(TagNext)<<28|1|uint64(48)<<32, got[0][0])
	assert.Contains(t, got, [2]uint64{0x11112222, 0x33334444})
}

func TestDirFromChainIsUnhandled(t *testing.T) {
	mem := &fakeMem{}
	d := New(mem)
	d.chans[ChanVif0].Req = true
	d.Enabled = true
	err := d.WriteChcr(ChanVif0, uint32(ModeChain)<<2|1<<8|uint32(DirFrom))
	assert.Error(t, err)
}

func TestDisabledControllerDoesNothing(t *testing.T) {
	mem := &fakeMem{}
	d := New(mem)
	d.chans[ChanVif0].Req = true
	require.NoError(t, d.WriteChcr(ChanVif0, uint32(ModeChain)<<2|1<<8|uint32(DirTo)))
	assert.True(t, d.Chan(ChanVif0).Chcr.Str)
}

func TestSif1ReqPresetAtBoot(t *testing.T) {
	d := New(&fakeMem{})
	assert.True(t, d.Chan(ChanSif1).Req)
}
