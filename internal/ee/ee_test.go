package ee

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps2core/emu/internal/vu0"
)

// fakeBus is a flat little-endian byte array standing in for the
// system bus, sized generously for branch/load-store tests.
type fakeBus struct {
	mem [0x1_0000]byte
}

func (b *fakeBus) Read(width int, phys uint32) (uint64, uint64, error) {
	var lo, hi uint64
	switch width {
	case 1:
		lo = uint64(b.mem[phys])
	case 2:
		lo = uint64(binary.LittleEndian.Uint16(b.mem[phys:]))
	case 4:
		lo = uint64(binary.LittleEndian.Uint32(b.mem[phys:]))
	case 8:
		lo = binary.LittleEndian.Uint64(b.mem[phys:])
	case 16:
		lo = binary.LittleEndian.Uint64(b.mem[phys:])
		hi = binary.LittleEndian.Uint64(b.mem[phys+8:])
	}
	return lo, hi, nil
}

func (b *fakeBus) Write(width int, phys uint32, lo, hi uint64) error {
	switch width {
	case 1:
		b.mem[phys] = byte(lo)
	case 2:
		binary.LittleEndian.PutUint16(b.mem[phys:], uint16(lo))
	case 4:
		binary.LittleEndian.PutUint32(b.mem[phys:], uint32(lo))
	case 8:
		binary.LittleEndian.PutUint64(b.mem[phys:], lo)
	case 16:
		binary.LittleEndian.PutUint64(b.mem[phys:], lo)
		binary.LittleEndian.PutUint64(b.mem[phys+8:], hi)
	}
	return nil
}

// putInsn writes at the physical address the EE's kseg0 translation
// (vaddr & 0x1fffffff) will actually resolve a 0x8000_0000-based PC to.
func (b *fakeBus) putInsn(vaddr uint32, insn uint32) {
	binary.LittleEndian.PutUint32(b.mem[vaddr&0x1fff_ffff:], insn)
}

type fakeScratchpad struct {
	buf [0x4000]byte
}

func (s *fakeScratchpad) Bytes() []byte { return s.buf[:] }

func (s *fakeScratchpad) Read(buf []byte, offset uint32, width int) (uint64, uint64, error) {
	var lo, hi uint64
	switch width {
	case 4:
		lo = uint64(binary.LittleEndian.Uint32(buf[offset:]))
	case 8:
		lo = binary.LittleEndian.Uint64(buf[offset:])
	}
	return lo, hi, nil
}

func (s *fakeScratchpad) Write(buf []byte, offset uint32, width int, lo, hi uint64) error {
	switch width {
	case 4:
		binary.LittleEndian.PutUint32(buf[offset:], uint32(lo))
	case 8:
		binary.LittleEndian.PutUint64(buf[offset:], lo)
	}
	return nil
}

func newTestEE() (*EE, *fakeBus) {
	bus := &fakeBus{}
	e := &EE{Bus: bus, Scratchpad: &fakeScratchpad{}, VU0: vu0.New(nil)}
	e.Reset()
	e.PC = 0x8000_0000
	e.npc = 0x8000_0004
	e.cpc = 0x8000_0000
	return e, bus
}

// encodeI builds a standard I-type instruction word.
func encodeI(opcode, rs, rt uint32, imm16 uint16) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | uint32(imm16)
}

func encodeR(funct, rs, rt, rd, sa uint32) uint32 {
	return opSPECIAL<<26 | rs<<21 | rt<<16 | rd<<11 | sa<<6 | funct
}

func TestStepADDIUAdvancesPCSequentially(t *testing.T) {
	e, bus := newTestEE()
	bus.putInsn(0x8000_0000, encodeI(opADDIU, 0, 8, 5))
	require.NoError(t, e.Step())
	assert.Equal(t, uint32(5), uint32(e.GPR[8].Lo))
	assert.Equal(t, uint32(0x8000_0004), e.PC)
	assert.Equal(t, uint32(0x8000_0008), e.npc)
}

func TestGPRZeroStaysClamped(t *testing.T) {
	e, bus := newTestEE()
	bus.putInsn(0x8000_0000, encodeI(opADDIU, 0, 0, 42))
	require.NoError(t, e.Step())
	assert.Equal(t, uint64(0), e.GPR[0].Lo)
}

func TestBranchTakenExecutesDelaySlotThenJumps(t *testing.T) {
	e, bus := newTestEE()
	// BEQ r0, r0, +2 (target is 2 instructions past the delay slot, skipping one)
	bus.putInsn(0x8000_0000, encodeI(opBEQ, 0, 0, 2))
	bus.putInsn(0x8000_0004, encodeI(opADDIU, 0, 9, 1)) // delay slot: r9 = 1
	bus.putInsn(0x8000_0008, encodeI(opADDIU, 0, 9, 2)) // skipped
	bus.putInsn(0x8000_000c, encodeI(opADDIU, 0, 9, 3)) // branch target

	require.NoError(t, e.Step()) // BEQ: decides taken, sets npc latch
	assert.Equal(t, uint32(0x8000_0004), e.PC)
	require.NoError(t, e.Step()) // delay slot executes
	assert.Equal(t, uint32(1), uint32(e.GPR[9].Lo))
	assert.Equal(t, uint32(0x8000_000c), e.PC)
	require.NoError(t, e.Step()) // lands on branch target
	assert.Equal(t, uint32(3), uint32(e.GPR[9].Lo))
}

func TestBranchLikelyNotTakenSkipsDelaySlot(t *testing.T) {
	e, bus := newTestEE()
	// BNEL r0, r0, +2 -- never taken (r0==r0), so the delay slot must
	// be skipped entirely rather than executed.
	bus.putInsn(0x8000_0000, encodeI(opBNEL, 0, 0, 2))
	bus.putInsn(0x8000_0004, encodeI(opADDIU, 0, 9, 1)) // would-be delay slot
	bus.putInsn(0x8000_0008, encodeI(opADDIU, 0, 9, 2))
	bus.putInsn(0x8000_000c, encodeI(opADDIU, 0, 9, 3))

	require.NoError(t, e.Step())
	assert.Equal(t, uint32(0x8000_0008), e.PC)
	require.NoError(t, e.Step())
	assert.Equal(t, uint32(2), uint32(e.GPR[9].Lo))
}

func TestJALLinksReturnAddress(t *testing.T) {
	e, bus := newTestEE()
	target := uint32(0x8000_1000)
	bus.putInsn(0x8000_0000, opJAL<<26|(target>>2)&0x03ff_ffff)
	bus.putInsn(0x8000_0004, encodeI(opADDIU, 0, 9, 9)) // delay slot

	require.NoError(t, e.Step())
	assert.Equal(t, uint32(0x8000_0008), uint32(e.GPR[31].Lo))
	require.NoError(t, e.Step())
	assert.Equal(t, target, e.PC)
}

func TestUnalignedLoadWordLeftRight(t *testing.T) {
	e, bus := newTestEE()
	copy(bus.mem[0x1000:], []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77})
	e.setGPR64(4, 0x1001) // base: word-at-0x1001 is bytes 0x11,0x22,0x33,0x44 -> 0x44332211
	// Canonical unaligned-load idiom: LWL at base+3, LWR at base+0.
	bus.putInsn(0x8000_0000, encodeI(opLWL, 4, 9, 3))
	bus.putInsn(0x8000_0004, encodeI(opLWR, 4, 9, 0))

	require.NoError(t, e.Step())
	require.NoError(t, e.Step())
	assert.Equal(t, uint32(0x4433_2211), uint32(e.GPR[9].Lo))
}

func TestLoadQuadwordAndStoreQuadwordRoundTrip(t *testing.T) {
	e, bus := newTestEE()
	e.setGPR(8, Reg128{Lo: 0x1122334455667788, Hi: 0x99aabbccddeeff00})
	e.setGPR64(4, 0x2000)
	bus.putInsn(0x8000_0000, encodeI(opSQ, 4, 8, 0))
	bus.putInsn(0x8000_0004, encodeI(opLQ, 4, 9, 0))

	require.NoError(t, e.Step())
	require.NoError(t, e.Step())
	assert.Equal(t, e.GPR[8], e.GPR[9])
}

func TestSyscallRaisesExceptionAndSavesEPC(t *testing.T) {
	e, bus := newTestEE()
	var gotCode uint32
	e.Syscall = func(code uint32) { gotCode = code }
	e.setGPR64(3, 7)
	bus.putInsn(0x8000_0000, encodeR(fnSYSCALL, 0, 0, 0, 0))

	require.NoError(t, e.Step())
	assert.Equal(t, uint32(7), gotCode)
	assert.Equal(t, uint32(0x8000_0000), e.COP0.EPC)
	assert.NotZero(t, e.COP0.Status&statusEXL)
	assert.Equal(t, uint32(0xbfc0_0200), e.PC) // BEV set by Reset
}

func TestInterruptGatedByEXLAndIE(t *testing.T) {
	e, _ := newTestEE()
	e.COP0.Status = (e.COP0.Status | statusIE | statusEIE) &^ statusERL
	e.COP0.Cause |= 1 << 9
	e.COP0.Status |= 1 << 9
	assert.True(t, e.checkInterruptPending())

	e.COP0.Status |= statusEXL
	assert.False(t, e.checkInterruptPending())
}

func TestMultWritesHiLoAndRd(t *testing.T) {
	e, bus := newTestEE()
	e.setGPR64(4, 6)
	e.setGPR64(5, 7)
	bus.putInsn(0x8000_0000, encodeR(fnMULT, 4, 5, 9, 0))
	require.NoError(t, e.Step())
	assert.Equal(t, uint64(42), e.LO)
	assert.Equal(t, uint32(42), uint32(e.GPR[9].Lo))
}

func TestDivByZeroDoesNotPanic(t *testing.T) {
	e, bus := newTestEE()
	e.setGPR64(4, 10)
	e.setGPR64(5, 0)
	bus.putInsn(0x8000_0000, encodeR(fnDIV, 4, 5, 0, 0))
	require.NoError(t, e.Step())
}

func TestCop2QMFCAndQMTCRoundTrip(t *testing.T) {
	e, _ := newTestEE()
	e.VU0.SetVF(3, vu0.Vec4{X: 1, Y: 2, Z: 3, W: 4}, vu0.MaskAll)

	qmfc2 := uint32(opCOP2)<<26 | uint32(copQMF)<<21 | uint32(8)<<16 | uint32(3)<<11
	require.NoError(t, e.execute(qmfc2))

	qmtc2 := uint32(opCOP2)<<26 | uint32(copQMT)<<21 | uint32(8)<<16 | uint32(5)<<11
	require.NoError(t, e.execute(qmtc2))
	assert.Equal(t, vu0.Vec4{X: 1, Y: 2, Z: 3, W: 4}, e.VU0.VF(5))
}

func TestEretReturnsWithoutDelaySlot(t *testing.T) {
	e, _ := newTestEE()
	e.COP0.EPC = 0x8000_2000
	e.COP0.Status = (e.COP0.Status | statusEXL) &^ statusERL

	eret := uint32(opCOP0)<<26 | uint32(copCO)<<21 | uint32(fnERET)
	require.NoError(t, e.execute(eret))
	assert.Equal(t, uint32(0x8000_2000), e.PC)
	assert.Equal(t, uint32(0x8000_2004), e.npc)
	assert.Zero(t, e.COP0.Status&statusEXL)
}
