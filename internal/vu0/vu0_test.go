package vu0

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMem struct {
	backing [64]byte
}

func (m *fakeMem) Read32(addr uint32) uint32 {
	return uint32(m.backing[addr]) | uint32(m.backing[addr+1])<<8 |
		uint32(m.backing[addr+2])<<16 | uint32(m.backing[addr+3])<<24
}

func (m *fakeMem) Write32(addr uint32, val uint32) {
	m.backing[addr] = byte(val)
	m.backing[addr+1] = byte(val >> 8)
	m.backing[addr+2] = byte(val >> 16)
	m.backing[addr+3] = byte(val >> 24)
}

func encode(destMask uint8, rd, rt, rs int) uint32 {
	return uint32(destMask&0xf)<<21 | uint32(rd&0x1f)<<6 | uint32(rt&0x1f)<<16 | uint32(rs&0x1f)<<11
}

func TestVF0StaysClampedAfterWrite(t *testing.T) {
	v := New(nil)
	v.SetVF(0, Vec4{9, 9, 9, 9}, MaskAll)
	assert.Equal(t, Vec4{0, 0, 0, 1.0}, v.VF(0))
}

func TestVI0AlwaysZero(t *testing.T) {
	v := New(nil)
	v.SetVI(0, 42)
	assert.Equal(t, uint16(0), v.VI(0))
}

func TestIADDWraps(t *testing.T) {
	v := New(nil)
	v.SetVI(1, 0xffff)
	v.SetVI(2, 2)
	v.IADD(encode(0, 3, 2, 1)) // rd=3, rt=2, rs=1
	assert.Equal(t, uint16(1), v.VI(3))
}

func TestSUBLaneWiseUnderMask(t *testing.T) {
	v := New(nil)
	v.SetVF(1, Vec4{10, 20, 30, 40}, MaskAll)
	v.SetVF(2, Vec4{1, 2, 3, 4}, MaskAll)
	v.SUB(encode(MaskX|MaskY, 3, 2, 1)) // rd=3 = vf1 - vf2, only X/Y lanes.
	got := v.VF(3)
	assert.Equal(t, float32(9), got.X)
	assert.Equal(t, float32(18), got.Y)
	assert.Equal(t, float32(0), got.Z)
	assert.Equal(t, float32(0), got.W)
}

func TestISWRStoresMaskedLane(t *testing.T) {
	mem := &fakeMem{}
	v := New(mem)
	v.SetVI(5, 2) // address = 2 << 4 = 32
	v.SetVI(6, 0x1234)
	v.ISWR(encode(MaskY, 0, 6, 5)) // rt=6 value, rs=5 address, Y lane.
	assert.Equal(t, uint32(0x1234), mem.Read32(36))
}

func TestSQIStoresAndPostIncrements(t *testing.T) {
	mem := &fakeMem{}
	v := New(mem)
	v.SetVI(7, 1) // address = 16
	v.SetVF(4, Vec4{1.5, 2.5, 3.5, 4.5}, MaskAll)
	v.SQI(encode(MaskAll, 4, 0, 7)) // rd=4 source, rs=7 address (post-inc).
	assert.Equal(t, math.Float32bits(1.5), mem.Read32(16))
	assert.Equal(t, math.Float32bits(2.5), mem.Read32(20))
	assert.Equal(t, math.Float32bits(3.5), mem.Read32(24))
	assert.Equal(t, math.Float32bits(4.5), mem.Read32(28))
	assert.Equal(t, uint16(2), v.VI(7))
}

func TestFBRSTResetBitClearsRegisterFile(t *testing.T) {
	v := New(nil)
	v.SetVF(3, Vec4{1, 2, 3, 4}, MaskAll)
	v.SetControl(CtrlFBRST, 1<<1)
	assert.Equal(t, Vec4{}, v.VF(3))
}

func TestVPUStatWritesAreIgnored(t *testing.T) {
	v := New(nil)
	v.SetControl(CtrlVPUStat, 0xffffffff)
	assert.Equal(t, uint32(0), v.GetControl(CtrlVPUStat))
}

func TestControlMirrorsIntegerRegisters(t *testing.T) {
	v := New(nil)
	v.SetControl(4, 99)
	assert.Equal(t, uint16(99), v.VI(4))
	assert.Equal(t, uint32(99), v.GetControl(4))
}
