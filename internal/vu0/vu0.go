/*
 * Copyright 2026, PS2 Core Emulation Substrate Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package vu0 implements the VU0 macro-mode register file and the subset
// of COP2 vector operations the EE interpreter reaches through QMFC2/
// QMTC2 and the macro opcodes (spec.md §4.F).
package vu0

import "math"

// Vec4 is a 128-bit vector register's four 32-bit-float lanes.
type Vec4 struct {
	X, Y, Z, W float32
}

// Dest-mask lane bits, MSB-to-LSB X/Y/Z/W, matching the VU ".xyzw"
// destination-field convention.
const (
	MaskX uint8 = 1 << 3
	MaskY uint8 = 1 << 2
	MaskZ uint8 = 1 << 1
	MaskW uint8 = 1 << 0
	MaskAll = MaskX | MaskY | MaskZ | MaskW
)

func merge(dst, src Vec4, mask uint8) Vec4 {
	out := dst
	if mask&MaskX != 0 {
		out.X = src.X
	}
	if mask&MaskY != 0 {
		out.Y = src.Y
	}
	if mask&MaskZ != 0 {
		out.Z = src.Z
	}
	if mask&MaskW != 0 {
		out.W = src.W
	}
	return out
}

// Memory is the VU0 local data-memory port macro-mode load/store
// instructions address into; wired by the owning machine to the
// VU0Data backing array (spec.md §3 "Scratchpad"-style local store, not
// the system bus).
type Memory interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, val uint32)
}

// VU0 holds the macro-mode register file.
type VU0 struct {
	vf [32]Vec4
	vi [16]uint16

	acc Vec4
	q   float32

	cmsar0  uint16
	fbrst   uint32
	vpuStat uint32

	Mem Memory
}

// New returns a VU0 with vf[0] and vi[0] in their clamped reset state.
func New(mem Memory) *VU0 {
	v := &VU0{Mem: mem}
	v.vf[0] = Vec4{0, 0, 0, 1.0}
	return v
}

// VF returns vector register i.
func (v *VU0) VF(i int) Vec4 { return v.vf[i] }

// SetVF writes vector register i under mask, then re-clamps vf[0] if i==0.
func (v *VU0) SetVF(i int, val Vec4, mask uint8) {
	v.vf[i] = merge(v.vf[i], val, mask)
	if i == 0 {
		v.vf[0] = Vec4{0, 0, 0, 1.0}
	}
}

// VI returns integer register i.
func (v *VU0) VI(i int) uint16 { return v.vi[i] }

// SetVI writes integer register i; vi[0] always reads back as zero.
func (v *VU0) SetVI(i int, val uint16) {
	v.vi[i] = val
	v.vi[0] = 0
}

// Q returns the scalar register.
func (v *VU0) Q() float32 { return v.q }

// SetQ sets the scalar register.
func (v *VU0) SetQ(val float32) { v.q = val }

// ACC returns the vector accumulator.
func (v *VU0) ACC() Vec4 { return v.acc }

// decode extracts the common macro-op fields per spec.md §4.F: dest mask
// in bits [21:24], Rd in [6:10], Rt in [16:20], Rs in [11:15].
func decode(insn uint32) (destMask uint8, rd, rt, rs int) {
	destMask = uint8((insn >> 21) & 0xf)
	rd = int((insn >> 6) & 0x1f)
	rt = int((insn >> 16) & 0x1f)
	rs = int((insn >> 11) & 0x1f)
	return
}

// IADD: vi[rd] = vi[rs] + vi[rt], 16-bit wraparound, no saturation.
func (v *VU0) IADD(insn uint32) {
	_, rd, rt, rs := decode(insn)
	v.SetVI(rd, v.vi[rs]+v.vi[rt])
}

// ISWR: integer store with dest mask. address = vi[rs] << 4; the 16-bit
// value of vi[rt], zero-extended, is written into each masked 32-bit
// lane of the addressed quadword.
func (v *VU0) ISWR(insn uint32) {
	mask, _, rt, rs := decode(insn)
	addr := uint32(v.vi[rs]) << 4
	val := uint32(v.vi[rt])
	for _, lane := range []uint8{MaskX, MaskY, MaskZ, MaskW} {
		v.storeMasked(addr, val, mask&lane)
	}
}

// SQI: quadword store with dest mask. vf[rd]'s masked lanes are stored
// at address vi[rs] << 4, then vi[rs] is post-incremented by 1.
func (v *VU0) SQI(insn uint32) {
	mask, rd, _, rs := decode(insn)
	addr := uint32(v.vi[rs]) << 4
	src := v.vf[rd]
	v.storeMasked(addr, math.Float32bits(src.X), mask&MaskX)
	v.storeMasked(addr, math.Float32bits(src.Y), mask&MaskY)
	v.storeMasked(addr, math.Float32bits(src.Z), mask&MaskZ)
	v.storeMasked(addr, math.Float32bits(src.W), mask&MaskW)
	v.SetVI(rs, v.vi[rs]+1)
}

// storeMasked writes val into whichever single lane mask selects,
// relative to quadword base addr. Lane ordering matches the MaskX..MaskW
// bit positions: X at +0, Y at +4, Z at +8, W at +12.
func (v *VU0) storeMasked(addr, val uint32, mask uint8) {
	if v.Mem == nil {
		return
	}
	switch mask {
	case MaskX:
		v.Mem.Write32(addr+0, val)
	case MaskY:
		v.Mem.Write32(addr+4, val)
	case MaskZ:
		v.Mem.Write32(addr+8, val)
	case MaskW:
		v.Mem.Write32(addr+12, val)
	}
}

// SUB: vf[rd] = vf[rs] - vf[rt], lane-wise, under dest mask.
func (v *VU0) SUB(insn uint32) {
	mask, rd, rt, rs := decode(insn)
	a, b := v.vf[rs], v.vf[rt]
	result := Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
	v.SetVF(rd, result, mask)
}

// Control-register indices (spec.md §4.F).
const (
	CtrlCMSAR0  = 27
	CtrlFBRST   = 28
	CtrlVPUStat = 29
)

// GetControl reads a VU0 control register. Indices 0..15 mirror the
// integer register file directly.
func (v *VU0) GetControl(idx int) uint32 {
	switch {
	case idx >= 0 && idx <= 15:
		return uint32(v.vi[idx])
	case idx == CtrlCMSAR0:
		return uint32(v.cmsar0)
	case idx == CtrlFBRST:
		return v.fbrst
	case idx == CtrlVPUStat:
		return v.vpuStat
	default:
		return 0
	}
}

// SetControl writes a VU0 control register. VPU_STAT is read-only and
// silently ignores writes. FBRST bit 1 resets VU0 (clearing the register
// file); every other FBRST bit, including bit 0 (force-break) and bits
// 8/9 (VU1), is stored and has no further effect.
func (v *VU0) SetControl(idx int, val uint32) {
	switch {
	case idx >= 0 && idx <= 15:
		v.SetVI(idx, uint16(val))
	case idx == CtrlCMSAR0:
		v.cmsar0 = uint16(val)
	case idx == CtrlFBRST:
		v.fbrst = val
		if val&(1<<1) != 0 {
			v.reset()
		}
	case idx == CtrlVPUStat:
		// read-only.
	}
}

func (v *VU0) reset() {
	v.vf = [32]Vec4{}
	v.vf[0] = Vec4{0, 0, 0, 1.0}
	v.vi = [16]uint16{}
	v.acc = Vec4{}
	v.q = 0
	v.cmsar0 = 0
}
