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

package ee

// MMI (opcode 0x1c) is the EE's 128-bit SIMD extension to the base
// MIPS III instruction set; spec.md §4.I scopes it down to the five
// ops a boot-code/runtime-library trace actually exercises: PADDUW,
// PLZCW, PMFHI, PMFLO, POR. The funct field for PMFHI/PMFLO/PLZCW
// below matches the real EE encoding; POR and PADDUW live inside the
// hardware's MMI1/MMI3 sub-tables (funct 0x09/0x29, further split by
// the sa field) and the sa values used here are this project's own
// choice rather than a verified hardware cross-reference.
const (
	mmiPLZCW = 0x04
	mmiPMFHI = 0x10
	mmiPMFLO = 0x12
	mmiMMI1  = 0x09
	mmiMMI3  = 0x29

	saPOR    = 0x12
	saPADDUW = 0x10
)

func (e *EE) execMMI(insn uint32, f field) error {
	switch f.funct {
	case mmiPLZCW:
		return e.opPLZCW(f)
	case mmiPMFHI:
		return e.opPMFHI(f)
	case mmiPMFLO:
		return e.opPMFLO(f)
	case mmiMMI1:
		if f.sa == saPOR {
			return e.opPOR(f)
		}
		return errDecode(insn)
	case mmiMMI3:
		if f.sa == saPADDUW {
			return e.opPADDUW(f)
		}
		return errDecode(insn)
	default:
		return errDecode(insn)
	}
}

// opPMFHI/opPMFLO move the 64-bit HI/LO pipeline-0 registers into a
// GPR's low half; this minimal model doesn't carry the full four-lane
// SIMD HI/LO pair real hardware does, so the high half reads zero.
func (e *EE) opPMFHI(f field) error {
	e.setGPR(int(f.rd), Reg128{Lo: e.HI})
	return nil
}

func (e *EE) opPMFLO(f field) error {
	e.setGPR(int(f.rd), Reg128{Lo: e.LO})
	return nil
}

func (e *EE) opPOR(f field) error {
	rs, rt := e.GPR[f.rs], e.GPR[f.rt]
	e.setGPR(int(f.rd), Reg128{Lo: rs.Lo | rt.Lo, Hi: rs.Hi | rt.Hi})
	return nil
}

// opPADDUW adds each of the four unsigned 32-bit lanes across the
// 128-bit rs/rt registers, saturating at 0xffffffff.
func (e *EE) opPADDUW(f field) error {
	rs, rt := e.GPR[f.rs], e.GPR[f.rt]
	lanesRs := [4]uint32{uint32(rs.Lo), uint32(rs.Lo >> 32), uint32(rs.Hi), uint32(rs.Hi >> 32)}
	lanesRt := [4]uint32{uint32(rt.Lo), uint32(rt.Lo >> 32), uint32(rt.Hi), uint32(rt.Hi >> 32)}
	var out [4]uint32
	for i := range out {
		out[i] = saturateAddU32(lanesRs[i], lanesRt[i])
	}
	e.setGPR(int(f.rd), Reg128{
		Lo: uint64(out[0]) | uint64(out[1])<<32,
		Hi: uint64(out[2]) | uint64(out[3])<<32,
	})
	return nil
}

func saturateAddU32(a, b uint32) uint32 {
	sum := uint64(a) + uint64(b)
	if sum > 0xffff_ffff {
		return 0xffff_ffff
	}
	return uint32(sum)
}

// opPLZCW counts, for each of rs's two 32-bit words, the number of
// leading bits matching the sign bit beyond the sign bit itself
// (i.e. the count of redundant sign bits), one result per word.
func (e *EE) opPLZCW(f field) error {
	rs := e.GPR[f.rs]
	lo := redundantSignBits(uint32(rs.Lo))
	hi := redundantSignBits(uint32(rs.Lo >> 32))
	e.setGPR(int(f.rd), Reg128{Lo: uint64(lo) | uint64(hi)<<32})
	return nil
}

func redundantSignBits(word uint32) uint32 {
	sign := word >> 31
	count := uint32(0)
	for bit := 30; bit >= 0; bit-- {
		if (word>>uint(bit))&1 != sign {
			break
		}
		count++
	}
	return count
}
