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

import (
	"math"

	"github.com/ps2core/emu/internal/vu0"
)

// execCop0 dispatches MFC0/MTC0 and the "CO" format system-control
// ops: TLBWI, ERET, EI, DI (spec.md §3/§4.I).
func (e *EE) execCop0(insn uint32, f field) error {
	switch f.rs {
	case copMF:
		e.setGPR32(int(f.rt), int32(e.cop0Read(f.rd)))
	case copMT:
		e.cop0Write(f.rd, uint32(e.GPR[f.rt].Lo))
	case copCO:
		switch f.funct {
		case fnTLBWI:
			e.COP0.TLBWriteIndexed(TLBEntry{Valid: true})
		case fnERET:
			e.eretReturn()
		case fnEI:
			if e.COP0.IsEDIEnabled() || e.COP0.IsKernelMode() {
				e.COP0.Status |= statusEIE
			}
		case fnDI:
			if e.COP0.IsEDIEnabled() || e.COP0.IsKernelMode() {
				e.COP0.Status &^= statusEIE
			}
		default:
			return errDecode(insn)
		}
	default:
		return errDecode(insn)
	}
	return nil
}

// cop0Read/cop0Write address the handful of COP0 registers this
// mirror models by their real MIPS register numbers.
func (e *EE) cop0Read(rd uint32) uint32 {
	switch rd {
	case 0:
		return e.COP0.Index
	case 8:
		return e.COP0.BadVAddr
	case 9:
		return e.COP0.Count
	case 11:
		return e.COP0.Compare
	case 12:
		return e.COP0.Status
	case 13:
		return e.COP0.Cause
	case 14:
		return e.COP0.EPC
	case 30:
		return e.COP0.ErrorEPC
	default:
		return 0
	}
}

func (e *EE) cop0Write(rd uint32, v uint32) {
	switch rd {
	case 0:
		e.COP0.Index = v
	case 9:
		e.COP0.Count = v
	case 11:
		e.COP0.Compare = v
	case 12:
		e.COP0.Status = v
	case 13:
		e.COP0.Cause = v
	case 14:
		e.COP0.EPC = v
	case 30:
		e.COP0.ErrorEPC = v
	}
}

// eretReturn implements ERET: it has no delay slot, so it overwrites
// PC/npc directly rather than going through the branchNext latch.
func (e *EE) eretReturn() {
	var target uint32
	if e.COP0.IsErrorLevel() {
		target = e.COP0.ErrorEPC
		e.COP0.Status &^= statusERL
	} else {
		target = e.COP0.EPC
		e.COP0.Status &^= statusEXL
	}
	e.PC = target
	e.npc = target + 4
	if e.FastBootHook != nil {
		e.FastBootHook(target)
	}
}

func (e *EE) opMFSA(f field) error {
	e.setGPR32(int(f.rd), int32(e.SA))
	return nil
}

func (e *EE) opMTSA(f field) error {
	e.SA = uint32(e.GPR[f.rs].Lo)
	return nil
}

// execCop1 is the minimal FPU raw-exchange surface: MFC1/MTC1/CFC1/
// CTC1 move 32-bit patterns between a GPR and an FPR with no float
// arithmetic modeled (spec.md §4.I "Other").
func (e *EE) execCop1(insn uint32, f field) error {
	switch f.rs {
	case copMF, copCF:
		e.setGPR32(int(f.rt), int32(e.FPR[f.rd]))
	case copMT, copCT:
		e.FPR[f.rd] = uint32(e.GPR[f.rt].Lo)
	default:
		return errDecode(insn)
	}
	return nil
}

// execCop2 routes COP2 transfers (MFC2/MTC2/CFC2/CTC2/QMFC2/QMTC2)
// and the VU0 macro opcodes (addressed through the "CO" group, the
// same convention COP0 uses for TLBWI/ERET) into the vu0.VU0 register
// file (spec.md §4.F).
func (e *EE) execCop2(insn uint32, f field) error {
	switch f.rs {
	case copMF:
		lane := e.VU0.VF(int(f.rd))
		e.setGPR32(int(f.rt), int32(math.Float32bits(lane.X)))
	case copMT:
		bits := uint32(e.GPR[f.rt].Lo)
		e.VU0.SetVF(int(f.rd), vu0.Vec4{X: math.Float32frombits(bits)}, vu0.MaskX)
	case copCF:
		e.setGPR32(int(f.rt), int32(e.VU0.GetControl(int(f.rd))))
	case copCT:
		e.VU0.SetControl(int(f.rd), uint32(e.GPR[f.rt].Lo))
	case copQMF:
		v := e.VU0.VF(int(f.rd))
		lo := uint64(math.Float32bits(v.X)) | uint64(math.Float32bits(v.Y))<<32
		hi := uint64(math.Float32bits(v.Z)) | uint64(math.Float32bits(v.W))<<32
		e.setGPR(int(f.rt), Reg128{Lo: lo, Hi: hi})
	case copQMT:
		reg := e.GPR[f.rt]
		v := vu0.Vec4{
			X: math.Float32frombits(uint32(reg.Lo)),
			Y: math.Float32frombits(uint32(reg.Lo >> 32)),
			Z: math.Float32frombits(uint32(reg.Hi)),
			W: math.Float32frombits(uint32(reg.Hi >> 32)),
		}
		e.VU0.SetVF(int(f.rd), v, vu0.MaskAll)
	case 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f: // CO group; the low four rs bits are VU0's dest mask.
		switch f.funct {
		case macroFuncIADD:
			e.VU0.IADD(insn)
		case macroFuncISWR:
			e.VU0.ISWR(insn)
		case macroFuncSQI:
			e.VU0.SQI(insn)
		case macroFuncSUB:
			e.VU0.SUB(insn)
		default:
			return errDecode(insn)
		}
	default:
		return errDecode(insn)
	}
	return nil
}
