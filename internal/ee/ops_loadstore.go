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

// Loads and stores (spec.md §4.I). effAddr computes the base+offset
// virtual address common to every one of these ops.
func (e *EE) effAddr(f field) uint32 {
	return uint32(int32(e.GPR[f.rs].Lo) + f.simm16())
}

func (e *EE) opLB(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 1)
	if err != nil {
		return err
	}
	e.setGPR32(int(f.rt), int32(int8(uint8(lo))))
	return nil
}

func (e *EE) opLBU(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 1)
	if err != nil {
		return err
	}
	e.setGPR64(int(f.rt), lo&0xff)
	return nil
}

func (e *EE) opLH(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 2)
	if err != nil {
		return err
	}
	e.setGPR32(int(f.rt), int32(int16(uint16(lo))))
	return nil
}

func (e *EE) opLHU(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 2)
	if err != nil {
		return err
	}
	e.setGPR64(int(f.rt), lo&0xffff)
	return nil
}

func (e *EE) opLW(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 4)
	if err != nil {
		return err
	}
	e.setGPR32(int(f.rt), int32(uint32(lo)))
	return nil
}

func (e *EE) opLWU(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 4)
	if err != nil {
		return err
	}
	e.setGPR64(int(f.rt), uint64(uint32(lo)))
	return nil
}

func (e *EE) opLD(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 8)
	if err != nil {
		return err
	}
	e.setGPR64(int(f.rt), lo)
	return nil
}

func (e *EE) opLQ(f field) error {
	addr := e.effAddr(f) &^ 0xf
	lo, hi, err := e.readMem(addr, 16)
	if err != nil {
		return err
	}
	e.setGPR(int(f.rt), Reg128{Lo: lo, Hi: hi})
	return nil
}

func (e *EE) opSB(f field) error {
	return e.writeMem(e.effAddr(f), 1, e.GPR[f.rt].Lo&0xff, 0)
}

func (e *EE) opSH(f field) error {
	return e.writeMem(e.effAddr(f), 2, e.GPR[f.rt].Lo&0xffff, 0)
}

func (e *EE) opSW(f field) error {
	return e.writeMem(e.effAddr(f), 4, e.GPR[f.rt].Lo&0xffff_ffff, 0)
}

func (e *EE) opSD(f field) error {
	return e.writeMem(e.effAddr(f), 8, e.GPR[f.rt].Lo, 0)
}

func (e *EE) opSQ(f field) error {
	addr := e.effAddr(f) &^ 0xf
	return e.writeMem(addr, 16, e.GPR[f.rt].Lo, e.GPR[f.rt].Hi)
}

func (e *EE) opLWC1(f field) error {
	lo, _, err := e.readMem(e.effAddr(f), 4)
	if err != nil {
		return err
	}
	e.FPR[f.rt] = uint32(lo)
	return nil
}

func (e *EE) opSWC1(f field) error {
	return e.writeMem(e.effAddr(f), 4, uint64(e.FPR[f.rt]), 0)
}

// --- Unaligned word/doubleword merges ---
//
// LWL/LWR (and their doubleword siblings LDL/LDR) read the aligned
// word/doubleword overlapping the unaligned address and merge it into
// the destination register around the existing bytes the other half
// of the pair didn't touch. SWL/SWR/SDL/SDR do the mirror-image
// read-modify-write into memory. The per-byte-offset mask/shift pairs
// are looked up by table rather than derived by a single formula,
// since the left/right variants are each other's bit-mirror and a
// shared formula is an easy place to transpose an exponent.
var (
	lwlMask  = [4]uint32{0x00ff_ffff, 0x0000_ffff, 0x0000_00ff, 0x0000_0000}
	lwlShift = [4]uint32{24, 16, 8, 0}
	lwrMask  = [4]uint32{0x0000_0000, 0xff00_0000, 0xffff_0000, 0xffff_ff00}
	lwrShift = [4]uint32{0, 8, 16, 24}

	swlMask  = [4]uint32{0xffff_ff00, 0xffff_0000, 0xff00_0000, 0x0000_0000}
	swlShift = [4]uint32{24, 16, 8, 0}
	swrMask  = [4]uint32{0x0000_0000, 0x0000_00ff, 0x0000_ffff, 0x00ff_ffff}
	swrShift = [4]uint32{0, 8, 16, 24}

	ldlMask  = [8]uint64{0x00ff_ffff_ffff_ffff, 0x0000_ffff_ffff_ffff, 0x0000_00ff_ffff_ffff, 0x0000_0000_ffff_ffff, 0x0000_0000_00ff_ffff, 0x0000_0000_0000_ffff, 0x0000_0000_0000_00ff, 0x0000_0000_0000_0000}
	ldlShift = [8]uint64{56, 48, 40, 32, 24, 16, 8, 0}
	ldrMask  = [8]uint64{0x0000_0000_0000_0000, 0xff00_0000_0000_0000, 0xffff_0000_0000_0000, 0xffff_ff00_0000_0000, 0xffff_ffff_0000_0000, 0xffff_ffff_ff00_0000, 0xffff_ffff_ffff_0000, 0xffff_ffff_ffff_ff00}
	ldrShift = [8]uint64{0, 8, 16, 24, 32, 40, 48, 56}

	sdlMask  = [8]uint64{0xffff_ffff_ffff_ff00, 0xffff_ffff_ffff_0000, 0xffff_ffff_ff00_0000, 0xffff_ffff_0000_0000, 0xffff_ff00_0000_0000, 0xffff_0000_0000_0000, 0xff00_0000_0000_0000, 0x0000_0000_0000_0000}
	sdlShift = [8]uint64{56, 48, 40, 32, 24, 16, 8, 0}
	sdrMask  = [8]uint64{0x0000_0000_0000_0000, 0x0000_0000_0000_00ff, 0x0000_0000_0000_ffff, 0x0000_0000_00ff_ffff, 0x0000_0000_ffff_ffff, 0x0000_00ff_ffff_ffff, 0x0000_ffff_ffff_ffff, 0x00ff_ffff_ffff_ffff}
	sdrShift = [8]uint64{0, 8, 16, 24, 32, 40, 48, 56}
)

func (e *EE) opLWL(f field) error {
	addr := e.effAddr(f)
	shift := addr & 3
	lo, _, err := e.readMem(addr&^3, 4)
	if err != nil {
		return err
	}
	mem := uint32(lo)
	old := uint32(e.GPR[f.rt].Lo)
	result := (old & lwlMask[shift]) | (mem << lwlShift[shift])
	e.setGPR32(int(f.rt), int32(result))
	return nil
}

func (e *EE) opLWR(f field) error {
	addr := e.effAddr(f)
	shift := addr & 3
	lo, _, err := e.readMem(addr&^3, 4)
	if err != nil {
		return err
	}
	mem := uint32(lo)
	old := uint32(e.GPR[f.rt].Lo)
	result := (old & lwrMask[shift]) | (mem >> lwrShift[shift])
	e.setGPR32(int(f.rt), int32(result))
	return nil
}

func (e *EE) opLDL(f field) error {
	addr := e.effAddr(f)
	shift := addr & 7
	lo, _, err := e.readMem(addr&^7, 8)
	if err != nil {
		return err
	}
	old := e.GPR[f.rt].Lo
	result := (old & ldlMask[shift]) | (lo << ldlShift[shift])
	e.setGPR64(int(f.rt), result)
	return nil
}

func (e *EE) opLDR(f field) error {
	addr := e.effAddr(f)
	shift := addr & 7
	lo, _, err := e.readMem(addr&^7, 8)
	if err != nil {
		return err
	}
	old := e.GPR[f.rt].Lo
	result := (old & ldrMask[shift]) | (lo >> ldrShift[shift])
	e.setGPR64(int(f.rt), result)
	return nil
}

func (e *EE) opSWL(f field) error {
	addr := e.effAddr(f)
	shift := addr & 3
	aligned := addr &^ 3
	lo, _, err := e.readMem(aligned, 4)
	if err != nil {
		return err
	}
	mem := uint32(lo)
	rt := uint32(e.GPR[f.rt].Lo)
	result := (mem & swlMask[shift]) | (rt >> swlShift[shift])
	return e.writeMem(aligned, 4, uint64(result), 0)
}

func (e *EE) opSWR(f field) error {
	addr := e.effAddr(f)
	shift := addr & 3
	aligned := addr &^ 3
	lo, _, err := e.readMem(aligned, 4)
	if err != nil {
		return err
	}
	mem := uint32(lo)
	rt := uint32(e.GPR[f.rt].Lo)
	result := (mem & swrMask[shift]) | (rt << swrShift[shift])
	return e.writeMem(aligned, 4, uint64(result), 0)
}

func (e *EE) opSDL(f field) error {
	addr := e.effAddr(f)
	shift := addr & 7
	aligned := addr &^ 7
	lo, _, err := e.readMem(aligned, 8)
	if err != nil {
		return err
	}
	rt := e.GPR[f.rt].Lo
	result := (lo & sdlMask[shift]) | (rt >> sdlShift[shift])
	return e.writeMem(aligned, 8, result, 0)
}

func (e *EE) opSDR(f field) error {
	addr := e.effAddr(f)
	shift := addr & 7
	aligned := addr &^ 7
	lo, _, err := e.readMem(aligned, 8)
	if err != nil {
		return err
	}
	rt := e.GPR[f.rt].Lo
	result := (lo & sdrMask[shift]) | (rt << sdrShift[shift])
	return e.writeMem(aligned, 8, result, 0)
}
