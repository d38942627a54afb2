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

// Multiply/divide and HI/LO transfer ops (spec.md §4.I). The EE's
// three-operand MULT/MULTU additionally write the low 32 bits to rd,
// on top of the classic HI:LO pair.

func (e *EE) opMULT(f field) error {
	product := int64(int32(e.GPR[f.rs].Lo)) * int64(int32(e.GPR[f.rt].Lo))
	lo32 := int32(product)
	hi32 := int32(product >> 32)
	e.LO = uint64(int64(lo32))
	e.HI = uint64(int64(hi32))
	if f.rd != 0 {
		e.setGPR32(int(f.rd), lo32)
	}
	return nil
}

func (e *EE) opMULTU(f field) error {
	product := uint64(uint32(e.GPR[f.rs].Lo)) * uint64(uint32(e.GPR[f.rt].Lo))
	lo32 := uint32(product)
	hi32 := uint32(product >> 32)
	e.LO = uint64(int64(int32(lo32)))
	e.HI = uint64(int64(int32(hi32)))
	if f.rd != 0 {
		e.setGPR32(int(f.rd), int32(lo32))
	}
	return nil
}

func (e *EE) opDIV(f field) error {
	rs := int32(e.GPR[f.rs].Lo)
	rt := int32(e.GPR[f.rt].Lo)
	var q, r int32
	switch {
	case rt == 0:
		if rs < 0 {
			q = 1
		} else {
			q = -1
		}
		r = rs
	case rs == -0x8000_0000 && rt == -1:
		q = rs
		r = 0
	default:
		q = rs / rt
		r = rs % rt
	}
	e.LO = uint64(int64(q))
	e.HI = uint64(int64(r))
	return nil
}

func (e *EE) opDIVU(f field) error {
	rs := uint32(e.GPR[f.rs].Lo)
	rt := uint32(e.GPR[f.rt].Lo)
	var q, r uint32
	if rt == 0 {
		q = 0xffff_ffff
		r = rs
	} else {
		q = rs / rt
		r = rs % rt
	}
	e.LO = uint64(int64(int32(q)))
	e.HI = uint64(int64(int32(r)))
	return nil
}

func (e *EE) opMFHI(f field) error {
	e.setGPR64(int(f.rd), e.HI)
	return nil
}

func (e *EE) opMTHI(f field) error {
	e.HI = e.GPR[f.rs].Lo
	return nil
}

func (e *EE) opMFLO(f field) error {
	e.setGPR64(int(f.rd), e.LO)
	return nil
}

func (e *EE) opMTLO(f field) error {
	e.LO = e.GPR[f.rs].Lo
	return nil
}
