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

// Arithmetic/logical immediate and register-register ops (spec.md §4.I).

func (e *EE) opADDIU(f field) error {
	e.setGPR32(int(f.rt), int32(e.GPR[f.rs].Lo)+f.simm16())
	return nil
}

func (e *EE) opSLTI(f field) error {
	v := uint64(0)
	if int64(int32(e.GPR[f.rs].Lo)) < int64(f.simm16()) {
		v = 1
	}
	e.setGPR64(int(f.rt), v)
	return nil
}

func (e *EE) opSLTIU(f field) error {
	v := uint64(0)
	if e.GPR[f.rs].Lo < uint64(uint32(f.simm16())) {
		v = 1
	}
	e.setGPR64(int(f.rt), v)
	return nil
}

func (e *EE) opANDI(f field) error {
	e.setGPR64(int(f.rt), e.GPR[f.rs].Lo&uint64(f.imm16))
	return nil
}

func (e *EE) opORI(f field) error {
	e.setGPR64(int(f.rt), e.GPR[f.rs].Lo|uint64(f.imm16))
	return nil
}

func (e *EE) opXORI(f field) error {
	e.setGPR64(int(f.rt), e.GPR[f.rs].Lo^uint64(f.imm16))
	return nil
}

func (e *EE) opLUI(f field) error {
	e.setGPR32(int(f.rt), int32(f.imm16)<<16)
	return nil
}

func (e *EE) opDADDIU(f field) error {
	e.setGPR64(int(f.rt), e.GPR[f.rs].Lo+uint64(f.simm16()))
	return nil
}

func (e *EE) opADDU(f field) error {
	e.setGPR32(int(f.rd), int32(e.GPR[f.rs].Lo)+int32(e.GPR[f.rt].Lo))
	return nil
}

func (e *EE) opSUBU(f field) error {
	e.setGPR32(int(f.rd), int32(e.GPR[f.rs].Lo)-int32(e.GPR[f.rt].Lo))
	return nil
}

func (e *EE) opAND(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rs].Lo&e.GPR[f.rt].Lo)
	return nil
}

func (e *EE) opOR(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rs].Lo|e.GPR[f.rt].Lo)
	return nil
}

func (e *EE) opXOR(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rs].Lo^e.GPR[f.rt].Lo)
	return nil
}

func (e *EE) opNOR(f field) error {
	e.setGPR64(int(f.rd), ^(e.GPR[f.rs].Lo | e.GPR[f.rt].Lo))
	return nil
}

func (e *EE) opSLT(f field) error {
	v := uint64(0)
	if int64(e.GPR[f.rs].Lo) < int64(e.GPR[f.rt].Lo) {
		v = 1
	}
	e.setGPR64(int(f.rd), v)
	return nil
}

func (e *EE) opSLTU(f field) error {
	v := uint64(0)
	if e.GPR[f.rs].Lo < e.GPR[f.rt].Lo {
		v = 1
	}
	e.setGPR64(int(f.rd), v)
	return nil
}

func (e *EE) opDADDU(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rs].Lo+e.GPR[f.rt].Lo)
	return nil
}

func (e *EE) opDSUBU(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rs].Lo-e.GPR[f.rt].Lo)
	return nil
}

func (e *EE) opMOVZ(f field) error {
	if e.GPR[f.rt].Lo == 0 {
		e.setGPR(int(f.rd), e.GPR[f.rs])
	}
	return nil
}

func (e *EE) opMOVN(f field) error {
	if e.GPR[f.rt].Lo != 0 {
		e.setGPR(int(f.rd), e.GPR[f.rs])
	}
	return nil
}

// --- Shifts ---

func (e *EE) opSLL(f field) error {
	e.setGPR32(int(f.rd), int32(e.GPR[f.rt].Lo)<<f.sa)
	return nil
}

func (e *EE) opSRL(f field) error {
	e.setGPR32(int(f.rd), int32(uint32(e.GPR[f.rt].Lo)>>f.sa))
	return nil
}

func (e *EE) opSRA(f field) error {
	e.setGPR32(int(f.rd), int32(e.GPR[f.rt].Lo)>>f.sa)
	return nil
}

func (e *EE) opSLLV(f field) error {
	sh := e.GPR[f.rs].Lo & 0x1f
	e.setGPR32(int(f.rd), int32(e.GPR[f.rt].Lo)<<sh)
	return nil
}

func (e *EE) opSRLV(f field) error {
	sh := e.GPR[f.rs].Lo & 0x1f
	e.setGPR32(int(f.rd), int32(uint32(e.GPR[f.rt].Lo)>>sh))
	return nil
}

func (e *EE) opSRAV(f field) error {
	sh := e.GPR[f.rs].Lo & 0x1f
	e.setGPR32(int(f.rd), int32(e.GPR[f.rt].Lo)>>sh)
	return nil
}

func (e *EE) opDSLLV(f field) error {
	sh := e.GPR[f.rs].Lo & 0x3f
	e.setGPR64(int(f.rd), e.GPR[f.rt].Lo<<sh)
	return nil
}

func (e *EE) opDSRLV(f field) error {
	sh := e.GPR[f.rs].Lo & 0x3f
	e.setGPR64(int(f.rd), e.GPR[f.rt].Lo>>sh)
	return nil
}

func (e *EE) opDSRAV(f field) error {
	sh := e.GPR[f.rs].Lo & 0x3f
	e.setGPR64(int(f.rd), uint64(int64(e.GPR[f.rt].Lo)>>sh))
	return nil
}

func (e *EE) opDSLL(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rt].Lo<<f.sa)
	return nil
}

func (e *EE) opDSRL(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rt].Lo>>f.sa)
	return nil
}

func (e *EE) opDSRA(f field) error {
	e.setGPR64(int(f.rd), uint64(int64(e.GPR[f.rt].Lo)>>f.sa))
	return nil
}

func (e *EE) opDSLL32(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rt].Lo<<(f.sa+32))
	return nil
}

func (e *EE) opDSRL32(f field) error {
	e.setGPR64(int(f.rd), e.GPR[f.rt].Lo>>(f.sa+32))
	return nil
}

func (e *EE) opDSRA32(f field) error {
	e.setGPR64(int(f.rd), uint64(int64(e.GPR[f.rt].Lo)>>(f.sa+32)))
	return nil
}
