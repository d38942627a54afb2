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

// Branches, jumps, and their "likely" variants (spec.md §4.I).
//
// At the point these ops execute, e.PC already holds the address of the
// delay-slot instruction (the Step loop advances PC/npc before decode)
// and e.npc holds the address that would follow it under normal
// fall-through. A taken branch overrides npc via branchNext so the
// delay slot still executes, then control transfers to the target. A
// not-taken "likely" branch instead skips the delay slot outright by
// advancing PC itself past it.

func (e *EE) takeBranch(offset int32) {
	e.branching = true
	e.branchNext = uint32(int32(e.PC) + offset*4)
}

func (e *EE) jumpTo(target uint32) {
	e.branching = true
	e.branchNext = target
}

func (e *EE) skipDelaySlot() {
	e.PC = e.cpc + 8
	e.npc = e.cpc + 12
}

func (e *EE) opBEQ(f field) error {
	if e.GPR[f.rs].Lo == e.GPR[f.rt].Lo {
		e.takeBranch(f.simm16())
	}
	return nil
}

func (e *EE) opBNE(f field) error {
	if e.GPR[f.rs].Lo != e.GPR[f.rt].Lo {
		e.takeBranch(f.simm16())
	}
	return nil
}

func (e *EE) opBLEZ(f field) error {
	if int64(e.GPR[f.rs].Lo) <= 0 {
		e.takeBranch(f.simm16())
	}
	return nil
}

func (e *EE) opBGTZ(f field) error {
	if int64(e.GPR[f.rs].Lo) > 0 {
		e.takeBranch(f.simm16())
	}
	return nil
}

func (e *EE) opBLTZ(f field) error {
	if int64(e.GPR[f.rs].Lo) < 0 {
		e.takeBranch(f.simm16())
	}
	return nil
}

func (e *EE) opBGEZ(f field) error {
	if int64(e.GPR[f.rs].Lo) >= 0 {
		e.takeBranch(f.simm16())
	}
	return nil
}

func (e *EE) opBEQL(f field) error {
	if e.GPR[f.rs].Lo == e.GPR[f.rt].Lo {
		e.takeBranch(f.simm16())
	} else {
		e.skipDelaySlot()
	}
	return nil
}

func (e *EE) opBNEL(f field) error {
	if e.GPR[f.rs].Lo != e.GPR[f.rt].Lo {
		e.takeBranch(f.simm16())
	} else {
		e.skipDelaySlot()
	}
	return nil
}

func (e *EE) opBLEZL(f field) error {
	if int64(e.GPR[f.rs].Lo) <= 0 {
		e.takeBranch(f.simm16())
	} else {
		e.skipDelaySlot()
	}
	return nil
}

func (e *EE) opBGTZL(f field) error {
	if int64(e.GPR[f.rs].Lo) > 0 {
		e.takeBranch(f.simm16())
	} else {
		e.skipDelaySlot()
	}
	return nil
}

func (e *EE) opBLTZL(f field) error {
	if int64(e.GPR[f.rs].Lo) < 0 {
		e.takeBranch(f.simm16())
	} else {
		e.skipDelaySlot()
	}
	return nil
}

func (e *EE) opBGEZL(f field) error {
	if int64(e.GPR[f.rs].Lo) >= 0 {
		e.takeBranch(f.simm16())
	} else {
		e.skipDelaySlot()
	}
	return nil
}

func (e *EE) opJ(f field) error {
	e.jumpTo((e.PC & 0xf000_0000) | (f.index << 2))
	return nil
}

func (e *EE) opJAL(f field) error {
	e.setGPR64(31, uint64(e.npc))
	e.jumpTo((e.PC & 0xf000_0000) | (f.index << 2))
	return nil
}

func (e *EE) opJR(f field) error {
	e.jumpTo(uint32(e.GPR[f.rs].Lo))
	return nil
}

func (e *EE) opJALR(f field) error {
	link := e.npc
	e.jumpTo(uint32(e.GPR[f.rs].Lo))
	e.setGPR64(int(f.rd), uint64(link))
	return nil
}
