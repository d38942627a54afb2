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

// Package ee is the Emotion Engine interpreter: fetch, decode, execute,
// delay-slot bookkeeping, the COP0 mirror, and exception entry
// (spec.md §4.I).
package ee

import (
	"fmt"

	"github.com/ps2core/emu/internal/ps2err"
	"github.com/ps2core/emu/internal/vu0"
)

// Reg128 is a general-purpose register's 128-bit value split into a
// 64-bit lo and 64-bit hi half, per spec.md §3.
type Reg128 struct {
	Lo, Hi uint64
}

// Bus is the system bus port the EE fetches instructions and performs
// loads/stores through, for any address that does not land in the
// scratchpad.
type Bus interface {
	Read(width int, phys uint32) (lo, hi uint64, err error)
	Write(width int, phys uint32, lo, hi uint64) error
}

// Scratchpad is the 16 KiB process-local buffer reachable only through
// the kernel-scratchpad virtual window (spec.md §3 / §4.I).
type Scratchpad interface {
	Read(buf []byte, offset uint32, width int) (lo, hi uint64, err error)
	Write(buf []byte, offset uint32, width int, lo, hi uint64) error
	Bytes() []byte
}

// delaySlot is the two-element boolean queue from spec.md §3: index 0 is
// "was in slot" (the instruction about to execute), index 1 is "is in
// slot" (the instruction after it).
type delaySlot [2]bool

func (d *delaySlot) advance() {
	d[0] = d[1]
	d[1] = false
}

// EE is the Emotion Engine's architectural state.
type EE struct {
	GPR [32]Reg128
	PC  uint32
	cpc uint32 // address of the instruction currently executing.
	npc uint32

	HI, LO   uint64
	HI1, LO1 uint64 // upper-pipeline ("Mult1") halves.
	SA       uint32

	FPR [32]uint32 // COP1 raw 32-bit exchange registers (spec.md §4.I COP1 surface).

	COP0 COP0

	dslot      delaySlot
	branchNext uint32 // target latched by a taken branch/jump, applied to npc on the next step.
	branching  bool

	Bus        Bus
	Scratchpad Scratchpad
	VU0        *vu0.VU0

	// Syscall, when set, is invoked on a SYSCALL instruction with the low
	// byte of $v1, before the syscall exception is taken (spec.md §4.I
	// "Other").
	Syscall func(code uint32)

	// FastBootHook is invoked when ERET returns to a known BIOS
	// fast-boot address; out of scope to implement, carried as a host
	// callback per spec.md §4.I.
	FastBootHook func(pc uint32)
}

// ResetPC is the EE's reset vector (spec.md §4.I).
const ResetPC uint32 = 0xbfc0_0000

// Reset places the EE at its reset vector with COP0 in its default
// state; it does not clear GPRs or memory, matching spec.md §4.I's
// "PRAM/scratchpad zeroed" being the memory owner's responsibility, not
// the CPU's.
func (e *EE) Reset() {
	e.PC = ResetPC
	e.npc = ResetPC + 4
	e.cpc = ResetPC
	e.dslot = delaySlot{}
	e.COP0 = COP0{}
	e.COP0.Status = statusBEV | statusERL
}

// setGPR writes a GPR, clamping register 0 back to zero per spec.md §3.
func (e *EE) setGPR(i int, v Reg128) {
	e.GPR[i] = v
	e.GPR[0] = Reg128{}
}

func (e *EE) setGPR32(i int, v int32) {
	e.setGPR(i, signExtend32(v))
}

func (e *EE) setGPR64(i int, v uint64) {
	e.setGPR(i, Reg128{Lo: v})
}

func signExtend32(v int32) Reg128 {
	if v < 0 {
		return Reg128{Lo: uint64(uint32(v)) | 0xffff_ffff_0000_0000}
	}
	return Reg128{Lo: uint64(uint32(v))}
}

// Step executes exactly one instruction (spec.md §4.I "Step").
func (e *EE) Step() error {
	e.cpc = e.PC
	e.dslot.advance()

	e.COP0.Count++

	if e.checkInterruptPending() {
		e.raiseInterrupt()
		return nil
	}

	insn, err := e.fetch(e.PC)
	if err != nil {
		return err
	}

	e.PC = e.npc
	e.npc += 4
	e.branching = false

	if err := e.execute(insn); err != nil {
		return err
	}

	if e.branching {
		e.npc = e.branchNext
		e.dslot[1] = true
	}
	return nil
}

// fetch reads one 32-bit instruction word at a virtual address.
func (e *EE) fetch(vaddr uint32) (uint32, error) {
	lo, _, err := e.readMem(vaddr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(lo), nil
}

// translateTarget distinguishes a scratchpad access from a normal
// physical-bus access, per spec.md §4.I "Address translation".
type translateTarget int

const (
	targetPhysical translateTarget = iota
	targetScratchpad
)

const scratchpadVBase = 0x7000_0000 // kernel SPRAM window; offset masked to 0x3FFF.

// translate converts a virtual address to a physical address or a
// scratchpad offset.
func (e *EE) translate(vaddr uint32) (translateTarget, uint32) {
	top := vaddr >> 28
	switch top {
	case 0x8, 0x9, 0xa, 0xb:
		return targetPhysical, vaddr & 0x1fff_ffff
	default:
		if vaddr&0xffff_c000 == scratchpadVBase {
			return targetScratchpad, vaddr & 0x3fff
		}
		return targetPhysical, vaddr & 0x1fff_ffff
	}
}

func (e *EE) readMem(vaddr uint32, width int) (lo, hi uint64, err error) {
	target, addr := e.translate(vaddr)
	if target == targetScratchpad {
		return e.Scratchpad.Read(e.Scratchpad.Bytes(), addr, width)
	}
	return e.Bus.Read(width, addr)
}

func (e *EE) writeMem(vaddr uint32, width int, lo, hi uint64) error {
	target, addr := e.translate(vaddr)
	if target == targetScratchpad {
		return e.Scratchpad.Write(e.Scratchpad.Bytes(), addr, width, lo, hi)
	}
	return e.Bus.Write(width, addr, lo, hi)
}

func (e *EE) checkInterruptPending() bool {
	if !e.COP0.IsInterruptsEnabled() {
		return false
	}
	return e.COP0.Cause&e.COP0.Status&causeIPMask != 0
}

// SetINTCLine reflects the INTC's combined pending state onto Cause's IP2
// bit, the line real EE hardware ORs the INTC controller's output into.
// The caller (the orchestrator, once per step) is expected to call this
// before Step so a newly-raised INTC line is visible to the *next* step's
// interrupt check (spec.md §4.I: "set once per step so that the next step
// takes the exception").
func (e *EE) SetINTCLine(pending bool) {
	if pending {
		e.COP0.Cause |= causeIP2
	} else {
		e.COP0.Cause &^= causeIP2
	}
}

// ExCode values (spec.md §4.I / §7).
const (
	ExInt = 0
	ExSyscall = 8
	ExAdEL = 4
	ExAdES = 5
)

func (e *EE) raiseInterrupt() {
	e.raiseException(ExInt, false)
}

// raiseException enters the exception vector and sets EXL. EPC and
// Cause.BD are saved only when EXL was clear; ErrorEPC is not written.
func (e *EE) raiseException(exCode uint32, inDelaySlot bool) {
	if e.COP0.Status&statusEXL == 0 {
		if inDelaySlot {
			e.COP0.EPC = e.cpc - 4
			e.COP0.Cause |= causeBD
		} else {
			e.COP0.EPC = e.cpc
			e.COP0.Cause &^= causeBD
		}
	}
	e.COP0.Cause = (e.COP0.Cause &^ causeExcMask) | (exCode << 2)
	e.COP0.Status |= statusEXL

	vector := uint32(0x8000_0180)
	if e.COP0.Status&statusBEV != 0 {
		vector = 0xbfc0_0200
	}
	e.PC = vector
	e.npc = vector + 4
}

func (e *EE) raiseSyscall() error {
	if e.Syscall != nil {
		code := (e.GPR[3].Lo >> 0) & 0xff
		e.Syscall(uint32(code))
	}
	e.raiseException(ExSyscall, e.dslot[0])
	return nil
}

// errDecode wraps an unrecognized opcode/funct combination.
func errDecode(insn uint32) error {
	return fmt.Errorf("%w: instruction 0x%08x at unknown opcode", ps2err.ErrDecode, insn)
}
