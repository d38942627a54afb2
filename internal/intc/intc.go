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

// Package intc implements the EE- and IOP-side interrupt controllers: a
// mask/status register pair each, with write-to-clear status semantics.
package intc

// Interrupt lines on the EE-side controller (spec.md §4.C / §6).
const (
	GS uint32 = iota
	SBUS
	VBlankStart
	VBlankEnd
	VIF0
	VIF1
	VU0
	VU1
	IPU
	Timer0
	Timer1
	Timer2
	Timer3
	SFIFO
	VU0Watchdog
)

// EE is the 15-bit EE-side mask/status pair.
type EE struct {
	mask uint32
	stat uint32
}

const eeWidth = 15
const eeBits = (1 << eeWidth) - 1

// GetMask returns the zero-extended 32-bit mask register.
func (e *EE) GetMask() uint32 { return e.mask & eeBits }

// GetStat returns the zero-extended 32-bit status register.
func (e *EE) GetStat() uint32 { return e.stat & eeBits }

// SetMask replaces the low 15 bits of the mask register.
func (e *EE) SetMask(w uint32) { e.mask = w & eeBits }

// SetStat is write-to-clear: stat &= ~w.
func (e *EE) SetStat(w uint32) { e.stat &= ^(w & eeBits) }

// Raise sets the status bit for line, the only way a component other than
// a CPU write can cause a pending interrupt.
func (e *EE) Raise(line uint32) { e.stat |= (1 << line) & eeBits }

// Pending reports whether (stat & mask) != 0.
func (e *EE) Pending() bool { return (e.stat & e.mask & eeBits) != 0 }

// IOP is the IOP-side 25-bit mask/status pair, identical in shape to EE but
// wider. It is carried for completeness per spec.md §4.C even though
// nothing in scope drives the IOP core that would consume it.
type IOP struct {
	mask uint32
	stat uint32
}

const iopWidth = 25
const iopBits = (1 << iopWidth) - 1

func (i *IOP) GetMask() uint32 { return i.mask & iopBits }
func (i *IOP) GetStat() uint32 { return i.stat & iopBits }
func (i *IOP) SetMask(w uint32) { i.mask = w & iopBits }
func (i *IOP) SetStat(w uint32) { i.stat &= ^(w & iopBits) }
func (i *IOP) Raise(line uint32) { i.stat |= (1 << line) & iopBits }
func (i *IOP) Pending() bool { return (i.stat & i.mask & iopBits) != 0 }
