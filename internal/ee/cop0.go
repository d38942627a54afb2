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

// Status register bit positions (a subset of the real COP0 Status
// register relevant to spec.md §3's COP0 Mirror).
const (
	statusIE  uint32 = 1 << 0
	statusEXL uint32 = 1 << 1
	statusERL uint32 = 1 << 2
	statusKSUMask uint32 = 0x3 << 3
	statusEIE uint32 = 1 << 16
	statusEDI uint32 = 1 << 17
	statusBEV uint32 = 1 << 22
)

const (
	causeExcMask uint32 = 0x1f << 2
	causeIPMask  uint32 = 0xff << 8 // IP7..IP0, mirrored by Status's IM7..IM0 at the same bit positions.
	causeIP2     uint32 = 1 << 10   // INTC's line into the EE, per spec.md §4.C/§4.I.
	causeBD      uint32 = 1 << 31
)

// TLBEntry is one of the EE's TLB entries; only the fields a minimal
// stub needs to exist are carried (spec.md §4.I treats the TLB itself
// as out of scope beyond a scratchpad-routing stub).
type TLBEntry struct {
	VPN2 uint32
	PFN0 uint32
	PFN1 uint32
	Mask uint32
	Valid bool
}

// COP0 is the system-control register mirror (spec.md §3).
type COP0 struct {
	Status  uint32
	Cause   uint32
	EPC     uint32
	ErrorEPC uint32
	Count   uint32
	Compare uint32
	BadVAddr uint32

	TLB   [48]TLBEntry
	Index uint32
}

// IsKernelMode reports whether the processor is currently in kernel
// mode: KSU==0, or EXL/ERL set.
func (c *COP0) IsKernelMode() bool {
	return c.Status&statusEXL != 0 || c.Status&statusERL != 0 || (c.Status&statusKSUMask) == 0
}

// IsUserMode is the complement of IsKernelMode.
func (c *COP0) IsUserMode() bool { return !c.IsKernelMode() }

// IsExceptionLevel reports EXL.
func (c *COP0) IsExceptionLevel() bool { return c.Status&statusEXL != 0 }

// IsErrorLevel reports ERL.
func (c *COP0) IsErrorLevel() bool { return c.Status&statusERL != 0 }

// IsInterruptsEnabled reports IE && EIE with EXL/ERL not masking them
// (spec.md §4.I: "interrupts are enabled iff (IE && EIE && !ERL && !EXL)").
func (c *COP0) IsInterruptsEnabled() bool {
	return c.Status&(statusIE|statusEIE) == (statusIE | statusEIE) &&
		c.Status&(statusEXL|statusERL) == 0
}

// IsEDIEnabled reports the EI/DI gate bit.
func (c *COP0) IsEDIEnabled() bool { return c.Status&statusEDI != 0 }

// IsCopUsable reports whether coprocessor n is enabled; COP0 is always
// usable in kernel mode, and this minimal model treats COP1/COP2 as
// always usable since their enable bits are not separately modeled.
func (c *COP0) IsCopUsable(n int) bool {
	if n == 0 {
		return c.IsKernelMode()
	}
	return true
}

// TLBWriteIndexed writes entry at COP0.Index (TLBWI).
func (c *COP0) TLBWriteIndexed(e TLBEntry) {
	if int(c.Index) < len(c.TLB) {
		c.TLB[c.Index] = e
	}
}
