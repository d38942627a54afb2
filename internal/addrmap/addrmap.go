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

// Package addrmap decodes a physical address into the region that owns it.
//
// This mirrors the teacher's practice of keeping the address-space table as
// pure data (no receivers, no state) so the bus package can stay a thin
// dispatcher over it.
package addrmap

// Region names the owner of a physical address range.
type Region int

const (
	RegionScattered Region = iota
	RegionRAM
	RegionTimer
	RegionIPU
	RegionGIF
	RegionVIF0
	RegionVIF1
	RegionDMAC
	RegionIOPWindow
	RegionVU0Code
	RegionVU0Data
	RegionVU1Code
	RegionVU1Data
	RegionGSPriv
	RegionBIOS
)

func (r Region) String() string {
	switch r {
	case RegionRAM:
		return "RAM"
	case RegionTimer:
		return "Timer"
	case RegionIPU:
		return "IPU"
	case RegionGIF:
		return "GIF"
	case RegionVIF0:
		return "VIF0"
	case RegionVIF1:
		return "VIF1"
	case RegionDMAC:
		return "DMAC"
	case RegionIOPWindow:
		return "IOPWindow"
	case RegionVU0Code:
		return "VU0Code"
	case RegionVU0Data:
		return "VU0Data"
	case RegionVU1Code:
		return "VU1Code"
	case RegionVU1Data:
		return "VU1Data"
	case RegionGSPriv:
		return "GSPriv"
	case RegionBIOS:
		return "BIOS"
	default:
		return "Scattered"
	}
}

// entry is one row of the region table: [Base, Base+Size) maps to Target.
type entry struct {
	base   uint32
	size   uint32
	target Region
}

// Scattered single-register addresses that are acknowledged (not errors)
// but do not belong to any bulk region.
const (
	IntcStat  uint32 = 0x1000_f000
	IntcMask  uint32 = 0x1000_f010
	KPutChar  uint32 = 0x1000_f180
	MchRicm   uint32 = 0x1000_f430
	MchDrd    uint32 = 0x1000_f440
	Vif0Fifo  uint32 = 0x1000_4000
	Vif1Fifo  uint32 = 0x1000_5000
	GifFifo   uint32 = 0x1000_6000
	IpuInFifo uint32 = 0x1000_7010
)

var table = [...]entry{
	{0x0000_0000, 32 * 1024 * 1024, RegionRAM},
	{0x1000_0000, 0x1840, RegionTimer},
	{0x1000_2000, 0x40, RegionIPU},
	{0x1000_3000, 0x100, RegionGIF},
	{0x1000_3800, 0x180, RegionVIF0},
	{0x1000_3c00, 0x180, RegionVIF1},
	{0x1000_8000, 0x7000, RegionDMAC},
	{0x1100_0000, 4 * 1024, RegionVU0Code},
	{0x1100_4000, 4 * 1024, RegionVU0Data},
	{0x1100_8000, 16 * 1024, RegionVU1Code},
	{0x1100_c000, 16 * 1024, RegionVU1Data},
	{0x1200_0000, 8 * 1024, RegionGSPriv},
	{0x1a00_0000, 0x1fc0_0000 - 0x1a00_0000, RegionIOPWindow},
	{0x1fc0_0000, 4 * 1024 * 1024, RegionBIOS},
}

// Lookup returns the region owning phys and its offset within that region.
// Ranges are inclusive on the low end and exclusive on the high end. An
// address matching none of the bulk ranges is reported as RegionScattered
// with offset equal to phys itself, since scattered addresses are handled
// by exact match rather than offset.
func Lookup(phys uint32) (Region, uint32) {
	p := uint64(phys)
	for _, e := range table {
		end := uint64(e.base) + uint64(e.size) // widened to 64 bits so base+size can never wrap past the top of the 32-bit space.
		if p >= uint64(e.base) && p < end {
			return e.target, phys - e.base
		}
	}
	return RegionScattered, phys
}
