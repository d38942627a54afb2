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

// Package bus is the system bus: a size-polymorphic read/write dispatcher
// fanning out over the address map to bulk memory, the DMAC, INTC, the GS
// register plane, the VU0 code/data windows, and a handful of scattered
// single-address registers (spec.md §4.H).
package bus

import (
	"fmt"
	"log/slog"

	"github.com/ps2core/emu/internal/addrmap"
	"github.com/ps2core/emu/internal/dmac"
	"github.com/ps2core/emu/internal/gs"
	"github.com/ps2core/emu/internal/intc"
	"github.com/ps2core/emu/internal/machmem"
	"github.com/ps2core/emu/internal/ps2err"
)

// Bus wires bulk memory and the component register surfaces together
// behind a single width-polymorphic read/write API.
type Bus struct {
	Mem  *machmem.Arrays
	Dmac *dmac.Dmac
	Intc *intc.EE
	GS   *gs.GS

	// ConsoleWrite receives KPUTCHAR bytes; nil drops them.
	ConsoleWrite func(b byte)

	Log *slog.Logger

	lastRicm    uint32
	mchDrd      uint32
	rdramSdevID int
}

// New returns a Bus with a no-op logger; callers wire Log explicitly if
// they want scattered-write diagnostics.
func New(mem *machmem.Arrays, d *dmac.Dmac, i *intc.EE, g *gs.GS) *Bus {
	return &Bus{Mem: mem, Dmac: d, Intc: i, GS: g, Log: slog.Default()}
}

func widthErr(region string, got, want int) error {
	return fmt.Errorf("%w: %s requires %d-byte access, got %d", ps2err.ErrWidth, region, want, got)
}

// Read dispatches a width-polymorphic physical-address read.
func (b *Bus) Read(width int, phys uint32) (lo, hi uint64, err error) {
	switch phys {
	case addrmap.IntcStat:
		if width != 4 {
			return 0, 0, widthErr("INTC", width, 4)
		}
		return uint64(b.Intc.GetStat()), 0, nil
	case addrmap.IntcMask:
		if width != 4 {
			return 0, 0, widthErr("INTC", width, 4)
		}
		return uint64(b.Intc.GetMask()), 0, nil
	case addrmap.MchRicm:
		return uint64(b.lastRicm), 0, nil
	case addrmap.MchDrd:
		return uint64(b.readMchDrd()), 0, nil
	case addrmap.Vif0Fifo, addrmap.Vif1Fifo, addrmap.GifFifo, addrmap.IpuInFifo:
		if width != 16 {
			return 0, 0, widthErr("FIFO", width, 16)
		}
		return 0, 0, nil
	}

	if isScatteredAck(phys) {
		return 0, 0, nil
	}

	region, offset := addrmap.Lookup(phys)
	switch region {
	case addrmap.RegionRAM:
		return machmem.Read(b.Mem.RAM[:], offset, width)
	case addrmap.RegionBIOS:
		return machmem.Read(b.Mem.BIOS[:], offset, width)
	case addrmap.RegionVU0Code:
		return machmem.Read(b.Mem.VU0Code[:], offset, width)
	case addrmap.RegionVU0Data:
		return machmem.Read(b.Mem.VU0Data[:], offset, width)
	case addrmap.RegionVU1Code:
		return machmem.Read(b.Mem.VU1Code[:], offset, width)
	case addrmap.RegionVU1Data:
		return machmem.Read(b.Mem.VU1Data[:], offset, width)
	case addrmap.RegionGSPriv:
		if width != 8 {
			return 0, 0, widthErr("GS privileged", width, 8)
		}
		v, err := b.GS.PrivilegedRead(offset)
		return v, 0, err
	case addrmap.RegionDMAC:
		if width != 4 {
			return 0, 0, widthErr("DMAC", width, 4)
		}
		return 0, 0, nil // channel register reads are modeled via Dmac.Chan(), not the bus.
	case addrmap.RegionTimer, addrmap.RegionIPU, addrmap.RegionGIF,
		addrmap.RegionVIF0, addrmap.RegionVIF1, addrmap.RegionIOPWindow:
		return 0, 0, nil // external collaborator stub.
	default:
		return 0, 0, fmt.Errorf("%w: unmapped physical address 0x%x", ps2err.ErrAddress, phys)
	}
}

// Write dispatches a width-polymorphic physical-address write.
func (b *Bus) Write(width int, phys uint32, lo, hi uint64) error {
	switch phys {
	case addrmap.IntcStat:
		if width != 4 {
			return widthErr("INTC", width, 4)
		}
		b.Intc.SetStat(uint32(lo))
		return nil
	case addrmap.IntcMask:
		if width != 4 {
			return widthErr("INTC", width, 4)
		}
		b.Intc.SetMask(uint32(lo))
		return nil
	case addrmap.KPutChar:
		if width != 1 {
			return widthErr("KPUTCHAR", width, 1)
		}
		if lo != 0 && b.ConsoleWrite != nil {
			b.ConsoleWrite(byte(lo))
		}
		return nil
	case addrmap.MchRicm:
		b.writeMchRicm(uint32(lo))
		return nil
	case addrmap.MchDrd:
		b.mchDrd = uint32(lo)
		return nil
	case addrmap.Vif0Fifo, addrmap.Vif1Fifo, addrmap.IpuInFifo:
		if width != 16 {
			return widthErr("FIFO", width, 16)
		}
		return nil // external collaborator stub.
	case addrmap.GifFifo:
		if width != 16 {
			return widthErr("FIFO", width, 16)
		}
		if b.GS != nil {
			return b.GS.WritePacked(gs.PackedAD, lo, hi)
		}
		return nil
	}

	if isScatteredAck(phys) {
		if b.Log != nil {
			b.Log.Debug("scattered bus write acknowledged", "addr", phys, "value", lo)
		}
		return nil
	}

	region, offset := addrmap.Lookup(phys)
	switch region {
	case addrmap.RegionRAM:
		return machmem.Write(b.Mem.RAM[:], offset, width, lo, hi)
	case addrmap.RegionBIOS:
		return machmem.Write(b.Mem.BIOS[:], offset, width, lo, hi)
	case addrmap.RegionVU0Code:
		return machmem.Write(b.Mem.VU0Code[:], offset, width, lo, hi)
	case addrmap.RegionVU0Data:
		return machmem.Write(b.Mem.VU0Data[:], offset, width, lo, hi)
	case addrmap.RegionVU1Code:
		return machmem.Write(b.Mem.VU1Code[:], offset, width, lo, hi)
	case addrmap.RegionVU1Data:
		return machmem.Write(b.Mem.VU1Data[:], offset, width, lo, hi)
	case addrmap.RegionGSPriv:
		if width != 8 {
			return widthErr("GS privileged", width, 8)
		}
		return b.GS.PrivilegedWrite(offset, lo)
	case addrmap.RegionDMAC:
		if width != 4 {
			return widthErr("DMAC", width, 4)
		}
		return b.writeDmacRegister(offset, uint32(lo))
	case addrmap.RegionTimer, addrmap.RegionIPU, addrmap.RegionGIF,
		addrmap.RegionVIF0, addrmap.RegionVIF1, addrmap.RegionIOPWindow:
		return nil // external collaborator stub.
	default:
		return fmt.Errorf("%w: unmapped physical address 0x%x", ps2err.ErrAddress, phys)
	}
}

// isScatteredAck reports whether phys falls in the acknowledged-without-
// error scattered blocks (spec.md §4.H) that are neither a named register
// nor a bulk region.
func isScatteredAck(phys uint32) bool {
	if phys >= 0x1000_f100 && phys < 0x1000_f200 {
		return true
	}
	if phys >= 0x1000_f400 && phys < 0x1000_f600 {
		return true
	}
	return false
}

func (b *Bus) writeMchRicm(val uint32) {
	val &^= 1 << 31
	b.lastRicm = val
	sa := (val >> 16) & 0xff
	sbc := (val >> 6) & 1
	if sa == 0x21 && sbc == 1 && (b.mchDrd&0x80) == 0 {
		b.rdramSdevID = 0
	}
}

func (b *Bus) readMchDrd() uint32 {
	sop := b.lastRicm & 0x1f
	sa := (b.lastRicm >> 16) & 0xff
	switch {
	case sop == 0 && sa == 0x21:
		if b.rdramSdevID >= 2 {
			return 0
		}
		v := uint32(0x1f)
		b.rdramSdevID++
		return v
	case sa == 0x40:
		return b.lastRicm & 0x1f
	default:
		return 0
	}
}

// writeDmacRegister routes a 4-byte DMAC I/O write to the owning
// channel's field, keyed by bits [8..15] of the physical address
// (spec.md §4.G channel-byte table; the region starts at 0x1000_8000, so
// that byte is the offset's byte plus 0x80) and the low byte selecting
// which register within the channel.
func (b *Bus) writeDmacRegister(offset uint32, val uint32) error {
	chanByte := ((offset >> 8) + 0x80) & 0xff
	regByte := offset & 0xff
	c, err := dmac.ChannelFromByte(chanByte)
	if err != nil {
		return err
	}
	switch regByte {
	case 0x00:
		return b.Dmac.WriteChcr(c, val)
	case 0x10:
		b.Dmac.WriteMadr(c, val)
	case 0x20:
		b.Dmac.WriteQwc(c, val)
	case 0x30:
		b.Dmac.WriteTadr(c, val)
	case 0x40:
		b.Dmac.WriteSadr(c, val)
	case 0xf0: // D_CTRL is decoded at register offset 0xf0 inside any channel's window.
		return b.Dmac.WriteDCtrl(val)
	}
	return nil
}
