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

// Package gs is the Graphics Synthesizer register plane: the internal
// register file ([0x00..0x62]) driving the drawing-kit state machine and
// vertex queue, plus the privileged register block (CSR/IMR/DISPFB/...).
// Pixel rasterization itself is an external collaborator (spec.md §1); this
// package only maintains the register contract a rasterizer would read.
package gs

import "fmt"

// Internal register indices, matching the real GS numbering so that a
// rasterizer collaborator written against real hardware documentation can
// be dropped in unmodified.
const (
	RegPRIM       = 0x00
	RegRGBAQ      = 0x01
	RegST         = 0x02
	RegUV         = 0x03
	RegXYZF2      = 0x04
	RegXYZ2       = 0x05
	RegTEX0_1     = 0x06
	RegTEX0_2     = 0x07
	RegCLAMP_1    = 0x08
	RegCLAMP_2    = 0x09
	RegFOG        = 0x0a
	RegXYZF3      = 0x0c
	RegXYZ3       = 0x0d
	RegNOP        = 0x0f
	RegTEX1_1     = 0x14
	RegTEX1_2     = 0x15
	RegTEX2_1     = 0x16
	RegTEX2_2     = 0x17
	RegXYOFFSET_1 = 0x18
	RegXYOFFSET_2 = 0x19
	RegPRMODECONT = 0x1a
	RegPRMODE     = 0x1b
	RegTEXCLUT    = 0x1c
	RegTEXA       = 0x3b
	RegFOGCOL     = 0x3d
	RegTEXFLUSH   = 0x3f
	RegSCISSOR_1  = 0x40
	RegSCISSOR_2  = 0x41
	RegALPHA_1    = 0x42
	RegALPHA_2    = 0x43
	RegDIMX       = 0x44
	RegDTHE       = 0x45
	RegCOLCLAMP   = 0x46
	RegTEST_1     = 0x47
	RegTEST_2     = 0x48
	RegPABE       = 0x49
	RegFBA_1      = 0x4a
	RegFBA_2      = 0x4b
	RegFRAME_1    = 0x4c
	RegFRAME_2    = 0x4d
	RegZBUF_1     = 0x4e
	RegZBUF_2     = 0x4f
	RegBITBLTBUF  = 0x50
	RegTRXPOS     = 0x51
	RegTRXREG     = 0x52
	RegTRXDIR     = 0x53
	RegHWREG      = 0x54
	RegSIGNAL     = 0x60
	RegFINISH     = 0x61
	RegLABEL      = 0x62

	numInternalRegs = 0x63
)

// Primitive kinds decoded from PRIM bits [0:2].
type PrimKind uint8

const (
	PrimPoint PrimKind = iota
	PrimLine
	PrimLineStrip
	PrimTriangle
	PrimTriangleStrip
	PrimTriangleFan
	PrimSprite
	PrimReserved
)

// vertsFor reports how many vertices this primitive kind needs before it
// can be handed to the rasterizer.
func vertsFor(k PrimKind) int {
	switch k {
	case PrimPoint:
		return 1
	case PrimLine, PrimLineStrip, PrimSprite:
		return 2
	case PrimTriangle, PrimTriangleStrip, PrimTriangleFan:
		return 3
	default:
		return 3
	}
}

// Prim is the decoded PRIM register.
type Prim struct {
	Kind     PrimKind
	Gouraud  bool // IIP
	Textured bool // TME
	Fogged   bool // FGE
	AlphaBlend bool // ABE
	AA1      bool
	UVMode   bool // FST: true = UV fixed-point, false = STQ
	Context  int  // 0 or 1
	FixFrag  bool // FIX
}

func decodePrim(v uint64) Prim {
	return Prim{
		Kind:       PrimKind(v & 0x7),
		Gouraud:    v&(1<<3) != 0,
		Textured:   v&(1<<4) != 0,
		Fogged:     v&(1<<5) != 0,
		AlphaBlend: v&(1<<6) != 0,
		AA1:        v&(1<<7) != 0,
		UVMode:     v&(1<<8) != 0,
		Context:    int((v >> 9) & 1),
		FixFrag:    v&(1<<10) != 0,
	}
}

// Vertex is one entry of the drawing-kit vertex queue.
type Vertex struct {
	X, Y, Z uint32
	Fog     uint8
	RGBAQ   uint64
	ST      uint64
	UV      uint64
}

// TransferDir is the BITBLTBUF/TRXDIR transmission direction.
type TransferDir uint8

const (
	TransferHostToVRAM TransferDir = iota
	TransferVRAMToHost
	TransferVRAMToVRAM
	TransferOff
)

// VRAMSize is the Graphics Synthesizer's local video memory.
const VRAMSize = 4 * 1024 * 1024

// transfer tracks an in-progress BITBLTBUF transmission.
type transfer struct {
	active    bool
	dir       TransferDir
	srcBase   uint32
	dstBase   uint32
	srcStride uint32
	dstStride uint32
	srcX, srcY int
	dstX, dstY int
	startX     int
	width, height int
	pixelsDone int
}

// GS holds the internal and privileged register files.
type GS struct {
	regs [numInternalRegs]uint64

	prim       Prim
	rgbaq      uint64
	st, uv     uint64
	vq         []Vertex

	vram [VRAMSize]byte
	xfer transfer

	csr uint64
	imr uint64

	dispfb1, dispfb2 uint64
	fbPtr1, fbPtr2   uint32

	priv [0x1100]uint64 // raw backing for all privileged registers by offset/8

	// Rasterizer is invoked once a primitive's full vertex set has been
	// assembled; nil is valid and simply drops the primitive (headless
	// test configurations, and any machine that hasn't wired a
	// collaborator yet).
	Rasterizer func(prim Prim, verts []Vertex)

	// RaiseGSInterrupt is called when FINISH becomes pending and unmasked
	// (no other CSR bit calls it); it is expected to set the GS line in INTC.
	RaiseGSInterrupt func()
}

const (
	csrDefault = uint64(0x1b<<16) | uint64(0x55<<24) // rev/id; PrivilegedRead ORs these in on each read, the stored CSR resets to 0.
)

// New returns a GS with CSR/IMR in their reset state.
func New() *GS {
	g := &GS{}
	g.resetPrivileged()
	return g
}

func (g *GS) resetPrivileged() {
	g.csr = 0
	g.imr = 0x1f00 // all five sticky mask bits set (masked) per spec.md §4.E reset behavior.
}

// --- Internal (0x00..0x62) write surface ---

// Write accepts a register index and 64-bit payload on the non-packed
// surface driven directly by EE stores to the GIF/VU path.
func (g *GS) Write(reg uint8, payload uint64) error {
	if int(reg) >= numInternalRegs {
		return fmt.Errorf("gs: register index 0x%x out of range", reg)
	}
	g.regs[reg] = payload

	switch reg {
	case RegNOP:
		// explicit no-op.
	case RegPRIM:
		g.prim = decodePrim(payload)
		g.vq = g.vq[:0]
	case RegRGBAQ:
		g.rgbaq = payload
	case RegST:
		g.st = payload
	case RegUV:
		g.uv = payload
	case RegXYZ2, RegXYZF2, RegXYZ3, RegXYZF3:
		g.enqueueVertex(payload, reg == RegXYZF2 || reg == RegXYZF3)
	case RegBITBLTBUF:
		g.xfer.srcBase = uint32(payload&0x3fff) * 64 * 4
		g.xfer.srcStride = uint32((payload>>16)&0x3f) * 64
		g.xfer.dstBase = uint32((payload>>32)&0x3fff) * 64 * 4
		g.xfer.dstStride = uint32((payload>>48)&0x3f) * 64
	case RegTRXPOS:
		g.xfer.srcX = int(payload & 0x7ff)
		g.xfer.srcY = int((payload >> 16) & 0x7ff)
		g.xfer.dstX = int((payload >> 32) & 0x7ff)
		g.xfer.dstY = int((payload >> 48) & 0x7ff)
		g.xfer.startX = g.xfer.dstX
	case RegTRXREG:
		g.xfer.width = int(payload & 0xfff)
		g.xfer.height = int((payload >> 32) & 0xfff)
	case RegTRXDIR:
		g.startTransfer(TransferDir(payload & 0x3))
	case RegHWREG:
		g.feedHWREG(payload)
	case RegFINISH:
		g.finish()
	}
	return nil
}

// enqueueVertex builds a vertex from latched PRIM/RGBAQ/ST/UV state plus
// the XYZ payload, and hands the primitive to the rasterizer once the
// queue reaches the required vertex count.
func (g *GS) enqueueVertex(payload uint64, withFog bool) {
	v := Vertex{
		X:     uint32(payload & 0xffff),
		Y:     uint32((payload >> 16) & 0xffff),
		Z:     uint32((payload >> 32) & 0xffffffff),
		RGBAQ: g.rgbaq,
		ST:    g.st,
		UV:    g.uv,
	}
	if withFog {
		v.Fog = uint8((payload >> 56) & 0xff)
		v.Z = uint32((payload >> 32) & 0xffffff)
	}
	g.vq = append(g.vq, v)

	need := vertsFor(g.prim.Kind)
	if len(g.vq) < need {
		return
	}

	verts := make([]Vertex, need)
	copy(verts, g.vq[len(g.vq)-need:])
	if g.Rasterizer != nil {
		g.Rasterizer(g.prim, verts)
	}

	if g.prim.Kind == PrimTriangleStrip {
		g.vq = g.vq[1:]
	} else {
		g.vq = g.vq[:0]
	}
}

// --- Packed (GIF-path) write surface ---

const (
	PackedPRIM  = 0x0
	PackedRGBAQ = 0x1
	PackedST    = 0x2
	PackedUV    = 0x3
	PackedXYZF2 = 0x4
	PackedXYZ2  = 0x5
	PackedFOG   = 0xa
	PackedAD    = 0xe
	PackedNOP   = 0xf
)

// WritePacked demuxes a GIF-path 128-bit qword (lo, hi) into the 64-bit
// surface. AD extracts the target register from hi[0:7] and the 64-bit
// value from lo.
func (g *GS) WritePacked(selector uint8, lo, hi uint64) error {
	switch selector & 0xf {
	case PackedPRIM:
		return g.Write(RegPRIM, lo)
	case PackedRGBAQ:
		return g.Write(RegRGBAQ, lo)
	case PackedST:
		return g.Write(RegST, lo)
	case PackedUV:
		return g.Write(RegUV, lo)
	case PackedXYZF2:
		return g.Write(RegXYZF2, lo)
	case PackedXYZ2:
		return g.Write(RegXYZ2, lo)
	case PackedFOG:
		return g.Write(RegFOG, lo)
	case PackedAD:
		return g.Write(uint8(hi&0xff), lo)
	case PackedNOP:
		return nil
	default:
		return nil
	}
}

// --- BITBLTBUF/TRXDIR/HWREG transmission ---

func (g *GS) startTransfer(dir TransferDir) {
	if dir == TransferOff {
		g.xfer.active = false
		return
	}
	g.xfer.dir = dir
	g.xfer.active = true
	g.xfer.pixelsDone = 0
	g.xfer.dstX = g.xfer.startX

	if dir == TransferVRAMToVRAM {
		g.runVRAMToVRAM()
	}
}

// feedHWREG is called for each host->VRAM HWREG write while a transfer is
// active; each 64-bit write supplies two 32-bit pixels (simplified to one
// 32-bit pixel per half for a 32bpp framebuffer model).
func (g *GS) feedHWREG(payload uint64) {
	if !g.xfer.active || g.xfer.dir != TransferHostToVRAM {
		return
	}
	g.writePixel(uint32(payload))
	if g.xfer.pixelsDone < g.xfer.width*g.xfer.height {
		g.writePixel(uint32(payload >> 32))
	}
}

func (g *GS) writePixel(val uint32) {
	if g.xfer.pixelsDone >= g.xfer.width*g.xfer.height {
		return
	}
	off := g.xfer.dstBase + (uint32(g.xfer.dstY)*g.xfer.dstStride+uint32(g.xfer.dstX))*4
	if int(off)+4 <= len(g.vram) {
		g.vram[off] = byte(val)
		g.vram[off+1] = byte(val >> 8)
		g.vram[off+2] = byte(val >> 16)
		g.vram[off+3] = byte(val >> 24)
	}
	g.advanceDst()
}

func (g *GS) advanceDst() {
	g.xfer.pixelsDone++
	g.xfer.dstX++
	if g.xfer.dstX-g.xfer.startX >= g.xfer.width {
		g.xfer.dstX = g.xfer.startX
		g.xfer.dstY++
	}
	if g.xfer.pixelsDone >= g.xfer.width*g.xfer.height {
		g.xfer.active = false
	}
}

func (g *GS) runVRAMToVRAM() {
	total := g.xfer.width * g.xfer.height
	srcX, srcY := g.xfer.srcX, g.xfer.srcY
	startSrcX := srcX
	for i := 0; i < total; i++ {
		srcOff := g.xfer.srcBase + (uint32(srcY)*g.xfer.srcStride+uint32(srcX))*4
		var val uint32
		if int(srcOff)+4 <= len(g.vram) {
			val = uint32(g.vram[srcOff]) | uint32(g.vram[srcOff+1])<<8 |
				uint32(g.vram[srcOff+2])<<16 | uint32(g.vram[srcOff+3])<<24
		}
		g.writePixel(val)
		srcX++
		if srcX-startSrcX >= g.xfer.width {
			srcX = startSrcX
			srcY++
		}
	}
}

// --- FINISH event ---

const (
	csrBitSignal = 1 << 0
	csrBitFinish = 1 << 1
	csrBitHSInt  = 1 << 2
	csrBitVSInt  = 1 << 3
	csrBitEDWInt = 1 << 4
	csrBitField  = 1 << 13
	csrBitReset  = 1 << 9

	imrSignalMask = 1 << 8
	imrFinishMask = 1 << 9
	imrHSMask     = 1 << 10
	imrVSMask     = 1 << 11
	imrEDWMask    = 1 << 12
)

func (g *GS) finish() {
	g.csr |= csrBitFinish
	if g.imr&imrFinishMask == 0 && g.RaiseGSInterrupt != nil {
		g.RaiseGSInterrupt()
	}
}

// ToggleField flips the CSR FIELD bit; driven only by the scheduler.
func (g *GS) ToggleField() {
	g.csr ^= csrBitField
}

// --- Privileged register surface ---

const (
	PrivPMODE    uint32 = 0x00
	PrivSMODE1   uint32 = 0x10
	PrivSMODE2   uint32 = 0x20
	PrivSRFSH    uint32 = 0x30
	PrivSYNCH1   uint32 = 0x40
	PrivSYNCH2   uint32 = 0x50
	PrivSYNCV    uint32 = 0x60
	PrivDISPFB1  uint32 = 0x70
	PrivDISPLAY1 uint32 = 0x80
	PrivDISPFB2  uint32 = 0x90
	PrivDISPLAY2 uint32 = 0xa0
	PrivBGCOLOR  uint32 = 0xe0
	PrivCSR      uint32 = 0x1000
	PrivIMR      uint32 = 0x1010
)

// PrivilegedWrite handles an 8-byte write at a 32-bit-aligned offset into
// the GS privileged register block (spec.md §4.E).
func (g *GS) PrivilegedWrite(offset uint32, value uint64) error {
	if offset%4 != 0 || offset > 0x10ff {
		return fmt.Errorf("gs: privileged offset 0x%x misaligned or out of range", offset)
	}
	idx := offset / 8
	if int(idx) < len(g.priv) {
		g.priv[idx] = value
	}

	switch offset {
	case PrivCSR:
		g.writeCSR(value)
	case PrivIMR:
		g.imr = value & 0x1f00
	case PrivDISPFB1:
		g.dispfb1 = value
		g.fbPtr1 = 2048 * uint32(value&0x1ff)
	case PrivDISPFB2:
		g.dispfb2 = value
		g.fbPtr2 = 2048 * uint32(value&0x1ff)
	}
	return nil
}

func (g *GS) writeCSR(value uint64) {
	if value&csrBitReset != 0 {
		g.resetPrivileged()
		return
	}
	// Write-1-to-clear on the five sticky interrupt bits.
	g.csr &^= value & 0x1f
}

// PrivilegedRead reads an 8-byte privileged register. CSR composes the
// live FIELD/FIFO bits with a fixed revision/ID (0x1B/0x55).
func (g *GS) PrivilegedRead(offset uint32) (uint64, error) {
	if offset%4 != 0 || offset > 0x10ff {
		return 0, fmt.Errorf("gs: privileged offset 0x%x misaligned or out of range", offset)
	}
	if offset == PrivCSR {
		return g.csr | (uint64(0x1b) << 16) | (uint64(0x55) << 24), nil
	}
	idx := offset / 8
	if int(idx) < len(g.priv) {
		return g.priv[idx], nil
	}
	return 0, nil
}

// FrameBasePointers returns the cached DISPFB1/DISPFB2 byte offsets into
// VRAM, for a host renderFrame callback.
func (g *GS) FrameBasePointers() (uint32, uint32) {
	return g.fbPtr1, g.fbPtr2
}

// VRAM exposes the raw video memory for a render-frame host callback.
func (g *GS) VRAM() []byte { return g.vram[:] }
