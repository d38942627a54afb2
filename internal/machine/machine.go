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

// Package machine owns the single Machine value every other component is
// wired against: the memory arrays, the DMAC/INTC/GS/bus/VU0/EE, and the
// scheduler that drives their VBLANK/HBLANK edges. Relocating what the
// source kept as process-wide mutable module state into one root value
// resolves the bus/DMAC/GS cyclic-reference problem (spec.md §9 "Globals
// → owned root"): they are all fields of Machine, and New closes the one
// remaining cycle (the bus holds the DMAC, INTC and GS; the DMAC reads
// memory through an adapter over the bus) after both sides exist.
package machine

import (
	"log/slog"

	"github.com/ps2core/emu/internal/bus"
	"github.com/ps2core/emu/internal/dmac"
	"github.com/ps2core/emu/internal/ee"
	"github.com/ps2core/emu/internal/gs"
	"github.com/ps2core/emu/internal/intc"
	"github.com/ps2core/emu/internal/machmem"
	"github.com/ps2core/emu/internal/scheduler"
	"github.com/ps2core/emu/internal/vu0"
)

// DisplayWidth and DisplayHeight are the fixed NTSC interlaced-field
// framebuffer dimensions assumed by the RenderFrame host callback; the GS
// itself is resolution-agnostic (spec.md §4.E), so the dimensions live
// here rather than in the gs package.
const (
	DisplayWidth  = 640
	DisplayHeight = 448
)

// Machine is the owned root of every component (spec.md §9).
type Machine struct {
	Mem     *machmem.Arrays
	IntcEE  *intc.EE
	IntcIOP *intc.IOP
	GS      *gs.GS
	Dmac    *dmac.Dmac
	Bus     *bus.Bus
	VU0     *vu0.VU0
	EE      *ee.EE
	Sched   *scheduler.Scheduler

	Log *slog.Logger

	// RenderFrame and PollInput are the host front-end callbacks of
	// spec.md §6, invoked once per simulated vertical blank.
	RenderFrame func(fb []byte, width, height int)
	PollInput   func() bool

	running bool
}

// Running reports whether the most recent PollInput callback (or the
// absence of one) still wants the orchestrator loop to continue.
func (m *Machine) Running() bool { return m.running }

// dmacMemory adapts the bus's physical-address read into the narrower
// ReadQWord port the DMAC chain walker wants (spec.md §4.G).
type dmacMemory struct {
	bus *bus.Bus
}

func (m dmacMemory) ReadQWord(addr uint32) (lo, hi uint64, err error) {
	return m.bus.Read(16, addr)
}

// vu0Memory adapts VU0's local-store port directly onto the VU0Data
// backing array rather than going through the system bus; the same array
// is also reachable from the EE through the bus's VU0 data window
// (spec.md §3, §4.F).
type vu0Memory struct {
	data *[machmem.VU0DataSize]byte
}

func (m vu0Memory) Read32(addr uint32) uint32 {
	lo, _, err := machmem.Read(m.data[:], addr, 4)
	if err != nil {
		return 0
	}
	return uint32(lo)
}

func (m vu0Memory) Write32(addr uint32, val uint32) {
	_ = machmem.Write(m.data[:], addr, 4, uint64(val), 0)
}

// scratchpad adapts the flat scratchpad array to the ee.Scratchpad port.
type scratchpad struct {
	buf *[machmem.ScratchpadSize]byte
}

func (s scratchpad) Bytes() []byte { return s.buf[:] }

func (s scratchpad) Read(buf []byte, offset uint32, width int) (lo, hi uint64, err error) {
	return machmem.Read(buf, offset, width)
}

func (s scratchpad) Write(buf []byte, offset uint32, width int, lo, hi uint64) error {
	return machmem.Write(buf, offset, width, lo, hi)
}

// New wires every component behind a fresh Machine, ready for LoadBIOS and
// Step. It is the Go-native stand-in for the teacher's package-level
// sys_channel.InitializeChannels()/ResetChannels() pair, but as a single
// constructor rather than two init steps threading through globals.
func New(log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}

	m := &Machine{
		Mem:     &machmem.Arrays{},
		IntcEE:  &intc.EE{},
		IntcIOP: &intc.IOP{},
		GS:      gs.New(),
		Log:     log,
		running: true,
	}

	m.Bus = bus.New(m.Mem, nil, m.IntcEE, m.GS)
	m.Bus.Log = log.With("component", "bus")
	m.Dmac = dmac.New(dmacMemory{bus: m.Bus})
	m.Bus.Dmac = m.Dmac

	m.VU0 = vu0.New(vu0Memory{data: &m.Mem.VU0Data})
	m.EE = &ee.EE{
		Bus:        m.Bus,
		Scratchpad: scratchpad{buf: &m.Mem.Scratchpad},
		VU0:        m.VU0,
	}
	m.EE.Reset()

	m.GS.RaiseGSInterrupt = func() { m.IntcEE.Raise(intc.GS) }

	m.Sched = scheduler.New(scheduler.Hooks{
		RaiseVBlankStart: func() { m.IntcEE.Raise(intc.VBlankStart) },
		RaiseVBlankEnd:   func() { m.IntcEE.Raise(intc.VBlankEnd) },
		ToggleField:      m.GS.ToggleField,
		RenderFrame: func() {
			if m.RenderFrame != nil {
				fb1, _ := m.GS.FrameBasePointers()
				m.RenderFrame(m.GS.VRAM()[fb1:], DisplayWidth, DisplayHeight)
			}
			if m.PollInput != nil {
				m.running = m.PollInput()
			}
		},
	})

	m.Dmac.SetSink(dmac.ChanPath3, func(lo, hi uint64) {
		if err := m.GS.WritePacked(gs.PackedAD, lo, hi); err != nil {
			m.Log.Error("GIF path3 sink rejected packed quadword", "error", err)
		}
	})

	return m
}

// LoadBIOS loads a BIOS image into the BIOS region and places the EE at
// its reset vector (spec.md §4.B, §6).
func (m *Machine) LoadBIOS(image []byte) error {
	if err := m.Mem.LoadBIOS(image); err != nil {
		return err
	}
	m.EE.Reset()
	return nil
}

// LoadFlat copies a flat (non-ELF) executable image into RAM at addr, for
// the --elf flag's light-loader fallback (spec.md's ELF loader is an
// explicit Non-goal; see SPEC_FULL.md "ELF-light loader").
func (m *Machine) LoadFlat(image []byte, addr uint32) error {
	for i, b := range image {
		if err := machmem.Write(m.Mem.RAM[:], addr+uint32(i), 1, uint64(b), 0); err != nil {
			return err
		}
	}
	return nil
}

// Step runs one orchestrator tick (spec.md §4.J): one EE instruction, then
// the scheduler advanced by that instruction's reported cycle cost
// (baseline: 1, since this interpreter does not model per-instruction
// timing beyond "one step, one cycle").
func (m *Machine) Step() error {
	m.EE.SetINTCLine(m.IntcEE.Pending())
	if err := m.EE.Step(); err != nil {
		return err
	}
	m.Sched.Step(1)
	return nil
}

// ConsoleSink wires the bus's KPUTCHAR byte stream to w, matching
// spec.md §6's "console output: byte stream from KPUTCHAR".
func (m *Machine) ConsoleSink(w func(b byte)) {
	m.Bus.ConsoleWrite = w
}
