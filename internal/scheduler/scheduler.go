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

// Package scheduler models the GS vertical-line timer: a fixed
// cycles-per-scanline counter that raises HBLANK work every line and
// VBLANK-start/end edges at lines 480 and 544. It is the only source of
// the FIELD toggle (spec.md §4.D); it does not set the GS CSR's
// HSINT/VSINT sticky bits.
package scheduler

const (
	CyclesPerScanline = 9371
	VBlankStartLine   = 480
	LinesPerFrame     = 544
)

// Hooks are the callouts the scheduler drives on each edge. All are
// optional; a nil hook is simply skipped.
type Hooks struct {
	RaiseVBlankStart func()
	RaiseVBlankEnd   func()
	ToggleField      func()
	RenderFrame      func()
	HBlank           func(line int)
}

// Scheduler tracks elapsed EE cycles and the current scanline.
type Scheduler struct {
	cycles int
	line   int
	hooks  Hooks
}

// New creates a Scheduler wired to the given hooks.
func New(hooks Hooks) *Scheduler {
	return &Scheduler{hooks: hooks}
}

// Line returns the current scanline, in [0, LinesPerFrame).
func (s *Scheduler) Line() int { return s.line }

// Step advances the scheduler by elapsed EE cycles, crossing zero or more
// scanline boundaries and firing the associated edges in order.
func (s *Scheduler) Step(elapsed int) {
	s.cycles += elapsed
	for s.cycles >= CyclesPerScanline {
		s.cycles -= CyclesPerScanline
		s.advanceLine()
	}
}

func (s *Scheduler) advanceLine() {
	s.line++
	if s.line >= LinesPerFrame {
		s.line = 0
	}

	if s.hooks.HBlank != nil {
		s.hooks.HBlank(s.line)
	}

	switch s.line {
	case VBlankStartLine:
		if s.hooks.ToggleField != nil {
			s.hooks.ToggleField()
		}
		if s.hooks.RaiseVBlankStart != nil {
			s.hooks.RaiseVBlankStart()
		}
		if s.hooks.RenderFrame != nil {
			s.hooks.RenderFrame()
		}
	case 0:
		if s.hooks.RaiseVBlankEnd != nil {
			s.hooks.RaiseVBlankEnd()
		}
	}
}
