package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVBlankStartAfter480Lines(t *testing.T) {
	var vblankStarts, vblankEnds, fields, frames int
	s := New(Hooks{
		RaiseVBlankStart: func() { vblankStarts++ },
		RaiseVBlankEnd:   func() { vblankEnds++ },
		ToggleField:      func() { fields++ },
		RenderFrame:      func() { frames++ },
	})

	for line := 0; line < VBlankStartLine; line++ {
		s.Step(CyclesPerScanline)
	}
	assert.Equal(t, 1, vblankStarts)
	assert.Equal(t, 1, fields)
	assert.Equal(t, 1, frames)
	assert.Equal(t, 0, vblankEnds)
	assert.Equal(t, VBlankStartLine, s.Line())
}

func TestVBlankEnd64LinesAfterStart(t *testing.T) {
	var vblankEnds int
	s := New(Hooks{RaiseVBlankEnd: func() { vblankEnds++ }})

	for line := 0; line < LinesPerFrame; line++ {
		s.Step(CyclesPerScanline)
	}
	assert.Equal(t, 1, vblankEnds)
	assert.Equal(t, 0, s.Line())
}

func TestHBlankFiresEveryLine(t *testing.T) {
	var hblanks int
	s := New(Hooks{HBlank: func(int) { hblanks++ }})
	s.Step(CyclesPerScanline * 10)
	assert.Equal(t, 10, hblanks)
}

func TestPartialCyclesDoNotAdvance(t *testing.T) {
	s := New(Hooks{})
	s.Step(CyclesPerScanline - 1)
	assert.Equal(t, 0, s.Line())
	s.Step(1)
	assert.Equal(t, 1, s.Line())
}
