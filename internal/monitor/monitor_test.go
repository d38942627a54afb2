package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps2core/emu/internal/machine"
	"github.com/ps2core/emu/internal/machmem"
)

func newTestMachine(t *testing.T) *machine.Machine {
	t.Helper()
	m := machine.New(nil)
	require.NoError(t, m.LoadBIOS(make([]byte, machmem.BIOSSize)))
	return m
}

func TestStepAdvancesPC(t *testing.T) {
	m := newTestMachine(t)
	before := m.EE.PC
	quit, err := ProcessCommand("step", m)
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, before+4, m.EE.PC)
}

func TestStepWithCountRunsMultipleInstructions(t *testing.T) {
	m := newTestMachine(t)
	before := m.EE.PC
	_, err := ProcessCommand("step 5", m)
	require.NoError(t, err)
	assert.Equal(t, before+5*4, m.EE.PC)
}

func TestRegsDoesNotError(t *testing.T) {
	m := newTestMachine(t)
	quit, err := ProcessCommand("regs", m)
	require.NoError(t, err)
	assert.False(t, quit)
}

func TestMemRequiresAddress(t *testing.T) {
	m := newTestMachine(t)
	_, err := ProcessCommand("mem", m)
	assert.Error(t, err)
}

func TestMemReadsBIOSRegion(t *testing.T) {
	m := newTestMachine(t)
	_, err := ProcessCommand("mem 0x1fc00000 4", m)
	require.NoError(t, err)
}

func TestQuitReturnsTrue(t *testing.T) {
	m := newTestMachine(t)
	quit, err := ProcessCommand("quit", m)
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestAbbreviatedCommandMatches(t *testing.T) {
	m := newTestMachine(t)
	quit, err := ProcessCommand("q", m)
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestUnknownCommandErrors(t *testing.T) {
	m := newTestMachine(t)
	_, err := ProcessCommand("bogus", m)
	assert.Error(t, err)
}

func TestCompleteCmdListsMatches(t *testing.T) {
	matches := CompleteCmd("s")
	assert.Contains(t, matches, "step")
}
