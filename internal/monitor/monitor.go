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

// Package monitor is the interactive debug console: a liner-backed
// prompt loop dispatching a small table of EE-level commands against a
// running Machine. It replaces the teacher's device-oriented verb set
// (attach/detach/ipl/deposit/examine -- none of which have a PS2
// analog, there being no channel/device roster to attach tapes or
// disks to) with CPU-level verbs suited to a single interpreted core.
package monitor

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"github.com/ps2core/emu/internal/ee"
	"github.com/ps2core/emu/internal/machine"
)

type cmdLine struct {
	line string
	pos  int
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return l.line[start:l.pos]
}

type cmd struct {
	name     string
	min      int
	process  func(*cmdLine, *machine.Machine) (bool, error)
	complete func(*cmdLine) []string
}

var cmdList = []cmd{
	{name: "step", min: 1, process: cmdStep},
	{name: "regs", min: 1, process: cmdRegs},
	{name: "mem", min: 1, process: cmdMem},
	{name: "quit", min: 1, process: cmdQuit},
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if len(name) <= len(c.name) && len(name) >= c.min && c.name[:len(name)] == name {
			match = append(match, c)
		}
	}
	return match
}

// ProcessCommand executes one command line against m, returning true if
// the console should exit.
func ProcessCommand(commandLine string, m *machine.Machine) (bool, error) {
	line := &cmdLine{line: commandLine}
	word := line.getWord()

	match := matchList(word)
	switch len(match) {
	case 0:
		return false, fmt.Errorf("command not found: %s", word)
	case 1:
		return match[0].process(line, m)
	default:
		return false, fmt.Errorf("ambiguous command: %s", word)
	}
}

// CompleteCmd resolves in-progress line-editing completions, mirroring the
// teacher's command/parser CompleteCmd shape.
func CompleteCmd(commandLine string) []string {
	line := &cmdLine{line: commandLine}
	word := line.getWord()
	matches := matchList(word)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

func cmdStep(line *cmdLine, m *machine.Machine) (bool, error) {
	n := 1
	if w := line.getWord(); w != "" {
		v, err := strconv.Atoi(w)
		if err != nil {
			return false, fmt.Errorf("step: %w", err)
		}
		n = v
	}
	for i := 0; i < n; i++ {
		if err := m.Step(); err != nil {
			return false, err
		}
	}
	fmt.Printf("PC=0x%08x  %s\n", m.EE.PC, ee.Disassemble(fetchWord(m)))
	return false, nil
}

// fetchWord reads the instruction word at the EE's current PC for the
// monitor's post-step disassembly display, swallowing a read error into
// a zero word since this is a display aid, not the interpreter's own
// fetch path.
func fetchWord(m *machine.Machine) uint32 {
	lo, _, err := m.Bus.Read(4, m.EE.PC&0x1fff_ffff)
	if err != nil {
		return 0
	}
	return uint32(lo)
}

func cmdRegs(line *cmdLine, m *machine.Machine) (bool, error) {
	fmt.Printf("PC=0x%08x  HI=0x%016x  LO=0x%016x\n", m.EE.PC, m.EE.HI, m.EE.LO)
	for i := 0; i < 32; i += 4 {
		fmt.Printf("$%-2d=0x%016x  $%-2d=0x%016x  $%-2d=0x%016x  $%-2d=0x%016x\n",
			i, m.EE.GPR[i].Lo, i+1, m.EE.GPR[i+1].Lo, i+2, m.EE.GPR[i+2].Lo, i+3, m.EE.GPR[i+3].Lo)
	}
	return false, nil
}

func cmdMem(line *cmdLine, m *machine.Machine) (bool, error) {
	addrWord := line.getWord()
	if addrWord == "" {
		return false, errors.New("mem: missing address")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(addrWord, "0x"), 16, 32)
	if err != nil {
		return false, fmt.Errorf("mem: %w", err)
	}

	count := 16
	if w := line.getWord(); w != "" {
		v, err := strconv.Atoi(w)
		if err != nil {
			return false, fmt.Errorf("mem: %w", err)
		}
		count = v
	}

	for i := 0; i < count; i += 4 {
		lo, _, err := m.Bus.Read(4, uint32(addr)+uint32(i))
		if err != nil {
			return false, err
		}
		fmt.Printf("0x%08x: 0x%08x\n", uint32(addr)+uint32(i), uint32(lo))
	}
	return false, nil
}

func cmdQuit(line *cmdLine, m *machine.Machine) (bool, error) {
	return true, nil
}

// Run starts the liner-backed console loop, grounded on the teacher's
// command/reader.ConsoleReader (same liner setup and ErrPromptAborted
// handling, EE-level commands in place of S370 device verbs).
func Run(m *machine.Machine) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string { return CompleteCmd(l) })

	for {
		input, err := line.Prompt("ps2core> ")
		if err == nil {
			line.AppendHistory(input)
			quit, err := ProcessCommand(input, m)
			if err != nil {
				fmt.Println("error: " + err.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("monitor: error reading line", "error", err)
		return
	}
}
