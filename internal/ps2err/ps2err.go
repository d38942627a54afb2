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

// Package ps2err names the host-level error taxonomy of spec.md §7. These
// are sentinel errors meant to be wrapped with fmt.Errorf("...: %w", ...)
// at the call site so errors.Is keeps working up through the orchestrator,
// the way the teacher threads a plain error string up out of the channel
// and CPU packages to main.go.
package ps2err

import "errors"

var (
	// ErrDecode: unknown opcode/funct/rs/rt/sa combination.
	ErrDecode = errors.New("decode error")
	// ErrAddress: unaligned access, or address outside any region.
	ErrAddress = errors.New("address error")
	// ErrWidth: access to an I/O region at an unsupported width.
	ErrWidth = errors.New("width error")
	// ErrDma: unknown channel, unknown tag id, unsupported mode/direction.
	ErrDma = errors.New("dma error")
	// ErrBios: BIOS file missing or wrong size.
	ErrBios = errors.New("bios error")
)
