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

// Package machmem owns the byte-addressable buffers of the machine: main
// RAM, BIOS ROM, scratchpad, and the VU0/VU1 code and data stores. It is
// the only place quadword-and-smaller accesses at arbitrary natural
// alignment are memcpy'd in or out of a flat []byte, the way the teacher's
// memory package owns the single flat word array for the 370's storage.
package machmem

import (
	"fmt"

	"github.com/ps2core/emu/internal/ps2err"
)

const (
	RAMSize        = 32 * 1024 * 1024
	BIOSSize       = 4 * 1024 * 1024
	ScratchpadSize = 16 * 1024
	VU0CodeSize    = 4 * 1024
	VU0DataSize    = 4 * 1024
	VU1CodeSize    = 16 * 1024
	VU1DataSize    = 16 * 1024
)

// Arrays holds every flat buffer the bus can dispatch a bulk access into.
type Arrays struct {
	RAM        [RAMSize]byte
	BIOS       [BIOSSize]byte
	Scratchpad [ScratchpadSize]byte
	VU0Code    [VU0CodeSize]byte
	VU0Data    [VU0DataSize]byte
	VU1Code    [VU1CodeSize]byte
	VU1Data    [VU1DataSize]byte
}

// LoadBIOS copies a BIOS image into the BIOS buffer. The image must be
// exactly BIOSSize bytes; anything shorter is a fatal BiosError per
// spec.md §4.B / §7.
func (a *Arrays) LoadBIOS(image []byte) error {
	if len(image) != BIOSSize {
		return fmt.Errorf("%w: BIOS image is %d bytes, want %d", ps2err.ErrBios, len(image), BIOSSize)
	}
	copy(a.BIOS[:], image)
	return nil
}

// Read copies width bytes (1, 2, 4, 8, or 16) out of buf at offset, returning
// them little-endian packed into a uint64 pair (lo, hi) for the 128-bit case.
func Read(buf []byte, offset uint32, width int) (lo uint64, hi uint64, err error) {
	if err := boundsCheck(buf, offset, width); err != nil {
		return 0, 0, err
	}
	for i := 0; i < width && i < 8; i++ {
		lo |= uint64(buf[int(offset)+i]) << (8 * i)
	}
	for i := 8; i < width; i++ {
		hi |= uint64(buf[int(offset)+i]) << (8 * (i - 8))
	}
	return lo, hi, nil
}

// Write copies width bytes of (lo, hi) little-endian into buf at offset.
func Write(buf []byte, offset uint32, width int, lo, hi uint64) error {
	if err := boundsCheck(buf, offset, width); err != nil {
		return err
	}
	for i := 0; i < width && i < 8; i++ {
		buf[int(offset)+i] = byte(lo >> (8 * i))
	}
	for i := 8; i < width; i++ {
		buf[int(offset)+i] = byte(hi >> (8 * (i - 8)))
	}
	return nil
}

func boundsCheck(buf []byte, offset uint32, width int) error {
	end := uint64(offset) + uint64(width)
	if end > uint64(len(buf)) {
		return fmt.Errorf("%w: offset 0x%x width %d exceeds buffer of size 0x%x", ps2err.ErrAddress, offset, width, len(buf))
	}
	return nil
}
