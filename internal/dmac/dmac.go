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

// Package dmac implements the DMA controller: ten channel register sets
// and the source-chain DMA-tag walker that drives them (spec.md §4.G).
package dmac

import (
	"fmt"

	"github.com/ps2core/emu/internal/ps2err"
)

// Channel identifies one of the ten DMAC channels.
type Channel int

const (
	ChanVif0 Channel = iota
	ChanVif1
	ChanPath3
	ChanIpuFrom
	ChanIpuTo
	ChanSif0
	ChanSif1
	ChanSif2
	ChanSprFrom
	ChanSprTo
	numChannels
)

// channelByte maps the top byte of a DMAC channel I/O address to a
// channel identity, per spec.md §4.G.
var channelByte = map[uint32]Channel{
	0x80: ChanVif0,
	0x90: ChanVif1,
	0xa0: ChanPath3,
	0xb0: ChanIpuFrom,
	0xb4: ChanIpuTo,
	0xc0: ChanSif0,
	0xc4: ChanSif1,
	0xc8: ChanSif2,
	0xd0: ChanSprFrom,
	0xd4: ChanSprTo,
}

// ChannelFromByte resolves a DMAC channel-select byte, or an error for an
// unrecognized byte (a fatal decoding error per spec.md §4.G).
func ChannelFromByte(b uint32) (Channel, error) {
	c, ok := channelByte[b]
	if !ok {
		return 0, fmt.Errorf("%w: dmac channel byte 0x%x", ps2err.ErrDma, b)
	}
	return c, nil
}

// Direction is CHCR.DIR.
type Direction uint8

const (
	DirTo Direction = iota
	DirFrom
)

// Mode is CHCR.MOD.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeChain
	ModeInterleave
)

// Chcr is the decomposed channel control register.
type Chcr struct {
	Dir Direction
	Mod Mode
	Asp uint8
	Tte bool
	Tie bool
	Str bool
	Tag uint16
}

func decodeChcr(w uint32) Chcr {
	return Chcr{
		Dir: Direction(w & 1),
		Mod: Mode((w >> 2) & 0x3),
		Asp: uint8((w >> 4) & 0x3),
		Tte: w&(1<<6) != 0,
		Tie: w&(1<<7) != 0,
		Str: w&(1<<8) != 0,
		Tag: uint16((w >> 16) & 0xffff),
	}
}

func (c Chcr) encode() uint32 {
	w := uint32(c.Dir & 1)
	w |= uint32(c.Mod&0x3) << 2
	w |= uint32(c.Asp&0x3) << 4
	if c.Tte {
		w |= 1 << 6
	}
	if c.Tie {
		w |= 1 << 7
	}
	if c.Str {
		w |= 1 << 8
	}
	w |= uint32(c.Tag) << 16
	return w
}

// Chan is one DMAC channel's register set.
type Chan struct {
	Chcr Chcr
	Madr uint32
	Tadr uint32
	Qwc  uint32
	Asr  [2]uint32
	Sadr uint32

	// Req is set by a peer device indicating it is ready to exchange
	// (SIF1 is preset true at boot, per spec.md §3).
	Req bool

	asp int
}

// Tag is a decoded 128-bit DMA tag (spec.md §3).
type Tag struct {
	QWC   uint16
	ID    uint8
	IRQ   bool
	Addr  uint32
	SPR   bool
	Upper uint16 // bits [16..31], fed back into CHCR.tag.
}

const (
	TagRefe uint8 = iota
	TagCnt
	TagNext
	TagRef
	TagRefs
	TagCall
	TagRet
	TagEnd
)

func decodeTag(lo uint64) Tag {
	return Tag{
		QWC:   uint16(lo & 0xffff),
		ID:    uint8((lo >> 28) & 0x7),
		IRQ:   lo&(1<<31) != 0,
		Addr:  uint32((lo >> 32) & 0x7fffffff),
		SPR:   lo&(1<<63) != 0,
		Upper: uint16((lo >> 16) & 0xffff),
	}
}

// Memory is the bulk-RAM port the chain walker reads tags and payload
// quadwords from.
type Memory interface {
	ReadQWord(addr uint32) (lo, hi uint64, err error)
}

// Sink is a channel's peer-device quadword consumer (GIF, VIF, IPU_IN,
// SIF1, ...). Channels this project does not model a peer for may leave
// Sink nil; quadwords are then dropped (matching spec.md's treatment of
// unmodeled peers as stub sinks).
type Sink func(lo, hi uint64)

// Dmac is the ten-channel controller.
type Dmac struct {
	Enabled bool
	chans   [numChannels]Chan
	sinks   [numChannels]Sink
	mem     Memory
}

// New returns a Dmac reading bulk memory through mem.
func New(mem Memory) *Dmac {
	d := &Dmac{mem: mem}
	d.chans[ChanSif1].Req = true // SIF1 preset true at boot, per spec.md §3.
	return d
}

// SetSink wires a channel's peer-device consumer.
func (d *Dmac) SetSink(c Channel, sink Sink) { d.sinks[c] = sink }

// Chan returns a copy of channel c's register set.
func (d *Dmac) Chan(c Channel) Chan { return d.chans[c] }

// WriteChcr updates CHCR and always triggers CheckRunning.
func (d *Dmac) WriteChcr(c Channel, w uint32) error {
	d.chans[c].Chcr = decodeChcr(w)
	return d.CheckRunning()
}

// ReadChcr re-encodes CHCR from the decomposed fields.
func (d *Dmac) ReadChcr(c Channel) uint32 { return d.chans[c].Chcr.encode() }

func (d *Dmac) WriteMadr(c Channel, w uint32) { d.chans[c].Madr = w }
func (d *Dmac) WriteTadr(c Channel, w uint32) { d.chans[c].Tadr = w }
func (d *Dmac) WriteQwc(c Channel, w uint32)  { d.chans[c].Qwc = w & 0xffff }
func (d *Dmac) WriteSadr(c Channel, w uint32) { d.chans[c].Sadr = w }

// WriteDCtrl toggles the global enable; setting it also triggers
// CheckRunning.
func (d *Dmac) WriteDCtrl(w uint32) error {
	enable := w&1 != 0
	d.Enabled = enable
	if enable {
		return d.CheckRunning()
	}
	return nil
}

// CheckRunning scans channels in ascending channel-id order and begins a
// transfer for each armed (STR && Req) channel. Only chain mode is
// implemented; a non-chain STR channel is left alone rather than
// started, since spec.md scopes only Chain mode for the baseline.
func (d *Dmac) CheckRunning() error {
	if !d.Enabled {
		return nil
	}
	for c := Channel(0); c < numChannels; c++ {
		ch := &d.chans[c]
		if !ch.Chcr.Str || !ch.Req {
			continue
		}
		if ch.Chcr.Mod != ModeChain {
			continue
		}
		if err := d.runChain(c); err != nil {
			return err
		}
	}
	return nil
}

// runChain executes the source-chain walker for direction To (spec.md
// §4.G). Direction From is not modeled; it is reported as a fatal
// "unhandled" condition, matching the baseline's scope.
func (d *Dmac) runChain(c Channel) error {
	ch := &d.chans[c]
	if ch.Chcr.Dir != DirTo {
		return fmt.Errorf("%w: dmac channel %d DIR=From chain mode unhandled", ps2err.ErrDma, c)
	}

	for {
		if ch.Qwc != 0 {
			if err := d.transfer(c, ch.Madr, ch.Qwc); err != nil {
				return err
			}
			ch.Madr += 16 * ch.Qwc
			ch.Qwc = 0
		}

		tagAddr := ch.Tadr
		lo, _, err := d.mem.ReadQWord(tagAddr)
		if err != nil {
			return err
		}
		tag := decodeTag(lo)
		ch.Chcr.Tag = tag.Upper

		end := false
		switch tag.ID {
		case TagRefe:
			ch.Madr = tag.Addr
			ch.Qwc = uint32(tag.QWC)
			end = true
		case TagCnt:
			ch.Madr = ch.Tadr + 16
			ch.Qwc = uint32(tag.QWC)
			ch.Tadr = ch.Madr + 16*uint32(tag.QWC)
		case TagNext:
			ch.Madr = ch.Tadr + 16
			ch.Qwc = uint32(tag.QWC)
			ch.Tadr = tag.Addr
		case TagRef, TagRefs:
			ch.Madr = tag.Addr
			ch.Tadr += 16
			ch.Qwc = uint32(tag.QWC)
		case TagCall:
			if int(ch.Chcr.Asp) >= len(ch.Asr) {
				return fmt.Errorf("%w: dmac channel %d ASR stack overflow", ps2err.ErrDma, c)
			}
			ch.Asr[ch.Chcr.Asp] = ch.Tadr + 16
			ch.Chcr.Asp++
			ch.Madr = ch.Tadr + 16
			ch.Tadr = tag.Addr
			ch.Qwc = uint32(tag.QWC)
		case TagRet:
			if ch.Chcr.Asp == 0 {
				return fmt.Errorf("%w: dmac channel %d ASR stack underflow", ps2err.ErrDma, c)
			}
			ch.Chcr.Asp--
			ch.Tadr = ch.Asr[ch.Chcr.Asp]
			ch.Madr = ch.Tadr + 16
			ch.Qwc = uint32(tag.QWC)
		case TagEnd:
			ch.Madr = ch.Tadr + 16
			ch.Qwc = uint32(tag.QWC)
			end = true
		default:
			return fmt.Errorf("%w: dmac channel %d unknown tag id %d", ps2err.ErrDma, c, tag.ID)
		}

		if ch.Chcr.Tte {
			lo2, hi2, err := d.mem.ReadQWord(tagAddr)
			if err != nil {
				return err
			}
			d.push(c, lo2, hi2)
		}

		if err := d.transfer(c, ch.Madr, ch.Qwc); err != nil {
			return err
		}
		ch.Madr += 16 * ch.Qwc
		ch.Qwc = 0

		if end {
			ch.Chcr.Str = false
			ch.Req = false
			return nil
		}
	}
}

func (d *Dmac) transfer(c Channel, addr uint32, qwc uint32) error {
	for i := uint32(0); i < qwc; i++ {
		lo, hi, err := d.mem.ReadQWord(addr + 16*i)
		if err != nil {
			return err
		}
		d.push(c, lo, hi)
	}
	return nil
}

func (d *Dmac) push(c Channel, lo, hi uint64) {
	if sink := d.sinks[c]; sink != nil {
		sink(lo, hi)
	}
}
