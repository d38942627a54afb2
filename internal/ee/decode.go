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

package ee

// field is the decoded common instruction fields (spec.md §4.I).
type field struct {
	opcode uint32
	funct  uint32
	rs, rt, rd uint32
	sa     uint32
	imm16  uint32
	index  uint32
}

func decode(insn uint32) field {
	return field{
		opcode: insn >> 26,
		funct:  insn & 0x3f,
		rs:     (insn >> 21) & 0x1f,
		rt:     (insn >> 16) & 0x1f,
		rd:     (insn >> 11) & 0x1f,
		sa:     (insn >> 6) & 0x1f,
		imm16:  insn & 0xffff,
		index:  insn & 0x03ff_ffff,
	}
}

func (f field) simm16() int32 { return int32(int16(f.imm16)) }

// Primary opcodes.
const (
	opSPECIAL = 0x00
	opREGIMM  = 0x01
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opBLEZ    = 0x06
	opBGTZ    = 0x07
	opADDIU   = 0x09
	opSLTI    = 0x0a
	opSLTIU   = 0x0b
	opANDI    = 0x0c
	opORI     = 0x0d
	opXORI    = 0x0e
	opLUI     = 0x0f
	opCOP0    = 0x10
	opCOP1    = 0x11
	opCOP2    = 0x12
	opBEQL    = 0x14
	opBNEL    = 0x15
	opBLEZL   = 0x16
	opBGTZL   = 0x17
	opDADDIU  = 0x19
	opLDL     = 0x1a
	opLDR     = 0x1b
	opMMI     = 0x1c
	opLB      = 0x20
	opLH      = 0x21
	opLWL     = 0x22
	opLW      = 0x23
	opLBU     = 0x24
	opLHU     = 0x25
	opLWR     = 0x26
	opLWU     = 0x27
	opSB      = 0x28
	opSH      = 0x29
	opSWL     = 0x2a
	opSW      = 0x2b
	opSDL     = 0x2c
	opSDR     = 0x2d
	opSWR     = 0x2e
	opCACHE   = 0x2f
	opLWC1    = 0x31
	opLQ      = 0x1e
	opSQ      = 0x1f
	opLD      = 0x37
	opSWC1    = 0x39
	opSD      = 0x3f
)

// SPECIAL (opcode 0) functs.
const (
	fnSLL     = 0x00
	fnSRL     = 0x02
	fnSRA     = 0x03
	fnSLLV    = 0x04
	fnSRLV    = 0x06
	fnSRAV    = 0x07
	fnJR      = 0x08
	fnJALR    = 0x09
	fnMOVZ    = 0x0a
	fnMOVN    = 0x0b
	fnSYSCALL = 0x0c
	fnSYNC    = 0x0f
	fnMFHI    = 0x10
	fnMTHI    = 0x11
	fnMFLO    = 0x12
	fnMTLO    = 0x13
	fnDSLLV   = 0x14
	fnDSRLV   = 0x16
	fnDSRAV   = 0x17
	fnMULT    = 0x18
	fnMULTU   = 0x19
	fnDIV     = 0x1a
	fnDIVU    = 0x1b
	fnADDU    = 0x21
	fnSUBU    = 0x23
	fnAND     = 0x24
	fnOR      = 0x25
	fnXOR     = 0x26
	fnNOR     = 0x27
	fnSLT     = 0x2a
	fnSLTU    = 0x2b
	fnDADDU   = 0x2d
	fnDSUBU   = 0x2f
	fnDSLL    = 0x38
	fnDSRL    = 0x3a
	fnDSRA    = 0x3b
	fnDSLL32  = 0x3c
	fnDSRL32  = 0x3e
	fnDSRA32  = 0x3f
	fnMFSA    = 0x28
	fnMTSA    = 0x29
)

// REGIMM (opcode 1) rt selectors.
const (
	riBLTZ  = 0x00
	riBGEZ  = 0x01
	riBLTZL = 0x02
	riBGEZL = 0x03
)

// COPn rs selectors.
const (
	copMF  = 0x00
	copMT  = 0x04
	copCF  = 0x02
	copCT  = 0x06
	copQMF = 0x01 // COP2-only QMFC2.
	copQMT = 0x05 // COP2-only QMTC2.
	copCO  = 0x10 // rs field value signalling a COP0 "CO" function group.
)

// COP0 CO functs.
const (
	fnTLBWI = 0x02
	fnERET  = 0x18
	fnEI    = 0x38
	fnDI    = 0x39
)

// VU0 macro-mode functs, addressed through COP2's CO group (rs field
// 0x10..0x1f) the same way COP0's TLB/ERET ops are (spec.md §4.F).
const (
	macroFuncIADD = 0x00
	macroFuncISWR = 0x01
	macroFuncSQI  = 0x02
	macroFuncSUB  = 0x03
)
