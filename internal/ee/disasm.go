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

import "fmt"

// Disassemble renders a best-effort mnemonic for a single instruction word,
// used only by the monitor's "step" display -- not a verification oracle. Unrecognized encodings fall back
// to a raw hex dump, mirroring the teacher's disassembler's treatment of
// opcodes outside its map.
func Disassemble(word uint32) string {
	f := decode(word)
	switch f.opcode {
	case opSPECIAL:
		if name, ok := specialNames[f.funct]; ok {
			return fmt.Sprintf("%s $%d, $%d, $%d", name, f.rd, f.rs, f.rt)
		}
	case opREGIMM:
		if name, ok := regimmNames[f.rt]; ok {
			return fmt.Sprintf("%s $%d, %d", name, f.rs, f.simm16())
		}
	case opCOP0, opCOP1, opCOP2:
		return disasmCop(f)
	case opMMI:
		return disasmMMI(f)
	default:
		if name, ok := opcodeNames[f.opcode]; ok {
			return fmt.Sprintf("%s $%d, $%d, %d", name, f.rt, f.rs, f.simm16())
		}
	}
	return fmt.Sprintf(".word 0x%08x", word)
}

var opcodeNames = map[uint32]string{
	opJ:      "j",
	opJAL:    "jal",
	opBEQ:    "beq",
	opBNE:    "bne",
	opBLEZ:   "blez",
	opBGTZ:   "bgtz",
	opADDIU:  "addiu",
	opSLTI:   "slti",
	opSLTIU:  "sltiu",
	opANDI:   "andi",
	opORI:    "ori",
	opXORI:   "xori",
	opLUI:    "lui",
	opBEQL:   "beql",
	opBNEL:   "bnel",
	opBLEZL:  "blezl",
	opBGTZL:  "bgtzl",
	opDADDIU: "daddiu",
	opLDL:    "ldl",
	opLDR:    "ldr",
	opLB:     "lb",
	opLH:     "lh",
	opLWL:    "lwl",
	opLW:     "lw",
	opLBU:    "lbu",
	opLHU:    "lhu",
	opLWR:    "lwr",
	opLWU:    "lwu",
	opSB:     "sb",
	opSH:     "sh",
	opSWL:    "swl",
	opSW:     "sw",
	opSDL:    "sdl",
	opSDR:    "sdr",
	opSWR:    "swr",
	opCACHE:  "cache",
	opLWC1:   "lwc1",
	opSWC1:   "swc1",
	opLQ:     "lq",
	opSQ:     "sq",
	opLD:     "ld",
	opSD:     "sd",
}

var specialNames = map[uint32]string{
	fnSLL:     "sll",
	fnSRL:     "srl",
	fnSRA:     "sra",
	fnSLLV:    "sllv",
	fnSRLV:    "srlv",
	fnSRAV:    "srav",
	fnJR:      "jr",
	fnJALR:    "jalr",
	fnMOVZ:    "movz",
	fnMOVN:    "movn",
	fnSYSCALL: "syscall",
	fnSYNC:    "sync",
	fnMFHI:    "mfhi",
	fnMTHI:    "mthi",
	fnMFLO:    "mflo",
	fnMTLO:    "mtlo",
	fnDSLLV:   "dsllv",
	fnDSRLV:   "dsrlv",
	fnDSRAV:   "dsrav",
	fnMULT:    "mult",
	fnMULTU:   "multu",
	fnDIV:     "div",
	fnDIVU:    "divu",
	fnADDU:    "addu",
	fnSUBU:    "subu",
	fnAND:     "and",
	fnOR:      "or",
	fnXOR:     "xor",
	fnNOR:     "nor",
	fnSLT:     "slt",
	fnSLTU:    "sltu",
	fnDADDU:   "daddu",
	fnDSUBU:   "dsubu",
	fnDSLL:    "dsll",
	fnDSRL:    "dsrl",
	fnDSRA:    "dsra",
	fnDSLL32:  "dsll32",
	fnDSRL32:  "dsrl32",
	fnDSRA32:  "dsra32",
	fnMFSA:    "mfsa",
	fnMTSA:    "mtsa",
}

var regimmNames = map[uint32]string{
	riBLTZ:  "bltz",
	riBGEZ:  "bgez",
	riBLTZL: "bltzl",
	riBGEZL: "bgezl",
}

func disasmCop(f field) string {
	prefix := "cop"
	switch f.opcode {
	case opCOP0:
		prefix = "cop0"
	case opCOP1:
		prefix = "cop1"
	case opCOP2:
		prefix = "cop2"
	}
	switch f.rs {
	case copMF:
		return fmt.Sprintf("mfc%s $%d, $%d", prefix[3:], f.rt, f.rd)
	case copMT:
		return fmt.Sprintf("mtc%s $%d, $%d", prefix[3:], f.rt, f.rd)
	case copCF:
		return fmt.Sprintf("cfc%s $%d, $%d", prefix[3:], f.rt, f.rd)
	case copCT:
		return fmt.Sprintf("ctc%s $%d, $%d", prefix[3:], f.rt, f.rd)
	case copQMF:
		return fmt.Sprintf("qmfc2 $%d, vf%d", f.rt, f.rd)
	case copQMT:
		return fmt.Sprintf("qmtc2 $%d, vf%d", f.rt, f.rd)
	}
	if f.rs >= 0x10 {
		switch f.opcode {
		case opCOP0:
			switch f.funct {
			case fnTLBWI:
				return "tlbwi"
			case fnERET:
				return "eret"
			case fnEI:
				return "ei"
			case fnDI:
				return "di"
			}
		case opCOP2:
			switch f.funct {
			case macroFuncIADD:
				// VU field layout: rd is EE sa (bits 6..10), rs is EE rd (bits 11..15).
				return fmt.Sprintf("iadd vi%d, vi%d, vi%d", f.sa, f.rd, f.rt)
			case macroFuncISWR:
				return fmt.Sprintf("iswr.xyzw vi%d, (vi%d)", f.rt, f.rd)
			case macroFuncSQI:
				return fmt.Sprintf("sqi.xyzw vf%d, (vi%d++)", f.sa, f.rd)
			case macroFuncSUB:
				return fmt.Sprintf("sub.xyzw vf%d, vf%d, vf%d", f.sa, f.rd, f.rt)
			}
		}
	}
	return fmt.Sprintf(".word cop rs=0x%x funct=0x%x", f.rs, f.funct)
}

func disasmMMI(f field) string {
	switch f.funct {
	case mmiPLZCW:
		return fmt.Sprintf("plzcw $%d, $%d", f.rd, f.rs)
	case mmiPMFHI:
		return fmt.Sprintf("pmfhi $%d", f.rd)
	case mmiPMFLO:
		return fmt.Sprintf("pmflo $%d", f.rd)
	case mmiMMI1:
		if f.sa == saPOR {
			return fmt.Sprintf("por $%d, $%d, $%d", f.rd, f.rs, f.rt)
		}
	case mmiMMI3:
		if f.sa == saPADDUW {
			return fmt.Sprintf("padduw $%d, $%d, $%d", f.rd, f.rs, f.rt)
		}
	}
	return fmt.Sprintf(".word mmi funct=0x%x sa=0x%x", f.funct, f.sa)
}
