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

// execute decodes insn and dispatches to the owning op, mirroring the
// teacher's "one function-table slot per opcode" shape generalized to
// MIPS's nested opcode/funct encoding.
func (e *EE) execute(insn uint32) error {
	f := decode(insn)
	switch f.opcode {
	case opSPECIAL:
		return e.execSpecial(insn, f)
	case opREGIMM:
		return e.execRegimm(insn, f)
	case opCOP0:
		return e.execCop0(insn, f)
	case opCOP1:
		return e.execCop1(insn, f)
	case opCOP2:
		return e.execCop2(insn, f)
	case opMMI:
		return e.execMMI(insn, f)
	case opJ:
		return e.opJ(f)
	case opJAL:
		return e.opJAL(f)
	case opBEQ:
		return e.opBEQ(f)
	case opBNE:
		return e.opBNE(f)
	case opBLEZ:
		return e.opBLEZ(f)
	case opBGTZ:
		return e.opBGTZ(f)
	case opBEQL:
		return e.opBEQL(f)
	case opBNEL:
		return e.opBNEL(f)
	case opBLEZL:
		return e.opBLEZL(f)
	case opBGTZL:
		return e.opBGTZL(f)
	case opADDIU:
		return e.opADDIU(f)
	case opSLTI:
		return e.opSLTI(f)
	case opSLTIU:
		return e.opSLTIU(f)
	case opANDI:
		return e.opANDI(f)
	case opORI:
		return e.opORI(f)
	case opXORI:
		return e.opXORI(f)
	case opLUI:
		return e.opLUI(f)
	case opDADDIU:
		return e.opDADDIU(f)
	case opLDL:
		return e.opLDL(f)
	case opLDR:
		return e.opLDR(f)
	case opLB:
		return e.opLB(f)
	case opLH:
		return e.opLH(f)
	case opLWL:
		return e.opLWL(f)
	case opLW:
		return e.opLW(f)
	case opLBU:
		return e.opLBU(f)
	case opLHU:
		return e.opLHU(f)
	case opLWR:
		return e.opLWR(f)
	case opLWU:
		return e.opLWU(f)
	case opSB:
		return e.opSB(f)
	case opSH:
		return e.opSH(f)
	case opSWL:
		return e.opSWL(f)
	case opSW:
		return e.opSW(f)
	case opSDL:
		return e.opSDL(f)
	case opSDR:
		return e.opSDR(f)
	case opSWR:
		return e.opSWR(f)
	case opCACHE:
		return nil // no-op, per spec.md §4.I "Other".
	case opLWC1:
		return e.opLWC1(f)
	case opSWC1:
		return e.opSWC1(f)
	case opLQ:
		return e.opLQ(f)
	case opSQ:
		return e.opSQ(f)
	case opLD:
		return e.opLD(f)
	case opSD:
		return e.opSD(f)
	default:
		return errDecode(insn)
	}
}

func (e *EE) execSpecial(insn uint32, f field) error {
	switch f.funct {
	case fnSLL:
		return e.opSLL(f)
	case fnSRL:
		return e.opSRL(f)
	case fnSRA:
		return e.opSRA(f)
	case fnSLLV:
		return e.opSLLV(f)
	case fnSRLV:
		return e.opSRLV(f)
	case fnSRAV:
		return e.opSRAV(f)
	case fnJR:
		return e.opJR(f)
	case fnJALR:
		return e.opJALR(f)
	case fnMOVZ:
		return e.opMOVZ(f)
	case fnMOVN:
		return e.opMOVN(f)
	case fnSYSCALL:
		return e.raiseSyscall()
	case fnSYNC:
		return nil // no-op; nothing is logged.
	case fnMFHI:
		return e.opMFHI(f)
	case fnMTHI:
		return e.opMTHI(f)
	case fnMFLO:
		return e.opMFLO(f)
	case fnMTLO:
		return e.opMTLO(f)
	case fnDSLLV:
		return e.opDSLLV(f)
	case fnDSRLV:
		return e.opDSRLV(f)
	case fnDSRAV:
		return e.opDSRAV(f)
	case fnMULT:
		return e.opMULT(f)
	case fnMULTU:
		return e.opMULTU(f)
	case fnDIV:
		return e.opDIV(f)
	case fnDIVU:
		return e.opDIVU(f)
	case fnADDU:
		return e.opADDU(f)
	case fnSUBU:
		return e.opSUBU(f)
	case fnAND:
		return e.opAND(f)
	case fnOR:
		return e.opOR(f)
	case fnXOR:
		return e.opXOR(f)
	case fnNOR:
		return e.opNOR(f)
	case fnSLT:
		return e.opSLT(f)
	case fnSLTU:
		return e.opSLTU(f)
	case fnDADDU:
		return e.opDADDU(f)
	case fnDSUBU:
		return e.opDSUBU(f)
	case fnDSLL:
		return e.opDSLL(f)
	case fnDSRL:
		return e.opDSRL(f)
	case fnDSRA:
		return e.opDSRA(f)
	case fnDSLL32:
		return e.opDSLL32(f)
	case fnDSRL32:
		return e.opDSRL32(f)
	case fnDSRA32:
		return e.opDSRA32(f)
	case fnMFSA:
		return e.opMFSA(f)
	case fnMTSA:
		return e.opMTSA(f)
	default:
		return errDecode(insn)
	}
}

func (e *EE) execRegimm(insn uint32, f field) error {
	switch f.rt {
	case riBLTZ:
		return e.opBLTZ(f)
	case riBGEZ:
		return e.opBGEZ(f)
	case riBLTZL:
		return e.opBLTZL(f)
	case riBGEZL:
		return e.opBGEZL(f)
	default:
		return errDecode(insn)
	}
}
