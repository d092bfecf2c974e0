package cpu

import (
	"lr35902/bits"
	"lr35902/mem"
)

// Execute runs one decoded instruction against the register file and
// memory, returning the number of M-cycles it took (1 M-cycle = 4 T-cycles).
// PC must already have been advanced past the instruction's bytes before
// this is called — relative jumps and calls compute against that
// post-advance value, not the instruction's own address.
func Execute(r *Registers, m *mem.Memory, insn Instruction) (int, error) {
	switch insn.Kind {
	case KindUnknown:
		return 0, &ExecutionError{Kind: ErrIllegalInstruction, Op: insn.Opcode}

	case KindNOP:
		return 1, nil

	case KindLdR16Imm16:
		r.SetWord(insn.R16, insn.Imm16)
		return 3, nil

	case KindLdR16MemA:
		execLdR16MemA(r, m, insn.R16Mem)
		return 2, nil

	case KindLdAR16Mem:
		execLdAR16Mem(r, m, insn.R16Mem)
		return 2, nil

	case KindLdAddrImm16SP:
		if err := m.WriteWord(insn.Imm16, r.Word(RegSP)); err != nil {
			return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
		}
		return 5, nil

	case KindIncR16:
		r.SetWord(insn.R16, r.Word(insn.R16)+1)
		return 2, nil

	case KindDecR16:
		r.SetWord(insn.R16, r.Word(insn.R16)-1)
		return 2, nil

	case KindAddHLR16:
		execAddHLR16(r, insn.R16)
		return 2, nil

	case KindIncR8:
		execIncR8(r, m, insn.R8Dst)
		if insn.R8Dst == AddrHL {
			return 3, nil
		}
		return 1, nil

	case KindDecR8:
		execDecR8(r, m, insn.R8Dst)
		if insn.R8Dst == AddrHL {
			return 3, nil
		}
		return 1, nil

	case KindLdR8Imm8:
		writeR8(r, m, insn.R8Dst, insn.Imm8)
		if insn.R8Dst == AddrHL {
			return 3, nil
		}
		return 2, nil

	case KindRLCA:
		execRLCA(r)
		return 1, nil
	case KindRRCA:
		execRRCA(r)
		return 1, nil
	case KindRLA:
		execRLA(r)
		return 1, nil
	case KindRRA:
		execRRA(r)
		return 1, nil
	case KindDAA:
		execDAA(r)
		return 1, nil
	case KindCPL:
		execCPL(r)
		return 1, nil
	case KindSCF:
		execSCF(r)
		return 1, nil
	case KindCCF:
		execCCF(r)
		return 1, nil

	case KindJrImm8:
		execJr(r, bits.SignExtend(insn.Imm8))
		return 3, nil

	case KindJrCondImm8:
		if insn.Cond.satisfied(r) {
			execJr(r, bits.SignExtend(insn.Imm8))
			return 3, nil
		}
		return 2, nil

	case KindSTOP:
		r.stopped = true
		return 1, nil

	case KindLdR8R8:
		writeR8(r, m, insn.R8Dst, readR8(r, m, insn.R8Src))
		if insn.R8Dst == AddrHL || insn.R8Src == AddrHL {
			return 2, nil
		}
		return 1, nil

	case KindHALT:
		r.halted = true
		return 1, nil

	case KindAluR8:
		aluApply(r, insn.Alu, readR8(r, m, insn.R8Src))
		if insn.R8Src == AddrHL {
			return 2, nil
		}
		return 1, nil

	case KindAluImm8:
		aluApply(r, insn.Alu, insn.Imm8)
		return 2, nil

	case KindPopR16Stk:
		v, err := popWord(r, m)
		if err != nil {
			return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
		}
		r.SetWord(insn.R16Stk.reg(), v)
		return 3, nil

	case KindPushR16Stk:
		if err := pushWord(r, m, r.Word(insn.R16Stk.reg())); err != nil {
			return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
		}
		return 4, nil

	case KindRET:
		if err := execRet(r, m); err != nil {
			return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
		}
		return 4, nil

	case KindRETI:
		if err := execRet(r, m); err != nil {
			return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
		}
		r.ime = true
		r.imePending = 0
		return 4, nil

	case KindRetCond:
		if insn.Cond.satisfied(r) {
			if err := execRet(r, m); err != nil {
				return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
			}
			return 5, nil
		}
		return 2, nil

	case KindJpImm16:
		execJp(r, insn.Imm16)
		return 4, nil

	case KindJpCondImm16:
		if insn.Cond.satisfied(r) {
			execJp(r, insn.Imm16)
			return 4, nil
		}
		return 3, nil

	case KindJpHL:
		execJp(r, r.Word(RegHL))
		return 1, nil

	case KindCallImm16:
		if err := execCall(r, m, insn.Imm16); err != nil {
			return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
		}
		return 6, nil

	case KindCallCondImm16:
		if insn.Cond.satisfied(r) {
			if err := execCall(r, m, insn.Imm16); err != nil {
				return 0, &ExecutionError{Kind: ErrMemoryOutOfBounds, Err: err}
			}
			return 6, nil
		}
		return 3, nil

	case KindLdhAddrImm8A:
		execLdhAddrImm8A(r, m, insn.Imm8)
		return 3, nil

	case KindLdhAAddrImm8:
		execLdhAAddrImm8(r, m, insn.Imm8)
		return 3, nil

	case KindLdhAddrCA:
		execLdhAddrCA(r, m)
		return 2, nil

	case KindLdhAAddrC:
		execLdhAAddrC(r, m)
		return 2, nil

	case KindLdAddrImm16A:
		m.WriteByte(insn.Imm16, r.Byte(RegA))
		return 4, nil

	case KindLdAAddrImm16:
		r.SetByte(RegA, m.ReadByte(insn.Imm16))
		return 4, nil

	case KindDI:
		r.DisableInterrupts()
		return 1, nil

	case KindEI:
		r.EnableInterrupts()
		return 1, nil

	default:
		return 0, &ExecutionError{Kind: ErrIllegalInstruction, Op: insn.Opcode}
	}
}
