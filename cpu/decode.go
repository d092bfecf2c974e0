package cpu

import "lr35902/bits"

// Decode reads one instruction from the front of b, which must hold the
// bytes at and after PC (up to 3, the longest instruction). It never reads
// past len(b); if b is too short for the opcode it just decoded, it
// returns a DisassemblyError instead of guessing.
func Decode(b []byte) (Instruction, error) {
	if len(b) == 0 {
		return Instruction{}, &DisassemblyError{Kind: ErrEndOfInput}
	}
	op := b[0]
	switch bits.Range(op, bits.I1, bits.I2) {
	case 0b00:
		return decodeBlock0(op, b)
	case 0b01:
		return decodeBlock1(op, b)
	case 0b10:
		return decodeBlock2(op, b)
	default:
		return decodeBlock3(op, b)
	}
}

// need reports whether b holds at least n bytes, returning a
// DisassemblyError naming op when it does not.
func need(b []byte, op byte, n int) error {
	if len(b) < n {
		return &DisassemblyError{Kind: ErrMissingOperand, Opcode: op}
	}
	return nil
}

func imm8(b []byte) uint8  { return b[1] }
func imm16(b []byte) uint16 {
	return bits.Word(b[2], b[1])
}

func decodeBlock0(op byte, b []byte) (Instruction, error) {
	switch {
	case op == 0x00:
		return Instruction{Kind: KindNOP, Length: 1}, nil
	case op == 0x08:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindLdAddrImm16SP, Length: 3, Imm16: imm16(b)}, nil
	case op == 0x10:
		// STOP consumes a second, ignored byte on real hardware.
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindSTOP, Length: 2}, nil
	case op == 0x18:
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindJrImm8, Length: 2, Imm8: imm8(b)}, nil
	case op&0xE7 == 0x20:
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		cond := Cond(bits.Range(op, bits.I4, bits.I5))
		return Instruction{Kind: KindJrCondImm8, Length: 2, Cond: cond, Imm8: imm8(b)}, nil
	case op&0x0F == 0x01:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		r16 := r16FromBits(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindLdR16Imm16, Length: 3, R16: r16, Imm16: imm16(b)}, nil
	case op&0x0F == 0x02:
		mem := R16Mem(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindLdR16MemA, Length: 1, R16Mem: mem}, nil
	case op&0x0F == 0x0A:
		mem := R16Mem(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindLdAR16Mem, Length: 1, R16Mem: mem}, nil
	case op&0x0F == 0x03:
		r16 := r16FromBits(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindIncR16, Length: 1, R16: r16}, nil
	case op&0x0F == 0x0B:
		r16 := r16FromBits(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindDecR16, Length: 1, R16: r16}, nil
	case op&0x0F == 0x09:
		r16 := r16FromBits(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindAddHLR16, Length: 1, R16: r16}, nil
	case op&0x07 == 0x04:
		r8 := r8FromBits(bits.Range(op, bits.I3, bits.I5))
		return Instruction{Kind: KindIncR8, Length: 1, R8Dst: r8}, nil
	case op&0x07 == 0x05:
		r8 := r8FromBits(bits.Range(op, bits.I3, bits.I5))
		return Instruction{Kind: KindDecR8, Length: 1, R8Dst: r8}, nil
	case op&0x07 == 0x06:
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		r8 := r8FromBits(bits.Range(op, bits.I3, bits.I5))
		return Instruction{Kind: KindLdR8Imm8, Length: 2, R8Dst: r8, Imm8: imm8(b)}, nil
	case op == 0x07:
		return Instruction{Kind: KindRLCA, Length: 1}, nil
	case op == 0x0F:
		return Instruction{Kind: KindRRCA, Length: 1}, nil
	case op == 0x17:
		return Instruction{Kind: KindRLA, Length: 1}, nil
	case op == 0x1F:
		return Instruction{Kind: KindRRA, Length: 1}, nil
	case op == 0x27:
		return Instruction{Kind: KindDAA, Length: 1}, nil
	case op == 0x2F:
		return Instruction{Kind: KindCPL, Length: 1}, nil
	case op == 0x37:
		return Instruction{Kind: KindSCF, Length: 1}, nil
	case op == 0x3F:
		return Instruction{Kind: KindCCF, Length: 1}, nil
	default:
		return Instruction{Kind: KindUnknown, Length: 1, Opcode: op}, nil
	}
}

func decodeBlock1(op byte, b []byte) (Instruction, error) {
	if op == 0x76 {
		return Instruction{Kind: KindHALT, Length: 1}, nil
	}
	dst := r8FromBits(bits.Range(op, bits.I3, bits.I5))
	src := r8FromBits(bits.Range(op, bits.I6, bits.I8))
	return Instruction{Kind: KindLdR8R8, Length: 1, R8Dst: dst, R8Src: src}, nil
}

func decodeBlock2(op byte, b []byte) (Instruction, error) {
	alu := AluOp(bits.Range(op, bits.I3, bits.I5))
	src := r8FromBits(bits.Range(op, bits.I6, bits.I8))
	return Instruction{Kind: KindAluR8, Length: 1, Alu: alu, R8Src: src}, nil
}

func decodeBlock3(op byte, b []byte) (Instruction, error) {
	switch {
	case op == 0xC9:
		return Instruction{Kind: KindRET, Length: 1}, nil
	case op == 0xD9:
		return Instruction{Kind: KindRETI, Length: 1}, nil
	case op == 0xC3:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindJpImm16, Length: 3, Imm16: imm16(b)}, nil
	case op == 0xE9:
		return Instruction{Kind: KindJpHL, Length: 1}, nil
	case op == 0xCD:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindCallImm16, Length: 3, Imm16: imm16(b)}, nil
	case op == 0xE0:
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindLdhAddrImm8A, Length: 2, Imm8: imm8(b)}, nil
	case op == 0xF0:
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindLdhAAddrImm8, Length: 2, Imm8: imm8(b)}, nil
	case op == 0xE2:
		return Instruction{Kind: KindLdhAddrCA, Length: 1}, nil
	case op == 0xF2:
		return Instruction{Kind: KindLdhAAddrC, Length: 1}, nil
	case op == 0xEA:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindLdAddrImm16A, Length: 3, Imm16: imm16(b)}, nil
	case op == 0xFA:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		return Instruction{Kind: KindLdAAddrImm16, Length: 3, Imm16: imm16(b)}, nil
	case op == 0xF3:
		return Instruction{Kind: KindDI, Length: 1}, nil
	case op == 0xFB:
		return Instruction{Kind: KindEI, Length: 1}, nil
	case op&0xE7 == 0xC0:
		cond := Cond(bits.Range(op, bits.I4, bits.I5))
		return Instruction{Kind: KindRetCond, Length: 1, Cond: cond}, nil
	case op&0xE7 == 0xC2:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		cond := Cond(bits.Range(op, bits.I4, bits.I5))
		return Instruction{Kind: KindJpCondImm16, Length: 3, Cond: cond, Imm16: imm16(b)}, nil
	case op&0xE7 == 0xC4:
		if err := need(b, op, 3); err != nil {
			return Instruction{}, err
		}
		cond := Cond(bits.Range(op, bits.I4, bits.I5))
		return Instruction{Kind: KindCallCondImm16, Length: 3, Cond: cond, Imm16: imm16(b)}, nil
	case op&0xCF == 0xC1:
		stk := R16Stk(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindPopR16Stk, Length: 1, R16Stk: stk}, nil
	case op&0xCF == 0xC5:
		stk := R16Stk(bits.Range(op, bits.I3, bits.I4))
		return Instruction{Kind: KindPushR16Stk, Length: 1, R16Stk: stk}, nil
	case op&0xC7 == 0xC6:
		if err := need(b, op, 2); err != nil {
			return Instruction{}, err
		}
		alu := AluOp(bits.Range(op, bits.I3, bits.I5))
		return Instruction{Kind: KindAluImm8, Length: 2, Alu: alu, Imm8: imm8(b)}, nil
	default:
		return Instruction{Kind: KindUnknown, Length: 1, Opcode: op}, nil
	}
}

func r8FromBits(v byte) R8   { return R8(v) }
func r16FromBits(v byte) R16 { return R16(v + 1) }

// DecodeAll disassembles every instruction in a flat byte image back to
// back, stopping cleanly at the end of input rather than erroring on the
// final, possibly truncated, instruction.
func DecodeAll(b []byte) ([]Instruction, error) {
	var out []Instruction
	for len(b) > 0 {
		insn, err := Decode(b)
		if err != nil {
			if de, ok := err.(*DisassemblyError); ok && (de.Kind == ErrEndOfInput || de.Kind == ErrMissingOperand) {
				break
			}
			return out, err
		}
		out = append(out, insn)
		b = b[insn.Length:]
	}
	return out, nil
}
