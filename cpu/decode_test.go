package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLdR16Imm16(t *testing.T) {
	insn, err := Decode([]byte{0x01, 0x34, 0x12})
	assert.NoError(t, err)
	assert.Equal(t, KindLdR16Imm16, insn.Kind)
	assert.Equal(t, uint8(3), insn.Length)
	assert.Equal(t, RegBC, insn.R16)
	assert.Equal(t, uint16(0x1234), insn.Imm16)
}

func TestDecodeLdHLMemImm8(t *testing.T) {
	insn, err := Decode([]byte{0x21, 0x00, 0xC0})
	assert.NoError(t, err)
	assert.Equal(t, KindLdR16Imm16, insn.Kind)
	assert.Equal(t, RegHL, insn.R16)
	assert.Equal(t, uint16(0xC000), insn.Imm16)

	insn, err = Decode([]byte{0x36, 0x7F})
	assert.NoError(t, err)
	assert.Equal(t, KindLdR8Imm8, insn.Kind)
	assert.Equal(t, AddrHL, insn.R8Dst)
	assert.Equal(t, uint8(0x7F), insn.Imm8)
}

func TestDecodeR16MemUsesHLNotSP(t *testing.T) {
	// 0x22 is LD [HL+],A ; 0x32 is LD [HL-],A ; both must decode HL, never SP.
	insn, err := Decode([]byte{0x22})
	assert.NoError(t, err)
	assert.Equal(t, KindLdR16MemA, insn.Kind)
	assert.Equal(t, MemHLI, insn.R16Mem)

	insn, err = Decode([]byte{0x32})
	assert.NoError(t, err)
	assert.Equal(t, MemHLD, insn.R16Mem)
}

func TestDecodeIncDecR8(t *testing.T) {
	insn, err := Decode([]byte{0x3C}) // INC A
	assert.NoError(t, err)
	assert.Equal(t, KindIncR8, insn.Kind)
	assert.Equal(t, RegA, insn.R8Dst)

	insn, err = Decode([]byte{0x3D}) // DEC A
	assert.NoError(t, err)
	assert.Equal(t, KindDecR8, insn.Kind)
	assert.Equal(t, RegA, insn.R8Dst)
}

func TestDecodeHaltIsDistinctFromLdHLHL(t *testing.T) {
	insn, err := Decode([]byte{0x76})
	assert.NoError(t, err)
	assert.Equal(t, KindHALT, insn.Kind)
}

func TestDecodeJrCondReadsCorrectFlagPerCondition(t *testing.T) {
	cases := []struct {
		op   byte
		cond Cond
	}{
		{0x20, CondNZ},
		{0x28, CondZ},
		{0x30, CondNC},
		{0x38, CondC},
	}
	for _, c := range cases {
		insn, err := Decode([]byte{c.op, 0x02})
		assert.NoError(t, err)
		assert.Equal(t, KindJrCondImm8, insn.Kind)
		assert.Equal(t, c.cond, insn.Cond)
	}
}

func TestDecodeRetCondJpCondCallCond(t *testing.T) {
	ret, err := Decode([]byte{0xD8}) // RET C
	assert.NoError(t, err)
	assert.Equal(t, KindRetCond, ret.Kind)
	assert.Equal(t, CondC, ret.Cond)

	jp, err := Decode([]byte{0xCA, 0x00, 0x01}) // JP Z,0x0100
	assert.NoError(t, err)
	assert.Equal(t, KindJpCondImm16, jp.Kind)
	assert.Equal(t, CondZ, jp.Cond)
	assert.Equal(t, uint16(0x0100), jp.Imm16)

	call, err := Decode([]byte{0xD4, 0x00, 0x01}) // CALL NC,0x0100
	assert.NoError(t, err)
	assert.Equal(t, KindCallCondImm16, call.Kind)
	assert.Equal(t, CondNC, call.Cond)
}

func TestDecodeAluBlock(t *testing.T) {
	insn, err := Decode([]byte{0x80}) // ADD A,B
	assert.NoError(t, err)
	assert.Equal(t, KindAluR8, insn.Kind)
	assert.Equal(t, AluADD, insn.Alu)
	assert.Equal(t, RegB, insn.R8Src)

	insn, err = Decode([]byte{0xB8}) // CP A,B
	assert.NoError(t, err)
	assert.Equal(t, AluCP, insn.Alu)
}

func TestDecodePushPop(t *testing.T) {
	push, err := Decode([]byte{0xC5})
	assert.NoError(t, err)
	assert.Equal(t, KindPushR16Stk, push.Kind)
	assert.Equal(t, StkBC, push.R16Stk)

	pop, err := Decode([]byte{0xF1})
	assert.NoError(t, err)
	assert.Equal(t, KindPopR16Stk, pop.Kind)
	assert.Equal(t, StkAF, pop.R16Stk)
}

func TestDecodeEndOfInput(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)
	de, ok := err.(*DisassemblyError)
	assert.True(t, ok)
	assert.Equal(t, ErrEndOfInput, de.Kind)
}

func TestDecodeMissingOperand(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x34}) // LD BC,imm16 needs 3 bytes
	assert.Error(t, err)
	de, ok := err.(*DisassemblyError)
	assert.True(t, ok)
	assert.Equal(t, ErrMissingOperand, de.Kind)
	assert.Equal(t, byte(0x01), de.Opcode)
}

func TestDecodeUnknownOpcodeIsNotAnError(t *testing.T) {
	insn, err := Decode([]byte{0xD3})
	assert.NoError(t, err)
	assert.Equal(t, KindUnknown, insn.Kind)
	assert.Equal(t, byte(0xD3), insn.Opcode)
	assert.Equal(t, uint8(1), insn.Length)
}

func TestDecodeAllStopsCleanlyAtShortFinalInstruction(t *testing.T) {
	// NOP, then a truncated LD BC,imm16 (only the opcode byte present).
	insns, err := DecodeAll([]byte{0x00, 0x01})
	assert.NoError(t, err)
	assert.Len(t, insns, 1)
	assert.Equal(t, KindNOP, insns[0].Kind)
}

func TestFullOpcodeTableLengths(t *testing.T) {
	table := []struct {
		bytes []byte
		want  uint8
	}{
		{[]byte{0x00}, 1},               // NOP
		{[]byte{0x01, 0, 0}, 3},         // LD BC,imm16
		{[]byte{0x02}, 1},               // LD [BC],A
		{[]byte{0x0A}, 1},               // LD A,[BC]
		{[]byte{0x08, 0, 0}, 3},         // LD [imm16],SP
		{[]byte{0x03}, 1},               // INC BC
		{[]byte{0x0B}, 1},               // DEC BC
		{[]byte{0x09}, 1},               // ADD HL,BC
		{[]byte{0x04}, 1},               // INC B
		{[]byte{0x05}, 1},               // DEC B
		{[]byte{0x06, 0}, 2},            // LD B,imm8
		{[]byte{0x07}, 1},               // RLCA
		{[]byte{0x0F}, 1},               // RRCA
		{[]byte{0x17}, 1},               // RLA
		{[]byte{0x1F}, 1},               // RRA
		{[]byte{0x27}, 1},               // DAA
		{[]byte{0x2F}, 1},               // CPL
		{[]byte{0x37}, 1},               // SCF
		{[]byte{0x3F}, 1},               // CCF
		{[]byte{0x18, 0}, 2},            // JR e8
		{[]byte{0x20, 0}, 2},            // JR cond,e8
		{[]byte{0x10, 0}, 2},            // STOP
		{[]byte{0x41}, 1},               // LD B,C
		{[]byte{0x76}, 1},               // HALT
		{[]byte{0x80}, 1},               // ADD A,B
		{[]byte{0xC6, 0}, 2},            // ADD A,imm8
		{[]byte{0xC1}, 1},               // POP BC
		{[]byte{0xC5}, 1},               // PUSH BC
		{[]byte{0xC9}, 1},               // RET
		{[]byte{0xD9}, 1},               // RETI
		{[]byte{0xC0}, 1},               // RET cond
		{[]byte{0xC3, 0, 0}, 3},         // JP imm16
		{[]byte{0xC2, 0, 0}, 3},         // JP cond,imm16
		{[]byte{0xE9}, 1},               // JP HL
		{[]byte{0xE0, 0}, 2},            // LDH [imm8],A
		{[]byte{0xF0, 0}, 2},            // LDH A,[imm8]
		{[]byte{0xE2}, 1},               // LDH [C],A
		{[]byte{0xF2}, 1},               // LDH A,[C]
		{[]byte{0xEA, 0, 0}, 3},         // LD [imm16],A
		{[]byte{0xFA, 0, 0}, 3},         // LD A,[imm16]
		{[]byte{0xF3}, 1},               // DI
		{[]byte{0xFB}, 1},               // EI
	}
	for _, tc := range table {
		insn, err := Decode(tc.bytes)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, insn.Length)
	}
}
