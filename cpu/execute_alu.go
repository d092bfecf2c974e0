package cpu

import "lr35902/mem"

// aluApply runs one ALU operation against A and an operand, updating A (for
// every op but CP) and all four flags. It is shared by the register,
// [HL], and immediate forms, since the three differ only in where the
// operand byte comes from.
func aluApply(r *Registers, op AluOp, v byte) {
	a := r.Byte(RegA)
	switch op {
	case AluADD:
		sum := int(a) + int(v)
		r.SetFlag(FlagH, (a&0x0F)+(v&0x0F) > 0x0F)
		r.SetFlag(FlagC, sum > 0xFF)
		r.SetFlag(FlagN, false)
		a = byte(sum)
		r.SetFlag(FlagZ, a == 0)
		r.SetByte(RegA, a)
	case AluADC:
		carry := 0
		if r.Flag(FlagC) {
			carry = 1
		}
		sum := int(a) + int(v) + carry
		r.SetFlag(FlagH, (a&0x0F)+(v&0x0F)+byte(carry) > 0x0F)
		r.SetFlag(FlagC, sum > 0xFF)
		r.SetFlag(FlagN, false)
		a = byte(sum)
		r.SetFlag(FlagZ, a == 0)
		r.SetByte(RegA, a)
	case AluSUB:
		r.SetFlag(FlagH, a&0x0F < v&0x0F)
		r.SetFlag(FlagC, a < v)
		r.SetFlag(FlagN, true)
		a = a - v
		r.SetFlag(FlagZ, a == 0)
		r.SetByte(RegA, a)
	case AluSBC:
		carry := byte(0)
		if r.Flag(FlagC) {
			carry = 1
		}
		r.SetFlag(FlagH, int(a&0x0F)-int(v&0x0F)-int(carry) < 0)
		r.SetFlag(FlagC, int(a)-int(v)-int(carry) < 0)
		r.SetFlag(FlagN, true)
		a = a - v - carry
		r.SetFlag(FlagZ, a == 0)
		r.SetByte(RegA, a)
	case AluAND:
		a &= v
		r.SetFlag(FlagZ, a == 0)
		r.SetFlag(FlagN, false)
		r.SetFlag(FlagH, true)
		r.SetFlag(FlagC, false)
		r.SetByte(RegA, a)
	case AluXOR:
		a ^= v
		r.SetFlag(FlagZ, a == 0)
		r.SetFlag(FlagN, false)
		r.SetFlag(FlagH, false)
		r.SetFlag(FlagC, false)
		r.SetByte(RegA, a)
	case AluOR:
		a |= v
		r.SetFlag(FlagZ, a == 0)
		r.SetFlag(FlagN, false)
		r.SetFlag(FlagH, false)
		r.SetFlag(FlagC, false)
		r.SetByte(RegA, a)
	case AluCP:
		r.SetFlag(FlagH, a&0x0F < v&0x0F)
		r.SetFlag(FlagC, a < v)
		r.SetFlag(FlagN, true)
		r.SetFlag(FlagZ, a == v)
	}
}

// readR8/writeR8 resolve an R8 selector to either a register or, for
// AddrHL, the memory cell HL points at.
func readR8(r *Registers, m *mem.Memory, reg R8) byte {
	if reg == AddrHL {
		return m.ReadByte(r.Word(RegHL))
	}
	return r.Byte(reg)
}

func writeR8(r *Registers, m *mem.Memory, reg R8, v byte) {
	if reg == AddrHL {
		m.WriteByte(r.Word(RegHL), v)
		return
	}
	r.SetByte(reg, v)
}

func execIncR8(r *Registers, m *mem.Memory, reg R8) {
	v := readR8(r, m, reg)
	r.SetFlag(FlagH, v&0x0F == 0x0F)
	v++
	r.SetFlag(FlagZ, v == 0)
	r.SetFlag(FlagN, false)
	writeR8(r, m, reg, v)
}

func execDecR8(r *Registers, m *mem.Memory, reg R8) {
	v := readR8(r, m, reg)
	r.SetFlag(FlagH, v&0x0F == 0x00)
	v--
	r.SetFlag(FlagZ, v == 0)
	r.SetFlag(FlagN, true)
	writeR8(r, m, reg, v)
}

func execAddHLR16(r *Registers, reg R16) {
	hl := r.Word(RegHL)
	v := r.Word(reg)
	sum := uint32(hl) + uint32(v)
	r.SetFlag(FlagH, (hl&0x0FFF)+(v&0x0FFF) > 0x0FFF)
	r.SetFlag(FlagC, sum > 0xFFFF)
	r.SetFlag(FlagN, false)
	r.SetWord(RegHL, uint16(sum))
}

func execRLCA(r *Registers) {
	a := r.Byte(RegA)
	carry := a&0x80 != 0
	a = a<<1 | a>>7
	r.SetByte(RegA, a)
	r.SetFlag(FlagZ, false)
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, carry)
}

func execRRCA(r *Registers) {
	a := r.Byte(RegA)
	carry := a&0x01 != 0
	a = a>>1 | a<<7
	r.SetByte(RegA, a)
	r.SetFlag(FlagZ, false)
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, carry)
}

func execRLA(r *Registers) {
	a := r.Byte(RegA)
	oldCarry := byte(0)
	if r.Flag(FlagC) {
		oldCarry = 1
	}
	newCarry := a&0x80 != 0
	a = a<<1 | oldCarry
	r.SetByte(RegA, a)
	r.SetFlag(FlagZ, false)
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, newCarry)
}

func execRRA(r *Registers) {
	a := r.Byte(RegA)
	oldCarry := byte(0)
	if r.Flag(FlagC) {
		oldCarry = 0x80
	}
	newCarry := a&0x01 != 0
	a = a>>1 | oldCarry
	r.SetByte(RegA, a)
	r.SetFlag(FlagZ, false)
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, newCarry)
}

// execDAA implements the binary-coded-decimal correction following an
// ADD/ADC/SUB/SBC on A, using N to pick the correction direction and H/C
// to decide which nibbles need it.
func execDAA(r *Registers) {
	a := r.Byte(RegA)
	sub := r.Flag(FlagN)
	correction := byte(0)
	carry := r.Flag(FlagC)

	if r.Flag(FlagH) || (!sub && a&0x0F > 0x09) {
		correction |= 0x06
	}
	if r.Flag(FlagC) || (!sub && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if sub {
		a -= correction
	} else {
		a += correction
	}

	r.SetFlag(FlagZ, a == 0)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, carry)
	r.SetByte(RegA, a)
}

func execCPL(r *Registers) {
	r.SetByte(RegA, ^r.Byte(RegA))
	r.SetFlag(FlagN, true)
	r.SetFlag(FlagH, true)
}

func execSCF(r *Registers) {
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, true)
}

func execCCF(r *Registers) {
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagH, false)
	r.SetFlag(FlagC, !r.Flag(FlagC))
}
