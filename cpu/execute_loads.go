package cpu

import "lr35902/mem"

func execLdR16MemA(r *Registers, m *mem.Memory, sel R16Mem) {
	base, step := sel.base()
	addr := r.Word(base)
	m.WriteByte(addr, r.Byte(RegA))
	if step != 0 {
		r.SetWord(base, uint16(int(addr)+step))
	}
}

func execLdAR16Mem(r *Registers, m *mem.Memory, sel R16Mem) {
	base, step := sel.base()
	addr := r.Word(base)
	r.SetByte(RegA, m.ReadByte(addr))
	if step != 0 {
		r.SetWord(base, uint16(int(addr)+step))
	}
}

func execLdhAddrImm8A(r *Registers, m *mem.Memory, offset uint8) {
	m.WriteByte(mem.IOBase+uint16(offset), r.Byte(RegA))
}

func execLdhAAddrImm8(r *Registers, m *mem.Memory, offset uint8) {
	r.SetByte(RegA, m.ReadByte(mem.IOBase+uint16(offset)))
}

func execLdhAddrCA(r *Registers, m *mem.Memory) {
	m.WriteByte(mem.IOBase+uint16(r.Byte(RegC)), r.Byte(RegA))
}

func execLdhAAddrC(r *Registers, m *mem.Memory) {
	r.SetByte(RegA, m.ReadByte(mem.IOBase+uint16(r.Byte(RegC))))
}
