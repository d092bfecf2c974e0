package cpu

import "lr35902/mem"

// pushWord decrements SP by two and writes v at the new SP, matching the
// LR35902's stack-grows-down convention. It does not itself suffer the
// PUSH/POP byte-order double-swap some emulators introduce by writing the
// two bytes individually in the wrong order: WriteWord already places the
// low byte at the lower address.
func pushWord(r *Registers, m *mem.Memory, v uint16) error {
	sp := r.Word(RegSP) - 2
	r.SetWord(RegSP, sp)
	return m.WriteWord(sp, v)
}

func popWord(r *Registers, m *mem.Memory) (uint16, error) {
	sp := r.Word(RegSP)
	v, err := m.ReadWord(sp)
	r.SetWord(RegSP, sp+2)
	return v, err
}
