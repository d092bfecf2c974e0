package cpu

import "lr35902/mem"

func execJr(r *Registers, offset int16) {
	pc := r.Word(RegPC)
	r.SetWord(RegPC, uint16(int32(pc)+int32(offset)))
}

func execJp(r *Registers, addr uint16) {
	r.SetWord(RegPC, addr)
}

func execCall(r *Registers, m *mem.Memory, addr uint16) error {
	if err := pushWord(r, m, r.Word(RegPC)); err != nil {
		return err
	}
	r.SetWord(RegPC, addr)
	return nil
}

func execRet(r *Registers, m *mem.Memory) error {
	addr, err := popWord(r, m)
	if err != nil {
		return err
	}
	r.SetWord(RegPC, addr)
	return nil
}
