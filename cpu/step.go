package cpu

import "lr35902/mem"

// maxInstructionLength is the longest instruction this decoder produces:
// a one-byte opcode plus a two-byte immediate.
const maxInstructionLength = 3

// Step fetches, decodes, and executes exactly one instruction, returning
// the M-cycles it took. PC is advanced by the instruction's length
// before Execute runs, so relative jumps and calls see the address of the
// following instruction rather than the opcode's own address.
//
// A halted or stopped core does not fetch; it just lets time pass,
// waiting for something outside this package (an interrupt controller
// this module does not implement) to call Resume.
func Step(r *Registers, m *mem.Memory) (int, error) {
	if r.Halted() || r.Stopped() {
		return 1, nil
	}

	pc := r.Word(RegPC)
	insn, err := Decode(m.Bytes(pc, maxInstructionLength))
	if err != nil {
		return 0, err
	}

	r.SetWord(RegPC, pc+uint16(insn.Length))

	cycles, err := Execute(r, m, insn)
	if err != nil {
		return 0, err
	}

	r.RefreshInterruptFlag()
	return cycles, nil
}

// Run executes up to n steps, stopping early (without error) the instant
// the core halts, or on the first error. It returns the cycle total
// across every step that ran.
func Run(r *Registers, m *mem.Memory, n int) (int, error) {
	total := 0
	for i := 0; i < n; i++ {
		if r.Halted() || r.Stopped() {
			break
		}
		c, err := Step(r, m)
		if err != nil {
			return total, err
		}
		total += c
	}
	return total, nil
}
