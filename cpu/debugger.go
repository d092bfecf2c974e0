package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"lr35902/mem"
)

type model struct {
	regs *Registers
	mem  *mem.Memory

	program []byte
	offset  uint16 // only for drawing pageTable

	prevPC uint16
	error  error
}

// Init loads the program into memory at the configured offset and parks PC
// there. It returns no initial command.
func (m model) Init() tea.Cmd {
	m.mem.Load(m.program, m.offset)
	m.regs.SetWord(RegPC, m.offset)
	return nil
}

// Update advances the core by a single Step per keypress.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.regs.Word(RegPC)
			if _, err := Step(m.regs, m.mem); err != nil {
				m.error = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte memory page as a line, highlighting
// the byte currently under PC.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i, b := range m.mem.Bytes(start, 16) {
		if start+uint16(i) == m.regs.Word(RegPC) {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.regs.Flag(FlagZ),
		m.regs.Flag(FlagN),
		m.regs.Flag(FlagH),
		m.regs.Flag(FlagC),
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
AF: %04x
BC: %04x
DE: %04x
HL: %04x
SP: %04x
IME: %v
Z N H C
`,
		m.regs.Word(RegPC),
		m.prevPC,
		m.regs.Word(RegAF),
		m.regs.Word(RegBC),
		m.regs.Word(RegDE),
		m.regs.Word(RegHL),
		m.regs.Word(RegSP),
		m.regs.IME(),
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	pc := m.regs.Word(RegPC)
	pageStart := pc - pc%16
	offsets := []uint16{
		0, 16, 32, 48,
		pageStart,
		pageStart + 16,
		pageStart + 32,
	}
	for _, off := range offsets {
		pages = append(pages, m.renderPage(off))
	}
	return strings.Join(pages, "\n")
}

// View renders the program's UI as a single string re-drawn after every
// Update: the memory page table, the register/flag status block, and a
// structural dump of the instruction sitting at PC.
func (m model) View() string {
	insn, _ := Decode(m.mem.Bytes(m.regs.Word(RegPC), maxInstructionLength))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		insn.String(),
		spew.Sdump(insn),
	)
}

// Debug loads program into memory at offset, then starts an interactive
// single-step TUI over it.
func Debug(regs *Registers, m *mem.Memory, program []byte, offset uint16) {
	out, err := tea.NewProgram(model{
		regs:    regs,
		mem:     m,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	final := out.(model)
	if final.error != nil {
		fmt.Println("Error:", final.error)
	}
}
