package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"lr35902/cpu"
	"lr35902/mem"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lr35902",
		Short: "LR35902 instruction decoder, executor, and step debugger",
	}

	var origin string

	disasmCmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a raw binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			off, err := parseAddr(origin)
			if err != nil {
				return err
			}

			insns, err := cpu.DecodeAll(data)
			if err != nil {
				return fmt.Errorf("disassembly stopped: %w", err)
			}
			addr := off
			for _, insn := range insns {
				fmt.Printf("%04x  %s\n", addr, insn.String())
				addr += uint16(insn.Length)
			}
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&origin, "origin", "0x0100", "load address, e.g. 0x0100")

	var steps int
	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Load a raw binary image and run it for a bounded number of steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			off, err := parseAddr(origin)
			if err != nil {
				return err
			}

			var m mem.Memory
			if err := m.Load(data, off); err != nil {
				return err
			}
			r := cpu.NewRegisters()
			r.SetWord(cpu.RegPC, off)

			cycles, err := cpu.Run(r, &m, steps)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "stopped after %d cycles: %v\n", cycles, err)
			}
			printRegisters(cmd, r, cycles)
			return nil
		},
	}
	runCmd.Flags().StringVar(&origin, "origin", "0x0100", "load address, e.g. 0x0100")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "maximum instructions to execute")

	debugCmd := &cobra.Command{
		Use:   "debug <file>",
		Short: "Load a raw binary image and single-step it in an interactive TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			off, err := parseAddr(origin)
			if err != nil {
				return err
			}

			var m mem.Memory
			r := cpu.NewRegisters()
			cpu.Debug(r, &m, data, off)
			return nil
		},
	}
	debugCmd.Flags().StringVar(&origin, "origin", "0x0100", "load address, e.g. 0x0100")

	rootCmd.AddCommand(disasmCmd, runCmd, debugCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func printRegisters(cmd *cobra.Command, r *cpu.Registers, cycles int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cycles: %d\n", cycles)
	fmt.Fprintf(out, "AF=%04x BC=%04x DE=%04x HL=%04x SP=%04x PC=%04x IME=%v\n",
		r.Word(cpu.RegAF), r.Word(cpu.RegBC), r.Word(cpu.RegDE),
		r.Word(cpu.RegHL), r.Word(cpu.RegSP), r.Word(cpu.RegPC), r.IME())
}
