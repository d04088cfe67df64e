package cmd

import (
	"fmt"
	"os"

	"github.com/novalang/novac/internal/diagnostic"
	"github.com/novalang/novac/internal/ir"
	"github.com/novalang/novac/internal/semantic"
	"github.com/spf13/cobra"
)

var irEval string

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Lower a Nova source file to IR and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
	irCmd.Flags().StringVarP(&irEval, "eval", "e", "", "lower inline source instead of reading from file")
}

func runIR(cmd *cobra.Command, args []string) error {
	src, filename, err := readInput(irEval, args)
	if err != nil {
		return err
	}

	prog, perr := parseSource(src)
	if perr != nil {
		fmt.Fprintln(os.Stderr, diagnostic.New(perr, filename, src).Format(false))
		return fmt.Errorf("parsing failed")
	}

	typed, cerr := semantic.Check(prog)
	if cerr != nil {
		fmt.Fprintln(os.Stderr, diagnostic.New(cerr, filename, src).Format(false))
		return fmt.Errorf("type checking failed")
	}

	fmt.Print(ir.Print(ir.Lower(typed)))
	return nil
}
