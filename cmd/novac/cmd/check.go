package cmd

import (
	"fmt"
	"os"

	"github.com/novalang/novac/internal/diagnostic"
	"github.com/novalang/novac/internal/semantic"
	"github.com/spf13/cobra"
)

var checkEval string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check a Nova source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check inline source instead of reading from file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, filename, err := readInput(checkEval, args)
	if err != nil {
		return err
	}

	prog, perr := parseSource(src)
	if perr != nil {
		fmt.Fprintln(os.Stderr, diagnostic.New(perr, filename, src).Format(false))
		return fmt.Errorf("parsing failed")
	}

	if _, cerr := semantic.Check(prog); cerr != nil {
		fmt.Fprintln(os.Stderr, diagnostic.New(cerr, filename, src).Format(false))
		return fmt.Errorf("type checking failed")
	}

	fmt.Println("ok")
	return nil
}
