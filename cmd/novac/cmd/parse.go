package cmd

import (
	"fmt"
	"os"

	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/diagnostic"
	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parser"
	"github.com/novalang/novac/internal/parserr"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Nova source file and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading from file")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	src, filename, err := readInput(parseEval, args)
	if err != nil {
		return err
	}

	prog, perr := parseSource(src)
	if perr != nil {
		fmt.Fprintln(os.Stderr, diagnostic.New(perr, filename, src).Format(false))
		return fmt.Errorf("parsing failed")
	}

	fmt.Print(ast.Print(prog))
	return nil
}

func parseSource(src string) (*ast.Program, *parserr.Error) {
	toks := lexer.New(src).Tokenize()
	return parser.New(src, toks).ParseProgram()
}
