package cmd

import (
	"fmt"
	"os"

	"github.com/novalang/novac/internal/diagnostic"
	"github.com/novalang/novac/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowSpan bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Nova source file and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowSpan, "show-span", false, "show each token's byte span")
}

func runLex(cmd *cobra.Command, args []string) error {
	src, filename, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	toks := l.Tokenize()
	for _, tok := range toks {
		if lexShowSpan {
			fmt.Printf("%-12s %-10s %q\n", tok.Kind, tok.Span, src[tok.Span.Start():tok.Span.End()])
		} else {
			fmt.Println(tok.Kind)
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, diagnostic.New(e, filename, src).Format(false))
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}

func readInput(eval string, args []string) (src, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}
