package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/novalang/novac/internal/diagnostic"
	"github.com/novalang/novac/internal/ir"
	"github.com/novalang/novac/internal/semantic"
	"github.com/novalang/novac/internal/wasmgen"
	"github.com/spf13/cobra"
)

var (
	buildOutput  string
	buildVerbose bool
)

var buildCmd = &cobra.Command{
	Use:     "build <file>",
	Aliases: []string{"compile"},
	Short:   "Compile a Nova source file to a WASM module",
	Args:    cobra.ExactArgs(1),
	RunE:    runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: <input>.wasm)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "verbose output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

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

	mod := ir.Lower(typed)
	wasm, err := wasmgen.Generate(mod)
	if err != nil {
		return fmt.Errorf("wasm generation failed: %w", err)
	}

	out := buildOutput
	if out == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			out = strings.TrimSuffix(filename, ext) + ".wasm"
		} else {
			out = filename + ".wasm"
		}
	}

	if err := os.WriteFile(out, wasm, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", out, err)
	}

	if buildVerbose {
		fmt.Fprintf(os.Stderr, "Functions: %d\n", len(mod.Functions))
	}
	fmt.Printf("Compiled %s -> %s (%d bytes)\n", filename, out, len(wasm))
	return nil
}
