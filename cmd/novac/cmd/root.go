package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "novac",
	Short: "Nova bootstrap compiler",
	Long: `novac is the bootstrap compiler for Nova, a small statically-typed
systems language that compiles to WebAssembly.

It drives the full pipeline -- lex, parse, type-check, lower to IR, and
emit a WASM module -- and exposes each stage as its own subcommand for
inspecting intermediate output.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
