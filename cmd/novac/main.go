// Command novac is the Nova bootstrap compiler's command-line driver.
package main

import (
	"fmt"
	"os"

	"github.com/novalang/novac/cmd/novac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
