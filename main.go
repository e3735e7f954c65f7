// Package main is the entry point for the rollup CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/rollup/cmd"
	"github.com/danielolaszy/rollup/internal/logging"
)

// main executes the root command and exits non-zero on failure.
func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
