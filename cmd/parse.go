package cmd

import (
	"github.com/arnavsurve/minic/internal/compiler"
	"github.com/spf13/cobra"
)

// parse: syntax diagnostics + AST dump
var ParseCmd = &cobra.Command{
	Use:   "parse <source>",
	Short: "Parse a source file and dump its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  analysisRun(compiler.ModeParser),
}
