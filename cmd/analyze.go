package cmd

import (
	"github.com/arnavsurve/minic/internal/compiler"
	"github.com/spf13/cobra"
)

// analyze: syntax + semantic diagnostics
var AnalyzeCmd = &cobra.Command{
	Use:     "analyze <source>",
	Aliases: []string{"check"},
	Short:   "Parse and type-check a source file",
	Args:    cobra.ExactArgs(1),
	RunE:    analysisRun(compiler.ModeSemantic),
}
