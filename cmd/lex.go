package cmd

import (
	"github.com/arnavsurve/minic/internal/compiler"
	"github.com/spf13/cobra"
)

// lex: list the token stream
var LexCmd = &cobra.Command{
	Use:   "lex <source>",
	Short: "Tokenize a source file and list every token",
	Args:  cobra.ExactArgs(1),
	RunE:  analysisRun(compiler.ModeLexical),
}
