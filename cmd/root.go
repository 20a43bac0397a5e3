package cmd

import (
	"fmt"

	"github.com/arnavsurve/minic/internal/compiler"
	"github.com/arnavsurve/minic/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "Lexical, syntax and semantic analysis for MiniC programs",
	Long: `minic inspects MiniC programs one analysis stage at a time.

Commands:
  lex      Tokenize a source file and list every token
  parse    Parse a source file and dump its AST
  analyze  Parse and type-check a source file
  serve    Serve the analyses over HTTP
`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")

	rootCmd.AddCommand(LexCmd, ParseCmd, AnalyzeCmd, ServeCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	return logger.Init(logger.Config{
		Level:   level,
		Format:  logFormat,
		Output:  cmd.ErrOrStderr(),
		LogFile: logFile,
	})
}

// analysisRun builds the RunE of a single-file analysis command. The source
// path "-" reads standard input.
func analysisRun(mode compiler.Mode) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		report, err := compiler.RunFile(mode, args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), report)
		return err
	}
}
