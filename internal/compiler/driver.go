package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arnavsurve/minic/internal/compiler/ast"
	"github.com/arnavsurve/minic/internal/compiler/lexer"
	"github.com/arnavsurve/minic/internal/compiler/lib"
	"github.com/arnavsurve/minic/internal/compiler/parser"
	"github.com/arnavsurve/minic/internal/compiler/printer"
	"github.com/arnavsurve/minic/internal/compiler/semantic"
	"github.com/arnavsurve/minic/internal/compiler/token"
	"github.com/arnavsurve/minic/internal/logger"
)

// Mode selects which report Run produces.
type Mode string

const (
	ModeLexical  Mode = "lexical"
	ModeParser   Mode = "parser"
	ModeSemantic Mode = "semantic"
)

var (
	ErrUnreadableSource = errors.New("source could not be read")
	ErrUnknownMode      = errors.New("unknown analysis mode")
)

// ParseMode validates a mode name received from a flag or form field.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLexical, ModeParser, ModeSemantic:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Run produces the report for mode. Diagnostics are part of the report; the
// only error is an unknown mode.
func Run(mode Mode, src string) (string, error) {
	switch mode {
	case ModeLexical:
		return RunLexicalAnalysis(src), nil
	case ModeParser:
		return RunParse(src), nil
	case ModeSemantic:
		return RunSemanticAnalysis(src), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// RunReader reads the whole source from r and runs mode over it.
func RunReader(mode Mode, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: no input", ErrUnreadableSource)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	return Run(mode, string(b))
}

// RunFile runs mode over the file at path. "-" reads standard input.
func RunFile(mode Mode, path string) (string, error) {
	logger.LogFileProcessing(path, string(mode))
	if path == "-" {
		return RunReader(mode, os.Stdin)
	}
	content, err := readSource(path)
	if err != nil {
		return "", err
	}
	return Run(mode, content)
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	return string(b), nil
}

// RunLexicalAnalysis tokenizes src and lists every token up to and including
// EOF.
func RunLexicalAnalysis(src string) string {
	logger.LogPhase("lexical")
	var out strings.Builder
	out.WriteString("Tokenizing file content...\n")

	start := time.Now()
	l := lexer.NewLexer(src)
	numTokens := 0
	for {
		tok := l.NextToken()
		numTokens++
		out.WriteString(formatToken(tok))
		out.WriteString("\n")
		if tok.Type == token.TokenEOF {
			break
		}
	}
	elapsed := time.Since(start)

	for _, msg := range l.Diagnostics().Messages() {
		logger.Debug("Lexical diagnostic", "message", msg)
	}
	logger.LogLexing(numTokens, l.ErrorCount())
	logger.LogPhaseComplete("lexical", l.ErrorCount(), elapsed)

	out.WriteString("---\n")
	fmt.Fprintf(&out, "Number of tokens: %d\n", numTokens)
	fmt.Fprintf(&out, "Number of errors: %d\n", l.ErrorCount())
	out.WriteString(lib.ExecutionTime(elapsed) + "\n")
	return out.String()
}

// formatToken renders `TYPE (line,col)` plus `: value` for tokens that carry
// an attribute.
func formatToken(tok token.Token) string {
	s := fmt.Sprintf("%s (%d,%d)", tok.Type, tok.Line, tok.Column)
	if tok.Attr != nil {
		s += ": " + tok.Attr.String()
	}
	return s
}

func parseProgram(src string) (*ast.Program, *parser.Parser) {
	l := lexer.NewLexer(src)
	p := parser.NewParser(l)
	program := p.ParseProgram()
	logger.LogParsing(len(program.Declarations), p.ErrorCount())
	return program, p
}

// RunParse parses src and returns the syntax diagnostics followed by the AST
// dump.
func RunParse(src string) string {
	logger.LogPhase("parser")
	start := time.Now()
	program, p := parseProgram(src)
	elapsed := time.Since(start)
	logger.LogPhaseComplete("parser", p.ErrorCount(), elapsed)

	var out strings.Builder
	out.WriteString("File has finished parsing!\n")
	out.WriteString(lib.ExecutionTime(elapsed) + "\n")
	fmt.Fprintf(&out, "%d errors reported\n", p.ErrorCount())
	for _, msg := range p.Errors() {
		out.WriteString(msg + "\n")
	}
	out.WriteString("\n")
	out.WriteString(printer.Print(program))
	return out.String()
}

// RunSemanticAnalysis parses and checks src. Syntax diagnostics are listed
// before semantic ones.
func RunSemanticAnalysis(src string) string {
	logger.LogPhase("semantic")
	start := time.Now()
	program, p := parseProgram(src)
	a := semantic.NewAnalyzer()
	a.AnalyzeProgram(program)
	elapsed := time.Since(start)
	logger.LogAnalysis(a.ErrorCount())

	errs := append(p.Errors(), a.Errors()...)
	logger.LogPhaseComplete("semantic", len(errs), elapsed)

	var out strings.Builder
	out.WriteString("File has finished analyzing!\n")
	out.WriteString(lib.ExecutionTime(elapsed) + "\n")
	if len(errs) == 0 {
		out.WriteString("No errors found.\n")
		return out.String()
	}
	fmt.Fprintf(&out, "%d errors reported\n", len(errs))
	for _, msg := range errs {
		out.WriteString(msg + "\n")
	}
	return out.String()
}
