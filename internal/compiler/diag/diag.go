// Package diag holds the positioned diagnostics produced by every analysis
// stage.
package diag

import (
	"fmt"

	"github.com/arnavsurve/minic/internal/compiler/token"
)

type Stage int

const (
	Lexical Stage = iota
	Syntax
	Semantic
)

func (s Stage) String() string {
	switch s {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case Semantic:
		return "Semantic"
	default:
		return "Unknown"
	}
}

type Diagnostic struct {
	Stage   Stage
	Message string
	Line    int
	Column  int
}

func New(stage Stage, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

// String renders the diagnostic as `line:col: Stage Error: message`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s Error: %s", d.Line, d.Column, d.Stage, d.Message)
}

// List accumulates diagnostics for one stage.
type List []Diagnostic

func (l *List) Add(stage Stage, pos token.Position, format string, args ...any) {
	*l = append(*l, New(stage, pos, format, args...))
}

func (l List) Len() int { return len(l) }

// Messages returns the rendered form of every diagnostic, in order.
func (l List) Messages() []string {
	msgs := make([]string, 0, len(l))
	for _, d := range l {
		msgs = append(msgs, d.String())
	}
	return msgs
}
