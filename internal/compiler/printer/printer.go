// Package printer renders an AST as an indented dump, one node per line.
package printer

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/minic/internal/compiler/ast"
)

const indentUnit = "  "

type Printer struct {
	builder strings.Builder
	depth   int
}

// Print returns the dump of node and its subtree.
func Print(node ast.Node) string {
	p := &Printer{}
	p.printNode(node)
	return p.builder.String()
}

func (p *Printer) line(format string, args ...any) {
	p.builder.WriteString(strings.Repeat(indentUnit, p.depth))
	p.builder.WriteString(fmt.Sprintf(format, args...))
	p.builder.WriteString("\n")
}

func (p *Printer) nested(fn func()) {
	p.depth++
	fn()
	p.depth--
}

func (p *Printer) printStatement(stmt ast.Statement) {
	if stmt == nil {
		p.line("<missing>")
		return
	}
	p.printNode(stmt)
}

func (p *Printer) printExpression(expr ast.Expression) {
	if expr == nil {
		p.line("<missing>")
		return
	}
	p.printNode(expr)
}

func (p *Printer) printNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		p.line("Program")
		p.nested(func() {
			for _, decl := range n.Declarations {
				p.printNode(decl)
			}
			if n.Main == nil {
				p.line("Main <missing>")
				return
			}
			p.line("Main (%s)", n.Pos())
			p.nested(func() { p.printNode(n.Main) })
		})

	case *ast.VarDeclaration:
		shape := ""
		if n.IsArray() {
			shape = fmt.Sprintf("[%d]", n.Size.Value)
		}
		p.line("VarDeclaration: %s %s%s (%s)", n.Type, n.Name.Value, shape, n.Pos())

	case *ast.BlockStatement:
		p.line("BlockStatement (%s)", n.Pos())
		p.nested(func() {
			for _, stmt := range n.Statements {
				p.printStatement(stmt)
			}
		})

	case *ast.IfStatement:
		p.line("IfStatement (%s)", n.Pos())
		p.nested(func() {
			p.printExpression(n.Condition)
			p.printStatement(n.Consequence)
			if n.Alternative != nil {
				p.line("Else")
				p.nested(func() { p.printStatement(n.Alternative) })
			}
		})

	case *ast.WhileStatement:
		p.line("WhileStatement (%s)", n.Pos())
		p.nested(func() {
			p.printExpression(n.Condition)
			p.printStatement(n.Body)
		})

	case *ast.AssignStatement:
		if n.Index != nil {
			p.line("AssignStatement: %s[] (%s)", n.Target.Value, n.Pos())
		} else {
			p.line("AssignStatement: %s (%s)", n.Target.Value, n.Pos())
		}
		p.nested(func() {
			if n.Index != nil {
				p.printExpression(n.Index)
			}
			p.printExpression(n.Value)
		})

	case *ast.Identifier:
		p.line("Identifier: %s (%s)", n.Value, n.Pos())

	case *ast.IndexExpression:
		p.line("IndexExpression: %s (%s)", n.Name.Value, n.Pos())
		p.nested(func() { p.printExpression(n.Index) })

	case *ast.IntegerLiteral:
		p.line("IntegerLiteral: %d (%s)", n.Value, n.Pos())

	case *ast.FloatLiteral:
		p.line("FloatLiteral: %s (%s)", n.Token.Literal, n.Pos())

	case *ast.CharLiteral:
		p.line("CharLiteral: %s (%s)", n.Token.Literal, n.Pos())

	case *ast.BooleanLiteral:
		p.line("BooleanLiteral: %t (%s)", n.Value, n.Pos())

	case *ast.UnaryExpression:
		p.line("UnaryExpression: %s (%s)", n.Operator, n.Pos())
		p.nested(func() { p.printExpression(n.Operand) })

	case *ast.BinaryExpression:
		p.line("BinaryExpression: %s (%s)", n.Operator, n.Pos())
		p.nested(func() {
			p.printExpression(n.Left)
			p.printExpression(n.Right)
		})

	default:
		p.line("<unknown node type: %T>", n)
	}
}
