package ast

import (
	"bytes"
	"strings"

	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Statement is implemented only by the statement nodes of this package.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented only by the expression nodes of this package.
type Expression interface {
	Node
	expressionNode()
}

// --- Program ---

// Program -> decl* main { ... }
// Main is nil when the source has no parseable main block.
type Program struct {
	Token        token.Token // main
	Declarations []*VarDeclaration
	Main         *BlockStatement
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) Pos() token.Position  { return p.Token.Pos() }
func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	if p.Main != nil {
		out.WriteString("main ")
		out.WriteString(p.Main.String())
	}
	return out.String()
}

// --- Statements ---

// VarDeclaration -> int x; or float grid[10];
type VarDeclaration struct {
	Token token.Token // int, float, char, boolean
	Type  symbols.Type
	Name  *Identifier
	Size  *IntegerLiteral // nil unless array-shaped
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) Pos() token.Position  { return vd.Token.Pos() }
func (vd *VarDeclaration) IsArray() bool        { return vd.Size != nil }
func (vd *VarDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(vd.Type.String() + " ")
	if vd.Name != nil {
		out.WriteString(vd.Name.String())
	}
	if vd.Size != nil {
		out.WriteString("[" + vd.Size.String() + "]")
	}
	out.WriteString(";")
	return out.String()
}

// BlockStatement -> { statement1 statement2 }
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() token.Position  { return bs.Token.Pos() }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range bs.Statements {
		for _, line := range strings.Split(s.String(), "\n") {
			out.WriteString("\t" + line + "\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement -> if (cond) stmt [else stmt]
// Consequence is nil when its statement failed to parse.
type IfStatement struct {
	Token       token.Token // if
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil without else
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos() }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + exprString(is.Condition) + ") ")
	out.WriteString(stmtString(is.Consequence))
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement -> while (cond) stmt
type WhileStatement struct {
	Token     token.Token // while
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos() }
func (ws *WhileStatement) String() string {
	return "while (" + exprString(ws.Condition) + ") " + stmtString(ws.Body)
}

// AssignStatement -> x = value; or x[i] = value;
type AssignStatement struct {
	Token  token.Token // the target identifier
	Target *Identifier
	Index  Expression // nil for scalar targets
	Value  Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() token.Position  { return as.Token.Pos() }
func (as *AssignStatement) String() string {
	var out bytes.Buffer
	out.WriteString(as.Target.String())
	if as.Index != nil {
		out.WriteString("[" + as.Index.String() + "]")
	}
	out.WriteString(" = " + exprString(as.Value) + ";")
	return out.String()
}

// --- Expressions ---

// Identifier -> varName
type Identifier struct {
	Token token.Token // ID
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos() }
func (i *Identifier) String() string       { return i.Value }

// IndexExpression -> name[index]
type IndexExpression struct {
	Token token.Token // the array identifier
	Name  *Identifier
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() token.Position  { return ie.Token.Pos() }
func (ie *IndexExpression) String() string {
	return ie.Name.String() + "[" + exprString(ie.Index) + "]"
}

// IntegerLiteral -> 123
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Pos() token.Position  { return il.Token.Pos() }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral -> 1.5
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) Pos() token.Position  { return fl.Token.Pos() }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// CharLiteral -> 'c'
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *CharLiteral) Pos() token.Position  { return cl.Token.Pos() }
func (cl *CharLiteral) String() string       { return cl.Token.Literal }

// BooleanLiteral -> true / false
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() token.Position  { return bl.Token.Pos() }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// UnaryExpression -> -x or !b
type UnaryExpression struct {
	Token    token.Token // - or !
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() token.Position  { return ue.Token.Pos() }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator + exprString(ue.Operand) + ")"
}

// BinaryExpression -> (left op right)
type BinaryExpression struct {
	Token    token.Token // the operator
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }

// Pos is the position of the leftmost operand, where the expression starts.
func (be *BinaryExpression) Pos() token.Position {
	if be.Left != nil {
		return be.Left.Pos()
	}
	return be.Token.Pos()
}

func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(") // Parentheses make precedence explicit
	out.WriteString(exprString(be.Left))
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(exprString(be.Right))
	out.WriteString(")")
	return out.String()
}

func exprString(e Expression) string {
	if e == nil {
		return "?"
	}
	return e.String()
}

func stmtString(s Statement) string {
	if s == nil {
		return "?"
	}
	return s.String()
}
