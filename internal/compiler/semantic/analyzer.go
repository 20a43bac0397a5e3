// Package semantic resolves identifiers and checks types over a parsed
// program. Every violation is recorded and the walk always covers the whole
// tree.
package semantic

import (
	"github.com/arnavsurve/minic/internal/compiler/ast"
	"github.com/arnavsurve/minic/internal/compiler/diag"
	"github.com/arnavsurve/minic/internal/compiler/scope"
	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

type opClass int

const (
	opArithmetic opClass = iota
	opRelational
	opEquality
	opLogical
)

var binaryOps = map[token.TokenType]opClass{
	token.TokenPlus:  opArithmetic,
	token.TokenMinus: opArithmetic,
	token.TokenTimes: opArithmetic,
	token.TokenDiv:   opArithmetic,
	token.TokenMod:   opArithmetic,
	token.TokenLT:    opRelational,
	token.TokenGT:    opRelational,
	token.TokenLTEq:  opRelational,
	token.TokenGTEq:  opRelational,
	token.TokenEq:    opEquality,
	token.TokenNEq:   opEquality,
	token.TokenAnd:   opLogical,
	token.TokenOr:    opLogical,
}

type Analyzer struct {
	currentScope *scope.Scope
	diagnostics  diag.List
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) addError(pos token.Position, format string, args ...any) {
	a.diagnostics.Add(diag.Semantic, pos, format, args...)
}

// Errors returns the rendered semantic diagnostics
func (a *Analyzer) Errors() []string {
	return a.diagnostics.Messages()
}

func (a *Analyzer) ErrorCount() int {
	return a.diagnostics.Len()
}

func (a *Analyzer) Diagnostics() diag.List {
	return a.diagnostics
}

// -- Scope Management ---
func (a *Analyzer) pushScope(name string) {
	a.currentScope = scope.NewScope(a.currentScope, name)
}

func (a *Analyzer) popScope() {
	if a.currentScope != nil {
		a.currentScope = a.currentScope.Outer
	}
}

// AnalyzeProgram checks the program and returns the number of semantic
// errors found.
func (a *Analyzer) AnalyzeProgram(program *ast.Program) int {
	a.currentScope = scope.NewScope(nil, "global")
	a.diagnostics = nil

	for _, decl := range program.Declarations {
		a.declare(decl)
	}
	if program.Main != nil {
		a.analyzeBlock(program.Main, "main")
	}

	a.currentScope = nil
	return a.ErrorCount()
}

// --- Statements ---

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		a.declare(s)
	case *ast.BlockStatement:
		a.analyzeBlock(s, "block")
	case *ast.IfStatement:
		a.checkCondition("if", s.Condition)
		a.analyzeBody(s.Consequence, "if")
		a.analyzeBody(s.Alternative, "else")
	case *ast.WhileStatement:
		a.checkCondition("while", s.Condition)
		a.analyzeBody(s.Body, "while")
	case *ast.AssignStatement:
		a.analyzeAssign(s)
	}
}

func (a *Analyzer) analyzeBlock(block *ast.BlockStatement, name string) {
	a.pushScope(name)
	defer a.popScope()
	for _, stmt := range block.Statements {
		a.analyzeStatement(stmt)
	}
}

// analyzeBody gives an if/else/while body its own scope, block or not.
func (a *Analyzer) analyzeBody(body ast.Statement, name string) {
	if body == nil {
		return
	}
	if block, ok := body.(*ast.BlockStatement); ok {
		a.analyzeBlock(block, name)
		return
	}
	a.pushScope(name)
	defer a.popScope()
	a.analyzeStatement(body)
}

func (a *Analyzer) declare(decl *ast.VarDeclaration) {
	name := decl.Name.Value
	info := symbols.SymbolInfo{
		Name:   name,
		Type:   decl.Type,
		Line:   decl.Name.Token.Line,
		Column: decl.Name.Token.Column,
	}
	if decl.IsArray() {
		info.IsArray = true
		info.Size = decl.Size.Value
		if decl.Size.Value <= 0 {
			a.addError(decl.Size.Pos(), "array size of '%s' must be positive, got %d", name, decl.Size.Value)
		}
	}

	if prev, ok := a.currentScope.Declare(info); !ok {
		a.addError(decl.Name.Pos(), "duplicate declaration of %s at line %d (first declared at line %d in %s scope)",
			name, info.Line, prev.Line, a.currentScope.Name)
	}
}

func (a *Analyzer) checkCondition(construct string, cond ast.Expression) {
	if cond == nil {
		return
	}
	t := a.typeOf(cond)
	if t != symbols.TypeInvalid && t != symbols.TypeBoolean {
		a.addError(cond.Pos(), "%s condition must be boolean, got %s", construct, t)
	}
}

func (a *Analyzer) analyzeAssign(stmt *ast.AssignStatement) {
	name := stmt.Target.Value
	sym, declared := a.resolve(stmt.Target)

	if stmt.Index != nil {
		indexType := a.typeOf(stmt.Index)
		if declared {
			declared = a.checkIndex(sym, stmt.Target, stmt.Index, indexType)
		}
	} else if declared && sym.IsArray {
		a.addError(stmt.Target.Pos(), "array '%s' must be indexed", name)
		declared = false
	}

	valueType := a.typeOf(stmt.Value)
	if !declared || valueType == symbols.TypeInvalid {
		return
	}
	if !valueType.AssignableTo(sym.Type) {
		a.addError(stmt.Target.Pos(), "cannot assign %s to %s variable '%s'", valueType, sym.Type, name)
	}
}

// resolve looks an identifier up through the scope chain, reporting it when
// undeclared.
func (a *Analyzer) resolve(ident *ast.Identifier) (symbols.SymbolInfo, bool) {
	sym, _, ok := a.currentScope.Resolve(ident.Value)
	if !ok {
		a.addError(ident.Pos(), "undeclared identifier '%s'", ident.Value)
	}
	return sym, ok
}

// checkIndex validates sym[index]. It returns false when sym is not an array.
func (a *Analyzer) checkIndex(sym symbols.SymbolInfo, ident *ast.Identifier, index ast.Expression, indexType symbols.Type) bool {
	if !sym.IsArray {
		a.addError(ident.Pos(), "'%s' is not an array", ident.Value)
		return false
	}
	if indexType != symbols.TypeInvalid && indexType != symbols.TypeInt {
		a.addError(index.Pos(), "index of '%s' must be int, got %s", ident.Value, indexType)
		return true
	}
	if v, ok := constantInt(index); ok && sym.Size > 0 && (v < 0 || v >= sym.Size) {
		a.addError(index.Pos(), "index %d out of bounds for '%s' of size %d", v, ident.Value, sym.Size)
	}
	return true
}

// constantInt folds integer literals under any number of unary minuses.
func constantInt(expr ast.Expression) (int64, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value, true
	case *ast.UnaryExpression:
		if e.Token.Type != token.TokenMinus {
			return 0, false
		}
		v, ok := constantInt(e.Operand)
		return -v, ok
	default:
		return 0, false
	}
}

// --- Expressions ---

// typeOf infers the type of expr. TypeInvalid means an error was already
// reported for it, so callers stay quiet.
func (a *Analyzer) typeOf(expr ast.Expression) symbols.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return symbols.TypeInt
	case *ast.FloatLiteral:
		return symbols.TypeFloat
	case *ast.CharLiteral:
		return symbols.TypeChar
	case *ast.BooleanLiteral:
		return symbols.TypeBoolean
	case *ast.Identifier:
		sym, ok := a.resolve(e)
		if !ok {
			return symbols.TypeInvalid
		}
		if sym.IsArray {
			a.addError(e.Pos(), "array '%s' must be indexed", e.Value)
			return symbols.TypeInvalid
		}
		return sym.Type
	case *ast.IndexExpression:
		sym, ok := a.resolve(e.Name)
		indexType := a.typeOf(e.Index)
		if !ok || !a.checkIndex(sym, e.Name, e.Index, indexType) {
			return symbols.TypeInvalid
		}
		return sym.Type
	case *ast.UnaryExpression:
		return a.typeOfUnary(e)
	case *ast.BinaryExpression:
		return a.typeOfBinary(e)
	default:
		return symbols.TypeInvalid
	}
}

func (a *Analyzer) typeOfUnary(e *ast.UnaryExpression) symbols.Type {
	operand := a.typeOf(e.Operand)

	if e.Token.Type == token.TokenNot {
		if operand != symbols.TypeInvalid && operand != symbols.TypeBoolean {
			a.addError(e.Pos(), "operator '!' requires a boolean operand, got %s", operand)
		}
		return symbols.TypeBoolean
	}

	if operand == symbols.TypeInvalid {
		return symbols.TypeInvalid
	}
	if !operand.IsNumeric() {
		a.addError(e.Pos(), "operator '%s' requires a numeric operand, got %s", e.Operator, operand)
		return symbols.TypeInvalid
	}
	return operand
}

func (a *Analyzer) typeOfBinary(e *ast.BinaryExpression) symbols.Type {
	left := a.typeOf(e.Left)
	right := a.typeOf(e.Right)
	invalid := left == symbols.TypeInvalid || right == symbols.TypeInvalid

	switch binaryOps[e.Token.Type] {
	case opArithmetic:
		if invalid {
			return symbols.TypeInvalid
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			a.addError(e.Pos(), "operator '%s' requires numeric operands, got %s and %s", e.Operator, left, right)
			return symbols.TypeInvalid
		}
		return symbols.Promote(left, right)

	case opRelational:
		if !invalid && (!left.IsNumeric() || !right.IsNumeric()) {
			a.addError(e.Pos(), "operator '%s' requires numeric operands, got %s and %s", e.Operator, left, right)
		}

	case opEquality:
		compatible := left == right || (left.IsNumeric() && right.IsNumeric())
		if !invalid && !compatible {
			a.addError(e.Pos(), "operator '%s' cannot compare %s and %s", e.Operator, left, right)
		}

	case opLogical:
		if !invalid && (left != symbols.TypeBoolean || right != symbols.TypeBoolean) {
			a.addError(e.Pos(), "operator '%s' requires boolean operands, got %s and %s", e.Operator, left, right)
		}
	}
	return symbols.TypeBoolean
}
