package parser

import (
	"strings"
	"testing"

	"github.com/arnavsurve/minic/internal/compiler/ast"
	"github.com/arnavsurve/minic/internal/compiler/lexer"
	"github.com/arnavsurve/minic/internal/compiler/symbols"
)

// --- Test Helper Functions ---

func parse(input string) (*ast.Program, *Parser) {
	p := NewParser(lexer.NewLexer(input))
	return p.ParseProgram(), p
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("Parser has %d errors:", len(errors))
	for i, msg := range errors {
		t.Errorf("   Error %d: %q", i+1, msg)
	}
	t.FailNow()
}

func checkErrorCount(t *testing.T, p *Parser, want int) {
	t.Helper()
	if p.ErrorCount() != want {
		t.Fatalf("expected=%d syntax errors, got=%d: %v", want, p.ErrorCount(), p.Errors())
	}
}

func mainStatements(t *testing.T, program *ast.Program, want int) []ast.Statement {
	t.Helper()
	if program.Main == nil {
		t.Fatalf("program.Main is nil")
	}
	if len(program.Main.Statements) != want {
		t.Fatalf("main expected=%d statements, got=%d", want, len(program.Main.Statements))
	}
	return program.Main.Statements
}

// --- Test Cases ---

func TestSimpleProgram(t *testing.T) {
	program, p := parse("int x; main { x = 5; }")
	checkParserErrors(t, p)

	if len(program.Declarations) != 1 {
		t.Fatalf("expected=1 declaration, got=%d", len(program.Declarations))
	}
	decl := program.Declarations[0]
	if decl.Type != symbols.TypeInt || decl.Name.Value != "x" || decl.IsArray() {
		t.Errorf("unexpected declaration %s", decl.String())
	}

	stmts := mainStatements(t, program, 1)
	assign, ok := stmts[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("main.Statements[0] is not *ast.AssignStatement. got=%T", stmts[0])
	}
	if assign.Target.Value != "x" {
		t.Errorf("assign target expected='x', got=%q", assign.Target.Value)
	}
	lit, ok := assign.Value.(*ast.IntegerLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("assign value expected IntegerLiteral 5, got=%s", assign.Value)
	}

	want := "int x;\nmain {\n\tx = 5;\n}"
	if program.String() != want {
		t.Errorf("program.String() expected=%q, got=%q", want, program.String())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a - b - c", "((a - b) - c)"},
		{"a * b / c % d", "(((a * b) / c) % d)"},
		{"-a * b", "((-a) * b)"},
		{"- -a", "(-(-a))"},
		{"!a && b || c", "(((!a) && b) || c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a <= b != c >= d", "((a <= b) != (c >= d))"},
		{"a + 1 < b * 2", "((a + 1) < (b * 2))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a[i + 1] + 2", "(a[(i + 1)] + 2)"},
		{"x == 1.5 || c != 'z'", "((x == 1.5) || (c != 'z'))"},
	}

	for _, tt := range tests {
		program, p := parse("main { r = " + tt.input + "; }")
		checkParserErrors(t, p)

		stmts := mainStatements(t, program, 1)
		assign := stmts[0].(*ast.AssignStatement)
		if got := assign.Value.String(); got != tt.expected {
			t.Errorf("%q: expected=%q, got=%q", tt.input, tt.expected, got)
		}
	}
}

func TestArrayDeclarationAndAccess(t *testing.T) {
	program, p := parse("int a[5]; float f; main { a[0] = a[1] + 2; }")
	checkParserErrors(t, p)

	if len(program.Declarations) != 2 {
		t.Fatalf("expected=2 declarations, got=%d", len(program.Declarations))
	}
	arr := program.Declarations[0]
	if !arr.IsArray() || arr.Size.Value != 5 {
		t.Errorf("expected a[5], got=%s", arr.String())
	}
	if program.Declarations[1].Type != symbols.TypeFloat {
		t.Errorf("expected float declaration, got=%s", program.Declarations[1].Type)
	}

	assign := mainStatements(t, program, 1)[0].(*ast.AssignStatement)
	if assign.Index == nil || assign.Index.String() != "0" {
		t.Errorf("expected index 0, got=%v", assign.Index)
	}
	if assign.Value.String() != "(a[1] + 2)" {
		t.Errorf("unexpected value %q", assign.Value.String())
	}
	bin := assign.Value.(*ast.BinaryExpression)
	if _, ok := bin.Left.(*ast.IndexExpression); !ok {
		t.Errorf("expected *ast.IndexExpression on the left, got=%T", bin.Left)
	}
}

func TestIfElse(t *testing.T) {
	program, p := parse("main { if (a) x = 1; else { x = 2; } }")
	checkParserErrors(t, p)

	stmt, ok := mainStatements(t, program, 1)[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got=%T", program.Main.Statements[0])
	}
	if stmt.Condition.String() != "a" {
		t.Errorf("condition expected='a', got=%q", stmt.Condition.String())
	}
	if _, ok := stmt.Consequence.(*ast.AssignStatement); !ok {
		t.Errorf("consequence expected *ast.AssignStatement, got=%T", stmt.Consequence)
	}
	if _, ok := stmt.Alternative.(*ast.BlockStatement); !ok {
		t.Errorf("alternative expected *ast.BlockStatement, got=%T", stmt.Alternative)
	}
}

func TestDanglingElseBindsInnermost(t *testing.T) {
	program, p := parse("main { if (a) if (b) x = 1; else x = 2; }")
	checkParserErrors(t, p)

	outer := mainStatements(t, program, 1)[0].(*ast.IfStatement)
	if outer.Alternative != nil {
		t.Errorf("outer if should have no else, got=%s", outer.Alternative)
	}
	inner, ok := outer.Consequence.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected nested *ast.IfStatement, got=%T", outer.Consequence)
	}
	if inner.Alternative == nil {
		t.Errorf("inner if should own the else")
	}
}

func TestWhileAndNestedBlocks(t *testing.T) {
	input := `
main {
	while (i < 10) {
		i = i + 1;
		{ int y; y = i; }
	}
}`
	program, p := parse(input)
	checkParserErrors(t, p)

	loop, ok := mainStatements(t, program, 1)[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected *ast.WhileStatement, got=%T", program.Main.Statements[0])
	}
	if loop.Condition.String() != "(i < 10)" {
		t.Errorf("condition expected='(i < 10)', got=%q", loop.Condition.String())
	}
	body, ok := loop.Body.(*ast.BlockStatement)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected a body block with 2 statements, got=%s", loop.Body)
	}
	inner, ok := body.Statements[1].(*ast.BlockStatement)
	if !ok || len(inner.Statements) != 2 {
		t.Fatalf("expected a nested block with 2 statements, got=%s", body.Statements[1])
	}
	if _, ok := inner.Statements[0].(*ast.VarDeclaration); !ok {
		t.Errorf("expected a local declaration, got=%T", inner.Statements[0])
	}
}

func TestMissingParenRecovery(t *testing.T) {
	program, p := parse("main { if (x } }")
	checkErrorCount(t, p, 1)

	want := "1:14: Syntax Error: expected ')' but found '}'"
	if p.Errors()[0] != want {
		t.Errorf("expected=%q, got=%q", want, p.Errors()[0])
	}
	if program.Main == nil {
		t.Fatalf("main block should survive recovery")
	}
}

func TestMultipleErrorsReported(t *testing.T) {
	program, p := parse("main { x = ; y = 1; z = 2 }")
	checkErrorCount(t, p, 2)

	if !strings.Contains(p.Errors()[0], "expected expression but found ';'") {
		t.Errorf("unexpected first error %q", p.Errors()[0])
	}
	if !strings.Contains(p.Errors()[1], "expected ';' but found '}'") {
		t.Errorf("unexpected second error %q", p.Errors()[1])
	}
	// y = 1 and the unterminated z = 2 both survive.
	mainStatements(t, program, 2)
}

func TestStatementRecovery(t *testing.T) {
	program, p := parse("main { 5; x = 1; }")
	checkErrorCount(t, p, 1)
	if !strings.Contains(p.Errors()[0], "expected statement") {
		t.Errorf("unexpected error %q", p.Errors()[0])
	}
	mainStatements(t, program, 1)
}

func TestDeclarationMissingSemicolon(t *testing.T) {
	program, p := parse("int x\nmain { }")
	checkErrorCount(t, p, 1)
	if !strings.HasPrefix(p.Errors()[0], "2:1: ") {
		t.Errorf("expected error at 2:1, got=%q", p.Errors()[0])
	}
	if len(program.Declarations) != 1 {
		t.Errorf("declaration should be kept, got=%d", len(program.Declarations))
	}
	mainStatements(t, program, 0)
}

func TestMissingMain(t *testing.T) {
	tests := []string{"", "int x;"}
	for _, input := range tests {
		program, p := parse(input)
		checkErrorCount(t, p, 1)
		if !strings.Contains(p.Errors()[0], "expected 'main' but found end of input") {
			t.Errorf("%q: unexpected error %q", input, p.Errors()[0])
		}
		if program.Main != nil {
			t.Errorf("%q: expected nil main, got=%s", input, program.Main)
		}
	}
}

func TestStrayTokensBeforeDeclarations(t *testing.T) {
	program, p := parse("x; int y; main { y = 1; }")
	checkErrorCount(t, p, 1)
	want := "1:1: Syntax Error: expected declaration or 'main' but found ID 'x'"
	if p.Errors()[0] != want {
		t.Errorf("expected=%q, got=%q", want, p.Errors()[0])
	}
	if len(program.Declarations) != 1 || program.Declarations[0].Name.Value != "y" {
		t.Fatalf("expected declaration of y to survive, got=%d declarations", len(program.Declarations))
	}
	mainStatements(t, program, 1)

	// One diagnostic per stray run, even across several statements' worth.
	program, p = parse("} x = 1; if (y) int z; main { }")
	checkErrorCount(t, p, 1)
	if len(program.Declarations) != 1 {
		t.Errorf("expected=1 declaration, got=%d", len(program.Declarations))
	}
}

func TestBinaryExpressionPosition(t *testing.T) {
	program, p := parse("main { r = a * b + c; }")
	checkParserErrors(t, p)

	value := mainStatements(t, program, 1)[0].(*ast.AssignStatement).Value
	if got := value.Pos().String(); got != "1:12" {
		t.Errorf("expected the sum to start at 1:12, got=%s", got)
	}
}

func TestDeepNesting(t *testing.T) {
	const n = 100000
	tests := []struct {
		name  string
		input string
	}{
		{"parentheses", "int x; main { x = " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + "; }"},
		{"unary minus", "int x; main { x = " + strings.Repeat("-", n) + "1; }"},
		{"blocks", "main { " + strings.Repeat("{", n) + strings.Repeat("}", n) + " }"},
		{"while bodies", "main { " + strings.Repeat("while (true) ", n) + "x = 1; }"},
	}

	for _, tt := range tests {
		program, p := parse(tt.input)
		if program == nil || program.Main == nil {
			t.Fatalf("%s: expected a program with a main block", tt.name)
		}
		if p.ErrorCount() == 0 {
			t.Fatalf("%s: expected a nesting diagnostic", tt.name)
		}
		if !strings.Contains(p.Errors()[0], "nesting too deep") {
			t.Errorf("%s: unexpected first error %q", tt.name, p.Errors()[0])
		}
		if p.ErrorCount() != len(p.Errors()) {
			t.Errorf("%s: ErrorCount=%d but %d messages", tt.name, p.ErrorCount(), len(p.Errors()))
		}
	}
}

func TestNestingBelowLimit(t *testing.T) {
	program, p := parse("main { x = " + strings.Repeat("(", 400) + "1" + strings.Repeat(")", 400) + "; }")
	checkParserErrors(t, p)
	if got := mainStatements(t, program, 1)[0].String(); got != "x = 1;" {
		t.Errorf("expected=%q, got=%q", "x = 1;", got)
	}

	_, p = parse("main { x = " + strings.Repeat("(", 100000) + "1" + strings.Repeat(")", 100000) + "; }")
	checkErrorCount(t, p, 1)
}

func TestUnterminatedBlock(t *testing.T) {
	program, p := parse("main { x = 1;")
	checkErrorCount(t, p, 1)
	if !strings.Contains(p.Errors()[0], "expected '}' but found end of input") {
		t.Errorf("unexpected error %q", p.Errors()[0])
	}
	mainStatements(t, program, 1)
}

func TestTrailingTokens(t *testing.T) {
	_, p := parse("main { } x")
	checkErrorCount(t, p, 1)
	if !strings.Contains(p.Errors()[0], "expected end of input after main block") {
		t.Errorf("unexpected error %q", p.Errors()[0])
	}
}

func TestErrorCountMatchesErrors(t *testing.T) {
	inputs := []string{
		"",
		"main { }",
		"main { if (x } }",
		"int ; float [; main { while ( { } ",
		"main { x = 1 @ 2; y[ = 3; }",
		"} } main",
	}
	for _, input := range inputs {
		program, p := parse(input)
		if program == nil {
			t.Fatalf("%q: ParseProgram returned nil", input)
		}
		if p.ErrorCount() != len(p.Errors()) {
			t.Errorf("%q: ErrorCount=%d but %d messages", input, p.ErrorCount(), len(p.Errors()))
		}
	}
}
