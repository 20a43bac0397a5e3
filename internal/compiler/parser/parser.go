package parser

import (
	"slices"

	"github.com/arnavsurve/minic/internal/compiler/ast"
	"github.com/arnavsurve/minic/internal/compiler/diag"
	"github.com/arnavsurve/minic/internal/compiler/lexer"
	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

// declTypes maps type keywords to the declared type.
var declTypes = map[token.TokenType]symbols.Type{
	token.TokenInt:     symbols.TypeInt,
	token.TokenFloat:   symbols.TypeFloat,
	token.TokenChar:    symbols.TypeChar,
	token.TokenBoolean: symbols.TypeBoolean,
}

// syncTokens are the tokens error recovery stops at. A ';' is consumed, the
// others are left for the enclosing construct.
var syncTokens = []token.TokenType{
	token.TokenSemi,
	token.TokenRBrace,
	token.TokenLBrace,
	token.TokenIf,
	token.TokenWhile,
	token.TokenInt,
	token.TokenFloat,
	token.TokenChar,
	token.TokenBoolean,
	token.TokenMain,
	token.TokenEOF,
}

// maxNestingDepth bounds how deeply statements and expressions may nest.
const maxNestingDepth = 1000

type Parser struct {
	l           *lexer.Lexer
	diagnostics diag.List

	depth   int
	tooDeep bool // nesting diagnostic already recorded for this statement
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// --- Token Handling ---
func (p *Parser) peek() token.Token {
	return p.l.Peek()
}

func (p *Parser) nextToken() token.Token {
	return p.l.NextToken()
}

// --- Error Handling ---
func (p *Parser) addError(tok token.Token, format string, args ...any) {
	p.diagnostics.Add(diag.Syntax, tok.Pos(), format, args...)
}

// Errors returns the rendered syntax diagnostics
func (p *Parser) Errors() []string {
	return p.diagnostics.Messages()
}

func (p *Parser) ErrorCount() int {
	return p.diagnostics.Len()
}

func (p *Parser) Diagnostics() diag.List {
	return p.diagnostics
}

// expect consumes the next token if it has the expected type. Otherwise it
// records a diagnostic naming what was expected and leaves the token in place.
func (p *Parser) expect(expectedType token.TokenType, what string) (token.Token, bool) {
	tok := p.peek()
	if tok.Type == expectedType {
		return p.nextToken(), true
	}
	p.addError(tok, "expected %s but found %s", what, tok.Describe())
	return tok, false
}

// synchronize skips tokens up to the next statement boundary.
func (p *Parser) synchronize() {
	for {
		tok := p.peek()
		if tok.Type == token.TokenSemi {
			p.nextToken()
			return
		}
		if slices.Contains(syncTokens, tok.Type) {
			return
		}
		p.nextToken()
	}
}

// enter tracks one level of nesting. It returns false past maxNestingDepth,
// recording a single diagnostic per top-level statement. Every call must be
// paired with a deferred leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= maxNestingDepth {
		return true
	}
	if !p.tooDeep {
		p.tooDeep = true
		p.addError(p.peek(), "nesting too deep (limit %d) at %s", maxNestingDepth, p.peek().Describe())
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
	if p.depth == 0 {
		p.tooDeep = false
	}
}

// --- Program Parsing ---

// ParseProgram always returns a Program; malformed regions are dropped or
// left partially filled and reported through Errors.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Declarations: []*ast.VarDeclaration{}}

	p.parseDeclarations(program)

	// Only main, '{' or EOF can follow the declarations.
	mainTok, ok := p.expect(token.TokenMain, "'main'")
	program.Token = mainTok

	if p.peek().Type == token.TokenEOF {
		if ok {
			p.addError(p.peek(), "expected '{' but found %s", p.peek().Describe())
		}
		return program
	}
	program.Main = p.parseBlockStatement()

	if tok := p.peek(); tok.Type != token.TokenEOF && p.ErrorCount() == 0 {
		// Leftovers after earlier errors are recovery fallout and are not
		// reported again.
		p.addError(tok, "expected end of input after main block but found %s", tok.Describe())
	}
	return program
}

// parseDeclarations parses the global declarations. A stray run of tokens
// is reported once and skipped up to the next ';' or statement keyword, so
// the declarations after it are still collected.
func (p *Parser) parseDeclarations(program *ast.Program) {
	reported := false
	for {
		tok := p.peek()
		switch {
		case tok.IsTypeKeyword():
			if decl := p.parseVarDeclaration(); decl != nil {
				program.Declarations = append(program.Declarations, decl)
			}
			reported = false
		case tok.Type == token.TokenMain, tok.Type == token.TokenLBrace, tok.Type == token.TokenEOF:
			return
		default:
			if !reported {
				p.addError(tok, "expected declaration or 'main' but found %s", tok.Describe())
				reported = true
			}
			p.nextToken()
			p.synchronize()
		}
	}
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() ast.Statement {
	defer p.leave()
	tok := p.peek()
	if !p.enter() {
		// Skip one token at a time so the enclosing blocks still see their
		// closing braces.
		if tok.Type != token.TokenRBrace && tok.Type != token.TokenEOF {
			p.nextToken()
		}
		return nil
	}

	switch {
	case tok.Type == token.TokenIf:
		return p.parseIfStatement()
	case tok.Type == token.TokenWhile:
		return p.parseWhileStatement()
	case tok.Type == token.TokenIdent:
		return p.parseAssignStatement()
	case tok.Type == token.TokenLBrace:
		if block := p.parseBlockStatement(); block != nil {
			return block
		}
		return nil
	case tok.IsTypeKeyword():
		if decl := p.parseVarDeclaration(); decl != nil {
			return decl
		}
		return nil
	default:
		p.addError(tok, "expected statement but found %s", tok.Describe())
		// A closing brace or EOF belongs to the enclosing block.
		if tok.Type != token.TokenRBrace && tok.Type != token.TokenEOF {
			p.nextToken()
			p.synchronize()
		}
		return nil
	}
}

// parseVarDeclaration parses `type name [ '[' size ']' ] ;`
func (p *Parser) parseVarDeclaration() *ast.VarDeclaration {
	typeTok := p.nextToken()
	decl := &ast.VarDeclaration{Token: typeTok, Type: declTypes[typeTok.Type]}

	nameTok, ok := p.expect(token.TokenIdent, "identifier")
	if !ok {
		p.synchronize()
		return nil
	}
	decl.Name = &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	if p.peek().Type == token.TokenLBracket {
		p.nextToken() // Consume '['
		sizeTok, ok := p.expect(token.TokenIntConst, "integer array size")
		if !ok {
			p.synchronize()
			return nil
		}
		size, _ := sizeTok.Attr.(token.IntValue)
		decl.Size = &ast.IntegerLiteral{Token: sizeTok, Value: int64(size)}
		if _, ok := p.expect(token.TokenRBracket, "']'"); !ok {
			p.synchronize()
			return nil
		}
	}

	if _, ok := p.expect(token.TokenSemi, "';'"); !ok {
		// The declaration itself is complete; keep it.
		p.synchronize()
	}
	return decl
}

// parseBlockStatement parses `{ statements... }`
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	lbrace, ok := p.expect(token.TokenLBrace, "'{'")
	if !ok {
		p.synchronize()
		return nil
	}
	block := &ast.BlockStatement{Token: lbrace, Statements: []ast.Statement{}}

	for {
		tok := p.peek()
		if tok.Type == token.TokenRBrace || tok.Type == token.TokenEOF {
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}

	// At EOF the block is unterminated; keep what was parsed.
	p.expect(token.TokenRBrace, "'}'")
	return block
}

// parseIfStatement parses `if ( expr ) stmt [ else stmt ]`
func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.nextToken()

	cond, ok := p.parseCondition()
	if !ok {
		return nil
	}
	stmt := &ast.IfStatement{Token: ifTok, Condition: cond}
	stmt.Consequence = p.parseStatement()

	if p.peek().Type == token.TokenElse {
		p.nextToken() // Consume 'else'
		stmt.Alternative = p.parseStatement()
	}
	return stmt
}

// parseWhileStatement parses `while ( expr ) stmt`
func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.nextToken()

	cond, ok := p.parseCondition()
	if !ok {
		return nil
	}
	stmt := &ast.WhileStatement{Token: whileTok, Condition: cond}
	stmt.Body = p.parseStatement()
	return stmt
}

// parseCondition parses the parenthesized condition of if/while. On failure
// the parser has already synchronized.
func (p *Parser) parseCondition() (ast.Expression, bool) {
	if _, ok := p.expect(token.TokenLParen, "'('"); !ok {
		p.synchronize()
		return nil, false
	}
	cond := p.parseExpression()
	if cond == nil {
		p.synchronize()
		return nil, false
	}
	if _, ok := p.expect(token.TokenRParen, "')'"); !ok {
		p.synchronize()
		return nil, false
	}
	return cond, true
}

// parseAssignStatement parses `name [ '[' expr ']' ] = expr ;`
func (p *Parser) parseAssignStatement() ast.Statement {
	nameTok := p.nextToken()
	stmt := &ast.AssignStatement{
		Token:  nameTok,
		Target: &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
	}

	if p.peek().Type == token.TokenLBracket {
		p.nextToken() // Consume '['
		index := p.parseExpression()
		if index == nil {
			p.synchronize()
			return nil
		}
		if _, ok := p.expect(token.TokenRBracket, "']'"); !ok {
			p.synchronize()
			return nil
		}
		stmt.Index = index
	}

	if _, ok := p.expect(token.TokenAssign, "'='"); !ok {
		p.synchronize()
		return nil
	}

	value := p.parseExpression()
	if value == nil {
		p.synchronize()
		return nil
	}
	stmt.Value = value

	if _, ok := p.expect(token.TokenSemi, "';'"); !ok {
		p.synchronize()
	}
	return stmt
}

// --- Expression Parsing ---
// Each precedence tier loops over its operators, which makes every binary
// operator left-associative. A nil result means a diagnostic was recorded.

func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicOr()
}

func (p *Parser) parseLogicOr() ast.Expression {
	return p.parseBinary(p.parseLogicAnd, token.TokenOr)
}

func (p *Parser) parseLogicAnd() ast.Expression {
	return p.parseBinary(p.parseEquality, token.TokenAnd)
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinary(p.parseRelational, token.TokenEq, token.TokenNEq)
}

func (p *Parser) parseRelational() ast.Expression {
	return p.parseBinary(p.parseAdditive, token.TokenLT, token.TokenGT, token.TokenLTEq, token.TokenGTEq)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseBinary(p.parseMultiplicative, token.TokenPlus, token.TokenMinus)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseBinary(p.parseUnary, token.TokenTimes, token.TokenDiv, token.TokenMod)
}

func (p *Parser) parseBinary(operand func() ast.Expression, ops ...token.TokenType) ast.Expression {
	left := operand()
	if left == nil {
		return nil
	}
	for slices.Contains(ops, p.peek().Type) {
		opTok := p.nextToken()
		right := operand()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	defer p.leave()
	if !p.enter() {
		return nil
	}
	if tok := p.peek(); tok.Type == token.TokenMinus || tok.Type == token.TokenNot {
		opTok := p.nextToken()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Type {
	case token.TokenIdent:
		p.nextToken()
		ident := &ast.Identifier{Token: tok, Value: tok.Literal}
		if p.peek().Type != token.TokenLBracket {
			return ident
		}
		p.nextToken() // Consume '['
		index := p.parseExpression()
		if index == nil {
			return nil
		}
		if _, ok := p.expect(token.TokenRBracket, "']'"); !ok {
			return nil
		}
		return &ast.IndexExpression{Token: tok, Name: ident, Index: index}

	case token.TokenIntConst:
		p.nextToken()
		v, _ := tok.Attr.(token.IntValue)
		return &ast.IntegerLiteral{Token: tok, Value: int64(v)}

	case token.TokenFloatConst:
		p.nextToken()
		v, _ := tok.Attr.(token.FloatValue)
		return &ast.FloatLiteral{Token: tok, Value: float64(v)}

	case token.TokenCharConst:
		p.nextToken()
		v, _ := tok.Attr.(token.CharValue)
		return &ast.CharLiteral{Token: tok, Value: rune(v)}

	case token.TokenBooleanConst:
		p.nextToken()
		v, _ := tok.Attr.(token.BoolValue)
		return &ast.BooleanLiteral{Token: tok, Value: bool(v)}

	case token.TokenLParen:
		defer p.leave()
		if !p.enter() {
			return nil
		}
		p.nextToken() // Consume '('
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(token.TokenRParen, "')'"); !ok {
			return nil
		}
		return expr

	default:
		p.addError(tok, "expected expression but found %s", tok.Describe())
		return nil
	}
}
