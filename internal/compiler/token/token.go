package token

import (
	"fmt"
	"strconv"
)

type TokenType string

const (
	// Punctuation
	TokenLParen   TokenType = "LPAREN"   // (
	TokenRParen   TokenType = "RPAREN"   // )
	TokenLBracket TokenType = "LBRACKET" // [
	TokenRBracket TokenType = "RBRACKET" // ]
	TokenLBrace   TokenType = "LBRACE"   // {
	TokenRBrace   TokenType = "RBRACE"   // }
	TokenSemi     TokenType = "SEMI"     // ;
	TokenComma    TokenType = "COMMA"    // ,
	TokenAssign   TokenType = "ASSIGN"   // =

	// Arithmetic
	TokenPlus  TokenType = "PLUS"  // +
	TokenMinus TokenType = "MINUS" // - (binary or unary)
	TokenTimes TokenType = "TIMES" // *
	TokenDiv   TokenType = "DIV"   // /
	TokenMod   TokenType = "MOD"   // %

	// Relational
	TokenLT   TokenType = "LT"    // <
	TokenGT   TokenType = "GT"    // >
	TokenLTEq TokenType = "LT_EQ" // <=
	TokenGTEq TokenType = "GT_EQ" // >=
	TokenEq   TokenType = "EQ"    // ==
	TokenNEq  TokenType = "NEQ"   // !=

	// Logical
	TokenAnd TokenType = "AND" // &&
	TokenOr  TokenType = "OR"  // ||
	TokenNot TokenType = "NOT" // !

	// Type keywords
	TokenInt     TokenType = "INT"
	TokenFloat   TokenType = "FLOAT"
	TokenChar    TokenType = "CHAR"
	TokenBoolean TokenType = "BOOLEAN"

	// Control keywords
	TokenIf    TokenType = "IF"
	TokenElse  TokenType = "ELSE"
	TokenWhile TokenType = "WHILE"
	TokenMain  TokenType = "MAIN"

	// Literals & Identifiers
	TokenIdent        TokenType = "ID"
	TokenIntConst     TokenType = "INT_CONST"
	TokenFloatConst   TokenType = "FLOAT_CONST"
	TokenCharConst    TokenType = "CHAR_CONST"
	TokenBooleanConst TokenType = "BOOLEAN_CONST"

	// Special
	TokenEOF     TokenType = "EOF"
	TokenUnknown TokenType = "UNKNOWN"
)

// Attribute is the literal payload of a token. Only identifier and literal
// tokens carry one; every other token has a nil Attribute.
type Attribute interface {
	attribute()
	String() string
}

type Ident string
type IntValue int64
type FloatValue float64
type CharValue rune
type BoolValue bool

func (Ident) attribute()      {}
func (IntValue) attribute()   {}
func (FloatValue) attribute() {}
func (CharValue) attribute()  {}
func (BoolValue) attribute()  {}

func (a Ident) String() string    { return string(a) }
func (a IntValue) String() string { return strconv.FormatInt(int64(a), 10) }
func (a FloatValue) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}
func (a CharValue) String() string { return string(rune(a)) }
func (a BoolValue) String() string { return strconv.FormatBool(bool(a)) }

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type    TokenType
	Literal string // raw source text
	Attr    Attribute
	Line    int
	Column  int
}

func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// Describe renders the token for diagnostics, e.g. `ID 'count'` or `'}'`.
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenIntConst, TokenFloatConst, TokenCharConst, TokenBooleanConst, TokenUnknown:
		return fmt.Sprintf("%s '%s'", t.Type, t.Literal)
	}
	return fmt.Sprintf("'%s'", t.Literal)
}

func (t Token) IsTypeKeyword() bool {
	return t.Type == TokenInt || t.Type == TokenFloat || t.Type == TokenChar || t.Type == TokenBoolean
}
