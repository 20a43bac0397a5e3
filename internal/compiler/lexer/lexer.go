package lexer

import (
	"strconv"
	"unicode"

	"github.com/arnavsurve/minic/internal/compiler/diag"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

const eof rune = -1

// tabWidth is the number of columns a tab advances the cursor.
const tabWidth = 4

type Lexer struct {
	input        []rune
	position     int  // current char index
	readPosition int  // next char index
	ch           rune // current char, eof past the end

	line   int // current line number (1-indexed)
	column int // column of ch (1-indexed)

	// single-token lookahead for Peek
	buffered    token.Token
	hasBuffered bool

	diagnostics diag.List
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: []rune(input), line: 1, column: 1}
	l.readChar()
	return l
}

// readChar moves to the next character without touching line/column.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = eof
		l.position = len(l.input)
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
}

// advance consumes a single-column character.
func (l *Lexer) advance() {
	if l.ch == eof {
		return
	}
	l.column++
	l.readChar()
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	return l.input[l.readPosition]
}

// NextToken consumes and returns the next token. Once the input is exhausted
// every call returns EOF.
func (l *Lexer) NextToken() token.Token {
	if l.hasBuffered {
		l.hasBuffered = false
		return l.buffered
	}
	return l.scan()
}

// Peek returns the next token without consuming it. Repeated calls return the
// same token until NextToken is called.
func (l *Lexer) Peek() token.Token {
	if !l.hasBuffered {
		l.buffered = l.scan()
		l.hasBuffered = true
	}
	return l.buffered
}

// ErrorCount is the number of malformed tokens scanned so far.
func (l *Lexer) ErrorCount() int {
	return len(l.diagnostics)
}

func (l *Lexer) Diagnostics() diag.List {
	return l.diagnostics
}

func (l *Lexer) scan() token.Token {
	l.skipWhitespace()

	startLine, startCol := l.line, l.column

	switch {
	case l.ch == eof:
		return l.newToken(token.TokenEOF, "", nil, startLine, startCol)
	case unicode.IsLetter(l.ch):
		return l.readWord(startLine, startCol)
	case isDigit(l.ch):
		return l.readNumber(startLine, startCol)
	case l.ch == '\'':
		return l.readCharLiteral(startLine, startCol)
	}

	ch := l.ch
	if c, ok := compound[ch]; ok {
		l.advance()
		if l.ch == c.next {
			l.advance()
			return l.newToken(c.pair, string([]rune{ch, c.next}), nil, startLine, startCol)
		}
		if c.single == token.TokenUnknown {
			return l.unknown(string(ch), startLine, startCol, "unrecognized character '%c'", ch)
		}
		return l.newToken(c.single, string(ch), nil, startLine, startCol)
	}

	l.advance()
	if tokType, ok := singles[ch]; ok {
		return l.newToken(tokType, string(ch), nil, startLine, startCol)
	}
	return l.unknown(string(ch), startLine, startCol, "unrecognized character '%c'", ch)
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, attr token.Attribute, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Attr: attr, Line: line, Column: col}
}

// unknown builds an UNKNOWN token and records the lexical error.
func (l *Lexer) unknown(literal string, line, col int, format string, args ...any) token.Token {
	tok := l.newToken(token.TokenUnknown, literal, nil, line, col)
	l.diagnostics.Add(diag.Lexical, tok.Pos(), format, args...)
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch != eof && unicode.IsSpace(l.ch) {
		switch l.ch {
		case '\n':
			l.newLine()
		case '\r':
			l.newLine()
			if l.ch == '\n' {
				l.readChar()
			}
		case '\t':
			l.column += tabWidth
			l.readChar()
		default:
			l.advance()
		}
	}
}

func (l *Lexer) newLine() {
	l.line++
	l.column = 1
	l.readChar()
}

func (l *Lexer) readWord(line, col int) token.Token {
	start := l.position
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.advance()
	}
	word := string(l.input[start:l.position])

	if tokType, ok := keywords[word]; ok {
		return l.newToken(tokType, word, nil, line, col)
	}
	switch word {
	case "true":
		return l.newToken(token.TokenBooleanConst, word, token.BoolValue(true), line, col)
	case "false":
		return l.newToken(token.TokenBooleanConst, word, token.BoolValue(false), line, col)
	}
	return l.newToken(token.TokenIdent, word, token.Ident(word), line, col)
}

// readNumber scans an integer or float literal. A '.' that is not followed
// by a digit turns the whole run, up to the next whitespace, into UNKNOWN.
func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.advance()
	}

	if l.ch == '.' {
		l.advance()
		if !isDigit(l.ch) {
			for l.ch != eof && !unicode.IsSpace(l.ch) {
				l.advance()
			}
			literal := string(l.input[start:l.position])
			return l.unknown(literal, line, col, "malformed numeric literal '%s'", literal)
		}
		for isDigit(l.ch) {
			l.advance()
		}
		literal := string(l.input[start:l.position])
		val, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return l.unknown(literal, line, col, "float literal '%s' out of range", literal)
		}
		return l.newToken(token.TokenFloatConst, literal, token.FloatValue(val), line, col)
	}

	literal := string(l.input[start:l.position])
	val, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return l.unknown(literal, line, col, "integer literal '%s' out of range", literal)
	}
	return l.newToken(token.TokenIntConst, literal, token.IntValue(val), line, col)
}

// readCharLiteral scans 'c' where c is a letter. On failure only the opening
// quote is consumed.
func (l *Lexer) readCharLiteral(line, col int) token.Token {
	l.advance() // Consume opening '
	if unicode.IsLetter(l.ch) && l.peekChar() == '\'' {
		c := l.ch
		l.advance() // Consume the letter
		l.advance() // Consume closing '
		return l.newToken(token.TokenCharConst, "'"+string(c)+"'", token.CharValue(c), line, col)
	}
	return l.unknown("'", line, col, "malformed character literal")
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// keywords maps reserved words to their token types. Lookup is case-sensitive.
var keywords = map[string]token.TokenType{
	"int":     token.TokenInt,
	"float":   token.TokenFloat,
	"char":    token.TokenChar,
	"boolean": token.TokenBoolean,
	"if":      token.TokenIf,
	"else":    token.TokenElse,
	"while":   token.TokenWhile,
	"main":    token.TokenMain,
}

// singles maps one-character punctuation and arithmetic operators.
var singles = map[rune]token.TokenType{
	'(': token.TokenLParen,
	')': token.TokenRParen,
	'[': token.TokenLBracket,
	']': token.TokenRBracket,
	'{': token.TokenLBrace,
	'}': token.TokenRBrace,
	';': token.TokenSemi,
	',': token.TokenComma,
	'+': token.TokenPlus,
	'-': token.TokenMinus,
	'*': token.TokenTimes,
	'/': token.TokenDiv,
	'%': token.TokenMod,
}

// compound lists characters that may start a two-character operator. single
// is the meaning when the second character does not follow.
var compound = map[rune]struct {
	next   rune
	pair   token.TokenType
	single token.TokenType
}{
	'&': {'&', token.TokenAnd, token.TokenUnknown},
	'|': {'|', token.TokenOr, token.TokenUnknown},
	'=': {'=', token.TokenEq, token.TokenAssign},
	'!': {'=', token.TokenNEq, token.TokenNot},
	'<': {'=', token.TokenLTEq, token.TokenLT},
	'>': {'=', token.TokenGTEq, token.TokenGT},
}
