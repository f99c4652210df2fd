package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/0xJonas/Phi/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	comments     int  // comments skipped so far
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	line, col := l.line, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Line: line, Column: col}
	case '(':
		tok = newToken(token.LPAREN, l.ch, line, col)
	case ')':
		tok = newToken(token.RPAREN, l.ch, line, col)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, line, col)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, line, col)
	case '{':
		tok = newToken(token.LBRACE, l.ch, line, col)
	case '}':
		tok = newToken(token.RBRACE, l.ch, line, col)
	case ',':
		tok = newToken(token.COMMA, l.ch, line, col)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, line, col)
	case '.':
		tok = newToken(token.DOT, l.ch, line, col)
	case '\'':
		tok = newToken(token.QUOTE, l.ch, line, col)
	case '=':
		tok = l.either('=', token.EQ, token.ASSIGN, line, col)
	case '!':
		tok = l.either('=', token.NOT_EQ, token.BANG, line, col)
	case '+':
		tok = l.either('=', token.PLUS_ASSIGN, token.PLUS, line, col)
	case '*':
		tok = l.either('=', token.ASTERISK_ASSIGN, token.ASTERISK, line, col)
	case '/':
		tok = l.either('=', token.SLASH_ASSIGN, token.SLASH, line, col)
	case '%':
		tok = l.either('=', token.PERCENT_ASSIGN, token.PERCENT, line, col)
	case '&':
		tok = l.either('=', token.AND_ASSIGN, token.AMPERSAND, line, col)
	case '|':
		tok = l.either('=', token.OR_ASSIGN, token.PIPE, line, col)
	case '^':
		tok = l.either('=', token.XOR_ASSIGN, token.CARET, line, col)
	case '-':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: line, Column: col}
		case '=':
			l.readChar()
			tok = token.Token{Type: token.MINUS_ASSIGN, Lexeme: "-=", Literal: "-=", Line: line, Column: col}
		default:
			tok = newToken(token.MINUS, l.ch, line, col)
		}
	case '<':
		switch l.peekChar() {
		case '<':
			l.readChar()
			tok = l.either('=', token.LSHIFT_ASSIGN, token.LSHIFT, line, col)
			tok.Lexeme = "<" + tok.Lexeme
			tok.Literal = tok.Lexeme
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LTE, Lexeme: "<=", Literal: "<=", Line: line, Column: col}
		default:
			tok = newToken(token.LT, l.ch, line, col)
		}
	case '>':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = l.either('=', token.RSHIFT_ASSIGN, token.RSHIFT, line, col)
			tok.Lexeme = ">" + tok.Lexeme
			tok.Literal = tok.Lexeme
		case '=':
			l.readChar()
			tok = token.Token{Type: token.GTE, Lexeme: ">=", Literal: ">=", Line: line, Column: col}
		default:
			tok = newToken(token.GT, l.ch, line, col)
		}
	case '"':
		return l.readString(line, col)
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tok = token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, line, col)
	}

	l.readChar()
	return tok
}

// either emits long when the next char is next, consuming it; short otherwise.
// The current char is the first char of both forms.
func (l *Lexer) either(next rune, long, short token.TokenType, line, col int) token.Token {
	if l.peekChar() == next {
		first := l.ch
		l.readChar()
		lexeme := string(first) + string(l.ch)
		return token.Token{Type: long, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
	}
	return newToken(short, l.ch, line, col)
}

// readString reads a double-quoted string with backslash escapes.
// The current char is the opening quote.
func (l *Lexer) readString(line, col int) token.Token {
	start := l.position
	var out strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "string was not terminated", Line: line, Column: col}
		case '"':
			lexeme := l.input[start:l.readPosition]
			l.readChar()
			return token.Token{Type: token.STRING, Lexeme: lexeme, Literal: out.String(), Line: line, Column: col}
		case '\\':
			l.readChar()
			if l.ch == 0 {
				return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "unfinished escape sequence", Line: line, Column: col}
			}
			out.WriteRune(escape(l.ch))
		default:
			out.WriteRune(l.ch)
		}
	}
}

func escape(ch rune) rune {
	switch ch {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '0':
		return 0
	default:
		return ch
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	base := 10
	isFloat := false

	// Check for base prefixes: 0x, 0b, 0o
	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			l.readChar()
			l.readChar()
		}
	}

	for isDigitInBase(l.ch, base) {
		l.readChar()
	}

	if base == 10 {
		if l.ch == '.' && isDigit(l.peekChar()) {
			isFloat = true
			l.readChar() // .
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			next := l.peekChar()
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekChar2())) {
				isFloat = true
				l.readChar() // e
				if l.ch == '+' || l.ch == '-' {
					l.readChar()
				}
				for isDigit(l.ch) {
					l.readChar()
				}
			}
		}
	}

	lexeme := l.input[position:l.position]

	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: startLine, Column: startCol}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
	}

	// Prefixed literals let ParseInt detect the base; plain ones are decimal
	// even with leading zeros.
	parseBase := 10
	if base != 10 {
		parseBase = 0
	}
	val, err := strconv.ParseInt(lexeme, parseBase, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "invalid integer " + lexeme, Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

func isDigitInBase(ch rune, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return ch >= '0' && ch <= '7'
	case 16:
		return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	default:
		return isDigit(ch)
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$' || ch == '?'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if l.readPosition+w >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition+w:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

// skipWhitespace skips blanks, line breaks and comments. Line breaks carry no
// meaning in Phi; expressions are delimited by the grammar alone.
func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				l.comments++
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				l.comments++
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}
