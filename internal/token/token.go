package token

import "fmt"

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN      TokenType = "="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	PERCENT     TokenType = "%"
	AMPERSAND   TokenType = "&"
	PIPE        TokenType = "|"
	CARET       TokenType = "^"
	BANG        TokenType = "!"
	LSHIFT      TokenType = "<<"
	RSHIFT      TokenType = ">>"
	LT          TokenType = "<"
	GT          TokenType = ">"
	LTE         TokenType = "<="
	GTE         TokenType = ">="
	EQ          TokenType = "=="
	NOT_EQ      TokenType = "!="
	ARROW       TokenType = "->"
	QUOTE       TokenType = "'"
	DOT         TokenType = "."
	COMMA       TokenType = ","
	SEMICOLON   TokenType = ";"
	LPAREN      TokenType = "("
	RPAREN      TokenType = ")"
	LBRACKET    TokenType = "["
	RBRACKET    TokenType = "]"
	LBRACE      TokenType = "{"
	RBRACE      TokenType = "}"
	PLUS_ASSIGN TokenType = "+="

	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="
	AND_ASSIGN      TokenType = "&="
	OR_ASSIGN       TokenType = "|="
	XOR_ASSIGN      TokenType = "^="
	LSHIFT_ASSIGN   TokenType = "<<="
	RSHIFT_ASSIGN   TokenType = ">>="

	// Keywords
	IF       TokenType = "IF"
	THEN     TokenType = "THEN"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	DO       TokenType = "DO"
	FOR      TokenType = "FOR"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	RETURN   TokenType = "RETURN"
	VAR      TokenType = "VAR"
	FUNCTION TokenType = "FUNCTION"
	LAMBDA   TokenType = "LAMBDA"
	NEW      TokenType = "NEW"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
)

var keywords = map[string]TokenType{
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"while":    WHILE,
	"do":       DO,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"var":      VAR,
	"function": FUNCTION,
	"lambda":   LAMBDA,
	"new":      NEW,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// CompoundOperators maps a compound assignment token to its binary operator.
var CompoundOperators = map[TokenType]TokenType{
	PLUS_ASSIGN:     PLUS,
	MINUS_ASSIGN:    MINUS,
	ASTERISK_ASSIGN: ASTERISK,
	SLASH_ASSIGN:    SLASH,
	PERCENT_ASSIGN:  PERCENT,
	AND_ASSIGN:      AMPERSAND,
	OR_ASSIGN:       PIPE,
	XOR_ASSIGN:      CARET,
	LSHIFT_ASSIGN:   LSHIFT,
	RSHIFT_ASSIGN:   RSHIFT,
}
