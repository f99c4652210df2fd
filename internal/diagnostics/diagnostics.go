package diagnostics

import (
	"fmt"

	"github.com/0xJonas/Phi/internal/token"
)

type ErrorCode string

const (
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // malformed literal

	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // invalid assignment target
	ErrP003 ErrorCode = "P003" // no prefix parse function
	ErrP004 ErrorCode = "P004" // invalid parameter
	ErrP005 ErrorCode = "P005" // expected token
	ErrP006 ErrorCode = "P006" // expression too complex

	ErrR001 ErrorCode = "R001" // runtime error
)

var messages = map[ErrorCode]string{
	ErrL001: "illegal character %q",
	ErrL002: "malformed literal: %s",
	ErrP001: "unexpected token %s",
	ErrP002: "invalid assignment target",
	ErrP003: "no expression can start with %s",
	ErrP004: "invalid parameter: %s",
	ErrP005: "expected %s, got %s",
	ErrP006: "%s",
	ErrR001: "%s",
}

// DiagnosticError is a positioned, coded error reported by the lexer or parser.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
	// Cause is the underlying error for runtime diagnostics.
	Cause error
}

// NewError formats the message template registered for code with args.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	msg := string(code)
	if tmpl, ok := messages[code]; ok {
		msg = fmt.Sprintf(tmpl, args...)
	} else if len(args) > 0 {
		msg = fmt.Sprint(args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

func (e *DiagnosticError) Error() string {
	pos := e.File
	if e.Token.Line > 0 {
		if pos != "" {
			pos += ":"
		}
		pos += fmt.Sprintf("%d:%d", e.Token.Line, e.Token.Column)
	}
	if pos == "" {
		return fmt.Sprintf("error [%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: error [%s]: %s", pos, e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error { return e.Cause }
