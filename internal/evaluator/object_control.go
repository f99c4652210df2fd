package evaluator

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies runtime failures.
type ErrorKind string

const (
	TypeError       ErrorKind = "TypeError"
	AccessError     ErrorKind = "AccessError"
	StructureError  ErrorKind = "StructureError"
	ArgumentError   ErrorKind = "ArgumentError"
	ArithmeticError ErrorKind = "ArithmeticError"
	ControlError    ErrorKind = "ControlError"
)

// Sentinels for errors.Is. Every *Error unwraps to the one matching its kind.
var (
	ErrType       = errors.New("type error")
	ErrAccess     = errors.New("access error")
	ErrStructure  = errors.New("structure error")
	ErrArgument   = errors.New("argument error")
	ErrArithmetic = errors.New("arithmetic error")
	ErrControl    = errors.New("control error")
)

var kindSentinels = map[ErrorKind]error{
	TypeError:       ErrType,
	AccessError:     ErrAccess,
	StructureError:  ErrStructure,
	ArgumentError:   ErrArgument,
	ArithmeticError: ErrArithmetic,
	ControlError:    ErrControl,
}

// Error is a runtime failure. Line and Column locate the innermost
// expression whose evaluation failed; they stay zero for errors raised
// outside of evaluation.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return kindSentinels[e.Kind] }

func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// CompletionKind tells how evaluation of an expression ended.
type CompletionKind int

const (
	Normal CompletionKind = iota
	Break
	Continue
	Return
)

func (k CompletionKind) String() string {
	switch k {
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Return:
		return "return"
	}
	return "normal"
}

// Completion is the outcome of evaluating an expression. Break, Continue and
// Return completions travel outward through every enclosing expression until
// a loop or function call consumes them.
type Completion struct {
	Kind  CompletionKind
	Value Object
}

func (c Completion) Abrupt() bool { return c.Kind != Normal }

func normal(value Object) Completion {
	return Completion{Kind: Normal, Value: value}
}
