package ast

import (
	"github.com/0xJonas/Phi/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	// Children returns the direct sub-expressions in evaluation order.
	// Absent optional parts are omitted.
	Children() []Expression
}

// Expression is a Node that produces a value. Phi has no statements.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File        string // Source file path
	Expressions []Expression
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Expressions) > 0 {
		return p.Expressions[0].TokenLiteral()
	} else {
		return ""
	}
}
func (p *Program) Children() []Expression { return p.Expressions }

// Identifier is a bare name. It evaluates to an unbound symbol.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) Accept(v Visitor)       { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Lexeme }
func (i *Identifier) Children() []Expression { return nil }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)       { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()        {}
func (il *IntegerLiteral) TokenLiteral() string   { return il.Token.Lexeme }
func (il *IntegerLiteral) Children() []Expression { return nil }
func (il *IntegerLiteral) GetToken() token.Token  { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Accept(v Visitor)       { v.VisitFloatLiteral(fl) }
func (fl *FloatLiteral) expressionNode()        {}
func (fl *FloatLiteral) TokenLiteral() string   { return fl.Token.Lexeme }
func (fl *FloatLiteral) Children() []Expression { return nil }
func (fl *FloatLiteral) GetToken() token.Token  { return fl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)       { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()        {}
func (sl *StringLiteral) TokenLiteral() string   { return sl.Token.Lexeme }
func (sl *StringLiteral) Children() []Expression { return nil }
func (sl *StringLiteral) GetToken() token.Token  { return sl.Token }

// BooleanLiteral is true or false; both evaluate to integers.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)       { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()        {}
func (b *BooleanLiteral) TokenLiteral() string   { return b.Token.Lexeme }
func (b *BooleanLiteral) Children() []Expression { return nil }
func (b *BooleanLiteral) GetToken() token.Token  { return b.Token }

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) Accept(v Visitor)       { v.VisitNullLiteral(n) }
func (n *NullLiteral) expressionNode()        {}
func (n *NullLiteral) TokenLiteral() string   { return n.Token.Lexeme }
func (n *NullLiteral) Children() []Expression { return nil }
func (n *NullLiteral) GetToken() token.Token  { return n.Token }

// Entry is one element of a declaration list: a var declarator, a collection
// literal member, a function parameter or a call argument.
// Value is nil for positional entries and declarations without initializer.
type Entry struct {
	Token token.Token
	Name  Expression
	Value Expression
}

// IsFunction reports whether the entry was written as `function name(...) body`.
func (e *Entry) IsFunction() bool {
	fl, ok := e.Value.(*FunctionLiteral)
	return ok && fl.Token.Type == token.FUNCTION
}

func entryChildren(entries []*Entry) []Expression {
	var out []Expression
	for _, e := range entries {
		if e.Name != nil {
			out = append(out, e.Name)
		}
		if e.Value != nil {
			out = append(out, e.Value)
		}
	}
	return out
}
