package ast

import (
	"github.com/0xJonas/Phi/internal/token"
)

// BlockExpression represents a list of expressions within curly braces.
type BlockExpression struct {
	Token       token.Token // the { token
	Expressions []Expression
}

func (be *BlockExpression) Accept(v Visitor)       { v.VisitBlockExpression(be) }
func (be *BlockExpression) expressionNode()        {}
func (be *BlockExpression) TokenLiteral() string   { return be.Token.Lexeme }
func (be *BlockExpression) Children() []Expression { return be.Expressions }
func (be *BlockExpression) GetToken() token.Token  { return be.Token }

type IfExpression struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence Expression
	Alternative Expression // nil without else
}

func (ie *IfExpression) Accept(v Visitor)     { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IfExpression) Children() []Expression {
	if ie.Alternative == nil {
		return []Expression{ie.Condition, ie.Consequence}
	}
	return []Expression{ie.Condition, ie.Consequence, ie.Alternative}
}
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

type WhileExpression struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      Expression
}

func (we *WhileExpression) Accept(v Visitor)       { v.VisitWhileExpression(we) }
func (we *WhileExpression) expressionNode()        {}
func (we *WhileExpression) TokenLiteral() string   { return we.Token.Lexeme }
func (we *WhileExpression) Children() []Expression { return []Expression{we.Condition, we.Body} }
func (we *WhileExpression) GetToken() token.Token  { return we.Token }

// ForExpression is for init; condition; update do body.
type ForExpression struct {
	Token     token.Token // The 'for' token
	Init      Expression
	Condition Expression
	Update    Expression
	Body      Expression
}

func (fe *ForExpression) Accept(v Visitor)     { v.VisitForExpression(fe) }
func (fe *ForExpression) expressionNode()      {}
func (fe *ForExpression) TokenLiteral() string { return fe.Token.Lexeme }
func (fe *ForExpression) Children() []Expression {
	return []Expression{fe.Init, fe.Condition, fe.Update, fe.Body}
}
func (fe *ForExpression) GetToken() token.Token { return fe.Token }

// BreakExpression is break or break(value).
type BreakExpression struct {
	Token token.Token
	Value Expression // nil when absent
}

func (be *BreakExpression) Accept(v Visitor)       { v.VisitBreakExpression(be) }
func (be *BreakExpression) expressionNode()        {}
func (be *BreakExpression) TokenLiteral() string   { return be.Token.Lexeme }
func (be *BreakExpression) Children() []Expression { return optional(be.Value) }
func (be *BreakExpression) GetToken() token.Token  { return be.Token }

// ContinueExpression is continue or continue(value).
type ContinueExpression struct {
	Token token.Token
	Value Expression // nil when absent
}

func (ce *ContinueExpression) Accept(v Visitor)       { v.VisitContinueExpression(ce) }
func (ce *ContinueExpression) expressionNode()        {}
func (ce *ContinueExpression) TokenLiteral() string   { return ce.Token.Lexeme }
func (ce *ContinueExpression) Children() []Expression { return optional(ce.Value) }
func (ce *ContinueExpression) GetToken() token.Token  { return ce.Token }

type ReturnExpression struct {
	Token token.Token
	Value Expression
}

func (re *ReturnExpression) Accept(v Visitor)       { v.VisitReturnExpression(re) }
func (re *ReturnExpression) expressionNode()        {}
func (re *ReturnExpression) TokenLiteral() string   { return re.Token.Lexeme }
func (re *ReturnExpression) Children() []Expression { return optional(re.Value) }
func (re *ReturnExpression) GetToken() token.Token  { return re.Token }

func optional(e Expression) []Expression {
	if e == nil {
		return nil
	}
	return []Expression{e}
}
