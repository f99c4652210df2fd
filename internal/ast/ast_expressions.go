package ast

import (
	"github.com/0xJonas/Phi/internal/token"
)

// PrefixExpression is -x, !x, new x or 'x.
type PrefixExpression struct {
	Token    token.Token // The prefix token, e.g. !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)       { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()        {}
func (pe *PrefixExpression) TokenLiteral() string   { return pe.Token.Lexeme }
func (pe *PrefixExpression) Children() []Expression { return []Expression{pe.Right} }
func (pe *PrefixExpression) GetToken() token.Token  { return pe.Token }

// InfixExpression is a left-associative binary operation.
type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)       { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()        {}
func (ie *InfixExpression) TokenLiteral() string   { return ie.Token.Lexeme }
func (ie *InfixExpression) Children() []Expression { return []Expression{ie.Left, ie.Right} }
func (ie *InfixExpression) GetToken() token.Token  { return ie.Token }

// ComparisonExpression is a chain of relational operators, e.g. 0 < a <= 5.
// len(Operators) == len(Operands)-1.
type ComparisonExpression struct {
	Token     token.Token // The first operator token
	Operands  []Expression
	Operators []string
}

func (ce *ComparisonExpression) Accept(v Visitor)       { v.VisitComparisonExpression(ce) }
func (ce *ComparisonExpression) expressionNode()        {}
func (ce *ComparisonExpression) TokenLiteral() string   { return ce.Token.Lexeme }
func (ce *ComparisonExpression) Children() []Expression { return ce.Operands }
func (ce *ComparisonExpression) GetToken() token.Token  { return ce.Token }

// AssignExpression is target = value. Compound forms are desugared by the
// parser into target = target op value.
type AssignExpression struct {
	Token token.Token // The = token
	Left  Expression
	Value Expression
}

func (ae *AssignExpression) Accept(v Visitor)       { v.VisitAssignExpression(ae) }
func (ae *AssignExpression) expressionNode()        {}
func (ae *AssignExpression) TokenLiteral() string   { return ae.Token.Lexeme }
func (ae *AssignExpression) Children() []Expression { return []Expression{ae.Left, ae.Value} }
func (ae *AssignExpression) GetToken() token.Token  { return ae.Token }

// VarDeclaration declares one or more names: var a, b = 1.
// `function f(x) body` parses to a VarDeclaration whose Token is the function token.
type VarDeclaration struct {
	Token   token.Token
	Entries []*Entry
}

func (vd *VarDeclaration) Accept(v Visitor)       { v.VisitVarDeclaration(vd) }
func (vd *VarDeclaration) expressionNode()        {}
func (vd *VarDeclaration) TokenLiteral() string   { return vd.Token.Lexeme }
func (vd *VarDeclaration) Children() []Expression { return entryChildren(vd.Entries) }
func (vd *VarDeclaration) GetToken() token.Token  { return vd.Token }

// FunctionLiteral is lambda(a, b = 1) -> body.
type FunctionLiteral struct {
	Token      token.Token // The 'lambda' or 'function' token
	Parameters []*Entry
	Body       Expression
}

func (fl *FunctionLiteral) Accept(v Visitor)     { v.VisitFunctionLiteral(fl) }
func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FunctionLiteral) Children() []Expression {
	return append(entryChildren(fl.Parameters), fl.Body)
}
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// CollectionLiteral is [1, 2, name = 3, function f() 4].
type CollectionLiteral struct {
	Token   token.Token // The '[' token
	Entries []*Entry
}

func (cl *CollectionLiteral) Accept(v Visitor)       { v.VisitCollectionLiteral(cl) }
func (cl *CollectionLiteral) expressionNode()        {}
func (cl *CollectionLiteral) TokenLiteral() string   { return cl.Token.Lexeme }
func (cl *CollectionLiteral) Children() []Expression { return entryChildren(cl.Entries) }
func (cl *CollectionLiteral) GetToken() token.Token  { return cl.Token }

// CallExpression is f(a, name = b).
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []*Entry
}

func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) Children() []Expression {
	return append([]Expression{ce.Function}, entryChildren(ce.Arguments)...)
}
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MemberExpression represents dot access, e.g. obj.field
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) Accept(v Visitor)       { v.VisitMemberExpression(me) }
func (me *MemberExpression) expressionNode()        {}
func (me *MemberExpression) TokenLiteral() string   { return me.Token.Lexeme }
func (me *MemberExpression) Children() []Expression { return []Expression{me.Left, me.Member} }
func (me *MemberExpression) GetToken() token.Token  { return me.Token }

// IndexExpression represents indexing, e.g. arr[i]
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) Accept(v Visitor)       { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()        {}
func (ie *IndexExpression) TokenLiteral() string   { return ie.Token.Lexeme }
func (ie *IndexExpression) Children() []Expression { return []Expression{ie.Left, ie.Index} }
func (ie *IndexExpression) GetToken() token.Token  { return ie.Token }
