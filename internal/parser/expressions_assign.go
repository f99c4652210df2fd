package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/token"
)

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	if !p.validateAssignmentTarget(left) {
		return nil
	}
	exp := &ast.AssignExpression{Token: p.curToken, Left: left}

	p.nextToken()
	// Right-associative: a = b = c is a = (b = c)
	exp.Value = p.parseExpression(LOWEST)
	if exp.Value == nil {
		return nil
	}
	return exp
}

// parseCompoundAssignExpression desugars a op= b into a = a op b.
func (p *Parser) parseCompoundAssignExpression(left ast.Expression) ast.Expression {
	compoundTok := p.curToken
	if !p.validateAssignmentTarget(left) {
		return nil
	}

	opType := token.CompoundOperators[compoundTok.Type]
	opLexeme := compoundTok.Lexeme[:len(compoundTok.Lexeme)-1]
	opToken := token.Token{
		Type:    opType,
		Lexeme:  opLexeme,
		Literal: opLexeme,
		Line:    compoundTok.Line,
		Column:  compoundTok.Column,
	}

	p.nextToken() // consume the compound assignment operator
	right := p.parseExpression(LOWEST)
	if right == nil {
		return nil
	}

	// Create the infix expression: left OP right
	infixExpr := &ast.InfixExpression{
		Token:    opToken,
		Left:     left,
		Operator: opLexeme,
		Right:    right,
	}

	// Create the assignment: left = (left OP right)
	return &ast.AssignExpression{
		Token: token.Token{Type: token.ASSIGN, Lexeme: "=", Literal: "=", Line: compoundTok.Line, Column: compoundTok.Column},
		Left:  left,
		Value: infixExpr,
	}
}

// validateAssignmentTarget accepts names, member accesses and subscripts.
func (p *Parser) validateAssignmentTarget(left ast.Expression) bool {
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
		return true
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP002,
		p.curToken,
	))
	return false
}
