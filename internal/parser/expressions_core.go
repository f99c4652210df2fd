package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		if !p.inRecursionRecovery {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP006,
				p.curToken,
				"expression too complex: recursion depth limit exceeded",
			))
			p.inRecursionRecovery = true
		}
		// Skip the rest of the input to avoid a cascade of errors.
		for !p.peekTokenIs(token.EOF) {
			p.nextToken()
		}
		return nil
	}
	if p.depth == 1 {
		p.inRecursionRecovery = false
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseQuoteExpression parses 'name. Only a bare identifier can be quoted.
func (p *Parser) parseQuoteExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: "'"}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expression.Right = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// parseComparisonExpression collects a whole relational chain such as
// 0 < a <= 5 into one node.
func (p *Parser) parseComparisonExpression(left ast.Expression) ast.Expression {
	expression := &ast.ComparisonExpression{
		Token:    p.curToken,
		Operands: []ast.Expression{left},
	}

	for {
		expression.Operators = append(expression.Operators, p.curToken.Lexeme)
		p.nextToken()
		right := p.parseExpression(COMPARE)
		if right == nil {
			return nil
		}
		expression.Operands = append(expression.Operands, right)

		if p.peekPrecedence() != COMPARE {
			break
		}
		p.nextToken()
	}

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	p.skipSeparators()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}
