package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/token"
)

// parseIfExpression parses if cond [then] a [else b].
func (p *Parser) parseIfExpression() ast.Expression {
	expression := &ast.IfExpression{Token: p.curToken}

	p.nextToken() // consume 'if'
	expression.Condition = p.parseExpression(LOWEST)
	if expression.Condition == nil {
		return nil
	}
	p.skipSeparators()
	if p.peekTokenIs(token.THEN) {
		p.nextToken()
	}

	p.nextToken()
	expression.Consequence = p.parseExpression(LOWEST)
	if expression.Consequence == nil {
		return nil
	}

	// A separator may sit between the branches: if c then a; else b
	if p.peekTokenIs(token.SEMICOLON) {
		tokens := p.stream.Peek(50)
		for _, t := range tokens {
			if t.Type == token.SEMICOLON {
				continue
			}
			if t.Type == token.ELSE {
				p.skipSeparators()
			}
			break
		}
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		expression.Alternative = p.parseExpression(LOWEST)
		if expression.Alternative == nil {
			return nil
		}
	}

	return expression
}

// parseWhileExpression parses while cond [do] body.
func (p *Parser) parseWhileExpression() ast.Expression {
	expression := &ast.WhileExpression{Token: p.curToken}

	p.nextToken() // consume 'while'
	expression.Condition = p.parseExpression(LOWEST)
	if expression.Condition == nil {
		return nil
	}
	p.skipSeparators()
	if p.peekTokenIs(token.DO) {
		p.nextToken()
	}

	p.nextToken()
	expression.Body = p.parseExpression(LOWEST)
	if expression.Body == nil {
		return nil
	}
	return expression
}

// parseForExpression parses for init; cond; update [do] body. The
// semicolons are optional as in every other expression sequence.
func (p *Parser) parseForExpression() ast.Expression {
	expr := &ast.ForExpression{Token: p.curToken}

	parts := make([]ast.Expression, 3)
	for i := range parts {
		p.nextToken()
		parts[i] = p.parseExpression(LOWEST)
		if parts[i] == nil {
			return nil
		}
		p.skipSeparators()
	}
	expr.Init, expr.Condition, expr.Update = parts[0], parts[1], parts[2]

	if p.peekTokenIs(token.DO) {
		p.nextToken()
	}
	p.nextToken()
	expr.Body = p.parseExpression(LOWEST)
	if expr.Body == nil {
		return nil
	}
	return expr
}

// parseBlockExpression parses { e1; e2 ... }.
func (p *Parser) parseBlockExpression() ast.Expression {
	block := &ast.BlockExpression{Token: p.curToken, Expressions: []ast.Expression{}}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.EOF) {
			p.peekError(token.RBRACE)
			return nil
		}
		exp := p.parseExpression(LOWEST)
		if exp == nil {
			return nil
		}
		block.Expressions = append(block.Expressions, exp)
		p.nextToken()
	}

	return block
}

func (p *Parser) parseBreakExpression() ast.Expression {
	expression := &ast.BreakExpression{Token: p.curToken}
	value, ok := p.parseExitPayload()
	if !ok {
		return nil
	}
	expression.Value = value
	return expression
}

func (p *Parser) parseContinueExpression() ast.Expression {
	expression := &ast.ContinueExpression{Token: p.curToken}
	value, ok := p.parseExitPayload()
	if !ok {
		return nil
	}
	expression.Value = value
	return expression
}

// parseExitPayload parses the optional parenthesized value of break and
// continue: break, break() or break(value).
func (p *Parser) parseExitPayload() (ast.Expression, bool) {
	if !p.peekTokenIs(token.LPAREN) {
		return nil, true
	}
	p.nextToken()
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return nil, true
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil, false
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return value, true
}

// parseReturnExpression parses return [value]. The value is omitted when
// the next token cannot start an expression.
func (p *Parser) parseReturnExpression() ast.Expression {
	expression := &ast.ReturnExpression{Token: p.curToken}
	if _, ok := p.prefixParseFns[p.peekToken.Type]; !ok {
		return expression
	}
	p.nextToken()
	expression.Value = p.parseExpression(LOWEST)
	if expression.Value == nil {
		return nil
	}
	return expression
}
