package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(int64)
	if !ok {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrL002,
			p.curToken,
			"could not parse "+p.curToken.Lexeme+" as integer",
		))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(float64)
	if !ok {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrL002,
			p.curToken,
			"could not parse "+p.curToken.Lexeme+" as float",
		))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNull() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

// parseIllegal reports a token the lexer could not classify. For malformed
// literals the lexer leaves the reason in Literal.
func (p *Parser) parseIllegal() ast.Expression {
	reason, _ := p.curToken.Literal.(string)
	if reason == p.curToken.Lexeme {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(diagnostics.ErrL001, p.curToken, p.curToken.Lexeme))
	} else {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(diagnostics.ErrL002, p.curToken, reason))
	}
	return nil
}

// parseCollectionLiteral parses [entries].
func (p *Parser) parseCollectionLiteral() ast.Expression {
	lit := &ast.CollectionLiteral{Token: p.curToken}
	entries, ok := p.parseEntries(token.RBRACKET)
	if !ok {
		return nil
	}
	for _, e := range entries {
		if e.Value != nil && !e.IsFunction() {
			if _, isIdent := e.Name.(*ast.Identifier); !isIdent {
				p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
					diagnostics.ErrP002,
					e.Token,
				))
				return nil
			}
		}
	}
	lit.Entries = entries
	return lit
}

// parseEntries parses a declaration list up to and including end. Entries
// are `name`, `name = value` or `function name(params) body`, optionally
// separated by commas or semicolons. The current token is the opening delimiter.
func (p *Parser) parseEntries(end token.TokenType) ([]*ast.Entry, bool) {
	entries := []*ast.Entry{}
	p.nextToken()

	for !p.curTokenIs(end) {
		if p.curTokenIs(token.COMMA) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.EOF) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP005,
				p.curToken,
				describe(end), describeToken(p.curToken),
			))
			return nil, false
		}

		entry := p.parseEntry()
		if entry == nil {
			return nil, false
		}
		entries = append(entries, entry)
		p.nextToken()
	}

	return entries, true
}

func (p *Parser) parseEntry() *ast.Entry {
	if p.curTokenIs(token.FUNCTION) {
		name, fn := p.parseNamedFunction()
		if fn == nil {
			return nil
		}
		return &ast.Entry{Token: fn.Token, Name: name, Value: fn}
	}

	entry := &ast.Entry{Token: p.curToken}
	entry.Name = p.parseExpression(ASSIGN)
	if entry.Name == nil {
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		entry.Token = p.curToken
		p.nextToken()
		entry.Value = p.parseExpression(LOWEST)
		if entry.Value == nil {
			return nil
		}
	}
	return entry
}
