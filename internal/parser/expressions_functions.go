package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/token"
)

// parseFunctionLiteral parses lambda(params) [->] body.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	if !p.parseFunctionRest(fn) {
		return nil
	}
	return fn
}

// parseFunctionDeclaration parses function name(params) body, which is
// shorthand for var name = lambda(params) body.
func (p *Parser) parseFunctionDeclaration() ast.Expression {
	decl := &ast.VarDeclaration{Token: p.curToken}
	name, fn := p.parseNamedFunction()
	if fn == nil {
		return nil
	}
	decl.Entries = []*ast.Entry{{Token: fn.Token, Name: name, Value: fn}}
	return decl
}

// parseNamedFunction parses the part of a function declaration after the
// keyword. The name may be a member path such as obj.method.
func (p *Parser) parseNamedFunction() (ast.Expression, *ast.FunctionLiteral) {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil, nil
	}
	var name ast.Expression = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		member := p.parseMemberExpression(name)
		if member == nil {
			return nil, nil
		}
		name = member
	}

	if !p.parseFunctionRest(fn) {
		return nil, nil
	}
	return name, fn
}

// parseFunctionRest parses (params) [->] body into fn. The current token
// precedes the opening parenthesis.
func (p *Parser) parseFunctionRest(fn *ast.FunctionLiteral) bool {
	if !p.expectPeek(token.LPAREN) {
		return false
	}
	params, ok := p.parseEntries(token.RPAREN)
	if !ok {
		return false
	}
	for _, param := range params {
		if _, isIdent := param.Name.(*ast.Identifier); !isIdent || param.IsFunction() {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004,
				param.Token,
				"parameter names must be plain names",
			))
			return false
		}
	}
	fn.Parameters = params

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
	}
	p.nextToken()
	fn.Body = p.parseExpression(LOWEST)
	return fn.Body != nil
}

// parseVarDeclaration parses var a, b = 1, c.d = 2.
func (p *Parser) parseVarDeclaration() ast.Expression {
	decl := &ast.VarDeclaration{Token: p.curToken}

	for {
		p.nextToken()
		entry := &ast.Entry{Token: p.curToken}
		entry.Name = p.parseExpression(ASSIGN)
		if entry.Name == nil {
			return nil
		}
		if !p.validateAssignmentTarget(entry.Name) {
			return nil
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			entry.Value = p.parseExpression(LOWEST)
			if entry.Value == nil {
				return nil
			}
		}
		decl.Entries = append(decl.Entries, entry)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return decl
}
