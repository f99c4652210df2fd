package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/token"
)

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if exp.Index == nil {
		return nil
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return exp
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	exp := &ast.MemberExpression{Token: p.curToken, Left: left}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	exp.Member = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	return exp
}

// parseCallExpression parses f(a, name = b).
func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}

	args, ok := p.parseEntries(token.RPAREN)
	if !ok {
		return nil
	}
	for _, arg := range args {
		if arg.Value == nil {
			continue
		}
		if _, isIdent := arg.Name.(*ast.Identifier); !isIdent {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004,
				arg.Token,
				"named argument must be a name",
			))
			return nil
		}
	}
	exp.Arguments = args
	return exp
}
