package parser

import (
	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/config"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/pipeline"
	"github.com/0xJonas/Phi/internal/token"
)

// MaxRecursionDepth bounds nested parseExpression calls.
const MaxRecursionDepth = config.MaxParseDepth

// Precedences, lowest first.
const (
	_ int = iota
	LOWEST
	ASSIGN  // = += -= ...
	BIT_OR  // |
	BIT_XOR // ^
	BIT_AND // &
	COMPARE // == != < <= > >=
	SHIFT   // << >>
	SUM     // + -
	PRODUCT // * / %
	PREFIX  // -x !x new x
	CALL    // f(x) a[i] a.b
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGN,
	token.PLUS_ASSIGN:     ASSIGN,
	token.MINUS_ASSIGN:    ASSIGN,
	token.ASTERISK_ASSIGN: ASSIGN,
	token.SLASH_ASSIGN:    ASSIGN,
	token.PERCENT_ASSIGN:  ASSIGN,
	token.AND_ASSIGN:      ASSIGN,
	token.OR_ASSIGN:       ASSIGN,
	token.XOR_ASSIGN:      ASSIGN,
	token.LSHIFT_ASSIGN:   ASSIGN,
	token.RSHIFT_ASSIGN:   ASSIGN,
	token.PIPE:            BIT_OR,
	token.CARET:           BIT_XOR,
	token.AMPERSAND:       BIT_AND,
	token.EQ:              COMPARE,
	token.NOT_EQ:          COMPARE,
	token.LT:              COMPARE,
	token.LTE:             COMPARE,
	token.GT:              COMPARE,
	token.GTE:             COMPARE,
	token.LSHIFT:          SHIFT,
	token.RSHIFT:          SHIFT,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.PERCENT:         PRODUCT,
	token.LPAREN:          CALL,
	token.LBRACKET:        CALL,
	token.DOT:             CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth               int
	inRecursionRecovery bool
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.ILLEGAL, p.parseIllegal)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.NEW, p.parsePrefixExpression)
	p.registerPrefix(token.QUOTE, p.parseQuoteExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseCollectionLiteral)
	p.registerPrefix(token.LBRACE, p.parseBlockExpression)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.WHILE, p.parseWhileExpression)
	p.registerPrefix(token.FOR, p.parseForExpression)
	p.registerPrefix(token.BREAK, p.parseBreakExpression)
	p.registerPrefix(token.CONTINUE, p.parseContinueExpression)
	p.registerPrefix(token.RETURN, p.parseReturnExpression)
	p.registerPrefix(token.VAR, p.parseVarDeclaration)
	p.registerPrefix(token.FUNCTION, p.parseFunctionDeclaration)
	p.registerPrefix(token.LAMBDA, p.parseFunctionLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.AMPERSAND, token.PIPE, token.CARET, token.LSHIFT, token.RSHIFT,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	for _, t := range []token.TokenType{token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE} {
		p.registerInfix(t, p.parseComparisonExpression)
	}
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	for t := range token.CompoundOperators {
		p.registerInfix(t, p.parseCompoundAssignExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP005,
		p.peekToken,
		describe(t), describeToken(p.peekToken),
	))
}

// connectives only continue a construct and never start one.
var connectives = map[token.TokenType]bool{
	token.ELSE:  true,
	token.THEN:  true,
	token.DO:    true,
	token.ARROW: true,
	token.COMMA: true,
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	if connectives[t] {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001,
			p.curToken,
			describeToken(p.curToken),
		))
		return
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP003,
		p.curToken,
		describeToken(p.curToken),
	))
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// skipSeparators consumes optional ';' after an expression.
func (p *Parser) skipSeparators() {
	for p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// ParseProgram parses expressions until EOF. Errors are collected in the
// pipeline context; parsing continues after them where possible.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		errCount := len(p.ctx.Errors)
		exp := p.parseExpression(LOWEST)
		if exp != nil && len(p.ctx.Errors) == errCount {
			program.Expressions = append(program.Expressions, exp)
		}
		p.nextToken()
	}

	return program
}

func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.EOF:
		return "end of input"
	}
	return "'" + string(t) + "'"
}

func describeToken(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return "'" + tok.Lexeme + "'"
}
