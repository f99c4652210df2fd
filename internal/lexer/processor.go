package lexer

import (
	"github.com/0xJonas/Phi/internal/pipeline"
	"github.com/0xJonas/Phi/internal/token"
)

// TokenStream buffers tokens from a Lexer so the parser can look ahead.
type TokenStream struct {
	lexer  *Lexer
	buffer []token.Token
	done   bool
}

func NewTokenStream(l *Lexer) *TokenStream {
	return &TokenStream{lexer: l}
}

func (ts *TokenStream) fill(n int) {
	for len(ts.buffer) < n && !ts.done {
		tok := ts.lexer.NextToken()
		ts.buffer = append(ts.buffer, tok)
		if tok.Type == token.EOF {
			ts.done = true
		}
	}
}

// Next returns the next token. After the input is exhausted it keeps returning EOF.
func (ts *TokenStream) Next() token.Token {
	ts.fill(1)
	if len(ts.buffer) == 0 {
		return token.Token{Type: token.EOF}
	}
	tok := ts.buffer[0]
	if tok.Type == token.EOF {
		return tok
	}
	ts.buffer = ts.buffer[1:]
	return tok
}

func (ts *TokenStream) Peek(n int) []token.Token {
	ts.fill(n)
	if n > len(ts.buffer) {
		n = len(ts.buffer)
	}
	return ts.buffer[:n]
}

// LexerProcessor is the pipeline stage turning SourceCode into a TokenStream.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = NewTokenStream(New(ctx.SourceCode))
	return ctx
}

// Tokenize lexes input to completion, EOF included.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// HasComments reports whether input contains comments outside string
// literals. The code printer cannot reproduce them.
func HasComments(input string) bool {
	l := New(input)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
	}
	return l.comments > 0
}
