package ast_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/lexer"
	"github.com/0xJonas/Phi/internal/parser"
	"github.com/0xJonas/Phi/internal/pipeline"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(input))
	require.NoError(t, ctx.Err())
	return ctx.AstRoot.(*ast.Program)
}

func kinds(node ast.Node) string {
	var out []string
	ast.Inspect(node, func(n ast.Node) bool {
		out = append(out, strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast."))
		return true
	})
	return strings.Join(out, " ")
}

func TestInspectOrder(t *testing.T) {
	program := parse(t, "var f = lambda(x, y = 2) { if x < y then x else [y, n = -y] }")

	assert.Equal(t, "Program VarDeclaration Identifier FunctionLiteral Identifier Identifier IntegerLiteral "+
		"BlockExpression IfExpression ComparisonExpression Identifier Identifier Identifier "+
		"CollectionLiteral Identifier Identifier PrefixExpression Identifier", kinds(program))
}

func TestInspectOptionalParts(t *testing.T) {
	assert.Equal(t, "Program BreakExpression ReturnExpression IntegerLiteral", kinds(parse(t, "break; return 1")))
	assert.Equal(t, "Program IfExpression Identifier Identifier", kinds(parse(t, "if a b")))
	assert.Equal(t, "Program CallExpression MemberExpression Identifier Identifier Identifier Identifier IntegerLiteral",
		kinds(parse(t, "o.m(a, n = 1)")))
}

func TestInspectPrunes(t *testing.T) {
	program := parse(t, "f(lambda() { 1 + 2 }, 3)")

	var visited []string
	ast.Inspect(program, func(n ast.Node) bool {
		visited = append(visited, strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast."))
		_, isFunction := n.(*ast.FunctionLiteral)
		return !isFunction
	})
	assert.Equal(t, []string{"Program", "CallExpression", "Identifier", "FunctionLiteral", "IntegerLiteral"}, visited)
}

func TestFunctionEntries(t *testing.T) {
	program := parse(t, "[function m() 1, n = lambda() 2]")
	lit := program.Expressions[0].(*ast.CollectionLiteral)
	require.Len(t, lit.Entries, 2)
	assert.True(t, lit.Entries[0].IsFunction())
	assert.False(t, lit.Entries[1].IsFunction())
	assert.Equal(t, "[", program.TokenLiteral())
}
