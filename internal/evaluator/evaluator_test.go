package evaluator_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/evaluator"
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

func evalIn(t *testing.T, scope *evaluator.Scope, input string) (evaluator.Object, error) {
	t.Helper()
	return evaluator.New().Run(parse(t, input), scope)
}

func eval(t *testing.T, input string) (evaluator.Object, error) {
	t.Helper()
	return evalIn(t, evaluator.NewScope(), input)
}

func mustEval(t *testing.T, input string) evaluator.Object {
	t.Helper()
	result, err := eval(t, input)
	require.NoError(t, err, input)
	return result
}

func TestLiteralsAndArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5", "5"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"7 / 2", "3"},
		{"7 % 3", "1"},
		{"-7 % 3", "-1"},
		{"7.0 / 2", "3.5"},
		{"1 + 1.5", "2.5"},
		{"2.0 * 3", "6.0"},
		{"5.5 % 2", "1.5"},
		{`"a" + 1`, "a1"},
		{`1 + "a"`, "1a"},
		{`"x" + 2.5`, "x2.5"},
		{"6 & 3", "2"},
		{"6 | 3", "7"},
		{"6 ^ 3", "5"},
		{"1 << 4", "16"},
		{"-1 >> 60", "15"},
		{"1 << 65", "2"},
		{"!0", "-1"},
		{"-(3)", "-3"},
		{"true", "1"},
		{"false", "0"},
		{"null", "NULL"},
		{"0x1F + 0b11", "34"},
		{`"a\tb\q"`, "a\tbq"},
		{`"naïve"[2]`, "239"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustEval(t, tt.input).Inspect())
		})
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"1 < 2", 1},
		{"2 <= 2", 1},
		{"3 > 2", 1},
		{"2 >= 3", 0},
		{"1 == 1.0", 1},
		{"1 != 2", 1},
		{`"abc" < "abd"`, 1},
		{`"10" == 10`, 1},
		{"'a == 'a", 1},
		{"'a < 'b", 1},
		{"null == null", 1},
		{"null != 1", 1},
		{"0 < 3 < 5", 1},
		{"5 > 3 > 4", 0},
		{"1 < 2 == 1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, &evaluator.Integer{Value: tt.expected}, mustEval(t, tt.input))
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"1 / 0", evaluator.ErrArithmetic},
		{"1 % 0", evaluator.ErrArithmetic},
		{`"a" - "b"`, evaluator.ErrType},
		{"1.5 & 1", evaluator.ErrType},
		{"[] + 1", evaluator.ErrType},
		{"null < 1", evaluator.ErrType},
		{"null + 1", evaluator.ErrType},
		{"[] == []", evaluator.ErrType},
		{`-"a"`, evaluator.ErrType},
		{"new 1", evaluator.ErrType},
		{"undefined", evaluator.ErrAccess},
		{"if [] then 1", evaluator.ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := eval(t, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err.Error())
		})
	}
}

func TestErrorsCarryPosition(t *testing.T) {
	_, err := eval(t, "var a = 1\n\n  a + b")
	require.Error(t, err)

	var rerr *evaluator.Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, evaluator.AccessError, rerr.Kind)
	assert.Equal(t, 3, rerr.Line)
	assert.Equal(t, 7, rerr.Column)
}

func TestVariables(t *testing.T) {
	scope := evaluator.NewScope()
	result, err := evalIn(t, scope, "var a, b = 5, c = b")
	require.NoError(t, err)
	assert.Equal(t, &evaluator.Integer{Value: 5}, result)

	a, err := scope.GetNamed("a")
	require.NoError(t, err)
	assert.Equal(t, evaluator.NULL, a)

	result, err = evalIn(t, scope, "a = c + 1; a += 10; a")
	require.NoError(t, err)
	assert.Equal(t, &evaluator.Integer{Value: 16}, result)

	_, err = evalIn(t, scope, "var a")
	assert.True(t, errors.Is(err, evaluator.ErrAccess), "named members are created once")

	_, err = evalIn(t, scope, "undeclared = 1")
	assert.True(t, errors.Is(err, evaluator.ErrAccess))
}

func TestBlocksShadowAndWriteThrough(t *testing.T) {
	assert.Equal(t, "1", mustEval(t, "var x = 1; { var x = 2 }; x").Inspect())
	assert.Equal(t, "2", mustEval(t, "var x = 1; { x = 2 }; x").Inspect())
	assert.Equal(t, "3", mustEval(t, "{ var y = 3; y }").Inspect())
	assert.Equal(t, "NULL", mustEval(t, "{}").Inspect())

	_, err := eval(t, "{ var y = 3 }; y")
	assert.True(t, errors.Is(err, evaluator.ErrAccess))
}

func TestCollectionLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[]", "[]"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"[1 2 3]", "[1, 2, 3]"},
		{`[1, name = "n", 2]`, "[1, 2, name = n]"},
		{"[a = 1, b = a + 1]", "[a = 1, b = 2]"},
		{"[a = 1, a]", "[1, a = 1]"},
		{"[x = 1, y = this.x]", "[x = 1, y = 1]"},
		{"var c = [1, 2]; c.length", "2"},
		{"var c = [1, 2]; c[1]", "2"},
		{"var c = [k = 4]; c.k", "4"},
		{"var c = [1]; var c[3]; c", "[1, NULL, NULL, NULL]"},
		{"var c = []; var c.k = 2; c", "[k = 2]"},
		{"var c = [1]; c[0] = 5; c", "[5]"},
		{`"hello"[1]`, "101"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustEval(t, tt.input).Inspect())
		})
	}
}

func TestCollectionAccessErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"var c = [1]; c[1]", evaluator.ErrAccess},
		{"var c = [1]; c[1] = 2", evaluator.ErrAccess},
		{"var c = [1]; c.missing", evaluator.ErrAccess},
		{"var c = [1]; c.length = 3", evaluator.ErrAccess},
		{"var c = [1]; c.this = 3", evaluator.ErrAccess},
		{"var c = [x = 1]; var c.x", evaluator.ErrAccess},
		{"var c = [1]; c[1.5]", evaluator.ErrType},
		{"var n = 1; n.x", evaluator.ErrType},
		{"[x = 1, x = 2]", evaluator.ErrAccess},
		{"var c = []; c.super = 1", evaluator.ErrStructure},
		{"var c = []; c.super = [c]", evaluator.ErrStructure},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := eval(t, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err.Error())
		})
	}
}

const inheritance = `
var a = [1, test1 = "a"]
var b = [2, test1 = "b", test2 = "x"]
var c = [3, 5, test1 = "c"]
var d = [4, 6, test1 = "d", test2 = "y"]
a.super = [b, c]
b.super = [d]
c.super = [d]
`

func TestInheritance(t *testing.T) {
	scope := evaluator.NewScope()
	_, err := evalIn(t, scope, inheritance)
	require.NoError(t, err)

	run := func(input string) string {
		result, err := evalIn(t, scope, input)
		require.NoError(t, err, input)
		return result.Inspect()
	}

	assert.Equal(t, "x", run("a.test2"))
	assert.Equal(t, "z", run(`a.test2 = "z"; b.test2`))
	assert.Equal(t, "y", run("c.test2"))
	assert.Equal(t, "1", run("a.length == b.length"))
	assert.Equal(t, "2", run("a.length"))
	assert.Equal(t, "2", run("d.length"))
	assert.Equal(t, "6", run("a[1]"))

	_, err = evalIn(t, scope, "b.super[0] = a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrStructure))
	assert.Equal(t, "[4, 6, test1 = d, test2 = y]", run("b.super[0]"))
}

func TestNewMakesIndependentCopy(t *testing.T) {
	scope := evaluator.NewScope()
	_, err := evalIn(t, scope, inheritance)
	require.NoError(t, err)

	result, err := evalIn(t, scope, `var e = new a; e.test1 = "e"; e.test2 = "w"; [a.test1, a.test2, e.test1, e.test2]`)
	require.NoError(t, err)
	assert.Equal(t, "[a, x, e, w]", result.Inspect())
}

func TestFunctions(t *testing.T) {
	scope := evaluator.NewScope()
	_, err := evalIn(t, scope, "var f = lambda(a, b = 10) -> a % b")
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{"f(11)", "1"},
		{"f(11, 6)", "5"},
		{"f(b = 4, a = 11)", "3"},
		{"f(11, b = 3)", "2"},
		{"f", "<function(a, b)>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := evalIn(t, scope, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Inspect())
		})
	}

	for _, input := range []string{"f(11, c = 1)", "f()", "f(1, 2, 3)", "f(b = 1)"} {
		_, err := evalIn(t, scope, input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, evaluator.ErrArgument), input)
	}

	_, err = evalIn(t, scope, "5(1)")
	assert.True(t, errors.Is(err, evaluator.ErrType))
}

func TestFunctionDeclarationsAndClosures(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"function f(a, b) a + b; f(2, 3)", "5"},
		{"function fact(n) if n <= 1 then 1 else n * fact(n - 1); fact(10)", "3628800"},
		{"var base = 10; function add(x) x + base; base = 20; add(1)", "21"},
		{"function counter() { var n = 0; lambda() n += 1 }; var c = counter(); c(); c(); c()", "3"},
		{"var d = 5; var f = lambda(x = d) x; d = 6; f()", "5"},
		{"var obj = [v = 2, function twice() this.v * 2]; obj.twice()", "4"},
		{"var obj = []; var obj.x = 3; function obj.get() obj.x; obj.get()", "3"},
		{"function early(x) { if x > 0 then return 1; 2 }; [early(5), early(-5)]", "[1, 2]"},
		{"function f() return; f()", "NULL"},
		{"function f() { while 1 do return 7 }; f()", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustEval(t, tt.input).Inspect())
		})
	}
}

func TestLoops(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"while true do (break(1) + 2)", "1"},
		{"while 0 do 1", "NULL"},
		{"var i = 0; while i < 5 do i += 1", "5"},
		{"var i = 0; while i < 5 { i += 1; if i == 3 then break(i * 10) }", "30"},
		{"var s = 0; for var i = 0; i < 5; i += 1 do s += i; s", "10"},
		{"for var i = 0; i < 3; i += 1 do i", "2"},
		{"var n = 0; for var i = 0; i < 5; i += 1 { if i % 2 == 0 then continue; n += 1 }; n", "2"},
		{"for var i = 0; i < 3; i += 1 do continue(i * 2)", "4"},
		{"var i = 0; while i < 3 { i += 1; break }", "NULL"},
		{"var i = 0; while i < 2 { i += 1; var x = i }", "2"},
		{"var i = 0; while 1 { i += 1; while 1 do break; if i == 4 then break(i) }", "4"},
		{"return 3; 4", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustEval(t, tt.input).Inspect())
		})
	}
}

func TestExitOutsideLoop(t *testing.T) {
	for _, input := range []string{"break", "continue(1)", "function f() break; f()"} {
		_, err := eval(t, input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, evaluator.ErrControl), input)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"'x", "x"},
		{"var s = 'abc; s", "abc"},
		{"'ab + 'cd", "abcd"},
		{"'a + 1", "a1"},
		{"var s = 'abc", "abc"},
		{"var t = 0; t = 'q", "q"},
		{"{ 'x }", "x"},
		{"if true then 'y", "y"},
		{"function f() 'z; f()", "z"},
		{"var w = 'u; [w][0]", "u"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := mustEval(t, tt.input)
			assert.Equal(t, evaluator.ObjectType(evaluator.SYMBOL_OBJ), result.Type())
			assert.Equal(t, tt.expected, result.Inspect())
		})
	}
}

func TestSequenceValueIsTheLastExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var s = 'abc; 1", "1"},
		{"{ var s = 'abc; 2 }", "2"},
		{"var t = 0; t = 'q; 3", "3"},
		{"var u = 'a + 'b; 4", "4"},
		{"var n = 0; while n < 2 do { var s = 'abc; n += 1 }; n", "2"},
		{"var i; for i = 0; i < 2; i += 1 do 'w; 5", "5"},
		{"function f() { var s = 'abc; 6 }; f()", "6"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustEval(t, tt.input).Inspect())
		})
	}
}

func TestInheritedWriteCannotCloseCycle(t *testing.T) {
	scope := evaluator.NewScope()
	_, err := evalIn(t, scope, "var d = [1]; var s = [d]; var a = []; a.super = s; var x = []; x.super = [s]")
	require.NoError(t, err)

	for _, input := range []string{"x[0] = a", "x[0] = 1"} {
		_, err = evalIn(t, scope, input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, evaluator.ErrStructure), err.Error())
	}

	result, err := evalIn(t, scope, "[a.length, s[0][0], a[0]]")
	require.NoError(t, err)
	assert.Equal(t, "[1, 1, 1]", result.Inspect())
}

func TestStructureErrorKeepsEarlierEffects(t *testing.T) {
	scope := evaluator.NewScope()
	_, err := evalIn(t, scope, "var a = [], b = [], log = 0")
	require.NoError(t, err)

	_, err = evalIn(t, scope, "a.super = [b]; log = 1; b.super = [a]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrStructure))

	result, err := evalIn(t, scope, "[log, a.super.length, b.super.length]")
	require.NoError(t, err)
	assert.Equal(t, "[1, 1, 0]", result.Inspect())
}

func TestRecursionLimit(t *testing.T) {
	_, err := eval(t, "function f(n) f(n + 1); f(0)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrControl))
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := evaluator.New()
	e.Context = ctx
	_, err := e.Run(parse(t, "while 1 do 1"), evaluator.NewScope())
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrControl))
	assert.Contains(t, err.Error(), "execution cancelled")
}

func TestThisAtTopLevel(t *testing.T) {
	scope := evaluator.NewScope()
	result, err := evalIn(t, scope, "var g = 1; { var local = 2; this }")
	require.NoError(t, err)
	assert.Same(t, scope.Collection(), result)
	assert.Equal(t, "[g = 1]", result.Inspect())
}
