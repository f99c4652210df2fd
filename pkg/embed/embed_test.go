package phi_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xJonas/Phi/internal/evaluator"
	phi "github.com/0xJonas/Phi/pkg/embed"
)

func newInterpreter(t *testing.T, opts ...phi.Option) *phi.Interpreter {
	t.Helper()
	in, err := phi.New(opts...)
	require.NoError(t, err)
	return in
}

func mustEval(t *testing.T, in *phi.Interpreter, code string) interface{} {
	t.Helper()
	res, err := in.Eval(code)
	require.NoError(t, err, code)
	return res
}

type point struct {
	X, Y   int
	hidden int
}

func TestEvalKeepsGlobals(t *testing.T) {
	in := newInterpreter(t)
	assert.Equal(t, int64(3), mustEval(t, in, "1 + 2"))

	mustEval(t, in, "var x = 10")
	assert.Equal(t, int64(20), mustEval(t, in, "x * 2"))
	assert.Equal(t, "ab", mustEval(t, in, `"a" + "b"`))
	assert.Equal(t, 2.5, mustEval(t, in, "x / 4.0"))
	assert.Nil(t, mustEval(t, in, "null"))
	assert.Equal(t, []interface{}{int64(1), "s"}, mustEval(t, in, `[1, "s"]`))
	assert.Equal(t, map[string]interface{}{"0": int64(1), "n": int64(2)}, mustEval(t, in, "[1, n = 2]"))
}

func TestSetAndGet(t *testing.T) {
	in := newInterpreter(t)

	require.NoError(t, in.Set("cfg", map[string]interface{}{"port": 8080, "name": "svc"}))
	assert.Equal(t, int64(8081), mustEval(t, in, "cfg.port + 1"))

	cfg, err := in.Get("cfg")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "svc", "port": int64(8080)}, cfg)

	require.NoError(t, in.Set("flag", true))
	assert.Equal(t, int64(1), mustEval(t, in, "flag"))

	require.NoError(t, in.Set("xs", []int{1, 2, 3}))
	assert.Equal(t, int64(3), mustEval(t, in, "xs.length"))
	xs, err := in.Get("xs")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, xs)

	require.NoError(t, in.Set("p", &point{X: 2, Y: 5, hidden: 9}))
	assert.Equal(t, int64(7), mustEval(t, in, "p.X + p.Y"))
	_, err = in.Eval("p.hidden")
	assert.True(t, errors.Is(err, evaluator.ErrAccess))

	// setting twice replaces the value
	require.NoError(t, in.Set("flag", 0))
	assert.Equal(t, int64(0), mustEval(t, in, "flag"))

	assert.Error(t, in.Set("fn", func() {}))
	assert.Error(t, in.Set("this", 1))

	_, err = in.Get("undefined")
	assert.True(t, errors.Is(err, evaluator.ErrAccess))
}

func TestCall(t *testing.T) {
	in := newInterpreter(t)
	mustEval(t, in, "function add(a, b = 10) a + b")

	res, err := in.Call("add", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res)

	res, err = in.Call("add", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), res)

	_, err = in.Call("add", 1, 2, 3)
	assert.True(t, errors.Is(err, evaluator.ErrArgument))

	_, err = in.Call("missing")
	assert.True(t, errors.Is(err, evaluator.ErrAccess))

	require.NoError(t, in.Set("n", 1))
	_, err = in.Call("n")
	assert.True(t, errors.Is(err, evaluator.ErrType))
}

func TestEvalErrors(t *testing.T) {
	in := newInterpreter(t)

	_, err := in.Eval("[1][3]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrAccess))
	assert.Contains(t, err.Error(), "<eval>:1:4")

	_, err = in.Eval("var = ")
	require.Error(t, err)
	assert.False(t, errors.Is(err, evaluator.ErrAccess))

	_, err = in.Eval("var c = [0]; c[0] = c; c")
	assert.Error(t, err, "self-containing collections have no Go form")
}

func TestGlobalsFromYAML(t *testing.T) {
	in := newInterpreter(t, phi.WithGlobalsYAML([]byte(`
name: demo
replicas: 3
ratio: 0.5
enabled: true
missing: null
ports: [80, 443]
limits:
  memory: 512
  cpu: 2
`)))

	assert.Equal(t, int64(6), mustEval(t, in, "replicas * 2"))
	assert.Equal(t, int64(443), mustEval(t, in, "ports[1]"))
	assert.Equal(t, int64(512), mustEval(t, in, "limits.memory"))
	assert.Equal(t, int64(1), mustEval(t, in, "enabled"))
	assert.Nil(t, mustEval(t, in, "missing"))
	assert.Equal(t, 0.5, mustEval(t, in, "ratio"))
	assert.Equal(t, "demo!", mustEval(t, in, `name + "!"`))

	limits, err := in.Exec("limits", "")
	require.NoError(t, err)
	assert.Equal(t, "[memory = 512, cpu = 2]", limits.Inspect())

	require.NoError(t, in.LoadYAML([]byte("replicas: 5")))
	assert.Equal(t, int64(5), mustEval(t, in, "replicas"))
}

func TestGlobalsFromYAMLErrors(t *testing.T) {
	for _, doc := range []string{
		"- 1\n- 2",
		"this: 1",
		"a: [1\n",
		"a:\n  x: 1\n  x: 2",
	} {
		_, err := phi.New(phi.WithGlobalsYAML([]byte(doc)))
		assert.Error(t, err, doc)
	}
}

func TestContextCancelsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := newInterpreter(t, phi.WithContext(ctx))

	_, err := in.Eval("while 1 do 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, evaluator.ErrControl))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.phi")
	require.NoError(t, os.WriteFile(path, []byte(`
function greet(n) "hello " + n
var answer = 42
`), 0o644))

	in := newInterpreter(t)
	result, err := in.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "42", result.Inspect())

	greeting, err := in.Call("greet", "phi")
	require.NoError(t, err)
	assert.Equal(t, "hello phi", greeting)

	_, err = in.LoadFile(filepath.Join(dir, "missing.phi"))
	assert.Error(t, err)
}

func TestFromValueTargetTypes(t *testing.T) {
	m := phi.NewMarshaller()
	list, err := m.ToValue([]int{1, 2})
	require.NoError(t, err)

	ints, err := m.FromValue(list, reflect.TypeOf([]int{}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ints)

	text, err := m.FromValue(&evaluator.Integer{Value: 3}, reflect.TypeOf(""))
	require.NoError(t, err)
	assert.Equal(t, "3", text)

	f, err := m.FromValue(&evaluator.String{Value: "1.5"}, reflect.TypeOf(float64(0)))
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	obj, err := m.FromValue(list, reflect.TypeOf((*evaluator.Object)(nil)).Elem())
	require.NoError(t, err)
	assert.Same(t, list, obj)

	_, err = m.FromValue(&evaluator.String{Value: "x"}, reflect.TypeOf(0))
	assert.Error(t, err)
}
