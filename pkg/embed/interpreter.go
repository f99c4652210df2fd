package phi

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/0xJonas/Phi/internal/backend"
	"github.com/0xJonas/Phi/internal/evaluator"
	"github.com/0xJonas/Phi/internal/lexer"
	"github.com/0xJonas/Phi/internal/parser"
	"github.com/0xJonas/Phi/internal/pipeline"
)

// Interpreter runs Phi programs against a global scope that persists
// between calls, so a host can seed values, run scripts and read results.
type Interpreter struct {
	ctx        context.Context
	globals    *evaluator.Scope
	marshaller *Marshaller
	pipeline   *pipeline.Pipeline
}

// Option configures an Interpreter.
type Option func(*Interpreter) error

// WithContext makes every run stop with a ControlError once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(in *Interpreter) error {
		if ctx == nil {
			return errors.New("nil context")
		}
		in.ctx = ctx
		return nil
	}
}

// WithGlobalsYAML seeds the global scope from a YAML mapping.
func WithGlobalsYAML(data []byte) Option {
	return func(in *Interpreter) error {
		return in.LoadYAML(data)
	}
}

// New creates an Interpreter with an empty global scope.
func New(opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		ctx:        context.Background(),
		globals:    evaluator.NewScope(),
		marshaller: NewMarshaller(),
		pipeline: pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			backend.NewExecutionProcessor(backend.NewTreeWalk()),
		),
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, errors.Wrap(err, "configuring interpreter")
		}
	}
	return in, nil
}

// Globals returns the scope programs run in.
func (in *Interpreter) Globals() *evaluator.Scope {
	return in.globals
}

// Exec runs source and returns the program value as a Phi object. path
// only labels diagnostics and may be empty.
func (in *Interpreter) Exec(source, path string) (evaluator.Object, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.Context = in.ctx
	ctx.FilePath = path
	ctx.Globals = in.globals

	ctx = in.pipeline.Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if ctx.Result == nil {
		return evaluator.NULL, nil
	}
	return ctx.Result, nil
}

// Eval runs code and converts its value to Go.
func (in *Interpreter) Eval(code string) (interface{}, error) {
	result, err := in.Exec(code, "<eval>")
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(result, nil)
}

// LoadFile runs the program stored at path.
func (in *Interpreter) LoadFile(path string) (evaluator.Object, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return in.Exec(string(content), path)
}

// Set binds name in the global scope to the Phi form of val, declaring it
// first if needed.
func (in *Interpreter) Set(name string, val interface{}) error {
	obj, err := in.marshaller.ToValue(val)
	if err != nil {
		return errors.Wrapf(err, "converting %s", name)
	}
	return in.setObject(name, obj)
}

func (in *Interpreter) setObject(name string, obj evaluator.Object) error {
	if !in.globals.Collection().Has(name) {
		if err := in.globals.CreateNamed(name); err != nil {
			return errors.Wrapf(err, "declaring %s", name)
		}
	}
	return errors.Wrapf(in.globals.SetNamed(name, obj), "setting %s", name)
}

// Get reads a global and converts it to Go.
func (in *Interpreter) Get(name string) (interface{}, error) {
	obj, err := in.globals.GetNamed(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return in.marshaller.FromValue(obj, nil)
}

// Call invokes the global function name with positional arguments.
func (in *Interpreter) Call(name string, args ...interface{}) (interface{}, error) {
	fn, err := in.globals.GetNamed(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	phiArgs := evaluator.NewCollection()
	for i, arg := range args {
		obj, err := in.marshaller.ToValue(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		if err := phiArgs.AppendUnnamed(obj); err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
	}

	eval := evaluator.New()
	eval.Context = in.ctx
	result, err := eval.Call(fn, phiArgs)
	if err != nil {
		return nil, errors.Wrapf(err, "calling %s", name)
	}
	return in.marshaller.FromValue(result, nil)
}
