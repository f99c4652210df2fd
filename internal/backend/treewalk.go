package backend

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/evaluator"
	"github.com/0xJonas/Phi/internal/pipeline"
)

// TreeWalkBackend runs programs with the tree-walking evaluator.
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run evaluates ctx.AstRoot in ctx.Globals, creating the global scope on
// first use so that a host can carry state from one run to the next.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Object, error) {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return nil, errors.New("no program to execute")
	}

	if ctx.Globals == nil {
		ctx.Globals = evaluator.NewScope()
	}

	eval := evaluator.New()
	if ctx.Context != nil {
		eval.Context = ctx.Context
	}

	name := ctx.FilePath
	if name == "" {
		name = "<input>"
	}
	if glog.V(2) {
		nodes := 0
		ast.Inspect(program, func(ast.Node) bool { nodes++; return true })
		glog.Infof("%s: evaluating %s (%d top-level expressions, %d nodes)", b.Name(), name, len(program.Expressions), nodes)
	}

	result, err := eval.Run(program, ctx.Globals)
	if err != nil {
		glog.V(2).Infof("%s: %s failed: %v", b.Name(), name, err)
		return nil, err
	}

	glog.V(2).Infof("%s: %s finished with %s", b.Name(), name, result.Type())
	return result, nil
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
