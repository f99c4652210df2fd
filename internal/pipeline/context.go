package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/evaluator"
	"github.com/0xJonas/Phi/internal/token"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// TokenStream is the lexer output consumed by the parser.
type TokenStream interface {
	Next() token.Token
	// Peek returns up to n tokens following the last one returned by Next.
	Peek(n int) []token.Token
}

// PipelineContext carries state between stages.
type PipelineContext struct {
	Context    context.Context
	SourceCode string
	FilePath   string

	TokenStream TokenStream
	AstRoot     ast.Node

	// Globals is the scope programs run in. The execution stage creates one
	// when it is nil so a host can keep state across runs by reusing it.
	Globals *evaluator.Scope
	Result  evaluator.Object

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{Context: context.Background(), SourceCode: source}
}

// Err folds the collected diagnostics into one error, or nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, e := range ctx.Errors {
		result = multierror.Append(result, e)
	}
	result.ErrorFormat = formatDiagnostics
	return result.ErrorOrNil()
}

func formatDiagnostics(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "- " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(errs), strings.Join(lines, "\n"))
}
