package backend

import (
	"github.com/pkg/errors"

	"github.com/0xJonas/Phi/internal/diagnostics"
	"github.com/0xJonas/Phi/internal/evaluator"
	"github.com/0xJonas/Phi/internal/pipeline"
	"github.com/0xJonas/Phi/internal/token"
)

// ExecutionProcessor is the pipeline stage running a Backend.
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	result, err := p.Backend.Run(ctx)
	if err != nil {
		p.handleError(ctx, err)
		return ctx
	}

	ctx.Result = result
	return ctx
}

// handleError records a runtime failure as an R001 diagnostic, keeping the
// position of the failing expression when the evaluator reported one.
func (p *ExecutionProcessor) handleError(ctx *pipeline.PipelineContext, err error) {
	var tok token.Token
	msg := err.Error()

	var rerr *evaluator.Error
	if errors.As(err, &rerr) {
		tok = token.Token{Line: rerr.Line, Column: rerr.Column}
		msg = string(rerr.Kind) + ": " + rerr.Message
	}

	diag := diagnostics.NewError(diagnostics.ErrR001, tok, msg)
	diag.File = ctx.FilePath
	diag.Cause = err
	ctx.Errors = append(ctx.Errors, diag)
}
