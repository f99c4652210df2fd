// Package backend provides an interface for execution backends, so the
// pipeline does not depend on how a parsed program is run.
package backend

import (
	"github.com/0xJonas/Phi/internal/evaluator"
	"github.com/0xJonas/Phi/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the result
	Run(ctx *pipeline.PipelineContext) (evaluator.Object, error)

	// Name returns the backend name for display
	Name() string
}
