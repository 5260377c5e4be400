// Package pipeline sequences qcc's compilation stages (lex→parse→mangle→
// merge→infer→translate) the way funxy's internal/pipeline does: a Pipeline of
// Processors run in order over a shared *PipelineContext, continuing past
// per-stage errors so later stages — and consumers like --dump-ast — can
// still see as much of the tree as was built.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/quale-lang/qcc/internal/ast"
	"github.com/quale-lang/qcc/internal/backend"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/parser"
)

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs a fixed sequence of Processors.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline over processors, run in the given order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run drives ctx through every stage in order. Continue on errors to
// collect diagnostics from all stages, rather than stopping at the
// first one that fails.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}

// PipelineContext carries one compilation session's state between
// stages. SessionID distinguishes concurrently captured --dump-ast /
// --dump-qasm / stderr output when a caller correlates them.
type PipelineContext struct {
	SessionID uuid.UUID

	FilePath string
	Source   []byte

	Program    *ast.Program
	QasmModule *backend.QasmModule

	Errors []*diagnostics.Error

	// importsByModule is handed off from LoadStage to MangleStage; it has
	// no meaning outside this package's own stage sequencing.
	importsByModule map[string][]parser.Import
}

// NewPipelineContext creates a context for compiling the file at path.
func NewPipelineContext(path string, source []byte) *PipelineContext {
	return &PipelineContext{
		SessionID: uuid.New(),
		FilePath:  path,
		Source:    source,
	}
}

// HasErrors reports whether any stage has appended a diagnostic so far.
func (c *PipelineContext) HasErrors() bool {
	return len(c.Errors) > 0
}
