package pipeline

import (
	"github.com/quale-lang/qcc/internal/analyzer"
	"github.com/quale-lang/qcc/internal/backend"
	"github.com/quale-lang/qcc/internal/diagnostics"
	"github.com/quale-lang/qcc/internal/loader"
	"github.com/quale-lang/qcc/internal/mangler"
)

// LoadStage parses ctx.FilePath and every module it transitively imports
// into ctx.Program, via internal/loader. It replaces a standalone lexer
// or parser stage because Quale's import model spans files: the loader
// drives the lexer and parser itself per file it discovers.
type LoadStage struct{}

func (LoadStage) Process(ctx *PipelineContext) *PipelineContext {
	l := loader.New(ctx.FilePath)
	l.Load(ctx.FilePath)
	ctx.Program = l.Program
	ctx.Errors = append(ctx.Errors, l.Errors...)
	ctx.importsByModule = l.ImportsByModule
	return ctx
}

// MangleStage rewrites every function and call site to its fully
// qualified Module$Function name.
type MangleStage struct{}

func (MangleStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	errs := mangler.Mangle(ctx.Program, ctx.importsByModule)
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}

// MergeStage folds every loaded module into the synthetic monolith module
// (ast.Program.Merge), once mangling has made every function name globally
// unique.
type MergeStage struct{}

func (MergeStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	ctx.Program.Merge()
	return ctx
}

// InferStage runs two-pass type inference over ctx.Program. When inference
// raised any diagnostic, a TypeError aggregate follows them in ctx.Errors.
type InferStage struct{}

func (InferStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	errs := analyzer.Infer(ctx.Program)
	ctx.Errors = append(ctx.Errors, errs...)
	if len(errs) > 0 {
		ctx.Errors = append(ctx.Errors, diagnostics.NewErrorAt(diagnostics.TypeError,
			diagnostics.NewLocation(ctx.FilePath, 0, 0), ""))
	}
	return ctx
}

// TranslateStage lowers the mangled program to a QasmModule. It runs even
// when earlier stages produced errors (Pipeline.Run continues past them);
// the driver then reports those errors and writes no output file.
type TranslateStage struct{}

func (TranslateStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	ctx.QasmModule = backend.Translate(ctx.Program)
	return ctx
}
