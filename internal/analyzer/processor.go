package analyzer

import (
	"github.com/quill-lang/quill/internal/pipeline"
	"github.com/quill-lang/quill/internal/symbols"
)

// Processor runs the two semantic passes over a parsed module.
type Processor struct{}

func (sp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	if ctx.Scope == nil {
		ctx.Scope = symbols.NewScope()
		RegisterBuiltins(ctx.Scope)
	}

	diags := AnalyzeModule(ctx.Scope, ctx.AstRoot)

	for _, d := range diags {
		if d.ModulePath == "" {
			d.ModulePath = ctx.FilePath
			d.ModuleName = ctx.ModuleName
		}
	}

	ctx.Errors = append(ctx.Errors, diags...)

	return ctx
}
