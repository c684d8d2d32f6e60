package parser

import (
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/pipeline"
)

// Processor runs the tokenizer and parser over the context's source.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	lx := lexer.New(ctx.SourceCode)

	p := New(ctx.SourceCode, lx)
	if ctx.CollectComments {
		p.CollectComments()
	}

	module, imports, commentData, errors := p.ParseModule()

	ctx.AstRoot = module
	ctx.Imports = imports
	ctx.Errors = append(ctx.Errors, errors...)

	if commentData != nil {
		ctx.Comments = commentData.Comments
		ctx.LineBreaks = commentData.LineBreaks
	}

	for _, err := range ctx.Errors {
		if err.ModulePath == "" {
			err.ModulePath = ctx.FilePath
			err.ModuleName = ctx.ModuleName
		}
	}

	return ctx
}
