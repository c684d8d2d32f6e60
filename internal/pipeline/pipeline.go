package pipeline

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/token"
)

// PipelineContext carries one compilation through the processor
// stages. Each stage reads what earlier stages produced and appends its
// diagnostics; stages never abort the pipeline.
type PipelineContext struct {
	SourceCode []byte
	FilePath   string
	ModuleName string

	CollectComments bool

	AstRoot    *ast.Module
	Imports    []*ast.UseStatement
	Comments   lexer.CommentMap
	LineBreaks []token.Position

	Scope  *symbols.Scope
	Errors []*diagnostics.Diagnostic
}

// Processor is one stage of a compilation pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Processing continues past errors so that
// diagnostics from all stages are collected.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
