package codegen

import (
	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/pipeline"
)

// ExpanderProcessor is the last pipeline stage: it expands every parsed
// statement into its output text. A realization that fails inference is
// reported and skipped; the remaining statements still expand.
type ExpanderProcessor struct{}

func (ep *ExpanderProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil {
		return ctx
	}

	for _, stmt := range ctx.AstRoot.Statements {
		switch st := stmt.(type) {
		case *ast.KindStatement:
			ctx.Expansions = append(ctx.Expansions, InterfaceName(st.Signature))
		case *ast.DefKindStatement:
			ctx.Expansions = append(ctx.Expansions, SynthesizeDeclaration(st.Signature))
		case *ast.ImplKindStatement:
			sig, err := InferRealization(st)
			if err != nil {
				err.File = ctx.FilePath
				ctx.Errors = append(ctx.Errors, err)
				continue
			}
			ctx.Expansions = append(ctx.Expansions, EmitRealization(st, InterfaceName(sig)))
		case *ast.ApplyStatement:
			ctx.Expansions = append(ctx.Expansions, Project(st))
		}
	}
	return ctx
}
