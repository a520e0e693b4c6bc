package lexer

import (
	"github.com/funvibe/kindgen/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	ctx.TokenStream = New(ctx.SourceCode).Tokenize()
	return ctx
}
