package pipeline

import (
	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/token"
)

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Context carries one source file through lexing, parsing and expansion.
type Context struct {
	FilePath   string
	SourceCode string

	TokenStream *token.Stream
	AstRoot     *ast.Program

	// Expansions holds the emitted host text for each successfully
	// expanded statement, in source order. Statements that produced a
	// diagnostic contribute nothing.
	Expansions []string

	Errors []*diagnostics.DiagnosticError
}
