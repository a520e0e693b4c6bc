package prettyprinter_test

import (
	"testing"

	"github.com/funvibe/kindgen/internal/lexer"
	"github.com/funvibe/kindgen/internal/parser"
	"github.com/funvibe/kindgen/internal/pipeline"
	"github.com/funvibe/kindgen/internal/prettyprinter"
)

func parse(t *testing.T, source string) *pipeline.Context {
	t.Helper()
	ctx := &pipeline.Context{SourceCode: source}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error: %s", ctx.Errors[0].Error())
	}
	return ctx
}

func TestTreePrinter(t *testing.T) {
	ctx := parse(t, "kind { type Of<'a, A: Clone>: 'a; }")

	printer := prettyprinter.NewTreePrinter()
	printer.PrintProgram(ctx.AstRoot)

	expected := "Program\n" +
		"  Kind\n" +
		"    Member(Of)\n" +
		"      Scope('a)\n" +
		"      Type(A: Clone)\n" +
		"      Output('a)\n"
	if got := printer.String(); got != expected {
		t.Errorf("tree mismatch:\n--- expected\n%s\n--- actual\n%s", expected, got)
	}
}

func TestTreePrinterApply(t *testing.T) {
	ctx := parse(t, "apply(brand: B, signature: ('a, T: Clone) -> 'a, output: Of)")

	printer := prettyprinter.NewTreePrinter()
	printer.PrintProgram(ctx.AstRoot)

	expected := "Program\n" +
		"  Apply(B)\n" +
		"    Signature\n" +
		"      Param('a)\n" +
		"      Param(T: Clone)\n" +
		"      Output('a)\n" +
		"    Member(Of)\n"
	if got := printer.String(); got != expected {
		t.Errorf("tree mismatch:\n--- expected\n%s\n--- actual\n%s", expected, got)
	}
}
