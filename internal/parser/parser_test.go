package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/lexer"
	"github.com/funvibe/kindgen/internal/parser"
	"github.com/funvibe/kindgen/internal/pipeline"
	"github.com/funvibe/kindgen/internal/prettyprinter"
)

func parse(t *testing.T, input string) *pipeline.Context {
	t.Helper()
	ctx := &pipeline.Context{FilePath: "test.kind", SourceCode: input}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx
}

// TestParserRoundTrip parses each input and reconstructs normalized
// source with the code printer. The expected text doubles as a readable
// record of how each form is understood.
func TestParserRoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"defkind_single_member",
			"defkind { type Of<'a, A: Clone + 'a>: 'a; }",
			"defkind {\n    type Of<'a, A: Clone + 'a>: 'a;\n}\n",
		},
		{
			"kind_name_only",
			"kind { type Of<T>; }",
			"kind {\n    type Of<T>;\n}\n",
		},
		{
			"defkind_multi_member",
			"defkind {\n  type Of<T>;\n  type Err<E: Debug>;\n}",
			"defkind {\n    type Of<T>;\n    type Err<E: Debug>;\n}\n",
		},
		{
			"member_fn_bound",
			"defkind { type Map<A, B>: Fn(A) -> B; }",
			"defkind {\n    type Map<A, B>: Fn(A) -> B;\n}\n",
		},
		{
			"member_assoc_arg_bound",
			"kind { type It<T: Iterator<Item = T> + Clone>; }",
			"kind {\n    type It<T: Iterator<Item = T> + Clone>;\n}\n",
		},
		{
			"implkind_full_header",
			"implkind <'a, E: Clone> for ResultBrand<E> where E: std::fmt::Debug { type Of<A> = Result<A, E>; }",
			"implkind <'a, E: Clone> for ResultBrand<E> where E: std::fmt::Debug {\n    type Of<A> = Result<A, E>;\n}\n",
		},
		{
			"implkind_bare",
			"implkind for VecBrand { type Of<A> = [A]; }",
			"implkind for VecBrand {\n    type Of<A> = [A];\n}\n",
		},
		{
			"implkind_inline_arg_bounds",
			"implkind for RefBrand { type Of<'a, A: 'a>: 'a = (A, A); }",
			"implkind for RefBrand {\n    type Of<'a, A: 'a>: 'a = (A, A);\n}\n",
		},
		{
			"apply_unified",
			"apply(brand: OptionBrand, signature: ('a, A: 'a) -> 'a, output: Of)",
			"apply(brand: OptionBrand, signature: ('a, A: 'a) -> 'a, output: Of)\n",
		},
		{
			"apply_explicit",
			"apply(brand: OptionBrand, kind: Kind_0123456789abcdef, lifetimes: ('static), types: (String))",
			"apply(brand: OptionBrand, kind: Kind_0123456789abcdef, lifetimes: ('static), types: (String))\n",
		},
		{
			"apply_default_output",
			"apply(brand: VecBrand, signature: (T: Clone))",
			"apply(brand: VecBrand, signature: (T: Clone))\n",
		},
		{
			"multiple_statements",
			"kind { type Of<T>; }\napply(brand: B, signature: (T))",
			"kind {\n    type Of<T>;\n}\n\napply(brand: B, signature: (T))\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(t, tc.input)
			if len(ctx.Errors) > 0 {
				var msgs []string
				for _, err := range ctx.Errors {
					msgs = append(msgs, err.Error())
				}
				t.Fatalf("parsing failed with errors:\n%s", strings.Join(msgs, "\n"))
			}

			printer := prettyprinter.NewCodePrinter()
			printer.PrintProgram(ctx.AstRoot)
			if got := printer.String(); got != tc.expected {
				t.Errorf("round trip mismatch:\n--- expected\n%s\n--- actual\n%s", tc.expected, got)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		code      diagnostics.ErrorCode
		errCount  int
		msgSubstr string
	}{
		{
			"stray_top_level_token",
			"type Of;",
			diagnostics.ErrP001, 1, "expected 'kind'",
		},
		{
			"empty_signature",
			"defkind { }",
			diagnostics.ErrP001, 1, "at least one member",
		},
		{
			"duplicate_member",
			"defkind { type Of<T>; type Of<A>; }",
			diagnostics.ErrP002, 1, "duplicate member name 'Of'",
		},
		{
			"duplicate_binding",
			"implkind for B { type Of<A> = A; type Of<A> = A; }",
			diagnostics.ErrP002, 1, "duplicate member name 'Of'",
		},
		{
			"signature_kind_conflict",
			"apply(brand: B, signature: (T), kind: Kind_0000000000000000, lifetimes: (), types: (T))",
			diagnostics.ErrP003, 1, "cannot mix",
		},
		{
			"duplicate_label",
			"apply(brand: B, brand: C, signature: (T))",
			diagnostics.ErrP004, 1, "duplicate label 'brand'",
		},
		{
			"missing_brand",
			"apply(signature: (T))",
			diagnostics.ErrP004, 1, "missing 'brand'",
		},
		{
			"kind_without_arguments",
			"apply(brand: B, kind: Kind_0000000000000000)",
			diagnostics.ErrP004, 1, "requires 'lifetimes' and 'types'",
		},
		{
			"unknown_label",
			"apply(brand: B, signature: (T), flavor: mint)",
			diagnostics.ErrP004, 1, "unknown label 'flavor'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(t, tc.input)
			if len(ctx.Errors) != tc.errCount {
				var msgs []string
				for _, err := range ctx.Errors {
					msgs = append(msgs, err.Error())
				}
				t.Fatalf("expected %d error(s), got %d:\n%s", tc.errCount, len(ctx.Errors), strings.Join(msgs, "\n"))
			}
			err := ctx.Errors[0]
			if err.Code != tc.code {
				t.Errorf("expected code %s, got %s (%s)", tc.code, err.Code, err.Error())
			}
			if !strings.Contains(err.Message, tc.msgSubstr) {
				t.Errorf("expected message containing %q, got %q", tc.msgSubstr, err.Message)
			}
			if err.File != "test.kind" {
				t.Errorf("expected file to be set on the diagnostic, got %q", err.File)
			}
		})
	}
}

// Recovery: a broken statement must not hide diagnostics or statements
// that follow it.
func TestParserRecovery(t *testing.T) {
	ctx := parse(t, "defkind { type ; }\nkind { type Of<T>; }")
	if len(ctx.Errors) == 0 {
		t.Fatal("expected at least one error for the broken statement")
	}
	if len(ctx.AstRoot.Statements) != 1 {
		t.Fatalf("expected the trailing statement to survive recovery, got %d statements", len(ctx.AstRoot.Statements))
	}
}
