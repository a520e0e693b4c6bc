package codegen_test

import (
	"strings"
	"testing"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/codegen"
	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/lexer"
	"github.com/funvibe/kindgen/internal/parser"
	"github.com/funvibe/kindgen/internal/pipeline"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	ctx := &pipeline.Context{SourceCode: source}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error in %q: %s", source, ctx.Errors[0].Error())
	}
	return ctx.AstRoot
}

func declaredSignature(t *testing.T, source string) *ast.Signature {
	t.Helper()
	st, ok := parseProgram(t, source).Statements[0].(*ast.DefKindStatement)
	if !ok {
		t.Fatalf("expected defkind, got %T", parseProgram(t, source).Statements[0])
	}
	return st.Signature
}

func realization(t *testing.T, source string) *ast.ImplKindStatement {
	t.Helper()
	st, ok := parseProgram(t, source).Statements[0].(*ast.ImplKindStatement)
	if !ok {
		t.Fatalf("expected implkind, got %T", parseProgram(t, source).Statements[0])
	}
	return st
}

func application(t *testing.T, source string) *ast.ApplyStatement {
	t.Helper()
	st, ok := parseProgram(t, source).Statements[0].(*ast.ApplyStatement)
	if !ok {
		t.Fatalf("expected apply, got %T", parseProgram(t, source).Statements[0])
	}
	return st
}

// The core contract: a declaration, a realization and an application
// that describe the same shape must agree on the interface name without
// ever seeing each other.
func TestDeclarationRealizationAgreement(t *testing.T) {
	testCases := []struct {
		name        string
		declaration string
		impl        string
	}{
		{
			"inline_bounds",
			"defkind { type Of<'a, A: Clone + 'a>: 'a; }",
			"implkind <'a, E> for RefBrand<E> { type Of<'a, A: Clone + 'a>: 'a = (A, E); }",
		},
		{
			"bounds_from_header",
			"defkind { type Of<'a, A: Clone + 'a>: 'a; }",
			"implkind <'a, A: Clone + 'a> for RefBrand { type Of<'a, A>: 'a = A; }",
		},
		{
			"bounds_from_where_clause",
			"defkind { type Of<A: Debug>; }",
			"implkind for LogBrand where A: Debug { type Of<A> = A; }",
		},
		{
			"bound_in_both_places_counts_once",
			"defkind { type Of<A: Debug>; }",
			"implkind <A: Debug> for LogBrand where A: Debug { type Of<A> = A; }",
		},
		{
			"multi_member",
			"defkind { type Of<T>; type Err<E: Debug>; }",
			"implkind <E: Debug> for ResultBrand<E> { type Err<E> = E; type Of<T> = Result<T, E>; }",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			declared := codegen.InterfaceName(declaredSignature(t, tc.declaration))

			inferred, err := codegen.InferRealization(realization(t, tc.impl))
			if err != nil {
				t.Fatalf("inference failed: %s", err.Error())
			}
			implemented := codegen.InterfaceName(inferred)

			if declared != implemented {
				t.Errorf("declaration and realization disagree: %q vs %q", declared, implemented)
			}
		})
	}
}

func TestDeclarationApplicationAgreement(t *testing.T) {
	declared := codegen.InterfaceName(declaredSignature(t,
		"defkind { type Of<'a, A: 'a>: 'a; }"))

	st := application(t, "apply(brand: OptionBrand, signature: ('a, A: 'a) -> 'a, output: Of)")
	projected := codegen.Project(st)

	if !strings.Contains(projected, declared) {
		t.Errorf("projection %q does not reference the declared interface %q", projected, declared)
	}
	want := "<OptionBrand as " + declared + ">::Of<'a, A>"
	if projected != want {
		t.Errorf("projection mismatch:\nexpected %q\ngot      %q", want, projected)
	}
}

func TestProjectDefaultMember(t *testing.T) {
	declared := codegen.InterfaceName(declaredSignature(t, "defkind { type Of<T>; }"))
	st := application(t, "apply(brand: VecBrand, signature: (T))")
	want := "<VecBrand as " + declared + ">::Of<T>"
	if got := codegen.Project(st); got != want {
		t.Errorf("default member projection mismatch:\nexpected %q\ngot      %q", want, got)
	}
}

func TestProjectExplicitKind(t *testing.T) {
	st := application(t,
		"apply(brand: OptionBrand, kind: Kind_0123456789abcdef, lifetimes: ('static), types: (String))")
	want := "<OptionBrand as Kind_0123456789abcdef>::Of<'static, String>"
	if got := codegen.Project(st); got != want {
		t.Errorf("explicit projection mismatch:\nexpected %q\ngot      %q", want, got)
	}
}

func TestSynthesizeDeclarationKeepsAuthorNames(t *testing.T) {
	sig := declaredSignature(t, "defkind { type Of<'lifetime, Value: Clone + 'lifetime>: 'lifetime; }")
	out := codegen.SynthesizeDeclaration(sig)

	want := "pub trait " + codegen.InterfaceName(sig) + " {\n" +
		"    type Of<'lifetime, Value: Clone + 'lifetime>: 'lifetime;\n" +
		"}"
	if out != want {
		t.Errorf("declaration mismatch:\nexpected:\n%s\ngot:\n%s", want, out)
	}
}

func TestEmitRealization(t *testing.T) {
	st := realization(t,
		"implkind <E: Clone> for ResultBrand<E> where E: std::fmt::Debug { type Of<A> = Result<A, E>; }")
	sig, err := codegen.InferRealization(st)
	if err != nil {
		t.Fatalf("inference failed: %s", err.Error())
	}
	name := codegen.InterfaceName(sig)
	out := codegen.EmitRealization(st, name)

	want := "/// Generated implementation of `" + name + "` for `ResultBrand<E>`.\n" +
		"impl<E: Clone> " + name + " for ResultBrand<E> where E: std::fmt::Debug {\n" +
		"    type Of<A> = Result<A, E>;\n" +
		"}"
	if out != want {
		t.Errorf("realization mismatch:\nexpected:\n%s\ngot:\n%s", want, out)
	}
}

func TestInferRealizationRejectsConcreteArgs(t *testing.T) {
	testCases := []struct {
		name string
		impl string
	}{
		{"generic_path_arg", "implkind for B { type Of<Result<E>> = E; }"},
		{"tuple_arg", "implkind for B { type Of<(A, C)> = A; }"},
		{"qualified_path_arg", "implkind for B { type Of<std::string::String> = String; }"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codegen.InferRealization(realization(t, tc.impl))
			if err == nil {
				t.Fatal("expected an inference error")
			}
			if err.Code != diagnostics.ErrC001 {
				t.Errorf("expected %s, got %s (%s)", diagnostics.ErrC001, err.Code, err.Error())
			}
		})
	}
}

func TestExpanderProcessor(t *testing.T) {
	source := "kind { type Of<T>; }\n" +
		"defkind { type Of<T>; }\n" +
		"apply(brand: VecBrand, signature: (T))\n"

	ctx := &pipeline.Context{FilePath: "test.kind", SourceCode: source}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	ctx = (&codegen.ExpanderProcessor{}).Process(ctx)

	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected errors: %s", ctx.Errors[0].Error())
	}
	if len(ctx.Expansions) != 3 {
		t.Fatalf("expected 3 expansions, got %d", len(ctx.Expansions))
	}

	name := ctx.Expansions[0]
	if !strings.HasPrefix(name, "Kind_") || strings.ContainsAny(name, " {}\n") {
		t.Errorf("kind statement must expand to the bare name, got %q", name)
	}
	if !strings.HasPrefix(ctx.Expansions[1], "pub trait "+name) {
		t.Errorf("defkind of the same shape must declare %q, got %q", name, ctx.Expansions[1])
	}
	if !strings.Contains(ctx.Expansions[2], name) {
		t.Errorf("application of the same shape must reference %q, got %q", name, ctx.Expansions[2])
	}
}

func TestExpanderReportsInferenceErrors(t *testing.T) {
	source := "implkind for B { type Of<Result<E>> = E; }\nkind { type Of<T>; }\n"

	ctx := &pipeline.Context{FilePath: "test.kind", SourceCode: source}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	ctx = (&codegen.ExpanderProcessor{}).Process(ctx)

	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(ctx.Errors))
	}
	if ctx.Errors[0].Code != diagnostics.ErrC001 {
		t.Errorf("expected %s, got %s", diagnostics.ErrC001, ctx.Errors[0].Code)
	}
	if ctx.Errors[0].File != "test.kind" {
		t.Errorf("error should carry the file path, got %q", ctx.Errors[0].File)
	}
	if len(ctx.Expansions) != 1 {
		t.Fatalf("the healthy statement must still expand, got %d expansions", len(ctx.Expansions))
	}
}
