package canonical_test

import (
	"strings"
	"testing"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/canonical"
	"github.com/funvibe/kindgen/internal/lexer"
	"github.com/funvibe/kindgen/internal/parser"
	"github.com/funvibe/kindgen/internal/pipeline"
)

// parseSignature parses one defkind block and returns its signature.
func parseSignature(t *testing.T, decls string) *ast.Signature {
	t.Helper()
	ctx := &pipeline.Context{SourceCode: "defkind { " + decls + " }"}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse error in %q: %s", decls, ctx.Errors[0].Error())
	}
	st, ok := ctx.AstRoot.Statements[0].(*ast.DefKindStatement)
	if !ok {
		t.Fatalf("expected a defkind statement, got %T", ctx.AstRoot.Statements[0])
	}
	return st.Signature
}

func canon(t *testing.T, decls string) string {
	t.Helper()
	return canonical.Canonicalize(parseSignature(t, decls))
}

func TestCanonicalForm(t *testing.T) {
	testCases := []struct {
		name     string
		decls    string
		expected string
	}{
		{
			"scope_and_bounded_type",
			"type Of<'a, A: Clone + 'a>: 'a;",
			"Of L1_T1_B0s#0tClone_Os#0",
		},
		{
			"bare_member",
			"type Of;",
			"Of L0_T0",
		},
		{
			"unused_params_keep_indices",
			"type Of<'a, T>;",
			"Of L1_T1",
		},
		{
			"fn_bound_with_param_refs",
			"type Map<A, B>: Fn(A) -> B;",
			"Map L0_T2_OtFn(t#0)->t#1",
		},
		{
			"fn_bound_unit_output",
			"type Run<A>: Fn(A);",
			"Run L0_T1_OtFn(t#0)->()",
		},
		{
			"verbatim_path",
			"type Of<T: std::fmt::Debug>;",
			"Of L0_T1_B0tstd::fmt::Debug",
		},
		{
			"assoc_arg",
			"type It<T: Iterator<Item = T>>;",
			"It L0_T1_B0tIterator<Item=t#0>",
		},
		{
			"outer_scope_kept_verbatim",
			"type Of<T: 'static>;",
			"Of L0_T1_B0static",
		},
		{
			"members_sorted_by_name",
			"type Of<T>; type Err<E: Debug>;",
			"Err L0_T1_B0tDebug\nOf L0_T1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canon(t, tc.decls); got != tc.expected {
				t.Errorf("canonical form mismatch:\nexpected %q\ngot      %q", tc.expected, got)
			}
		})
	}
}

// Parameter names never reach the canonical form; only positions and
// cross-references do.
func TestRenamingInvariance(t *testing.T) {
	testCases := []struct {
		name string
		a, b string
	}{
		{
			"scope_and_type_names",
			"type Of<'a, A: Clone + 'a>: 'a;",
			"type Of<'x, Banana: Clone + 'x>: 'x;",
		},
		{
			"fn_bound_refs",
			"type Map<A, B>: Fn(A) -> B;",
			"type Map<X, Y>: Fn(X) -> Y;",
		},
		{
			"multi_scope",
			"type Of<'a, 'b, T: 'b>;",
			"type Of<'x, 'y, T: 'y>;",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if canon(t, tc.a) != canon(t, tc.b) {
				t.Errorf("renamed signatures must canonicalize identically:\n%q\n%q", canon(t, tc.a), canon(t, tc.b))
			}
		})
	}
}

// The reference structure is identity-relevant even when names are not:
// 'a-bound-to-first-scope differs from 'a-bound-to-second-scope.
func TestReferencePositionsMatter(t *testing.T) {
	a := canon(t, "type Of<'a, 'b, T: 'a>;")
	b := canon(t, "type Of<'a, 'b, T: 'b>;")
	if a == b {
		t.Errorf("bounds referencing different scope positions must differ, both were %q", a)
	}
}

func TestBoundOrderInvariance(t *testing.T) {
	a := canon(t, "type Of<'a, T: Clone + 'a + Debug>;")
	b := canon(t, "type Of<'a, T: Debug + 'a + Clone>;")
	if a != b {
		t.Errorf("bound set order must not matter:\n%q\n%q", a, b)
	}
}

func TestMemberOrderInvariance(t *testing.T) {
	a := canon(t, "type Of<T>; type Err<E>;")
	b := canon(t, "type Err<E>; type Of<T>;")
	if a != b {
		t.Errorf("member declaration order must not matter:\n%q\n%q", a, b)
	}
}

func TestArityDistinctions(t *testing.T) {
	forms := []string{
		"type Of;",
		"type Of<T>;",
		"type Of<T, U>;",
		"type Of<'a>;",
		"type Of<'a, T>;",
	}
	seen := map[string]string{}
	for _, decls := range forms {
		c := canon(t, decls)
		if prev, ok := seen[c]; ok {
			t.Errorf("distinct arities collided: %q and %q both canonicalize to %q", prev, decls, c)
		}
		seen[c] = decls
	}
}

func TestPathFidelity(t *testing.T) {
	a := canon(t, "type Of<T: std::fmt::Debug>;")
	b := canon(t, "type Of<T: fmt::Debug>;")
	c := canon(t, "type Of<T: Debug>;")
	if a == b || b == c || a == c {
		t.Errorf("differently-qualified paths must not collide: %q %q %q", a, b, c)
	}
}

// Identity must not leak across members: a type parameter of one member
// is an opaque name inside another.
func TestMemberNamespacesAreIndependent(t *testing.T) {
	a := canon(t, "type Of<T>; type Err<E: Fn(T) -> E>;")
	b := canon(t, "type Of<U>; type Err<E: Fn(T) -> E>;")
	if a != b {
		t.Errorf("renaming one member's parameter must not affect another member:\n%q\n%q", a, b)
	}
}

func TestDeterminism(t *testing.T) {
	sig := parseSignature(t, "type Of<'a, A: Clone + 'a>: 'a; type Map<A, B>: Fn(A) -> B;")
	first := canonical.Canonicalize(sig)
	for i := 0; i < 100; i++ {
		if got := canonical.Canonicalize(sig); got != first {
			t.Fatalf("canonicalization must be deterministic, run %d gave %q (want %q)", i, got, first)
		}
	}
}

// Canonicalization reads the tree, never rewrites it.
func TestNoMutation(t *testing.T) {
	sig := parseSignature(t, "type Of<T>; type Err<E>;")
	namesBefore := []string{sig.Members[0].Name, sig.Members[1].Name}
	canonical.Canonicalize(sig)
	if sig.Members[0].Name != namesBefore[0] || sig.Members[1].Name != namesBefore[1] {
		t.Error("canonicalization reordered the caller's member slice")
	}
}

func TestMemberSeparatorUnforgeable(t *testing.T) {
	c := canon(t, "type Of<T>; type Err<E>;")
	if strings.Count(c, "\n") != 1 {
		t.Errorf("two members must serialize as exactly two lines, got %q", c)
	}
}
