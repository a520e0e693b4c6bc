// Package canonical reduces a kind signature to its unique canonical
// form: a serialization that is invariant under parameter renaming and
// under reordering of bound sets and members, but sensitive to the
// position of every parameter. The canonical form is the sole input to
// interface naming; two call sites agree on a name exactly when their
// signatures canonicalize identically.
package canonical

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/kindgen/internal/ast"
)

// Member lines are joined with a newline, which no token can contain,
// so member boundaries are always unambiguous.
const memberSeparator = "\n"

// Canonicalize serializes a signature to its canonical form. It is
// total: any parsed signature canonicalizes without error.
//
// Members are sorted by name to erase declaration order. Within one
// member, scope and type parameters are renumbered 0..n in two separate
// namespaces following declared order, so differently-named but
// identically-positioned parameters serialize identically. Bound sets
// are sorted after serialization to erase their input order.
func Canonicalize(sig *ast.Signature) string {
	members := make([]*ast.Member, len(sig.Members))
	copy(members, sig.Members)
	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	lines := make([]string, len(members))
	for i, m := range members {
		lines[i] = canonicalizeMember(m)
	}
	return strings.Join(lines, memberSeparator)
}

// renumberer maps the author's parameter names to canonical indices for
// one member. Scopes and types are independent namespaces.
type renumberer struct {
	scopes map[string]int
	types  map[string]int
}

func newRenumberer(m *ast.Member) *renumberer {
	r := &renumberer{
		scopes: make(map[string]int, len(m.Scopes)),
		types:  make(map[string]int, len(m.Types)),
	}
	for i, sp := range m.Scopes {
		r.scopes[sp.Name] = i
	}
	for i, tp := range m.Types {
		r.types[tp.Name] = i
	}
	return r
}

// canonicalizeMember serializes one member. Arity markers L{n} and T{m}
// are always present, so a zero-parameter member is distinguishable
// from every other arity. An unused parameter still consumes its index:
// no liveness elision happens here.
func canonicalizeMember(m *ast.Member) string {
	r := newRenumberer(m)

	parts := []string{
		fmt.Sprintf("L%d", len(m.Scopes)),
		fmt.Sprintf("T%d", len(m.Types)),
	}

	for i, tp := range m.Types {
		if len(tp.Bounds) > 0 {
			parts = append(parts, fmt.Sprintf("B%d%s", i, r.bounds(tp.Bounds)))
		}
	}
	if len(m.Output) > 0 {
		parts = append(parts, "O"+r.bounds(m.Output))
	}

	// The space separating name and shape cannot appear in any token.
	return m.Name + " " + strings.Join(parts, "_")
}

// bounds serializes a bound set: each bound to one token, tokens sorted
// lexicographically, then rejoined. Input order never survives.
func (r *renumberer) bounds(bounds []ast.Bound) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = r.bound(b)
	}
	sort.Strings(parts)
	return strings.Join(parts, "")
}

func (r *renumberer) bound(b ast.Bound) string {
	switch b := b.(type) {
	case *ast.ScopeBound:
		return r.scopeRef(b.Name)
	case *ast.TraitBound:
		return "t" + r.traitPath(b.Path)
	case *ast.FnBound:
		return "t" + b.Name + r.callable(b.Inputs, b.Output)
	default:
		// The Bound sum is closed; the parser cannot produce anything else.
		panic(fmt.Sprintf("canonical: unknown bound %T", b))
	}
}

// scopeRef substitutes a scope reference with its canonical index. A
// name not bound by the member's own parameter list is kept verbatim:
// it denotes an outer scope, and its spelling is then significant.
func (r *renumberer) scopeRef(name string) string {
	if idx, ok := r.scopes[name]; ok {
		return fmt.Sprintf("s#%d", idx)
	}
	return name
}

// traitPath serializes a path in trait position. The head is never a
// parameter reference; segments keep their full qualification so two
// traits sharing a trailing segment never collide.
func (r *renumberer) traitPath(path *ast.PathType) string {
	segs := make([]string, len(path.Segments))
	for i, seg := range path.Segments {
		segs[i] = r.segment(seg)
	}
	return strings.Join(segs, "::")
}

func (r *renumberer) segment(seg *ast.PathSegment) string {
	if len(seg.Args) == 0 {
		return seg.Name
	}
	args := make([]string, len(seg.Args))
	for i, a := range seg.Args {
		args[i] = r.genericArg(a)
	}
	return seg.Name + "<" + strings.Join(args, ",") + ">"
}

func (r *renumberer) genericArg(arg ast.GenericArg) string {
	switch arg := arg.(type) {
	case *ast.ScopeArg:
		return r.scopeRef(arg.Name)
	case *ast.TypeArg:
		return r.typeExpr(arg.Type)
	case *ast.AssocArg:
		return arg.Name + "=" + r.typeExpr(arg.Type)
	default:
		panic(fmt.Sprintf("canonical: unknown generic argument %T", arg))
	}
}

// typeExpr serializes a type expression. A bare single-segment path
// naming one of the member's type parameters becomes its canonical
// index; every other path keeps its full qualification verbatim.
func (r *renumberer) typeExpr(expr ast.TypeExpr) string {
	switch expr := expr.(type) {
	case *ast.ScopeExpr:
		return r.scopeRef(expr.Name)
	case *ast.PathType:
		if expr.IsBareName() {
			if idx, ok := r.types[expr.Segments[0].Name]; ok {
				return fmt.Sprintf("t#%d", idx)
			}
		}
		return r.traitPath(expr)
	case *ast.TupleType:
		elems := make([]string, len(expr.Elems))
		for i, e := range expr.Elems {
			elems[i] = r.typeExpr(e)
		}
		return "(" + strings.Join(elems, ",") + ")"
	case *ast.ListType:
		return "[" + r.typeExpr(expr.Elem) + "]"
	case *ast.FnType:
		return r.callable(expr.Inputs, expr.Output)
	default:
		panic(fmt.Sprintf("canonical: unknown type expression %T", expr))
	}
}

// callable serializes `(inputs)->output`; a missing output is the unit
// type, spelled explicitly so arity stays visible.
func (r *renumberer) callable(inputs []ast.TypeExpr, output ast.TypeExpr) string {
	ins := make([]string, len(inputs))
	for i, in := range inputs {
		ins[i] = r.typeExpr(in)
	}
	out := "()"
	if output != nil {
		out = r.typeExpr(output)
	}
	return "(" + strings.Join(ins, ",") + ")->" + out
}
