package codegen

import (
	"fmt"
	"strings"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/diagnostics"
)

// InferRealization reconstructs the signature a realization block
// implements. Each binding's argument list gives the member's parameter
// shape; bounds are gathered from three places with equal weight: the
// argument's inline bounds, the header generic's bounds, and the where
// clause. A type argument that is not a bare parameter name cannot be
// classified against the header generics and is reported at the binding.
func InferRealization(st *ast.ImplKindStatement) (*ast.Signature, *diagnostics.DiagnosticError) {
	headerBounds := make(map[string][]ast.Bound)
	for _, hp := range st.Generics {
		if hp.Type != nil && len(hp.Type.Bounds) > 0 {
			headerBounds[hp.Type.Name] = hp.Type.Bounds
		}
	}
	whereBounds := make(map[string][]ast.Bound)
	for _, pred := range st.Where {
		whereBounds[pred.Name] = append(whereBounds[pred.Name], pred.Bounds...)
	}

	sig := &ast.Signature{}
	for _, binding := range st.Bindings {
		m := &ast.Member{Token: binding.Token, Name: binding.Name, Output: binding.Output}
		for _, arg := range binding.Args {
			if arg.Scope != nil {
				m.Scopes = append(m.Scopes, arg.Scope)
				continue
			}
			path, ok := arg.Type.(*ast.PathType)
			if !ok || !path.IsBareName() {
				return nil, diagnostics.NewError(
					diagnostics.ErrC001, arg.Token,
					fmt.Sprintf("cannot infer member '%s': argument '%s' is not a parameter name",
						binding.Name, arg.Type.String()),
				)
			}
			name := path.Segments[0].Name
			bounds := mergeBounds(arg.Bounds, headerBounds[name], whereBounds[name])
			m.Types = append(m.Types, &ast.TypeParam{Token: arg.Token, Name: name, Bounds: bounds})
		}
		sig.Members = append(sig.Members, m)
	}
	return sig, nil
}

// mergeBounds concatenates bound sets, dropping textual duplicates so a
// bound stated both inline and in the where clause counts once. Sets are
// unordered downstream; only membership matters.
func mergeBounds(sets ...[]ast.Bound) []ast.Bound {
	var merged []ast.Bound
	seen := map[string]bool{}
	for _, set := range sets {
		for _, b := range set {
			key := b.String()
			if !seen[key] {
				seen[key] = true
				merged = append(merged, b)
			}
		}
	}
	return merged
}

// EmitRealization emits the impl block for a realization. The name must
// come from the signature InferRealization reconstructed; the emitted
// header, where clause and binding bodies keep the author's spelling.
func EmitRealization(st *ast.ImplKindStatement, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "/// Generated implementation of `%s` for `%s`.\n", name, st.Brand.String())

	b.WriteString("impl")
	if len(st.Generics) > 0 {
		parts := make([]string, len(st.Generics))
		for i, hp := range st.Generics {
			parts[i] = formatHeaderParam(hp)
		}
		b.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	b.WriteString(" " + name + " for " + st.Brand.String())
	if len(st.Where) > 0 {
		preds := make([]string, len(st.Where))
		for i, pred := range st.Where {
			preds[i] = pred.Name + ": " + ast.FormatBounds(pred.Bounds)
		}
		b.WriteString(" where " + strings.Join(preds, ", "))
	}
	b.WriteString(" {\n")

	for _, binding := range st.Bindings {
		b.WriteString("    type " + binding.Name)
		if len(binding.Args) > 0 {
			args := make([]string, len(binding.Args))
			for i, arg := range binding.Args {
				args[i] = formatBindingArg(arg)
			}
			b.WriteString("<" + strings.Join(args, ", ") + ">")
		}
		if len(binding.Output) > 0 {
			b.WriteString(": " + ast.FormatBounds(binding.Output))
		}
		b.WriteString(" = " + binding.Target.String() + ";\n")
	}
	b.WriteString("}")
	return b.String()
}

func formatHeaderParam(hp *ast.HeaderParam) string {
	if hp.Scope != nil {
		return "'" + hp.Scope.Name
	}
	if len(hp.Type.Bounds) == 0 {
		return hp.Type.Name
	}
	return hp.Type.Name + ": " + ast.FormatBounds(hp.Type.Bounds)
}

func formatBindingArg(arg *ast.BindingArg) string {
	var s string
	if arg.Scope != nil {
		s = "'" + arg.Scope.Name
	} else {
		s = arg.Type.String()
	}
	if len(arg.Bounds) > 0 {
		s += ": " + ast.FormatBounds(arg.Bounds)
	}
	return s
}
