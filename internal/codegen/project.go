package codegen

import (
	"strings"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/config"
)

// Project emits a qualified member projection for an application:
// `<Brand as Kind_x>::Of<'a, String>`. With the unified signature form
// the interface name is derived from the shape view and the argument
// list from the value view of the same parameter list; with the
// explicit form the name is taken verbatim and the lists are used as
// given. A missing output selector means the default member.
func Project(st *ast.ApplyStatement) string {
	member := st.Output
	if member == "" {
		member = config.DefaultMemberName
	}

	var name string
	var args []string
	if st.Signature != nil {
		name = InterfaceName(signatureShape(st.Signature, member))
		args = signatureValues(st.Signature)
	} else {
		name = st.Kind.String()
		for _, sp := range st.Scopes {
			args = append(args, "'"+sp.Name)
		}
		for _, ty := range st.Types {
			args = append(args, ty.String())
		}
	}

	s := "<" + st.Brand.String() + " as " + name + ">::" + member
	if len(args) > 0 {
		s += "<" + strings.Join(args, ", ") + ">"
	}
	return s
}

// signatureShape builds the single-member signature a unified
// application describes. Parameter "names" are the spelled values;
// since canonicalization erases names, only the arity, the bound sets
// and cross-references among them reach the interface name.
func signatureShape(sig *ast.UnifiedSignature, member string) *ast.Signature {
	m := &ast.Member{Token: sig.Token, Name: member, Output: sig.Output}
	for _, p := range sig.Params {
		if p.Scope != nil {
			m.Scopes = append(m.Scopes, p.Scope)
			continue
		}
		m.Types = append(m.Types, &ast.TypeParam{
			Token:  p.Token,
			Name:   p.Type.String(),
			Bounds: p.Bounds,
		})
	}
	return &ast.Signature{Members: []*ast.Member{m}}
}

// signatureValues renders the value view: scopes first, then types,
// matching the slot order of the member the shape view declares.
// Bounds are shape-only and never reach the argument list.
func signatureValues(sig *ast.UnifiedSignature) []string {
	var args []string
	for _, p := range sig.Params {
		if p.Scope != nil {
			args = append(args, "'"+p.Scope.Name)
		}
	}
	for _, p := range sig.Params {
		if p.Type != nil {
			args = append(args, p.Type.String())
		}
	}
	return args
}
