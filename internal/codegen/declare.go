// Package codegen turns parsed statements into expanded output text.
// All three consumers name interfaces the same way: canonicalize the
// signature, intern the canonical form. Nothing here talks to any
// registry; agreement between call sites is structural.
package codegen

import (
	"strings"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/canonical"
	"github.com/funvibe/kindgen/internal/naming"
)

// InterfaceName derives the interned interface name of a signature.
func InterfaceName(sig *ast.Signature) string {
	return naming.Intern(canonical.Canonicalize(sig))
}

// SynthesizeDeclaration emits the interface declaration for a signature.
// The name comes from the canonical form, but the emitted member slots
// keep the author's parameter names and declaration order: identity is
// normalized, the generated source stays readable.
func SynthesizeDeclaration(sig *ast.Signature) string {
	var b strings.Builder
	b.WriteString("pub trait ")
	b.WriteString(InterfaceName(sig))
	b.WriteString(" {\n")
	for _, m := range sig.Members {
		b.WriteString("    type ")
		b.WriteString(m.Name)
		if params := m.FormatParams(); params != "" {
			b.WriteString("<")
			b.WriteString(params)
			b.WriteString(">")
		}
		if len(m.Output) > 0 {
			b.WriteString(": ")
			b.WriteString(ast.FormatBounds(m.Output))
		}
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
