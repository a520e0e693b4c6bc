package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/kindgen/internal/ast"
)

// CodePrinter reconstructs source text from parsed statements. The
// output is normalized (one member per line, single spaces) but keeps
// the author's names and declaration order; it is not the canonical
// identity form.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) PrintProgram(prog *ast.Program) {
	for i, stmt := range prog.Statements {
		if i > 0 {
			p.write("\n")
		}
		p.printStatement(stmt)
		p.write("\n")
	}
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	switch st := stmt.(type) {
	case *ast.KindStatement:
		p.write("kind ")
		p.printSignature(st.Signature)
	case *ast.DefKindStatement:
		p.write("defkind ")
		p.printSignature(st.Signature)
	case *ast.ImplKindStatement:
		p.printImplKind(st)
	case *ast.ApplyStatement:
		p.printApply(st)
	}
}

func (p *CodePrinter) printSignature(sig *ast.Signature) {
	p.write("{\n")
	p.indent++
	for _, m := range sig.Members {
		p.writeIndent()
		p.write("type " + m.Name)
		if params := m.FormatParams(); params != "" {
			p.write("<" + params + ">")
		}
		if len(m.Output) > 0 {
			p.write(": " + ast.FormatBounds(m.Output))
		}
		p.write(";\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printImplKind(st *ast.ImplKindStatement) {
	p.write("implkind")
	if len(st.Generics) > 0 {
		parts := make([]string, len(st.Generics))
		for i, hp := range st.Generics {
			if hp.Scope != nil {
				parts[i] = "'" + hp.Scope.Name
			} else if len(hp.Type.Bounds) == 0 {
				parts[i] = hp.Type.Name
			} else {
				parts[i] = hp.Type.Name + ": " + ast.FormatBounds(hp.Type.Bounds)
			}
		}
		p.write(" <" + strings.Join(parts, ", ") + ">")
	}
	p.write(" for " + st.Brand.String())
	if len(st.Where) > 0 {
		preds := make([]string, len(st.Where))
		for i, pred := range st.Where {
			preds[i] = pred.Name + ": " + ast.FormatBounds(pred.Bounds)
		}
		p.write(" where " + strings.Join(preds, ", "))
	}
	p.write(" {\n")
	p.indent++
	for _, b := range st.Bindings {
		p.writeIndent()
		p.write("type " + b.Name)
		if len(b.Args) > 0 {
			args := make([]string, len(b.Args))
			for i, arg := range b.Args {
				switch {
				case arg.Scope != nil:
					args[i] = "'" + arg.Scope.Name
				case len(arg.Bounds) > 0:
					args[i] = arg.Type.String() + ": " + ast.FormatBounds(arg.Bounds)
				default:
					args[i] = arg.Type.String()
				}
			}
			p.write("<" + strings.Join(args, ", ") + ">")
		}
		if len(b.Output) > 0 {
			p.write(": " + ast.FormatBounds(b.Output))
		}
		p.write(" = " + b.Target.String() + ";\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printApply(st *ast.ApplyStatement) {
	var parts []string
	parts = append(parts, "brand: "+st.Brand.String())

	if st.Signature != nil {
		params := make([]string, len(st.Signature.Params))
		for i, param := range st.Signature.Params {
			switch {
			case param.Scope != nil:
				params[i] = "'" + param.Scope.Name
			case len(param.Bounds) > 0:
				params[i] = param.Type.String() + ": " + ast.FormatBounds(param.Bounds)
			default:
				params[i] = param.Type.String()
			}
		}
		sig := "(" + strings.Join(params, ", ") + ")"
		if len(st.Signature.Output) > 0 {
			sig += " -> " + ast.FormatBounds(st.Signature.Output)
		}
		parts = append(parts, "signature: "+sig)
	}

	if st.Kind != nil {
		parts = append(parts, "kind: "+st.Kind.String())
		scopes := make([]string, len(st.Scopes))
		for i, sp := range st.Scopes {
			scopes[i] = "'" + sp.Name
		}
		parts = append(parts, "lifetimes: ("+strings.Join(scopes, ", ")+")")
		types := make([]string, len(st.Types))
		for i, ty := range st.Types {
			types[i] = ty.String()
		}
		parts = append(parts, "types: ("+strings.Join(types, ", ")+")")
	}

	if st.Output != "" {
		parts = append(parts, "output: "+st.Output)
	}
	p.write("apply(" + strings.Join(parts, ", ") + ")")
}
