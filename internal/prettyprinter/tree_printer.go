// Package prettyprinter renders parsed statements two ways: TreePrinter
// shows the node structure for snapshots and the -ast debug flag,
// CodePrinter reconstructs canonical-looking source text.
package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/funvibe/kindgen/internal/ast"
)

// TreePrinter renders the AST as an indented tree, one node per line.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) nested(fn func()) {
	p.indent++
	fn()
	p.indent--
}

func (p *TreePrinter) PrintProgram(prog *ast.Program) {
	p.line("Program")
	p.nested(func() {
		for _, stmt := range prog.Statements {
			p.printStatement(stmt)
		}
	})
}

func (p *TreePrinter) printStatement(stmt ast.Statement) {
	switch st := stmt.(type) {
	case *ast.KindStatement:
		p.line("Kind")
		p.nested(func() { p.printSignature(st.Signature) })
	case *ast.DefKindStatement:
		p.line("DefKind")
		p.nested(func() { p.printSignature(st.Signature) })
	case *ast.ImplKindStatement:
		p.printImplKind(st)
	case *ast.ApplyStatement:
		p.printApply(st)
	default:
		p.line("Unknown(%T)", stmt)
	}
}

func (p *TreePrinter) printSignature(sig *ast.Signature) {
	for _, m := range sig.Members {
		p.line("Member(%s)", m.Name)
		p.nested(func() {
			for _, sp := range m.Scopes {
				p.line("Scope('%s)", sp.Name)
			}
			for _, tp := range m.Types {
				if len(tp.Bounds) == 0 {
					p.line("Type(%s)", tp.Name)
				} else {
					p.line("Type(%s: %s)", tp.Name, ast.FormatBounds(tp.Bounds))
				}
			}
			if len(m.Output) > 0 {
				p.line("Output(%s)", ast.FormatBounds(m.Output))
			}
		})
	}
}

func (p *TreePrinter) printImplKind(st *ast.ImplKindStatement) {
	p.line("ImplKind(%s)", st.Brand.String())
	p.nested(func() {
		for _, hp := range st.Generics {
			if hp.Scope != nil {
				p.line("Generic('%s)", hp.Scope.Name)
			} else if len(hp.Type.Bounds) == 0 {
				p.line("Generic(%s)", hp.Type.Name)
			} else {
				p.line("Generic(%s: %s)", hp.Type.Name, ast.FormatBounds(hp.Type.Bounds))
			}
		}
		for _, pred := range st.Where {
			p.line("Where(%s: %s)", pred.Name, ast.FormatBounds(pred.Bounds))
		}
		for _, b := range st.Bindings {
			p.line("Binding(%s = %s)", b.Name, b.Target.String())
			p.nested(func() {
				for _, arg := range b.Args {
					switch {
					case arg.Scope != nil:
						p.line("Arg('%s)", arg.Scope.Name)
					case len(arg.Bounds) > 0:
						p.line("Arg(%s: %s)", arg.Type.String(), ast.FormatBounds(arg.Bounds))
					default:
						p.line("Arg(%s)", arg.Type.String())
					}
				}
				if len(b.Output) > 0 {
					p.line("Output(%s)", ast.FormatBounds(b.Output))
				}
			})
		}
	})
}

func (p *TreePrinter) printApply(st *ast.ApplyStatement) {
	p.line("Apply(%s)", st.Brand.String())
	p.nested(func() {
		if st.Signature != nil {
			p.line("Signature")
			p.nested(func() {
				for _, param := range st.Signature.Params {
					switch {
					case param.Scope != nil:
						p.line("Param('%s)", param.Scope.Name)
					case len(param.Bounds) > 0:
						p.line("Param(%s: %s)", param.Type.String(), ast.FormatBounds(param.Bounds))
					default:
						p.line("Param(%s)", param.Type.String())
					}
				}
				if len(st.Signature.Output) > 0 {
					p.line("Output(%s)", ast.FormatBounds(st.Signature.Output))
				}
			})
		}
		if st.Kind != nil {
			p.line("KindRef(%s)", st.Kind.String())
			for _, sp := range st.Scopes {
				p.line("Lifetime('%s)", sp.Name)
			}
			for _, ty := range st.Types {
				p.line("TypeArg(%s)", ty.String())
			}
		}
		if st.Output != "" {
			p.line("Member(%s)", st.Output)
		}
	})
}
