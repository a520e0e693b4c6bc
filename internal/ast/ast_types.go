package ast

import (
	"strings"

	"github.com/funvibe/kindgen/internal/token"
)

// Bound is one constraint on a parameter or an output slot.
// Bound sets are unordered; order never affects identity.
type Bound interface {
	Node
	boundNode()
	String() string
}

// ScopeBound is a reference to a scope parameter: 'a.
type ScopeBound struct {
	Token token.Token
	Name  string
}

func (sb *ScopeBound) boundNode()            {}
func (sb *ScopeBound) GetToken() token.Token { return sb.Token }
func (sb *ScopeBound) String() string        { return "'" + sb.Name }

// TraitBound is a fully-qualified path with generic arguments:
// std::fmt::Debug, Iterator<Item = String>.
type TraitBound struct {
	Token token.Token
	Path  *PathType
}

func (tb *TraitBound) boundNode()            {}
func (tb *TraitBound) GetToken() token.Token { return tb.Token }
func (tb *TraitBound) String() string        { return tb.Path.String() }

// FnBound is a callable shape: Fn(A, B) -> C. A nil Output means the
// unit type.
type FnBound struct {
	Token  token.Token
	Name   string
	Inputs []TypeExpr
	Output TypeExpr
}

func (fb *FnBound) boundNode()            {}
func (fb *FnBound) GetToken() token.Token { return fb.Token }
func (fb *FnBound) String() string {
	inputs := make([]string, len(fb.Inputs))
	for i, in := range fb.Inputs {
		inputs[i] = in.String()
	}
	s := fb.Name + "(" + strings.Join(inputs, ", ") + ")"
	if fb.Output != nil {
		s += " -> " + fb.Output.String()
	}
	return s
}

// TypeExpr is a concrete type expression.
type TypeExpr interface {
	Node
	typeExprNode()
	String() string
}

// GenericArg is one generic argument of a path segment: a scope, a type,
// or an associated-member-equality binding.
type GenericArg interface {
	Node
	genericArgNode()
	String() string
}

// ScopeArg is a scope used as a generic argument: Ref<'a, T>.
type ScopeArg struct {
	Token token.Token
	Name  string
}

func (sa *ScopeArg) genericArgNode()       {}
func (sa *ScopeArg) GetToken() token.Token { return sa.Token }
func (sa *ScopeArg) String() string        { return "'" + sa.Name }

// TypeArg is a type used as a generic argument.
type TypeArg struct {
	Type TypeExpr
}

func (ta *TypeArg) genericArgNode()       {}
func (ta *TypeArg) GetToken() token.Token { return ta.Type.GetToken() }
func (ta *TypeArg) String() string        { return ta.Type.String() }

// AssocArg is an associated-member binding: Iterator<Item = String>.
type AssocArg struct {
	Token token.Token
	Name  string
	Type  TypeExpr
}

func (aa *AssocArg) genericArgNode()       {}
func (aa *AssocArg) GetToken() token.Token { return aa.Token }
func (aa *AssocArg) String() string        { return aa.Name + " = " + aa.Type.String() }

// PathSegment is one `Name<args>` step of a path.
type PathSegment struct {
	Name string
	Args []GenericArg
}

func (ps *PathSegment) String() string {
	if len(ps.Args) == 0 {
		return ps.Name
	}
	args := make([]string, len(ps.Args))
	for i, a := range ps.Args {
		args[i] = a.String()
	}
	return ps.Name + "<" + strings.Join(args, ", ") + ">"
}

// PathType is a possibly-qualified name: std::fmt::Debug, Option<T>.
// A bare single-segment path may resolve to a parameter reference during
// canonicalization; the parser does not distinguish.
type PathType struct {
	Token    token.Token
	Segments []*PathSegment
}

func (pt *PathType) typeExprNode()         {}
func (pt *PathType) GetToken() token.Token { return pt.Token }
func (pt *PathType) String() string {
	parts := make([]string, len(pt.Segments))
	for i, seg := range pt.Segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, "::")
}

// IsBareName reports whether the path is a single unparameterized
// segment, i.e. a candidate parameter reference.
func (pt *PathType) IsBareName() bool {
	return len(pt.Segments) == 1 && len(pt.Segments[0].Args) == 0
}

// TupleType is an ordered composite: (A, B). The empty tuple is the
// unit type.
type TupleType struct {
	Token token.Token
	Elems []TypeExpr
}

func (tt *TupleType) typeExprNode()         {}
func (tt *TupleType) GetToken() token.Token { return tt.Token }
func (tt *TupleType) String() string {
	elems := make([]string, len(tt.Elems))
	for i, e := range tt.Elems {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// ListType is a homogeneous composite: [A].
type ListType struct {
	Token token.Token
	Elem  TypeExpr
}

func (lt *ListType) typeExprNode()         {}
func (lt *ListType) GetToken() token.Token { return lt.Token }
func (lt *ListType) String() string        { return "[" + lt.Elem.String() + "]" }

// FnType is a callable type: (A, B) -> C.
type FnType struct {
	Token  token.Token
	Inputs []TypeExpr
	Output TypeExpr
}

func (ft *FnType) typeExprNode()         {}
func (ft *FnType) GetToken() token.Token { return ft.Token }
func (ft *FnType) String() string {
	inputs := make([]string, len(ft.Inputs))
	for i, in := range ft.Inputs {
		inputs[i] = in.String()
	}
	return "(" + strings.Join(inputs, ", ") + ") -> " + ft.Output.String()
}

// ScopeExpr is a scope token in a type-value position, e.g. the concrete
// scope arguments of an application.
type ScopeExpr struct {
	Token token.Token
	Name  string
}

func (se *ScopeExpr) typeExprNode()         {}
func (se *ScopeExpr) GetToken() token.Token { return se.Token }
func (se *ScopeExpr) String() string        { return "'" + se.Name }
