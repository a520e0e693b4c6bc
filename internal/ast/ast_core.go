// Package ast defines the descriptor trees produced by the parser: kind
// signatures (members with scope and type parameters), realization blocks
// and application forms. Identity-relevant normalization lives in
// internal/canonical; nodes here keep the author's names and order.
package ast

import (
	"strings"

	"github.com/funvibe/kindgen/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	GetToken() token.Token
}

// Statement is one top-level form in a kind-definition file.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of every parsed file.
type Program struct {
	File       string
	Statements []Statement
}

// Signature describes a kind: a set of members keyed by name.
// Member names are unique; the parser rejects duplicates.
type Signature struct {
	Members []*Member
}

// Member is one named slot of a signature with its own parameters
// and output bounds.
type Member struct {
	Token  token.Token // the member name token
	Name   string
	Scopes []*ScopeParam
	Types  []*TypeParam
	Output []Bound
}

// ScopeParam is an opaque lifetime-like parameter.
type ScopeParam struct {
	Token token.Token
	Name  string
}

// TypeParam is a value-like parameter carrying an unordered bound set.
type TypeParam struct {
	Token  token.Token
	Name   string
	Bounds []Bound
}

// KindStatement is the name-only form: kind { decls }.
// It expands to the bare interface name.
type KindStatement struct {
	Token     token.Token
	Signature *Signature
}

func (ks *KindStatement) statementNode()        {}
func (ks *KindStatement) GetToken() token.Token { return ks.Token }

// DefKindStatement declares the interface: defkind { decls }.
type DefKindStatement struct {
	Token     token.Token
	Signature *Signature
}

func (ds *DefKindStatement) statementNode()        {}
func (ds *DefKindStatement) GetToken() token.Token { return ds.Token }

// HeaderParam is one generic parameter of a realization header.
// Exactly one of Scope and Type is set.
type HeaderParam struct {
	Token token.Token
	Scope *ScopeParam
	Type  *TypeParam
}

// WherePredicate is one `Name: bounds` entry of a realization's
// where clause.
type WherePredicate struct {
	Token  token.Token
	Name   string
	Bounds []Bound
}

// BindingArg is one concrete argument of a member binding, before the
// inferencer classifies it. Scope and Type are mutually exclusive;
// Bounds carries optional inline bounds on a type argument.
type BindingArg struct {
	Token  token.Token
	Scope  *ScopeParam
	Type   TypeExpr
	Bounds []Bound
}

// MemberBinding is one `type Name<args>: bounds = target;` entry of a
// realization block.
type MemberBinding struct {
	Token  token.Token
	Name   string
	Args   []*BindingArg
	Output []Bound
	Target TypeExpr
}

// ImplKindStatement is the realization form:
// implkind <G: B> for Brand where G: C { bindings }.
type ImplKindStatement struct {
	Token    token.Token
	Generics []*HeaderParam
	Brand    TypeExpr
	Where    []*WherePredicate
	Bindings []*MemberBinding
}

func (is *ImplKindStatement) statementNode()        {}
func (is *ImplKindStatement) GetToken() token.Token { return is.Token }

// SigParam is one entry of a unified application signature. It carries
// both the shape view (Bounds) and the value view (Scope or Type).
type SigParam struct {
	Token  token.Token
	Scope  *ScopeParam
	Type   TypeExpr
	Bounds []Bound
}

// UnifiedSignature is the dual-purpose application form:
// ('a, T: Clone) -> Debug.
type UnifiedSignature struct {
	Token  token.Token
	Params []*SigParam
	Output []Bound
}

// ApplyStatement is the projection form. Exactly one of Signature and
// Kind is set; the parser reports mixing the two as one conflict error.
type ApplyStatement struct {
	Token     token.Token
	Brand     TypeExpr
	Signature *UnifiedSignature
	Kind      *PathType
	Scopes    []*ScopeParam // explicit form: lifetimes: (...)
	Types     []TypeExpr    // explicit form: types: (...)
	Output    string        // member selector, "" means the default
}

func (as *ApplyStatement) statementNode()        {}
func (as *ApplyStatement) GetToken() token.Token { return as.Token }

// FormatBounds renders a bound list in source style: `Clone + 'a`.
func FormatBounds(bounds []Bound) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = b.String()
	}
	return strings.Join(parts, " + ")
}

// FormatParams renders a member's parameter list in source style,
// scopes first: `'a, T: Clone + 'a`.
func (m *Member) FormatParams() string {
	var parts []string
	for _, sp := range m.Scopes {
		parts = append(parts, "'"+sp.Name)
	}
	for _, tp := range m.Types {
		if len(tp.Bounds) == 0 {
			parts = append(parts, tp.Name)
		} else {
			parts = append(parts, tp.Name+": "+FormatBounds(tp.Bounds))
		}
	}
	return strings.Join(parts, ", ")
}
