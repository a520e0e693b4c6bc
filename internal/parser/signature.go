package parser

import (
	"fmt"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/token"
)

// parseKindStatement parses `kind { decls }`, the name-only form.
func (p *Parser) parseKindStatement() *ast.KindStatement {
	st := &ast.KindStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	sig := p.parseSignature()
	if sig == nil {
		return nil
	}
	st.Signature = sig
	return st
}

// parseDefKindStatement parses `defkind { decls }`, the declaring form.
func (p *Parser) parseDefKindStatement() *ast.DefKindStatement {
	st := &ast.DefKindStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	sig := p.parseSignature()
	if sig == nil {
		return nil
	}
	st.Signature = sig
	return st
}

// parseSignature parses the member declarations of a braced signature
// block. Called with curToken on '{'; leaves curToken on '}'.
func (p *Parser) parseSignature() *ast.Signature {
	sig := &ast.Signature{}
	seen := map[string]bool{}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.TYPE) {
			return nil
		}
		m := p.parseMemberDecl()
		if m == nil {
			return nil
		}
		if seen[m.Name] {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP002,
				m.Token,
				fmt.Sprintf("duplicate member name '%s' in signature", m.Name),
			))
			return nil
		}
		seen[m.Name] = true
		sig.Members = append(sig.Members, m)
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if len(sig.Members) == 0 {
		p.syntaxError(p.curToken, "signature must declare at least one member")
		return nil
	}
	return sig
}

// parseMemberDecl parses `type Name<params>: bounds;`. Called with
// curToken on 'type'; leaves curToken on ';'.
func (p *Parser) parseMemberDecl() *ast.Member {
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	m := &ast.Member{Token: p.curToken, Name: p.curToken.Literal}

	if p.peekTokenIs(token.LT) {
		p.nextToken() // <
		if !p.parseParamList(m) {
			return nil
		}
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken() // :
		p.nextToken()
		bounds := p.parseBounds()
		if bounds == nil {
			return nil
		}
		m.Output = bounds
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return m
}

// parseParamList parses the `<...>` parameter list of a member
// declaration. Scope and type parameters may be interleaved; source
// order within each namespace is preserved and significant. Called with
// curToken on '<'; leaves curToken on '>'.
func (p *Parser) parseParamList(m *ast.Member) bool {
	if p.peekTokenIs(token.GT) {
		p.nextToken()
		return true
	}

	for {
		p.nextToken()
		switch p.curToken.Type {
		case token.SCOPE:
			m.Scopes = append(m.Scopes, &ast.ScopeParam{Token: p.curToken, Name: p.curToken.Literal})
		case token.IDENT:
			tp := &ast.TypeParam{Token: p.curToken, Name: p.curToken.Literal}
			if p.peekTokenIs(token.COLON) {
				p.nextToken() // :
				p.nextToken()
				bounds := p.parseBounds()
				if bounds == nil {
					return false
				}
				tp.Bounds = bounds
			}
			m.Types = append(m.Types, tp)
		default:
			p.syntaxError(p.curToken, "expected a scope or type parameter")
			return false
		}

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		return p.expectPeek(token.GT)
	}
}
