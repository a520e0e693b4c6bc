package parser

import (
	"fmt"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/token"
)

// parseImplKindStatement parses the realization dialect:
//
//	implkind <E: Clone> for ResultBrand<E> where E: std::fmt::Debug {
//	    type Of<A> = Result<A, E>;
//	}
//
// Header generics and the where clause are optional.
func (p *Parser) parseImplKindStatement() *ast.ImplKindStatement {
	st := &ast.ImplKindStatement{Token: p.curToken}

	if p.peekTokenIs(token.LT) {
		p.nextToken() // <
		if !p.parseHeaderParams(st) {
			return nil
		}
	}

	if !p.expectPeek(token.FOR) {
		return nil
	}
	p.nextToken()
	brand := p.parseTypeExpr()
	if brand == nil {
		return nil
	}
	st.Brand = brand

	if p.peekTokenIs(token.WHERE) {
		p.nextToken() // where
		if !p.parseWhereClause(st) {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	seen := map[string]bool{}
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.TYPE) {
			return nil
		}
		b := p.parseMemberBinding()
		if b == nil {
			return nil
		}
		if seen[b.Name] {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP002,
				b.Token,
				fmt.Sprintf("duplicate member name '%s' in realization block", b.Name),
			))
			return nil
		}
		seen[b.Name] = true
		st.Bindings = append(st.Bindings, b)
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if len(st.Bindings) == 0 {
		p.syntaxError(p.curToken, "realization block must bind at least one member")
		return nil
	}
	return st
}

// parseHeaderParams parses the realization's own generic parameter list.
// Called with curToken on '<'; leaves curToken on '>'.
func (p *Parser) parseHeaderParams(st *ast.ImplKindStatement) bool {
	if p.peekTokenIs(token.GT) {
		p.nextToken()
		return true
	}

	for {
		p.nextToken()
		hp := &ast.HeaderParam{Token: p.curToken}
		switch p.curToken.Type {
		case token.SCOPE:
			hp.Scope = &ast.ScopeParam{Token: p.curToken, Name: p.curToken.Literal}
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
			hp.Type = tp
		default:
			p.syntaxError(p.curToken, "expected a scope or type parameter")
			return false
		}
		st.Generics = append(st.Generics, hp)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		return p.expectPeek(token.GT)
	}
}

// parseWhereClause parses `Name: bounds (, Name: bounds)*`. Called with
// curToken on 'where'; leaves curToken on the last bound.
func (p *Parser) parseWhereClause(st *ast.ImplKindStatement) bool {
	for {
		if !p.expectPeek(token.IDENT) {
			return false
		}
		pred := &ast.WherePredicate{Token: p.curToken, Name: p.curToken.Literal}
		if !p.expectPeek(token.COLON) {
			return false
		}
		p.nextToken()
		bounds := p.parseBounds()
		if bounds == nil {
			return false
		}
		pred.Bounds = bounds
		st.Where = append(st.Where, pred)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		return true
	}
}

// parseMemberBinding parses `type Name<args>: bounds = target;`. Called
// with curToken on 'type'; leaves curToken on ';'.
func (p *Parser) parseMemberBinding() *ast.MemberBinding {
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	b := &ast.MemberBinding{Token: p.curToken, Name: p.curToken.Literal}

	if p.peekTokenIs(token.LT) {
		p.nextToken() // <
		if !p.parseBindingArgs(b) {
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
		b.Output = bounds
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	target := p.parseTypeExpr()
	if target == nil {
		return nil
	}
	b.Target = target

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return b
}

// parseBindingArgs parses the concrete argument list of one binding.
// Arguments are kept unclassified here; the inferencer decides
// scope-vs-type against the header generics. Called with curToken on
// '<'; leaves curToken on '>'.
func (p *Parser) parseBindingArgs(b *ast.MemberBinding) bool {
	if p.peekTokenIs(token.GT) {
		p.nextToken()
		return true
	}

	for {
		p.nextToken()
		arg := &ast.BindingArg{Token: p.curToken}
		if p.curTokenIs(token.SCOPE) {
			arg.Scope = &ast.ScopeParam{Token: p.curToken, Name: p.curToken.Literal}
		} else {
			ty := p.parseTypeExpr()
			if ty == nil {
				return false
			}
			arg.Type = ty
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken() // :
			p.nextToken()
			bounds := p.parseBounds()
			if bounds == nil {
				return false
			}
			arg.Bounds = bounds
		}
		b.Args = append(b.Args, arg)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		return p.expectPeek(token.GT)
	}
}
