package parser

import (
	"fmt"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/config"
	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/token"
)

// parseApplyStatement parses the application dialect:
//
//	apply(brand: OptionBrand, signature: ('a, A: 'a) -> 'a, output: Of)
//	apply(brand: OptionBrand, kind: Kind_0123456789abcdef,
//	      lifetimes: ('static), types: (String))
//
// The unified `signature` form and the explicit `kind` selector are
// mutually exclusive; mixing them is one invalid-combination error.
func (p *Parser) parseApplyStatement() *ast.ApplyStatement {
	st := &ast.ApplyStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	seen := map[string]bool{}
	conflict := false
	failed := false

	for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.KIND) {
			p.syntaxError(p.curToken, "expected a label")
			return nil
		}
		label := p.curToken.Literal
		labelTok := p.curToken

		if seen[label] {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004, labelTok,
				fmt.Sprintf("duplicate label '%s'", label),
			))
			failed = true
		}
		seen[label] = true

		if !p.expectPeek(token.COLON) {
			return nil
		}

		switch label {
		case config.BrandLabel:
			p.nextToken()
			brand := p.parseTypeExpr()
			if brand == nil {
				return nil
			}
			st.Brand = brand
		case config.SignatureLabel:
			if seen[config.KindLabel] || seen[config.LifetimesLabel] || seen[config.TypesLabel] {
				conflict = true
			}
			sig := p.parseUnifiedSignature()
			if sig == nil {
				return nil
			}
			st.Signature = sig
		case config.KindLabel:
			if seen[config.SignatureLabel] {
				conflict = true
			}
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			path := p.parsePath()
			if path == nil {
				return nil
			}
			st.Kind = path
		case config.LifetimesLabel:
			if seen[config.SignatureLabel] {
				conflict = true
			}
			if !p.parseScopeList(st) {
				return nil
			}
		case config.TypesLabel:
			if seen[config.SignatureLabel] {
				conflict = true
			}
			if !p.parseTypeList(st) {
				return nil
			}
		case config.OutputLabel:
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			st.Output = p.curToken.Literal
		default:
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004, labelTok,
				fmt.Sprintf("unknown label '%s'", label),
			))
			failed = true
			if !p.skipLabelValue() {
				return nil
			}
		}

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if conflict {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003, st.Token,
			"cannot mix 'signature' with the explicit 'kind' selector",
		))
		return nil
	}
	if failed {
		return nil
	}

	if st.Brand == nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, st.Token, "missing 'brand'",
		))
		return nil
	}
	if st.Signature == nil && st.Kind == nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, st.Token, "missing 'signature' or 'kind'",
		))
		return nil
	}
	if st.Kind != nil && (!seen[config.LifetimesLabel] || !seen[config.TypesLabel]) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, st.Token,
			"'kind' requires 'lifetimes' and 'types'",
		))
		return nil
	}
	return st
}

// parseUnifiedSignature parses `('a, T: Clone + 'a, ...) -> bounds`.
// Every parameter is captured twice: the bounds form the shape view used
// for naming, the scope/type values form the value view used for
// projection.
func (p *Parser) parseUnifiedSignature() *ast.UnifiedSignature {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	sig := &ast.UnifiedSignature{Token: p.curToken}

	for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		param := &ast.SigParam{Token: p.curToken}
		if p.curTokenIs(token.SCOPE) {
			param.Scope = &ast.ScopeParam{Token: p.curToken, Name: p.curToken.Literal}
		} else {
			ty := p.parseTypeExpr()
			if ty == nil {
				return nil
			}
			param.Type = ty
			if p.peekTokenIs(token.COLON) {
				p.nextToken() // :
				p.nextToken()
				bounds := p.parseBounds()
				if bounds == nil {
					return nil
				}
				param.Bounds = bounds
			}
		}
		sig.Params = append(sig.Params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // ->
		p.nextToken()
		bounds := p.parseBounds()
		if bounds == nil {
			return nil
		}
		sig.Output = bounds
	}
	return sig
}

// parseScopeList parses `('a, 'b, ...)` for the explicit lifetimes label.
func (p *Parser) parseScopeList(st *ast.ApplyStatement) bool {
	if !p.expectPeek(token.LPAREN) {
		return false
	}
	for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.SCOPE) {
			return false
		}
		st.Scopes = append(st.Scopes, &ast.ScopeParam{Token: p.curToken, Name: p.curToken.Literal})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	return p.expectPeek(token.RPAREN)
}

// parseTypeList parses `(T1, T2, ...)` for the explicit types label.
func (p *Parser) parseTypeList(st *ast.ApplyStatement) bool {
	if !p.expectPeek(token.LPAREN) {
		return false
	}
	for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		ty := p.parseTypeExpr()
		if ty == nil {
			return false
		}
		st.Types = append(st.Types, ty)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	return p.expectPeek(token.RPAREN)
}

// skipLabelValue consumes the value of an unknown label so parsing can
// continue with the next label. Parenthesized values are skipped as a
// balanced group.
func (p *Parser) skipLabelValue() bool {
	depth := 0
	for {
		if p.peekTokenIs(token.EOF) {
			return false
		}
		if depth == 0 && (p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.RPAREN)) {
			return true
		}
		p.nextToken()
		switch p.curToken.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
	}
}
