// Package parser turns a token stream into kind-definition statements.
// It covers the three dialects: declarations (kind/defkind blocks),
// realization blocks (implkind) and applications (apply).
package parser

import (
	"fmt"

	"github.com/funvibe/kindgen/internal/ast"
	"github.com/funvibe/kindgen/internal/diagnostics"
	"github.com/funvibe/kindgen/internal/pipeline"
	"github.com/funvibe/kindgen/internal/token"
)

type Parser struct {
	stream *token.Stream
	ctx    *pipeline.Context

	curToken  token.Token
	peekToken token.Token
}

func New(stream *token.Stream, ctx *pipeline.Context) *Parser {
	p := &Parser{stream: stream, ctx: ctx}
	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token has the wanted type and reports
// a syntax error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.peekToken,
		fmt.Sprintf("expected %s", t),
		p.peekToken.Lexeme,
	))
	return false
}

func (p *Parser) syntaxError(tok token.Token, msg string) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP001, tok, msg, tok.Lexeme,
	))
}

// ParseProgram parses every top-level statement. A failed statement is
// abandoned and parsing resumes at the next statement keyword, so one
// bad call site does not hide diagnostics for the rest of the file.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.KIND:
			if st := p.parseKindStatement(); st != nil {
				program.Statements = append(program.Statements, st)
				p.nextToken()
				continue
			}
		case token.DEFKIND:
			if st := p.parseDefKindStatement(); st != nil {
				program.Statements = append(program.Statements, st)
				p.nextToken()
				continue
			}
		case token.IMPLKIND:
			if st := p.parseImplKindStatement(); st != nil {
				program.Statements = append(program.Statements, st)
				p.nextToken()
				continue
			}
		case token.APPLY:
			if st := p.parseApplyStatement(); st != nil {
				program.Statements = append(program.Statements, st)
				p.nextToken()
				continue
			}
		default:
			p.syntaxError(p.curToken, "expected 'kind', 'defkind', 'implkind' or 'apply'")
		}
		p.recoverToStatement()
	}

	return program
}

// recoverToStatement skips to the next top-level statement keyword.
func (p *Parser) recoverToStatement() {
	p.nextToken()
	for !p.curTokenIs(token.EOF) &&
		!p.curTokenIs(token.KIND) &&
		!p.curTokenIs(token.DEFKIND) &&
		!p.curTokenIs(token.IMPLKIND) &&
		!p.curTokenIs(token.APPLY) {
		p.nextToken()
	}
}

// parseBounds parses `bound (+ bound)*`. Called with curToken on the
// first token of the first bound; leaves curToken on the last token of
// the last bound.
func (p *Parser) parseBounds() []ast.Bound {
	var bounds []ast.Bound
	for {
		b := p.parseBound()
		if b == nil {
			return nil
		}
		bounds = append(bounds, b)
		if !p.peekTokenIs(token.PLUS) {
			return bounds
		}
		p.nextToken() // +
		p.nextToken() // next bound
	}
}

// parseBound parses one bound: a scope reference, a path (with optional
// generic arguments), or a callable shape like Fn(A) -> B.
func (p *Parser) parseBound() ast.Bound {
	switch p.curToken.Type {
	case token.SCOPE:
		return &ast.ScopeBound{Token: p.curToken, Name: p.curToken.Literal}
	case token.IDENT:
		tok := p.curToken
		if p.peekTokenIs(token.LPAREN) {
			return p.parseFnBound()
		}
		path := p.parsePath()
		if path == nil {
			return nil
		}
		return &ast.TraitBound{Token: tok, Path: path}
	default:
		p.syntaxError(p.curToken, "expected a bound")
		return nil
	}
}

// parseFnBound parses `Name(T1, T2) -> R`. Called with curToken on the
// name; the return type is optional (unit when omitted).
func (p *Parser) parseFnBound() ast.Bound {
	fb := &ast.FnBound{Token: p.curToken, Name: p.curToken.Literal}
	p.nextToken() // (
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		in := p.parseTypeExpr()
		if in == nil {
			return nil
		}
		fb.Inputs = append(fb.Inputs, in)
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
		out := p.parseTypeExpr()
		if out == nil {
			return nil
		}
		fb.Output = out
	}
	return fb
}

// parsePath parses `seg (:: seg)*` where each segment may carry generic
// arguments. Called with curToken on the first identifier; leaves
// curToken on the last token of the path.
func (p *Parser) parsePath() *ast.PathType {
	path := &ast.PathType{Token: p.curToken}
	for {
		seg := p.parsePathSegment()
		if seg == nil {
			return nil
		}
		path.Segments = append(path.Segments, seg)
		if !p.peekTokenIs(token.PATHSEP) {
			return path
		}
		p.nextToken() // ::
		if !p.expectPeek(token.IDENT) {
			return nil
		}
	}
}

func (p *Parser) parsePathSegment() *ast.PathSegment {
	seg := &ast.PathSegment{Name: p.curToken.Literal}
	if !p.peekTokenIs(token.LT) {
		return seg
	}
	p.nextToken() // <
	for !p.peekTokenIs(token.GT) {
		p.nextToken()
		arg := p.parseGenericArg()
		if arg == nil {
			return nil
		}
		seg.Args = append(seg.Args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.GT) {
		return nil
	}
	return seg
}

// parseGenericArg parses a scope argument, an associated-member binding
// `Name = Type`, or a plain type argument.
func (p *Parser) parseGenericArg() ast.GenericArg {
	if p.curTokenIs(token.SCOPE) {
		return &ast.ScopeArg{Token: p.curToken, Name: p.curToken.Literal}
	}
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
		arg := &ast.AssocArg{Token: p.curToken, Name: p.curToken.Literal}
		p.nextToken() // =
		p.nextToken()
		ty := p.parseTypeExpr()
		if ty == nil {
			return nil
		}
		arg.Type = ty
		return arg
	}
	ty := p.parseTypeExpr()
	if ty == nil {
		return nil
	}
	return &ast.TypeArg{Type: ty}
}

// parseTypeExpr parses a concrete type expression: a scope, a path, a
// tuple or callable `(A, B) -> C`, or a list `[A]`. Called with curToken
// on the first token; leaves curToken on the last.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch p.curToken.Type {
	case token.SCOPE:
		return &ast.ScopeExpr{Token: p.curToken, Name: p.curToken.Literal}
	case token.IDENT:
		return p.parsePath()
	case token.LPAREN:
		return p.parseTupleOrFnType()
	case token.LBRACKET:
		lt := &ast.ListType{Token: p.curToken}
		p.nextToken()
		elem := p.parseTypeExpr()
		if elem == nil {
			return nil
		}
		lt.Elem = elem
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return lt
	default:
		p.syntaxError(p.curToken, "expected a type expression")
		return nil
	}
}

func (p *Parser) parseTupleOrFnType() ast.TypeExpr {
	tok := p.curToken // (
	var elems []ast.TypeExpr
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		e := p.parseTypeExpr()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
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
		out := p.parseTypeExpr()
		if out == nil {
			return nil
		}
		return &ast.FnType{Token: tok, Inputs: elems, Output: out}
	}

	// A parenthesized single type is just grouping; anything else is a
	// tuple (including the empty tuple, i.e. unit).
	if len(elems) == 1 {
		return elems[0]
	}
	return &ast.TupleType{Token: tok, Elems: elems}
}
