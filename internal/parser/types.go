package parser

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/token"
)

func (p *Parser) parseType() ast.Type {
	start := p.peek().Span

	switch p.peek().Kind {
	case token.LParen:
		p.advance()
		if p.check(token.RParen) {
			end := p.advance().Span
			return &ast.TupleType{Span: start.Merge(end)}
		}
		types := []ast.Type{p.parseType()}
		for p.check(token.Comma) {
			p.advance()
			if p.check(token.RParen) {
				break
			}
			types = append(types, p.parseType())
		}
		end := p.expect(token.RParen).Span
		if p.failed() {
			return nil
		}
		return &ast.TupleType{Elements: types, Span: start.Merge(end)}

	case token.LBracket:
		p.advance()
		elem := p.parseType()
		if p.failed() {
			return nil
		}
		if p.check(token.Semi) {
			p.advance()
			size := p.parseExpr()
			end := p.expect(token.RBracket).Span
			if p.failed() {
				return nil
			}
			return &ast.ArrayType{Element: elem, Len: size, Span: start.Merge(end)}
		}
		end := p.expect(token.RBracket).Span
		if p.failed() {
			return nil
		}
		return &ast.SliceType{Element: elem, Span: start.Merge(end)}

	case token.Amp:
		p.advance()
		mutable := p.check(token.Mut)
		if mutable {
			p.advance()
		}
		inner := p.parseType()
		if p.failed() {
			return nil
		}
		return &ast.RefType{Mutable: mutable, Inner: inner, Span: start.Merge(inner.NodeSpan())}

	case token.Bang:
		end := p.advance().Span
		return &ast.NeverType{Span: end}

	case token.Underscore:
		end := p.advance().Span
		return &ast.InferType{Span: end}

	case token.Fn:
		p.advance()
		p.expect(token.LParen)
		var params []ast.Type
		for !p.check(token.RParen) && !p.atEnd() && !p.failed() {
			params = append(params, p.parseType())
			if !p.check(token.RParen) {
				p.expect(token.Comma)
			}
		}
		end := p.expect(token.RParen).Span
		var ret ast.Type
		if p.check(token.Arrow) {
			p.advance()
			ret = p.parseType()
			end = ret.NodeSpan()
		}
		if p.failed() {
			return nil
		}
		return &ast.FnType{Params: params, ReturnType: ret, Span: start.Merge(end)}

	case token.Ident, token.SelfType:
		path := p.parsePath()
		if p.failed() {
			return nil
		}
		return &ast.PathType{Path: path, Span: path.Span}

	default:
		p.fail(parserr.NewUnexpectedToken("type", p.peek().Kind, p.peek().Span))
		return nil
	}
}

// parsePath parses a `::`-separated path, recognizing a turbofish
// `::<...>` generic-argument list on any segment.
func (p *Parser) parsePath() ast.Path {
	start := p.peek().Span
	var segments []ast.PathSegment
	for {
		var ident ast.Ident
		if p.check(token.SelfType) {
			t := p.advance()
			ident = ast.Ident{Name: "Self", Span: t.Span}
		} else {
			ident = p.parseIdent()
		}
		if p.failed() {
			break
		}
		var generics []ast.Type
		if p.check(token.ColonColon) && p.peekAt(1).Kind == token.Lt {
			p.advance() // ::
			generics = p.parseGenericArgs()
		}
		segments = append(segments, ast.PathSegment{Ident: ident, Generics: generics, Span: ident.Span})
		if p.check(token.ColonColon) {
			p.advance()
			continue
		}
		break
	}
	end := start
	if len(segments) > 0 {
		end = segments[len(segments)-1].Span
	}
	return ast.Path{Segments: segments, Span: start.Merge(end)}
}
