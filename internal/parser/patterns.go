package parser

import (
	"strconv"

	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/token"
)

// parsePattern parses a full pattern: an or-pattern (`a | b | c`) of
// range-or-primary patterns.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseRangeOrPrimaryPattern()
	if p.failed() || !p.check(token.Pipe) {
		return first
	}
	alts := []ast.Pattern{first}
	start := first.NodeSpan()
	for p.check(token.Pipe) {
		p.advance()
		alts = append(alts, p.parseRangeOrPrimaryPattern())
		if p.failed() {
			break
		}
	}
	end := alts[len(alts)-1].NodeSpan()
	return &ast.OrPattern{Alternatives: alts, Span: start.Merge(end)}
}

func (p *Parser) parseRangeOrPrimaryPattern() ast.Pattern {
	first := p.parsePrimaryPattern()
	if p.failed() {
		return first
	}
	if p.check(token.DotDot) || p.check(token.DotDotEq) {
		inclusive := p.check(token.DotDotEq)
		p.advance()
		var end ast.Pattern
		if p.isPatternStart() {
			end = p.parsePrimaryPattern()
		}
		sp := first.NodeSpan()
		if end != nil {
			sp = sp.Merge(end.NodeSpan())
		}
		return &ast.RangePattern{Start: first, End: end, Inclusive: inclusive, Span: sp}
	}
	return first
}

func (p *Parser) isPatternStart() bool {
	switch p.peek().Kind {
	case token.Underscore, token.Mut, token.Ident, token.SelfType,
		token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
		token.True, token.False, token.LParen, token.Amp:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	start := p.peek().Span

	switch p.peek().Kind {
	case token.Underscore:
		p.advance()
		return &ast.WildcardPattern{Span: start}

	case token.Mut:
		p.advance()
		name := p.parseIdent()
		if p.failed() {
			return nil
		}
		return &ast.IdentPattern{Name: name, Mutable: true, Span: start.Merge(name.Span)}

	case token.Amp:
		p.advance()
		mutable := p.check(token.Mut)
		if mutable {
			p.advance()
		}
		inner := p.parsePrimaryPattern()
		if p.failed() {
			return nil
		}
		return &ast.RefPattern{Mutable: mutable, Inner: inner, Span: start.Merge(inner.NodeSpan())}

	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.True, token.False:
		lit := p.parseLiteralToken()
		return &ast.LiteralPattern{Value: lit, Span: start}

	case token.LParen:
		p.advance()
		var elems []ast.Pattern
		for !p.check(token.RParen) && !p.atEnd() && !p.failed() {
			elems = append(elems, p.parsePattern())
			if !p.check(token.RParen) {
				p.expect(token.Comma)
			}
		}
		end := p.expect(token.RParen).Span
		if p.failed() {
			return nil
		}
		return &ast.TuplePattern{Elements: elems, Span: start.Merge(end)}

	case token.Ident, token.SelfType:
		path := p.parsePath()
		if p.failed() {
			return nil
		}
		if p.check(token.LParen) {
			p.advance()
			var elems []ast.Pattern
			for !p.check(token.RParen) && !p.atEnd() && !p.failed() {
				elems = append(elems, p.parsePattern())
				if !p.check(token.RParen) {
					p.expect(token.Comma)
				}
			}
			end := p.expect(token.RParen).Span
			if p.failed() {
				return nil
			}
			return &ast.TupleStructPattern{Path: path, Elements: elems, Span: start.Merge(end)}
		}
		if p.check(token.LBrace) {
			p.advance()
			var fields []ast.FieldPattern
			for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
				fname := p.parseIdent()
				var fpat ast.Pattern
				if p.check(token.Colon) {
					p.advance()
					fpat = p.parsePattern()
				}
				fields = append(fields, ast.FieldPattern{Name: fname, Pattern: fpat, Span: fname.Span})
				if !p.check(token.RBrace) {
					p.expect(token.Comma)
				}
			}
			end := p.expect(token.RBrace).Span
			if p.failed() {
				return nil
			}
			return &ast.StructPattern{Path: path, Fields: fields, Span: start.Merge(end)}
		}
		if len(path.Segments) == 1 {
			return &ast.IdentPattern{Name: path.Segments[0].Ident, Span: path.Span}
		}
		return &ast.TupleStructPattern{Path: path, Span: path.Span}

	default:
		p.fail(parserr.NewUnexpectedToken("pattern", p.peek().Kind, p.peek().Span))
		return nil
	}
}

// parseLiteralToken materializes the current literal/bool token into an
// ast.Literal and advances past it.
func (p *Parser) parseLiteralToken() ast.Literal {
	t := p.advance()
	text := p.lexeme(t.Span)
	switch t.Kind {
	case token.True:
		return ast.BoolLiteral{Value: true}
	case token.False:
		return ast.BoolLiteral{Value: false}
	case token.IntLit:
		return parseIntLiteral(text)
	case token.FloatLit:
		v, _ := strconv.ParseFloat(lexer.StripSeparators(text), 64)
		return ast.FloatLiteral{Value: v}
	case token.StringLit:
		return ast.StringLiteral{Value: decodeStringLexeme(text)}
	case token.CharLit:
		return ast.CharLiteral{Value: decodeCharLexeme(text)}
	default:
		p.fail(parserr.NewInvalidLiteral("unknown", t.Span))
		return ast.IntLiteral{}
	}
}
