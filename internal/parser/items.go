package parser

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/token"
)

// parseItem dispatches on the leading keyword of a top-level (or nested,
// or impl/trait-body) declaration.
func (p *Parser) parseItem() ast.Item {
	switch p.peek().Kind {
	case token.Fn:
		return p.parseFunction()
	case token.Struct:
		return p.parseStruct()
	case token.Enum:
		return p.parseEnum()
	case token.Impl:
		return p.parseImpl()
	case token.Trait:
		return p.parseTrait()
	case token.Use:
		return p.parseUse()
	case token.Type:
		return p.parseTypeAlias()
	default:
		p.fail(parserr.NewUnexpectedToken("item", p.peek().Kind, p.peek().Span))
		return nil
	}
}

func (p *Parser) parseIdent() ast.Ident {
	if !p.check(token.Ident) {
		p.fail(parserr.NewUnexpectedToken("identifier", p.peek().Kind, p.peek().Span))
		return ast.Ident{}
	}
	t := p.advance()
	return ast.Ident{Name: p.lexeme(t.Span), Span: t.Span}
}

func (p *Parser) parseFunction() *ast.Function {
	start := p.expect(token.Fn).Span
	if p.failed() {
		return nil
	}
	name := p.parseIdent()
	generics := p.parseGenerics()
	p.expect(token.LParen)
	params := p.parseParams()
	p.expect(token.RParen)
	if p.failed() {
		return nil
	}

	var retType ast.Type
	if p.check(token.Arrow) {
		p.advance()
		retType = p.parseType()
	}

	var where *ast.WhereClause
	if p.check(token.Where) {
		where = p.parseWhereClause()
	}
	if p.failed() {
		return nil
	}

	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.Function{
		Name: name, Generics: generics, Params: params,
		ReturnType: retType, WhereClause: where, Body: body,
		Span: start.Merge(body.Span),
	}
}

func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for !p.check(token.RParen) && !p.atEnd() && !p.failed() {
		pat := p.parsePattern()
		p.expect(token.Colon)
		ty := p.parseType()
		if p.failed() {
			return params
		}
		params = append(params, ast.Param{Pattern: pat, Type: ty, Span: pat.NodeSpan().Merge(ty.NodeSpan())})
		if !p.check(token.RParen) {
			p.expect(token.Comma)
		}
	}
	return params
}

// parseGenerics parses an optional `<T: Bound1 + Bound2, U>` list.
func (p *Parser) parseGenerics() []ast.GenericParam {
	if !p.check(token.Lt) {
		return nil
	}
	p.advance()
	var params []ast.GenericParam
	for !p.check(token.Gt) && !p.atEnd() && !p.failed() {
		name := p.parseIdent()
		var bounds []ast.Type
		if p.check(token.Colon) {
			p.advance()
			bounds = append(bounds, p.parseType())
			for p.check(token.Plus) {
				p.advance()
				bounds = append(bounds, p.parseType())
			}
		}
		params = append(params, ast.GenericParam{Name: name, Bounds: bounds, Span: name.Span})
		if !p.check(token.Gt) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.Gt)
	return params
}

// parseGenericArgs parses the `<T, U>` argument list after a turbofish
// `::`.
func (p *Parser) parseGenericArgs() []ast.Type {
	p.expect(token.Lt)
	var args []ast.Type
	for !p.check(token.Gt) && !p.atEnd() && !p.failed() {
		args = append(args, p.parseType())
		if !p.check(token.Gt) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.Gt)
	return args
}

func (p *Parser) parseWhereClause() *ast.WhereClause {
	start := p.expect(token.Where).Span
	var preds []ast.WherePredicate
	for {
		ty := p.parseType()
		if p.failed() {
			break
		}
		p.expect(token.Colon)
		var bounds []ast.Type
		bounds = append(bounds, p.parseType())
		for p.check(token.Plus) {
			p.advance()
			bounds = append(bounds, p.parseType())
		}
		preds = append(preds, ast.WherePredicate{Type: ty, Bounds: bounds, Span: ty.NodeSpan()})
		if p.check(token.Comma) {
			p.advance()
			if p.check(token.LBrace) {
				break
			}
			continue
		}
		break
	}
	end := start
	if len(preds) > 0 {
		end = preds[len(preds)-1].Span
	}
	return &ast.WhereClause{Predicates: preds, Span: start.Merge(end)}
}

func (p *Parser) parseStruct() *ast.StructDef {
	start := p.expect(token.Struct).Span
	name := p.parseIdent()
	generics := p.parseGenerics()
	if p.failed() {
		return nil
	}
	if p.check(token.Semi) {
		end := p.advance().Span
		return &ast.StructDef{Name: name, Generics: generics, Span: start.Merge(end)}
	}
	p.expect(token.LBrace)
	var fields []ast.Field
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		fname := p.parseIdent()
		p.expect(token.Colon)
		fty := p.parseType()
		if p.failed() {
			break
		}
		fields = append(fields, ast.Field{Name: fname, Type: fty, Span: fname.Span.Merge(fty.NodeSpan())})
		if !p.check(token.RBrace) {
			if p.check(token.Comma) {
				p.advance()
			} else {
				p.expect(token.Comma)
			}
		}
	}
	end := p.expect(token.RBrace).Span
	return &ast.StructDef{Name: name, Generics: generics, Fields: fields, Span: start.Merge(end)}
}

func (p *Parser) parseEnum() *ast.EnumDef {
	start := p.expect(token.Enum).Span
	name := p.parseIdent()
	generics := p.parseGenerics()
	if p.failed() {
		return nil
	}
	p.expect(token.LBrace)
	var variants []ast.Variant
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		variants = append(variants, p.parseVariant())
		if !p.check(token.RBrace) {
			if p.check(token.Comma) {
				p.advance()
			} else {
				p.expect(token.Comma)
			}
		}
	}
	end := p.expect(token.RBrace).Span
	return &ast.EnumDef{Name: name, Generics: generics, Variants: variants, Span: start.Merge(end)}
}

func (p *Parser) parseVariant() ast.Variant {
	name := p.parseIdent()
	if p.check(token.LParen) {
		p.advance()
		var types []ast.Type
		for !p.check(token.RParen) && !p.atEnd() && !p.failed() {
			types = append(types, p.parseType())
			if !p.check(token.RParen) {
				p.expect(token.Comma)
			}
		}
		end := p.expect(token.RParen).Span
		return ast.Variant{Name: name, Fields: ast.TupleVariantFields{Types: types}, Span: name.Span.Merge(end)}
	}
	if p.check(token.LBrace) {
		p.advance()
		var fields []ast.Field
		for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
			fname := p.parseIdent()
			p.expect(token.Colon)
			fty := p.parseType()
			fields = append(fields, ast.Field{Name: fname, Type: fty, Span: fname.Span.Merge(fty.NodeSpan())})
			if !p.check(token.RBrace) {
				p.expect(token.Comma)
			}
		}
		end := p.expect(token.RBrace).Span
		return ast.Variant{Name: name, Fields: ast.StructVariantFields{Fields: fields}, Span: name.Span.Merge(end)}
	}
	return ast.Variant{Name: name, Fields: ast.UnitVariantFields{}, Span: name.Span}
}

func (p *Parser) parseImpl() *ast.ImplBlock {
	start := p.expect(token.Impl).Span
	generics := p.parseGenerics()
	if p.failed() {
		return nil
	}
	first := p.parseType()
	if p.failed() {
		return nil
	}
	var traitTy ast.Type
	selfTy := first
	if p.check(token.For) {
		p.advance()
		traitTy = first
		selfTy = p.parseType()
	}
	if p.failed() {
		return nil
	}
	p.expect(token.LBrace)
	var items []ast.ImplItem
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		fn := p.parseFunction()
		if p.failed() {
			break
		}
		items = append(items, ast.ImplFunctionItem{Function: fn})
	}
	end := p.expect(token.RBrace).Span
	return &ast.ImplBlock{Generics: generics, Trait: traitTy, SelfType: selfTy, Items: items, Span: start.Merge(end)}
}

func (p *Parser) parseTrait() *ast.TraitDef {
	start := p.expect(token.Trait).Span
	name := p.parseIdent()
	generics := p.parseGenerics()
	if p.failed() {
		return nil
	}
	var bounds []ast.Type
	if p.check(token.Colon) {
		p.advance()
		bounds = append(bounds, p.parseType())
		for p.check(token.Plus) {
			p.advance()
			bounds = append(bounds, p.parseType())
		}
	}
	p.expect(token.LBrace)
	var items []ast.TraitItem
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		items = append(items, p.parseTraitFunction())
	}
	end := p.expect(token.RBrace).Span
	return &ast.TraitDef{Name: name, Generics: generics, Bounds: bounds, Items: items, Span: start.Merge(end)}
}

func (p *Parser) parseTraitFunction() ast.TraitItem {
	start := p.expect(token.Fn).Span
	name := p.parseIdent()
	generics := p.parseGenerics()
	p.expect(token.LParen)
	params := p.parseParams()
	p.expect(token.RParen)
	if p.failed() {
		return nil
	}
	var retType ast.Type
	if p.check(token.Arrow) {
		p.advance()
		retType = p.parseType()
	}
	var body *ast.Block
	end := start
	if p.check(token.LBrace) {
		body = p.parseBlock()
		if body != nil {
			end = body.Span
		}
	} else {
		end = p.expect(token.Semi).Span
	}
	return ast.TraitFunctionItem{Function: &ast.TraitFunction{
		Name: name, Generics: generics, Params: params, ReturnType: retType,
		DefaultBody: body, Span: start.Merge(end),
	}}
}

func (p *Parser) parseUse() *ast.UseStmt {
	start := p.expect(token.Use).Span
	path := p.parsePath()
	if p.failed() {
		return nil
	}
	end := p.expect(token.Semi).Span
	return &ast.UseStmt{Path: path, Span: start.Merge(end)}
}

func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	start := p.expect(token.Type).Span
	name := p.parseIdent()
	generics := p.parseGenerics()
	if p.failed() {
		return nil
	}
	p.expect(token.Eq)
	ty := p.parseType()
	if p.failed() {
		return nil
	}
	end := p.expect(token.Semi).Span
	return &ast.TypeAlias{Name: name, Generics: generics, Type: ty, Span: start.Merge(end)}
}
