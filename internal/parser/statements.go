package parser

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	exit, ok := p.enterBlock()
	defer exit()
	if !ok {
		return nil
	}

	start := p.expect(token.LBrace).Span
	if p.failed() {
		return nil
	}
	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(token.RBrace).Span
	if p.failed() {
		return nil
	}
	return &ast.Block{Stmts: stmts, Span: start.Merge(end)}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case token.Let:
		return p.parseLetStmt()
	case token.Fn, token.Struct, token.Enum, token.Impl, token.Trait, token.Use, token.Type:
		item := p.parseItem()
		if item == nil {
			return nil
		}
		return &ast.ItemStmt{Item: item, Span: item.NodeSpan()}
	default:
		expr := p.parseExpr()
		if p.failed() {
			return nil
		}
		hasSemi := p.check(token.Semi)
		sp := expr.NodeSpan()
		if hasSemi {
			sp = sp.Merge(p.advance().Span)
		}
		return &ast.ExprStmt{Expr: expr, HasSemi: hasSemi, Span: sp}
	}
}

func (p *Parser) parseLetStmt() *ast.LetStmt {
	start := p.expect(token.Let).Span
	if p.failed() {
		return nil
	}
	pat := p.parsePattern()
	if p.failed() {
		return nil
	}
	var ty ast.Type
	if p.check(token.Colon) {
		p.advance()
		ty = p.parseType()
	}
	var value ast.Expr
	if p.check(token.Eq) {
		p.advance()
		value = p.parseExpr()
	}
	if p.failed() {
		return nil
	}
	end := p.expect(token.Semi).Span
	if p.failed() {
		return nil
	}
	return &ast.LetStmt{Pattern: pat, Type: ty, Value: value, Span: start.Merge(end)}
}
