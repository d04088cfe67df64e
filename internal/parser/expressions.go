package parser

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/token"
)

// parseExpr parses a full expression at the lowest binding power.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprBp(0)
}

// parseExprBp is the Pratt loop: parse a prefix/primary expression, then
// repeatedly fold in postfix and infix operators whose left binding power
// is at least min_bp.
func (p *Parser) parseExprBp(minBp uint8) ast.Expr {
	exit, ok := p.enterExpr()
	defer exit()
	if !ok {
		return nil
	}

	lhs := p.parsePrefix()
	if p.failed() {
		return nil
	}

	for {
		opKind := p.peek().Kind
		if lBp, rBp, isOp := opKind.Precedence(); isOp {
			if lBp < minBp {
				break
			}
			p.advance()
			rhs := p.parseExprBp(rBp)
			if p.failed() {
				return nil
			}
			lhs = &ast.BinaryExpr{Left: lhs, Op: toBinOp(opKind), Right: rhs, Span: lhs.NodeSpan().Merge(rhs.NodeSpan())}
			continue
		}

		switch opKind {
		case token.LParen:
			p.advance()
			args := p.parseArgs()
			end := p.expect(token.RParen).Span
			if p.failed() {
				return nil
			}
			lhs = &ast.CallExpr{Callee: lhs, Args: args, Span: lhs.NodeSpan().Merge(end)}
		case token.LBracket:
			p.advance()
			prevSuppress := p.suppressStructLit
			p.suppressStructLit = false
			idx := p.parseExpr()
			p.suppressStructLit = prevSuppress
			end := p.expect(token.RBracket).Span
			if p.failed() {
				return nil
			}
			lhs = &ast.IndexExpr{Receiver: lhs, Index: idx, Span: lhs.NodeSpan().Merge(end)}
		case token.Dot:
			p.advance()
			if p.check(token.Await) {
				end := p.advance().Span
				lhs = &ast.AwaitExpr{Operand: lhs, Span: lhs.NodeSpan().Merge(end)}
				continue
			}
			field := p.parseIdent()
			if p.failed() {
				return nil
			}
			lhs = &ast.FieldExpr{Receiver: lhs, Field: field, Span: lhs.NodeSpan().Merge(field.Span)}
		case token.Question:
			end := p.advance().Span
			lhs = &ast.TryExpr{Operand: lhs, Span: lhs.NodeSpan().Merge(end)}
		case token.DotDot, token.DotDotEq:
			if minBp > 1 {
				return lhs
			}
			inclusive := opKind == token.DotDotEq
			opSpan := p.advance().Span
			if !p.isExprStart() {
				lhs = &ast.RangeExpr{Start: lhs, Inclusive: inclusive, Span: lhs.NodeSpan().Merge(opSpan)}
				continue
			}
			end := p.parseExprBp(2)
			if p.failed() {
				return nil
			}
			lhs = &ast.RangeExpr{Start: lhs, End: end, Inclusive: inclusive, Span: lhs.NodeSpan().Merge(end.NodeSpan())}
		default:
			return lhs
		}
	}
	return lhs
}

func toBinOp(k token.Kind) ast.BinOp {
	switch k {
	case token.Plus:
		return ast.Add
	case token.Minus:
		return ast.Sub
	case token.Star:
		return ast.Mul
	case token.Slash:
		return ast.Div
	case token.Percent:
		return ast.Rem
	case token.AmpAmp:
		return ast.LogAnd
	case token.PipePipe:
		return ast.LogOr
	case token.Amp:
		return ast.BitAnd
	case token.Pipe:
		return ast.BitOr
	case token.Caret:
		return ast.BitXor
	case token.Shl:
		return ast.Shl
	case token.Shr:
		return ast.Shr
	case token.EqEq:
		return ast.CmpEq
	case token.NotEq:
		return ast.CmpNe
	case token.Lt:
		return ast.CmpLt
	case token.LtEq:
		return ast.CmpLe
	case token.Gt:
		return ast.CmpGt
	case token.GtEq:
		return ast.CmpGe
	case token.Eq:
		return ast.Assign
	case token.PlusEq:
		return ast.AddAssign
	case token.MinusEq:
		return ast.SubAssign
	case token.StarEq:
		return ast.MulAssign
	case token.SlashEq:
		return ast.DivAssign
	case token.PercentEq:
		return ast.RemAssign
	case token.AmpEq:
		return ast.BitAndAssign
	case token.PipeEq:
		return ast.BitOrAssign
	case token.CaretEq:
		return ast.BitXorAssign
	case token.ShlEq:
		return ast.ShlAssign
	case token.ShrEq:
		return ast.ShrAssign
	default:
		return ast.Add
	}
}

func (p *Parser) parsePrefix() ast.Expr {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Minus:
		p.advance()
		operand := p.parseExprBp(token.UnaryPrecedence)
		if p.failed() {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.Neg, Operand: operand, Span: start.Merge(operand.NodeSpan())}
	case token.Bang:
		p.advance()
		operand := p.parseExprBp(token.UnaryPrecedence)
		if p.failed() {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.Not, Operand: operand, Span: start.Merge(operand.NodeSpan())}
	case token.Tilde:
		p.advance()
		operand := p.parseExprBp(token.UnaryPrecedence)
		if p.failed() {
			return nil
		}
		return &ast.UnaryExpr{Op: ast.BitNot, Operand: operand, Span: start.Merge(operand.NodeSpan())}
	case token.Amp:
		p.advance()
		mutable := p.check(token.Mut)
		if mutable {
			p.advance()
		}
		operand := p.parseExprBp(token.UnaryPrecedence)
		if p.failed() {
			return nil
		}
		return &ast.RefExpr{Mutable: mutable, Operand: operand, Span: start.Merge(operand.NodeSpan())}
	case token.Star:
		p.advance()
		operand := p.parseExprBp(token.UnaryPrecedence)
		if p.failed() {
			return nil
		}
		return &ast.DerefExpr{Operand: operand, Span: start.Merge(operand.NodeSpan())}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	prev := p.suppressStructLit
	p.suppressStructLit = false
	defer func() { p.suppressStructLit = prev }()

	var args []ast.Expr
	for !p.check(token.RParen) && !p.atEnd() && !p.failed() {
		args = append(args, p.parseExpr())
		if !p.check(token.RParen) {
			p.expect(token.Comma)
		}
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.peek()
	start := t.Span

	switch t.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.True, token.False:
		lit := p.parseLiteralToken()
		return &ast.LiteralExpr{Value: lit, Span: start}

	case token.Ident, token.SelfType, token.SelfValue:
		if t.Kind == token.SelfValue {
			p.advance()
			return &ast.PathExpr{
				Path: ast.Path{Segments: []ast.PathSegment{{Ident: ast.Ident{Name: "self", Span: start}, Span: start}}, Span: start},
				Span: start,
			}
		}
		path := p.parsePath()
		if p.failed() {
			return nil
		}
		if p.check(token.LBrace) && !p.suppressStructLit && p.looksLikeStructLit() {
			return p.parseStructLit(path)
		}
		return &ast.PathExpr{Path: path, Span: path.Span}

	case token.LParen:
		p.advance()
		prevSuppress := p.suppressStructLit
		p.suppressStructLit = false
		defer func() { p.suppressStructLit = prevSuppress }()
		if p.check(token.RParen) {
			end := p.advance().Span
			return &ast.TupleExpr{Span: start.Merge(end)}
		}
		first := p.parseExpr()
		if p.failed() {
			return nil
		}
		if p.check(token.Comma) {
			exprs := []ast.Expr{first}
			for p.check(token.Comma) {
				p.advance()
				if p.check(token.RParen) {
					break
				}
				exprs = append(exprs, p.parseExpr())
			}
			end := p.expect(token.RParen).Span
			if p.failed() {
				return nil
			}
			return &ast.TupleExpr{Elements: exprs, Span: start.Merge(end)}
		}
		p.expect(token.RParen)
		return first

	case token.LBracket:
		p.advance()
		prevSuppress := p.suppressStructLit
		p.suppressStructLit = false
		defer func() { p.suppressStructLit = prevSuppress }()
		var elems []ast.Expr
		for !p.check(token.RBracket) && !p.atEnd() && !p.failed() {
			elems = append(elems, p.parseExpr())
			if !p.check(token.RBracket) {
				p.expect(token.Comma)
			}
		}
		end := p.expect(token.RBracket).Span
		if p.failed() {
			return nil
		}
		return &ast.ArrayExpr{Elements: elems, Span: start.Merge(end)}

	case token.LBrace:
		block := p.parseBlock()
		if p.failed() {
			return nil
		}
		return &ast.BlockExpr{Block: block, Span: block.Span}

	case token.If:
		return p.parseIfExpr()
	case token.Match:
		return p.parseMatchExpr()
	case token.While:
		return p.parseWhileExpr()
	case token.For:
		return p.parseForExpr()
	case token.Loop:
		return p.parseLoopExpr()

	case token.PipePipe, token.Pipe:
		return p.parseClosure()

	case token.DotDot, token.DotDotEq:
		inclusive := t.Kind == token.DotDotEq
		p.advance()
		if !p.isExprStart() {
			return &ast.RangeExpr{Inclusive: inclusive, Span: start}
		}
		end := p.parseExprBp(token.UnaryPrecedence)
		if p.failed() {
			return nil
		}
		return &ast.RangeExpr{End: end, Inclusive: inclusive, Span: start.Merge(end.NodeSpan())}

	case token.Return:
		p.advance()
		var value ast.Expr
		sp := start
		if !p.check(token.Semi) && !p.check(token.RBrace) && !p.atEnd() {
			value = p.parseExpr()
			if value != nil {
				sp = start.Merge(value.NodeSpan())
			}
		}
		if p.failed() {
			return nil
		}
		return &ast.ReturnExpr{Value: value, Span: sp}

	case token.Break:
		p.advance()
		var value ast.Expr
		sp := start
		if !p.check(token.Semi) && !p.check(token.RBrace) && !p.atEnd() {
			value = p.parseExpr()
			if value != nil {
				sp = start.Merge(value.NodeSpan())
			}
		}
		if p.failed() {
			return nil
		}
		return &ast.BreakExpr{Value: value, Span: sp}

	case token.Continue:
		p.advance()
		return &ast.ContinueExpr{Span: start}

	default:
		p.fail(parserr.NewUnexpectedToken("expression", t.Kind, t.Span))
		return nil
	}
}

func (p *Parser) isExprStart() bool {
	switch p.peek().Kind {
	case token.Semi, token.RBrace, token.RParen, token.RBracket, token.Comma, token.Eof:
		return false
	default:
		return true
	}
}

// looksLikeStructLit disambiguates `Foo { x: 1 }` (a struct literal) from
// a path expression immediately followed by a block in statement
// position (e.g. the condition of `if cond { ... }`). Callers already
// know a brace follows; this peeks one token further to check for the
// `ident :` or immediate `}` shape of a struct literal body.
func (p *Parser) looksLikeStructLit() bool {
	next := p.peekAt(1)
	if next.Kind == token.RBrace {
		return true
	}
	return next.Kind == token.Ident && p.peekAt(2).Kind == token.Colon
}

func (p *Parser) parseStructLit(path ast.Path) ast.Expr {
	start := path.Span
	p.expect(token.LBrace)
	var fields []ast.FieldInit
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		name := p.parseIdent()
		p.expect(token.Colon)
		value := p.parseExpr()
		if p.failed() {
			break
		}
		fields = append(fields, ast.FieldInit{Name: name, Value: value, Span: name.Span.Merge(value.NodeSpan())})
		if !p.check(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	end := p.expect(token.RBrace).Span
	if p.failed() {
		return nil
	}
	return &ast.StructLitExpr{Path: path, Fields: fields, Span: start.Merge(end)}
}

func (p *Parser) parseIfExpr() ast.Expr {
	start := p.expect(token.If).Span
	if p.failed() {
		return nil
	}
	cond := p.parseIfCondition()
	then := p.parseBlock()
	if p.failed() {
		return nil
	}
	var elseExpr ast.Expr
	if p.check(token.Else) {
		p.advance()
		if p.check(token.If) {
			elseExpr = p.parseIfExpr()
		} else {
			block := p.parseBlock()
			if block != nil {
				elseExpr = &ast.BlockExpr{Block: block, Span: block.Span}
			}
		}
	}
	if p.failed() {
		return nil
	}
	sp := start.Merge(then.Span)
	if elseExpr != nil {
		sp = start.Merge(elseExpr.NodeSpan())
	}
	return &ast.IfExpr{Cond: cond, Then: then, Else: elseExpr, Span: sp}
}

// parseIfCondition parses the condition of an if/while/match-on head: an
// ordinary expression, but one that must not itself be interpreted as
// containing a trailing struct-literal brace (that brace belongs to the
// `then` block instead). Concretely this means struct-literal
// disambiguation is suppressed at the top level of the condition.
func (p *Parser) parseIfCondition() ast.Expr {
	return p.parseExprNoStructLit()
}

// parseExprNoStructLit parses an expression where a bare `Ident {` is
// never read as a struct literal -- used for if/while/match/for-iter
// heads, matching the common resolution of this ambiguity.
func (p *Parser) parseExprNoStructLit() ast.Expr {
	prev := p.suppressStructLit
	p.suppressStructLit = true
	e := p.parseExpr()
	p.suppressStructLit = prev
	return e
}

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.expect(token.Match).Span
	if p.failed() {
		return nil
	}
	scrutinee := p.parseIfCondition()
	if p.failed() {
		return nil
	}
	p.expect(token.LBrace)
	var arms []ast.MatchArm
	for !p.check(token.RBrace) && !p.atEnd() && !p.failed() {
		pat := p.parsePattern()
		if p.failed() {
			break
		}
		var guard ast.Expr
		if p.check(token.If) {
			p.advance()
			guard = p.parseExpr()
		}
		p.expect(token.FatArrow)
		body := p.parseExpr()
		if p.failed() {
			break
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body, Span: pat.NodeSpan().Merge(body.NodeSpan())})
		if p.check(token.Comma) {
			p.advance()
		}
	}
	end := p.expect(token.RBrace).Span
	if p.failed() {
		return nil
	}
	return &ast.MatchExpr{Scrutinee: scrutinee, Arms: arms, Span: start.Merge(end)}
}

func (p *Parser) parseWhileExpr() ast.Expr {
	start := p.expect(token.While).Span
	if p.failed() {
		return nil
	}
	cond := p.parseIfCondition()
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.WhileExpr{Cond: cond, Body: body, Span: start.Merge(body.Span)}
}

func (p *Parser) parseForExpr() ast.Expr {
	start := p.expect(token.For).Span
	if p.failed() {
		return nil
	}
	pat := p.parsePattern()
	p.expect(token.In)
	iter := p.parseIfCondition()
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.ForExpr{Pattern: pat, Iter: iter, Body: body, Span: start.Merge(body.Span)}
}

func (p *Parser) parseLoopExpr() ast.Expr {
	start := p.expect(token.Loop).Span
	if p.failed() {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.LoopExpr{Body: body, Span: start.Merge(body.Span)}
}

// parseClosure parses `|params| body` and `||body`, the one syntax form
// Nova's grammar adds beyond what the token set it was distilled from
// already covers.
func (p *Parser) parseClosure() ast.Expr {
	start := p.peek().Span
	var params []ast.Param
	if p.check(token.PipePipe) {
		p.advance()
	} else {
		p.expect(token.Pipe)
		for !p.check(token.Pipe) && !p.atEnd() && !p.failed() {
			pat := p.parseRangeOrPrimaryPattern()
			var ty ast.Type
			if p.check(token.Colon) {
				p.advance()
				ty = p.parseType()
			}
			if p.failed() {
				break
			}
			sp := pat.NodeSpan()
			if ty != nil {
				sp = sp.Merge(ty.NodeSpan())
			}
			params = append(params, ast.Param{Pattern: pat, Type: ty, Span: sp})
			if !p.check(token.Pipe) {
				p.expect(token.Comma)
			}
		}
		p.expect(token.Pipe)
	}
	if p.failed() {
		return nil
	}
	var retType ast.Type
	if p.check(token.Arrow) {
		p.advance()
		retType = p.parseType()
	}
	body := p.parseExpr()
	if p.failed() {
		return nil
	}
	return &ast.ClosureExpr{Params: params, ReturnType: retType, Body: body, Span: start.Merge(body.NodeSpan())}
}
