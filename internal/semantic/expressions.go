package semantic

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/parserr"
)

func (c *Checker) checkExpr(e ast.Expr) *TypedExpr {
	if e == nil || c.failed() {
		return &TypedExpr{Node: e, Type: Unknown{}}
	}
	switch ex := e.(type) {
	case *ast.LiteralExpr:
		return &TypedExpr{Node: e, Type: literalType(ex.Value)}

	case *ast.PathExpr:
		name := lastSegmentName(ex.Path)
		ty, ok := c.lookup(name)
		if !ok {
			if fn, ok := c.funcs[name]; ok {
				ty = fn
			} else {
				c.fail(parserr.NewUndefinedVariable(name, ex.Span))
				return &TypedExpr{Node: e, Type: Unknown{}}
			}
		}
		return &TypedExpr{Node: e, Type: ty}

	case *ast.BinaryExpr:
		return c.checkBinary(ex)

	case *ast.UnaryExpr:
		operand := c.checkExpr(ex.Operand)
		return &TypedExpr{Node: e, Type: operand.Type}

	case *ast.CallExpr:
		return c.checkCall(ex)

	case *ast.FieldExpr:
		return c.checkField(ex)

	case *ast.IndexExpr:
		recv := c.checkExpr(ex.Receiver)
		c.checkExpr(ex.Index)
		elemTy := TypeInfo(Unknown{})
		switch rt := recv.Type.(type) {
		case Array:
			elemTy = rt.Element
		case Slice:
			elemTy = rt.Element
		}
		return &TypedExpr{Node: e, Type: elemTy}

	case *ast.StructLitExpr:
		return c.checkStructLit(ex)

	case *ast.ArrayExpr:
		if len(ex.Elements) == 0 {
			return &TypedExpr{Node: e, Type: Array{Element: Unknown{}, Len: 0}}
		}
		first := c.checkExpr(ex.Elements[0])
		for _, el := range ex.Elements[1:] {
			t := c.checkExpr(el)
			if !Equal(first.Type, t.Type) {
				c.failTypeMismatch(first.Type, t.Type, el.NodeSpan())
				return &TypedExpr{Node: e, Type: Unknown{}}
			}
		}
		return &TypedExpr{Node: e, Type: Array{Element: first.Type, Len: int64(len(ex.Elements))}}

	case *ast.TupleExpr:
		elems := make([]TypeInfo, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = c.checkExpr(el).Type
		}
		if len(elems) == 0 {
			return &TypedExpr{Node: e, Type: Unit}
		}
		return &TypedExpr{Node: e, Type: Tuple{Elements: elems}}

	case *ast.IfExpr:
		return c.checkIf(ex)

	case *ast.MatchExpr:
		return c.checkMatch(ex)

	case *ast.WhileExpr:
		c.checkExpr(ex.Cond)
		c.checkBlock(ex.Body)
		return &TypedExpr{Node: e, Type: Unit}

	case *ast.ForExpr:
		iter := c.checkExpr(ex.Iter)
		c.pushScope()
		c.declare(patternName(ex.Pattern), elementTypeOf(iter.Type))
		c.checkStmts(ex.Body)
		c.popScope()
		return &TypedExpr{Node: e, Type: Unit}

	case *ast.LoopExpr:
		c.checkBlock(ex.Body)
		return &TypedExpr{Node: e, Type: Never}

	case *ast.BlockExpr:
		tb := c.checkBlock(ex.Block)
		return &TypedExpr{Node: e, Type: tb.Type}

	case *ast.ClosureExpr:
		return c.checkClosure(ex)

	case *ast.ReturnExpr:
		if ex.Value != nil {
			v := c.checkExpr(ex.Value)
			if c.returnType != nil && !Equal(c.returnType, v.Type) {
				c.failTypeMismatch(c.returnType, v.Type, ex.Span)
			}
		}
		return &TypedExpr{Node: e, Type: Never}

	case *ast.BreakExpr:
		if ex.Value != nil {
			c.checkExpr(ex.Value)
		}
		return &TypedExpr{Node: e, Type: Never}

	case *ast.ContinueExpr:
		return &TypedExpr{Node: e, Type: Never}

	case *ast.RangeExpr:
		if ex.Start != nil {
			c.checkExpr(ex.Start)
		}
		if ex.End != nil {
			c.checkExpr(ex.End)
		}
		return &TypedExpr{Node: e, Type: Unknown{}}

	case *ast.RefExpr:
		inner := c.checkExpr(ex.Operand)
		return &TypedExpr{Node: e, Type: Ref{Mutable: ex.Mutable, Inner: inner.Type}}

	case *ast.DerefExpr:
		inner := c.checkExpr(ex.Operand)
		if r, ok := inner.Type.(Ref); ok {
			return &TypedExpr{Node: e, Type: r.Inner}
		}
		return &TypedExpr{Node: e, Type: Unknown{}}

	case *ast.AwaitExpr:
		inner := c.checkExpr(ex.Operand)
		return &TypedExpr{Node: e, Type: inner.Type}

	case *ast.TryExpr:
		inner := c.checkExpr(ex.Operand)
		return &TypedExpr{Node: e, Type: inner.Type}

	default:
		return &TypedExpr{Node: e, Type: Unknown{}}
	}
}

func (c *Checker) checkBinary(ex *ast.BinaryExpr) *TypedExpr {
	left := c.checkExpr(ex.Left)
	right := c.checkExpr(ex.Right)

	switch ex.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Rem,
		ast.BitAnd, ast.BitOr, ast.BitXor, ast.Shl, ast.Shr:
		if !Equal(left.Type, right.Type) {
			c.failTypeMismatch(left.Type, right.Type, ex.Span)
			return &TypedExpr{Node: ex, Type: Unknown{}}
		}
		return &TypedExpr{Node: ex, Type: left.Type}

	case ast.LogAnd, ast.LogOr:
		if !Equal(left.Type, Bool) || !Equal(right.Type, Bool) {
			c.failTypeMismatch(Bool, left.Type, ex.Span)
			return &TypedExpr{Node: ex, Type: Unknown{}}
		}
		return &TypedExpr{Node: ex, Type: Bool}

	case ast.CmpEq, ast.CmpNe, ast.CmpLt, ast.CmpLe, ast.CmpGt, ast.CmpGe:
		if !Equal(left.Type, right.Type) {
			c.failTypeMismatch(left.Type, right.Type, ex.Span)
			return &TypedExpr{Node: ex, Type: Unknown{}}
		}
		return &TypedExpr{Node: ex, Type: Bool}

	case ast.Assign, ast.AddAssign, ast.SubAssign, ast.MulAssign, ast.DivAssign, ast.RemAssign,
		ast.BitAndAssign, ast.BitOrAssign, ast.BitXorAssign, ast.ShlAssign, ast.ShrAssign:
		if !Equal(left.Type, right.Type) {
			c.failTypeMismatch(left.Type, right.Type, ex.Span)
			return &TypedExpr{Node: ex, Type: Unknown{}}
		}
		return &TypedExpr{Node: ex, Type: Unit}

	default:
		return &TypedExpr{Node: ex, Type: Unknown{}}
	}
}

func (c *Checker) checkCall(ex *ast.CallExpr) *TypedExpr {
	args := make([]*TypedExpr, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = c.checkExpr(a)
	}

	if path, ok := ex.Callee.(*ast.PathExpr); ok {
		name := lastSegmentName(path.Path)
		if fn, ok := c.funcs[name]; ok {
			if len(fn.Params) != len(args) {
				c.fail(parserr.NewUndefinedFunction(name, ex.Span))
				return &TypedExpr{Node: ex, Type: Unknown{}}
			}
			for i, p := range fn.Params {
				if !Equal(p, args[i].Type) {
					c.failTypeMismatch(p, args[i].Type, ex.Args[i].NodeSpan())
					return &TypedExpr{Node: ex, Type: Unknown{}}
				}
			}
			return &TypedExpr{Node: ex, Type: fn.Return}
		}
		if _, ok := c.structs[name]; ok {
			// Tuple-struct-style construction call; field types are not
			// re-validated here (StructLitExpr covers the named-field form).
			return &TypedExpr{Node: ex, Type: Named{Name: name}}
		}
		c.fail(parserr.NewUndefinedFunction(name, ex.Span))
		return &TypedExpr{Node: ex, Type: Unknown{}}
	}

	callee := c.checkExpr(ex.Callee)
	if fn, ok := callee.Type.(Func); ok {
		return &TypedExpr{Node: ex, Type: fn.Return}
	}
	return &TypedExpr{Node: ex, Type: Unknown{}}
}

func (c *Checker) checkField(ex *ast.FieldExpr) *TypedExpr {
	recv := c.checkExpr(ex.Receiver)
	named, ok := recv.Type.(Named)
	if !ok {
		return &TypedExpr{Node: ex, Type: Unknown{}}
	}
	if sd, ok := c.structs[named.Name]; ok {
		for _, f := range sd.Fields {
			if f.Name.Name == ex.Field.Name {
				return &TypedExpr{Node: ex, Type: c.resolveType(f.Type)}
			}
		}
	}
	return &TypedExpr{Node: ex, Type: Unknown{}}
}

func (c *Checker) checkStructLit(ex *ast.StructLitExpr) *TypedExpr {
	name := lastSegmentName(ex.Path)
	sd, ok := c.structs[name]
	if !ok {
		c.fail(parserr.NewUndefinedType(name, ex.Span))
		return &TypedExpr{Node: ex, Type: Unknown{}}
	}
	fieldTypes := make(map[string]TypeInfo, len(sd.Fields))
	for _, f := range sd.Fields {
		fieldTypes[f.Name.Name] = c.resolveType(f.Type)
	}
	for _, init := range ex.Fields {
		val := c.checkExpr(init.Value)
		if want, ok := fieldTypes[init.Name.Name]; ok && !Equal(want, val.Type) {
			c.failTypeMismatch(want, val.Type, init.Span)
			return &TypedExpr{Node: ex, Type: Unknown{}}
		}
	}
	return &TypedExpr{Node: ex, Type: Named{Name: name}}
}

func (c *Checker) checkIf(ex *ast.IfExpr) *TypedExpr {
	c.checkExpr(ex.Cond)
	then := c.checkBlock(ex.Then)
	if ex.Else == nil {
		return &TypedExpr{Node: ex, Type: Unit}
	}
	els := c.checkExpr(ex.Else)
	if !Equal(then.Type, els.Type) {
		c.failTypeMismatch(then.Type, els.Type, ex.Span)
		return &TypedExpr{Node: ex, Type: Unknown{}}
	}
	return &TypedExpr{Node: ex, Type: then.Type}
}

func (c *Checker) checkMatch(ex *ast.MatchExpr) *TypedExpr {
	c.checkExpr(ex.Scrutinee)
	var resultTy TypeInfo = Unknown{}
	for i, arm := range ex.Arms {
		c.pushScope()
		c.bindPattern(arm.Pattern)
		if arm.Guard != nil {
			c.checkExpr(arm.Guard)
		}
		body := c.checkExpr(arm.Body)
		c.popScope()
		if i == 0 {
			resultTy = body.Type
		} else if !Equal(resultTy, body.Type) {
			c.failTypeMismatch(resultTy, body.Type, arm.Span)
			return &TypedExpr{Node: ex, Type: Unknown{}}
		}
	}
	return &TypedExpr{Node: ex, Type: resultTy}
}

// bindPattern declares every identifier a pattern introduces, using
// Unknown for their types -- this checker does not narrow a scrutinee's
// type onto its arms' bindings, which would need enum variant field
// types threaded through from Named to a concrete field-type lookup.
func (c *Checker) bindPattern(p ast.Pattern) {
	switch pt := p.(type) {
	case *ast.IdentPattern:
		c.declare(pt.Name.Name, Unknown{})
	case *ast.RefPattern:
		c.bindPattern(pt.Inner)
	case *ast.TuplePattern:
		for _, e := range pt.Elements {
			c.bindPattern(e)
		}
	case *ast.TupleStructPattern:
		for _, e := range pt.Elements {
			c.bindPattern(e)
		}
	case *ast.StructPattern:
		for _, f := range pt.Fields {
			if f.Pattern != nil {
				c.bindPattern(f.Pattern)
			} else {
				c.declare(f.Name.Name, Unknown{})
			}
		}
	case *ast.OrPattern:
		for _, a := range pt.Alternatives {
			c.bindPattern(a)
		}
	}
}

func (c *Checker) checkClosure(ex *ast.ClosureExpr) *TypedExpr {
	c.pushScope()
	params := make([]TypeInfo, len(ex.Params))
	for i, p := range ex.Params {
		ty := c.resolveType(p.Type)
		c.declare(patternName(p.Pattern), ty)
		params[i] = ty
	}
	body := c.checkExpr(ex.Body)
	c.popScope()
	ret := body.Type
	if ex.ReturnType != nil {
		ret = c.resolveType(ex.ReturnType)
	}
	return &TypedExpr{Node: ex, Type: Func{Params: params, Return: ret}}
}

func literalType(l ast.Literal) TypeInfo {
	switch l.(type) {
	case ast.IntLiteral:
		return DefaultInt
	case ast.FloatLiteral:
		return DefaultFloat
	case ast.StringLiteral:
		return Str
	case ast.BoolLiteral:
		return Bool
	case ast.CharLiteral:
		return Char
	default:
		return Unknown{}
	}
}

func elementTypeOf(t TypeInfo) TypeInfo {
	switch v := t.(type) {
	case Array:
		return v.Element
	case Slice:
		return v.Element
	default:
		return Unknown{}
	}
}

func lastSegmentName(p ast.Path) string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Ident.Name
}
