package semantic

import "github.com/novalang/novac/internal/ast"

// checkBlock enters a fresh scope for a nested block (if/while/for/loop
// body, or a bare `{ ... }` expression).
func (c *Checker) checkBlock(b *ast.Block) *TypedBlock {
	c.pushScope()
	defer c.popScope()
	return c.checkStmts(b)
}

// checkStmts checks a block's statements in the CURRENT scope, without
// pushing a new frame -- used for a function body, which shares its
// scope with the parameter bindings checkFunction already declared.
func (c *Checker) checkStmts(b *ast.Block) *TypedBlock {
	var stmts []*TypedStmt
	lastTy := TypeInfo(Unit)
	for _, s := range b.Stmts {
		if c.failed() {
			break
		}
		ts, ty := c.checkStmt(s)
		if ts != nil {
			stmts = append(stmts, ts)
		}
		lastTy = ty
	}
	return &TypedBlock{Stmts: stmts, Type: lastTy}
}

func (c *Checker) checkStmt(s ast.Stmt) (*TypedStmt, TypeInfo) {
	switch st := s.(type) {
	case *ast.LetStmt:
		return c.checkLetStmt(st)
	case *ast.ExprStmt:
		te := c.checkExpr(st.Expr)
		ty := te.Type
		if st.HasSemi {
			ty = Unit
		}
		return &TypedStmt{Expr: te}, ty
	case *ast.ItemStmt:
		return c.checkItemStmt(st)
	default:
		return nil, Unit
	}
}

func (c *Checker) checkLetStmt(st *ast.LetStmt) (*TypedStmt, TypeInfo) {
	var value *TypedExpr
	inferred := TypeInfo(Unknown{})
	if st.Value != nil {
		value = c.checkExpr(st.Value)
		inferred = value.Type
	}

	ty := inferred
	if st.Type != nil {
		declared := c.resolveType(st.Type)
		if value != nil && !Equal(declared, value.Type) {
			c.failTypeMismatch(declared, value.Type, st.Span)
			return nil, Unit
		}
		ty = declared
	}

	name := patternName(st.Pattern)
	c.declare(name, ty)
	return &TypedStmt{Let: &TypedLet{Name: name, Type: ty, Value: value}}, Unit
}

func (c *Checker) checkItemStmt(st *ast.ItemStmt) (*TypedStmt, TypeInfo) {
	switch it := st.Item.(type) {
	case *ast.StructDef:
		c.structs[it.Name.Name] = it
	case *ast.EnumDef:
		c.enums[it.Name.Name] = it
	case *ast.Function:
		c.funcs[it.Name.Name] = c.resolveFuncType(it)
		c.checkFunction(it)
	}
	return nil, Unit
}
