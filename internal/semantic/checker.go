package semantic

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/span"
)

// Checker holds the declaration tables and scope stack for one Check
// call. It halts at the first error, mirroring internal/parser's
// halt-at-first-error contract.
type Checker struct {
	structs map[string]*ast.StructDef
	enums   map[string]*ast.EnumDef
	funcs   map[string]Func

	scopes     []map[string]TypeInfo
	returnType TypeInfo

	err *parserr.Error
}

// Check type-checks a parsed program, returning the typed functions, or
// nil and the first error encountered.
func Check(prog *ast.Program) (*TypedProgram, *parserr.Error) {
	c := &Checker{
		structs: make(map[string]*ast.StructDef),
		enums:   make(map[string]*ast.EnumDef),
		funcs:   make(map[string]Func),
	}
	c.registerItems(prog.Items)
	if c.failed() {
		return nil, c.err
	}

	var out TypedProgram
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Function:
			tf := c.checkFunction(it)
			if c.failed() {
				return nil, c.err
			}
			out.Functions = append(out.Functions, tf)
		case *ast.ImplBlock:
			for _, m := range it.Items {
				fi, ok := m.(ast.ImplFunctionItem)
				if !ok {
					continue
				}
				tf := c.checkFunction(fi.Function)
				if c.failed() {
					return nil, c.err
				}
				out.Functions = append(out.Functions, tf)
			}
		}
	}
	return &out, nil
}

// registerItems performs the forward-reference pass: struct/enum/function
// declarations must be visible to every function body regardless of
// declaration order, so their signatures are collected before any body is
// checked.
func (c *Checker) registerItems(items []ast.Item) {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.StructDef:
			c.structs[it.Name.Name] = it
		case *ast.EnumDef:
			c.enums[it.Name.Name] = it
		case *ast.Function:
			c.funcs[it.Name.Name] = c.resolveFuncType(it)
		}
	}
}

func (c *Checker) resolveFuncType(f *ast.Function) Func {
	params := make([]TypeInfo, len(f.Params))
	for i, p := range f.Params {
		params[i] = c.resolveType(p.Type)
	}
	ret := TypeInfo(Unit)
	if f.ReturnType != nil {
		ret = c.resolveType(f.ReturnType)
	}
	return Func{Params: params, Return: ret}
}

func (c *Checker) checkFunction(f *ast.Function) *TypedFunction {
	c.pushScope()
	defer c.popScope()

	params := make([]TypedParam, len(f.Params))
	for i, p := range f.Params {
		ty := c.resolveType(p.Type)
		name := patternName(p.Pattern)
		c.declare(name, ty)
		params[i] = TypedParam{Name: name, Type: ty}
	}

	retTy := TypeInfo(Unit)
	if f.ReturnType != nil {
		retTy = c.resolveType(f.ReturnType)
	}
	prevRet := c.returnType
	c.returnType = retTy
	defer func() { c.returnType = prevRet }()

	body := c.checkStmts(f.Body)
	if c.failed() {
		return nil
	}
	if !Equal(body.Type, Never) && !Equal(body.Type, Unit) && !Equal(body.Type, retTy) {
		c.fail(parserr.NewTypeMismatch(
			"function body type "+body.Type.String()+" does not match declared return type "+retTy.String(),
			f.Body.Span,
		))
		return nil
	}

	return &TypedFunction{Name: f.Name.Name, Params: params, ReturnType: retTy, Body: body}
}

// --- scope stack ---

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, make(map[string]TypeInfo))
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) declare(name string, ty TypeInfo) {
	if name == "" || name == "_" {
		return
	}
	c.scopes[len(c.scopes)-1][name] = ty
}

func (c *Checker) lookup(name string) (TypeInfo, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if ty, ok := c.scopes[i][name]; ok {
			return ty, true
		}
	}
	return nil, false
}

func (c *Checker) fail(e *parserr.Error) {
	if c.err == nil {
		c.err = e
	}
}

func (c *Checker) failed() bool { return c.err != nil }

func (c *Checker) failTypeMismatch(expected, found TypeInfo, sp span.Span) {
	c.fail(parserr.NewTypeMismatch("expected "+expected.String()+", found "+found.String(), sp))
}

func patternName(p ast.Pattern) string {
	switch pt := p.(type) {
	case *ast.IdentPattern:
		return pt.Name.Name
	case *ast.RefPattern:
		return patternName(pt.Inner)
	default:
		return "_"
	}
}
