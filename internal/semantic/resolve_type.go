package semantic

import (
	"github.com/novalang/novac/internal/ast"
)

// resolveType converts an ast.Type annotation into the TypeInfo the
// checker reasons about. Array lengths that are not integer literals
// resolve to Len -1 rather than failing the whole annotation (spec
// Non-goals exclude const evaluation). Equal compares lengths, so a
// Len -1 array type matches only another Len -1 array type.
func (c *Checker) resolveType(t ast.Type) TypeInfo {
	if t == nil {
		return Unit
	}
	switch ty := t.(type) {
	case *ast.PathType:
		if len(ty.Path.Segments) == 0 {
			return Unknown{}
		}
		name := ty.Path.Segments[len(ty.Path.Segments)-1].Ident.Name
		return c.resolveNamedPrimitive(name)
	case *ast.TupleType:
		if len(ty.Elements) == 0 {
			return Unit
		}
		elems := make([]TypeInfo, len(ty.Elements))
		for i, e := range ty.Elements {
			elems[i] = c.resolveType(e)
		}
		return Tuple{Elements: elems}
	case *ast.ArrayType:
		elem := c.resolveType(ty.Element)
		n := int64(-1)
		if lit, ok := ty.Len.(*ast.LiteralExpr); ok {
			if iv, ok := lit.Value.(ast.IntLiteral); ok {
				n = iv.Value
			}
		}
		return Array{Element: elem, Len: n}
	case *ast.SliceType:
		return Slice{Element: c.resolveType(ty.Element)}
	case *ast.RefType:
		return Ref{Mutable: ty.Mutable, Inner: c.resolveType(ty.Inner)}
	case *ast.FnType:
		params := make([]TypeInfo, len(ty.Params))
		for i, p := range ty.Params {
			params[i] = c.resolveType(p)
		}
		ret := TypeInfo(Unit)
		if ty.ReturnType != nil {
			ret = c.resolveType(ty.ReturnType)
		}
		return Func{Params: params, Return: ret}
	case *ast.NeverType:
		return Never
	case *ast.InferType:
		return Unknown{}
	default:
		return Unknown{}
	}
}

func (c *Checker) resolveNamedPrimitive(name string) TypeInfo {
	switch {
	case IsInteger(name):
		return Primitive{Name: name}
	case IsFloat(name):
		return Primitive{Name: name}
	case name == "bool":
		return Bool
	case name == "char":
		return Char
	case name == "str", name == "String":
		return Str
	}
	if _, ok := c.structs[name]; ok {
		return Named{Name: name}
	}
	if _, ok := c.enums[name]; ok {
		return Named{Name: name}
	}
	// Unregistered name: either a generic parameter or a forward
	// reference the register pass hasn't seen (e.g. a type used before
	// its declaration appears in source, still legal since register runs
	// fully before any body is checked). Treat it as a named type rather
	// than an error -- an actual undefined-type diagnostic would need a
	// generics environment this checker does not model.
	return Named{Name: name}
}
