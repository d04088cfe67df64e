// Package ast defines Nova's abstract syntax tree. Every node carries a
// Span locating it in the original source; nodes are otherwise plain
// data, built exclusively by internal/parser and read by
// internal/semantic, internal/ir, and the `parse` CLI subcommand's
// printer.
//
// Sum types (Item, Stmt, Expr, Pattern, Type, VariantFields) are modeled
// as interfaces with an unexported marker method, following the same
// convention as go/ast: callers switch on the concrete type with a type
// switch rather than inspecting a tag field.
package ast

import "github.com/novalang/novac/internal/span"

// Node is implemented by every AST node.
type Node interface {
	NodeSpan() span.Span
}

// Program is the root of a parsed Nova source file: an ordered list of
// top-level items.
type Program struct {
	Items []Item
	Span  span.Span
}

func (p *Program) NodeSpan() span.Span { return p.Span }

// Ident is a bare identifier occurrence.
type Ident struct {
	Name string
	Span span.Span
}

func (i *Ident) NodeSpan() span.Span { return i.Span }

// Path is a (possibly single-segment) qualified name such as
// `std::collections::HashMap` or a bare `foo`.
type Path struct {
	Segments []PathSegment
	Span     span.Span
}

func (p *Path) NodeSpan() span.Span { return p.Span }

// PathSegment is one `name` or `name::<T, U>` component of a Path.
type PathSegment struct {
	Ident    Ident
	Generics []Type
	Span     span.Span
}
