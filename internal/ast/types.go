package ast

import "github.com/novalang/novac/internal/span"

// Type is any type-annotation node.
type Type interface {
	Node
	typeNode()
}

type PathType struct {
	Path Path
	Span span.Span
}

func (t *PathType) NodeSpan() span.Span { return t.Span }
func (t *PathType) typeNode()           {}

type TupleType struct {
	Elements []Type
	Span     span.Span
}

func (t *TupleType) NodeSpan() span.Span { return t.Span }
func (t *TupleType) typeNode()           {}

// ArrayType is `[T; N]` -- a fixed-length array whose length is itself an
// expression (a const, per the grammar it was distilled from).
type ArrayType struct {
	Element Type
	Len     Expr
	Span    span.Span
}

func (t *ArrayType) NodeSpan() span.Span { return t.Span }
func (t *ArrayType) typeNode()           {}

// SliceType is `[T]` -- an unsized view, distinct from ArrayType.
type SliceType struct {
	Element Type
	Span    span.Span
}

func (t *SliceType) NodeSpan() span.Span { return t.Span }
func (t *SliceType) typeNode()           {}

type RefType struct {
	Mutable bool
	Inner   Type
	Span    span.Span
}

func (t *RefType) NodeSpan() span.Span { return t.Span }
func (t *RefType) typeNode()           {}

// FnType is a function-pointer type `fn(T, U) -> R`.
type FnType struct {
	Params     []Type
	ReturnType Type // nil for an implicit unit return
	Span       span.Span
}

func (t *FnType) NodeSpan() span.Span { return t.Span }
func (t *FnType) typeNode()           {}

// NeverType is `!`, the uninhabited bottom type.
type NeverType struct {
	Span span.Span
}

func (t *NeverType) NodeSpan() span.Span { return t.Span }
func (t *NeverType) typeNode()           {}

// InferType is `_` in type position, asking the checker to infer.
type InferType struct {
	Span span.Span
}

func (t *InferType) NodeSpan() span.Span { return t.Span }
func (t *InferType) typeNode()           {}
