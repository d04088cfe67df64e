package ast

import "github.com/novalang/novac/internal/span"

// Item is a top-level (or impl-block, or trait-block) declaration.
type Item interface {
	Node
	itemNode()
}

// Function is an `fn` declaration, either free-standing or an impl
// member. Trait members are TraitFunction.
type Function struct {
	Name        Ident
	Generics    []GenericParam
	Params      []Param
	ReturnType  Type // nil means the implicit unit return type
	WhereClause *WhereClause
	Body        *Block
	Span        span.Span
}

func (f *Function) NodeSpan() span.Span { return f.Span }
func (f *Function) itemNode()           {}

// Param is one function parameter: a pattern (almost always a plain
// identifier) with a required type annotation.
type Param struct {
	Pattern Pattern
	Type    Type
	Span    span.Span
}

// StructDef is a `struct Name { ... }` or unit `struct Name;` declaration.
// Tuple structs (`struct Name(T);`) are not represented.
type StructDef struct {
	Name     Ident
	Generics []GenericParam
	Fields   []Field
	Span     span.Span
}

func (s *StructDef) NodeSpan() span.Span { return s.Span }
func (s *StructDef) itemNode()           {}

// Field is one named, typed struct field.
type Field struct {
	Name Ident
	Type Type
	Span span.Span
}

// EnumDef is an `enum Name { ... }` declaration.
type EnumDef struct {
	Name     Ident
	Generics []GenericParam
	Variants []Variant
	Span     span.Span
}

func (e *EnumDef) NodeSpan() span.Span { return e.Span }
func (e *EnumDef) itemNode()           {}

// Variant is one member of an enum.
type Variant struct {
	Name   Ident
	Fields VariantFields
	Span   span.Span
}

// VariantFields distinguishes a unit variant (`None`), a tuple variant
// (`Some(T)`), and a struct variant (`Point { x: i32, y: i32 }`).
type VariantFields interface {
	variantFieldsNode()
}

type UnitVariantFields struct{}

func (UnitVariantFields) variantFieldsNode() {}

type TupleVariantFields struct {
	Types []Type
}

func (TupleVariantFields) variantFieldsNode() {}

type StructVariantFields struct {
	Fields []Field
}

func (StructVariantFields) variantFieldsNode() {}

// ImplBlock is an `impl [Trait for] Type { ... }` block.
type ImplBlock struct {
	Generics []GenericParam
	Trait    Type // nil for an inherent impl
	SelfType Type
	Items    []ImplItem
	Span     span.Span
}

func (b *ImplBlock) NodeSpan() span.Span { return b.Span }
func (b *ImplBlock) itemNode()           {}

// ImplItem is a member of an impl block. Nova's grammar currently allows
// only functions here, mirroring the AST it was distilled from.
type ImplItem interface {
	implItemNode()
}

type ImplFunctionItem struct {
	Function *Function
}

func (ImplFunctionItem) implItemNode() {}

// TraitDef is a `trait Name { ... }` declaration.
type TraitDef struct {
	Name     Ident
	Generics []GenericParam
	Bounds   []Type
	Items    []TraitItem
	Span     span.Span
}

func (t *TraitDef) NodeSpan() span.Span { return t.Span }
func (t *TraitDef) itemNode()           {}

// TraitItem is a member of a trait definition.
type TraitItem interface {
	traitItemNode()
}

type TraitFunctionItem struct {
	Function *TraitFunction
}

func (TraitFunctionItem) traitItemNode() {}

// TraitFunction is a function signature inside a trait, with an optional
// default body.
type TraitFunction struct {
	Name        Ident
	Generics    []GenericParam
	Params      []Param
	ReturnType  Type
	DefaultBody *Block // nil when the trait only declares the signature
	Span        span.Span
}

// UseStmt is a `use a::b::c;` import declaration.
type UseStmt struct {
	Path Path
	Span span.Span
}

func (u *UseStmt) NodeSpan() span.Span { return u.Span }
func (u *UseStmt) itemNode()           {}

// TypeAlias is a `type Alias = Type;` declaration.
type TypeAlias struct {
	Name     Ident
	Generics []GenericParam
	Type     Type
	Span     span.Span
}

func (t *TypeAlias) NodeSpan() span.Span { return t.Span }
func (t *TypeAlias) itemNode()           {}

// GenericParam is one `<T: Bound1 + Bound2>` entry.
type GenericParam struct {
	Name   Ident
	Bounds []Type
	Span   span.Span
}

// WhereClause is a trailing `where T: Bound` clause.
type WhereClause struct {
	Predicates []WherePredicate
	Span       span.Span
}

// WherePredicate is one `T: Bound1 + Bound2` entry in a where clause.
type WherePredicate struct {
	Type   Type
	Bounds []Type
	Span   span.Span
}
