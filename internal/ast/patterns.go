package ast

import "github.com/novalang/novac/internal/span"

// Pattern is any pattern node: the left side of a `let`, a function
// parameter, a `match` arm, or a `for` loop binding.
type Pattern interface {
	Node
	patternNode()
}

type WildcardPattern struct {
	Span span.Span
}

func (p *WildcardPattern) NodeSpan() span.Span { return p.Span }
func (p *WildcardPattern) patternNode()        {}

type IdentPattern struct {
	Name    Ident
	Mutable bool
	Span    span.Span
}

func (p *IdentPattern) NodeSpan() span.Span { return p.Span }
func (p *IdentPattern) patternNode()        {}

type LiteralPattern struct {
	Value Literal
	Span  span.Span
}

func (p *LiteralPattern) NodeSpan() span.Span { return p.Span }
func (p *LiteralPattern) patternNode()        {}

type TuplePattern struct {
	Elements []Pattern
	Span     span.Span
}

func (p *TuplePattern) NodeSpan() span.Span { return p.Span }
func (p *TuplePattern) patternNode()        {}

type StructPattern struct {
	Path   Path
	Fields []FieldPattern
	Span   span.Span
}

func (p *StructPattern) NodeSpan() span.Span { return p.Span }
func (p *StructPattern) patternNode()        {}

// FieldPattern is one `name` or `name: pattern` entry of a struct
// pattern. Pattern is nil for the field-name-shorthand form.
type FieldPattern struct {
	Name    Ident
	Pattern Pattern
	Span    span.Span
}

type TupleStructPattern struct {
	Path     Path
	Elements []Pattern
	Span     span.Span
}

func (p *TupleStructPattern) NodeSpan() span.Span { return p.Span }
func (p *TupleStructPattern) patternNode()        {}

type OrPattern struct {
	Alternatives []Pattern
	Span         span.Span
}

func (p *OrPattern) NodeSpan() span.Span { return p.Span }
func (p *OrPattern) patternNode()        {}

type RefPattern struct {
	Mutable bool
	Inner   Pattern
	Span    span.Span
}

func (p *RefPattern) NodeSpan() span.Span { return p.Span }
func (p *RefPattern) patternNode()        {}

// RangePattern is `start..end` or `start..=end` in pattern position,
// either bound optional.
type RangePattern struct {
	Start     Pattern
	End       Pattern
	Inclusive bool
	Span      span.Span
}

func (p *RangePattern) NodeSpan() span.Span { return p.Span }
func (p *RangePattern) patternNode()        {}
