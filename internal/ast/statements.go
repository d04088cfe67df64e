package ast

import "github.com/novalang/novac/internal/span"

// Block is a brace-delimited sequence of statements. Per Nova's
// expression-oriented grammar, a block's value is the trailing
// expression-without-semicolon, if any; the parser represents that by
// leaving the last Stmt's ExprStmt.HasSemi false rather than threading a
// separate "tail expression" field, keeping Block's shape identical to
// the definition it was distilled from.
type Block struct {
	Stmts []Stmt
	Span  span.Span
}

func (b *Block) NodeSpan() span.Span { return b.Span }

// Stmt is a single statement inside a Block.
type Stmt interface {
	Node
	stmtNode()
}

// LetStmt is a `let pattern [: Type] [= value];` binding.
type LetStmt struct {
	Pattern Pattern
	Type    Type // nil when the annotation is omitted
	Value   Expr // nil when there is no initializer
	Span    span.Span
}

func (l *LetStmt) NodeSpan() span.Span { return l.Span }
func (l *LetStmt) stmtNode()           {}

// ExprStmt is an expression used as a statement. HasSemi distinguishes a
// statement-terminated expression (`foo();`) from a block's trailing
// value expression (`foo()`).
type ExprStmt struct {
	Expr    Expr
	HasSemi bool
	Span    span.Span
}

func (e *ExprStmt) NodeSpan() span.Span { return e.Span }
func (e *ExprStmt) stmtNode()           {}

// ItemStmt wraps a nested item declaration (e.g. a local `struct` or `fn`)
// appearing inside a block.
type ItemStmt struct {
	Item Item
	Span span.Span
}

func (s *ItemStmt) NodeSpan() span.Span { return s.Span }
func (s *ItemStmt) stmtNode()           {}
