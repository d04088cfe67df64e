// Package parser implements Nova's recursive-descent, Pratt-expression
// parser: a token vector in, an *ast.Program out, halting at the first
// structured error. Expression and block nesting are each bounded at 64
// to guarantee termination on adversarial input without relying on the
// Go call stack overflowing gracefully.
package parser

import (
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/span"
	"github.com/novalang/novac/internal/token"
)

// MaxExprDepth and MaxBlockDepth bound recursive descent (spec.md §5).
const (
	MaxExprDepth  = 64
	MaxBlockDepth = 64
)

// Parser holds the token cursor and accumulated nesting-depth counters.
type Parser struct {
	source string
	tokens []token.Token
	pos    int

	exprDepth  int
	blockDepth int

	// suppressStructLit is set while parsing the head of an if/while/
	// match/for, where a bare `Ident {` must not be read as a struct
	// literal -- the brace belongs to the following block instead.
	suppressStructLit bool

	err *parserr.Error // first error encountered; halts further parsing
}

// New creates a Parser over a token vector produced by internal/lexer.
// source is retained only to materialize literal lexemes from spans.
func New(source string, tokens []token.Token) *Parser {
	return &Parser{source: source, tokens: tokens}
}

// ParseProgram parses the full token vector into a Program. It returns
// the program built so far (possibly partial) together with the first
// error encountered, if any -- mirroring spec.md §7's halt-at-first-error
// contract while still giving the CLI something to report against.
func (p *Parser) ParseProgram() (*ast.Program, *parserr.Error) {
	start := p.peek().Span
	var items []ast.Item
	for !p.atEnd() && p.err == nil {
		item := p.parseItem()
		if p.err != nil {
			break
		}
		items = append(items, item)
	}
	end := start
	if len(items) > 0 {
		end = items[len(items)-1].NodeSpan()
	}
	return &ast.Program{Items: items, Span: start.Merge(end)}, p.err
}

// --- token cursor helpers ---

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Eof
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.Eof
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if t.Kind != token.Eof {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.peek().Kind == k
}

// expect consumes the current token if it matches k, recording an error
// and returning the current, unconsumed token otherwise. Callers must check p.failed()
// after calling expect before using the result's span.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.fail(parserr.NewUnexpectedToken(k.String(), p.peek().Kind, p.peek().Span))
	return p.peek()
}

func (p *Parser) fail(e *parserr.Error) {
	if p.err == nil {
		p.err = e
	}
}

func (p *Parser) failed() bool {
	return p.err != nil
}

func (p *Parser) lexeme(sp span.Span) string {
	return sp.Slice(p.source)
}

// enterExpr / enterBlock bound recursion depth. Each returns a function
// that must be deferred to decrement the counter on every exit path,
// including error returns.
func (p *Parser) enterExpr() (func(), bool) {
	p.exprDepth++
	if p.exprDepth > MaxExprDepth {
		p.fail(parserr.NewNestingTooDeep(p.exprDepth, MaxExprDepth, p.peek().Span))
		return func() { p.exprDepth-- }, false
	}
	return func() { p.exprDepth-- }, true
}

func (p *Parser) enterBlock() (func(), bool) {
	p.blockDepth++
	if p.blockDepth > MaxBlockDepth {
		p.fail(parserr.NewNestingTooDeep(p.blockDepth, MaxBlockDepth, p.peek().Span))
		return func() { p.blockDepth-- }, false
	}
	return func() { p.blockDepth-- }, true
}
