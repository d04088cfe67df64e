// Package token defines Nova's token representation: a closed token-kind
// taxonomy and a compact (kind, span) record with no embedded literal
// value. Integer/float/string text is recovered later by slicing the
// source with the token's span (see internal/parser's literal
// materialization).
package token

import (
	"unsafe"

	"github.com/novalang/novac/internal/span"
)

// Kind is a 1-byte discriminant identifying a token's lexical category.
type Kind uint8

const (
	// Special
	Eof Kind = iota
	Error

	// Literals
	IntLit
	FloatLit
	StringLit
	CharLit

	// Identifier
	Ident

	literalsEnd // marker, not a real token kind

	// Keywords
	As
	Async
	Await
	Break
	Const
	Continue
	Else
	Enum
	False
	Fn
	For
	If
	Impl
	In
	Let
	Loop
	Match
	Mod
	Mut
	Pub
	Return
	SelfValue
	SelfType
	Static
	Struct
	Trait
	True
	Type
	Unsafe
	Use
	Where
	While

	keywordsEnd // marker

	// Single-character punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	Amp
	Pipe
	Tilde
	Bang
	Eq
	Lt
	Gt
	At
	Dot
	Comma
	Semi
	Colon
	Hash
	Dollar
	Question
	Underscore

	// Multi-character operators
	DotDot
	DotDotEq
	ColonColon
	Arrow
	FatArrow
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	CaretEq
	AmpEq
	PipeEq
	EqEq
	NotEq
	LtEq
	GtEq
	AmpAmp
	PipePipe
	Shl
	Shr
	ShlEq
	ShrEq

	operatorsEnd // marker

	// Delimiters
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	delimitersEnd // marker
)

var kindNames = [...]string{
	Eof:        "eof",
	Error:      "error",
	IntLit:     "int literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	CharLit:    "char literal",
	Ident:      "identifier",
	As:         "as",
	Async:      "async",
	Await:      "await",
	Break:      "break",
	Const:      "const",
	Continue:   "continue",
	Else:       "else",
	Enum:       "enum",
	False:      "false",
	Fn:         "fn",
	For:        "for",
	If:         "if",
	Impl:       "impl",
	In:         "in",
	Let:        "let",
	Loop:       "loop",
	Match:      "match",
	Mod:        "mod",
	Mut:        "mut",
	Pub:        "pub",
	Return:     "return",
	SelfValue:  "self",
	SelfType:   "Self",
	Static:     "static",
	Struct:     "struct",
	Trait:      "trait",
	True:       "true",
	Type:       "type",
	Unsafe:     "unsafe",
	Use:        "use",
	Where:      "where",
	While:      "while",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Caret:      "^",
	Amp:        "&",
	Pipe:       "|",
	Tilde:      "~",
	Bang:       "!",
	Eq:         "=",
	Lt:         "<",
	Gt:         ">",
	At:         "@",
	Dot:        ".",
	Comma:      ",",
	Semi:       ";",
	Colon:      ":",
	Hash:       "#",
	Dollar:     "$",
	Question:   "?",
	Underscore: "_",
	DotDot:     "..",
	DotDotEq:   "..=",
	ColonColon: "::",
	Arrow:      "->",
	FatArrow:   "=>",
	PlusEq:     "+=",
	MinusEq:    "-=",
	StarEq:     "*=",
	SlashEq:    "/=",
	PercentEq:  "%=",
	CaretEq:    "^=",
	AmpEq:      "&=",
	PipeEq:     "|=",
	EqEq:       "==",
	NotEq:      "!=",
	LtEq:       "<=",
	GtEq:       ">=",
	AmpAmp:     "&&",
	PipePipe:   "||",
	Shl:        "<<",
	Shr:        ">>",
	ShlEq:      "<<=",
	ShrEq:      ">>=",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
}

// String returns a human-readable display form of the kind, suitable for
// error messages ("expected ;, found fn").
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsLiteral reports whether k is one of the literal kinds.
func (k Kind) IsLiteral() bool {
	return k > Error && k < literalsEnd && k != Ident
}

// IsKeyword reports whether k is a reserved keyword.
func (k Kind) IsKeyword() bool {
	return k > literalsEnd && k < keywordsEnd
}

// IsOperator reports whether k is a single- or multi-character operator.
func (k Kind) IsOperator() bool {
	return k > keywordsEnd && k < operatorsEnd
}

// IsDelimiter reports whether k is one of the bracket/paren/brace kinds.
func (k Kind) IsDelimiter() bool {
	return k > operatorsEnd && k < delimitersEnd
}

var keywords = map[string]Kind{
	"as": As, "async": Async, "await": Await, "break": Break,
	"const": Const, "continue": Continue, "else": Else, "enum": Enum,
	"false": False, "fn": Fn, "for": For, "if": If, "impl": Impl,
	"in": In, "let": Let, "loop": Loop, "match": Match, "mod": Mod,
	"mut": Mut, "pub": Pub, "return": Return, "self": SelfValue,
	"Self": SelfType, "static": Static, "struct": Struct, "trait": Trait,
	"true": True, "type": Type, "unsafe": Unsafe, "use": Use,
	"where": Where, "while": While,
}

// FromKeyword looks up a keyword kind by its exact spelling. The second
// return value is false when text is not a reserved word (in which case
// the lexer emits Ident instead).
func FromKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// Precedence returns the (left, right) binding power of a binary operator
// token, matching spec.md's Pratt table. The second return value is false
// if k is not a binary operator.
func (k Kind) Precedence() (left, right uint8, ok bool) {
	switch k {
	case Eq, PlusEq, MinusEq, StarEq, SlashEq, PercentEq, AmpEq, PipeEq, CaretEq, ShlEq, ShrEq:
		return 1, 0, true // right-associative
	case PipePipe:
		return 2, 3, true
	case AmpAmp:
		return 4, 5, true
	case Pipe:
		return 4, 5, true
	case Caret:
		return 5, 6, true
	case Amp:
		return 6, 7, true
	case EqEq, NotEq:
		return 7, 8, true
	case Lt, LtEq, Gt, GtEq:
		return 8, 9, true
	case Shl, Shr:
		return 9, 10, true
	case Plus, Minus:
		return 10, 11, true
	case Star, Slash, Percent:
		return 12, 13, true
	default:
		return 0, 0, false
	}
}

// UnaryPrecedence is the fixed binding power used when re-entering the
// Pratt loop after a prefix operator (-, !, &, &mut, *).
const UnaryPrecedence uint8 = 14

// Token is a (kind, span) record. No literal value is stored; recovering
// the lexeme requires slicing the original source with Span. Layout is
// fixed at 12 bytes (1-byte Kind + 3 bytes padding + 8-byte Span) to keep
// large token vectors cache-friendly.
type Token struct {
	Kind Kind
	_    [3]byte
	Span span.Span
}

// New constructs a token. New, EOF and ErrorToken below are this
// package's constructors; Kind and Span are exported fields, so a Token
// can also be built as a composite literal.
func New(kind Kind, sp span.Span) Token {
	return Token{Kind: kind, Span: sp}
}

// EOF constructs the end-of-file token at the given byte offset: an
// empty span [pos, pos).
func EOF(pos uint32) Token {
	return Token{Kind: Eof, Span: span.New(pos, pos)}
}

// ErrorToken constructs an Error token spanning the offending bytes.
func ErrorToken(sp span.Span) Token {
	return Token{Kind: Error, Span: sp}
}

var _ [12]byte = [unsafe.Sizeof(Token{})]byte{}
