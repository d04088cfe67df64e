// Package parserr defines Nova's structured compiler-error taxonomy. Every
// pass (lexer, parser, semantic analyzer) returns values of this type
// instead of raw strings or panics, so a rendering layer (internal/
// diagnostic) can format them independently of where they originated.
package parserr

import (
	"fmt"

	"github.com/novalang/novac/internal/span"
	"github.com/novalang/novac/internal/token"
)

// Code is a stable error-code string in the E0001..E9999 range.
type Code string

const (
	CodeInvalidCharacter   Code = "E0001"
	CodeUnterminatedString Code = "E0002"
	CodeInvalidEscape      Code = "E0003"
	CodeInvalidNumber      Code = "E0004"
	CodeNestingTooDeep     Code = "E0050"
	CodeUnexpectedToken    Code = "E0100"
	CodeUnexpectedEof      Code = "E0101"
	CodeInvalidLiteral     Code = "E0150"
	CodeTypeMismatch       Code = "E0200"
	CodeUndefinedVariable  Code = "E0201"
	CodeUndefinedType      Code = "E0202"
	CodeUndefinedFunction  Code = "E0203"
	CodeCustom             Code = "E9999"
)

// Kind identifies which taxonomy member an Error is, independent of its
// formatted message -- useful for tests asserting "fails with
// NestingTooDeep" without string-matching the message.
type Kind int

const (
	InvalidCharacter Kind = iota
	UnterminatedString
	InvalidEscape
	InvalidNumber
	NestingTooDeep
	UnexpectedToken
	UnexpectedEof
	InvalidLiteral
	TypeMismatch
	UndefinedVariable
	UndefinedType
	UndefinedFunction
	Custom
)

// Error is a single structured compiler diagnostic, always anchored to a
// source span.
type Error struct {
	Kind Kind
	Code Code
	Span span.Span

	// Payload fields; only the ones relevant to Kind are populated.
	Char     rune
	Expected string
	Found    token.Kind
	Depth    int
	Max      int
	LitKind  string
	Name     string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.text())
}

func (e *Error) text() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character %q", e.Char)
	case UnterminatedString:
		return "unterminated string literal"
	case InvalidEscape:
		return fmt.Sprintf("invalid escape sequence '\\%c'", e.Char)
	case InvalidNumber:
		return "invalid number literal"
	case NestingTooDeep:
		return fmt.Sprintf("nesting too deep: %d exceeds max of %d", e.Depth, e.Max)
	case UnexpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case UnexpectedEof:
		return fmt.Sprintf("unexpected end of file, expected %s", e.Expected)
	case InvalidLiteral:
		return fmt.Sprintf("invalid %s literal", e.LitKind)
	case TypeMismatch:
		return e.Message
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable: %s", e.Name)
	case UndefinedType:
		return fmt.Sprintf("undefined type: %s", e.Name)
	case UndefinedFunction:
		return fmt.Sprintf("undefined function: %s", e.Name)
	default:
		return e.Message
	}
}

// --- Constructors ---

func NewInvalidCharacter(ch rune, sp span.Span) *Error {
	return &Error{Kind: InvalidCharacter, Code: CodeInvalidCharacter, Span: sp, Char: ch}
}

func NewUnterminatedString(sp span.Span) *Error {
	return &Error{Kind: UnterminatedString, Code: CodeUnterminatedString, Span: sp}
}

func NewInvalidEscape(ch rune, sp span.Span) *Error {
	return &Error{Kind: InvalidEscape, Code: CodeInvalidEscape, Span: sp, Char: ch}
}

func NewInvalidNumber(sp span.Span) *Error {
	return &Error{Kind: InvalidNumber, Code: CodeInvalidNumber, Span: sp}
}

func NewNestingTooDeep(depth, max int, sp span.Span) *Error {
	return &Error{Kind: NestingTooDeep, Code: CodeNestingTooDeep, Span: sp, Depth: depth, Max: max}
}

func NewUnexpectedToken(expected string, found token.Kind, sp span.Span) *Error {
	return &Error{Kind: UnexpectedToken, Code: CodeUnexpectedToken, Span: sp, Expected: expected, Found: found}
}

func NewUnexpectedEof(expected string, sp span.Span) *Error {
	return &Error{Kind: UnexpectedEof, Code: CodeUnexpectedEof, Span: sp, Expected: expected}
}

func NewInvalidLiteral(litKind string, sp span.Span) *Error {
	return &Error{Kind: InvalidLiteral, Code: CodeInvalidLiteral, Span: sp, LitKind: litKind}
}

func NewTypeMismatch(message string, sp span.Span) *Error {
	return &Error{Kind: TypeMismatch, Code: CodeTypeMismatch, Span: sp, Message: message}
}

func NewUndefinedVariable(name string, sp span.Span) *Error {
	return &Error{Kind: UndefinedVariable, Code: CodeUndefinedVariable, Span: sp, Name: name}
}

func NewUndefinedType(name string, sp span.Span) *Error {
	return &Error{Kind: UndefinedType, Code: CodeUndefinedType, Span: sp, Name: name}
}

func NewUndefinedFunction(name string, sp span.Span) *Error {
	return &Error{Kind: UndefinedFunction, Code: CodeUndefinedFunction, Span: sp, Name: name}
}

func NewCustom(message string, sp span.Span) *Error {
	return &Error{Kind: Custom, Code: CodeCustom, Span: sp, Message: message}
}
