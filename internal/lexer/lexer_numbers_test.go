package lexer

import (
	"testing"

	"github.com/novalang/novac/internal/token"
)

func TestDecimalInteger(t *testing.T) {
	assertKinds(t, "0 7 4200000", token.IntLit, token.IntLit, token.IntLit, token.Eof)
}

func TestDigitSeparators(t *testing.T) {
	assertKinds(t, "1_000_000", token.IntLit, token.Eof)
}

func TestHexBinOctIntegers(t *testing.T) {
	assertKinds(t, "0xFF 0b1010 0o17", token.IntLit, token.IntLit, token.IntLit, token.Eof)
}

func TestFloatLiteral(t *testing.T) {
	assertKinds(t, "3.14", token.FloatLit, token.Eof)
}

func TestFloatWithExponent(t *testing.T) {
	assertKinds(t, "1.5e10 2E-3 3e+4", token.FloatLit, token.FloatLit, token.FloatLit, token.Eof)
}

func TestIntegerWithDanglingExponentLetter(t *testing.T) {
	// "1e" with no digits after 'e' is not a valid exponent; 'e' starts a
	// fresh token (here, an identifier).
	assertKinds(t, "1e", token.IntLit, token.Ident, token.Eof)
}

func TestDotDotNotConfusedWithFloat(t *testing.T) {
	assertKinds(t, "0..10", token.IntLit, token.DotDot, token.IntLit, token.Eof)
}

func TestDotDotEqRange(t *testing.T) {
	assertKinds(t, "0..=10", token.IntLit, token.DotDotEq, token.IntLit, token.Eof)
}

func TestMethodCallOnIntLiteralNotTreatedAsFloat(t *testing.T) {
	// `5.to_string()` must lex as IntLit, Dot, Ident, (, ) -- not a float,
	// since there is no digit after the dot.
	assertKinds(t, "5.to_string()", token.IntLit, token.Dot, token.Ident, token.LParen, token.RParen, token.Eof)
}

func TestStripSeparators(t *testing.T) {
	if got := StripSeparators("1_000_000"); got != "1000000" {
		t.Fatalf("StripSeparators = %q, want 1000000", got)
	}
	if got := StripSeparators("42"); got != "42" {
		t.Fatalf("StripSeparators = %q, want 42", got)
	}
}
