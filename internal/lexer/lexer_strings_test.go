package lexer

import (
	"testing"

	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/token"
)

func TestSimpleString(t *testing.T) {
	assertKinds(t, `"hello"`, token.StringLit, token.Eof)
}

func TestStringWithEscape(t *testing.T) {
	assertKinds(t, `"a\nb\tc\"d"`, token.StringLit, token.Eof)
}

func TestEmptyString(t *testing.T) {
	assertKinds(t, `""`, token.StringLit, token.Eof)
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New(`"unterminated`)
	toks := l.Tokenize()
	if toks[0].Kind != token.Error {
		t.Fatalf("expected Error token, got %v", toks[0].Kind)
	}
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Kind != parserr.UnterminatedString {
		t.Fatalf("expected one UnterminatedString error, got %v", errs)
	}
}

func TestUnterminatedStringAfterBackslashAtEof(t *testing.T) {
	l := New(`"trailing\`)
	l.Tokenize()
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != parserr.UnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", l.Errors())
	}
}

func TestCharLiteral(t *testing.T) {
	assertKinds(t, `'a' '\n' '\''`, token.CharLit, token.CharLit, token.CharLit, token.Eof)
}

func TestEmptyCharLiteralIsError(t *testing.T) {
	l := New(`''`)
	toks := l.Tokenize()
	if toks[0].Kind != token.Error {
		t.Fatalf("expected Error token for empty char literal, got %v", toks[0].Kind)
	}
}

func TestUnterminatedCharLiteral(t *testing.T) {
	l := New(`'a`)
	l.Tokenize()
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != parserr.UnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", l.Errors())
	}
}
