package lexer

import (
	"testing"

	"github.com/novalang/novac/internal/token"
)

func kinds(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	toks := New(src).Tokenize()
	got := kinds(t, toks)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %v, want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	assertKinds(t, "", token.Eof)
}

func TestWhitespaceOnly(t *testing.T) {
	assertKinds(t, "   \t\r\n  ", token.Eof)
}

func TestLineComment(t *testing.T) {
	assertKinds(t, "// a comment\nlet", token.Let, token.Eof)
}

func TestLineCommentAtEof(t *testing.T) {
	assertKinds(t, "let // trailing, no newline", token.Let, token.Eof)
}

func TestBlockComment(t *testing.T) {
	assertKinds(t, "/* comment */let", token.Let, token.Eof)
}

func TestNestedBlockComment(t *testing.T) {
	assertKinds(t, "/* outer /* inner */ still outer */let", token.Let, token.Eof)
}

func TestUnterminatedBlockCommentDoesNotPanic(t *testing.T) {
	toks := New("/* never closed").Tokenize()
	if len(toks) != 1 || toks[0].Kind != token.Eof {
		t.Fatalf("expected a single Eof token, got %v", toks)
	}
}

func TestDelimiters(t *testing.T) {
	assertKinds(t, "(){}[]", token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Eof)
}

func TestPunctuation(t *testing.T) {
	assertKinds(t, ",;~@?#$", token.Comma, token.Semi, token.Tilde, token.At,
		token.Question, token.Hash, token.Dollar, token.Eof)
}

func TestUnderscoreAlone(t *testing.T) {
	assertKinds(t, "_", token.Underscore, token.Eof)
}

func TestUnderscoreAsIdentifierPrefix(t *testing.T) {
	assertKinds(t, "_foo _123", token.Ident, token.Ident, token.Eof)
}
