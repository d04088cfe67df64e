package lexer

import (
	"testing"

	"github.com/novalang/novac/internal/token"
)

func TestSpansAreByteOffsets(t *testing.T) {
	toks := New("let x").Tokenize()
	if toks[0].Kind != token.Let || toks[0].Span.Start() != 0 || toks[0].Span.End() != 3 {
		t.Fatalf("let token span = %v, want [0,3)", toks[0].Span)
	}
	if toks[1].Kind != token.Ident || toks[1].Span.Start() != 4 || toks[1].Span.End() != 5 {
		t.Fatalf("x token span = %v, want [4,5)", toks[1].Span)
	}
}

func TestEofSpanIsEmptyAtSourceLength(t *testing.T) {
	toks := New("ab").Tokenize()
	eof := toks[len(toks)-1]
	if eof.Kind != token.Eof {
		t.Fatalf("last token is not Eof: %v", eof.Kind)
	}
	if eof.Span.Start() != 2 || eof.Span.End() != 2 {
		t.Fatalf("Eof span = %v, want [2,2)", eof.Span)
	}
}

func TestSpanSliceRecoversLexeme(t *testing.T) {
	src := "let my_var = 42"
	toks := New(src).Tokenize()
	if got := toks[1].Span.Slice(src); got != "my_var" {
		t.Fatalf("Span.Slice = %q, want my_var", got)
	}
	if got := toks[3].Span.Slice(src); got != "42" {
		t.Fatalf("Span.Slice = %q, want 42", got)
	}
}

func TestCommentsDoNotShiftSubsequentSpans(t *testing.T) {
	src := "/* c */let"
	toks := New(src).Tokenize()
	if toks[0].Span.Start() != uint32(len("/* c */")) {
		t.Fatalf("let span start = %d, want %d", toks[0].Span.Start(), len("/* c */"))
	}
}
