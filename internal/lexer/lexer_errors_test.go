package lexer

import (
	"strings"
	"testing"

	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/token"
)

func TestInvalidCharacterReportsError(t *testing.T) {
	l := New("let x = `")
	toks := l.Tokenize()
	if toks[len(toks)-2].Kind != token.Error {
		t.Fatalf("expected trailing Error token, got %v", kinds(t, toks))
	}
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != parserr.InvalidCharacter {
		t.Fatalf("expected one InvalidCharacter error, got %v", l.Errors())
	}
}

func TestBomIsInvalidCharacter(t *testing.T) {
	l := New("\xEF\xBB\xBFfn main() {}")
	toks := l.Tokenize()
	if toks[0].Kind != token.Error {
		t.Fatalf("expected a leading BOM to lex as Error, got %v", kinds(t, toks))
	}
	if len(l.Errors()) == 0 || l.Errors()[0].Kind != parserr.InvalidCharacter {
		t.Fatalf("expected InvalidCharacter for BOM byte, got %v", l.Errors())
	}
}

func TestNestingTooDeepOnRunawayCommentNesting(t *testing.T) {
	var b strings.Builder
	b.WriteString("/*")
	for i := 0; i < MaxCommentDepth+1; i++ {
		b.WriteString(" /*")
	}
	b.WriteString(" */")
	l := New(b.String())
	l.Tokenize()
	found := false
	for _, e := range l.Errors() {
		if e.Kind == parserr.NestingTooDeep {
			found = true
			if e.Max != MaxCommentDepth {
				t.Fatalf("Max = %d, want %d", e.Max, MaxCommentDepth)
			}
		}
	}
	if !found {
		t.Fatalf("expected a NestingTooDeep error, got %v", l.Errors())
	}
}

func TestExactlyMaxCommentDepthDoesNotError(t *testing.T) {
	var b strings.Builder
	b.WriteString("/*")
	for i := 0; i < MaxCommentDepth-1; i++ {
		b.WriteString(" /*")
	}
	for i := 0; i < MaxCommentDepth; i++ {
		b.WriteString(" */")
	}
	l := New(b.String())
	l.Tokenize()
	for _, e := range l.Errors() {
		if e.Kind == parserr.NestingTooDeep {
			t.Fatalf("did not expect NestingTooDeep at exactly max depth, got %v", e)
		}
	}
}

func TestLexerNeverPanicsOnTrailingBackslashOrQuote(t *testing.T) {
	inputs := []string{`"`, `'`, `\`, "/*", "/**", `"\`}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Tokenize(%q) panicked: %v", in, r)
				}
			}()
			New(in).Tokenize()
		}()
	}
}
