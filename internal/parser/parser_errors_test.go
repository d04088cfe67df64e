package parser

import (
	"strings"
	"testing"

	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parserr"
)

func mustParseErr(t *testing.T, src string) *parserr.Error {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	_, err := New(src, toks).ParseProgram()
	if err == nil {
		t.Fatalf("ParseProgram(%q) succeeded, want an error", src)
	}
	return err
}

func TestParseUnexpectedTokenAtTopLevel(t *testing.T) {
	mustParseErr(t, "let x = 1;")
}

func TestParseMissingClosingBrace(t *testing.T) {
	mustParseErr(t, "fn f() { let x = 1;")
}

func TestParseMissingFunctionParamType(t *testing.T) {
	mustParseErr(t, "fn f(a) { }")
}

func TestParseBadExpressionStart(t *testing.T) {
	mustParseErr(t, "fn f() { let x = ; }")
}

func TestParseExpressionNestingTooDeep(t *testing.T) {
	var b strings.Builder
	b.WriteString("fn f() { ")
	for i := 0; i < MaxExprDepth+8; i++ {
		b.WriteString("-")
	}
	b.WriteString("1 }")
	err := mustParseErr(t, b.String())
	if err.Kind != parserr.NestingTooDeep {
		t.Fatalf("kind = %v, want NestingTooDeep", err.Kind)
	}
}

func TestParseBlockNestingTooDeep(t *testing.T) {
	var b strings.Builder
	b.WriteString("fn f() ")
	for i := 0; i < MaxBlockDepth+8; i++ {
		b.WriteString("{")
	}
	for i := 0; i < MaxBlockDepth+8; i++ {
		b.WriteString("}")
	}
	err := mustParseErr(t, b.String())
	if err.Kind != parserr.NestingTooDeep {
		t.Fatalf("kind = %v, want NestingTooDeep", err.Kind)
	}
}

func TestParseHaltsAtFirstError(t *testing.T) {
	// A second, independent error later in the source must not surface;
	// the parser stops at the first.
	src := "fn f(a) { } fn g(b) { }"
	toks := lexer.New(src).Tokenize()
	prog, err := New(src, toks).ParseProgram()
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(prog.Items) != 0 {
		t.Fatalf("expected no items parsed before the failure, got %d", len(prog.Items))
	}
}
