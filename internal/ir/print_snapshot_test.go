package ir

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parser"
	"github.com/novalang/novac/internal/semantic"
)

func lowerForSnapshot(t *testing.T, src string) *Module {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	prog, perr := parser.New(src, toks).ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	typed, cerr := semantic.Check(prog)
	if cerr != nil {
		t.Fatalf("check error: %v", cerr)
	}
	return Lower(typed)
}

func TestPrintSnapshotIfElse(t *testing.T) {
	mod := lowerForSnapshot(t, `
fn max(a: i32, b: i32) -> i32 {
    if a > b { a } else { b }
}
`)
	snaps.MatchSnapshot(t, "max_if_else", Print(mod))
}

func TestPrintSnapshotCompoundAssignLowering(t *testing.T) {
	mod := lowerForSnapshot(t, `
fn count() -> i32 {
    let mut x = 0;
    x += 1;
    x
}
`)
	snaps.MatchSnapshot(t, "compound_assign_lowering", Print(mod))
}
