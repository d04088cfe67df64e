package ast_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parser"
)

func parseForSnapshot(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	prog, err := parser.New(src, toks).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestPrintSnapshotFunctionBody(t *testing.T) {
	prog := parseForSnapshot(t, `
fn add(a: i32, b: i32) -> i32 {
    a + b
}
`)
	snaps.MatchSnapshot(t, "add_function", ast.Print(prog))
}

func TestPrintSnapshotCompoundAssign(t *testing.T) {
	prog := parseForSnapshot(t, `
fn main() {
    let mut x = 0;
    x += 1;
    x -= 2;
    x *= 3;
    x <<= 1;
}
`)
	snaps.MatchSnapshot(t, "compound_assign", ast.Print(prog))
}
