package parser

import (
	"testing"

	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	prog, err := New(src, toks).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseSimpleFunction(t *testing.T) {
	prog := parseSource(t, "fn main() { return 42; }")
	if len(prog.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog.Items))
	}
	fn, ok := prog.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", prog.Items[0])
	}
	if fn.Name.Name != "main" {
		t.Fatalf("fn name = %q, want main", fn.Name.Name)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body.Stmts))
	}
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	prog := parseSource(t, "fn add(a: i32, b: i32) -> i32 { a + b }")
	fn := prog.Items[0].(*ast.Function)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.ReturnType == nil {
		t.Fatal("expected a return type")
	}
}

func TestParseFunctionWithGenericsAndWhere(t *testing.T) {
	prog := parseSource(t, "fn id<T: Clone>(x: T) -> T where T: Clone { x }")
	fn := prog.Items[0].(*ast.Function)
	if len(fn.Generics) != 1 {
		t.Fatalf("expected 1 generic param, got %d", len(fn.Generics))
	}
	if fn.WhereClause == nil || len(fn.WhereClause.Predicates) != 1 {
		t.Fatalf("expected 1 where predicate, got %v", fn.WhereClause)
	}
}

func TestParseLetStatement(t *testing.T) {
	prog := parseSource(t, "fn main() { let x = 42; let y: i32 = x; }")
	fn := prog.Items[0].(*ast.Function)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Stmts))
	}
	let1 := fn.Body.Stmts[0].(*ast.LetStmt)
	if let1.Value == nil {
		t.Fatal("expected an initializer")
	}
	let2 := fn.Body.Stmts[1].(*ast.LetStmt)
	if let2.Type == nil {
		t.Fatal("expected a type annotation")
	}
}
