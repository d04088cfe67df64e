package semantic

import (
	"testing"

	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parser"
)

func checkSource(t *testing.T, src string) (*TypedProgram, error) {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	prog, perr := parser.New(src, toks).ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	typed, err := Check(prog)
	if err != nil {
		return nil, err
	}
	return typed, nil
}

func TestCheckSimpleFunction(t *testing.T) {
	typed, err := checkSource(t, "fn main() { let x: i32 = 42; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(typed.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(typed.Functions))
	}
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	_, err := checkSource(t, "fn f() -> bool { 1 }")
	if err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestCheckBinaryOperandMismatch(t *testing.T) {
	_, err := checkSource(t, `fn f() {
		let x: i32 = 1;
		let y: bool = true;
		x == y;
	}`)
	if err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestCheckUndefinedVariable(t *testing.T) {
	_, err := checkSource(t, "fn f() { let x = y; }")
	if err == nil {
		t.Fatal("expected an undefined-variable error")
	}
}

func TestCheckCallArgCountMismatch(t *testing.T) {
	_, err := checkSource(t, `fn add(a: i32, b: i32) -> i32 { a + b }
		fn main() { add(1); }`)
	if err == nil {
		t.Fatal("expected a call arity error")
	}
}

func TestCheckCallReturnsDeclaredType(t *testing.T) {
	typed, err := checkSource(t, `fn add(a: i32, b: i32) -> i32 { a + b }
		fn main() -> i32 { add(1, 2) }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := typed.Functions[1]
	if !Equal(main.ReturnType, DefaultInt) {
		t.Fatalf("return type = %v", main.ReturnType)
	}
}

func TestCheckStructLiteralAndFieldAccess(t *testing.T) {
	typed, err := checkSource(t, `struct Point { x: i32, y: i32 }
		fn origin() -> i32 {
			let p = Point { x: 1, y: 2 };
			p.x
		}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(typed.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(typed.Functions))
	}
}

func TestCheckStructFieldTypeMismatch(t *testing.T) {
	_, err := checkSource(t, `struct Point { x: i32, y: i32 }
		fn f() { let p = Point { x: true, y: 2 }; }`)
	if err == nil {
		t.Fatal("expected a field type mismatch error")
	}
}

func TestCheckIfBranchesMustAgree(t *testing.T) {
	_, err := checkSource(t, `fn f() {
		let x = if true { 1 } else { false };
	}`)
	if err == nil {
		t.Fatal("expected an if/else type mismatch error")
	}
}

func TestCheckMatchArmsMustAgree(t *testing.T) {
	typed, err := checkSource(t, `fn f() -> i32 {
		match 1 {
			0 => 10,
			_ => 20,
		}
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(typed.Functions[0].ReturnType, DefaultInt) {
		t.Fatalf("return type = %v", typed.Functions[0].ReturnType)
	}
}

func TestCheckWhileAndForLoopsTypeAsUnit(t *testing.T) {
	_, err := checkSource(t, `fn f() {
		let mut i = 0;
		while i == 0 { i = 1; }
		for x in 0..3 { }
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckForwardReferenceToLaterFunction(t *testing.T) {
	_, err := checkSource(t, `fn a() -> i32 { b() }
		fn b() -> i32 { 1 }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
