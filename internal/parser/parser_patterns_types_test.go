package parser

import (
	"testing"

	"github.com/novalang/novac/internal/ast"
)

func TestParseFunctionParamTypes(t *testing.T) {
	prog := parseSource(t, `fn f(
		a: i32,
		b: &str,
		c: &mut i32,
		d: [i32; 4],
		e: [i32],
		g: (i32, f64),
		h: fn(i32) -> i32,
		i: _,
	) { }`)
	fn := prog.Items[0].(*ast.Function)
	if len(fn.Params) != 8 {
		t.Fatalf("expected 8 params, got %d", len(fn.Params))
	}
	if _, ok := fn.Params[1].Type.(*ast.RefType); !ok {
		t.Fatalf("param 1 type = %T, want *ast.RefType", fn.Params[1].Type)
	}
	if rt, ok := fn.Params[2].Type.(*ast.RefType); !ok || !rt.Mutable {
		t.Fatalf("param 2 type = %#v, want mutable ref", fn.Params[2].Type)
	}
	if _, ok := fn.Params[3].Type.(*ast.ArrayType); !ok {
		t.Fatalf("param 3 type = %T, want *ast.ArrayType", fn.Params[3].Type)
	}
	if _, ok := fn.Params[4].Type.(*ast.SliceType); !ok {
		t.Fatalf("param 4 type = %T, want *ast.SliceType", fn.Params[4].Type)
	}
	if tt, ok := fn.Params[5].Type.(*ast.TupleType); !ok || len(tt.Elements) != 2 {
		t.Fatalf("param 5 type = %#v", fn.Params[5].Type)
	}
	if _, ok := fn.Params[6].Type.(*ast.FnType); !ok {
		t.Fatalf("param 6 type = %T, want *ast.FnType", fn.Params[6].Type)
	}
	if _, ok := fn.Params[7].Type.(*ast.InferType); !ok {
		t.Fatalf("param 7 type = %T, want *ast.InferType", fn.Params[7].Type)
	}
}

func TestParseNeverReturnType(t *testing.T) {
	prog := parseSource(t, "fn halt() -> ! { loop { } }")
	fn := prog.Items[0].(*ast.Function)
	if _, ok := fn.ReturnType.(*ast.NeverType); !ok {
		t.Fatalf("return type = %T, want *ast.NeverType", fn.ReturnType)
	}
}

func TestParsePathTypeWithTurbofish(t *testing.T) {
	prog := parseSource(t, "fn f(x: Vec::<i32>) { }")
	fn := prog.Items[0].(*ast.Function)
	pt := fn.Params[0].Type.(*ast.PathType)
	seg := pt.Path.Segments[0]
	if len(seg.Generics) != 1 {
		t.Fatalf("expected 1 generic argument, got %d", len(seg.Generics))
	}
}

func TestParseStructPatternInMatchArm(t *testing.T) {
	prog := parseSource(t, `fn f() {
		match p {
			Point { x: a, y } => a,
			_ => 0,
		}
	}`)
	fn := prog.Items[0].(*ast.Function)
	last := fn.Body.Stmts[len(fn.Body.Stmts)-1].(*ast.ExprStmt)
	me := last.Expr.(*ast.MatchExpr)
	sp := me.Arms[0].Pattern.(*ast.StructPattern)
	if len(sp.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(sp.Fields))
	}
	if sp.Fields[0].Pattern == nil {
		t.Fatal("field 0 expected an explicit binding pattern")
	}
	if sp.Fields[1].Pattern != nil {
		t.Fatal("field 1 expected shorthand (nil pattern)")
	}
}

func TestParseTupleStructAndRangePattern(t *testing.T) {
	prog := parseSource(t, `fn f() {
		match v {
			Some(x) => x,
			1..=5 => 1,
			_ => 0,
		}
	}`)
	fn := prog.Items[0].(*ast.Function)
	last := fn.Body.Stmts[len(fn.Body.Stmts)-1].(*ast.ExprStmt)
	me := last.Expr.(*ast.MatchExpr)
	if _, ok := me.Arms[0].Pattern.(*ast.TupleStructPattern); !ok {
		t.Fatalf("arm 0 pattern = %T, want *ast.TupleStructPattern", me.Arms[0].Pattern)
	}
	rp, ok := me.Arms[1].Pattern.(*ast.RangePattern)
	if !ok || !rp.Inclusive {
		t.Fatalf("arm 1 pattern = %#v, want inclusive range pattern", me.Arms[1].Pattern)
	}
}

func TestParseRefAndMutPattern(t *testing.T) {
	prog := parseSource(t, "fn f(&x: &i32) { let mut y = 1; }")
	fn := prog.Items[0].(*ast.Function)
	if _, ok := fn.Params[0].Pattern.(*ast.RefPattern); !ok {
		t.Fatalf("param pattern = %T, want *ast.RefPattern", fn.Params[0].Pattern)
	}
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	ip, ok := let.Pattern.(*ast.IdentPattern)
	if !ok || !ip.Mutable {
		t.Fatalf("let pattern = %#v, want mutable ident pattern", let.Pattern)
	}
}
