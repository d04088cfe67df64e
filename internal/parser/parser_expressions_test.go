package parser

import (
	"testing"

	"github.com/novalang/novac/internal/ast"
)

func lastExpr(t *testing.T, prog *ast.Program) ast.Expr {
	t.Helper()
	fn := prog.Items[0].(*ast.Function)
	last := fn.Body.Stmts[len(fn.Body.Stmts)-1].(*ast.ExprStmt)
	return last.Expr
}

func TestParsePrecedence(t *testing.T) {
	prog := parseSource(t, "fn f() { 1 + 2 * 3 }")
	be := lastExpr(t, prog).(*ast.BinaryExpr)
	if be.Op != ast.Add {
		t.Fatalf("top op = %s, want +", be.Op)
	}
	rhs := be.Right.(*ast.BinaryExpr)
	if rhs.Op != ast.Mul {
		t.Fatalf("rhs op = %s, want *", rhs.Op)
	}
}

func TestParseRightAssociativeAssign(t *testing.T) {
	prog := parseSource(t, "fn f() { a = b = 1 }")
	be := lastExpr(t, prog).(*ast.BinaryExpr)
	if be.Op != ast.Assign {
		t.Fatalf("op = %s, want =", be.Op)
	}
	if _, ok := be.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected nested assign on the right, got %T", be.Right)
	}
}

func TestParseUnaryAndCallChain(t *testing.T) {
	prog := parseSource(t, "fn f() { -foo(1, 2).bar[0] }")
	ue := lastExpr(t, prog).(*ast.UnaryExpr)
	if ue.Op != ast.Neg {
		t.Fatalf("op = %s, want -", ue.Op)
	}
	idx := ue.Operand.(*ast.IndexExpr)
	fe := idx.Receiver.(*ast.FieldExpr)
	if fe.Field.Name != "bar" {
		t.Fatalf("field = %q", fe.Field.Name)
	}
	if _, ok := fe.Receiver.(*ast.CallExpr); !ok {
		t.Fatalf("receiver = %T, want *ast.CallExpr", fe.Receiver)
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	prog := parseSource(t, `fn f() {
		if a { 1 } else if b { 2 } else { 3 }
	}`)
	ie := lastExpr(t, prog).(*ast.IfExpr)
	elseIf, ok := ie.Else.(*ast.IfExpr)
	if !ok {
		t.Fatalf("else branch = %T, want *ast.IfExpr", ie.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockExpr); !ok {
		t.Fatalf("final else = %T, want *ast.BlockExpr", elseIf.Else)
	}
}

func TestParseIfConditionDoesNotEatStructLit(t *testing.T) {
	// A path directly followed by a brace after `if` is the condition:
	// the brace belongs to the `then` block.
	prog := parseSource(t, "fn f() { if foo { 1 } else { 2 } }")
	ie := lastExpr(t, prog).(*ast.IfExpr)
	if _, ok := ie.Cond.(*ast.PathExpr); !ok {
		t.Fatalf("cond = %T, want *ast.PathExpr", ie.Cond)
	}
}

func TestParseStructLitInsideCallArgInIfCondition(t *testing.T) {
	prog := parseSource(t, "fn f() { if accept(Foo { x: 1 }) { 1 } }")
	ie := lastExpr(t, prog).(*ast.IfExpr)
	call := ie.Cond.(*ast.CallExpr)
	if _, ok := call.Args[0].(*ast.StructLitExpr); !ok {
		t.Fatalf("arg = %T, want *ast.StructLitExpr", call.Args[0])
	}
}

func TestParseStructLitAsLetValue(t *testing.T) {
	prog := parseSource(t, "fn f() { let p = Point { x: 1, y: 2 }; }")
	fn := prog.Items[0].(*ast.Function)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	sl, ok := let.Value.(*ast.StructLitExpr)
	if !ok {
		t.Fatalf("value = %T, want *ast.StructLitExpr", let.Value)
	}
	if len(sl.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(sl.Fields))
	}
}

func TestParseMatchWithGuardAndOrPattern(t *testing.T) {
	prog := parseSource(t, `fn f() {
		match x {
			0 | 1 => 1,
			n if n > 0 => 2,
			_ => 3,
		}
	}`)
	me := lastExpr(t, prog).(*ast.MatchExpr)
	if len(me.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(me.Arms))
	}
	if _, ok := me.Arms[0].Pattern.(*ast.OrPattern); !ok {
		t.Fatalf("arm 0 pattern = %T, want *ast.OrPattern", me.Arms[0].Pattern)
	}
	if me.Arms[1].Guard == nil {
		t.Fatal("arm 1 expected a guard")
	}
}

func TestParseClosures(t *testing.T) {
	prog := parseSource(t, "fn f() { let add = |a: i32, b: i32| a + b; let thunk = || 1; }")
	fn := prog.Items[0].(*ast.Function)
	c1 := fn.Body.Stmts[0].(*ast.LetStmt).Value.(*ast.ClosureExpr)
	if len(c1.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(c1.Params))
	}
	c2 := fn.Body.Stmts[1].(*ast.LetStmt).Value.(*ast.ClosureExpr)
	if len(c2.Params) != 0 {
		t.Fatalf("expected 0 params, got %d", len(c2.Params))
	}
}

func TestParseRangeExpressions(t *testing.T) {
	prog := parseSource(t, "fn f() { for i in 0..10 { } }")
	fe := lastExpr(t, prog).(*ast.ForExpr)
	re := fe.Iter.(*ast.RangeExpr)
	if re.Inclusive {
		t.Fatal("expected exclusive range")
	}
	if re.Start == nil || re.End == nil {
		t.Fatal("expected both bounds present")
	}
}

func TestParseWhileLoopBreakContinue(t *testing.T) {
	prog := parseSource(t, `fn f() {
		while cond {
			if skip { continue; }
			if done { break 1; }
		}
	}`)
	we := lastExpr(t, prog).(*ast.WhileExpr)
	if len(we.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(we.Body.Stmts))
	}
}

func TestParseReferenceAndDeref(t *testing.T) {
	prog := parseSource(t, "fn f() { let r = &mut x; *r }")
	fn := prog.Items[0].(*ast.Function)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	re := let.Value.(*ast.RefExpr)
	if !re.Mutable {
		t.Fatal("expected a mutable reference")
	}
	de := lastExpr(t, prog).(*ast.DerefExpr)
	if de.Operand == nil {
		t.Fatal("expected a deref operand")
	}
}

func TestParseAwaitAndTry(t *testing.T) {
	prog := parseSource(t, "fn f() { fetch()?.await }")
	ae := lastExpr(t, prog).(*ast.AwaitExpr)
	if _, ok := ae.Operand.(*ast.TryExpr); !ok {
		t.Fatalf("operand = %T, want *ast.TryExpr", ae.Operand)
	}
}
