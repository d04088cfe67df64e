package parser

import (
	"testing"

	"github.com/novalang/novac/internal/ast"
)

func TestParseUnitStruct(t *testing.T) {
	prog := parseSource(t, "struct Marker;")
	sd := prog.Items[0].(*ast.StructDef)
	if sd.Name.Name != "Marker" {
		t.Fatalf("name = %q", sd.Name.Name)
	}
	if sd.Fields != nil {
		t.Fatalf("expected no fields, got %v", sd.Fields)
	}
}

func TestParseStructWithFields(t *testing.T) {
	prog := parseSource(t, "struct Point { x: i32, y: i32 }")
	sd := prog.Items[0].(*ast.StructDef)
	if len(sd.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(sd.Fields))
	}
}

func TestParseGenericStruct(t *testing.T) {
	prog := parseSource(t, "struct Wrapper<T> { value: T }")
	sd := prog.Items[0].(*ast.StructDef)
	if len(sd.Generics) != 1 {
		t.Fatalf("expected 1 generic, got %d", len(sd.Generics))
	}
}

func TestParseEnumVariantKinds(t *testing.T) {
	prog := parseSource(t, `enum Shape {
		None,
		Circle(f64),
		Rect { w: f64, h: f64 },
	}`)
	ed := prog.Items[0].(*ast.EnumDef)
	if len(ed.Variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(ed.Variants))
	}
	if _, ok := ed.Variants[0].Fields.(ast.UnitVariantFields); !ok {
		t.Fatalf("variant 0 fields = %T, want UnitVariantFields", ed.Variants[0].Fields)
	}
	tv, ok := ed.Variants[1].Fields.(ast.TupleVariantFields)
	if !ok || len(tv.Types) != 1 {
		t.Fatalf("variant 1 fields = %#v", ed.Variants[1].Fields)
	}
	sv, ok := ed.Variants[2].Fields.(ast.StructVariantFields)
	if !ok || len(sv.Fields) != 2 {
		t.Fatalf("variant 2 fields = %#v", ed.Variants[2].Fields)
	}
}

func TestParseImplBlock(t *testing.T) {
	prog := parseSource(t, `impl Point {
		fn new() -> Point { Point { x: 0, y: 0 } }
	}`)
	ib := prog.Items[0].(*ast.ImplBlock)
	if ib.Trait != nil {
		t.Fatal("expected no trait for an inherent impl")
	}
	if len(ib.Items) != 1 {
		t.Fatalf("expected 1 impl item, got %d", len(ib.Items))
	}
}

func TestParseTraitImplBlock(t *testing.T) {
	prog := parseSource(t, `impl Greet for Point {
		fn hello() -> i32 { 0 }
	}`)
	ib := prog.Items[0].(*ast.ImplBlock)
	if ib.Trait == nil {
		t.Fatal("expected a trait type")
	}
}

func TestParseTraitDefWithDefaultBody(t *testing.T) {
	prog := parseSource(t, `trait Greet {
		fn hello() -> i32;
		fn loud() -> i32 { 1 }
	}`)
	td := prog.Items[0].(*ast.TraitDef)
	if len(td.Items) != 2 {
		t.Fatalf("expected 2 trait items, got %d", len(td.Items))
	}
	first := td.Items[0].(ast.TraitFunctionItem)
	if first.Function.DefaultBody != nil {
		t.Fatal("expected no default body for the signature-only function")
	}
	second := td.Items[1].(ast.TraitFunctionItem)
	if second.Function.DefaultBody == nil {
		t.Fatal("expected a default body")
	}
}

func TestParseUseAndTypeAlias(t *testing.T) {
	prog := parseSource(t, "use a::b::c;\ntype Pair = (i32, i32);")
	if len(prog.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(prog.Items))
	}
	if _, ok := prog.Items[0].(*ast.UseStmt); !ok {
		t.Fatalf("item 0 = %T", prog.Items[0])
	}
	if _, ok := prog.Items[1].(*ast.TypeAlias); !ok {
		t.Fatalf("item 1 = %T", prog.Items[1])
	}
}
