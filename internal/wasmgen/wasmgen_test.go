package wasmgen

import (
	"bytes"
	"testing"

	"github.com/novalang/novac/internal/ir"
	"github.com/novalang/novac/internal/lexer"
	"github.com/novalang/novac/internal/parser"
	"github.com/novalang/novac/internal/semantic"
)

func generateSource(t *testing.T, src string) []byte {
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
	out, err := Generate(ir.Lower(typed))
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	return out
}

func TestGenerateStartsWithMagicAndVersion(t *testing.T) {
	out := generateSource(t, "fn f() -> i32 { 42 }")
	want := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(out[:8], want) {
		t.Fatalf("header = % x, want % x", out[:8], want)
	}
}

func TestGenerateContainsExpectedSectionIDs(t *testing.T) {
	out := generateSource(t, "fn f() -> i32 { 1 + 2 }")
	body := out[8:]
	var ids []byte
	for len(body) > 0 {
		id := body[0]
		ids = append(ids, id)
		body = body[1:]
		n, rest := readULEB128(body)
		body = rest[n:]
	}
	want := []byte{secType, secFunction, secExport, secCode}
	if !bytes.Equal(ids, want) {
		t.Fatalf("section ids = %v, want %v", ids, want)
	}
}

// readULEB128 decodes just enough to skip a section body in the test
// above; it returns the body's length and the remaining bytes after the
// length prefix.
func readULEB128(b []byte) (int, []byte) {
	var v int
	shift := uint(0)
	i := 0
	for {
		v |= int(b[i]&0x7F) << shift
		more := b[i]&0x80 != 0
		i++
		if !more {
			break
		}
		shift += 7
	}
	return v, b[i:]
}

func TestGenerateIfProducesIfElseBytes(t *testing.T) {
	out := generateSource(t, "fn f() -> i32 { if true { 1 } else { 2 } }")
	if !bytes.Contains(out, []byte{0x04, 0x40}) { // if (void blocktype)
		t.Fatal("expected an if opcode in the generated module")
	}
	if !bytes.Contains(out, []byte{0x05}) { // else
		t.Fatal("expected an else opcode in the generated module")
	}
}

func TestGenerateWhileProducesLoopBytes(t *testing.T) {
	out := generateSource(t, `fn f() {
		let mut i = 0;
		while i < 3 { i = i + 1; }
	}`)
	if !bytes.Contains(out, []byte{0x03, 0x40}) { // loop (void blocktype)
		t.Fatal("expected a loop opcode in the generated module")
	}
	if !bytes.Contains(out, []byte{0x0D}) { // br_if
		t.Fatal("expected a br_if opcode for the loop condition test")
	}
}

func TestGenerateCallResolvesFunctionIndex(t *testing.T) {
	out := generateSource(t, `fn add(a: i32, b: i32) -> i32 { a + b }
		fn main() -> i32 { add(1, 2) }`)
	// main is function index 1; its body should call index 0 (add).
	if !bytes.Contains(out, []byte{0x10, 0x00}) {
		t.Fatal("expected a call to function index 0")
	}
}

func TestGenerateBreakExitsLoop(t *testing.T) {
	out := generateSource(t, `fn f() {
		loop {
			break;
		}
	}`)
	if !bytes.Contains(out, []byte{0x02, 0x40}) { // block (loop's break target)
		t.Fatal("expected a block opcode wrapping the loop")
	}
}

func TestGenerateRejectsUnrepresentableParamType(t *testing.T) {
	mod := &ir.Module{Functions: []*ir.Function{{
		Name:       "f",
		Params:     []ir.Param{{Name: "x", Type: ir.TypeVoid}},
		ReturnType: ir.TypeI32,
		Blocks:     []*ir.BasicBlock{{ID: 0, Terminator: ir.Terminator{Kind: ir.TermReturn}}},
	}}}
	if _, err := Generate(mod); err == nil {
		t.Fatal("expected an error for a void-typed parameter")
	}
}
