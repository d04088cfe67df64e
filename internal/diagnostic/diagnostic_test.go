package diagnostic

import (
	"strings"
	"testing"

	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/span"
)

func TestLocateFirstLine(t *testing.T) {
	pos := Locate("abc\ndef", 1)
	if pos.Line != 1 || pos.Column != 2 {
		t.Fatalf("pos = %+v, want {1 2}", pos)
	}
}

func TestLocateSecondLine(t *testing.T) {
	pos := Locate("abc\ndef", 5)
	if pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("pos = %+v, want {2 2}", pos)
	}
}

func TestFormatIncludesCaretAndMessage(t *testing.T) {
	source := "let x = @;"
	sp := span.New(8, 9)
	err := parserr.NewInvalidCharacter('@', sp)
	d := New(err, "main.nova", source)
	out := d.Format(false)
	if !strings.Contains(out, "main.nova") {
		t.Fatalf("output missing file name:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("output missing caret:\n%s", out)
	}
	if !strings.Contains(out, string(parserr.CodeInvalidCharacter)) {
		t.Fatalf("output missing error code:\n%s", out)
	}
}

func TestFormatAllNumbersMultipleErrors(t *testing.T) {
	source := "a b"
	d1 := New(parserr.NewInvalidCharacter('a', span.New(0, 1)), "f.nova", source)
	d2 := New(parserr.NewInvalidCharacter('b', span.New(2, 3)), "f.nova", source)
	out := FormatAll([]Diagnostic{d1, d2}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("output missing error count:\n%s", out)
	}
	if !strings.Contains(out, "[error 1 of 2]") || !strings.Contains(out, "[error 2 of 2]") {
		t.Fatalf("output missing numbering:\n%s", out)
	}
}
