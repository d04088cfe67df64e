package cmd

import "testing"

func TestParseSourceReturnsProgram(t *testing.T) {
	prog, err := parseSource("fn main() -> i32 { 42 }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog.Items))
	}
}

func TestParseSourceReportsSyntaxError(t *testing.T) {
	_, err := parseSource("fn main( -> i32 { 42 }")
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestReadInputRequiresFileOrEval(t *testing.T) {
	if _, _, err := readInput("", nil); err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}

func TestReadInputUsesEvalOverFile(t *testing.T) {
	src, filename, err := readInput("fn main() {}", []string{"missing.nova"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != "fn main() {}" || filename != "<eval>" {
		t.Fatalf("got (%q, %q)", src, filename)
	}
}
