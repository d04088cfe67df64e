// Package diagnostic renders parserr.Error values (from the lexer, parser
// and semantic checker) against their originating source text: a caret-anchored, optionally
// colorized line:column view, the way a human reads a compiler error.
// Spans in the core are byte offsets; line/column is entirely this
// package's concern, computed only when a diagnostic is actually printed.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/span"
)

// Position is a 1-indexed line/column pair, computed by scanning source
// up to a byte offset.
type Position struct {
	Line   int
	Column int
}

// Locate converts a byte offset into a line/column position by scanning
// source. offset is clamped to len(source).
func Locate(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}

// Diagnostic pairs a structured parserr.Error with the file it came from,
// ready to be rendered against that file's source text.
type Diagnostic struct {
	Err    *parserr.Error
	File   string
	Source string
}

// New wraps a parserr.Error for rendering against source.
func New(err *parserr.Error, file, source string) Diagnostic {
	return Diagnostic{Err: err, File: file, Source: source}
}

// Format renders the diagnostic as a header line, the offending source
// line, a caret pointing at the error span, and the message -- the same
// shape go-dws's CompilerError.Format produces, but driven by a span
// rather than a pre-computed Position.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder

	pos := Locate(d.Source, int(d.Err.Span.Start()))
	if d.File != "" {
		fmt.Fprintf(&sb, "error[%s] in %s:%d:%d\n", d.Err.Code, d.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "error[%s] at %d:%d\n", d.Err.Code, pos.Line, pos.Column)
	}

	if line := sourceLine(d.Source, pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		caretWidth := caretLen(d.Err.Span)
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString(strings.Repeat("^", caretWidth))
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Err.Error())
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func caretLen(sp span.Span) int {
	n := int(sp.Len())
	if n < 1 {
		return 1
	}
	return n
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of diagnostics sharing one file/source,
// numbered the way go-dws's FormatErrors numbers a multi-error batch.
func FormatAll(diags []Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[error %d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
