package parser

import (
	"strconv"
	"strings"

	"github.com/novalang/novac/internal/ast"
	"github.com/novalang/novac/internal/lexer"
)

// parseIntLiteral converts an IntLit lexeme (decimal, or 0x/0b/0o
// prefixed, possibly digit-separated) into an ast.IntLiteral. The lexer
// only validated the lexeme's shape; this is where it becomes a value.
func parseIntLiteral(text string) ast.IntLiteral {
	stripped := lexer.StripSeparators(text)
	base := 10
	switch {
	case strings.HasPrefix(stripped, "0x") || strings.HasPrefix(stripped, "0X"):
		base = 16
		stripped = stripped[2:]
	case strings.HasPrefix(stripped, "0b") || strings.HasPrefix(stripped, "0B"):
		base = 2
		stripped = stripped[2:]
	case strings.HasPrefix(stripped, "0o") || strings.HasPrefix(stripped, "0O"):
		base = 8
		stripped = stripped[2:]
	}
	v, _ := strconv.ParseInt(stripped, base, 64)
	return ast.IntLiteral{Value: v}
}

// decodeStringLexeme strips the surrounding quotes and decodes the
// escapes \n \t \r \\ \" \' \0. Any other backslash sequence is kept as
// written, backslash included; no InvalidEscape error is raised.
func decodeStringLexeme(text string) string {
	if len(text) < 2 {
		return ""
	}
	inner := text[1 : len(text)-1]
	return decodeEscapes(inner)
}

func decodeCharLexeme(text string) rune {
	if len(text) < 2 {
		return 0
	}
	inner := text[1 : len(text)-1]
	decoded := decodeEscapes(inner)
	for _, r := range decoded {
		return r
	}
	return 0
}

func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
