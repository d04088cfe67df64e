// Package lexer implements Nova's single-pass lexical scanner: source text
// in, a finite token vector out, terminated by an Eof token. The lexer
// never panics -- adversarial input (runaway comment nesting, stray
// control bytes, a lone BOM) always yields either a structured error or a
// bounded token stream, never a crash.
package lexer

import (
	"strings"

	"github.com/novalang/novac/internal/parserr"
	"github.com/novalang/novac/internal/span"
	"github.com/novalang/novac/internal/token"
)

// MaxCommentDepth bounds nested block-comment depth (spec.md §5).
const MaxCommentDepth = 256

// Lexer is the scanner state. It advances through the source byte by byte
// with one-byte lookahead (plus a second byte of lookahead for two-byte
// decisions such as `/` versus a comment opener, `.` versus the range
// operator, and the 0x/0b/0o number prefixes).
type Lexer struct {
	input string
	pos   int // offset of ch
	rdPos int // offset of the next byte to read
	ch    byte

	errs []*parserr.Error
}

// New creates a Lexer over source. A leading UTF-8 BOM is NOT stripped:
// per spec.md §6 it is treated as an invalid character like any other
// unhandled byte, since Nova source files carry no BOM convention.
func New(source string) *Lexer {
	l := &Lexer{input: source}
	l.readChar()
	return l
}

// Errors returns every error accumulated while producing the token
// vector. The parser halts at its own first error, but a caller that only
// wants to lex (the `lex` CLI subcommand) can inspect all of them.
func (l *Lexer) Errors() []*parserr.Error { return l.errs }

// Tokenize scans the entire source and returns the token vector. The last
// element is always Eof, with an empty span at len(source).
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			return toks
		}
	}
}

func (l *Lexer) readChar() {
	if l.rdPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		l.rdPos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.rdPos]
	l.pos = l.rdPos
	l.rdPos++
}

func (l *Lexer) peek() byte {
	if l.rdPos >= len(l.input) {
		return 0
	}
	return l.input[l.rdPos]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// next scans and returns a single token, advancing the lexer past it.
func (l *Lexer) next() token.Token {
	l.skipWhitespaceAndComments()

	start := l.pos
	if l.atEnd() {
		return token.EOF(uint32(start))
	}

	c := l.ch

	if isIdentStart(c) {
		return l.lexIdentifier(start)
	}
	if isDigit(c) {
		return l.lexNumber(start)
	}

	switch c {
	case '"':
		return l.lexString(start)
	case '\'':
		return l.lexChar(start)

	case '(':
		return l.single(start, token.LParen)
	case ')':
		return l.single(start, token.RParen)
	case '[':
		return l.single(start, token.LBracket)
	case ']':
		return l.single(start, token.RBracket)
	case '{':
		return l.single(start, token.LBrace)
	case '}':
		return l.single(start, token.RBrace)
	case ',':
		return l.single(start, token.Comma)
	case ';':
		return l.single(start, token.Semi)
	case '~':
		return l.single(start, token.Tilde)
	case '@':
		return l.single(start, token.At)
	case '?':
		return l.single(start, token.Question)
	case '#':
		return l.single(start, token.Hash)
	case '$':
		return l.single(start, token.Dollar)

	case '+':
		return l.oneOrEq(start, token.Plus, token.PlusEq)
	case '-':
		l.readChar()
		switch l.ch {
		case '>':
			l.readChar()
			return l.make(start, token.Arrow)
		case '=':
			l.readChar()
			return l.make(start, token.MinusEq)
		default:
			return l.make(start, token.Minus)
		}
	case '*':
		return l.oneOrEq(start, token.Star, token.StarEq)
	case '/':
		return l.oneOrEq(start, token.Slash, token.SlashEq)
	case '%':
		return l.oneOrEq(start, token.Percent, token.PercentEq)
	case '^':
		return l.oneOrEq(start, token.Caret, token.CaretEq)

	case '&':
		l.readChar()
		switch l.ch {
		case '&':
			l.readChar()
			return l.make(start, token.AmpAmp)
		case '=':
			l.readChar()
			return l.make(start, token.AmpEq)
		default:
			return l.make(start, token.Amp)
		}
	case '|':
		l.readChar()
		switch l.ch {
		case '|':
			l.readChar()
			return l.make(start, token.PipePipe)
		case '=':
			l.readChar()
			return l.make(start, token.PipeEq)
		default:
			return l.make(start, token.Pipe)
		}
	case '!':
		return l.oneOrEq(start, token.Bang, token.NotEq)
	case '=':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return l.make(start, token.EqEq)
		case '>':
			l.readChar()
			return l.make(start, token.FatArrow)
		default:
			return l.make(start, token.Eq)
		}
	case '<':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return l.make(start, token.LtEq)
		case '<':
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.make(start, token.ShlEq)
			}
			return l.make(start, token.Shl)
		default:
			return l.make(start, token.Lt)
		}
	case '>':
		l.readChar()
		switch l.ch {
		case '=':
			l.readChar()
			return l.make(start, token.GtEq)
		case '>':
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.make(start, token.ShrEq)
			}
			return l.make(start, token.Shr)
		default:
			return l.make(start, token.Gt)
		}
	case ':':
		l.readChar()
		if l.ch == ':' {
			l.readChar()
			return l.make(start, token.ColonColon)
		}
		return l.make(start, token.Colon)
	case '.':
		l.readChar()
		if l.ch == '.' {
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.make(start, token.DotDotEq)
			}
			return l.make(start, token.DotDot)
		}
		return l.make(start, token.Dot)
	}

	l.readChar()
	sp := span.New(uint32(start), uint32(l.pos))
	l.errs = append(l.errs, parserr.NewInvalidCharacter(rune(c), sp))
	return token.ErrorToken(sp)
}

func (l *Lexer) make(start int, kind token.Kind) token.Token {
	return token.New(kind, span.New(uint32(start), uint32(l.pos)))
}

func (l *Lexer) single(start int, kind token.Kind) token.Token {
	l.readChar()
	return l.make(start, kind)
}

// oneOrEq consumes the current char and, if followed by `=`, returns
// eqKind; otherwise baseKind.
func (l *Lexer) oneOrEq(start int, baseKind, eqKind token.Kind) token.Token {
	l.readChar()
	if l.ch == '=' {
		l.readChar()
		return l.make(start, eqKind)
	}
	return l.make(start, baseKind)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
			continue
		case '/':
			if l.peek() == '/' {
				l.readChar()
				l.readChar()
				for l.ch != '\n' && !l.atEnd() {
					l.readChar()
				}
				continue
			}
			if l.peek() == '*' {
				l.skipBlockComment()
				continue
			}
		}
		return
	}
}

// skipBlockComment consumes a (possibly nested) /* ... */ comment. Depth
// is capped at MaxCommentDepth; an unterminated comment at EOF is
// tolerated rather than reported, matching the lexer's "never panic,
// always terminate" contract.
func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.readChar() // '/'
	l.readChar() // '*'
	depth := 1
	for depth > 0 {
		if l.atEnd() {
			return
		}
		if l.ch == '*' && l.peek() == '/' {
			l.readChar()
			l.readChar()
			depth--
			continue
		}
		if l.ch == '/' && l.peek() == '*' {
			l.readChar()
			l.readChar()
			depth++
			if depth > MaxCommentDepth {
				sp := span.New(uint32(start), uint32(l.pos))
				l.errs = append(l.errs, parserr.NewNestingTooDeep(depth, MaxCommentDepth, sp))
				for !l.atEnd() {
					l.readChar()
				}
				return
			}
			continue
		}
		l.readChar()
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func (l *Lexer) lexIdentifier(start int) token.Token {
	for isIdentCont(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	if text == "_" {
		return l.make(start, token.Underscore)
	}
	if kind, ok := token.FromKeyword(text); ok {
		return l.make(start, kind)
	}
	return l.make(start, token.Ident)
}

// lexNumber categorizes an integer or float literal. It does not convert
// the text to a numeric value -- the parser does that, using the token's
// span to recover the lexeme.
func (l *Lexer) lexNumber(start int) token.Token {
	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.make(start, token.IntLit)
	}
	if l.ch == '0' && (l.peek() == 'b' || l.peek() == 'B') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.readChar()
		}
		return l.make(start, token.IntLit)
	}
	if l.ch == '0' && (l.peek() == 'o' || l.peek() == 'O') {
		l.readChar()
		l.readChar()
		for (l.ch >= '0' && l.ch <= '7') || l.ch == '_' {
			l.readChar()
		}
		return l.make(start, token.IntLit)
	}

	isFloat := false
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// The decimal point is only consumed when followed by a digit, to
	// disambiguate from the range operator `..` (e.g. `0..10`).
	if l.ch == '.' && isDigit(l.peek()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		savePos, saveRd, saveCh := l.pos, l.rdPos, l.ch
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if isDigit(l.ch) {
			isFloat = true
			for isDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
		} else {
			// Not actually an exponent -- rewind so `e` (and any sign)
			// start whatever follows instead.
			l.pos, l.rdPos, l.ch = savePos, saveRd, saveCh
		}
	}

	if isFloat {
		return l.make(start, token.FloatLit)
	}
	return l.make(start, token.IntLit)
}

// lexString delimits a "..." literal. Escapes are validated (a backslash
// must be followed by some character) but not decoded -- decoding happens
// during the parser's literal materialization.
func (l *Lexer) lexString(start int) token.Token {
	l.readChar() // opening quote
	for {
		if l.atEnd() {
			sp := span.New(uint32(start), uint32(l.pos))
			l.errs = append(l.errs, parserr.NewUnterminatedString(sp))
			return token.ErrorToken(sp)
		}
		switch l.ch {
		case '"':
			l.readChar()
			return l.make(start, token.StringLit)
		case '\\':
			l.readChar()
			if l.atEnd() {
				sp := span.New(uint32(start), uint32(l.pos))
				l.errs = append(l.errs, parserr.NewUnterminatedString(sp))
				return token.ErrorToken(sp)
			}
			l.readChar()
		default:
			l.readChar()
		}
	}
}

// lexChar scans 'c' or '\e'; empty '' and unterminated forms error.
func (l *Lexer) lexChar(start int) token.Token {
	l.readChar() // opening quote
	if l.atEnd() {
		sp := span.New(uint32(start), uint32(l.pos))
		l.errs = append(l.errs, parserr.NewUnterminatedString(sp))
		return token.ErrorToken(sp)
	}
	if l.ch == '\'' {
		l.readChar()
		sp := span.New(uint32(start), uint32(l.pos))
		l.errs = append(l.errs, parserr.NewInvalidCharacter('\'', sp))
		return token.ErrorToken(sp)
	}
	if l.ch == '\\' {
		l.readChar()
		if l.atEnd() {
			sp := span.New(uint32(start), uint32(l.pos))
			l.errs = append(l.errs, parserr.NewUnterminatedString(sp))
			return token.ErrorToken(sp)
		}
	}
	l.readChar() // the character itself
	if l.ch != '\'' {
		sp := span.New(uint32(start), uint32(l.pos))
		l.errs = append(l.errs, parserr.NewUnterminatedString(sp))
		return token.ErrorToken(sp)
	}
	l.readChar() // closing quote
	return l.make(start, token.CharLit)
}

// StripSeparators removes digit-separator underscores from a numeric
// lexeme. Exposed for the parser's literal materialization.
func StripSeparators(lexeme string) string {
	if !strings.ContainsRune(lexeme, '_') {
		return lexeme
	}
	return strings.ReplaceAll(lexeme, "_", "")
}
