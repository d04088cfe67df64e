package lexer

import (
	"testing"

	"github.com/novalang/novac/internal/token"
)

func TestArithmeticOperators(t *testing.T) {
	assertKinds(t, "+ - * / %", token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Eof)
}

func TestCompoundAssignmentOperators(t *testing.T) {
	assertKinds(t, "+= -= *= /= %= ^= &= |= <<= >>=",
		token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq,
		token.CaretEq, token.AmpEq, token.PipeEq, token.ShlEq, token.ShrEq, token.Eof)
}

func TestComparisonOperators(t *testing.T) {
	assertKinds(t, "== != < <= > >=",
		token.EqEq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq, token.Eof)
}

func TestLogicalOperators(t *testing.T) {
	assertKinds(t, "&& || !", token.AmpAmp, token.PipePipe, token.Bang, token.Eof)
}

func TestBitwiseOperators(t *testing.T) {
	assertKinds(t, "& | ^ << >>", token.Amp, token.Pipe, token.Caret, token.Shl, token.Shr, token.Eof)
}

func TestArrowsAndPaths(t *testing.T) {
	assertKinds(t, "-> => ::", token.Arrow, token.FatArrow, token.ColonColon, token.Eof)
}

func TestMaximalMunchShiftVsLessThanLessThan(t *testing.T) {
	// `<<` must be read as Shl, not two Lt tokens.
	assertKinds(t, "a<<b", token.Ident, token.Shl, token.Ident, token.Eof)
}

func TestGenericCloseDoesNotMergeIntoShr(t *testing.T) {
	// A turbofish-style call `foo::<T>()` must still separate `>` from `(`.
	assertKinds(t, "foo::<T>()", token.Ident, token.ColonColon, token.Lt, token.Ident,
		token.Gt, token.LParen, token.RParen, token.Eof)
}

func TestSlashVsLineCommentVsBlockComment(t *testing.T) {
	assertKinds(t, "a / b", token.Ident, token.Slash, token.Ident, token.Eof)
	assertKinds(t, "a // b", token.Ident, token.Eof)
	assertKinds(t, "a /* b */ c", token.Ident, token.Ident, token.Eof)
}
