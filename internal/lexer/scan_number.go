package lexer

import (
	"huffls/internal/diag"
	"huffls/internal/token"
)

// scanNumber сканирует 0x-литералы и десятичные числа.
// Хвост из букв/цифр ("0xzz", "12ab") делает литерал целиком некорректным.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := lx.cursor.EatWhile(isHex)
		junk := lx.cursor.EatWhile(isIdentContinueByte)
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		if digits == 0 || junk > 0 {
			lx.errLex(diag.LexBadNumber, sp, "invalid hex literal "+text)
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.HexLit, Span: sp, Text: text}
	}

	lx.cursor.EatWhile(isDec)
	junk := lx.cursor.EatWhile(isIdentContinueByte)
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if junk > 0 {
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.NumLit, Span: sp, Text: text}
}
