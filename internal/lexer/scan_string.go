package lexer

import (
	"huffls/internal/diag"
	"huffls/internal/token"
)

// scanString сканирует "..." или '...'. Перевод строки или EOF до
// закрывающей кавычки — ошибка; span покрывает прочитанный префикс.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.bumpRune()
			}
		default:
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
