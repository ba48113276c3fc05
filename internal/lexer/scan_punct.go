package lexer

import (
	"huffls/internal/diag"
	"huffls/internal/token"
)

var punct = [128]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
	',': token.Comma,
	':': token.Colon,
	'=': token.Assign,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
}

// scanPunct сканирует односимвольную пунктуацию. Всё прочее (включая
// не-ASCII) — Invalid на одну руну.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	if b < 128 && punct[b] != token.Invalid {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: punct[b], Span: sp, Text: lx.text(sp)}
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteText(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func quoteText(s string) string {
	return "'" + s + "'"
}
