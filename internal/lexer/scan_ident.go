package lexer

import (
	"strings"

	"huffls/internal/diag"
	"huffls/internal/evm"
	"huffls/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и классифицирует слово.
// Порядок: ключевое слово, опкод, builtin ("__" префикс), идентификатор.
// Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.EatWhile(isIdentContinueByte)

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	if evm.IsOpcode(text) {
		return token.Token{Kind: token.Opcode, Span: sp, Text: text}
	}
	if strings.HasPrefix(text, "__") {
		return token.Token{Kind: token.Builtin, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanDirective сканирует "#define" / "#include".
func (lx *Lexer) scanDirective() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	lx.cursor.EatWhile(isIdentContinueByte)

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupDirective(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	lx.errLex(diag.LexBadDirective, sp, "unknown directive "+text)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
