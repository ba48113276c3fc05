package lexer

import (
	"huffls/internal/diag"
	"huffls/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t' и '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности; если не закрыта — репорт и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			lx.cursor.EatWhile(isSpace)
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			lx.cursor.EatWhile(func(c byte) bool { return c == '\n' })
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
	})
}

// //... , /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		lx.cursor.EatWhile(func(c byte) bool { return c != '\n' })
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true

	default:
		// не комментарий — пусть сканируется как '/'
		lx.cursor.Reset(start)
		return false
	}
}
