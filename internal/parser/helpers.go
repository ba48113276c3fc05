package parser

import (
	"strconv"

	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/token"
)

// fail фиксирует первую ошибку и всегда возвращает false, чтобы вызывающий
// мог написать `return p.fail(...)`.
func (p *Parser) fail(code diag.Code, msg string, primary source.Span, more ...source.Span) bool {
	if p.err == nil {
		p.err = diag.NewParserError(code, msg, primary, more...)
	}
	return false
}

// expect — ожидаем конкретный токен. Если нет — фиксируем ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.peek()
	return tok, p.fail(code, msg+", got "+describe(tok), tok.Span)
}

// closeDelim ожидает закрывающий разделитель для open. На EOF ошибка
// указывает сначала на открывающий токен, затем на конец файла.
func (p *Parser) closeDelim(open token.Token, closing token.Kind) (token.Token, bool) {
	if p.at(closing) {
		return p.advance(), true
	}
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok, p.fail(diag.SynUnclosedDelimiter, "unclosed '"+open.Text+"'", open.Span, tok.Span)
	}
	return tok, p.fail(diag.SynUnexpectedToken, "expected '"+closerText[closing]+"', got "+describe(tok), tok.Span)
}

// parseParenUint разбирает `(n)` после takes/returns; n — десятичное или hex.
func (p *Parser) parseParenUint(what string) (uint, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+what)
	if !ok {
		return 0, false
	}
	tok := p.peek()
	if tok.Kind != token.NumLit && tok.Kind != token.HexLit {
		return 0, p.fail(diag.SynExpectLiteral, "expected number in "+what+"(...), got "+describe(tok), tok.Span)
	}
	p.advance()
	n, err := strconv.ParseUint(tok.Text, 0, 32)
	if err != nil {
		return 0, p.fail(diag.SynExpectLiteral, "invalid "+what+" count "+tok.Text, tok.Span)
	}
	if _, ok := p.closeDelim(open, token.RParen); !ok {
		return 0, false
	}
	return uint(n), true
}

var closerText = map[token.Kind]string{
	token.RParen:   ")",
	token.RBrace:   "}",
	token.RBracket: "]",
	token.Gt:       ">",
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Invalid:
		return "invalid token \"" + tok.Text + "\""
	}
	return "\"" + tok.Text + "\""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
