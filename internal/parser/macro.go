package parser

import (
	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/token"
)

// parseMacro разбирает
//
//	#define macro NAME(a, b) = takes(n) returns(m) { ... }
//
// Секция `= takes(n) returns(m)` необязательна, как и каждая её часть.
func (p *Parser) parseMacro(c *ast.Contract, start source.Span, kind ast.MacroKind) bool {
	p.advance() // macro | fn | test
	name, ok := p.parseName("macro")
	if !ok {
		return false
	}
	m := ast.MacroDefinition{
		Name:     name.Text,
		Kind:     kind,
		NameSpan: name.Span,
	}

	if m.Parameters, ok = p.parseMacroParams(); !ok {
		return false
	}

	if p.at(token.Assign) {
		p.advance()
		if p.at(token.KwTakes) {
			p.advance()
			if m.Takes, ok = p.parseParenUint("takes"); !ok {
				return false
			}
		}
		if p.at(token.KwReturns) {
			p.advance()
			if m.Returns, ok = p.parseParenUint("returns"); !ok {
				return false
			}
		}
	}

	if !p.at(token.LBrace) {
		return p.fail(diag.SynExpectBody, "expected '{' to open macro body, got "+describe(p.peek()), p.peek().Span)
	}
	if m.Statements, m.BodySpan, ok = p.parseBody(); !ok {
		return false
	}
	m.Span = p.spanFrom(start)
	c.Macros = append(c.Macros, m)
	return true
}

// parseMacroParams разбирает `(a, b, c)`; допускается пустой список.
func (p *Parser) parseMacroParams() ([]ast.Argument, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after macro name")
	if !ok {
		return nil, false
	}
	var params []ast.Argument
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, ok := p.parseName("parameter")
		if !ok {
			return nil, false
		}
		params = append(params, ast.Argument{Name: name.Text, Span: name.Span})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.closeDelim(open, token.RParen); !ok {
		return nil, false
	}
	return params, true
}
