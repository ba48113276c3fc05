package parser

import (
	"strings"

	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/token"
)

// #define function name(uint256,address) view returns (uint256)
func (p *Parser) parseFunction(c *ast.Contract, start source.Span) bool {
	p.advance()
	name, ok := p.parseName("function")
	if !ok {
		return false
	}
	fn := ast.FunctionDefinition{Name: name.Text}
	if fn.Inputs, ok = p.parseAbiArgs(); !ok {
		return false
	}
	switch p.peek().Kind {
	case token.KwView, token.KwPure, token.KwPayable, token.KwNonPayable:
		fn.Mutability = p.advance().Text
	}
	if p.at(token.KwReturns) {
		p.advance()
		if fn.Outputs, ok = p.parseAbiArgs(); !ok {
			return false
		}
	}
	fn.Span = p.spanFrom(start)
	c.Functions = append(c.Functions, fn)
	return true
}

// #define event Transfer(address indexed from, uint256)
func (p *Parser) parseEvent(c *ast.Contract, start source.Span) bool {
	p.advance()
	name, ok := p.parseName("event")
	if !ok {
		return false
	}
	ev := ast.EventDefinition{Name: name.Text}
	if ev.Parameters, ok = p.parseAbiArgs(); !ok {
		return false
	}
	ev.Span = p.spanFrom(start)
	c.Events = append(c.Events, ev)
	return true
}

// #define error Unauthorized(address)
func (p *Parser) parseError(c *ast.Contract, start source.Span) bool {
	p.advance()
	name, ok := p.parseName("error")
	if !ok {
		return false
	}
	e := ast.ErrorDefinition{Name: name.Text}
	if e.Parameters, ok = p.parseAbiArgs(); !ok {
		return false
	}
	e.Span = p.spanFrom(start)
	c.Errors = append(c.Errors, e)
	return true
}

// parseAbiArgs разбирает `(type [indexed] [name], ...)`.
func (p *Parser) parseAbiArgs() ([]ast.Argument, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return nil, false
	}
	var args []ast.Argument
	for !p.at(token.RParen) && !p.at(token.EOF) {
		first := p.peek().Span
		typ, ok := p.parseAbiType()
		if !ok {
			return nil, false
		}
		arg := ast.Argument{ArgType: typ}
		if p.at(token.KwIndexed) {
			p.advance()
			arg.Indexed = true
		}
		if tok := p.peek(); tok.Kind == token.Ident || tok.Kind == token.Opcode || tok.IsKeyword() {
			arg.Name = p.advance().Text
		}
		arg.Span = p.spanFrom(first)
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.closeDelim(open, token.RParen); !ok {
		return nil, false
	}
	return args, true
}

// parseAbiType разбирает `uint256`, `address[]`, `bytes32[2]` и кортежи
// `(uint256,address)[]`. Возвращает каноническую запись типа.
func (p *Parser) parseAbiType() (string, bool) {
	var sb strings.Builder
	tok := p.peek()
	switch tok.Kind {
	case token.Ident, token.Opcode: // address — тоже опкод
		p.advance()
		sb.WriteString(tok.Text)
	case token.LParen:
		inner, ok := p.parseAbiArgs()
		if !ok {
			return "", false
		}
		sb.WriteByte('(')
		for i, a := range inner {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.ArgType)
		}
		sb.WriteByte(')')
	default:
		return "", p.fail(diag.SynExpectType, "expected argument type, got "+describe(tok), tok.Span)
	}
	for p.at(token.LBracket) {
		open := p.advance()
		sb.WriteByte('[')
		if p.at(token.NumLit) || p.at(token.HexLit) {
			sb.WriteString(p.advance().Text)
		}
		if _, ok := p.closeDelim(open, token.RBracket); !ok {
			return "", false
		}
		sb.WriteByte(']')
	}
	return sb.String(), true
}
