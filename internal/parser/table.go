package parser

import (
	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/token"
)

// #define constant NAME = 0x.. | FREE_STORAGE_POINTER()
func (p *Parser) parseConstant(c *ast.Contract, start source.Span) bool {
	p.advance()
	name, ok := p.parseName("constant")
	if !ok {
		return false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after constant name"); !ok {
		return false
	}
	def := ast.ConstantDefinition{Name: name.Text}
	tok := p.peek()
	switch tok.Kind {
	case token.HexLit:
		p.advance()
		def.Kind = ast.ConstLiteral
		def.Value = tok.Text
	case token.KwFreeStoragePointer:
		open := p.advance()
		lp, ok := p.expect(token.LParen, diag.SynInvalidConstant, "expected '(' after FREE_STORAGE_POINTER")
		if !ok {
			return false
		}
		if _, ok := p.closeDelim(lp, token.RParen); !ok {
			return false
		}
		def.Kind = ast.ConstFreeStoragePointer
		def.Value = open.Text + "()"
	default:
		return p.fail(diag.SynInvalidConstant, "constant value must be a hex literal or FREE_STORAGE_POINTER(), got "+describe(tok), tok.Span)
	}
	def.Span = p.spanFrom(start)
	c.Constants = append(c.Constants, def)
	return true
}

// #define jumptable NAME { label label }
// #define table NAME { 0xdeadbeef }
func (p *Parser) parseTable(c *ast.Contract, start source.Span, kind ast.TableKind) bool {
	p.advance()
	name, ok := p.parseName("table")
	if !ok {
		return false
	}
	if !p.at(token.LBrace) {
		return p.fail(diag.SynExpectBody, "expected '{' to open table body, got "+describe(p.peek()), p.peek().Span)
	}
	open := p.advance()
	p.braces = append(p.braces, open.Span)
	defer func() { p.braces = p.braces[:len(p.braces)-1] }()

	def := ast.TableDefinition{Name: name.Text, Kind: kind}
	for !p.at(token.RBrace) {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			return p.unclosedBrace()
		case kind == ast.TableCode && tok.Kind == token.HexLit:
			p.advance()
			def.Entries = append(def.Entries, ast.Statement{Kind: ast.StmtCode, Value: tok.Text, Spans: []source.Span{tok.Span}})
		case kind != ast.TableCode && tok.Kind == token.Ident:
			p.advance()
			def.Entries = append(def.Entries, ast.Statement{Kind: ast.StmtLabelCall, Value: tok.Text, Spans: []source.Span{tok.Span}})
		default:
			return p.fail(diag.SynInvalidTableEntry, "invalid "+kind.String()+" entry "+describe(tok), tok.Span)
		}
	}
	p.advance()
	def.Span = p.spanFrom(start)
	c.Tables = append(c.Tables, def)
	return true
}
