package parser

import (
	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/token"
)

// parseBody разбирает `{ statements }` и возвращает настоящий span тела
// от '{' до '}' включительно.
func (p *Parser) parseBody() ([]ast.Statement, source.Span, bool) {
	open := p.advance()
	p.braces = append(p.braces, open.Span)
	defer func() { p.braces = p.braces[:len(p.braces)-1] }()

	var stmts []ast.Statement
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, source.Span{}, p.unclosedBrace()
		}
		st, ok := p.parseStatement()
		if !ok {
			return nil, source.Span{}, false
		}
		stmts = append(stmts, st)
	}
	closing := p.advance()
	return stmts, open.Span.Cover(closing.Span), true
}

func (p *Parser) unclosedBrace() bool {
	open := p.braces[len(p.braces)-1]
	return p.fail(diag.SynUnclosedDelimiter, "unclosed '{'", open, p.peek().Span)
}

func (p *Parser) atLabelDef() bool {
	tok := p.peek()
	return (tok.Kind == token.Ident || tok.IsKeyword()) && p.peekAt(1).Kind == token.Colon
}

// parseStatement разбирает один элемент тела макроса.
func (p *Parser) parseStatement() (ast.Statement, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Opcode:
		p.advance()
		return ast.Statement{Kind: ast.StmtOpcode, Value: tok.Text, Spans: []source.Span{tok.Span}}, true

	case tok.Kind == token.HexLit:
		p.advance()
		return ast.Statement{Kind: ast.StmtLiteral, Value: tok.Text, Spans: []source.Span{tok.Span}}, true

	case tok.Kind == token.Builtin:
		return p.parseBuiltinCall()

	case tok.Kind == token.LBracket:
		return p.parseConstantRef()

	case tok.Kind == token.Lt:
		return p.parseArgCall()

	case p.atLabelDef():
		return p.parseLabel()

	case tok.Kind == token.Ident && p.peekAt(1).Kind == token.LParen:
		return p.parseMacroInvocation()

	case tok.Kind == token.Ident:
		p.advance()
		return ast.Statement{Kind: ast.StmtLabelCall, Value: tok.Text, Spans: []source.Span{tok.Span}}, true

	case tok.Kind == token.NumLit:
		return ast.Statement{}, p.fail(diag.SynExpectLiteral, "decimal literal in macro body, use hex: "+tok.Text, tok.Span)

	default:
		return ast.Statement{}, p.fail(diag.SynUnexpectedToken, "unexpected "+describe(tok)+" in macro body", tok.Span)
	}
}

// parseLabel разбирает `name:` и все следующие инструкции до следующей
// метки или '}'.
func (p *Parser) parseLabel() (ast.Statement, bool) {
	name := p.advance()
	colon := p.advance()
	st := ast.Statement{
		Kind:  ast.StmtLabel,
		Value: name.Text,
		Spans: []source.Span{name.Span, colon.Span},
	}
	for !p.at(token.RBrace) && !p.atLabelDef() {
		if p.at(token.EOF) {
			return ast.Statement{}, p.unclosedBrace()
		}
		inner, ok := p.parseStatement()
		if !ok {
			return ast.Statement{}, false
		}
		st.Body = append(st.Body, inner)
		st.Spans = append(st.Spans, inner.Spans...)
	}
	return st, true
}

// `[NAME]`
func (p *Parser) parseConstantRef() (ast.Statement, bool) {
	open := p.advance()
	name, ok := p.parseName("constant")
	if !ok {
		return ast.Statement{}, false
	}
	closing, ok := p.closeDelim(open, token.RBracket)
	if !ok {
		return ast.Statement{}, false
	}
	return ast.Statement{
		Kind:  ast.StmtConstant,
		Value: name.Text,
		Spans: []source.Span{open.Span, name.Span, closing.Span},
	}, true
}

// `<name>`
func (p *Parser) parseArgCall() (ast.Statement, bool) {
	open := p.advance()
	name, ok := p.parseName("argument")
	if !ok {
		return ast.Statement{}, false
	}
	closing, ok := p.closeDelim(open, token.Gt)
	if !ok {
		return ast.Statement{}, false
	}
	return ast.Statement{
		Kind:  ast.StmtArgCall,
		Value: name.Text,
		Spans: []source.Span{open.Span, name.Span, closing.Span},
	}, true
}

// MACRO(arg, ...). Аргументы: литералы, метки, опкоды, <arg>, [CONST], вызовы.
func (p *Parser) parseMacroInvocation() (ast.Statement, bool) {
	name := p.advance()
	st := ast.Statement{Kind: ast.StmtMacroInvocation, Value: name.Text, Spans: []source.Span{name.Span}}
	args, spans, ok := p.parseCallArgs(p.parseInvocationArg)
	if !ok {
		return ast.Statement{}, false
	}
	st.Args = args
	st.Spans = append(st.Spans, spans...)
	return st, true
}

func (p *Parser) parseInvocationArg() (ast.Statement, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.HexLit, token.NumLit:
		p.advance()
		return ast.Statement{Kind: ast.StmtLiteral, Value: tok.Text, Spans: []source.Span{tok.Span}}, true
	case token.Opcode:
		p.advance()
		return ast.Statement{Kind: ast.StmtOpcode, Value: tok.Text, Spans: []source.Span{tok.Span}}, true
	case token.Ident:
		if p.peekAt(1).Kind == token.LParen {
			return p.parseMacroInvocation()
		}
		p.advance()
		return ast.Statement{Kind: ast.StmtLabelCall, Value: tok.Text, Spans: []source.Span{tok.Span}}, true
	case token.Lt:
		return p.parseArgCall()
	case token.LBracket:
		return p.parseConstantRef()
	case token.Builtin:
		return p.parseBuiltinCall()
	}
	return ast.Statement{}, p.fail(diag.SynExpectArgument, "expected macro argument, got "+describe(tok), tok.Span)
}

// __NAME(args)
func (p *Parser) parseBuiltinCall() (ast.Statement, bool) {
	name := p.advance()
	st := ast.Statement{Kind: ast.StmtBuiltin, Value: name.Text, Spans: []source.Span{name.Span}}
	args, spans, ok := p.parseCallArgs(p.parseBuiltinArg)
	if !ok {
		return ast.Statement{}, false
	}
	st.Args = args
	st.Spans = append(st.Spans, spans...)
	return st, true
}

func (p *Parser) parseBuiltinArg() (ast.Statement, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.StringLit:
		p.advance()
		return ast.Statement{Kind: ast.StmtLiteral, Value: unquote(tok.Text), Spans: []source.Span{tok.Span}}, true
	case token.Builtin:
		return p.parseBuiltinCall()
	}
	if tok.Kind == token.Ident || tok.IsKeyword() {
		// имя таблицы, макроса, события или ошибки
		p.advance()
		return ast.Statement{Kind: ast.StmtLabelCall, Value: tok.Text, Spans: []source.Span{tok.Span}}, true
	}
	return p.parseInvocationArg()
}

// parseCallArgs разбирает `( arg, arg )` и возвращает аргументы вместе со
// спанами всех токенов, включая скобки.
func (p *Parser) parseCallArgs(arg func() (ast.Statement, bool)) ([]ast.Statement, []source.Span, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return nil, nil, false
	}
	spans := []source.Span{open.Span}
	var args []ast.Statement
	for !p.at(token.RParen) && !p.at(token.EOF) {
		a, ok := arg()
		if !ok {
			return nil, nil, false
		}
		args = append(args, a)
		spans = append(spans, a.Spans...)
		if !p.at(token.Comma) {
			break
		}
		spans = append(spans, p.advance().Span)
	}
	closing, ok := p.closeDelim(open, token.RParen)
	if !ok {
		return nil, nil, false
	}
	spans = append(spans, closing.Span)
	return args, spans, true
}
