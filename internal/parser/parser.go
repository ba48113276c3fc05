package parser

import (
	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/token"
)

// Parser — состояние парсера на один файл. Разбор останавливается на первой
// структурной ошибке: Huff-контракт либо разобран целиком, либо нет.
type Parser struct {
	toks     []token.Token
	pos      int
	err      *diag.StructuredError
	lastSpan source.Span   // span последнего съеденного токена
	braces   []source.Span // стек открытых '{'
}

// Parse builds a contract from a token stream that ends with EOF. Tokens of
// kind Invalid are treated as unexpected.
func Parse(tokens []token.Token) (*ast.Contract, *diag.StructuredError) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		end := uint32(0)
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		tokens = append(tokens, token.Token{Kind: token.EOF, Span: source.Span{Start: end, End: end}})
	}
	p := &Parser{toks: tokens}
	contract := &ast.Contract{}
	if !p.parseItems(contract) {
		return nil, p.err
	}
	return contract, nil
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

// advance — съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems(c *ast.Contract) bool {
	for !p.at(token.EOF) {
		if !p.parseItem(c) {
			return false
		}
	}
	return true
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem(c *ast.Contract) bool {
	switch p.peek().Kind {
	case token.Define:
		return p.parseDefinition(c)
	case token.Include:
		return p.parseInclude(c)
	default:
		return p.fail(diag.SynUnexpectedTopLevel, "expected #define or #include, got "+describe(p.peek()), p.peek().Span)
	}
}

func (p *Parser) parseInclude(c *ast.Contract) bool {
	start := p.advance().Span
	path, ok := p.expect(token.StringLit, diag.SynExpectStringPath, "expected include path string")
	if !ok {
		return false
	}
	c.Includes = append(c.Includes, ast.Include{
		Path: unquote(path.Text),
		Span: start.Cover(path.Span),
	})
	return true
}

// parseDefinition разбирает `#define <kind> ...`.
func (p *Parser) parseDefinition(c *ast.Contract) bool {
	start := p.advance().Span
	switch p.peek().Kind {
	case token.KwMacro:
		return p.parseMacro(c, start, ast.MacroKindMacro)
	case token.KwFn:
		return p.parseMacro(c, start, ast.MacroKindFn)
	case token.KwTest:
		return p.parseMacro(c, start, ast.MacroKindTest)
	case token.KwFunction:
		return p.parseFunction(c, start)
	case token.KwEvent:
		return p.parseEvent(c, start)
	case token.KwError:
		return p.parseError(c, start)
	case token.KwConstant:
		return p.parseConstant(c, start)
	case token.KwJumpTable:
		return p.parseTable(c, start, ast.TableJumpTable)
	case token.KwJumpTablePacked:
		return p.parseTable(c, start, ast.TableJumpTablePacked)
	case token.KwTable:
		return p.parseTable(c, start, ast.TableCode)
	default:
		return p.fail(diag.SynExpectDefinition, "expected definition kind after #define, got "+describe(p.peek()), p.peek().Span)
	}
}

// parseName ожидает имя: идентификатор или ключевое слово в роли имени.
func (p *Parser) parseName(what string) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == token.Ident || tok.IsKeyword() {
		return p.advance(), true
	}
	return tok, p.fail(diag.SynExpectIdentifier, "expected "+what+" name, got "+describe(tok), tok.Span)
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
