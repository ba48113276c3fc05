package lexer_test

import (
	"strings"
	"testing"

	"huffls/internal/diag"
	"huffls/internal/lexer"
	"huffls/internal/source"
	"huffls/internal/token"
)

type reported struct {
	code diag.Code
	span source.Span
	msg  string
}

// testReporter собирает все ошибки, полученные от лексера
type testReporter struct {
	errs []reported
}

func (r *testReporter) Report(code diag.Code, primary source.Span, msg string) {
	r.errs = append(r.errs, reported{code: code, span: primary, msg: msg})
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	file := source.NewFile("test.huff", []byte(input), source.FileVirtual)
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func kindsString(ks []token.Kind) string {
	parts := make([]string, 0, len(ks))
	for _, k := range ks {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, " ")
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	tokens := lx.All()
	expected = append(expected, token.EOF)
	got := kinds(tokens)
	if kindsString(got) != kindsString(expected) {
		t.Fatalf("input %q:\n got  %s\n want %s", input, kindsString(got), kindsString(expected))
	}
	if len(rep.errs) != 0 {
		t.Fatalf("input %q: unexpected errors %+v", input, rep.errs)
	}
	return tokens
}

func expectError(t *testing.T, input string, code diag.Code, span source.Span) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	lx.All()
	if len(rep.errs) == 0 {
		t.Fatalf("input %q: expected %s, got no errors", input, code.ID())
	}
	if rep.errs[0].code != code || rep.errs[0].span != span {
		t.Fatalf("input %q: got %s at %v, want %s at %v", input, rep.errs[0].code.ID(), rep.errs[0].span, code.ID(), span)
	}
}

func TestWordClassification(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"MAIN", token.Ident},
		{"_private", token.Ident},
		{"add", token.Opcode},
		{"mstore", token.Opcode},
		{"push32", token.Opcode},
		{"ADD", token.Ident},
		{"__FUNC_SIG", token.Builtin},
		{"__tablesize", token.Builtin},
		{"macro", token.KwMacro},
		{"takes", token.KwTakes},
		{"returns", token.KwReturns},
		{"jumptable", token.KwJumpTable},
		{"jumptable__packed", token.KwJumpTablePacked},
		{"FREE_STORAGE_POINTER", token.KwFreeStoragePointer},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectTokens(t, tt.input, tt.kind)
			if toks[0].Text != tt.input {
				t.Fatalf("text %q, want %q", toks[0].Text, tt.input)
			}
		})
	}
}

func TestDirectives(t *testing.T) {
	expectTokens(t, "#define macro", token.Define, token.KwMacro)
	expectTokens(t, `#include "./lib.huff"`, token.Include, token.StringLit)
	expectError(t, "#pragma", diag.LexBadDirective, source.Span{Start: 0, End: 7})
}

func TestNumbers(t *testing.T) {
	toks := expectTokens(t, "0x00 0xFFaa 42", token.HexLit, token.HexLit, token.NumLit)
	if toks[1].Text != "0xFFaa" {
		t.Fatalf("unexpected hex text %q", toks[1].Text)
	}
	expectError(t, "0x", diag.LexBadNumber, source.Span{Start: 0, End: 2})
	expectError(t, "0x12zz", diag.LexBadNumber, source.Span{Start: 0, End: 6})
	expectError(t, "12ab", diag.LexBadNumber, source.Span{Start: 0, End: 4})
}

func TestStrings(t *testing.T) {
	expectTokens(t, `"transfer(address,uint256)"`, token.StringLit)
	expectTokens(t, `'single'`, token.StringLit)
	expectTokens(t, `"esc\"aped"`, token.StringLit)
	expectError(t, `"open`, diag.LexUnterminatedString, source.Span{Start: 0, End: 5})
	expectError(t, "\"line\nnext\"", diag.LexUnterminatedString, source.Span{Start: 0, End: 5})
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, "(){}[]<>,:=+-*/",
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Lt, token.Gt,
		token.Comma, token.Colon, token.Assign,
		token.Plus, token.Minus, token.Star, token.Slash,
	)
}

func TestUnknownCharacter(t *testing.T) {
	expectError(t, "add @", diag.LexUnknownChar, source.Span{Start: 4, End: 5})
	// non-ASCII руна целиком
	expectError(t, "é", diag.LexUnknownChar, source.Span{Start: 0, End: 2})
}

func TestTrivia(t *testing.T) {
	input := "  // note\n/* block */\r\nadd"
	toks := expectTokens(t, input, token.Opcode)
	leading := toks[0].Leading
	want := []token.TriviaKind{
		token.TriviaSpace,
		token.TriviaLineComment,
		token.TriviaNewline,
		token.TriviaBlockComment,
		token.TriviaSpace,
		token.TriviaNewline,
	}
	if len(leading) != len(want) {
		t.Fatalf("got %d trivia, want %d: %+v", len(leading), len(want), leading)
	}
	for i, tr := range leading {
		if tr.Kind != want[i] {
			t.Fatalf("trivia %d: got %s, want %s", i, tr.Kind, want[i])
		}
	}
	if leading[1].Text != "// note" {
		t.Fatalf("unexpected comment text %q", leading[1].Text)
	}
	if toks[0].Span != (source.Span{Start: 23, End: 26}) {
		t.Fatalf("unexpected span %v", toks[0].Span)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	expectError(t, "add /* never", diag.LexUnterminatedBlockComment, source.Span{Start: 4, End: 12})
}

func TestSlashIsNotComment(t *testing.T) {
	expectTokens(t, "0x20 / 0x02", token.HexLit, token.Slash, token.HexLit)
}

func TestMacroDefinition(t *testing.T) {
	input := `#define macro MAIN(a) = takes(0) returns(1) {
    0x00 calldataload  // selector
    <a> [OWNER] __FUNC_SIG("x()")
    label:
        label jumpi
}`
	expectTokens(t, input,
		token.Define, token.KwMacro, token.Ident, token.LParen, token.Ident, token.RParen,
		token.Assign, token.KwTakes, token.LParen, token.NumLit, token.RParen,
		token.KwReturns, token.LParen, token.NumLit, token.RParen, token.LBrace,
		token.HexLit, token.Opcode,
		token.Lt, token.Ident, token.Gt, token.LBracket, token.Ident, token.RBracket,
		token.Builtin, token.LParen, token.StringLit, token.RParen,
		token.Ident, token.Colon,
		token.Ident, token.Opcode,
		token.RBrace,
	)
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("add sub")
	if p := lx.Peek(); p.Text != "add" {
		t.Fatalf("peek got %q", p.Text)
	}
	if n := lx.Next(); n.Text != "add" {
		t.Fatalf("next after peek got %q", n.Text)
	}
	if n := lx.Next(); n.Text != "sub" {
		t.Fatalf("second token got %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected sticky EOF, got %s", n.Kind)
		}
	}
}

func TestEmptyAndWhitespaceInput(t *testing.T) {
	expectTokens(t, "")
	expectTokens(t, " \n\t\n")
}

func BenchmarkLexerLargeFile(b *testing.B) {
	var sb strings.Builder
	for range 500 {
		sb.WriteString("#define macro M() = takes(0) returns(0) {\n    0x00 calldataload 0xE0 shr // sel\n}\n")
	}
	input := []byte(sb.String())
	b.ResetTimer()
	for range b.N {
		file := source.NewFile("bench.huff", input, source.FileVirtual)
		lexer.New(file, lexer.Options{}).All()
	}
}
