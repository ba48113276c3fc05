package token

import (
	"huffls/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a hex, decimal or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case HexLit, NumLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LParen, RParen, LBrace, RBrace, LBracket, RBracket, Lt, Gt,
		Comma, Colon, Assign, Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwMacro && t.Kind <= KwFreeStoragePointer
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsName reports whether the token can serve as a declared name. Huff lets
// keywords such as "error" or "test" name macros and labels.
func (t Token) IsName() bool {
	return t.Kind == Ident || t.Kind == Opcode || t.IsKeyword()
}
