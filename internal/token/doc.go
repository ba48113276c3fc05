// Package token defines lexical token kinds and trivia for Huff sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments are Leading trivia and never appear in the
//     main token stream.
//   - Opcode mnemonics are lowercase and recognized by the lexer; any other
//     identifier is Ident, except "__"-prefixed names which are Builtin.
package token
