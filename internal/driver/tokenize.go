package driver

import (
	"huffls/internal/diag"
	"huffls/internal/lexer"
	"huffls/internal/source"
	"huffls/internal/token"
)

// Tokenize lexes the whole file and stops at the first malformed token.
// On success the slice ends with EOF.
func Tokenize(file *source.File) ([]token.Token, *diag.StructuredError) {
	rep := &diag.FirstErrorReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: rep})

	var tokens []token.Token
	for {
		tok := lx.Next()
		if rep.Err != nil {
			return tokens, rep.Err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// TokenizeAll lexes the whole file and keeps going past malformed tokens,
// collecting every lexical error. Used by the tokenize command.
func TokenizeAll(file *source.File) ([]token.Token, []*diag.StructuredError) {
	rep := &collectReporter{}
	tokens := lexer.New(file, lexer.Options{Reporter: rep}).All()
	return tokens, rep.errs
}

type collectReporter struct {
	errs []*diag.StructuredError
}

func (r *collectReporter) Report(code diag.Code, primary source.Span, msg string) {
	r.errs = append(r.errs, diag.NewLexicalError(code, msg, primary))
}
