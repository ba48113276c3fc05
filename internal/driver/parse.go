package driver

import (
	"context"
	"strconv"

	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/parser"
	"huffls/internal/source"
	"huffls/internal/trace"
)

// Parse lexes and parses text from scratch. Every call is independent: there
// is no state shared between runs and no timeout. A malformed token, a
// structural failure and a panic inside the lexer or parser all come back as
// a *diag.StructuredError; Parse itself never panics.
func Parse(ctx context.Context, text []byte, uri string) (*ast.Contract, *diag.StructuredError) {
	return ParseFile(ctx, source.NewFile(uri, text, source.FileVirtual))
}

// ParseFile is Parse over an already built file.
func ParseFile(ctx context.Context, file *source.File) (contract *ast.Contract, perr *diag.StructuredError) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	defer func() {
		if r := recover(); r != nil {
			contract = nil
			perr = diag.Unrecognized("internal error while parsing: %v", r)
			trace.Point(tracer, trace.ScopePass, "parse.panic", perr.Message)
		}
	}()

	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", parent).WithExtra("file", file.Path)
	tokens, lexErr := Tokenize(file)
	lexSpan.WithExtra("tokens", strconv.Itoa(len(tokens))).End(outcome(lexErr))
	if lexErr != nil {
		return nil, lexErr
	}

	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", parent).WithExtra("file", file.Path)
	contract, perr = parser.Parse(tokens)
	if contract != nil {
		parseSpan.WithExtra("macros", strconv.Itoa(len(contract.Macros)))
	}
	parseSpan.End(outcome(perr))
	return contract, perr
}

func outcome(err *diag.StructuredError) string {
	if err == nil {
		return "ok"
	}
	return err.Kind.String()
}
