package parser

import (
	"testing"

	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/lexer"
	"huffls/internal/source"
	"huffls/internal/testkit"
)

func parseSource(t *testing.T, input string) (*ast.Contract, *diag.StructuredError) {
	t.Helper()
	_, c, err := parseFile(t, input)
	return c, err
}

func parseFile(t *testing.T, input string) (*source.File, *ast.Contract, *diag.StructuredError) {
	t.Helper()
	file := source.NewFile("test.huff", []byte(input), source.FileVirtual)
	rep := &diag.FirstErrorReporter{}
	tokens := lexer.New(file, lexer.Options{Reporter: rep}).All()
	if rep.Err != nil {
		t.Fatalf("unexpected lexical error: %v", rep.Err)
	}
	c, err := Parse(tokens)
	return file, c, err
}

// mustParse also checks span invariants of the result.
func mustParse(t *testing.T, input string) *ast.Contract {
	t.Helper()
	file, c, err := parseFile(t, input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := testkit.CheckSpanInvariants(c, file); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return c
}

func mustFail(t *testing.T, input string, code diag.Code) *diag.StructuredError {
	t.Helper()
	c, err := parseSource(t, input)
	if err == nil {
		t.Fatalf("expected %s, parse succeeded with %+v", code.ID(), c)
	}
	if c != nil {
		t.Fatal("contract must be nil on failure")
	}
	if err.Kind != diag.KindParser || err.Code != code {
		t.Fatalf("got %v, want %s", err, code.ID())
	}
	return err
}
