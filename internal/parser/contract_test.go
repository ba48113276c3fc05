package parser

import (
	"testing"

	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
)

func TestParseAbiDefinitions(t *testing.T) {
	c := mustParse(t, `
#define function transfer(address to, uint256) nonpayable returns (bool)
#define function batch((uint256,address)[], bytes32[2]) view returns ()
#define event Transfer(address indexed from, address indexed, uint256 value)
#define error Unauthorized(address)
`)
	if len(c.Functions) != 2 || len(c.Events) != 1 || len(c.Errors) != 1 {
		t.Fatalf("unexpected definitions %+v", c)
	}
	fn := c.Functions[0]
	if fn.Signature() != "transfer(address,uint256)" || fn.Mutability != "nonpayable" {
		t.Fatalf("unexpected function %+v", fn)
	}
	if len(fn.Outputs) != 1 || fn.Outputs[0].ArgType != "bool" {
		t.Fatalf("unexpected outputs %+v", fn.Outputs)
	}
	if fn.Inputs[0].Name != "to" {
		t.Fatalf("unexpected input name %q", fn.Inputs[0].Name)
	}
	if got := c.Functions[1].Signature(); got != "batch((uint256,address)[],bytes32[2])" {
		t.Fatalf("unexpected tuple signature %q", got)
	}
	ev := c.Events[0]
	if ev.Signature() != "Transfer(address,address,uint256)" {
		t.Fatalf("unexpected event signature %q", ev.Signature())
	}
	if !ev.Parameters[0].Indexed || !ev.Parameters[1].Indexed || ev.Parameters[2].Indexed {
		t.Fatalf("unexpected indexed flags %+v", ev.Parameters)
	}
	if c.Errors[0].Signature() != "Unauthorized(address)" {
		t.Fatalf("unexpected error signature %q", c.Errors[0].Signature())
	}
}

func TestParseConstantsTablesIncludes(t *testing.T) {
	c := mustParse(t, `#include "./utils/Ownable.huff"
#define constant OWNER = FREE_STORAGE_POINTER()
#define constant MAX = 0xff
#define jumptable SWITCH { a b c }
#define jumptable__packed PACKED { a }
#define table CODE { 0xdeadbeef }
`)
	if len(c.Includes) != 1 || c.Includes[0].Path != "./utils/Ownable.huff" {
		t.Fatalf("unexpected includes %+v", c.Includes)
	}
	if len(c.Constants) != 2 {
		t.Fatalf("expected 2 constants, got %d", len(c.Constants))
	}
	if c.Constants[0].Kind != ast.ConstFreeStoragePointer || c.Constants[1].Value != "0xff" {
		t.Fatalf("unexpected constants %+v", c.Constants)
	}
	if len(c.Tables) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(c.Tables))
	}
	if c.Tables[0].Kind != ast.TableJumpTable || len(c.Tables[0].Entries) != 3 {
		t.Fatalf("unexpected jumptable %+v", c.Tables[0])
	}
	if c.Tables[1].Kind != ast.TableJumpTablePacked {
		t.Fatalf("unexpected packed table kind %s", c.Tables[1].Kind)
	}
	if c.Tables[2].Entries[0].Kind != ast.StmtCode {
		t.Fatalf("unexpected code table %+v", c.Tables[2])
	}
}

func TestParseEmptyContract(t *testing.T) {
	c := mustParse(t, "  // nothing here\n")
	if len(c.Macros) != 0 {
		t.Fatal("expected no macros")
	}
}

func TestParseUnclosedBrace(t *testing.T) {
	input := "#define macro MAIN() = takes(0) returns(0) {\n    add"
	err := mustFail(t, input, diag.SynUnclosedDelimiter)
	brace := uint32(len("#define macro MAIN() = takes(0) returns(0) "))
	if len(err.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %v", err.Spans)
	}
	if err.Spans[0] != (source.Span{Start: brace, End: brace + 1}) {
		t.Fatalf("first span must point at '{', got %v", err.Spans[0])
	}
	end := uint32(len(input))
	if err.Spans[1] != (source.Span{Start: end, End: end}) {
		t.Fatalf("second span must point at end of file, got %v", err.Spans[1])
	}
}

func TestParseUnclosedBraceInsideLabel(t *testing.T) {
	mustFail(t, "#define macro M() = {\n l:\n add", diag.SynUnclosedDelimiter)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		span  source.Span
	}{
		{"top level opcode", "add", diag.SynUnexpectedTopLevel, source.Span{Start: 0, End: 3}},
		{"unknown definition", "#define MAIN", diag.SynExpectDefinition, source.Span{Start: 8, End: 12}},
		{"missing macro name", "#define macro ()", diag.SynExpectIdentifier, source.Span{Start: 14, End: 15}},
		{"missing body", "#define macro M() = takes(0) returns(0) add", diag.SynExpectBody, source.Span{Start: 40, End: 43}},
		{"bad takes", "#define macro M() = takes(x) {}", diag.SynExpectLiteral, source.Span{Start: 26, End: 27}},
		{"decimal in body", "#define macro M() = { 12 }", diag.SynExpectLiteral, source.Span{Start: 22, End: 24}},
		{"stray token in body", "#define macro M() = { ) }", diag.SynUnexpectedToken, source.Span{Start: 22, End: 23}},
		{"bad constant", "#define constant X = add", diag.SynInvalidConstant, source.Span{Start: 21, End: 24}},
		{"bad table entry", "#define table T { add }", diag.SynInvalidTableEntry, source.Span{Start: 18, End: 21}},
		{"include without path", "#include MAIN", diag.SynExpectStringPath, source.Span{Start: 9, End: 13}},
		{"bad abi type", "#define event E(0x01)", diag.SynExpectType, source.Span{Start: 16, End: 20}},
		{"bad invocation arg", "#define macro M() = { X(]) }", diag.SynExpectArgument, source.Span{Start: 24, End: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustFail(t, tt.input, tt.code)
			if err.Spans[0] != tt.span {
				t.Fatalf("got span %v, want %v", err.Spans[0], tt.span)
			}
		})
	}
}

func TestParseUnclosedParen(t *testing.T) {
	err := mustFail(t, "#define macro M(a, b", diag.SynUnclosedDelimiter)
	if err.Spans[0] != (source.Span{Start: 15, End: 16}) {
		t.Fatalf("first span must point at '(', got %v", err.Spans[0])
	}
}
