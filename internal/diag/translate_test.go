package diag

import (
	"testing"

	"huffls/internal/source"
)

// line starts at {0, 10, 25}
const sample = "012345678\n01234567890123\nabc"

func sampleFile() *source.File {
	return source.NewFile("sample.huff", []byte(sample), source.FileVirtual)
}

func TestTranslateParserErrorUsesFirstSpan(t *testing.T) {
	err := NewParserError(SynUnexpectedToken, "unexpected token",
		source.Span{Start: 12, End: 18},
		source.Span{Start: 0, End: 3},
	)
	got, ok := Translate(err, sampleFile())
	if !ok {
		t.Fatal("expected translation")
	}
	want := Range{
		Start: source.Position{Line: 1, Character: 2},
		End:   source.Position{Line: 1, Character: 8},
	}
	if got.Range != want {
		t.Fatalf("unexpected range %+v, want %+v", got.Range, want)
	}
	if got.Message != "Span { start: 12, end: 18 }" {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if got.Cause != "unexpected token" || got.Code != SynUnexpectedToken {
		t.Fatalf("cause/code not carried: %+v", got)
	}
}

func TestTranslateLexicalErrorIsPositioned(t *testing.T) {
	err := NewLexicalError(LexUnterminatedString, "unterminated string", source.Span{Start: 25, End: 28})
	got, ok := Translate(err, sampleFile())
	if !ok {
		t.Fatal("expected translation")
	}
	if got.Range.Start != (source.Position{Line: 2, Character: 0}) || got.Range.End != (source.Position{Line: 2, Character: 3}) {
		t.Fatalf("unexpected range %+v", got.Range)
	}
}

func TestTranslateUnrecognizedAnchorsAtStart(t *testing.T) {
	got, ok := Translate(Unrecognized("boom"), sampleFile())
	if !ok {
		t.Fatal("expected translation")
	}
	want := Range{
		Start: source.Position{Line: 0, Character: 0},
		End:   source.Position{Line: 0, Character: 1},
	}
	if got.Range != want {
		t.Fatalf("unexpected range %+v", got.Range)
	}
	if got.Message != UnrecognizedMessage {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestTranslateDropsUnmappableSpans(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		text string
	}{
		{
			name: "end past buffer",
			err:  NewParserError(SynUnexpectedToken, "x", source.Span{Start: 2, End: 99}),
			text: "abc",
		},
		{
			name: "start past buffer",
			err:  NewParserError(SynUnexpectedToken, "x", source.Span{Start: 50, End: 51}),
			text: "abc",
		},
		{
			name: "unrecognized on empty document",
			err:  Unrecognized("boom"),
			text: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := source.NewFile("t.huff", []byte(tt.text), source.FileVirtual)
			if d, ok := Translate(tt.err, file); ok {
				t.Fatalf("expected drop, got %+v", d)
			}
		})
	}
}

func TestTranslateNil(t *testing.T) {
	if _, ok := Translate(nil, sampleFile()); ok {
		t.Fatal("nil error must not translate")
	}
}

func TestFirstErrorReporterKeepsFirst(t *testing.T) {
	var r FirstErrorReporter
	r.Report(LexUnknownChar, source.Span{Start: 1, End: 2}, "first")
	r.Report(LexBadNumber, source.Span{Start: 5, End: 6}, "second")
	if r.Err == nil || r.Err.Message != "first" || r.Err.Kind != KindLexical {
		t.Fatalf("unexpected error %+v", r.Err)
	}
}

func TestStructuredErrorString(t *testing.T) {
	err := NewParserError(SynUnclosedDelimiter, "unclosed '{'", source.Span{Start: 4, End: 4}, source.Span{Start: 1, End: 2})
	if got := err.Error(); got != "ParserError SYN2002: unclosed '{' at 4-4, 1-2" {
		t.Fatalf("unexpected string %q", got)
	}
}
