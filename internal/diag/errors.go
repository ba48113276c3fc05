package diag

import (
	"fmt"
	"strings"

	"huffls/internal/source"
)

// ErrorKind classifies a StructuredError.
type ErrorKind uint8

const (
	// KindUnrecognized is an opaque failure without a source location.
	KindUnrecognized ErrorKind = iota
	// KindLexical is a malformed token.
	KindLexical
	// KindParser is a structural failure.
	KindParser
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "LexicalError"
	case KindParser:
		return "ParserError"
	default:
		return "Unrecognized"
	}
}

// StructuredError is the failure value of a parse.
type StructuredError struct {
	Kind    ErrorKind
	Code    Code
	Message string
	Spans   []source.Span
}

// NewParserError builds a KindParser error. At least one span is required.
func NewParserError(code Code, msg string, first source.Span, more ...source.Span) *StructuredError {
	return &StructuredError{
		Kind:    KindParser,
		Code:    code,
		Message: msg,
		Spans:   append([]source.Span{first}, more...),
	}
}

// NewLexicalError builds a KindLexical error for the malformed token at span.
func NewLexicalError(code Code, msg string, span source.Span) *StructuredError {
	return &StructuredError{
		Kind:    KindLexical,
		Code:    code,
		Message: msg,
		Spans:   []source.Span{span},
	}
}

// Unrecognized wraps an opaque failure.
func Unrecognized(format string, args ...any) *StructuredError {
	return &StructuredError{
		Kind:    KindUnrecognized,
		Code:    UnknownCode,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *StructuredError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(" ")
	sb.WriteString(e.Code.ID())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if len(e.Spans) > 0 {
		sb.WriteString(" at ")
		for i, sp := range e.Spans {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(sp.String())
		}
	}
	return sb.String()
}

// Positioned reports whether the error carries spans that translation should use.
func (e *StructuredError) Positioned() bool {
	return e != nil && e.Kind != KindUnrecognized && len(e.Spans) > 0
}

// PrimarySpan returns the first span, if any.
func (e *StructuredError) PrimarySpan() (source.Span, bool) {
	if e == nil || len(e.Spans) == 0 {
		return source.Span{}, false
	}
	return e.Spans[0], true
}
