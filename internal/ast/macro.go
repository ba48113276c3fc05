package ast

import "huffls/internal/source"

type MacroKind uint8

const (
	MacroKindMacro MacroKind = iota
	MacroKindFn
	MacroKindTest
)

func (k MacroKind) String() string {
	switch k {
	case MacroKindMacro:
		return "macro"
	case MacroKindFn:
		return "fn"
	case MacroKindTest:
		return "test"
	}
	return "MacroKind(?)"
}

// MacroDefinition is `#define macro NAME(params) = takes(n) returns(m) { ... }`.
type MacroDefinition struct {
	Name       string
	Kind       MacroKind
	Parameters []Argument
	Statements []Statement
	Takes      uint
	Returns    uint
	Span       source.Span // от #define до закрывающей '}'
	NameSpan   source.Span
	BodySpan   source.Span // от '{' до '}' включительно
}

// StatementsRange returns the coarse range bracketed by the first span of the
// first statement and the last span of the last statement. ok is false when
// the macro has no statements.
func (m *MacroDefinition) StatementsRange() (sp source.Span, ok bool) {
	if len(m.Statements) == 0 {
		return source.Span{}, false
	}
	first, ok := m.Statements[0].FirstSpan()
	if !ok {
		return source.Span{}, false
	}
	last, ok := m.Statements[len(m.Statements)-1].LastSpan()
	if !ok {
		return source.Span{}, false
	}
	return source.Span{Start: first.Start, End: last.End}, true
}

// Argument is a macro parameter or a function/event/error argument.
// Macro parameters have only a Name; ABI arguments have ArgType and
// optionally a Name.
type Argument struct {
	Name    string
	ArgType string
	Indexed bool
	Span    source.Span
}
