package ast

import "huffls/internal/source"

type StatementKind uint8

const (
	StmtOpcode StatementKind = iota
	StmtLiteral
	StmtCode
	StmtMacroInvocation
	StmtConstant
	StmtArgCall
	StmtBuiltin
	StmtLabel
	StmtLabelCall
)

var stmtKindNames = [...]string{
	StmtOpcode:          "Opcode",
	StmtLiteral:         "Literal",
	StmtCode:            "Code",
	StmtMacroInvocation: "MacroInvocation",
	StmtConstant:        "Constant",
	StmtArgCall:         "ArgCall",
	StmtBuiltin:         "BuiltinFunctionCall",
	StmtLabel:           "Label",
	StmtLabelCall:       "LabelCall",
}

func (k StatementKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StatementKind(?)"
}

// Statement is one element of a macro body.
//
// Spans lists the source ranges of the tokens the statement was built from,
// in order. Labels include the spans of their nested statements.
type Statement struct {
	Kind  StatementKind
	Value string // мнемоника, литерал, имя макроса/константы/аргумента/метки
	Args  []Statement
	Body  []Statement // только для StmtLabel
	Spans []source.Span
}

// FirstSpan returns the first recorded span.
func (s *Statement) FirstSpan() (source.Span, bool) {
	if len(s.Spans) == 0 {
		return source.Span{}, false
	}
	return s.Spans[0], true
}

// LastSpan returns the last recorded span.
func (s *Statement) LastSpan() (source.Span, bool) {
	if len(s.Spans) == 0 {
		return source.Span{}, false
	}
	return s.Spans[len(s.Spans)-1], true
}

// Walk calls fn for s and every nested statement, depth first.
func (s *Statement) Walk(fn func(*Statement)) {
	fn(s)
	for i := range s.Args {
		s.Args[i].Walk(fn)
	}
	for i := range s.Body {
		s.Body[i].Walk(fn)
	}
}
