package ast

import "huffls/internal/source"

// FunctionDefinition is an ABI function interface declaration.
type FunctionDefinition struct {
	Name       string
	Inputs     []Argument
	Outputs    []Argument
	Mutability string // view, pure, payable, nonpayable
	Span       source.Span
}

// Signature renders the canonical `name(type,type)` form.
func (f *FunctionDefinition) Signature() string { return signature(f.Name, f.Inputs) }

type EventDefinition struct {
	Name       string
	Parameters []Argument
	Span       source.Span
}

func (e *EventDefinition) Signature() string { return signature(e.Name, e.Parameters) }

type ErrorDefinition struct {
	Name       string
	Parameters []Argument
	Span       source.Span
}

func (e *ErrorDefinition) Signature() string { return signature(e.Name, e.Parameters) }

type ConstantValueKind uint8

const (
	ConstLiteral ConstantValueKind = iota
	ConstFreeStoragePointer
)

// ConstantDefinition is `#define constant NAME = 0x.. | FREE_STORAGE_POINTER()`.
type ConstantDefinition struct {
	Name  string
	Kind  ConstantValueKind
	Value string // текст литерала для ConstLiteral
	Span  source.Span
}

type TableKind uint8

const (
	TableJumpTable TableKind = iota
	TableJumpTablePacked
	TableCode
)

func (k TableKind) String() string {
	switch k {
	case TableJumpTable:
		return "jumptable"
	case TableJumpTablePacked:
		return "jumptable__packed"
	case TableCode:
		return "table"
	}
	return "TableKind(?)"
}

// TableDefinition holds label names for jump tables or literals for code tables.
type TableDefinition struct {
	Name    string
	Kind    TableKind
	Entries []Statement
	Span    source.Span
}

func signature(name string, args []Argument) string {
	out := name + "("
	for i, a := range args {
		if i > 0 {
			out += ","
		}
		out += a.ArgType
	}
	return out + ")"
}
