package ast

import "huffls/internal/source"

// Contract is the parse result of one Huff source file. Values are built once
// by the parser and never mutated afterwards, so a *Contract can be shared
// between goroutines.
type Contract struct {
	Macros    []MacroDefinition
	Functions []FunctionDefinition
	Events    []EventDefinition
	Errors    []ErrorDefinition
	Constants []ConstantDefinition
	Tables    []TableDefinition
	Includes  []Include
}

// Include is an `#include "path"` directive.
type Include struct {
	Path string
	Span source.Span
}

// FindMacro returns the first macro named name.
func (c *Contract) FindMacro(name string) (*MacroDefinition, bool) {
	for i := range c.Macros {
		if c.Macros[i].Name == name {
			return &c.Macros[i], true
		}
	}
	return nil, false
}

// MacroAt returns the macro whose definition span covers offset.
func (c *Contract) MacroAt(offset uint32) (*MacroDefinition, bool) {
	for i := range c.Macros {
		sp := c.Macros[i].Span
		if sp.Start <= offset && offset <= sp.End {
			return &c.Macros[i], true
		}
	}
	return nil, false
}
