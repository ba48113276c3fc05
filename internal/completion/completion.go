// Package completion computes completion candidates for a cursor inside a
// Huff macro body.
package completion

import (
	"fmt"
	"sort"

	"huffls/internal/ast"
	"huffls/internal/evm"
)

// Kind tags the variant of an Item.
type Kind uint8

const (
	KindOpcode Kind = iota
	KindBuiltin
	KindMacro
)

func (k Kind) String() string {
	switch k {
	case KindOpcode:
		return "Opcode"
	case KindBuiltin:
		return "BuiltinFunction"
	case KindMacro:
		return "Macro"
	}
	return "Kind(?)"
}

// Item is one completion candidate. Parameters is set for macros only,
// Opcode for opcodes only.
type Item struct {
	Kind       Kind
	Name       string
	Parameters []ast.Argument
	Opcode     evm.Opcode
}

// Scope selects how a macro's extent is computed.
type Scope uint8

const (
	// ScopeStatements brackets the macro by its first and last statement
	// spans. Macros without statements contain nothing.
	ScopeStatements Scope = iota
	// ScopeBody uses the parsed braces of the macro body.
	ScopeBody
)

func (s Scope) String() string {
	if s == ScopeBody {
		return "body"
	}
	return "statements"
}

// ParseScope converts a config value into a Scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "statements":
		return ScopeStatements, nil
	case "body":
		return ScopeBody, nil
	}
	return ScopeStatements, fmt.Errorf("invalid completion scope %q (expected: statements|body)", s)
}

type Options struct {
	Scope Scope
}

// InsideMacro reports whether offset lies strictly inside m. Both
// boundaries are outside.
func InsideMacro(m *ast.MacroDefinition, offset uint32, scope Scope) bool {
	var start, end uint32
	switch scope {
	case ScopeBody:
		if m.BodySpan.Empty() {
			return false
		}
		start, end = m.BodySpan.Start, m.BodySpan.End
	default:
		sp, ok := m.StatementsRange()
		if !ok {
			return false
		}
		start, end = sp.Start, sp.End
	}
	return start < offset && offset < end
}

// Complete returns the candidates for offset, keyed by label. Outside every
// macro the result is empty. Inside, opcodes are inserted first, then
// builtins, then every macro of the contract; a later insert replaces an
// earlier one with the same label, so macros win collisions.
func Complete(c *ast.Contract, offset uint32, opts Options) map[string]Item {
	out := make(map[string]Item)
	if c == nil || !insideAny(c, offset, opts.Scope) {
		return out
	}
	for _, op := range evm.Opcodes() {
		out[op.Name] = Item{Kind: KindOpcode, Name: op.Name, Opcode: op}
	}
	for _, name := range evm.Builtins {
		out[name] = Item{Kind: KindBuiltin, Name: name}
	}
	for i := range c.Macros {
		m := &c.Macros[i]
		out[m.Name] = Item{Kind: KindMacro, Name: m.Name, Parameters: m.Parameters}
	}
	return out
}

func insideAny(c *ast.Contract, offset uint32, scope Scope) bool {
	for i := range c.Macros {
		if InsideMacro(&c.Macros[i], offset, scope) {
			return true
		}
	}
	return false
}

// Sorted returns the items ordered by label.
func Sorted(items map[string]Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
