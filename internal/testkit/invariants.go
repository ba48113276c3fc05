// Package testkit holds structural checks shared by parser, driver and fuzz
// tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"huffls/internal/ast"
	"huffls/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every definition span is non-empty and within the file content
// 2) macro name and body spans lie inside the macro span, the body is braced
// 3) every statement span, nested ones included, lies strictly inside the body
// 4) macros appear in source order and do not overlap
func CheckSpanInvariants(c *ast.Contract, sf *source.File) error {
	if c == nil || sf == nil {
		return fmt.Errorf("nil contract or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	within := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span %v", what, sp)
		}
		if sp.End > size {
			return fmt.Errorf("%s: span %v beyond content (%d bytes)", what, sp, size)
		}
		return nil
	}

	for _, f := range c.Functions {
		if err := within("function "+f.Name, f.Span); err != nil {
			return err
		}
	}
	for _, e := range c.Events {
		if err := within("event "+e.Name, e.Span); err != nil {
			return err
		}
	}
	for _, e := range c.Errors {
		if err := within("error "+e.Name, e.Span); err != nil {
			return err
		}
	}
	for _, k := range c.Constants {
		if err := within("constant "+k.Name, k.Span); err != nil {
			return err
		}
	}
	for _, tb := range c.Tables {
		if err := within("table "+tb.Name, tb.Span); err != nil {
			return err
		}
	}
	for _, inc := range c.Includes {
		if err := within("include "+inc.Path, inc.Span); err != nil {
			return err
		}
	}

	var prevEnd uint32
	for i := range c.Macros {
		m := &c.Macros[i]
		what := "macro " + m.Name
		if err := within(what, m.Span); err != nil {
			return err
		}
		if i > 0 && m.Span.Start < prevEnd {
			return fmt.Errorf("%s: span %v overlaps the previous macro", what, m.Span)
		}
		prevEnd = m.Span.End

		if !contains(m.Span, m.NameSpan) {
			return fmt.Errorf("%s: name span %v outside %v", what, m.NameSpan, m.Span)
		}
		if err := within(what+" body", m.BodySpan); err != nil {
			return err
		}
		if !contains(m.Span, m.BodySpan) {
			return fmt.Errorf("%s: body span %v outside %v", what, m.BodySpan, m.Span)
		}
		if sf.Content[m.BodySpan.Start] != '{' || sf.Content[m.BodySpan.End-1] != '}' {
			return fmt.Errorf("%s: body span %v is not braced", what, m.BodySpan)
		}
		for _, p := range m.Parameters {
			if p.Span.End > 0 && !contains(m.Span, p.Span) {
				return fmt.Errorf("%s: parameter %q span %v outside the macro", what, p.Name, p.Span)
			}
		}

		var bad error
		for j := range m.Statements {
			m.Statements[j].Walk(func(st *ast.Statement) {
				if bad != nil {
					return
				}
				for _, sp := range st.Spans {
					if sp.End <= sp.Start || sp.Start <= m.BodySpan.Start || sp.End >= m.BodySpan.End {
						bad = fmt.Errorf("%s: statement %s %q span %v not inside body %v",
							what, st.Kind, st.Value, sp, m.BodySpan)
						return
					}
				}
			})
		}
		if bad != nil {
			return bad
		}
	}
	return nil
}

func contains(outer, inner source.Span) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}
