package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"huffls/internal/ast"
	"huffls/internal/source"
)

// ASTNodeOutput is one node of the dumped tree. The same shape is used for
// JSON and msgpack.
type ASTNodeOutput struct {
	Type     string            `json:"type"`
	Kind     string            `json:"kind,omitempty"`
	Name     string            `json:"name,omitempty"`
	Span     source.Span       `json:"span"`
	Text     string            `json:"text,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Children []ASTNodeOutput   `json:"children,omitempty"`
}

// BuildContractOutput converts c into a generic node tree. Definitions are
// grouped by kind in source order inside each group.
func BuildContractOutput(c *ast.Contract) ASTNodeOutput {
	root := ASTNodeOutput{Type: "Contract"}
	if c == nil {
		return root
	}
	for _, inc := range c.Includes {
		root.Children = append(root.Children, ASTNodeOutput{Type: "Include", Span: inc.Span, Text: inc.Path})
	}
	for i := range c.Constants {
		k := &c.Constants[i]
		n := ASTNodeOutput{Type: "Constant", Name: k.Name, Span: k.Span, Text: k.Value}
		if k.Kind == ast.ConstFreeStoragePointer {
			n.Kind = "FREE_STORAGE_POINTER"
			n.Text = ""
		}
		root.Children = append(root.Children, n)
	}
	for i := range c.Functions {
		f := &c.Functions[i]
		n := ASTNodeOutput{Type: "Function", Name: f.Name, Span: f.Span, Text: f.Signature()}
		if f.Mutability != "" {
			n.Fields = map[string]string{"mutability": f.Mutability}
		}
		n.Children = append(n.Children, argsNode("Inputs", f.Inputs), argsNode("Outputs", f.Outputs))
		root.Children = append(root.Children, n)
	}
	for i := range c.Events {
		e := &c.Events[i]
		root.Children = append(root.Children, ASTNodeOutput{
			Type: "Event", Name: e.Name, Span: e.Span, Text: e.Signature(),
			Children: []ASTNodeOutput{argsNode("Parameters", e.Parameters)},
		})
	}
	for i := range c.Errors {
		e := &c.Errors[i]
		root.Children = append(root.Children, ASTNodeOutput{
			Type: "Error", Name: e.Name, Span: e.Span, Text: e.Signature(),
			Children: []ASTNodeOutput{argsNode("Parameters", e.Parameters)},
		})
	}
	for i := range c.Tables {
		t := &c.Tables[i]
		n := ASTNodeOutput{Type: "Table", Kind: t.Kind.String(), Name: t.Name, Span: t.Span}
		n.Children = stmtNodes(t.Entries)
		root.Children = append(root.Children, n)
	}
	for i := range c.Macros {
		root.Children = append(root.Children, macroNode(&c.Macros[i]))
	}
	return root
}

func macroNode(m *ast.MacroDefinition) ASTNodeOutput {
	n := ASTNodeOutput{
		Type: "Macro",
		Kind: m.Kind.String(),
		Name: m.Name,
		Span: m.Span,
		Fields: map[string]string{
			"takes":   fmt.Sprint(m.Takes),
			"returns": fmt.Sprint(m.Returns),
			"body":    m.BodySpan.String(),
		},
	}
	n.Children = append(n.Children, argsNode("Parameters", m.Parameters))
	n.Children = append(n.Children, ASTNodeOutput{Type: "Body", Span: m.BodySpan, Children: stmtNodes(m.Statements)})
	return n
}

func argsNode(label string, args []ast.Argument) ASTNodeOutput {
	n := ASTNodeOutput{Type: label}
	for _, a := range args {
		arg := ASTNodeOutput{Type: "Argument", Name: a.Name, Span: a.Span, Text: a.ArgType}
		if a.Indexed {
			arg.Fields = map[string]string{"indexed": "true"}
		}
		n.Children = append(n.Children, arg)
	}
	return n
}

func stmtNodes(stmts []ast.Statement) []ASTNodeOutput {
	if len(stmts) == 0 {
		return nil
	}
	out := make([]ASTNodeOutput, 0, len(stmts))
	for i := range stmts {
		st := &stmts[i]
		n := ASTNodeOutput{Type: "Statement", Kind: st.Kind.String(), Text: st.Value}
		if sp, ok := st.FirstSpan(); ok {
			n.Span = sp
			if last, _ := st.LastSpan(); last != sp {
				n.Span = sp.Cover(last)
			}
		}
		n.Children = append(stmtNodes(st.Args), stmtNodes(st.Body)...)
		out = append(out, n)
	}
	return out
}

// FormatContractJSON writes the tree as indented JSON.
func FormatContractJSON(w io.Writer, c *ast.Contract) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildContractOutput(c))
}

// FormatContractMsgpack writes the tree as msgpack, keyed by the json tag
// names so both dumps carry the same field names.
func FormatContractMsgpack(w io.Writer, c *ast.Contract) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(BuildContractOutput(c))
}

// DecodeContractMsgpack reads back what FormatContractMsgpack wrote.
func DecodeContractMsgpack(r io.Reader) (ASTNodeOutput, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	var out ASTNodeOutput
	err := dec.Decode(&out)
	return out, err
}

// FormatContractPretty prints the tree with box-drawing guides.
func FormatContractPretty(w io.Writer, c *ast.Contract, f *source.File) error {
	root := BuildContractOutput(c)
	header := "Contract"
	if f != nil {
		header = f.FormatPath("auto", "")
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for i := range root.Children {
		writeTree(w, &root.Children[i], "", i == len(root.Children)-1)
	}
	return nil
}

func writeTree(w io.Writer, n *ASTNodeOutput, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(n))
	for i := range n.Children {
		writeTree(w, &n.Children[i], prefix+next, i == len(n.Children)-1)
	}
}

func nodeLabel(n *ASTNodeOutput) string {
	var b strings.Builder
	b.WriteString(n.Type)
	if n.Kind != "" {
		b.WriteString(" " + n.Kind)
	}
	if n.Name != "" {
		b.WriteString(" " + n.Name)
	}
	if n.Text != "" {
		fmt.Fprintf(&b, " %q", n.Text)
	}
	if !n.Span.Empty() {
		fmt.Fprintf(&b, " (span: %s)", n.Span)
	}
	return b.String()
}
