package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/driver"
	"huffls/internal/source"
)

const dumpSource = `#define constant OWNER = FREE_STORAGE_POINTER()
#define event Transfer(address indexed, uint256)
#define macro MAIN(a) = takes(0) returns(1) {
    0x01 [OWNER] <a> add
}`

func unrecognized() *diag.StructuredError { return diag.Unrecognized("boom") }

func parseDump(t *testing.T) (*ast.Contract, *source.File) {
	t.Helper()
	file := source.NewFile("dump.huff", []byte(dumpSource), source.FileVirtual)
	c, err := driver.ParseFile(context.Background(), file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return c, file
}

func findNode(n ASTNodeOutput, typ, name string) (ASTNodeOutput, bool) {
	if n.Type == typ && n.Name == name {
		return n, true
	}
	for _, ch := range n.Children {
		if got, ok := findNode(ch, typ, name); ok {
			return got, true
		}
	}
	return ASTNodeOutput{}, false
}

func TestContractOutputShape(t *testing.T) {
	c, _ := parseDump(t)
	root := BuildContractOutput(c)
	owner, ok := findNode(root, "Constant", "OWNER")
	if !ok || owner.Kind != "FREE_STORAGE_POINTER" {
		t.Fatalf("unexpected constant %+v", owner)
	}
	ev, ok := findNode(root, "Event", "Transfer")
	if !ok || ev.Text != "Transfer(address,uint256)" {
		t.Fatalf("unexpected event %+v", ev)
	}
	main, ok := findNode(root, "Macro", "MAIN")
	if !ok || main.Fields["returns"] != "1" || main.Kind != "macro" {
		t.Fatalf("unexpected macro %+v", main)
	}
	body := main.Children[1]
	var kinds []string
	for _, st := range body.Children {
		kinds = append(kinds, st.Kind)
	}
	if got := strings.Join(kinds, ","); got != "Literal,Constant,ArgCall,Opcode" {
		t.Fatalf("unexpected statements %s", got)
	}
}

func TestContractJSONAndMsgpackAgree(t *testing.T) {
	c, _ := parseDump(t)

	var js bytes.Buffer
	if err := FormatContractJSON(&js, c); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON ASTNodeOutput
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}

	var mp bytes.Buffer
	if err := FormatContractMsgpack(&mp, c); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	fromMsgpack, err := DecodeContractMsgpack(&mp)
	if err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}

	a, _ := json.Marshal(fromJSON)
	b, _ := json.Marshal(fromMsgpack)
	if !bytes.Equal(a, b) {
		t.Fatalf("dumps differ:\njson:    %s\nmsgpack: %s", a, b)
	}
}

func TestContractPretty(t *testing.T) {
	c, f := parseDump(t)
	var buf bytes.Buffer
	if err := FormatContractPretty(&buf, c, f); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"dump.huff\n", "├─ Constant FREE_STORAGE_POINTER OWNER", "└─ Macro macro MAIN", "Statement Opcode \"add\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTokensDump(t *testing.T) {
	file := source.NewFile("t.huff", []byte("// hi\nadd 0x01"), source.FileVirtual)
	toks, err := driver.Tokenize(file)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, file); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	got := lines(buf.String())
	if len(got) != 3 || !strings.Contains(got[0], `"add" at 2:1-2:4 (leading: LineComment, Newline)`) {
		t.Fatalf("unexpected pretty tokens:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 || out[1].Text != "0x01" || out[2].Text != "" {
		t.Fatalf("unexpected json tokens %+v", out)
	}
}
