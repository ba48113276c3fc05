package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"huffls/internal/driver"
	"huffls/internal/source"
)

func failing(t *testing.T, path, text string) Entry {
	t.Helper()
	file := source.NewFile(path, []byte(text), source.FileVirtual)
	_, err := driver.ParseFile(context.Background(), file)
	if err == nil {
		t.Fatalf("expected %q to fail", text)
	}
	return Entry{File: file, Err: err}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestPrettyUnclosedBrace(t *testing.T) {
	e := failing(t, "t.huff", "#define macro M() = {\n  add\n")
	var buf bytes.Buffer
	Pretty(&buf, []Entry{e}, PrettyOpts{})
	got := lines(buf.String())
	want := []string{
		"t.huff:1:21: error[SYN2002]: unclosed '{'",
		"1 | #define macro M() = {",
		"  | " + strings.Repeat(" ", 20) + "^",
		"note: t.huff:3:1",
	}
	if len(got) < len(want) {
		t.Fatalf("output too short:\n%s", buf.String())
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("line %d:\n got %q\nwant %q", i, got[i], w)
		}
	}
}

func TestPrettyCaretUnderWideRunes(t *testing.T) {
	text := "#define macro M() = { /* 日本 */ 0xzz }"
	e := failing(t, "t.huff", text)
	var buf bytes.Buffer
	Pretty(&buf, []Entry{e}, PrettyOpts{})
	got := lines(buf.String())
	if len(got) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	caret := got[2]
	// 日本 занимает 6 байт, но 4 колонки
	from := strings.Index(text, "0xzz")
	if idx := strings.Index(caret, "^~~~"); idx != len("  | ")+from-2 {
		t.Fatalf("caret at %d, want %d:\n%s", idx, len("  | ")+from-2, buf.String())
	}
}

func TestPrettyContextAndTabs(t *testing.T) {
	e := failing(t, "t.huff", "#define constant A = 0x01\n\t#define macro M() = {")
	var buf bytes.Buffer
	Pretty(&buf, []Entry{e}, PrettyOpts{Context: 1})
	out := buf.String()
	if !strings.Contains(out, "1 | #define constant A = 0x01\n") {
		t.Fatalf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "2 |     #define macro M() = {\n") {
		t.Fatalf("tab must expand to spaces:\n%s", out)
	}
}

func TestPrettyColorToggle(t *testing.T) {
	e := failing(t, "t.huff", "#define macro M() = {")
	var plain, colored bytes.Buffer
	Pretty(&plain, []Entry{e}, PrettyOpts{Color: false})
	Pretty(&colored, []Entry{e}, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("plain output must not contain escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("colored output must contain escape codes")
	}
}

func TestShortAndMax(t *testing.T) {
	entries := []Entry{
		failing(t, "a.huff", "#define macro M() = {"),
		failing(t, "b.huff", "junk"),
	}
	var buf bytes.Buffer
	Short(&buf, entries, PrettyOpts{})
	got := lines(buf.String())
	if len(got) != 2 || !strings.HasPrefix(got[0], "a.huff:1:21: SYN2002 ") || !strings.HasPrefix(got[1], "b.huff:1:1: SYN2003 ") {
		t.Fatalf("unexpected short output:\n%s", buf.String())
	}
	buf.Reset()
	Short(&buf, entries, PrettyOpts{Max: 1})
	if n := len(lines(buf.String())); n != 1 {
		t.Fatalf("max must truncate, got %d lines", n)
	}
}

func TestJSONOutput(t *testing.T) {
	entries := []Entry{failing(t, "a.huff", "#define macro M() = {\n")}
	var buf bytes.Buffer
	if err := JSON(&buf, entries, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2002" || d.Kind != "ParserError" || d.File != "a.huff" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location == nil || d.Location.StartByte != 20 || d.Location.StartLine != 1 || d.Location.StartCol != 21 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if len(d.Related) != 1 || d.Related[0].StartLine != 2 {
		t.Fatalf("EOF span must be related, got %+v", d.Related)
	}
}

func TestJSONUnrecognizedHasNoLocation(t *testing.T) {
	file := source.NewFile("x.huff", []byte("abc"), source.FileVirtual)
	out := BuildDiagnosticsOutput([]Entry{{File: file, Err: unrecognized()}}, JSONOpts{})
	if out.Diagnostics[0].Location != nil || out.Diagnostics[0].Code != "E0000" {
		t.Fatalf("unexpected %+v", out.Diagnostics[0])
	}
}
