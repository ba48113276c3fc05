package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.huff", []byte("#define macro A() = {}"), 0)
	id2 := fs.Add("main.huff", []byte("#define macro B() = {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetByPath("main.huff")
	if !ok {
		t.Fatal("expected file to exist after Add")
	}
	if latest.ID != id2 {
		t.Fatalf("expected latest id %d, got %d", id2, latest.ID)
	}
	if string(fs.Get(id1).Content) != "#define macro A() = {}" {
		t.Fatalf("first version was overwritten: %q", fs.Get(id1).Content)
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.huff", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.huff")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Fatalf("unexpected content %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", file.Flags)
	}
}

func TestNewFileKeepsEditorBytes(t *testing.T) {
	file := NewFile("buf.huff", []byte("a\r\nb"), FileVirtual)
	if string(file.Content) != "a\r\nb" {
		t.Fatalf("editor content must not be normalized, got %q", file.Content)
	}
}

func TestResolveUTF8(t *testing.T) {
	file := NewFile("test.huff", []byte("α\n"), FileVirtual)

	start, end := file.Resolve(Span{Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("unexpected start %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("unexpected end %+v", end)
	}
}

func TestGetLine(t *testing.T) {
	file := NewFile("test.huff", []byte("one\ntwo\nthree"), 0)
	cases := map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestFormatPathRelativeOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "main.huff")

	file := NewFile(target, nil, 0)
	got := file.FormatPath("relative", base)
	if got != normalizePath(target) {
		t.Fatalf("expected absolute fallback %q, got %q", normalizePath(target), got)
	}

	inside := NewFile(filepath.Join(base, "src", "main.huff"), nil, 0)
	if got := inside.FormatPath("relative", base); got != "src/main.huff" {
		t.Fatalf("expected relative path, got %q", got)
	}
}
