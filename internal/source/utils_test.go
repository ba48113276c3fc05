package source

import (
	"strings"
	"testing"
)

// lines starts at {0, 10, 25}
const threeLines = "012345678\n01234567890123\nabc"

func TestOffsetToPositionUsesLineStarts(t *testing.T) {
	file := NewFile("t.huff", []byte(threeLines), FileVirtual)

	tests := []struct {
		off  uint32
		want Position
	}{
		{off: 0, want: Position{Line: 0, Character: 0}},
		{off: 9, want: Position{Line: 0, Character: 9}},
		{off: 10, want: Position{Line: 1, Character: 0}},
		{off: 12, want: Position{Line: 1, Character: 2}},
		{off: 18, want: Position{Line: 1, Character: 8}},
		{off: 25, want: Position{Line: 2, Character: 0}},
		{off: 28, want: Position{Line: 2, Character: 3}},
	}
	for _, tt := range tests {
		got, ok := file.OffsetToPosition(tt.off)
		if !ok {
			t.Fatalf("OffsetToPosition(%d) failed", tt.off)
		}
		if got != tt.want {
			t.Errorf("OffsetToPosition(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestOffsetToPositionOutOfRange(t *testing.T) {
	file := NewFile("t.huff", []byte("abc"), FileVirtual)
	if _, ok := file.OffsetToPosition(4); ok {
		t.Fatal("expected offset past end to fail")
	}
	if _, ok := file.OffsetToPosition(3); !ok {
		t.Fatal("expected end-of-buffer offset to map")
	}

	empty := NewFile("e.huff", nil, FileVirtual)
	if pos, ok := empty.OffsetToPosition(0); !ok || pos != (Position{}) {
		t.Fatalf("expected 0 to map in empty file, got %+v %v", pos, ok)
	}
	if _, ok := empty.OffsetToPosition(1); ok {
		t.Fatal("expected offset 1 to fail in empty file")
	}
}

func TestOffsetToPositionUTF16(t *testing.T) {
	// "é" is 2 bytes / 1 unit, "🙂" is 4 bytes / 2 units
	file := NewFile("u.huff", []byte("é🙂x"), FileVirtual)

	got, ok := file.OffsetToPosition(6)
	if !ok || got != (Position{Line: 0, Character: 3}) {
		t.Fatalf("unexpected position %+v ok=%v", got, ok)
	}
	if _, ok := file.OffsetToPosition(1); ok {
		t.Fatal("expected offset inside a rune to fail")
	}
}

func TestPositionToOffsetRoundTrip(t *testing.T) {
	text := "#define macro MAIN() = {\n    0x01 0x02 add\n}\n"
	file := NewFile("m.huff", []byte(text), FileVirtual)
	for off := 0; off <= len(text); off++ {
		pos, ok := file.OffsetToPosition(uint32(off))
		if !ok {
			t.Fatalf("offset %d did not map", off)
		}
		back, ok := file.PositionToOffset(pos)
		if !ok || back != uint32(off) {
			t.Fatalf("round trip %d -> %+v -> %d (%v)", off, pos, back, ok)
		}
	}
}

func TestPositionToOffsetClampsAndFails(t *testing.T) {
	file := NewFile("m.huff", []byte("ab\ncd"), FileVirtual)
	if off, ok := file.PositionToOffset(Position{Line: 0, Character: 99}); !ok || off != 2 {
		t.Fatalf("expected clamp to line end 2, got %d %v", off, ok)
	}
	if _, ok := file.PositionToOffset(Position{Line: 2}); ok {
		t.Fatal("expected missing line to fail")
	}
}

func TestOffsetToPositionLargeFile(t *testing.T) {
	text := strings.Repeat("add\n", 100000)
	file := NewFile("big.huff", []byte(text), FileVirtual)
	pos, ok := file.OffsetToPosition(uint32(len(text) - 2))
	if !ok || pos != (Position{Line: 99999, Character: 2}) {
		t.Fatalf("unexpected position %+v", pos)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(normalized) != "a\nb\rc" {
		t.Fatalf("unexpected normalization %q changed=%v", normalized, changed)
	}
}
