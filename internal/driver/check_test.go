package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"huffls/internal/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.huff", "")
	b := writeFile(t, dir, "nested/b.huff", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, ".git/c.huff", "")

	got, err := ExpandPaths([]string{dir, a})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected paths %v", got)
	}
	if _, err := ExpandPaths([]string{filepath.Join(dir, "missing.huff")}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestCheckFilesWithCache(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.huff", sampleContract)
	bad := writeFile(t, dir, "bad.huff", "#define macro M() = {\n add")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	paths := []string{bad, good, filepath.Join(dir, "missing.huff")}

	_, first, err := CheckFiles(context.Background(), paths, CheckOptions{Jobs: 2, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Err == nil || first[0].Err.Code != diag.SynUnclosedDelimiter {
		t.Fatalf("bad.huff: unexpected result %+v", first[0])
	}
	if first[1].Failed() || len(first[1].Macros) != 2 || first[1].Contract == nil {
		t.Fatalf("good.huff: unexpected result %+v", first[1])
	}
	if first[2].LoadErr == nil {
		t.Fatal("missing file must report a load error")
	}

	_, second, err := CheckFiles(context.Background(), paths, CheckOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached || !second[1].Cached {
		t.Fatal("second run must hit the cache")
	}
	if second[0].Err == nil || second[0].Err.Code != diag.SynUnclosedDelimiter || second[0].Err.Spans[0] != first[0].Err.Spans[0] {
		t.Fatalf("cached error differs: %+v", second[0].Err)
	}
	if len(second[1].Macros) != 2 || second[1].Macros[1] != "MAIN" {
		t.Fatalf("cached macros differ: %v", second[1].Macros)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([32]byte{1})
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Path: "a.huff"}); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); !ok || err != nil || out.Path != "a.huff" {
		t.Fatalf("expected hit, got %v %v %+v", ok, err, out)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("expected miss after DropAll")
	}
}

func TestNilDiskCache(t *testing.T) {
	var c *DiskCache
	if err := c.Put(CacheKey([32]byte{}), &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if ok, err := c.Get(CacheKey([32]byte{}), &DiskPayload{}); ok || err != nil {
		t.Fatal("nil cache must always miss")
	}
}
