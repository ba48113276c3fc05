package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"huffls/internal/completion"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "src", "macros")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDiscoverWithoutFileUsesDefaults(t *testing.T) {
	// сам TempDir может лежать под каталогом с huffls.toml только в экзотических окружениях
	dir := t.TempDir()
	if _, ok, _ := Find(dir); ok {
		t.Skip("huffls.toml found above temp dir")
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" || cfg.CompletionScope() != completion.ScopeStatements || cfg.Diagnostics.Source != "huffls" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[completion]
scope = "body"

[trace]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CompletionScope() != completion.ScopeBody {
		t.Fatalf("scope not applied: %+v", cfg.Completion)
	}
	if cfg.Trace.Level != "debug" || cfg.Trace.Format != "auto" {
		t.Fatalf("unexpected trace config %+v", cfg.Trace)
	}
	if len(cfg.Completion.TriggerCharacters) != 1 || cfg.Completion.TriggerCharacters[0] != "." {
		t.Fatalf("trigger characters must keep default, got %v", cfg.Completion.TriggerCharacters)
	}
	if cfg.Path != path {
		t.Fatalf("path not recorded: %q", cfg.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[completion\n", "failed to parse TOML"},
		{"unknown key", "[completion]\nfoo = 1\n", "unknown keys: completion.foo"},
		{"bad scope", "[completion]\nscope = \"file\"\n", "[completion].scope"},
		{"bad trigger", "[completion]\ntrigger_characters = [\"ab\"]\n", "trigger_characters"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"bad format", "[trace]\nformat = \"xml\"\n", "[trace].format"},
		{"empty source", "[diagnostics]\nsource = \" \"\n", "[diagnostics].source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
