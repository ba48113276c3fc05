// Package config loads huffls.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"huffls/internal/completion"
	"huffls/internal/trace"
)

// FileName is the name of the project configuration file.
const FileName = "huffls.toml"

// Config is the effective configuration. Zero value is not valid; start
// from Default.
type Config struct {
	Path string `toml:"-"` // пусто, если файл не найден

	Completion  CompletionConfig  `toml:"completion"`
	Trace       TraceConfig       `toml:"trace"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type CompletionConfig struct {
	Scope             string   `toml:"scope"`
	TriggerCharacters []string `toml:"trigger_characters"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

type DiagnosticsConfig struct {
	Source string `toml:"source"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Completion: CompletionConfig{
			Scope:             completion.ScopeStatements.String(),
			TriggerCharacters: []string{"."},
		},
		Trace: TraceConfig{
			Level:  "off",
			Format: "auto",
			Output: "stderr",
		},
		Diagnostics: DiagnosticsConfig{
			Source: "huffls",
		},
	}
}

// Find walks up from startDir to locate huffls.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds huffls.toml above startDir and loads it. Without a file the
// defaults are returned.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path on top of the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("diagnostics", "source") && strings.TrimSpace(cfg.Diagnostics.Source) == "" {
		return Config{}, fmt.Errorf("%s: [diagnostics].source must not be empty", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enum-like values.
func (c *Config) Validate() error {
	if _, err := completion.ParseScope(c.Completion.Scope); err != nil {
		return fmt.Errorf("[completion].scope: %w", err)
	}
	for _, s := range c.Completion.TriggerCharacters {
		if len([]rune(s)) != 1 {
			return fmt.Errorf("[completion].trigger_characters: %q is not a single character", s)
		}
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}

// CompletionScope returns the parsed completion scope. Call Validate first.
func (c *Config) CompletionScope() completion.Scope {
	s, _ := completion.ParseScope(c.Completion.Scope)
	return s
}
