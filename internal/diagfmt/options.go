package diagfmt

import (
	"huffls/internal/diag"
	"huffls/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  uint8 // строк контекста до строки с ошибкой
	PathMode PathMode
	BaseDir  string
	Max      int // 0 - без ограничения
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int
}

// Entry is the failure of one file.
type Entry struct {
	File *source.File
	Err  *diag.StructuredError
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", baseDir)
	}
}

func limit(entries []Entry, maxItems int) []Entry {
	if maxItems > 0 && maxItems < len(entries) {
		return entries[:maxItems]
	}
	return entries
}
