package diagfmt

import (
	"encoding/json"
	"io"

	"huffls/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string         `json:"severity"`
	Kind     string         `json:"kind"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	File     string         `json:"file"`
	Location *LocationJSON  `json:"location,omitempty"`
	Related  []LocationJSON `json:"related,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(f *source.File, path string, span source.Span, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      path,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := f.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Count is the number of entries before truncation.
func BuildDiagnosticsOutput(entries []Entry, opts JSONOpts) DiagnosticsOutput {
	shown := limit(entries, opts.Max)
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(shown)),
		Count:       len(entries),
	}
	for _, e := range shown {
		path := formatPath(e.File, opts.PathMode, opts.BaseDir)
		d := DiagnosticJSON{
			Severity: "ERROR",
			Kind:     e.Err.Kind.String(),
			Code:     e.Err.Code.ID(),
			Message:  e.Err.Message,
			File:     path,
		}
		for i, sp := range e.Err.Spans {
			loc := makeLocation(e.File, path, sp, opts.IncludePositions)
			if i == 0 {
				d.Location = &loc
				continue
			}
			d.Related = append(d.Related, loc)
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}
	return out
}

// JSON writes the entries as an indented JSON document.
func JSON(w io.Writer, entries []Entry, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(entries, opts))
}
