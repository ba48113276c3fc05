package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"huffls/internal/diag"
	"huffls/internal/source"
)

const tabWidth = 4

type palette struct {
	err, loc, code, caret, note, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		loc:    color.New(color.Bold),
		code:   color.New(color.FgYellow),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.loc, p.code, p.caret, p.note, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty печатает ошибки в виде
//
//	path:line:col: error[SYN2002]: unclosed '{'
//	  3 | #define macro M() = {
//	    |                     ^
//	note: path:5:1: also here
//
// Колонки 1-based и считаются в байтах; подчёркивание выравнивается по
// ширине символов на экране.
func Pretty(w io.Writer, entries []Entry, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, e := range limit(entries, opts.Max) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, e, opts, pal)
	}
}

func prettyOne(w io.Writer, e Entry, opts PrettyOpts, pal palette) {
	path := formatPath(e.File, opts.PathMode, opts.BaseDir)
	primary, ok := e.Err.PrimarySpan()
	if !ok {
		fmt.Fprintf(w, "%s: %s: %s\n",
			pal.loc.Sprint(path),
			pal.err.Sprint("error")+pal.code.Sprintf("[%s]", e.Err.Code.ID()),
			e.Err.Message)
		return
	}
	start, _ := e.File.Resolve(primary)
	fmt.Fprintf(w, "%s: %s: %s\n",
		pal.loc.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		pal.err.Sprint("error")+pal.code.Sprintf("[%s]", e.Err.Code.ID()),
		e.Err.Message)
	writeSnippet(w, e.File, primary, opts.Context, pal)

	for _, sp := range e.Err.Spans[1:] {
		at, _ := e.File.Resolve(sp)
		fmt.Fprintf(w, "%s %s\n", pal.note.Sprint("note:"), pal.loc.Sprintf("%s:%d:%d", path, at.Line, at.Col))
		writeSnippet(w, e.File, sp, 0, pal)
	}
}

func writeSnippet(w io.Writer, f *source.File, sp source.Span, context uint8, pal palette) {
	start, end := f.Resolve(sp)
	first := uint32(1)
	if start.Line > uint32(context) {
		first = start.Line - uint32(context)
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	from := clampCol(start.Col, line)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(end.Col, line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:from]))
	width := runewidth.StringWidth(expandTabs(line[from:to]))
	if width < 1 {
		width = 1 // пустой span (EOF) всё равно получает одну каретку
	}
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
}

// clampCol turns a 1-based byte column into an index into line.
func clampCol(col uint32, line string) int {
	if col == 0 {
		return 0
	}
	idx := int(col - 1)
	if idx > len(line) {
		return len(line)
	}
	return idx
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Short prints one line per error: path:line:col: CODE message.
func Short(w io.Writer, entries []Entry, opts PrettyOpts) {
	for _, e := range limit(entries, opts.Max) {
		path := formatPath(e.File, opts.PathMode, opts.BaseDir)
		if sp, ok := e.Err.PrimarySpan(); ok {
			start, _ := e.File.Resolve(sp)
			path = fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
		}
		fmt.Fprintf(w, "%s: %s %s\n", path, e.Err.Code.ID(), e.Err.Message)
	}
}

// Summary is the trailing line of the check command.
func Summary(w io.Writer, checked, failed int, useColor bool) {
	pal := newPalette(useColor)
	if failed == 0 {
		fmt.Fprintf(w, "checked %d file(s), no errors\n", checked)
		return
	}
	fmt.Fprintf(w, "checked %d file(s), %s\n", checked, pal.err.Sprintf("%d with errors", failed))
}

// EntryFor returns the entry for a failed parse; ok is false for nil errors.
func EntryFor(f *source.File, err *diag.StructuredError) (Entry, bool) {
	if f == nil || err == nil {
		return Entry{}, false
	}
	return Entry{File: f, Err: err}, true
}
