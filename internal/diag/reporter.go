package diag

import "huffls/internal/source"

// Reporter — минимальный контракт получения ошибок от лексера.
// Лексер только вызывает его; решение, что делать с ошибкой, за внешним слоем.
type Reporter interface {
	Report(code Code, primary source.Span, msg string)
}

// FirstErrorReporter keeps the first reported error and ignores the rest.
// The parse pipeline aborts on the first malformed token.
type FirstErrorReporter struct {
	Err *StructuredError
}

// Report records the error if none has been recorded yet.
func (r *FirstErrorReporter) Report(code Code, primary source.Span, msg string) {
	if r.Err != nil {
		return
	}
	r.Err = NewLexicalError(code, msg, primary)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, source.Span, string) {}
