package diag

import (
	"huffls/internal/source"
)

// Translate positions err against file. It returns ok == false when the
// error is nil or when either end of the chosen span does not map.
func Translate(err *StructuredError, file *source.File) (Diagnostic, bool) {
	if err == nil || file == nil {
		return Diagnostic{}, false
	}

	span := source.Span{Start: 0, End: 1}
	message := UnrecognizedMessage
	if err.Positioned() {
		// только первый span; остальные теряются
		span = err.Spans[0]
		message = span.Debug()
	}

	start, end, ok := file.SpanToRange(span)
	if !ok {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Range:    Range{Start: start, End: end},
		Severity: SevError,
		Code:     err.Code,
		Message:  message,
		Cause:    err.Message,
	}, true
}
