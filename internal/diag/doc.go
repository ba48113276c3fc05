// Package diag defines the failure and diagnostic model shared by the parse
// pipeline, the language server and the CLI.
//
// # Data model
//
// StructuredError is what a failed parse produces. Its Kind tells consumers
// how to position it:
//
//   - KindLexical and KindParser carry one or more byte-offset spans, in the
//     order the producer reported them.
//   - KindUnrecognized carries no span (recovered panics, unknown failures).
//
// Diagnostic is the positioned form: an editor Range plus message. Translate
// turns the former into the latter through source.File's offset mapping.
//
// # Translation rules
//
//   - Only the first span of a span-bearing error is used. Further spans are
//     kept on the error for the CLI but never reach the editor.
//   - The message is the debug rendering of that span.
//   - Span-less errors are anchored at offsets 0..1 with a generic message.
//   - If either end of the range cannot be mapped the translation is dropped
//     (ok == false). Callers log the drop; it is never fatal.
//
// Package diag performs no IO. Rendering lives in internal/diagfmt.
package diag
