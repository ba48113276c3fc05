// Package trace provides the tracing subsystem of huffls.
//
// Tracing records server lifecycle, pipeline passes and per-document
// bookkeeping so slow parses and stuck requests can be diagnosed without a
// debugger attached to the editor.
//
// # Usage
//
//	huffls lsp --trace=/tmp/huffls.ndjson --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer dumped after a failure
//   - both mode: stream and ring at once (see RingOf)
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only, dumped after a failure
//   - LevelPhase: server and pass boundaries (lex, parse, complete)
//   - LevelDetail: per-document events
//   - LevelDebug: every JSON-RPC message
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
