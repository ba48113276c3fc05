package lsp

import (
	"strconv"

	"huffls/internal/diag"
	"huffls/internal/driver"
	"huffls/internal/trace"
	"huffls/internal/workspace"
)

// scheduleParse parses doc on its own goroutine. Earlier parses of the same
// document are not cancelled. A parse that finishes against a stale version
// publishes nothing, but a successful one still reaches the AST cache unless
// a newer version is already cached there.
func (s *Server) scheduleParse(doc *workspace.Document) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.parseAndPublish(doc)
	}()
}

func (s *Server) parseAndPublish(doc *workspace.Document) {
	span := trace.Begin(s.tracer(), trace.ScopeDocument, "analyze", 0).
		WithExtra("uri", doc.URI).
		WithExtra("version", strconv.Itoa(doc.Version))
	ctx := trace.WithSpanContext(s.baseCtx, trace.SpanContext{SpanID: span.ID()})
	contract, perr := driver.ParseFile(ctx, doc.File)

	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	// устаревший успешный разбор всё равно идёт в кеш: там последний хороший AST
	current := s.docs.IsCurrent(doc.URI, doc.Version)
	version := doc.Version

	if perr == nil {
		stored := s.asts.StoreIfNewer(doc.URI, version, contract)
		if !stored {
			s.logf("discarding AST of %s version %d: cache is newer", doc.URI, version)
		}
		if !current || !stored {
			s.logf("not publishing parse of %s version %d: document moved on", doc.URI, version)
			span.End("stale")
			return
		}
		s.clientLog(messageTypeInfo, "Parsed %s successfully", doc.URI)
		s.publish(doc.URI, version, nil)
		span.End("ok")
		return
	}

	s.asts.OnParseFailure(doc.URI, perr)
	if !current {
		s.logf("not publishing parse of %s version %d: document moved on", doc.URI, version)
		span.End("stale")
		return
	}
	s.clientLog(messageTypeInfo, "%s", perr.Error())
	d, ok := diag.Translate(perr, doc.File)
	if !ok {
		s.clientLog(messageTypeInfo, "Failed to publish diagnostics %s", doc.URI)
		span.End("dropped")
		return
	}
	s.publish(doc.URI, version, []lspDiagnostic{s.toLSPDiagnostic(d)})
	span.End(perr.Kind.String())
}

func (s *Server) toLSPDiagnostic(d diag.Diagnostic) lspDiagnostic {
	s.mu.Lock()
	src := s.cfg.Diagnostics.Source
	s.mu.Unlock()
	return lspDiagnostic{
		Range: lspRange{
			Start: position{Line: int(d.Range.Start.Line), Character: int(d.Range.Start.Character)},
			End:   position{Line: int(d.Range.End.Line), Character: int(d.Range.End.Character)},
		},
		Severity: d.Severity.LSP(),
		Code:     d.Code.ID(),
		Source:   src,
		Message:  d.Message,
	}
}

// publish sends the diagnostics for uri. An empty list clears what the
// editor shows. Callers hold pubMu.
func (s *Server) publish(uri string, version int, list []lspDiagnostic) {
	s.mu.Lock()
	if len(list) > 0 {
		s.published[uri] = struct{}{}
	} else {
		delete(s.published, uri)
	}
	s.mu.Unlock()
	if err := s.sendPublish(uri, &version, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}
