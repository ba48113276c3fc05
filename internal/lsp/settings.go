package lsp

import (
	"encoding/json"

	"huffls/internal/completion"
	"huffls/internal/config"
)

func (s *Server) applyConfig(cfg config.Config) {
	scope, err := completion.ParseScope(cfg.Completion.Scope)
	if err != nil {
		s.logf("config: %v", err)
		scope = completion.ScopeStatements
	}
	s.mu.Lock()
	s.cfg = cfg
	s.scope = scope
	s.mu.Unlock()
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

// applySettings takes {"huff": {"completion": {"scope": ...}, "lsp": {"trace": ...}}}.
// Missing keys leave the current values alone.
func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return
	}
	var (
		scope    completion.Scope
		setScope bool
	)
	if v := settings.Huff.Completion.Scope; v != nil {
		parsed, err := completion.ParseScope(*v)
		if err != nil {
			s.clientLog(messageTypeWarning, "huff.completion.scope: %v", err)
		} else {
			scope, setScope = parsed, true
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if setScope {
		s.scope = scope
		s.cfg.Completion.Scope = scope.String()
	}
	if settings.Huff.LSP.Trace != nil {
		s.traceLSP = *settings.Huff.LSP.Trace
	}
}
