package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"huffls/internal/completion"
	"huffls/internal/config"
	"huffls/internal/trace"
	"huffls/internal/workspace"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Config is the initial configuration; nil means config.Default().
	Config *config.Config
	// DiscoverConfig loads huffls.toml above the workspace root on
	// initialize, replacing Config.
	DiscoverConfig bool
	// LogToClient mirrors server log lines as window/logMessage.
	LogToClient bool
	// TraceLSP logs every handled message to stderr.
	TraceLSP bool
	Version  string
}

// Server handles stdio JSON-RPC for the Huff language server.
//
// The read loop applies document store writes in arrival order. Parsing and
// completion run on their own goroutines and only talk to each other through
// the document store and the AST cache.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	mu     sync.Mutex
	// pubMu связывает проверку версии и публикацию результата разбора
	pubMu sync.Mutex
	wg    sync.WaitGroup

	docs workspace.Documents
	asts workspace.ASTCache

	published         map[string]struct{}
	workspaceRoot     string
	initialized       bool
	shutdownRequested bool
	cfg               config.Config
	scope             completion.Scope
	traceLSP          bool
	logToClient       bool
	discoverConfig    bool
	version           string
	baseCtx           context.Context
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	s := &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		published:      make(map[string]struct{}),
		traceLSP:       opts.TraceLSP,
		logToClient:    opts.LogToClient,
		discoverConfig: opts.DiscoverConfig,
		version:        opts.Version,
		baseCtx:        context.Background(),
	}
	s.applyConfig(cfg)
	return s
}

// Run serves LSP requests until the input ends or the client sends "exit".
// Background work is drained before Run returns.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	defer s.wg.Wait()
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

// wait blocks until every dispatched parse and completion has finished.
func (s *Server) wait() { s.wg.Wait() }

func (s *Server) handleMessage(msg *rpcMessage) error {
	trace.Point(s.tracer(), trace.ScopeMessage, msg.Method, string(msg.ID))
	if s.traceLSP {
		s.logf("<- %s id=%s", msg.Method, string(msg.ID))
	}

	s.mu.Lock()
	initialized, shuttingDown := s.initialized, s.shutdownRequested
	s.mu.Unlock()

	isRequest := len(msg.ID) > 0
	switch {
	case msg.Method == "exit":
		if shuttingDown {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case !initialized && msg.Method != "initialize":
		if isRequest {
			return s.sendError(msg.ID, codeServerNotInitialized, "server not initialized")
		}
		return nil
	case shuttingDown:
		if isRequest {
			return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		s.clientLog(messageTypeInfo, "server initialized!")
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	default:
		if isRequest {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return s.sendError(msg.ID, codeInvalidRequest, "server already initialized")
	}
	s.mu.Unlock()

	root := ""
	if params.RootURI != "" {
		root = uriToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	if root != "" && s.discoverConfig {
		cfg, err := config.Discover(root)
		if err != nil {
			s.logf("config: %v", err)
		} else {
			if cfg.Path != "" {
				s.logf("using %s", cfg.Path)
			}
			s.applyConfig(cfg)
		}
	}

	s.mu.Lock()
	s.workspaceRoot = root
	s.initialized = true
	triggers := append([]string(nil), s.cfg.Completion.TriggerCharacters...)
	s.mu.Unlock()

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    1, // full
				Save: saveOptions{
					IncludeText: true,
				},
			},
			CompletionProvider: &completionOptions{
				TriggerCharacters: triggers,
			},
		},
		ServerInfo: &serverInfo{Name: "huffls", Version: s.version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	open := s.docs.URIs()
	trace.Point(s.tracer(), trace.ScopeServer, "shutdown", strings.Join(open, " "))
	s.logf("shutdown requested with %d open document(s)", len(open))
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didOpen: invalid params: %v", err)
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	doc := s.docs.OpenOrReplace(uri, []byte(params.TextDocument.Text), params.TextDocument.Version)
	s.clientLog(messageTypeInfo, "file opened!")
	s.scheduleParse(doc)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didChange: invalid params: %v", err)
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	text, ok := fullText(params.ContentChanges)
	if !ok {
		s.logf("didChange: uri=%s version=%d has no full-text change, ignored", uri, params.TextDocument.Version)
		return nil
	}
	doc := s.docs.OpenOrReplace(uri, []byte(text), params.TextDocument.Version)
	if s.traceLSP {
		s.logf("didChange: uri=%s version=%d bytes=%d", uri, doc.Version, len(text))
	}
	s.scheduleParse(doc)
	return nil
}

// fullText returns the last change without a range. The server announces
// full sync, so every well-behaved change qualifies.
func fullText(changes []textDocumentContentChangeEvent) (string, bool) {
	for i := len(changes) - 1; i >= 0; i-- {
		if changes[i].Range == nil {
			return changes[i].Text, true
		}
	}
	return "", false
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didSave: invalid params: %v", err)
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.clientLog(messageTypeInfo, "file saved!")
	cur, ok := s.docs.Get(uri)
	if !ok || params.Text == nil || *params.Text == string(cur.Text()) {
		return nil
	}
	// клиент прислал текст, которого мы не видели: версия та же, текст новый
	doc := s.docs.OpenOrReplace(uri, []byte(*params.Text), cur.Version)
	s.scheduleParse(doc)
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didClose: invalid params: %v", err)
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.clientLog(messageTypeInfo, "file closed!")

	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.docs.Close(uri)
	s.mu.Lock()
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp: "+format+"\n", args...)
}

// clientLog sends a window/logMessage; it is a no-op unless LogToClient.
func (s *Server) clientLog(typ int, format string, args ...any) {
	if !s.logToClient {
		return
	}
	if err := s.sendNotification("window/logMessage", logMessageParams{
		Type:    typ,
		Message: fmt.Sprintf(format, args...),
	}); err != nil {
		s.logf("logMessage: %v", err)
	}
}

func (s *Server) tracer() trace.Tracer {
	return trace.FromContext(s.baseCtx)
}
