package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have lower values, so
// a level admits every scope up to its limit.
type Scope uint8

const (
	// ScopeServer covers process-level operations: server lifecycle, CLI commands.
	ScopeServer Scope = iota + 1
	// ScopePass covers pipeline passes: lex, parse, complete.
	ScopePass
	// ScopeDocument covers per-document bookkeeping (store and cache updates).
	ScopeDocument
	ScopeMessage // every JSON-RPC message
)

var scopeNames = [...]string{
	ScopeServer:   "server",
	ScopePass:     "pass",
	ScopeDocument: "document",
	ScopeMessage:  "message",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Sinks copy events they keep.
type Event struct {
	Time     time.Time
	Seq      uint64 // назначается приёмником, монотонно
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корневых
	GID      uint64 // goroutine, на которой открыт span
	Name     string // "parse", "textDocument/didChange", ...
	Detail   string
	Extra    map[string]string
}
