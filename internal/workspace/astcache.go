package workspace

import (
	"sync"

	"huffls/internal/ast"
	"huffls/internal/diag"
)

// Entry is the last successfully parsed AST of a document together with the
// document version it was parsed from.
type Entry struct {
	Contract *ast.Contract
	Version  int
}

// ASTCache keeps the last good AST per document. A failed parse never clears
// or replaces an entry, so completion keeps working on the previous AST while
// the text on screen does not parse.
type ASTCache struct {
	m sync.Map // uri -> *Entry
}

// OnParseSuccess unconditionally replaces the entry for uri. The server goes
// through StoreIfNewer instead, since its parses may finish out of order.
func (c *ASTCache) OnParseSuccess(uri string, version int, contract *ast.Contract) {
	c.m.Store(uri, &Entry{Contract: contract, Version: version})
}

// OnParseFailure leaves the entry for uri untouched.
func (c *ASTCache) OnParseFailure(string, *diag.StructuredError) {}

// StoreIfNewer is the version-aware OnParseSuccess used by the server. It
// replaces the entry unless it already holds a newer version and reports
// whether contract was stored. A parse that finishes late never overwrites
// the result of a later edit, but it still lands when nothing newer parsed.
func (c *ASTCache) StoreIfNewer(uri string, version int, contract *ast.Contract) bool {
	next := &Entry{Contract: contract, Version: version}
	for {
		cur, loaded := c.m.LoadOrStore(uri, next)
		if !loaded {
			return true
		}
		if cur.(*Entry).Version > version {
			return false
		}
		if c.m.CompareAndSwap(uri, cur, next) {
			return true
		}
	}
}

// Get returns the cached AST for uri. ok is false only if no parse of uri
// has ever succeeded.
func (c *ASTCache) Get(uri string) (*ast.Contract, bool) {
	e, ok := c.Entry(uri)
	if !ok {
		return nil, false
	}
	return e.Contract, true
}

// Entry returns the cached entry for uri.
func (c *ASTCache) Entry(uri string) (*Entry, bool) {
	v, ok := c.m.Load(uri)
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}
