package workspace

import (
	"sort"
	"sync"

	"huffls/internal/source"
)

// Document is an immutable snapshot of one open file.
type Document struct {
	URI     string
	Version int
	File    *source.File // Content — ровно то, что прислал клиент
}

// Text returns the document text.
func (d *Document) Text() []byte { return d.File.Content }

// Documents is the document store.
type Documents struct {
	m sync.Map // uri -> *Document
}

// OpenOrReplace stores text as the new snapshot for uri. No diffing: the
// previous snapshot is dropped whole.
func (s *Documents) OpenOrReplace(uri string, text []byte, version int) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		File:    source.NewFile(uri, text, source.FileVirtual),
	}
	s.m.Store(uri, doc)
	return doc
}

// Get returns the latest snapshot for uri.
func (s *Documents) Get(uri string) (*Document, bool) {
	v, ok := s.m.Load(uri)
	if !ok {
		return nil, false
	}
	return v.(*Document), true
}

// Close forgets the document. It reports whether it was open.
func (s *Documents) Close(uri string) bool {
	_, ok := s.m.LoadAndDelete(uri)
	return ok
}

// IsCurrent reports whether version is the latest stored version of uri.
func (s *Documents) IsCurrent(uri string, version int) bool {
	doc, ok := s.Get(uri)
	return ok && doc.Version == version
}

// URIs returns the URIs of all open documents, sorted.
func (s *Documents) URIs() []string {
	var out []string
	s.m.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	sort.Strings(out)
	return out
}
