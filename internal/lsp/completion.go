package lsp

import (
	"encoding/json"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"huffls/internal/ast"
	"huffls/internal/completion"
	"huffls/internal/source"
)

const (
	completionItemKindFunction = 3
	completionItemKindValue    = 12
)

const (
	insertTextFormatPlainText = 1
	insertTextFormatSnippet   = 2
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	id := msg.ID
	s.clientLog(messageTypeInfo, "Triggering completion")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		items := s.buildCompletion(canonicalURI(params.TextDocument.URI), params.Position)
		if items == nil {
			// нет документа, AST или позиция вне текста
			if err := s.sendResponse(id, nil); err != nil {
				s.logf("completion: %v", err)
			}
			return
		}
		if err := s.sendResponse(id, items); err != nil {
			s.logf("completion: %v", err)
		}
	}()
	return nil
}

// buildCompletion returns nil when there is nothing to complete against and
// an empty, non-nil slice when the cursor is outside every macro.
func (s *Server) buildCompletion(uri string, pos position) []completionItem {
	doc, ok := s.docs.Get(uri)
	if !ok {
		return nil
	}
	contract, ok := s.asts.Get(uri)
	if !ok {
		return nil
	}
	offset, ok := offsetForPosition(doc.File, pos)
	if !ok {
		return nil
	}
	s.mu.Lock()
	scope := s.scope
	s.mu.Unlock()

	found := completion.Complete(contract, offset, completion.Options{Scope: scope})
	items := make([]completionItem, 0, len(found))
	for _, it := range completion.Sorted(found) {
		items = append(items, renderCompletionItem(it))
	}
	return items
}

func offsetForPosition(file *source.File, pos position) (uint32, bool) {
	line, err := safecast.Conv[uint32](pos.Line)
	if err != nil {
		return 0, false
	}
	char, err := safecast.Conv[uint32](pos.Character)
	if err != nil {
		return 0, false
	}
	return file.PositionToOffset(source.Position{Line: line, Character: char})
}

func renderCompletionItem(it completion.Item) completionItem {
	switch it.Kind {
	case completion.KindMacro:
		return completionItem{
			Label:            it.Name,
			Kind:             completionItemKindFunction,
			Detail:           macroDetail(it.Name, it.Parameters),
			InsertText:       macroSnippet(it.Name, it.Parameters),
			InsertTextFormat: insertTextFormatSnippet,
		}
	case completion.KindBuiltin:
		return completionItem{
			Label:            it.Name,
			Kind:             completionItemKindFunction,
			Detail:           "builtin",
			InsertText:       it.Name + "()",
			InsertTextFormat: insertTextFormatSnippet,
		}
	default:
		return completionItem{
			Label:            it.Name,
			Kind:             completionItemKindValue,
			Detail:           it.Opcode.Hex(),
			InsertText:       it.Name,
			InsertTextFormat: insertTextFormatPlainText,
		}
	}
}

// macroSnippet renders NAME(${1:a},${2:b}). Unnamed parameters become argN.
func macroSnippet(name string, params []ast.Argument) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		n := strconv.Itoa(i + 1)
		label := p.Name
		if label == "" {
			label = "arg" + n
		}
		b.WriteString("${" + n + ":" + escapeSnippet(label) + "}")
	}
	b.WriteByte(')')
	return b.String()
}

func macroDetail(name string, params []ast.Argument) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "macro " + name + "(" + strings.Join(names, ", ") + ")"
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

func escapeSnippet(s string) string { return snippetEscaper.Replace(s) }
