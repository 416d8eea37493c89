package server

import (
	"solidity-lsp/internal/documents"
	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/pathutil"
)

// handleDidOpen implements textDocument/didOpen (spec §4.2): installs the
// document's initial text and immediately compiles and publishes
// diagnostics for it. A path DetectLanguage doesn't recognize as source
// (e.g. a workspace's .json or .md file) is never installed in the store,
// since the compiler frontend has nothing to do with it.
func (s *Server) handleDidOpen(params map[string]interface{}) {
	docParam, ok := params["textDocument"].(map[string]interface{})
	if !ok {
		return
	}
	uriValue, _ := docParam["uri"].(string)
	text, _ := docParam["text"].(string)

	path, ok := s.resolveURI(uriValue)
	if !ok {
		return
	}
	if documents.DetectLanguage(path) == "" {
		return
	}

	s.documents.Open(path, text)
	s.compileAndPublish(path)
}

// handleDidChange implements textDocument/didChange (spec §4.1/§4.2):
// applies every entry of contentChanges in array order, then recompiles.
func (s *Server) handleDidChange(params map[string]interface{}) {
	docParam, ok := params["textDocument"].(map[string]interface{})
	if !ok {
		return
	}
	uriValue, _ := docParam["uri"].(string)
	path, ok := s.resolveURI(uriValue)
	if !ok {
		return
	}

	rawChanges, _ := params["contentChanges"].([]interface{})
	changes := make([]documents.Change, 0, len(rawChanges))
	for _, raw := range rawChanges {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		text, _ := item["text"].(string)
		change := documents.Change{Text: text}
		if rangeMap, ok := item["range"].(map[string]interface{}); ok {
			if rng, ok := parseRange(rangeMap); ok {
				change.Range = &rng
			}
		}
		changes = append(changes, change)
	}

	applied, err := s.documents.ApplyChanges(path, changes)
	if err != nil {
		if s.log != nil {
			s.log.Warn("failed to apply changes to %s: %v", path, err)
		}
		return
	}
	if !applied {
		return
	}
	s.compileAndPublish(path)
}

// handleDidClose implements textDocument/didClose (spec §4.2).
func (s *Server) handleDidClose(params map[string]interface{}) {
	docParam, ok := params["textDocument"].(map[string]interface{})
	if !ok {
		return
	}
	uriValue, _ := docParam["uri"].(string)
	path, ok := s.resolveURI(uriValue)
	if !ok {
		return
	}
	s.documents.Close(path)
}

func (s *Server) resolveURI(uriValue string) (string, bool) {
	s.mu.Lock()
	basePath := s.basePath
	s.mu.Unlock()
	return pathutil.ResolveURI(basePath, uriValue)
}

func parsePosition(v interface{}) (lsptype.Position, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return lsptype.Position{}, false
	}
	line, ok1 := m["line"].(float64)
	character, ok2 := m["character"].(float64)
	if !ok1 || !ok2 {
		return lsptype.Position{}, false
	}
	return lsptype.Position{Line: uint32(line), Character: uint32(character)}, true
}

func parseRange(m map[string]interface{}) (lsptype.Range, bool) {
	start, ok1 := parsePosition(m["start"])
	end, ok2 := parsePosition(m["end"])
	if !ok1 || !ok2 {
		return lsptype.Range{}, false
	}
	return lsptype.Range{Start: start, End: end}, true
}

// compileAndPublish implements spec §4.3's compileSource step as triggered
// from the document-sync path: snapshot every open document, recompile the
// one that changed, and push its diagnostics.
func (s *Server) compileAndPublish(path string) {
	s.mu.Lock()
	basePath := s.basePath
	settings := s.settings
	s.mu.Unlock()

	snapshot := s.documents.Snapshot()
	params := s.driver.CompileSource(path, snapshot, settings, basePath)
	s.publishDiagnostics(params)
}

func (s *Server) publishDiagnostics(params *lsptype.PublishDiagnosticsParams) {
	notification, err := newNotification("textDocument/publishDiagnostics", params)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to encode publishDiagnostics: %v", err)
		}
		return
	}
	if err := s.transport.Send(notification); err != nil && s.log != nil {
		s.log.Error("failed to send publishDiagnostics: %v", err)
	}
}
