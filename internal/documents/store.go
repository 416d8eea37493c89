// Package documents implements the Document Store (spec §4.2): the
// server's in-memory table of open buffers, kept in sync with the client
// through textDocument/didOpen, didChange and didClose.
package documents

import (
	"sync"

	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/textutil"
)

// Change is one entry of a textDocument/didChange contentChanges array. A
// nil Range means a full-document replace; a non-nil Range means an
// incremental range patch (spec §4.1/§4.2).
type Change struct {
	Range *lsptype.Range
	Text  string
}

// Store holds every currently open document, keyed by the relative path the
// caller resolved from the document's URI (spec §3 "DocumentPosition").
// Access is synchronized because didChange notifications and query requests
// can race on the underlying JSON-RPC connection.
type Store struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{files: make(map[string]string)}
}

// Open installs (or replaces) an open document's full text — the effect of
// textDocument/didOpen.
func (s *Store) Open(path, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = text
}

// Close removes a document from the open set — the effect of
// textDocument/didClose. Closing a document that isn't open is a no-op.
func (s *Store) Close(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
}

// Get returns a document's current text, and whether it is open.
func (s *Store) Get(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.files[path]
	return text, ok
}

// Snapshot returns a defensive copy of every open document's text, suitable
// for handing to compiler.Driver.Compile (spec §4.3 step 2 requires the
// frontend to receive its own copy of the current documents).
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.files))
	for k, v := range s.files {
		out[k] = v
	}
	return out
}

// ApplyChanges applies a didChange notification's contentChanges array to
// path in order, as spec §4.2 requires ("apply each entry of
// contentChanges in array order; a full-document entry discards everything
// before it"). It returns false, meaning "no compile needed", if path isn't
// open or the batch is empty — an empty batch mutates nothing, so there is
// nothing to recompile.
func (s *Store) ApplyChanges(path string, changes []Change) (bool, error) {
	if len(changes) == 0 {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.files[path]
	if !ok {
		return false, nil
	}

	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		patched, err := textutil.ApplyRangeReplace(text, *change.Range, change.Text)
		if err != nil {
			return true, err
		}
		text = patched
	}

	s.files[path] = text
	return true, nil
}

// Paths returns every currently open document's path, for diagnostics or
// tests; iteration order is unspecified.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for k := range s.files {
		out = append(out, k)
	}
	return out
}
