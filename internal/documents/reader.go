package documents

import (
	"fmt"
	"os"
)

// Reader is the file-reading collaborator the compiler frontend falls back
// to when an import path resolves outside the currently open document set
// (spec §4.2; see compiler/refimpl.Frontend.resolveImports, wired in
// production by internal/cli/serve.go via OSReader). Modeled on the
// teacher's SafeReadFile (src/internal/common/filesystem.go), narrowed to an
// interface so tests can substitute an in-memory reader instead of touching
// disk.
type Reader interface {
	ReadFile(path string) (string, error)
}

// OSReader reads files from the local filesystem.
type OSReader struct{}

func (OSReader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}
