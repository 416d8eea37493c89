// Package pathutil converts between file:// URIs and the relative path keys
// the document store and compile driver use internally (spec §3, §6).
package pathutil

import (
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"

	"solidity-lsp/internal/lsptype"
)

const fileScheme = "file://"

// FromURI extracts the absolute filesystem path from a file:// URI. It
// returns ok=false for any other scheme (spec §6: "Only file:// URIs are
// accepted; anything else causes the path to be treated as missing").
func FromURI(raw string) (path string, ok bool) {
	if !strings.HasPrefix(raw, fileScheme) {
		return "", false
	}
	return strings.TrimPrefix(raw, fileScheme), true
}

// ToURI builds a file:// URI for an absolute path.
func ToURI(path string) lsptype.DocumentURI {
	return lsptype.DocumentURI(uri.File(path))
}

// Canonicalize strips basePath from an absolute path when present, yielding
// the relative key used as the document store's map key (spec §3
// "DocumentPosition"); otherwise it returns the absolute path unchanged
// (spec §6 "Path normalization").
func Canonicalize(basePath, absPath string) string {
	if basePath == "" {
		return absPath
	}
	cleanBase := filepath.Clean(basePath)
	cleanAbs := filepath.Clean(absPath)
	if cleanAbs == cleanBase {
		return ""
	}
	prefix := cleanBase + string(filepath.Separator)
	if strings.HasPrefix(cleanAbs, prefix) {
		return strings.TrimPrefix(cleanAbs, prefix)
	}
	// Also accept the case where paths use forward slashes regardless of OS
	// (URIs are always slash-separated before FromURI is applied to them).
	slashBase := filepath.ToSlash(cleanBase) + "/"
	slashAbs := filepath.ToSlash(cleanAbs)
	if strings.HasPrefix(slashAbs, slashBase) {
		return strings.TrimPrefix(slashAbs, slashBase)
	}
	return absPath
}

// ResolveURI is the composition of FromURI + Canonicalize used by every
// query handler and the document store to turn a request's textDocument.uri
// into the map key documents are stored under.
func ResolveURI(basePath, rawURI string) (relPath string, ok bool) {
	abs, ok := FromURI(rawURI)
	if !ok {
		return "", false
	}
	return Canonicalize(basePath, abs), true
}

// AbsolutePath rejoins a relative document-store key with basePath so it can
// be turned back into a URI for a response.
func AbsolutePath(basePath, relPath string) string {
	if relPath == "" {
		return basePath
	}
	if filepath.IsAbs(relPath) {
		return relPath
	}
	return filepath.Join(basePath, relPath)
}
