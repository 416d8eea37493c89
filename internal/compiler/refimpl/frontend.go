package refimpl

import (
	"sort"

	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/documents"
)

// Frontend is a from-scratch reference implementation of compiler.Frontend:
// a lexer, recursive-descent parser and cross-unit binder for a Solidity-like
// language subset. It stands in for the real out-of-scope compiler frontend
// named in spec §1, giving the rest of this repository (locator, reference
// collector, query handlers, server) something real to compile against.
type Frontend struct {
	settings config.Settings
	sources  map[string]string
	units    map[string]*ast.Unit
	files    map[string]*ast.SourceFile
	diags    []compiler.Diagnostic
	reader   documents.Reader
}

// New returns a fresh Frontend with no on-disk import fallback: every import
// must resolve within the set passed to SetSources. It is passed as the
// factory to compiler.NewDriver in tests, where sources are always given
// explicitly.
func New() *Frontend {
	return &Frontend{}
}

// NewWithReader returns a fresh Frontend that falls back to reader for any
// import target that doesn't resolve within the open document set (spec
// §4.2's Reader collaborator). This is what production wiring
// (internal/cli/serve.go) uses, via documents.OSReader.
func NewWithReader(reader documents.Reader) *Frontend {
	return &Frontend{reader: reader}
}

func (f *Frontend) Reset() {
	f.sources = nil
	f.units = nil
	f.files = nil
	f.diags = nil
}

func (f *Frontend) Configure(settings config.Settings) {
	f.settings = settings
}

func (f *Frontend) SetSources(sources map[string]string) {
	f.sources = make(map[string]string, len(sources))
	for path, text := range sources {
		f.sources[path] = text
	}
}

// CompileTo runs the lexer/parser over every source, then resolves
// identifiers and member accesses across the whole set in one binding pass.
// Diagnostics for the sources given to SetSources are appended in path
// order, so tests and $/logTrace output are reproducible; diagnostics for
// files resolveImports reads from disk follow them, in no fixed order.
func (f *Frontend) CompileTo(level compiler.AnalysisLevel) error {
	f.units = make(map[string]*ast.Unit, len(f.sources))
	f.files = make(map[string]*ast.SourceFile, len(f.sources))
	f.diags = nil

	paths := make([]string, 0, len(f.sources))
	for path := range f.sources {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		text := f.sources[path]
		file := &ast.SourceFile{Path: path, Text: text}
		f.files[path] = file

		var fileDiags []compiler.Diagnostic
		root := parseUnit(file, &fileDiags)
		f.units[path] = &ast.Unit{Path: path, Root: root}
		f.diags = append(f.diags, fileDiags...)
	}

	f.resolveImports()

	if level == compiler.LevelAnalyzed {
		// resolveImports may have pulled additional files in off disk, so
		// rebuild the path list from f.units rather than reusing paths.
		allPaths := make([]string, 0, len(f.units))
		for path := range f.units {
			allPaths = append(allPaths, path)
		}
		sort.Strings(allPaths)

		unitList := make([]*ast.Unit, 0, len(allPaths))
		for _, path := range allPaths {
			unitList = append(unitList, f.units[path])
		}
		bindProgram(unitList)
	}

	return nil
}

// resolveImports fills in ResolvedPath for import directives whose target,
// once joined against the importing file's directory, names another open
// document. For anything left unresolved, it falls back to f.reader (spec
// §4.2's Reader collaborator) when one is configured, reading the target off
// disk and parsing it as an additional unit. With no reader configured (as
// in tests that call New() directly), imports only resolve within the
// currently open document set.
//
// This fallback runs a single pass: an import pulled in from disk that
// itself imports something else is not followed transitively. Chasing a
// whole dependency graph off disk is more than a reference frontend needs.
func (f *Frontend) resolveImports() {
	type miss struct {
		child    *ast.Node
		resolved string
	}
	var misses []miss

	for _, unit := range f.units {
		for _, child := range unit.Root.Children {
			if child.Kind != ast.KindImportDirective {
				continue
			}
			resolved := joinImportPath(unit.Path, child.ImportPath)
			if _, ok := f.sources[resolved]; ok {
				child.ResolvedPath = resolved
				continue
			}
			misses = append(misses, miss{child, resolved})
		}
	}

	if f.reader == nil {
		return
	}

	for _, m := range misses {
		if _, ok := f.sources[m.resolved]; ok {
			m.child.ResolvedPath = m.resolved
			continue
		}
		text, err := f.reader.ReadFile(m.resolved)
		if err != nil {
			continue
		}

		f.sources[m.resolved] = text
		file := &ast.SourceFile{Path: m.resolved, Text: text}
		f.files[m.resolved] = file

		var fileDiags []compiler.Diagnostic
		root := parseUnit(file, &fileDiags)
		f.units[m.resolved] = &ast.Unit{Path: m.resolved, Root: root}
		f.diags = append(f.diags, fileDiags...)

		m.child.ResolvedPath = m.resolved
	}
}

func joinImportPath(fromPath, importPath string) string {
	if len(importPath) > 0 && importPath[0] != '.' {
		return importPath
	}
	dir := ""
	for i := len(fromPath) - 1; i >= 0; i-- {
		if fromPath[i] == '/' {
			dir = fromPath[:i+1]
			break
		}
	}
	return cleanPath(dir + importPath)
}

// cleanPath resolves "./" and "../" segments without pulling in path/filepath,
// which would clean backslashes on non-POSIX build targets; import paths in
// source text are always slash-separated.
func cleanPath(p string) string {
	var out []string
	for _, seg := range splitSlash(p) {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	result := ""
	for i, seg := range out {
		if i > 0 {
			result += "/"
		}
		result += seg
	}
	return result
}

func splitSlash(p string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			parts = append(parts, p[start:i])
			start = i + 1
		}
	}
	parts = append(parts, p[start:])
	return parts
}

func (f *Frontend) AST(path string) (*ast.Unit, bool) {
	u, ok := f.units[path]
	return u, ok
}

func (f *Frontend) Diagnostics() []compiler.Diagnostic {
	return f.diags
}
