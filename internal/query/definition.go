package query

import (
	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/pathutil"
)

// Definition implements textDocument/definition (spec §4.6): resolves the
// node under the cursor to its declaration (or, for an import directive, to
// the imported file itself) and returns its location.
func Definition(driver *compiler.Driver, basePath string, params map[string]interface{}) ([]lsptype.Location, error) {
	_, node, _, err := locate(driver, basePath, params)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []lsptype.Location{}, nil
	}

	if node.Kind == ast.KindImportDirective {
		if node.ResolvedPath == "" {
			return []lsptype.Location{}, nil
		}
		return []lsptype.Location{{
			URI: pathutil.ToURI(pathutil.AbsolutePath(basePath, node.ResolvedPath)),
		}}, nil
	}

	decls := declarationsOf(node)
	locations := []lsptype.Location{}
	for _, decl := range decls {
		loc, ok := ast.DeclarationPosition(decl)
		if !ok || loc.Source == nil {
			continue
		}
		locations = append(locations, lsptype.Location{
			URI:   pathutil.ToURI(pathutil.AbsolutePath(basePath, loc.Source.Path)),
			Range: rangeOf(loc),
		})
	}
	return locations, nil
}

// Implementation implements textDocument/implementation. This reference
// language does not model interfaces, overrides or virtual dispatch, so it
// answers identically to Definition — the same simplification the original
// solc language server makes by routing both requests through one handler.
func Implementation(driver *compiler.Driver, basePath string, params map[string]interface{}) ([]lsptype.Location, error) {
	return Definition(driver, basePath, params)
}
