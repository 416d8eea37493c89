package query

import (
	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/pathutil"
	"solidity-lsp/internal/refs"
)

// References implements textDocument/references (spec §4.6): resolves the
// node under the cursor to a declaration, then collects every occurrence of
// that declaration across every compiled document, honoring
// context.includeDeclaration (default true).
//
// spec §4.6 describes running the collector over "the current source unit";
// this expands that to every currently open document, consistent with this
// reference frontend's binder treating all open documents as one global
// scope (internal/compiler/refimpl/binder.go) — a declaration can be
// referenced from any of them, not just the one the request's position is
// in.
func References(driver *compiler.Driver, basePath string, params map[string]interface{}, allPaths []string) ([]lsptype.Location, error) {
	_, node, _, err := locate(driver, basePath, params)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []lsptype.Location{}, nil
	}

	decls := declarationsOf(node)
	if len(decls) == 0 {
		return []lsptype.Location{}, nil
	}

	includeDeclaration := true
	if ctx, ok := params["context"].(map[string]interface{}); ok {
		includeDeclaration = boolField(ctx, "includeDeclaration", true)
	}

	locations := []lsptype.Location{}
	for _, decl := range decls {
		if includeDeclaration {
			if loc, ok := ast.DeclarationPosition(decl); ok && loc.Source != nil {
				locations = append(locations, lsptype.Location{
					URI:   pathutil.ToURI(pathutil.AbsolutePath(basePath, loc.Source.Path)),
					Range: rangeOf(loc),
				})
			}
		}
		for _, path := range allPaths {
			unit, ok := driver.AST(path)
			if !ok || unit.Root == nil {
				continue
			}
			for _, h := range refs.Collect(unit.Root, decl, decl.Name) {
				if h.Kind == ast.HighlightText {
					continue // the declaration itself, added once above
				}
				locations = append(locations, lsptype.Location{
					URI:   pathutil.ToURI(pathutil.AbsolutePath(basePath, path)),
					Range: rangeOf(h.Location),
				})
			}
		}
	}
	return locations, nil
}
