package query

import (
	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/refs"
)

// Highlight implements textDocument/documentHighlight (spec §4.6): resolves
// the node under the cursor to a declaration, then collects every
// occurrence within the same document only (unlike References, which spans
// every open document).
func Highlight(driver *compiler.Driver, basePath string, params map[string]interface{}) ([]lsptype.DocumentHighlight, error) {
	unit, node, _, err := locate(driver, basePath, params)
	if err != nil {
		return nil, err
	}
	if node == nil || unit == nil {
		return []lsptype.DocumentHighlight{}, nil
	}

	decls := declarationsOf(node)
	if len(decls) == 0 {
		return []lsptype.DocumentHighlight{}, nil
	}

	var out []lsptype.DocumentHighlight
	for _, decl := range decls {
		for _, h := range refs.Collect(unit.Root, decl, decl.Name) {
			if h.Location.Source == nil || h.Location.Source.Path != unit.Path {
				continue // a declaration that lives in another document
			}
			out = append(out, lsptype.DocumentHighlight{
				Range: rangeOf(h.Location),
				Kind:  wireHighlightKind(h.Kind),
			})
		}
	}
	if out == nil {
		out = []lsptype.DocumentHighlight{}
	}
	return out, nil
}

func wireHighlightKind(k ast.HighlightKind) lsptype.DocumentHighlightKind {
	switch k {
	case ast.HighlightRead:
		return lsptype.HighlightRead
	case ast.HighlightWrite:
		return lsptype.HighlightWrite
	default:
		return lsptype.HighlightText
	}
}
