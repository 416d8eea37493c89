// Package query implements the Query Handlers (spec §4.6): the read-only
// LSP requests (definition, implementation, references, documentHighlight,
// hover) that all share the same shape — resolve textDocument+position to
// an AST node, then walk from there.
//
// Every handler takes its params as a map[string]interface{}, not a typed
// go.lsp.dev/protocol params struct: the exact field types those structs
// use (pointer vs value, bool vs *bool) vary across protocol versions, and
// this server's own request dispatch (internal/server) already decodes
// every request's params generically. This mirrors the teacher's own
// map-based fallback path for untyped payloads (src/server/documents and
// src/utils/lspconv).
package query

import (
	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/errcode"
	"solidity-lsp/internal/locator"
	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/pathutil"
	"solidity-lsp/internal/textutil"
)

type docPosition struct {
	path      string
	line      int
	character int
}

func extractDocPosition(basePath string, params map[string]interface{}) (docPosition, error) {
	docParam, ok := params["textDocument"].(map[string]interface{})
	if !ok {
		return docPosition{}, errcode.NewValidationError("textDocument", "missing or not an object")
	}
	uriValue, ok := docParam["uri"].(string)
	if !ok {
		return docPosition{}, errcode.NewValidationError("textDocument.uri", "missing or not a string")
	}
	path, ok := pathutil.ResolveURI(basePath, uriValue)
	if !ok {
		return docPosition{}, errcode.NewValidationError("textDocument.uri", "not a file:// URI")
	}

	posParam, ok := params["position"].(map[string]interface{})
	if !ok {
		return docPosition{}, errcode.NewValidationError("position", "missing or not an object")
	}
	line, ok := numberField(posParam["line"])
	if !ok {
		return docPosition{}, errcode.NewValidationError("position.line", "missing or not a number")
	}
	character, ok := numberField(posParam["character"])
	if !ok {
		return docPosition{}, errcode.NewValidationError("position.character", "missing or not a number")
	}
	return docPosition{path: path, line: line, character: character}, nil
}

func numberField(v interface{}) (int, bool) {
	n, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(n), true
}

func boolField(container map[string]interface{}, key string, fallback bool) bool {
	if container == nil {
		return fallback
	}
	if v, ok := container[key].(bool); ok {
		return v
	}
	return fallback
}

// locate resolves a request's textDocument+position into the compiled unit
// and the smallest enclosing AST node, per spec §4.4. ok=false in the
// returned node (nil) is not an error: it means "no node at this position",
// which every handler treats as an empty result (spec §4.6's edge case
// list).
func locate(driver *compiler.Driver, basePath string, params map[string]interface{}) (*ast.Unit, *ast.Node, docPosition, error) {
	dp, err := extractDocPosition(basePath, params)
	if err != nil {
		return nil, nil, docPosition{}, err
	}

	unit, ok := driver.AST(dp.path)
	if !ok || unit.Root == nil || unit.Root.Location.Source == nil {
		return nil, nil, dp, nil
	}

	offset, err := textutil.Translate(unit.Root.Location.Source.Text, dp.line, dp.character)
	if err != nil {
		return unit, nil, dp, nil
	}

	return unit, locator.Locate(unit, offset), dp, nil
}

// declarationsOf extracts the declaration(s) a node refers to, for the node
// kinds that carry one (spec §4.6: Identifier, IdentifierPath and
// MemberAccess all annotate a referenced declaration). A declaration node
// stands for itself; any other node has none. An identifier that named an overload set carries no single
// Referenced declaration but a Candidates list instead
// (internal/compiler/refimpl/binder.go), so this walks both via
// ast.AllAnnotatedDeclarations rather than reading Referenced alone.
func declarationsOf(node *ast.Node) []*ast.Node {
	switch node.Kind {
	case ast.KindIdentifier, ast.KindIdentifierPath, ast.KindMemberAccess:
		return ast.AllAnnotatedDeclarations(node)
	default:
		if node.Kind.IsDeclaration() {
			return []*ast.Node{node}
		}
		return nil
	}
}

func rangeOf(loc ast.SourceLocation) lsptype.Range {
	if loc.Source == nil {
		return lsptype.Range{}
	}
	return lsptype.Range{
		Start: textutil.PositionOf(loc.Source.Text, loc.Start),
		End:   textutil.PositionOf(loc.Source.Text, loc.End),
	}
}
