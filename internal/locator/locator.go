// Package locator implements the AST Locator (spec §4.4): finding the
// smallest node in a compiled unit enclosing a given source position.
package locator

import "solidity-lsp/internal/ast"

// Locate returns the smallest node in unit enclosing the byte offset
// nearest (line, column) once translated by the caller, or nil if unit has
// no AST or offset falls outside the root's range. Children (and then
// Expression) are searched before their parent is accepted, so the result
// is the most-specific enclosing node. The search also descends into
// children whose parent's range does not contain the offset, because an
// assignment's value and a call's arguments hang off an identifier whose
// own range covers only its token.
func Locate(unit *ast.Unit, offset int) *ast.Node {
	if unit == nil || unit.Root == nil {
		return nil
	}
	if !contains(unit.Root, offset) {
		return nil
	}
	return locateIn(unit.Root, offset)
}

// locateIn returns the first node in n's subtree, children before parents,
// whose range contains offset, or nil if none does.
func locateIn(n *ast.Node, offset int) *ast.Node {
	for _, child := range n.Children {
		if found := locateIn(child, offset); found != nil {
			return found
		}
	}
	if n.Expression != nil {
		if found := locateIn(n.Expression, offset); found != nil {
			return found
		}
	}
	if contains(n, offset) {
		return n
	}
	return nil
}

// contains reports whether offset falls within n's half-open [Start, End)
// range, or exactly at End when Start == End (a zero-width location, e.g. an
// import directive with a malformed body still occupies its token span).
func contains(n *ast.Node, offset int) bool {
	if !n.Location.Valid() {
		return false
	}
	if n.Location.Start == n.Location.End {
		return offset == n.Location.Start
	}
	return offset >= n.Location.Start && offset < n.Location.End
}
