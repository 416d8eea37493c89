// Package refs implements the Reference Collector (spec §4.5): given a
// resolved declaration, find every occurrence of it in an AST — the
// declaration's own name, every identifier that resolved to it (uniquely or
// as a candidate), and every member access that resolved to it.
package refs

import "solidity-lsp/internal/ast"

// Collect walks root and returns one DocumentHighlight per occurrence of
// decl named name: the declaration's own name first, then every other
// occurrence in ast.Walk order. It is a pure function of its
// arguments (spec §4.5), so callers can call it repeatedly against the same
// compiled unit without side effects. name is matched against each
// candidate node's own token text (the terminal segment for an
// IdentifierPath, the member name for a MemberAccess) alongside the
// pointer-identity check against decl, guarding against a binder bug that
// resolved Referenced/Candidates to the wrong declaration.
//
// Kind is assigned Text for the declaration's own name and Read for every
// other occurrence: this reference implementation's parser does not
// preserve assignment-target structure (spec §9's simplification list),
// so it cannot distinguish write occurrences from read occurrences.
func Collect(root *ast.Node, decl *ast.Node, name string) []ast.DocumentHighlight {
	if root == nil || decl == nil {
		return nil
	}

	var out []ast.DocumentHighlight

	if loc, ok := ast.DeclarationPosition(decl); ok {
		out = append(out, ast.DocumentHighlight{Location: loc, Kind: ast.HighlightText})
	}

	ast.Walk(root, func(n *ast.Node) {
		switch n.Kind {
		case ast.KindIdentifier:
			if n.IdentifierName == name && referencesDecl(n, decl) {
				out = append(out, ast.DocumentHighlight{Location: n.Location, Kind: ast.HighlightRead})
			}
		case ast.KindIdentifierPath:
			if terminalSegment(n) == name && referencesDecl(n, decl) {
				out = append(out, ast.DocumentHighlight{Location: n.Location, Kind: ast.HighlightRead})
			}
		case ast.KindMemberAccess:
			if n.MemberName == name && n.Referenced == decl {
				out = append(out, ast.DocumentHighlight{Location: memberNameLocation(n), Kind: ast.HighlightRead})
			}
		}
	})

	return out
}

func terminalSegment(n *ast.Node) string {
	if len(n.PathSegments) == 0 {
		return ""
	}
	return n.PathSegments[len(n.PathSegments)-1]
}

func referencesDecl(n *ast.Node, decl *ast.Node) bool {
	if n.Referenced == decl {
		return true
	}
	for _, c := range n.Candidates {
		if c == decl {
			return true
		}
	}
	return false
}

// memberNameLocation narrows a MemberAccess node's location down to just
// its member-name token when possible, so a highlight on "token.balanceOf"
// underlines "balanceOf" rather than the whole expression. This reference
// parser does not record the member-name token's own span separately, so it
// approximates it as the trailing len(MemberName) bytes of the node's range.
func memberNameLocation(n *ast.Node) ast.SourceLocation {
	loc := n.Location
	if len(n.MemberName) > 0 && loc.End-loc.Start >= len(n.MemberName) {
		loc.Start = loc.End - len(n.MemberName)
	}
	return loc
}
