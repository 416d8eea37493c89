package refimpl

import "solidity-lsp/internal/ast"

// scope is a chained symbol table. Overload sets (multiple declarations
// sharing a name at the same scope level, e.g. overloaded functions) are
// tracked so identifier resolution can populate both Referenced (when the
// name is unambiguous) and Candidates (when it is not) — mirroring
// Identifier.annotation().referencedDeclaration/candidateDeclarations in the
// original solc frontend.
type scope struct {
	parent    *scope
	overloads map[string][]*ast.Node
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, overloads: map[string][]*ast.Node{}}
}

func (s *scope) define(name string, node *ast.Node) {
	if name == "" {
		return
	}
	s.overloads[name] = append(s.overloads[name], node)
}

func (s *scope) lookup(name string) (referenced *ast.Node, candidates []*ast.Node, found bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if group, ok := cur.overloads[name]; ok {
			if len(group) == 1 {
				return group[0], nil, true
			}
			return nil, group, true
		}
	}
	return nil, nil, false
}

// binder resolves KindIdentifier/KindMemberAccess nodes across every unit of
// a compile in one pass, since this reference language does not model
// import visibility rules: any contract declared anywhere in the source set
// is reachable, matching the simplification recorded in DESIGN.md.
type binder struct {
	contracts map[string]*ast.Node
}

func bindProgram(units []*ast.Unit) {
	b := &binder{contracts: map[string]*ast.Node{}}
	for _, u := range units {
		if u.Root == nil {
			continue
		}
		for _, child := range u.Root.Children {
			if child.Kind == ast.KindContractDeclaration {
				b.contracts[child.Name] = child
			}
		}
	}

	global := newScope(nil)
	for name, decl := range b.contracts {
		global.define(name, decl)
	}

	for _, u := range units {
		if u.Root != nil {
			b.bindNode(u.Root, global)
		}
	}
}

func (b *binder) bindNode(n *ast.Node, sc *scope) {
	switch n.Kind {
	case ast.KindUnit:
		for _, c := range n.Children {
			b.bindNode(c, sc)
		}

	case ast.KindContractDeclaration:
		contractScope := newScope(sc)
		for _, m := range n.Children {
			contractScope.define(m.Name, m)
		}
		for _, m := range n.Children {
			b.bindNode(m, contractScope)
		}

	case ast.KindEnumDeclaration:
		// Enum values are looked up via bindMember, not through the ambient
		// scope chain, matching Solidity's own EnumName.Value syntax.

	case ast.KindFunctionDeclaration:
		fnScope := newScope(sc)
		var body *ast.Node
		for _, c := range n.Children {
			switch c.Kind {
			case ast.KindParameterDeclaration:
				fnScope.define(c.Name, c)
			case ast.KindBlock:
				body = c
			}
		}
		if body != nil {
			preRegisterLocals(body, fnScope)
			b.bindNode(body, fnScope)
		}

	case ast.KindBlock:
		for _, c := range n.Children {
			b.bindNode(c, sc)
		}

	case ast.KindVariableDeclaration:
		if n.Expression != nil {
			b.bindNode(n.Expression, sc)
		}

	case ast.KindExpressionStatement:
		if n.Expression != nil {
			b.bindNode(n.Expression, sc)
		}

	case ast.KindIdentifier:
		if n.IdentifierName != "" {
			if ref, cands, ok := sc.lookup(n.IdentifierName); ok {
				n.Referenced = ref
				n.Candidates = cands
			}
		}
		// Children holds an assignment's right-hand side or a call's
		// arguments when this identifier is the assignment target or
		// callee (internal/compiler/refimpl/parser.go parseExpression,
		// parseMemberExpr) — not structural children of a declaration.
		for _, c := range n.Children {
			b.bindNode(c, sc)
		}

	case ast.KindMemberAccess:
		if n.Expression != nil {
			b.bindNode(n.Expression, sc)
		}
		b.bindMember(n)
		for _, c := range n.Children {
			b.bindNode(c, sc)
		}
	}
}

// preRegisterLocals hoists every local variable declaration within a
// function body into fnScope before binding runs, so identifiers can refer
// to locals declared later in the same function — a simplification of
// Solidity's actual point-of-declaration scoping rules.
func preRegisterLocals(body *ast.Node, sc *scope) {
	ast.Walk(body, func(n *ast.Node) {
		if n.Kind == ast.KindVariableDeclaration {
			sc.define(n.Name, n)
		}
	})
}

// bindMember resolves "expr.member" for the two shapes this reference
// implementation understands: EnumType.Value, and instance.member where
// instance's declared type names another contract in the same compile.
// Anything else (struct fields, built-ins like msg.sender) is left
// unresolved, matching spec §4.6's note that struct-typed member access is
// "recognized but returns empty" when the frontend cannot resolve it.
func (b *binder) bindMember(n *ast.Node) {
	base := n.Expression
	if base == nil || n.MemberName == "" {
		return
	}

	var baseDecl *ast.Node
	switch base.Kind {
	case ast.KindIdentifier:
		baseDecl = base.Referenced
	case ast.KindMemberAccess:
		baseDecl = base.Referenced
	}
	if baseDecl == nil {
		return
	}

	switch baseDecl.Kind {
	case ast.KindEnumDeclaration:
		for _, v := range baseDecl.Children {
			if v.Name == n.MemberName {
				n.Referenced = v
				return
			}
		}
	case ast.KindVariableDeclaration, ast.KindParameterDeclaration:
		contract, ok := b.contracts[baseDecl.TypeString]
		if !ok {
			return
		}
		for _, m := range contract.Children {
			if m.Name == n.MemberName {
				n.Referenced = m
				return
			}
		}
	}
}
