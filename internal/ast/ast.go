// Package ast models the compiler frontend's typed syntax tree as a tagged
// variant: one Node struct with a Kind discriminator, switched on with
// explicit match arms instead of a dynamic-cast cascade. Nodes are linked by
// pointers (Children, Expression, Parent, Referenced), not stored in an
// arena addressed by integer indices.
//
// Go's garbage collector gives reference counting for free: a SourceFile is
// simply held alive by every SourceLocation.Source pointer that references
// it, for as long as any of them survive (spec §3 "source_ref is shared...
// lifetime = as long as any holder").
package ast

// Kind tags the variant a Node holds, replacing a dynamic-cast cascade with
// an explicit switch at each call site (spec §9).
type Kind int

const (
	KindUnit Kind = iota
	KindImportDirective
	KindContractDeclaration
	KindFunctionDeclaration
	KindVariableDeclaration
	KindParameterDeclaration
	KindEnumDeclaration
	KindEnumValueDeclaration
	KindIdentifier
	KindIdentifierPath
	KindMemberAccess
	KindBlock
	KindExpressionStatement
)

// SourceFile is the immutable character stream a SourceLocation refers to.
// Many nodes across many compiles may reference the same *SourceFile only
// while the compile that produced them is the server's current compile;
// spec §5 requires callers to never retain the Node past the next Compile().
type SourceFile struct {
	Path string
	Text string
}

// SourceLocation is a (start, end, stream) triple (spec §3).
type SourceLocation struct {
	Start  int
	End    int
	Source *SourceFile
}

// Valid reports whether the location has a source and Start <= End; an
// empty range (Start == End) counts as valid.
func (l SourceLocation) Valid() bool {
	return l.Source != nil && l.Start <= l.End
}

// Declaration-kind marker used by IsDeclaration.
func (k Kind) IsDeclaration() bool {
	switch k {
	case KindContractDeclaration, KindFunctionDeclaration, KindVariableDeclaration,
		KindParameterDeclaration, KindEnumDeclaration, KindEnumValueDeclaration:
		return true
	default:
		return false
	}
}

// Node is one node of the AST. Only the fields relevant to its Kind
// are populated; callers switch on Kind before reading kind-specific fields,
// per spec §9's tagged-variant guidance.
type Node struct {
	Kind     Kind
	Location SourceLocation

	// Declaration-kind fields (KindContractDeclaration .. KindEnumValueDeclaration).
	Name         string
	NameLocation SourceLocation
	Documentation string
	TypeString    string // human-readable type, used by hover (spec §4.6)

	// KindImportDirective.
	ImportPath     string
	ResolvedPath   string // resolved logical path into the document store, empty if unresolved

	// KindIdentifier / KindIdentifierPath.
	IdentifierName string   // KindIdentifier: the token text
	PathSegments   []string // KindIdentifierPath: dotted segments
	Referenced     *Node    // annotated referenced declaration, or nil
	Candidates     []*Node  // annotated candidate declarations (overload set)

	// KindMemberAccess.
	MemberName string
	Expression *Node

	// KindEnumValueDeclaration lookup support: the enum this value belongs to.
	EnumDefinition *Node

	// Children in visitation order (children are visited before their
	// parent when locating the smallest enclosing node, spec §4.4).
	Children []*Node

	// Parent is nil for the unit root.
	Parent *Node
}

// Unit is the AST root for one compiled source file (a "SourceUnit" in
// solc's own terminology).
type Unit struct {
	Path string
	Root *Node
}

// Walk visits every node in root's subtree, including root itself, in
// pre-order (parent before children — callers doing enclosing-node search
// use Locate instead, which needs the opposite order). Expression is
// followed alongside Children: it holds a node's sub-expression (an
// ExpressionStatement's expression, a VariableDeclaration's initializer, a
// MemberAccess's base) rather than a structural child, but its identifiers
// still need visiting.
func Walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	visit(root)
	for _, child := range root.Children {
		Walk(child, visit)
	}
	if root.Expression != nil {
		Walk(root.Expression, visit)
	}
}

// AllAnnotatedDeclarations returns an identifier's referenced declaration
// followed by its candidate declarations, mirroring
// allAnnotatedDeclarations() in the original solc LanguageServer.cpp.
func AllAnnotatedDeclarations(identifier *Node) []*Node {
	var out []*Node
	if identifier.Referenced != nil {
		out = append(out, identifier.Referenced)
	}
	out = append(out, identifier.Candidates...)
	return out
}

// DeclarationPosition returns a declaration's name-location if valid,
// falling back to its full location, or the zero value if neither is valid
// (spec §4.6 "definition" bullet on Identifier).
func DeclarationPosition(decl *Node) (SourceLocation, bool) {
	if decl == nil {
		return SourceLocation{}, false
	}
	if decl.NameLocation.Valid() {
		return decl.NameLocation, true
	}
	if decl.Location.Valid() {
		return decl.Location, true
	}
	return SourceLocation{}, false
}

// HighlightKind classifies a DocumentHighlight occurrence.
type HighlightKind int

const (
	HighlightUnspecified HighlightKind = iota
	HighlightRead
	HighlightWrite
	HighlightText
)

// DocumentHighlight is one reference-collector result entry (spec §3).
type DocumentHighlight struct {
	Location SourceLocation
	Kind     HighlightKind
}
