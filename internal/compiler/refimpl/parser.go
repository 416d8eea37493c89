package refimpl

import (
	"fmt"

	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
)

type parser struct {
	toks []token
	pos  int
	file *ast.SourceFile
	diag *[]compiler.Diagnostic
}

func parseUnit(file *ast.SourceFile, diag *[]compiler.Diagnostic) *ast.Node {
	p := &parser{toks: lex(file.Text), file: file, diag: diag}

	root := &ast.Node{
		Kind:     ast.KindUnit,
		Location: ast.SourceLocation{Start: 0, End: len(file.Text), Source: file},
	}

	for p.cur().kind != tokEOF {
		switch {
		case p.isKeyword("import"):
			root.Children = append(root.Children, p.parseImport(root))
		case p.isKeyword("contract"), p.isKeyword("library"), p.isKeyword("interface"):
			root.Children = append(root.Children, p.parseContract(root))
		default:
			p.errorf(p.cur().start, p.cur().end, "expected 'import', 'contract', 'library' or 'interface'")
			p.advance()
		}
	}
	return root
}

// --- token stream helpers ---

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) isKeyword(word string) bool {
	t := p.cur()
	return t.kind == tokIdent && t.text == word
}

func (p *parser) isPunct(text string) bool {
	t := p.cur()
	return t.kind == tokPunct && t.text == text
}

func (p *parser) expectPunct(text string) (token, bool) {
	if p.isPunct(text) {
		return p.advance(), true
	}
	p.errorf(p.cur().start, p.cur().end, "expected %q, found %q", text, p.cur().text)
	return p.cur(), false
}

func (p *parser) errorf(start, end int, format string, args ...interface{}) {
	if p.diag == nil {
		return
	}
	*p.diag = append(*p.diag, compiler.Diagnostic{
		Severity: compiler.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: ast.SourceLocation{Start: start, End: end, Source: p.file},
	})
}

// skipTo advances until it consumes a punct token matching one of stop, or
// hits EOF, used to resynchronize after a parse error.
func (p *parser) skipTo(stop ...string) {
	for p.cur().kind != tokEOF {
		t := p.advance()
		if t.kind == tokPunct {
			for _, s := range stop {
				if t.text == s {
					return
				}
			}
		}
	}
}

// --- grammar ---

func (p *parser) parseImport(parent *ast.Node) *ast.Node {
	start := p.cur().start
	p.advance() // 'import'

	var path string
	if p.cur().kind == tokString {
		path = p.cur().text
		p.advance()
	} else {
		p.errorf(p.cur().start, p.cur().end, "expected string literal after 'import'")
	}

	if p.isKeyword("as") {
		p.advance()
		if p.cur().kind == tokIdent {
			p.advance()
		}
	}

	end := p.cur().end
	if _, ok := p.expectPunct(";"); !ok {
		p.skipTo(";")
	}

	node := &ast.Node{
		Kind:       ast.KindImportDirective,
		ImportPath: path,
		Location:   ast.SourceLocation{Start: start, End: end, Source: p.file},
		Parent:     parent,
	}
	return node
}

func (p *parser) parseContract(parent *ast.Node) *ast.Node {
	doc := p.cur().doc
	start := p.cur().start
	p.advance() // contract/library/interface

	nameTok := p.cur()
	name := nameTok.text
	nameLoc := ast.SourceLocation{Start: nameTok.start, End: nameTok.end, Source: p.file}
	if nameTok.kind == tokIdent {
		p.advance()
	} else {
		p.errorf(nameTok.start, nameTok.end, "expected contract name")
	}

	node := &ast.Node{
		Kind:          ast.KindContractDeclaration,
		Name:          name,
		NameLocation:  nameLoc,
		Documentation: doc,
		Parent:        parent,
	}

	// Optional inheritance list: "is Base, Base2" — accepted but not modeled.
	if p.isKeyword("is") {
		p.advance()
		for !p.isPunct("{") && p.cur().kind != tokEOF {
			p.advance()
		}
	}

	if _, ok := p.expectPunct("{"); !ok {
		p.skipTo("{")
	}

	for !p.isPunct("}") && p.cur().kind != tokEOF {
		member := p.parseContractMember(node)
		if member != nil {
			member.Parent = node
			node.Children = append(node.Children, member)
		}
	}

	end := p.cur().end
	if _, ok := p.expectPunct("}"); !ok {
		p.skipTo("}")
	}
	node.Location = ast.SourceLocation{Start: start, End: end, Source: p.file}
	return node
}

func (p *parser) parseContractMember(parent *ast.Node) *ast.Node {
	switch {
	case p.isKeyword("enum"):
		return p.parseEnum(parent)
	case p.isKeyword("function"):
		return p.parseFunction(parent)
	case p.cur().kind == tokIdent:
		return p.parseStateVariable(parent)
	default:
		p.errorf(p.cur().start, p.cur().end, "unexpected token %q in contract body", p.cur().text)
		p.advance()
		return nil
	}
}

func (p *parser) parseEnum(parent *ast.Node) *ast.Node {
	doc := p.cur().doc
	start := p.cur().start
	p.advance() // 'enum'

	nameTok := p.cur()
	nameLoc := ast.SourceLocation{Start: nameTok.start, End: nameTok.end, Source: p.file}
	name := nameTok.text
	if nameTok.kind == tokIdent {
		p.advance()
	} else {
		p.errorf(nameTok.start, nameTok.end, "expected enum name")
	}

	node := &ast.Node{
		Kind:          ast.KindEnumDeclaration,
		Name:          name,
		NameLocation:  nameLoc,
		Documentation: doc,
		Parent:        parent,
	}

	if _, ok := p.expectPunct("{"); !ok {
		p.skipTo("}")
		node.Location = ast.SourceLocation{Start: start, End: p.cur().end, Source: p.file}
		return node
	}

	for !p.isPunct("}") && p.cur().kind != tokEOF {
		vTok := p.cur()
		if vTok.kind == tokIdent {
			p.advance()
			value := &ast.Node{
				Kind:           ast.KindEnumValueDeclaration,
				Name:           vTok.text,
				NameLocation:   ast.SourceLocation{Start: vTok.start, End: vTok.end, Source: p.file},
				Location:       ast.SourceLocation{Start: vTok.start, End: vTok.end, Source: p.file},
				EnumDefinition: node,
				Parent:         node,
			}
			node.Children = append(node.Children, value)
		} else {
			p.errorf(vTok.start, vTok.end, "expected enum member name")
			p.advance()
		}
		if p.isPunct(",") {
			p.advance()
		}
	}

	end := p.cur().end
	if _, ok := p.expectPunct("}"); !ok {
		p.skipTo("}")
	}
	node.Location = ast.SourceLocation{Start: start, End: end, Source: p.file}
	return node
}

// parseTypeName accepts an identifier optionally followed by "[]" array
// suffixes and returns its rendered text; this reference implementation does
// not otherwise model array/mapping/struct types.
func (p *parser) parseTypeName() (string, ast.SourceLocation, bool) {
	t := p.cur()
	if t.kind != tokIdent {
		return "", ast.SourceLocation{}, false
	}
	p.advance()
	text := t.text
	loc := ast.SourceLocation{Start: t.start, End: t.end, Source: p.file}
	for p.isPunct("[") {
		p.advance()
		if p.isPunct("]") {
			p.advance()
		}
		text += "[]"
		loc.End = p.toks[p.pos-1].end
	}
	return text, loc, true
}

func (p *parser) parseStateVariable(parent *ast.Node) *ast.Node {
	doc := p.cur().doc
	start := p.cur().start
	typeString, _, ok := p.parseTypeName()
	if !ok {
		p.errorf(p.cur().start, p.cur().end, "expected type name")
		p.advance()
		return nil
	}

	// Skip visibility/mutability modifiers (public, constant, immutable, ...).
	for p.cur().kind == tokIdent && isModifierKeyword(p.cur().text) {
		p.advance()
	}

	nameTok := p.cur()
	name := nameTok.text
	nameLoc := ast.SourceLocation{Start: nameTok.start, End: nameTok.end, Source: p.file}
	if nameTok.kind == tokIdent {
		p.advance()
	} else {
		p.errorf(nameTok.start, nameTok.end, "expected variable name")
	}

	node := &ast.Node{
		Kind:          ast.KindVariableDeclaration,
		Name:          name,
		NameLocation:  nameLoc,
		Documentation: doc,
		TypeString:    typeString,
		Parent:        parent,
	}

	if p.isPunct("=") {
		p.advance()
		node.Expression = p.parseExpression(node)
	}

	end := p.cur().end
	if _, ok := p.expectPunct(";"); !ok {
		p.skipTo(";")
	}
	node.Location = ast.SourceLocation{Start: start, End: end, Source: p.file}
	return node
}

func (p *parser) parseParameterList(parent *ast.Node) []*ast.Node {
	var params []*ast.Node
	if _, ok := p.expectPunct("("); !ok {
		return params
	}
	for !p.isPunct(")") && p.cur().kind != tokEOF {
		typeString, typeLoc, ok := p.parseTypeName()
		if !ok {
			p.errorf(p.cur().start, p.cur().end, "expected parameter type")
			p.advance()
			continue
		}
		for p.cur().kind == tokIdent && (p.cur().text == "memory" || p.cur().text == "storage" || p.cur().text == "calldata") {
			p.advance()
		}
		name := ""
		nameLoc := typeLoc
		if p.cur().kind == tokIdent {
			nameLoc = ast.SourceLocation{Start: p.cur().start, End: p.cur().end, Source: p.file}
			name = p.cur().text
			p.advance()
		}
		params = append(params, &ast.Node{
			Kind:         ast.KindParameterDeclaration,
			Name:         name,
			NameLocation: nameLoc,
			TypeString:   typeString,
			Location:     ast.SourceLocation{Start: typeLoc.Start, End: nameLoc.End, Source: p.file},
			Parent:       parent,
		})
		if p.isPunct(",") {
			p.advance()
		}
	}
	p.expectPunct(")")
	return params
}

func (p *parser) parseFunction(parent *ast.Node) *ast.Node {
	doc := p.cur().doc
	start := p.cur().start
	p.advance() // 'function'

	nameTok := p.cur()
	name := nameTok.text
	nameLoc := ast.SourceLocation{Start: nameTok.start, End: nameTok.end, Source: p.file}
	if nameTok.kind == tokIdent {
		p.advance()
	} else {
		p.errorf(nameTok.start, nameTok.end, "expected function name")
	}

	node := &ast.Node{
		Kind:          ast.KindFunctionDeclaration,
		Name:          name,
		NameLocation:  nameLoc,
		Documentation: doc,
		Parent:        parent,
	}

	for _, param := range p.parseParameterList(node) {
		node.Children = append(node.Children, param)
	}

	for p.cur().kind == tokIdent && (isModifierKeyword(p.cur().text) || p.cur().text == "override") {
		p.advance()
		if p.isPunct("(") { // keyword with arguments, e.g. override(A, B)
			depth := 0
			for {
				t := p.advance()
				if t.kind == tokPunct && t.text == "(" {
					depth++
				}
				if t.kind == tokPunct && t.text == ")" {
					depth--
					if depth == 0 {
						break
					}
				}
				if t.kind == tokEOF {
					break
				}
			}
		}
	}

	if p.isKeyword("returns") {
		p.advance()
		for _, ret := range p.parseParameterList(node) {
			node.Children = append(node.Children, ret)
		}
	}

	if p.isPunct("{") {
		body := p.parseBlock(node)
		node.Children = append(node.Children, body)
	} else {
		// Abstract/interface declaration: no body.
		if _, ok := p.expectPunct(";"); !ok {
			p.skipTo(";")
		}
	}

	end := p.toks[max(p.pos-1, 0)].end
	node.Location = ast.SourceLocation{Start: start, End: end, Source: p.file}
	return node
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *parser) parseBlock(parent *ast.Node) *ast.Node {
	start := p.cur().start
	p.expectPunct("{")

	block := &ast.Node{Kind: ast.KindBlock, Parent: parent}
	for !p.isPunct("}") && p.cur().kind != tokEOF {
		stmt := p.parseStatement(block)
		if stmt != nil {
			block.Children = append(block.Children, stmt)
		}
	}

	end := p.cur().end
	if _, ok := p.expectPunct("}"); !ok {
		p.skipTo("}")
	}
	block.Location = ast.SourceLocation{Start: start, End: end, Source: p.file}
	return block
}

func (p *parser) parseStatement(parent *ast.Node) *ast.Node {
	if p.isPunct("{") {
		return p.parseBlock(parent)
	}
	if p.isKeyword("return") {
		start := p.cur().start
		p.advance()
		var expr *ast.Node
		if !p.isPunct(";") {
			expr = p.parseExpression(parent)
		}
		end := p.cur().end
		if _, ok := p.expectPunct(";"); !ok {
			p.skipTo(";")
		}
		return &ast.Node{Kind: ast.KindExpressionStatement, Expression: expr, Location: ast.SourceLocation{Start: start, End: end, Source: p.file}, Parent: parent}
	}
	if p.looksLikeVariableDeclaration() {
		return p.parseLocalVariable(parent)
	}
	start := p.cur().start
	expr := p.parseExpression(parent)
	end := p.cur().end
	if _, ok := p.expectPunct(";"); !ok {
		p.skipTo(";")
	}
	return &ast.Node{Kind: ast.KindExpressionStatement, Expression: expr, Location: ast.SourceLocation{Start: start, End: end, Source: p.file}, Parent: parent}
}

// looksLikeVariableDeclaration performs a two-token lookahead: identifier
// followed by another identifier (optionally through "[]") means a type
// name followed by a variable name, e.g. "uint256 x" or "uint256[] xs".
func (p *parser) looksLikeVariableDeclaration() bool {
	if p.cur().kind != tokIdent || keywords[p.cur().text] {
		return false
	}
	i := p.pos + 1
	for i < len(p.toks) && p.toks[i].kind == tokPunct && p.toks[i].text == "[" {
		i++
		if i < len(p.toks) && p.toks[i].kind == tokPunct && p.toks[i].text == "]" {
			i++
		}
	}
	return i < len(p.toks) && p.toks[i].kind == tokIdent && !keywords[p.toks[i].text]
}

func (p *parser) parseLocalVariable(parent *ast.Node) *ast.Node {
	start := p.cur().start
	typeString, _, _ := p.parseTypeName()
	for p.cur().kind == tokIdent && (p.cur().text == "memory" || p.cur().text == "storage" || p.cur().text == "calldata") {
		p.advance()
	}

	nameTok := p.cur()
	name := nameTok.text
	nameLoc := ast.SourceLocation{Start: nameTok.start, End: nameTok.end, Source: p.file}
	if nameTok.kind == tokIdent {
		p.advance()
	}

	node := &ast.Node{
		Kind:         ast.KindVariableDeclaration,
		Name:         name,
		NameLocation: nameLoc,
		TypeString:   typeString,
		Parent:       parent,
	}
	if p.isPunct("=") {
		p.advance()
		node.Expression = p.parseExpression(node)
	}
	end := p.cur().end
	if _, ok := p.expectPunct(";"); !ok {
		p.skipTo(";")
	}
	node.Location = ast.SourceLocation{Start: start, End: end, Source: p.file}
	return node
}

// parseExpression handles assignment, member access, calls and identifiers —
// enough to exercise definition/references/highlight/hover over identifier
// and member-access expressions (spec §4.6), without modeling full Solidity
// expression grammar (operators, literals beyond identifiers, ternaries).
func (p *parser) parseExpression(parent *ast.Node) *ast.Node {
	left := p.parseMemberExpr(parent)
	if p.isPunct("=") {
		p.advance()
		right := p.parseExpression(parent)
		// The assignment target (left) is what the enclosing statement
		// links in as its own Expression, so the value (right) rides
		// along as one of the target's Children to stay reachable by
		// ast.Walk/locator.Locate and bound by binder.bindNode.
		if left != nil && right != nil {
			right.Parent = left
			left.Children = append(left.Children, right)
		}
		return left
	}
	return left
}

func (p *parser) parseMemberExpr(parent *ast.Node) *ast.Node {
	expr := p.parsePrimary(parent)
	for {
		if p.isPunct(".") {
			dot := p.advance()
			memberTok := p.cur()
			member := ""
			if memberTok.kind == tokIdent {
				member = memberTok.text
				p.advance()
			}
			node := &ast.Node{
				Kind:       ast.KindMemberAccess,
				Expression: expr,
				MemberName: member,
				Location:   ast.SourceLocation{Start: expr.Location.Start, End: memberTok.end, Source: p.file},
				Parent:     parent,
			}
			_ = dot
			if expr != nil {
				expr.Parent = node
			}
			expr = node
			continue
		}
		if p.isPunct("(") {
			p.advance()
			for !p.isPunct(")") && p.cur().kind != tokEOF {
				arg := p.parseExpression(parent)
				if arg != nil && expr != nil {
					arg.Parent = expr
					expr.Children = append(expr.Children, arg)
				}
				if p.isPunct(",") {
					p.advance()
				}
			}
			p.expectPunct(")")
			continue
		}
		break
	}
	return expr
}

func (p *parser) parsePrimary(parent *ast.Node) *ast.Node {
	t := p.cur()
	switch {
	case t.kind == tokIdent:
		p.advance()
		return &ast.Node{
			Kind:           ast.KindIdentifier,
			IdentifierName: t.text,
			Location:       ast.SourceLocation{Start: t.start, End: t.end, Source: p.file},
			Parent:         parent,
		}
	case t.kind == tokNumber || t.kind == tokString:
		p.advance()
		return &ast.Node{Kind: ast.KindIdentifier, Location: ast.SourceLocation{Start: t.start, End: t.end, Source: p.file}, Parent: parent}
	case p.isPunct("("):
		p.advance()
		inner := p.parseExpression(parent)
		p.expectPunct(")")
		return inner
	default:
		p.errorf(t.start, t.end, "unexpected token %q in expression", t.text)
		p.advance()
		return &ast.Node{Kind: ast.KindIdentifier, Location: ast.SourceLocation{Start: t.start, End: t.end, Source: p.file}, Parent: parent}
	}
}
