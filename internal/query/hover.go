package query

import (
	"fmt"
	"strings"

	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/lsptype"
)

// Hover implements textDocument/hover (spec §4.6): resolves the node under
// the cursor to a declaration and renders its signature and doc comment as
// markdown. Returns nil (not an error) when nothing hoverable is under the
// cursor.
func Hover(driver *compiler.Driver, basePath string, params map[string]interface{}) (*lsptype.Hover, error) {
	_, node, _, err := locate(driver, basePath, params)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}

	decls := declarationsOf(node)
	if len(decls) == 0 {
		return nil, nil
	}
	decl := decls[0]

	rng := rangeOf(node.Location)
	return &lsptype.Hover{
		Contents: lsptype.MarkupContent{
			Kind:  lsptype.MarkupMarkdown,
			Value: formatHover(decl),
		},
		Range: &rng,
	}, nil
}

func formatHover(decl *ast.Node) string {
	var sb strings.Builder
	sb.WriteString("```solidity\n")
	switch decl.Kind {
	case ast.KindFunctionDeclaration:
		sb.WriteString(fmt.Sprintf("function %s(%s)", decl.Name, joinParamTypes(decl)))
	case ast.KindVariableDeclaration, ast.KindParameterDeclaration:
		sb.WriteString(fmt.Sprintf("%s %s", decl.TypeString, decl.Name))
	case ast.KindContractDeclaration:
		sb.WriteString(fmt.Sprintf("contract %s", decl.Name))
	case ast.KindEnumDeclaration:
		sb.WriteString(fmt.Sprintf("enum %s", decl.Name))
	case ast.KindEnumValueDeclaration:
		enumName := ""
		if decl.EnumDefinition != nil {
			enumName = decl.EnumDefinition.Name
		}
		sb.WriteString(fmt.Sprintf("%s.%s", enumName, decl.Name))
	default:
		sb.WriteString(decl.Name)
	}
	sb.WriteString("\n```")

	if decl.Documentation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(decl.Documentation)
	}
	return sb.String()
}

func joinParamTypes(fn *ast.Node) string {
	var parts []string
	for _, c := range fn.Children {
		if c.Kind != ast.KindParameterDeclaration {
			continue
		}
		if c.Name != "" {
			parts = append(parts, fmt.Sprintf("%s %s", c.TypeString, c.Name))
		} else {
			parts = append(parts, c.TypeString)
		}
	}
	return strings.Join(parts, ", ")
}
