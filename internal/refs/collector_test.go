package refs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/compiler/refimpl"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/refs"
)

func compileOne(t *testing.T, src string) *ast.Unit {
	t.Helper()
	f := refimpl.New()
	f.Configure(config.Default())
	f.SetSources(map[string]string{"c.sol": src})
	require.NoError(t, f.CompileTo(compiler.LevelAnalyzed))
	unit, ok := f.AST("c.sol")
	require.True(t, ok)
	return unit
}

func TestCollectFindsDeclarationAndAllUses(t *testing.T) {
	src := `contract C {
    function get() {
        uint256 total;
        total;
        total;
    }
}`
	unit := compileOne(t, src)

	var decl *ast.Node
	ast.Walk(unit.Root, func(n *ast.Node) {
		if n.Kind == ast.KindVariableDeclaration && n.Name == "total" {
			decl = n
		}
	})
	require.NotNil(t, decl)

	highlights := refs.Collect(unit.Root, decl, decl.Name)
	require.Len(t, highlights, 3) // declaration name + two uses
	assert.Equal(t, ast.HighlightText, highlights[0].Kind)
	assert.Equal(t, ast.HighlightRead, highlights[1].Kind)
	assert.Equal(t, ast.HighlightRead, highlights[2].Kind)
}

func TestCollectIncludesOverloadCandidates(t *testing.T) {
	src := `contract C {
    function transfer() {
        transfer();
    }
    function transfer() {
    }
}`
	unit := compileOne(t, src)

	var first *ast.Node
	for _, m := range unit.Root.Children[0].Children {
		if m.Kind == ast.KindFunctionDeclaration && m.Name == "transfer" {
			first = m
			break
		}
	}
	require.NotNil(t, first)

	highlights := refs.Collect(unit.Root, first, first.Name)
	// The declaration itself, plus the call site (an ambiguous overload
	// reference counts as touching every candidate).
	assert.Len(t, highlights, 2)
}

func TestCollectReturnsNilForNilDecl(t *testing.T) {
	unit := compileOne(t, "contract C {\n}")
	assert.Nil(t, refs.Collect(unit.Root, nil, "anything"))
}
