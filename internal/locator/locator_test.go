package locator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/compiler/refimpl"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/locator"
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

func TestLocateReturnsSmallestEnclosingNode(t *testing.T) {
	src := `contract C {
    function get() {
        total;
    }
}`
	unit := compileOne(t, src)

	offset := 0
	for i, r := range src {
		if r == 't' && src[i:i+5] == "total" {
			offset = i + 1
			break
		}
	}

	node := locator.Locate(unit, offset)
	require.NotNil(t, node)
	assert.Equal(t, ast.KindIdentifier, node.Kind)
	assert.Equal(t, "total", node.IdentifierName)
}

func TestLocateReturnsNilOutsideEveryRange(t *testing.T) {
	unit := compileOne(t, "contract C {\n}")
	node := locator.Locate(unit, 10_000)
	assert.Nil(t, node)
}

func TestLocateReturnsNilForNilUnit(t *testing.T) {
	assert.Nil(t, locator.Locate(nil, 0))
}
