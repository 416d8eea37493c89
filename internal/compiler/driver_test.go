package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/compiler/refimpl"
	"solidity-lsp/internal/config"
)

func newDriver() *compiler.Driver {
	return compiler.NewDriver(func() compiler.Frontend { return refimpl.New() }, nil)
}

func TestCompileReturnsFalseForUnopenDocument(t *testing.T) {
	d := newDriver()
	ok := d.Compile("missing.sol", map[string]string{}, config.Default())
	assert.False(t, ok)
}

func TestCompileReturnsTrueAndPopulatesAST(t *testing.T) {
	d := newDriver()
	docs := map[string]string{"c.sol": "contract C {\n}"}
	ok := d.Compile("c.sol", docs, config.Default())
	require.True(t, ok)

	unit, ok := d.AST("c.sol")
	require.True(t, ok)
	require.Len(t, unit.Root.Children, 1)
	assert.Equal(t, "C", unit.Root.Children[0].Name)
}

func TestCompileSourcePublishesRangeFromSyntaxError(t *testing.T) {
	d := newDriver()
	docs := map[string]string{"c.sol": "contract C {\n    function f( {\n    }\n}"}
	params := d.CompileSource("c.sol", docs, config.Default(), "/workspace")

	require.NotEmpty(t, params.Diagnostics)
	assert.Equal(t, "solc-like", params.Diagnostics[0].Source)
	assert.Equal(t, "file:///workspace/c.sol", string(params.URI))
}

func TestCompileSourceOnlyIncludesDiagnosticsForRequestedPath(t *testing.T) {
	d := newDriver()
	docs := map[string]string{
		"good.sol": "contract Good {\n}",
		"bad.sol":  "contract Bad {\n    function f( {\n    }\n}",
	}
	params := d.CompileSource("good.sol", docs, config.Default(), "/workspace")
	assert.Empty(t, params.Diagnostics)
}
