package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/compiler/refimpl"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/query"
)

func newCompiledDriver(t *testing.T, docs map[string]string) *compiler.Driver {
	t.Helper()
	d := compiler.NewDriver(func() compiler.Frontend { return refimpl.New() }, nil)
	// Compile against whichever path happens to be first; CompileTo already
	// compiles every open document in one pass.
	for path := range docs {
		require.True(t, d.Compile(path, docs, config.Default()))
		break
	}
	return d
}

func paramsAt(uri string, line, character int) map[string]interface{} {
	return map[string]interface{}{
		"textDocument": map[string]interface{}{"uri": uri},
		"position": map[string]interface{}{
			"line":      float64(line),
			"character": float64(character),
		},
	}
}

func TestDefinitionResolvesLocalVariableUse(t *testing.T) {
	src := "contract C {\n    function get() {\n        uint256 total;\n        total;\n    }\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	// "total;" use is on line 3 (0-based), character 9 points inside "total".
	locations, err := query.Definition(d, "/work", paramsAt("file:///work/c.sol", 3, 9))
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "file:///work/c.sol", string(locations[0].URI))
	assert.Equal(t, uint32(2), locations[0].Range.Start.Line) // declaration is on line 2
}

func TestDefinitionReturnsEmptyForUnresolvedIdentifier(t *testing.T) {
	src := "contract C {\n    function get() {\n        undeclared;\n    }\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	locations, err := query.Definition(d, "/work", paramsAt("file:///work/c.sol", 2, 9))
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestReferencesIncludesDeclarationByDefault(t *testing.T) {
	src := "contract C {\n    function get() {\n        uint256 total;\n        total;\n    }\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	locations, err := query.References(d, "/work", paramsAt("file:///work/c.sol", 3, 9), []string{"c.sol"})
	require.NoError(t, err)
	assert.Len(t, locations, 2) // declaration + one use, includeDeclaration defaults true
}

func TestReferencesExcludesDeclarationWhenRequested(t *testing.T) {
	src := "contract C {\n    function get() {\n        uint256 total;\n        total;\n    }\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	params := paramsAt("file:///work/c.sol", 3, 9)
	params["context"] = map[string]interface{}{"includeDeclaration": false}

	locations, err := query.References(d, "/work", params, []string{"c.sol"})
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestHighlightCoversDeclarationAndUse(t *testing.T) {
	src := "contract C {\n    function get() {\n        uint256 total;\n        total;\n    }\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	highlights, err := query.Highlight(d, "/work", paramsAt("file:///work/c.sol", 3, 9))
	require.NoError(t, err)
	assert.Len(t, highlights, 2)
}

func TestHoverRendersFunctionSignature(t *testing.T) {
	src := "contract C {\n    /// Returns the total.\n    function total() {\n    }\n    function get() {\n        total();\n    }\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	hover, err := query.Hover(d, "/work", paramsAt("file:///work/c.sol", 5, 9))
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.Value, "function total")
	assert.Contains(t, hover.Contents.Value, "Returns the total.")
}

func TestDefinitionReturnsEveryOverloadCandidate(t *testing.T) {
	src := "contract C {\n" +
		"    function transfer() {\n" +
		"    }\n" +
		"    function transfer() {\n" +
		"    }\n" +
		"    function call() {\n" +
		"        transfer();\n" +
		"    }\n" +
		"}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	locations, err := query.Definition(d, "/work", paramsAt("file:///work/c.sol", 6, 9))
	require.NoError(t, err)
	assert.Len(t, locations, 2, "an overloaded identifier's candidates must all be returned, not just Referenced")
}

func TestDefinitionResolvesAssignmentRightHandSide(t *testing.T) {
	src := "contract C {\n" +
		"    function get() {\n" +
		"        uint256 total;\n" +
		"        uint256 other;\n" +
		"        other = total;\n" +
		"    }\n" +
		"}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	locations, err := query.Definition(d, "/work", paramsAt("file:///work/c.sol", 4, 17))
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, uint32(2), locations[0].Range.Start.Line)
}

func TestReferencesFindsUseInsideCallArgument(t *testing.T) {
	src := "contract C {\n" +
		"    function get() {\n" +
		"        uint256 total;\n" +
		"        log(total);\n" +
		"    }\n" +
		"}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	locations, err := query.References(d, "/work", paramsAt("file:///work/c.sol", 2, 17), []string{"c.sol"})
	require.NoError(t, err)
	assert.Len(t, locations, 2, "declaration plus the use nested inside a call argument")
}

func TestHoverReturnsNilWhenNothingUnderCursor(t *testing.T) {
	src := "contract C {\n}\n"
	docs := map[string]string{"c.sol": src}
	d := newCompiledDriver(t, docs)

	hover, err := query.Hover(d, "/work", paramsAt("file:///work/c.sol", 0, 100))
	require.NoError(t, err)
	assert.Nil(t, hover)
}
