package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURIRejectsNonFileScheme(t *testing.T) {
	_, ok := FromURI("http://example.com/a.sol")
	assert.False(t, ok)
}

func TestFromURIAcceptsFileScheme(t *testing.T) {
	path, ok := FromURI("file:///tmp/p/a.sol")
	require.True(t, ok)
	assert.Equal(t, "/tmp/p/a.sol", path)
}

func TestCanonicalizeStripsBasePath(t *testing.T) {
	assert.Equal(t, "a.sol", Canonicalize("/tmp/p", "/tmp/p/a.sol"))
	assert.Equal(t, "sub/a.sol", Canonicalize("/tmp/p", "/tmp/p/sub/a.sol"))
}

func TestCanonicalizeKeepsAbsoluteWhenNoPrefixMatch(t *testing.T) {
	assert.Equal(t, "/other/a.sol", Canonicalize("/tmp/p", "/other/a.sol"))
}

func TestResolveURIRoundTripsWithAbsolutePath(t *testing.T) {
	rel, ok := ResolveURI("/tmp/p", "file:///tmp/p/a.sol")
	require.True(t, ok)
	assert.Equal(t, "a.sol", rel)
	assert.Equal(t, "/tmp/p/a.sol", AbsolutePath("/tmp/p", rel))
}
