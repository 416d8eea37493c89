package documents_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solidity-lsp/internal/documents"
)

func TestDetectLanguageRecognizesSourceExtensions(t *testing.T) {
	assert.Equal(t, "solidity", documents.DetectLanguage("contracts/Token.sol"))
	assert.Equal(t, "yul", documents.DetectLanguage("contracts/Token.yul"))
}

func TestDetectLanguageReturnsEmptyForUnrecognizedExtensions(t *testing.T) {
	assert.Empty(t, documents.DetectLanguage("README.md"))
	assert.Empty(t, documents.DetectLanguage("package.json"))
	assert.Empty(t, documents.DetectLanguage("noextension"))
}
