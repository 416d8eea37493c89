package documents

import "strings"

// DetectLanguage reports the language a document path names, by extension,
// modeled on the teacher's LSPDocumentManager.DetectLanguage. It gates
// whether textDocument/didOpen tracks a document at all: the compiler
// frontend only understands source files, so a didOpen for something like
// a workspace's .json or .md file is recognized as an LSP event but never
// installed in the Store.
func DetectLanguage(path string) string {
	ext := ""
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = strings.ToLower(path[i:])
	}

	switch ext {
	case ".sol":
		return "solidity"
	case ".yul":
		return "yul"
	default:
		return ""
	}
}
