package server

// serverInfo and capabilities are built as map[string]interface{} literals
// rather than go.lsp.dev/protocol's typed InitializeResult/ServerCapabilities
// structs: those structs' exact field types (bool vs *bool, nested struct vs
// interface{}) vary across protocol library versions, while the wire shape
// below is dictated only by the LSP specification itself, which this server
// controls directly.
func capabilitiesResult(serverName, serverVersion string) map[string]interface{} {
	return map[string]interface{}{
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": serverVersion,
		},
		"capabilities": map[string]interface{}{
			"hoverProvider": true,
			"textDocumentSync": map[string]interface{}{
				"openClose": true,
				"change":    2, // 0=none, 1=full, 2=incremental
			},
			"definitionProvider":        true,
			"implementationProvider":    true,
			"documentHighlightProvider": true,
			"referencesProvider":        true,
		},
	}
}
