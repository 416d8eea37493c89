// Package version exposes build and version metadata, reported in
// initialize's serverInfo field (spec §4.7) and the "version" CLI command.
// Adapted from the teacher's src/internal/version/version.go.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// ServerName is the identity this server reports to LSP clients.
const ServerName = "solidity-lsp"

func GetVersion() string {
	return Version
}

func GetFullVersionInfo() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		ServerName, Version, GitCommit, BuildDate, GoVersion)
}
