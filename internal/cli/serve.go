package cli

import (
	"os"

	"github.com/spf13/cobra"

	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/compiler/refimpl"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/documents"
	"solidity-lsp/internal/server"
	"solidity-lsp/internal/tracelog"
	"solidity-lsp/internal/transport"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server over stdio",
	Long: `serve starts the language server, reading Content-Length-framed
JSON-RPC requests from stdin and writing responses and notifications to
stdout until the client sends exit.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := tracelog.New("solidity-lsp")
	tr := transport.NewStdio(os.Stdin, os.Stdout)
	newFrontend := func() compiler.Frontend { return refimpl.NewWithReader(documents.OSReader{}) }
	s := server.New(tr, newFrontend, log)

	if defaults, err := config.LoadDefaultsFile(config.DefaultFilePath()); err != nil {
		log.Warn("failed to load config defaults: %v", err)
	} else {
		s.ApplyFileDefaults(defaults)
	}

	return s.Run()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
