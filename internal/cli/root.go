package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "solidity-lsp",
	Short: "A Language Server Protocol server for Solidity",
	Long: `solidity-lsp implements the Language Server Protocol for a
statically-typed smart-contract language, speaking framed JSON-RPC
over stdio.

It provides hover, go-to-definition, go-to-implementation, find
references, and document highlight over the documents a client keeps
open, recompiling and republishing diagnostics as they change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
