package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"solidity-lsp/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Display the server version, git commit, build date, and Go runtime version.`,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Println(version.GetFullVersionInfo())
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
