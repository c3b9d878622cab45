// Command galleryctl runs maintenance tasks against a gallery data directory
// without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dataDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "galleryctl",
		Short:         "Maintenance tool for the gallery data files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "./data", "directory holding submissions.json and users.json")

	root.AddCommand(newHashPasswordCmd(), newSeedAdminCmd(), newQueryCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
