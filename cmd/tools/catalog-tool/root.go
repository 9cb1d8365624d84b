// cmd/tools/catalog-tool/root.go
package main

import (
	"github.com/spf13/cobra"
)

const defaultCatalogPath = "configs/activities.json"

func newRootCmd() *cobra.Command {
	var catalogPath string

	rootCmd := &cobra.Command{
		Use:   "catalog-tool",
		Short: "Maintain the activity catalog the signup server starts with",
		Long: `catalog-tool edits and checks the activity catalog JSON file and can
print the live rosters of a running signup server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&catalogPath, "path", "p", defaultCatalogPath, "Path to the catalog file")

	rootCmd.AddCommand(
		newValidateCmd(&catalogPath),
		newListCmd(&catalogPath),
		newAddCmd(&catalogPath),
		newUpdateCmd(&catalogPath),
		newRosterCmd(),
	)
	return rootCmd
}
