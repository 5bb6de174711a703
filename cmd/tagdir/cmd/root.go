package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/catalog"
)

type ctxKey string

const catalogKey ctxKey = "catalog"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tagdir",
	Short: "tagdir - image tag directory catalog",
	Long: `tagdir stores image metadata as ordered tag directories and keeps
them in a local catalog keyed by image id.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		cat, err := catalog.Open(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		// Carry the catalog in the command context
		cmd.SetContext(context.WithValue(cmd.Context(), catalogKey, cat))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cat, ok := catalogFromContext(cmd); ok {
			return cat.Close()
		}
		return nil
	},
}

// catalogFromContext retrieves the catalog opened by the root command.
func catalogFromContext(cmd *cobra.Command) (*catalog.Catalog, bool) {
	cat, ok := cmd.Context().Value(catalogKey).(*catalog.Catalog)
	return cat, ok
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the catalog")
}
