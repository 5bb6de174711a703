package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the images in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, ok := catalogFromContext(cmd)
		if !ok {
			return fmt.Errorf("catalog not found in context")
		}

		ids, err := cat.List()
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}

		for _, id := range ids {
			cmd.Println(id.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
