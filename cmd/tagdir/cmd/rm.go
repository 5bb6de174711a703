package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an image from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseImageID(args[0])
		if err != nil {
			return err
		}

		cat, ok := catalogFromContext(cmd)
		if !ok {
			return fmt.Errorf("catalog not found in context")
		}

		if err := cat.Delete(id); err != nil {
			return fmt.Errorf("failed to delete image: %w", err)
		}

		cmd.Printf("removed %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
