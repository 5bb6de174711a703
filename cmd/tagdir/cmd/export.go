package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/codec"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Export a catalog entry as a directory blob",
	Long: `Export the tag directory of an image back to its encoded blob form.

Example:
  tagdir export 2QgL7... photo.tags`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseImageID(args[0])
		if err != nil {
			return err
		}

		cat, ok := catalogFromContext(cmd)
		if !ok {
			return fmt.Errorf("catalog not found in context")
		}

		raws, err := cat.Get(id)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}

		data, err := codec.EncodeDirectory(raws)
		if err != nil {
			return fmt.Errorf("failed to encode directory: %w", err)
		}

		if err := os.WriteFile(args[1], data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[1], err)
		}

		cmd.Printf("wrote %d records to %s\n", len(raws), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
