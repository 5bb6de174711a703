package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/exif"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id> <tag>",
	Short: "Delete a tag from an image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseImageID(args[0])
		if err != nil {
			return err
		}
		tag, err := parseTagID(args[1])
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

		coll := exif.FromRaw(raws)
		if !coll.RemoveTag(tag) {
			cmd.Printf("tag %d not present\n", tag)
			return nil
		}

		if err := cat.Put(id, coll.RawRecords()); err != nil {
			return fmt.Errorf("failed to store directory: %w", err)
		}

		cmd.Printf("deleted tag %d\n", tag)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
