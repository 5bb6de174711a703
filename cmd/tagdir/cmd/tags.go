package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/exif"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags <id>",
	Short: "List the tags of an image in ascending order",
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

		raws, err := cat.Get(id)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}

		coll := exif.FromRaw(raws)
		it := coll.Iter()
		for it.Next() {
			rec := it.Record()
			cmd.Printf("%5d  %-10s  count=%-4d  %s\n", rec.Tag, rec.Type, rec.Count(), formatValue(rec.Value))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
