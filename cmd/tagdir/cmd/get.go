package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/exif"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <id> <tag>",
	Short: "Get a single tag value of an image",
	Long: `Get the value of one tag of an image.

Example:
  tagdir get 2QgL7... 274`,
	Args: cobra.ExactArgs(2),
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

		rec, ok := exif.FromRaw(raws).TryGet(tag)
		if !ok {
			return fmt.Errorf("tag %d not present", tag)
		}

		cmd.Printf("%5d  %-10s  count=%-4d  %s\n", rec.Tag, rec.Type, rec.Count(), formatValue(rec.Value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
