package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/codec"
	"github.com/mhoffman/tagdir/pkg/exif"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a directory blob into the catalog",
	Long: `Import an encoded tag directory blob and create a catalog entry for it.

The --allow flag restricts ingestion to a comma-separated set of tag
identifiers; unrecognized tags and tags outside the set are skipped.

Example:
  tagdir import photo.tags
  tagdir import --allow 256,257,274 photo.tags`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		raws, err := codec.DecodeDirectory(data)
		if err != nil {
			return fmt.Errorf("invalid directory blob: %w", err)
		}

		var coll *exif.Collection
		if allowList, _ := cmd.Flags().GetString("allow"); allowList != "" {
			allow, err := parseAllowList(allowList)
			if err != nil {
				return err
			}
			coll = exif.FromRawFiltered(raws, allow, exif.DefaultRegistry())
		} else {
			coll = exif.FromRaw(raws)
		}

		cat, ok := catalogFromContext(cmd)
		if !ok {
			return fmt.Errorf("catalog not found in context")
		}

		id, err := cat.Create(coll.RawRecords())
		if err != nil {
			return fmt.Errorf("failed to store directory: %w", err)
		}

		cmd.Printf("%s (%d tags)\n", id, coll.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("allow", "", "Comma-separated tag allow list")
}
