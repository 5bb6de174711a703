package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhoffman/tagdir/pkg/exif"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <id> <tag> <value>",
	Short: "Set a tag value on an image",
	Long: `Set the value of one tag of an image. The value is taken as text
unless --hex is given, in which case it is decoded from hex. The data type
defaults to the registry's canonical type for the tag and can be overridden
with --type.

Examples:
  tagdir set 2QgL7... 305 "tagdir 1.0"
  tagdir set --hex --type 3 2QgL7... 274 0600`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseImageID(args[0])
		if err != nil {
			return err
		}
		tag, err := parseTagID(args[1])
		if err != nil {
			return err
		}

		value := []byte(args[2])
		if useHex, _ := cmd.Flags().GetBool("hex"); useHex {
			value, err = hex.DecodeString(args[2])
			if err != nil {
				return fmt.Errorf("invalid hex value: %w", err)
			}
		}

		typ := exif.DefaultRegistry().TypeOf(tag)
		if typeOverride, _ := cmd.Flags().GetUint16("type"); typeOverride != 0 {
			typ = exif.DataType(typeOverride)
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
		coll.Add(&exif.Record{Tag: tag, Type: typ, Value: value})

		if err := cat.Put(id, coll.RawRecords()); err != nil {
			return fmt.Errorf("failed to store directory: %w", err)
		}

		cmd.Printf("set tag %d (%s, %d bytes)\n", tag, typ, len(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().Bool("hex", false, "Decode the value argument from hex")
	setCmd.Flags().Uint16("type", 0, "Data type code override")
}
