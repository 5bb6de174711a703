package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/mhoffman/tagdir/pkg/exif"
)

func parseImageID(arg string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(arg)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid image id %q: %w", arg, err)
	}
	return id, nil
}

func parseTagID(arg string) (uint16, error) {
	tag, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid tag %q: %w", arg, err)
	}
	return uint16(tag), nil
}

// parseAllowList parses a comma-separated tag list into a TagSet.
func parseAllowList(list string) (*exif.TagSet, error) {
	allow := exif.NewTagSet()
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, err := parseTagID(part)
		if err != nil {
			return nil, err
		}
		allow.Put(tag)
	}
	return allow, nil
}

// formatValue renders a record value for terminal output. Printable ASCII
// values are shown as text, everything else as hex.
func formatValue(value []byte) string {
	printable := len(value) > 0
	for _, b := range value {
		if (b < 0x20 || b > 0x7e) && b != 0 {
			printable = false
			break
		}
	}
	if printable {
		return strconv.Quote(strings.TrimRight(string(value), "\x00"))
	}
	return fmt.Sprintf("0x%x", value)
}
