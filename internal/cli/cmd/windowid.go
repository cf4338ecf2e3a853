package cmd

import (
	"fmt"
	"strconv"
)

// parseWindowID parses an X window id in C numeric-literal syntax:
// decimal, 0x-prefixed hex, or leading-zero octal.
func parseWindowID(arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid WindowId %q", arg)
	}
	return uint32(id), nil
}
