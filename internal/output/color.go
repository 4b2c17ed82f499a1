package output

import (
	"io"
	"os"
	"slices"
)

// ColorModes lists the values accepted by --color.
var ColorModes = []string{"auto", "always", "never"}

// ValidColorMode reports whether mode is one of ColorModes.
func ValidColorMode(mode string) bool {
	return slices.Contains(ColorModes, mode)
}

// ResolveColorMode decides whether human output is styled:
//   - "never":  no styling
//   - "always": styling even when piped
//   - "auto":   styling only when isTTY
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
