package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// derivedPath inserts a suffix between a path's stem and extension:
// ("input.vtt", "_fixed") -> "input_fixed.vtt".
func derivedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// siblingPath replaces a path's filename, keeping its directory.
func siblingPath(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}

// stem returns the filename without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// intFlagOr returns the flag's value when it was set on the command
// line, the fallback (usually a config value) otherwise.
func intFlagOr(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

// stringFlagOr is intFlagOr for string flags.
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}
