package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarlsen/vttkit/internal/fsutil"
	"github.com/mkarlsen/vttkit/internal/merge"
	"github.com/mkarlsen/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [parts_dir]",
	Short: "Merge VTT parts into one file, ordered chronologically",
	Long: `Merge the VTT files in a directory into a single file.

Files are ordered by the start time of their first cue; files whose
names carry a part number ("part2", "_part02", "Part 10") fall back to
that number when their first cues tie, and the lowercased filename is
the final tie-break. The first file's header is kept, every other
header is dropped.

Examples:
  vttkit merge parts -o merged.vtt
  vttkit merge parts --pattern "*english.vtt" -o merged_english.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().
		StringP("pattern", "p", "*.vtt", "Glob pattern for part files")
}

func runMerge(cmd *cobra.Command, args []string) error {
	partsDir := args[0]

	pattern := stringFlagOr(cmd, "pattern", cfg.Pattern)
	outPath, _ := cmd.Flags().GetString("output")

	if outPath == "" {
		return fmt.Errorf("output path is required: use --output")
	}
	if info, err := os.Stat(partsDir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", partsDir)
	}

	return mergeFiles(partsDir, pattern, outPath)
}

// mergeFiles globs, merges and writes; the combo commands reuse it.
// The chosen file order is printed so the operator can verify it.
func mergeFiles(partsDir, pattern, outPath string) error {
	logger.Infow("Merging parts",
		"parts_dir", partsDir,
		"pattern", pattern,
		"output", outPath,
	)

	files, err := fsutil.GlobFiles(partsDir, pattern)
	if err != nil {
		return err
	}

	merged, order, err := merge.Merge(files)
	if err != nil {
		return fmt.Errorf("failed to merge %s (pattern %q): %w", partsDir, pattern, err)
	}

	fmt.Println("Merge order (sorted):")
	for _, p := range order {
		fmt.Printf("   %s\n", filepath.Base(p))
	}

	if err := vtt.WriteDocument(outPath, merged); err != nil {
		return err
	}

	logger.Infow("Merge complete",
		"files", len(order),
		"output", outPath,
	)
	fmt.Printf("\nMerged %d files -> %s\n", len(order), outPath)
	return nil
}
