package cli

import (
	"fmt"
	"os"

	"github.com/mkarlsen/vttkit/internal/timeline"
	"github.com/mkarlsen/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var cleansplitCmd = &cobra.Command{
	Use:   "cleansplit [vtt_file]",
	Short: "Fix timestamps, then split into parts",
	Long: `Convenience pipeline: fix the file's timestamp lines, write the
result as {stem}_fixed.vtt next to the input, then split that fixed file
into parts. The fixed file is kept.

Examples:
  vttkit cleansplit input.vtt --out-dir parts
  vttkit cleansplit input.vtt --out-dir parts --minutes 5 --rebase`,
	Args: cobra.ExactArgs(1),
	RunE: runCleanSplit,
}

var mergecompressCmd = &cobra.Command{
	Use:   "mergecompress [parts_dir]",
	Short: "Merge parts, then compress the merged output",
	Long: `Convenience pipeline: merge the parts in a directory into a
temporary file next to the output, compress that into the final output,
then remove the temporary file (best effort).

Examples:
  vttkit mergecompress parts -o merged_compressed.vtt
  vttkit mergecompress parts --pattern "*english.vtt" -o out.vtt --gap-ms 300`,
	Args: cobra.ExactArgs(1),
	RunE: runMergeCompress,
}

var cleancompresssplitCmd = &cobra.Command{
	Use:   "cleancompresssplit [vtt_file]",
	Short: "Fix timestamps, compress, then split into parts",
	Long: `Convenience pipeline: fix the file's timestamp lines, compress the
fixed file, split the compressed file into parts, then remove the two
intermediate files (best effort).

Examples:
  vttkit cleancompresssplit input.vtt --out-dir parts
  vttkit cleancompresssplit input.vtt --out-dir parts --minutes 5 --max-chars 100`,
	Args: cobra.ExactArgs(1),
	RunE: runCleanCompressSplit,
}

func init() {
	rootCmd.AddCommand(cleansplitCmd)
	rootCmd.AddCommand(mergecompressCmd)
	rootCmd.AddCommand(cleancompresssplitCmd)

	cleansplitCmd.Flags().
		StringP("out-dir", "d", "", "Output directory for parts (default: alongside the input)")
	cleansplitCmd.Flags().
		IntP("minutes", "m", 10, "Chunk size in minutes")
	cleansplitCmd.Flags().
		Bool("rebase", false, "Rewrite each part's timestamps to start at 00:00")
	cleansplitCmd.Flags().
		Bool("start-at-zero", false, "Align the chunk grid to 00:00 instead of the first cue")

	mergecompressCmd.Flags().
		StringP("pattern", "p", "*.vtt", "Glob pattern for part files")
	mergecompressCmd.Flags().
		IntP("gap-ms", "g", 500, "Fuse if the next cue starts within this gap (ms)")
	mergecompressCmd.Flags().
		IntP("max-chars", "c", 130, "Max characters per fused cue")

	cleancompresssplitCmd.Flags().
		StringP("out-dir", "d", "", "Output directory for parts (default: alongside the input)")
	cleancompresssplitCmd.Flags().
		IntP("minutes", "m", 10, "Chunk size in minutes")
	cleancompresssplitCmd.Flags().
		IntP("gap-ms", "g", 500, "Fuse if the next cue starts within this gap (ms)")
	cleancompresssplitCmd.Flags().
		IntP("max-chars", "c", 130, "Max characters per fused cue")
	cleancompresssplitCmd.Flags().
		Bool("rebase", false, "Rewrite each part's timestamps to start at 00:00")
	cleancompresssplitCmd.Flags().
		Bool("start-at-zero", false, "Align the chunk grid to 00:00 instead of the first cue")
}

func runCleanSplit(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	outDir, _ := cmd.Flags().GetString("out-dir")
	minutes := intFlagOr(cmd, "minutes", cfg.ChunkMinutes)
	rebase, _ := cmd.Flags().GetBool("rebase")
	startAtZero, _ := cmd.Flags().GetBool("start-at-zero")

	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inPath)
	}

	fixedPath, err := fixToSibling(inPath)
	if err != nil {
		return err
	}

	return splitFile(fixedPath, outDir, minutes, rebase, startAtZero)
}

func runMergeCompress(cmd *cobra.Command, args []string) error {
	partsDir := args[0]

	pattern := stringFlagOr(cmd, "pattern", cfg.Pattern)
	gapMs := intFlagOr(cmd, "gap-ms", cfg.GapMs)
	maxChars := intFlagOr(cmd, "max-chars", cfg.MaxChars)
	outPath, _ := cmd.Flags().GetString("output")

	if outPath == "" {
		return fmt.Errorf("output path is required: use --output")
	}
	if info, err := os.Stat(partsDir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", partsDir)
	}

	// merge into a temp next to the final output
	tmpPath := siblingPath(outPath, stem(outPath)+"_tmp_merged.vtt")

	if err := mergeFiles(partsDir, pattern, tmpPath); err != nil {
		return err
	}
	defer removeQuiet(tmpPath)

	return compressFile(tmpPath, outPath, gapMs, maxChars)
}

func runCleanCompressSplit(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	outDir, _ := cmd.Flags().GetString("out-dir")
	minutes := intFlagOr(cmd, "minutes", cfg.ChunkMinutes)
	gapMs := intFlagOr(cmd, "gap-ms", cfg.GapMs)
	maxChars := intFlagOr(cmd, "max-chars", cfg.MaxChars)
	rebase, _ := cmd.Flags().GetBool("rebase")
	startAtZero, _ := cmd.Flags().GetBool("start-at-zero")

	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inPath)
	}

	fixedPath, err := fixToSibling(inPath)
	if err != nil {
		return err
	}
	defer removeQuiet(fixedPath)

	compressedPath := derivedPath(inPath, "_compressed")
	if err := compressFile(fixedPath, compressedPath, gapMs, maxChars); err != nil {
		return err
	}
	defer removeQuiet(compressedPath)
	fmt.Printf("Compressed to: %s\n", compressedPath)

	return splitFile(compressedPath, outDir, minutes, rebase, startAtZero)
}

// fixToSibling runs the timestamp fixer over inPath and writes the
// result as {stem}_fixed{ext} next to it.
func fixToSibling(inPath string) (string, error) {
	lines, err := vtt.ReadFileLines(inPath)
	if err != nil {
		return "", err
	}

	fixed, fixLog := timeline.Fix(lines)
	logger.Infow("Fixed timestamp lines",
		"input", inPath,
		"entries", len(fixLog),
	)

	fixedPath := derivedPath(inPath, "_fixed")
	if err := vtt.WriteDocument(fixedPath, fixed); err != nil {
		return "", err
	}

	fmt.Printf("Clean+fix wrote: %s\n", fixedPath)
	return fixedPath, nil
}

// removeQuiet deletes an intermediate file; failure to remove is never
// fatal.
func removeQuiet(path string) {
	if err := os.Remove(path); err != nil {
		logger.Warnw("Failed to remove intermediate file",
			"path", path,
			"error", err,
		)
	}
}
