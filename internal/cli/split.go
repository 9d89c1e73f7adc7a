package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkarlsen/vttkit/internal/split"
	"github.com/mkarlsen/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [vtt_file]",
	Short: "Split a VTT file into fixed-length parts",
	Long: `Split a WebVTT file into parts of N minutes each, named
{stem}_part1.vtt, {stem}_part2.vtt and so on.

Cues are grouped by start time into consecutive buckets. By default the
bucket grid aligns to the first cue's time; with --start-at-zero it
aligns to 00:00 instead. Empty buckets produce no file. With --rebase,
each part's timestamps are rewritten relative to the part's own start so
every part begins near 00:00.

Examples:
  vttkit split input_fixed.vtt --out-dir parts --minutes 10
  vttkit split input.vtt --rebase
  vttkit split input.vtt --minutes 5 --start-at-zero`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().
		StringP("out-dir", "d", "", "Output directory (default: same folder as input)")
	splitCmd.Flags().
		IntP("minutes", "m", 10, "Chunk size in minutes")
	splitCmd.Flags().
		Bool("rebase", false, "Rewrite each part's timestamps to start at 00:00")
	splitCmd.Flags().
		Bool("start-at-zero", false, "Align the chunk grid to 00:00 instead of the first cue")
}

func runSplit(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	outDir, _ := cmd.Flags().GetString("out-dir")
	minutes := intFlagOr(cmd, "minutes", cfg.ChunkMinutes)
	rebase, _ := cmd.Flags().GetBool("rebase")
	startAtZero, _ := cmd.Flags().GetBool("start-at-zero")

	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inPath)
	}
	if minutes <= 0 {
		return fmt.Errorf("invalid chunk size: %d minutes", minutes)
	}

	return splitFile(inPath, outDir, minutes, rebase, startAtZero)
}

// splitFile runs the whole split pipeline for one input file; the combo
// commands reuse it.
func splitFile(inPath, outDir string, minutes int, rebase, startAtZero bool) error {
	if outDir == "" {
		outDir = filepath.Dir(inPath)
	}

	logger.Infow("Splitting file",
		"input", inPath,
		"out_dir", outDir,
		"minutes", minutes,
		"rebase", rebase,
		"start_at_zero", startAtZero,
	)

	lines, err := vtt.ReadFileLines(inPath)
	if err != nil {
		return err
	}
	header, body := vtt.SplitHeaderBody(lines)

	cues, skipped := vtt.ScanCues(body)
	for _, s := range skipped {
		logger.Debugw("Skipped malformed cue", "line", s.Line, "error", s.Err)
	}
	if len(skipped) > 0 {
		logger.Warnw("Skipped malformed cues", "count", len(skipped))
	}

	parts, err := split.Chunk(header, cues, split.Options{
		ChunkDuration: time.Duration(minutes) * time.Minute,
		Rebase:        rebase,
		StartAtZero:   startAtZero,
	})
	if err != nil {
		return fmt.Errorf("failed to split %s: %w", inPath, err)
	}

	paths, err := split.WriteParts(outDir, stem(inPath), parts)
	if err != nil {
		return err
	}

	logger.Infow("Split complete",
		"input", inPath,
		"parts", len(paths),
	)
	fmt.Printf("Split wrote %d file(s) -> %s\n", len(paths), outDir)
	return nil
}
