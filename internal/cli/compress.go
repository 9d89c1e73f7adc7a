package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mkarlsen/vttkit/internal/compress"
	"github.com/mkarlsen/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress [vtt_file]",
	Short: "Compress a VTT by fusing adjacent short cues",
	Long: `Compress a WebVTT file by fusing temporally adjacent cues into
longer, sentence-shaped cues.

Two cues fuse when the gap between them is at most --gap-ms, the first
one does not already end in sentence punctuation (. ? ! and full-width
equivalents), and the combined text stays within --max-chars. Markup
tags are stripped and whitespace runs collapsed along the way.

Examples:
  vttkit compress merged.vtt
  vttkit compress merged.vtt -o merged_compressed.vtt
  vttkit compress merged.vtt --gap-ms 300 --max-chars 100`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().
		IntP("gap-ms", "g", 500, "Fuse if the next cue starts within this gap (ms)")
	compressCmd.Flags().
		IntP("max-chars", "c", 130, "Max characters per fused cue")
}

func runCompress(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	gapMs := intFlagOr(cmd, "gap-ms", cfg.GapMs)
	maxChars := intFlagOr(cmd, "max-chars", cfg.MaxChars)
	outPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inPath)
	}
	if outPath == "" {
		outPath = derivedPath(inPath, "_compressed")
	}

	return compressFile(inPath, outPath, gapMs, maxChars)
}

// compressFile reads, compresses and writes one file; the combo
// commands reuse it.
func compressFile(inPath, outPath string, gapMs, maxChars int) error {
	logger.Infow("Compressing cues",
		"input", inPath,
		"output", outPath,
		"gap_ms", gapMs,
		"max_chars", maxChars,
	)

	lines, err := vtt.ReadFileLines(inPath)
	if err != nil {
		return err
	}

	result, err := compress.Compress(lines, compress.Options{
		MaxGap:   time.Duration(gapMs) * time.Millisecond,
		MaxChars: maxChars,
	})
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", inPath, err)
	}

	if err := vtt.WriteDocument(outPath, result.Lines); err != nil {
		return err
	}

	logger.Infow("Compression complete",
		"before", result.Before,
		"after", result.After,
	)
	fmt.Printf("Compressed cues: %d -> %d   Output: %s\n",
		result.Before, result.After, outPath)
	return nil
}
