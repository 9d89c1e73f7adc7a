package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mkarlsen/vttkit/internal/timeline"
	"github.com/mkarlsen/vttkit/internal/vtt"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [vtt_file]",
	Short: "Check timestamp lines and optionally fix them",
	Long: `Check a WebVTT file for timeline problems: unparseable timestamps,
cues that end before they start, starts that go backwards, and cues that
overlap their predecessor.

With --fix, a repaired copy is also written: every timestamp line is
rewritten to canonical HH:MM:SS.mmm form, start and end are swapped when
reversed, and cue settings are preserved. Unparseable lines are left
untouched and reported.

Examples:
  vttkit clean input.vtt
  vttkit clean input.vtt --fix
  vttkit clean input.vtt --fix -o cleaned.vtt
  vttkit clean input.vtt --show 10 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().
		Bool("fix", false, "Write a copy with normalized/fixed timestamp lines")
	cleanCmd.Flags().
		Int("show", 50, "How many report items to print")
	cleanCmd.Flags().
		Bool("copy", false, "Copy the report to the system clipboard")
}

func runClean(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	fix, _ := cmd.Flags().GetBool("fix")
	copyReport, _ := cmd.Flags().GetBool("copy")
	outPath, _ := cmd.Flags().GetString("output")
	show := intFlagOr(cmd, "show", cfg.ShowLimit)
	if show < 0 {
		show = 0
	}

	if _, err := os.Stat(inPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inPath)
	}

	logger.Infow("Checking timeline",
		"input", inPath,
		"fix", fix,
	)

	lines, err := vtt.ReadFileLines(inPath)
	if err != nil {
		return err
	}

	issues := timeline.Check(lines)

	var report strings.Builder
	fmt.Fprintf(&report, "Checked: %s\n", inPath)
	fmt.Fprintf(&report, "Issues found: %d\n", len(issues))
	for _, issue := range issues[:min(show, len(issues))] {
		fmt.Fprintf(&report, "[Line %d] %s: %s\n  %s\n",
			issue.Line, issue.Kind, issue.Detail, issue.Raw)
	}
	if len(issues) > show {
		fmt.Fprintf(&report, "... (%d more)\n", len(issues)-show)
	}

	if fix {
		fixed, fixLog := timeline.Fix(lines)

		if outPath == "" {
			outPath = derivedPath(inPath, "_fixed")
		}
		if err := vtt.WriteDocument(outPath, fixed); err != nil {
			return err
		}

		fmt.Fprintf(&report, "\n=== Fix mode ===\n")
		fmt.Fprintf(&report, "Wrote: %s\n", outPath)
		fmt.Fprintf(&report, "Timestamp lines normalized/swapped/skipped: %d\n", len(fixLog))
		for _, entry := range fixLog[:min(show, len(fixLog))] {
			fmt.Fprintf(&report, "[Line %d] %s: %s\n",
				entry.Line, entry.Action, entry.Detail)
		}
		if len(fixLog) > show {
			fmt.Fprintf(&report, "... (%d more)\n", len(fixLog)-show)
		}
	}

	fmt.Print(report.String())

	if copyReport {
		if err := clipboard.WriteAll(report.String()); err != nil {
			logger.Warnw("Failed to copy report to clipboard", "error", err)
		} else {
			logger.Infow("Report copied to clipboard")
		}
	}

	return nil
}
