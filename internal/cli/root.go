package cli

import (
	"fmt"

	"github.com/mkarlsen/vttkit/internal/config"
	"github.com/mkarlsen/vttkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vttkit",
	Short: "Clean, split, merge and compress WebVTT subtitle files",
	Long: `Vttkit is a CLI toolkit for WebVTT subtitles, built for the messy
files that automatic transcription produces.

It checks and repairs broken timestamp lines, splits a file into
fixed-length parts, merges parts back together in chronological order,
and compresses short adjacent cues into longer sentences.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to a YAML config file")
}
