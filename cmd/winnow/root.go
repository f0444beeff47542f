package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/winnow/version"
)

var (
	cfgFile string
	debug   bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "winnow",
	Short: "Quality filtering for multilingual web-text corpora",
	Long: `Winnow prepares web-scraped text for corpus construction. Documents in
JSONL shards are first cleaned of junk words, then judged against
per-language thresholds: special-character density, stopword coverage,
flagged vocabulary, language identity, and perplexity under an n-gram
model. Survivors are written shard by shard; every run is tallied and
recorded.

Examples:
  winnow filter --lang en shards/part-000.jsonl shards/part-001.jsonl
  winnow ingest --out raw/pages.jsonl https://example.com/article
  winnow sample --query "carrot cake" filtered/en/part-000.jsonl
  winnow runs`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./winnow.yaml or ~/.winnow/winnow.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	// configure logging before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger(debug)
	}
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
