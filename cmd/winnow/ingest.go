package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/winnow/internal/corpus"
	"github.com/chriscorrea/winnow/internal/ingest"
)

var (
	ingestOut        string
	ingestSelector   string
	ingestAll        bool
	ingestMarkdown   bool
	ingestKeepChrome bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest --out FILE [sources...]",
	Short: "Harvest web pages or files into a corpus shard",
	Long: `Ingest fetches each source, extracts its readable text, trims
boilerplate paragraphs, and appends the result to a JSONL shard ready
for filtering. Sources may be URLs, local files, or - for standard
input; with no sources, standard input is read.

Examples:
  winnow ingest --out raw/pages.jsonl https://example.com/article
  winnow ingest --out raw/pages.jsonl --selector article saved/*.html
  cat page.html | winnow ingest --out raw/pages.jsonl`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "harvest.jsonl", "output shard (.gz compresses)")
	ingestCmd.Flags().StringVarP(&ingestSelector, "selector", "s", "", "CSS selector overriding readability extraction")
	ingestCmd.Flags().BoolVarP(&ingestAll, "include-all", "i", false, "take whole pages without readability filtering")
	ingestCmd.Flags().BoolVar(&ingestMarkdown, "md", false, "preserve structure as Markdown instead of plain text")
	ingestCmd.Flags().BoolVar(&ingestKeepChrome, "keep-chrome", false, "skip boilerplate paragraph trimming")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	w, err := corpus.Create(ingestOut)
	if err != nil {
		return err
	}

	stats, err := ingest.Build(cmd.Context(), sources, w, ingest.Options{
		Selector:   ingestSelector,
		All:        ingestAll,
		Markdown:   ingestMarkdown,
		KeepChrome: ingestKeepChrome,
		Logger:     slog.Default(),
	})
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing shard %s: %w", ingestOut, err)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatStats(stats, ingestOut))
	return nil
}

// formatStats renders a harvest tally for the terminal.
func formatStats(s *ingest.Stats, out string) string {
	line := fmt.Sprintf("harvested %d of %d sources into %s", s.Harvested, s.Sources, out)
	if s.Failed > 0 {
		line += fmt.Sprintf(", %d failed", s.Failed)
	}
	if s.Skipped > 0 {
		line += fmt.Sprintf(", %d empty", s.Skipped)
	}
	return line + "\n"
}
