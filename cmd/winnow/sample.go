package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/winnow/internal/sample"
)

var (
	sampleQuery string
	sampleLimit int
	sampleWidth int
)

var sampleCmd = &cobra.Command{
	Use:   "sample --query TEXT SHARD",
	Short: "Spot-check a shard by ranking its documents against a query",
	Long: `Sample ranks the documents of one shard against a query with BM25
scoring and prints the best matches, one snippet per line. Useful for
eyeballing what a filtering run kept.

Examples:
  winnow sample --query "carrot cake" filtered/en/part-000.jsonl
  winnow sample --query recette --limit 10 filtered/fr/part-000.jsonl.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleQuery, "query", "", "query text (required)")
	_ = sampleCmd.MarkFlagRequired("query")
	sampleCmd.Flags().IntVarP(&sampleLimit, "limit", "n", 5, "maximum matches to print")
	sampleCmd.Flags().IntVar(&sampleWidth, "width", 100, "snippet width in characters (0 for full text)")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	matches, err := sample.Search(cmd.Context(), args[0], sampleQuery, sample.Options{
		Limit: sampleLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "no matches")
		return nil
	}
	for i, m := range matches {
		fmt.Fprintf(out, "%2d. %7.3f  #%-6d %s\n", i+1, m.Score, m.Index, sample.Snippet(m.Text, sampleWidth))
	}
	return nil
}
