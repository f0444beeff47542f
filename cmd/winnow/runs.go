package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/winnow/internal/config"
	"github.com/chriscorrea/winnow/internal/filter"
	"github.com/chriscorrea/winnow/internal/manifest"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recorded filtering runs",
	Long: `Runs lists the filtering runs recorded in the manifest, newest first.
Given a run id it prints that run's full tally, including the per-check
drop breakdown.

Examples:
  winnow runs
  winnow runs --limit 50
  winnow runs 6e1f2b8a-4c62-4f7e-9d3a-0b8f6f2f9a11`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	defaults := config.Default()
	runsCmd.Flags().String("manifest", defaults.Manifest, "SQLite run manifest to read")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if settings.Manifest == "" {
		return fmt.Errorf("no manifest configured")
	}

	st, err := manifest.Open(ctx, settings.Manifest)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		summary, err := st.Run(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatSummary(summary))
		return nil
	}

	runs, err := st.Runs(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-5s  %-16s  %8s  %8s  %8s\n",
		"ID", "LANG", "STARTED", "READ", "KEPT", "DROPPED")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-5s  %-16s  %8d  %8d  %8d\n",
			r.ID, r.Lang, r.Started.UTC().Format("2006-01-02 15:04"),
			r.Read, r.Kept, r.Dropped)
	}
	return nil
}

// formatSummary renders one manifest row in full.
func formatSummary(r *manifest.RunSummary) string {
	var b strings.Builder

	keptPct := 0.0
	if r.Read > 0 {
		keptPct = 100 * float64(r.Kept) / float64(r.Read)
	}

	fmt.Fprintf(&b, "run %s (%s)\n", r.ID, r.Lang)
	fmt.Fprintf(&b, "  started:   %s\n", r.Started.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "  finished:  %s\n", r.Finished.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "  shards:    %d\n", r.Shards)
	fmt.Fprintf(&b, "  read:      %d\n", r.Read)
	fmt.Fprintf(&b, "  kept:      %d (%.1f%%)\n", r.Kept, keptPct)
	fmt.Fprintf(&b, "  dropped:   %d\n", r.Dropped)
	if r.Malformed > 0 {
		fmt.Fprintf(&b, "  malformed: %d\n", r.Malformed)
	}
	if r.Units != "" {
		fmt.Fprintf(&b, "  kept %s: %d\n", r.Units, r.KeptUnits)
	}
	if len(r.DroppedBy) > 0 {
		b.WriteString("  dropped by:\n")
		for kind := filter.KindEmpty; kind <= filter.KindPerplexity; kind++ {
			if n, ok := r.DroppedBy[kind.String()]; ok {
				fmt.Fprintf(&b, "    %-14s %d\n", kind.String(), n)
			}
		}
	}

	return b.String()
}
