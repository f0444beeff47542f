package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/winnow/internal/config"
	"github.com/chriscorrea/winnow/internal/counter"
	"github.com/chriscorrea/winnow/internal/filter"
	"github.com/chriscorrea/winnow/internal/langs"
	"github.com/chriscorrea/winnow/internal/manifest"
	"github.com/chriscorrea/winnow/internal/params"
	"github.com/chriscorrea/winnow/internal/pipeline"
	"github.com/chriscorrea/winnow/internal/progress"
	"github.com/chriscorrea/winnow/internal/runner"
)

var filterJSON bool

var filterCmd = &cobra.Command{
	Use:   "filter --lang CODE [shards...]",
	Short: "Filter corpus shards against per-language quality thresholds",
	Long: `Filter cleans and judges every document in the given JSONL shards.

Each document is rewritten first (words carrying forbidden substrings and
overlong words are dropped), then checked in order: empty text, special
character ratio, stopword ratio, flagged-word ratio, language identity,
and perplexity. The first failing check rejects the document. Kept
documents are written to <out>/<lang>/ under their shard's name, and the
run tally is printed and recorded in the manifest.

Stopword and flagged-word lists are looked up in the lexicon directory,
n-gram models in the model directory; languages without a resource skip
the matching check.

Examples:
  winnow filter --lang en shards/part-000.jsonl
  winnow filter --lang fr --out corpus --models models/ shards/*.jsonl.gz
  winnow filter --lang zh --units characters shards/part-000.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilter,
}

func init() {
	defaults := config.Default()
	flags := filterCmd.Flags()

	flags.StringP("lang", "l", "", "language code selecting parameters and resources (required)")
	_ = filterCmd.MarkFlagRequired("lang")

	flags.String("params", defaults.Params, "filter parameter YAML (built-in table when empty)")
	flags.String("registry", defaults.Registry, "language registry YAML (built-in registry when empty)")
	flags.String("lexicons", defaults.LexiconDir, "directory holding stopwords/ and badwords/ word lists")
	flags.String("models", defaults.ModelDir, "directory holding <id>.arpa n-gram models")
	flags.StringP("out", "o", defaults.OutDir, "output directory for kept documents")
	flags.String("manifest", defaults.Manifest, "SQLite run manifest (empty to skip recording)")
	flags.Int("procs", defaults.Procs, "worker concurrency (0 = one per CPU)")
	flags.Int("batch-size", defaults.BatchSize, "documents dispatched per wave")
	flags.String("units", defaults.Units, "volume measure for kept text: tokens, words, or characters")
	flags.BoolVar(&filterJSON, "json", false, "emit the run report as JSON")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	lang, _ := cmd.Flags().GetString("lang")

	table := params.DefaultTable()
	if settings.Params != "" {
		if table, err = params.Load(settings.Params); err != nil {
			return fmt.Errorf("loading filter parameters: %w", err)
		}
	}

	registry := langs.Default()
	if settings.Registry != "" {
		if registry, err = langs.Load(settings.Registry); err != nil {
			return fmt.Errorf("loading language registry: %w", err)
		}
	}

	method, err := counter.ParseMethod(settings.Units)
	if err != nil {
		return err
	}
	units, err := counter.NewCounter(method)
	if err != nil {
		return err
	}

	binding, err := pipeline.Bind(pipeline.Options{
		Lang:       lang,
		Params:     table,
		Registry:   registry,
		LexiconDir: settings.LexiconDir,
		ModelPath:  modelPath(settings.ModelDir, registry, lang),
	})
	if err != nil {
		return fmt.Errorf("binding %s pipeline: %w", lang, err)
	}

	opts := runner.Options{
		Binding:   binding,
		OutDir:    settings.OutDir,
		Procs:     settings.Procs,
		BatchSize: settings.BatchSize,
		Counter:   units,
	}
	if !quiet && progress.Interactive(os.Stderr) {
		reporter := progress.New(ctx, os.Stderr, "winnowing")
		reporter.Start()
		defer reporter.Stop()
		opts.Progress = reporter
	}

	report, err := runner.Run(ctx, opts, args)
	if err != nil {
		return err
	}
	if opts.Progress != nil {
		// clear the progress line before printing the report
		opts.Progress.Stop()
	}

	if settings.Manifest != "" {
		if err := recordRun(ctx, settings.Manifest, report); err != nil {
			// the run itself succeeded; losing the history row is not fatal
			slog.Warn("recording run in manifest failed", "manifest", settings.Manifest, "error", err)
		}
	}

	if filterJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatReport(report))
	return nil
}

// modelPath resolves the n-gram model file for a language. An empty
// return means no model, which disables the perplexity check.
func modelPath(dir string, registry *langs.Table, lang string) string {
	if dir == "" {
		return ""
	}
	entry, ok := registry.Lookup(lang)
	if !ok || entry.Model == "" {
		return ""
	}
	for _, name := range []string{entry.Model + ".arpa", entry.Model + ".arpa.gz"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func recordRun(ctx context.Context, path string, report *runner.Report) error {
	st, err := manifest.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Record(ctx, report)
}

// formatReport renders a run tally for the terminal.
func formatReport(r *runner.Report) string {
	var b strings.Builder

	keptPct := 0.0
	if r.Read > 0 {
		keptPct = 100 * float64(r.Kept) / float64(r.Read)
	}

	fmt.Fprintf(&b, "run %s (%s)\n", r.ID, r.Lang)
	fmt.Fprintf(&b, "  shards:    %d\n", len(r.Shards))
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
	fmt.Fprintf(&b, "  elapsed:   %s\n", r.Finished.Sub(r.Started).Round(time.Millisecond))

	return b.String()
}
