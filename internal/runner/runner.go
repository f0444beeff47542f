// Package runner drives filtering runs. It streams documents out of corpus
// shards, fans per-document cleaning and judging across a bounded worker
// pool, writes survivors to the output layout, and tallies what happened to
// everything else.
//
// Work is batched: each batch is processed concurrently, then written out
// in input order, so output shards preserve the document order of their
// inputs. Malformed records are counted and skipped; I/O failures abort
// the run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/chriscorrea/winnow/internal/corpus"
	"github.com/chriscorrea/winnow/internal/counter"
	"github.com/chriscorrea/winnow/internal/filter"
	"github.com/chriscorrea/winnow/internal/pipeline"
	"github.com/chriscorrea/winnow/internal/progress"
)

const defaultBatchSize = 256

// Options configures a filtering run.
type Options struct {
	// Binding is the language pipeline applied to every document.
	Binding *pipeline.Binding
	// OutDir is the output root; kept documents land in OutDir/<lang>/.
	OutDir string
	// Procs bounds worker concurrency; zero means one worker per CPU.
	Procs int
	// BatchSize is the number of documents processed per dispatch wave.
	BatchSize int
	// Counter, when set, measures the volume of kept text.
	Counter counter.Counter
	// Progress, when set, receives live counts.
	Progress *progress.Reporter
	Logger   *slog.Logger
}

// ShardReport tallies one input shard.
type ShardReport struct {
	Shard     string         `json:"shard"`
	Output    string         `json:"output"`
	Read      int            `json:"read"`
	Kept      int            `json:"kept"`
	Dropped   int            `json:"dropped"`
	Malformed int            `json:"malformed"`
	KeptUnits int            `json:"kept_units,omitempty"`
	DroppedBy map[string]int `json:"dropped_by,omitempty"`
}

// Report tallies a whole run.
type Report struct {
	ID        string         `json:"id"`
	Lang      string         `json:"lang"`
	Started   time.Time      `json:"started"`
	Finished  time.Time      `json:"finished"`
	Shards    []ShardReport  `json:"shards"`
	Read      int            `json:"read"`
	Kept      int            `json:"kept"`
	Dropped   int            `json:"dropped"`
	Malformed int            `json:"malformed"`
	DroppedBy map[string]int `json:"dropped_by,omitempty"`
	// KeptUnits is the volume of surviving text in Units.
	KeptUnits int    `json:"kept_units,omitempty"`
	Units     string `json:"units,omitempty"`
}

// Run filters every shard through the binding and returns the tally.
// Shards are processed sequentially; documents within a shard are processed
// concurrently in order-preserving batches.
func Run(ctx context.Context, opts Options, shards []string) (*Report, error) {
	if opts.Binding == nil {
		return nil, errors.New("runner: binding required")
	}
	if len(shards) == 0 {
		return nil, errors.New("runner: no input shards")
	}
	if opts.OutDir == "" {
		return nil, errors.New("runner: output directory required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	procs := opts.Procs
	if procs <= 0 {
		procs = runtime.NumCPU()
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	lang := opts.Binding.Lang()
	outDir := filepath.Join(opts.OutDir, lang)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := &Report{
		ID:        uuid.NewString(),
		Lang:      lang,
		Started:   time.Now().UTC(),
		DroppedBy: make(map[string]int),
	}
	if opts.Counter != nil {
		report.Units = opts.Counter.Name()
	}

	logger.Info("run started",
		slog.String("run", report.ID),
		slog.String("lang", lang),
		slog.Int("shards", len(shards)),
		slog.Int("procs", procs))

	for _, shard := range shards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sr, err := processShard(ctx, opts, procs, batchSize, logger, shard, outDir)
		if err != nil {
			return nil, fmt.Errorf("shard %s: %w", shard, err)
		}
		report.Shards = append(report.Shards, *sr)
		report.Read += sr.Read
		report.Kept += sr.Kept
		report.Dropped += sr.Dropped
		report.Malformed += sr.Malformed
		report.KeptUnits += sr.KeptUnits
		for name, n := range sr.DroppedBy {
			report.DroppedBy[name] += n
		}
	}
	report.Finished = time.Now().UTC()

	logger.Info("run finished",
		slog.String("run", report.ID),
		slog.Int("read", report.Read),
		slog.Int("kept", report.Kept),
		slog.Int("dropped", report.Dropped),
		slog.Int("malformed", report.Malformed))
	return report, nil
}

type outcome struct {
	doc corpus.Document
	res filter.Result
}

func processShard(ctx context.Context, opts Options, procs, batchSize int, logger *slog.Logger, shard, outDir string) (*ShardReport, error) {
	in, err := corpus.Open(shard)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	outPath := filepath.Join(outDir, filepath.Base(shard))
	out, err := corpus.Create(outPath)
	if err != nil {
		return nil, err
	}

	sr := &ShardReport{
		Shard:     shard,
		Output:    outPath,
		DroppedBy: make(map[string]int),
	}
	if opts.Progress != nil {
		opts.Progress.StartShard(filepath.Base(shard))
	}
	logger.Debug("shard started", slog.String("shard", shard))

	results := make([]outcome, batchSize)
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return nil, err
		}

		batch, readErr := readBatch(in, batchSize, sr, logger, shard)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			out.Close()
			return nil, readErr
		}
		if len(batch) > 0 {
			if err := processBatch(ctx, opts, procs, batch, results[:len(batch)]); err != nil {
				out.Close()
				return nil, err
			}
			kept := 0
			for _, o := range results[:len(batch)] {
				if !o.res.Keep {
					sr.Dropped++
					sr.DroppedBy[o.res.Failed.String()]++
					continue
				}
				if err := out.Write(o.doc); err != nil {
					out.Close()
					return nil, fmt.Errorf("writing output: %w", err)
				}
				sr.Kept++
				kept++
				if opts.Counter != nil {
					sr.KeptUnits += opts.Counter.Count(o.doc.Text)
				}
			}
			sr.Read += len(batch)
			if opts.Progress != nil {
				opts.Progress.Add(len(batch), kept)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing output: %w", err)
	}
	logger.Debug("shard finished",
		slog.String("shard", shard),
		slog.Int("read", sr.Read),
		slog.Int("kept", sr.Kept),
		slog.Int("dropped", sr.Dropped),
		slog.Int("malformed", sr.Malformed))
	return sr, nil
}

// readBatch pulls up to size documents, counting and skipping malformed
// records. It returns io.EOF (possibly with a partial batch) at end of
// shard.
func readBatch(in *corpus.File, size int, sr *ShardReport, logger *slog.Logger, shard string) ([]corpus.Document, error) {
	batch := make([]corpus.Document, 0, size)
	for len(batch) < size {
		doc, err := in.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return batch, io.EOF
			}
			if errors.Is(err, corpus.ErrBadRecord) {
				sr.Malformed++
				logger.Warn("skipping malformed record",
					slog.String("shard", shard),
					slog.String("error", err.Error()))
				continue
			}
			return nil, err
		}
		batch = append(batch, doc)
	}
	return batch, nil
}

// processBatch fans the batch across the worker pool; results land at the
// index of their source document, preserving order.
func processBatch(ctx context.Context, opts Options, procs int, batch []corpus.Document, results []outcome) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(procs)
	for i := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, res := opts.Binding.Process(batch[i])
			results[i] = outcome{doc: doc, res: res}
			return nil
		})
	}
	return g.Wait()
}
