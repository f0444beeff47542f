// Package pipeline binds the cleaning and filtering stages to one language.
//
// Binding resolves the language's parameters, loads whatever optional
// resources the registry maps for it (stopword and badword lexicons, the
// language classifier, an n-gram model), and assembles the rewriter and
// check engine. Resource loads that fail are binding errors; resources that
// simply do not exist for the language are skipped and their checks pass
// unconditionally.
//
// A Binding is immutable after construction and safe for concurrent use, so
// one binding serves every worker of a filtering run.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chriscorrea/winnow/internal/corpus"
	"github.com/chriscorrea/winnow/internal/filter"
	"github.com/chriscorrea/winnow/internal/langid"
	"github.com/chriscorrea/winnow/internal/langs"
	"github.com/chriscorrea/winnow/internal/lexicon"
	"github.com/chriscorrea/winnow/internal/ngram"
	"github.com/chriscorrea/winnow/internal/params"
	"github.com/chriscorrea/winnow/internal/rewrite"
)

var _ filter.LineScorer = (*ngram.Model)(nil)

// Options configures a binding. Lang is required; nil tables fall back to
// the built-in defaults. A nil Detector is built on demand the first time a
// language actually needs classification, which keeps model loading out of
// runs that never use it.
type Options struct {
	Lang       string
	Params     *params.Table
	Registry   *langs.Table
	LexiconDir string
	ModelPath  string
	Detector   langid.Detector
	Logger     *slog.Logger
}

// Binding is the fully resolved pipeline for one language.
type Binding struct {
	lang     string
	cfg      params.FilterConfig
	rewriter *rewrite.Rewriter
	engine   *filter.Engine
}

// Bind resolves parameters and resources for a language and assembles its
// pipeline.
func Bind(opts Options) (*Binding, error) {
	if opts.Lang == "" {
		return nil, errors.New("language code required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	table := opts.Params
	if table == nil {
		table = params.DefaultTable()
	}
	registry := opts.Registry
	if registry == nil {
		registry = langs.Default()
	}

	cfg := table.ConfigFor(opts.Lang)
	if !table.Has(opts.Lang) {
		logger.Debug("no dedicated parameter entry, using default",
			slog.String("lang", opts.Lang))
	}

	entry, known := registry.Lookup(opts.Lang)
	if !known {
		logger.Warn("language not in registry, resource-backed checks will pass unconditionally",
			slog.String("lang", opts.Lang))
	}

	var res filter.Resources
	var err error
	res.Stopwords, err = lexicon.Find(opts.LexiconDir, "stopwords", entry.Stopwords)
	if err != nil {
		return nil, fmt.Errorf("loading stopword lexicon for %s: %w", opts.Lang, err)
	}
	res.Badwords, err = lexicon.Find(opts.LexiconDir, "badwords", entry.Badwords)
	if err != nil {
		return nil, fmt.Errorf("loading badword lexicon for %s: %w", opts.Lang, err)
	}

	if cfg.CheckLangID && entry.Classifier != "" {
		detector := opts.Detector
		if detector == nil {
			logger.Debug("building language detector")
			detector = langid.NewDetector()
		}
		identifier, err := langid.New(detector, registry)
		if err != nil {
			return nil, fmt.Errorf("binding language identifier: %w", err)
		}
		res.Identifier = identifier
	}

	if cfg.CheckPerplexity && entry.Model != "" && opts.ModelPath != "" {
		model, err := ngram.Load(opts.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("loading language model for %s: %w", opts.Lang, err)
		}
		logger.Debug("language model loaded",
			slog.String("path", opts.ModelPath),
			slog.Int("order", model.Order()),
			slog.Int("ngrams", model.Size()))
		res.Scorer = model
	}

	logger.Debug("pipeline bound",
		slog.String("lang", opts.Lang),
		slog.Bool("stopwords", res.Stopwords != nil),
		slog.Bool("badwords", res.Badwords != nil),
		slog.Bool("lang_id", res.Identifier != nil),
		slog.Bool("perplexity", res.Scorer != nil))

	return &Binding{
		lang:     opts.Lang,
		cfg:      cfg,
		rewriter: rewrite.New(cfg),
		engine:   filter.NewEngine(filter.Checks(opts.Lang, cfg, res)...),
	}, nil
}

// Lang returns the bound language code.
func (b *Binding) Lang() string {
	return b.lang
}

// Config returns the resolved parameter set.
func (b *Binding) Config() params.FilterConfig {
	return b.cfg
}

// Transform applies the word-level cleaning passes to the document text.
func (b *Binding) Transform(doc corpus.Document) corpus.Document {
	return doc.WithText(b.rewriter.Apply(doc.Text))
}

// Evaluate runs the check sequence against the document's stripped text.
func (b *Binding) Evaluate(doc corpus.Document) filter.Result {
	return b.engine.Evaluate(strings.TrimSpace(doc.Text))
}

// Keep reports whether the document survives every check.
func (b *Binding) Keep(doc corpus.Document) bool {
	return b.Evaluate(doc).Keep
}

// Process cleans the document and then judges the cleaned text, returning
// both. This is the unit of work a filtering run applies per document.
func (b *Binding) Process(doc corpus.Document) (corpus.Document, filter.Result) {
	cleaned := b.Transform(doc)
	return cleaned, b.Evaluate(cleaned)
}
