// Package sample ranks shard documents against a query so filter output
// can be spot-checked without grepping raw JSONL. Ranking uses BM25md
// field-weighted scoring over the document text.
package sample

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"

	"github.com/chriscorrea/winnow/internal/corpus"
)

// Match is one ranked document.
type Match struct {
	// Index is the document's position among the shard's readable
	// documents, zero-based.
	Index int
	// Score is the BM25md relevance score against the query.
	Score float64
	// Text is the full document text.
	Text string
}

// Options tune a search.
type Options struct {
	// Limit caps the number of matches returned; defaults to 5.
	Limit int
}

// Search reads a shard and returns the documents most relevant to the
// query, highest score first. Documents the query does not touch are
// omitted. Malformed records are skipped.
func Search(ctx context.Context, shard, query string, opts Options) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	texts, err := readTexts(ctx, shard)
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, nil
	}

	// build a BM25md corpus with default field weights
	ranker := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, text := range texts {
		fields := parser.ParseDocument(text)
		ranker.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   fields,
			Original: text,
		})
	}

	var matches []Match
	for i, text := range texts {
		score := ranker.Score(query, i)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Index: i, Score: score, Text: text})
	}

	// highest first
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// readTexts loads every document text in the shard, skipping records
// that fail to decode.
func readTexts(ctx context.Context, shard string) ([]string, error) {
	f, err := corpus.Open(shard)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := f.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, corpus.ErrBadRecord) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading shard %s: %w", shard, err)
		}
		texts = append(texts, doc.Text)
	}
	return texts, nil
}

// Snippet flattens text onto one line and truncates it to width runes
// for display. Non-positive widths return the whole flattened text.
func Snippet(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if width <= 0 {
		return flat
	}
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	return string(runes[:width]) + "..."
}
