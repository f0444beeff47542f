package sample_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/winnow/internal/corpus"
	"github.com/chriscorrea/winnow/internal/sample"
)

func writeShard(t *testing.T, texts []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shard.jsonl")
	w, err := corpus.Create(path)
	if err != nil {
		t.Fatalf("creating shard: %v", err)
	}
	for _, text := range texts {
		if err := w.Write(corpus.Document{Text: text}); err != nil {
			t.Fatalf("writing document: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing shard: %v", err)
	}
	return path
}

var bakeryDocs = []string{
	"Every village baker keeps a sourdough culture alive, feeding the sourdough daily and shaping the sourdough into long loaves.",
	"A quick flatbread needs no fermentation at all, just flour and water on a hot griddle.",
	"The bakery sells one sourdough loaf each morning beside trays of plain rolls.",
	"Mountain trails wind past the old observatory above the village.",
}

func TestSearch(t *testing.T) {
	shard := writeShard(t, bakeryDocs)

	matches, err := sample.Search(context.Background(), shard, "sourdough", sample.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Index != 0 || matches[1].Index != 2 {
		t.Errorf("match order = [%d, %d], want [0, 2]", matches[0].Index, matches[1].Index)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores not descending: %f then %f", matches[0].Score, matches[1].Score)
	}
	for _, m := range matches {
		if m.Score <= 0 {
			t.Errorf("match %d has non-positive score %f", m.Index, m.Score)
		}
	}
	if !strings.Contains(matches[0].Text, "keeps a sourdough culture") {
		t.Errorf("top match text = %q, expected the culture document", matches[0].Text)
	}
}

func TestSearchLimit(t *testing.T) {
	shard := writeShard(t, bakeryDocs)

	matches, err := sample.Search(context.Background(), shard, "sourdough", sample.Options{Limit: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match with Limit 1, got %d", len(matches))
	}
	if matches[0].Index != 0 {
		t.Errorf("top match index = %d, want 0", matches[0].Index)
	}
}

func TestSearchNoMatches(t *testing.T) {
	shard := writeShard(t, bakeryDocs)

	matches, err := sample.Search(context.Background(), shard, "zeppelin", sample.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	shard := writeShard(t, bakeryDocs)

	if _, err := sample.Search(context.Background(), shard, "", sample.Options{}); err == nil {
		t.Error("empty query should fail")
	}
	if _, err := sample.Search(context.Background(), shard, "   ", sample.Options{}); err == nil {
		t.Error("blank query should fail")
	}
}

func TestSearchMissingShard(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.jsonl")
	if _, err := sample.Search(context.Background(), missing, "sourdough", sample.Options{}); err == nil {
		t.Error("missing shard should fail")
	}
}

func TestSearchSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shard.jsonl")
	raw := `{"text": "the sourdough culture bubbled overnight"}
{not json at all
{"text": "plain rolls cooled on the rack"}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("writing shard: %v", err)
	}

	matches, err := sample.Search(context.Background(), path, "sourdough", sample.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Index != 0 {
		t.Errorf("match index = %d, want 0", matches[0].Index)
	}
}

func TestSearchCanceled(t *testing.T) {
	shard := writeShard(t, bakeryDocs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sample.Search(ctx, shard, "sourdough", sample.Options{}); err == nil {
		t.Error("canceled context should fail")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{
			name:     "short text unchanged",
			text:     "a small loaf",
			width:    40,
			expected: "a small loaf",
		},
		{
			name:     "long text truncated",
			text:     "the oven door opened and heat rolled out across the narrow kitchen",
			width:    20,
			expected: "the oven door opened...",
		},
		{
			name:     "multiline flattened",
			text:     "first line\nsecond line\n\nthird line",
			width:    0,
			expected: "first line second line third line",
		},
		{
			name:     "extra whitespace collapsed",
			text:     "  spaced   out \t words  ",
			width:    0,
			expected: "spaced out words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sample.Snippet(tt.text, tt.width)
			if got != tt.expected {
				t.Errorf("Snippet() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
