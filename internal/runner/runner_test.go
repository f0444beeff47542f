package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/chriscorrea/winnow/internal/corpus"
	"github.com/chriscorrea/winnow/internal/counter"
	"github.com/chriscorrea/winnow/internal/params"
	"github.com/chriscorrea/winnow/internal/pipeline"
)

func testBinding(t *testing.T) *pipeline.Binding {
	t.Helper()
	table, err := params.New(map[string]params.FilterConfig{
		params.DefaultLang: {
			DropWordsWithSubstrings: true,
			ForbiddenSubstrings:     []string{"http"},
			CheckEmpty:              true,
			CheckSpecialChars:       true,
			SpecialChars:            "!@#",
			SpecialCharsCutoff:      0.3,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := pipeline.Bind(pipeline.Options{Lang: "en", Params: table})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testShard = `{"text":"the quick brown fox jumps over the lazy dog","id":1}
{"text":"   "}
not valid json
{"text":"@@@ ### !!! @@@","id":2}
{"text":"keep this http://bad.example line","id":3}
`

func writeShard(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readTexts(t *testing.T, path string) []string {
	t.Helper()
	f, err := corpus.Open(path)
	if err != nil {
		t.Fatalf("opening output shard: %v", err)
	}
	defer f.Close()
	var texts []string
	for {
		doc, err := f.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		texts = append(texts, doc.Text)
	}
	return texts
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	shard := writeShard(t, dir, "shard-000.jsonl", testShard)
	outDir := filepath.Join(dir, "out")

	opts := Options{
		Binding:   testBinding(t),
		OutDir:    outDir,
		Procs:     4,
		BatchSize: 2, // force several dispatch waves
		Counter:   counter.NewWordCounter(),
		Logger:    quietLogger(),
	}
	report, err := Run(context.Background(), opts, []string{shard})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if report.ID == "" {
		t.Error("report must carry a run id")
	}
	if report.Lang != "en" {
		t.Errorf("Lang = %q", report.Lang)
	}
	if report.Read != 4 {
		t.Errorf("Read = %d, expected 4", report.Read)
	}
	if report.Kept != 2 {
		t.Errorf("Kept = %d, expected 2", report.Kept)
	}
	if report.Dropped != 2 {
		t.Errorf("Dropped = %d, expected 2", report.Dropped)
	}
	if report.Malformed != 1 {
		t.Errorf("Malformed = %d, expected 1", report.Malformed)
	}
	if report.DroppedBy["empty"] != 1 || report.DroppedBy["special_chars"] != 1 {
		t.Errorf("DroppedBy = %v", report.DroppedBy)
	}
	// nine words in the first kept document, three in the cleaned second
	if report.KeptUnits != 12 {
		t.Errorf("KeptUnits = %d, expected 12", report.KeptUnits)
	}
	if report.Units != "words" {
		t.Errorf("Units = %q, expected %q", report.Units, "words")
	}
	if report.Finished.Before(report.Started) {
		t.Error("Finished precedes Started")
	}

	// output lands under <out>/<lang>/ and preserves input order
	outPath := filepath.Join(outDir, "en", "shard-000.jsonl")
	texts := readTexts(t, outPath)
	if len(texts) != 2 {
		t.Fatalf("output has %d documents, expected 2", len(texts))
	}
	if texts[0] != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("first kept text = %q", texts[0])
	}
	if texts[1] != "keep this line" {
		t.Errorf("second kept text = %q, expected the cleaned form", texts[1])
	}
}

func TestRunPreservesMetadata(t *testing.T) {
	dir := t.TempDir()
	shard := writeShard(t, dir, "meta.jsonl",
		`{"text":"perfectly ordinary text","id":42,"source":{"url":"https://example.org"}}`+"\n")
	outDir := filepath.Join(dir, "out")

	opts := Options{Binding: testBinding(t), OutDir: outDir, Logger: quietLogger()}
	if _, err := Run(context.Background(), opts, []string{shard}); err != nil {
		t.Fatal(err)
	}

	f, err := corpus.Open(filepath.Join(outDir, "en", "meta.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := f.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(doc.Meta["id"]) != "42" {
		t.Errorf("id metadata = %s", doc.Meta["id"])
	}
	if string(doc.Meta["source"]) != `{"url":"https://example.org"}` {
		t.Errorf("source metadata = %s", doc.Meta["source"])
	}
}

func TestRunGzipShards(t *testing.T) {
	dir := t.TempDir()
	// write a gzip input shard through the corpus writer
	inPath := filepath.Join(dir, "packed.jsonl.gz")
	fw, err := corpus.Create(inPath)
	if err != nil {
		t.Fatal(err)
	}
	docs := []string{"first ordinary document", "second ordinary document"}
	for _, text := range docs {
		if err := fw.Write(corpus.Document{Text: text}); err != nil {
			t.Fatal(err)
		}
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	opts := Options{Binding: testBinding(t), OutDir: outDir, Logger: quietLogger()}
	report, err := Run(context.Background(), opts, []string{inPath})
	if err != nil {
		t.Fatal(err)
	}
	if report.Kept != 2 {
		t.Errorf("Kept = %d, expected 2", report.Kept)
	}

	texts := readTexts(t, filepath.Join(outDir, "en", "packed.jsonl.gz"))
	if len(texts) != 2 || texts[0] != docs[0] || texts[1] != docs[1] {
		t.Errorf("texts = %v", texts)
	}
}

func TestRunMultipleShards(t *testing.T) {
	dir := t.TempDir()
	shard1 := writeShard(t, dir, "a.jsonl", `{"text":"good text one"}`+"\n")
	shard2 := writeShard(t, dir, "b.jsonl", `{"text":"good text two"}`+"\n"+`{"text":""}`+"\n")
	outDir := filepath.Join(dir, "out")

	opts := Options{Binding: testBinding(t), OutDir: outDir, Logger: quietLogger()}
	report, err := Run(context.Background(), opts, []string{shard1, shard2})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Shards) != 2 {
		t.Fatalf("Shards = %d, expected 2", len(report.Shards))
	}
	if report.Read != 3 || report.Kept != 2 || report.Dropped != 1 {
		t.Errorf("totals read=%d kept=%d dropped=%d", report.Read, report.Kept, report.Dropped)
	}
	if report.Shards[0].Shard != shard1 || report.Shards[1].Shard != shard2 {
		t.Error("shard reports out of order")
	}
}

func TestRunMissingShardFails(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Binding: testBinding(t),
		OutDir:  filepath.Join(dir, "out"),
		Logger:  quietLogger(),
	}
	if _, err := Run(context.Background(), opts, []string{filepath.Join(dir, "absent.jsonl")}); err == nil {
		t.Fatal("expected error for missing input shard")
	}
}

func TestRunCanceledContext(t *testing.T) {
	dir := t.TempDir()
	shard := writeShard(t, dir, "a.jsonl", `{"text":"good text"}`+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{
		Binding: testBinding(t),
		OutDir:  filepath.Join(dir, "out"),
		Logger:  quietLogger(),
	}
	if _, err := Run(ctx, opts, []string{shard}); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestRunValidation(t *testing.T) {
	b := testBinding(t)
	tests := []struct {
		name   string
		opts   Options
		shards []string
	}{
		{
			name:   "missing binding",
			opts:   Options{OutDir: "out"},
			shards: []string{"x.jsonl"},
		},
		{
			name:   "no shards",
			opts:   Options{Binding: b, OutDir: "out"},
			shards: nil,
		},
		{
			name:   "missing output dir",
			opts:   Options{Binding: b},
			shards: []string{"x.jsonl"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.opts, tt.shards); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
