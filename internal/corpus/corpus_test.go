package corpus

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	input := `{"text":"hello world","url":"https://example.org","nested":{"a":[1,2]},"score":0.5}`

	var doc Document
	if err := doc.UnmarshalJSON([]byte(input)); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if doc.Text != "hello world" {
		t.Errorf("Text = %q, expected %q", doc.Text, "hello world")
	}
	if len(doc.Meta) != 3 {
		t.Errorf("Meta has %d fields, expected 3", len(doc.Meta))
	}
	if string(doc.Meta["nested"]) != `{"a":[1,2]}` {
		t.Errorf("nested metadata not preserved byte for byte: %s", doc.Meta["nested"])
	}

	out, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var again Document
	if err := again.UnmarshalJSON(out); err != nil {
		t.Fatalf("re-unmarshal error: %v", err)
	}
	if again.Text != doc.Text || len(again.Meta) != len(doc.Meta) {
		t.Errorf("round trip changed the document: %+v vs %+v", again, doc)
	}
}

func TestDocumentMissingText(t *testing.T) {
	var doc Document
	if err := doc.UnmarshalJSON([]byte(`{"url":"x"}`)); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("Text = %q, expected empty", doc.Text)
	}
	if len(doc.Meta) != 1 {
		t.Errorf("Meta has %d fields, expected 1", len(doc.Meta))
	}
}

func TestDocumentBadText(t *testing.T) {
	var doc Document
	if err := doc.UnmarshalJSON([]byte(`{"text":42}`)); err == nil {
		t.Fatal("expected error for non-string text field")
	}
}

func TestWithText(t *testing.T) {
	orig := Document{Text: "before", Meta: map[string]json.RawMessage{"k": json.RawMessage(`1`)}}
	next := orig.WithText("after")
	if next.Text != "after" {
		t.Errorf("Text = %q, expected %q", next.Text, "after")
	}
	if orig.Text != "before" {
		t.Error("WithText must not mutate the receiver")
	}
	if len(next.Meta) != 1 {
		t.Error("metadata must carry over")
	}
}

func TestReader(t *testing.T) {
	input := `{"text":"one"}

{"text":"two","id":1}
`
	r := NewReader(strings.NewReader(input))

	doc, err := r.Next()
	if err != nil {
		t.Fatalf("first Next() error: %v", err)
	}
	if doc.Text != "one" {
		t.Errorf("first doc Text = %q", doc.Text)
	}

	doc, err = r.Next()
	if err != nil {
		t.Fatalf("second Next() error: %v", err)
	}
	if doc.Text != "two" {
		t.Errorf("second doc Text = %q", doc.Text)
	}

	if _, err = r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderBadRecord(t *testing.T) {
	input := "{\"text\":\"good\"}\nnot json at all\n{\"text\":\"also good\"}\n"
	r := NewReader(strings.NewReader(input))

	if _, err := r.Next(); err != nil {
		t.Fatalf("first record should decode: %v", err)
	}

	_, err := r.Next()
	if !errors.Is(err, ErrBadRecord) {
		t.Fatalf("expected ErrBadRecord, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}

	// the reader recovers and continues past the bad line
	doc, err := r.Next()
	if err != nil {
		t.Fatalf("reader did not recover after bad record: %v", err)
	}
	if doc.Text != "also good" {
		t.Errorf("post-recovery doc Text = %q", doc.Text)
	}
}

func TestWriterNoHTMLEscaping(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	if err := w.Write(Document{Text: "a <b> & c"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if strings.Contains(out, `<`) {
		t.Errorf("output %q must not HTML-escape text", out)
	}
	if !strings.Contains(out, "a <b> & c") {
		t.Errorf("output %q lost the original text", out)
	}
}

func TestShardFileRoundTrip(t *testing.T) {
	for _, name := range []string{"plain.jsonl", "packed.jsonl.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			fw, err := Create(path)
			if err != nil {
				t.Fatalf("Create() error: %v", err)
			}
			docs := []Document{
				{Text: "first"},
				{Text: "second", Meta: map[string]json.RawMessage{"id": json.RawMessage(`7`)}},
			}
			for _, d := range docs {
				if err := fw.Write(d); err != nil {
					t.Fatal(err)
				}
			}
			if err := fw.Close(); err != nil {
				t.Fatalf("Close() error: %v", err)
			}

			f, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
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
			if len(texts) != 2 || texts[0] != "first" || texts[1] != "second" {
				t.Errorf("texts = %v", texts)
			}
		})
	}
}

func TestOpenMissingShard(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatal("expected error for missing shard")
	}
}
