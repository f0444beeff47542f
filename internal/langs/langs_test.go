package langs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLookup(t *testing.T) {
	table := Default()

	tests := []struct {
		name       string
		code       string
		found      bool
		stopwords  string
		classifier string
	}{
		{
			name:       "english carries every resource",
			code:       "en",
			found:      true,
			stopwords:  "english",
			classifier: "eng",
		},
		{
			name:       "norwegian bokmal maps to the shared stopword list",
			code:       "nb",
			found:      true,
			stopwords:  "norwegian",
			classifier: "nob",
		},
		{
			name:       "afrikaans has no lexicons",
			code:       "af",
			found:      true,
			stopwords:  "",
			classifier: "afr",
		},
		{
			name:  "unregistered code",
			code:  "xx",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := table.Lookup(tt.code)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v, expected %v", tt.code, ok, tt.found)
			}
			if !tt.found {
				return
			}
			if e.Stopwords != tt.stopwords {
				t.Errorf("stopwords id = %q, expected %q", e.Stopwords, tt.stopwords)
			}
			if e.Classifier != tt.classifier {
				t.Errorf("classifier label = %q, expected %q", e.Classifier, tt.classifier)
			}
		})
	}
}

func TestCodeForLabel(t *testing.T) {
	table := Default()

	tests := []struct {
		name  string
		label string
		code  string
		found bool
	}{
		{name: "english", label: "eng", code: "en", found: true},
		{name: "chinese", label: "zho", code: "zh", found: true},
		{name: "bokmal keeps its own label", label: "nob", code: "nb", found: true},
		{name: "unknown label", label: "xxx", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := table.CodeForLabel(tt.label)
			if ok != tt.found {
				t.Fatalf("CodeForLabel(%q) found = %v, expected %v", tt.label, ok, tt.found)
			}
			if tt.found && code != tt.code {
				t.Errorf("CodeForLabel(%q) = %q, expected %q", tt.label, code, tt.code)
			}
		})
	}
}

func TestDefaultLabelsAreComplete(t *testing.T) {
	// every entry with a classifier label must resolve back to its own code
	table := Default()
	for _, e := range defaultEntries {
		if e.Classifier == "" {
			continue
		}
		code, ok := table.CodeForLabel(e.Classifier)
		if !ok {
			t.Errorf("label %q not resolvable", e.Classifier)
			continue
		}
		if code != e.Code {
			t.Errorf("label %q resolves to %q, expected %q", e.Classifier, code, e.Code)
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name: "duplicate code",
			entries: []Entry{
				{Code: "en", Classifier: "eng"},
				{Code: "en", Classifier: "enm"},
			},
		},
		{
			name: "duplicate classifier label",
			entries: []Entry{
				{Code: "en", Classifier: "eng"},
				{Code: "em", Classifier: "eng"},
			},
		},
		{
			name:    "empty code",
			entries: []Entry{{Code: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entries); err == nil {
				t.Fatal("expected constructor error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	yml := `
- code: en
  stopwords: english
  badwords: en
  classifier: eng
  model: en
- code: zz
  classifier: zzz
`
	dir := t.TempDir()
	path := filepath.Join(dir, "langs.yml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", table.Len())
	}
	e, ok := table.Lookup("zz")
	if !ok {
		t.Fatal("custom entry not found")
	}
	if e.Stopwords != "" || e.Model != "" {
		t.Errorf("blank resource ids expected, got %+v", e)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
