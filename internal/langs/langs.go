// Package langs is the registry tying pipeline language codes to the ids of
// the per-language resources: stopword lexicon, badword lexicon, classifier
// label, and n-gram model. An empty id means the resource does not exist for
// that language and the corresponding check will pass unconditionally.
//
// The built-in table covers every language the classifier can emit, so label
// resolution during language identification can never miss. Custom tables
// loaded from YAML are validated the same way at setup.
package langs

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry describes the resources known for one language.
type Entry struct {
	// Code is the pipeline language code, ISO 639-1 where one exists.
	Code string `yaml:"code"`
	// Stopwords names the stopword lexicon, empty when none is published.
	Stopwords string `yaml:"stopwords,omitempty"`
	// Badwords names the badword lexicon, empty when none is published.
	Badwords string `yaml:"badwords,omitempty"`
	// Classifier is the label the language classifier emits for this
	// language, empty when the classifier cannot identify it.
	Classifier string `yaml:"classifier,omitempty"`
	// Model names the n-gram language model, empty when none is trained.
	Model string `yaml:"model,omitempty"`
}

// Table resolves language codes and classifier labels to registry entries.
type Table struct {
	byCode  map[string]Entry
	byLabel map[string]string
}

// New builds a table from entries, indexing them by code and by classifier
// label. Duplicate codes or labels are rejected.
func New(entries []Entry) (*Table, error) {
	byCode := make(map[string]Entry, len(entries))
	byLabel := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Code == "" {
			return nil, errors.New("language entry with empty code")
		}
		if _, dup := byCode[e.Code]; dup {
			return nil, fmt.Errorf("duplicate language code %q", e.Code)
		}
		byCode[e.Code] = e
		if e.Classifier == "" {
			continue
		}
		if prev, dup := byLabel[e.Classifier]; dup {
			return nil, fmt.Errorf("classifier label %q claimed by both %q and %q", e.Classifier, prev, e.Code)
		}
		byLabel[e.Classifier] = e.Code
	}
	return &Table{byCode: byCode, byLabel: byLabel}, nil
}

// Load reads a registry from a YAML file holding a list of entries.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading language registry: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing language registry %s: %w", path, err)
	}
	t, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("language registry %s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the entry for a pipeline language code.
func (t *Table) Lookup(code string) (Entry, bool) {
	e, ok := t.byCode[code]
	return e, ok
}

// CodeForLabel maps a classifier label back to its pipeline language code.
func (t *Table) CodeForLabel(label string) (string, bool) {
	code, ok := t.byLabel[label]
	return code, ok
}

// Len reports the number of registered languages.
func (t *Table) Len() int {
	return len(t.byCode)
}
