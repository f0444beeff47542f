// Package langid adapts the statistical language detector to the pipeline's
// language codes. The detector reports languages under its own labels;
// this package resolves every label the detector could possibly emit
// through the language registry once, at construction, so an unmappable
// label is a setup error rather than a surprise deep in a filtering run.
package langid

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/chriscorrea/winnow/internal/langs"
)

// Detector is the slice of the statistical detector the identifier needs.
// The production implementation is built by NewDetector; tests substitute
// fixed-answer fakes.
type Detector interface {
	DetectLanguageOf(text string) (lingua.Language, bool)
	ComputeLanguageConfidence(text string, language lingua.Language) float64
}

// NewDetector builds the full multi-language detector with its models
// loaded eagerly. Construction is expensive and the result is safe for
// concurrent use, so callers should build one and share it.
func NewDetector() Detector {
	return lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithPreloadedLanguageModels().
		Build()
}

// Identifier classifies text and reports pipeline language codes.
type Identifier struct {
	detector Detector
	codes    map[lingua.Language]string
}

// New builds an identifier over a detector, resolving every language the
// detector can emit to its pipeline code via the registry. A label with no
// registry entry is an error.
func New(detector Detector, table *langs.Table) (*Identifier, error) {
	codes := make(map[lingua.Language]string)
	for _, l := range lingua.AllLanguages() {
		label := strings.ToLower(l.IsoCode639_3().String())
		code, ok := table.CodeForLabel(label)
		if !ok {
			return nil, fmt.Errorf("classifier label %q has no language registry entry", label)
		}
		codes[l] = code
	}
	return &Identifier{detector: detector, codes: codes}, nil
}

// Identify returns the pipeline code of the detected language and the
// detector's confidence. When the detector cannot settle on any language
// the code is empty and the confidence zero, which no expected-language
// comparison will match.
func (id *Identifier) Identify(text string) (string, float64) {
	lang, ok := id.detector.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}
	confidence := id.detector.ComputeLanguageConfidence(text, lang)
	return id.codes[lang], confidence
}
