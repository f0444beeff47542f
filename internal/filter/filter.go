// Package filter decides which documents of a web-scraped corpus are kept.
//
// A document passes through a fixed sequence of quality checks: empty text,
// special-character ratio, stopword ratio, badword ratio, language
// identification, and perplexity under an n-gram language model. Evaluation
// short-circuits on the first failing check and the verdict records which
// check rejected the document. Checks whose resources are not bound for the
// language (no lexicon, no classifier, no model) pass unconditionally, so a
// sparsely resourced language is filtered only by the checks it can
// actually support.
package filter

import (
	"github.com/chriscorrea/winnow/internal/lexicon"
	"github.com/chriscorrea/winnow/internal/norm"
	"github.com/chriscorrea/winnow/internal/params"
)

// Kind identifies one of the pipeline's checks.
type Kind int

const (
	// KindNone marks a verdict with no failing check.
	KindNone Kind = iota
	KindEmpty
	KindSpecialChars
	KindStopwords
	KindBadwords
	KindLangID
	KindPerplexity
)

// String returns the stable name used in reports and tallies.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEmpty:
		return "empty"
	case KindSpecialChars:
		return "special_chars"
	case KindStopwords:
		return "stopwords"
	case KindBadwords:
		return "badwords"
	case KindLangID:
		return "lang_id"
	case KindPerplexity:
		return "perplexity"
	default:
		return "unknown"
	}
}

// Check is one named predicate over document text. Pass reports whether the
// document survives this check.
type Check struct {
	Kind Kind
	Pass func(text string) bool
}

// Result is the verdict for one document.
type Result struct {
	Keep bool
	// Failed is the first check that rejected the document,
	// KindNone when the document was kept.
	Failed Kind
}

// Engine runs an ordered list of checks with short-circuit evaluation.
type Engine struct {
	checks []Check
}

// NewEngine builds an engine over the given checks, evaluated in order.
func NewEngine(checks ...Check) *Engine {
	return &Engine{checks: checks}
}

// Evaluate runs the checks against text, stopping at the first failure.
func (e *Engine) Evaluate(text string) Result {
	for _, c := range e.checks {
		if !c.Pass(text) {
			return Result{Keep: false, Failed: c.Kind}
		}
	}
	return Result{Keep: true, Failed: KindNone}
}

// Keep reports whether text survives every check.
func (e *Engine) Keep(text string) bool {
	return e.Evaluate(text).Keep
}

// Identifier classifies text, returning the pipeline code of the detected
// language and the classifier's confidence in that call.
type Identifier interface {
	Identify(text string) (code string, confidence float64)
}

// LineScorer scores one line of text, returning its total log10 probability
// under a language model.
type LineScorer interface {
	Score(line string) float64
}

// Resources holds the optional per-language assets the checks draw on.
// A nil field means the resource is unbound and its check auto-passes.
type Resources struct {
	Stopwords  lexicon.Set
	Badwords   lexicon.Set
	Identifier Identifier
	Scorer     LineScorer
}

// Checks assembles the check sequence for one language from its filter
// config and bound resources. Disabled checks are omitted entirely; enabled
// checks with unbound resources are included and pass unconditionally.
func Checks(lang string, cfg params.FilterConfig, res Resources) []Check {
	var checks []Check
	if cfg.CheckEmpty {
		checks = append(checks, Check{
			Kind: KindEmpty,
			Pass: func(text string) bool {
				return len(norm.Normalize(text)) > 0
			},
		})
	}
	if cfg.CheckSpecialChars {
		specials := runeSet(cfg.SpecialChars)
		cutoff := cfg.SpecialCharsCutoff
		checks = append(checks, Check{
			Kind: KindSpecialChars,
			Pass: func(text string) bool {
				ratio, ok := specialCharRatio(text, specials)
				return ok && ratio < cutoff
			},
		})
	}
	if cfg.CheckStopwords {
		stops := res.Stopwords
		stripChars := cfg.StripChars
		min, max := cfg.StopwordMinCutoff, cfg.StopwordMaxCutoff
		checks = append(checks, Check{
			Kind: KindStopwords,
			Pass: func(text string) bool {
				if stops == nil {
					return true
				}
				r := StopwordRatio(text, stripChars, stops)
				return r > min && r < max
			},
		})
	}
	if cfg.CheckBadwords {
		bads := res.Badwords
		stripChars := cfg.StripChars
		cutoff := cfg.BadwordsCutoff
		checks = append(checks, Check{
			Kind: KindBadwords,
			Pass: func(text string) bool {
				if bads == nil {
					return true
				}
				return BadwordRatio(text, stripChars, bads) < cutoff
			},
		})
	}
	if cfg.CheckLangID {
		ident := res.Identifier
		stripChars := cfg.StripChars
		cutoff := cfg.LangIDCutoff
		checks = append(checks, Check{
			Kind: KindLangID,
			Pass: func(text string) bool {
				if ident == nil {
					return true
				}
				words := norm.Tokenize(text, stripChars)
				code, confidence := ident.Identify(norm.Join(words))
				return code == lang && confidence > cutoff
			},
		})
	}
	if cfg.CheckPerplexity {
		scorer := res.Scorer
		cutoff := cfg.PerplexityCutoff
		checks = append(checks, Check{
			Kind: KindPerplexity,
			Pass: func(text string) bool {
				if scorer == nil {
					return true
				}
				return Perplexity(text, scorer) < cutoff
			},
		})
	}
	return checks
}
