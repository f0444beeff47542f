// Package rewrite implements the word-level cleaning pass that runs before
// filtering: dropping words that carry forbidden substrings (markup and URL
// fragments, typically) and words that are implausibly long for the
// language.
//
// Cleaning operates on the raw text. Words are the result of splitting on
// single spaces with no normalization, substring matching is case
// sensitive, and the surviving words are rejoined with single spaces. The
// pass is idempotent: applying it to its own output changes nothing.
package rewrite

import (
	"strings"
	"unicode/utf8"

	"github.com/chriscorrea/winnow/internal/params"
)

// Rewriter applies the configured cleaning passes to document text.
type Rewriter struct {
	dropSubstrings bool
	substrings     []string
	dropLong       bool
	longCutoff     int
}

// New builds a rewriter from a language's filter config.
func New(cfg params.FilterConfig) *Rewriter {
	return &Rewriter{
		dropSubstrings: cfg.DropWordsWithSubstrings,
		substrings:     cfg.ForbiddenSubstrings,
		dropLong:       cfg.DropLongWords,
		longCutoff:     cfg.LongWordCutoff,
	}
}

// Apply runs the enabled cleaning passes in order: forbidden substrings
// first, then long words. With both passes disabled the text is returned
// unchanged.
func (r *Rewriter) Apply(text string) string {
	if r.dropSubstrings {
		text = DropWordsWithSubstrings(text, r.substrings)
	}
	if r.dropLong {
		text = DropLongWords(text, r.longCutoff)
	}
	return text
}

// DropWordsWithSubstrings removes every word containing any of the given
// substrings. Matching is case sensitive against the raw word.
func DropWordsWithSubstrings(text string, substrings []string) string {
	words := strings.Split(text, " ")
	kept := words[:0]
	for _, w := range words {
		if containsAny(w, substrings) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// DropLongWords removes every word whose rune count reaches cutoff.
// Words of exactly cutoff runes are dropped.
func DropLongWords(text string, cutoff int) string {
	words := strings.Split(text, " ")
	kept := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= cutoff {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func containsAny(w string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(w, sub) {
			return true
		}
	}
	return false
}
