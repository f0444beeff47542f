package filter

import (
	"math"
	"strings"

	"github.com/chriscorrea/winnow/internal/lexicon"
	"github.com/chriscorrea/winnow/internal/norm"
)

// SpecialCharRatio computes the share of runes in the normalized text that
// belong to the special character class. The second return is false when
// the normalized text has no runes at all, in which case the ratio is
// undefined and the special-character check treats the document as failing.
func SpecialCharRatio(text, specialChars string) (float64, bool) {
	return specialCharRatio(text, runeSet(specialChars))
}

func specialCharRatio(text string, specials map[rune]struct{}) (float64, bool) {
	sent := norm.Normalize(text)
	var total, special int
	for _, r := range sent {
		total++
		if _, ok := specials[r]; ok {
			special++
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(special) / float64(total), true
}

// StopwordRatio computes the share of tokens found in the stopword set.
// The tokenization keeps empty tokens, so they count toward the
// denominator; the split always yields at least one token, making the
// ratio well defined for any input.
func StopwordRatio(text, stripChars string, stops lexicon.Set) float64 {
	words := norm.Tokenize(text, stripChars)
	count := 0
	for _, w := range words {
		if stops.Contains(w) {
			count++
		}
	}
	return float64(count) / float64(len(words))
}

// BadwordRatio computes the share of tokens found in the badword set,
// under the same tokenization as StopwordRatio.
func BadwordRatio(text, stripChars string, bads lexicon.Set) float64 {
	words := norm.Tokenize(text, stripChars)
	count := 0
	for _, w := range words {
		if bads.Contains(w) {
			count++
		}
	}
	return float64(count) / float64(len(words))
}

// Perplexity aggregates per-line model scores into a document-level
// perplexity. Each line contributes its log10 score and a length of its
// whitespace-separated field count plus one, the extra unit standing in for
// the end-of-sentence token; the perplexity is 10 to the negative total
// score over total length. Lower is more fluent.
func Perplexity(text string, s LineScorer) float64 {
	var logScore float64
	var length int
	for _, line := range strings.Split(text, "\n") {
		logScore += s.Score(line)
		length += len(strings.Fields(line)) + 1
	}
	return math.Pow(10, -logScore/float64(length))
}

func runeSet(chars string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return set
}
