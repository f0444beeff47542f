// Package norm provides the text normalization primitives the filtering
// checks are defined over: case folding, whitespace trimming, and an exact
// single-space tokenization.
//
// Tokenize deliberately splits on single spaces rather than runs of
// whitespace and keeps empty tokens, because the ratio checks count every
// token the split produces. Callers that need non-empty words must filter
// for themselves.
package norm

import "strings"

// Normalize lower-cases text and trims leading and trailing whitespace.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

// Tokenize normalizes text, splits it on single spaces, and strips every
// leading and trailing rune present in stripChars from each token.
// Empty tokens, whether produced by the split or by stripping, are retained.
func Tokenize(text, stripChars string) []string {
	words := strings.Split(Normalize(text), " ")
	for i, w := range words {
		words[i] = strings.Trim(w, stripChars)
	}
	return words
}

// Join reassembles tokens with single spaces and flattens any embedded
// newlines, producing the one-line form the language classifier is fed.
func Join(words []string) string {
	return strings.ReplaceAll(strings.Join(words, " "), "\n", " ")
}
