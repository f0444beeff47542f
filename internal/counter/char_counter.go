package counter

import (
	"unicode/utf8"
)

// CharCounter implements character counting using UTF-8 rune counting.
// Note that this counts Unicode characters properly, not just bytes.
type CharCounter struct{}

// NewCharCounter creates a new CharCounter instance.
func NewCharCounter() Counter {
	return &CharCounter{}
}

// Count returns the number of UTF-8 characters (runes) in the given text.
func (cc *CharCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return utf8.RuneCountInString(text)
}

// Name returns the name of this counting method for logging and reports.
func (cc *CharCounter) Name() string {
	return "characters"
}
