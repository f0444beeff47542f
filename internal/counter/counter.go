// Package counter measures corpus volume for run reports.
//
// Filtering runs tally how much text survived, and the unit of measure is
// configurable: model tokens (via tiktoken's cl100k_base encoding), words,
// or characters. Token counts are the default because downstream training
// budgets are stated in tokens.
//
// All counters are safe for concurrent use.
package counter

import "fmt"

// Counter is one text measuring strategy.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters)
	// in the given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method.
	Name() string
}

// CountingMethod selects a measuring strategy.
type CountingMethod int

const (
	// Tokens uses tiktoken with the cl100k_base encoding (default).
	Tokens CountingMethod = iota
	// Words counts words using whitespace splitting.
	Words
	// Characters counts individual characters including whitespace.
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// ParseMethod resolves a user-supplied method name.
func ParseMethod(name string) (CountingMethod, error) {
	switch name {
	case "tokens":
		return Tokens, nil
	case "words":
		return Words, nil
	case "characters", "chars":
		return Characters, nil
	default:
		return Tokens, fmt.Errorf("unknown counting method %q (want tokens, words, or characters)", name)
	}
}

// NewCounter creates a Counter for the specified method. This functions as
// a factory over the concrete counter types, giving callers a single entry
// point. It returns an error if the counter cannot be initialized (e.g.
// the tiktoken encoding fails to load).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return NewWordCounter(), nil
	case Characters:
		return NewCharCounter(), nil
	default:
		return NewTokenCounter()
	}
}
