package rewrite

import (
	"testing"

	"github.com/chriscorrea/winnow/internal/params"
)

func TestDropWordsWithSubstrings(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		substrings []string
		expected   string
	}{
		{
			name:       "url fragments removed",
			input:      "visit http://example.com for more details",
			substrings: []string{"http", "www"},
			expected:   "visit for more details",
		},
		{
			name:       "matching is case sensitive",
			input:      "HTTP is fine but http is not",
			substrings: []string{"http"},
			expected:   "HTTP is fine but is not",
		},
		{
			name:       "no matches leaves text unchanged",
			input:      "nothing suspicious here",
			substrings: []string{"http", "www"},
			expected:   "nothing suspicious here",
		},
		{
			name:       "empty substring list keeps everything",
			input:      "anything goes",
			substrings: nil,
			expected:   "anything goes",
		},
		{
			name:       "substring inside a word",
			input:      "prefixwwwsuffix stays? no",
			substrings: []string{"www"},
			expected:   "stays? no",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DropWordsWithSubstrings(tt.input, tt.substrings)
			if result != tt.expected {
				t.Errorf("DropWordsWithSubstrings(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDropLongWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		cutoff   int
		expected string
	}{
		{
			name:     "long word removed",
			input:    "short pneumonoultramicroscopicsilicovolcanoconiosis short",
			cutoff:   25,
			expected: "short short",
		},
		{
			name:     "word of exactly cutoff length removed",
			input:    "abcde abcd",
			cutoff:   5,
			expected: "abcd",
		},
		{
			name:     "word one below cutoff kept",
			input:    "abcd abc",
			cutoff:   5,
			expected: "abcd abc",
		},
		{
			name:     "length counts runes not bytes",
			input:    "héllo ab",
			cutoff:   6,
			expected: "héllo ab",
		},
		{
			name:     "all words removed",
			input:    "toolong toolong",
			cutoff:   3,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DropLongWords(tt.input, tt.cutoff)
			if result != tt.expected {
				t.Errorf("DropLongWords(%q, %d) = %q, expected %q", tt.input, tt.cutoff, result, tt.expected)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := params.FilterConfig{
		DropWordsWithSubstrings: true,
		ForbiddenSubstrings:     []string{"http", "www"},
		DropLongWords:           true,
		LongWordCutoff:          12,
	}
	r := New(cfg)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "both passes apply in order",
			input:    "read www.example.org or unpronounceablemess today",
			expected: "read or today",
		},
		{
			name:     "clean text unchanged",
			input:    "plain ordinary text",
			expected: "plain ordinary text",
		},
		{
			name:     "empty text",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Apply(tt.input)
			if result != tt.expected {
				t.Errorf("Apply(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	cfg := params.FilterConfig{
		DropWordsWithSubstrings: true,
		ForbiddenSubstrings:     []string{"http", ".com", "//"},
		DropLongWords:           true,
		LongWordCutoff:          20,
	}
	r := New(cfg)

	inputs := []string{
		"mixed content with http://junk.com and  double  spaces",
		"already clean text",
		"",
		"word",
	}
	for _, input := range inputs {
		once := r.Apply(input)
		twice := r.Apply(once)
		if once != twice {
			t.Errorf("Apply not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestApplyDisabledPasses(t *testing.T) {
	r := New(params.FilterConfig{})
	input := "http://all.of.this/stays exactly-as-it-is includingaverylongwordthatwouldotherwisego"
	if result := r.Apply(input); result != input {
		t.Errorf("disabled rewriter changed text: %q", result)
	}
}
