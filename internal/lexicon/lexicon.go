// Package lexicon loads the per-language token sets used by the ratio
// checks: stopwords and badwords. Lexicons are flat text files, one token
// per line, laid out as <dir>/<kind>/<id>.txt.
//
// A nil Set means the lexicon is absent and the consuming check passes
// unconditionally. An empty file yields an empty, non-nil Set, which is a
// real lexicon that matches nothing; the distinction matters because ratio
// checks do run against empty sets.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Set is an immutable membership set of tokens.
type Set map[string]struct{}

// Contains reports whether tok is in the set. A nil Set contains nothing.
func (s Set) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Len reports the number of tokens in the set.
func (s Set) Len() int {
	return len(s)
}

// New builds a set from explicit tokens.
func New(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, tok := range tokens {
		s[tok] = struct{}{}
	}
	return s
}

// Load reads a lexicon file. Blank lines and lines starting with '#' are
// skipped; surrounding whitespace is trimmed from each token.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	defer f.Close()

	s := make(Set)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok == "" || strings.HasPrefix(tok, "#") {
			continue
		}
		s[tok] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}
	return s, nil
}

// Find loads the lexicon of the given kind and id from the lexicon
// directory. A missing file is not an error: the resource simply does not
// exist and a nil Set is returned, so the consuming check auto-passes.
// Any other failure is reported.
func Find(dir, kind, id string) (Set, error) {
	if dir == "" || id == "" {
		return nil, nil
	}
	path := filepath.Join(dir, kind, id+".txt")
	s, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}
