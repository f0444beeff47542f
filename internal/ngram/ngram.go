// Package ngram loads back-off n-gram language models from ARPA files and
// scores text against them. The scorer follows the standard back-off
// scheme: the longest known n-gram ending in the current word wins, and
// every shortening of the context adds that context's back-off weight.
// All probabilities and weights are log10, matching the file format.
package ngram

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	bosToken = "<s>"
	eosToken = "</s>"
	unkToken = "<unk>"

	// floorLogProb backstops models that carry no <unk> entry.
	floorLogProb = -7.0

	// n-gram lines are short, but a generous scanner buffer costs nothing
	maxLineBytes = 1 << 20
)

// Model is an immutable n-gram language model. It is safe for concurrent
// use once loaded.
type Model struct {
	order    int
	probs    map[string]float64
	backoffs map[string]float64
}

// Order returns the model's maximum n-gram length.
func (m *Model) Order() int {
	return m.order
}

// Size returns the number of n-grams the model holds.
func (m *Model) Size() int {
	return len(m.probs)
}

// Score returns the total log10 probability of a line of text. The line is
// split on whitespace, framed with sentence start and end tokens, and each
// word is scored against its preceding context. Words outside the model's
// vocabulary fall back to the <unk> entry. Scoring is case sensitive, so
// lines should be in the form the model was trained on.
func (m *Model) Score(line string) float64 {
	words := strings.Fields(line)
	ctx := []string{bosToken}
	var total float64
	for i := 0; i <= len(words); i++ {
		w := eosToken
		if i < len(words) {
			w = words[i]
		}
		total += m.wordScore(ctx, w)
		ctx = append(ctx, w)
		if keep := m.order - 1; len(ctx) > keep {
			ctx = ctx[len(ctx)-keep:]
		}
	}
	return total
}

func (m *Model) wordScore(ctx []string, w string) float64 {
	if len(ctx) == 0 {
		if p, ok := m.probs[w]; ok {
			return p
		}
		if p, ok := m.probs[unkToken]; ok {
			return p
		}
		return floorLogProb
	}
	prefix := strings.Join(ctx, " ")
	if p, ok := m.probs[prefix+" "+w]; ok {
		return p
	}
	// unseen at this length: back off to a shorter context
	return m.backoffs[prefix] + m.wordScore(ctx[1:], w)
}

// Load reads an ARPA model from path. Files ending in .gz are
// transparently decompressed.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening language model: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing language model %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	m, err := parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing language model %s: %w", path, err)
	}
	return m, nil
}

func parse(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	m := &Model{}

	const (
		statePreamble = iota
		stateCounts
		stateGrams
		stateDone
	)
	state := statePreamble
	sectionN := 0
	declared := make(map[int]int)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == `\data\`:
			state = stateCounts
			continue
		case line == `\end\`:
			state = stateDone
		case strings.HasPrefix(line, `\`) && strings.HasSuffix(line, "-grams:"):
			n, err := sectionOrder(line)
			if err != nil {
				return nil, err
			}
			sectionN = n
			if n > m.order {
				m.order = n
			}
			if m.probs == nil {
				total := 0
				for _, c := range declared {
					total += c
				}
				m.probs = make(map[string]float64, total)
				m.backoffs = make(map[string]float64, total/2)
			}
			state = stateGrams
			continue
		}
		if state == stateDone {
			break
		}

		switch state {
		case statePreamble:
			// header noise before \data\ is ignored
		case stateCounts:
			n, count, err := parseCount(line)
			if err != nil {
				return nil, err
			}
			declared[n] = count
		case stateGrams:
			if err := m.addEntry(sectionN, line); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	if state != stateDone {
		return nil, fmt.Errorf("truncated model: missing \\end\\ marker")
	}
	if m.order == 0 {
		return nil, fmt.Errorf("model has no n-gram sections")
	}
	return m, nil
}

// sectionOrder extracts N from a section header of the form \N-grams:
func sectionOrder(line string) (int, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(line, `\`), "-grams:")
	n, err := strconv.Atoi(body)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad section header %q", line)
	}
	return n, nil
}

// parseCount extracts N and the entry count from a line of the form
// "ngram N=count".
func parseCount(line string) (int, int, error) {
	rest, ok := strings.CutPrefix(line, "ngram ")
	if !ok {
		return 0, 0, fmt.Errorf("bad count line %q", line)
	}
	nStr, countStr, ok := strings.Cut(rest, "=")
	if !ok {
		return 0, 0, fmt.Errorf("bad count line %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(nStr))
	if err != nil {
		return 0, 0, fmt.Errorf("bad count line %q", line)
	}
	count, err := strconv.Atoi(strings.TrimSpace(countStr))
	if err != nil {
		return 0, 0, fmt.Errorf("bad count line %q", line)
	}
	return n, count, nil
}

// addEntry parses one n-gram line: log probability, the n words, and an
// optional back-off weight. Fields may be separated by tabs or spaces.
func (m *Model) addEntry(n int, line string) error {
	fields := strings.Fields(line)
	if len(fields) < n+1 || len(fields) > n+2 {
		return fmt.Errorf("malformed %d-gram line %q", n, line)
	}
	prob, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("bad probability in %q: %w", line, err)
	}
	key := strings.Join(fields[1:1+n], " ")
	m.probs[key] = prob
	if len(fields) == n+2 {
		backoff, err := strconv.ParseFloat(fields[n+1], 64)
		if err != nil {
			return fmt.Errorf("bad back-off weight in %q: %w", line, err)
		}
		m.backoffs[key] = backoff
	}
	return nil
}
