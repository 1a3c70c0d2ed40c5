// Package lexicon maintains the fixed-order token set that defines the
// bag-of-words feature dimensionality.
package lexicon

import (
	"encoding/gob"
	"os"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"SentiVec/src/analyzer"
	"SentiVec/src/corpus"
	"SentiVec/src/library/log"
	"SentiVec/src/library/progress"
)

// Lexicon is an ordered set of distinct normalized tokens. Order is fixed at
// build time; every feature vector indexes into it.
type Lexicon struct {
	Tokens []string
	index  map[string]int
}

// New wraps an ordered token slice.
func New(tokens []string) *Lexicon {
	lex := &Lexicon{Tokens: tokens}
	lex.buildIndex()
	return lex
}

func (l *Lexicon) buildIndex() {
	l.index = make(map[string]int, len(l.Tokens))
	for i, t := range l.Tokens {
		l.index[t] = i
	}
}

// Size is the feature vector length.
func (l *Lexicon) Size() int { return len(l.Tokens) }

// IndexOf returns the position of token, or -1.
func (l *Lexicon) IndexOf(token string) int {
	if i, ok := l.index[token]; ok {
		return i
	}
	return -1
}

// Equal reports whether two lexica carry the same tokens in the same order.
func (l *Lexicon) Equal(other *Lexicon) bool {
	if other == nil || len(l.Tokens) != len(other.Tokens) {
		return false
	}
	for i, t := range l.Tokens {
		if other.Tokens[i] != t {
			return false
		}
	}
	return true
}

// Build scans whole corpus files (all rows, neutral included), counts
// lemmatized terms, and keeps those with minCount < n < maxCount. Returns
// the number of lines read alongside the lexicon. Order is deterministic:
// descending count, ties lexicographic.
func Build(an *analyzer.Analyzer, files []string, minCount, maxCount int) (int, *Lexicon, error) {
	counts := make(map[string]int)
	nLines := 0
	for _, path := range files {
		lines, err := corpus.ReadLines(path)
		if err != nil {
			return 0, nil, errors.Wrap(err, "building lexicon")
		}
		rep := progress.NewReporter("counting terms in "+path, "line")
		for _, line := range lines {
			rec, err := corpus.ParseLine(line)
			text := rec.Text
			if err != nil {
				// Lexicon building tolerates rows vectorization would
				// skip; only the text column matters here.
				if !errors.Is(err, corpus.ErrInvalidPolarity) {
					rep.Incr()
					continue
				}
				text = rawText(line)
			}
			for _, term := range an.Terms(text) {
				counts[term]++
			}
			nLines++
			rep.Incr()
		}
		rep.Done()
	}

	tokens := maps.Keys(counts)
	kept := tokens[:0]
	for _, t := range tokens {
		if n := counts[t]; n > minCount && n < maxCount {
			kept = append(kept, t)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if counts[kept[i]] != counts[kept[j]] {
			return counts[kept[i]] > counts[kept[j]]
		}
		return kept[i] < kept[j]
	})
	log.Debug("lexicon: kept %d of %d distinct terms (bounds %d..%d)", len(kept), len(counts), minCount, maxCount)
	return nLines, New(kept), nil
}

// rawText recovers the text column from a line whose polarity is not one of
// the trained extremes; the framing is still the fully-quoted 6-column one.
func rawText(line string) string {
	if len(line) < 2 {
		return line
	}
	fields := splitQuoted(line)
	if len(fields) != len(corpus.ColumnNames) {
		return line
	}
	return fields[len(fields)-1]
}

func splitQuoted(line string) []string {
	trimmed := line
	for len(trimmed) > 0 && (trimmed[len(trimmed)-1] == '\n' || trimmed[len(trimmed)-1] == '\r') {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) < 2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
		return nil
	}
	var fields []string
	body := trimmed[1 : len(trimmed)-1]
	start := 0
	for i := 0; i+2 < len(body); i++ {
		if body[i] == '"' && body[i+1] == ',' && body[i+2] == '"' {
			fields = append(fields, body[start:i])
			start = i + 3
		}
	}
	return append(fields, body[start:])
}

// Save writes a gob snapshot.
func (l *Lexicon) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating lexicon snapshot %s", path)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(l.Tokens); err != nil {
		return errors.Wrapf(err, "encoding lexicon snapshot %s", path)
	}
	return nil
}

// Load reads a gob snapshot written by Save.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var tokens []string
	if err := gob.NewDecoder(f).Decode(&tokens); err != nil {
		return nil, errors.Wrapf(err, "decoding lexicon snapshot %s", path)
	}
	return New(tokens), nil
}
