// Package analyzer turns raw sample text into normalized, lemmatized terms.
// Tokenization is pluggable (gse by default); lemmatization uses the golem
// English dictionary.
package analyzer

import (
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/pkg/errors"

	"SentiVec/src/library/config"
)

const defaultMaxTokenLen = 48

// Analyzer is the tokenize → filter → lemmatize front of the pipeline.
type Analyzer struct {
	tok          Tokenizer
	lemmatizer   *golem.Lemmatizer
	maxTokenLen  int
	keepNonAlpha bool
}

func New(cfg config.SegmentConfig) (*Analyzer, error) {
	tok, err := NewTokenizer(cfg)
	if err != nil {
		return nil, err
	}
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, errors.Wrap(err, "loading english lemma dictionary")
	}
	maxLen := cfg.MaxTokenLen
	if maxLen <= 0 {
		maxLen = defaultMaxTokenLen
	}
	return &Analyzer{
		tok:          tok,
		lemmatizer:   lem,
		maxTokenLen:  maxLen,
		keepNonAlpha: cfg.KeepNonAlpha,
	}, nil
}

// ProcessSample tokenizes one text into filtered raw terms.
func (a *Analyzer) ProcessSample(text string) []string {
	words := a.tok.Cut(text)
	kept := words[:0]
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || len([]rune(w)) > a.maxTokenLen {
			continue
		}
		if !a.keepNonAlpha && !hasLetter(w) {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}

// Lemmatize maps one token to its dictionary lemma; unknown tokens pass
// through unchanged.
func (a *Analyzer) Lemmatize(word string) string {
	return a.lemmatizer.Lemma(word)
}

// Terms is ProcessSample followed by per-token lemmatization.
func (a *Analyzer) Terms(text string) []string {
	words := a.ProcessSample(text)
	for i, w := range words {
		words[i] = a.Lemmatize(w)
	}
	return words
}
