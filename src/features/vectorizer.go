// Package features converts labeled corpus lines into bag-of-words feature
// vectors and one-hot labels, with in-memory, on-disk and streaming
// design-matrix variants.
package features

import (
	"SentiVec/src/analyzer"
	"SentiVec/src/corpus"
	"SentiVec/src/lexicon"
)

// LabelWidth is the one-hot label length: [1,0] positive, [0,1] negative.
const LabelWidth = 2

// Sample is one vectorized row.
type Sample struct {
	Features []float64
	Label    []float64
}

// Vectorizer binds an analyzer to a fixed lexicon.
type Vectorizer struct {
	an  *analyzer.Analyzer
	lex *lexicon.Lexicon
}

func NewVectorizer(an *analyzer.Analyzer, lex *lexicon.Lexicon) *Vectorizer {
	return &Vectorizer{an: an, lex: lex}
}

// Lexicon returns the bound lexicon.
func (v *Vectorizer) Lexicon() *lexicon.Lexicon { return v.lex }

// RowWidth is the on-disk row length: features plus label.
func (v *Vectorizer) RowWidth() int { return v.lex.Size() + LabelWidth }

// ProcessLine vectorizes one raw corpus line. Lines with non-extreme
// polarity return corpus.ErrInvalidPolarity; callers skip them.
func (v *Vectorizer) ProcessLine(line string) (Sample, error) {
	rec, err := corpus.ParseLine(line)
	if err != nil {
		return Sample{}, err
	}
	return v.ProcessRecord(rec), nil
}

// ProcessRecord vectorizes an already-parsed record. The feature vector
// length always equals the lexicon size.
func (v *Vectorizer) ProcessRecord(rec corpus.Record) Sample {
	feat := make([]float64, v.lex.Size())
	for _, term := range v.an.Terms(rec.Text) {
		if i := v.lex.IndexOf(term); i >= 0 {
			feat[i]++
		}
	}
	label := []float64{0, 1}
	if rec.Polarity == corpus.Positive {
		label = []float64{1, 0}
	}
	return Sample{Features: feat, Label: label}
}
