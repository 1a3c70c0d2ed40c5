package analyzer

import (
	"strings"
	"unicode"

	"github.com/go-ego/gse"
	"github.com/huichen/sego"
	"github.com/pkg/errors"
	"github.com/wangbin/jiebago"

	"SentiVec/src/library/config"
)

// Tokenizer splits normalized text into terms.
type Tokenizer interface {
	Cut(text string) []string
}

// NewTokenizer builds the engine named in the config.
func NewTokenizer(cfg config.SegmentConfig) (Tokenizer, error) {
	switch cfg.Engine {
	case "", "gse":
		return NewGseTokenizer()
	case "sego":
		return NewSegoTokenizer(cfg.SegoDict)
	case "jieba":
		return NewJiebaTokenizer(cfg.JiebaDict)
	default:
		return nil, errors.Errorf("unknown segment engine %q", cfg.Engine)
	}
}

// GseTokenizer is the default engine; its embedded dictionary needs no
// external files.
type GseTokenizer struct {
	seg gse.Segmenter
}

func NewGseTokenizer() (*GseTokenizer, error) {
	t := new(GseTokenizer)
	if err := t.seg.LoadDict(); err != nil {
		return nil, errors.Wrap(err, "loading gse dictionary")
	}
	return t, nil
}

func (t *GseTokenizer) Cut(text string) []string {
	return t.seg.Cut(strings.ToLower(text), true)
}

// SegoTokenizer wraps a sego segmenter over an on-disk dictionary.
type SegoTokenizer struct {
	seg sego.Segmenter
}

func NewSegoTokenizer(dict string) (*SegoTokenizer, error) {
	if dict == "" {
		return nil, errors.New("sego engine needs a dictionary path")
	}
	t := new(SegoTokenizer)
	t.seg.LoadDictionary(dict)
	return t, nil
}

func (t *SegoTokenizer) Cut(text string) []string {
	segs := t.seg.Segment([]byte(strings.ToLower(text)))
	return sego.SegmentsToSlice(segs, false)
}

// JiebaTokenizer wraps jiebago's search-mode cut.
type JiebaTokenizer struct {
	seg jiebago.Segmenter
}

func NewJiebaTokenizer(dict string) (*JiebaTokenizer, error) {
	t := new(JiebaTokenizer)
	if err := t.seg.LoadDictionary(dict); err != nil {
		return nil, errors.Wrapf(err, "loading jieba dictionary %s", dict)
	}
	return t, nil
}

func (t *JiebaTokenizer) Cut(text string) []string {
	var words []string
	for w := range t.seg.CutForSearch(strings.ToLower(text), true) {
		words = append(words, w)
	}
	return words
}

// hasLetter filters out pure punctuation and digit runs.
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
