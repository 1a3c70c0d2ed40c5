package analyzer

import (
	"testing"

	"SentiVec/src/library/config"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	an, err := New(config.SegmentConfig{Engine: "gse"})
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}
	return an
}

func TestProcessSampleKeepsWords(t *testing.T) {
	an := newTestAnalyzer(t)
	words := an.ProcessSample("I LOVE this")
	if !contains(words, "love") {
		t.Errorf("expected lowercased 'love' in %v", words)
	}
	if !contains(words, "this") {
		t.Errorf("expected 'this' in %v", words)
	}
}

func TestProcessSampleDropsJunk(t *testing.T) {
	an := newTestAnalyzer(t)
	words := an.ProcessSample("wow!!! ... 12345")
	for _, w := range words {
		if w == "!!!" || w == "..." || w == "12345" {
			t.Errorf("junk token %q survived filtering: %v", w, words)
		}
	}
}

func TestProcessSampleDropsOverlongTokens(t *testing.T) {
	an := newTestAnalyzer(t)
	long := ""
	for i := 0; i < 60; i++ {
		long += "a"
	}
	words := an.ProcessSample("ok " + long)
	if contains(words, long) {
		t.Errorf("overlong token survived: %v", words)
	}
}

func TestLemmatize(t *testing.T) {
	an := newTestAnalyzer(t)
	cases := map[string]string{
		"cats":    "cat",
		"running": "run",
	}
	for in, want := range cases {
		if got := an.Lemmatize(in); got != want {
			t.Errorf("Lemmatize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTermsAreLemmatized(t *testing.T) {
	an := newTestAnalyzer(t)
	terms := an.Terms("the cats")
	if !contains(terms, "cat") {
		t.Errorf("expected lemma 'cat' in %v", terms)
	}
}

func TestUnknownEngine(t *testing.T) {
	if _, err := NewTokenizer(config.SegmentConfig{Engine: "nope"}); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestSegoNeedsDict(t *testing.T) {
	if _, err := NewTokenizer(config.SegmentConfig{Engine: "sego"}); err == nil {
		t.Fatal("expected error without a sego dictionary")
	}
}

func contains(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}
