package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"SentiVec/src/analyzer"
	"SentiVec/src/library/config"
)

func newTestAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	an, err := analyzer.New(config.SegmentConfig{Engine: "gse"})
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}
	return an
}

func TestLexiconIndex(t *testing.T) {
	lex := New([]string{"good", "bad", "day"})
	if lex.Size() != 3 {
		t.Fatalf("expected size 3, got %d", lex.Size())
	}
	if lex.IndexOf("bad") != 1 {
		t.Errorf("expected index 1 for bad, got %d", lex.IndexOf("bad"))
	}
	if lex.IndexOf("missing") != -1 {
		t.Errorf("expected -1 for unknown token, got %d", lex.IndexOf("missing"))
	}
}

func TestLexiconEqual(t *testing.T) {
	a := New([]string{"x", "y"})
	b := New([]string{"x", "y"})
	c := New([]string{"y", "x"})
	if !a.Equal(b) {
		t.Error("identical lexica must be equal")
	}
	if a.Equal(c) {
		t.Error("order matters; reordered lexica must differ")
	}
	if a.Equal(nil) {
		t.Error("nil is never equal")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.gob")
	lex := New([]string{"alpha", "beta"})
	if err := lex.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !lex.Equal(loaded) {
		t.Errorf("roundtrip changed the lexicon: %v vs %v", lex.Tokens, loaded.Tokens)
	}
	if loaded.IndexOf("beta") != 1 {
		t.Error("index not rebuilt after load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.gob"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestBuildCountsAndBounds(t *testing.T) {
	an := newTestAnalyzer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "train.csv")
	lines := ""
	// "happy" appears 3 times, "unique" once.
	for i := 0; i < 3; i++ {
		lines += `"4","1","d","q","u","happy happy day"` + "\n"
	}
	lines += `"0","2","d","q","u","unique sadness"` + "\n"
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}

	nLines, lex, err := Build(an, []string{path}, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if nLines != 4 {
		t.Errorf("expected 4 lines read, got %d", nLines)
	}
	if lex.IndexOf("happy") == -1 {
		t.Errorf("expected 'happy' in lexicon %v", lex.Tokens)
	}
	if lex.IndexOf("unique") != -1 {
		t.Errorf("'unique' (count 1) must be outside bounds: %v", lex.Tokens)
	}
}

func TestBuildIncludesNeutralRows(t *testing.T) {
	an := newTestAnalyzer(t)
	path := filepath.Join(t.TempDir(), "train.csv")
	lines := `"2","1","d","q","u","neutralword neutralword"` + "\n" +
		`"2","2","d","q","u","neutralword neutralword"` + "\n"
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	_, lex, err := Build(an, []string{path}, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if lex.IndexOf("neutralword") == -1 {
		t.Errorf("neutral rows must still feed the lexicon: %v", lex.Tokens)
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	an := newTestAnalyzer(t)
	path := filepath.Join(t.TempDir(), "train.csv")
	lines := `"4","1","d","q","u","zebra apple zebra apple"` + "\n" +
		`"0","2","d","q","u","zebra apple"` + "\n"
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	_, first, err := Build(an, []string{path}, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := Build(an, []string{path}, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Errorf("build order not deterministic: %v vs %v", first.Tokens, second.Tokens)
	}
}
