package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChunkSize != 10000 {
		t.Errorf("default chunk size %d", cfg.ChunkSize)
	}
	if cfg.MaxLines != int(1e7) {
		t.Errorf("default max lines %d", cfg.MaxLines)
	}
	if cfg.Lexicon.MinCount != 50 || cfg.Lexicon.MaxCount != 1000 {
		t.Errorf("default lexicon bounds %d..%d", cfg.Lexicon.MinCount, cfg.Lexicon.MaxCount)
	}
	if cfg.Segment.Engine != "gse" {
		t.Errorf("default engine %q", cfg.Segment.Engine)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
dataDir: /srv/corpus
maxLines: 500
segment:
  engine: jieba
  jiebaDict: /srv/dict.txt
train:
  epochs: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/srv/corpus" {
		t.Errorf("dataDir %q", cfg.DataDir)
	}
	if cfg.MaxLines != 500 {
		t.Errorf("maxLines %d", cfg.MaxLines)
	}
	if cfg.Segment.Engine != "jieba" || cfg.Segment.JiebaDict != "/srv/dict.txt" {
		t.Errorf("segment %+v", cfg.Segment)
	}
	if cfg.Train.Epochs != 3 {
		t.Errorf("epochs %d", cfg.Train.Epochs)
	}
	// untouched keys keep their defaults
	if cfg.ChunkSize != 10000 {
		t.Errorf("chunkSize %d", cfg.ChunkSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
