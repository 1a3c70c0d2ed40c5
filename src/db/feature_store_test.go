package db

import (
	"path/filepath"
	"testing"

	"SentiVec/src/features"
)

func openTestStore(t *testing.T) *FeatureStore {
	t.Helper()
	store, err := OpenFeatureStore(filepath.Join(t.TempDir(), "features.db"), 4, true)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundtrip(t *testing.T) {
	store := openTestStore(t)
	in := features.Sample{
		Features: []float64{0, 2, 0, 1.5},
		Label:    []float64{1, 0},
	}
	if err := store.Put(42, in); err != nil {
		t.Fatal(err)
	}
	out, ok, err := store.Get(42)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("row 42 not found")
	}
	if len(out.Features) != 4 || out.Features[1] != 2 || out.Features[3] != 1.5 {
		t.Errorf("features changed: %v", out.Features)
	}
	if len(out.Label) != 2 || out.Label[0] != 1 {
		t.Errorf("label changed: %v", out.Label)
	}
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.Get(7)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected miss for unknown id")
	}
}

func TestCountAcrossShards(t *testing.T) {
	store := openTestStore(t)
	for id := uint64(0); id < 20; id++ {
		s := features.Sample{Features: []float64{float64(id)}, Label: []float64{0, 1}}
		if err := store.Put(id, s); err != nil {
			t.Fatal(err)
		}
	}
	n, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 20 {
		t.Errorf("expected 20 rows across shards, got %d", n)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := openTestStore(t)
	first := features.Sample{Features: []float64{1}, Label: []float64{1, 0}}
	second := features.Sample{Features: []float64{9}, Label: []float64{0, 1}}
	if err := store.Put(1, first); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(1, second); err != nil {
		t.Fatal(err)
	}
	out, ok, err := store.Get(1)
	if err != nil || !ok {
		t.Fatalf("get failed: %v %v", ok, err)
	}
	if out.Features[0] != 9 {
		t.Errorf("overwrite lost: %v", out.Features)
	}
	n, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 row after overwrite, got %d", n)
	}
}
