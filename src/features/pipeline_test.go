package features

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSaveLoadProcessedRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.gob")
	data := &ProcessedData{
		XTrain: mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		YTrain: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		XTest:  mat.NewDense(1, 3, []float64{7, 8, 9}),
		YTest:  mat.NewDense(1, 2, []float64{0, 1}),
	}
	if err := SaveProcessed(path, data); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadProcessed(path)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(data.XTrain, loaded.XTrain) {
		t.Error("XTrain changed over the roundtrip")
	}
	if !mat.Equal(data.YTest, loaded.YTest) {
		t.Error("YTest changed over the roundtrip")
	}
	if loaded.XTrain.At(1, 2) != 6 {
		t.Errorf("unexpected value %v", loaded.XTrain.At(1, 2))
	}
}

func TestLoadProcessedMissing(t *testing.T) {
	if _, err := LoadProcessed(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}
