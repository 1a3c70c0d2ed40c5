package features

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRowsRoundtrip(t *testing.T) {
	v := newTestVectorizer(t)
	samples := writeSamples(t,
		`"4","1","d","q","u","love love"`,
		`"0","2","d","q","u","hate day"`,
	)
	out := filepath.Join(t.TempDir(), "matrix.vectorized.csv")

	n, err := v.WriteRows(samples, out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows written, got %d", n)
	}

	rows, err := ReadRows(out+".gz", v.RowWidth())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows read, got %d", len(rows))
	}
	// Input order is preserved on the on-disk path.
	if rows[0].Features[0] != 2 {
		t.Errorf("row 0 'love' count = %v, want 2", rows[0].Features[0])
	}
	if rows[0].Label[0] != 1 || rows[0].Label[1] != 0 {
		t.Errorf("row 0 label = %v, want [1 0]", rows[0].Label)
	}
	if rows[1].Label[0] != 0 || rows[1].Label[1] != 1 {
		t.Errorf("row 1 label = %v, want [0 1]", rows[1].Label)
	}
}

func TestWriteRowsAppends(t *testing.T) {
	v := newTestVectorizer(t)
	samples := writeSamples(t, `"4","1","d","q","u","love"`)
	out := filepath.Join(t.TempDir(), "matrix.vectorized.csv")

	if _, err := v.WriteRows(samples, out, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := v.WriteRows(samples, out, 0); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadRows(out+".gz", v.RowWidth())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("append run should yield 2 rows, got %d", len(rows))
	}
}

func TestWriteRowsSkipsBadRows(t *testing.T) {
	v := newTestVectorizer(t)
	samples := writeSamples(t,
		`"4","1","d","q","u","love"`,
		`"2","2","d","q","u","neutral"`,
		"broken",
	)
	out := filepath.Join(t.TempDir(), "matrix.vectorized.csv")
	n, err := v.WriteRows(samples, out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 valid row, got %d", n)
	}
}

func TestReadRowsBadWidth(t *testing.T) {
	if _, err := ReadRows("whatever.gz", LabelWidth); err == nil {
		t.Fatal("expected error for a row width without features")
	}
}
