package features

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"SentiVec/src/corpus"
	"SentiVec/src/library/progress"
	"SentiVec/src/metrics"
)

// WriteRows vectorizes samplesPath and appends the rows to outPath+".gz" as
// a gzip stream of raw little-endian float64 values, each row being the
// feature vector followed by the two-element one-hot label. Rows keep input
// order on this path.
func (v *Vectorizer) WriteRows(samplesPath, outPath string, maxLines int) (int, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	lines, err := corpus.ReadLines(samplesPath)
	if err != nil {
		return 0, errors.Wrap(err, "writing design matrix")
	}

	f, err := os.OpenFile(outPath+".gz", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s.gz", outPath)
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	defer zw.Close()

	rep := progress.NewReporter("creating design matrix from "+samplesPath, "line")
	written := 0
	buf := make([]byte, 8)
	for _, line := range lines {
		rep.Incr()
		if written == maxLines {
			break
		}
		s, err := v.ProcessLine(line)
		if err != nil {
			metrics.RowsSkipped.WithLabelValues(skipReason(err)).Inc()
			continue
		}
		if err := writeRow(zw, buf, s); err != nil {
			return written, err
		}
		written++
	}
	rep.Done()

	if err := zw.Close(); err != nil {
		return written, errors.Wrap(err, "flushing gzip stream")
	}
	return written, nil
}

func writeRow(w io.Writer, buf []byte, s Sample) error {
	for _, val := range s.Features {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(val))
		if _, err := w.Write(buf); err != nil {
			return errors.Wrap(err, "writing feature row")
		}
	}
	for _, val := range s.Label {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(val))
		if _, err := w.Write(buf); err != nil {
			return errors.Wrap(err, "writing label")
		}
	}
	return nil
}

// ReadRows streams rows back from a gzip file written by WriteRows.
// rowWidth is the total float count per row (lexicon size + label width).
func ReadRows(path string, rowWidth int) ([]Sample, error) {
	if rowWidth <= LabelWidth {
		return nil, errors.Errorf("row width %d too small", rowWidth)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading gzip header of %s", path)
	}
	defer zr.Close()

	var samples []Sample
	raw := make([]byte, rowWidth*8)
	for {
		_, err := io.ReadFull(zr, raw)
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return samples, errors.Wrapf(err, "reading row %d", len(samples))
		}
		row := make([]float64, rowWidth)
		for i := range row {
			row[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		samples = append(samples, Sample{
			Features: row[:rowWidth-LabelWidth],
			Label:    row[rowWidth-LabelWidth:],
		})
	}
}
