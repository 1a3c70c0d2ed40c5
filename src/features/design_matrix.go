package features

import (
	"math/rand"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"SentiVec/src/corpus"
	"SentiVec/src/library/monitor"
	"SentiVec/src/library/progress"
	"SentiVec/src/metrics"
)

// DefaultMaxLines caps every design-matrix variant.
const DefaultMaxLines = int(1e7)

// BuildDesignMatrix vectorizes a corpus file in memory. Rows that fail to
// parse are skipped; surviving rows are shuffled, then split into the
// feature matrix X (n × lexicon size) and label matrix Y (n × 2).
func (v *Vectorizer) BuildDesignMatrix(samplesPath string, maxLines int) (x, y *mat.Dense, err error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	start := time.Now()
	lines, err := corpus.ReadLines(samplesPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building design matrix")
	}

	source := filepath.Base(samplesPath)
	rep := progress.NewReporter("creating design matrix from "+samplesPath, "line")
	samples := make([]Sample, 0, min(len(lines), maxLines))
	for _, line := range lines {
		rep.Incr()
		s, err := v.ProcessLine(line)
		if err != nil {
			metrics.RowsSkipped.WithLabelValues(skipReason(err)).Inc()
			continue
		}
		metrics.RowsProcessed.WithLabelValues(source).Inc()
		samples = append(samples, s)
		if len(samples) == maxLines {
			break
		}
	}
	rep.Done()

	rand.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})

	x, y = stack(samples, v.lex.Size())
	metrics.VectorizeDuration.Observe(time.Since(start).Seconds())
	monitor.LogMemoryUsage("design matrix " + source)
	return x, y, nil
}

// stack reallocates the row slices into two contiguous dense matrices.
func stack(samples []Sample, featWidth int) (x, y *mat.Dense) {
	n := len(samples)
	if n == 0 {
		return nil, nil
	}
	x = mat.NewDense(n, featWidth, nil)
	y = mat.NewDense(n, LabelWidth, nil)
	for i, s := range samples {
		x.SetRow(i, s.Features)
		y.SetRow(i, s.Label)
	}
	return x, y
}

func skipReason(err error) string {
	if errors.Is(err, corpus.ErrInvalidPolarity) {
		return "invalid_polarity"
	}
	return "malformed"
}
