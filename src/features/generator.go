package features

import (
	"context"

	"SentiVec/src/corpus"
	"SentiVec/src/metrics"
)

// Generate streams vectorized samples from samplesPath without holding the
// design matrix in memory. The channel closes after maxLines rows, at end
// of input, or when ctx is cancelled. Read errors close the channel early;
// the pipeline's only recoverable failure is the per-row skip.
func (v *Vectorizer) Generate(ctx context.Context, samplesPath string, maxLines int) (<-chan Sample, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	lines, err := corpus.ReadLines(samplesPath)
	if err != nil {
		return nil, err
	}

	out := make(chan Sample)
	go func() {
		defer close(out)
		emitted := 0
		for _, line := range lines {
			if emitted == maxLines {
				return
			}
			s, err := v.ProcessLine(line)
			if err != nil {
				metrics.RowsSkipped.WithLabelValues(skipReason(err)).Inc()
				continue
			}
			select {
			case out <- s:
				emitted++
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
