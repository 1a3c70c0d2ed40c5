package db

import (
	"io"

	"github.com/pkg/errors"

	"SentiVec/src/corpus"
	"SentiVec/src/features"
	"SentiVec/src/library/progress"
)

// StoreCorpus vectorizes a corpus file chunk by chunk into the store, keyed
// by record id. Returns the number of rows written.
func (s *FeatureStore) StoreCorpus(v *features.Vectorizer, samplesPath string, chunkSize, maxLines int) (int, error) {
	if maxLines <= 0 {
		maxLines = features.DefaultMaxLines
	}
	reader, err := corpus.Open(samplesPath, chunkSize)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	rep := progress.NewReporter("storing design matrix from "+samplesPath, "row")
	written := 0
	for written < maxLines {
		chunk, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, errors.Wrap(err, "reading corpus chunk")
		}
		for _, rec := range chunk {
			if written == maxLines {
				break
			}
			if err := s.Put(rec.ID, v.ProcessRecord(rec)); err != nil {
				return written, err
			}
			written++
			rep.Incr()
		}
	}
	rep.Done()
	return written, nil
}
