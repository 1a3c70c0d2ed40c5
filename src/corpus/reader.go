package corpus

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"SentiVec/src/library/log"
)

const DefaultChunkSize = 10000

// Reader iterates a corpus CSV in fixed-size chunks. The files are latin-1
// encoded, so every field passes through a charmap decoder before use.
type Reader struct {
	f         *os.File
	csv       *csv.Reader
	chunkSize int
	skipped   int
}

// Open prepares a chunked reader over the file at path.
func Open(path string, chunkSize int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening corpus %s", path)
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	cr.FieldsPerRecord = len(ColumnNames)
	cr.LazyQuotes = true
	return &Reader{f: f, csv: cr, chunkSize: chunkSize}, nil
}

// Next returns the next chunk of well-formed records with extreme polarity.
// Rows that fail to parse are counted and dropped. io.EOF signals the end;
// the final chunk may be short but is still returned with a nil error.
func (r *Reader) Next() ([]Record, error) {
	chunk := make([]Record, 0, r.chunkSize)
	for len(chunk) < r.chunkSize {
		fields, err := r.csv.Read()
		if err == io.EOF {
			if len(chunk) == 0 {
				return nil, io.EOF
			}
			return chunk, nil
		}
		if err != nil {
			r.skipped++
			continue
		}
		rec, err := fromFields(fields)
		if err != nil {
			r.skipped++
			continue
		}
		chunk = append(chunk, rec)
	}
	return chunk, nil
}

// Skipped returns the number of rows dropped so far.
func (r *Reader) Skipped() int { return r.skipped }

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.skipped > 0 {
		log.Debug("corpus %s: %d rows skipped", r.f.Name(), r.skipped)
	}
	return r.f.Close()
}

// ReadLines loads every raw line of a latin-1 file. The design-matrix
// builders work line-wise to preserve the source framing exactly.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading corpus %s", path)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding corpus %s", path)
	}
	return splitLines(string(decoded)), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
