package corpus

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Polarity is the sentiment label carried in the first CSV column.
type Polarity int

const (
	Negative Polarity = 0
	Neutral  Polarity = 2
	Positive Polarity = 4
)

// ErrInvalidPolarity marks rows whose polarity is neither extreme. Callers
// skip these rows rather than abort.
var ErrInvalidPolarity = errors.New("invalid polarity value")

// ErrBadRecord marks lines that do not split into the expected columns.
var ErrBadRecord = errors.New("malformed record")

// Extreme reports whether the polarity is one of the two trained classes.
func (p Polarity) Extreme() bool {
	return p == Positive || p == Negative
}

// ColumnNames is the fixed column set of the corpus files.
var ColumnNames = []string{"polarity", "id", "datetime", "query", "user", "text"}

// Record is one labeled sample. Only Polarity and Text feed the pipeline;
// the rest is kept for completeness of the source schema.
type Record struct {
	Polarity Polarity
	ID       uint64
	Datetime string
	Query    string
	User     string
	Text     string
}

// ParseLine splits a raw fully-quoted CSV line ("0","123","...","...","user","text")
// on the quote-comma-quote delimiter after trimming the outer quotes.
func ParseLine(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
		return Record{}, errors.Wrapf(ErrBadRecord, "line not quoted: %.40q", line)
	}
	fields := strings.Split(line[1:len(line)-1], "\",\"")
	if len(fields) != len(ColumnNames) {
		return Record{}, errors.Wrapf(ErrBadRecord, "got %d fields, want %d", len(fields), len(ColumnNames))
	}
	return fromFields(fields)
}

func fromFields(fields []string) (Record, error) {
	pv, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, errors.Wrapf(ErrBadRecord, "polarity %q not numeric", fields[0])
	}
	p := Polarity(pv)
	if !p.Extreme() {
		return Record{}, errors.Wrapf(ErrInvalidPolarity, "%d", pv)
	}
	id, _ := strconv.ParseUint(fields[1], 10, 64)
	return Record{
		Polarity: p,
		ID:       id,
		Datetime: fields[2],
		Query:    fields[3],
		User:     fields[4],
		Text:     fields[5],
	}, nil
}
