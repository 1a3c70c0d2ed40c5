package features

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"SentiVec/src/analyzer"
	"SentiVec/src/lexicon"
	"SentiVec/src/library/config"
	"SentiVec/src/library/log"
)

// VectorizedSuffix is appended to an input file to name its on-disk design
// matrix (the writer adds the trailing .gz).
const VectorizedSuffix = ".vectorized.csv"

// Prepare resolves corpus paths and the lexicon for the configured dataset.
// The lexicon comes from its snapshot when present, else it is built from
// the training corpus.
func Prepare(cfg *config.AppConfig, an *analyzer.Analyzer) (trainPath, testPath string, lex *lexicon.Lexicon, err error) {
	trainPath = filepath.Join(cfg.DataDir, cfg.TrainFile)
	testPath = filepath.Join(cfg.DataDir, cfg.TestFile)
	lexicon.SetCacheTTL(cfg.Lexicon.CacheTTL)
	lex, err = lexicon.LoadOrCreate(trainPath, func() (*lexicon.Lexicon, error) {
		nLines, built, err := lexicon.Build(an, []string{trainPath}, cfg.Lexicon.MinCount, cfg.Lexicon.MaxCount)
		if err != nil {
			return nil, err
		}
		log.Debug("lexicon built over %d lines, %d tokens", nLines, built.Size())
		return built, nil
	})
	return trainPath, testPath, lex, err
}

// VectorizeCorpus writes the on-disk design matrices for both corpus files.
// The test file goes first: it is small, so a broken lexicon fails fast
// before the long training pass.
func VectorizeCorpus(cfg *config.AppConfig, an *analyzer.Analyzer) error {
	trainPath, testPath, lex, err := Prepare(cfg, an)
	if err != nil {
		return err
	}
	v := NewVectorizer(an, lex)
	for _, path := range []string{testPath, trainPath} {
		n, err := v.WriteRows(path, path+VectorizedSuffix, cfg.MaxLines)
		if err != nil {
			return errors.Wrapf(err, "vectorizing %s", path)
		}
		log.Info("wrote %d rows for %s", n, path)
	}
	return nil
}

// ProcessedData bundles the four in-memory design matrices.
type ProcessedData struct {
	XTrain, YTrain *mat.Dense
	XTest, YTest   *mat.Dense
}

// gob-safe flat form; mat.Dense keeps its storage unexported.
type matrixBlob struct {
	Rows, Cols int
	Data       []float64
}

func toBlob(m *mat.Dense) matrixBlob {
	raw := m.RawMatrix()
	data := make([]float64, len(raw.Data))
	copy(data, raw.Data)
	return matrixBlob{Rows: raw.Rows, Cols: raw.Cols, Data: data}
}

func fromBlob(b matrixBlob) *mat.Dense {
	return mat.NewDense(b.Rows, b.Cols, b.Data)
}

// SaveProcessed snapshots all four matrices into a single gob file.
func SaveProcessed(path string, data *ProcessedData) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	blobs := []matrixBlob{
		toBlob(data.XTrain), toBlob(data.YTrain),
		toBlob(data.XTest), toBlob(data.YTest),
	}
	if err := gob.NewEncoder(f).Encode(blobs); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return nil
}

// LoadProcessed reads a snapshot written by SaveProcessed.
func LoadProcessed(path string) (*ProcessedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	var blobs []matrixBlob
	if err := gob.NewDecoder(f).Decode(&blobs); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	if len(blobs) != 4 {
		return nil, errors.Errorf("%s: got %d matrices, want 4", path, len(blobs))
	}
	return &ProcessedData{
		XTrain: fromBlob(blobs[0]), YTrain: fromBlob(blobs[1]),
		XTest: fromBlob(blobs[2]), YTest: fromBlob(blobs[3]),
	}, nil
}
