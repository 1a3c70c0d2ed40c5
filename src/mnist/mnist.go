// Package mnist loads the gzip-compressed IDX image and label files of the
// MNIST handwritten-digit dataset from a local directory.
package mnist

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"SentiVec/src/library/log"
)

const (
	magicImages = 2051
	magicLabels = 2049

	// NumClasses is the digit class count.
	NumClasses = 10
)

// Standard file names as distributed.
const (
	TrainImagesFile = "train-images-idx3-ubyte.gz"
	TrainLabelsFile = "train-labels-idx1-ubyte.gz"
	TestImagesFile  = "t10k-images-idx3-ubyte.gz"
	TestLabelsFile  = "t10k-labels-idx1-ubyte.gz"
)

// Split is one half of the dataset: images as an n × (rows*cols) matrix of
// [0,1] intensities, labels as digits. The single channel is implicit and
// appended by Shape.
type Split struct {
	Images *mat.Dense
	Labels []int
	Rows   int
	Cols   int
}

// Shape is the per-sample H×W×C shape, channel count 1.
func (s *Split) Shape() []int { return []int{s.Rows, s.Cols, 1} }

// Len is the sample count.
func (s *Split) Len() int {
	n, _ := s.Images.Dims()
	return n
}

// LoadData reads both splits from dir.
func LoadData(dir string) (train, test *Split, err error) {
	train, err = loadSplit(dir, TrainImagesFile, TrainLabelsFile)
	if err != nil {
		return nil, nil, err
	}
	test, err = loadSplit(dir, TestImagesFile, TestLabelsFile)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("mnist: %d train, %d test samples of %dx%d", train.Len(), test.Len(), train.Rows, train.Cols)
	return train, test, nil
}

func loadSplit(dir, imagesFile, labelsFile string) (*Split, error) {
	images, rows, cols, err := readImages(filepath.Join(dir, imagesFile))
	if err != nil {
		return nil, err
	}
	labels, err := readLabels(filepath.Join(dir, labelsFile))
	if err != nil {
		return nil, err
	}
	n, _ := images.Dims()
	if n != len(labels) {
		return nil, errors.Errorf("%s: %d images vs %d labels", dir, n, len(labels))
	}
	return &Split{Images: images, Labels: labels, Rows: rows, Cols: cols}, nil
}

func openIDX(path string, wantMagic uint32) (io.ReadCloser, *gzip.Reader, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, errors.Wrapf(err, "opening %s", path)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, 0, errors.Wrapf(err, "reading gzip header of %s", path)
	}
	var header [8]byte
	if _, err := io.ReadFull(zr, header[:]); err != nil {
		f.Close()
		return nil, nil, 0, errors.Wrapf(err, "reading IDX header of %s", path)
	}
	magic := binary.BigEndian.Uint32(header[:4])
	if magic != wantMagic {
		f.Close()
		return nil, nil, 0, errors.Errorf("%s: IDX magic %d, want %d", path, magic, wantMagic)
	}
	count := binary.BigEndian.Uint32(header[4:])
	return f, zr, count, nil
}

func readImages(path string) (*mat.Dense, int, int, error) {
	f, zr, count, err := openIDX(path, magicImages)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()
	defer zr.Close()

	var dims [8]byte
	if _, err := io.ReadFull(zr, dims[:]); err != nil {
		return nil, 0, 0, errors.Wrapf(err, "reading image dims of %s", path)
	}
	rows := int(binary.BigEndian.Uint32(dims[:4]))
	cols := int(binary.BigEndian.Uint32(dims[4:]))

	n := int(count)
	pixels := rows * cols
	raw := make([]byte, n*pixels)
	if _, err := io.ReadFull(zr, raw); err != nil {
		return nil, 0, 0, errors.Wrapf(err, "reading %d images of %s", n, path)
	}
	data := make([]float64, len(raw))
	for i, b := range raw {
		data[i] = float64(b) / 255.0
	}
	return mat.NewDense(n, pixels, data), rows, cols, nil
}

func readLabels(path string) ([]int, error) {
	f, zr, count, err := openIDX(path, magicLabels)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer zr.Close()

	raw := make([]byte, int(count))
	if _, err := io.ReadFull(zr, raw); err != nil {
		return nil, errors.Wrapf(err, "reading %d labels of %s", count, path)
	}
	labels := make([]int, len(raw))
	for i, b := range raw {
		labels[i] = int(b)
	}
	return labels, nil
}
