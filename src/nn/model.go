package nn

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"SentiVec/src/library/log"
)

// Model is a sequential layer stack with a cost function and optimizer.
type Model struct {
	name     string
	inShape  Shape
	layers   []Layer
	cost     CostFunction
	opt      Optimizer
	params   []*Param
	compiled bool
}

// NewModel builds an uncompiled model over the given input shape.
func NewModel(name string, in Shape, layers ...Layer) *Model {
	return &Model{name: name, inShape: in, layers: layers}
}

// Add appends layers; only valid before Compile.
func (m *Model) Add(layers ...Layer) *Model {
	m.layers = append(m.layers, layers...)
	return m
}

// Compile walks the layer shapes, allocates weights, and binds the cost
// function and optimizer.
func (m *Model) Compile(opt Optimizer, cost CostFunction) error {
	if m.compiled {
		return errors.New("model already compiled")
	}
	if opt == nil || cost == nil {
		return errors.New("compile needs an optimizer and a cost function")
	}
	shape := m.inShape
	for _, l := range m.layers {
		out, err := l.init(shape)
		if err != nil {
			return errors.Wrapf(err, "compiling %s", m.name)
		}
		log.Debug("%s: %s %v -> %v", m.name, l.Name(), shape, out)
		shape = out
		m.params = append(m.params, l.Params()...)
	}
	m.cost = cost
	m.opt = opt
	m.compiled = true
	return nil
}

// Predict runs one sample forward.
func (m *Model) Predict(x []float64) ([]float64, error) {
	if !m.compiled {
		return nil, errors.New("model not compiled")
	}
	if len(x) != m.inShape.Size() {
		return nil, errors.Errorf("input length %d, want %d", len(x), m.inShape.Size())
	}
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out, nil
}

// FitConfig drives the training loop.
type FitConfig struct {
	Epochs          int
	BatchSize       int
	ValidationSplit float64 // tail fraction held out, 0..1
	Shuffle         bool
	Seed            int64
}

// EpochStats is one row of the fit history.
type EpochStats struct {
	Epoch       int
	TrainCost   float64
	ValCost     float64
	ValAccuracy float64
	Elapsed     time.Duration
}

// Fit trains on rows of x against one-hot rows of y with mini-batch
// gradient descent, reporting per-epoch training cost and validation
// cost/accuracy.
func (m *Model) Fit(x, y *mat.Dense, cfg FitConfig) ([]EpochStats, error) {
	if !m.compiled {
		return nil, errors.New("model not compiled")
	}
	n, d := x.Dims()
	ny, _ := y.Dims()
	if n != ny {
		return nil, errors.Errorf("x has %d rows, y has %d", n, ny)
	}
	if d != m.inShape.Size() {
		return nil, errors.Errorf("x row length %d, want %d", d, m.inShape.Size())
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		return nil, errors.Errorf("validation split %v out of range", cfg.ValidationSplit)
	}

	nVal := int(float64(n) * cfg.ValidationSplit)
	nTrain := n - nVal
	if nTrain == 0 {
		return nil, errors.New("validation split leaves no training rows")
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	idx := make([]int, nTrain)
	for i := range idx {
		idx[i] = i
	}

	history := make([]EpochStats, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		start := time.Now()
		if cfg.Shuffle {
			rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		}
		costSum := 0.0
		for b := 0; b < nTrain; b += cfg.BatchSize {
			end := b + cfg.BatchSize
			if end > nTrain {
				end = nTrain
			}
			for _, i := range idx[b:end] {
				costSum += m.trainOne(x.RawRowView(i), y.RawRowView(i))
			}
			for _, p := range m.params {
				m.opt.Step(p, end-b)
			}
		}
		stats := EpochStats{
			Epoch:     epoch,
			TrainCost: costSum / float64(nTrain),
			Elapsed:   time.Since(start),
		}
		if nVal > 0 {
			stats.ValCost, stats.ValAccuracy = m.evalRange(x, y, nTrain, n)
		}
		log.Info("%s epoch %d/%d: cost=%.4f val_cost=%.4f val_acc=%.4f (%v)",
			m.name, epoch, cfg.Epochs, stats.TrainCost, stats.ValCost, stats.ValAccuracy,
			stats.Elapsed.Round(time.Millisecond))
		history = append(history, stats)
	}
	return history, nil
}

func (m *Model) trainOne(x, target []float64) float64 {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	grad := m.cost.Deriv(out, target)
	for i := len(m.layers) - 1; i >= 0; i-- {
		grad = m.layers[i].Backward(grad)
	}
	return m.cost.Cost(out, target)
}

// Evaluate returns mean cost and categorical accuracy over all rows.
func (m *Model) Evaluate(x, y *mat.Dense) (cost, accuracy float64, err error) {
	if !m.compiled {
		return 0, 0, errors.New("model not compiled")
	}
	n, _ := x.Dims()
	cost, accuracy = m.evalRange(x, y, 0, n)
	return cost, accuracy, nil
}

func (m *Model) evalRange(x, y *mat.Dense, from, to int) (cost, accuracy float64) {
	correct := 0
	for i := from; i < to; i++ {
		out, _ := m.Predict(x.RawRowView(i))
		target := y.RawRowView(i)
		cost += m.cost.Cost(out, target)
		if argmax(out) == argmax(target) {
			correct++
		}
	}
	n := float64(to - from)
	if n == 0 {
		return 0, 0
	}
	return cost / n, float64(correct) / n
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// ConvTower mirrors the inception-style stem: a 1×1 convolution feeding a
// window×window one, both ReLU, same padding.
func ConvTower(window, filters int) []Layer {
	return []Layer{
		&Conv2D{Filters: filters, Size: 1},
		&ReLU{},
		&Conv2D{Filters: filters, Size: window},
		&ReLU{},
	}
}

// OneHot encodes integer labels as an n × classes matrix.
func OneHot(labels []int, classes int) *mat.Dense {
	out := mat.NewDense(len(labels), classes, nil)
	for i, l := range labels {
		if l >= 0 && l < classes {
			out.Set(i, l, 1)
		}
	}
	return out
}
