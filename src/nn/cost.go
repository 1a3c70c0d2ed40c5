package nn

import "math"

// CostFunction scores model outputs against one-hot targets and provides
// the gradient that starts backpropagation.
type CostFunction interface {
	Cost(outs, targets []float64) float64
	Deriv(outs, targets []float64) []float64
}

// CategoricalCrossEntropy expects probability outputs (a trailing Softmax
// layer). Its Deriv is the fused softmax gradient p - y, taken with respect
// to the pre-softmax scores; Softmax.Backward passes it through untouched.
type CategoricalCrossEntropy struct{}

const ceEpsilon = 1e-12

func (CategoricalCrossEntropy) Cost(outs, targets []float64) float64 {
	cost := 0.0
	for i, y := range targets {
		if y != 0 {
			cost -= y * math.Log(outs[i]+ceEpsilon)
		}
	}
	return cost
}

func (CategoricalCrossEntropy) Deriv(outs, targets []float64) []float64 {
	d := make([]float64, len(outs))
	for i := range outs {
		d[i] = outs[i] - targets[i]
	}
	return d
}

// MSE is kept for non-classification heads and tests.
type MSE struct{}

func (MSE) Cost(outs, targets []float64) float64 {
	sum := 0.0
	for i := range outs {
		diff := outs[i] - targets[i]
		sum += diff * diff
	}
	return sum / float64(len(outs))
}

func (MSE) Deriv(outs, targets []float64) []float64 {
	d := make([]float64, len(outs))
	for i := range outs {
		d[i] = 2 * (outs[i] - targets[i]) / float64(len(outs))
	}
	return d
}
