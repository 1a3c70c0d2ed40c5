package nn

import "math"

// ReLU zeroes negative values element-wise.
type ReLU struct {
	lastIn []float64
}

func (l *ReLU) Name() string { return "relu" }

func (l *ReLU) init(in Shape) (Shape, error) { return in, nil }

func (l *ReLU) Params() []*Param { return nil }

func (l *ReLU) Forward(in []float64) []float64 {
	l.lastIn = in
	out := make([]float64, len(in))
	for i, v := range in {
		if v > 0 {
			out[i] = v
		}
	}
	return out
}

func (l *ReLU) Backward(grad []float64) []float64 {
	dIn := make([]float64, len(grad))
	for i, v := range l.lastIn {
		if v > 0 {
			dIn[i] = grad[i]
		}
	}
	return dIn
}

// Softmax normalizes scores to a distribution. It must be the final layer
// and pairs with CategoricalCrossEntropy, whose Deriv is already taken with
// respect to the pre-softmax scores; Backward therefore passes the gradient
// through unchanged.
type Softmax struct{}

func (l *Softmax) Name() string { return "softmax" }

func (l *Softmax) init(in Shape) (Shape, error) {
	if len(in) != 1 {
		return nil, shapeMismatch(l.Name(), in, "is not flat")
	}
	return in, nil
}

func (l *Softmax) Params() []*Param { return nil }

func (l *Softmax) Forward(in []float64) []float64 {
	return softmax(in)
}

func (l *Softmax) Backward(grad []float64) []float64 { return grad }

func softmax(scores []float64) []float64 {
	maxv := math.Inf(-1)
	for _, v := range scores {
		if v > maxv {
			maxv = v
		}
	}
	out := make([]float64, len(scores))
	sum := 0.0
	for i, v := range scores {
		out[i] = math.Exp(v - maxv)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
