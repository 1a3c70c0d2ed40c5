package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Dense is a fully connected layer over a flat input.
type Dense struct {
	Out int

	in      int
	weights *Param // Out × in, row-major
	bias    *Param
	lastIn  []float64
}

func (l *Dense) Name() string { return "dense" }

func (l *Dense) init(in Shape) (Shape, error) {
	if len(in) != 1 {
		return nil, shapeMismatch(l.Name(), in, "is not flat (add Flatten first)")
	}
	if l.Out <= 0 {
		return nil, shapeMismatch(l.Name(), in, "feeds a non-positive output size")
	}
	l.in = in[0]
	l.weights = newParam(l.Out * l.in)
	l.bias = newParam(l.Out)
	scale := math.Sqrt(2.0 / float64(l.in))
	for i := range l.weights.Weights {
		l.weights.Weights[i] = rand.NormFloat64() * scale
	}
	return Shape{l.Out}, nil
}

func (l *Dense) Params() []*Param { return []*Param{l.weights, l.bias} }

func (l *Dense) Forward(in []float64) []float64 {
	l.lastIn = in
	out := make([]float64, l.Out)
	for o := 0; o < l.Out; o++ {
		row := l.weights.Weights[o*l.in : (o+1)*l.in]
		out[o] = floats.Dot(row, in) + l.bias.Weights[o]
	}
	return out
}

func (l *Dense) Backward(grad []float64) []float64 {
	dIn := make([]float64, l.in)
	for o := 0; o < l.Out; o++ {
		g := grad[o]
		l.bias.Grad[o] += g
		row := l.weights.Weights[o*l.in : (o+1)*l.in]
		gRow := l.weights.Grad[o*l.in : (o+1)*l.in]
		floats.AddScaled(gRow, g, l.lastIn)
		floats.AddScaled(dIn, g, row)
	}
	return dIn
}
