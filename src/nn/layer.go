// Package nn is a minimal sequential neural-network harness: convolutional
// and dense layers, softmax cross-entropy, RMSProp, and a batched fit /
// evaluate loop.
package nn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape is the per-sample dimensionality of a layer boundary, e.g.
// [28 28 1] for a monochrome image or [10] for class scores.
type Shape []int

// Size is the flat element count.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

func (s Shape) String() string { return fmt.Sprint([]int(s)) }

// Param is one weight tensor with its gradient accumulator and optimizer
// state. Gradients accumulate across a batch and are cleared by the
// optimizer step.
type Param struct {
	Weights []float64
	Grad    []float64
	state   []float64 // per-optimizer running cache
}

func newParam(n int) *Param {
	return &Param{
		Weights: make([]float64, n),
		Grad:    make([]float64, n),
		state:   make([]float64, n),
	}
}

// Layer is one stage of the sequential model. Forward keeps whatever it
// needs for the following Backward; the model trains one sample at a time
// inside a batch, accumulating parameter gradients.
type Layer interface {
	Name() string

	// init validates the input shape, allocates weights, and returns the
	// output shape.
	init(in Shape) (Shape, error)

	// Forward maps one flat input sample to the flat output.
	Forward(in []float64) []float64

	// Backward maps the gradient at the output back to the input,
	// accumulating parameter gradients along the way.
	Backward(grad []float64) []float64

	// Params returns the trainable tensors; nil for stateless layers.
	Params() []*Param
}

func shapeMismatch(layer string, in Shape, why string) error {
	return errors.Errorf("%s: input shape %v %s", layer, in, why)
}
