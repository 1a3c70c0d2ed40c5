package nn

import "math"

// Optimizer applies accumulated gradients to a parameter tensor and clears
// them. Step is called once per mini-batch per parameter.
type Optimizer interface {
	Step(p *Param, batchSize int)
}

// RMSProp keeps a running average of squared gradients per weight.
type RMSProp struct {
	LearningRate float64
	Decay        float64
	Epsilon      float64
}

// NewRMSProp uses the conventional decay 0.9 and epsilon 1e-8.
func NewRMSProp(learningRate float64) *RMSProp {
	return &RMSProp{LearningRate: learningRate, Decay: 0.9, Epsilon: 1e-8}
}

func (o *RMSProp) Step(p *Param, batchSize int) {
	scale := 1.0 / float64(batchSize)
	for i := range p.Weights {
		g := p.Grad[i] * scale
		p.state[i] = o.Decay*p.state[i] + (1-o.Decay)*g*g
		p.Weights[i] -= o.LearningRate * g / (math.Sqrt(p.state[i]) + o.Epsilon)
		p.Grad[i] = 0
	}
}

// SGD is plain gradient descent, mostly for tests.
type SGD struct {
	LearningRate float64
}

func (o *SGD) Step(p *Param, batchSize int) {
	scale := o.LearningRate / float64(batchSize)
	for i := range p.Weights {
		p.Weights[i] -= scale * p.Grad[i]
		p.Grad[i] = 0
	}
}
