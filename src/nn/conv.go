package nn

import (
	"math"
	"math/rand"
)

// Conv2D is a stride-1, same-padding 2D convolution over an H×W×C input,
// producing H×W×Filters.
type Conv2D struct {
	Filters int
	Size    int // square window edge

	h, w, c int
	pad     int
	kernels *Param // Filters × (Size*Size*C)
	bias    *Param
	lastIn  []float64
}

func (l *Conv2D) Name() string { return "conv2d" }

func (l *Conv2D) init(in Shape) (Shape, error) {
	if len(in) != 3 {
		return nil, shapeMismatch(l.Name(), in, "is not H×W×C")
	}
	if l.Filters <= 0 || l.Size <= 0 || l.Size%2 == 0 {
		return nil, shapeMismatch(l.Name(), in, "needs positive filters and an odd window")
	}
	l.h, l.w, l.c = in[0], in[1], in[2]
	l.pad = l.Size / 2
	fanIn := l.Size * l.Size * l.c
	l.kernels = newParam(l.Filters * fanIn)
	l.bias = newParam(l.Filters)
	scale := math.Sqrt(2.0 / float64(fanIn))
	for i := range l.kernels.Weights {
		l.kernels.Weights[i] = rand.NormFloat64() * scale
	}
	return Shape{l.h, l.w, l.Filters}, nil
}

func (l *Conv2D) Params() []*Param { return []*Param{l.kernels, l.bias} }

func (l *Conv2D) Forward(in []float64) []float64 {
	l.lastIn = in
	out := make([]float64, l.h*l.w*l.Filters)
	kw := l.Size * l.Size * l.c
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			for f := 0; f < l.Filters; f++ {
				sum := l.bias.Weights[f]
				base := f * kw
				for ky := 0; ky < l.Size; ky++ {
					iy := y + ky - l.pad
					if iy < 0 || iy >= l.h {
						continue
					}
					for kx := 0; kx < l.Size; kx++ {
						ix := x + kx - l.pad
						if ix < 0 || ix >= l.w {
							continue
						}
						inOff := (iy*l.w + ix) * l.c
						kOff := base + (ky*l.Size+kx)*l.c
						for c := 0; c < l.c; c++ {
							sum += in[inOff+c] * l.kernels.Weights[kOff+c]
						}
					}
				}
				out[(y*l.w+x)*l.Filters+f] = sum
			}
		}
	}
	return out
}

func (l *Conv2D) Backward(grad []float64) []float64 {
	dIn := make([]float64, len(l.lastIn))
	kw := l.Size * l.Size * l.c
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			for f := 0; f < l.Filters; f++ {
				g := grad[(y*l.w+x)*l.Filters+f]
				if g == 0 {
					continue
				}
				l.bias.Grad[f] += g
				base := f * kw
				for ky := 0; ky < l.Size; ky++ {
					iy := y + ky - l.pad
					if iy < 0 || iy >= l.h {
						continue
					}
					for kx := 0; kx < l.Size; kx++ {
						ix := x + kx - l.pad
						if ix < 0 || ix >= l.w {
							continue
						}
						inOff := (iy*l.w + ix) * l.c
						kOff := base + (ky*l.Size+kx)*l.c
						for c := 0; c < l.c; c++ {
							l.kernels.Grad[kOff+c] += g * l.lastIn[inOff+c]
							dIn[inOff+c] += g * l.kernels.Weights[kOff+c]
						}
					}
				}
			}
		}
	}
	return dIn
}

// MaxPool downsamples each channel by a square window, keeping the max.
type MaxPool struct {
	Size int

	h, w, c    int
	outH, outW int
	argmax     []int
}

func (l *MaxPool) Name() string { return "maxpool" }

func (l *MaxPool) init(in Shape) (Shape, error) {
	if len(in) != 3 {
		return nil, shapeMismatch(l.Name(), in, "is not H×W×C")
	}
	if l.Size <= 0 || in[0]%l.Size != 0 || in[1]%l.Size != 0 {
		return nil, shapeMismatch(l.Name(), in, "is not divisible by the pool window")
	}
	l.h, l.w, l.c = in[0], in[1], in[2]
	l.outH, l.outW = l.h/l.Size, l.w/l.Size
	return Shape{l.outH, l.outW, l.c}, nil
}

func (l *MaxPool) Params() []*Param { return nil }

func (l *MaxPool) Forward(in []float64) []float64 {
	out := make([]float64, l.outH*l.outW*l.c)
	l.argmax = make([]int, len(out))
	for oy := 0; oy < l.outH; oy++ {
		for ox := 0; ox < l.outW; ox++ {
			for c := 0; c < l.c; c++ {
				best := math.Inf(-1)
				bestIdx := -1
				for py := 0; py < l.Size; py++ {
					for px := 0; px < l.Size; px++ {
						idx := ((oy*l.Size+py)*l.w+ox*l.Size+px)*l.c + c
						if in[idx] > best {
							best = in[idx]
							bestIdx = idx
						}
					}
				}
				o := (oy*l.outW+ox)*l.c + c
				out[o] = best
				l.argmax[o] = bestIdx
			}
		}
	}
	return out
}

func (l *MaxPool) Backward(grad []float64) []float64 {
	dIn := make([]float64, l.h*l.w*l.c)
	for o, idx := range l.argmax {
		dIn[idx] += grad[o]
	}
	return dIn
}

// Flatten collapses any shape to a vector; the data is already flat.
type Flatten struct {
	in Shape
}

func (l *Flatten) Name() string { return "flatten" }

func (l *Flatten) init(in Shape) (Shape, error) {
	l.in = in
	return Shape{in.Size()}, nil
}

func (l *Flatten) Params() []*Param { return nil }

func (l *Flatten) Forward(in []float64) []float64 { return in }

func (l *Flatten) Backward(grad []float64) []float64 { return grad }
