// Package kernel implements convolution kernels, a library of common
// kernels and the edge-clamped convolution engine.
package kernel

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	errEmpty   = errors.New("kernel: empty weight matrix")
	errRagged  = errors.New("kernel: rows of different length")
	errEvenDim = errors.New("kernel: dimensions must be odd")
)

// Kernel is an immutable 2D grid of weights with odd width and height.
// Its center cell sits at offset (0,0).
type Kernel struct {
	rx, ry  int
	weights []float64 // row-major, (2*ry+1) rows of (2*rx+1) weights.
}

// New builds a kernel from rows of weights: rows[j][i] is the weight applied
// to the neighbor at offset (i-rx, j-ry). The input is copied.
func New(rows [][]float64) (Kernel, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Kernel{}, errEmpty
	}
	w, h := len(rows[0]), len(rows)
	if w%2 == 0 || h%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: got %dx%d", errEvenDim, w, h)
	}
	weights := make([]float64, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			return Kernel{}, errRagged
		}
		weights = append(weights, row...)
	}
	return Kernel{rx: w / 2, ry: h / 2, weights: weights}, nil
}

// Must is like [New] but panics on error. Intended for package-level
// literals whose shape is known to be valid.
func Must(rows [][]float64) Kernel {
	k, err := New(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Radii returns the half-width and half-height of the kernel.
func (k Kernel) Radii() (rx, ry int) { return k.rx, k.ry }

// Size returns the width and height of the kernel.
func (k Kernel) Size() (w, h int) { return 2*k.rx + 1, 2*k.ry + 1 }

// At returns the weight for the neighbor at horizontal offset dx and
// vertical offset dy, both relative to the center.
func (k Kernel) At(dx, dy int) float64 {
	return k.weights[(dy+k.ry)*(2*k.rx+1)+dx+k.rx]
}

// IsZero reports whether k is the zero value, which holds no weights.
func (k Kernel) IsZero() bool { return len(k.weights) == 0 }

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 { return floats.Sum(k.weights) }

// Rows returns a copy of the weights in the layout accepted by [New].
func (k Kernel) Rows() [][]float64 {
	w, h := k.Size()
	rows := make([][]float64, h)
	for j := range rows {
		rows[j] = append([]float64(nil), k.weights[j*w:(j+1)*w]...)
	}
	return rows
}
