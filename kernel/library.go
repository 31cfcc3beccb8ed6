package kernel

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Default Gaussian parameters.
const (
	DefaultGaussianRadius = 3
	DefaultGaussianSigma  = 2.0
)

var (
	errNegativeRadius = errors.New("kernel: negative radius")
	errBadSigma       = errors.New("kernel: sigma must be positive")
)

// Identity returns the 1x1 kernel that leaves an image unchanged.
func Identity() Kernel {
	return Kernel{weights: []float64{1}}
}

// Box returns the 3x3 mean blur kernel.
func Box() Kernel {
	const w = 1.0 / 9
	return Must([][]float64{
		{w, w, w},
		{w, w, w},
		{w, w, w},
	})
}

// Gaussian returns a normalized (2r+1)x(2r+1) Gaussian kernel whose weights
// sum to 1.
func Gaussian(radius int, sigma float64) (Kernel, error) {
	if radius < 0 {
		return Kernel{}, errNegativeRadius
	} else if !(sigma > 0) || math.IsInf(sigma, 1) {
		return Kernel{}, errBadSigma
	}
	size := 2*radius + 1
	weights := make([]float64, 0, size*size)
	twoSigma2 := 2 * sigma * sigma
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			weights = append(weights, math.Exp(-float64(i*i+j*j)/twoSigma2))
		}
	}
	// The center weight is exp(0)=1 so norm >= 1.
	floats.Scale(1/floats.Sum(weights), weights)
	return Kernel{rx: radius, ry: radius, weights: weights}, nil
}

// DefaultGaussian returns the Gaussian kernel with radius 3 and sigma 2.
func DefaultGaussian() Kernel {
	k, err := Gaussian(DefaultGaussianRadius, DefaultGaussianSigma)
	if err != nil {
		panic(err)
	}
	return k
}

// Sharpen returns the 3x3 sharpening kernel.
func Sharpen() Kernel {
	return Must([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
}

// EdgeDetect returns a 3x3 Prewitt-style first derivative kernel responding
// to intensity increasing left to right. It is a single directional kernel,
// not a gradient magnitude.
func EdgeDetect() Kernel {
	return Must([][]float64{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	})
}
