package filters

import (
	"github.com/soypat/pixfilter"
	"github.com/soypat/pixfilter/kernel"
)

var errZeroKernel = errorString("convolution filter has no kernel")

// Convolution applies a kernel to the edge-clamped neighborhood of every
// pixel. Output is opaque; source alpha is not propagated.
type Convolution struct {
	kernel kernel.Kernel
	ctrls  []pixfilter.Control
}

var _ pixfilter.Filter = (*Convolution)(nil)

// NewConvolution creates a filter from an already built kernel.
func NewConvolution(k kernel.Kernel) *Convolution {
	return &Convolution{kernel: k}
}

// NewBlur creates a 3x3 box blur filter.
func NewBlur() *Convolution { return NewConvolution(kernel.Box()) }

// NewSharpen creates a 3x3 sharpening filter.
func NewSharpen() *Convolution { return NewConvolution(kernel.Sharpen()) }

// NewEdgeDetect creates a horizontal first derivative filter.
func NewEdgeDetect() *Convolution { return NewConvolution(kernel.EdgeDetect()) }

// NewGaussian creates a Gaussian blur filter. Radius and sigma are validated
// here so bad parameters never reach the per-pixel loop.
func NewGaussian(radius int, sigma float64) (*Convolution, error) {
	k, err := kernel.Gaussian(radius, sigma)
	if err != nil {
		return nil, err
	}
	f := &Convolution{kernel: k}
	r, s := radius, sigma
	f.ctrls = []pixfilter.Control{
		&pixfilter.ControlOrdered[int]{
			Name:        "Radius",
			Description: "Half size of the kernel in pixels",
			Value:       r,
			Min:         0,
			Max:         64,
			Step:        1,
			OnChange: func(v int) error {
				k, err := kernel.Gaussian(v, s)
				if err != nil {
					return err
				}
				f.kernel, r = k, v
				return nil
			},
		},
		&pixfilter.ControlOrdered[float64]{
			Name:        "Sigma",
			Description: "Standard deviation of the Gaussian",
			Value:       s,
			Min:         0.01,
			Max:         64,
			Step:        0.1,
			OnChange: func(v float64) error {
				k, err := kernel.Gaussian(r, v)
				if err != nil {
					return err
				}
				f.kernel, s = k, v
				return nil
			},
		},
	}
	return f, nil
}

// Kernel returns the kernel currently used by the filter.
func (f *Convolution) Kernel() kernel.Kernel { return f.kernel }

// ComputeColor implements [pixfilter.Transform].
func (f *Convolution) ComputeColor(src pixfilter.Image, x, y int) pixfilter.Color {
	return kernel.Convolve(src, f.kernel, x, y)
}

// Controls implements [pixfilter.Filter].
func (f *Convolution) Controls() []pixfilter.Control { return f.ctrls }

// Apply implements [pixfilter.Filter].
func (f *Convolution) Apply(src pixfilter.Image, progress pixfilter.ProgressFunc, cancelled pixfilter.CancelledFunc) (*pixfilter.RGBA, error) {
	if f.kernel.IsZero() {
		return nil, errZeroKernel
	}
	return pixfilter.Process(src, f, progress, cancelled)
}
