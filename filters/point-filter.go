package filters

import "github.com/soypat/pixfilter"

// PointFunc maps one source color to its output color.
type PointFunc func(c pixfilter.Color) pixfilter.Color

// PointFilter applies a per-pixel color transformation that depends only on
// the source pixel at the same coordinate.
// It handles the iteration, progress and cancellation common to all per-pixel filters.
type PointFilter struct {
	Fn    PointFunc
	Ctrls []pixfilter.Control // User-defined controls for this filter.
}

var _ pixfilter.Filter = (*PointFilter)(nil)

// ComputeColor implements [pixfilter.Transform].
func (f *PointFilter) ComputeColor(src pixfilter.Image, x, y int) pixfilter.Color {
	return f.Fn(src.ColorAt(x, y))
}

// Controls implements [pixfilter.Filter].
func (f *PointFilter) Controls() []pixfilter.Control {
	return f.Ctrls
}

// Apply implements [pixfilter.Filter].
func (f *PointFilter) Apply(src pixfilter.Image, progress pixfilter.ProgressFunc, cancelled pixfilter.CancelledFunc) (*pixfilter.RGBA, error) {
	if f.Fn == nil {
		return nil, errNilPointFunc
	}
	return pixfilter.Process(src, f, progress, cancelled)
}

var errNilPointFunc = errorString("nil PointFunc")

type errorString string

func (e errorString) Error() string { return string(e) }
