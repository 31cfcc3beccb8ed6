package filters

import (
	"errors"
	"math"

	"github.com/soypat/pixfilter"
)

// Default geometric filter parameters.
const (
	DefaultWaveAmplitude = 20
	DefaultWavePeriod    = 30
	DefaultShiftOffset   = 50
)

// WarpFunc maps an output coordinate to the source coordinate it copies.
// ok=false means the output pixel has no source and is filled with opaque black.
type WarpFunc func(d pixfilter.Dims, x, y int) (sx, sy int, ok bool)

// WarpFilter moves pixels around without changing their color.
type WarpFilter struct {
	Fn    WarpFunc
	Ctrls []pixfilter.Control
}

var _ pixfilter.Filter = (*WarpFilter)(nil)

// ComputeColor implements [pixfilter.Transform].
func (f *WarpFilter) ComputeColor(src pixfilter.Image, x, y int) pixfilter.Color {
	sx, sy, ok := f.Fn(src.Dims(), x, y)
	if !ok {
		return pixfilter.Black
	}
	return src.ColorAt(sx, sy)
}

// Controls implements [pixfilter.Filter].
func (f *WarpFilter) Controls() []pixfilter.Control { return f.Ctrls }

// Apply implements [pixfilter.Filter].
func (f *WarpFilter) Apply(src pixfilter.Image, progress pixfilter.ProgressFunc, cancelled pixfilter.CancelledFunc) (*pixfilter.RGBA, error) {
	if f.Fn == nil {
		return nil, errorString("nil WarpFunc")
	}
	return pixfilter.Process(src, f, progress, cancelled)
}

var (
	errWavePeriod    = errors.New("wave period must be positive and finite")
	errWaveAmplitude = errors.New("wave amplitude must be finite")
)

func validateWave(amplitude, period float64) error {
	if math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return errWaveAmplitude
	} else if !(period > 0) || math.IsInf(period, 1) {
		return errWavePeriod
	}
	return nil
}

// NewWave creates a filter displacing each column horizontally by
// round(amplitude*sin(2*pi*x/period)). Samples past the border are clamped.
func NewWave(amplitude, period float64) (*WarpFilter, error) {
	if err := validateWave(amplitude, period); err != nil {
		return nil, err
	}
	amp, per := amplitude, period
	return &WarpFilter{
		Fn: func(d pixfilter.Dims, x, y int) (int, int, bool) {
			dx := int(math.Round(amp * math.Sin(2*math.Pi*float64(x)/per)))
			return pixfilter.Clamp(x+dx, 0, d.Width-1), y, true
		},
		Ctrls: []pixfilter.Control{
			&pixfilter.ControlOrdered[float64]{
				Name:        "Amplitude",
				Description: "Maximum horizontal displacement in pixels",
				Value:       amp,
				Min:         0,
				Max:         1000,
				Step:        1,
				OnChange: func(v float64) error {
					amp = v
					return nil
				},
			},
			&pixfilter.ControlOrdered[float64]{
				Name:        "Period",
				Description: "Wavelength in pixels",
				Value:       per,
				Min:         1,
				Max:         10000,
				Step:        1,
				OnChange: func(v float64) error {
					per = v
					return nil
				},
			},
		},
	}, nil
}

// NewShift creates a filter moving the image left by offset pixels. Columns
// with no source pixel become opaque black.
func NewShift(offset int) *WarpFilter {
	k := offset
	return &WarpFilter{
		Fn: func(d pixfilter.Dims, x, y int) (int, int, bool) {
			sx := x + k
			return sx, y, sx >= 0 && sx < d.Width
		},
		Ctrls: []pixfilter.Control{
			&pixfilter.ControlOrdered[int]{
				Name:        "Offset",
				Description: "Horizontal shift in pixels",
				Value:       k,
				Min:         -1 << 16,
				Max:         1 << 16,
				Step:        1,
				OnChange: func(v int) error {
					k = v
					return nil
				},
			},
		},
	}
}
