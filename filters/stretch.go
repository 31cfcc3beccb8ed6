package filters

import (
	"github.com/sirupsen/logrus"
	"github.com/soypat/pixfilter"
)

// ChannelRange holds per-channel extremes of an image's R, G and B values.
// The zero value is not meaningful; use [NewChannelRange].
type ChannelRange struct {
	Min [3]int
	Max [3]int
}

// NewChannelRange returns a range seeded outside [0,255] so the first
// observed color sets both bounds.
func NewChannelRange() ChannelRange {
	return ChannelRange{Min: [3]int{256, 256, 256}, Max: [3]int{-1, -1, -1}}
}

// Observe widens r to include c.
func (r *ChannelRange) Observe(c pixfilter.Color) {
	for i, v := range [3]int{int(c.R), int(c.G), int(c.B)} {
		r.Min[i] = min(r.Min[i], v)
		r.Max[i] = max(r.Max[i], v)
	}
}

// ScanRange is the statistics pass of contrast stretching. It visits every
// pixel of src column by column, reporting progress and polling cancelled
// like [pixfilter.Process].
func ScanRange(src pixfilter.Image, progress pixfilter.ProgressFunc, cancelled pixfilter.CancelledFunc) (ChannelRange, error) {
	d := src.Dims()
	if err := d.ValidateSize(); err != nil {
		return ChannelRange{}, err
	}
	rng := NewChannelRange()
	err := pixfilter.ForEachColumn(d, progress, cancelled, func(x int) {
		for y := 0; y < d.Height; y++ {
			rng.Observe(src.ColorAt(x, y))
		}
	})
	if err != nil {
		return ChannelRange{}, err
	}
	return rng, nil
}

// StretchTransform is the mapping pass of contrast stretching: each channel
// is linearly mapped so Range.Min becomes 0 and Range.Max becomes 255.
// A channel with Min == Max is passed through unchanged. Alpha is kept.
type StretchTransform struct {
	Range ChannelRange
}

// ComputeColor implements [pixfilter.Transform].
func (t StretchTransform) ComputeColor(src pixfilter.Image, x, y int) pixfilter.Color {
	c := src.ColorAt(x, y)
	return pixfilter.Color{
		R: t.stretch(0, c.R),
		G: t.stretch(1, c.G),
		B: t.stretch(2, c.B),
		A: c.A,
	}
}

func (t StretchTransform) stretch(ch int, v uint8) uint8 {
	lo, hi := t.Range.Min[ch], t.Range.Max[ch]
	if hi <= lo {
		return v
	}
	return pixfilter.ClampChannel((int(v) - lo) * 255 / (hi - lo))
}

// Stretch is the two-pass contrast stretch filter. Statistics live only for
// the duration of one Apply call, so an instance may be reused on
// different images sequentially.
type Stretch struct{}

var _ pixfilter.Filter = Stretch{}

// NewStretch creates a contrast stretch filter.
func NewStretch() Stretch { return Stretch{} }

// Controls implements [pixfilter.Filter]. Stretch has no parameters.
func (Stretch) Controls() []pixfilter.Control { return nil }

// Apply implements [pixfilter.Filter]. Progress restarts at 0 for the
// mapping pass.
func (Stretch) Apply(src pixfilter.Image, progress pixfilter.ProgressFunc, cancelled pixfilter.CancelledFunc) (*pixfilter.RGBA, error) {
	rng, err := ScanRange(src, progress, cancelled)
	if err != nil {
		return nil, err
	}
	pixfilter.Logger().WithFields(logrus.Fields{
		"min": rng.Min,
		"max": rng.Max,
	}).Debug("contrast stretch range")
	return pixfilter.Process(src, StretchTransform{Range: rng}, progress, cancelled)
}
