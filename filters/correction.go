package filters

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/soypat/pixfilter"
)

// CorrectionMode selects how the per-channel gain of [NewColorCorrection] is computed.
type CorrectionMode int

const (
	// CorrectionLegacy computes the gain as the integer quotient 255/ref
	// before multiplying, so ref=200 gives a gain of 1.
	CorrectionLegacy CorrectionMode = iota
	// CorrectionExact uses the real ratio 255/ref and truncates the product.
	CorrectionExact
)

func (m CorrectionMode) String() string {
	switch m {
	case CorrectionLegacy:
		return "Legacy"
	case CorrectionExact:
		return "Exact"
	default:
		return "Unknown"
	}
}

// correctChannel scales v so that ref would map to white. A zero reference
// leaves the channel untouched.
func correctChannel(v, ref uint8, mode CorrectionMode) uint8 {
	if ref == 0 {
		return v
	}
	if mode == CorrectionExact {
		return pixfilter.ClampChannelFloat(float64(v) * 255 / float64(ref))
	}
	return pixfilter.ClampChannel(int(v) * (255 / int(ref)))
}

// NewColorCorrection creates a filter that rescales each channel so the
// reference color becomes white. The reference alpha is ignored and the
// source alpha is kept.
func NewColorCorrection(reference pixfilter.Color, mode CorrectionMode) *PointFilter {
	ref, filterMode := reference, mode
	ref.A = 255
	return &PointFilter{
		Fn: func(c pixfilter.Color) pixfilter.Color {
			return pixfilter.Color{
				R: correctChannel(c.R, ref.R, filterMode),
				G: correctChannel(c.G, ref.G, filterMode),
				B: correctChannel(c.B, ref.B, filterMode),
				A: c.A,
			}
		},
		Ctrls: []pixfilter.Control{
			&pixfilter.ControlColor{
				Name:        "Reference",
				Description: "Color that should appear white after correction",
				Value:       ref,
				OnChange: func(c pixfilter.Color) error {
					ref = c
					return nil
				},
			},
			&pixfilter.ControlEnum[CorrectionMode]{
				Name:        "Gain Mode",
				Description: "Integer (legacy) or real valued channel gain",
				Value:       filterMode,
				ValidValues: []CorrectionMode{CorrectionLegacy, CorrectionExact},
				OnChange: func(m CorrectionMode) error {
					filterMode = m
					return nil
				},
			},
		},
	}
}

// ParseColor parses a hex color such as "#ff8000" into an opaque color.
func ParseColor(s string) (pixfilter.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return pixfilter.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return pixfilter.RGB(r, g, b), nil
}
