package filters

import "github.com/soypat/pixfilter"

// NewInverted creates a filter that inverts RGB values. Alpha is kept.
// Applying it twice yields the original image.
func NewInverted() *PointFilter {
	return &PointFilter{
		Fn: func(c pixfilter.Color) pixfilter.Color {
			return pixfilter.Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
		},
	}
}
