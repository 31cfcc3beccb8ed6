package filters

import (
	"slices"

	"github.com/soypat/pixfilter"
)

// IdentityCurve maps every input to itself.
func IdentityCurve() []pixfilter.CurvePoint {
	return []pixfilter.CurvePoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
}

// curveLUT samples a piecewise linear curve at every channel value.
// Inputs left of the first point or right of the last take its Y.
func curveLUT(pts []pixfilter.CurvePoint) (lut [256]uint8) {
	seg := 0
	for v := range lut {
		x := float32(v) / 255
		for seg < len(pts)-2 && x > pts[seg+1].X {
			seg++
		}
		p0, p1 := pts[seg], pts[seg+1]
		var y float32
		switch {
		case x <= p0.X:
			y = p0.Y
		case x >= p1.X:
			y = p1.Y
		default:
			t := (x - p0.X) / (p1.X - p0.X)
			y = p0.Y + t*(p1.Y-p0.Y)
		}
		lut[v] = pixfilter.ClampChannelFloat(float64(y)*255 + 0.5)
	}
	return lut
}

// NewCurves creates a tone curve filter applying the same curve to R, G and B.
// Alpha is kept.
func NewCurves(points []pixfilter.CurvePoint) (*PointFilter, error) {
	if err := pixfilter.ValidateCurve(points); err != nil {
		return nil, err
	}
	points = slices.Clone(points)
	lut := curveLUT(points)
	return &PointFilter{
		Fn: func(c pixfilter.Color) pixfilter.Color {
			return pixfilter.Color{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
		},
		Ctrls: []pixfilter.Control{
			&pixfilter.ControlCurve{
				Name:        "Curve",
				Description: "Input to output tone mapping",
				Points:      points,
				OnChange: func(pts []pixfilter.CurvePoint) error {
					lut = curveLUT(pts)
					return nil
				},
			},
		},
	}, nil
}
