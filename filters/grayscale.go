package filters

import "github.com/soypat/pixfilter"

// GrayscaleMode determines the algorithm for RGB to grayscale conversion.
type GrayscaleMode int

const (
	// GrayscaleLuminance uses standard luminance weights truncated toward
	// zero: floor(0.299*R + 0.587*G + 0.114*B).
	GrayscaleLuminance GrayscaleMode = iota
	// GrayscaleAverage uses simple average: (R + G + B) / 3
	GrayscaleAverage
	// GrayscaleLightness uses min/max average: (max(R,G,B) + min(R,G,B)) / 2
	GrayscaleLightness
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleLuminance:
		return "Luminance"
	case GrayscaleAverage:
		return "Average"
	case GrayscaleLightness:
		return "Lightness"
	default:
		return "Unknown"
	}
}

// Luma returns the truncated luminance of c.
func Luma(c pixfilter.Color) uint8 {
	return pixfilter.ClampChannelFloat(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
}

// NewGrayscale creates a grayscale filter. Output has R == G == B and keeps
// the source alpha.
func NewGrayscale(mode GrayscaleMode) *PointFilter {
	filterMode := mode
	return &PointFilter{
		Fn: func(c pixfilter.Color) pixfilter.Color {
			var gray uint8
			switch filterMode {
			case GrayscaleAverage:
				gray = uint8((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3)
			case GrayscaleLightness:
				gray = uint8((uint32(min(c.R, c.G, c.B)) + uint32(max(c.R, c.G, c.B))) / 2)
			default: // GrayscaleLuminance
				gray = Luma(c)
			}
			return pixfilter.Color{R: gray, G: gray, B: gray, A: c.A}
		},
		Ctrls: []pixfilter.Control{
			&pixfilter.ControlEnum[GrayscaleMode]{
				Name:        "Conversion Mode",
				Description: "Algorithm for RGB to grayscale conversion",
				Value:       filterMode,
				ValidValues: []GrayscaleMode{GrayscaleLuminance, GrayscaleAverage, GrayscaleLightness},
				OnChange: func(m GrayscaleMode) error {
					filterMode = m // Closure will assign and Fn above pick up.
					return nil
				},
			},
		},
	}
}
