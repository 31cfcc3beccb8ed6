package pixfilter

import (
	"image/color"
	"math"
)

// Color is a non-premultiplied 4 channel color with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

var _ color.Color = Color{}

// Black is opaque black.
var Black = Color{A: 255}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA implements [color.Color].
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Clamp saturates value to the closed range [min, max].
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampChannel saturates v to a valid channel value.
func ClampChannel(v int) uint8 {
	return uint8(Clamp(v, 0, 255))
}

// ClampChannelFloat truncates v toward zero and saturates it to a valid
// channel value. NaN maps to 0.
func ClampChannelFloat(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
