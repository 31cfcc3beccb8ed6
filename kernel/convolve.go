package kernel

import "github.com/soypat/pixfilter"

// Convolve computes the weighted sum of the neighborhood of (x,y) in src.
// Neighbors outside the image are replaced by the nearest border pixel.
// Only R, G and B are convolved; each sum is truncated toward zero and
// clamped. The result is always opaque. The zero Kernel acts as [Identity].
func Convolve(src pixfilter.Image, k Kernel, x, y int) pixfilter.Color {
	if k.IsZero() {
		k = Identity()
	}
	d := src.Dims()
	w := 2*k.rx + 1
	var r, g, b float64
	for l := -k.ry; l <= k.ry; l++ {
		sy := pixfilter.Clamp(y+l, 0, d.Height-1)
		row := k.weights[(l+k.ry)*w : (l+k.ry+1)*w]
		for i, weight := range row {
			sx := pixfilter.Clamp(x+i-k.rx, 0, d.Width-1)
			c := src.ColorAt(sx, sy)
			r += float64(c.R) * weight
			g += float64(c.G) * weight
			b += float64(c.B) * weight
		}
	}
	return pixfilter.RGB(
		pixfilter.ClampChannelFloat(r),
		pixfilter.ClampChannelFloat(g),
		pixfilter.ClampChannelFloat(b),
	)
}
